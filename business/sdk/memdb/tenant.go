package memdb

import (
	"context"

	"github.com/google/uuid"
	"github.com/jcpaschoal/biadmin/business/domain/grantbus"
	"github.com/jcpaschoal/biadmin/business/domain/tenantbus"
	"github.com/jcpaschoal/biadmin/business/sdk/sqldb"
)

// TenantStore implements tenantbus.Storer.
type TenantStore struct {
	db *DB
}

// NewWithTx returns the same store, the memory database has no transactions.
func (s *TenantStore) NewWithTx(tx sqldb.CommitRollbacker) (tenantbus.Storer, error) {
	return s, nil
}

// CountCompanyDependents counts the users, dashboards and grants of a company.
func (s *TenantStore) CountCompanyDependents(ctx context.Context, companyID uuid.UUID) (tenantbus.Dependents, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var deps tenantbus.Dependents

	for _, usr := range s.db.users {
		if usr.CompanyID != nil && *usr.CompanyID == companyID {
			deps.Users++
		}
	}

	for _, dsh := range s.db.dashboards {
		if dsh.CompanyID == companyID {
			deps.Dashboards++
		}
	}

	for g := range s.db.grants {
		if s.ofCompany(g, companyID) {
			deps.Grants++
		}
	}

	return deps, nil
}

// CountUserGrants returns the number of grants the user holds.
func (s *TenantStore) CountUserGrants(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.count(func(g grantbus.Grant) bool { return g.UserID == userID }), nil
}

// CountDashboardGrants returns the number of grants of the dashboard.
func (s *TenantStore) CountDashboardGrants(ctx context.Context, dashboardID uuid.UUID) (int, error) {
	return s.count(func(g grantbus.Grant) bool { return g.DashboardID == dashboardID }), nil
}

// DeleteCompanyGrants removes the grants of the company's users and dashboards.
func (s *TenantStore) DeleteCompanyGrants(ctx context.Context, companyID uuid.UUID) error {
	s.remove(func(g grantbus.Grant) bool { return s.ofCompany(g, companyID) })
	return nil
}

// DeleteUserGrants removes the grants of the user.
func (s *TenantStore) DeleteUserGrants(ctx context.Context, userID uuid.UUID) error {
	s.remove(func(g grantbus.Grant) bool { return g.UserID == userID })
	return nil
}

// DeleteDashboardGrants removes the grants of the dashboard.
func (s *TenantStore) DeleteDashboardGrants(ctx context.Context, dashboardID uuid.UUID) error {
	s.remove(func(g grantbus.Grant) bool { return g.DashboardID == dashboardID })
	return nil
}

// ofCompany must be called with the lock held.
func (s *TenantStore) ofCompany(g grantbus.Grant, companyID uuid.UUID) bool {
	if usr, exists := s.db.users[g.UserID]; exists && usr.CompanyID != nil && *usr.CompanyID == companyID {
		return true
	}

	dsh, exists := s.db.dashboards[g.DashboardID]

	return exists && dsh.CompanyID == companyID
}

func (s *TenantStore) count(match func(g grantbus.Grant) bool) int {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var n int
	for g := range s.db.grants {
		if match(g) {
			n++
		}
	}

	return n
}

func (s *TenantStore) remove(match func(g grantbus.Grant) bool) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for g := range s.db.grants {
		if match(g) {
			delete(s.db.grants, g)
		}
	}
}
