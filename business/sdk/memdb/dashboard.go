package memdb

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/jcpaschoal/biadmin/business/domain/companybus"
	"github.com/jcpaschoal/biadmin/business/domain/dashboardbus"
	"github.com/jcpaschoal/biadmin/business/domain/grantbus"
	"github.com/jcpaschoal/biadmin/business/sdk/order"
	"github.com/jcpaschoal/biadmin/business/sdk/page"
	"github.com/jcpaschoal/biadmin/business/sdk/sqldb"
)

// DashboardStore implements dashboardbus.Storer.
type DashboardStore struct {
	db *DB
}

// NewWithTx returns the same store, the memory database has no transactions.
func (s *DashboardStore) NewWithTx(tx sqldb.CommitRollbacker) (dashboardbus.Storer, error) {
	return s, nil
}

// Create inserts a new dashboard.
func (s *DashboardStore) Create(ctx context.Context, d dashboardbus.Dashboard) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, exists := s.db.companies[d.CompanyID]; !exists {
		return companybus.ErrNotFound
	}

	s.db.dashboards[d.ID] = d

	return nil
}

// Update replaces a dashboard.
func (s *DashboardStore) Update(ctx context.Context, d dashboardbus.Dashboard) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, exists := s.db.dashboards[d.ID]; !exists {
		return nil
	}

	if _, exists := s.db.companies[d.CompanyID]; !exists {
		return companybus.ErrNotFound
	}

	s.db.dashboards[d.ID] = d

	return nil
}

// Delete removes a dashboard. It is rejected while grants reference it.
func (s *DashboardStore) Delete(ctx context.Context, d dashboardbus.Dashboard) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for g := range s.db.grants {
		if g.DashboardID == d.ID {
			return sqldb.ErrDBForeignKey{Constraint: dashboardFKey}
		}
	}

	delete(s.db.dashboards, d.ID)

	return nil
}

// Query retrieves the dashboards matching the filter.
func (s *DashboardStore) Query(ctx context.Context, filter dashboardbus.QueryFilter, orderBy order.By, pg page.Page) ([]dashboardbus.Dashboard, error) {
	ds := s.filter(filter)

	var cmpFn func(a, b dashboardbus.Dashboard) int
	switch orderBy.Field {
	case dashboardbus.OrderByID:
		cmpFn = func(a, b dashboardbus.Dashboard) int { return strings.Compare(a.ID.String(), b.ID.String()) }
	case dashboardbus.OrderByName:
		cmpFn = func(a, b dashboardbus.Dashboard) int { return strings.Compare(a.Name.String(), b.Name.String()) }
	case dashboardbus.OrderByCompanyID:
		cmpFn = func(a, b dashboardbus.Dashboard) int { return strings.Compare(a.CompanyID.String(), b.CompanyID.String()) }
	case dashboardbus.OrderByActive:
		cmpFn = func(a, b dashboardbus.Dashboard) int { return compareBool(a.Active, b.Active) }
	case dashboardbus.OrderByCreatedAt:
		cmpFn = func(a, b dashboardbus.Dashboard) int { return a.CreatedAt.Compare(b.CreatedAt) }
	default:
		return nil, fmt.Errorf("field %q does not exist", orderBy.Field)
	}

	slices.SortStableFunc(ds, func(a, b dashboardbus.Dashboard) int {
		if descending(orderBy.Direction) {
			return cmpFn(b, a)
		}
		return cmpFn(a, b)
	})

	return paginate(ds, pg), nil
}

// Count returns the number of dashboards matching the filter.
func (s *DashboardStore) Count(ctx context.Context, filter dashboardbus.QueryFilter) (int, error) {
	return len(s.filter(filter)), nil
}

// QueryByID finds a dashboard.
func (s *DashboardStore) QueryByID(ctx context.Context, dashboardID uuid.UUID) (dashboardbus.Dashboard, error) {
	if err := s.db.lookup(ctx); err != nil {
		return dashboardbus.Dashboard{}, err
	}

	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	d, exists := s.db.dashboards[dashboardID]
	if !exists {
		return dashboardbus.Dashboard{}, fmt.Errorf("db: %w", dashboardbus.ErrNotFound)
	}

	return d, nil
}

// QueryByIDs finds the dashboards with the specified ids.
func (s *DashboardStore) QueryByIDs(ctx context.Context, dashboardIDs []uuid.UUID) ([]dashboardbus.Dashboard, error) {
	if err := s.db.lookup(ctx); err != nil {
		return nil, err
	}

	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var ds []dashboardbus.Dashboard
	for _, id := range dashboardIDs {
		if d, exists := s.db.dashboards[id]; exists {
			ds = append(ds, d)
		}
	}

	return ds, nil
}

func (s *DashboardStore) filter(filter dashboardbus.QueryFilter) []dashboardbus.Dashboard {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var ds []dashboardbus.Dashboard
	for _, d := range s.db.dashboards {
		switch {
		case filter.ID != nil && d.ID != *filter.ID:
			continue
		case filter.CompanyID != nil && d.CompanyID != *filter.CompanyID:
			continue
		case filter.Name != nil && !contains(d.Name.String(), *filter.Name):
			continue
		case filter.Active != nil && d.Active != *filter.Active:
			continue
		}

		if filter.UserID != nil {
			g := grantbus.Grant{UserID: *filter.UserID, DashboardID: d.ID}
			if _, granted := s.db.grants[g]; !granted {
				continue
			}
		}

		ds = append(ds, d)
	}

	return ds
}
