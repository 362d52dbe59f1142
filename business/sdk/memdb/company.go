package memdb

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/jcpaschoal/biadmin/business/domain/companybus"
	"github.com/jcpaschoal/biadmin/business/sdk/order"
	"github.com/jcpaschoal/biadmin/business/sdk/page"
	"github.com/jcpaschoal/biadmin/business/sdk/sqldb"
)

// CompanyStore implements companybus.Storer.
type CompanyStore struct {
	db *DB
}

// NewWithTx returns the same store, the memory database has no transactions.
func (s *CompanyStore) NewWithTx(tx sqldb.CommitRollbacker) (companybus.Storer, error) {
	return s, nil
}

// Create inserts a new company.
func (s *CompanyStore) Create(ctx context.Context, c companybus.Company) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, exists := s.db.companies[c.ID]; exists {
		return sqldb.ErrDBDuplicatedEntry{Constraint: "companies_pkey"}
	}

	s.db.companies[c.ID] = c

	return nil
}

// Update replaces a company.
func (s *CompanyStore) Update(ctx context.Context, c companybus.Company) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, exists := s.db.companies[c.ID]; exists {
		s.db.companies[c.ID] = c
	}

	return nil
}

// Delete removes a company and cascades to its users and dashboards. The
// cascade is rejected while any grant still references one of them.
func (s *CompanyStore) Delete(ctx context.Context, c companybus.Company) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for g := range s.db.grants {
		if usr, exists := s.db.users[g.UserID]; exists && usr.CompanyID != nil && *usr.CompanyID == c.ID {
			return sqldb.ErrDBForeignKey{Constraint: userFKey}
		}
		if dsh, exists := s.db.dashboards[g.DashboardID]; exists && dsh.CompanyID == c.ID {
			return sqldb.ErrDBForeignKey{Constraint: dashboardFKey}
		}
	}

	for id, usr := range s.db.users {
		if usr.CompanyID != nil && *usr.CompanyID == c.ID {
			delete(s.db.users, id)
		}
	}

	for id, dsh := range s.db.dashboards {
		if dsh.CompanyID == c.ID {
			delete(s.db.dashboards, id)
		}
	}

	delete(s.db.companies, c.ID)

	return nil
}

// Query retrieves the companies matching the filter.
func (s *CompanyStore) Query(ctx context.Context, filter companybus.QueryFilter, orderBy order.By, pg page.Page) ([]companybus.Company, error) {
	cmps := s.filter(filter)

	var cmpFn func(a, b companybus.Company) int
	switch orderBy.Field {
	case companybus.OrderByID:
		cmpFn = func(a, b companybus.Company) int { return strings.Compare(a.ID.String(), b.ID.String()) }
	case companybus.OrderByName:
		cmpFn = func(a, b companybus.Company) int { return strings.Compare(a.Name.String(), b.Name.String()) }
	case companybus.OrderByActive:
		cmpFn = func(a, b companybus.Company) int { return compareBool(a.Active, b.Active) }
	case companybus.OrderByCreatedAt:
		cmpFn = func(a, b companybus.Company) int { return a.CreatedAt.Compare(b.CreatedAt) }
	default:
		return nil, fmt.Errorf("field %q does not exist", orderBy.Field)
	}

	slices.SortStableFunc(cmps, func(a, b companybus.Company) int {
		if descending(orderBy.Direction) {
			return cmpFn(b, a)
		}
		return cmpFn(a, b)
	})

	return paginate(cmps, pg), nil
}

// Count returns the number of companies matching the filter.
func (s *CompanyStore) Count(ctx context.Context, filter companybus.QueryFilter) (int, error) {
	return len(s.filter(filter)), nil
}

// QueryByID finds a company.
func (s *CompanyStore) QueryByID(ctx context.Context, companyID uuid.UUID) (companybus.Company, error) {
	if err := s.db.lookup(ctx); err != nil {
		return companybus.Company{}, err
	}

	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	c, exists := s.db.companies[companyID]
	if !exists {
		return companybus.Company{}, fmt.Errorf("db: %w", companybus.ErrNotFound)
	}

	return c, nil
}

func (s *CompanyStore) filter(filter companybus.QueryFilter) []companybus.Company {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var cmps []companybus.Company
	for _, c := range s.db.companies {
		if filter.ID != nil && c.ID != *filter.ID {
			continue
		}
		if filter.Name != nil && !contains(c.Name.String(), *filter.Name) {
			continue
		}
		if filter.Active != nil && c.Active != *filter.Active {
			continue
		}
		cmps = append(cmps, c)
	}

	return cmps
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}
