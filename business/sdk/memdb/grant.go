package memdb

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/jcpaschoal/biadmin/business/domain/dashboardbus"
	"github.com/jcpaschoal/biadmin/business/domain/grantbus"
	"github.com/jcpaschoal/biadmin/business/domain/userbus"
	"github.com/jcpaschoal/biadmin/business/sdk/order"
	"github.com/jcpaschoal/biadmin/business/sdk/page"
)

// GrantStore implements grantbus.Storer.
type GrantStore struct {
	db *DB
}

// Create inserts a new grant.
func (s *GrantStore) Create(ctx context.Context, g grantbus.Grant) error {
	if s.db.GrantHook != nil {
		if err := s.db.GrantHook(g); err != nil {
			return err
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, exists := s.db.users[g.UserID]; !exists {
		return userbus.ErrNotFound
	}

	if _, exists := s.db.dashboards[g.DashboardID]; !exists {
		return dashboardbus.ErrNotFound
	}

	if _, exists := s.db.grants[g]; exists {
		return grantbus.ErrConflict
	}

	s.db.grants[g] = struct{}{}

	return nil
}

// Delete removes a grant.
func (s *GrantStore) Delete(ctx context.Context, g grantbus.Grant) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, exists := s.db.grants[g]; !exists {
		return grantbus.ErrNotFound
	}

	delete(s.db.grants, g)

	return nil
}

// QueryByID finds a grant.
func (s *GrantStore) QueryByID(ctx context.Context, userID uuid.UUID, dashboardID uuid.UUID) (grantbus.Grant, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	g := grantbus.Grant{UserID: userID, DashboardID: dashboardID}
	if _, exists := s.db.grants[g]; !exists {
		return grantbus.Grant{}, fmt.Errorf("db: %w", grantbus.ErrNotFound)
	}

	return g, nil
}

// Query retrieves the grants matching the filter with their summaries.
func (s *GrantStore) Query(ctx context.Context, filter grantbus.QueryFilter, orderBy order.By, pg page.Page) ([]grantbus.GrantDetail, error) {
	gds := s.filter(filter)

	var cmpFn func(a, b grantbus.GrantDetail) int
	switch orderBy.Field {
	case grantbus.OrderByUserID:
		cmpFn = func(a, b grantbus.GrantDetail) int { return strings.Compare(a.UserID.String(), b.UserID.String()) }
	case grantbus.OrderByDashboardID:
		cmpFn = func(a, b grantbus.GrantDetail) int { return strings.Compare(a.DashboardID.String(), b.DashboardID.String()) }
	case grantbus.OrderByUserEmail:
		cmpFn = func(a, b grantbus.GrantDetail) int { return strings.Compare(a.User.Email.Address, b.User.Email.Address) }
	case grantbus.OrderByDashboardName:
		cmpFn = func(a, b grantbus.GrantDetail) int { return strings.Compare(a.Dashboard.Name.String(), b.Dashboard.Name.String()) }
	default:
		return nil, fmt.Errorf("field %q does not exist", orderBy.Field)
	}

	slices.SortStableFunc(gds, func(a, b grantbus.GrantDetail) int {
		if descending(orderBy.Direction) {
			return cmpFn(b, a)
		}
		return cmpFn(a, b)
	})

	return paginate(gds, pg), nil
}

// Count returns the number of grants matching the filter.
func (s *GrantStore) Count(ctx context.Context, filter grantbus.QueryFilter) (int, error) {
	return len(s.filter(filter)), nil
}

func (s *GrantStore) filter(filter grantbus.QueryFilter) []grantbus.GrantDetail {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var gds []grantbus.GrantDetail
	for g := range s.db.grants {
		usr := s.db.users[g.UserID]
		dsh := s.db.dashboards[g.DashboardID]

		switch {
		case filter.UserID != nil && g.UserID != *filter.UserID:
			continue
		case filter.DashboardID != nil && g.DashboardID != *filter.DashboardID:
			continue
		case filter.CompanyID != nil && dsh.CompanyID != *filter.CompanyID:
			continue
		}

		gds = append(gds, grantbus.GrantDetail{
			Grant: g,
			User: grantbus.UserSummary{
				ID:    usr.ID,
				Name:  usr.Name,
				Email: usr.Email,
			},
			Dashboard: grantbus.DashboardSummary{
				ID:   dsh.ID,
				Name: dsh.Name,
			},
		})
	}

	return gds
}
