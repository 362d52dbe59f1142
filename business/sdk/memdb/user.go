package memdb

import (
	"context"
	"fmt"
	"net/mail"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/jcpaschoal/biadmin/business/domain/companybus"
	"github.com/jcpaschoal/biadmin/business/domain/grantbus"
	"github.com/jcpaschoal/biadmin/business/domain/userbus"
	"github.com/jcpaschoal/biadmin/business/sdk/order"
	"github.com/jcpaschoal/biadmin/business/sdk/page"
	"github.com/jcpaschoal/biadmin/business/sdk/sqldb"
)

// UserStore implements userbus.Storer.
type UserStore struct {
	db *DB
}

// NewWithTx returns the same store, the memory database has no transactions.
func (s *UserStore) NewWithTx(tx sqldb.CommitRollbacker) (userbus.Storer, error) {
	return s, nil
}

// Create inserts a new user.
func (s *UserStore) Create(ctx context.Context, usr userbus.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if err := s.check(usr); err != nil {
		return err
	}

	s.db.users[usr.ID] = usr

	return nil
}

// Update replaces a user.
func (s *UserStore) Update(ctx context.Context, usr userbus.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, exists := s.db.users[usr.ID]; !exists {
		return nil
	}

	if err := s.check(usr); err != nil {
		return err
	}

	s.db.users[usr.ID] = usr

	return nil
}

// check enforces the email uniqueness and company foreign key.
func (s *UserStore) check(usr userbus.User) error {
	for id, u := range s.db.users {
		if id != usr.ID && strings.EqualFold(u.Email.Address, usr.Email.Address) {
			return userbus.ErrUniqueEmail
		}
	}

	if usr.CompanyID != nil {
		if _, exists := s.db.companies[*usr.CompanyID]; !exists {
			return companybus.ErrNotFound
		}
	}

	return nil
}

// Delete removes a user. It is rejected while the user holds grants.
func (s *UserStore) Delete(ctx context.Context, usr userbus.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for g := range s.db.grants {
		if g.UserID == usr.ID {
			return sqldb.ErrDBForeignKey{Constraint: userFKey}
		}
	}

	delete(s.db.users, usr.ID)

	return nil
}

// Query retrieves the users matching the filter.
func (s *UserStore) Query(ctx context.Context, filter userbus.QueryFilter, orderBy order.By, pg page.Page) ([]userbus.User, error) {
	usrs := s.filter(filter)

	var cmpFn func(a, b userbus.User) int
	switch orderBy.Field {
	case userbus.OrderByID:
		cmpFn = func(a, b userbus.User) int { return strings.Compare(a.ID.String(), b.ID.String()) }
	case userbus.OrderByName:
		cmpFn = func(a, b userbus.User) int { return strings.Compare(a.Name.String(), b.Name.String()) }
	case userbus.OrderByEmail:
		cmpFn = func(a, b userbus.User) int { return strings.Compare(a.Email.Address, b.Email.Address) }
	case userbus.OrderByRole:
		cmpFn = func(a, b userbus.User) int { return strings.Compare(a.Role.String(), b.Role.String()) }
	case userbus.OrderByActive:
		cmpFn = func(a, b userbus.User) int { return compareBool(a.Active, b.Active) }
	case userbus.OrderByCreatedAt:
		cmpFn = func(a, b userbus.User) int { return a.CreatedAt.Compare(b.CreatedAt) }
	default:
		return nil, fmt.Errorf("field %q does not exist", orderBy.Field)
	}

	slices.SortStableFunc(usrs, func(a, b userbus.User) int {
		if descending(orderBy.Direction) {
			return cmpFn(b, a)
		}
		return cmpFn(a, b)
	})

	return paginate(usrs, pg), nil
}

// Count returns the number of users matching the filter.
func (s *UserStore) Count(ctx context.Context, filter userbus.QueryFilter) (int, error) {
	return len(s.filter(filter)), nil
}

// QueryByID finds a user.
func (s *UserStore) QueryByID(ctx context.Context, userID uuid.UUID) (userbus.User, error) {
	if err := s.db.lookup(ctx); err != nil {
		return userbus.User{}, err
	}

	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	usr, exists := s.db.users[userID]
	if !exists {
		return userbus.User{}, fmt.Errorf("db: %w", userbus.ErrNotFound)
	}

	return usr, nil
}

// QueryByIDs finds the users with the specified ids.
func (s *UserStore) QueryByIDs(ctx context.Context, userIDs []uuid.UUID) ([]userbus.User, error) {
	if err := s.db.lookup(ctx); err != nil {
		return nil, err
	}

	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var usrs []userbus.User
	for _, id := range userIDs {
		if usr, exists := s.db.users[id]; exists {
			usrs = append(usrs, usr)
		}
	}

	return usrs, nil
}

// QueryByEmail finds a user by email.
func (s *UserStore) QueryByEmail(ctx context.Context, email mail.Address) (userbus.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	for _, usr := range s.db.users {
		if strings.EqualFold(usr.Email.Address, email.Address) {
			return usr, nil
		}
	}

	return userbus.User{}, fmt.Errorf("db: %w", userbus.ErrNotFound)
}

func (s *UserStore) filter(filter userbus.QueryFilter) []userbus.User {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var usrs []userbus.User
	for _, usr := range s.db.users {
		switch {
		case filter.ID != nil && usr.ID != *filter.ID:
			continue
		case filter.CompanyID != nil && (usr.CompanyID == nil || *usr.CompanyID != *filter.CompanyID):
			continue
		case filter.Name != nil && !contains(usr.Name.String(), *filter.Name):
			continue
		case filter.Email != nil && !contains(usr.Email.Address, *filter.Email):
			continue
		case filter.Role != nil && !usr.Role.Equal(*filter.Role):
			continue
		case filter.Active != nil && usr.Active != *filter.Active:
			continue
		case filter.StartCreatedAt != nil && usr.CreatedAt.Before(*filter.StartCreatedAt):
			continue
		case filter.EndCreatedAt != nil && !usr.CreatedAt.Before(*filter.EndCreatedAt):
			continue
		}

		if filter.DashboardID != nil {
			g := grantbus.Grant{UserID: usr.ID, DashboardID: *filter.DashboardID}
			if _, granted := s.db.grants[g]; !granted {
				continue
			}
		}

		usrs = append(usrs, usr)
	}

	return usrs
}
