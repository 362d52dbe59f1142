// Package grantbus manages the user to dashboard permission relation. Every
// write is checked for tenant consistency and company state first.
package grantbus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/biadmin/business/domain/dashboardbus"
	"github.com/jcpaschoal/biadmin/business/domain/tenantbus"
	"github.com/jcpaschoal/biadmin/business/domain/userbus"
	"github.com/jcpaschoal/biadmin/business/sdk/order"
	"github.com/jcpaschoal/biadmin/business/sdk/page"
	"github.com/jcpaschoal/biadmin/foundation/logger"
	"github.com/jcpaschoal/biadmin/foundation/otel"
)

// Set of error variables for grant operations.
var (
	ErrNotFound       = errors.New("grant not found")
	ErrConflict       = errors.New("grant already exists")
	ErrTenantMismatch = errors.New("user and dashboard belong to different companies")
	ErrInactive       = errors.New("entity is inactive")
)

// Storer interface declares the behavior this package needs to persist and
// retrieve data.
type Storer interface {
	Create(ctx context.Context, g Grant) error
	Delete(ctx context.Context, g Grant) error
	QueryByID(ctx context.Context, userID uuid.UUID, dashboardID uuid.UUID) (Grant, error)
	Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]GrantDetail, error)
	Count(ctx context.Context, filter QueryFilter) (int, error)
}

// Option configures optional behavior of the core.
type Option func(*Core)

// WithBulkLimit sets how many bulk items are attempted at the same time.
func WithBulkLimit(n int) Option {
	return func(c *Core) {
		if n > 0 {
			c.bulkLimit = n
		}
	}
}

// WithStoreTimeout bounds every call into the stores, the entity lookups and
// the company check included. Bulk calls bound the lookups once and every
// item on its own.
func WithStoreTimeout(d time.Duration) Option {
	return func(c *Core) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// Core manages the set of APIs for grant access.
type Core struct {
	log          *logger.Logger
	userBus      *userbus.Core
	dashboardBus *dashboardbus.Core
	tenantBus    *tenantbus.Core
	storer       Storer
	bulkLimit    int
	timeout      time.Duration
}

// NewCore constructs a grant core API for use.
func NewCore(log *logger.Logger, userBus *userbus.Core, dashboardBus *dashboardbus.Core, tenantBus *tenantbus.Core, storer Storer, opts ...Option) *Core {
	c := Core{
		log:          log,
		userBus:      userBus,
		dashboardBus: dashboardBus,
		tenantBus:    tenantBus,
		storer:       storer,
		bulkLimit:    4,
		timeout:      5 * time.Second,
	}

	for _, opt := range opts {
		opt(&c)
	}

	return &c
}

// Create grants the user access to the dashboard.
func (c *Core) Create(ctx context.Context, userID uuid.UUID, dashboardID uuid.UUID) (GrantDetail, error) {
	ctx, span := otel.AddSpan(ctx, "business.grantbus.create")
	defer span.End()

	ctx, cancel := c.bound(ctx)
	defer cancel()

	usr, err := c.userBus.QueryByID(ctx, userID)
	if err != nil {
		return GrantDetail{}, err
	}

	dsh, err := c.dashboardBus.QueryByID(ctx, dashboardID)
	if err != nil {
		return GrantDetail{}, err
	}

	return c.create(ctx, usr, dsh)
}

// create is the single grant path shared by every write.
func (c *Core) create(ctx context.Context, usr userbus.User, dsh dashboardbus.Dashboard) (GrantDetail, error) {
	ctx, cancel := c.bound(ctx)
	defer cancel()

	if !usr.BelongsTo(dsh.CompanyID) {
		return GrantDetail{}, fmt.Errorf("userID[%s] dashboardID[%s]: %w", usr.ID, dsh.ID, ErrTenantMismatch)
	}

	if err := c.tenantBus.EnsureActive(ctx, dsh.CompanyID); err != nil {
		return GrantDetail{}, err
	}

	g := Grant{
		UserID:      usr.ID,
		DashboardID: dsh.ID,
	}

	if err := c.storer.Create(ctx, g); err != nil {
		return GrantDetail{}, fmt.Errorf("create: %w", err)
	}

	gd := GrantDetail{
		Grant: g,
		User: UserSummary{
			ID:    usr.ID,
			Name:  usr.Name,
			Email: usr.Email,
		},
		Dashboard: DashboardSummary{
			ID:   dsh.ID,
			Name: dsh.Name,
		},
	}

	return gd, nil
}

// Remove revokes the user's access to the dashboard.
func (c *Core) Remove(ctx context.Context, userID uuid.UUID, dashboardID uuid.UUID) error {
	ctx, span := otel.AddSpan(ctx, "business.grantbus.remove")
	defer span.End()

	ctx, cancel := c.bound(ctx)
	defer cancel()

	g := Grant{
		UserID:      userID,
		DashboardID: dashboardID,
	}

	if err := c.storer.Delete(ctx, g); err != nil {
		return fmt.Errorf("delete: userID[%s] dashboardID[%s]: %w", userID, dashboardID, err)
	}

	return nil
}

// QueryByID finds the grant for the specified pair.
func (c *Core) QueryByID(ctx context.Context, userID uuid.UUID, dashboardID uuid.UUID) (Grant, error) {
	ctx, span := otel.AddSpan(ctx, "business.grantbus.querybyid")
	defer span.End()

	ctx, cancel := c.bound(ctx)
	defer cancel()

	g, err := c.storer.QueryByID(ctx, userID, dashboardID)
	if err != nil {
		return Grant{}, fmt.Errorf("query: userID[%s] dashboardID[%s]: %w", userID, dashboardID, err)
	}

	return g, nil
}

// Query retrieves a list of grants with the user and dashboard they bind.
func (c *Core) Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]GrantDetail, error) {
	ctx, span := otel.AddSpan(ctx, "business.grantbus.query")
	defer span.End()

	ctx, cancel := c.bound(ctx)
	defer cancel()

	gds, err := c.storer.Query(ctx, filter, orderBy, page)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return gds, nil
}

// Count returns the total number of grants.
func (c *Core) Count(ctx context.Context, filter QueryFilter) (int, error) {
	ctx, span := otel.AddSpan(ctx, "business.grantbus.count")
	defer span.End()

	ctx, cancel := c.bound(ctx)
	defer cancel()

	return c.storer.Count(ctx, filter)
}

// =============================================================================

// QueryDashboardsByUser returns the active dashboards granted to the user.
func (c *Core) QueryDashboardsByUser(ctx context.Context, userID uuid.UUID, orderBy order.By, page page.Page) ([]dashboardbus.Dashboard, error) {
	ctx, span := otel.AddSpan(ctx, "business.grantbus.querydashboardsbyuser")
	defer span.End()

	ctx, cancel := c.bound(ctx)
	defer cancel()

	if _, err := c.userBus.QueryByID(ctx, userID); err != nil {
		return nil, err
	}

	return c.dashboardBus.Query(ctx, dashboardsOf(userID), orderBy, page)
}

// CountDashboardsByUser returns the number of active dashboards granted to
// the user.
func (c *Core) CountDashboardsByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	ctx, span := otel.AddSpan(ctx, "business.grantbus.countdashboardsbyuser")
	defer span.End()

	ctx, cancel := c.bound(ctx)
	defer cancel()

	if _, err := c.userBus.QueryByID(ctx, userID); err != nil {
		return 0, err
	}

	return c.dashboardBus.Count(ctx, dashboardsOf(userID))
}

// QueryUsersByDashboard returns the active users granted to the dashboard.
func (c *Core) QueryUsersByDashboard(ctx context.Context, dashboardID uuid.UUID, orderBy order.By, page page.Page) ([]userbus.User, error) {
	ctx, span := otel.AddSpan(ctx, "business.grantbus.queryusersbydashboard")
	defer span.End()

	ctx, cancel := c.bound(ctx)
	defer cancel()

	if _, err := c.dashboardBus.QueryByID(ctx, dashboardID); err != nil {
		return nil, err
	}

	return c.userBus.Query(ctx, usersOf(dashboardID), orderBy, page)
}

// CountUsersByDashboard returns the number of active users granted to the
// dashboard.
func (c *Core) CountUsersByDashboard(ctx context.Context, dashboardID uuid.UUID) (int, error) {
	ctx, span := otel.AddSpan(ctx, "business.grantbus.countusersbydashboard")
	defer span.End()

	ctx, cancel := c.bound(ctx)
	defer cancel()

	if _, err := c.dashboardBus.QueryByID(ctx, dashboardID); err != nil {
		return 0, err
	}

	return c.userBus.Count(ctx, usersOf(dashboardID))
}

func dashboardsOf(userID uuid.UUID) dashboardbus.QueryFilter {
	active := true
	return dashboardbus.QueryFilter{
		UserID: &userID,
		Active: &active,
	}
}

func usersOf(dashboardID uuid.UUID) userbus.QueryFilter {
	active := true
	return userbus.QueryFilter{
		DashboardID: &dashboardID,
		Active:      &active,
	}
}

func (c *Core) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeout)
}
