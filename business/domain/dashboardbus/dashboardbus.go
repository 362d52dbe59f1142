// Package dashboardbus provides business access to the dashboard domain.
package dashboardbus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/biadmin/business/domain/companybus"
	"github.com/jcpaschoal/biadmin/business/sdk/order"
	"github.com/jcpaschoal/biadmin/business/sdk/page"
	"github.com/jcpaschoal/biadmin/business/sdk/sqldb"
	"github.com/jcpaschoal/biadmin/foundation/logger"
	"github.com/jcpaschoal/biadmin/foundation/otel"
)

// Set of error variables for CRUD operations.
var (
	ErrNotFound = errors.New("dashboard not found")
)

// Storer interface declares the behavior this package needs to persist and
// retrieve data.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, d Dashboard) error
	Update(ctx context.Context, d Dashboard) error
	Delete(ctx context.Context, d Dashboard) error
	Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]Dashboard, error)
	Count(ctx context.Context, filter QueryFilter) (int, error)
	QueryByID(ctx context.Context, dashboardID uuid.UUID) (Dashboard, error)
	QueryByIDs(ctx context.Context, dashboardIDs []uuid.UUID) ([]Dashboard, error)
}

// Core manages the set of APIs for dashboard access.
type Core struct {
	log        *logger.Logger
	companyBus *companybus.Core
	storer     Storer
}

// NewCore constructs a dashboard core API for use.
func NewCore(log *logger.Logger, companyBus *companybus.Core, storer Storer) *Core {
	return &Core{
		log:        log,
		companyBus: companyBus,
		storer:     storer,
	}
}

// NewWithTx constructs a new Core value replacing the Storer
// value with a Storer value that is currently inside a transaction.
func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, fmt.Errorf("newWithTx: %w", err)
	}

	companyBus, err := c.companyBus.NewWithTx(tx)
	if err != nil {
		return nil, fmt.Errorf("newWithTx: %w", err)
	}

	return NewCore(c.log, companyBus, storer), nil
}

// Create adds a new dashboard to the system. The owning company must exist.
func (c *Core) Create(ctx context.Context, nd NewDashboard) (Dashboard, error) {
	ctx, span := otel.AddSpan(ctx, "business.dashboardbus.create")
	defer span.End()

	if _, err := c.companyBus.QueryByID(ctx, nd.CompanyID); err != nil {
		return Dashboard{}, fmt.Errorf("company: %w", err)
	}

	now := time.Now()

	d := Dashboard{
		ID:           uuid.New(),
		CompanyID:    nd.CompanyID,
		Name:         nd.Name,
		Description:  nd.Description,
		ReportRef:    nd.ReportRef,
		WorkspaceRef: nd.WorkspaceRef,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := c.storer.Create(ctx, d); err != nil {
		return Dashboard{}, fmt.Errorf("create: %w", err)
	}

	return d, nil
}

// Update modifies data about a dashboard. Moving a dashboard to another
// company does not revalidate the grants it already has.
func (c *Core) Update(ctx context.Context, d Dashboard, ud UpdateDashboard) (Dashboard, error) {
	ctx, span := otel.AddSpan(ctx, "business.dashboardbus.update")
	defer span.End()

	if ud.CompanyID != nil && *ud.CompanyID != d.CompanyID {
		if _, err := c.companyBus.QueryByID(ctx, *ud.CompanyID); err != nil {
			return Dashboard{}, fmt.Errorf("company: %w", err)
		}
		d.CompanyID = *ud.CompanyID
	}

	if ud.Name != nil {
		d.Name = *ud.Name
	}

	if ud.Description != nil {
		d.Description = ud.Description
		if *ud.Description == "" {
			d.Description = nil
		}
	}

	if ud.ReportRef != nil {
		d.ReportRef = *ud.ReportRef
	}

	if ud.WorkspaceRef != nil {
		d.WorkspaceRef = *ud.WorkspaceRef
	}

	if ud.Active != nil {
		d.Active = *ud.Active
	}

	d.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, d); err != nil {
		return Dashboard{}, fmt.Errorf("update: %w", err)
	}

	return d, nil
}

// Delete removes the specified dashboard. The store rejects the delete
// while grants still reference it; tenantbus clears them first.
func (c *Core) Delete(ctx context.Context, d Dashboard) error {
	ctx, span := otel.AddSpan(ctx, "business.dashboardbus.delete")
	defer span.End()

	if err := c.storer.Delete(ctx, d); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	return nil
}

// Query retrieves a list of existing dashboards.
func (c *Core) Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]Dashboard, error) {
	ctx, span := otel.AddSpan(ctx, "business.dashboardbus.query")
	defer span.End()

	ds, err := c.storer.Query(ctx, filter, orderBy, page)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return ds, nil
}

// Count returns the total number of dashboards.
func (c *Core) Count(ctx context.Context, filter QueryFilter) (int, error) {
	ctx, span := otel.AddSpan(ctx, "business.dashboardbus.count")
	defer span.End()

	return c.storer.Count(ctx, filter)
}

// QueryByID finds the dashboard by the specified ID.
func (c *Core) QueryByID(ctx context.Context, dashboardID uuid.UUID) (Dashboard, error) {
	ctx, span := otel.AddSpan(ctx, "business.dashboardbus.querybyid")
	defer span.End()

	d, err := c.storer.QueryByID(ctx, dashboardID)
	if err != nil {
		return Dashboard{}, fmt.Errorf("query: dashboardID[%s]: %w", dashboardID, err)
	}

	return d, nil
}

// QueryByIDs finds the dashboards with the specified IDs. Ids that do not
// exist are absent from the result.
func (c *Core) QueryByIDs(ctx context.Context, dashboardIDs []uuid.UUID) ([]Dashboard, error) {
	ctx, span := otel.AddSpan(ctx, "business.dashboardbus.querybyids")
	defer span.End()

	if len(dashboardIDs) == 0 {
		return nil, nil
	}

	ds, err := c.storer.QueryByIDs(ctx, dashboardIDs)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return ds, nil
}
