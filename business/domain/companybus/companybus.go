// Package companybus provides business access to the company domain.
package companybus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/biadmin/business/sdk/order"
	"github.com/jcpaschoal/biadmin/business/sdk/page"
	"github.com/jcpaschoal/biadmin/business/sdk/sqldb"
	"github.com/jcpaschoal/biadmin/foundation/logger"
	"github.com/jcpaschoal/biadmin/foundation/otel"
)

// Set of error variables for CRUD operations.
var (
	ErrNotFound = errors.New("company not found")
)

// Storer interface declares the behavior this package needs to persist and
// retrieve data.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, c Company) error
	Update(ctx context.Context, c Company) error
	Delete(ctx context.Context, c Company) error
	Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]Company, error)
	Count(ctx context.Context, filter QueryFilter) (int, error)
	QueryByID(ctx context.Context, companyID uuid.UUID) (Company, error)
}

// Core manages the set of APIs for company access.
type Core struct {
	log    *logger.Logger
	storer Storer
}

// NewCore constructs a company core API for use.
func NewCore(log *logger.Logger, storer Storer) *Core {
	return &Core{
		log:    log,
		storer: storer,
	}
}

// NewWithTx constructs a new core value that will use the
// specified transaction in any store related calls.
func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, fmt.Errorf("newWithTx: %w", err)
	}

	return NewCore(c.log, storer), nil
}

// Create adds a new company to the system. Companies start active.
func (c *Core) Create(ctx context.Context, nc NewCompany) (Company, error) {
	ctx, span := otel.AddSpan(ctx, "business.companybus.create")
	defer span.End()

	now := time.Now()

	cmp := Company{
		ID:        uuid.New(),
		Name:      nc.Name,
		Industry:  nc.Industry,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storer.Create(ctx, cmp); err != nil {
		return Company{}, fmt.Errorf("create: %w", err)
	}

	return cmp, nil
}

// Update modifies information about a company. Setting Active back to true
// is how a deactivated company is restored.
func (c *Core) Update(ctx context.Context, cmp Company, uc UpdateCompany) (Company, error) {
	ctx, span := otel.AddSpan(ctx, "business.companybus.update")
	defer span.End()

	if uc.Name != nil {
		cmp.Name = *uc.Name
	}

	if uc.Industry != nil {
		cmp.Industry = uc.Industry
		if *uc.Industry == "" {
			cmp.Industry = nil
		}
	}

	if uc.Active != nil {
		cmp.Active = *uc.Active
	}

	cmp.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, cmp); err != nil {
		return Company{}, fmt.Errorf("update: %w", err)
	}

	return cmp, nil
}

// Delete removes the specified company. Callers that need the grant and
// audit guarantees go through tenantbus instead.
func (c *Core) Delete(ctx context.Context, cmp Company) error {
	ctx, span := otel.AddSpan(ctx, "business.companybus.delete")
	defer span.End()

	if err := c.storer.Delete(ctx, cmp); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	return nil
}

// Query retrieves a list of existing companies.
func (c *Core) Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]Company, error) {
	ctx, span := otel.AddSpan(ctx, "business.companybus.query")
	defer span.End()

	cmps, err := c.storer.Query(ctx, filter, orderBy, page)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return cmps, nil
}

// Count returns the total number of companies.
func (c *Core) Count(ctx context.Context, filter QueryFilter) (int, error) {
	ctx, span := otel.AddSpan(ctx, "business.companybus.count")
	defer span.End()

	return c.storer.Count(ctx, filter)
}

// QueryByID finds the company by the specified ID.
func (c *Core) QueryByID(ctx context.Context, companyID uuid.UUID) (Company, error) {
	ctx, span := otel.AddSpan(ctx, "business.companybus.querybyid")
	defer span.End()

	cmp, err := c.storer.QueryByID(ctx, companyID)
	if err != nil {
		return Company{}, fmt.Errorf("query: companyID[%s]: %w", companyID, err)
	}

	return cmp, nil
}
