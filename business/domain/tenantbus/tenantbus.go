// Package tenantbus guards the lifecycle of a tenant's entities. It gates
// grant writes on company state and owns the soft and hard delete paths,
// recording an audit event before each of them.
package tenantbus

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jcpaschoal/biadmin/business/domain/companybus"
	"github.com/jcpaschoal/biadmin/business/domain/dashboardbus"
	"github.com/jcpaschoal/biadmin/business/domain/userbus"
	"github.com/jcpaschoal/biadmin/business/sdk/audit"
	"github.com/jcpaschoal/biadmin/business/sdk/sqldb"
	"github.com/jcpaschoal/biadmin/foundation/logger"
	"github.com/jcpaschoal/biadmin/foundation/otel"
)

// ErrInactive is returned when an operation targets a deactivated company.
var ErrInactive = errors.New("company is inactive")

// Storer declares the cross entity queries the guard needs.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	CountCompanyDependents(ctx context.Context, companyID uuid.UUID) (Dependents, error)
	CountUserGrants(ctx context.Context, userID uuid.UUID) (int, error)
	CountDashboardGrants(ctx context.Context, dashboardID uuid.UUID) (int, error)
	DeleteCompanyGrants(ctx context.Context, companyID uuid.UUID) error
	DeleteUserGrants(ctx context.Context, userID uuid.UUID) error
	DeleteDashboardGrants(ctx context.Context, dashboardID uuid.UUID) error
}

// Core manages the set of APIs for tenant lifecycle.
type Core struct {
	log          *logger.Logger
	auditor      audit.Recorder
	companyBus   *companybus.Core
	userBus      *userbus.Core
	dashboardBus *dashboardbus.Core
	storer       Storer
}

// NewCore constructs a tenant lifecycle core for use.
func NewCore(log *logger.Logger, auditor audit.Recorder, companyBus *companybus.Core, userBus *userbus.Core, dashboardBus *dashboardbus.Core, storer Storer) *Core {
	return &Core{
		log:          log,
		auditor:      auditor,
		companyBus:   companyBus,
		userBus:      userBus,
		dashboardBus: dashboardBus,
		storer:       storer,
	}
}

// NewWithTx constructs a new Core value where every store related call runs
// inside the specified transaction. The auditor is left untouched.
func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, fmt.Errorf("newWithTx: %w", err)
	}

	companyBus, err := c.companyBus.NewWithTx(tx)
	if err != nil {
		return nil, fmt.Errorf("newWithTx: %w", err)
	}

	userBus, err := c.userBus.NewWithTx(tx)
	if err != nil {
		return nil, fmt.Errorf("newWithTx: %w", err)
	}

	dashboardBus, err := c.dashboardBus.NewWithTx(tx)
	if err != nil {
		return nil, fmt.Errorf("newWithTx: %w", err)
	}

	return NewCore(c.log, c.auditor, companyBus, userBus, dashboardBus, storer), nil
}

// EnsureActive returns nil when the company exists and is active.
func (c *Core) EnsureActive(ctx context.Context, companyID uuid.UUID) error {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.ensureactive")
	defer span.End()

	cmp, err := c.companyBus.QueryByID(ctx, companyID)
	if err != nil {
		return err
	}

	if !cmp.Active {
		return fmt.Errorf("companyID[%s]: %w", companyID, ErrInactive)
	}

	return nil
}

// =============================================================================
// Soft deletes

// DeactivateCompany marks the company inactive. Its users, dashboards and
// grants are left in place.
func (c *Core) DeactivateCompany(ctx context.Context, cmp companybus.Company) (companybus.Company, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.deactivatecompany")
	defer span.End()

	if err := c.record(ctx, audit.OpDeactivate, audit.KindCompany, cmp.ID, nil); err != nil {
		return companybus.Company{}, err
	}

	active := false
	cmp, err := c.companyBus.Update(ctx, cmp, companybus.UpdateCompany{Active: &active})
	if err != nil {
		return companybus.Company{}, fmt.Errorf("deactivate: %w", err)
	}

	return cmp, nil
}

// DeactivateUser marks the user inactive. Grants are kept but the user no
// longer shows up in grant listings.
func (c *Core) DeactivateUser(ctx context.Context, usr userbus.User) (userbus.User, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.deactivateuser")
	defer span.End()

	if err := c.record(ctx, audit.OpDeactivate, audit.KindUser, usr.ID, nil); err != nil {
		return userbus.User{}, err
	}

	active := false
	usr, err := c.userBus.Update(ctx, usr, userbus.UpdateUser{Active: &active})
	if err != nil {
		return userbus.User{}, fmt.Errorf("deactivate: %w", err)
	}

	return usr, nil
}

// DeactivateDashboard marks the dashboard inactive. Grants are kept but the
// dashboard no longer shows up in grant listings.
func (c *Core) DeactivateDashboard(ctx context.Context, d dashboardbus.Dashboard) (dashboardbus.Dashboard, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.deactivatedashboard")
	defer span.End()

	if err := c.record(ctx, audit.OpDeactivate, audit.KindDashboard, d.ID, nil); err != nil {
		return dashboardbus.Dashboard{}, err
	}

	active := false
	d, err := c.dashboardBus.Update(ctx, d, dashboardbus.UpdateDashboard{Active: &active})
	if err != nil {
		return dashboardbus.Dashboard{}, fmt.Errorf("deactivate: %w", err)
	}

	return d, nil
}

// =============================================================================
// Hard deletes

// DeleteCompany removes the company together with its users, dashboards and
// every grant that references them. The cascade is audited first and an
// audit failure leaves everything in place. Callers run this inside a
// transaction so a partial cascade is never committed.
func (c *Core) DeleteCompany(ctx context.Context, cmp companybus.Company) (Dependents, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.deletecompany")
	defer span.End()

	deps, err := c.storer.CountCompanyDependents(ctx, cmp.ID)
	if err != nil {
		return Dependents{}, fmt.Errorf("count dependents: %w", err)
	}

	if err := c.record(ctx, audit.OpCascadeDelete, audit.KindCompany, cmp.ID, deps.detail()); err != nil {
		return Dependents{}, err
	}

	if err := c.storer.DeleteCompanyGrants(ctx, cmp.ID); err != nil {
		return Dependents{}, fmt.Errorf("delete grants: %w", err)
	}

	if err := c.companyBus.Delete(ctx, cmp); err != nil {
		return Dependents{}, fmt.Errorf("delete company: %w", err)
	}

	c.log.Info(ctx, "tenantbus: company deleted", "companyID", cmp.ID, "users", deps.Users, "dashboards", deps.Dashboards, "grants", deps.Grants)

	return deps, nil
}

// DeleteUser removes the user and the grants it holds.
func (c *Core) DeleteUser(ctx context.Context, usr userbus.User) error {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.deleteuser")
	defer span.End()

	n, err := c.storer.CountUserGrants(ctx, usr.ID)
	if err != nil {
		return fmt.Errorf("count grants: %w", err)
	}

	if err := c.record(ctx, audit.OpDelete, audit.KindUser, usr.ID, map[string]any{"grants": n}); err != nil {
		return err
	}

	if err := c.storer.DeleteUserGrants(ctx, usr.ID); err != nil {
		return fmt.Errorf("delete grants: %w", err)
	}

	if err := c.userBus.Delete(ctx, usr); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	return nil
}

// DeleteDashboard removes the dashboard and the grants that reference it.
func (c *Core) DeleteDashboard(ctx context.Context, d dashboardbus.Dashboard) error {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.deletedashboard")
	defer span.End()

	n, err := c.storer.CountDashboardGrants(ctx, d.ID)
	if err != nil {
		return fmt.Errorf("count grants: %w", err)
	}

	if err := c.record(ctx, audit.OpDelete, audit.KindDashboard, d.ID, map[string]any{"grants": n}); err != nil {
		return err
	}

	if err := c.storer.DeleteDashboardGrants(ctx, d.ID); err != nil {
		return fmt.Errorf("delete grants: %w", err)
	}

	if err := c.dashboardBus.Delete(ctx, d); err != nil {
		return fmt.Errorf("delete dashboard: %w", err)
	}

	return nil
}

func (c *Core) record(ctx context.Context, op string, kind string, id uuid.UUID, detail map[string]any) error {
	if err := c.auditor.Record(ctx, audit.NewEvent(op, kind, id, detail)); err != nil {
		return fmt.Errorf("audit %s %s[%s]: %w", op, kind, id, err)
	}

	return nil
}
