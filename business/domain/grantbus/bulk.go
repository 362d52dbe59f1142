package grantbus

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jcpaschoal/biadmin/business/domain/dashboardbus"
	"github.com/jcpaschoal/biadmin/business/domain/userbus"
	"github.com/jcpaschoal/biadmin/business/types/outcome"
	"github.com/jcpaschoal/biadmin/foundation/otel"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of one item of a bulk assignment. ID is the item id
// from the input list, never the anchor.
type Result struct {
	ID      uuid.UUID
	Outcome outcome.Outcome
	Err     error
}

// Report holds the per item results of a bulk assignment in input order.
type Report struct {
	Results []Result
}

// Created returns the items that produced a new grant.
func (r Report) Created() []Result {
	return r.filter(outcome.Created)
}

// Skipped returns the items whose grant already existed.
func (r Report) Skipped() []Result {
	return r.filter(outcome.Skipped)
}

// Errored returns the items that failed.
func (r Report) Errored() []Result {
	return r.filter(outcome.Errored)
}

func (r Report) filter(o outcome.Outcome) []Result {
	var results []Result
	for _, res := range r.Results {
		if res.Outcome.Equal(o) {
			results = append(results, res)
		}
	}

	return results
}

// =============================================================================

// AssignDashboardsToUser grants the user every dashboard in the list. Ids
// that do not resolve are reported as errored items.
func (c *Core) AssignDashboardsToUser(ctx context.Context, userID uuid.UUID, dashboardIDs []uuid.UUID) (Report, error) {
	ctx, span := otel.AddSpan(ctx, "business.grantbus.assigndashboardstouser")
	defer span.End()

	// The lookups share one bound, each item gets its own in create.
	pctx, cancel := c.bound(ctx)
	defer cancel()

	usr, err := c.activeUser(pctx, userID)
	if err != nil {
		return Report{}, err
	}

	dashboards, err := c.dashboardsByID(pctx, dashboardIDs)
	if err != nil {
		return Report{}, err
	}

	// Every company touched by the call must be active before any write.
	seen := make(map[uuid.UUID]struct{})
	for _, id := range dashboardIDs {
		dsh, exists := dashboards[id]
		if !exists {
			continue
		}
		if _, done := seen[dsh.CompanyID]; done {
			continue
		}
		seen[dsh.CompanyID] = struct{}{}

		if err := c.tenantBus.EnsureActive(pctx, dsh.CompanyID); err != nil {
			return Report{}, err
		}
	}

	return c.run(ctx, dashboardIDs, func(ctx context.Context, id uuid.UUID) error {
		dsh, exists := dashboards[id]
		if !exists {
			return fmt.Errorf("dashboardID[%s]: %w", id, dashboardbus.ErrNotFound)
		}

		_, err := c.create(ctx, usr, dsh)
		return err
	}), nil
}

// AssignUsersToDashboard grants every user in the list the dashboard. Ids
// that do not resolve are reported as errored items.
func (c *Core) AssignUsersToDashboard(ctx context.Context, dashboardID uuid.UUID, userIDs []uuid.UUID) (Report, error) {
	ctx, span := otel.AddSpan(ctx, "business.grantbus.assignuserstodashboard")
	defer span.End()

	pctx, cancel := c.bound(ctx)
	defer cancel()

	dsh, err := c.activeDashboard(pctx, dashboardID)
	if err != nil {
		return Report{}, err
	}

	if err := c.tenantBus.EnsureActive(pctx, dsh.CompanyID); err != nil {
		return Report{}, err
	}

	users, err := c.usersByID(pctx, userIDs)
	if err != nil {
		return Report{}, err
	}

	return c.run(ctx, userIDs, func(ctx context.Context, id uuid.UUID) error {
		usr, exists := users[id]
		if !exists {
			return fmt.Errorf("userID[%s]: %w", id, userbus.ErrNotFound)
		}

		_, err := c.create(ctx, usr, dsh)
		return err
	}), nil
}

// AssignCompanyDashboardsToUser grants the user the listed dashboards of the
// company. The user must be attached to the company, and every dashboard must
// exist, be active and belong to it, otherwise nothing is written.
func (c *Core) AssignCompanyDashboardsToUser(ctx context.Context, companyID uuid.UUID, userID uuid.UUID, dashboardIDs []uuid.UUID) (Report, error) {
	ctx, span := otel.AddSpan(ctx, "business.grantbus.assigncompanydashboardstouser")
	defer span.End()

	pctx, cancel := c.bound(ctx)
	defer cancel()

	if err := c.tenantBus.EnsureActive(pctx, companyID); err != nil {
		return Report{}, err
	}

	usr, err := c.activeUser(pctx, userID)
	if err != nil {
		return Report{}, err
	}

	if !usr.MemberOf(companyID) {
		return Report{}, fmt.Errorf("userID[%s] companyID[%s]: %w", userID, companyID, ErrTenantMismatch)
	}

	dashboards, err := c.dashboardsByID(pctx, dashboardIDs)
	if err != nil {
		return Report{}, err
	}

	for _, id := range dashboardIDs {
		dsh, exists := dashboards[id]
		switch {
		case !exists:
			return Report{}, fmt.Errorf("dashboardID[%s]: %w", id, dashboardbus.ErrNotFound)
		case dsh.CompanyID != companyID:
			return Report{}, fmt.Errorf("dashboardID[%s] companyID[%s]: %w", id, companyID, ErrTenantMismatch)
		case !dsh.Active:
			return Report{}, fmt.Errorf("dashboardID[%s]: %w", id, ErrInactive)
		}
	}

	return c.run(ctx, dashboardIDs, func(ctx context.Context, id uuid.UUID) error {
		_, err := c.create(ctx, usr, dashboards[id])
		return err
	}), nil
}

// AssignDashboardToCompanyUsers grants the listed users of the company the
// dashboard. Every user must exist, be active and be attached to the
// company, otherwise nothing is written. Users without a company fail the
// check.
func (c *Core) AssignDashboardToCompanyUsers(ctx context.Context, companyID uuid.UUID, dashboardID uuid.UUID, userIDs []uuid.UUID) (Report, error) {
	ctx, span := otel.AddSpan(ctx, "business.grantbus.assigndashboardtocompanyusers")
	defer span.End()

	pctx, cancel := c.bound(ctx)
	defer cancel()

	if err := c.tenantBus.EnsureActive(pctx, companyID); err != nil {
		return Report{}, err
	}

	dsh, err := c.activeDashboard(pctx, dashboardID)
	if err != nil {
		return Report{}, err
	}

	if dsh.CompanyID != companyID {
		return Report{}, fmt.Errorf("dashboardID[%s] companyID[%s]: %w", dashboardID, companyID, ErrTenantMismatch)
	}

	users, err := c.usersByID(pctx, userIDs)
	if err != nil {
		return Report{}, err
	}

	for _, id := range userIDs {
		usr, exists := users[id]
		switch {
		case !exists:
			return Report{}, fmt.Errorf("userID[%s]: %w", id, userbus.ErrNotFound)
		case !usr.MemberOf(companyID):
			return Report{}, fmt.Errorf("userID[%s] companyID[%s]: %w", id, companyID, ErrTenantMismatch)
		case !usr.Active:
			return Report{}, fmt.Errorf("userID[%s]: %w", id, ErrInactive)
		}
	}

	return c.run(ctx, userIDs, func(ctx context.Context, id uuid.UUID) error {
		_, err := c.create(ctx, users[id], dsh)
		return err
	}), nil
}

// =============================================================================

// run attempts fn for every id and never stops early. Each result lands in
// the slot of its input index.
func (c *Core) run(ctx context.Context, ids []uuid.UUID, fn func(ctx context.Context, id uuid.UUID) error) Report {
	results := make([]Result, len(ids))

	var g errgroup.Group
	g.SetLimit(c.bulkLimit)

	for i, id := range ids {
		g.Go(func() error {
			err := fn(ctx, id)
			results[i] = Result{
				ID:      id,
				Outcome: classify(err),
				Err:     err,
			}
			return nil
		})
	}

	g.Wait()

	rpt := Report{Results: results}

	c.log.Info(ctx, "grantbus: bulk", "items", len(ids), "created", len(rpt.Created()), "skipped", len(rpt.Skipped()), "errored", len(rpt.Errored()))

	return rpt
}

func classify(err error) outcome.Outcome {
	switch {
	case err == nil:
		return outcome.Created
	case errors.Is(err, ErrConflict):
		return outcome.Skipped
	default:
		return outcome.Errored
	}
}

func (c *Core) activeUser(ctx context.Context, userID uuid.UUID) (userbus.User, error) {
	usr, err := c.userBus.QueryByID(ctx, userID)
	if err != nil {
		return userbus.User{}, err
	}

	if !usr.Active {
		return userbus.User{}, fmt.Errorf("userID[%s]: %w", userID, ErrInactive)
	}

	return usr, nil
}

func (c *Core) activeDashboard(ctx context.Context, dashboardID uuid.UUID) (dashboardbus.Dashboard, error) {
	dsh, err := c.dashboardBus.QueryByID(ctx, dashboardID)
	if err != nil {
		return dashboardbus.Dashboard{}, err
	}

	if !dsh.Active {
		return dashboardbus.Dashboard{}, fmt.Errorf("dashboardID[%s]: %w", dashboardID, ErrInactive)
	}

	return dsh, nil
}

func (c *Core) dashboardsByID(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]dashboardbus.Dashboard, error) {
	ds, err := c.dashboardBus.QueryByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	m := make(map[uuid.UUID]dashboardbus.Dashboard, len(ds))
	for _, d := range ds {
		m[d.ID] = d
	}

	return m, nil
}

func (c *Core) usersByID(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]userbus.User, error) {
	us, err := c.userBus.QueryByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	m := make(map[uuid.UUID]userbus.User, len(us))
	for _, u := range us {
		m[u.ID] = u
	}

	return m, nil
}
