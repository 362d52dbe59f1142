// Package biapp maintains the app layer api for the BI provider.
package biapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/jcpaschoal/biadmin/app/sdk/errs"
	"github.com/jcpaschoal/biadmin/app/sdk/mid"
	"github.com/jcpaschoal/biadmin/business/domain/dashboardbus"
	"github.com/jcpaschoal/biadmin/business/domain/grantbus"
	"github.com/jcpaschoal/biadmin/business/domain/tenantbus"
	"github.com/jcpaschoal/biadmin/business/sdk/web"
	"github.com/jcpaschoal/biadmin/business/types/role"
	"github.com/jcpaschoal/biadmin/foundation/powerbi"
)

// Client is the behavior required from the BI provider.
type Client interface {
	ListWorkspaces(ctx context.Context) ([]powerbi.Workspace, error)
	ListReports(ctx context.Context, workspaceID string) ([]powerbi.Report, error)
	QueryReport(ctx context.Context, workspaceID string, reportID string) (powerbi.Report, error)
	GenerateEmbedToken(ctx context.Context, workspaceID string, reportID string, level powerbi.AccessLevel) (powerbi.EmbedToken, error)
}

type app struct {
	client       Client
	dashboardBus *dashboardbus.Core
	grantBus     *grantbus.Core
	tenantBus    *tenantbus.Core
}

func newApp(client Client, dashboardBus *dashboardbus.Core, grantBus *grantbus.Core, tenantBus *tenantbus.Core) *app {
	return &app{
		client:       client,
		dashboardBus: dashboardBus,
		grantBus:     grantBus,
		tenantBus:    tenantBus,
	}
}

func (a *app) workspaces(ctx context.Context, r *http.Request) web.Encoder {
	if a.client == nil {
		return toAppError(powerbi.ErrNotConfigured)
	}

	wss, err := a.client.ListWorkspaces(ctx)
	if err != nil {
		return toAppError(err)
	}

	return toAppWorkspaces(wss)
}

func (a *app) reports(ctx context.Context, r *http.Request) web.Encoder {
	if a.client == nil {
		return toAppError(powerbi.ErrNotConfigured)
	}

	rs, err := a.client.ListReports(ctx, web.Param(r, "workspace_id"))
	if err != nil {
		return toAppError(err)
	}

	return toAppReports(rs)
}

func (a *app) report(ctx context.Context, r *http.Request) web.Encoder {
	if a.client == nil {
		return toAppError(powerbi.ErrNotConfigured)
	}

	rpt, err := a.client.QueryReport(ctx, web.Param(r, "workspace_id"), web.Param(r, "report_id"))
	if err != nil {
		return toAppError(err)
	}

	return toAppReport(rpt)
}

func (a *app) reportEmbedToken(ctx context.Context, r *http.Request) web.Encoder {
	if a.client == nil {
		return toAppError(powerbi.ErrNotConfigured)
	}

	level, err := powerbi.ParseAccessLevel(r.URL.Query().Get("accessLevel"))
	if err != nil {
		return errs.NewFieldErrors("accessLevel", err)
	}

	tkn, err := a.client.GenerateEmbedToken(ctx, web.Param(r, "workspace_id"), web.Param(r, "report_id"), level)
	if err != nil {
		return toAppError(err)
	}

	return toAppEmbedToken(tkn)
}

// dashboardEmbedToken issues a view token for a stored dashboard. Admins may
// embed any dashboard. Users need a grant to an active dashboard of an
// active company.
func (a *app) dashboardEmbedToken(ctx context.Context, r *http.Request) web.Encoder {
	if a.client == nil {
		return toAppError(powerbi.ErrNotConfigured)
	}

	dashboardID, err := web.ParamUUID(r, "dashboard_id")
	if err != nil {
		return errs.NewFieldErrors("dashboard_id", err)
	}

	d, err := a.dashboardBus.QueryByID(ctx, dashboardID)
	if err != nil {
		return errs.FromBus(err, "querybyid: dashboardID[%s]", dashboardID)
	}

	if !isAdmin(ctx) {
		userID, err := mid.GetUserID(ctx)
		if err != nil {
			return errs.New(errs.Unauthenticated, err)
		}

		if _, err := a.grantBus.QueryByID(ctx, userID, d.ID); err != nil {
			if errors.Is(err, grantbus.ErrNotFound) {
				return errs.Errorf(errs.PermissionDenied, "dashboard is not granted to the user")
			}
			return errs.FromBus(err, "grant: userID[%s] dashboardID[%s]", userID, d.ID)
		}

		if !d.Active {
			return errs.New(errs.NotFound, dashboardbus.ErrNotFound)
		}

		if err := a.tenantBus.EnsureActive(ctx, d.CompanyID); err != nil {
			return errs.FromBus(err, "ensureactive: companyID[%s]", d.CompanyID)
		}
	}

	tkn, err := a.client.GenerateEmbedToken(ctx, d.WorkspaceRef.String(), d.ReportRef.String(), powerbi.View)
	if err != nil {
		return toAppError(err)
	}

	return toAppEmbedToken(tkn)
}

func isAdmin(ctx context.Context) bool {
	rle, err := role.Parse(mid.GetClaims(ctx).Role)
	if err != nil {
		return false
	}

	return rle.Equal(role.Admin)
}

func toAppError(err error) *errs.Error {
	var apiErr *powerbi.APIError

	switch {
	case errors.Is(err, powerbi.ErrNotConfigured):
		return errs.New(errs.Unavailable, err)
	case errors.Is(err, powerbi.ErrNotFound):
		return errs.New(errs.NotFound, err)
	case errors.Is(err, context.DeadlineExceeded):
		return errs.New(errs.Unavailable, err)
	case errors.As(err, &apiErr):
		if apiErr.StatusCode == http.StatusTooManyRequests {
			return errs.New(errs.ResourceExhausted, err)
		}
		return errs.New(errs.Unavailable, err)
	}

	return errs.Errorf(errs.InternalOnlyLog, "bi: %s", err)
}
