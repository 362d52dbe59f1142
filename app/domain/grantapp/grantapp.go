// Package grantapp maintains the app layer api for dashboard grants.
package grantapp

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/jcpaschoal/biadmin/app/sdk/errs"
	"github.com/jcpaschoal/biadmin/app/sdk/metrics"
	"github.com/jcpaschoal/biadmin/app/sdk/mid"
	"github.com/jcpaschoal/biadmin/app/sdk/query"
	"github.com/jcpaschoal/biadmin/business/domain/dashboardbus"
	"github.com/jcpaschoal/biadmin/business/domain/grantbus"
	"github.com/jcpaschoal/biadmin/business/domain/userbus"
	"github.com/jcpaschoal/biadmin/business/sdk/order"
	"github.com/jcpaschoal/biadmin/business/sdk/page"
	"github.com/jcpaschoal/biadmin/business/sdk/web"
	"github.com/jcpaschoal/biadmin/business/types/outcome"
)

type app struct {
	grantBus *grantbus.Core
}

func newApp(grantBus *grantbus.Core) *app {
	return &app{
		grantBus: grantBus,
	}
}

func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewGrant
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	userID, err := uuid.Parse(app.UserID)
	if err != nil {
		return errs.NewFieldErrors("userID", err)
	}

	dashboardID, err := uuid.Parse(app.DashboardID)
	if err != nil {
		return errs.NewFieldErrors("dashboardID", err)
	}

	g, err := a.grantBus.Create(ctx, userID, dashboardID)
	if err != nil {
		return errs.FromBus(err, "create: userID[%s] dashboardID[%s]", userID, dashboardID)
	}

	return toAppGrant(g)
}

func (a *app) delete(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := web.ParamUUID(r, "user_id")
	if err != nil {
		return errs.NewFieldErrors("user_id", err)
	}

	dashboardID, err := web.ParamUUID(r, "dashboard_id")
	if err != nil {
		return errs.NewFieldErrors("dashboard_id", err)
	}

	if err := a.grantBus.Remove(ctx, userID, dashboardID); err != nil {
		return errs.FromBus(err, "remove: userID[%s] dashboardID[%s]", userID, dashboardID)
	}

	return nil
}

func (a *app) query(ctx context.Context, r *http.Request) web.Encoder {
	qp := parseQueryParams(r)

	page, err := page.Parse(qp.Page, qp.Rows)
	if err != nil {
		return errs.NewFieldErrors("page", err)
	}

	filter, err := parseFilter(qp)
	if err != nil {
		return err.(*errs.Error)
	}

	orderBy, err := order.Parse(orderByFields, qp.OrderBy, grantbus.DefaultOrderBy)
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	grants, err := a.grantBus.Query(ctx, filter, orderBy, page)
	if err != nil {
		return errs.FromBus(err, "query")
	}

	total, err := a.grantBus.Count(ctx, filter)
	if err != nil {
		return errs.FromBus(err, "count")
	}

	return query.NewResult(toAppGrants(grants), total, page)
}

// =============================================================================

func (a *app) userDashboards(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := web.ParamUUID(r, "user_id")
	if err != nil {
		return errs.NewFieldErrors("user_id", err)
	}

	return a.dashboardsOf(ctx, r, userID)
}

func (a *app) myDashboards(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	return a.dashboardsOf(ctx, r, userID)
}

func (a *app) dashboardsOf(ctx context.Context, r *http.Request, userID uuid.UUID) web.Encoder {
	qp := parseQueryParams(r)

	page, err := page.Parse(qp.Page, qp.Rows)
	if err != nil {
		return errs.NewFieldErrors("page", err)
	}

	orderBy, err := order.Parse(dashboardOrderByFields, qp.OrderBy, order.NewBy(dashboardbus.OrderByName, order.ASC))
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	ds, err := a.grantBus.QueryDashboardsByUser(ctx, userID, orderBy, page)
	if err != nil {
		return errs.FromBus(err, "querydashboardsbyuser: userID[%s]", userID)
	}

	total, err := a.grantBus.CountDashboardsByUser(ctx, userID)
	if err != nil {
		return errs.FromBus(err, "countdashboardsbyuser: userID[%s]", userID)
	}

	return query.NewResult(toAppDashboards(ds), total, page)
}

func (a *app) dashboardUsers(ctx context.Context, r *http.Request) web.Encoder {
	dashboardID, err := web.ParamUUID(r, "dashboard_id")
	if err != nil {
		return errs.NewFieldErrors("dashboard_id", err)
	}

	qp := parseQueryParams(r)

	page, err := page.Parse(qp.Page, qp.Rows)
	if err != nil {
		return errs.NewFieldErrors("page", err)
	}

	orderBy, err := order.Parse(userOrderByFields, qp.OrderBy, order.NewBy(userbus.OrderByEmail, order.ASC))
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	usrs, err := a.grantBus.QueryUsersByDashboard(ctx, dashboardID, orderBy, page)
	if err != nil {
		return errs.FromBus(err, "queryusersbydashboard: dashboardID[%s]", dashboardID)
	}

	total, err := a.grantBus.CountUsersByDashboard(ctx, dashboardID)
	if err != nil {
		return errs.FromBus(err, "countusersbydashboard: dashboardID[%s]", dashboardID)
	}

	return query.NewResult(toAppUsers(usrs), total, page)
}

// =============================================================================

func (a *app) bulkUser(ctx context.Context, r *http.Request) web.Encoder {
	userID, dashboardIDs, resp := decodeBulkUser(r)
	if resp != nil {
		return resp
	}

	rpt, err := a.grantBus.AssignDashboardsToUser(ctx, userID, dashboardIDs)
	if err != nil {
		return errs.FromBus(err, "assigndashboardstouser: userID[%s]", userID)
	}

	return report(ctx, rpt)
}

func (a *app) bulkDashboard(ctx context.Context, r *http.Request) web.Encoder {
	dashboardID, userIDs, resp := decodeBulkDashboard(r)
	if resp != nil {
		return resp
	}

	rpt, err := a.grantBus.AssignUsersToDashboard(ctx, dashboardID, userIDs)
	if err != nil {
		return errs.FromBus(err, "assignuserstodashboard: dashboardID[%s]", dashboardID)
	}

	return report(ctx, rpt)
}

func (a *app) companyBulkUser(ctx context.Context, r *http.Request) web.Encoder {
	companyID, err := web.ParamUUID(r, "company_id")
	if err != nil {
		return errs.NewFieldErrors("company_id", err)
	}

	userID, dashboardIDs, resp := decodeBulkUser(r)
	if resp != nil {
		return resp
	}

	rpt, err := a.grantBus.AssignCompanyDashboardsToUser(ctx, companyID, userID, dashboardIDs)
	if err != nil {
		return errs.FromBus(err, "assigncompanydashboardstouser: companyID[%s] userID[%s]", companyID, userID)
	}

	return report(ctx, rpt)
}

func (a *app) companyBulkDashboard(ctx context.Context, r *http.Request) web.Encoder {
	companyID, err := web.ParamUUID(r, "company_id")
	if err != nil {
		return errs.NewFieldErrors("company_id", err)
	}

	dashboardID, userIDs, resp := decodeBulkDashboard(r)
	if resp != nil {
		return resp
	}

	rpt, err := a.grantBus.AssignDashboardToCompanyUsers(ctx, companyID, dashboardID, userIDs)
	if err != nil {
		return errs.FromBus(err, "assigndashboardtocompanyusers: companyID[%s] dashboardID[%s]", companyID, dashboardID)
	}

	return report(ctx, rpt)
}

func decodeBulkUser(r *http.Request) (uuid.UUID, []uuid.UUID, *errs.Error) {
	var app BulkUser
	if err := web.Decode(r, &app); err != nil {
		return uuid.Nil, nil, errs.New(errs.InvalidArgument, err)
	}

	userID, err := uuid.Parse(app.UserID)
	if err != nil {
		return uuid.Nil, nil, errs.NewFieldErrors("userID", err)
	}

	dashboardIDs, err := parseIDs(app.DashboardIDs)
	if err != nil {
		return uuid.Nil, nil, errs.NewFieldErrors("dashboardIDs", err)
	}

	return userID, dashboardIDs, nil
}

func decodeBulkDashboard(r *http.Request) (uuid.UUID, []uuid.UUID, *errs.Error) {
	var app BulkDashboard
	if err := web.Decode(r, &app); err != nil {
		return uuid.Nil, nil, errs.New(errs.InvalidArgument, err)
	}

	dashboardID, err := uuid.Parse(app.DashboardID)
	if err != nil {
		return uuid.Nil, nil, errs.NewFieldErrors("dashboardID", err)
	}

	userIDs, err := parseIDs(app.UserIDs)
	if err != nil {
		return uuid.Nil, nil, errs.NewFieldErrors("userIDs", err)
	}

	return dashboardID, userIDs, nil
}

func report(ctx context.Context, rpt grantbus.Report) Report {
	app := toAppReport(rpt)

	metrics.AddBulkOutcome(ctx, outcome.Created.String(), app.Created)
	metrics.AddBulkOutcome(ctx, outcome.Skipped.String(), app.Skipped)
	metrics.AddBulkOutcome(ctx, outcome.Errored.String(), app.Errored)

	return app
}
