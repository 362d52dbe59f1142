// Package dashboardapp maintains the app layer api for the dashboard domain.
package dashboardapp

import (
	"context"
	"net/http"
	"strconv"

	"github.com/jcpaschoal/biadmin/app/sdk/errs"
	"github.com/jcpaschoal/biadmin/app/sdk/mid"
	"github.com/jcpaschoal/biadmin/app/sdk/query"
	"github.com/jcpaschoal/biadmin/business/domain/dashboardbus"
	"github.com/jcpaschoal/biadmin/business/domain/tenantbus"
	"github.com/jcpaschoal/biadmin/business/sdk/order"
	"github.com/jcpaschoal/biadmin/business/sdk/page"
	"github.com/jcpaschoal/biadmin/business/sdk/web"
)

type app struct {
	dashboardBus *dashboardbus.Core
	tenantBus    *tenantbus.Core
}

func newApp(dashboardBus *dashboardbus.Core, tenantBus *tenantbus.Core) *app {
	return &app{
		dashboardBus: dashboardBus,
		tenantBus:    tenantBus,
	}
}

func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewDashboard
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	nd, err := toBusNewDashboard(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	d, err := a.dashboardBus.Create(ctx, nd)
	if err != nil {
		return errs.FromBus(err, "create: companyID[%s] name[%s]", nd.CompanyID, nd.Name)
	}

	return toAppDashboard(d)
}

func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateDashboard
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	ud, err := toBusUpdateDashboard(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	d, resp := a.dashboard(ctx, r)
	if resp != nil {
		return resp
	}

	updD, err := a.dashboardBus.Update(ctx, d, ud)
	if err != nil {
		return errs.FromBus(err, "update: dashboardID[%s]", d.ID)
	}

	return toAppDashboard(updD)
}

// delete deactivates the dashboard, or removes it with its grants when
// hard=true is passed.
func (a *app) delete(ctx context.Context, r *http.Request) web.Encoder {
	hard, err := parseHard(r)
	if err != nil {
		return errs.NewFieldErrors("hard", err)
	}

	tx, err := mid.GetTran(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "transaction: %s", err)
	}

	tenantBus, err := a.tenantBus.NewWithTx(tx)
	if err != nil {
		return errs.Errorf(errs.Internal, "transaction: %s", err)
	}

	d, resp := a.dashboard(ctx, r)
	if resp != nil {
		return resp
	}

	if hard {
		if err := tenantBus.DeleteDashboard(ctx, d); err != nil {
			return errs.FromBus(err, "delete: dashboardID[%s]", d.ID)
		}
		return nil
	}

	if _, err := tenantBus.DeactivateDashboard(ctx, d); err != nil {
		return errs.FromBus(err, "deactivate: dashboardID[%s]", d.ID)
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

	orderBy, err := order.Parse(orderByFields, qp.OrderBy, dashboardbus.DefaultOrderBy)
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	ds, err := a.dashboardBus.Query(ctx, filter, orderBy, page)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: %s", err)
	}

	total, err := a.dashboardBus.Count(ctx, filter)
	if err != nil {
		return errs.Errorf(errs.Internal, "count: %s", err)
	}

	return query.NewResult(toAppDashboards(ds), total, page)
}

func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	d, resp := a.dashboard(ctx, r)
	if resp != nil {
		return resp
	}

	return toAppDashboard(d)
}

func (a *app) dashboard(ctx context.Context, r *http.Request) (dashboardbus.Dashboard, web.Encoder) {
	dashboardID, err := web.ParamUUID(r, "dashboard_id")
	if err != nil {
		return dashboardbus.Dashboard{}, errs.NewFieldErrors("dashboard_id", err)
	}

	d, err := a.dashboardBus.QueryByID(ctx, dashboardID)
	if err != nil {
		return dashboardbus.Dashboard{}, errs.FromBus(err, "querybyid: dashboardID[%s]", dashboardID)
	}

	return d, nil
}

func parseHard(r *http.Request) (bool, error) {
	v := r.URL.Query().Get("hard")
	if v == "" {
		return false, nil
	}

	return strconv.ParseBool(v)
}
