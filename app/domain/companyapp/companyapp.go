// Package companyapp maintains the app layer api for the company domain.
package companyapp

import (
	"context"
	"net/http"
	"strconv"

	"github.com/jcpaschoal/biadmin/app/sdk/errs"
	"github.com/jcpaschoal/biadmin/app/sdk/mid"
	"github.com/jcpaschoal/biadmin/app/sdk/query"
	"github.com/jcpaschoal/biadmin/business/domain/companybus"
	"github.com/jcpaschoal/biadmin/business/domain/tenantbus"
	"github.com/jcpaschoal/biadmin/business/sdk/order"
	"github.com/jcpaschoal/biadmin/business/sdk/page"
	"github.com/jcpaschoal/biadmin/business/sdk/web"
)

type app struct {
	companyBus *companybus.Core
	tenantBus  *tenantbus.Core
}

func newApp(companyBus *companybus.Core, tenantBus *tenantbus.Core) *app {
	return &app{
		companyBus: companyBus,
		tenantBus:  tenantBus,
	}
}

func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewCompany
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	nc, err := toBusNewCompany(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	cmp, err := a.companyBus.Create(ctx, nc)
	if err != nil {
		return errs.FromBus(err, "create: cmp[%+v]", nc)
	}

	return toAppCompany(cmp)
}

func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateCompany
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	uc, err := toBusUpdateCompany(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	cmp, resp := a.company(ctx, r)
	if resp != nil {
		return resp
	}

	updCmp, err := a.companyBus.Update(ctx, cmp, uc)
	if err != nil {
		return errs.FromBus(err, "update: companyID[%s] uc[%+v]", cmp.ID, uc)
	}

	return toAppCompany(updCmp)
}

// delete deactivates the company, or removes it with everything it owns
// when hard=true is passed.
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

	cmp, resp := a.company(ctx, r)
	if resp != nil {
		return resp
	}

	if !hard {
		if _, err := tenantBus.DeactivateCompany(ctx, cmp); err != nil {
			return errs.FromBus(err, "deactivate: companyID[%s]", cmp.ID)
		}
		return nil
	}

	deps, err := tenantBus.DeleteCompany(ctx, cmp)
	if err != nil {
		return errs.FromBus(err, "delete: companyID[%s]", cmp.ID)
	}

	return Deleted{
		ID:         cmp.ID.String(),
		Users:      deps.Users,
		Dashboards: deps.Dashboards,
		Grants:     deps.Grants,
	}
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

	orderBy, err := order.Parse(orderByFields, qp.OrderBy, companybus.DefaultOrderBy)
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	cmps, err := a.companyBus.Query(ctx, filter, orderBy, page)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: %s", err)
	}

	total, err := a.companyBus.Count(ctx, filter)
	if err != nil {
		return errs.Errorf(errs.Internal, "count: %s", err)
	}

	return query.NewResult(toAppCompanies(cmps), total, page)
}

func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	cmp, resp := a.company(ctx, r)
	if resp != nil {
		return resp
	}

	return toAppCompany(cmp)
}

// company loads the company named by the path.
func (a *app) company(ctx context.Context, r *http.Request) (companybus.Company, web.Encoder) {
	companyID, err := web.ParamUUID(r, "company_id")
	if err != nil {
		return companybus.Company{}, errs.NewFieldErrors("company_id", err)
	}

	cmp, err := a.companyBus.QueryByID(ctx, companyID)
	if err != nil {
		return companybus.Company{}, errs.FromBus(err, "querybyid: companyID[%s]", companyID)
	}

	return cmp, nil
}

func parseHard(r *http.Request) (bool, error) {
	v := r.URL.Query().Get("hard")
	if v == "" {
		return false, nil
	}

	return strconv.ParseBool(v)
}
