// Package userapp maintains the app layer api for the user domain.
package userapp

import (
	"context"
	"net/http"
	"strconv"

	"github.com/jcpaschoal/biadmin/app/sdk/errs"
	"github.com/jcpaschoal/biadmin/app/sdk/mid"
	"github.com/jcpaschoal/biadmin/app/sdk/query"
	"github.com/jcpaschoal/biadmin/business/domain/tenantbus"
	"github.com/jcpaschoal/biadmin/business/domain/userbus"
	"github.com/jcpaschoal/biadmin/business/sdk/order"
	"github.com/jcpaschoal/biadmin/business/sdk/page"
	"github.com/jcpaschoal/biadmin/business/sdk/web"
)

type app struct {
	userBus   *userbus.Core
	tenantBus *tenantbus.Core
}

func newApp(userBus *userbus.Core, tenantBus *tenantbus.Core) *app {
	return &app{
		userBus:   userBus,
		tenantBus: tenantBus,
	}
}

func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewUser
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	nu, err := toBusNewUser(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	usr, err := a.userBus.Create(ctx, nu)
	if err != nil {
		return errs.FromBus(err, "create: email[%s]", nu.Email.Address)
	}

	return toAppUser(usr)
}

func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateUser
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	uu, err := toBusUpdateUser(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	usr, resp := a.user(ctx, r)
	if resp != nil {
		return resp
	}

	updUsr, err := a.userBus.Update(ctx, usr, uu)
	if err != nil {
		return errs.FromBus(err, "update: userID[%s]", usr.ID)
	}

	return toAppUser(updUsr)
}

// delete deactivates the user, or removes it with its grants when
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

	usr, resp := a.user(ctx, r)
	if resp != nil {
		return resp
	}

	switch hard {
	case true:
		err = tenantBus.DeleteUser(ctx, usr)
	default:
		_, err = tenantBus.DeactivateUser(ctx, usr)
	}

	if err != nil {
		return errs.FromBus(err, "delete: userID[%s] hard[%t]", usr.ID, hard)
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

	orderBy, err := order.Parse(orderByFields, qp.OrderBy, userbus.DefaultOrderBy)
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	usrs, err := a.userBus.Query(ctx, filter, orderBy, page)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: %s", err)
	}

	total, err := a.userBus.Count(ctx, filter)
	if err != nil {
		return errs.Errorf(errs.Internal, "count: %s", err)
	}

	return query.NewResult(toAppUsers(usrs), total, page)
}

func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	usr, resp := a.user(ctx, r)
	if resp != nil {
		return resp
	}

	return toAppUser(usr)
}

func (a *app) user(ctx context.Context, r *http.Request) (userbus.User, web.Encoder) {
	userID, err := web.ParamUUID(r, "user_id")
	if err != nil {
		return userbus.User{}, errs.NewFieldErrors("user_id", err)
	}

	usr, err := a.userBus.QueryByID(ctx, userID)
	if err != nil {
		return userbus.User{}, errs.FromBus(err, "querybyid: userID[%s]", userID)
	}

	return usr, nil
}

func parseHard(r *http.Request) (bool, error) {
	v := r.URL.Query().Get("hard")
	if v == "" {
		return false, nil
	}

	return strconv.ParseBool(v)
}
