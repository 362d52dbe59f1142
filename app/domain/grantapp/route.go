package grantapp

import (
	"net/http"

	"github.com/jcpaschoal/biadmin/app/sdk/auth"
	"github.com/jcpaschoal/biadmin/app/sdk/mid"
	"github.com/jcpaschoal/biadmin/business/domain/grantbus"
	"github.com/jcpaschoal/biadmin/business/sdk/web"
	"github.com/jcpaschoal/biadmin/business/types/resource"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth     *auth.Auth
	GrantBus *grantbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	authorize := mid.Authorize(cfg.Auth, resource.Grant)
	authorizeMe := mid.Authorize(cfg.Auth, resource.Me)

	api := newApp(cfg.GrantBus)

	app.HandlerFunc(http.MethodGet, version, "/grants", api.query, authen, authorize)
	app.HandlerFunc(http.MethodPost, version, "/grants", api.create, authen, authorize)
	app.HandlerFunc(http.MethodDelete, version, "/grants/{user_id}/{dashboard_id}", api.delete, authen, authorize)

	app.HandlerFunc(http.MethodGet, version, "/users/{user_id}/dashboards", api.userDashboards, authen, authorize)
	app.HandlerFunc(http.MethodGet, version, "/dashboards/{dashboard_id}/users", api.dashboardUsers, authen, authorize)
	app.HandlerFunc(http.MethodGet, version, "/me/dashboards", api.myDashboards, authen, authorizeMe)

	app.HandlerFunc(http.MethodPost, version, "/grants/bulk/user", api.bulkUser, authen, authorize)
	app.HandlerFunc(http.MethodPost, version, "/grants/bulk/dashboard", api.bulkDashboard, authen, authorize)
	app.HandlerFunc(http.MethodPost, version, "/companies/{company_id}/grants/bulk/user", api.companyBulkUser, authen, authorize)
	app.HandlerFunc(http.MethodPost, version, "/companies/{company_id}/grants/bulk/dashboard", api.companyBulkDashboard, authen, authorize)
}
