package biapp

import (
	"net/http"

	"github.com/jcpaschoal/biadmin/app/sdk/auth"
	"github.com/jcpaschoal/biadmin/app/sdk/mid"
	"github.com/jcpaschoal/biadmin/business/domain/dashboardbus"
	"github.com/jcpaschoal/biadmin/business/domain/grantbus"
	"github.com/jcpaschoal/biadmin/business/domain/tenantbus"
	"github.com/jcpaschoal/biadmin/business/sdk/web"
	"github.com/jcpaschoal/biadmin/business/types/resource"
)

// Config contains all the mandatory systems required by handlers. A nil
// Client answers every route with Unavailable.
type Config struct {
	Auth         *auth.Auth
	Client       Client
	DashboardBus *dashboardbus.Core
	GrantBus     *grantbus.Core
	TenantBus    *tenantbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	authorize := mid.Authorize(cfg.Auth, resource.Report)
	authorizeEmbed := mid.Authorize(cfg.Auth, resource.Embed)

	api := newApp(cfg.Client, cfg.DashboardBus, cfg.GrantBus, cfg.TenantBus)

	app.HandlerFunc(http.MethodGet, version, "/bi/workspaces", api.workspaces, authen, authorize)
	app.HandlerFunc(http.MethodGet, version, "/bi/workspaces/{workspace_id}/reports", api.reports, authen, authorize)
	app.HandlerFunc(http.MethodGet, version, "/bi/workspaces/{workspace_id}/reports/{report_id}", api.report, authen, authorize)
	app.HandlerFunc(http.MethodGet, version, "/bi/workspaces/{workspace_id}/reports/{report_id}/embed-token", api.reportEmbedToken, authen, authorize)
	app.HandlerFunc(http.MethodGet, version, "/dashboards/{dashboard_id}/embed-token", api.dashboardEmbedToken, authen, authorizeEmbed)
}
