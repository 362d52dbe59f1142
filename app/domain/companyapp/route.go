package companyapp

import (
	"net/http"

	"github.com/jcpaschoal/biadmin/app/sdk/auth"
	"github.com/jcpaschoal/biadmin/app/sdk/mid"
	"github.com/jcpaschoal/biadmin/business/domain/companybus"
	"github.com/jcpaschoal/biadmin/business/domain/tenantbus"
	"github.com/jcpaschoal/biadmin/business/sdk/sqldb"
	"github.com/jcpaschoal/biadmin/business/sdk/web"
	"github.com/jcpaschoal/biadmin/business/types/resource"
	"github.com/jcpaschoal/biadmin/foundation/logger"
	"github.com/jmoiron/sqlx"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log        *logger.Logger
	DB         *sqlx.DB
	Auth       *auth.Auth
	CompanyBus *companybus.Core
	TenantBus  *tenantbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	authorize := mid.Authorize(cfg.Auth, resource.Company)
	transaction := mid.BeginCommitRollback(cfg.Log, sqldb.NewBeginner(cfg.DB))

	api := newApp(cfg.CompanyBus, cfg.TenantBus)

	app.HandlerFunc(http.MethodGet, version, "/companies", api.query, authen, authorize)
	app.HandlerFunc(http.MethodGet, version, "/companies/{company_id}", api.queryByID, authen, authorize)
	app.HandlerFunc(http.MethodPost, version, "/companies", api.create, authen, authorize)
	app.HandlerFunc(http.MethodPut, version, "/companies/{company_id}", api.update, authen, authorize)
	app.HandlerFunc(http.MethodDelete, version, "/companies/{company_id}", api.delete, authen, authorize, transaction)
}
