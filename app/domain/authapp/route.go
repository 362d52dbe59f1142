package authapp

import (
	"net/http"

	"github.com/jcpaschoal/biadmin/app/sdk/auth"
	"github.com/jcpaschoal/biadmin/app/sdk/mid"
	"github.com/jcpaschoal/biadmin/business/sdk/web"
	"github.com/jcpaschoal/biadmin/business/types/resource"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth *auth.Auth
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)

	api := newApp(cfg.Auth)

	app.HandlerFunc(http.MethodPost, version, "/auth/login", api.login)
	app.HandlerFunc(http.MethodGet, version, "/auth/me", api.me, authen, mid.Authorize(cfg.Auth, resource.Me))
}
