// Package all binds all the routes into the specified app.
package all

import (
	"github.com/jcpaschoal/biadmin/app/domain/authapp"
	"github.com/jcpaschoal/biadmin/app/domain/biapp"
	"github.com/jcpaschoal/biadmin/app/domain/checkapp"
	"github.com/jcpaschoal/biadmin/app/domain/companyapp"
	"github.com/jcpaschoal/biadmin/app/domain/dashboardapp"
	"github.com/jcpaschoal/biadmin/app/domain/grantapp"
	"github.com/jcpaschoal/biadmin/app/domain/userapp"
	"github.com/jcpaschoal/biadmin/app/sdk/mux"
	"github.com/jcpaschoal/biadmin/business/sdk/web"
)

// Routes constructs the add value which provides the implementation of
// of RouteAdder for specifying what routes to bind to this instance.
func Routes() add {
	return add{}
}

type add struct{}

// Add implements the RouteAdder interface.
func (add) Add(app *web.App, cfg mux.Config) {
	bus := cfg.BusConfig
	ath := cfg.AuthConfig.Auth

	// A nil *powerbi.Client must not reach biapp as a non nil interface.
	var biClient biapp.Client
	if cfg.BIConfig.Client != nil {
		biClient = cfg.BIConfig.Client
	}

	checkapp.Routes(app, checkapp.Config{
		Build: cfg.Build,
		Log:   cfg.Log,
		DB:    cfg.DB,
	})

	authapp.Routes(app, authapp.Config{
		Auth: ath,
	})

	companyapp.Routes(app, companyapp.Config{
		Log:        cfg.Log,
		DB:         cfg.DB,
		Auth:       ath,
		CompanyBus: bus.CompanyBus,
		TenantBus:  bus.TenantBus,
	})

	userapp.Routes(app, userapp.Config{
		Log:       cfg.Log,
		DB:        cfg.DB,
		Auth:      ath,
		UserBus:   bus.UserBus,
		TenantBus: bus.TenantBus,
	})

	dashboardapp.Routes(app, dashboardapp.Config{
		Log:          cfg.Log,
		DB:           cfg.DB,
		Auth:         ath,
		DashboardBus: bus.DashboardBus,
		TenantBus:    bus.TenantBus,
	})

	grantapp.Routes(app, grantapp.Config{
		Auth:     ath,
		GrantBus: bus.GrantBus,
	})

	biapp.Routes(app, biapp.Config{
		Auth:         ath,
		Client:       biClient,
		DashboardBus: bus.DashboardBus,
		GrantBus:     bus.GrantBus,
		TenantBus:    bus.TenantBus,
	})
}
