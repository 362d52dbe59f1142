package main

import (
	"context"
	"encoding/json"
	"errors"
	"expvar"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/jcpaschoal/biadmin/api/cmd/build/all"
	"github.com/jcpaschoal/biadmin/app/sdk/auth"
	"github.com/jcpaschoal/biadmin/app/sdk/debug"
	"github.com/jcpaschoal/biadmin/app/sdk/mux"
	"github.com/jcpaschoal/biadmin/business/domain/companybus"
	"github.com/jcpaschoal/biadmin/business/domain/companybus/stores/companydb"
	"github.com/jcpaschoal/biadmin/business/domain/dashboardbus"
	"github.com/jcpaschoal/biadmin/business/domain/dashboardbus/stores/dashboarddb"
	"github.com/jcpaschoal/biadmin/business/domain/grantbus"
	"github.com/jcpaschoal/biadmin/business/domain/grantbus/stores/grantdb"
	"github.com/jcpaschoal/biadmin/business/domain/tenantbus"
	"github.com/jcpaschoal/biadmin/business/domain/tenantbus/stores/tenantdb"
	"github.com/jcpaschoal/biadmin/business/domain/userbus"
	"github.com/jcpaschoal/biadmin/business/domain/userbus/stores/userdb"
	"github.com/jcpaschoal/biadmin/business/sdk/audit"
	"github.com/jcpaschoal/biadmin/business/sdk/sqldb"
	"github.com/jcpaschoal/biadmin/foundation/logger"
	"github.com/jcpaschoal/biadmin/foundation/otel"
	"github.com/jcpaschoal/biadmin/foundation/powerbi"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var build = "develop"

type Config struct {
	Version struct {
		Build string `json:"build"`
		Desc  string `json:"desc"`
	} `json:"version"`

	Web struct {
		ReadTimeout        time.Duration `envconfig:"WEB_READ_TIMEOUT" default:"5s"`
		WriteTimeout       time.Duration `envconfig:"WEB_WRITE_TIMEOUT" default:"10s"`
		IdleTimeout        time.Duration `envconfig:"WEB_IDLE_TIMEOUT" default:"120s"`
		ShutdownTimeout    time.Duration `envconfig:"WEB_SHUTDOWN_TIMEOUT" default:"20s"`
		APIHost            string        `envconfig:"WEB_API_HOST" default:"0.0.0.0:3000"`
		DebugHost          string        `envconfig:"WEB_DEBUG_HOST" default:"0.0.0.0:3010"`
		CORSAllowedOrigins []string      `envconfig:"WEB_CORS_ALLOWED_ORIGINS" default:"*"`
	}
	Auth struct {
		Secret string        `envconfig:"AUTH_SECRET" required:"true"`
		Issuer string        `envconfig:"AUTH_ISSUER" default:"biadmin"`
		TTL    time.Duration `envconfig:"AUTH_TTL" default:"24h"`
	}
	DB struct {
		User         string `envconfig:"DB_USER" default:"postgres"`
		Password     string `envconfig:"DB_PASSWORD" default:"postgres"`
		Host         string `envconfig:"DB_HOST" default:"localhost"`
		Name         string `envconfig:"DB_NAME" default:"biadmin"`
		MaxIdleConns int    `envconfig:"DB_MAX_IDLE_CONNS" default:"0"`
		MaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"0"`
		DisableTLS   bool   `envconfig:"DB_DISABLE_TLS" default:"true"`
	}
	Tempo struct {
		Host        string  `envconfig:"TEMPO_HOST"`
		ServiceName string  `envconfig:"TEMPO_SERVICE_NAME" default:"BIADMIN"`
		Probability float64 `envconfig:"TEMPO_PROBABILITY" default:"0.05"`
	}
	PowerBI struct {
		TenantID     string        `envconfig:"POWERBI_TENANT_ID"`
		ClientID     string        `envconfig:"POWERBI_CLIENT_ID"`
		ClientSecret string        `envconfig:"POWERBI_CLIENT_SECRET"`
		Scope        string        `envconfig:"POWERBI_SCOPE"`
		APIURL       string        `envconfig:"POWERBI_API_URL"`
		CacheTTL     time.Duration `envconfig:"POWERBI_CACHE_TTL" default:"1m"`
		Rate         float64       `envconfig:"POWERBI_RATE" default:"10"`
	}
	Grants struct {
		BulkLimit    int           `envconfig:"GRANTS_BULK_LIMIT" default:"4"`
		StoreTimeout time.Duration `envconfig:"GRANTS_STORE_TIMEOUT" default:"5s"`
	}
	Audit struct {
		Persist bool `envconfig:"AUDIT_PERSIST" default:"false"`
	}
}

func main() {
	var log *logger.Logger

	events := logger.Events{
		Error: func(ctx context.Context, r logger.Record) {
			log.Info(ctx, "******* SEND ALERT *******")
		},
	}

	log = logger.NewWithEvents(os.Stdout, logger.LevelInfo, "BIADMIN", otel.GetTraceID, events)

	// -------------------------------------------------------------------------

	ctx := context.Background()

	if err := run(ctx, log); err != nil {
		log.Error(ctx, "startup", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger) error {

	// -------------------------------------------------------------------------
	// GOMAXPROCS

	log.Info(ctx, "startup", "GOMAXPROCS", runtime.GOMAXPROCS(0))

	// -------------------------------------------------------------------------
	// Configuration

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	var cfg Config

	cfg.Version.Build = build
	cfg.Version.Desc = "BIADMIN"

	if err := envconfig.Process("", &cfg); err != nil {
		return fmt.Errorf("processing config: %w", err)
	}

	// -------------------------------------------------------------------------
	// App Info & Config Logging

	log.Info(ctx, "startup", "version", cfg.Version)
	log.Info(ctx, "startup", "config", sanitizeConfig(cfg))

	// -------------------------------------------------------------------------
	// App Starting

	log.Info(ctx, "starting service", "version", cfg.Version.Build)
	defer log.Info(ctx, "shutdown complete")

	log.BuildInfo(ctx)

	expvar.NewString("build").Set(cfg.Version.Build)

	// -------------------------------------------------------------------------
	// Database Support

	log.Info(ctx, "startup", "status", "initializing database support", "hostport", cfg.DB.Host)

	db, err := sqldb.Open(sqldb.Config{
		User:         cfg.DB.User,
		Password:     cfg.DB.Password,
		Host:         cfg.DB.Host,
		Name:         cfg.DB.Name,
		MaxIdleConns: cfg.DB.MaxIdleConns,
		MaxOpenConns: cfg.DB.MaxOpenConns,
		DisableTLS:   cfg.DB.DisableTLS,
	})
	if err != nil {
		return fmt.Errorf("connecting to db: %w", err)
	}

	defer db.Close()

	// -------------------------------------------------------------------------
	// Start Tracing Support

	log.Info(ctx, "startup", "status", "initializing tracing support")

	traceProvider, teardown, err := otel.InitTracing(log, otel.Config{
		ServiceName: cfg.Tempo.ServiceName,
		Host:        cfg.Tempo.Host,
		ExcludedRoutes: map[string]struct{}{
			"/v1/liveness":  {},
			"/v1/readiness": {},
		},
		Probability: cfg.Tempo.Probability,
	})
	if err != nil {
		return fmt.Errorf("starting tracing: %w", err)
	}

	defer teardown(context.Background())

	tracer := traceProvider.Tracer(cfg.Tempo.ServiceName)

	// -------------------------------------------------------------------------
	// Business Support

	auditor := audit.Multi{audit.NewLogRecorder(log)}
	if cfg.Audit.Persist {
		auditor = append(auditor, audit.NewDBRecorder(log, db))
	}

	companyBus := companybus.NewCore(log, companydb.NewStore(log, db))
	userBus := userbus.NewCore(companyBus, userdb.NewStore(log, db))
	dashboardBus := dashboardbus.NewCore(log, companyBus, dashboarddb.NewStore(log, db))
	tenantBus := tenantbus.NewCore(log, auditor, companyBus, userBus, dashboardBus, tenantdb.NewStore(log, db))
	grantBus := grantbus.NewCore(log, userBus, dashboardBus, tenantBus, grantdb.NewStore(log, db),
		grantbus.WithBulkLimit(cfg.Grants.BulkLimit),
		grantbus.WithStoreTimeout(cfg.Grants.StoreTimeout),
	)

	// -------------------------------------------------------------------------
	// Auth Support

	log.Info(ctx, "startup", "status", "initializing authentication support")

	ath, err := auth.New(auth.Config{
		Log:     log,
		UserBus: userBus,
		Secret:  cfg.Auth.Secret,
		Issuer:  cfg.Auth.Issuer,
		TTL:     cfg.Auth.TTL,
	})
	if err != nil {
		return fmt.Errorf("constructing auth: %w", err)
	}

	// -------------------------------------------------------------------------
	// BI Support

	log.Info(ctx, "startup", "status", "initializing bi support")

	biClient, err := powerbi.New(powerbi.Config{
		TenantID:     cfg.PowerBI.TenantID,
		ClientID:     cfg.PowerBI.ClientID,
		ClientSecret: cfg.PowerBI.ClientSecret,
		Scope:        cfg.PowerBI.Scope,
		APIURL:       cfg.PowerBI.APIURL,
		CacheTTL:     cfg.PowerBI.CacheTTL,
		Rate:         cfg.PowerBI.Rate,
	})
	if err != nil {
		log.Warn(ctx, "startup", "status", "bi routes disabled", "err", err)
		biClient = nil
	}

	// -------------------------------------------------------------------------
	// Start Debug Service

	go func() {
		log.Info(ctx, "startup", "status", "debug v1 router started", "host", cfg.Web.DebugHost)

		if err := http.ListenAndServe(cfg.Web.DebugHost, debug.Mux()); err != nil {
			log.Error(ctx, "shutdown", "status", "debug v1 router closed", "host", cfg.Web.DebugHost, "msg", err)
		}
	}()

	// -------------------------------------------------------------------------
	// Start API Service

	log.Info(ctx, "startup", "status", "initializing V1 API support")

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	cfgMux := mux.Config{
		Build:  cfg.Version.Build,
		Log:    log,
		DB:     db,
		Tracer: tracer,
		BusConfig: mux.BusConfig{
			CompanyBus:   companyBus,
			UserBus:      userBus,
			DashboardBus: dashboardBus,
			TenantBus:    tenantBus,
			GrantBus:     grantBus,
		},
		AuthConfig: mux.AuthConfig{
			Auth: ath,
		},
		BIConfig: mux.BIConfig{
			Client: biClient,
		},
	}

	webAPI := mux.WebAPI(cfgMux,
		all.Routes(),
		mux.WithCORS(cfg.Web.CORSAllowedOrigins),
	)

	api := http.Server{
		Addr:         cfg.Web.APIHost,
		Handler:      webAPI,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
		IdleTimeout:  cfg.Web.IdleTimeout,
		ErrorLog:     logger.NewStdLogger(log, logger.LevelError),
	}

	serverErrors := make(chan error, 1)

	go func() {
		log.Info(ctx, "startup", "status", "api router started", "host", api.Addr)
		serverErrors <- api.ListenAndServe()
	}()

	// -------------------------------------------------------------------------
	// Shutdown

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.Info(ctx, "shutdown", "status", "shutdown started", "signal", sig)
		defer log.Info(ctx, "shutdown", "status", "shutdown complete", "signal", sig)

		ctx, cancel := context.WithTimeout(ctx, cfg.Web.ShutdownTimeout)
		defer cancel()

		if err := api.Shutdown(ctx); err != nil {
			api.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

func sanitizeConfig(cfg Config) string {
	cfg.DB.Password = "[MASKED]"
	cfg.Auth.Secret = "[MASKED]"
	cfg.PowerBI.ClientSecret = "[MASKED]"

	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Sprintf("%+v", cfg)
	}
	return string(data)
}
