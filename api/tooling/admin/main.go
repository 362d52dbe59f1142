// This program performs administrative tasks for the BI admin service.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net/mail"
	"os"
	"time"

	"github.com/google/uuid"
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
	"github.com/jcpaschoal/biadmin/business/sdk/migrate"
	"github.com/jcpaschoal/biadmin/business/sdk/sqldb"
	"github.com/jcpaschoal/biadmin/business/types/name"
	"github.com/jcpaschoal/biadmin/business/types/password"
	"github.com/jcpaschoal/biadmin/business/types/role"
	"github.com/jcpaschoal/biadmin/foundation/logger"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the database settings shared with the API.
type Config struct {
	DB struct {
		User         string `envconfig:"DB_USER" default:"postgres"`
		Password     string `envconfig:"DB_PASSWORD" default:"postgres"`
		Host         string `envconfig:"DB_HOST" default:"localhost"`
		Name         string `envconfig:"DB_NAME" default:"biadmin"`
		MaxIdleConns int    `envconfig:"DB_MAX_IDLE_CONNS" default:"0"`
		MaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"0"`
		DisableTLS   bool   `envconfig:"DB_DISABLE_TLS" default:"true"`
	}
}

type buses struct {
	company *companybus.Core
	user    *userbus.Core
	grant   *grantbus.Core
}

func main() {
	log := logger.New(os.Stdout, logger.LevelInfo, "ADMIN", func(context.Context) string { return "" })
	ctx := context.Background()

	if err := run(ctx, log); err != nil {
		log.Error(ctx, "admin", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger) error {
	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		fmt.Println("Commands: migrate, create-company, create-user, grant, revoke")
		return nil
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return fmt.Errorf("processing config: %w", err)
	}

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

	if os.Args[1] == "migrate" {
		return runMigrate(ctx, log, db)
	}

	bus := newBuses(log, db)

	switch os.Args[1] {
	case "create-company":
		return runCreateCompany(ctx, bus, os.Args[2:])
	case "create-user":
		return runCreateUser(ctx, bus, os.Args[2:])
	case "grant":
		return runGrant(ctx, bus, os.Args[2:])
	case "revoke":
		return runRevoke(ctx, bus, os.Args[2:])
	default:
		return fmt.Errorf("unknown command: %s", os.Args[1])
	}
}

func newBuses(log *logger.Logger, db *sqlx.DB) buses {
	companyBus := companybus.NewCore(log, companydb.NewStore(log, db))
	userBus := userbus.NewCore(companyBus, userdb.NewStore(log, db))
	dashboardBus := dashboardbus.NewCore(log, companyBus, dashboarddb.NewStore(log, db))
	tenantBus := tenantbus.NewCore(log, audit.NewLogRecorder(log), companyBus, userBus, dashboardBus, tenantdb.NewStore(log, db))
	grantBus := grantbus.NewCore(log, userBus, dashboardBus, tenantBus, grantdb.NewStore(log, db))

	return buses{
		company: companyBus,
		user:    userBus,
		grant:   grantBus,
	}
}

func runMigrate(ctx context.Context, log *logger.Logger, db *sqlx.DB) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := sqldb.StatusCheck(ctx, db); err != nil {
		return fmt.Errorf("status check database: %w", err)
	}

	if err := migrate.Migrate(ctx, log, db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	fmt.Println("migrations complete")
	return nil
}

func runCreateCompany(ctx context.Context, bus buses, args []string) error {
	cmd := flag.NewFlagSet("create-company", flag.ExitOnError)
	nameStr := cmd.String("name", "", "Company name (Required)")
	industry := cmd.String("industry", "", "Company industry")
	cmd.Parse(args)

	if *nameStr == "" {
		cmd.PrintDefaults()
		return errors.New("missing required fields")
	}

	n, err := name.Parse(*nameStr)
	if err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}

	nc := companybus.NewCompany{
		Name: n,
	}
	if *industry != "" {
		nc.Industry = industry
	}

	cmp, err := bus.company.Create(ctx, nc)
	if err != nil {
		return fmt.Errorf("create company: %w", err)
	}

	fmt.Printf("company created\nID: %s\nName: %s\n", cmp.ID, cmp.Name)
	return nil
}

func runCreateUser(ctx context.Context, bus buses, args []string) error {
	cmd := flag.NewFlagSet("create-user", flag.ExitOnError)
	emailStr := cmd.String("email", "", "User email (Required)")
	passStr := cmd.String("password", "", "User password (Required)")
	nameStr := cmd.String("name", "", "User full name")
	roleStr := cmd.String("role", "user", "User role (admin, user)")
	companyStr := cmd.String("company-id", "", "Company UUID")
	cmd.Parse(args)

	if *emailStr == "" || *passStr == "" {
		cmd.PrintDefaults()
		return errors.New("missing required fields")
	}

	addr, err := mail.ParseAddress(*emailStr)
	if err != nil {
		return fmt.Errorf("invalid email: %w", err)
	}

	n, err := name.ParseNull(*nameStr)
	if err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}

	r, err := role.Parse(*roleStr)
	if err != nil {
		return fmt.Errorf("invalid role: %w", err)
	}

	p, err := password.Parse(*passStr)
	if err != nil {
		return fmt.Errorf("invalid password: %w", err)
	}

	nu := userbus.NewUser{
		Name:     n,
		Email:    *addr,
		Role:     r,
		Password: p,
	}

	if *companyStr != "" {
		companyID, err := uuid.Parse(*companyStr)
		if err != nil {
			return fmt.Errorf("invalid company uuid: %w", err)
		}
		nu.CompanyID = &companyID
	}

	usr, err := bus.user.Create(ctx, nu)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	fmt.Printf("user created\nID: %s\nEmail: %s\nRole: %s\n", usr.ID, usr.Email.Address, usr.Role)
	return nil
}

func runGrant(ctx context.Context, bus buses, args []string) error {
	userID, dashboardID, err := parsePair("grant", args)
	if err != nil {
		return err
	}

	if _, err := bus.grant.Create(ctx, userID, dashboardID); err != nil {
		return fmt.Errorf("grant: %w", err)
	}

	fmt.Printf("user %s granted dashboard %s\n", userID, dashboardID)
	return nil
}

func runRevoke(ctx context.Context, bus buses, args []string) error {
	userID, dashboardID, err := parsePair("revoke", args)
	if err != nil {
		return err
	}

	if err := bus.grant.Remove(ctx, userID, dashboardID); err != nil {
		return fmt.Errorf("revoke: %w", err)
	}

	fmt.Printf("user %s no longer has dashboard %s\n", userID, dashboardID)
	return nil
}

func parsePair(command string, args []string) (uuid.UUID, uuid.UUID, error) {
	cmd := flag.NewFlagSet(command, flag.ExitOnError)
	userIDStr := cmd.String("user-id", "", "User UUID (Required)")
	dashIDStr := cmd.String("dashboard-id", "", "Dashboard UUID (Required)")
	cmd.Parse(args)

	if *userIDStr == "" || *dashIDStr == "" {
		cmd.PrintDefaults()
		return uuid.Nil, uuid.Nil, errors.New("missing required ids")
	}

	userID, err := uuid.Parse(*userIDStr)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid user uuid: %w", err)
	}

	dashboardID, err := uuid.Parse(*dashIDStr)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid dashboard uuid: %w", err)
	}

	return userID, dashboardID, nil
}

// go run api/tooling/admin/main.go migrate
// go run api/tooling/admin/main.go create-company -name "Acme"
// go run api/tooling/admin/main.go create-user -email "admin@acme.com" -password "Admin123!" -role admin
