// Package dbtest contains supporting code for running tests against the
// business cores backed by the in memory store.
package dbtest

import (
	"context"
	"fmt"
	"io"
	"net/mail"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jcpaschoal/biadmin/business/domain/companybus"
	"github.com/jcpaschoal/biadmin/business/domain/dashboardbus"
	"github.com/jcpaschoal/biadmin/business/domain/grantbus"
	"github.com/jcpaschoal/biadmin/business/domain/tenantbus"
	"github.com/jcpaschoal/biadmin/business/domain/userbus"
	"github.com/jcpaschoal/biadmin/business/sdk/audit"
	"github.com/jcpaschoal/biadmin/business/sdk/memdb"
	"github.com/jcpaschoal/biadmin/business/types/biref"
	"github.com/jcpaschoal/biadmin/business/types/name"
	"github.com/jcpaschoal/biadmin/business/types/password"
	"github.com/jcpaschoal/biadmin/business/types/role"
	"github.com/jcpaschoal/biadmin/foundation/logger"
)

// BusDomain represents all the business domain cores needed for testing.
type BusDomain struct {
	Company   *companybus.Core
	User      *userbus.Core
	Dashboard *dashboardbus.Core
	Tenant    *tenantbus.Core
	Grant     *grantbus.Core
}

// Database owns the in memory store and the cores built on it.
type Database struct {
	DB        *memdb.DB
	Log       *logger.Logger
	BusDomain BusDomain

	// AuditHook, when set, runs for every audit event before it is kept.
	// A non nil error fails the audited operation.
	AuditHook func(ctx context.Context, evt audit.Event) error

	mu     sync.Mutex
	events []audit.Event
}

// New constructs the cores over an empty store.
func New(t *testing.T, opts ...grantbus.Option) *Database {
	t.Helper()

	log := logger.New(io.Discard, logger.LevelInfo, "TEST", func(context.Context) string { return "" })

	db := Database{
		DB:  memdb.New(),
		Log: log,
	}

	recorder := audit.RecorderFunc(func(ctx context.Context, evt audit.Event) error {
		if db.AuditHook != nil {
			if err := db.AuditHook(ctx, evt); err != nil {
				return err
			}
		}

		db.mu.Lock()
		defer db.mu.Unlock()
		db.events = append(db.events, evt)

		return nil
	})

	companyBus := companybus.NewCore(log, db.DB.Companies())
	userBus := userbus.NewCore(companyBus, db.DB.Users())
	dashboardBus := dashboardbus.NewCore(log, companyBus, db.DB.Dashboards())
	tenantBus := tenantbus.NewCore(log, recorder, companyBus, userBus, dashboardBus, db.DB.Tenants())
	grantBus := grantbus.NewCore(log, userBus, dashboardBus, tenantBus, db.DB.Grants(), opts...)

	db.BusDomain = BusDomain{
		Company:   companyBus,
		User:      userBus,
		Dashboard: dashboardBus,
		Tenant:    tenantBus,
		Grant:     grantBus,
	}

	return &db
}

// Events returns the audit events recorded so far.
func (db *Database) Events() []audit.Event {
	db.mu.Lock()
	defer db.mu.Unlock()

	return append([]audit.Event(nil), db.events...)
}

// =============================================================================

// SeedCompany creates an active company.
func (db *Database) SeedCompany(t *testing.T, nme string) companybus.Company {
	t.Helper()

	cmp, err := db.BusDomain.Company.Create(context.Background(), companybus.NewCompany{
		Name: name.MustParse(nme),
	})
	if err != nil {
		t.Fatalf("seeding company %q: %s", nme, err)
	}

	return cmp
}

// SeedUser creates an active user with the user role. A nil companyID
// creates a user that is not bound to any company.
func (db *Database) SeedUser(t *testing.T, companyID *uuid.UUID) userbus.User {
	t.Helper()

	id := uuid.New()

	usr, err := db.BusDomain.User.Create(context.Background(), userbus.NewUser{
		CompanyID: companyID,
		Name:      name.MustParseNull(fmt.Sprintf("User %s", id.String()[:8])),
		Email:     mail.Address{Address: fmt.Sprintf("%s@example.com", id)},
		Role:      role.User,
		Password:  password.MustParse("gophers"),
	})
	if err != nil {
		t.Fatalf("seeding user: %s", err)
	}

	return usr
}

// SeedDashboard creates an active dashboard of the company.
func (db *Database) SeedDashboard(t *testing.T, companyID uuid.UUID) dashboardbus.Dashboard {
	t.Helper()

	id := uuid.New()

	d, err := db.BusDomain.Dashboard.Create(context.Background(), dashboardbus.NewDashboard{
		CompanyID:    companyID,
		Name:         name.MustParse(fmt.Sprintf("Dashboard %s", id.String()[:8])),
		ReportRef:    biref.MustParse("report-" + id.String()),
		WorkspaceRef: biref.MustParse("workspace-" + id.String()),
	})
	if err != nil {
		t.Fatalf("seeding dashboard: %s", err)
	}

	return d
}
