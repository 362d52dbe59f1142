// Package memdb provides in memory implementations of the domain storers.
// They keep the same foreign key, cascade and uniqueness rules as the
// relational schema so the cores can be exercised without a database.
package memdb

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jcpaschoal/biadmin/business/domain/companybus"
	"github.com/jcpaschoal/biadmin/business/domain/dashboardbus"
	"github.com/jcpaschoal/biadmin/business/domain/grantbus"
	"github.com/jcpaschoal/biadmin/business/domain/userbus"
	"github.com/jcpaschoal/biadmin/business/sdk/order"
	"github.com/jcpaschoal/biadmin/business/sdk/page"
)

// Names of the constraints reported on a restricted delete.
const (
	userFKey      = "user_dashboard_user_id_fkey"
	dashboardFKey = "user_dashboard_dashboard_id_fkey"
)

// DB holds every table in memory.
type DB struct {
	mu         sync.RWMutex
	companies  map[uuid.UUID]companybus.Company
	users      map[uuid.UUID]userbus.User
	dashboards map[uuid.UUID]dashboardbus.Dashboard
	grants     map[grantbus.Grant]struct{}

	// GrantHook, when set, runs before a grant insert. A non nil error is
	// returned in place of the insert.
	GrantHook func(g grantbus.Grant) error

	// LookupHook, when set, runs before every lookup by id. A non nil error
	// is returned in place of the lookup.
	LookupHook func(ctx context.Context) error
}

// New constructs an empty database.
func New() *DB {
	return &DB{
		companies:  make(map[uuid.UUID]companybus.Company),
		users:      make(map[uuid.UUID]userbus.User),
		dashboards: make(map[uuid.UUID]dashboardbus.Dashboard),
		grants:     make(map[grantbus.Grant]struct{}),
	}
}

// Companies returns a company storer backed by the database.
func (db *DB) Companies() *CompanyStore {
	return &CompanyStore{db: db}
}

// Users returns a user storer backed by the database.
func (db *DB) Users() *UserStore {
	return &UserStore{db: db}
}

// Dashboards returns a dashboard storer backed by the database.
func (db *DB) Dashboards() *DashboardStore {
	return &DashboardStore{db: db}
}

// Grants returns a grant storer backed by the database.
func (db *DB) Grants() *GrantStore {
	return &GrantStore{db: db}
}

// Tenants returns a tenant storer backed by the database.
func (db *DB) Tenants() *TenantStore {
	return &TenantStore{db: db}
}

// GrantSet returns a copy of every stored grant.
func (db *DB) GrantSet() map[grantbus.Grant]struct{} {
	db.mu.RLock()
	defer db.mu.RUnlock()

	set := make(map[grantbus.Grant]struct{}, len(db.grants))
	for g := range db.grants {
		set[g] = struct{}{}
	}

	return set
}

// =============================================================================

func (db *DB) lookup(ctx context.Context) error {
	if db.LookupHook == nil {
		return nil
	}

	return db.LookupHook(ctx)
}

func contains(value string, sub string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(sub))
}

func paginate[T any](items []T, pg page.Page) []T {
	start := pg.Offset()
	if start >= len(items) {
		return nil
	}

	end := min(start+pg.RowsPerPage(), len(items))

	return items[start:end]
}

func descending(direction string) bool {
	return direction == order.DESC
}
