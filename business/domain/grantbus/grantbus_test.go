package grantbus_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/biadmin/business/domain/dashboardbus"
	"github.com/jcpaschoal/biadmin/business/domain/grantbus"
	"github.com/jcpaschoal/biadmin/business/domain/tenantbus"
	"github.com/jcpaschoal/biadmin/business/domain/userbus"
	"github.com/jcpaschoal/biadmin/business/sdk/dbtest"
	"github.com/jcpaschoal/biadmin/business/sdk/page"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grantOf(usr userbus.User, d dashboardbus.Dashboard) grantbus.Grant {
	return grantbus.Grant{UserID: usr.ID, DashboardID: d.ID}
}

func Test_Create(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	cmp := db.SeedCompany(t, "Acme")
	usr := db.SeedUser(t, &cmp.ID)
	dsh := db.SeedDashboard(t, cmp.ID)

	gd, err := db.BusDomain.Grant.Create(ctx, usr.ID, dsh.ID)
	require.NoError(t, err)
	assert.Equal(t, grantOf(usr, dsh), gd.Grant)
	assert.Equal(t, usr.Email, gd.User.Email)
	assert.Equal(t, dsh.Name, gd.Dashboard.Name)

	g, err := db.BusDomain.Grant.QueryByID(ctx, usr.ID, dsh.ID)
	require.NoError(t, err)
	assert.Equal(t, grantOf(usr, dsh), g)
}

func Test_CreateDuplicate(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	cmp := db.SeedCompany(t, "Acme")
	usr := db.SeedUser(t, &cmp.ID)
	dsh := db.SeedDashboard(t, cmp.ID)

	_, err := db.BusDomain.Grant.Create(ctx, usr.ID, dsh.ID)
	require.NoError(t, err)

	before := db.DB.GrantSet()

	_, err = db.BusDomain.Grant.Create(ctx, usr.ID, dsh.ID)
	assert.ErrorIs(t, err, grantbus.ErrConflict)
	assert.Equal(t, before, db.DB.GrantSet())
}

func Test_CreateTenantMismatch(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	acme := db.SeedCompany(t, "Acme")
	globex := db.SeedCompany(t, "Globex")
	usr := db.SeedUser(t, &acme.ID)
	dsh := db.SeedDashboard(t, globex.ID)

	_, err := db.BusDomain.Grant.Create(ctx, usr.ID, dsh.ID)
	assert.ErrorIs(t, err, grantbus.ErrTenantMismatch)
	assert.Empty(t, db.DB.GrantSet())
}

func Test_CreateUnboundUser(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	acme := db.SeedCompany(t, "Acme")
	globex := db.SeedCompany(t, "Globex")
	usr := db.SeedUser(t, nil)

	for _, cmp := range []uuid.UUID{acme.ID, globex.ID} {
		dsh := db.SeedDashboard(t, cmp)

		_, err := db.BusDomain.Grant.Create(ctx, usr.ID, dsh.ID)
		require.NoError(t, err)
	}

	assert.Len(t, db.DB.GrantSet(), 2)
}

func Test_CreateMissing(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	cmp := db.SeedCompany(t, "Acme")
	usr := db.SeedUser(t, &cmp.ID)
	dsh := db.SeedDashboard(t, cmp.ID)

	_, err := db.BusDomain.Grant.Create(ctx, uuid.New(), dsh.ID)
	assert.ErrorIs(t, err, userbus.ErrNotFound)

	_, err = db.BusDomain.Grant.Create(ctx, usr.ID, uuid.New())
	assert.ErrorIs(t, err, dashboardbus.ErrNotFound)

	assert.Empty(t, db.DB.GrantSet())
}

func Test_CreateInactiveCompany(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	cmp := db.SeedCompany(t, "Acme")
	usr := db.SeedUser(t, &cmp.ID)
	dsh := db.SeedDashboard(t, cmp.ID)

	_, err := db.BusDomain.Tenant.DeactivateCompany(ctx, cmp)
	require.NoError(t, err)

	_, err = db.BusDomain.Grant.Create(ctx, usr.ID, dsh.ID)
	assert.ErrorIs(t, err, tenantbus.ErrInactive)
	assert.Empty(t, db.DB.GrantSet())
}

func Test_Remove(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	cmp := db.SeedCompany(t, "Acme")
	usr := db.SeedUser(t, &cmp.ID)
	dsh := db.SeedDashboard(t, cmp.ID)

	_, err := db.BusDomain.Grant.Create(ctx, usr.ID, dsh.ID)
	require.NoError(t, err)

	require.NoError(t, db.BusDomain.Grant.Remove(ctx, usr.ID, dsh.ID))
	assert.Empty(t, db.DB.GrantSet())

	err = db.BusDomain.Grant.Remove(ctx, usr.ID, dsh.ID)
	assert.ErrorIs(t, err, grantbus.ErrNotFound)

	_, err = db.BusDomain.Grant.QueryByID(ctx, usr.ID, dsh.ID)
	assert.ErrorIs(t, err, grantbus.ErrNotFound)
}

func Test_StoreTimeout(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t, grantbus.WithStoreTimeout(10*time.Millisecond))

	cmp := db.SeedCompany(t, "Acme")
	usr := db.SeedUser(t, &cmp.ID)
	dsh := db.SeedDashboard(t, cmp.ID)

	db.DB.GrantHook = func(grantbus.Grant) error {
		time.Sleep(50 * time.Millisecond)
		return nil
	}

	_, err := db.BusDomain.Grant.Create(ctx, usr.ID, dsh.ID)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, db.DB.GrantSet())
}

func Test_LookupTimeout(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t, grantbus.WithStoreTimeout(10*time.Millisecond))

	cmp := db.SeedCompany(t, "Acme")
	usr := db.SeedUser(t, &cmp.ID)
	dsh := db.SeedDashboard(t, cmp.ID)

	db.DB.LookupHook = func(ctx context.Context) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
			return nil
		}
	}

	_, err := db.BusDomain.Grant.Create(ctx, usr.ID, dsh.ID)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	_, err = db.BusDomain.Grant.CountDashboardsByUser(ctx, usr.ID)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	_, err = db.BusDomain.Grant.QueryUsersByDashboard(ctx, dsh.ID, userbus.DefaultOrderBy, page.MustParse("1", "10"))
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	_, err = db.BusDomain.Grant.AssignUsersToDashboard(ctx, dsh.ID, []uuid.UUID{usr.ID})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	assert.Empty(t, db.DB.GrantSet())
}

func Test_ConcurrentCreate(t *testing.T) {
	const n = 8

	ctx := context.Background()
	db := dbtest.New(t)

	cmp := db.SeedCompany(t, "Acme")
	usr := db.SeedUser(t, &cmp.ID)
	dsh := db.SeedDashboard(t, cmp.ID)

	db.DB.GrantHook = barrier(n)

	var created, conflicts atomic.Int32
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := db.BusDomain.Grant.Create(ctx, usr.ID, dsh.ID)
			switch {
			case err == nil:
				created.Add(1)
			case errors.Is(err, grantbus.ErrConflict):
				conflicts.Add(1)
			default:
				t.Errorf("unexpected error: %s", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), created.Load())
	assert.Equal(t, int32(n-1), conflicts.Load())
	assert.Equal(t, map[grantbus.Grant]struct{}{grantOf(usr, dsh): {}}, db.DB.GrantSet())
}

// barrier returns a grant hook that holds every insert until n of them
// are waiting, so they reach the store at the same time.
func barrier(n int32) func(grantbus.Grant) error {
	var arrived atomic.Int32
	release := make(chan struct{})

	return func(grantbus.Grant) error {
		if arrived.Add(1) == n {
			close(release)
		}

		select {
		case <-release:
		case <-time.After(time.Second):
		}

		return nil
	}
}

// =============================================================================

func Test_DashboardsByUserVisibility(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	cmp := db.SeedCompany(t, "Acme")
	usr := db.SeedUser(t, &cmp.ID)
	d1 := db.SeedDashboard(t, cmp.ID)
	d2 := db.SeedDashboard(t, cmp.ID)

	for _, d := range []dashboardbus.Dashboard{d1, d2} {
		_, err := db.BusDomain.Grant.Create(ctx, usr.ID, d.ID)
		require.NoError(t, err)
	}

	visible := func() []uuid.UUID {
		t.Helper()

		ds, err := db.BusDomain.Grant.QueryDashboardsByUser(ctx, usr.ID, dashboardbus.DefaultOrderBy, page.MustParse("1", "10"))
		require.NoError(t, err)

		n, err := db.BusDomain.Grant.CountDashboardsByUser(ctx, usr.ID)
		require.NoError(t, err)
		require.Equal(t, len(ds), n)

		ids := make([]uuid.UUID, len(ds))
		for i, d := range ds {
			ids[i] = d.ID
		}
		return ids
	}

	assert.ElementsMatch(t, []uuid.UUID{d1.ID, d2.ID}, visible())

	d1, err := db.BusDomain.Tenant.DeactivateDashboard(ctx, d1)
	require.NoError(t, err)

	assert.ElementsMatch(t, []uuid.UUID{d2.ID}, visible())
	assert.Contains(t, db.DB.GrantSet(), grantOf(usr, d1))

	active := true
	_, err = db.BusDomain.Dashboard.Update(ctx, d1, dashboardbus.UpdateDashboard{Active: &active})
	require.NoError(t, err)

	assert.ElementsMatch(t, []uuid.UUID{d1.ID, d2.ID}, visible())
}

func Test_UsersByDashboardVisibility(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	cmp := db.SeedCompany(t, "Acme")
	u1 := db.SeedUser(t, &cmp.ID)
	u2 := db.SeedUser(t, &cmp.ID)
	dsh := db.SeedDashboard(t, cmp.ID)

	for _, u := range []userbus.User{u1, u2} {
		_, err := db.BusDomain.Grant.Create(ctx, u.ID, dsh.ID)
		require.NoError(t, err)
	}

	_, err := db.BusDomain.Tenant.DeactivateUser(ctx, u2)
	require.NoError(t, err)

	usrs, err := db.BusDomain.Grant.QueryUsersByDashboard(ctx, dsh.ID, userbus.DefaultOrderBy, page.MustParse("1", "10"))
	require.NoError(t, err)
	require.Len(t, usrs, 1)
	assert.Equal(t, u1.ID, usrs[0].ID)

	n, err := db.BusDomain.Grant.CountUsersByDashboard(ctx, dsh.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = db.BusDomain.Grant.QueryUsersByDashboard(ctx, uuid.New(), userbus.DefaultOrderBy, page.MustParse("1", "10"))
	assert.ErrorIs(t, err, dashboardbus.ErrNotFound)

	_, err = db.BusDomain.Grant.CountUsersByDashboard(ctx, uuid.New())
	assert.ErrorIs(t, err, dashboardbus.ErrNotFound)

	_, err = db.BusDomain.Grant.CountDashboardsByUser(ctx, uuid.New())
	assert.ErrorIs(t, err, userbus.ErrNotFound)
}

func Test_QueryFilters(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	acme := db.SeedCompany(t, "Acme")
	globex := db.SeedCompany(t, "Globex")
	usr := db.SeedUser(t, nil)
	d1 := db.SeedDashboard(t, acme.ID)
	d2 := db.SeedDashboard(t, globex.ID)

	for _, d := range []dashboardbus.Dashboard{d1, d2} {
		_, err := db.BusDomain.Grant.Create(ctx, usr.ID, d.ID)
		require.NoError(t, err)
	}

	filter := grantbus.QueryFilter{CompanyID: &acme.ID}

	gds, err := db.BusDomain.Grant.Query(ctx, filter, grantbus.DefaultOrderBy, page.MustParse("1", "10"))
	require.NoError(t, err)
	require.Len(t, gds, 1)
	assert.Equal(t, d1.ID, gds[0].DashboardID)

	n, err := db.BusDomain.Grant.Count(ctx, grantbus.QueryFilter{UserID: &usr.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

// =============================================================================

func Test_AssignDashboardsToUserReport(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	cmp := db.SeedCompany(t, "Acme")
	usr := db.SeedUser(t, &cmp.ID)
	d1 := db.SeedDashboard(t, cmp.ID)
	d2 := db.SeedDashboard(t, cmp.ID)

	_, err := db.BusDomain.Grant.Create(ctx, usr.ID, d1.ID)
	require.NoError(t, err)

	rpt, err := db.BusDomain.Grant.AssignDashboardsToUser(ctx, usr.ID, []uuid.UUID{d1.ID, d2.ID})
	require.NoError(t, err)

	assert.Len(t, rpt.Created(), 1)
	assert.Len(t, rpt.Skipped(), 1)
	assert.Empty(t, rpt.Errored())

	require.Len(t, rpt.Results, 2)
	assert.Equal(t, d1.ID, rpt.Results[0].ID)
	assert.Equal(t, d2.ID, rpt.Results[1].ID)

	want := map[grantbus.Grant]struct{}{
		grantOf(usr, d1): {},
		grantOf(usr, d2): {},
	}
	assert.Equal(t, want, db.DB.GrantSet())
}

func Test_AssignDashboardsToUserUnresolved(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	cmp := db.SeedCompany(t, "Acme")
	usr := db.SeedUser(t, &cmp.ID)
	dsh := db.SeedDashboard(t, cmp.ID)
	missing := uuid.New()

	rpt, err := db.BusDomain.Grant.AssignDashboardsToUser(ctx, usr.ID, []uuid.UUID{missing, dsh.ID})
	require.NoError(t, err)

	require.Len(t, rpt.Errored(), 1)
	assert.Equal(t, missing, rpt.Errored()[0].ID)
	assert.ErrorIs(t, rpt.Errored()[0].Err, dashboardbus.ErrNotFound)
	assert.Len(t, rpt.Created(), 1)
}

func Test_AssignDashboardsToUserItemError(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	cmp := db.SeedCompany(t, "Acme")
	usr := db.SeedUser(t, &cmp.ID)
	d1 := db.SeedDashboard(t, cmp.ID)
	d2 := db.SeedDashboard(t, cmp.ID)
	d3 := db.SeedDashboard(t, cmp.ID)

	errStore := errors.New("store unavailable")
	db.DB.GrantHook = func(g grantbus.Grant) error {
		if g.DashboardID == d2.ID {
			return errStore
		}
		return nil
	}

	rpt, err := db.BusDomain.Grant.AssignDashboardsToUser(ctx, usr.ID, []uuid.UUID{d1.ID, d2.ID, d3.ID})
	require.NoError(t, err)

	assert.Len(t, rpt.Created(), 2)
	require.Len(t, rpt.Errored(), 1)
	assert.Equal(t, d2.ID, rpt.Errored()[0].ID)
	assert.ErrorIs(t, rpt.Errored()[0].Err, errStore)

	want := map[grantbus.Grant]struct{}{
		grantOf(usr, d1): {},
		grantOf(usr, d3): {},
	}
	assert.Equal(t, want, db.DB.GrantSet())
}

func Test_AssignDashboardsToUserMixedTenants(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	acme := db.SeedCompany(t, "Acme")
	globex := db.SeedCompany(t, "Globex")
	usr := db.SeedUser(t, &acme.ID)
	own := db.SeedDashboard(t, acme.ID)
	foreign := db.SeedDashboard(t, globex.ID)

	rpt, err := db.BusDomain.Grant.AssignDashboardsToUser(ctx, usr.ID, []uuid.UUID{own.ID, foreign.ID})
	require.NoError(t, err)

	assert.Len(t, rpt.Created(), 1)
	require.Len(t, rpt.Errored(), 1)
	assert.ErrorIs(t, rpt.Errored()[0].Err, grantbus.ErrTenantMismatch)
}

func Test_AssignDashboardsToUserInactiveCompany(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	cmp := db.SeedCompany(t, "Acme")
	usr := db.SeedUser(t, &cmp.ID)
	dsh := db.SeedDashboard(t, cmp.ID)

	_, err := db.BusDomain.Tenant.DeactivateCompany(ctx, cmp)
	require.NoError(t, err)

	_, err = db.BusDomain.Grant.AssignDashboardsToUser(ctx, usr.ID, []uuid.UUID{dsh.ID})
	assert.ErrorIs(t, err, tenantbus.ErrInactive)
	assert.Empty(t, db.DB.GrantSet())
}

func Test_AssignDashboardsToUserInactiveUser(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	cmp := db.SeedCompany(t, "Acme")
	usr := db.SeedUser(t, &cmp.ID)
	dsh := db.SeedDashboard(t, cmp.ID)

	_, err := db.BusDomain.Tenant.DeactivateUser(ctx, usr)
	require.NoError(t, err)

	_, err = db.BusDomain.Grant.AssignDashboardsToUser(ctx, usr.ID, []uuid.UUID{dsh.ID})
	assert.ErrorIs(t, err, grantbus.ErrInactive)
	assert.Empty(t, db.DB.GrantSet())
}

func Test_AssignUsersToDashboard(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	cmp := db.SeedCompany(t, "Acme")
	u1 := db.SeedUser(t, &cmp.ID)
	u2 := db.SeedUser(t, nil)
	dsh := db.SeedDashboard(t, cmp.ID)
	missing := uuid.New()

	rpt, err := db.BusDomain.Grant.AssignUsersToDashboard(ctx, dsh.ID, []uuid.UUID{u1.ID, missing, u2.ID})
	require.NoError(t, err)

	assert.Len(t, rpt.Created(), 2)
	require.Len(t, rpt.Errored(), 1)
	assert.Equal(t, missing, rpt.Results[1].ID)
	assert.ErrorIs(t, rpt.Results[1].Err, userbus.ErrNotFound)
}

func Test_AssignUsersToDashboardInactive(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	cmp := db.SeedCompany(t, "Acme")
	usr := db.SeedUser(t, &cmp.ID)
	dsh := db.SeedDashboard(t, cmp.ID)

	dsh, err := db.BusDomain.Tenant.DeactivateDashboard(ctx, dsh)
	require.NoError(t, err)

	_, err = db.BusDomain.Grant.AssignUsersToDashboard(ctx, dsh.ID, []uuid.UUID{usr.ID})
	assert.ErrorIs(t, err, grantbus.ErrInactive)
	assert.Empty(t, db.DB.GrantSet())
}

func Test_AssignCompanyDashboardsToUserForeign(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	acme := db.SeedCompany(t, "Acme")
	globex := db.SeedCompany(t, "Globex")
	usr := db.SeedUser(t, &acme.ID)
	d1 := db.SeedDashboard(t, acme.ID)
	d2 := db.SeedDashboard(t, acme.ID)
	foreign := db.SeedDashboard(t, globex.ID)

	_, err := db.BusDomain.Grant.AssignCompanyDashboardsToUser(ctx, acme.ID, usr.ID, []uuid.UUID{d1.ID, foreign.ID, d2.ID})
	assert.ErrorIs(t, err, grantbus.ErrTenantMismatch)
	assert.Empty(t, db.DB.GrantSet())
}

func Test_AssignCompanyDashboardsToUser(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	cmp := db.SeedCompany(t, "Acme")
	usr := db.SeedUser(t, &cmp.ID)
	d1 := db.SeedDashboard(t, cmp.ID)
	d2 := db.SeedDashboard(t, cmp.ID)

	rpt, err := db.BusDomain.Grant.AssignCompanyDashboardsToUser(ctx, cmp.ID, usr.ID, []uuid.UUID{d1.ID, d2.ID})
	require.NoError(t, err)
	assert.Len(t, rpt.Created(), 2)

	t.Run("missing dashboard aborts", func(t *testing.T) {
		_, err := db.BusDomain.Grant.AssignCompanyDashboardsToUser(ctx, cmp.ID, usr.ID, []uuid.UUID{uuid.New()})
		assert.ErrorIs(t, err, dashboardbus.ErrNotFound)
	})

	t.Run("inactive dashboard aborts", func(t *testing.T) {
		d3 := db.SeedDashboard(t, cmp.ID)
		_, err := db.BusDomain.Tenant.DeactivateDashboard(ctx, d3)
		require.NoError(t, err)

		_, err = db.BusDomain.Grant.AssignCompanyDashboardsToUser(ctx, cmp.ID, usr.ID, []uuid.UUID{d3.ID})
		assert.ErrorIs(t, err, grantbus.ErrInactive)
	})

	t.Run("foreign user aborts", func(t *testing.T) {
		other := db.SeedCompany(t, "Initech")
		stranger := db.SeedUser(t, &other.ID)

		_, err := db.BusDomain.Grant.AssignCompanyDashboardsToUser(ctx, cmp.ID, stranger.ID, []uuid.UUID{d1.ID})
		assert.ErrorIs(t, err, grantbus.ErrTenantMismatch)
	})

	assert.Len(t, db.DB.GrantSet(), 2)
}

func Test_AssignDuplicateIDs(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t, grantbus.WithBulkLimit(2))

	cmp := db.SeedCompany(t, "Acme")
	usr := db.SeedUser(t, &cmp.ID)
	dsh := db.SeedDashboard(t, cmp.ID)

	db.DB.GrantHook = barrier(2)

	rpt, err := db.BusDomain.Grant.AssignDashboardsToUser(ctx, usr.ID, []uuid.UUID{dsh.ID, dsh.ID})
	require.NoError(t, err)

	assert.Len(t, rpt.Created(), 1)
	assert.Len(t, rpt.Skipped(), 1)
	assert.Empty(t, rpt.Errored())
	assert.Equal(t, map[grantbus.Grant]struct{}{grantOf(usr, dsh): {}}, db.DB.GrantSet())
}

func Test_AssignDashboardToCompanyUsersUnaffiliated(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	acme := db.SeedCompany(t, "Acme")
	member := db.SeedUser(t, &acme.ID)
	loner := db.SeedUser(t, nil)
	dsh := db.SeedDashboard(t, acme.ID)

	_, err := db.BusDomain.Grant.AssignDashboardToCompanyUsers(ctx, acme.ID, dsh.ID, []uuid.UUID{member.ID, loner.ID})
	assert.ErrorIs(t, err, grantbus.ErrTenantMismatch)
	assert.Empty(t, db.DB.GrantSet())

	_, err = db.BusDomain.Grant.AssignCompanyDashboardsToUser(ctx, acme.ID, loner.ID, []uuid.UUID{dsh.ID})
	assert.ErrorIs(t, err, grantbus.ErrTenantMismatch)
	assert.Empty(t, db.DB.GrantSet())

	// The unscoped path still lets an unaffiliated user hold the grant.
	rpt, err := db.BusDomain.Grant.AssignUsersToDashboard(ctx, dsh.ID, []uuid.UUID{member.ID, loner.ID})
	require.NoError(t, err)
	assert.Len(t, rpt.Created(), 2)
}

func Test_AssignDashboardToCompanyUsers(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	acme := db.SeedCompany(t, "Acme")
	globex := db.SeedCompany(t, "Globex")
	u1 := db.SeedUser(t, &acme.ID)
	u2 := db.SeedUser(t, &acme.ID)
	foreign := db.SeedUser(t, &globex.ID)
	dsh := db.SeedDashboard(t, acme.ID)

	_, err := db.BusDomain.Grant.AssignDashboardToCompanyUsers(ctx, acme.ID, dsh.ID, []uuid.UUID{u1.ID, foreign.ID})
	assert.ErrorIs(t, err, grantbus.ErrTenantMismatch)
	assert.Empty(t, db.DB.GrantSet())

	_, err = db.BusDomain.Grant.AssignDashboardToCompanyUsers(ctx, globex.ID, dsh.ID, []uuid.UUID{foreign.ID})
	assert.ErrorIs(t, err, grantbus.ErrTenantMismatch)

	rpt, err := db.BusDomain.Grant.AssignDashboardToCompanyUsers(ctx, acme.ID, dsh.ID, []uuid.UUID{u1.ID, u2.ID})
	require.NoError(t, err)
	assert.Len(t, rpt.Created(), 2)

	_, err = db.BusDomain.Tenant.DeactivateCompany(ctx, acme)
	require.NoError(t, err)

	_, err = db.BusDomain.Grant.AssignDashboardToCompanyUsers(ctx, acme.ID, dsh.ID, []uuid.UUID{u1.ID})
	assert.ErrorIs(t, err, tenantbus.ErrInactive)
}

func Test_BulkLimit(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t, grantbus.WithBulkLimit(2))

	cmp := db.SeedCompany(t, "Acme")
	usr := db.SeedUser(t, &cmp.ID)

	ids := make([]uuid.UUID, 8)
	for i := range ids {
		ids[i] = db.SeedDashboard(t, cmp.ID).ID
	}

	var running, peak atomic.Int32
	db.DB.GrantHook = func(grantbus.Grant) error {
		n := running.Add(1)
		defer running.Add(-1)

		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}

		time.Sleep(5 * time.Millisecond)
		return nil
	}

	rpt, err := db.BusDomain.Grant.AssignDashboardsToUser(ctx, usr.ID, ids)
	require.NoError(t, err)

	assert.Len(t, rpt.Created(), len(ids))
	assert.LessOrEqual(t, peak.Load(), int32(2))

	for i, res := range rpt.Results {
		assert.Equal(t, ids[i], res.ID)
	}
}
