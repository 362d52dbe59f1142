package dashboardbus_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jcpaschoal/biadmin/business/domain/companybus"
	"github.com/jcpaschoal/biadmin/business/domain/dashboardbus"
	"github.com/jcpaschoal/biadmin/business/sdk/dbtest"
	"github.com/jcpaschoal/biadmin/business/sdk/page"
	"github.com/jcpaschoal/biadmin/business/types/biref"
	"github.com/jcpaschoal/biadmin/business/types/name"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Create(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	cmp := db.SeedCompany(t, "Acme")

	nd := dashboardbus.NewDashboard{
		CompanyID:    cmp.ID,
		Name:         name.MustParse("Sales"),
		ReportRef:    biref.MustParse("f089354e-8366-4e18-aea3-4cb4a3a50b48"),
		WorkspaceRef: biref.MustParse("cfafbeb1-8037-4d0c-896e-a46fb27ff229"),
	}

	d, err := db.BusDomain.Dashboard.Create(ctx, nd)
	require.NoError(t, err)
	assert.True(t, d.Active)
	assert.Equal(t, cmp.ID, d.CompanyID)

	nd.CompanyID = uuid.New()
	_, err = db.BusDomain.Dashboard.Create(ctx, nd)
	assert.ErrorIs(t, err, companybus.ErrNotFound)
}

func Test_Update(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	acme := db.SeedCompany(t, "Acme")
	globex := db.SeedCompany(t, "Globex")
	d := db.SeedDashboard(t, acme.ID)

	desc := "Quarterly numbers"
	d, err := db.BusDomain.Dashboard.Update(ctx, d, dashboardbus.UpdateDashboard{
		CompanyID:   &globex.ID,
		Description: &desc,
	})
	require.NoError(t, err)
	assert.Equal(t, globex.ID, d.CompanyID)
	require.NotNil(t, d.Description)
	assert.Equal(t, desc, *d.Description)

	empty := ""
	d, err = db.BusDomain.Dashboard.Update(ctx, d, dashboardbus.UpdateDashboard{Description: &empty})
	require.NoError(t, err)
	assert.Nil(t, d.Description)

	missing := uuid.New()
	_, err = db.BusDomain.Dashboard.Update(ctx, d, dashboardbus.UpdateDashboard{CompanyID: &missing})
	assert.ErrorIs(t, err, companybus.ErrNotFound)
}

func Test_QueryByIDs(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	cmp := db.SeedCompany(t, "Acme")
	d1 := db.SeedDashboard(t, cmp.ID)
	d2 := db.SeedDashboard(t, cmp.ID)

	ds, err := db.BusDomain.Dashboard.QueryByIDs(ctx, []uuid.UUID{d1.ID, uuid.New(), d2.ID})
	require.NoError(t, err)
	assert.Len(t, ds, 2)

	filter := dashboardbus.QueryFilter{CompanyID: &cmp.ID}

	ds, err = db.BusDomain.Dashboard.Query(ctx, filter, dashboardbus.DefaultOrderBy, page.MustParse("1", "10"))
	require.NoError(t, err)
	assert.Len(t, ds, 2)

	_, err = db.BusDomain.Dashboard.QueryByID(ctx, uuid.New())
	assert.ErrorIs(t, err, dashboardbus.ErrNotFound)
}
