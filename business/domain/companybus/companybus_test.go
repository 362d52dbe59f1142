package companybus_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jcpaschoal/biadmin/business/domain/companybus"
	"github.com/jcpaschoal/biadmin/business/sdk/dbtest"
	"github.com/jcpaschoal/biadmin/business/sdk/order"
	"github.com/jcpaschoal/biadmin/business/sdk/page"
	"github.com/jcpaschoal/biadmin/business/sdk/sqldb"
	"github.com/jcpaschoal/biadmin/business/types/name"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_CRUD(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	industry := "Retail"
	cmp, err := db.BusDomain.Company.Create(ctx, companybus.NewCompany{
		Name:     name.MustParse("Acme"),
		Industry: &industry,
	})
	require.NoError(t, err)
	assert.True(t, cmp.Active)

	got, err := db.BusDomain.Company.QueryByID(ctx, cmp.ID)
	require.NoError(t, err)
	assert.Equal(t, cmp.Name, got.Name)
	require.NotNil(t, got.Industry)
	assert.Equal(t, "Retail", *got.Industry)

	renamed := name.MustParse("Acme Corp")
	cmp, err = db.BusDomain.Company.Update(ctx, cmp, companybus.UpdateCompany{Name: &renamed})
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", cmp.Name.String())

	require.NoError(t, db.BusDomain.Company.Delete(ctx, cmp))

	_, err = db.BusDomain.Company.QueryByID(ctx, cmp.ID)
	assert.ErrorIs(t, err, companybus.ErrNotFound)

	_, err = db.BusDomain.Company.QueryByID(ctx, uuid.New())
	assert.ErrorIs(t, err, companybus.ErrNotFound)
}

func Test_DeleteRestrictedByGrants(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	cmp := db.SeedCompany(t, "Acme")
	usr := db.SeedUser(t, &cmp.ID)
	dsh := db.SeedDashboard(t, cmp.ID)

	_, err := db.BusDomain.Grant.Create(ctx, usr.ID, dsh.ID)
	require.NoError(t, err)

	var fkErr sqldb.ErrDBForeignKey
	err = db.BusDomain.Company.Delete(ctx, cmp)
	assert.ErrorAs(t, err, &fkErr)

	_, err = db.BusDomain.Company.QueryByID(ctx, cmp.ID)
	assert.NoError(t, err)
}

func Test_Query(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	db.SeedCompany(t, "Acme")
	db.SeedCompany(t, "Globex")
	initech := db.SeedCompany(t, "Initech")

	_, err := db.BusDomain.Tenant.DeactivateCompany(ctx, initech)
	require.NoError(t, err)

	orderBy := order.NewBy(companybus.OrderByName, order.ASC)

	cmps, err := db.BusDomain.Company.Query(ctx, companybus.QueryFilter{}, orderBy, page.MustParse("1", "10"))
	require.NoError(t, err)
	require.Len(t, cmps, 3)
	assert.Equal(t, "Acme", cmps[0].Name.String())
	assert.Equal(t, "Initech", cmps[2].Name.String())

	active := true
	n, err := db.BusDomain.Company.Count(ctx, companybus.QueryFilter{Active: &active})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	nme := "glob"
	cmps, err = db.BusDomain.Company.Query(ctx, companybus.QueryFilter{Name: &nme}, orderBy, page.MustParse("1", "10"))
	require.NoError(t, err)
	require.Len(t, cmps, 1)
	assert.Equal(t, "Globex", cmps[0].Name.String())
}
