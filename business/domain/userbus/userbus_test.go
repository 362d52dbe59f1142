package userbus_test

import (
	"context"
	"net/mail"
	"testing"

	"github.com/google/uuid"
	"github.com/jcpaschoal/biadmin/business/domain/companybus"
	"github.com/jcpaschoal/biadmin/business/domain/userbus"
	"github.com/jcpaschoal/biadmin/business/sdk/dbtest"
	"github.com/jcpaschoal/biadmin/business/sdk/page"
	"github.com/jcpaschoal/biadmin/business/sdk/sqldb"
	"github.com/jcpaschoal/biadmin/business/types/name"
	"github.com/jcpaschoal/biadmin/business/types/password"
	"github.com/jcpaschoal/biadmin/business/types/role"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Create(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	cmp := db.SeedCompany(t, "Acme")

	nu := userbus.NewUser{
		CompanyID: &cmp.ID,
		Name:      name.MustParseNull("Bill Kennedy"),
		Email:     mail.Address{Address: "bill@example.com"},
		Role:      role.Admin,
		Password:  password.MustParse("gophers"),
	}

	usr, err := db.BusDomain.User.Create(ctx, nu)
	require.NoError(t, err)
	assert.True(t, usr.Active)
	assert.Equal(t, role.Admin, usr.Role)
	assert.NotEqual(t, []byte("gophers"), usr.PasswordHash)

	t.Run("duplicate email", func(t *testing.T) {
		dup := nu
		dup.Email = mail.Address{Address: "BILL@example.com"}

		_, err := db.BusDomain.User.Create(ctx, dup)
		assert.ErrorIs(t, err, userbus.ErrUniqueEmail)
	})

	t.Run("unknown company", func(t *testing.T) {
		missing := uuid.New()
		bad := nu
		bad.CompanyID = &missing
		bad.Email = mail.Address{Address: "other@example.com"}

		_, err := db.BusDomain.User.Create(ctx, bad)
		assert.ErrorIs(t, err, companybus.ErrNotFound)
	})
}

func Test_Update(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	acme := db.SeedCompany(t, "Acme")
	globex := db.SeedCompany(t, "Globex")
	usr := db.SeedUser(t, &acme.ID)

	usr, err := db.BusDomain.User.Update(ctx, usr, userbus.UpdateUser{CompanyID: &globex.ID})
	require.NoError(t, err)
	require.NotNil(t, usr.CompanyID)
	assert.Equal(t, globex.ID, *usr.CompanyID)
	assert.True(t, usr.MemberOf(globex.ID))
	assert.False(t, usr.MemberOf(acme.ID))

	detach := uuid.Nil
	usr, err = db.BusDomain.User.Update(ctx, usr, userbus.UpdateUser{CompanyID: &detach})
	require.NoError(t, err)
	assert.Nil(t, usr.CompanyID)
	assert.True(t, usr.BelongsTo(acme.ID))
	assert.True(t, usr.BelongsTo(globex.ID))
	assert.False(t, usr.MemberOf(acme.ID))

	other := db.SeedUser(t, nil)
	_, err = db.BusDomain.User.Update(ctx, usr, userbus.UpdateUser{Email: &other.Email})
	assert.ErrorIs(t, err, userbus.ErrUniqueEmail)
}

func Test_Authenticate(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	usr := db.SeedUser(t, nil)

	got, err := db.BusDomain.User.Authenticate(ctx, usr.Email, "gophers")
	require.NoError(t, err)
	assert.Equal(t, usr.ID, got.ID)

	_, err = db.BusDomain.User.Authenticate(ctx, usr.Email, "wrong-password")
	assert.ErrorIs(t, err, userbus.ErrAuthenticationFailure)

	_, err = db.BusDomain.Tenant.DeactivateUser(ctx, usr)
	require.NoError(t, err)

	_, err = db.BusDomain.User.Authenticate(ctx, usr.Email, "gophers")
	assert.ErrorIs(t, err, userbus.ErrAuthenticationFailure)
}

func Test_DeleteWithGrants(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	cmp := db.SeedCompany(t, "Acme")
	usr := db.SeedUser(t, &cmp.ID)
	dsh := db.SeedDashboard(t, cmp.ID)

	_, err := db.BusDomain.Grant.Create(ctx, usr.ID, dsh.ID)
	require.NoError(t, err)

	var fkErr sqldb.ErrDBForeignKey
	err = db.BusDomain.User.Delete(ctx, usr)
	assert.ErrorAs(t, err, &fkErr)
}

func Test_Query(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	acme := db.SeedCompany(t, "Acme")
	globex := db.SeedCompany(t, "Globex")
	db.SeedUser(t, &acme.ID)
	db.SeedUser(t, &acme.ID)
	db.SeedUser(t, &globex.ID)

	filter := userbus.QueryFilter{CompanyID: &acme.ID}

	usrs, err := db.BusDomain.User.Query(ctx, filter, userbus.DefaultOrderBy, page.MustParse("1", "1"))
	require.NoError(t, err)
	assert.Len(t, usrs, 1)

	n, err := db.BusDomain.User.Count(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	usrs, err = db.BusDomain.User.QueryByIDs(ctx, []uuid.UUID{uuid.New()})
	require.NoError(t, err)
	assert.Empty(t, usrs)
}
