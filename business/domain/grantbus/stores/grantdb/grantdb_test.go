package grantdb_test

import (
	"context"
	"io"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jcpaschoal/biadmin/business/domain/dashboardbus"
	"github.com/jcpaschoal/biadmin/business/domain/grantbus"
	"github.com/jcpaschoal/biadmin/business/domain/grantbus/stores/grantdb"
	"github.com/jcpaschoal/biadmin/business/domain/userbus"
	"github.com/jcpaschoal/biadmin/business/sdk/page"
	"github.com/jcpaschoal/biadmin/foundation/logger"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*grantdb.Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := logger.New(io.Discard, logger.LevelInfo, "TEST", func(context.Context) string { return "" })

	return grantdb.NewStore(log, sqlx.NewDb(db, "postgres")), mock
}

func TestCreate(t *testing.T) {
	g := grantbus.Grant{UserID: uuid.New(), DashboardID: uuid.New()}

	tests := []struct {
		name    string
		dbErr   error
		wantErr error
	}{
		{name: "ok"},
		{name: "duplicate", dbErr: &pgconn.PgError{Code: "23505", ConstraintName: "user_dashboard_pkey"}, wantErr: grantbus.ErrConflict},
		{name: "unknown user", dbErr: &pgconn.PgError{Code: "23503", ConstraintName: "user_dashboard_user_id_fkey"}, wantErr: userbus.ErrNotFound},
		{name: "unknown dashboard", dbErr: &pgconn.PgError{Code: "23503", ConstraintName: "user_dashboard_dashboard_id_fkey"}, wantErr: dashboardbus.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newStore(t)

			exp := mock.ExpectExec("INSERT INTO user_dashboard").WithArgs(g.UserID, g.DashboardID)
			if tt.dbErr != nil {
				exp.WillReturnError(tt.dbErr)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, 1))
			}

			err := store.Create(context.Background(), g)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDelete(t *testing.T) {
	store, mock := newStore(t)
	g := grantbus.Grant{UserID: uuid.New(), DashboardID: uuid.New()}

	mock.ExpectExec("DELETE FROM user_dashboard").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM user_dashboard").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.Delete(context.Background(), g))
	assert.ErrorIs(t, store.Delete(context.Background(), g), grantbus.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryByID(t *testing.T) {
	store, mock := newStore(t)
	userID, dashboardID := uuid.New(), uuid.New()

	cols := []string{"user_id", "dashboard_id"}
	mock.ExpectQuery("FROM user_dashboard").WillReturnRows(sqlmock.NewRows(cols).AddRow(userID.String(), dashboardID.String()))
	mock.ExpectQuery("FROM user_dashboard").WillReturnRows(sqlmock.NewRows(cols))

	g, err := store.QueryByID(context.Background(), userID, dashboardID)
	require.NoError(t, err)
	assert.Equal(t, grantbus.Grant{UserID: userID, DashboardID: dashboardID}, g)

	_, err = store.QueryByID(context.Background(), userID, dashboardID)
	assert.ErrorIs(t, err, grantbus.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuery(t *testing.T) {
	store, mock := newStore(t)
	userID, dashboardID, companyID := uuid.New(), uuid.New(), uuid.New()

	rows := sqlmock.NewRows([]string{"user_id", "dashboard_id", "user_name", "user_email", "dashboard_name"}).
		AddRow(userID.String(), dashboardID.String(), nil, "bill@example.com", "Sales")

	mock.ExpectQuery(`WHERE d.company_id = \$1 ORDER BY u.email ASC`).WillReturnRows(rows)

	filter := grantbus.QueryFilter{CompanyID: &companyID}

	gds, err := store.Query(context.Background(), filter, grantbus.DefaultOrderBy, page.MustParse("1", "10"))
	require.NoError(t, err)
	require.Len(t, gds, 1)
	assert.Equal(t, "bill@example.com", gds[0].User.Email.Address)
	assert.False(t, gds[0].User.Name.Valid())
	assert.Equal(t, "Sales", gds[0].Dashboard.Name.String())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCount(t *testing.T) {
	store, mock := newStore(t)
	userID := uuid.New()

	mock.ExpectQuery("SELECT count").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := store.Count(context.Background(), grantbus.QueryFilter{UserID: &userID})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
