package tenantdb_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jcpaschoal/biadmin/business/domain/tenantbus"
	"github.com/jcpaschoal/biadmin/business/domain/tenantbus/stores/tenantdb"
	"github.com/jcpaschoal/biadmin/foundation/logger"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*tenantdb.Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := logger.New(io.Discard, logger.LevelInfo, "TEST", func(context.Context) string { return "" })

	return tenantdb.NewStore(log, sqlx.NewDb(db, "postgres")), mock
}

func TestCountCompanyDependents(t *testing.T) {
	store, mock := newStore(t)
	companyID := uuid.New()
	id := companyID.String()

	rows := sqlmock.NewRows([]string{"users", "dashboards", "grants"}).AddRow(4, 2, 7)
	mock.ExpectQuery("AS users").WithArgs(id, id, id, id).WillReturnRows(rows)

	deps, err := store.CountCompanyDependents(context.Background(), companyID)
	require.NoError(t, err)
	assert.Equal(t, tenantbus.Dependents{Users: 4, Dashboards: 2, Grants: 7}, deps)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountGrants(t *testing.T) {
	store, mock := newStore(t)

	mock.ExpectQuery("WHERE user_id = \\$1").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery("WHERE dashboard_id = \\$1").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	n, err := store.CountUserGrants(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = store.CountDashboardGrants(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteGrants(t *testing.T) {
	store, mock := newStore(t)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM user_dashboard WHERE user_id IN").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM user_dashboard WHERE user_id =").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM user_dashboard WHERE dashboard_id =").WillReturnError(errors.New("connection reset"))

	require.NoError(t, store.DeleteCompanyGrants(ctx, uuid.New()))
	require.NoError(t, store.DeleteUserGrants(ctx, uuid.New()))
	assert.Error(t, store.DeleteDashboardGrants(ctx, uuid.New()))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewWithTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	log := logger.New(io.Discard, logger.LevelInfo, "TEST", func(context.Context) string { return "" })
	sdb := sqlx.NewDb(db, "postgres")

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM user_dashboard").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	tx, err := sdb.Beginx()
	require.NoError(t, err)

	txStore, err := tenantdb.NewStore(log, sdb).NewWithTx(tx)
	require.NoError(t, err)

	require.NoError(t, txStore.DeleteUserGrants(context.Background(), uuid.New()))
	require.NoError(t, tx.Rollback())

	assert.NoError(t, mock.ExpectationsWereMet())
}
