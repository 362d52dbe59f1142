package sqldb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jcpaschoal/biadmin/foundation/logger"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	other := errors.New("boom")

	tests := []struct {
		name  string
		err   error
		check func(t *testing.T, err error)
	}{
		{
			name: "unique",
			err:  fmt.Errorf("exec: %w", &pgconn.PgError{Code: uniqueViolation, ConstraintName: "users_email_key"}),
			check: func(t *testing.T, err error) {
				var dup ErrDBDuplicatedEntry
				require.ErrorAs(t, err, &dup)
				assert.Equal(t, "users_email_key", dup.Constraint)
			},
		},
		{
			name: "foreign key",
			err:  &pgconn.PgError{Code: foreignKeyViolation, ConstraintName: "user_dashboard_user_id_fkey"},
			check: func(t *testing.T, err error) {
				var fk ErrDBForeignKey
				require.ErrorAs(t, err, &fk)
				assert.Equal(t, "user_dashboard_user_id_fkey", fk.Constraint)
			},
		},
		{
			name: "undefined table",
			err:  &pgconn.PgError{Code: undefinedTable},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrUndefinedTable)
			},
		},
		{
			name: "other pg code",
			err:  &pgconn.PgError{Code: "40001"},
			check: func(t *testing.T, err error) {
				var pgErr *pgconn.PgError
				assert.ErrorAs(t, err, &pgErr)
			},
		},
		{
			name: "not a driver error",
			err:  other,
			check: func(t *testing.T, err error) {
				assert.Equal(t, other, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, mapError(tt.err))
		})
	}
}

func TestQueryString(t *testing.T) {
	data := struct {
		Name  string  `db:"name"`
		Email *string `db:"email"`
		Rows  int     `db:"rows"`
	}{
		Name: "Acme",
		Rows: 10,
	}

	q := queryString("SELECT *\n\tFROM companies WHERE name = :name AND email = :email LIMIT :rows", data)
	assert.Equal(t, "SELECT * FROM companies WHERE name = 'Acme' AND email = NULL LIMIT 10", q)
}

func TestNamedQueryStructNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	log := logger.New(io.Discard, logger.LevelInfo, "TEST", func(context.Context) string { return "" })

	mock.ExpectQuery("SELECT true").WillReturnRows(sqlmock.NewRows([]string{"ok"}))

	var dest struct {
		OK bool `db:"ok"`
	}
	err = QueryStruct(context.Background(), log, sqlx.NewDb(db, "postgres"), "SELECT true AS ok", &dest)
	assert.ErrorIs(t, err, ErrDBNotFound)
}

func TestNamedExecContextRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	log := logger.New(io.Discard, logger.LevelInfo, "TEST", func(context.Context) string { return "" })

	mock.ExpectExec("UPDATE companies").WithArgs("Acme").WillReturnResult(sqlmock.NewResult(0, 2))

	data := struct {
		Name string `db:"name"`
	}{
		Name: "Acme",
	}

	n, err := NamedExecContextRows(context.Background(), log, sqlx.NewDb(db, "postgres"), "UPDATE companies SET active = false WHERE name = :name", data)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
