// Package grantdb contains grant related CRUD functionality.
package grantdb

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jcpaschoal/biadmin/business/domain/dashboardbus"
	"github.com/jcpaschoal/biadmin/business/domain/grantbus"
	"github.com/jcpaschoal/biadmin/business/domain/userbus"
	"github.com/jcpaschoal/biadmin/business/sdk/order"
	"github.com/jcpaschoal/biadmin/business/sdk/page"
	"github.com/jcpaschoal/biadmin/business/sdk/sqldb"
	"github.com/jcpaschoal/biadmin/foundation/logger"
	"github.com/jmoiron/sqlx"
)

// Names of the foreign key constraints on the grant table.
const (
	userFKey      = "user_dashboard_user_id_fkey"
	dashboardFKey = "user_dashboard_dashboard_id_fkey"
)

// Store manages the set of APIs for grant database access.
type Store struct {
	log *logger.Logger
	db  sqlx.ExtContext
}

// NewStore constructs the api for data access.
func NewStore(log *logger.Logger, db *sqlx.DB) *Store {
	return &Store{
		log: log,
		db:  db,
	}
}

// Create inserts a new grant into the database.
func (s *Store) Create(ctx context.Context, g grantbus.Grant) error {
	const q = `
	INSERT INTO user_dashboard
		(user_id, dashboard_id)
	VALUES
		(:user_id, :dashboard_id)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBGrant(g)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", mapError(err))
	}

	return nil
}

// Delete removes a grant from the database.
func (s *Store) Delete(ctx context.Context, g grantbus.Grant) error {
	const q = `
	DELETE FROM
		user_dashboard
	WHERE
		user_id = :user_id AND dashboard_id = :dashboard_id`

	n, err := sqldb.NamedExecContextRows(ctx, s.log, s.db, q, toDBGrant(g))
	if err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	if n == 0 {
		return grantbus.ErrNotFound
	}

	return nil
}

// QueryByID gets the specified grant from the database.
func (s *Store) QueryByID(ctx context.Context, userID uuid.UUID, dashboardID uuid.UUID) (grantbus.Grant, error) {
	data := grantDB{
		UserID:      userID,
		DashboardID: dashboardID,
	}

	const q = `
	SELECT
		user_id, dashboard_id
	FROM
		user_dashboard
	WHERE
		user_id = :user_id AND dashboard_id = :dashboard_id`

	var dbGrant grantDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbGrant); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return grantbus.Grant{}, fmt.Errorf("db: %w", grantbus.ErrNotFound)
		}
		return grantbus.Grant{}, fmt.Errorf("db: %w", err)
	}

	return toBusGrant(dbGrant), nil
}

// Query retrieves a list of grants joined with their user and dashboard.
func (s *Store) Query(ctx context.Context, filter grantbus.QueryFilter, orderBy order.By, page page.Page) ([]grantbus.GrantDetail, error) {
	data := map[string]any{
		"offset":        page.Offset(),
		"rows_per_page": page.RowsPerPage(),
	}

	const q = `
	SELECT
		g.user_id, g.dashboard_id, u.name AS user_name, u.email AS user_email, d.name AS dashboard_name
	FROM
		user_dashboard AS g
	JOIN
		users AS u ON u.user_id = g.user_id
	JOIN
		dashboards AS d ON d.dashboard_id = g.dashboard_id`

	buf := bytes.NewBufferString(q)
	applyFilter(filter, data, buf)

	orderByClause, err := orderByClause(orderBy)
	if err != nil {
		return nil, err
	}

	buf.WriteString(orderByClause)
	buf.WriteString(" OFFSET :offset ROWS FETCH NEXT :rows_per_page ROWS ONLY")

	var dbGDs []grantDetailDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, buf.String(), data, &dbGDs); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusGrantDetails(dbGDs)
}

// Count returns the total number of grants in the DB.
func (s *Store) Count(ctx context.Context, filter grantbus.QueryFilter) (int, error) {
	data := map[string]any{}

	const q = `
	SELECT
		count(1)
	FROM
		user_dashboard AS g
	JOIN
		dashboards AS d ON d.dashboard_id = g.dashboard_id`

	buf := bytes.NewBufferString(q)
	applyFilter(filter, data, buf)

	var count struct {
		Count int `db:"count"`
	}
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, buf.String(), data, &count); err != nil {
		return 0, fmt.Errorf("db: %w", err)
	}

	return count.Count, nil
}

func mapError(err error) error {
	var dupErr sqldb.ErrDBDuplicatedEntry
	if errors.As(err, &dupErr) {
		return grantbus.ErrConflict
	}

	var fkErr sqldb.ErrDBForeignKey
	if errors.As(err, &fkErr) {
		switch fkErr.Constraint {
		case userFKey:
			return userbus.ErrNotFound
		case dashboardFKey:
			return dashboardbus.ErrNotFound
		}
	}

	return err
}
