// Package dashboarddb contains dashboard related CRUD functionality.
package dashboarddb

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jcpaschoal/biadmin/business/domain/companybus"
	"github.com/jcpaschoal/biadmin/business/domain/dashboardbus"
	"github.com/jcpaschoal/biadmin/business/sdk/order"
	"github.com/jcpaschoal/biadmin/business/sdk/page"
	"github.com/jcpaschoal/biadmin/business/sdk/sqldb"
	"github.com/jcpaschoal/biadmin/foundation/logger"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Store manages the set of APIs for dashboard database access.
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

// NewWithTx constructs a new Store value replacing the sqlx DB
// value with a sqlx DB value that is currently inside a transaction.
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (dashboardbus.Storer, error) {
	ec, err := sqldb.GetExtContext(tx)
	if err != nil {
		return nil, err
	}

	store := Store{
		log: s.log,
		db:  ec,
	}

	return &store, nil
}

// Create inserts a new dashboard into the database.
func (s *Store) Create(ctx context.Context, d dashboardbus.Dashboard) error {
	const q = `
	INSERT INTO dashboards
		(dashboard_id, company_id, name, description, report_ref, workspace_ref, is_active, created_at, updated_at)
	VALUES
		(:dashboard_id, :company_id, :name, :description, :report_ref, :workspace_ref, :is_active, :created_at, :updated_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBDashboard(d)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", mapError(err))
	}

	return nil
}

// Update replaces a dashboard record in the database.
func (s *Store) Update(ctx context.Context, d dashboardbus.Dashboard) error {
	const q = `
	UPDATE
		dashboards
	SET
		company_id = :company_id,
		name = :name,
		description = :description,
		report_ref = :report_ref,
		workspace_ref = :workspace_ref,
		is_active = :is_active,
		updated_at = :updated_at
	WHERE
		dashboard_id = :dashboard_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBDashboard(d)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", mapError(err))
	}

	return nil
}

// Delete removes a dashboard from the database.
func (s *Store) Delete(ctx context.Context, d dashboardbus.Dashboard) error {
	const q = `
	DELETE FROM
		dashboards
	WHERE
		dashboard_id = :dashboard_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBDashboard(d)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Query retrieves a list of existing dashboards from the database.
func (s *Store) Query(ctx context.Context, filter dashboardbus.QueryFilter, orderBy order.By, page page.Page) ([]dashboardbus.Dashboard, error) {
	data := map[string]any{
		"offset":        page.Offset(),
		"rows_per_page": page.RowsPerPage(),
	}

	const q = `
	SELECT
		d.dashboard_id, d.company_id, d.name, d.description, d.report_ref, d.workspace_ref, d.is_active, d.created_at, d.updated_at
	FROM
		dashboards AS d`

	buf := bytes.NewBufferString(q)
	applyFilter(filter, data, buf)

	orderByClause, err := orderByClause(orderBy)
	if err != nil {
		return nil, err
	}

	buf.WriteString(orderByClause)
	buf.WriteString(" OFFSET :offset ROWS FETCH NEXT :rows_per_page ROWS ONLY")

	var dbDashs []dashboardDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, buf.String(), data, &dbDashs); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusDashboards(dbDashs)
}

// Count returns the total number of dashboards in the DB.
func (s *Store) Count(ctx context.Context, filter dashboardbus.QueryFilter) (int, error) {
	data := map[string]any{}

	const q = `
	SELECT
		count(1)
	FROM
		dashboards AS d`

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

// QueryByID gets the specified dashboard from the database.
func (s *Store) QueryByID(ctx context.Context, dashboardID uuid.UUID) (dashboardbus.Dashboard, error) {
	data := struct {
		ID string `db:"dashboard_id"`
	}{
		ID: dashboardID.String(),
	}

	const q = `
	SELECT
		d.dashboard_id, d.company_id, d.name, d.description, d.report_ref, d.workspace_ref, d.is_active, d.created_at, d.updated_at
	FROM
		dashboards AS d
	WHERE
		d.dashboard_id = :dashboard_id`

	var dbDash dashboardDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbDash); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return dashboardbus.Dashboard{}, fmt.Errorf("db: %w", dashboardbus.ErrNotFound)
		}
		return dashboardbus.Dashboard{}, fmt.Errorf("db: %w", err)
	}

	return toBusDashboard(dbDash)
}

// QueryByIDs gets the specified dashboards from the database.
func (s *Store) QueryByIDs(ctx context.Context, dashboardIDs []uuid.UUID) ([]dashboardbus.Dashboard, error) {
	ids := make([]string, len(dashboardIDs))
	for i, id := range dashboardIDs {
		ids[i] = id.String()
	}

	data := struct {
		IDs any `db:"dashboard_ids"`
	}{
		IDs: pq.Array(ids),
	}

	const q = `
	SELECT
		d.dashboard_id, d.company_id, d.name, d.description, d.report_ref, d.workspace_ref, d.is_active, d.created_at, d.updated_at
	FROM
		dashboards AS d
	WHERE
		d.dashboard_id = ANY(:dashboard_ids)`

	var dbDashs []dashboardDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &dbDashs); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusDashboards(dbDashs)
}

func mapError(err error) error {
	var fkErr sqldb.ErrDBForeignKey
	if errors.As(err, &fkErr) {
		return companybus.ErrNotFound
	}

	return err
}
