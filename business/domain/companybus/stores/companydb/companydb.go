// Package companydb contains company related CRUD functionality.
package companydb

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jcpaschoal/biadmin/business/domain/companybus"
	"github.com/jcpaschoal/biadmin/business/sdk/order"
	"github.com/jcpaschoal/biadmin/business/sdk/page"
	"github.com/jcpaschoal/biadmin/business/sdk/sqldb"
	"github.com/jcpaschoal/biadmin/foundation/logger"
	"github.com/jmoiron/sqlx"
)

// Store manages the set of APIs for company database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (companybus.Storer, error) {
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

// Create inserts a new company into the database.
func (s *Store) Create(ctx context.Context, cmp companybus.Company) error {
	const q = `
	INSERT INTO companies
		(company_id, name, industry, is_active, created_at, updated_at)
	VALUES
		(:company_id, :name, :industry, :is_active, :created_at, :updated_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBCompany(cmp)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Update replaces a company document in the database.
func (s *Store) Update(ctx context.Context, cmp companybus.Company) error {
	const q = `
	UPDATE
		companies
	SET
		name = :name,
		industry = :industry,
		is_active = :is_active,
		updated_at = :updated_at
	WHERE
		company_id = :company_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBCompany(cmp)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Delete removes a company from the database. The schema cascades the
// delete to the company users and dashboards.
func (s *Store) Delete(ctx context.Context, cmp companybus.Company) error {
	const q = `
	DELETE FROM
		companies
	WHERE
		company_id = :company_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBCompany(cmp)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Query retrieves a list of existing companies from the database.
func (s *Store) Query(ctx context.Context, filter companybus.QueryFilter, orderBy order.By, page page.Page) ([]companybus.Company, error) {
	data := map[string]any{
		"offset":        page.Offset(),
		"rows_per_page": page.RowsPerPage(),
	}

	const q = `
	SELECT
		company_id, name, industry, is_active, created_at, updated_at
	FROM
		companies`

	buf := bytes.NewBufferString(q)
	applyFilter(filter, data, buf)

	orderByClause, err := orderByClause(orderBy)
	if err != nil {
		return nil, err
	}

	buf.WriteString(orderByClause)
	buf.WriteString(" OFFSET :offset ROWS FETCH NEXT :rows_per_page ROWS ONLY")

	var dbCmps []companyDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, buf.String(), data, &dbCmps); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusCompanies(dbCmps)
}

// Count returns the total number of companies in the DB.
func (s *Store) Count(ctx context.Context, filter companybus.QueryFilter) (int, error) {
	data := map[string]any{}

	const q = `
	SELECT
		count(1)
	FROM
		companies`

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

// QueryByID gets the specified company from the database.
func (s *Store) QueryByID(ctx context.Context, companyID uuid.UUID) (companybus.Company, error) {
	data := struct {
		ID string `db:"company_id"`
	}{
		ID: companyID.String(),
	}

	const q = `
	SELECT
		company_id, name, industry, is_active, created_at, updated_at
	FROM
		companies
	WHERE
		company_id = :company_id`

	var dbCmp companyDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbCmp); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return companybus.Company{}, fmt.Errorf("db: %w", companybus.ErrNotFound)
		}
		return companybus.Company{}, fmt.Errorf("db: %w", err)
	}

	return toBusCompany(dbCmp)
}
