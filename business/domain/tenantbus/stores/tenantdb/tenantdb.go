// Package tenantdb contains the cross entity queries used by the tenant
// lifecycle guard.
package tenantdb

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jcpaschoal/biadmin/business/domain/tenantbus"
	"github.com/jcpaschoal/biadmin/business/sdk/sqldb"
	"github.com/jcpaschoal/biadmin/foundation/logger"
	"github.com/jmoiron/sqlx"
)

// Store manages the set of APIs for tenant database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (tenantbus.Storer, error) {
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

type dependentsDB struct {
	Users      int `db:"users"`
	Dashboards int `db:"dashboards"`
	Grants     int `db:"grants"`
}

// CountCompanyDependents counts the users, dashboards and grants that a hard
// delete of the company would remove.
func (s *Store) CountCompanyDependents(ctx context.Context, companyID uuid.UUID) (tenantbus.Dependents, error) {
	data := struct {
		CompanyID string `db:"company_id"`
	}{
		CompanyID: companyID.String(),
	}

	const q = `
	SELECT
		(SELECT count(1) FROM users WHERE company_id = :company_id) AS users,
		(SELECT count(1) FROM dashboards WHERE company_id = :company_id) AS dashboards,
		(SELECT count(1) FROM user_dashboard AS g
			WHERE g.user_id IN (SELECT user_id FROM users WHERE company_id = :company_id)
			OR g.dashboard_id IN (SELECT dashboard_id FROM dashboards WHERE company_id = :company_id)) AS grants`

	var dbDeps dependentsDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbDeps); err != nil {
		return tenantbus.Dependents{}, fmt.Errorf("namedquerystruct: %w", err)
	}

	return tenantbus.Dependents{
		Users:      dbDeps.Users,
		Dashboards: dbDeps.Dashboards,
		Grants:     dbDeps.Grants,
	}, nil
}

// CountUserGrants returns the number of grants the user holds.
func (s *Store) CountUserGrants(ctx context.Context, userID uuid.UUID) (int, error) {
	data := struct {
		UserID string `db:"user_id"`
	}{
		UserID: userID.String(),
	}

	const q = `
	SELECT
		count(1)
	FROM
		user_dashboard
	WHERE
		user_id = :user_id`

	return s.count(ctx, q, data)
}

// CountDashboardGrants returns the number of grants referencing the dashboard.
func (s *Store) CountDashboardGrants(ctx context.Context, dashboardID uuid.UUID) (int, error) {
	data := struct {
		DashboardID string `db:"dashboard_id"`
	}{
		DashboardID: dashboardID.String(),
	}

	const q = `
	SELECT
		count(1)
	FROM
		user_dashboard
	WHERE
		dashboard_id = :dashboard_id`

	return s.count(ctx, q, data)
}

// DeleteCompanyGrants removes every grant whose user or dashboard belongs
// to the company.
func (s *Store) DeleteCompanyGrants(ctx context.Context, companyID uuid.UUID) error {
	data := struct {
		CompanyID string `db:"company_id"`
	}{
		CompanyID: companyID.String(),
	}

	const q = `
	DELETE FROM
		user_dashboard
	WHERE
		user_id IN (SELECT user_id FROM users WHERE company_id = :company_id)
		OR dashboard_id IN (SELECT dashboard_id FROM dashboards WHERE company_id = :company_id)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, data); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// DeleteUserGrants removes every grant the user holds.
func (s *Store) DeleteUserGrants(ctx context.Context, userID uuid.UUID) error {
	data := struct {
		UserID string `db:"user_id"`
	}{
		UserID: userID.String(),
	}

	const q = `
	DELETE FROM
		user_dashboard
	WHERE
		user_id = :user_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, data); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// DeleteDashboardGrants removes every grant referencing the dashboard.
func (s *Store) DeleteDashboardGrants(ctx context.Context, dashboardID uuid.UUID) error {
	data := struct {
		DashboardID string `db:"dashboard_id"`
	}{
		DashboardID: dashboardID.String(),
	}

	const q = `
	DELETE FROM
		user_dashboard
	WHERE
		dashboard_id = :dashboard_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, data); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

func (s *Store) count(ctx context.Context, q string, data any) (int, error) {
	var count struct {
		Count int `db:"count"`
	}
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &count); err != nil {
		return 0, fmt.Errorf("namedquerystruct: %w", err)
	}

	return count.Count, nil
}
