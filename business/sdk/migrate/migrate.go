// Package migrate contains the database schema and the logic to apply it.
package migrate

import (
	"context"
	"fmt"

	"github.com/jcpaschoal/biadmin/foundation/logger"
	"github.com/jmoiron/sqlx"
)

// Migration represents one versioned schema change.
type Migration struct {
	Version     int
	Description string
	SQL         string
}

// Migrations returns the ordered schema history.
func Migrations() []Migration {
	return []Migration{
		{
			Version:     1,
			Description: "Create companies table",
			SQL: `
				CREATE TABLE IF NOT EXISTS companies (
					company_id UUID PRIMARY KEY,
					name       VARCHAR(100) NOT NULL CHECK (length(btrim(name)) > 0),
					industry   VARCHAR(100),
					is_active  BOOLEAN NOT NULL DEFAULT TRUE,
					created_at TIMESTAMP NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMP NOT NULL DEFAULT NOW()
				);

				CREATE INDEX IF NOT EXISTS idx_companies_is_active ON companies(is_active);
			`,
		},
		{
			Version:     2,
			Description: "Create users table",
			SQL: `
				CREATE TABLE IF NOT EXISTS users (
					user_id       UUID PRIMARY KEY,
					company_id    UUID REFERENCES companies(company_id) ON DELETE CASCADE,
					name          VARCHAR(100),
					email         VARCHAR(120) NOT NULL,
					password_hash TEXT NOT NULL,
					role          VARCHAR(20) NOT NULL DEFAULT 'user' CHECK (role IN ('admin', 'user')),
					is_active     BOOLEAN NOT NULL DEFAULT TRUE,
					created_at    TIMESTAMP NOT NULL DEFAULT NOW(),
					updated_at    TIMESTAMP NOT NULL DEFAULT NOW(),
					CONSTRAINT users_email_key UNIQUE (email)
				);

				CREATE INDEX IF NOT EXISTS idx_users_company_id ON users(company_id);
			`,
		},
		{
			Version:     3,
			Description: "Create dashboards table",
			SQL: `
				CREATE TABLE IF NOT EXISTS dashboards (
					dashboard_id  UUID PRIMARY KEY,
					company_id    UUID NOT NULL REFERENCES companies(company_id) ON DELETE CASCADE,
					name          VARCHAR(100) NOT NULL,
					description   TEXT,
					report_ref    VARCHAR(255) NOT NULL CHECK (length(btrim(report_ref)) > 0),
					workspace_ref VARCHAR(255) NOT NULL CHECK (length(btrim(workspace_ref)) > 0),
					is_active     BOOLEAN NOT NULL DEFAULT TRUE,
					created_at    TIMESTAMP NOT NULL DEFAULT NOW(),
					updated_at    TIMESTAMP NOT NULL DEFAULT NOW()
				);

				CREATE INDEX IF NOT EXISTS idx_dashboards_company_id ON dashboards(company_id);
			`,
		},
		{
			Version:     4,
			Description: "Create user_dashboard grants table",
			SQL: `
				CREATE TABLE IF NOT EXISTS user_dashboard (
					user_id      UUID NOT NULL,
					dashboard_id UUID NOT NULL,
					PRIMARY KEY (user_id, dashboard_id),
					CONSTRAINT user_dashboard_user_id_fkey FOREIGN KEY (user_id)
						REFERENCES users(user_id) ON DELETE RESTRICT,
					CONSTRAINT user_dashboard_dashboard_id_fkey FOREIGN KEY (dashboard_id)
						REFERENCES dashboards(dashboard_id) ON DELETE RESTRICT
				);

				CREATE INDEX IF NOT EXISTS idx_user_dashboard_dashboard_id ON user_dashboard(dashboard_id);
			`,
		},
		{
			Version:     5,
			Description: "Create audit_log table",
			SQL: `
				CREATE TABLE IF NOT EXISTS audit_log (
					audit_id    UUID PRIMARY KEY,
					operation   VARCHAR(30) NOT NULL,
					entity_kind VARCHAR(30) NOT NULL,
					entity_id   UUID NOT NULL,
					detail      JSONB NOT NULL DEFAULT '{}',
					created_at  TIMESTAMP NOT NULL DEFAULT NOW()
				);

				CREATE INDEX IF NOT EXISTS idx_audit_log_entity ON audit_log(entity_kind, entity_id);
			`,
		},
	}
}

// Migrate applies every pending migration, each one in its own transaction,
// and records it in schema_migrations.
func Migrate(ctx context.Context, log *logger.Logger, db *sqlx.DB) error {
	const createTable = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version     INT PRIMARY KEY,
		description TEXT NOT NULL,
		applied_at  TIMESTAMP NOT NULL DEFAULT NOW()
	)`

	if _, err := db.ExecContext(ctx, createTable); err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	applied, err := appliedVersions(ctx, db)
	if err != nil {
		return err
	}

	for _, m := range Migrations() {
		if applied[m.Version] {
			continue
		}

		log.Info(ctx, "migrate", "version", m.Version, "description", m.Description)

		if err := apply(ctx, db, m); err != nil {
			return fmt.Errorf("migration %d: %w", m.Version, err)
		}
	}

	return nil
}

func appliedVersions(ctx context.Context, db *sqlx.DB) (map[int]bool, error) {
	var versions []int
	if err := db.SelectContext(ctx, &versions, `SELECT version FROM schema_migrations ORDER BY version`); err != nil {
		return nil, fmt.Errorf("query migrations: %w", err)
	}

	applied := make(map[int]bool, len(versions))
	for _, v := range versions {
		applied[v] = true
	}

	return applied, nil
}

func apply(ctx context.Context, db *sqlx.DB, m Migration) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		return fmt.Errorf("exec: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version, description) VALUES ($1, $2)`, m.Version, m.Description); err != nil {
		return fmt.Errorf("record: %w", err)
	}

	return tx.Commit()
}
