package dashboarddb

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/biadmin/business/domain/dashboardbus"
	"github.com/jcpaschoal/biadmin/business/types/biref"
	"github.com/jcpaschoal/biadmin/business/types/name"
)

type dashboardDB struct {
	ID           uuid.UUID      `db:"dashboard_id"`
	CompanyID    uuid.UUID      `db:"company_id"`
	Name         string         `db:"name"`
	Description  sql.NullString `db:"description"`
	ReportRef    string         `db:"report_ref"`
	WorkspaceRef string         `db:"workspace_ref"`
	Active       bool           `db:"is_active"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func toDBDashboard(bus dashboardbus.Dashboard) dashboardDB {
	var description sql.NullString
	if bus.Description != nil {
		description = sql.NullString{String: *bus.Description, Valid: true}
	}

	return dashboardDB{
		ID:           bus.ID,
		CompanyID:    bus.CompanyID,
		Name:         bus.Name.String(),
		Description:  description,
		ReportRef:    bus.ReportRef.String(),
		WorkspaceRef: bus.WorkspaceRef.String(),
		Active:       bus.Active,
		CreatedAt:    bus.CreatedAt.UTC(),
		UpdatedAt:    bus.UpdatedAt.UTC(),
	}
}

func toBusDashboard(db dashboardDB) (dashboardbus.Dashboard, error) {
	var description *string
	if db.Description.Valid {
		description = &db.Description.String
	}

	n, err := name.Parse(db.Name)
	if err != nil {
		return dashboardbus.Dashboard{}, fmt.Errorf("parse name: %w", err)
	}

	report, err := biref.Parse(db.ReportRef)
	if err != nil {
		return dashboardbus.Dashboard{}, fmt.Errorf("parse report ref: %w", err)
	}

	workspace, err := biref.Parse(db.WorkspaceRef)
	if err != nil {
		return dashboardbus.Dashboard{}, fmt.Errorf("parse workspace ref: %w", err)
	}

	return dashboardbus.Dashboard{
		ID:           db.ID,
		CompanyID:    db.CompanyID,
		Name:         n,
		Description:  description,
		ReportRef:    report,
		WorkspaceRef: workspace,
		Active:       db.Active,
		CreatedAt:    db.CreatedAt.In(time.Local),
		UpdatedAt:    db.UpdatedAt.In(time.Local),
	}, nil
}

func toBusDashboards(dbs []dashboardDB) ([]dashboardbus.Dashboard, error) {
	bus := make([]dashboardbus.Dashboard, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusDashboard(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
