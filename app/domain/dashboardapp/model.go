package dashboardapp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/biadmin/app/sdk/errs"
	"github.com/jcpaschoal/biadmin/business/domain/dashboardbus"
	"github.com/jcpaschoal/biadmin/business/types/biref"
	"github.com/jcpaschoal/biadmin/business/types/name"
)

// Dashboard represents the application model for a dashboard.
type Dashboard struct {
	ID           string `json:"id"`
	CompanyID    string `json:"companyID"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	ReportRef    string `json:"reportRef"`
	WorkspaceRef string `json:"workspaceRef"`
	Active       bool   `json:"active"`
	DateCreated  string `json:"dateCreated"`
	DateUpdated  string `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (d Dashboard) Encode() ([]byte, string, error) {
	data, err := json.Marshal(d)
	return data, "application/json", err
}

func toAppDashboard(bus dashboardbus.Dashboard) Dashboard {
	var desc string
	if bus.Description != nil {
		desc = *bus.Description
	}

	return Dashboard{
		ID:           bus.ID.String(),
		CompanyID:    bus.CompanyID.String(),
		Name:         bus.Name.String(),
		Description:  desc,
		ReportRef:    bus.ReportRef.String(),
		WorkspaceRef: bus.WorkspaceRef.String(),
		Active:       bus.Active,
		DateCreated:  bus.CreatedAt.Format(time.RFC3339),
		DateUpdated:  bus.UpdatedAt.Format(time.RFC3339),
	}
}

func toAppDashboards(ds []dashboardbus.Dashboard) []Dashboard {
	app := make([]Dashboard, len(ds))
	for i, d := range ds {
		app[i] = toAppDashboard(d)
	}
	return app
}

// =============================================================================

// NewDashboard defines the data needed to add a new dashboard.
type NewDashboard struct {
	CompanyID    string  `json:"companyID" validate:"required,uuid"`
	Name         string  `json:"name" validate:"required"`
	Description  *string `json:"description" validate:"omitempty,max=500"`
	ReportRef    string  `json:"reportRef" validate:"required"`
	WorkspaceRef string  `json:"workspaceRef" validate:"required"`
}

// Decode implements the web.Decoder interface.
func (app *NewDashboard) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewDashboard) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewDashboard(app NewDashboard) (dashboardbus.NewDashboard, error) {
	companyID, err := uuid.Parse(app.CompanyID)
	if err != nil {
		return dashboardbus.NewDashboard{}, fmt.Errorf("parse companyID: %w", err)
	}

	nme, err := name.Parse(app.Name)
	if err != nil {
		return dashboardbus.NewDashboard{}, fmt.Errorf("parse name: %w", err)
	}

	report, err := biref.Parse(app.ReportRef)
	if err != nil {
		return dashboardbus.NewDashboard{}, fmt.Errorf("parse reportRef: %w", err)
	}

	workspace, err := biref.Parse(app.WorkspaceRef)
	if err != nil {
		return dashboardbus.NewDashboard{}, fmt.Errorf("parse workspaceRef: %w", err)
	}

	bus := dashboardbus.NewDashboard{
		CompanyID:    companyID,
		Name:         nme,
		Description:  app.Description,
		ReportRef:    report,
		WorkspaceRef: workspace,
	}

	return bus, nil
}

// =============================================================================

// UpdateDashboard defines the data needed to update a dashboard.
type UpdateDashboard struct {
	CompanyID    *string `json:"companyID" validate:"omitempty,uuid"`
	Name         *string `json:"name"`
	Description  *string `json:"description" validate:"omitempty,max=500"`
	ReportRef    *string `json:"reportRef"`
	WorkspaceRef *string `json:"workspaceRef"`
	Active       *bool   `json:"active"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateDashboard) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateDashboard) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusUpdateDashboard(app UpdateDashboard) (dashboardbus.UpdateDashboard, error) {
	var companyID *uuid.UUID
	if app.CompanyID != nil {
		id, err := uuid.Parse(*app.CompanyID)
		if err != nil {
			return dashboardbus.UpdateDashboard{}, fmt.Errorf("parse companyID: %w", err)
		}
		companyID = &id
	}

	var nme *name.Name
	if app.Name != nil {
		nm, err := name.Parse(*app.Name)
		if err != nil {
			return dashboardbus.UpdateDashboard{}, fmt.Errorf("parse name: %w", err)
		}
		nme = &nm
	}

	var report *biref.Ref
	if app.ReportRef != nil {
		ref, err := biref.Parse(*app.ReportRef)
		if err != nil {
			return dashboardbus.UpdateDashboard{}, fmt.Errorf("parse reportRef: %w", err)
		}
		report = &ref
	}

	var workspace *biref.Ref
	if app.WorkspaceRef != nil {
		ref, err := biref.Parse(*app.WorkspaceRef)
		if err != nil {
			return dashboardbus.UpdateDashboard{}, fmt.Errorf("parse workspaceRef: %w", err)
		}
		workspace = &ref
	}

	bus := dashboardbus.UpdateDashboard{
		CompanyID:    companyID,
		Name:         nme,
		Description:  app.Description,
		ReportRef:    report,
		WorkspaceRef: workspace,
		Active:       app.Active,
	}

	return bus, nil
}
