package grantapp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/biadmin/app/sdk/errs"
	"github.com/jcpaschoal/biadmin/business/domain/dashboardbus"
	"github.com/jcpaschoal/biadmin/business/domain/grantbus"
	"github.com/jcpaschoal/biadmin/business/domain/userbus"
)

// Grant represents a grant with the user and dashboard it binds.
type Grant struct {
	UserID        string `json:"userID"`
	UserName      string `json:"userName,omitempty"`
	UserEmail     string `json:"userEmail"`
	DashboardID   string `json:"dashboardID"`
	DashboardName string `json:"dashboardName"`
}

// Encode implements the web.Encoder interface.
func (app Grant) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppGrant(bus grantbus.GrantDetail) Grant {
	return Grant{
		UserID:        bus.UserID.String(),
		UserName:      bus.User.Name.String(),
		UserEmail:     bus.User.Email.Address,
		DashboardID:   bus.DashboardID.String(),
		DashboardName: bus.Dashboard.Name.String(),
	}
}

func toAppGrants(grants []grantbus.GrantDetail) []Grant {
	app := make([]Grant, len(grants))
	for i, g := range grants {
		app[i] = toAppGrant(g)
	}
	return app
}

// =============================================================================

// Dashboard is a dashboard as listed through its grants.
type Dashboard struct {
	ID           string `json:"id"`
	CompanyID    string `json:"companyID"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	ReportRef    string `json:"reportRef"`
	WorkspaceRef string `json:"workspaceRef"`
}

func toAppDashboards(ds []dashboardbus.Dashboard) []Dashboard {
	app := make([]Dashboard, len(ds))
	for i, d := range ds {
		var desc string
		if d.Description != nil {
			desc = *d.Description
		}

		app[i] = Dashboard{
			ID:           d.ID.String(),
			CompanyID:    d.CompanyID.String(),
			Name:         d.Name.String(),
			Description:  desc,
			ReportRef:    d.ReportRef.String(),
			WorkspaceRef: d.WorkspaceRef.String(),
		}
	}
	return app
}

// User is a user as listed through its grants.
type User struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	DateCreated string `json:"dateCreated"`
}

func toAppUsers(usrs []userbus.User) []User {
	app := make([]User, len(usrs))
	for i, u := range usrs {
		app[i] = User{
			ID:          u.ID.String(),
			Name:        u.Name.String(),
			Email:       u.Email.Address,
			Role:        u.Role.String(),
			DateCreated: u.CreatedAt.Format(time.RFC3339),
		}
	}
	return app
}

// =============================================================================

// NewGrant defines the data needed to grant a user a dashboard.
type NewGrant struct {
	UserID      string `json:"userID" validate:"required,uuid"`
	DashboardID string `json:"dashboardID" validate:"required,uuid"`
}

// Decode implements the web.Decoder interface.
func (app *NewGrant) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewGrant) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

// =============================================================================

// BulkUser assigns a list of dashboards to one user.
type BulkUser struct {
	UserID       string   `json:"userID" validate:"required,uuid"`
	DashboardIDs []string `json:"dashboardIDs" validate:"required,min=1,dive,uuid"`
}

// Decode implements the web.Decoder interface.
func (app *BulkUser) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app BulkUser) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

// BulkDashboard assigns one dashboard to a list of users.
type BulkDashboard struct {
	DashboardID string   `json:"dashboardID" validate:"required,uuid"`
	UserIDs     []string `json:"userIDs" validate:"required,min=1,dive,uuid"`
}

// Decode implements the web.Decoder interface.
func (app *BulkDashboard) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app BulkDashboard) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func parseIDs(ids []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, len(ids))
	for i, id := range ids {
		v, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parse id[%d]: %w", i, err)
		}
		out[i] = v
	}

	return out, nil
}

// =============================================================================

// Item is the outcome of one bulk item.
type Item struct {
	ID      string `json:"id"`
	Outcome string `json:"outcome"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// Report is the result of a bulk assignment. Items keep the input order.
type Report struct {
	Created int    `json:"created"`
	Skipped int    `json:"skipped"`
	Errored int    `json:"errored"`
	Items   []Item `json:"items"`
}

// Encode implements the web.Encoder interface.
func (app Report) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppReport(bus grantbus.Report) Report {
	items := make([]Item, len(bus.Results))
	for i, res := range bus.Results {
		item := Item{
			ID:      res.ID.String(),
			Outcome: res.Outcome.String(),
		}

		if res.Err != nil {
			item.Code = errs.Code(res.Err).String()
			item.Message = res.Err.Error()
		}

		items[i] = item
	}

	return Report{
		Created: len(bus.Created()),
		Skipped: len(bus.Skipped()),
		Errored: len(bus.Errored()),
		Items:   items,
	}
}
