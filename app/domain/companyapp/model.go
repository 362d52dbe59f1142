package companyapp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jcpaschoal/biadmin/app/sdk/errs"
	"github.com/jcpaschoal/biadmin/business/domain/companybus"
	"github.com/jcpaschoal/biadmin/business/types/name"
)

// Company represents information about a company.
type Company struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Industry    string `json:"industry,omitempty"`
	Active      bool   `json:"active"`
	DateCreated string `json:"dateCreated"`
	DateUpdated string `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (app Company) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppCompany(bus companybus.Company) Company {
	var industry string
	if bus.Industry != nil {
		industry = *bus.Industry
	}

	return Company{
		ID:          bus.ID.String(),
		Name:        bus.Name.String(),
		Industry:    industry,
		Active:      bus.Active,
		DateCreated: bus.CreatedAt.Format(time.RFC3339),
		DateUpdated: bus.UpdatedAt.Format(time.RFC3339),
	}
}

func toAppCompanies(cmps []companybus.Company) []Company {
	app := make([]Company, len(cmps))
	for i, cmp := range cmps {
		app[i] = toAppCompany(cmp)
	}
	return app
}

// =============================================================================

// NewCompany defines the data needed to add a new company.
type NewCompany struct {
	Name     string  `json:"name" validate:"required,max=100"`
	Industry *string `json:"industry" validate:"omitempty,max=100"`
}

// Decode implements the web.Decoder interface.
func (app *NewCompany) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewCompany) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewCompany(app NewCompany) (companybus.NewCompany, error) {
	nme, err := name.Parse(app.Name)
	if err != nil {
		return companybus.NewCompany{}, fmt.Errorf("parse name: %w", err)
	}

	bus := companybus.NewCompany{
		Name:     nme,
		Industry: app.Industry,
	}

	return bus, nil
}

// =============================================================================

// UpdateCompany defines the data needed to update a company.
type UpdateCompany struct {
	Name     *string `json:"name" validate:"omitempty,max=100"`
	Industry *string `json:"industry" validate:"omitempty,max=100"`
	Active   *bool   `json:"active"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateCompany) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateCompany) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusUpdateCompany(app UpdateCompany) (companybus.UpdateCompany, error) {
	var nme *name.Name
	if app.Name != nil {
		nm, err := name.Parse(*app.Name)
		if err != nil {
			return companybus.UpdateCompany{}, fmt.Errorf("parse name: %w", err)
		}
		nme = &nm
	}

	bus := companybus.UpdateCompany{
		Name:     nme,
		Industry: app.Industry,
		Active:   app.Active,
	}

	return bus, nil
}

// =============================================================================

// Deleted reports what a hard delete removed.
type Deleted struct {
	ID         string `json:"id"`
	Users      int    `json:"users"`
	Dashboards int    `json:"dashboards"`
	Grants     int    `json:"grants"`
}

// Encode implements the web.Encoder interface.
func (app Deleted) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}
