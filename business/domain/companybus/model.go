package companybus

import (
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/biadmin/business/types/name"
)

// Company represents a customer organization. Users and dashboards belong
// to exactly one company.
type Company struct {
	ID        uuid.UUID
	Name      name.Name
	Industry  *string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCompany contains information needed to create a new company.
type NewCompany struct {
	Name     name.Name
	Industry *string
}

// UpdateCompany contains information needed to update a company.
type UpdateCompany struct {
	Name     *name.Name
	Industry *string
	Active   *bool
}
