package dashboardbus

import (
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/biadmin/business/types/biref"
	"github.com/jcpaschoal/biadmin/business/types/name"
)

// Dashboard represents an embedded BI report published to a company.
type Dashboard struct {
	ID           uuid.UUID
	CompanyID    uuid.UUID
	Name         name.Name
	Description  *string
	ReportRef    biref.Ref
	WorkspaceRef biref.Ref
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewDashboard contains information needed to create a new dashboard.
type NewDashboard struct {
	CompanyID    uuid.UUID
	Name         name.Name
	Description  *string
	ReportRef    biref.Ref
	WorkspaceRef biref.Ref
}

// UpdateDashboard contains information needed to update a dashboard.
type UpdateDashboard struct {
	CompanyID    *uuid.UUID
	Name         *name.Name
	Description  *string
	ReportRef    *biref.Ref
	WorkspaceRef *biref.Ref
	Active       *bool
}
