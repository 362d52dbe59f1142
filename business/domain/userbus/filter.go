package userbus

import (
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/biadmin/business/types/role"
)

// QueryFilter holds the available fields a query can be filtered on. A nil
// field is not applied.
type QueryFilter struct {
	ID             *uuid.UUID
	CompanyID      *uuid.UUID
	DashboardID    *uuid.UUID
	Name           *string
	Email          *string
	Role           *role.Role
	Active         *bool
	StartCreatedAt *time.Time
	EndCreatedAt   *time.Time
}
