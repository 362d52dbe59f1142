package dashboardbus

import "github.com/google/uuid"

// QueryFilter holds the available fields a query can be filtered on. A nil
// field is not applied.
type QueryFilter struct {
	ID        *uuid.UUID
	CompanyID *uuid.UUID
	UserID    *uuid.UUID
	Name      *string
	Active    *bool
}
