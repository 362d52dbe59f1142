package grantbus

import "github.com/google/uuid"

// QueryFilter holds the available fields a query can be filtered on. The
// company filter matches grants whose dashboard belongs to it.
type QueryFilter struct {
	UserID      *uuid.UUID
	DashboardID *uuid.UUID
	CompanyID   *uuid.UUID
}
