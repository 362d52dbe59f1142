package grantbus

import (
	"net/mail"

	"github.com/google/uuid"
	"github.com/jcpaschoal/biadmin/business/types/name"
)

// Grant gives a user access to a dashboard. The pair is unique.
type Grant struct {
	UserID      uuid.UUID
	DashboardID uuid.UUID
}

// UserSummary is the part of a user that is returned with a grant.
type UserSummary struct {
	ID    uuid.UUID
	Name  name.Null
	Email mail.Address
}

// DashboardSummary is the part of a dashboard that is returned with a grant.
type DashboardSummary struct {
	ID   uuid.UUID
	Name name.Name
}

// GrantDetail is a grant enriched with the user and dashboard it binds.
type GrantDetail struct {
	Grant
	User      UserSummary
	Dashboard DashboardSummary
}
