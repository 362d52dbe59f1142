package userbus

import (
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/biadmin/business/types/name"
	"github.com/jcpaschoal/biadmin/business/types/password"
	"github.com/jcpaschoal/biadmin/business/types/role"
)

// User represents an individual user. A nil CompanyID means the user is not
// bound to any company and may be granted dashboards of any company.
type User struct {
	ID           uuid.UUID
	CompanyID    *uuid.UUID
	Name         name.Null
	Email        mail.Address
	Role         role.Role
	PasswordHash []byte
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// BelongsTo reports whether the user may hold grants for dashboards of the
// specified company.
func (u User) BelongsTo(companyID uuid.UUID) bool {
	return u.CompanyID == nil || *u.CompanyID == companyID
}

// MemberOf reports whether the user is attached to the specified company.
// A user without a company is a member of none.
func (u User) MemberOf(companyID uuid.UUID) bool {
	return u.CompanyID != nil && *u.CompanyID == companyID
}

// NewUser contains information needed to create a new user.
type NewUser struct {
	CompanyID *uuid.UUID
	Name      name.Null
	Email     mail.Address
	Role      role.Role
	Password  password.Password
}

// UpdateUser contains information needed to update a user. A CompanyID set
// to uuid.Nil detaches the user from its company.
type UpdateUser struct {
	CompanyID *uuid.UUID
	Name      *name.Null
	Email     *mail.Address
	Role      *role.Role
	Password  *password.Password
	Active    *bool
}
