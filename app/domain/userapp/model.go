package userapp

import (
	"encoding/json"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/biadmin/app/sdk/errs"
	"github.com/jcpaschoal/biadmin/business/domain/userbus"
	"github.com/jcpaschoal/biadmin/business/types/name"
	"github.com/jcpaschoal/biadmin/business/types/password"
	"github.com/jcpaschoal/biadmin/business/types/role"
)

// User represents information about an individual user.
type User struct {
	ID          string `json:"id"`
	CompanyID   string `json:"companyID,omitempty"`
	Name        string `json:"name,omitempty"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	Active      bool   `json:"active"`
	DateCreated string `json:"dateCreated"`
	DateUpdated string `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (u User) Encode() ([]byte, string, error) {
	data, err := json.Marshal(u)
	return data, "application/json", err
}

func toAppUser(bus userbus.User) User {
	var companyID string
	if bus.CompanyID != nil {
		companyID = bus.CompanyID.String()
	}

	return User{
		ID:          bus.ID.String(),
		CompanyID:   companyID,
		Name:        bus.Name.String(),
		Email:       bus.Email.Address,
		Role:        bus.Role.String(),
		Active:      bus.Active,
		DateCreated: bus.CreatedAt.Format(time.RFC3339),
		DateUpdated: bus.UpdatedAt.Format(time.RFC3339),
	}
}

func toAppUsers(users []userbus.User) []User {
	app := make([]User, len(users))
	for i, usr := range users {
		app[i] = toAppUser(usr)
	}
	return app
}

// =============================================================================

// NewUser defines the data needed to add a new user.
type NewUser struct {
	CompanyID       string `json:"companyID" validate:"omitempty,uuid"`
	Name            string `json:"name"`
	Email           string `json:"email" validate:"required,email"`
	Role            string `json:"role" validate:"required"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"passwordConfirm" validate:"eqfield=Password"`
}

// Decode implements the web.Decoder interface.
func (app *NewUser) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewUser) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewUser(app NewUser) (userbus.NewUser, error) {
	var companyID *uuid.UUID
	if app.CompanyID != "" {
		id, err := uuid.Parse(app.CompanyID)
		if err != nil {
			return userbus.NewUser{}, fmt.Errorf("parse companyID: %w", err)
		}
		companyID = &id
	}

	rle, err := role.Parse(app.Role)
	if err != nil {
		return userbus.NewUser{}, fmt.Errorf("parse role: %w", err)
	}

	addr, err := mail.ParseAddress(app.Email)
	if err != nil {
		return userbus.NewUser{}, fmt.Errorf("parse email: %w", err)
	}

	nme, err := name.ParseNull(app.Name)
	if err != nil {
		return userbus.NewUser{}, fmt.Errorf("parse name: %w", err)
	}

	pass, err := password.Parse(app.Password)
	if err != nil {
		return userbus.NewUser{}, fmt.Errorf("parse password: %w", err)
	}

	bus := userbus.NewUser{
		CompanyID: companyID,
		Name:      nme,
		Email:     *addr,
		Role:      rle,
		Password:  pass,
	}

	return bus, nil
}

// =============================================================================

// UpdateUser defines the data needed to update a user. An empty companyID
// detaches the user from its company.
type UpdateUser struct {
	CompanyID       *string `json:"companyID" validate:"omitempty,uuid"`
	Name            *string `json:"name"`
	Email           *string `json:"email" validate:"omitempty,email"`
	Role            *string `json:"role"`
	Password        *string `json:"password"`
	PasswordConfirm *string `json:"passwordConfirm" validate:"omitempty,eqfield=Password"`
	Active          *bool   `json:"active"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateUser) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateUser) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusUpdateUser(app UpdateUser) (userbus.UpdateUser, error) {
	var companyID *uuid.UUID
	if app.CompanyID != nil {
		id := uuid.Nil
		if *app.CompanyID != "" {
			var err error
			id, err = uuid.Parse(*app.CompanyID)
			if err != nil {
				return userbus.UpdateUser{}, fmt.Errorf("parse companyID: %w", err)
			}
		}
		companyID = &id
	}

	var addr *mail.Address
	if app.Email != nil {
		var err error
		addr, err = mail.ParseAddress(*app.Email)
		if err != nil {
			return userbus.UpdateUser{}, fmt.Errorf("parse email: %w", err)
		}
	}

	var nme *name.Null
	if app.Name != nil {
		nm, err := name.ParseNull(*app.Name)
		if err != nil {
			return userbus.UpdateUser{}, fmt.Errorf("parse name: %w", err)
		}
		nme = &nm
	}

	var rle *role.Role
	if app.Role != nil {
		r, err := role.Parse(*app.Role)
		if err != nil {
			return userbus.UpdateUser{}, fmt.Errorf("parse role: %w", err)
		}
		rle = &r
	}

	var pass *password.Password
	if app.Password != nil {
		p, err := password.Parse(*app.Password)
		if err != nil {
			return userbus.UpdateUser{}, fmt.Errorf("parse password: %w", err)
		}
		pass = &p
	}

	bus := userbus.UpdateUser{
		CompanyID: companyID,
		Name:      nme,
		Email:     addr,
		Role:      rle,
		Password:  pass,
		Active:    app.Active,
	}

	return bus, nil
}
