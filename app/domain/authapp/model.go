package authapp

import (
	"encoding/json"
	"fmt"

	"github.com/jcpaschoal/biadmin/app/sdk/errs"
	"github.com/jcpaschoal/biadmin/business/domain/userbus"
)

// Token is returned by a successful login.
type Token struct {
	Token string `json:"token"`
	User  Me     `json:"user"`
}

// Encode implements the web.Encoder interface.
func (t Token) Encode() ([]byte, string, error) {
	data, err := json.Marshal(t)
	return data, "application/json", err
}

func toAppToken(token string, usr userbus.User) Token {
	return Token{
		Token: token,
		User:  toAppMe(usr),
	}
}

// Me is the authenticated user.
type Me struct {
	ID        string `json:"id"`
	CompanyID string `json:"companyId,omitempty"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// Encode implements the web.Encoder interface.
func (m Me) Encode() ([]byte, string, error) {
	data, err := json.Marshal(m)
	return data, "application/json", err
}

func toAppMe(usr userbus.User) Me {
	var companyID string
	if usr.CompanyID != nil {
		companyID = usr.CompanyID.String()
	}

	return Me{
		ID:        usr.ID.String(),
		CompanyID: companyID,
		Name:      usr.Name.String(),
		Email:     usr.Email.Address,
		Role:      usr.Role.String(),
	}
}

// Login holds the credentials of a login request.
type Login struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Decode implements the web.Decoder interface.
func (app *Login) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app Login) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}
