// Package auth provides authentication and authorization support.
// Authentication: a HS256 signed JWT identifies the user.
// Authorization: a casbin role policy decides which resources a role may
// act on.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jcpaschoal/biadmin/business/domain/userbus"
	"github.com/jcpaschoal/biadmin/business/types/actions"
	"github.com/jcpaschoal/biadmin/business/types/resource"
	"github.com/jcpaschoal/biadmin/business/types/role"
	"github.com/jcpaschoal/biadmin/foundation/logger"
)

// Set of errors returned by the package.
var (
	ErrForbidden    = errors.New("attempted action is not allowed")
	ErrUserDisabled = errors.New("user is disabled")
	ErrInvalidRole  = errors.New("token contains an invalid role")
)

const casbinModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == "ROLE:ADMIN" || (r.sub == p.sub && r.obj == p.obj && r.act == p.act)
`

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.RegisteredClaims
	Role      string `json:"role"`
	CompanyID string `json:"company_id,omitempty"`
}

// Config represents information required to initialize auth.
type Config struct {
	Log     *logger.Logger
	UserBus *userbus.Core
	Secret  string
	Issuer  string
	TTL     time.Duration
}

// Auth is used to authenticate clients.
type Auth struct {
	log      *logger.Logger
	userBus  *userbus.Core
	secret   []byte
	method   jwt.SigningMethod
	parser   *jwt.Parser
	issuer   string
	ttl      time.Duration
	enforcer *casbin.Enforcer
}

// New creates an Auth to support authentication/authorization.
func New(cfg Config) (*Auth, error) {
	if cfg.Secret == "" {
		return nil, errors.New("auth: secret is required")
	}

	m, err := model.NewModelFromString(casbinModel)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("create enforcer: %w", err)
	}

	// Plain users may only read their own dashboards and embed them.
	policies := [][]string{
		{subject(role.User), resource.Me.String(), actions.Get.String()},
		{subject(role.User), resource.Embed.String(), actions.Get.String()},
	}
	if _, err := e.AddPolicies(policies); err != nil {
		return nil, fmt.Errorf("add policies: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	a := Auth{
		log:      cfg.Log,
		userBus:  cfg.UserBus,
		secret:   []byte(cfg.Secret),
		method:   jwt.SigningMethodHS256,
		parser:   jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}), jwt.WithIssuer(cfg.Issuer)),
		issuer:   cfg.Issuer,
		ttl:      ttl,
		enforcer: e,
	}

	return &a, nil
}

// Issuer provides the configured issuer used to authenticate tokens.
func (a *Auth) Issuer() string {
	return a.issuer
}

// GenerateToken generates a signed JWT token string for the user.
func (a *Auth) GenerateToken(usr userbus.User) (string, error) {
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   usr.ID.String(),
			Issuer:    a.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Role: usr.Role.String(),
	}

	if usr.CompanyID != nil {
		claims.CompanyID = usr.CompanyID.String()
	}

	token := jwt.NewWithClaims(a.method, claims)

	str, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return str, nil
}

// Authenticate processes the token to validate the sender's token is valid
// and that the user it names is still active.
func (a *Auth) Authenticate(ctx context.Context, bearerToken string) (Claims, userbus.User, error) {
	parts := strings.Split(bearerToken, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return Claims{}, userbus.User{}, errors.New("expected authorization header format: Bearer <token>")
	}

	var claims Claims
	token, err := a.parser.ParseWithClaims(parts[1], &claims, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	})
	if err != nil {
		return Claims{}, userbus.User{}, fmt.Errorf("authentication failed: %w", err)
	}

	if !token.Valid {
		return Claims{}, userbus.User{}, errors.New("token is invalid")
	}

	if _, err := role.Parse(claims.Role); err != nil {
		return Claims{}, userbus.User{}, ErrInvalidRole
	}

	usr, err := a.activeUser(ctx, claims)
	if err != nil {
		a.log.Info(ctx, "**Authenticate-FAILED**", "userID", claims.Subject, "ERROR", err)
		return Claims{}, userbus.User{}, err
	}

	return claims, usr, nil
}

// Authorize checks the role in the claims may perform the action on the
// resource.
func (a *Auth) Authorize(claims Claims, res resource.Resource, act actions.Action) error {
	r, err := role.Parse(claims.Role)
	if err != nil {
		return ErrInvalidRole
	}

	ok, err := a.enforcer.Enforce(subject(r), res.String(), act.String())
	if err != nil {
		return fmt.Errorf("enforce: %w", err)
	}

	if !ok {
		return fmt.Errorf("%w: role[%s] resource[%s] action[%s]", ErrForbidden, r, res, act)
	}

	return nil
}

// Login checks the credentials and returns the user they belong to.
func (a *Auth) Login(ctx context.Context, email mail.Address, password string) (userbus.User, error) {
	usr, err := a.userBus.Authenticate(ctx, email, password)
	if err != nil {
		return userbus.User{}, fmt.Errorf("invalid credentials: %w", err)
	}

	return usr, nil
}

func (a *Auth) activeUser(ctx context.Context, claims Claims) (userbus.User, error) {
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return userbus.User{}, fmt.Errorf("parsing user ID %q from claims: %w", claims.Subject, err)
	}

	usr, err := a.userBus.QueryByID(ctx, userID)
	if err != nil {
		return userbus.User{}, fmt.Errorf("query user: %w", err)
	}

	if !usr.Active {
		return userbus.User{}, ErrUserDisabled
	}

	return usr, nil
}

func subject(r role.Role) string {
	return "ROLE:" + strings.ToUpper(r.String())
}
