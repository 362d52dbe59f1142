// Package authapp maintains the app layer api for authentication.
package authapp

import (
	"context"
	"fmt"
	"net/http"
	"net/mail"

	"github.com/jcpaschoal/biadmin/app/sdk/auth"
	"github.com/jcpaschoal/biadmin/app/sdk/errs"
	"github.com/jcpaschoal/biadmin/app/sdk/mid"
	"github.com/jcpaschoal/biadmin/business/sdk/web"
)

type app struct {
	auth *auth.Auth
}

func newApp(auth *auth.Auth) *app {
	return &app{
		auth: auth,
	}
}

// login checks the credentials and issues a token.
func (a *app) login(ctx context.Context, r *http.Request) web.Encoder {
	var req Login
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	addr, err := mail.ParseAddress(req.Email)
	if err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("parsing email: %w", err))
	}

	usr, err := a.auth.Login(ctx, *addr, req.Password)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	tokenStr, err := a.auth.GenerateToken(usr)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	return toAppToken(tokenStr, usr)
}

// me returns the calling user.
func (a *app) me(ctx context.Context, r *http.Request) web.Encoder {
	usr, err := mid.GetUser(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "user missing in context: %s", err)
	}

	return toAppMe(usr)
}
