package mid

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jcpaschoal/biadmin/app/sdk/auth"
	"github.com/jcpaschoal/biadmin/app/sdk/errs"
	"github.com/jcpaschoal/biadmin/business/sdk/web"
	"github.com/jcpaschoal/biadmin/business/types/actions"
	"github.com/jcpaschoal/biadmin/business/types/resource"
)

// Authorize checks the caller's role may act on the resource. The action is
// derived from the HTTP method.
func Authorize(ath *auth.Auth, res resource.Resource) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			act, err := mapHTTPMethodToAction(r.Method)
			if err != nil {
				return errs.New(errs.FailedPrecondition, err)
			}

			if err := ath.Authorize(GetClaims(ctx), res, act); err != nil {
				return errs.New(errs.PermissionDenied, err)
			}

			return next(ctx, r)
		}

		return h
	}

	return m
}

func mapHTTPMethodToAction(method string) (actions.Action, error) {
	switch method {
	case http.MethodGet:
		return actions.Get, nil
	case http.MethodPost:
		return actions.Create, nil
	case http.MethodPut, http.MethodPatch:
		return actions.Update, nil
	case http.MethodDelete:
		return actions.Delete, nil
	default:
		return actions.Action{}, fmt.Errorf("action: %s", method)
	}
}
