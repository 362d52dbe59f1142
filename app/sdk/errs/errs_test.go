package errs_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jcpaschoal/biadmin/app/sdk/errs"
	"github.com/jcpaschoal/biadmin/business/domain/grantbus"
	"github.com/jcpaschoal/biadmin/business/domain/tenantbus"
	"github.com/jcpaschoal/biadmin/business/domain/userbus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCode(t *testing.T) {
	tests := []struct {
		err  error
		want errs.ErrCode
	}{
		{fmt.Errorf("query: %w", userbus.ErrNotFound), errs.NotFound},
		{fmt.Errorf("create: %w", grantbus.ErrConflict), errs.AlreadyExists},
		{userbus.ErrUniqueEmail, errs.AlreadyExists},
		{grantbus.ErrTenantMismatch, errs.TenantMismatch},
		{fmt.Errorf("companyID[x]: %w", tenantbus.ErrInactive), errs.TenantInactive},
		{grantbus.ErrInactive, errs.Inactive},
		{userbus.ErrAuthenticationFailure, errs.Unauthenticated},
		{fmt.Errorf("create: %w", context.DeadlineExceeded), errs.Unavailable},
		{errs.Errorf(errs.PermissionDenied, "no"), errs.PermissionDenied},
		{errors.New("disk on fire"), errs.InternalOnlyLog},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, errs.Code(tt.err))
		})
	}
}

func TestFromBus(t *testing.T) {
	known := errs.FromBus(fmt.Errorf("create: %w", grantbus.ErrConflict), "create: userID[%s]", "u1")
	assert.Equal(t, errs.AlreadyExists, known.Code)
	assert.Equal(t, "create: grant already exists", known.Message)
	assert.Equal(t, http.StatusConflict, known.HTTPStatus())
	assert.Contains(t, known.FileName, "errs_test.go")

	internal := errs.FromBus(errors.New("connection reset"), "query: companyID[%s]", "c1")
	assert.Equal(t, errs.InternalOnlyLog, internal.Code)
	assert.Equal(t, "query: companyID[c1]: connection reset", internal.Message)
}

func TestFieldErrors(t *testing.T) {
	var fe errs.FieldErrors
	fe.Add("name", errors.New("required"))
	fe.Add("email", errors.New("invalid"))

	err := fe.ToError()
	assert.Equal(t, errs.InvalidArgument, err.Code)
	assert.Equal(t, map[string]string{"name": "required", "email": "invalid"}, err.Fields)
	assert.True(t, errs.IsFieldErrors(fe))

	single := errs.NewFieldErrors("company_id", errors.New("invalid UUID"))
	assert.Equal(t, http.StatusBadRequest, single.HTTPStatus())
	assert.Equal(t, "invalid UUID", single.Fields["company_id"])
}

func TestCheck(t *testing.T) {
	type newCompany struct {
		Name  string `json:"name" validate:"required,max=100"`
		Email string `json:"email" validate:"omitempty,email"`
	}

	require.NoError(t, errs.Check(newCompany{Name: "Acme"}))

	err := errs.Check(newCompany{Email: "nope"})
	require.Error(t, err)

	fe := errs.GetFieldErrors(err)
	fields := fe.Fields()
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "email")
}

func TestErrCodeText(t *testing.T) {
	b, err := errs.FailedPrecondition.MarshalText()
	require.NoError(t, err)

	var ec errs.ErrCode
	require.NoError(t, ec.UnmarshalText(b))
	assert.Equal(t, errs.FailedPrecondition, ec)

	assert.Error(t, ec.UnmarshalText([]byte("not_a_code")))
}

func TestTenantCodes(t *testing.T) {
	tests := []struct {
		err  error
		name string
	}{
		{fmt.Errorf("userID[u] dashboardID[d]: %w", grantbus.ErrTenantMismatch), "tenant_mismatch"},
		{fmt.Errorf("companyID[c]: %w", tenantbus.ErrInactive), "tenant_inactive"},
		{fmt.Errorf("dashboardID[d]: %w", grantbus.ErrInactive), "inactive"},
	}

	seen := make(map[errs.ErrCode]bool)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := errs.FromBus(tt.err, "assign")
			assert.Equal(t, http.StatusPreconditionFailed, e.HTTPStatus())
			assert.Equal(t, tt.name, e.Code.String())

			b, _, err := e.Encode()
			require.NoError(t, err)
			assert.Contains(t, string(b), `"code":"`+tt.name+`"`)

			seen[e.Code] = true
		})
	}

	assert.Len(t, seen, len(tests))
}
