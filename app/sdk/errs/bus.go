package errs

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/jcpaschoal/biadmin/business/domain/companybus"
	"github.com/jcpaschoal/biadmin/business/domain/dashboardbus"
	"github.com/jcpaschoal/biadmin/business/domain/grantbus"
	"github.com/jcpaschoal/biadmin/business/domain/tenantbus"
	"github.com/jcpaschoal/biadmin/business/domain/userbus"
)

// Code returns the error code a business error is reported with.
func Code(err error) ErrCode {
	switch {
	case errors.Is(err, companybus.ErrNotFound),
		errors.Is(err, userbus.ErrNotFound),
		errors.Is(err, dashboardbus.ErrNotFound),
		errors.Is(err, grantbus.ErrNotFound):
		return NotFound

	case errors.Is(err, grantbus.ErrConflict),
		errors.Is(err, userbus.ErrUniqueEmail):
		return AlreadyExists

	case errors.Is(err, grantbus.ErrTenantMismatch):
		return TenantMismatch

	case errors.Is(err, tenantbus.ErrInactive):
		return TenantInactive

	case errors.Is(err, grantbus.ErrInactive):
		return Inactive

	case errors.Is(err, userbus.ErrAuthenticationFailure):
		return Unauthenticated

	case errors.Is(err, context.DeadlineExceeded):
		return Unavailable
	}

	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}

	return InternalOnlyLog
}

// FromBus constructs an error from a business layer error. Known kinds keep
// the business message. Anything else is only logged, with the formatted
// context prefixed.
func FromBus(err error, format string, v ...any) *Error {
	pc, filename, line, _ := runtime.Caller(1)

	code := Code(err)

	msg := err.Error()
	if code == InternalOnlyLog {
		msg = fmt.Sprintf("%s: %s", fmt.Sprintf(format, v...), err)
	}

	return &Error{
		Code:     code,
		Message:  msg,
		FuncName: runtime.FuncForPC(pc).Name(),
		FileName: fmt.Sprintf("%s:%d", filepath.Base(filename), line),
	}
}
