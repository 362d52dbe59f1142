package errs

// OK indicates the operation was successful.
var OK = ErrCode{value: 0}

// NoContent indicates the operation was successful with no content.
var NoContent = ErrCode{value: 1}

// Canceled indicates the operation was canceled (typically by the caller).
var Canceled = ErrCode{value: 2}

// Unknown error.
var Unknown = ErrCode{value: 3}

// InvalidArgument indicates client specified an invalid argument.
var InvalidArgument = ErrCode{value: 4}

// DeadlineExceeded means operation expired before completion.
var DeadlineExceeded = ErrCode{value: 5}

// NotFound means some requested entity (e.g., file or directory) was
// not found.
var NotFound = ErrCode{value: 6}

// AlreadyExists means an attempt to create an entity failed because one
// already exists.
var AlreadyExists = ErrCode{value: 7}

// PermissionDenied indicates the caller does not have permission to
// execute the specified operation.
var PermissionDenied = ErrCode{value: 8}

// ResourceExhausted indicates some resource has been exhausted, perhaps
// a per-user quota, or perhaps the entire file system is out of space.
var ResourceExhausted = ErrCode{value: 9}

// FailedPrecondition indicates operation was rejected because the
// system is not in a state required for the operation's execution.
var FailedPrecondition = ErrCode{value: 10}

// Aborted indicates the operation was aborted, typically due to a
// concurrency issue like sequencer check failures, transaction aborts,
// etc.
var Aborted = ErrCode{value: 11}

// OutOfRange means operation was attempted past the valid range.
var OutOfRange = ErrCode{value: 12}

// Unimplemented indicates operation is not implemented or not
// supported/enabled in this service.
var Unimplemented = ErrCode{value: 13}

// Internal errors. Means some invariants expected by underlying
// system has been broken.
var Internal = ErrCode{value: 14}

// Unavailable indicates the service is currently unavailable. This is
// most likely a transient condition, like a store call that ran out of
// time, and may be corrected by retrying.
var Unavailable = ErrCode{value: 15}

// DataLoss indicates unrecoverable data loss or corruption.
var DataLoss = ErrCode{value: 16}

// Unauthenticated indicates the request does not have valid
// authentication credentials for the operation.
var Unauthenticated = ErrCode{value: 17}

// InternalOnlyLog errors are logged but the message is never returned
// to the caller.
var InternalOnlyLog = ErrCode{value: 18}

// TenantMismatch indicates a user and a dashboard, or an entity and the
// company scoping the call, belong to different companies.
var TenantMismatch = ErrCode{value: 19}

// TenantInactive indicates the operation was blocked by an inactive company.
var TenantInactive = ErrCode{value: 20}

// Inactive indicates the user or dashboard the operation targets is
// deactivated.
var Inactive = ErrCode{value: 21}

// =============================================================================

var codeNumbers = map[string]ErrCode{
	"ok":                  OK,
	"no_content":          NoContent,
	"canceled":            Canceled,
	"unknown":             Unknown,
	"invalid_argument":    InvalidArgument,
	"deadline_exceeded":   DeadlineExceeded,
	"not_found":           NotFound,
	"already_exists":      AlreadyExists,
	"permission_denied":   PermissionDenied,
	"resource_exhausted":  ResourceExhausted,
	"failed_precondition": FailedPrecondition,
	"aborted":             Aborted,
	"out_of_range":        OutOfRange,
	"unimplemented":       Unimplemented,
	"internal":            Internal,
	"unavailable":         Unavailable,
	"data_loss":           DataLoss,
	"unauthenticated":     Unauthenticated,
	"internal_only_log":   InternalOnlyLog,
	"tenant_mismatch":     TenantMismatch,
	"tenant_inactive":     TenantInactive,
	"inactive":            Inactive,
}

var codeNames map[ErrCode]string

func init() {
	codeNames = make(map[ErrCode]string, len(codeNumbers))
	for k, v := range codeNumbers {
		codeNames[v] = k
	}
}
