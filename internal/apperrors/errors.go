package apperrors

import (
	"errors"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials (401-class).
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller is known but not allowed to proceed
// (unverified email, locked or deactivated account).
var ErrForbidden = errors.New("forbidden")

// ErrDependency indicates an outbound dependency (email, OAuth provider) failed.
var ErrDependency = errors.New("dependency failure")

// ErrTokenExpired indicates a token whose exp claim has passed.
var ErrTokenExpired = errors.New("token expired")

// ErrTokenInvalid indicates a malformed token or a bad signature, including
// a token presented against the wrong key class.
var ErrTokenInvalid = errors.New("token invalid")

// AppError is the structured error surfaced at the handler boundary.
// Detail carries the underlying error text and is only serialized when the
// application runs with the debug flag enabled.
type AppError struct {
	Code    int    `json:"-"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
	err     error
}

func (e *AppError) Error() string {
	if e.err != nil {
		return e.Message + ": " + e.err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.err
}

// WithDetail returns a copy whose Detail field is populated from the wrapped
// error. Callers gate this on the debug configuration flag.
func (e *AppError) WithDetail() *AppError {
	out := *e
	if e.err != nil {
		out.Detail = e.err.Error()
	}
	return &out
}

func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, err: err}
}

func NewBadRequestError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, err: ErrValidation}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message, err: ErrNotFound}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: http.StatusUnauthorized, Message: message, err: ErrUnauthorized}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Code: http.StatusForbidden, Message: message, err: ErrForbidden}
}

func NewConflictError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, err: ErrDuplicate}
}

func NewDependencyError(message string, err error) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Message: message, err: errors.Join(ErrDependency, err)}
}

func NewInternalError(message string, err error) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Message: message, err: err}
}
