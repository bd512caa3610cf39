package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a unique error code
type ErrorCode int

// AppError represents an application error
type AppError struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Err     error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches another AppError by code so callers can compare against the
// sentinel values below with errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// StatusCode maps the error code onto an HTTP status.
func (e *AppError) StatusCode() int {
	switch e.Code {
	case ErrNotFound:
		return http.StatusNotFound
	case ErrBadRequest:
		return http.StatusBadRequest
	case ErrUnauthorized:
		return http.StatusUnauthorized
	case ErrForbidden:
		return http.StatusForbidden
	case ErrConflict:
		return http.StatusConflict
	case ErrValidation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Common error codes
const (
	ErrNotFound ErrorCode = iota + 1000
	ErrBadRequest
	ErrUnauthorized
	ErrForbidden
	ErrInternal
	ErrConflict
	ErrValidation
	ErrNotificationFailed
)

// Sentinels for errors.Is comparisons.
var (
	NotFoundError      = &AppError{Code: ErrNotFound}
	ForbiddenError     = &AppError{Code: ErrForbidden}
	ConflictError      = &AppError{Code: ErrConflict}
	ValidationError    = &AppError{Code: ErrValidation}
	NotificationError  = &AppError{Code: ErrNotificationFailed}
	UnauthorizedError  = &AppError{Code: ErrUnauthorized}
	BadRequestError    = &AppError{Code: ErrBadRequest}
	InternalErrorValue = &AppError{Code: ErrInternal}
)

// Error constructors
func NewNotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

func NewBadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    ErrBadRequest,
		Message: message,
		Err:     err,
	}
}

func NewInternal(err error) *AppError {
	return &AppError{
		Code:    ErrInternal,
		Message: "internal server error",
		Err:     err,
	}
}

// Common errors
func NotFound(resource string, err error) *AppError {
	return NewNotFound(resource, err)
}

func BadRequest(message string, err error) *AppError {
	return NewBadRequest(message, err)
}

func Internal(err error) *AppError {
	return NewInternal(err)
}

func Unauthorized(err error) *AppError {
	return &AppError{
		Code:    ErrUnauthorized,
		Message: "unauthorized",
		Err:     err,
	}
}

func Forbidden(action string) *AppError {
	return &AppError{
		Code:    ErrForbidden,
		Message: fmt.Sprintf("not allowed to %s", action),
	}
}

// Conflict is returned when an optimistic lock or uniqueness check fails.
// The caller should re-fetch and retry.
func Conflict(message string, err error) *AppError {
	return &AppError{
		Code:    ErrConflict,
		Message: message,
		Err:     err,
	}
}

// Validation carries the full list of user-fixable problems in Details.
func Validation(message string, details interface{}) *AppError {
	return &AppError{
		Code:    ErrValidation,
		Message: message,
		Details: details,
	}
}

func NotificationFailed(err error) *AppError {
	return &AppError{
		Code:    ErrNotificationFailed,
		Message: "notification delivery failed",
		Err:     err,
	}
}

// As reports whether err wraps an *AppError and returns it.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Is is a shorthand for the standard library errors.Is.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}
