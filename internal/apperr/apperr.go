// Package apperr is the error type shared by the state managers and the HTTP
// handlers. A state manager never returns a raw store error: it wraps it into
// one of the kinds below so callers can tell a bad form apart from a failed
// remote write.
package apperr

import (
	"errors"
	"net/http"
)

const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeRemote       = "REMOTE_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeConflict     = "CONFLICT"
	CodeInternal     = "INTERNAL_ERROR"
)

// AppError carries a client-safe Message. Cause is for logs only.
type AppError struct {
	Code       string       `json:"code"`
	Message    string       `json:"error"`
	HTTPStatus int          `json:"-"`
	Cause      error        `json:"-"`
	Details    []FieldError `json:"details,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Cause }

func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// Remote wraps a failed store call. msg is what the user gets to see.
func Remote(msg string, cause error) *AppError {
	return &AppError{
		Code:       CodeRemote,
		Message:    msg,
		HTTPStatus: http.StatusBadGateway,
		Cause:      cause,
	}
}

// NotFound is the remote variant for ids the store no longer knows.
func NotFound(msg string, cause error) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    msg,
		HTTPStatus: http.StatusNotFound,
		Cause:      cause,
	}
}

func Unauthorized(msg string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: msg, HTTPStatus: http.StatusUnauthorized}
}

func Forbidden(msg string) *AppError {
	return &AppError{Code: CodeForbidden, Message: msg, HTTPStatus: http.StatusForbidden}
}

func Conflict(msg string, cause error) *AppError {
	return &AppError{Code: CodeConflict, Message: msg, HTTPStatus: http.StatusConflict, Cause: cause}
}

func Internal(cause error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// As extracts the *AppError from err's chain, or nil.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

func IsAppError(err error) bool { return As(err) != nil }

func Is(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}

func IsValidation(err error) bool { return Is(err, CodeValidation) }

// IsRemote is true for REMOTE_ERROR and its NOT_FOUND variant.
func IsRemote(err error) bool {
	return Is(err, CodeRemote) || Is(err, CodeNotFound)
}

// Status returns the HTTP status for err, 500 for anything unknown.
func Status(err error) int {
	if ae := As(err); ae != nil && ae.HTTPStatus != 0 {
		return ae.HTTPStatus
	}
	return http.StatusInternalServerError
}
