// Package errors defines the application error type returned by services
// and translated into HTTP responses by the handler layer.
package errors

import (
	"fmt"
	"net/http"
)

// Error codes carried in API error envelopes.
const (
	ErrCodeInternal           = "INTERNAL_ERROR"
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeConflict           = "CONFLICT"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeDatabase           = "DATABASE_ERROR"
	ErrCodeRateLimited        = "RATE_LIMITED"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// statusByCode maps error codes to the HTTP status they surface as.
var statusByCode = map[string]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeDatabase:           http.StatusInternalServerError,
	ErrCodeRateLimited:        http.StatusTooManyRequests,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
}

// AppError is an error with a stable machine code, a client-safe message
// and an HTTP status. Internal holds the underlying cause and is never
// serialized.
type AppError struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	StatusCode int         `json:"-"`
	Internal   error       `json:"-"`
	Details    interface{} `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Internal)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Internal
}

// WithDetails attaches structured detail (field errors and the like) that
// is serialized into the error envelope.
func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

// New builds an AppError with an explicit status code.
func New(code, message string, statusCode int) *AppError {
	return &AppError{Code: code, Message: message, StatusCode: statusCode}
}

// Wrap builds an AppError around an underlying cause.
func Wrap(err error, code, message string, statusCode int) *AppError {
	e := New(code, message, statusCode)
	e.Internal = err
	return e
}

// byCode builds an AppError whose status comes from statusByCode.
func byCode(code, message string) *AppError {
	return New(code, message, statusByCode[code])
}

func Internal(message string, err error) *AppError {
	e := byCode(ErrCodeInternal, message)
	e.Internal = err
	return e
}

func BadRequest(message string) *AppError {
	return byCode(ErrCodeBadRequest, message)
}

func Unauthorized(message string) *AppError {
	return byCode(ErrCodeUnauthorized, message)
}

func Forbidden(message string) *AppError {
	return byCode(ErrCodeForbidden, message)
}

// NotFound reports a missing entity by name, e.g. NotFound("incident").
func NotFound(resource string) *AppError {
	return byCode(ErrCodeNotFound, resource+" not found")
}

func Conflict(message string) *AppError {
	return byCode(ErrCodeConflict, message)
}

func ValidationError(message string, details interface{}) *AppError {
	return byCode(ErrCodeValidation, message).WithDetails(details)
}

func DatabaseError(message string, err error) *AppError {
	e := byCode(ErrCodeDatabase, message)
	e.Internal = err
	return e
}

func RateLimited(message string) *AppError {
	return byCode(ErrCodeRateLimited, message)
}

func ServiceUnavailable(message string) *AppError {
	return byCode(ErrCodeServiceUnavailable, message)
}
