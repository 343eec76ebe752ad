package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrAlreadyExists      = errors.New("resource already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidTransition  = errors.New("invalid status transition")
)

// AppError represents application error with HTTP status
type AppError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Err     error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrInvalidInput)
}

// Validation is a 400 that carries the raw binding error for the client.
func Validation(message string, details interface{}) *AppError {
	appErr := BadRequest(message)
	appErr.Details = details
	return appErr
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, message, ErrForbidden)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, message, ErrAlreadyExists)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, "Internal server error", err)
}

// FromError resolves any error into an AppError, mapping domain sentinels
// to their HTTP status. Unknown errors become 500.
func FromError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return NewAppError(http.StatusNotFound, "Resource not found", err)
	case errors.Is(err, ErrAlreadyExists):
		return NewAppError(http.StatusConflict, "Resource already exists", err)
	case errors.Is(err, ErrInvalidTransition):
		return NewAppError(http.StatusConflict, err.Error(), err)
	case errors.Is(err, ErrInvalidInput):
		return NewAppError(http.StatusBadRequest, "Invalid input", err)
	case errors.Is(err, ErrInvalidCredentials):
		return NewAppError(http.StatusUnauthorized, "Invalid credentials", err)
	case errors.Is(err, ErrUnauthorized):
		return NewAppError(http.StatusUnauthorized, "Unauthorized", err)
	case errors.Is(err, ErrForbidden):
		return NewAppError(http.StatusForbidden, "Forbidden", err)
	default:
		return InternalError(err)
	}
}
