package errors

import (
	"fmt"
	"net/http"
	"strings"
)

// ErrorType represents the failure domain of an error
type ErrorType string

const (
	// ErrTypeValidation represents a missing or malformed request field
	ErrTypeValidation ErrorType = "validation"
	// ErrTypeAuthTransport represents a transport failure reaching the authorizer
	ErrTypeAuthTransport ErrorType = "auth_transport"
	// ErrTypeAuthDenied represents an authorization denial from the authorizer
	ErrTypeAuthDenied ErrorType = "auth_denied"
	// ErrTypeCreation represents a scheduling engine registration failure
	ErrTypeCreation ErrorType = "creation"
	// ErrTypePersistence represents a trigger store insert failure
	ErrTypePersistence ErrorType = "persistence"
	// ErrTypeConfig represents configuration errors
	ErrTypeConfig ErrorType = "config"
	// ErrTypeInternal represents internal system errors
	ErrTypeInternal ErrorType = "internal"
)

// AppError is a structured application error. Message is the fixed,
// client-facing message for the failure domain; Detail carries the
// underlying cause (error text, upstream body, or field description).
type AppError struct {
	Type       ErrorType   `json:"type"`
	Message    string      `json:"message"`
	Detail     interface{} `json:"detail,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	parts := []string{string(e.Type), e.Message}
	if e.Detail != nil {
		parts = append(parts, fmt.Sprintf("detail=%v", e.Detail))
	}
	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause=%v", e.Cause))
	}
	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying cause
func (e *AppError) Unwrap() error {
	return e.Cause
}

// MissingField creates a validation error for a required request field.
// The message wording is part of the wire contract.
func MissingField(field string) *AppError {
	msg := fmt.Sprintf("no %s provided", field)
	if strings.HasPrefix(field, "user ") {
		msg = fmt.Sprintf("no %s was detected", field)
	}
	return &AppError{
		Type:       ErrTypeValidation,
		Message:    msg,
		Detail:     field,
		StatusCode: http.StatusBadRequest,
	}
}

// AuthTransportError creates an error for a failed authorization round trip
func AuthTransportError(cause error) *AppError {
	e := &AppError{
		Type:       ErrTypeAuthTransport,
		Message:    "Trigger authentication request failed.",
		StatusCode: http.StatusBadRequest,
		Cause:      cause,
	}
	if cause != nil {
		e.Detail = cause.Error()
	}
	return e
}

// AuthDenied creates an error for an authorization denial. The upstream
// status code is passed through to the caller verbatim.
func AuthDenied(statusCode int, detail interface{}) *AppError {
	return &AppError{
		Type:       ErrTypeAuthDenied,
		Message:    "Trigger authentication request failed.",
		Detail:     detail,
		StatusCode: statusCode,
	}
}

// CreationFailed creates an error for a scheduling engine registration failure
func CreationFailed(cause error) *AppError {
	return &AppError{
		Type:       ErrTypeCreation,
		Message:    fmt.Sprintf("error creating trigger. %v", cause),
		Detail:     cause.Error(),
		StatusCode: http.StatusBadRequest,
		Cause:      cause,
	}
}

// PersistenceFailed creates an error for a trigger store insert failure
func PersistenceFailed(cause error) *AppError {
	return &AppError{
		Type:       ErrTypePersistence,
		Message:    fmt.Sprintf("error creating trigger. %v", cause),
		Detail:     cause.Error(),
		StatusCode: http.StatusBadRequest,
		Cause:      cause,
	}
}

// ConfigError creates a new configuration error
func ConfigError(msg string) *AppError {
	return &AppError{
		Type:    ErrTypeConfig,
		Message: msg,
	}
}

// InternalError creates a new internal error
func InternalError(msg string, cause error) *AppError {
	return &AppError{
		Type:       ErrTypeInternal,
		Message:    msg,
		Cause:      cause,
		StatusCode: http.StatusInternalServerError,
	}
}

// IsType checks if an error is of a specific type
func IsType(err error, errType ErrorType) bool {
	if err == nil {
		return false
	}
	appErr, ok := err.(*AppError)
	if !ok {
		return false
	}
	return appErr.Type == errType
}

// HTTPStatus returns the response status code for an error. Errors
// outside the taxonomy map to 500.
func HTTPStatus(err error) int {
	if appErr, ok := err.(*AppError); ok && appErr.StatusCode != 0 {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
