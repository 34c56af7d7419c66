package errors

import (
	"fmt"
	"net/http"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeValidation       ErrorType = "validation"
	ErrorTypeInvalidState     ErrorType = "invalid_state"
	ErrorTypeInvalidStyle     ErrorType = "invalid_style"
	ErrorTypeRange            ErrorType = "range"
	ErrorTypeUnknownSession   ErrorType = "unknown_session"
	ErrorTypeDuplicateSession ErrorType = "duplicate_session"
	ErrorTypeMalformedPayload ErrorType = "malformed_payload"
	ErrorTypeDelivery         ErrorType = "delivery"
	ErrorTypeInternal         ErrorType = "internal"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a new request validation error
func NewValidationError(message string, details ...string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		Details:    detail,
		StatusCode: http.StatusBadRequest,
	}
}

// NewInvalidStateError reports an operation against a document or session
// that is not open (never created, already finalized, or discarded).
func NewInvalidStateError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeInvalidState,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

// NewInvalidStyleError reports an unresolvable font or color token.
func NewInvalidStyleError(message string, details ...string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:       ErrorTypeInvalidStyle,
		Message:    message,
		Details:    detail,
		StatusCode: http.StatusBadRequest,
	}
}

// NewRangeError reports slice indices out of bounds for dual-styled text.
func NewRangeError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeRange,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

// NewUnknownSessionError reports an archive session identifier that is not live.
func NewUnknownSessionError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeUnknownSession,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

// NewDuplicateSessionError reports a create against an already-live identifier.
func NewDuplicateSessionError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeDuplicateSession,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

// NewMalformedPayloadError reports an undecodable byte payload.
func NewMalformedPayloadError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeMalformedPayload,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Cause:      cause,
	}
}

// NewDeliveryError reports a terminal serialization or handoff failure.
func NewDeliveryError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeDelivery,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

// NewInternalError creates a new internal server error
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// IsType checks if the error is of a specific type
func IsType(err error, errorType ErrorType) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == errorType
	}
	return false
}

// GetStatusCode returns the HTTP status code for an error
func GetStatusCode(err error) int {
	if appErr, ok := err.(*AppError); ok {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
