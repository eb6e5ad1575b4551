// Package errors provides the quote calculator's error taxonomy.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Type identifies the category of error
type Type string

const (
	// TypeUnauthorized indicates a missing or invalid anti-forgery token
	TypeUnauthorized Type = "UNAUTHORIZED"

	// TypeMissingServiceType indicates no service kind was selected
	TypeMissingServiceType Type = "MISSING_SERVICE_TYPE"

	// TypeInvalidFields indicates the pricing engine rejected the fields
	TypeInvalidFields Type = "INVALID_FIELDS"

	// TypeTransportFailure indicates the relay could not be reached
	TypeTransportFailure Type = "TRANSPORT_FAILURE"

	// TypeUpstreamRejected indicates the relay answered outside 2xx
	TypeUpstreamRejected Type = "UPSTREAM_REJECTED"

	// TypeInput indicates a malformed request body
	TypeInput Type = "INPUT_ERROR"

	// TypeConfig indicates a configuration error
	TypeConfig Type = "CONFIG_ERROR"

	// TypeInternal indicates an internal error
	TypeInternal Type = "INTERNAL_ERROR"
)

// Display messages shown to the person filling in the form.
const (
	MessageUnauthorized       = "Security check failed. Please refresh the page and try again."
	MessageMissingServiceType = "Please select a service type."
	MessageInvalidFields      = "Please fill in the required fields for this service."
	MessageTransportFailure   = "API request failed. Please try again."
	MessageUpstreamRejected   = "API returned an unexpected response."
	MessageGeneric            = "Something went wrong."
	MessageSubmitted          = "Quote submitted successfully."
)

// Error represents a domain error with context
type Error struct {
	Type    Type                   `json:"type"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error is of a specific type
func (e *Error) Is(t Type) bool {
	return e.Type == t
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new error
func New(errType Type, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with context
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// TypeOf returns the taxonomy type of err, or TypeInternal for foreign errors.
func TypeOf(err error) Type {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type
	}
	return TypeInternal
}

// IsType checks if an error (or anything it wraps) is of a specific type
func IsType(err error, t Type) bool {
	var e *Error
	return stderrors.As(err, &e) && e.Type == t
}

// UserMessage maps err to the message displayed next to the form.
func UserMessage(err error) string {
	switch TypeOf(err) {
	case TypeUnauthorized:
		return MessageUnauthorized
	case TypeMissingServiceType:
		return MessageMissingServiceType
	case TypeInvalidFields:
		return MessageInvalidFields
	case TypeTransportFailure:
		return MessageTransportFailure
	case TypeUpstreamRejected:
		return MessageUpstreamRejected
	default:
		return MessageGeneric
	}
}

// Unauthorized creates an anti-forgery failure
func Unauthorized(message string) *Error {
	return New(TypeUnauthorized, message)
}

// MissingServiceType creates a missing service kind error
func MissingServiceType() *Error {
	return New(TypeMissingServiceType, "service type is required")
}

// InvalidFields creates a pricing rejection error
func InvalidFields(reason string) *Error {
	return New(TypeInvalidFields, "fields rejected by pricing").WithContext("reason", reason)
}

// TransportFailure creates a relay transport error
func TransportFailure(cause error) *Error {
	return Wrap(TypeTransportFailure, "relay request failed", cause)
}

// UpstreamRejected creates a non-2xx relay error
func UpstreamRejected(status int) *Error {
	return Newf(TypeUpstreamRejected, "relay returned status %d", status).WithContext("status", status)
}

// Input creates an input error
func Input(message string, cause error) *Error {
	return Wrap(TypeInput, message, cause)
}

// Config creates a configuration error
func Config(message string) *Error {
	return New(TypeConfig, message)
}

// Internal creates an internal error
func Internal(message string, cause error) *Error {
	return Wrap(TypeInternal, message, cause)
}
