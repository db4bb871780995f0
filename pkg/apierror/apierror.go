// Package apierror defines the error types returned by the Pagopar clients.
package apierror

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrOrderNotFound reports that the gateway does not know the requested
	// order hash. Returned wrapped inside *Error; match with errors.Is.
	ErrOrderNotFound = errors.New("pagopar: order not found")

	// ErrSignatureMismatch reports an inbound notification whose token does
	// not match the hash recomputed from the commerce private token.
	ErrSignatureMismatch = errors.New("pagopar: notification signature mismatch")
)

// ValidationError reports caller input rejected locally, before any request
// is sent to the gateway.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("pagopar: invalid %s: %s", e.Field, e.Reason)
}

// Error is a rejection reported by the gateway: either the response envelope
// carried respuesta=false, or the HTTP status was not a success.
type Error struct {
	// StatusCode is the HTTP status of the gateway response.
	StatusCode int
	// Message is the vendor-supplied error text, verbatim.
	Message string

	kind error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("pagopar: gateway returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("pagopar: gateway rejected request: %s", e.Message)
}

func (e *Error) Unwrap() error { return e.kind }

// New builds a gateway Error from the vendor message and HTTP status,
// classifying known vendor messages so callers can match sentinels with
// errors.Is.
func New(message string, statusCode int) *Error {
	e := &Error{StatusCode: statusCode, Message: message}
	if isNotFoundMessage(message) {
		e.kind = ErrOrderNotFound
	}
	return e
}

func isNotFoundMessage(message string) bool {
	m := strings.ToLower(message)
	return strings.Contains(m, "inexistente") || strings.Contains(m, "no existe")
}
