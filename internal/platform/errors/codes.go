// Package errors provides structured error handling for the tracker service.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Validation errors
	CodeValidation    Code = "VALIDATION"
	CodeEmailTaken    Code = "EMAIL_TAKEN"
	CodePasswordBound Code = "PASSWORD_TOO_LONG"

	// Identity errors
	CodeUnauthenticated Code = "UNAUTHENTICATED"
	CodeForbidden       Code = "FORBIDDEN"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// HTTPStatus maps domain codes to HTTP status codes.
func (c Code) HTTPStatus() int {
	switch c {
	// Bad request - validation failures, bad input
	case CodeValidation,
		CodeEmailTaken,
		CodePasswordBound:
		return http.StatusBadRequest

	// Unauthorized - identity could not be established
	case CodeUnauthenticated:
		return http.StatusUnauthorized

	// Forbidden - identity established, action not allowed
	case CodeForbidden:
		return http.StatusForbidden

	// NotFound - resource absent or not owned by the requester
	case CodeNotFound:
		return http.StatusNotFound

	default:
		return http.StatusInternalServerError
	}
}
