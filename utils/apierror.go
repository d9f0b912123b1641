package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is an error with an associated HTTP status code. Services
// return these for client faults; anything that is not an APIError is
// reported to the caller as an internal error.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// ValidationError reports malformed or out-of-range input (400).
func ValidationError(format string, args ...any) error {
	return &APIError{Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports that a referenced entity is absent (404).
func NotFound(message string) error {
	return &APIError{Status: http.StatusNotFound, Message: message}
}

// Unauthorized reports a missing, invalid or expired session (401).
func Unauthorized(message string) error {
	return &APIError{Status: http.StatusUnauthorized, Message: message}
}

// Conflict reports a duplicate unique field (409).
func Conflict(message string) error {
	return &APIError{Status: http.StatusConflict, Message: message}
}

// Unavailable reports a misconfigured or unreachable dependency (503).
func Unavailable(message string) error {
	return &APIError{Status: http.StatusServiceUnavailable, Message: message}
}

// StatusOf maps an error to its HTTP status code, defaulting to 500.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return http.StatusInternalServerError
}

// MessageOf returns the client-facing message for an error. Internal
// errors are masked so store failures never leak details to callers.
func MessageOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return "Internal server error"
}
