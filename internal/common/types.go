package common

import (
	"errors"
	"fmt"
	"net/http"
)

// UserID identifies a user row. IDs are generated by the database.
type UserID int64

// ScanID identifies a scan history row.
type ScanID int64

// ValidationError reports a missing or malformed required field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NotFoundError reports that a referenced resource does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID '%s' not found", e.Resource, e.ID)
}

// ConfigurationError reports a missing required credential or setting.
type ConfigurationError struct {
	Setting string
	Message string
}

func (e ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error for '%s': %s", e.Setting, e.Message)
}

// ExternalAuthError reports that the identity provider rejected an exchange.
type ExternalAuthError struct {
	Provider string
	Message  string
	Cause    error
}

func (e ExternalAuthError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s auth failed: %s (caused by: %v)", e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s auth failed: %s", e.Provider, e.Message)
}

func (e ExternalAuthError) Unwrap() error {
	return e.Cause
}

// ProcessingError reports a failed classifier call or an unparseable
// classifier response.
type ProcessingError struct {
	Operation string
	Message   string
	Cause     error
}

func (e ProcessingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("processing failed during %s: %s (caused by: %v)", e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("processing failed during %s: %s", e.Operation, e.Message)
}

func (e ProcessingError) Unwrap() error {
	return e.Cause
}

// InternalError wraps storage or other unexpected failures.
type InternalError struct {
	Message string
	Cause   error
}

func (e InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("internal error: %s (caused by: %v)", e.Message, e.Cause)
	}
	return fmt.Sprintf("internal error: %s", e.Message)
}

func (e InternalError) Unwrap() error {
	return e.Cause
}

// WrapRepositoryError wraps a database failure as an InternalError.
func WrapRepositoryError(err error, operation string) error {
	if err == nil {
		return nil
	}
	return InternalError{Message: operation + " failed", Cause: err}
}

// HTTPStatus maps a domain error onto the status code the handlers return.
// Anything unrecognized is reported as an internal fault.
func HTTPStatus(err error) int {
	var (
		validation ValidationError
		notFound   NotFoundError
		authErr    ExternalAuthError
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &authErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
