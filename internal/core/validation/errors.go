package validation

import (
	"errors"
	"fmt"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// Option rule errors
	ErrUnsupportedEngine    = errors.New("unsupported database engine")
	ErrMissingRequiredField = errors.New("required field is missing")
	ErrWeakPassword         = errors.New("password is missing or too short")
	ErrEmptyImageTag        = errors.New("image tag is empty")
	ErrEngineTagMismatch    = errors.New("database engine does not match image tag")
	ErrInvalidSizing        = errors.New("invalid resource sizing")

	// Naming errors
	ErrInvalidAppName = errors.New("invalid application name")
)

// ValidationError reports the first option rule that failed.
type ValidationError struct {
	Field   string // e.g., "db-password"
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}

// NameError reports the first naming rule an application name violates.
type NameError struct {
	Name    string
	Rule    NameRule
	Message string
}

func (e *NameError) Error() string {
	return e.Message
}

func (e *NameError) Unwrap() error {
	return ErrInvalidAppName
}
