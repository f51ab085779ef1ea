// Package compose renders the dry-run artifacts of a deployment and checks
// them against each other.
// This is part of the Functional Core - all functions are pure with no I/O.
package compose

import (
	"errors"
	"fmt"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// Input errors
	ErrEmptyInput  = errors.New("compose manifest is empty")
	ErrInvalidYAML = errors.New("invalid YAML syntax")
	ErrInvalidEnv  = errors.New("invalid env file")

	// Structure errors
	ErrNoServices         = errors.New("compose manifest must define at least one service")
	ErrServiceNoImage     = errors.New("service must have an image")
	ErrServiceInvalidPort = errors.New("invalid port configuration")
	ErrCircularDependency = errors.New("circular dependency detected")

	// Cross-artifact errors
	ErrUndefinedVariable = errors.New("manifest references a variable the env file does not define")
	ErrArtifactMismatch  = errors.New("generated artifacts disagree")
)

// ParseError wraps errors with context about where parsing failed.
type ParseError struct {
	Field   string // e.g., "services.db.ports[0]"
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError.
func NewParseError(field, message string, err error) *ParseError {
	return &ParseError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}

// ArtifactError reports a generated artifact that failed its self-check.
type ArtifactError struct {
	Artifact string // "manifest" or "env"
	Field    string
	Message  string
	Err      error
}

func (e *ArtifactError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s %s: %s", e.Artifact, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Artifact, e.Message)
}

func (e *ArtifactError) Unwrap() error {
	return e.Err
}

func newArtifactError(artifact, field, message string, err error) *ArtifactError {
	return &ArtifactError{Artifact: artifact, Field: field, Message: message, Err: err}
}
