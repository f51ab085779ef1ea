package main

import (
	"errors"

	"github.com/artpar/ttdeploy/internal/core/compose"
	"github.com/artpar/ttdeploy/internal/engine"
	"github.com/artpar/ttdeploy/internal/shell/artifacts"
)

// =============================================================================
// Exit Codes
// =============================================================================

const (
	ExitSuccess           = 0
	ExitValidationError   = 1 // usage, naming and option rule failures
	ExitConfigError       = 2
	ExitArtifactError     = 3
	ExitProvisioningError = 4
)

// ConfigError wraps a configuration loading failure.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return "configuration error: " + e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var configErr *ConfigError
	var artifactErr *compose.ArtifactError
	switch {
	case errors.As(err, &configErr):
		return ExitConfigError
	case errors.Is(err, artifacts.ErrWriteFailed), errors.As(err, &artifactErr):
		return ExitArtifactError
	case errors.Is(err, engine.ErrProvisioningFailed):
		return ExitProvisioningError
	default:
		return ExitValidationError
	}
}
