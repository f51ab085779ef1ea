package validation

import (
	"fmt"
	"strings"

	"github.com/artpar/ttdeploy/internal/core/domain"
)

// MinPasswordLength is the minimum length of the database and application passwords.
const MinPasswordLength = 8

// =============================================================================
// Option Validation
// =============================================================================

// ValidateOptions checks the business rules of a deployment request and
// returns the first violation as a *ValidationError, or nil.
//
// Rules are evaluated in this order:
//   - the database engine is supported
//   - subscription and resource group are not blank
//   - the application password, then the database password, is long enough
//   - the image tag is not blank
//   - an image tag naming an engine names the selected one
//   - every resource size is positive
//
// Example:
//
//	if err := ValidateOptions(opts); err != nil {
//	    // errors.Is(err, ErrWeakPassword) etc.
//	}
func ValidateOptions(o domain.Options) error {
	profile, ok := o.DBEngine.Profile()
	if !ok {
		return NewValidationError("db-type",
			fmt.Sprintf("unsupported database engine %q; use postgres or sqlserver", o.DBEngine),
			ErrUnsupportedEngine)
	}
	if isBlank(o.SubscriptionID) {
		return NewValidationError("subscription", "subscription is required", ErrMissingRequiredField)
	}
	if isBlank(o.ResourceGroup) {
		return NewValidationError("resource-group", "resource-group is required", ErrMissingRequiredField)
	}
	if err := checkPassword("tracker-password", o.TrackerPassword); err != nil {
		return err
	}
	if err := checkPassword("db-password", o.DBPassword); err != nil {
		return err
	}
	if isBlank(o.ImageTag) {
		return NewValidationError("tt-tag",
			"image tag is empty; e.g. 7.0-linux-postgres or 7.0-linux-mssql",
			ErrEmptyImageTag)
	}
	if domain.TagNamesEngine(o.ImageTag) && !profile.MatchesTag(o.ImageTag) {
		return NewValidationError("tt-tag",
			fmt.Sprintf("db-type %q does not match tt-tag %q; the tag must contain %s (e.g. postgres -> 7.0-linux-postgres, sqlserver -> 7.0-linux-mssql)",
				o.DBEngine, o.ImageTag, quoteJoin(profile.TagMarkers)),
			ErrEngineTagMismatch)
	}
	return validateSizing(o.Sizing)
}

func checkPassword(field, value string) error {
	if isBlank(value) {
		return NewValidationError(field, field+" is required", ErrWeakPassword)
	}
	if len(value) < MinPasswordLength {
		return NewValidationError(field,
			fmt.Sprintf("%s is too short; at least %d characters are required", field, MinPasswordLength),
			ErrWeakPassword)
	}
	return nil
}

func validateSizing(s domain.Sizing) error {
	checks := []struct {
		field string
		value float64
	}{
		{"tt-cpu", s.App.CPUCores},
		{"tt-memory", s.App.MemoryGiB},
		{"db-cpu", s.DB.CPUCores},
		{"db-memory", s.DB.MemoryGiB},
		{"redis-cpu", s.Cache.CPUCores},
		{"redis-memory", s.Cache.MemoryGiB},
	}
	for _, c := range checks {
		if !(c.value > 0) {
			return NewValidationError(c.field,
				fmt.Sprintf("%s must be greater than 0, got %g", c.field, c.value),
				ErrInvalidSizing)
		}
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func quoteJoin(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return strings.Join(quoted, " or ")
}
