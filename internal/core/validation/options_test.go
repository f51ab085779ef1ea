package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artpar/ttdeploy/internal/core/domain"
)

// =============================================================================
// Test Fixtures
// =============================================================================

func baseOptions() domain.Options {
	opts := domain.NewOptions(domain.StandardDefaults())
	opts.SubscriptionID = "00000000-0000-0000-0000-000000000000"
	opts.ResourceGroup = "rg-test"
	opts.TrackerPassword = "AppLoginP@ss!"
	opts.DBPassword = "Str0ngP@ssw0rd!"
	opts.ImageTag = "7.0-linux-postgres"
	return opts
}

func requireValidationError(t *testing.T, err error, sentinel error, field string) *ValidationError {
	t.Helper()
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, field, vErr.Field)
	return vErr
}

// =============================================================================
// Valid Options Tests
// =============================================================================

func TestValidateOptions_Valid(t *testing.T) {
	tests := []struct {
		name   string
		engine domain.Engine
		tag    string
	}{
		{"postgres tagged", domain.EnginePostgres, "7.0-linux-postgres"},
		{"postgres bare version", domain.EnginePostgres, "1.2.3"},
		{"postgres latest", domain.EnginePostgres, "latest"},
		{"sqlserver mssql tag", domain.EngineSQLServer, "7.0-linux-mssql"},
		{"sqlserver sqlserver tag", domain.EngineSQLServer, "7.0-SQLServer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := baseOptions()
			opts.DBEngine = tt.engine
			opts.ImageTag = tt.tag
			assert.NoError(t, ValidateOptions(opts))
		})
	}
}

// =============================================================================
// Rule Tests
// =============================================================================

func TestValidateOptions_UnsupportedEngine(t *testing.T) {
	opts := baseOptions()
	opts.DBEngine = domain.NormalizeEngine("mysql")

	vErr := requireValidationError(t, ValidateOptions(opts), ErrUnsupportedEngine, "db-type")
	assert.Contains(t, vErr.Error(), "postgres or sqlserver")
}

func TestValidateOptions_MissingSubscription(t *testing.T) {
	opts := baseOptions()
	opts.SubscriptionID = "   "
	requireValidationError(t, ValidateOptions(opts), ErrMissingRequiredField, "subscription")
}

func TestValidateOptions_MissingResourceGroup(t *testing.T) {
	opts := baseOptions()
	opts.ResourceGroup = ""
	requireValidationError(t, ValidateOptions(opts), ErrMissingRequiredField, "resource-group")
}

func TestValidateOptions_TrackerPasswordTooShort(t *testing.T) {
	opts := baseOptions()
	opts.TrackerPassword = "short"
	vErr := requireValidationError(t, ValidateOptions(opts), ErrWeakPassword, "tracker-password")
	assert.Contains(t, vErr.Error(), "tracker-password")
}

func TestValidateOptions_DBPasswordTooShort(t *testing.T) {
	opts := baseOptions()
	opts.DBPassword = "short"
	vErr := requireValidationError(t, ValidateOptions(opts), ErrWeakPassword, "db-password")
	assert.Contains(t, vErr.Error(), "db-password")
	assert.NotContains(t, vErr.Error(), "tracker-password")
}

func TestValidateOptions_BlankPassword(t *testing.T) {
	opts := baseOptions()
	opts.DBPassword = "          "
	requireValidationError(t, ValidateOptions(opts), ErrWeakPassword, "db-password")
}

func TestValidateOptions_PasswordExactlyMinLength(t *testing.T) {
	opts := baseOptions()
	opts.DBPassword = "12345678"
	opts.TrackerPassword = "abcdefgh"
	assert.NoError(t, ValidateOptions(opts))
}

func TestValidateOptions_EmptyImageTag(t *testing.T) {
	opts := baseOptions()
	opts.ImageTag = ""
	vErr := requireValidationError(t, ValidateOptions(opts), ErrEmptyImageTag, "tt-tag")
	assert.Contains(t, vErr.Error(), "tt-tag")
}

func TestValidateOptions_SQLServerWithPostgresTag(t *testing.T) {
	opts := baseOptions()
	opts.DBEngine = domain.EngineSQLServer
	opts.ImageTag = "7.0-linux-postgres"

	vErr := requireValidationError(t, ValidateOptions(opts), ErrEngineTagMismatch, "tt-tag")
	assert.Contains(t, vErr.Message, `"sqlserver"`)
	assert.Contains(t, vErr.Message, `"7.0-linux-postgres"`)
	assert.Contains(t, vErr.Message, `"mssql" or "sqlserver"`)
}

func TestValidateOptions_PostgresWithMssqlTag(t *testing.T) {
	opts := baseOptions()
	opts.ImageTag = "7.0-linux-mssql"

	vErr := requireValidationError(t, ValidateOptions(opts), ErrEngineTagMismatch, "tt-tag")
	assert.Contains(t, vErr.Message, `"postgres"`)
}

func TestValidateOptions_InvalidSizing(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Options)
		field  string
	}{
		{"app cpu zero", func(o *domain.Options) { o.Sizing.App.CPUCores = 0 }, "tt-cpu"},
		{"app memory negative", func(o *domain.Options) { o.Sizing.App.MemoryGiB = -1 }, "tt-memory"},
		{"db cpu zero", func(o *domain.Options) { o.Sizing.DB.CPUCores = 0 }, "db-cpu"},
		{"db memory zero", func(o *domain.Options) { o.Sizing.DB.MemoryGiB = 0 }, "db-memory"},
		{"cache cpu zero", func(o *domain.Options) { o.Sizing.Cache.CPUCores = 0 }, "redis-cpu"},
		{"cache memory zero", func(o *domain.Options) { o.Sizing.Cache.MemoryGiB = 0 }, "redis-memory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := baseOptions()
			tt.mutate(&opts)
			requireValidationError(t, ValidateOptions(opts), ErrInvalidSizing, tt.field)
		})
	}
}

// =============================================================================
// Ordering Tests
// =============================================================================

func TestValidateOptions_EngineCheckedBeforeSubscription(t *testing.T) {
	opts := baseOptions()
	opts.DBEngine = domain.Engine("mysql")
	opts.SubscriptionID = ""

	requireValidationError(t, ValidateOptions(opts), ErrUnsupportedEngine, "db-type")
}

func TestValidateOptions_TrackerPasswordCheckedBeforeDBPassword(t *testing.T) {
	opts := baseOptions()
	opts.TrackerPassword = "x"
	opts.DBPassword = "y"

	requireValidationError(t, ValidateOptions(opts), ErrWeakPassword, "tracker-password")
}

func TestValidateOptions_ChecksInOrder(t *testing.T) {
	// Every rule broken: each fix reveals the next rule in order
	opts := domain.Options{
		DBEngine: domain.Engine("mysql"),
		ImageTag: "",
	}

	steps := []struct {
		sentinel error
		field    string
		fix      func(*domain.Options)
	}{
		{ErrUnsupportedEngine, "db-type", func(o *domain.Options) { o.DBEngine = domain.EngineSQLServer }},
		{ErrMissingRequiredField, "subscription", func(o *domain.Options) { o.SubscriptionID = "sub" }},
		{ErrMissingRequiredField, "resource-group", func(o *domain.Options) { o.ResourceGroup = "rg" }},
		{ErrWeakPassword, "tracker-password", func(o *domain.Options) { o.TrackerPassword = "password1" }},
		{ErrWeakPassword, "db-password", func(o *domain.Options) { o.DBPassword = "password2" }},
		{ErrEmptyImageTag, "tt-tag", func(o *domain.Options) { o.ImageTag = "7.0-linux-postgres" }},
		{ErrEngineTagMismatch, "tt-tag", func(o *domain.Options) { o.ImageTag = "7.0-linux-mssql" }},
		{ErrInvalidSizing, "tt-cpu", func(o *domain.Options) { o.Sizing = domain.StandardDefaults().Sizing }},
	}

	for _, step := range steps {
		requireValidationError(t, ValidateOptions(opts), step.sentinel, step.field)
		step.fix(&opts)
	}
	assert.NoError(t, ValidateOptions(opts))
}
