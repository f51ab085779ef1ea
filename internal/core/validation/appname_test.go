package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// IsValidAppName Tests
// =============================================================================

func TestIsValidAppName_Valid(t *testing.T) {
	names := []string{
		"timetracker",
		"my-app",
		"app123",
		"a1",
		"myapp-v2",
		"ab",
		"a1234567890123456789012345678901", // 32 chars
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			assert.True(t, IsValidAppName(name))
			assert.Nil(t, AppNameError(name))
		})
	}
}

func TestIsValidAppName_Invalid(t *testing.T) {
	names := []string{
		"TimeTracker",
		"",
		"a",
		"a12345678901234567890123456789012", // 33 chars
		"1app",
		"-app",
		"app-",
		"my--app",
		"app_name",
		"app.name",
		"app name",
		"MyApp",
		"añb",
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			assert.False(t, IsValidAppName(name))
		})
	}
}

// =============================================================================
// AppNameError Tests
// =============================================================================

func TestAppNameError_Rules(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantRule NameRule
		wantText string
	}{
		{"empty", "", RuleEmpty, "empty"},
		{"one char", "a", RuleTooShort, "too short"},
		{"33 chars", strings.Repeat("a", 33), RuleTooLong, "too long"},
		{"double hyphen", "my--app", RuleDoubleHyphen, "consecutive hyphens"},
		{"starts with digit", "1app", RuleBadStart, "start with a lowercase letter"},
		{"starts with hyphen", "-app", RuleBadStart, "start with a lowercase letter"},
		{"uppercase start", "MyApp", RuleBadStart, "start with a lowercase letter"},
		{"ends with hyphen", "app-", RuleBadEnd, "end with a lowercase letter or a digit"},
		{"underscore", "app_name", RuleInvalidChar, "invalid characters"},
		{"dot", "app.name", RuleInvalidChar, "invalid characters"},
		{"inner uppercase", "myApp", RuleInvalidChar, "invalid characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := AppNameError(tt.input)
			require.NotNil(t, err)
			assert.Equal(t, tt.wantRule, err.Rule)
			assert.Equal(t, tt.input, err.Name)
			assert.Contains(t, err.Error(), tt.wantText)
		})
	}
}

func TestAppNameError_DoubleHyphenBeatsCharacterSet(t *testing.T) {
	err := AppNameError("my--app")
	require.NotNil(t, err)
	assert.Equal(t, RuleDoubleHyphen, err.Rule)
}

func TestAppNameError_PriorityOrder(t *testing.T) {
	// too long and double hyphen: length wins
	err := AppNameError(strings.Repeat("a-", 16) + "--b")
	require.NotNil(t, err)
	assert.Equal(t, RuleTooLong, err.Rule)

	// double hyphen and bad start: double hyphen wins
	err = AppNameError("1--a")
	require.NotNil(t, err)
	assert.Equal(t, RuleDoubleHyphen, err.Rule)

	// bad start and bad end: start wins
	err = AppNameError("_a_")
	require.NotNil(t, err)
	assert.Equal(t, RuleBadStart, err.Rule)
}

func TestAppNameError_LengthBoundaries(t *testing.T) {
	assert.Nil(t, AppNameError("ab"))
	assert.Nil(t, AppNameError(strings.Repeat("a", 32)))
	assert.Equal(t, RuleTooShort, AppNameError("a").Rule)
	assert.Equal(t, RuleTooLong, AppNameError(strings.Repeat("a", 33)).Rule)
}

func TestAppNameError_UnwrapsToSentinel(t *testing.T) {
	var err error = AppNameError("my--app")
	assert.True(t, errors.Is(err, ErrInvalidAppName))

	var nameErr *NameError
	require.True(t, errors.As(err, &nameErr))
	assert.Equal(t, RuleDoubleHyphen, nameErr.Rule)
}

func TestNameRule_String(t *testing.T) {
	assert.Equal(t, "double-hyphen", RuleDoubleHyphen.String())
	assert.Equal(t, "none", RuleNone.String())
	assert.Equal(t, "rule(42)", NameRule(42).String())
}

func TestAppNameRules_MentionsLimits(t *testing.T) {
	rules := AppNameRules()
	assert.Len(t, rules, 5)
	assert.Contains(t, rules[4], "2")
	assert.Contains(t, rules[4], "32")
}
