package validation

import (
	"fmt"
	"strings"
)

// =============================================================================
// Application Name Grammar
// =============================================================================

const (
	MinAppNameLength = 2
	MaxAppNameLength = 32
)

// NameRule identifies one rule of the application naming grammar.
type NameRule int

const (
	RuleNone NameRule = iota
	RuleEmpty
	RuleTooShort
	RuleTooLong
	RuleDoubleHyphen
	RuleBadStart
	RuleBadEnd
	RuleInvalidChar
)

func (r NameRule) String() string {
	switch r {
	case RuleNone:
		return "none"
	case RuleEmpty:
		return "empty"
	case RuleTooShort:
		return "too-short"
	case RuleTooLong:
		return "too-long"
	case RuleDoubleHyphen:
		return "double-hyphen"
	case RuleBadStart:
		return "bad-start"
	case RuleBadEnd:
		return "bad-end"
	case RuleInvalidChar:
		return "invalid-char"
	default:
		return fmt.Sprintf("rule(%d)", int(r))
	}
}

// AppNameRules lists the naming rules in human-readable form.
func AppNameRules() []string {
	return []string{
		"only lowercase letters (a-z), digits (0-9) and hyphens (-) are allowed",
		"must start with a lowercase letter",
		"must end with a lowercase letter or a digit",
		"must not contain consecutive hyphens ('--')",
		fmt.Sprintf("length must be between %d and %d characters", MinAppNameLength, MaxAppNameLength),
	}
}

// IsValidAppName reports whether name satisfies the application naming grammar.
// The name is expected to be lowercased by the caller.
//
// Example:
//
//	IsValidAppName("my-app")  // returns true
//	IsValidAppName("my--app") // returns false
func IsValidAppName(name string) bool {
	return AppNameError(name) == nil
}

// AppNameError returns the first naming rule that name violates, or nil.
// Rules are checked in a fixed order: empty, too short, too long, double
// hyphen, bad first character, bad last character, invalid character.
//
// Example:
//
//	AppNameError("my--app").Rule // returns RuleDoubleHyphen
//	AppNameError("timetracker")  // returns nil
func AppNameError(name string) *NameError {
	fail := func(rule NameRule, format string, args ...any) *NameError {
		return &NameError{Name: name, Rule: rule, Message: fmt.Sprintf(format, args...)}
	}

	if name == "" {
		return fail(RuleEmpty, "app name is empty; use %d-%d lowercase letters, digits or hyphens", MinAppNameLength, MaxAppNameLength)
	}
	if len(name) < MinAppNameLength {
		return fail(RuleTooShort, "app name %q is too short; at least %d characters are required", name, MinAppNameLength)
	}
	if len(name) > MaxAppNameLength {
		return fail(RuleTooLong, "app name %q is too long; at most %d characters are allowed", name, MaxAppNameLength)
	}
	if strings.Contains(name, "--") {
		return fail(RuleDoubleHyphen, "app name %q contains consecutive hyphens ('--')", name)
	}
	if !isLower(name[0]) {
		return fail(RuleBadStart, "app name %q must start with a lowercase letter", name)
	}
	if last := name[len(name)-1]; !isLower(last) && !isDigit(last) {
		return fail(RuleBadEnd, "app name %q must end with a lowercase letter or a digit", name)
	}
	for i := 0; i < len(name); i++ {
		if c := name[i]; !isLower(c) && !isDigit(c) && c != '-' {
			return fail(RuleInvalidChar, "app name %q contains invalid characters; only a-z, 0-9 and '-' are allowed", name)
		}
	}
	return nil
}

func isLower(c byte) bool { return c >= 'a' && c <= 'z' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }
