package validation

import (
	"errors"
	"fmt"
)

// ConfigValidator provides a fluent interface for checks that struct tags
// cannot express. It collects all validation errors rather than failing on
// the first one.
type ConfigValidator struct {
	errors []error
	name   string // config section name for error messages
}

// NewConfigValidator creates a new config validator with the given section name.
func NewConfigValidator(configName string) *ConfigValidator {
	return &ConfigValidator{
		name:   configName,
		errors: make([]error, 0),
	}
}

// Unique validates that no string appears twice.
func (cv *ConfigValidator) Unique(field string, values []string) *ConfigValidator {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, dup := seen[v]; dup {
			cv.errors = append(cv.errors, fmt.Errorf("%s.%s: duplicate value %q", cv.name, field, v))
			return cv
		}
		seen[v] = struct{}{}
	}
	return cv
}

// Custom runs fn and records its error, if any, under field.
func (cv *ConfigValidator) Custom(field string, fn func() error) *ConfigValidator {
	if err := fn(); err != nil {
		cv.errors = append(cv.errors, fmt.Errorf("%s.%s: %w", cv.name, field, err))
	}
	return cv
}

// When runs validations only if condition holds.
func (cv *ConfigValidator) When(condition bool, validations func(*ConfigValidator)) *ConfigValidator {
	if condition {
		validations(cv)
	}
	return cv
}

// Validate returns the collected errors joined, or nil.
func (cv *ConfigValidator) Validate() error {
	return errors.Join(cv.errors...)
}
