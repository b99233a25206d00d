// Package validation checks sync patterns before they are used to read the
// template or write into the project.
package validation

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// Error represents a validation failure with context.
type Error struct {
	// Field is the name of the field or component that failed validation
	Field string
	// Message describes the validation failure
	Message string
	// Err is the underlying error (if any)
	Err error
}

// Error returns a formatted validation error message.
func (ve *Error) Error() string {
	if ve.Err != nil {
		return fmt.Sprintf("validation failed for %q: %s: %v", ve.Field, ve.Message, ve.Err)
	}
	return fmt.Sprintf("validation failed for %q: %s", ve.Field, ve.Message)
}

// Unwrap returns the underlying error for errors.Is/As.
func (ve *Error) Unwrap() error {
	return ve.Err
}

// Errors collects multiple validation errors.
type Errors []error

// Error returns a formatted error message for all validation failures.
func (ve Errors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}
	return fmt.Sprintf("%d validation errors:\n- %s", len(ve), errors.Join(ve...))
}

// Result contains the outcome of a validation check.
type Result struct {
	// Valid indicates whether all validations passed
	Valid bool
	// Warnings contains non-fatal validation issues
	Warnings []string
	// Errors contains validation failures that prevent the operation
	Errors []error
}

// AddError adds an error to the validation result.
func (r *Result) AddError(err error) {
	r.Valid = false
	r.Errors = append(r.Errors, err)
}

// AddWarning adds a warning to the validation result.
func (r *Result) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// HasErrors returns true if there are any validation errors.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// Error returns the combined validation error message.
func (r *Result) Error() error {
	if !r.HasErrors() {
		return nil
	}
	if len(r.Errors) == 1 {
		return r.Errors[0]
	}
	return Errors(r.Errors)
}

// Summary returns a human-readable summary of the validation result.
func (r *Result) Summary() string {
	if r.Valid && len(r.Warnings) == 0 {
		return "All validations passed"
	}
	var msg string
	if r.Valid {
		msg = "Validation passed with warnings"
	} else {
		msg = "Validation failed"
	}
	if len(r.Warnings) > 0 {
		msg += fmt.Sprintf(" (%d warning(s))", len(r.Warnings))
	}
	return msg
}

// ValidatePatterns checks include and exclude lists.
//
// An include must be a non-empty relative slash path that stays inside the
// root it is joined to. Excludes are substring tokens matched against
// relative paths and are never joined to a root, so they only draw warnings:
// an empty token is ignored. Duplicates and include patterns outside
// src/ are also reported as warnings.
func ValidatePatterns(include, exclude []string) *Result {
	result := &Result{Valid: true}

	seen := make(map[string]bool, len(include))
	for i, p := range include {
		if err := ValidatePattern(fmt.Sprintf("include[%d]", i), p); err != nil {
			result.AddError(err)
			continue
		}
		clean := path.Clean(p)
		if seen[clean] {
			result.AddWarning(fmt.Sprintf("include: duplicate pattern %q", p))
		}
		seen[clean] = true
		if clean != "src" && !strings.HasPrefix(clean, "src/") {
			result.AddWarning(fmt.Sprintf("include: %q is outside src/", p))
		}
	}

	tokens := make(map[string]bool, len(exclude))
	for i, p := range exclude {
		if p == "" {
			result.AddWarning(fmt.Sprintf("exclude[%d]: empty token is ignored", i))
			continue
		}
		if tokens[p] {
			result.AddWarning(fmt.Sprintf("exclude: duplicate pattern %q", p))
		}
		tokens[p] = true
	}

	return result
}

// ValidatePattern checks a single include pattern. field names it in the error.
func ValidatePattern(field, pattern string) error {
	if strings.TrimSpace(pattern) == "" {
		return &Error{
			Field:   field,
			Message: "pattern cannot be empty",
		}
	}

	if strings.Contains(pattern, `\`) {
		return &Error{
			Field:   field,
			Message: fmt.Sprintf("pattern %q must use forward slashes", pattern),
		}
	}

	if path.IsAbs(pattern) || (len(pattern) > 1 && pattern[1] == ':') {
		return &Error{
			Field:   field,
			Message: fmt.Sprintf("pattern %q must be relative", pattern),
		}
	}

	clean := path.Clean(pattern)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return &Error{
			Field:   field,
			Message: fmt.Sprintf("pattern %q leaves the project root", pattern),
		}
	}

	return nil
}
