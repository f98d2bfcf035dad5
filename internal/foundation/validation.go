package foundation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/matttelliott/bookmarker-ai/internal/foundation/errors"
)

// Validator represents a validation function.
type Validator[T any] func(T) ValidationResult

// ValidationResult contains the result of a validation operation.
type ValidationResult struct {
	Valid  bool
	Errors []FieldError
}

// FieldError represents a single validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

// Error implements the error interface.
func (fe FieldError) Error() string {
	if fe.Field != "" {
		return fmt.Sprintf("field '%s': %s", fe.Field, fe.Message)
	}
	return fe.Message
}

// ValidationErrors is the failure payload of a schema parse.
type ValidationErrors struct {
	Entity string       `json:"entity"`
	Fields []FieldError `json:"fields"`
}

func (e *ValidationErrors) Error() string {
	messages := make([]string, 0, len(e.Fields))
	for _, fe := range e.Fields {
		messages = append(messages, fe.Error())
	}
	return fmt.Sprintf("invalid %s: %s", e.Entity, strings.Join(messages, "; "))
}

// Has reports whether any field error targets field.
func (e *ValidationErrors) Has(field string) bool {
	for _, fe := range e.Fields {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// Valid creates a successful validation result.
func Valid() ValidationResult {
	return ValidationResult{Valid: true}
}

// Invalid creates a failed validation result with errors.
func Invalid(errors ...FieldError) ValidationResult {
	return ValidationResult{
		Valid:  false,
		Errors: errors,
	}
}

// NewValidationError creates a validation error.
func NewValidationError(field, code, message string) FieldError {
	return FieldError{
		Field:   field,
		Code:    code,
		Message: message,
	}
}

// Combine merges multiple validation results.
func (vr ValidationResult) Combine(other ValidationResult) ValidationResult {
	if vr.Valid && other.Valid {
		return Valid()
	}

	var allErrors []FieldError
	allErrors = append(allErrors, vr.Errors...)
	allErrors = append(allErrors, other.Errors...)

	return Invalid(allErrors...)
}

// ToError converts a validation result to a classified validation error if invalid.
// The *ValidationErrors payload is kept as the cause.
func (vr ValidationResult) ToError(entity string) error {
	if vr.Valid {
		return nil
	}
	verrs := &ValidationErrors{Entity: entity, Fields: vr.Errors}
	return errors.WrapError(verrs, errors.CategoryValidation, verrs.Error()).
		WithContext("entity", entity).
		WithContext("fields", vr.Errors).
		Build()
}

// ValidateInto turns a validation result into an Outcome carrying value on success.
func ValidateInto[T any](entity string, value T, vr ValidationResult) Outcome[T] {
	if err := vr.ToError(entity); err != nil {
		return Err[T](err)
	}
	return Ok(value)
}

// StringMinLength validates that a string has at least min characters.
func StringMinLength(field string, minLen int) Validator[string] {
	return func(value string) ValidationResult {
		if utf8.RuneCountInString(value) < minLen {
			return Invalid(NewValidationError(
				field,
				"too_small",
				fmt.Sprintf("must contain at least %d character(s)", minLen),
			))
		}
		return Valid()
	}
}

// IntPositive validates that an integer is greater than zero.
func IntPositive(field string) Validator[int] {
	return func(value int) ValidationResult {
		if value <= 0 {
			return Invalid(NewValidationError(field, "too_small", "must be greater than 0"))
		}
		return Valid()
	}
}
