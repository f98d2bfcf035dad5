// Package normalization maps loosely typed config strings onto typed enums.
package normalization

import (
	"fmt"
	"sort"
	"strings"

	"github.com/matttelliott/bookmarker-ai/internal/foundation"
	"github.com/matttelliott/bookmarker-ai/internal/foundation/errors"
)

// Normalizer provides type-safe string-to-enum normalization.
type Normalizer[T comparable] struct {
	name         string
	validValues  map[string]T
	defaultValue T
	validKeys    []string
}

// NewNormalizer creates a normalizer for the enum called name.
// Keys are compared after trimming and lower-casing.
func NewNormalizer[T comparable](name string, values map[string]T, defaultValue T) *Normalizer[T] {
	normalized := make(map[string]T, len(values))
	validKeys := make([]string, 0, len(values))

	for k, v := range values {
		key := clean(k)
		normalized[key] = v
		validKeys = append(validKeys, key)
	}
	sort.Strings(validKeys)

	return &Normalizer[T]{
		name:         name,
		validValues:  normalized,
		defaultValue: defaultValue,
		validKeys:    validKeys,
	}
}

// Normalize converts raw to the enum value, returning the default when unknown.
// An empty string also yields the default.
func (n *Normalizer[T]) Normalize(raw string) T {
	if value, exists := n.validValues[clean(raw)]; exists {
		return value
	}
	return n.defaultValue
}

// Parse converts raw to the enum value, failing with a validation error when
// raw is not recognized.
func (n *Normalizer[T]) Parse(raw string) foundation.Outcome[T] {
	if value, exists := n.validValues[clean(raw)]; exists {
		return foundation.Ok(value)
	}
	return foundation.Err[T](errors.ValidationError(
		fmt.Sprintf("invalid %s %q, valid options: %v", n.name, raw, n.validKeys)).
		WithContext("field", n.name).
		Build())
}

// IsValid reports whether value is one of the enum members.
func (n *Normalizer[T]) IsValid(value T) bool {
	for _, v := range n.validValues {
		if v == value {
			return true
		}
	}
	return false
}

// ValidKeys returns all valid normalized keys in sorted order.
func (n *Normalizer[T]) ValidKeys() []string {
	result := make([]string, len(n.validKeys))
	copy(result, n.validKeys)
	return result
}

func clean(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
