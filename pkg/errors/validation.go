package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateLength checks that a permutation length is non-negative.
func ValidateLength(n int) error {
	if n < 0 {
		return New(ErrCodeInvalidLength, "length must be non-negative, got %d", n)
	}
	return nil
}

// ValidateBeta checks that an acceptance band width lies in [0,1].
// NaN is rejected.
func ValidateBeta(beta float64) error {
	if math.IsNaN(beta) || beta < 0 || beta > 1 {
		return New(ErrCodeInvalidBeta, "beta must be in [0,1], got %v", beta)
	}
	return nil
}

// ValidateExponent checks that a bias exponent is strictly positive and finite.
func ValidateExponent(a float64) error {
	if math.IsNaN(a) || math.IsInf(a, 0) || a <= 0 {
		return New(ErrCodeInvalidExponent, "exponent must be positive and finite, got %v", a)
	}
	return nil
}

// ValidatePositive checks that a named real parameter is strictly positive and finite.
func ValidatePositive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return New(ErrCodeInvalidParameter, "%s must be positive and finite, got %v", name, v)
	}
	return nil
}

// ValidateName validates a user-supplied identifier (instance name, record ID)
// that may end up in a file path. It rejects names that could be used for
// path traversal.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidInput, "name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "name contains invalid control characters")
		}
	}

	for _, pattern := range []string{"..", "/", "\\"} {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidInput, "name contains invalid characters: %q", pattern)
		}
	}

	return nil
}
