// Package errors provides structured error types for permsample.
//
// This package defines error codes and types that enable:
//   - Distinct, named failure kinds for every configuration mistake
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages in the CLI
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Construction-time configuration failures (programmer errors)
//   - INDEX_OUT_OF_RANGE: Bounds violations on partial permutations
//   - EMPTY_* / MISMATCHED_*: Heuristic combinator misconfiguration
//   - NOT_FOUND / INTERNAL_*: Resource lookups and unexpected failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidBeta, "beta must be in [0,1], got %v", beta)
//	if errors.Is(err, errors.ErrCodeInvalidBeta) {
//	    // Handle configuration error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidInstance, origErr, "failed to decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Sampler and data structure configuration errors
	ErrCodeInvalidLength     Code = "INVALID_LENGTH"
	ErrCodeInvalidBeta       Code = "INVALID_BETA"
	ErrCodeInvalidExponent   Code = "INVALID_EXPONENT"
	ErrCodeInvalidParameter  Code = "INVALID_PARAMETER"
	ErrCodeEmptyHeuristicSet Code = "EMPTY_HEURISTIC_SET"
	ErrCodeMismatchedProblem Code = "MISMATCHED_PROBLEM"

	// Bounds violations
	ErrCodeIndexOutOfRange Code = "INDEX_OUT_OF_RANGE"

	// Input validation errors
	ErrCodeInvalidInput       Code = "INVALID_INPUT"
	ErrCodeInvalidInstance    Code = "INVALID_INSTANCE"
	ErrCodeInvalidConfig      Code = "INVALID_CONFIG"
	ErrCodeInvalidHeuristic   Code = "INVALID_HEURISTIC"
	ErrCodeInvalidAlgorithm   Code = "INVALID_ALGORITHM"
	ErrCodeInvalidPermutation Code = "INVALID_PERMUTATION"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// OutOfRange panics with an ErrCodeIndexOutOfRange error. Bounds violations
// are caller bugs and are not meant to be recovered from.
func OutOfRange(what string, index, length int) {
	panic(New(ErrCodeIndexOutOfRange, "%s index %d out of range [0,%d)", what, index, length))
}
