// Package domain holds the entities, repository contracts, error taxonomy and
// authorization policy shared by every layer above the store.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the three reportable failure classes. Nothing in this
// service retries: a failed operation surfaces immediately.
var (
	// ErrNotFound means a referenced user, perfume, review or discussion
	// identifier does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict means a uniqueness constraint was violated, such as a second
	// review for the same (user, perfume) pair or a duplicate email.
	ErrConflict = errors.New("conflict")

	// ErrValidation means the input itself is unacceptable: a rating outside
	// 1..5, a missing required field, an overlong comment.
	ErrValidation = errors.New("validation failed")

	// ErrForbidden means the caller lacks the capability for the operation.
	ErrForbidden = errors.New("forbidden")
)

// NotFoundf wraps ErrNotFound with context.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

// Conflictf wraps ErrConflict with context.
func Conflictf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrConflict)...)
}

// Validationf wraps ErrValidation with context.
func Validationf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrValidation)...)
}

// Forbiddenf wraps ErrForbidden with context.
func Forbiddenf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrForbidden)...)
}
