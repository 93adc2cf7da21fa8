// Package apperr defines the error taxonomy shared by the service and
// storage layers. Callers classify failures with errors.Is against the
// four sentinel kinds; the HTTP layer maps kinds to status codes.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks lookups of entities that do not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation marks malformed input rejected at write time,
	// e.g. amount shares that do not sum to the transaction amount.
	ErrValidation = errors.New("validation failed")

	// ErrBusinessRule marks operations that are well-formed but
	// forbidden by lifecycle state, e.g. settling an open period.
	ErrBusinessRule = errors.New("business rule violation")

	// ErrConflict marks a lost race on a serialized write, e.g. two
	// concurrent settlements of the same period. Callers may retry.
	ErrConflict = errors.New("conflict")
)

// NotFoundf returns an ErrNotFound with a formatted message.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

// Validationf returns an ErrValidation with a formatted message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrValidation)...)
}

// BusinessRulef returns an ErrBusinessRule with a formatted message.
func BusinessRulef(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrBusinessRule)...)
}

// Conflictf returns an ErrConflict with a formatted message.
func Conflictf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrConflict)...)
}
