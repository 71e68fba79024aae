// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package challenge

import (
	"errors"
	"strings"
)

// Error taxonomy shared by the engine's operations. Handlers translate these
// to HTTP statuses; tests match on them directly.
var (
	// ErrNotFound means the referenced challenge or entry does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict means a uniqueness invariant was violated: duplicate
	// entry, duplicate vote, duplicate slug, or losing a concurrent race.
	ErrConflict = errors.New("conflict")

	// ErrInvalidState means the operation was attempted outside the
	// permitted lifecycle phase (entering outside the active window,
	// voting outside the voting window).
	ErrInvalidState = errors.New("invalid state")

	// ErrForbidden means an authorization-shaped rejection, e.g. voting
	// for your own entry.
	ErrForbidden = errors.New("forbidden")
)

// ValidationError describes malformed input: bad URL, over-length text,
// missing required field. Always locally recoverable.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

// AsValidation unwraps err into a ValidationError if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// isUniqueViolation reports whether err is a uniqueness-constraint failure on
// the named constraint. Matches the Postgres error text (and the SQLite
// wording some dev setups produce), the same way ballot submission races are
// classified.
func isUniqueViolation(err error, constraint string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if strings.Contains(msg, "duplicate key value violates unique constraint") &&
		strings.Contains(msg, constraint) {
		return true
	}
	return strings.Contains(msg, "UNIQUE constraint failed")
}
