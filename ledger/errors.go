/*
errors.go - Error types for the rent ledger engine

PURPOSE:
  Centralized error taxonomy. The engine performs no I/O, so every error
  here describes invalid input, never a storage failure. Errors propagate
  to callers unmodified; user-facing presentation and logging belong to
  the collaborators.

CATEGORIES:
  1. Validation errors  - missing/invalid fields on input
  2. Range errors       - end date before start date in the calculator
  3. Lookup errors      - referenced record missing (raised by services)
  4. Integrity errors   - delete blocked by a referencing contract

USAGE:
  Match sentinels with errors.Is, structured errors with errors.As:

    if errors.Is(err, ledger.ErrInvalidRange) { ... }

    var verr *ledger.ValidationError
    if errors.As(err, &verr) { ... }
*/
package ledger

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidRange is returned when a period's end date precedes its start.
	ErrInvalidRange = errors.New("invalid range: end date before start date")

	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrReferenced is returned when a delete is blocked because a contract
	// still references the record.
	ErrReferenced = errors.New("record is referenced by a contract")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ValidationError describes one invalid input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for a field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// InvalidRangeError reports a period whose end precedes its start.
type InvalidRangeError struct {
	Start Date
	End   Date
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range: end %s before start %s", e.End, e.Start)
}

func (e *InvalidRangeError) Unwrap() error { return ErrInvalidRange }

// NotFoundError reports a missing record of a given kind.
type NotFoundError struct {
	Kind string // "contract", "payment", "tenant", ...
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ReferencedError reports a delete blocked by referencing contracts.
type ReferencedError struct {
	Kind string
	ID   string
}

func (e *ReferencedError) Error() string {
	return fmt.Sprintf("cannot delete %s %s: referenced by a contract", e.Kind, e.ID)
}

func (e *ReferencedError) Unwrap() error { return ErrReferenced }

// IsClientError reports whether the error is due to invalid client input
// rather than an internal failure.
func IsClientError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr) ||
		errors.Is(err, ErrInvalidRange) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrReferenced)
}
