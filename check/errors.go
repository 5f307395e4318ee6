/*
errors.go - Centralized error types for the check domain

PURPOSE:
  Validation and business errors in one place. Commands surface these to
  the initiating action and abort without mutating state; persistence
  failures are recovered locally (DefaultState) and never block a session.

USAGE:
  Callers branch with errors.Is():

    if errors.Is(err, check.ErrExtendNotLater) {
        // reject with 409, state unchanged
    }
*/
package check

import (
	"errors"
	"fmt"

	"github.com/daftar/check-engine/calendar"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrBuyerRequired is returned when the buyer name is empty.
	ErrBuyerRequired = errors.New("buyer name is required")

	// ErrBadPrincipal is returned for a non-positive principal.
	ErrBadPrincipal = errors.New("principal must be positive")

	// ErrBadRate is returned for a non-positive rate.
	ErrBadRate = errors.New("rate must be positive")

	// ErrDateOrder is returned when the due date is not strictly after
	// the start date.
	ErrDateOrder = errors.New("due date must be after start date")

	// ErrUnknownReferrer is returned when the referrer is not in the registry.
	ErrUnknownReferrer = errors.New("referrer not registered")

	// ErrBadCode is returned when the external code is present but not
	// exactly 16 digits.
	ErrBadCode = errors.New("code must be 16 digits")

	// ErrExtendNotLater is returned when an extension's new due date does
	// not fall strictly after the current one.
	ErrExtendNotLater = errors.New("extension date must be after current due date")

	// ErrNotFound is returned when no check has the requested id.
	ErrNotFound = errors.New("check not found")

	// ErrBadHorizon is returned when the future-window horizon is outside [1, 365].
	ErrBadHorizon = errors.New("future-days horizon out of range")

	// ErrReferrerName is returned when registering an empty or duplicate referrer.
	ErrReferrerName = errors.New("invalid referrer name")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ExtendError reports a rejected extension with both dates.
type ExtendError struct {
	ID        string
	Current   calendar.Date
	Requested calendar.Date
}

func (e *ExtendError) Error() string {
	return fmt.Sprintf("cannot extend %s: %s is not after %s", e.ID, e.Requested, e.Current)
}

func (e *ExtendError) Unwrap() error { return ErrExtendNotLater }
