package domain

import "errors"

var (
	// ErrOutsideOperatingHours the requested window is not fully inside room open time
	ErrOutsideOperatingHours = errors.New("outside operating hours")

	// ErrSchedulingConflict the requested window overlaps an active reservation
	ErrSchedulingConflict = errors.New("scheduling conflict")

	// ErrInvalidTransition the state machine does not allow the requested edge
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrStaleState the status changed between read and compare-and-swap write
	ErrStaleState = errors.New("stale reservation state")

	// ErrConcurrentModification the transition lost a race twice and is surfaced as a conflict
	ErrConcurrentModification = errors.New("reservation modified concurrently")

	// ErrNotFound the referenced entity does not exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidInterval start is not before end
	ErrInvalidInterval = errors.New("invalid interval: start must be before end")

	// ErrDuplicateDayRule more than one operating hours rule for the same weekday
	ErrDuplicateDayRule = errors.New("duplicate operating hours rule for weekday")

	// ErrInvalidPolicy cancellation policy is malformed
	ErrInvalidPolicy = errors.New("invalid cancellation policy")
)
