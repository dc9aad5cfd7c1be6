package attendance

import "errors"

// Attendance domain errors
var (
	// Session-state violations. Surfaced to the caller, never retried or
	// silently fixed: an ambiguous check-in/out would corrupt the audit trail.
	ErrAlreadyOpen   = errors.New("employee already has an open attendance session")
	ErrNoOpenSession = errors.New("no open attendance session for employee")
	ErrAlreadyClosed = errors.New("attendance session is already closed for this day")

	// ErrInvalidTimezone rejects events whose zone/offset cannot be resolved.
	// The event is refused outright rather than guessed.
	ErrInvalidTimezone = errors.New("unresolvable timezone or UTC offset")

	ErrAttendanceNotFound = errors.New("attendance record not found")
)
