package exception

import "time"

// Kind discriminates the two arrival exception families that share the same
// review workflow.
type Kind string

const (
	KindLate    Kind = "late"
	KindHalfDay Kind = "half_day"
)

var ValidKinds = []string{string(KindLate), string(KindHalfDay)}

// Action is the reviewer disposition state of a log.
type Action string

const (
	ActionPending  Action = "pending"
	ActionApproved Action = "approved"
	ActionRejected Action = "rejected"
)

var ValidActions = []string{string(ActionPending), string(ActionApproved), string(ActionRejected)}

// Log is one detected exception instance awaiting or past reviewer
// disposition. At most one log exists per (employee, date, kind); logs are
// never deleted, they are the audit trail.
type Log struct {
	ID           string
	AttendanceID string
	EmployeeID   string
	Date         time.Time

	Kind Kind

	// MinutesLate is set for late logs: minutes past the grace limit.
	MinutesLate *int

	// HalfPeriod is set for half-day logs: first_half or second_half.
	HalfPeriod *string

	// Reason is the employee-supplied explanation, optional.
	Reason *string

	ActionTaken Action

	// Justified applies to late logs only and is orthogonal to ActionTaken.
	Justified bool

	ReviewerID *string
	ReviewedAt *time.Time
	ReviewNote *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// EmployeeName is populated on joined reads only.
	EmployeeName *string
}

// Pending reports whether the log still awaits a reviewer decision.
func (l *Log) Pending() bool {
	return l.ActionTaken == ActionPending
}
