package attendance

import (
	"time"
)

// Status of an attendance day. Until a reviewer override, it is a pure
// function of the check-in/check-out pair and the employee's shift policy.
type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLate    Status = "late"
	StatusHalfDay Status = "half_day"
	StatusLeave   Status = "leave"
	StatusRemote  Status = "remote"
)

// ValidStatuses lists every persisted attendance status.
var ValidStatuses = []string{
	string(StatusPresent), string(StatusAbsent), string(StatusLate),
	string(StatusHalfDay), string(StatusLeave), string(StatusRemote),
}

// AttendanceDay is the single durable record per (employee, attendance-day).
// Date is the canonical attendance-day at midnight; the check-in/check-out
// instants are stored in UTC.
type AttendanceDay struct {
	ID               string
	EmployeeID       string
	Date             time.Time
	CheckIn          *time.Time
	CheckOut         *time.Time
	WorkedMinutes    *int
	LateMinutes      *int
	Status           Status
	Mode             *string
	TimezoneUsed     string
	TimezoneFallback bool
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Joined from the employee directory
	EmployeeName *string
}

// SessionOpen reports whether the day still has an open check-in session.
func (d *AttendanceDay) SessionOpen() bool {
	return d.CheckIn != nil && d.CheckOut == nil
}

// Summary carries the lifetime per-employee day counters. Counters are
// adjusted incrementally alongside every status change, never recomputed by
// full rescans.
type Summary struct {
	EmployeeID  string
	PresentDays int
	AbsentDays  int
	LateDays    int
	LeaveDays   int
	HalfDays    int
	RemoteDays  int
	UpdatedAt   time.Time
}

// MonthlySummary is the per-(employee, YYYY-MM) counter row.
type MonthlySummary struct {
	EmployeeID   string
	Month        string
	TotalPresent int
	TotalAbsent  int
	TotalLate    int
	TotalLeave   int
	TotalHalf    int
	TotalRemote  int
	UpdatedAt    time.Time

	EmployeeName *string
}

// MonthKey formats the attendance-day into the YYYY-MM key used by the
// monthly summary rows.
func MonthKey(date time.Time) string {
	return date.Format("2006-01")
}
