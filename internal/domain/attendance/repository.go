package attendance

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, day *AttendanceDay) error
	Update(ctx context.Context, day *AttendanceDay) error
	GetByID(ctx context.Context, id string) (*AttendanceDay, error)
	// GetByEmployeeAndDate returns the record for one attendance-day, or
	// ErrAttendanceNotFound when the employee has no record on that day.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*AttendanceDay, error)
	// GetOpenSession returns the employee's open session (check-in without
	// check-out) whose date falls within one day of the given date.
	GetOpenSession(ctx context.Context, employeeID string, date time.Time) (*AttendanceDay, error)
	// HasAnyOpenSession reports whether the employee has an open session on
	// any day, however old. Check-in refuses while one exists; checkout
	// keeps using the windowed lookup so night shifts resolve to the right
	// attendance-day.
	HasAnyOpenSession(ctx context.Context, employeeID string) (bool, error)
	// ListOpenSessions returns every open session whose date falls within
	// one day of the given date, optionally restricted to employeeIDs.
	ListOpenSessions(ctx context.Context, date time.Time, employeeIDs []string) ([]AttendanceDay, error)
	List(ctx context.Context, filter *Filter) ([]AttendanceDay, int64, error)
	// ListMissingForDate returns active employees with no attendance record
	// and no approved leave covering the given day.
	ListMissingForDate(ctx context.Context, date time.Time) ([]string, error)
	// AdjustCounters applies a counter delta to the employee's lifetime
	// summary and to the monthly summary keyed by month.
	AdjustCounters(ctx context.Context, employeeID string, month string, delta CounterDelta) error
	GetSummary(ctx context.Context, employeeID string) (*Summary, error)
	GetMonthlySummaries(ctx context.Context, employeeID string, months []string) ([]MonthlySummary, error)
	IsHoliday(ctx context.Context, date time.Time) (bool, error)
}
