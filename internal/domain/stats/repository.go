package stats

import (
	"context"
	"time"
)

type Repository interface {
	// ListDayRecords returns the attendance-day projections inside the
	// window, optionally restricted to one employee.
	ListDayRecords(ctx context.Context, start, end time.Time, employeeID *string) ([]DayRecord, error)
	// ListMonthlySummaries returns the maintained per-employee counter rows
	// for one month.
	ListMonthlySummaries(ctx context.Context, month string, employeeID *string) ([]MonthlyEmployeeStats, error)
}
