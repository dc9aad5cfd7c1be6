package stats

import "time"

// Period is the rollup window shape.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

var ValidPeriods = []string{
	string(PeriodDaily),
	string(PeriodWeekly),
	string(PeriodMonthly),
	string(PeriodYearly),
}

// DayRecord is the minimal attendance-day projection the aggregator reads.
type DayRecord struct {
	EmployeeID   string
	EmployeeName string
	Date         time.Time
	Status       string
}

// Range computes the [start, end] window for a period anchored at a
// reference date. Weeks start on Monday. The end is clipped to the anchor's
// day for partial periods so rollups never reach into the future.
func Range(period Period, anchor time.Time) (time.Time, time.Time) {
	day := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, time.UTC)

	switch period {
	case PeriodDaily:
		return day, day
	case PeriodWeekly:
		offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
		return day.AddDate(0, 0, -offset), day
	case PeriodMonthly:
		return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC), day
	case PeriodYearly:
		return time.Date(day.Year(), 1, 1, 0, 0, 0, 0, time.UTC), day
	default:
		return day, day
	}
}
