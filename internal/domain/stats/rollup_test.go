package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(employee string, date time.Time, status string) DayRecord {
	return DayRecord{EmployeeID: employee, EmployeeName: "Employee " + employee, Date: date, Status: status}
}

func TestRollup_TotalsAndRate(t *testing.T) {
	d1 := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	records := []DayRecord{
		rec("a", d1, "present"),
		rec("b", d1, "late"),
		rec("c", d1, "absent"),
		rec("a", d2, "present"),
		rec("b", d2, "leave"),
		rec("c", d2, "half_day"),
	}

	got := Rollup(records, PeriodWeekly, "2024-03-04", "2024-03-05", false)

	assert.Equal(t, 6, got.TotalRecords)
	assert.Equal(t, 2, got.ByStatus["present"])
	assert.Equal(t, 1, got.ByStatus["late"])
	assert.Equal(t, 1, got.ByStatus["absent"])
	assert.Equal(t, 1, got.ByStatus["leave"])
	assert.Equal(t, 1, got.ByStatus["half_day"])
	// 4 of 6 days count as worked: present, late, present, half_day.
	assert.InDelta(t, 66.67, got.AttendanceRate, 0.01)
	assert.Nil(t, got.Breakdown)
}

func TestRollup_ExtremeDays(t *testing.T) {
	d1 := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	d3 := time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC)

	records := []DayRecord{
		rec("a", d1, "present"),
		rec("b", d1, "present"),
		rec("c", d1, "present"),
		rec("a", d2, "present"),
		rec("b", d2, "absent"),
		rec("a", d3, "absent"),
		rec("b", d3, "absent"),
	}

	got := Rollup(records, PeriodWeekly, "2024-03-04", "2024-03-06", false)

	require.NotNil(t, got.MostPresentDay)
	require.NotNil(t, got.LeastPresentDay)
	assert.Equal(t, "2024-03-04", got.MostPresentDay.Date)
	assert.Equal(t, 3, got.MostPresentDay.Present)
	assert.Equal(t, "2024-03-06", got.LeastPresentDay.Date)
	assert.Equal(t, 0, got.LeastPresentDay.Present)
}

func TestRollup_Breakdown(t *testing.T) {
	d1 := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	records := []DayRecord{
		rec("a", d1, "late"),
		rec("a", d2, "present"),
		rec("b", d1, "leave"),
		rec("b", d2, "half_day"),
	}

	got := Rollup(records, PeriodWeekly, "2024-03-04", "2024-03-05", true)

	require.Len(t, got.Breakdown, 2)
	a, b := got.Breakdown[0], got.Breakdown[1]

	assert.Equal(t, "a", a.EmployeeID)
	assert.Equal(t, 2, a.Present)
	assert.Equal(t, 1, a.Late)

	assert.Equal(t, "b", b.EmployeeID)
	assert.Equal(t, 1, b.Leave)
	assert.Equal(t, 1, b.HalfDay)
	assert.Equal(t, 1, b.Present)
}

func TestRollup_EmptyWindow(t *testing.T) {
	got := Rollup(nil, PeriodMonthly, "2024-03-01", "2024-03-31", true)

	assert.Equal(t, 0, got.TotalRecords)
	assert.Equal(t, 0.0, got.AttendanceRate)
	assert.Nil(t, got.MostPresentDay)
	assert.Nil(t, got.LeastPresentDay)
	assert.Empty(t, got.Breakdown)
}

func TestRange(t *testing.T) {
	// A Thursday.
	anchor := time.Date(2024, 3, 7, 15, 30, 0, 0, time.UTC)

	start, end := Range(PeriodDaily, anchor)
	assert.Equal(t, time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, start, end)

	start, end = Range(PeriodWeekly, anchor)
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), start) // Monday
	assert.Equal(t, time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC), end)

	start, end = Range(PeriodMonthly, anchor)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC), end)

	start, end = Range(PeriodYearly, anchor)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC), end)
}

func TestRange_WeekStartsOnMonday(t *testing.T) {
	// A Sunday belongs to the week that began the previous Monday.
	sunday := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	start, _ := Range(PeriodWeekly, sunday)
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), start)

	monday := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	start, _ = Range(PeriodWeekly, monday)
	assert.Equal(t, monday, start)
}
