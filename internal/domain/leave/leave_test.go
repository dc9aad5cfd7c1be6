package leave

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusPending, StatusApproved},
		{StatusPending, StatusRejected},
		{StatusPending, StatusCancelled},
		{StatusApproved, StatusCancelled},
	}
	for _, c := range allowed {
		assert.NoError(t, CanTransition(c.from, c.to), "%s -> %s", c.from, c.to)
	}

	forbidden := []struct{ from, to Status }{
		{StatusApproved, StatusRejected},
		{StatusApproved, StatusApproved},
		{StatusRejected, StatusApproved},
		{StatusRejected, StatusCancelled},
		{StatusCancelled, StatusApproved},
		{StatusCancelled, StatusPending},
		{StatusPending, StatusPending},
	}
	for _, c := range forbidden {
		err := CanTransition(c.from, c.to)
		assert.True(t, errors.Is(err, ErrInvalidTransition), "%s -> %s", c.from, c.to)
	}
}

func TestDayCount(t *testing.T) {
	d := func(y int, m time.Month, day int) time.Time {
		return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	}

	assert.Equal(t, 1, DayCount(d(2024, 3, 1), d(2024, 3, 1)))
	assert.Equal(t, 3, DayCount(d(2024, 3, 1), d(2024, 3, 3)))
	assert.Equal(t, 31, DayCount(d(2024, 3, 1), d(2024, 3, 31)))
	// Across a month boundary.
	assert.Equal(t, 4, DayCount(d(2024, 3, 30), d(2024, 4, 2)))
	// Across the February leap boundary.
	assert.Equal(t, 3, DayCount(d(2024, 2, 28), d(2024, 3, 1)))
	// Reversed span counts nothing.
	assert.Equal(t, 0, DayCount(d(2024, 3, 3), d(2024, 3, 1)))
}

func TestMonthSpans_SingleMonth(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)

	spans := MonthSpans(start, end)
	assert.Equal(t, []MonthSpan{{Month: "2024-03", Days: 3}}, spans)
}

func TestMonthSpans_CrossesMonths(t *testing.T) {
	start := time.Date(2024, 3, 29, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)

	spans := MonthSpans(start, end)
	assert.Equal(t, []MonthSpan{
		{Month: "2024-03", Days: 3},
		{Month: "2024-04", Days: 2},
	}, spans)

	total := 0
	for _, s := range spans {
		total += s.Days
	}
	assert.Equal(t, DayCount(start, end), total)
}

func TestMonthSpans_CrossesYear(t *testing.T) {
	start := time.Date(2023, 12, 30, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	spans := MonthSpans(start, end)
	assert.Equal(t, []MonthSpan{
		{Month: "2023-12", Days: 2},
		{Month: "2024-01", Days: 2},
	}, spans)
}

func TestMonthSpans_ReversedSpanIsEmpty(t *testing.T) {
	start := time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.Nil(t, MonthSpans(start, end))
}

func TestCovers(t *testing.T) {
	log := &Log{
		StartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, log.Covers(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, log.Covers(time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)))
	assert.True(t, log.Covers(time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)))
	assert.False(t, log.Covers(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)))
	assert.False(t, log.Covers(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)))
}

func TestCreateRequestValidate(t *testing.T) {
	valid := &CreateRequest{
		EmployeeID: "0190f3f1-0000-7000-8000-000000000001",
		StartDate:  "2024-03-01",
		EndDate:    "2024-03-03",
		Type:       "annual",
	}
	assert.NoError(t, valid.Validate())

	reversed := *valid
	reversed.StartDate = "2024-03-05"
	assert.Error(t, reversed.Validate())

	badType := *valid
	badType.Type = "sabbatical"
	assert.Error(t, badType.Validate())

	badDate := *valid
	badDate.StartDate = "03/01/2024"
	assert.Error(t, badDate.Validate())
}
