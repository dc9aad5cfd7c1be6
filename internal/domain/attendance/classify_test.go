package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classifyShift(grace, halfAfter, absentAfter int) ShiftPolicy {
	s, _ := ParseClock("09:00")
	e, _ := ParseClock("17:00")
	return ShiftPolicy{
		Start:               s,
		End:                 e,
		GraceMinutes:        grace,
		HalfDayAfterMinutes: halfAfter,
		AbsentAfterMinutes:  absentAfter,
	}
}

func localAt(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.UTC)
}

func TestClassifyArrival_LateMagnitudePastGrace(t *testing.T) {
	// Shift starts 09:00 with a 10 minute grace period. A 09:40 arrival is
	// 30 minutes past the grace limit.
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	policy := classifyShift(10, 60, 150)

	got := ClassifyArrival(localAt(day, 9, 40), day, policy)

	assert.Equal(t, StatusLate, got.Status)
	assert.Equal(t, 30, got.MinutesLate)
	assert.True(t, got.RequiresReview)
}

func TestClassifyArrival_Thresholds(t *testing.T) {
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	policy := classifyShift(30, 60, 150)

	cases := []struct {
		name       string
		hour, min  int
		status     Status
		minutes    int
		needReview bool
	}{
		{"on time", 8, 55, StatusPresent, 0, false},
		{"exactly at start", 9, 0, StatusPresent, 0, false},
		{"inside grace", 9, 29, StatusPresent, 0, false},
		{"grace boundary", 9, 30, StatusPresent, 0, false},
		{"one minute past grace", 9, 31, StatusLate, 1, true},
		{"late boundary", 10, 30, StatusLate, 60, true},
		{"half day begins", 10, 31, StatusHalfDay, 61, true},
		{"half day boundary", 12, 0, StatusHalfDay, 150, true},
		{"beyond absent cut", 12, 1, StatusAbsent, 151, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ClassifyArrival(localAt(day, c.hour, c.min), day, policy)
			assert.Equal(t, c.status, got.Status)
			assert.Equal(t, c.minutes, got.MinutesLate)
			assert.Equal(t, c.needReview, got.RequiresReview)
		})
	}
}

func TestClassifyArrival_NightShiftAfterMidnight(t *testing.T) {
	s, _ := ParseClock("22:00")
	e, _ := ParseClock("06:00")
	policy := ShiftPolicy{Start: s, End: e, GraceMinutes: 15, HalfDayAfterMinutes: 60, AbsentAfterMinutes: 150}
	require.True(t, policy.CrossesMidnight())

	// Attendance day 2024-05-02, check-in 00:30 on the 3rd: 135 minutes
	// past the 22:15 grace limit.
	day := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	checkIn := time.Date(2024, 5, 3, 0, 30, 0, 0, time.UTC)

	got := ClassifyArrival(checkIn, day, policy)
	assert.Equal(t, StatusHalfDay, got.Status)
	assert.Equal(t, 135, got.MinutesLate)
}

func TestClassifyArrival_Deterministic(t *testing.T) {
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	policy := classifyShift(10, 60, 150)
	checkIn := localAt(day, 10, 15)

	first := ClassifyArrival(checkIn, day, policy)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, ClassifyArrival(checkIn, day, policy))
	}
}

func TestClassifyClosedSession(t *testing.T) {
	policy := classifyShift(30, 60, 150) // 480 minute shift

	cases := []struct {
		name    string
		arrival Status
		worked  int
		want    Status
	}{
		{"full day stays present", StatusPresent, 480, StatusPresent},
		{"short day demotes to half", StatusPresent, 200, StatusHalfDay},
		{"half day beats plain lateness", StatusLate, 180, StatusHalfDay},
		{"late with full hours stays late", StatusLate, 470, StatusLate},
		{"half day arrival keeps half day", StatusHalfDay, 470, StatusHalfDay},
		{"absent stays absent", StatusAbsent, 0, StatusAbsent},
		{"zero worked keeps arrival", StatusPresent, 0, StatusPresent},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, ClassifyClosedSession(c.arrival, c.worked, policy))
		})
	}
}

func TestDeriveHalfPeriod(t *testing.T) {
	policy := classifyShift(30, 60, 150)

	assert.Equal(t, FirstHalf, DeriveHalfPeriod(90, policy))
	assert.Equal(t, SecondHalf, DeriveHalfPeriod(20, policy))
	assert.Equal(t, SecondHalf, DeriveHalfPeriod(0, policy))
}

func TestDeltaFor(t *testing.T) {
	assert.Equal(t, CounterDelta{Present: 1}, DeltaFor(StatusPresent))
	assert.Equal(t, CounterDelta{Present: 1, Late: 1}, DeltaFor(StatusLate))
	assert.Equal(t, CounterDelta{Present: 1, Half: 1}, DeltaFor(StatusHalfDay))
	assert.Equal(t, CounterDelta{Present: 1, Remote: 1}, DeltaFor(StatusRemote))
	assert.Equal(t, CounterDelta{Absent: 1}, DeltaFor(StatusAbsent))
	assert.Equal(t, CounterDelta{Leave: 1}, DeltaFor(StatusLeave))
}

func TestTransitionDelta_RoundTripIsZero(t *testing.T) {
	statuses := []Status{StatusPresent, StatusAbsent, StatusLate, StatusHalfDay, StatusLeave, StatusRemote}

	for _, from := range statuses {
		for _, to := range statuses {
			forward := TransitionDelta(from, to)
			back := TransitionDelta(to, from)
			assert.True(t, forward.Add(back).IsZero(), "%s -> %s -> %s", from, to, from)
		}
	}
}

func TestTransitionDelta_SameStatusIsNoop(t *testing.T) {
	assert.True(t, TransitionDelta(StatusLate, StatusLate).IsZero())
}

func TestTransitionDelta_LateToPresent(t *testing.T) {
	// Justifying a late day releases the late counter without touching the
	// present count.
	got := TransitionDelta(StatusLate, StatusPresent)
	assert.Equal(t, CounterDelta{Late: -1}, got)
}
