package attendance

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dayShift(start, end string, grace int) ShiftPolicy {
	s, _ := ParseClock(start)
	e, _ := ParseClock(end)
	return ShiftPolicy{
		Start:               s,
		End:                 e,
		GraceMinutes:        grace,
		HalfDayAfterMinutes: 60,
		AbsentAfterMinutes:  150,
	}
}

func TestResolveAttendanceDay_EmployeeZoneWins(t *testing.T) {
	event := time.Date(2024, 1, 15, 2, 30, 0, 0, time.UTC)
	offset := 0

	got, err := ResolveAttendanceDay(event, "Asia/Jakarta", "Europe/Berlin", &offset, "UTC", dayShift("09:00", "17:00", 10))
	require.NoError(t, err)

	// 02:30 UTC is 09:30 in Jakarta (UTC+7).
	assert.Equal(t, "Asia/Jakarta", got.Zone)
	assert.False(t, got.FallbackApplied)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), got.Date)
	assert.Equal(t, 9, got.Local.Hour())
	assert.Equal(t, 30, got.Local.Minute())
}

func TestResolveAttendanceDay_ClientZoneWhenNoEmployeeZone(t *testing.T) {
	event := time.Date(2024, 6, 1, 22, 0, 0, 0, time.UTC)

	got, err := ResolveAttendanceDay(event, "", "Asia/Tokyo", nil, "UTC", dayShift("09:00", "17:00", 10))
	require.NoError(t, err)

	// 22:00 UTC is 07:00 next day in Tokyo (UTC+9).
	assert.Equal(t, "Asia/Tokyo", got.Zone)
	assert.Equal(t, time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), got.Date)
}

func TestResolveAttendanceDay_ClientOffset(t *testing.T) {
	event := time.Date(2024, 3, 10, 1, 15, 0, 0, time.UTC)
	offset := -300 // UTC-05:00

	got, err := ResolveAttendanceDay(event, "", "", &offset, "UTC", dayShift("09:00", "17:00", 10))
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), got.Date)
	assert.Equal(t, 20, got.Local.Hour())
	assert.False(t, got.FallbackApplied)
}

func TestResolveAttendanceDay_DefaultZoneFallback(t *testing.T) {
	event := time.Date(2024, 1, 15, 9, 40, 0, 0, time.UTC)

	got, err := ResolveAttendanceDay(event, "", "", nil, "UTC", dayShift("09:00", "17:00", 10))
	require.NoError(t, err)

	assert.True(t, got.FallbackApplied)
	assert.Equal(t, "UTC", got.Zone)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), got.Date)
}

func TestResolveAttendanceDay_InvalidZoneRejected(t *testing.T) {
	event := time.Date(2024, 1, 15, 9, 40, 0, 0, time.UTC)

	_, err := ResolveAttendanceDay(event, "Mars/Olympus", "", nil, "UTC", dayShift("09:00", "17:00", 10))
	assert.True(t, errors.Is(err, ErrInvalidTimezone))

	_, err = ResolveAttendanceDay(event, "", "Not/AZone", nil, "UTC", dayShift("09:00", "17:00", 10))
	assert.True(t, errors.Is(err, ErrInvalidTimezone))
}

func TestResolveAttendanceDay_OffsetOutOfRange(t *testing.T) {
	event := time.Date(2024, 1, 15, 9, 40, 0, 0, time.UTC)

	for _, offset := range []int{15 * 60, -15 * 60} {
		o := offset
		_, err := ResolveAttendanceDay(event, "", "", &o, "UTC", dayShift("09:00", "17:00", 10))
		assert.True(t, errors.Is(err, ErrInvalidTimezone), "offset %d", offset)
	}
}

func TestResolveAttendanceDay_NightShiftRollsToPreviousDay(t *testing.T) {
	policy := dayShift("22:00", "06:00", 15)
	require.True(t, policy.CrossesMidnight())

	// 01:30 local, still inside the previous day's night shift.
	event := time.Date(2024, 5, 3, 1, 30, 0, 0, time.UTC)
	got, err := ResolveAttendanceDay(event, "UTC", "", nil, "UTC", policy)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), got.Date)

	// 21:45 local, the upcoming shift of the same calendar day.
	event = time.Date(2024, 5, 3, 21, 45, 0, 0, time.UTC)
	got, err = ResolveAttendanceDay(event, "UTC", "", nil, "UTC", policy)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC), got.Date)
}

func TestResolveAttendanceDay_DayShiftNeverRollsBack(t *testing.T) {
	policy := dayShift("09:00", "17:00", 10)

	// Early morning on a day shift stays on its own calendar day.
	event := time.Date(2024, 5, 3, 4, 0, 0, 0, time.UTC)
	got, err := ResolveAttendanceDay(event, "UTC", "", nil, "UTC", policy)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC), got.Date)
}

func TestResolveAttendanceDay_Deterministic(t *testing.T) {
	event := time.Date(2024, 1, 15, 9, 40, 0, 0, time.UTC)
	policy := dayShift("09:00", "17:00", 10)

	first, err := ResolveAttendanceDay(event, "Asia/Jakarta", "", nil, "UTC", policy)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := ResolveAttendanceDay(event, "Asia/Jakarta", "", nil, "UTC", policy)
		require.NoError(t, err)
		assert.Equal(t, first.Date, again.Date)
		assert.Equal(t, first.Zone, again.Zone)
	}
}
