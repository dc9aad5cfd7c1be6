package attendance

import (
	"fmt"
	"time"
)

// Maximum legal UTC offset magnitude, in minutes (UTC-14:00 .. UTC+14:00).
const maxOffsetMinutes = 14 * 60

// ResolvedDay is the outcome of attributing a raw event instant to a
// canonical attendance-day.
type ResolvedDay struct {
	// Date is the attendance-day at midnight (location-agnostic).
	Date time.Time

	// Local is the event instant expressed in the resolved zone.
	Local time.Time

	// Zone is the name the resolution actually used.
	Zone string

	// FallbackApplied is set when neither an employee zone, a client zone,
	// nor a client offset was usable and the company default zone stepped
	// in. Callers surface it so the fallback is observable, never silent.
	FallbackApplied bool
}

// ResolveAttendanceDay computes the canonical attendance-day for a raw event
// timestamp. Zone preference order: employeeZone, clientZone, clientOffset
// (minutes east of UTC), then defaultZone with FallbackApplied set.
//
// For cross-midnight shifts, events between midnight and the shift's end
// (the day rollover boundary) belong to the previous calendar day.
//
// A zone that is supplied but cannot be loaded, or an offset outside the
// legal range, fails with ErrInvalidTimezone: the caller must reject the
// event rather than guess.
func ResolveAttendanceDay(eventUTC time.Time, employeeZone, clientZone string, clientOffsetMinutes *int, defaultZone string, policy ShiftPolicy) (ResolvedDay, error) {
	loc, zoneName, fallback, err := resolveLocation(employeeZone, clientZone, clientOffsetMinutes, defaultZone)
	if err != nil {
		return ResolvedDay{}, err
	}

	local := eventUTC.In(loc)
	year, month, day := local.Date()
	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

	if policy.CrossesMidnight() {
		clock := local.Hour()*60 + local.Minute()
		if clock <= policy.End.Minutes() {
			date = date.AddDate(0, 0, -1)
		}
	}

	return ResolvedDay{
		Date:            date,
		Local:           local,
		Zone:            zoneName,
		FallbackApplied: fallback,
	}, nil
}

func resolveLocation(employeeZone, clientZone string, clientOffsetMinutes *int, defaultZone string) (*time.Location, string, bool, error) {
	if employeeZone != "" {
		loc, err := time.LoadLocation(employeeZone)
		if err != nil {
			return nil, "", false, fmt.Errorf("employee zone %q: %w", employeeZone, ErrInvalidTimezone)
		}
		return loc, employeeZone, false, nil
	}

	if clientZone != "" {
		loc, err := time.LoadLocation(clientZone)
		if err != nil {
			return nil, "", false, fmt.Errorf("client zone %q: %w", clientZone, ErrInvalidTimezone)
		}
		return loc, clientZone, false, nil
	}

	if clientOffsetMinutes != nil {
		offset := *clientOffsetMinutes
		if offset < -maxOffsetMinutes || offset > maxOffsetMinutes {
			return nil, "", false, fmt.Errorf("offset %d minutes out of range: %w", offset, ErrInvalidTimezone)
		}
		name := fmt.Sprintf("UTC%+03d:%02d", offset/60, abs(offset%60))
		return time.FixedZone(name, offset*60), name, false, nil
	}

	loc, err := time.LoadLocation(defaultZone)
	if err != nil {
		return nil, "", false, fmt.Errorf("company default zone %q: %w", defaultZone, ErrInvalidTimezone)
	}
	return loc, defaultZone, true, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
