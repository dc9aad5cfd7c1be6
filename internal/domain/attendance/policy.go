package attendance

import (
	"fmt"
	"strconv"
	"strings"
)

// ClockTime is a wall-clock time of day ("HH:MM") from a shift definition.
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClock parses "HH:MM" (24-hour) into a ClockTime.
func ParseClock(s string) (ClockTime, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return ClockTime{}, fmt.Errorf("invalid clock time %q: expected HH:MM", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return ClockTime{}, fmt.Errorf("invalid clock time %q: bad hour", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return ClockTime{}, fmt.Errorf("invalid clock time %q: bad minute", s)
	}
	return ClockTime{Hour: hour, Minute: minute}, nil
}

func (c ClockTime) Minutes() int {
	return c.Hour*60 + c.Minute
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// ShiftPolicy is the per-employee shift definition plus the company lateness
// thresholds, all measured in minutes past the grace limit.
type ShiftPolicy struct {
	Start ClockTime
	End   ClockTime

	// GraceMinutes is the tolerance after shift start before a check-in
	// counts as late.
	GraceMinutes int

	// HalfDayAfterMinutes: arriving more than this many minutes past the
	// grace limit demotes the day from late to half_day.
	HalfDayAfterMinutes int

	// AbsentAfterMinutes: arriving more than this many minutes past the
	// grace limit marks the day absent.
	AbsentAfterMinutes int
}

// CrossesMidnight reports whether the shift ends on the following calendar
// day (night shift).
func (p ShiftPolicy) CrossesMidnight() bool {
	return p.End.Minutes() <= p.Start.Minutes()
}

// LengthMinutes is the scheduled shift duration.
func (p ShiftPolicy) LengthMinutes() int {
	length := p.End.Minutes() - p.Start.Minutes()
	if length <= 0 {
		length += 24 * 60
	}
	return length
}
