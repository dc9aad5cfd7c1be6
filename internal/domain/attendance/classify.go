package attendance

import (
	"time"
)

// ArrivalClass is the classification of a check-in against the shift start.
type ArrivalClass struct {
	Status Status

	// MinutesLate is the magnitude of the exception: minutes past the grace
	// limit (shift start + grace period), zero when on time.
	MinutesLate int

	// RequiresReview is set when the classification must open an exception
	// log for reviewer disposition.
	RequiresReview bool
}

// ClassifyArrival derives the day status from the local check-in time.
// Deterministic: identical inputs always yield the identical class.
//
// Lateness thresholds are measured past the grace limit:
//
//	0 .. grace              present
//	grace .. half-day cut   late
//	half-day .. absent cut  half_day (larger attendance impact wins)
//	beyond absent cut       absent
func ClassifyArrival(checkInLocal time.Time, day time.Time, policy ShiftPolicy) ArrivalClass {
	shiftStart := time.Date(day.Year(), day.Month(), day.Day(),
		policy.Start.Hour, policy.Start.Minute, 0, 0, checkInLocal.Location())

	graceLimit := shiftStart.Add(time.Duration(policy.GraceMinutes) * time.Minute)

	lateBy := int(checkInLocal.Sub(graceLimit).Minutes())
	if policy.CrossesMidnight() && lateBy < -12*60 {
		// Night shift check-in after midnight reads as "before" a start
		// expressed on the previous calendar day.
		lateBy += 24 * 60
	}
	if lateBy <= 0 {
		return ArrivalClass{Status: StatusPresent}
	}

	switch {
	case lateBy <= policy.HalfDayAfterMinutes:
		return ArrivalClass{Status: StatusLate, MinutesLate: lateBy, RequiresReview: true}
	case lateBy <= policy.AbsentAfterMinutes:
		return ArrivalClass{Status: StatusHalfDay, MinutesLate: lateBy, RequiresReview: true}
	default:
		return ArrivalClass{Status: StatusAbsent, MinutesLate: lateBy, RequiresReview: false}
	}
}

// ClassifyClosedSession re-derives the day status once the session is closed
// and the worked duration is known. An absent day stays absent. A worked
// duration shorter than half the shift demotes the day to half_day, which
// takes precedence over plain lateness. A day already marked half_day by
// arrival keeps that mark.
func ClassifyClosedSession(arrival Status, workedMinutes int, policy ShiftPolicy) Status {
	if arrival == StatusAbsent {
		return StatusAbsent
	}
	if workedMinutes > 0 && workedMinutes < policy.LengthMinutes()/2 {
		return StatusHalfDay
	}
	return arrival
}

// HalfPeriod identifies which half of the shift a half-day exception missed.
type HalfPeriod string

const (
	FirstHalf  HalfPeriod = "first_half"
	SecondHalf HalfPeriod = "second_half"
)

// DeriveHalfPeriod picks the missed half: a very late arrival missed the
// first half, an early departure missed the second.
func DeriveHalfPeriod(minutesLate int, policy ShiftPolicy) HalfPeriod {
	if minutesLate > policy.HalfDayAfterMinutes {
		return FirstHalf
	}
	return SecondHalf
}

// CounterDelta is the incremental counter adjustment a status change carries
// to the lifetime and monthly summary rows.
type CounterDelta struct {
	Present int
	Absent  int
	Late    int
	Leave   int
	Half    int
	Remote  int
}

// IsZero reports whether applying the delta would be a no-op.
func (d CounterDelta) IsZero() bool {
	return d == CounterDelta{}
}

// Add returns the element-wise sum of two deltas.
func (d CounterDelta) Add(o CounterDelta) CounterDelta {
	return CounterDelta{
		Present: d.Present + o.Present,
		Absent:  d.Absent + o.Absent,
		Late:    d.Late + o.Late,
		Leave:   d.Leave + o.Leave,
		Half:    d.Half + o.Half,
		Remote:  d.Remote + o.Remote,
	}
}

// Negate returns the exact reversal of the delta.
func (d CounterDelta) Negate() CounterDelta {
	return CounterDelta{
		Present: -d.Present,
		Absent:  -d.Absent,
		Late:    -d.Late,
		Leave:   -d.Leave,
		Half:    -d.Half,
		Remote:  -d.Remote,
	}
}

// DeltaFor is the counter charge for recording one day with the given
// status. Late, half-day and remote days still count as present days.
func DeltaFor(status Status) CounterDelta {
	switch status {
	case StatusPresent:
		return CounterDelta{Present: 1}
	case StatusLate:
		return CounterDelta{Present: 1, Late: 1}
	case StatusHalfDay:
		return CounterDelta{Present: 1, Half: 1}
	case StatusRemote:
		return CounterDelta{Present: 1, Remote: 1}
	case StatusAbsent:
		return CounterDelta{Absent: 1}
	case StatusLeave:
		return CounterDelta{Leave: 1}
	default:
		return CounterDelta{}
	}
}

// TransitionDelta is the counter move for rewriting an already-counted day
// from one status to another.
func TransitionDelta(from, to Status) CounterDelta {
	if from == to {
		return CounterDelta{}
	}
	return DeltaFor(to).Add(DeltaFor(from).Negate())
}
