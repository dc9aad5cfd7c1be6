package leave

import "time"

// DayCount is the inclusive calendar-day length of a leave span.
func DayCount(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}

// MonthSpan is the portion of a leave span falling inside one calendar
// month, keyed by YYYY-MM.
type MonthSpan struct {
	Month string
	Days  int
}

// MonthSpans clips a leave span against calendar month boundaries. A span
// crossing a month boundary charges each month only for its own days, so
// monthly counters round-trip exactly when the leave is later cancelled.
func MonthSpans(start, end time.Time) []MonthSpan {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	if e.Before(s) {
		return nil
	}

	var spans []MonthSpan
	cur := s
	for !cur.After(e) {
		monthEnd := time.Date(cur.Year(), cur.Month(), 1, 0, 0, 0, 0, time.UTC).
			AddDate(0, 1, -1)
		clip := monthEnd
		if e.Before(monthEnd) {
			clip = e
		}
		spans = append(spans, MonthSpan{
			Month: cur.Format("2006-01"),
			Days:  int(clip.Sub(cur).Hours()/24) + 1,
		})
		cur = monthEnd.AddDate(0, 0, 1)
	}
	return spans
}

// Covers reports whether a date falls inside the span, boundaries included.
func (l *Log) Covers(date time.Time) bool {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(l.StartDate) && !d.After(l.EndDate)
}
