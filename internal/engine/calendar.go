package engine

import "time"

// AddMonthsClamped returns the same day-of-month n months later, keeping the time of
// day. If the target month is shorter the day is clamped to its last day, so
// Jan 31 + 1 month is Feb 28 (or 29), not Mar 3 as time.AddDate would give.
func AddMonthsClamped(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	target := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, t.Location())

	if last := daysIn(target.Year(), target.Month()); d > last {
		d = last
	}
	return time.Date(target.Year(), target.Month(), d,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
