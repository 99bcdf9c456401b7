// Package calendar holds the local-calendar day arithmetic shared by the
// urgency classifier and the query builder.
package calendar

import "time"

// StartOfDay returns midnight at the beginning of t's calendar day, in t's location.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// StartOfDayAfter returns midnight at the beginning of the day n days after
// t's calendar day. n may be negative. Calendar arithmetic, so a DST
// transition inside the span does not shift the result off midnight.
func StartOfDayAfter(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day+n, 0, 0, 0, 0, t.Location())
}

// DayRange is the half-open window [Start, End) covering one calendar day.
type DayRange struct {
	Start time.Time
	End   time.Time
}

// DayOf returns the calendar day containing t.
func DayOf(t time.Time) DayRange {
	return DayRange{Start: StartOfDay(t), End: StartOfDayAfter(t, 1)}
}

// Contains reports whether t falls within the day.
func (r DayRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// DaysBetween returns the number of calendar-day boundaries between from and
// to, measured in from's location. Time of day is ignored: any two instants on
// the same local day give zero, and the result is negative when to is on an
// earlier day.
func DaysBetween(from, to time.Time) int {
	to = to.In(from.Location())
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	// Date-only values in UTC have no DST, so every day is exactly 24h.
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
