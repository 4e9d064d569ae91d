package transaction

import "time"

// DateOnly drops the time of day, keeping the calendar date t shows in its own
// location. Transaction dates are stored and compared in this form.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts calendar days from start to date. It is negative when date
// is before start.
func DaysBetween(start, date time.Time) int {
	return int(DateOnly(date).Sub(DateOnly(start)).Hours() / 24)
}

// WeekIndex numbers the 7-day span containing date, counting from start:
// start itself is in week 1, start+7 days in week 2. Dates before start have
// no week and return 0.
func WeekIndex(start, date time.Time) int {
	days := DaysBetween(start, date)
	if days < 0 {
		return 0
	}
	return days/7 + 1
}

// YearBounds returns the first and last calendar day of year.
func YearBounds(year int) (time.Time, time.Time) {
	first := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	return first, last
}

// InRange reports whether date falls inside the inclusive range [start, end].
func InRange(date, start, end time.Time) bool {
	d := DateOnly(date)
	return !d.Before(DateOnly(start)) && !d.After(DateOnly(end))
}
