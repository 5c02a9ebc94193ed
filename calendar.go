package condrange

import "time"

// startOfDay returns t truncated to 00:00:00.000 on the same calendar day.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// dayOfWeek returns the weekday index (0=Sun .. 6=Sat) for t.
func dayOfWeek(t time.Time) int {
	return int(t.Weekday())
}

// addDays returns t shifted by n calendar days, preserving wall-clock time.
func addDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// addMonths returns t shifted by n calendar months, preserving day-of-month
// where possible; Go's time.AddDate normalises overflowing days (e.g. adding
// a month to Jan 31 lands on Mar 3).
func addMonths(t time.Time, n int) time.Time {
	return t.AddDate(0, n, 0)
}

// startOfMonth returns 00:00:00 on the first day of t's month.
func startOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// startOfYear returns 00:00:00 on January 1 of t's year.
func startOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
}

// atDayTime returns a time at the given DayTime on the calendar day of d,
// allowing the degenerate hour 24 (used by day-part table end values to mean
// end-of-day) by normalising it to the start of the next day.
func atDayTime(d time.Time, dt DayTime) time.Time {
	y, m, day := d.Date()
	if dt.Hour >= 24 {
		extraDays := dt.Hour / 24
		return time.Date(y, m, day+extraDays, 0, dt.Minute, 0, 0, d.Location())
	}
	return time.Date(y, m, day, dt.Hour, dt.Minute, 0, 0, d.Location())
}

// lastDayOfMonth returns the last calendar day of the month containing t.
func lastDayOfMonth(t time.Time) time.Time {
	firstOfNext := time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, t.Location())
	return firstOfNext.AddDate(0, 0, -1)
}

// nearestWeekday returns the nearest Mon-Fri day to targetDay within the
// given month, never crossing a month boundary (standard cron "W"
// semantics). Exposed as a standalone calendar primitive so a future
// "business day" condition can reuse it without duplicating the logic.
func nearestWeekday(year int, month time.Month, targetDay int) (time.Time, bool) {
	last := lastDayOfMonth(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
	if targetDay > last.Day() {
		return time.Time{}, false
	}
	date := time.Date(year, month, targetDay, 0, 0, 0, 0, time.UTC)
	switch date.Weekday() {
	case time.Saturday:
		if targetDay == 1 {
			return date.AddDate(0, 0, 2), true
		}
		return date.AddDate(0, 0, -1), true
	case time.Sunday:
		if targetDay >= last.Day() {
			return date.AddDate(0, 0, -2), true
		}
		return date.AddDate(0, 0, 1), true
	default:
		return date, true
	}
}
