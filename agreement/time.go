package agreement

import "time"

// =============================================================================
// CALENDAR ARITHMETIC
// =============================================================================
// The agreement counts in three distinct units and mixing them up is the
// classic wage bug: inclusive calendar days for absences, whole calendar
// months for anciennity-style durations, and exact month/day comparison
// for ages.

// DateOnly strips the time-of-day and timezone from t.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether a and b fall on the same calendar day,
// ignoring time-of-day and timezone.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// InclusiveDays counts calendar days in [start, end], both ends included.
// Jun 1 - Jun 2 is 2 days.
func InclusiveDays(start, end time.Time) int {
	return int(DateOnly(end).Sub(DateOnly(start)).Hours()/24) + 1
}

// WholeMonthsBetween counts completed calendar months from 'from' to 'to'.
// A month only counts once its day-of-month has been reached:
// Jan 15 -> Feb 14 is 0 months, Jan 15 -> Feb 15 is 1.
func WholeMonthsBetween(from, to time.Time) int {
	if to.Before(from) {
		return 0
	}
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// AgeAt computes age in whole years at ref with month/day precision.
func AgeAt(birth, ref time.Time) int {
	age := ref.Year() - birth.Year()
	if ref.Month() < birth.Month() ||
		(ref.Month() == birth.Month() && ref.Day() < birth.Day()) {
		age--
	}
	return age
}

// EndOfMonth returns the last day of the month containing t.
func EndOfMonth(t time.Time) time.Time {
	firstOfNext := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return firstOfNext.AddDate(0, 0, -1)
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
