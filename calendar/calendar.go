/*
Package calendar computes the Danish holiday calendar.

PURPOSE:
  Every other calculator needs to know whether a date is a weekday, a
  Saturday, a Sunday, or a holiday (full or half day). The holiday set
  moves with Easter, so it is computed per year from the Gregorian
  Computus rather than hardcoded.

KEY CONCEPTS:
  - Holiday: A named date; half-day holidays (Constitution Day,
    Christmas Eve, New Year's Eve) only grant entitlement after 12:00
  - Computus: Pure integer algorithm yielding Easter Sunday for a year
  - Classification: Exact calendar-day match; time-of-day and timezone
    are ignored

DETERMINISM:
  HolidaysForYear is a pure function of the year. Nothing is cached or
  persisted here; a collaborator may memoize the result if it wants to.
*/
package calendar

import (
	"sort"
	"time"

	"github.com/IIVroomVroomII/lonberegner-sub001/agreement"
)

// Holiday is one entry of the yearly holiday set.
// IsFullDay=false means the entitlement applies only after 12:00.
type Holiday struct {
	Date      time.Time
	Name      string
	IsFullDay bool
}

// =============================================================================
// EASTER - Gregorian Computus
// =============================================================================

// EasterSunday returns Easter Sunday for year using the anonymous
// Gregorian algorithm. Pure integer arithmetic, valid for all Gregorian
// years.
func EasterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// =============================================================================
// YEARLY HOLIDAY SET
// =============================================================================

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// HolidaysForYear returns the full holiday set for a calendar year,
// sorted chronologically.
func HolidaysForYear(year int) []Holiday {
	easter := EasterSunday(year)

	holidays := []Holiday{
		{Date: date(year, time.January, 1), Name: "Nytårsdag", IsFullDay: true},
		{Date: date(year, time.May, 1), Name: "1. maj", IsFullDay: true},
		{Date: date(year, time.June, 5), Name: "Grundlovsdag", IsFullDay: false},
		{Date: date(year, time.December, 24), Name: "Juleaftensdag", IsFullDay: false},
		{Date: date(year, time.December, 25), Name: "1. juledag", IsFullDay: true},
		{Date: date(year, time.December, 26), Name: "2. juledag", IsFullDay: true},
		{Date: date(year, time.December, 31), Name: "Nytårsaftensdag", IsFullDay: false},

		{Date: easter.AddDate(0, 0, -3), Name: "Skærtorsdag", IsFullDay: true},
		{Date: easter.AddDate(0, 0, -2), Name: "Langfredag", IsFullDay: true},
		{Date: easter, Name: "Påskedag", IsFullDay: true},
		{Date: easter.AddDate(0, 0, 1), Name: "2. påskedag", IsFullDay: true},
		{Date: easter.AddDate(0, 0, 26), Name: "Store bededag", IsFullDay: true},
		{Date: easter.AddDate(0, 0, 39), Name: "Kristi himmelfartsdag", IsFullDay: true},
		{Date: easter.AddDate(0, 0, 49), Name: "Pinsedag", IsFullDay: true},
		{Date: easter.AddDate(0, 0, 50), Name: "2. pinsedag", IsFullDay: true},
	}

	sort.Slice(holidays, func(i, j int) bool {
		return holidays[i].Date.Before(holidays[j].Date)
	})
	return holidays
}

// =============================================================================
// CLASSIFICATION
// =============================================================================

// Classification is the result of classifying a single date.
type Classification struct {
	IsHoliday bool
	Holiday   *Holiday
}

// Classify matches d against the holiday set of its year.
// Match is by exact calendar day; time-of-day and timezone are ignored.
func Classify(d time.Time) Classification {
	for _, h := range HolidaysForYear(d.Year()) {
		if agreement.SameDay(h.Date, d) {
			h := h
			return Classification{IsHoliday: true, Holiday: &h}
		}
	}
	return Classification{}
}

// IsHoliday is a shorthand for Classify(d).IsHoliday.
func IsHoliday(d time.Time) bool {
	return Classify(d).IsHoliday
}

// IsWeekend reports whether d is a Saturday or Sunday.
func IsWeekend(d time.Time) bool {
	return agreement.IsWeekend(d)
}
