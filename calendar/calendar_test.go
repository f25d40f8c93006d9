package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IIVroomVroomII/lonberegner-sub001/calendar"
)

func TestEasterSunday_KnownYears(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		day   int
	}{
		{2024, time.March, 31},
		{2025, time.April, 20},
		{2026, time.April, 5},
		{2027, time.March, 28},
		{2028, time.April, 16},
	}
	for _, tt := range tests {
		got := calendar.EasterSunday(tt.year)
		assert.Equal(t, tt.month, got.Month(), "year %d", tt.year)
		assert.Equal(t, tt.day, got.Day(), "year %d", tt.year)
	}
}

func TestHolidaysForYear_CountAndOrder(t *testing.T) {
	holidays := calendar.HolidaysForYear(2025)

	// 7 fixed + 8 Easter-relative
	require.Len(t, holidays, 15)

	for i := 1; i < len(holidays); i++ {
		assert.True(t, holidays[i-1].Date.Before(holidays[i].Date),
			"holidays must be chronological: %s before %s", holidays[i-1].Name, holidays[i].Name)
	}
}

func TestHolidaysForYear_EasterRelativePlacement(t *testing.T) {
	// GIVEN: Easter 2025 is April 20
	byName := map[string]time.Time{}
	for _, h := range calendar.HolidaysForYear(2025) {
		byName[h.Name] = h.Date
	}

	assert.Equal(t, 17, byName["Skærtorsdag"].Day())
	assert.Equal(t, 18, byName["Langfredag"].Day())
	assert.Equal(t, 21, byName["2. påskedag"].Day())
	assert.Equal(t, time.May, byName["Store bededag"].Month()) // Easter +26
	assert.Equal(t, 16, byName["Store bededag"].Day())
	assert.Equal(t, 29, byName["Kristi himmelfartsdag"].Day()) // Easter +39
	assert.Equal(t, time.June, byName["Pinsedag"].Month())     // Easter +49
	assert.Equal(t, 8, byName["Pinsedag"].Day())
}

func TestHolidaysForYear_HalfDays(t *testing.T) {
	halfDays := map[string]bool{}
	for _, h := range calendar.HolidaysForYear(2025) {
		if !h.IsFullDay {
			halfDays[h.Name] = true
		}
	}
	assert.Equal(t, map[string]bool{
		"Grundlovsdag":    true,
		"Juleaftensdag":   true,
		"Nytårsaftensdag": true,
	}, halfDays)
}

func TestClassify_IgnoresTimeOfDay(t *testing.T) {
	// WHEN: Classifying Christmas Day at 14:37 in a non-UTC zone
	loc := time.FixedZone("CET", 3600)
	c := calendar.Classify(time.Date(2025, time.December, 25, 14, 37, 0, 0, loc))

	// THEN: the calendar-day match holds regardless
	require.True(t, c.IsHoliday)
	assert.Equal(t, "1. juledag", c.Holiday.Name)
}

func TestClassify_OrdinaryDay(t *testing.T) {
	c := calendar.Classify(time.Date(2025, time.March, 11, 0, 0, 0, 0, time.UTC))
	assert.False(t, c.IsHoliday)
	assert.Nil(t, c.Holiday)
}

func TestIsWeekend(t *testing.T) {
	assert.True(t, calendar.IsWeekend(time.Date(2025, time.March, 8, 0, 0, 0, 0, time.UTC)))  // Saturday
	assert.True(t, calendar.IsWeekend(time.Date(2025, time.March, 9, 0, 0, 0, 0, time.UTC)))  // Sunday
	assert.False(t, calendar.IsWeekend(time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC))) // Monday
}
