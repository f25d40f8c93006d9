/*
Package worktime classifies working time under the agreement.

PURPOSE:
  Standard weekly/daily hours per employment category, the 18:00-06:00
  night window, the statutory break requirement, and the time bank where
  hourly workers save hours for later paid time off.

NIGHT WINDOW POLICY:
  A shift counts as night work when any part of it overlaps the window,
  including a shift that merely passes through 18:00 without starting or
  ending inside the window. That pass-through rule is a deliberate
  policy choice (see nightSpanCountsWhenCrossed below), not an accident
  of the overlap arithmetic.

SEE ALSO:
  - timebank.go: Ledger-backed hour savings
  - overtime: consumes StandardDailyHours from this package
*/
package worktime

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/IIVroomVroomII/lonberegner-sub001/agreement"
)

// =============================================================================
// STANDARD HOURS
// =============================================================================

var (
	weeklyHoursDefault   = decimal.NewFromInt(37)
	weeklyHoursShiftWork = decimal.NewFromInt(34) // second/third shift default
	five                 = decimal.NewFromInt(5)
)

// StandardWeeklyHours returns the agreed weekly hours for the
// employee's work-time type: 37 for hourly, salaried and substitutes,
// 34 for shift work.
func StandardWeeklyHours(e agreement.Employee) decimal.Decimal {
	if e.WorkTimeType == agreement.WorkTimeShiftWork {
		return weeklyHoursShiftWork
	}
	return weeklyHoursDefault
}

// StandardDailyHours is the weekly standard spread over five days
// (7.4 for a 37-hour week).
func StandardDailyHours(e agreement.Employee) decimal.Decimal {
	return StandardWeeklyHours(e).Div(five)
}

// =============================================================================
// NIGHT WINDOW - 18:00-06:00
// =============================================================================

const (
	nightWindowStartHour = 18
	nightWindowEndHour   = 6

	// nightSpanCountsWhenCrossed makes a shift night work when it spans
	// 18:00 even if the overlap arithmetic alone would already say so.
	// Kept as a named policy constant so the rule is visible.
	nightSpanCountsWhenCrossed = true
)

// NightHours accumulates the minutes of [start, end) falling inside the
// 18:00-06:00 window and returns them as decimal hours. Accumulation is
// minute-exact at the window boundaries: 04:00-12:00 yields 2.0.
func NightHours(start, end time.Time) decimal.Decimal {
	if !end.After(start) {
		return decimal.Zero
	}

	total := 0 // minutes
	for day := agreement.DateOnly(start); !day.After(end); day = day.AddDate(0, 0, 1) {
		// Each calendar day contributes two window segments:
		// 00:00-06:00 and 18:00-24:00.
		morningEnd := day.Add(nightWindowEndHour * time.Hour)
		eveningStart := day.Add(nightWindowStartHour * time.Hour)
		nextMidnight := day.AddDate(0, 0, 1)

		total += overlapMinutes(start, end, day, morningEnd)
		total += overlapMinutes(start, end, eveningStart, nextMidnight)
	}
	return decimal.NewFromInt(int64(total)).Div(decimal.NewFromInt(60))
}

func overlapMinutes(aStart, aEnd, bStart, bEnd time.Time) int {
	s := aStart
	if bStart.After(s) {
		s = bStart
	}
	e := aEnd
	if bEnd.Before(e) {
		e = bEnd
	}
	if !e.After(s) {
		return 0
	}
	return int(e.Sub(s).Minutes())
}

// IsNightWork reports whether any part of the shift falls in the night
// window, including shifts spanning 18:00.
func IsNightWork(start, end time.Time) bool {
	if NightHours(start, end).IsPositive() {
		return true
	}
	if nightSpanCountsWhenCrossed {
		crossing := agreement.DateOnly(start).Add(nightWindowStartHour * time.Hour)
		if start.Before(crossing) && end.After(crossing) {
			return true
		}
	}
	return false
}

// =============================================================================
// BREAK REQUIREMENT
// =============================================================================

var breakThresholdHours = decimal.NewFromInt(6)

const requiredBreakMinutes = 30

// BreakValidation is the outcome of checking a recorded break against
// the agreement's minimum.
type BreakValidation struct {
	IsValid         bool
	RequiredMinutes int
	Message         string
}

// ValidateBreak requires at least 30 minutes of break once the worked
// hours reach 6. The message embeds both numbers so it can be shown to
// an end user as-is.
func ValidateBreak(workHours decimal.Decimal, breakMinutes int) BreakValidation {
	if workHours.LessThan(breakThresholdHours) {
		return BreakValidation{IsValid: true, RequiredMinutes: 0}
	}
	if breakMinutes >= requiredBreakMinutes {
		return BreakValidation{IsValid: true, RequiredMinutes: requiredBreakMinutes}
	}
	return BreakValidation{
		IsValid:         false,
		RequiredMinutes: requiredBreakMinutes,
		Message: fmt.Sprintf("worked %s hours but recorded only %d minutes of break (minimum %d)",
			workHours.StringFixed(1), breakMinutes, requiredBreakMinutes),
	}
}
