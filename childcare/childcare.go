/*
Package childcare calculates paid leave for a sick child.

PURPOSE:
  Four entitlement types with different gates:
    - Child sick days 1/2/3: each a single paid day, no documentation
    - Doctor visit: a single paid day, documentation required
    - Relative escort: 2-7 inclusive days, bounds are hard errors
    - Hospitalization: at most 7 days per rolling 12 months, checked
      against prior usage supplied by a query collaborator

ERROR STYLE:
  Bounds violations are hard errors with the violated bound and the
  offending value in the message, so the text can be surfaced to an
  end user unchanged.
*/
package childcare

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/IIVroomVroomII/lonberegner-sub001/agreement"
)

var (
	// ErrInvalidDayNumber rejects child sick day numbers outside 1-3.
	ErrInvalidDayNumber = errors.New("invalid child sick day number")

	// ErrEscortBounds rejects escort periods outside 2-7 inclusive days.
	ErrEscortBounds = errors.New("relative escort day count out of bounds")

	// ErrHospitalizationCap rejects requests that would exceed the
	// rolling 12-month cap.
	ErrHospitalizationCap = errors.New("hospitalization cap exceeded")
)

// =============================================================================
// SINGLE-DAY ENTITLEMENTS
// =============================================================================

// Result is a granted child-care entitlement.
type Result struct {
	Type                  agreement.AbsenceType
	PaidDays              int
	DocumentationRequired bool
}

// ChildSickDay grants one paid day for sick-child day 1, 2 or 3. No
// documentation is required for any of the three. Other day numbers are
// a hard validation error.
func ChildSickDay(dayNumber int) (Result, error) {
	if dayNumber < 1 || dayNumber > 3 {
		return Result{}, fmt.Errorf("%w: day number must be 1, 2 or 3, got %d", ErrInvalidDayNumber, dayNumber)
	}
	return Result{
		Type:     agreement.AbsenceChildSick,
		PaidDays: 1,
	}, nil
}

// DoctorVisit grants one paid day; documentation is required.
func DoctorVisit() Result {
	return Result{
		Type:                  agreement.AbsenceDoctorVisit,
		PaidDays:              1,
		DocumentationRequired: true,
	}
}

// =============================================================================
// RELATIVE ESCORT - 2-7 inclusive days
// =============================================================================

const (
	escortMinDays = 2
	escortMaxDays = 7
)

// RelativeEscort grants the inclusive day count of [start, end] when it
// lies within 2-7 days. The violated bound is named in the error.
func RelativeEscort(start, end time.Time) (Result, error) {
	days := agreement.InclusiveDays(start, end)
	if days < escortMinDays {
		return Result{}, fmt.Errorf("%w: %d days is below the minimum of %d", ErrEscortBounds, days, escortMinDays)
	}
	if days > escortMaxDays {
		return Result{}, fmt.Errorf("%w: %d days exceeds the maximum of %d", ErrEscortBounds, days, escortMaxDays)
	}
	return Result{
		Type:     agreement.AbsenceRelativeEscort,
		PaidDays: days,
	}, nil
}

// =============================================================================
// HOSPITALIZATION - Rolling 12-month cap
// =============================================================================

const hospitalizationCapDays = 7

// UsageHistory supplies prior hospitalization days already consumed in
// a window. Implemented by the persistence collaborator.
type UsageHistory interface {
	DaysUsed(ctx context.Context, employeeID string, windowStart, windowEnd time.Time) (int, error)
}

// HospitalizationResult reports the grant plus the rolling-window
// accounting the caller needs to display.
type HospitalizationResult struct {
	Result
	DaysUsedThisYear      int
	DaysRemainingThisYear int
}

// Hospitalization grants the inclusive day count of [start, end],
// capped at 7 days within the trailing 12 months from the request
// start. Prior usage carries forward into the window; a request pushing
// the cumulative total past 7 is rejected outright.
func Hospitalization(ctx context.Context, history UsageHistory, employeeID string, start, end time.Time) (HospitalizationResult, error) {
	requested := agreement.InclusiveDays(start, end)
	if requested < 1 {
		return HospitalizationResult{}, fmt.Errorf("%w: period must cover at least 1 day", ErrHospitalizationCap)
	}

	windowStart := agreement.DateOnly(start).AddDate(-1, 0, 0)
	used, err := history.DaysUsed(ctx, employeeID, windowStart, agreement.DateOnly(start))
	if err != nil {
		return HospitalizationResult{}, err
	}

	if used+requested > hospitalizationCapDays {
		return HospitalizationResult{}, fmt.Errorf(
			"%w: %d days already used in the trailing 12 months, requesting %d more exceeds the cap of %d",
			ErrHospitalizationCap, used, requested, hospitalizationCapDays)
	}

	return HospitalizationResult{
		Result: Result{
			Type:     agreement.AbsenceHospitalization,
			PaidDays: requested,
		},
		DaysUsedThisYear:      used + requested,
		DaysRemainingThisYear: hospitalizationCapDays - used - requested,
	}, nil
}
