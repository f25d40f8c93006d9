/*
Package apprentice calculates apprentice wages, school-period
compensation, exam bonuses, and progression.

PURPOSE:
  Apprentices earn a percentage of the skilled-worker reference rate,
  by apprentice type and year. Adult apprentices (25 or older,
  non-dispatcher) get a flat 80% regardless of year, plus an anciennity
  bonus computed on the already-derived base - the one place in the
  agreement where a percentage applies to a percentage-derived amount.

HARD ERROR:
  A missing birth date makes age, and therefore the wage, impossible to
  determine; it is rejected before any wage math runs.
*/
package apprentice

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/IIVroomVroomII/lonberegner-sub001/agreement"
)

// Type distinguishes the two apprentice tracks.
type Type string

const (
	TypeStandard   Type = "standard"
	TypeDispatcher Type = "dispatcher"
)

var (
	// ErrBirthDateRequired is a hard validation error: the wage cannot
	// be computed without an age.
	ErrBirthDateRequired = errors.New("birth date is required")

	// ErrInvalidYear rejects apprentice years outside 1-4.
	ErrInvalidYear = errors.New("apprentice year must be between 1 and 4")
)

// =============================================================================
// WAGE PERCENTAGE TABLES
// =============================================================================

// Year 1-4 percentages of the skilled-worker reference rate.
var (
	standardPct   = map[int]int64{1: 50, 2: 60, 3: 75, 4: 90}
	dispatcherPct = map[int]int64{1: 55, 2: 65, 3: 80, 4: 95}

	adultPct = decimal.NewFromInt(80) // flat, regardless of year
)

const adultApprenticeMinAge = 25

// WagePercent returns the wage percentage for the given type and year.
// Adult apprentices (non-dispatcher) override the table with a flat
// 80% for every year.
func WagePercent(t Type, year int, adult bool) (decimal.Decimal, error) {
	if year < 1 || year > 4 {
		return decimal.Zero, fmt.Errorf("%w: got %d", ErrInvalidYear, year)
	}
	if adult && t != TypeDispatcher {
		return adultPct, nil
	}
	table := standardPct
	if t == TypeDispatcher {
		table = dispatcherPct
	}
	return decimal.NewFromInt(table[year]), nil
}

// =============================================================================
// HOURLY WAGE
// =============================================================================

var hundred = decimal.NewFromInt(100)

// WageResult is the hourly-wage breakdown for an apprentice.
type WageResult struct {
	Type    Type
	Year    int
	IsAdult bool

	Percent         decimal.Decimal
	BaseWage        decimal.Decimal // reference rate x percent
	AnciennityBonus decimal.Decimal
	TotalHourly     decimal.Decimal
}

// anciennity bonus percentages for adult apprentices, of the derived
// base wage (not of the reference rate).
var (
	bonusAfter12Months = decimal.NewFromInt(2)
	bonusAfter24Months = decimal.NewFromInt(4)
)

// HourlyWage computes the apprentice's hourly wage from the skilled
// reference rate at the reference date. The birth date check comes
// before any wage math.
func HourlyWage(e agreement.Employee, ref time.Time, skilledRate decimal.Decimal) (WageResult, error) {
	if e.BirthDate == nil {
		return WageResult{}, ErrBirthDateRequired
	}

	t := TypeStandard
	if e.IsDispatcherApprentice {
		t = TypeDispatcher
	}

	age := agreement.AgeAt(*e.BirthDate, ref)
	adult := (age >= adultApprenticeMinAge || e.IsAdultApprentice) && t != TypeDispatcher

	pct, err := WagePercent(t, e.ApprenticeYear, adult)
	if err != nil {
		return WageResult{}, err
	}

	base := skilledRate.Mul(pct).Div(hundred)

	bonus := decimal.Zero
	if adult {
		switch {
		case e.AnciennityMonths >= 24:
			bonus = base.Mul(bonusAfter24Months).Div(hundred)
		case e.AnciennityMonths >= 12:
			bonus = base.Mul(bonusAfter12Months).Div(hundred)
		}
	}

	return WageResult{
		Type:            t,
		Year:            e.ApprenticeYear,
		IsAdult:         adult,
		Percent:         pct,
		BaseWage:        base,
		AnciennityBonus: bonus,
		TotalHourly:     base.Add(bonus),
	}, nil
}

// =============================================================================
// SCHOOL PERIOD COMPENSATION
// =============================================================================

// SchoolRates holds the per-day school allowances.
type SchoolRates struct {
	TravelPerDay decimal.Decimal
	MealPerDay   decimal.Decimal
}

func DefaultSchoolRates() SchoolRates {
	return SchoolRates{
		TravelPerDay: agreement.MustParseDecimal("150.00"),
		MealPerDay:   agreement.MustParseDecimal("90.00"),
	}
}

// hoursPerSchoolDay mirrors the standard 7.4-hour day.
var hoursPerSchoolDay = agreement.MustParseDecimal("7.4")

// SchoolResult is the compensation for one school period.
type SchoolResult struct {
	Days               int
	SalaryContinuation decimal.Decimal
	Travel             decimal.Decimal
	Meals              decimal.Decimal
	Total              decimal.Decimal
}

// SchoolPeriodCompensation pays the inclusive day count at the hourly
// wage times 7.4, plus per-day travel and meal allowances only when the
// school is far from home.
func SchoolPeriodCompensation(start, end time.Time, hourlyWage decimal.Decimal, farFromHome bool, rates SchoolRates) SchoolResult {
	days := agreement.InclusiveDays(start, end)
	dayCount := decimal.NewFromInt(int64(days))

	result := SchoolResult{
		Days:               days,
		SalaryContinuation: dayCount.Mul(hourlyWage.Mul(hoursPerSchoolDay)),
		Travel:             decimal.Zero,
		Meals:              decimal.Zero,
	}
	if farFromHome {
		result.Travel = dayCount.Mul(rates.TravelPerDay)
		result.Meals = dayCount.Mul(rates.MealPerDay)
	}
	result.Total = result.SalaryContinuation.Add(result.Travel).Add(result.Meals)
	return result
}

// =============================================================================
// EXAM BONUS
// =============================================================================

// ExamRates holds the exam bonus amounts.
type ExamRates struct {
	Pass            decimal.Decimal
	Excellence      decimal.Decimal
	EarlyCompletion decimal.Decimal
}

func DefaultExamRates() ExamRates {
	return ExamRates{
		Pass:            agreement.MustParseDecimal("5000.00"),
		Excellence:      agreement.MustParseDecimal("2500.00"),
		EarlyCompletion: agreement.MustParseDecimal("3000.00"),
	}
}

// ExamBonus stacks the pass bonus with the excellence and
// early-completion add-ons. All three are gated on passing: a failed
// exam pays nothing regardless of the other flags.
func ExamBonus(passed, excellence, completedEarly bool, rates ExamRates) decimal.Decimal {
	if !passed {
		return decimal.Zero
	}
	total := rates.Pass
	if excellence {
		total = total.Add(rates.Excellence)
	}
	if completedEarly {
		total = total.Add(rates.EarlyCompletion)
	}
	return total
}

// =============================================================================
// PROGRESSION
// =============================================================================

// ProgressionResult describes where an apprentice stands.
type ProgressionResult struct {
	MonthsTotal         int
	MonthsInCurrentYear int
	CanProgress         bool
}

// Progression computes whole calendar months from the apprenticeship
// start to the reference date. Progression to the next year requires at
// least 12 months completed in the current year and a current year
// below 4.
func Progression(apprenticeStart, ref time.Time, currentYear int) (ProgressionResult, error) {
	if currentYear < 1 || currentYear > 4 {
		return ProgressionResult{}, fmt.Errorf("%w: got %d", ErrInvalidYear, currentYear)
	}
	total := agreement.WholeMonthsBetween(apprenticeStart, ref)
	inYear := total - (currentYear-1)*12
	if inYear < 0 {
		inYear = 0
	}
	return ProgressionResult{
		MonthsTotal:         total,
		MonthsInCurrentYear: inYear,
		CanProgress:         inYear >= 12 && currentYear < 4,
	}, nil
}
