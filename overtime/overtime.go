/*
Package overtime calculates overtime pay for hourly and salaried
employees.

PURPOSE:
  Hourly workers: tiered overtime on top of the standard day (first
  three hours at the base overtime rate, the rest at the excess rate),
  an "hour before" premium for early starts, and a 1.5x weekend/holiday
  factor applied to the tier rates. Salaried workers with non-fixed
  hours: a monthly threshold below which overtime is unpaid.

OUTPUT:
  Every calculation returns both aggregate totals and an itemized
  breakdown (type, hours, rate, amount, rule reference) sufficient to
  justify a payslip line by line.

FAILURE SEMANTICS:
  This calculator never returns an error. Zero or negative overtime
  yields a structured zero result; rejecting impossible inputs is the
  caller's job. Rest-period and daily-cap checks are separate functions
  returning a validation outcome, not errors.
*/
package overtime

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/IIVroomVroomII/lonberegner-sub001/agreement"
)

// =============================================================================
// RATES
// =============================================================================

// Rates holds the overtime rate configuration. Values are kroner per
// hour; the weekend/holiday factor multiplies the tier rate instead of
// stacking an additive percentage.
type Rates struct {
	FirstTier            decimal.Decimal // first three overtime hours
	ExcessTier           decimal.Decimal // hours beyond three
	WeekendHolidayFactor decimal.Decimal // multiplies the tier rate
}

// DefaultRates returns the current agreement rates.
func DefaultRates() Rates {
	return Rates{
		FirstTier:            agreement.MustParseDecimal("91.10"),
		ExcessTier:           agreement.MustParseDecimal("145.75"),
		WeekendHolidayFactor: agreement.MustParseDecimal("1.5"),
	}
}

// firstTierLimitHours is how many overtime hours the base tier covers.
var firstTierLimitHours = decimal.NewFromInt(3)

// earlyStartLead is how early an actual start must be, relative to the
// scheduled start, to trigger the one-hour premium.
const earlyStartLead = 30 * time.Minute

// =============================================================================
// RESULT
// =============================================================================

type ItemType string

const (
	ItemFirstTier  ItemType = "overtime_first_tier"
	ItemExcessTier ItemType = "overtime_excess_tier"
	ItemHourBefore ItemType = "hour_before_premium"
	ItemSalaried   ItemType = "salaried_excess"
)

// BreakdownItem is one payslip-justifiable line.
type BreakdownItem struct {
	Type    ItemType
	Hours   decimal.Decimal
	Rate    decimal.Decimal
	Amount  decimal.Decimal
	RuleRef string
}

// Result is the structured outcome of an overtime calculation.
type Result struct {
	OvertimeHours decimal.Decimal
	TotalPay      decimal.Decimal
	Items         []BreakdownItem
}

func zeroResult() Result {
	return Result{OvertimeHours: decimal.Zero, TotalPay: decimal.Zero}
}

// =============================================================================
// HOURLY OVERTIME
// =============================================================================

// Shift describes the inputs for one hourly overtime calculation.
type Shift struct {
	WorkedHours        decimal.Decimal
	StandardDailyHours decimal.Decimal

	// ActualStart/ScheduledStart drive the hour-before premium; leave
	// either nil to skip the check.
	ActualStart    *time.Time
	ScheduledStart *time.Time

	// WeekendOrHoliday applies the 1.5x factor to the tier rates.
	WeekendOrHoliday bool
}

// CalculateHourly computes tiered overtime pay for an hourly worker.
// Never errors: zero or negative overtime returns a zeroed result (the
// hour-before premium still applies when earned).
func CalculateHourly(s Shift, rates Rates) Result {
	factor := decimal.NewFromInt(1)
	if s.WeekendOrHoliday {
		factor = rates.WeekendHolidayFactor
	}
	firstRate := rates.FirstTier.Mul(factor)
	excessRate := rates.ExcessTier.Mul(factor)

	result := zeroResult()

	overtime := s.WorkedHours.Sub(s.StandardDailyHours)
	if overtime.IsNegative() {
		overtime = decimal.Zero
	}
	result.OvertimeHours = overtime

	if overtime.IsPositive() {
		firstHours := decimal.Min(overtime, firstTierLimitHours)
		amount := firstHours.Mul(firstRate)
		result.Items = append(result.Items, BreakdownItem{
			Type: ItemFirstTier, Hours: firstHours, Rate: firstRate, Amount: amount,
			RuleRef: "overtime, first 3 hours",
		})
		result.TotalPay = result.TotalPay.Add(amount)

		excess := overtime.Sub(firstHours)
		if excess.IsPositive() {
			amount := excess.Mul(excessRate)
			result.Items = append(result.Items, BreakdownItem{
				Type: ItemExcessTier, Hours: excess, Rate: excessRate, Amount: amount,
				RuleRef: "overtime beyond 3 hours",
			})
			result.TotalPay = result.TotalPay.Add(amount)
		}
	}

	if earnedHourBefore(s.ActualStart, s.ScheduledStart) {
		one := decimal.NewFromInt(1)
		amount := firstRate
		result.Items = append(result.Items, BreakdownItem{
			Type: ItemHourBefore, Hours: one, Rate: firstRate, Amount: amount,
			RuleRef: "early start premium (hour before)",
		})
		result.OvertimeHours = result.OvertimeHours.Add(one)
		result.TotalPay = result.TotalPay.Add(amount)
	}

	return result
}

// earnedHourBefore: the premium is exactly one hour and is earned when
// the actual start is at least 30 minutes before the scheduled start.
// The lead defines eligibility, not the premium's size.
func earnedHourBefore(actual, scheduled *time.Time) bool {
	if actual == nil || scheduled == nil {
		return false
	}
	return !actual.After(scheduled.Add(-earlyStartLead))
}

// =============================================================================
// SALARIED OVERTIME - Monthly threshold model
// =============================================================================

// SalariedConfig configures the monthly threshold model for salaried
// employees without fixed hours.
type SalariedConfig struct {
	MonthlyThresholdHours decimal.Decimal
	HourlyRate            decimal.Decimal
}

// DefaultSalariedConfig: the first 10 monthly overtime hours are part
// of the salary.
func DefaultSalariedConfig() SalariedConfig {
	return SalariedConfig{
		MonthlyThresholdHours: decimal.NewFromInt(10),
		HourlyRate:            agreement.MustParseDecimal("215.00"),
	}
}

// CalculateSalariedMonth pays only the overtime hours above the monthly
// threshold.
func CalculateSalariedMonth(monthlyOvertimeHours decimal.Decimal, cfg SalariedConfig) Result {
	result := zeroResult()
	if !monthlyOvertimeHours.IsPositive() {
		return result
	}
	paid := monthlyOvertimeHours.Sub(cfg.MonthlyThresholdHours)
	if !paid.IsPositive() {
		return result
	}
	amount := paid.Mul(cfg.HourlyRate)
	result.OvertimeHours = paid
	result.TotalPay = amount
	result.Items = append(result.Items, BreakdownItem{
		Type: ItemSalaried, Hours: paid, Rate: cfg.HourlyRate, Amount: amount,
		RuleRef: fmt.Sprintf("salaried overtime beyond %s hours/month", cfg.MonthlyThresholdHours.StringFixed(0)),
	})
	return result
}

// =============================================================================
// VALIDATION - Rest period and daily cap
// =============================================================================

var (
	requiredRestHours = decimal.NewFromInt(11)
	dailyHourCap      = decimal.NewFromInt(12)
)

// RestValidation reports whether the rest between two shifts meets the
// 11-hour requirement.
type RestValidation struct {
	IsValid       bool
	ActualHours   decimal.Decimal
	RequiredHours decimal.Decimal
	Message       string
}

// ValidateRestPeriod checks for at least 11 hours between the end of
// one shift and the start of the next. The message states both numbers
// to one decimal place.
func ValidateRestPeriod(prevEnd, nextStart time.Time) RestValidation {
	actual := decimal.NewFromFloat(nextStart.Sub(prevEnd).Hours())
	if actual.GreaterThanOrEqual(requiredRestHours) {
		return RestValidation{IsValid: true, ActualHours: actual, RequiredHours: requiredRestHours}
	}
	return RestValidation{
		IsValid:       false,
		ActualHours:   actual,
		RequiredHours: requiredRestHours,
		Message: fmt.Sprintf("rest period of %s hours is below the required %s hours",
			actual.StringFixed(1), requiredRestHours.StringFixed(1)),
	}
}

// ValidateDailyHours warns (soft) when a day exceeds 12 worked hours.
// Returns nil when the day is within the cap.
func ValidateDailyHours(workedHours decimal.Decimal) *agreement.Warning {
	if workedHours.LessThanOrEqual(dailyHourCap) {
		return nil
	}
	w := agreement.Warnf("daily_hours_exceeded",
		"worked %s hours in one day, above the %s hour cap",
		workedHours.StringFixed(1), dailyHourCap.StringFixed(0))
	return &w
}
