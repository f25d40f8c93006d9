/*
Package shift calculates shift differentials and validates shift
schedules.

PURPOSE:
  Classifies shifts (morning/afternoon/night/day) and days
  (weekday/Saturday/Sunday/bank holiday), stacks the shift supplement
  and the weekend supplement additively on the same base payment,
  validates rotations (consecutive nights, rest between shifts), checks
  distribution fairness, and accrues compensation days.

STACKING RULE:
  Both supplements are percentages of the same base (hours x rate) and
  are summed. They never compound: a night shift on a Sunday is
  base + 40% of base + 100% of base, not base x 1.4 x 2.0.

HOLIDAY NOTE:
  Day classification here only knows weekdays and weekends; the caller
  supplies DayBankHoliday directly when the calendar package says the
  date is a holiday.
*/
package shift

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CLASSIFICATION
// =============================================================================

type ShiftType string

const (
	ShiftMorning   ShiftType = "morning"
	ShiftAfternoon ShiftType = "afternoon"
	ShiftNight     ShiftType = "night"
	ShiftDay       ShiftType = "day"
)

type DayType string

const (
	DayWeekday     DayType = "weekday"
	DaySaturday    DayType = "saturday"
	DaySunday      DayType = "sunday"
	DayBankHoliday DayType = "bank_holiday"
)

// ClassifyShift types a shift by its start hour: 22-06 night, 06-14
// morning, 14-22 afternoon. Every start hour maps to one of those
// three; ShiftDay is only set by callers that construct shifts outside
// the rotation scheme.
func ClassifyShift(start time.Time) ShiftType {
	h := start.Hour()
	switch {
	case h >= 22 || h < 6:
		return ShiftNight
	case h < 14:
		return ShiftMorning
	default:
		return ShiftAfternoon
	}
}

// ClassifyDay types a date by weekday. Bank holidays are a caller
// concern (see package comment).
func ClassifyDay(d time.Time) DayType {
	switch d.Weekday() {
	case time.Sunday:
		return DaySunday
	case time.Saturday:
		return DaySaturday
	default:
		return DayWeekday
	}
}

// =============================================================================
// SUPPLEMENT PERCENTAGES
// =============================================================================

var shiftSupplementPct = map[ShiftType]decimal.Decimal{
	ShiftMorning:   decimal.NewFromInt(15),
	ShiftAfternoon: decimal.NewFromInt(20),
	ShiftNight:     decimal.NewFromInt(40),
	ShiftDay:       decimal.Zero,
}

var daySupplementPct = map[DayType]decimal.Decimal{
	DayWeekday:     decimal.Zero,
	DaySaturday:    decimal.NewFromInt(50),
	DaySunday:      decimal.NewFromInt(100),
	DayBankHoliday: decimal.NewFromInt(100),
}

// rotationSupplementPct applies on top of the shift supplement when the
// shift is part of a rotating pattern. Day shifts never get it.
var rotationSupplementPct = decimal.NewFromInt(12)

var hundred = decimal.NewFromInt(100)

// =============================================================================
// PAYMENT
// =============================================================================

// Payment is the supplement breakdown for a single shift.
type Payment struct {
	ShiftType ShiftType
	DayType   DayType
	Rotating  bool

	BasePay         decimal.Decimal
	ShiftSupplement decimal.Decimal
	DaySupplement   decimal.Decimal
	Total           decimal.Decimal
}

// CalculatePayment stacks the shift and weekend/holiday supplements
// additively on the same base payment.
func CalculatePayment(hours, hourlyRate decimal.Decimal, st ShiftType, dt DayType, rotating bool) Payment {
	base := hours.Mul(hourlyRate)

	shiftPct := shiftSupplementPct[st]
	if rotating && st != ShiftDay {
		shiftPct = shiftPct.Add(rotationSupplementPct)
	}

	shiftSupp := base.Mul(shiftPct).Div(hundred)
	daySupp := base.Mul(daySupplementPct[dt]).Div(hundred)

	return Payment{
		ShiftType:       st,
		DayType:         dt,
		Rotating:        rotating,
		BasePay:         base,
		ShiftSupplement: shiftSupp,
		DaySupplement:   daySupp,
		Total:           base.Add(shiftSupp).Add(daySupp),
	}
}

// =============================================================================
// MONTHLY AGGREGATION
// =============================================================================

// WorkedShift is one scheduled or recorded shift.
type WorkedShift struct {
	Start    time.Time
	End      time.Time
	Hours    decimal.Decimal
	Rotating bool

	// BankHoliday overrides day classification (caller consults the
	// calendar package).
	BankHoliday bool
}

func (s WorkedShift) dayType() DayType {
	if s.BankHoliday {
		return DayBankHoliday
	}
	return ClassifyDay(s.Start)
}

// MonthlyEarnings sums per-shift payments sequentially. Each shift is
// independent; the aggregate equals the sum of per-shift results
// exactly.
func MonthlyEarnings(shifts []WorkedShift, hourlyRate decimal.Decimal) (decimal.Decimal, []Payment) {
	total := decimal.Zero
	payments := make([]Payment, 0, len(shifts))
	for _, s := range shifts {
		p := CalculatePayment(s.Hours, hourlyRate, ClassifyShift(s.Start), s.dayType(), s.Rotating)
		payments = append(payments, p)
		total = total.Add(p.Total)
	}
	return total, payments
}
