/*
Package freedom calculates the special allowance and manages the
freedom account (frihedskonto).

PURPOSE:
  The special allowance is a year-keyed percentage of vacation-eligible
  pay. Hourly workers and substitutes are always on the freedom-account
  track (flat 6.75%); salaried and shift workers are on the allowance
  track (7.60 -> 8.20 over 2025-2028), or on the savings track with the
  same numbers when they elected savings.

RATE TABLE:
  Rates are a versioned effective-year lookup, not conditionals.
  Adding a 2029 rate is a data change in this file.

SEE ALSO:
  - account.go: The freedom-account ledger operations
*/
package freedom

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/IIVroomVroomII/lonberegner-sub001/agreement"
)

// Track labels which rule selected the percentage.
type Track string

const (
	TrackFreedomAccount Track = "freedom_account"
	TrackAllowance      Track = "allowance"
	TrackSavings        Track = "savings"
)

// ErrNoRateForYear is returned for years before the first effective
// rate (2025).
var ErrNoRateForYear = errors.New("no special allowance rate in effect")

// Rate is one resolved percentage.
type Rate struct {
	EffectiveYear int
	Percent       decimal.Decimal
	Track         Track
	IsSavings     bool
}

// =============================================================================
// VERSIONED RATE TABLE - effective year -> percent
// =============================================================================

type yearRate struct {
	year    int
	percent decimal.Decimal
}

var (
	// Freedom-account track: flat across all years.
	freedomAccountRates = []yearRate{
		{2025, agreement.MustParseDecimal("6.75")},
	}

	// Allowance/savings track: same numeric progression for both.
	allowanceRates = []yearRate{
		{2025, agreement.MustParseDecimal("7.60")},
		{2026, agreement.MustParseDecimal("7.80")},
		{2027, agreement.MustParseDecimal("8.00")},
		{2028, agreement.MustParseDecimal("8.20")},
	}
)

// latestEffective resolves the rate with the greatest effective year
// not after the given year. Tables are declared in ascending year
// order and must stay that way.
func latestEffective(table []yearRate, year int) (decimal.Decimal, error) {
	var found *yearRate
	for i := range table {
		if table[i].year <= year {
			found = &table[i]
		}
	}
	if found == nil {
		return decimal.Zero, fmt.Errorf("%w for %d", ErrNoRateForYear, year)
	}
	return found.percent, nil
}

// PercentFor selects the percentage by work-time type, year, and
// savings election.
func PercentFor(wtt agreement.WorkTimeType, year int, electedSavings bool) (Rate, error) {
	switch wtt {
	case agreement.WorkTimeHourly, agreement.WorkTimeSubstitute:
		pct, err := latestEffective(freedomAccountRates, year)
		if err != nil {
			return Rate{}, err
		}
		return Rate{EffectiveYear: year, Percent: pct, Track: TrackFreedomAccount}, nil
	default:
		pct, err := latestEffective(allowanceRates, year)
		if err != nil {
			return Rate{}, err
		}
		track := TrackAllowance
		if electedSavings {
			track = TrackSavings
		}
		return Rate{EffectiveYear: year, Percent: pct, Track: track, IsSavings: electedSavings}, nil
	}
}

// =============================================================================
// ALLOWANCE AMOUNT
// =============================================================================

var hundred = decimal.NewFromInt(100)

// Allowance is a calculated special-allowance amount.
type Allowance struct {
	Rate   Rate
	Base   decimal.Decimal
	Amount decimal.Decimal
}

// Calculate computes base x percent / 100 for the employee's track.
func Calculate(base decimal.Decimal, wtt agreement.WorkTimeType, year int, electedSavings bool) (Allowance, error) {
	rate, err := PercentFor(wtt, year, electedSavings)
	if err != nil {
		return Allowance{}, err
	}
	return Allowance{
		Rate:   rate,
		Base:   base,
		Amount: base.Mul(rate.Percent).Div(hundred),
	}, nil
}
