package severance

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/IIVroomVroomII/lonberegner-sub001/agreement"
)

// =============================================================================
// SEVERANCE (fratrædelsesgodtgørelse)
// =============================================================================
// A lump sum owed on employer-initiated termination above an anciennity
// threshold. Ineligibility is not an error: it is a typed outcome the
// caller branches on, with a human-readable note.

// EligibilityReason explains a negative severance outcome.
type EligibilityReason string

const (
	ReasonEligible               EligibilityReason = "eligible"
	ReasonInsufficientAnciennity EligibilityReason = "insufficient_anciennity"
	ReasonEmployeeInitiated      EligibilityReason = "employee_initiated"
	ReasonGrossMisconduct        EligibilityReason = "gross_misconduct"
	ReasonPensionAge             EligibilityReason = "pension_age"
)

const (
	// Eligibility gate and tier boundaries, in anciennity months.
	minAnciennityMonths = 144
	tierTwoMonths       = 180
	tierThreeMonths     = 216

	pensionAge = 67
)

var (
	hoursPerDay         = agreement.MustParseDecimal("7.4")
	workingDaysPerMonth = agreement.MustParseDecimal("21.67") // average
)

// Result is the severance outcome - always structured, never an error.
type Result struct {
	Eligible bool
	Reason   EligibilityReason
	Note     string

	TierMonths    int
	MonthlySalary decimal.Decimal
	Total         decimal.Decimal
}

// MonthlySalaryBasis derives the severance salary basis from the
// effective hourly wage: hourly x 7.4 x 21.67.
func MonthlySalaryBasis(effectiveHourlyWage decimal.Decimal) decimal.Decimal {
	return effectiveHourlyWage.Mul(hoursPerDay).Mul(workingDaysPerMonth)
}

// tierMonths maps anciennity to months of severance pay.
func tierMonths(anciennityMonths int) int {
	switch {
	case anciennityMonths >= tierThreeMonths:
		return 3
	case anciennityMonths >= tierTwoMonths:
		return 2
	case anciennityMonths >= minAnciennityMonths:
		return 1
	default:
		return 0
	}
}

// Calculate gates eligibility (employer-initiated, at least 144 months,
// no gross misconduct, under pension age 67) and applies the tier
// multiplier to the monthly salary basis.
func Calculate(e agreement.Employee, effectiveHourlyWage decimal.Decimal, initiator Initiator, grossMisconduct bool, ref time.Time) Result {
	ineligible := func(reason EligibilityReason, note string) Result {
		return Result{Eligible: false, Reason: reason, Note: note,
			MonthlySalary: decimal.Zero, Total: decimal.Zero}
	}

	if initiator != InitiatorEmployer {
		return ineligible(ReasonEmployeeInitiated,
			"severance only applies to employer-initiated termination")
	}
	if grossMisconduct {
		return ineligible(ReasonGrossMisconduct,
			"termination for gross misconduct carries no severance")
	}
	if age, ok := e.Age(ref); ok && age >= pensionAge {
		return ineligible(ReasonPensionAge,
			fmt.Sprintf("employee is %d, at or above pension age %d", age, pensionAge))
	}
	if e.AnciennityMonths < minAnciennityMonths {
		return ineligible(ReasonInsufficientAnciennity,
			fmt.Sprintf("anciennity of %d months is below the %d month threshold",
				e.AnciennityMonths, minAnciennityMonths))
	}

	months := tierMonths(e.AnciennityMonths)
	monthly := MonthlySalaryBasis(effectiveHourlyWage)
	return Result{
		Eligible:      true,
		Reason:        ReasonEligible,
		Note:          fmt.Sprintf("%d months of pay after %d months of service", months, e.AnciennityMonths),
		TierMonths:    months,
		MonthlySalary: monthly,
		Total:         monthly.Mul(decimal.NewFromInt(int64(months))),
	}
}
