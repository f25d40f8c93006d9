/*
Package allowance computes the effective hourly wage: base wage scaled
by the youth-worker percentage plus all additive per-hour allowances.

PURPOSE:
  Job-category allowances (driver tiered by vehicle class, warehouse
  split by Copenhagen-area postal code, mover, renovation), certificate
  add-ons, the vocational-degree add-on, and the capped seniority bonus
  are all flat kroner-per-hour amounts added on top of the (possibly
  youth-scaled) base. Only the base wage is youth-scaled; the additive
  allowances are not.

LOCAL SALARY:
  A locally negotiated wage overrides the base but is clamped at the
  agreement's ceiling. Clamping produces a warning, never a rejection:
  the domain intent for configured ceilings is "cap, don't reject".
*/
package allowance

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/IIVroomVroomII/lonberegner-sub001/agreement"
)

// =============================================================================
// RATES
// =============================================================================

// Rates holds the per-hour allowance amounts (kroner) and limits.
type Rates struct {
	DriverLight       decimal.Decimal
	DriverMedium      decimal.Decimal
	DriverHeavy       decimal.Decimal
	DriverArticulated decimal.Decimal

	WarehouseCopenhagen decimal.Decimal
	WarehouseProvince   decimal.Decimal
	Mover               decimal.Decimal
	Renovation          decimal.Decimal

	ADR      decimal.Decimal
	Forklift decimal.Decimal
	Crane    decimal.Decimal

	VocationalDegree decimal.Decimal

	SeniorityPerMonth  decimal.Decimal
	SeniorityCapMonths int

	LocalWageCeiling decimal.Decimal
}

// DefaultRates returns the current agreement amounts.
func DefaultRates() Rates {
	d := agreement.MustParseDecimal
	return Rates{
		DriverLight:       d("4.50"),
		DriverMedium:      d("6.25"),
		DriverHeavy:       d("8.10"),
		DriverArticulated: d("10.40"),

		WarehouseCopenhagen: d("7.25"),
		WarehouseProvince:   d("5.15"),
		Mover:               d("6.80"),
		Renovation:          d("7.90"),

		ADR:      d("3.50"),
		Forklift: d("2.25"),
		Crane:    d("4.10"),

		VocationalDegree: d("4.25"),

		SeniorityPerMonth:  d("0.35"),
		SeniorityCapMonths: 60,

		LocalWageCeiling: d("235.00"),
	}
}

// copenhagenPostalMax: postal codes 1000-2999 are the Copenhagen area;
// 3000 and up are province.
const copenhagenPostalMax = 2999

func isCopenhagenPostal(code *string) bool {
	if code == nil {
		return false
	}
	n, err := strconv.Atoi(*code)
	if err != nil {
		return false
	}
	return n >= 1000 && n <= copenhagenPostalMax
}

// =============================================================================
// YOUTH PERCENTAGE
// =============================================================================

// YouthPercent returns the age-banded percentage applied to the base
// wage only: under 18 -> 50, 18 -> 70, 19 -> 85, 20 and up -> 100.
func YouthPercent(age int) decimal.Decimal {
	switch {
	case age < 18:
		return decimal.NewFromInt(50)
	case age == 18:
		return decimal.NewFromInt(70)
	case age == 19:
		return decimal.NewFromInt(85)
	default:
		return decimal.NewFromInt(100)
	}
}

// =============================================================================
// EFFECTIVE HOURLY WAGE
// =============================================================================

// Item is one additive allowance line.
type Item struct {
	Name   string
	Amount decimal.Decimal
}

// Result is the effective-wage breakdown.
type Result struct {
	BaseWage     decimal.Decimal // after local override and youth scaling
	YouthPercent decimal.Decimal
	Items        []Item
	Effective    decimal.Decimal
	Warnings     []agreement.Warning
}

var hundred = decimal.NewFromInt(100)

// EffectiveHourlyWage computes base x youth% + sum of all additive
// allowances at the reference date.
func EffectiveHourlyWage(e agreement.Employee, ref time.Time, rates Rates) Result {
	var result Result

	base := e.BaseHourlyWage
	if e.LocalHourlyWage != nil {
		base = *e.LocalHourlyWage
		if base.GreaterThan(rates.LocalWageCeiling) {
			result.Warnings = append(result.Warnings, agreement.Warnf("local_wage_clamped",
				"local wage %s exceeds the ceiling %s and was clamped",
				base.StringFixed(2), rates.LocalWageCeiling.StringFixed(2)))
			base = rates.LocalWageCeiling
		}
	}

	result.YouthPercent = decimal.NewFromInt(100)
	if e.IsYouthWorker {
		if age, ok := e.Age(ref); ok {
			result.YouthPercent = YouthPercent(age)
		}
	}
	result.BaseWage = base.Mul(result.YouthPercent).Div(hundred)

	result.Items = categoryItems(e, rates)
	result.Items = append(result.Items, certificateItems(e, rates)...)
	if item := seniorityItem(e, rates); item != nil {
		result.Items = append(result.Items, *item)
	}

	result.Effective = result.BaseWage
	for _, item := range result.Items {
		result.Effective = result.Effective.Add(item.Amount)
	}
	return result
}

func categoryItems(e agreement.Employee, rates Rates) []Item {
	switch e.JobCategory {
	case agreement.CategoryDriver:
		amount := rates.DriverLight
		switch e.VehicleClass {
		case agreement.VehicleMedium:
			amount = rates.DriverMedium
		case agreement.VehicleHeavy:
			amount = rates.DriverHeavy
		case agreement.VehicleArticulated:
			amount = rates.DriverArticulated
		}
		return []Item{{Name: "driver allowance (" + string(vehicleOrLight(e)) + ")", Amount: amount}}
	case agreement.CategoryWarehouse:
		if isCopenhagenPostal(e.PostalCode) {
			return []Item{{Name: "warehouse allowance (Copenhagen)", Amount: rates.WarehouseCopenhagen}}
		}
		return []Item{{Name: "warehouse allowance (province)", Amount: rates.WarehouseProvince}}
	case agreement.CategoryMover:
		return []Item{{Name: "mover allowance", Amount: rates.Mover}}
	case agreement.CategoryRenovation:
		return []Item{{Name: "renovation allowance", Amount: rates.Renovation}}
	default:
		return nil
	}
}

func vehicleOrLight(e agreement.Employee) agreement.VehicleClass {
	if e.VehicleClass == "" {
		return agreement.VehicleLight
	}
	return e.VehicleClass
}

func certificateItems(e agreement.Employee, rates Rates) []Item {
	var items []Item
	if e.HasADRCert {
		items = append(items, Item{Name: "ADR certificate", Amount: rates.ADR})
	}
	if e.HasForkliftCert {
		items = append(items, Item{Name: "forklift certificate", Amount: rates.Forklift})
	}
	if e.HasCraneCert {
		items = append(items, Item{Name: "crane certificate", Amount: rates.Crane})
	}
	if e.HasVocationalDegree {
		items = append(items, Item{Name: "vocational degree", Amount: rates.VocationalDegree})
	}
	return items
}

// seniorityItem: anciennity months x per-month rate, capped at the
// maximum months (60). Nothing below one month.
func seniorityItem(e agreement.Employee, rates Rates) *Item {
	months := e.AnciennityMonths
	if months <= 0 {
		return nil
	}
	if months > rates.SeniorityCapMonths {
		months = rates.SeniorityCapMonths
	}
	amount := rates.SeniorityPerMonth.Mul(decimal.NewFromInt(int64(months)))
	return &Item{Name: "seniority bonus", Amount: amount}
}
