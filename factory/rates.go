/*
Package factory provides JSON to Go rate-table conversion.

PURPOSE:
  Converts a JSON rate document into the calculators' rate structures.
  Agreement renewals change numbers, not rules: with the tables
  externalized, loading next year's rates is a data change - no code
  edit, no redeploy with new constants.

JSON SCHEMA:
  {
    "overtime": {"first_tier": "91.10", "excess_tier": "145.75"},
    "allowance": {
      "driver_heavy": "8.10",
      "seniority_per_month": "0.35",
      "local_wage_ceiling": "235.00"
    },
    "apprentice": {
      "skilled_rate": "152.10",
      "school_travel_per_day": "150.00"
    }
  }

  Omitted fields keep the calculators' defaults. All amounts are
  strings so the document never passes through binary floating point.

USAGE:
  rt, err := factory.ParseRates(jsonBytes)
  result := overtime.CalculateHourly(shift, rt.Overtime)
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/IIVroomVroomII/lonberegner-sub001/allowance"
	"github.com/IIVroomVroomII/lonberegner-sub001/apprentice"
	"github.com/IIVroomVroomII/lonberegner-sub001/overtime"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

type RatesJSON struct {
	Overtime   *OvertimeJSON   `json:"overtime,omitempty"`
	Allowance  *AllowanceJSON  `json:"allowance,omitempty"`
	Apprentice *ApprenticeJSON `json:"apprentice,omitempty"`
}

type OvertimeJSON struct {
	FirstTier            string `json:"first_tier,omitempty"`
	ExcessTier           string `json:"excess_tier,omitempty"`
	WeekendHolidayFactor string `json:"weekend_holiday_factor,omitempty"`
	SalariedHourlyRate   string `json:"salaried_hourly_rate,omitempty"`
}

type AllowanceJSON struct {
	DriverLight       string `json:"driver_light,omitempty"`
	DriverMedium      string `json:"driver_medium,omitempty"`
	DriverHeavy       string `json:"driver_heavy,omitempty"`
	DriverArticulated string `json:"driver_articulated,omitempty"`

	WarehouseCopenhagen string `json:"warehouse_copenhagen,omitempty"`
	WarehouseProvince   string `json:"warehouse_province,omitempty"`
	Mover               string `json:"mover,omitempty"`
	Renovation          string `json:"renovation,omitempty"`

	ADR      string `json:"adr,omitempty"`
	Forklift string `json:"forklift,omitempty"`
	Crane    string `json:"crane,omitempty"`

	VocationalDegree  string `json:"vocational_degree,omitempty"`
	SeniorityPerMonth string `json:"seniority_per_month,omitempty"`
	LocalWageCeiling  string `json:"local_wage_ceiling,omitempty"`
}

type ApprenticeJSON struct {
	SkilledRate        string `json:"skilled_rate,omitempty"`
	SchoolTravelPerDay string `json:"school_travel_per_day,omitempty"`
	SchoolMealPerDay   string `json:"school_meal_per_day,omitempty"`
	ExamPass           string `json:"exam_pass,omitempty"`
	ExamExcellence     string `json:"exam_excellence,omitempty"`
	ExamEarly          string `json:"exam_early,omitempty"`
}

// =============================================================================
// RATE TABLES - Parsed result
// =============================================================================

// RateTables bundles the configurable tables for the API layer.
type RateTables struct {
	Overtime         overtime.Rates
	SalariedOvertime overtime.SalariedConfig
	Allowance        allowance.Rates
	SkilledRate      decimal.Decimal
	School           apprentice.SchoolRates
	Exam             apprentice.ExamRates
}

// DefaultRateTables returns the calculators' compiled-in defaults.
func DefaultRateTables() RateTables {
	return RateTables{
		Overtime:         overtime.DefaultRates(),
		SalariedOvertime: overtime.DefaultSalariedConfig(),
		Allowance:        allowance.DefaultRates(),
		SkilledRate:      decimal.RequireFromString("152.10"),
		School:           apprentice.DefaultSchoolRates(),
		Exam:             apprentice.DefaultExamRates(),
	}
}

// ParseRates overlays a JSON rate document on the defaults. Omitted
// fields keep their default; malformed amounts are an error, not a
// silent zero.
func ParseRates(data []byte) (RateTables, error) {
	rt := DefaultRateTables()
	if len(data) == 0 {
		return rt, nil
	}

	var doc RatesJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return RateTables{}, fmt.Errorf("invalid rates document: %w", err)
	}

	if o := doc.Overtime; o != nil {
		if err := overlay(&rt.Overtime.FirstTier, o.FirstTier); err != nil {
			return RateTables{}, err
		}
		if err := overlay(&rt.Overtime.ExcessTier, o.ExcessTier); err != nil {
			return RateTables{}, err
		}
		if err := overlay(&rt.Overtime.WeekendHolidayFactor, o.WeekendHolidayFactor); err != nil {
			return RateTables{}, err
		}
		if err := overlay(&rt.SalariedOvertime.HourlyRate, o.SalariedHourlyRate); err != nil {
			return RateTables{}, err
		}
	}

	if a := doc.Allowance; a != nil {
		fields := []struct {
			dst *decimal.Decimal
			src string
		}{
			{&rt.Allowance.DriverLight, a.DriverLight},
			{&rt.Allowance.DriverMedium, a.DriverMedium},
			{&rt.Allowance.DriverHeavy, a.DriverHeavy},
			{&rt.Allowance.DriverArticulated, a.DriverArticulated},
			{&rt.Allowance.WarehouseCopenhagen, a.WarehouseCopenhagen},
			{&rt.Allowance.WarehouseProvince, a.WarehouseProvince},
			{&rt.Allowance.Mover, a.Mover},
			{&rt.Allowance.Renovation, a.Renovation},
			{&rt.Allowance.ADR, a.ADR},
			{&rt.Allowance.Forklift, a.Forklift},
			{&rt.Allowance.Crane, a.Crane},
			{&rt.Allowance.VocationalDegree, a.VocationalDegree},
			{&rt.Allowance.SeniorityPerMonth, a.SeniorityPerMonth},
			{&rt.Allowance.LocalWageCeiling, a.LocalWageCeiling},
		}
		for _, f := range fields {
			if err := overlay(f.dst, f.src); err != nil {
				return RateTables{}, err
			}
		}
	}

	if ap := doc.Apprentice; ap != nil {
		fields := []struct {
			dst *decimal.Decimal
			src string
		}{
			{&rt.SkilledRate, ap.SkilledRate},
			{&rt.School.TravelPerDay, ap.SchoolTravelPerDay},
			{&rt.School.MealPerDay, ap.SchoolMealPerDay},
			{&rt.Exam.Pass, ap.ExamPass},
			{&rt.Exam.Excellence, ap.ExamExcellence},
			{&rt.Exam.EarlyCompletion, ap.ExamEarly},
		}
		for _, f := range fields {
			if err := overlay(f.dst, f.src); err != nil {
				return RateTables{}, err
			}
		}
	}

	return rt, nil
}

func overlay(dst *decimal.Decimal, src string) error {
	if src == "" {
		return nil
	}
	d, err := decimal.NewFromString(src)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", src, err)
	}
	*dst = d
	return nil
}
