package shift

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/IIVroomVroomII/lonberegner-sub001/agreement"
)

// =============================================================================
// ROTATION VALIDATION
// =============================================================================
// Schedule-level checks, independent of the per-shift pay calculation:
//   - more than 5 consecutive night shifts: error
//   - more than 6 consecutive shifts of any type: warning
//   - less than 11 hours rest between shifts: error
// The 11-hour rest rule is the same threshold the overtime package
// enforces for recorded time; here it is applied to planned schedules.

const (
	maxConsecutiveNightShifts = 5
	maxConsecutiveShifts      = 6
	requiredRestHours         = 11.0
)

// RotationReport separates hard errors from soft warnings.
type RotationReport struct {
	Errors   []string
	Warnings []agreement.Warning
}

func (r RotationReport) IsValid() bool { return len(r.Errors) == 0 }

// ValidateRotation checks a shift schedule, ordered by start time.
func ValidateRotation(shifts []WorkedShift) RotationReport {
	ordered := make([]WorkedShift, len(shifts))
	copy(ordered, shifts)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Start.Before(ordered[j].Start) })

	var report RotationReport

	consecutiveNights := 0
	consecutive := 0
	var prevEnd time.Time

	for i, s := range ordered {
		if i > 0 {
			rest := s.Start.Sub(prevEnd).Hours()
			if rest < requiredRestHours {
				report.Errors = append(report.Errors,
					fmt.Sprintf("rest period of %.1f hours before shift on %s is below the required %.1f hours",
						rest, s.Start.Format("2006-01-02"), requiredRestHours))
			}
			// A full free day between shifts breaks the consecutive chains.
			if rest >= 24 {
				consecutive = 0
				consecutiveNights = 0
			}
		}

		consecutive++
		if ClassifyShift(s.Start) == ShiftNight {
			consecutiveNights++
		} else {
			consecutiveNights = 0
		}

		if consecutiveNights == maxConsecutiveNightShifts+1 {
			report.Errors = append(report.Errors,
				fmt.Sprintf("more than %d consecutive night shifts starting %s",
					maxConsecutiveNightShifts, s.Start.Format("2006-01-02")))
		}
		if consecutive == maxConsecutiveShifts+1 {
			report.Warnings = append(report.Warnings, agreement.Warnf("consecutive_shifts",
				"more than %d consecutive shifts without a free day", maxConsecutiveShifts))
		}

		prevEnd = s.End
	}
	return report
}

// =============================================================================
// DISTRIBUTION FAIRNESS
// =============================================================================

var (
	maxNightShare   = decimal.NewFromFloat(0.40)
	maxWeekendShare = decimal.NewFromFloat(0.30)
)

// DistributionReport describes how shifts spread over a period.
type DistributionReport struct {
	NightShare      decimal.Decimal
	WeekendShare    decimal.Decimal
	Recommendations []string
}

// AnalyzeDistribution flags schedules leaning too hard on one person:
// night share above 40% or weekend share above 30%.
func AnalyzeDistribution(shifts []WorkedShift) DistributionReport {
	report := DistributionReport{NightShare: decimal.Zero, WeekendShare: decimal.Zero}
	if len(shifts) == 0 {
		return report
	}

	nights, weekends := 0, 0
	for _, s := range shifts {
		if ClassifyShift(s.Start) == ShiftNight {
			nights++
		}
		if dt := s.dayType(); dt == DaySaturday || dt == DaySunday {
			weekends++
		}
	}

	total := decimal.NewFromInt(int64(len(shifts)))
	report.NightShare = decimal.NewFromInt(int64(nights)).Div(total)
	report.WeekendShare = decimal.NewFromInt(int64(weekends)).Div(total)

	if report.NightShare.GreaterThan(maxNightShare) {
		report.Recommendations = append(report.Recommendations,
			fmt.Sprintf("night shifts are %s%% of the schedule; redistribute to stay under %s%%",
				report.NightShare.Mul(hundred).StringFixed(0), maxNightShare.Mul(hundred).StringFixed(0)))
	}
	if report.WeekendShare.GreaterThan(maxWeekendShare) {
		report.Recommendations = append(report.Recommendations,
			fmt.Sprintf("weekend shifts are %s%% of the schedule; redistribute to stay under %s%%",
				report.WeekendShare.Mul(hundred).StringFixed(0), maxWeekendShare.Mul(hundred).StringFixed(0)))
	}
	return report
}

// =============================================================================
// COMPENSATION DAYS
// =============================================================================

var (
	compDaysPerYear      = decimal.NewFromInt(5)
	monthsPerYear        = decimal.NewFromInt(12)
	compDaysWeekendShift = decimal.NewFromFloat(1.5)
)

// CompensationDays accrues the annual compensation-day balance:
// 5/12 day per month worked plus 1.5 days per weekend shift. Multiply
// before dividing so whole years come out exact.
func CompensationDays(monthsWorked, weekendShifts int) decimal.Decimal {
	monthly := compDaysPerYear.Mul(decimal.NewFromInt(int64(monthsWorked))).Div(monthsPerYear)
	weekend := compDaysWeekendShift.Mul(decimal.NewFromInt(int64(weekendShifts)))
	return monthly.Add(weekend)
}
