/*
Package automation composes calculator outputs into anomaly reports and
schedule advice.

PURPOSE:
  Pure orchestration over the calendar, worktime, overtime and shift
  packages - no rule of its own. It scans recorded time for
  data-quality and compliance anomalies and summarizes schedule health
  so a planner can act. Conflicts between recorded time and suggested
  corrections are resolved elsewhere; this package only surfaces them.
*/
package automation

import (
	"context"
	"sort"
	"time"

	"github.com/IIVroomVroomII/lonberegner-sub001/agreement"
	"github.com/IIVroomVroomII/lonberegner-sub001/overtime"
	"github.com/IIVroomVroomII/lonberegner-sub001/shift"
	"github.com/IIVroomVroomII/lonberegner-sub001/worktime"
)

// =============================================================================
// ANOMALY DETECTION
// =============================================================================

type AnomalyCode string

const (
	AnomalyMissingEnd    AnomalyCode = "missing_end_time"
	AnomalyNegativeBreak AnomalyCode = "negative_break"
	AnomalyExcessiveDay  AnomalyCode = "excessive_daily_hours"
	AnomalyShortRest     AnomalyCode = "short_rest_period"
	AnomalyShortBreak    AnomalyCode = "insufficient_break"
	AnomalyBankExpiry    AnomalyCode = "timebank_expiry"
)

// Anomaly is one finding on a recorded time entry (or the time bank).
type Anomaly struct {
	Code    AnomalyCode
	EntryID string
	Message string
}

// DetectAnomalies scans a batch of time entries chronologically.
// Records are independent except for the rest-period check between
// consecutive closed entries.
func DetectAnomalies(entries []agreement.TimeEntry) []Anomaly {
	ordered := make([]agreement.TimeEntry, len(entries))
	copy(ordered, entries)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Start.Before(ordered[j].Start) })

	var anomalies []Anomaly
	var prevEnd *time.Time

	for _, e := range ordered {
		if e.End == nil {
			anomalies = append(anomalies, Anomaly{
				Code: AnomalyMissingEnd, EntryID: e.ID,
				Message: "entry has no end time; computed hours are zero",
			})
			continue
		}
		if e.BreakMinutes < 0 {
			anomalies = append(anomalies, Anomaly{
				Code: AnomalyNegativeBreak, EntryID: e.ID,
				Message: "recorded break is negative; likely a data entry fault",
			})
		}

		hours := e.WorkedHours()
		if w := overtime.ValidateDailyHours(hours); w != nil {
			anomalies = append(anomalies, Anomaly{Code: AnomalyExcessiveDay, EntryID: e.ID, Message: w.Message})
		}
		if bv := worktime.ValidateBreak(hours, e.BreakMinutes); !bv.IsValid {
			anomalies = append(anomalies, Anomaly{Code: AnomalyShortBreak, EntryID: e.ID, Message: bv.Message})
		}
		if prevEnd != nil {
			if rv := overtime.ValidateRestPeriod(*prevEnd, e.Start); !rv.IsValid {
				anomalies = append(anomalies, Anomaly{Code: AnomalyShortRest, EntryID: e.ID, Message: rv.Message})
			}
		}
		prevEnd = e.End
	}
	return anomalies
}

// DetectTimeBankAnomalies adds expiry warnings from the employee's time
// bank to an anomaly report.
func DetectTimeBankAnomalies(ctx context.Context, bank *worktime.TimeBank, ref time.Time) ([]Anomaly, error) {
	warnings, err := bank.ApproachingExpiry(ctx, ref)
	if err != nil {
		return nil, err
	}
	anomalies := make([]Anomaly, 0, len(warnings))
	for _, w := range warnings {
		anomalies = append(anomalies, Anomaly{Code: AnomalyBankExpiry, Message: w.Message})
	}
	return anomalies, nil
}

// =============================================================================
// SCHEDULE HEALTH
// =============================================================================

// ScheduleReport is a planner-facing summary of a shift schedule.
type ScheduleReport struct {
	Rotation     shift.RotationReport
	Distribution shift.DistributionReport
	Suggestions  []string
}

// ReviewSchedule runs the rotation and distribution checks and folds
// their findings into actionable suggestions.
func ReviewSchedule(shifts []shift.WorkedShift) ScheduleReport {
	report := ScheduleReport{
		Rotation:     shift.ValidateRotation(shifts),
		Distribution: shift.AnalyzeDistribution(shifts),
	}
	report.Suggestions = append(report.Suggestions, report.Distribution.Recommendations...)
	for _, e := range report.Rotation.Errors {
		report.Suggestions = append(report.Suggestions, "resolve: "+e)
	}
	for _, w := range report.Rotation.Warnings {
		report.Suggestions = append(report.Suggestions, "consider: "+w.Message)
	}
	return report
}
