package automation_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IIVroomVroomII/lonberegner-sub001/agreement"
	"github.com/IIVroomVroomII/lonberegner-sub001/automation"
	"github.com/IIVroomVroomII/lonberegner-sub001/ledger"
	"github.com/IIVroomVroomII/lonberegner-sub001/ledger/store"
	"github.com/IIVroomVroomII/lonberegner-sub001/shift"
	"github.com/IIVroomVroomII/lonberegner-sub001/worktime"
)

func at(day, hour int) time.Time {
	return time.Date(2025, time.June, day, hour, 0, 0, 0, time.UTC)
}

func closedEntry(id string, start, end time.Time, breakMinutes int) agreement.TimeEntry {
	return agreement.TimeEntry{ID: id, Start: start, End: &end, BreakMinutes: breakMinutes}
}

func codes(anomalies []automation.Anomaly) []automation.AnomalyCode {
	out := make([]automation.AnomalyCode, 0, len(anomalies))
	for _, a := range anomalies {
		out = append(out, a.Code)
	}
	return out
}

func TestDetectAnomalies_CleanBatch(t *testing.T) {
	entries := []agreement.TimeEntry{
		closedEntry("e1", at(2, 7), at(2, 15), 30),
		closedEntry("e2", at(3, 7), at(3, 15), 30),
	}
	assert.Empty(t, automation.DetectAnomalies(entries))
}

func TestDetectAnomalies_MissingEnd(t *testing.T) {
	anomalies := automation.DetectAnomalies([]agreement.TimeEntry{
		{ID: "open", Start: at(2, 7)},
	})
	require.Len(t, anomalies, 1)
	assert.Equal(t, automation.AnomalyMissingEnd, anomalies[0].Code)
	assert.Equal(t, "open", anomalies[0].EntryID)
}

func TestDetectAnomalies_NegativeBreak(t *testing.T) {
	anomalies := automation.DetectAnomalies([]agreement.TimeEntry{
		closedEntry("e1", at(2, 7), at(2, 15), -15),
	})
	assert.Contains(t, codes(anomalies), automation.AnomalyNegativeBreak)
}

func TestDetectAnomalies_ExcessiveDay(t *testing.T) {
	// 14 hours with a 60-minute break: 13 worked hours.
	anomalies := automation.DetectAnomalies([]agreement.TimeEntry{
		closedEntry("e1", at(2, 6), at(2, 20), 60),
	})
	assert.Contains(t, codes(anomalies), automation.AnomalyExcessiveDay)
}

func TestDetectAnomalies_ShortBreak(t *testing.T) {
	// 8 worked hours with only 15 minutes of break.
	anomalies := automation.DetectAnomalies([]agreement.TimeEntry{
		closedEntry("e1", at(2, 7), at(2, 15), 15),
	})
	assert.Contains(t, codes(anomalies), automation.AnomalyShortBreak)
}

func TestDetectAnomalies_ShortRestBetweenDays(t *testing.T) {
	// Ends at 23:00, next start 07:00: 8 hours rest. Entries are given
	// out of order to exercise the chronological sort.
	anomalies := automation.DetectAnomalies([]agreement.TimeEntry{
		closedEntry("e2", at(3, 7), at(3, 15), 30),
		closedEntry("e1", at(2, 15), at(2, 23), 30),
	})
	require.Len(t, anomalies, 1)
	assert.Equal(t, automation.AnomalyShortRest, anomalies[0].Code)
	assert.Equal(t, "e2", anomalies[0].EntryID)
}

func TestDetectTimeBankAnomalies(t *testing.T) {
	ctx := context.Background()
	bank := worktime.NewTimeBank(ledger.New(store.NewMemory()), "emp-1")
	ref := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, bank.Add(ctx, agreement.MustParseDecimal("4"), ref.AddDate(0, -6, 10), "saved"))

	anomalies, err := automation.DetectTimeBankAnomalies(ctx, bank, ref)
	require.NoError(t, err)
	require.Len(t, anomalies, 1)
	assert.Equal(t, automation.AnomalyBankExpiry, anomalies[0].Code)
}

func TestReviewSchedule(t *testing.T) {
	night := func(day int) shift.WorkedShift {
		start := at(day, 22)
		return shift.WorkedShift{Start: start, End: start.Add(8 * time.Hour)}
	}

	t.Run("healthy schedule has no suggestions", func(t *testing.T) {
		morning := func(day int) shift.WorkedShift {
			start := at(day, 6)
			return shift.WorkedShift{Start: start, End: start.Add(8 * time.Hour)}
		}
		report := automation.ReviewSchedule([]shift.WorkedShift{
			morning(2), morning(3), morning(4), night(5),
		})
		assert.True(t, report.Rotation.IsValid())
		assert.Empty(t, report.Suggestions)
	})

	t.Run("rotation errors surface as suggestions", func(t *testing.T) {
		report := automation.ReviewSchedule([]shift.WorkedShift{
			night(2), night(3), night(4), night(5), night(6), night(7),
		})
		assert.False(t, report.Rotation.IsValid())
		require.NotEmpty(t, report.Suggestions)
		assert.Contains(t, report.Suggestions[len(report.Suggestions)-1], "resolve:")
	})
}
