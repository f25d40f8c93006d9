package childcare_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IIVroomVroomII/lonberegner-sub001/agreement"
	"github.com/IIVroomVroomII/lonberegner-sub001/childcare"
)

func day(m time.Month, d int) time.Time {
	return time.Date(2025, m, d, 0, 0, 0, 0, time.UTC)
}

func TestChildSickDay(t *testing.T) {
	t.Run("days one through three each grant one paid day", func(t *testing.T) {
		for dayNumber := 1; dayNumber <= 3; dayNumber++ {
			result, err := childcare.ChildSickDay(dayNumber)
			require.NoError(t, err, "day %d", dayNumber)
			assert.Equal(t, 1, result.PaidDays)
			assert.False(t, result.DocumentationRequired)
			assert.Equal(t, agreement.AbsenceChildSick, result.Type)
		}
	})

	t.Run("day zero and day four are hard errors", func(t *testing.T) {
		for _, dayNumber := range []int{0, 4, -1} {
			_, err := childcare.ChildSickDay(dayNumber)
			require.Error(t, err, "day %d", dayNumber)
			assert.ErrorIs(t, err, childcare.ErrInvalidDayNumber)
		}
	})

	t.Run("the error names the offending value", func(t *testing.T) {
		_, err := childcare.ChildSickDay(4)
		assert.Contains(t, err.Error(), "got 4")
	})
}

func TestDoctorVisit(t *testing.T) {
	result := childcare.DoctorVisit()
	assert.Equal(t, 1, result.PaidDays)
	assert.True(t, result.DocumentationRequired)
}

func TestRelativeEscort(t *testing.T) {
	t.Run("two inclusive days is the minimum", func(t *testing.T) {
		result, err := childcare.RelativeEscort(day(time.June, 1), day(time.June, 2))
		require.NoError(t, err)
		assert.Equal(t, 2, result.PaidDays)
	})

	t.Run("seven inclusive days is the maximum", func(t *testing.T) {
		result, err := childcare.RelativeEscort(day(time.June, 1), day(time.June, 7))
		require.NoError(t, err)
		assert.Equal(t, 7, result.PaidDays)
	})

	t.Run("a single day is below the minimum", func(t *testing.T) {
		_, err := childcare.RelativeEscort(day(time.June, 1), day(time.June, 1))
		require.ErrorIs(t, err, childcare.ErrEscortBounds)
		assert.Contains(t, err.Error(), "below the minimum of 2")
	})

	t.Run("nine inclusive days is above the maximum", func(t *testing.T) {
		_, err := childcare.RelativeEscort(day(time.June, 1), day(time.June, 9))
		require.ErrorIs(t, err, childcare.ErrEscortBounds)
		assert.Contains(t, err.Error(), "exceeds the maximum of 7")
	})
}

// usageStub is a canned UsageHistory: it records the window it was
// asked about.
type usageStub struct {
	used        int
	err         error
	windowStart time.Time
	windowEnd   time.Time
}

func (s *usageStub) DaysUsed(_ context.Context, _ string, windowStart, windowEnd time.Time) (int, error) {
	s.windowStart = windowStart
	s.windowEnd = windowEnd
	return s.used, s.err
}

func TestHospitalization(t *testing.T) {
	ctx := context.Background()

	t.Run("fresh window grants the full period", func(t *testing.T) {
		history := &usageStub{used: 0}
		result, err := childcare.Hospitalization(ctx, history, "emp-1", day(time.June, 1), day(time.June, 5))
		require.NoError(t, err)
		assert.Equal(t, 5, result.PaidDays)
		assert.Equal(t, 5, result.DaysUsedThisYear)
		assert.Equal(t, 2, result.DaysRemainingThisYear)
	})

	t.Run("prior usage carries into the window", func(t *testing.T) {
		history := &usageStub{used: 5}
		result, err := childcare.Hospitalization(ctx, history, "emp-1", day(time.June, 1), day(time.June, 2))
		require.NoError(t, err)
		assert.Equal(t, 7, result.DaysUsedThisYear)
		assert.Equal(t, 0, result.DaysRemainingThisYear)
	})

	t.Run("exceeding the cap rejects the whole request", func(t *testing.T) {
		history := &usageStub{used: 5}
		_, err := childcare.Hospitalization(ctx, history, "emp-1", day(time.June, 1), day(time.June, 3))
		require.ErrorIs(t, err, childcare.ErrHospitalizationCap)
		assert.Contains(t, err.Error(), "5 days already used")
	})

	t.Run("the lookback window is one year from the request start", func(t *testing.T) {
		history := &usageStub{}
		_, err := childcare.Hospitalization(ctx, history, "emp-1", day(time.June, 1), day(time.June, 1))
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), history.windowStart)
		assert.Equal(t, day(time.June, 1), history.windowEnd)
	})

	t.Run("history errors propagate", func(t *testing.T) {
		history := &usageStub{err: assert.AnError}
		_, err := childcare.Hospitalization(ctx, history, "emp-1", day(time.June, 1), day(time.June, 2))
		assert.ErrorIs(t, err, assert.AnError)
	})
}
