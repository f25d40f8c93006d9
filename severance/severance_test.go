package severance_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IIVroomVroomII/lonberegner-sub001/agreement"
	"github.com/IIVroomVroomII/lonberegner-sub001/severance"
)

func dec(s string) decimal.Decimal { return agreement.MustParseDecimal(s) }

var ref = time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

func TestMonthlySalaryBasis(t *testing.T) {
	// 150 x 7.4 x 21.67
	got := severance.MonthlySalaryBasis(dec("150"))
	assert.True(t, got.Equal(dec("24053.70")), "got %s", got)
}

func TestCalculate_TierBoundaries(t *testing.T) {
	tests := []struct {
		months     int
		wantTier   int
		wantReason severance.EligibilityReason
	}{
		{143, 0, severance.ReasonInsufficientAnciennity},
		{144, 1, severance.ReasonEligible},
		{179, 1, severance.ReasonEligible},
		{180, 2, severance.ReasonEligible},
		{215, 2, severance.ReasonEligible},
		{216, 3, severance.ReasonEligible},
		{480, 3, severance.ReasonEligible},
	}
	for _, tt := range tests {
		e := agreement.Employee{ID: "emp-1", AnciennityMonths: tt.months}
		result := severance.Calculate(e, dec("100"), severance.InitiatorEmployer, false, ref)

		assert.Equal(t, tt.wantReason, result.Reason, "%d months", tt.months)
		assert.Equal(t, tt.wantTier, result.TierMonths, "%d months", tt.months)
		if tt.wantTier > 0 {
			// monthly basis 100 x 7.4 x 21.67 = 16035.80
			want := dec("16035.80").Mul(decimal.NewFromInt(int64(tt.wantTier)))
			assert.True(t, result.Total.Equal(want), "%d months: got %s", tt.months, result.Total)
		} else {
			assert.True(t, result.Total.IsZero())
		}
	}
}

func TestCalculate_Gates(t *testing.T) {
	eligible := agreement.Employee{ID: "emp-1", AnciennityMonths: 200}

	t.Run("employee-initiated pays nothing", func(t *testing.T) {
		result := severance.Calculate(eligible, dec("100"), severance.InitiatorEmployee, false, ref)
		assert.False(t, result.Eligible)
		assert.Equal(t, severance.ReasonEmployeeInitiated, result.Reason)
		assert.True(t, result.Total.IsZero())
	})

	t.Run("gross misconduct pays nothing", func(t *testing.T) {
		result := severance.Calculate(eligible, dec("100"), severance.InitiatorEmployer, true, ref)
		assert.False(t, result.Eligible)
		assert.Equal(t, severance.ReasonGrossMisconduct, result.Reason)
	})

	t.Run("at pension age pays nothing", func(t *testing.T) {
		birth := time.Date(1958, time.January, 1, 0, 0, 0, 0, time.UTC) // 67 at ref
		e := eligible
		e.BirthDate = &birth
		result := severance.Calculate(e, dec("100"), severance.InitiatorEmployer, false, ref)
		assert.Equal(t, severance.ReasonPensionAge, result.Reason)
	})

	t.Run("just under pension age is eligible", func(t *testing.T) {
		birth := time.Date(1959, time.January, 1, 0, 0, 0, 0, time.UTC) // 66 at ref
		e := eligible
		e.BirthDate = &birth
		result := severance.Calculate(e, dec("100"), severance.InitiatorEmployer, false, ref)
		assert.True(t, result.Eligible)
	})

	t.Run("ineligibility notes carry the numbers", func(t *testing.T) {
		e := agreement.Employee{ID: "emp-1", AnciennityMonths: 100}
		result := severance.Calculate(e, dec("100"), severance.InitiatorEmployer, false, ref)
		assert.Contains(t, result.Note, "100")
		assert.Contains(t, result.Note, "144")
	})
}

func TestNoticePeriod(t *testing.T) {
	t.Run("employer tiers", func(t *testing.T) {
		tests := []struct {
			months int
			want   severance.Notice
		}{
			{0, severance.Notice{Days: 14}},
			{5, severance.Notice{Days: 14}},
			{6, severance.Notice{Months: 1}},
			{35, severance.Notice{Months: 1}},
			{36, severance.Notice{Months: 3}},
			{95, severance.Notice{Months: 3}},
			{96, severance.Notice{Months: 4}},
			{179, severance.Notice{Months: 4}},
			{180, severance.Notice{Months: 6}},
			{400, severance.Notice{Months: 6}},
		}
		for _, tt := range tests {
			got := severance.NoticePeriod(tt.months, severance.InitiatorEmployer)
			assert.Equal(t, tt.want, got, "%d months", tt.months)
		}
	})

	t.Run("employee side is flat after six months", func(t *testing.T) {
		assert.Equal(t, severance.Notice{Days: 14}, severance.NoticePeriod(3, severance.InitiatorEmployee))
		assert.Equal(t, severance.Notice{Months: 1}, severance.NoticePeriod(6, severance.InitiatorEmployee))
		assert.Equal(t, severance.Notice{Months: 1}, severance.NoticePeriod(300, severance.InitiatorEmployee))
	})
}

func TestTerminationDate(t *testing.T) {
	noticeGiven := time.Date(2025, time.June, 10, 14, 30, 0, 0, time.UTC)

	t.Run("month tiers snap to month end", func(t *testing.T) {
		// 40 months: 3-month notice, June 10 + 3 months = Sep 10, snapped to Sep 30.
		got := severance.TerminationDate(noticeGiven, 40, severance.InitiatorEmployer)
		assert.Equal(t, time.Date(2025, time.September, 30, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("14-day tier adds plain days", func(t *testing.T) {
		got := severance.TerminationDate(noticeGiven, 3, severance.InitiatorEmployer)
		assert.Equal(t, time.Date(2025, time.June, 24, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("month-end snap across a year boundary", func(t *testing.T) {
		given := time.Date(2025, time.November, 5, 0, 0, 0, 0, time.UTC)
		got := severance.TerminationDate(given, 200, severance.InitiatorEmployer) // 6 months
		assert.Equal(t, time.Date(2026, time.May, 31, 0, 0, 0, 0, time.UTC), got)
	})
}

func TestCheckProtection(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	t.Run("no absences, no block", func(t *testing.T) {
		check := severance.CheckProtection(nil, ref)
		assert.False(t, check.Blocked)
	})

	t.Run("open-ended sick leave blocks", func(t *testing.T) {
		check := severance.CheckProtection([]agreement.AbsenceEntry{
			{Type: agreement.AbsenceSick, StartDate: day(2025, time.May, 1)},
		}, ref)
		require.True(t, check.Blocked)
		assert.Equal(t, severance.ProtectionSickness, check.Reason)
	})

	t.Run("ended sick leave does not block", func(t *testing.T) {
		check := severance.CheckProtection([]agreement.AbsenceEntry{
			{Type: agreement.AbsenceSick, StartDate: day(2025, time.May, 1), EndDate: day(2025, time.May, 10)},
		}, ref)
		assert.False(t, check.Blocked)
	})

	t.Run("sick leave older than 26 weeks does not block", func(t *testing.T) {
		check := severance.CheckProtection([]agreement.AbsenceEntry{
			{Type: agreement.AbsenceSick, StartDate: ref.AddDate(0, 0, -27*7)},
		}, ref)
		assert.False(t, check.Blocked)
	})

	t.Run("parental leave uses the 52-week window", func(t *testing.T) {
		start := ref.AddDate(0, 0, -40*7) // outside 26 weeks, inside 52
		check := severance.CheckProtection([]agreement.AbsenceEntry{
			{Type: agreement.AbsenceParental, StartDate: start},
		}, ref)
		require.True(t, check.Blocked)
		assert.Equal(t, severance.ProtectionFamilyLeave, check.Reason)
	})

	t.Run("vacation never blocks", func(t *testing.T) {
		check := severance.CheckProtection([]agreement.AbsenceEntry{
			{Type: agreement.AbsenceVacation, StartDate: day(2025, time.June, 1)},
		}, ref)
		assert.False(t, check.Blocked)
	})
}
