package freedom_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IIVroomVroomII/lonberegner-sub001/agreement"
	"github.com/IIVroomVroomII/lonberegner-sub001/freedom"
	"github.com/IIVroomVroomII/lonberegner-sub001/ledger"
	"github.com/IIVroomVroomII/lonberegner-sub001/ledger/store"
)

func dec(s string) decimal.Decimal { return agreement.MustParseDecimal(s) }

func TestPercentFor_HourlyTrackIsFlat(t *testing.T) {
	for year := 2025; year <= 2028; year++ {
		rate, err := freedom.PercentFor(agreement.WorkTimeHourly, year, false)
		require.NoError(t, err)
		assert.Equal(t, freedom.TrackFreedomAccount, rate.Track)
		assert.True(t, rate.Percent.Equal(dec("6.75")), "year %d: got %s", year, rate.Percent)
	}
}

func TestPercentFor_AllowanceTrackRises(t *testing.T) {
	want := map[int]string{2025: "7.60", 2026: "7.80", 2027: "8.00", 2028: "8.20"}
	for year, pct := range want {
		rate, err := freedom.PercentFor(agreement.WorkTimeSalaried, year, false)
		require.NoError(t, err)
		assert.Equal(t, freedom.TrackAllowance, rate.Track)
		assert.True(t, rate.Percent.Equal(dec(pct)), "year %d: got %s", year, rate.Percent)
	}
}

func TestPercentFor_YearBounds(t *testing.T) {
	t.Run("before the first effective year fails", func(t *testing.T) {
		_, err := freedom.PercentFor(agreement.WorkTimeSalaried, 2024, false)
		assert.ErrorIs(t, err, freedom.ErrNoRateForYear)
	})

	t.Run("after the last effective year keeps the latest rate", func(t *testing.T) {
		rate, err := freedom.PercentFor(agreement.WorkTimeSalaried, 2031, false)
		require.NoError(t, err)
		assert.True(t, rate.Percent.Equal(dec("8.20")))
	})
}

func TestPercentFor_ConcurrentLookups(t *testing.T) {
	// Rate resolution is read-only; parallel payroll runs must not
	// observe each other.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for year := 2025; year <= 2030; year++ {
				rate, err := freedom.PercentFor(agreement.WorkTimeSalaried, year, false)
				assert.NoError(t, err)
				assert.False(t, rate.Percent.IsZero())
			}
		}()
	}
	wg.Wait()
}

func TestPercentFor_Tracks(t *testing.T) {
	tests := []struct {
		name    string
		wtt     agreement.WorkTimeType
		savings bool
		want    freedom.Track
	}{
		{"hourly", agreement.WorkTimeHourly, false, freedom.TrackFreedomAccount},
		{"substitute", agreement.WorkTimeSubstitute, false, freedom.TrackFreedomAccount},
		{"hourly ignores savings election", agreement.WorkTimeHourly, true, freedom.TrackFreedomAccount},
		{"salaried", agreement.WorkTimeSalaried, false, freedom.TrackAllowance},
		{"salaried with savings", agreement.WorkTimeSalaried, true, freedom.TrackSavings},
		{"shift work with savings", agreement.WorkTimeShiftWork, true, freedom.TrackSavings},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate, err := freedom.PercentFor(tt.wtt, 2025, tt.savings)
			require.NoError(t, err)
			assert.Equal(t, tt.want, rate.Track)
		})
	}
}

func TestCalculate(t *testing.T) {
	// 10000 kroner vacation-eligible pay for an hourly worker in 2025.
	a, err := freedom.Calculate(dec("10000"), agreement.WorkTimeHourly, 2025, false)
	require.NoError(t, err)
	assert.True(t, a.Amount.Equal(dec("675")), "got %s", a.Amount)
}

// -----------------------------------------------------------------------------
// Account
// -----------------------------------------------------------------------------

func newAccount() *freedom.Account {
	return freedom.NewAccount(ledger.New(store.NewMemory()), "emp-1")
}

func at(month time.Month, day int) time.Time {
	return time.Date(2025, month, day, 0, 0, 0, 0, time.UTC)
}

func TestAccount_DepositAndBalance(t *testing.T) {
	ctx := context.Background()
	acct := newAccount()

	require.NoError(t, acct.Deposit(ctx, dec("675"), at(time.January, 31), "special allowance"))
	require.NoError(t, acct.Deposit(ctx, dec("675"), at(time.February, 28), "special allowance"))

	balance, err := acct.Balance(ctx)
	require.NoError(t, err)
	assert.True(t, balance.Equal(dec("1350")))
}

func TestAccount_RejectsNonPositiveAmounts(t *testing.T) {
	ctx := context.Background()
	acct := newAccount()

	assert.ErrorIs(t, acct.Deposit(ctx, dec("0"), at(time.January, 31), "x"), freedom.ErrNonPositiveAmount)
	assert.ErrorIs(t, acct.Deposit(ctx, dec("-5"), at(time.January, 31), "x"), freedom.ErrNonPositiveAmount)
	assert.ErrorIs(t, acct.Withdraw(ctx, dec("0"), at(time.January, 31), "x"), freedom.ErrNonPositiveAmount)
}

func TestAccount_FailedWithdrawalMutatesNothing(t *testing.T) {
	ctx := context.Background()
	acct := newAccount()
	require.NoError(t, acct.Deposit(ctx, dec("500"), at(time.January, 31), "special allowance"))

	// WHEN: the same over-draw is attempted twice
	for i := 0; i < 2; i++ {
		err := acct.Withdraw(ctx, dec("800"), at(time.March, 1), "day off")
		require.Error(t, err)
		assert.ErrorIs(t, err, ledger.ErrInsufficientBalance)
	}

	// THEN: the balance never moved
	balance, err := acct.Balance(ctx)
	require.NoError(t, err)
	assert.True(t, balance.Equal(dec("500")))
}

func TestAccount_YearlyDepositsAreDerivedPerYear(t *testing.T) {
	ctx := context.Background()
	acct := newAccount()

	require.NoError(t, acct.Deposit(ctx, dec("600"), time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC), "allowance"))
	require.NoError(t, acct.Deposit(ctx, dec("675"), at(time.January, 31), "allowance"))
	require.NoError(t, acct.Deposit(ctx, dec("675"), at(time.June, 30), "allowance"))
	// Withdrawals do not reduce the deposit counter.
	require.NoError(t, acct.Withdraw(ctx, dec("400"), at(time.July, 1), "day off"))

	deposits, err := acct.YearlyDeposits(ctx, 2025)
	require.NoError(t, err)
	assert.True(t, deposits.Equal(dec("1350")), "got %s", deposits)

	prev, err := acct.YearlyDeposits(ctx, 2024)
	require.NoError(t, err)
	assert.True(t, prev.Equal(dec("600")))
}

func TestAccount_EstimatedDays(t *testing.T) {
	ctx := context.Background()
	acct := newAccount()
	require.NoError(t, acct.Deposit(ctx, dec("3500"), at(time.June, 30), "allowance"))

	days, err := acct.EstimatedDays(ctx, 2025, dec("1000"))
	require.NoError(t, err)
	assert.Equal(t, 3, days, "partial days round down")
}

func TestAccount_YearEndPayoutDrains(t *testing.T) {
	ctx := context.Background()
	acct := newAccount()
	require.NoError(t, acct.Deposit(ctx, dec("1350"), at(time.June, 30), "allowance"))

	paid, err := acct.YearEndPayout(ctx, at(time.December, 31))
	require.NoError(t, err)
	assert.True(t, paid.Equal(dec("1350")))

	balance, err := acct.Balance(ctx)
	require.NoError(t, err)
	assert.True(t, balance.IsZero())

	// An empty account pays zero without error.
	paid, err = acct.YearEndPayout(ctx, at(time.December, 31))
	require.NoError(t, err)
	assert.True(t, paid.IsZero())
}
