package freedom

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/IIVroomVroomII/lonberegner-sub001/ledger"
)

// ErrNonPositiveAmount rejects zero or negative deposits/withdrawals.
var ErrNonPositiveAmount = errors.New("amount must be positive")

// =============================================================================
// FREEDOM ACCOUNT - Savings ledger, kroner
// =============================================================================
// The freedom account is funded by the special allowance and drawn down
// for paid days off. Like the time bank it is an append-only ledger of
// signed entries; the yearly-deposit counter is derived from deposit
// entries in the calendar year rather than stored.

// Account is a view over one employee's freedom account.
type Account struct {
	ledger     *ledger.Ledger
	employeeID string
}

func NewAccount(l *ledger.Ledger, employeeID string) *Account {
	return &Account{ledger: l, employeeID: employeeID}
}

func (a *Account) AccountID() string {
	return "frihedskonto:" + a.employeeID
}

// Deposit pays the special allowance amount into the account.
func (a *Account) Deposit(ctx context.Context, amount decimal.Decimal, at time.Time, reason string) error {
	if !amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	return a.ledger.Append(ctx, ledger.Entry{
		AccountID:   a.AccountID(),
		Kind:        ledger.KindDeposit,
		Delta:       ledger.Amount{Value: amount, Unit: ledger.UnitKroner},
		EffectiveAt: at,
		Reason:      reason,
	})
}

// Withdraw draws down the account for a paid day off. A request above
// the balance fails with an InsufficientBalanceError and mutates
// nothing, so a retried failure is idempotent.
func (a *Account) Withdraw(ctx context.Context, amount decimal.Decimal, at time.Time, reason string) error {
	if !amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	balance, err := a.Balance(ctx)
	if err != nil {
		return err
	}
	if amount.GreaterThan(balance) {
		return &ledger.InsufficientBalanceError{
			AccountID: a.AccountID(),
			Available: ledger.Amount{Value: balance, Unit: ledger.UnitKroner},
			Requested: ledger.Amount{Value: amount, Unit: ledger.UnitKroner},
		}
	}
	return a.ledger.Append(ctx, ledger.Entry{
		AccountID:   a.AccountID(),
		Kind:        ledger.KindWithdrawal,
		Delta:       ledger.Amount{Value: amount.Neg(), Unit: ledger.UnitKroner},
		EffectiveAt: at,
		Reason:      reason,
	})
}

// Balance is the running balance in kroner.
func (a *Account) Balance(ctx context.Context) (decimal.Decimal, error) {
	amount, err := a.ledger.Balance(ctx, a.AccountID(), ledger.UnitKroner)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Value, nil
}

// YearlyDeposits sums deposit entries in the calendar year. Used to
// estimate how many paid days the year's savings convert to.
func (a *Account) YearlyDeposits(ctx context.Context, year int) (decimal.Decimal, error) {
	entries, err := a.ledger.Entries(ctx, a.AccountID())
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, e := range entries {
		if e.Kind == ledger.KindDeposit && e.EffectiveAt.Year() == year {
			total = total.Add(e.Delta.Value)
		}
	}
	return total, nil
}

// EstimatedDays converts the year's deposits to whole days at the given
// daily rate.
func (a *Account) EstimatedDays(ctx context.Context, year int, dailyRate decimal.Decimal) (int, error) {
	deposits, err := a.YearlyDeposits(ctx, year)
	if err != nil {
		return 0, err
	}
	if !dailyRate.IsPositive() {
		return 0, nil
	}
	return int(deposits.Div(dailyRate).IntPart()), nil
}

// YearEndPayout drains the full balance at year end. The yearly deposit
// counter resets by construction: it is derived per calendar year.
func (a *Account) YearEndPayout(ctx context.Context, at time.Time) (decimal.Decimal, error) {
	return a.drain(ctx, at, ledger.KindYearEndPayout, "year-end payout")
}

// TerminationPayout drains the full balance when employment ends.
func (a *Account) TerminationPayout(ctx context.Context, at time.Time) (decimal.Decimal, error) {
	return a.drain(ctx, at, ledger.KindTerminationPayout, "termination payout")
}

func (a *Account) drain(ctx context.Context, at time.Time, kind ledger.EntryKind, reason string) (decimal.Decimal, error) {
	balance, err := a.Balance(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	if balance.IsZero() {
		return decimal.Zero, nil
	}
	err = a.ledger.Append(ctx, ledger.Entry{
		AccountID:   a.AccountID(),
		Kind:        kind,
		Delta:       ledger.Amount{Value: balance.Neg(), Unit: ledger.UnitKroner},
		EffectiveAt: at,
		Reason:      reason,
	})
	if err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}
