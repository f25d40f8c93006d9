package worktime

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/IIVroomVroomII/lonberegner-sub001/agreement"
	"github.com/IIVroomVroomII/lonberegner-sub001/ledger"
)

// =============================================================================
// TIME BANK - Saved hours, ledger-backed
// =============================================================================
// Hourly workers may bank hours and draw them as paid time off. The
// balance is never stored: it is the sum of active signed entries.
// Banked hours expire six months after they were saved; only the part
// not already drawn as time off expires, and the accrual entry itself
// stays in the ledger.

const (
	// ExpiryMonths is how long a banked hour stays usable.
	ExpiryMonths = 6

	// expiryWarningDays triggers a soft warning this many days before an
	// accrual would expire.
	expiryWarningDays = 30
)

var (
	// ErrNothingToPayOut is returned by TerminationPayout on an empty
	// or negative balance.
	ErrNothingToPayOut = errors.New("time bank has no positive balance to pay out")

	// ErrNonPositiveHours rejects zero or negative hour requests.
	ErrNonPositiveHours = errors.New("hours must be positive")
)

// TimeBank is a view over one employee's banked hours.
type TimeBank struct {
	ledger     *ledger.Ledger
	employeeID string
}

func NewTimeBank(l *ledger.Ledger, employeeID string) *TimeBank {
	return &TimeBank{ledger: l, employeeID: employeeID}
}

// AccountID namespaces time-bank entries away from freedom-account
// entries for the same employee.
func (b *TimeBank) AccountID() string {
	return "timebank:" + b.employeeID
}

// Add banks hours at effectiveAt.
func (b *TimeBank) Add(ctx context.Context, hours decimal.Decimal, effectiveAt time.Time, reason string) error {
	if !hours.IsPositive() {
		return ErrNonPositiveHours
	}
	return b.ledger.Append(ctx, ledger.Entry{
		AccountID:   b.AccountID(),
		Kind:        ledger.KindAccrual,
		Delta:       ledger.Amount{Value: hours, Unit: ledger.UnitHours},
		EffectiveAt: effectiveAt,
		Reason:      reason,
	})
}

// TakeTimeOff draws hours from the bank. Fails with an
// InsufficientBalanceError when the request exceeds the balance; the
// balance is not touched on failure.
func (b *TimeBank) TakeTimeOff(ctx context.Context, hours decimal.Decimal, at time.Time) error {
	if !hours.IsPositive() {
		return ErrNonPositiveHours
	}
	balance, err := b.Balance(ctx)
	if err != nil {
		return err
	}
	if hours.GreaterThan(balance) {
		return &ledger.InsufficientBalanceError{
			AccountID: b.AccountID(),
			Available: ledger.Amount{Value: balance, Unit: ledger.UnitHours},
			Requested: ledger.Amount{Value: hours, Unit: ledger.UnitHours},
		}
	}
	return b.ledger.Append(ctx, ledger.Entry{
		AccountID:   b.AccountID(),
		Kind:        ledger.KindTimeOff,
		Delta:       ledger.Amount{Value: hours.Neg(), Unit: ledger.UnitHours},
		EffectiveAt: at,
		Reason:      "time off from bank",
	})
}

// Balance is the sum of active signed entries, in hours.
func (b *TimeBank) Balance(ctx context.Context) (decimal.Decimal, error) {
	amount, err := b.ledger.Balance(ctx, b.AccountID(), ledger.UnitHours)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Value, nil
}

// ExpireOlderThan retires accruals older than six months before ref and
// returns how many were expired. Time off is attributed to accruals
// oldest-first, so only the unspent part of an accrual can expire: an
// untouched accrual transitions to EXPIRED whole, while a partially
// consumed one keeps its status and gets an offsetting expiry entry for
// the remainder. The balance never dips below zero and entries are
// never deleted.
func (b *TimeBank) ExpireOlderThan(ctx context.Context, ref time.Time) (int, error) {
	cutoff := ref.AddDate(0, -ExpiryMonths, 0)
	entries, err := b.ledger.Entries(ctx, b.AccountID())
	if err != nil {
		return 0, err
	}

	type openAccrual struct {
		entry     ledger.Entry
		remaining decimal.Decimal
	}
	var open []*openAccrual
	for _, e := range entries {
		if e.Status != ledger.StatusActive {
			continue
		}
		if e.Delta.Value.IsPositive() {
			open = append(open, &openAccrual{entry: e, remaining: e.Delta.Value})
			continue
		}
		drain := e.Delta.Value.Neg()
		for _, a := range open {
			if !drain.IsPositive() {
				break
			}
			take := decimal.Min(a.remaining, drain)
			a.remaining = a.remaining.Sub(take)
			drain = drain.Sub(take)
		}
	}

	expired := 0
	for _, a := range open {
		if a.entry.Kind != ledger.KindAccrual || !a.entry.EffectiveAt.Before(cutoff) {
			continue
		}
		if !a.remaining.IsPositive() {
			continue
		}
		if a.remaining.Equal(a.entry.Delta.Value) {
			if err := b.ledger.Transition(ctx, a.entry.ID, ledger.StatusExpired); err != nil {
				return expired, err
			}
		} else {
			err := b.ledger.Append(ctx, ledger.Entry{
				AccountID:   b.AccountID(),
				Kind:        ledger.KindExpiry,
				Delta:       ledger.Amount{Value: a.remaining.Neg(), Unit: ledger.UnitHours},
				EffectiveAt: ref,
				Reason:      "expiry of unspent hours saved on " + a.entry.EffectiveAt.Format("2006-01-02"),
			})
			if err != nil {
				return expired, err
			}
		}
		expired++
	}
	return expired, nil
}

// ApproachingExpiry warns about active accruals that will expire within
// 30 days of ref.
func (b *TimeBank) ApproachingExpiry(ctx context.Context, ref time.Time) ([]agreement.Warning, error) {
	entries, err := b.ledger.Entries(ctx, b.AccountID())
	if err != nil {
		return nil, err
	}
	var warnings []agreement.Warning
	for _, e := range entries {
		if e.Kind != ledger.KindAccrual || e.Status != ledger.StatusActive {
			continue
		}
		expiresAt := e.EffectiveAt.AddDate(0, ExpiryMonths, 0)
		if expiresAt.After(ref) && expiresAt.Before(ref.AddDate(0, 0, expiryWarningDays)) {
			warnings = append(warnings, agreement.Warnf("timebank_expiry",
				"%v banked hours from %s expire on %s",
				e.Delta.Value, e.EffectiveAt.Format("2006-01-02"), expiresAt.Format("2006-01-02")))
		}
	}
	return warnings, nil
}

// TerminationPayout settles the remaining balance at the given hourly
// rate. Fails when the balance is zero or negative; on success the
// balance is drained by an offsetting payout entry and the amount owed
// is returned.
func (b *TimeBank) TerminationPayout(ctx context.Context, rate decimal.Decimal, at time.Time) (decimal.Decimal, error) {
	balance, err := b.Balance(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	if !balance.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: balance is %s hours", ErrNothingToPayOut, balance.StringFixed(2))
	}
	err = b.ledger.Append(ctx, ledger.Entry{
		AccountID:   b.AccountID(),
		Kind:        ledger.KindTerminationPayout,
		Delta:       ledger.Amount{Value: balance.Neg(), Unit: ledger.UnitHours},
		EffectiveAt: at,
		Reason:      "termination payout",
	})
	if err != nil {
		return decimal.Zero, err
	}
	return balance.Mul(rate), nil
}
