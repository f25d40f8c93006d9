/*
Package ledger provides the signed-entry ledger behind the engine's two
running balances: the time bank (hours) and the freedom account (kroner).

PURPOSE:
  Both balances are modeled as an append-only log of signed entries plus
  a derived balance - never as a single mutable field. Recomputation and
  auditing are always possible: "why is the balance X?" is answered by
  reading the entries.

CRITICAL INVARIANTS:
  1. AMOUNTS ARE IMMUTABLE: An entry's amount is never edited
  2. CORRECTIONS ARE ENTRIES: Mistakes are offset by new signed entries
  3. STATUS IS THE ONLY MUTABLE FIELD: Expiry transitions an entry to
     EXPIRED; it is never deleted
  4. IDEMPOTENT: Same idempotency key = same entry, no duplicates

CONCURRENCY:
  The ledger assumes it is invoked with a consistent, already-fetched
  account. Concurrent mutation of the same account must be serialized by
  the caller at the persistence boundary (transaction or per-employee
  lock); the ledger does not detect concurrent modification itself.

SEE ALSO:
  - store.go: Persistence interface and entry statuses
  - store/memory.go: In-memory store for tests
  - store/sqlite (module root): SQLite-backed store
*/
package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// AMOUNT - Signed quantity with a unit
// =============================================================================

type Unit string

const (
	UnitHours  Unit = "hours"
	UnitKroner Unit = "kroner"
)

// Amount is a signed decimal quantity with a unit. Time-bank accounts
// hold hours, freedom accounts hold kroner; the ledger itself does not
// care which.
type Amount struct {
	Value decimal.Decimal
	Unit  Unit
}

func NewAmount(value float64, unit Unit) Amount {
	return Amount{Value: decimal.NewFromFloat(value), Unit: unit}
}

func ZeroAmount(unit Unit) Amount {
	return Amount{Value: decimal.Zero, Unit: unit}
}

func (a Amount) Add(b Amount) Amount       { return Amount{Value: a.Value.Add(b.Value), Unit: a.Unit} }
func (a Amount) Neg() Amount               { return Amount{Value: a.Value.Neg(), Unit: a.Unit} }
func (a Amount) IsZero() bool              { return a.Value.IsZero() }
func (a Amount) IsPositive() bool          { return a.Value.IsPositive() }
func (a Amount) IsNegative() bool          { return a.Value.IsNegative() }
func (a Amount) LessThan(b Amount) bool    { return a.Value.LessThan(b.Value) }
func (a Amount) GreaterThan(b Amount) bool { return a.Value.GreaterThan(b.Value) }

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrDuplicateIdempotencyKey is returned when an entry with the same
	// idempotency key already exists. Expected behavior for retries.
	ErrDuplicateIdempotencyKey = errors.New("duplicate idempotency key")

	// ErrInsufficientBalance is returned when a withdrawal exceeds the
	// current balance. The balance is not mutated.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrEntryNotFound is returned when a status transition references an
	// unknown entry.
	ErrEntryNotFound = errors.New("ledger entry not found")
)

// InsufficientBalanceError carries the numbers a user needs to see.
type InsufficientBalanceError struct {
	AccountID string
	Available Amount
	Requested Amount
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance on %s: available %v %s, requested %v %s",
		e.AccountID, e.Available.Value, e.Available.Unit, e.Requested.Value, e.Requested.Unit)
}

func (e *InsufficientBalanceError) Unwrap() error {
	return ErrInsufficientBalance
}

// =============================================================================
// LEDGER
// =============================================================================

// Ledger wraps a Store with idempotency checking and balance derivation.
type Ledger struct {
	store Store
}

func New(store Store) *Ledger {
	return &Ledger{store: store}
}

// Append records an entry. A missing ID is filled with a UUID; an
// existing idempotency key makes the append a no-op error.
func (l *Ledger) Append(ctx context.Context, e Entry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Status == "" {
		e.Status = StatusActive
	}
	if e.IdempotencyKey != "" {
		exists, err := l.store.Exists(ctx, e.IdempotencyKey)
		if err != nil {
			return err
		}
		if exists {
			return ErrDuplicateIdempotencyKey
		}
	}
	return l.store.Append(ctx, e)
}

// Entries returns all entries for an account, chronologically.
func (l *Ledger) Entries(ctx context.Context, accountID string) ([]Entry, error) {
	return l.store.Load(ctx, accountID)
}

// Balance derives the account balance as the sum of ACTIVE signed
// entries. Expired and paid-out entries do not count.
func (l *Ledger) Balance(ctx context.Context, accountID string, unit Unit) (Amount, error) {
	entries, err := l.store.Load(ctx, accountID)
	if err != nil {
		return Amount{}, err
	}
	balance := ZeroAmount(unit)
	for _, e := range entries {
		if e.Status != StatusActive {
			continue
		}
		balance = balance.Add(e.Delta)
	}
	return balance, nil
}

// Transition moves an entry to a new status. The amount is untouched.
func (l *Ledger) Transition(ctx context.Context, entryID string, status EntryStatus) error {
	return l.store.UpdateStatus(ctx, entryID, status)
}
