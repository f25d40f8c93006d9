package ledger

import (
	"context"
	"time"
)

// =============================================================================
// ENTRY - One signed record on an account
// =============================================================================

type EntryStatus string

const (
	// StatusActive entries count toward the balance.
	StatusActive EntryStatus = "active"
	// StatusExpired entries have aged out (time-bank 6-month rule).
	// They remain in the ledger for auditability.
	StatusExpired EntryStatus = "expired"
	// StatusPaidOut entries were settled by a termination or year-end
	// payout. Like expired entries, they are retained.
	StatusPaidOut EntryStatus = "paid_out"
)

type EntryKind string

const (
	KindAccrual           EntryKind = "accrual"            // time bank: hours saved
	KindTimeOff           EntryKind = "time_off"           // time bank: hours taken
	KindExpiry            EntryKind = "expiry"             // time bank: unspent hours aged out
	KindDeposit           EntryKind = "deposit"            // freedom account: pay-in
	KindWithdrawal        EntryKind = "withdrawal"         // freedom account: draw-down
	KindYearEndPayout     EntryKind = "year_end_payout"    // freedom account drain at year end
	KindTerminationPayout EntryKind = "termination_payout" // drain on termination
	KindAdjustment        EntryKind = "adjustment"         // manual correction
)

// Entry is one signed record. Positive Delta grows the balance,
// negative shrinks it.
type Entry struct {
	ID        string
	AccountID string
	Kind      EntryKind
	Delta     Amount
	Status    EntryStatus

	EffectiveAt time.Time
	Reason      string

	// IdempotencyKey deduplicates retried writes. Optional.
	IdempotencyKey string
}

// =============================================================================
// STORE - Persistence interface
// =============================================================================

// Store persists ledger entries. Amounts are write-once: the only
// mutation a store supports is the status transition.
type Store interface {
	// Append adds an entry. The only way balance changes.
	Append(ctx context.Context, e Entry) error

	// Load returns all entries for an account, ordered by EffectiveAt.
	Load(ctx context.Context, accountID string) ([]Entry, error)

	// UpdateStatus transitions an entry's status (active -> expired,
	// active -> paid_out). Returns ErrEntryNotFound for unknown IDs.
	UpdateStatus(ctx context.Context, entryID string, status EntryStatus) error

	// Exists reports whether an idempotency key has been used.
	Exists(ctx context.Context, idempotencyKey string) (bool, error)
}
