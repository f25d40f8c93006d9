/*
Package sqlite provides a SQLite-backed ledger.Store.

PURPOSE:
  Persists the signed-entry ledgers (time bank, freedom account). In
  production the same patterns apply to PostgreSQL - only minor SQL
  dialect differences.

AMOUNT IMMUTABILITY:
  The only UPDATE the store issues touches the status column. Entry
  amounts are write-once; corrections are offsetting entries appended
  by the ledger layer.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging): multiple readers
  don't block, single writer at a time, better crash recovery.

CONCURRENCY:
  A sync.RWMutex serializes access. Concurrent mutation of the same
  account is further serialized by callers per the engine's contract.

USAGE:
  store, err := sqlite.New("./data/lonberegner.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  l := ledger.New(store)

SEE ALSO:
  - ledger/store.go: Interface definition
  - ledger/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/IIVroomVroomII/lonberegner-sub001/ledger"
)

// Store implements ledger.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	-- Signed-entry ledger (amounts are write-once; only status mutates)
	CREATE TABLE IF NOT EXISTS ledger_entries (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		delta_value TEXT NOT NULL,
		delta_unit TEXT NOT NULL,
		status TEXT NOT NULL,
		effective_at TEXT NOT NULL,
		reason TEXT,
		idempotency_key TEXT UNIQUE,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_entries_account
		ON ledger_entries(account_id, effective_at);
	CREATE INDEX IF NOT EXISTS idx_entries_idempotency
		ON ledger_entries(idempotency_key) WHERE idempotency_key IS NOT NULL;
	CREATE INDEX IF NOT EXISTS idx_entries_status
		ON ledger_entries(account_id, status);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// ledger.Store
// =============================================================================

func (s *Store) Append(ctx context.Context, e ledger.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idem := sql.NullString{String: e.IdempotencyKey, Valid: e.IdempotencyKey != ""}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ledger_entries
			(id, account_id, kind, delta_value, delta_unit, status, effective_at, reason, idempotency_key, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.AccountID, string(e.Kind),
		e.Delta.Value.String(), string(e.Delta.Unit),
		string(e.Status), e.EffectiveAt.UTC().Format(time.RFC3339),
		e.Reason, idem, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to append entry: %w", err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context, accountID string) ([]ledger.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, account_id, kind, delta_value, delta_unit, status, effective_at, reason, idempotency_key
		FROM ledger_entries
		WHERE account_id = ?
		ORDER BY effective_at, created_at`, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}
	defer rows.Close()

	var entries []ledger.Entry
	for rows.Next() {
		var (
			e           ledger.Entry
			kind        string
			deltaValue  string
			deltaUnit   string
			status      string
			effectiveAt string
			reason      sql.NullString
			idem        sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.AccountID, &kind, &deltaValue, &deltaUnit, &status, &effectiveAt, &reason, &idem); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		value, err := decimal.NewFromString(deltaValue)
		if err != nil {
			return nil, fmt.Errorf("corrupt amount %q on entry %s: %w", deltaValue, e.ID, err)
		}
		at, err := time.Parse(time.RFC3339, effectiveAt)
		if err != nil {
			return nil, fmt.Errorf("corrupt timestamp %q on entry %s: %w", effectiveAt, e.ID, err)
		}
		e.Kind = ledger.EntryKind(kind)
		e.Delta = ledger.Amount{Value: value, Unit: ledger.Unit(deltaUnit)}
		e.Status = ledger.EntryStatus(status)
		e.EffectiveAt = at
		e.Reason = reason.String
		e.IdempotencyKey = idem.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) UpdateStatus(ctx context.Context, entryID string, status ledger.EntryStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`UPDATE ledger_entries SET status = ? WHERE id = ?`, string(status), entryID)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ledger.ErrEntryNotFound
	}
	return nil
}

func (s *Store) Exists(ctx context.Context, idempotencyKey string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM ledger_entries WHERE idempotency_key = ?`, idempotencyKey).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ ledger.Store = (*Store)(nil)
