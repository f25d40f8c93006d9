package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IIVroomVroomII/lonberegner-sub001/ledger"
	"github.com/IIVroomVroomII/lonberegner-sub001/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func entry(account string, value float64, at time.Time) ledger.Entry {
	return ledger.Entry{
		ID:          uuid.NewString(),
		AccountID:   account,
		Kind:        ledger.KindAccrual,
		Delta:       ledger.NewAmount(value, ledger.UnitHours),
		Status:      ledger.StatusActive,
		EffectiveAt: at,
		Reason:      "test",
	}
}

func day(d int) time.Time {
	return time.Date(2025, time.June, d, 0, 0, 0, 0, time.UTC)
}

func TestStore_AppendAndLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	e := entry("acct-1", 4.5, day(3))
	e.IdempotencyKey = "key-1"
	require.NoError(t, s.Append(ctx, e))

	entries, err := s.Load(ctx, "acct-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)

	got := entries[0]
	assert.Equal(t, e.ID, got.ID)
	assert.Equal(t, ledger.KindAccrual, got.Kind)
	assert.True(t, got.Delta.Value.Equal(e.Delta.Value))
	assert.Equal(t, ledger.UnitHours, got.Delta.Unit)
	assert.Equal(t, ledger.StatusActive, got.Status)
	assert.True(t, got.EffectiveAt.Equal(day(3)))
	assert.Equal(t, "key-1", got.IdempotencyKey)
}

func TestStore_LoadOrdersByEffectiveAt(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Append(ctx, entry("acct-1", 1, day(20))))
	require.NoError(t, s.Append(ctx, entry("acct-1", 2, day(5))))
	require.NoError(t, s.Append(ctx, entry("acct-2", 3, day(1))))

	entries, err := s.Load(ctx, "acct-1")
	require.NoError(t, err)
	require.Len(t, entries, 2, "accounts are isolated")
	assert.True(t, entries[0].EffectiveAt.Before(entries[1].EffectiveAt))
}

func TestStore_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	e := entry("acct-1", 4, day(3))
	require.NoError(t, s.Append(ctx, e))

	require.NoError(t, s.UpdateStatus(ctx, e.ID, ledger.StatusExpired))

	entries, err := s.Load(ctx, "acct-1")
	require.NoError(t, err)
	assert.Equal(t, ledger.StatusExpired, entries[0].Status)
	assert.True(t, entries[0].Delta.Value.Equal(e.Delta.Value), "the amount never changes")

	t.Run("unknown entry", func(t *testing.T) {
		err := s.UpdateStatus(ctx, "missing", ledger.StatusExpired)
		assert.ErrorIs(t, err, ledger.ErrEntryNotFound)
	})
}

func TestStore_Exists(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	e := entry("acct-1", 4, day(3))
	e.IdempotencyKey = "payroll-2025-06"
	require.NoError(t, s.Append(ctx, e))

	exists, err := s.Exists(ctx, "payroll-2025-06")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = s.Exists(ctx, "payroll-2025-07")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestStore_WorksBehindLedger(t *testing.T) {
	// The sqlite store must be a drop-in behind the ledger facade.
	ctx := context.Background()
	l := ledger.New(newTestStore(t))

	require.NoError(t, l.Append(ctx, ledger.Entry{
		AccountID:   "acct-1",
		Kind:        ledger.KindAccrual,
		Delta:       ledger.NewAmount(6, ledger.UnitHours),
		EffectiveAt: day(3),
	}))
	require.NoError(t, l.Append(ctx, ledger.Entry{
		AccountID:   "acct-1",
		Kind:        ledger.KindTimeOff,
		Delta:       ledger.NewAmount(-2, ledger.UnitHours),
		EffectiveAt: day(10),
	}))

	balance, err := l.Balance(ctx, "acct-1", ledger.UnitHours)
	require.NoError(t, err)
	assert.True(t, balance.Value.Equal(ledger.NewAmount(4, ledger.UnitHours).Value))
}
