// Package store provides ledger.Store implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/IIVroomVroomII/lonberegner-sub001/ledger"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu          sync.RWMutex
	entries     map[string][]ledger.Entry // accountID -> ordered entries
	byID        map[string]int            // entryID -> index lookup helper
	accounts    map[string]string         // entryID -> accountID
	idempotency map[string]bool
}

func NewMemory() *Memory {
	return &Memory{
		entries:     make(map[string][]ledger.Entry),
		byID:        make(map[string]int),
		accounts:    make(map[string]string),
		idempotency: make(map[string]bool),
	}
}

// Append adds a single entry in EffectiveAt order.
func (m *Memory) Append(_ context.Context, e ledger.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := m.entries[e.AccountID]
	i := sort.Search(len(list), func(i int) bool {
		return list[i].EffectiveAt.After(e.EffectiveAt)
	})
	list = append(list, ledger.Entry{})
	copy(list[i+1:], list[i:])
	list[i] = e
	m.entries[e.AccountID] = list

	// Indices shift on insert; rebuild the lookup for this account.
	for idx, entry := range list {
		m.byID[entry.ID] = idx
		m.accounts[entry.ID] = e.AccountID
	}

	if e.IdempotencyKey != "" {
		m.idempotency[e.IdempotencyKey] = true
	}
	return nil
}

func (m *Memory) Load(_ context.Context, accountID string) ([]ledger.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]ledger.Entry, len(m.entries[accountID]))
	copy(result, m.entries[accountID])
	return result, nil
}

func (m *Memory) UpdateStatus(_ context.Context, entryID string, status ledger.EntryStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	accountID, ok := m.accounts[entryID]
	if !ok {
		return ledger.ErrEntryNotFound
	}
	idx := m.byID[entryID]
	m.entries[accountID][idx].Status = status
	return nil
}

func (m *Memory) Exists(_ context.Context, idempotencyKey string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.idempotency[idempotencyKey], nil
}

var _ ledger.Store = (*Memory)(nil)
