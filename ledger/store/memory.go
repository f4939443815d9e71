// Package store provides in-memory implementations of the ledger
// repository interfaces, used by tests and the dev server.
package store

import (
	"context"
	"sync"

	"github.com/rentfold/ledger-engine/ledger"
)

// =============================================================================
// MEMORY STORE - load-all/save-all snapshots guarded by a mutex
// =============================================================================

// Memory implements ledger.PaymentStore and ledger.ContractStore.
type Memory struct {
	mu        sync.RWMutex
	payments  []ledger.Payment
	contracts []ledger.Contract
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) LoadAllPayments(_ context.Context) ([]ledger.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]ledger.Payment, len(m.payments))
	copy(out, m.payments)
	return out, nil
}

func (m *Memory) SaveAllPayments(_ context.Context, payments []ledger.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments = make([]ledger.Payment, len(payments))
	copy(m.payments, payments)
	return nil
}

func (m *Memory) LoadAllContracts(_ context.Context) ([]ledger.Contract, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]ledger.Contract, len(m.contracts))
	copy(out, m.contracts)
	return out, nil
}

func (m *Memory) SaveAllContracts(_ context.Context, contracts []ledger.Contract) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contracts = make([]ledger.Contract, len(contracts))
	copy(m.contracts, contracts)
	return nil
}
