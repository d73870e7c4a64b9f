package ledger

import (
	"context"
	"sync"
)

// Memory keeps the ledger in process memory. State is lost on restart, so it
// is meant for tests and local development.
//
// Load and Save each take the lock on their own; a Service in BestEffort
// mode over Memory shows the same lost-update window as the file store.
type Memory struct {
	mu     sync.RWMutex
	ledger *Ledger

	// failErr, when set, is returned from every operation.
	failErr error
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// Load returns a copy of the record, initializing it on first use.
func (m *Memory) Load(_ context.Context) (*Ledger, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failErr != nil {
		return nil, m.failErr
	}
	if m.ledger == nil {
		m.ledger = newLedger()
	}
	return m.ledger.Clone(), nil
}

// Save replaces the record with a copy of l.
func (m *Memory) Save(_ context.Context, l *Ledger) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failErr != nil {
		return m.failErr
	}
	m.ledger = l.Clone()
	return nil
}

// Reset sets the record back to the initial empty state.
func (m *Memory) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failErr != nil {
		return m.failErr
	}
	m.ledger = newLedger()
	return nil
}

// Close is a no-op.
func (m *Memory) Close() error {
	return nil
}

// FailWith makes every subsequent operation return err. Pass nil to recover.
func (m *Memory) FailWith(err error) {
	m.mu.Lock()
	m.failErr = err
	m.mu.Unlock()
}
