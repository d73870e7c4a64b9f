// Package ledger keeps the durable count of distinct site visitors.
//
// A Ledger is a single record holding the total and the set of visitor
// identities already counted. Every RecordVisit re-reads the record from its
// Store, so nothing is cached between requests.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
)

// UnknownVisitor is the identity shared by every request that carries no
// address header.
const UnknownVisitor = "unknown"

var (
	// ErrCorrupt is returned when the persisted record cannot be decoded or
	// its count disagrees with its visitor list.
	ErrCorrupt = errors.New("ledger: corrupt record")

	// ErrUnknownBackend is returned by Open for an unsupported backend name.
	ErrUnknownBackend = errors.New("ledger: unknown backend")
)

// Ledger is the persisted record. Count always equals len(Visitors) after a
// successful write.
type Ledger struct {
	Count    int64    `json:"count"`
	Visitors []string `json:"visitors"`
}

// Result is what a caller of RecordVisit gets back.
type Result struct {
	Count        int64 `json:"count"`
	IsNewVisitor bool  `json:"isNewVisitor"`
}

func newLedger() *Ledger {
	return &Ledger{Count: 0, Visitors: []string{}}
}

// Has reports whether identity was already counted.
func (l *Ledger) Has(identity string) bool {
	return slices.Contains(l.Visitors, identity)
}

// Add appends identity and bumps the count. It returns false and leaves the
// record untouched when identity is already present.
func (l *Ledger) Add(identity string) bool {
	if l.Has(identity) {
		return false
	}
	l.Visitors = append(l.Visitors, identity)
	l.Count++
	return true
}

// Validate checks the count invariant and that no identity repeats.
func (l *Ledger) Validate() error {
	if l.Count < 0 {
		return fmt.Errorf("%w: negative count %d", ErrCorrupt, l.Count)
	}
	if int64(len(l.Visitors)) != l.Count {
		return fmt.Errorf("%w: count %d but %d visitors", ErrCorrupt, l.Count, len(l.Visitors))
	}
	seen := make(map[string]struct{}, len(l.Visitors))
	for _, v := range l.Visitors {
		if _, ok := seen[v]; ok {
			return fmt.Errorf("%w: duplicate visitor %q", ErrCorrupt, v)
		}
		seen[v] = struct{}{}
	}
	return nil
}

// Clone returns a deep copy.
func (l *Ledger) Clone() *Ledger {
	out := &Ledger{Count: l.Count, Visitors: make([]string, len(l.Visitors))}
	copy(out.Visitors, l.Visitors)
	return out
}

// Store persists a single Ledger record. Implementations must be safe for
// concurrent use, though they need not make a Load/Save pair atomic.
type Store interface {
	// Load returns the current record, creating and persisting the initial
	// empty record first when none exists.
	Load(ctx context.Context) (*Ledger, error)

	// Save overwrites the whole record.
	Save(ctx context.Context, l *Ledger) error

	// Reset overwrites the record with the initial empty state.
	Reset(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}

// AtomicRecorder is implemented by stores that can test membership, insert
// and count in one indivisible step. The Service prefers it over Load/Save.
type AtomicRecorder interface {
	RecordVisitor(ctx context.Context, identity string) (Result, error)
}

// WriteMode selects how the Service guards the read-modify-write sequence on
// stores that are not an AtomicRecorder.
type WriteMode string

const (
	// BestEffort performs Load/Save with no locking. Two concurrent new
	// visitors may be counted once.
	BestEffort WriteMode = "best-effort"

	// Serialized holds an in-process mutex across Load/Save. Correct for a
	// single instance only.
	Serialized WriteMode = "serialized"
)

// Service records visits against a Store.
type Service struct {
	store Store
	mode  WriteMode
	mu    sync.Mutex
}

// NewService returns a Service over store. An empty mode means Serialized.
func NewService(store Store, mode WriteMode) *Service {
	if mode == "" {
		mode = Serialized
	}
	return &Service{store: store, mode: mode}
}

// Mode returns the configured write mode.
func (s *Service) Mode() WriteMode {
	return s.mode
}

// RecordVisit counts identity if it has not been seen before and returns the
// current total. A durable write happens only for a new visitor.
func (s *Service) RecordVisit(ctx context.Context, identity string) (Result, error) {
	if identity == "" {
		identity = UnknownVisitor
	}

	if rec, ok := s.store.(AtomicRecorder); ok {
		res, err := rec.RecordVisitor(ctx, identity)
		if err != nil {
			return Result{}, fmt.Errorf("record visitor: %w", err)
		}
		return res, nil
	}

	if s.mode == Serialized {
		s.mu.Lock()
		defer s.mu.Unlock()
	}

	l, err := s.store.Load(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load ledger: %w", err)
	}

	if !l.Add(identity) {
		return Result{Count: l.Count, IsNewVisitor: false}, nil
	}

	if err := s.store.Save(ctx, l); err != nil {
		return Result{}, fmt.Errorf("save ledger: %w", err)
	}
	return Result{Count: l.Count, IsNewVisitor: true}, nil
}

// Reset clears the ledger back to its initial state regardless of content.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Reset(ctx); err != nil {
		return fmt.Errorf("reset ledger: %w", err)
	}
	return nil
}

// Snapshot returns a copy of the current record. In Serialized mode it holds
// the same lock as RecordVisit, since Load may write the initial record.
func (s *Service) Snapshot(ctx context.Context) (*Ledger, error) {
	if s.mode == Serialized {
		s.mu.Lock()
		defer s.mu.Unlock()
	}

	l, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	return l.Clone(), nil
}

// Close closes the underlying store.
func (s *Service) Close() error {
	return s.store.Close()
}
