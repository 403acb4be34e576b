// Package memory provides the canonical in-memory implementation of the core
// persistence store. Durable drivers embed it and snapshot its state.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"chemcore/pkg/domain"

	"github.com/google/uuid"
)

// Compile-time contract assertion ensuring memory.Store adheres to the domain persistence interface.
var _ domain.PersistentStore = (*Store)(nil)

type (
	// ChemicalRecord aliases domain.ChemicalRecord for in-memory persistence operations.
	ChemicalRecord = domain.ChemicalRecord
	// Change aliases domain.Change captured in transactions.
	Change = domain.Change
	// Result aliases domain.Result summarizing rule evaluation.
	Result = domain.Result
	// RulesEngine aliases domain.RulesEngine used to evaluate rules.
	RulesEngine = domain.RulesEngine
	// Transaction aliases domain.Transaction representing a mutable unit of work.
	Transaction = domain.Transaction
	// TransactionView aliases domain.TransactionView providing read-only state.
	TransactionView = domain.TransactionView
)

// inventoryState holds the ordered record collection. Order is insertion
// order and is observable through every query, so the records live in a
// slice rather than a map.
type inventoryState struct {
	chemicals []ChemicalRecord
}

// Snapshot captures a point-in-time clone of the store state.
type Snapshot struct {
	Chemicals []ChemicalRecord `json:"chemicals"`
}

func (s inventoryState) clone() inventoryState {
	return inventoryState{chemicals: append([]ChemicalRecord(nil), s.chemicals...)}
}

// Store provides an in-memory transactional inventory store with synchronous
// change notification.
type Store struct {
	mu        sync.RWMutex
	state     inventoryState
	engine    *RulesEngine
	nowFn     func() time.Time
	newIDFn   func() string
	subMu     sync.Mutex
	subs      map[int]domain.ChangeListener
	nextSubID int
}

// NewStore constructs an in-memory store backed by the provided rules engine.
// A nil engine disables rule evaluation.
func NewStore(engine *RulesEngine) *Store {
	if engine == nil {
		engine = domain.NewRulesEngine()
	}
	return &Store{
		engine:  engine,
		nowFn:   func() time.Time { return time.Now().UTC() },
		newIDFn: uuid.NewString,
		subs:    make(map[int]domain.ChangeListener),
	}
}

// NewSeededStore constructs a store preloaded with the demo inventory.
func NewSeededStore(engine *RulesEngine) *Store {
	store := NewStore(engine)
	now := store.nowFn()
	for _, record := range domain.SeedRecords() {
		record.CreatedAt = now
		record.UpdatedAt = now
		store.state.chemicals = append(store.state.chemicals, record)
	}
	return store
}

// RulesEngine exposes the engine evaluating transactional rules.
func (s *Store) RulesEngine() *RulesEngine { return s.engine }

// NowFunc exposes the clock used to stamp records.
func (s *Store) NowFunc() func() time.Time { return s.nowFn }

// SetNowFunc overrides the clock, primarily for tests.
func (s *Store) SetNowFunc(fn func() time.Time) {
	if fn != nil {
		s.nowFn = fn
	}
}

// ExportState clones the current store state for external persistence.
func (s *Store) ExportState() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Chemicals: append([]ChemicalRecord(nil), s.state.chemicals...)}
}

// ImportState replaces the store state with the provided snapshot.
func (s *Store) ImportState(snapshot Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = inventoryState{chemicals: append([]ChemicalRecord(nil), snapshot.Chemicals...)}
}

// Subscribe registers a change listener invoked synchronously after every
// committed transaction. The returned function removes the subscription and
// is safe to call more than once.
func (s *Store) Subscribe(listener domain.ChangeListener) func() {
	if listener == nil {
		return func() {}
	}
	s.subMu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = listener
	s.subMu.Unlock()
	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) notify(changes []Change) {
	s.subMu.Lock()
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	listeners := make([]domain.ChangeListener, 0, len(ids))
	for _, id := range ids {
		listeners = append(listeners, s.subs[id])
	}
	s.subMu.Unlock()
	for _, listener := range listeners {
		listener(append([]Change(nil), changes...))
	}
}

// transaction applies mutations to a cloned state until commit.
type transaction struct {
	store   *Store
	state   inventoryState
	changes []Change
	now     time.Time
}

var _ domain.Transaction = (*transaction)(nil)

// Snapshot exposes the transactional state to rules and callers.
func (tx *transaction) Snapshot() TransactionView {
	return view{state: &tx.state}
}

// AddChemical appends a record to the ordered inventory. Identifier
// uniqueness is not checked; an empty identifier is replaced with a
// generated UUID.
func (tx *transaction) AddChemical(record ChemicalRecord) (ChemicalRecord, error) {
	if record.ID == "" {
		record.ID = tx.store.newIDFn()
	}
	record.CreatedAt = tx.now
	record.UpdatedAt = tx.now
	tx.state.chemicals = append(tx.state.chemicals, record)
	tx.changes = append(tx.changes, Change{Entity: domain.EntityChemical, Action: domain.ActionCreate, After: record})
	return record, nil
}

// RemoveChemical deletes every record whose identifier matches id and returns
// the number removed. A miss removes nothing and is not an error.
func (tx *transaction) RemoveChemical(id string) int {
	kept := tx.state.chemicals[:0]
	removed := 0
	for _, record := range tx.state.chemicals {
		if record.ID == id {
			removed++
			tx.changes = append(tx.changes, Change{Entity: domain.EntityChemical, Action: domain.ActionDelete, Before: record})
			continue
		}
		kept = append(kept, record)
	}
	tx.state.chemicals = kept
	return removed
}

// RunInTransaction executes fn within a transactional copy of the store state.
// Registered rules evaluate against the mutated snapshot; blocking violations
// abort the commit with RuleViolationError. Listeners observe the committed
// change set after the lock is released.
func (s *Store) RunInTransaction(ctx context.Context, fn func(Transaction) error) (Result, error) {
	s.mu.Lock()
	tx := &transaction{store: s, state: s.state.clone(), now: s.nowFn()}

	if err := fn(tx); err != nil {
		s.mu.Unlock()
		return Result{}, err
	}

	var result Result
	if s.engine != nil {
		res, err := s.engine.Evaluate(ctx, tx.Snapshot(), tx.changes)
		if err != nil {
			s.mu.Unlock()
			return Result{}, err
		}
		result = res
		if res.HasBlocking() {
			s.mu.Unlock()
			return res, domain.RuleViolationError{Result: res}
		}
	}

	s.state = tx.state
	changes := tx.changes
	s.mu.Unlock()

	s.notify(changes)
	return result, nil
}

// View executes fn against a read-only snapshot of the store state.
func (s *Store) View(_ context.Context, fn func(TransactionView) error) error {
	s.mu.RLock()
	snapshot := s.state.clone()
	s.mu.RUnlock()
	return fn(view{state: &snapshot})
}

// view implements the read-only query surface over an inventory state.
type view struct {
	state *inventoryState
}

var _ domain.TransactionView = view{}

// ListChemicals returns all records in insertion order.
func (v view) ListChemicals() []ChemicalRecord {
	return append([]ChemicalRecord(nil), v.state.chemicals...)
}

// FindChemical returns the first record with the given identifier.
func (v view) FindChemical(id string) (ChemicalRecord, bool) {
	for _, record := range v.state.chemicals {
		if record.ID == id {
			return record, true
		}
	}
	return ChemicalRecord{}, false
}

// SearchChemicals returns the ordered subsequence matching query as a
// case-insensitive substring of name, symbol, category, or identifier. An
// empty query returns the full list.
func (v view) SearchChemicals(query string) []ChemicalRecord {
	if query == "" {
		return v.ListChemicals()
	}
	needle := strings.ToLower(query)
	var out []ChemicalRecord
	for _, record := range v.state.chemicals {
		if strings.Contains(strings.ToLower(record.Name), needle) ||
			strings.Contains(strings.ToLower(record.Symbol), needle) ||
			strings.Contains(strings.ToLower(record.Category), needle) ||
			strings.Contains(strings.ToLower(record.ID), needle) {
			out = append(out, record)
		}
	}
	return out
}

// Categories returns the distinct category values sorted ascending.
func (v view) Categories() []string {
	seen := make(map[string]struct{}, len(v.state.chemicals))
	for _, record := range v.state.chemicals {
		seen[record.Category] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for category := range seen {
		out = append(out, category)
	}
	sort.Strings(out)
	return out
}

// FilterByCategory returns the ordered subsequence whose category matches
// exactly.
func (v view) FilterByCategory(category string) []ChemicalRecord {
	var out []ChemicalRecord
	for _, record := range v.state.chemicals {
		if record.Category == category {
			out = append(out, record)
		}
	}
	return out
}

// Committed-state read helpers -----------------------------------------------

func (s *Store) snapshotView() view {
	s.mu.RLock()
	snapshot := s.state.clone()
	s.mu.RUnlock()
	return view{state: &snapshot}
}

// GetChemical retrieves the first record with the given identifier from
// committed state.
func (s *Store) GetChemical(id string) (ChemicalRecord, bool) {
	return s.snapshotView().FindChemical(id)
}

// ListChemicals returns all committed records in insertion order.
func (s *Store) ListChemicals() []ChemicalRecord {
	return s.snapshotView().ListChemicals()
}

// SearchChemicals queries committed state.
func (s *Store) SearchChemicals(query string) []ChemicalRecord {
	return s.snapshotView().SearchChemicals(query)
}

// Categories enumerates committed category values.
func (s *Store) Categories() []string {
	return s.snapshotView().Categories()
}

// FilterByCategory filters committed state by exact category.
func (s *Store) FilterByCategory(category string) []ChemicalRecord {
	return s.snapshotView().FilterByCategory(category)
}
