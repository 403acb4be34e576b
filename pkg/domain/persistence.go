package domain

import "context"

// Transaction exposes the domain operations that a persistence implementation
// must support within an atomic scope.
type Transaction interface {
	Snapshot() TransactionView
	// AddChemical appends a record to the ordered inventory. No identifier
	// uniqueness check is performed; a record with an empty ID is assigned a
	// generated one.
	AddChemical(ChemicalRecord) (ChemicalRecord, error)
	// RemoveChemical deletes every record whose identifier matches id and
	// returns the number removed. Removing a missing identifier is not an
	// error.
	RemoveChemical(id string) int
}

// TransactionView provides read-only access to snapshot data for rules and
// queries. Every method returns cloned values; mutating a returned slice never
// affects store state.
type TransactionView interface {
	// ListChemicals returns all records in insertion order.
	ListChemicals() []ChemicalRecord
	// FindChemical returns the first record with the given identifier.
	// Absence is an expected outcome, not an error.
	FindChemical(id string) (ChemicalRecord, bool)
	// SearchChemicals returns the ordered subsequence of records whose name,
	// symbol, category, or identifier contains query as a case-insensitive
	// substring. An empty query returns the full list.
	SearchChemicals(query string) []ChemicalRecord
	// Categories returns the distinct category values present, sorted
	// ascending.
	Categories() []string
	// FilterByCategory returns the ordered subsequence of records whose
	// category equals the argument exactly (case-sensitive).
	FilterByCategory(category string) []ChemicalRecord
}

// RuleView aliases the read-only snapshot interface used during rule evaluation.
type RuleView = TransactionView

// PersistentStore is a minimal abstraction over durable backends. It mirrors
// the subset of store capabilities used directly by higher layers.
type PersistentStore interface {
	RunInTransaction(ctx context.Context, fn func(Transaction) error) (Result, error)
	View(ctx context.Context, fn func(TransactionView) error) error
	GetChemical(id string) (ChemicalRecord, bool)
	ListChemicals() []ChemicalRecord
	SearchChemicals(query string) []ChemicalRecord
	Categories() []string
	FilterByCategory(category string) []ChemicalRecord
	// Subscribe registers a listener invoked synchronously after every
	// committed transaction. The returned function removes the subscription.
	Subscribe(listener ChangeListener) (unsubscribe func())
}
