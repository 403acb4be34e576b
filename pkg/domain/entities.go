// Package domain defines the core persistent entities, value types, and
// rule evaluation primitives used by chemcore.
package domain

import "time"

// EntityType identifies the type of record stored in the core domain.
type EntityType string

// Supported entity type identifiers used in Change records and persistence buckets.
const (
	// EntityChemical identifies a chemical inventory record.
	EntityChemical EntityType = "chemical"
	// EntitySDSDocument identifies a stored safety-data-sheet document.
	EntitySDSDocument EntityType = "sds_document"
)

// Severity captures rule outcomes.
type Severity string

// Rule evaluation severities determine commit behavior and logging.
const (
	// SeverityBlock blocks transaction commit.
	SeverityBlock Severity = "block"
	// SeverityWarn logs a warning but allows commit.
	SeverityWarn Severity = "warn"
	SeverityLog  Severity = "log"
)

// Base contains common fields for all domain records.
type Base struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SafetyDataSheet carries the structured safety information attached to a
// chemical record. Handling and SpillResponse are required by UI convention
// only; the store accepts empty values and the sds_completeness rule warns.
type SafetyDataSheet struct {
	Handling      string `json:"handling"`
	SpillResponse string `json:"spill_response"`
	Hazards       string `json:"hazards,omitempty"`
	FirstAid      string `json:"first_aid,omitempty"`
	Storage       string `json:"storage,omitempty"`
	SourceURL     string `json:"source_url,omitempty"`
}

// ChemicalRecord represents a single chemical inventory entry.
//
// Identifier uniqueness is expected but not enforced; the store appends
// whatever it is given and the duplicate_identifier rule reports collisions
// at warn severity. Category is free text: values outside the canonical
// styling set are accepted and fall back to the default style.
type ChemicalRecord struct {
	Base
	Name     string          `json:"name"`
	Symbol   string          `json:"symbol"`
	Category string          `json:"category"`
	SDS      SafetyDataSheet `json:"sds"`
}

// Change describes a mutation applied to an entity during a transaction.
type Change struct {
	Entity EntityType
	Action Action
	Before any
	After  any
}

// Action indicates the type of modification performed.
type Action string

// Change actions enumerate the mutations captured in the audit trail. The
// inventory has no edit operation, so updates never occur for chemicals.
const (
	// ActionCreate indicates an entity was created.
	ActionCreate Action = "create"
	ActionDelete Action = "delete"
)

// ChangeListener receives the committed change set of a transaction. Listeners
// run synchronously after commit, in subscription order.
type ChangeListener func(changes []Change)

// Violation reports a failed rule evaluation.
type Violation struct {
	Rule     string
	Severity Severity
	Message  string
	Entity   EntityType
	EntityID string
}

// Result aggregates violations from the rules engine.
type Result struct {
	Violations []Violation
}

// Merge appends violations from another result.
func (r *Result) Merge(other Result) {
	if len(other.Violations) == 0 {
		return
	}
	r.Violations = append(r.Violations, other.Violations...)
}

// HasBlocking returns true if the result contains blocking violations.
func (r Result) HasBlocking() bool {
	for _, v := range r.Violations {
		if v.Severity == SeverityBlock {
			return true
		}
	}
	return false
}

// RuleViolationError is returned when blocking violations are present.
type RuleViolationError struct {
	Result Result
}

func (e RuleViolationError) Error() string {
	return "transaction blocked by rules"
}
