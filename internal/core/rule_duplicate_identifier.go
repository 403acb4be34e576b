package core

import (
	"context"
	"fmt"

	"chemcore/pkg/domain"
)

// NewDuplicateIdentifierRule returns the rule reporting identifier collisions.
// Uniqueness is expected but not enforced, so collisions warn instead of
// blocking.
func NewDuplicateIdentifierRule() domain.Rule {
	return duplicateIdentifierRule{}
}

type duplicateIdentifierRule struct{}

func (duplicateIdentifierRule) Name() string { return "duplicate_identifier" }

func (duplicateIdentifierRule) Evaluate(_ context.Context, view domain.RuleView, _ []domain.Change) (domain.Result, error) {
	counts := make(map[string]int)
	for _, record := range view.ListChemicals() {
		counts[record.ID]++
	}

	res := domain.Result{}
	for id, count := range counts {
		if count < 2 {
			continue
		}
		res.Violations = append(res.Violations, domain.Violation{
			Rule:     "duplicate_identifier",
			Severity: domain.SeverityWarn,
			Message:  fmt.Sprintf("identifier %s appears on %d records", id, count),
			Entity:   domain.EntityChemical,
			EntityID: id,
		})
	}
	return res, nil
}
