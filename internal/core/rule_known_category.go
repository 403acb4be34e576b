package core

import (
	"context"
	"fmt"

	"chemcore/pkg/domain"
)

// NewKnownCategoryRule returns the rule flagging categories outside the
// canonical styling set. Arbitrary categories are accepted and fall back to
// the default style; the warning surfaces probable typos.
func NewKnownCategoryRule() domain.Rule {
	return knownCategoryRule{}
}

type knownCategoryRule struct{}

func (knownCategoryRule) Name() string { return "known_category" }

func (knownCategoryRule) Evaluate(_ context.Context, view domain.RuleView, changes []domain.Change) (domain.Result, error) {
	res := domain.Result{}
	for _, change := range changes {
		if change.Entity != domain.EntityChemical || change.Action != domain.ActionCreate {
			continue
		}
		record, ok := change.After.(domain.ChemicalRecord)
		if !ok {
			continue
		}
		if domain.KnownCategory(record.Category) {
			continue
		}
		res.Violations = append(res.Violations, domain.Violation{
			Rule:     "known_category",
			Severity: domain.SeverityWarn,
			Message:  fmt.Sprintf("category %q is not in the canonical set; default styling applies", record.Category),
			Entity:   domain.EntityChemical,
			EntityID: record.ID,
		})
	}
	return res, nil
}
