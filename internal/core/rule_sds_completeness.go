package core

import (
	"context"
	"fmt"
	"strings"

	"chemcore/pkg/domain"
)

// NewSDSCompletenessRule returns the rule checking the by-convention required
// safety-data-sheet fields. Handling and spill response are expected on every
// record; the store still accepts records without them.
func NewSDSCompletenessRule() domain.Rule {
	return sdsCompletenessRule{}
}

type sdsCompletenessRule struct{}

func (sdsCompletenessRule) Name() string { return "sds_completeness" }

func (sdsCompletenessRule) Evaluate(_ context.Context, view domain.RuleView, changes []domain.Change) (domain.Result, error) {
	res := domain.Result{}
	for _, change := range changes {
		if change.Entity != domain.EntityChemical || change.Action != domain.ActionCreate {
			continue
		}
		record, ok := change.After.(domain.ChemicalRecord)
		if !ok {
			continue
		}
		var missing []string
		if strings.TrimSpace(record.SDS.Handling) == "" {
			missing = append(missing, "handling")
		}
		if strings.TrimSpace(record.SDS.SpillResponse) == "" {
			missing = append(missing, "spill_response")
		}
		if len(missing) == 0 {
			continue
		}
		res.Violations = append(res.Violations, domain.Violation{
			Rule:     "sds_completeness",
			Severity: domain.SeverityWarn,
			Message:  fmt.Sprintf("record %s is missing SDS fields: %s", record.ID, strings.Join(missing, ", ")),
			Entity:   domain.EntityChemical,
			EntityID: record.ID,
		})
	}
	return res, nil
}
