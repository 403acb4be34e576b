// Package solvents ships the reference hazard-class plugin covering
// flammable solvent handling.
package solvents

import (
	"context"
	"fmt"
	"strings"

	"chemcore/pkg/domain"
	"chemcore/pkg/pluginapi"
)

// Plugin contributes solvent-specific schema extensions and rules.
type Plugin struct{}

// New constructs a solvents plugin instance.
func New() Plugin {
	return Plugin{}
}

// Name returns the plugin identifier.
func (Plugin) Name() string { return "solvents" }

// Version returns the plugin semantic version.
func (Plugin) Version() string { return "0.1.0" }

// Register wires solvent-specific schema extensions and rules.
func (Plugin) Register(registry pluginapi.Registry) error {
	registry.RegisterSchema("chemical", map[string]any{
		"$id":  "chemcore:solvents:chemical",
		"type": "object",
		"properties": map[string]any{
			"flash_point_c": map[string]any{
				"type":        "number",
				"description": "Closed-cup flash point in degrees Celsius",
			},
			"vapor_pressure_kpa": map[string]any{
				"type":        "number",
				"description": "Vapor pressure at 20C in kPa",
			},
			"peroxide_former": map[string]any{
				"type":        "boolean",
				"description": "Whether the solvent forms peroxides on storage",
			},
		},
	})

	registry.RegisterRule(flammableStorageRule{})
	return nil
}

type flammableStorageRule struct{}

func (flammableStorageRule) Name() string { return "solvent_storage_warning" }

// Evaluate warns for solvent and flammable records whose SDS gives no storage
// guidance. Flammables without documented storage are the most common audit
// finding in small labs.
func (flammableStorageRule) Evaluate(_ context.Context, view domain.RuleView, _ []domain.Change) (domain.Result, error) {
	var result domain.Result
	for _, record := range view.ListChemicals() {
		category := record.Category
		if category != domain.CategorySolvent && category != domain.CategoryFlammable {
			continue
		}
		if strings.TrimSpace(record.SDS.Storage) != "" {
			continue
		}
		result.Violations = append(result.Violations, domain.Violation{
			Rule:     "solvent_storage_warning",
			Severity: domain.SeverityWarn,
			Message:  fmt.Sprintf("%s record %s has no storage guidance", strings.ToLower(category), record.ID),
			Entity:   domain.EntityChemical,
			EntityID: record.ID,
		})
	}
	return result, nil
}
