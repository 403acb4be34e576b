package solvents

import (
	"context"
	"testing"

	"chemcore/internal/core"
	"chemcore/pkg/domain"
)

func TestPluginMetadata(t *testing.T) {
	plugin := New()
	if plugin.Name() != "solvents" {
		t.Fatalf("unexpected name %q", plugin.Name())
	}
	if plugin.Version() != "0.1.0" {
		t.Fatalf("unexpected version %q", plugin.Version())
	}
}

func TestRegisterContributions(t *testing.T) {
	registry := core.NewPluginRegistry()
	if err := New().Register(registry); err != nil {
		t.Fatalf("register: %v", err)
	}
	if len(registry.Rules()) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(registry.Rules()))
	}
	schema, ok := registry.Schemas()["chemical"]
	if !ok {
		t.Fatalf("chemical schema fragment missing")
	}
	props, ok := schema["properties"].(map[string]any)
	if !ok {
		t.Fatalf("schema has no properties: %+v", schema)
	}
	for _, field := range []string{"flash_point_c", "vapor_pressure_kpa", "peroxide_former"} {
		if _, ok := props[field]; !ok {
			t.Fatalf("schema missing %s", field)
		}
	}
}

func TestStorageRuleThroughService(t *testing.T) {
	svc := core.NewInMemoryService()
	if _, err := svc.InstallPlugin(New()); err != nil {
		t.Fatalf("install: %v", err)
	}

	record := domain.ChemicalRecord{
		Name:     "Diethyl Ether",
		Symbol:   "C4H10O",
		Category: domain.CategorySolvent,
		SDS: domain.SafetyDataSheet{
			Handling:      "Use in a fume hood away from ignition sources.",
			SpillResponse: "Absorb with inert material.",
		},
	}
	created, res, err := svc.AddChemical(context.Background(), record)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	found := false
	for _, v := range res.Violations {
		if v.Rule == "solvent_storage_warning" && v.EntityID == created.ID {
			if v.Severity != domain.SeverityWarn {
				t.Fatalf("rule must warn, got %s", v.Severity)
			}
			found = true
		}
	}
	if !found {
		t.Fatalf("expected storage warning, got %+v", res.Violations)
	}

	record.SDS.Storage = "Store cold in a flammables cabinet; test for peroxides quarterly."
	record.Name = "Diethyl Ether (stabilized)"
	_, res, err = svc.AddChemical(context.Background(), record)
	if err != nil {
		t.Fatalf("add documented: %v", err)
	}
	for _, v := range res.Violations {
		if v.Rule == "solvent_storage_warning" && v.EntityID != created.ID {
			t.Fatalf("documented record should not warn: %+v", v)
		}
	}
}

func TestStorageRuleIgnoresOtherCategories(t *testing.T) {
	view := staticView{records: []domain.ChemicalRecord{
		{Base: domain.Base{ID: "A1"}, Category: domain.CategoryAcid},
		{Base: domain.Base{ID: "S1"}, Category: domain.CategorySolvent, SDS: domain.SafetyDataSheet{Storage: "cabinet"}},
	}}
	res, err := flammableStorageRule{}.Evaluate(context.Background(), view, nil)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(res.Violations) != 0 {
		t.Fatalf("expected no violations, got %+v", res.Violations)
	}
}

type staticView struct {
	records []domain.ChemicalRecord
}

func (v staticView) ListChemicals() []domain.ChemicalRecord { return v.records }

func (v staticView) FindChemical(id string) (domain.ChemicalRecord, bool) {
	for _, r := range v.records {
		if r.ID == id {
			return r, true
		}
	}
	return domain.ChemicalRecord{}, false
}

func (v staticView) SearchChemicals(string) []domain.ChemicalRecord { return nil }
func (v staticView) Categories() []string                           { return nil }
func (v staticView) FilterByCategory(string) []domain.ChemicalRecord {
	return nil
}
