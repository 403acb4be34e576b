// Package export renders inventory snapshots as CSV or JSON for reporting
// and spreadsheet import.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"chemcore/pkg/domain"
)

// csvHeader is the fixed column order of CSV exports.
var csvHeader = []string{
	"id", "name", "symbol", "category",
	"sds_handling", "sds_spill_response", "sds_hazards", "sds_first_aid", "sds_storage", "sds_source_url",
	"created_at", "updated_at",
}

// WriteCSV streams records to w as CSV with a header row, preserving the
// given order.
func WriteCSV(w io.Writer, records []domain.ChemicalRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, record := range records {
		row := []string{
			record.ID,
			record.Name,
			record.Symbol,
			record.Category,
			record.SDS.Handling,
			record.SDS.SpillResponse,
			record.SDS.Hazards,
			record.SDS.FirstAid,
			record.SDS.Storage,
			record.SDS.SourceURL,
			record.CreatedAt.UTC().Format(time.RFC3339),
			record.UpdatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write record %s: %w", record.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Document is the JSON export envelope.
type Document struct {
	GeneratedAt time.Time               `json:"generated_at"`
	Count       int                     `json:"count"`
	Categories  []string                `json:"categories"`
	Chemicals   []domain.ChemicalRecord `json:"chemicals"`
}

// WriteJSON streams an indented JSON document for the records. Categories are
// derived from the records themselves so the export stays self-describing.
func WriteJSON(w io.Writer, records []domain.ChemicalRecord, now time.Time) error {
	seen := make(map[string]struct{}, len(records))
	var categories []string
	for _, record := range records {
		if _, ok := seen[record.Category]; ok {
			continue
		}
		seen[record.Category] = struct{}{}
		categories = append(categories, record.Category)
	}
	sort.Strings(categories)

	doc := Document{
		GeneratedAt: now.UTC(),
		Count:       len(records),
		Categories:  categories,
		Chemicals:   records,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
