// Command inventory-check validates a seed inventory JSON file against the
// inventory schema conventions: required fields, identifier uniqueness,
// canonical categories, and SDS completeness.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/url"
	"os"
	"sort"
	"strings"

	"chemcore/pkg/domain"
)

var exitFunc = os.Exit

type seedFile struct {
	Chemicals []seedChemical `json:"chemicals"`
}

type seedChemical struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Symbol   string  `json:"symbol"`
	Category string  `json:"category"`
	SDS      seedSDS `json:"sds"`
}

type seedSDS struct {
	Handling      string `json:"handling"`
	SpillResponse string `json:"spill_response"`
	Hazards       string `json:"hazards"`
	FirstAid      string `json:"first_aid"`
	Storage       string `json:"storage"`
	SourceURL     string `json:"source_url"`
}

// finding is a single validation outcome. Errors fail the check; warnings
// only fail under -strict.
type finding struct {
	warning bool
	message string
}

func main() {
	quiet := flag.Bool("q", false, "suppress per-finding output")
	strict := flag.Bool("strict", false, "treat warnings as errors")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: inventory-check [-q] [-strict] <inventory.json>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		exitFunc(2)
		return
	}

	findings, err := checkFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "inventory-check: %v\n", err)
		exitFunc(2)
		return
	}

	errors, warnings := 0, 0
	for _, f := range findings {
		label := "error"
		if f.warning {
			label = "warning"
			warnings++
		} else {
			errors++
		}
		if !*quiet {
			fmt.Fprintf(os.Stderr, "%s: %s\n", label, f.message)
		}
	}

	if !*quiet {
		fmt.Fprintf(os.Stderr, "inventory-check: %d error(s), %d warning(s)\n", errors, warnings)
	}
	if errors > 0 || (*strict && warnings > 0) {
		exitFunc(1)
		return
	}
	exitFunc(0)
}

func checkFile(path string) ([]finding, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var seed seedFile
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&seed); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return checkSeed(seed), nil
}

func checkSeed(seed seedFile) []finding {
	var findings []finding
	seen := make(map[string]int)

	for i, chem := range seed.Chemicals {
		where := fmt.Sprintf("chemicals[%d]", i)
		if chem.ID != "" {
			where = fmt.Sprintf("%s (%s)", where, chem.ID)
		}

		for _, req := range []struct{ name, value string }{
			{"id", chem.ID},
			{"name", chem.Name},
			{"symbol", chem.Symbol},
			{"category", chem.Category},
		} {
			if strings.TrimSpace(req.value) == "" {
				findings = append(findings, finding{message: fmt.Sprintf("%s: missing required field %q", where, req.name)})
			}
		}

		if chem.ID != "" {
			seen[chem.ID]++
		}
		if chem.Category != "" && !domain.KnownCategory(chem.Category) {
			findings = append(findings, finding{warning: true, message: fmt.Sprintf("%s: category %q is not canonical; default styling applies", where, chem.Category)})
		}
		if strings.TrimSpace(chem.SDS.Handling) == "" {
			findings = append(findings, finding{warning: true, message: fmt.Sprintf("%s: sds.handling is empty", where)})
		}
		if strings.TrimSpace(chem.SDS.SpillResponse) == "" {
			findings = append(findings, finding{warning: true, message: fmt.Sprintf("%s: sds.spill_response is empty", where)})
		}
		if chem.SDS.SourceURL != "" {
			parsed, err := url.ParseRequestURI(chem.SDS.SourceURL)
			if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
				findings = append(findings, finding{message: fmt.Sprintf("%s: sds.source_url %q is not a valid http(s) URL", where, chem.SDS.SourceURL)})
			}
		}
	}

	dups := make([]string, 0, len(seen))
	for id, count := range seen {
		if count > 1 {
			dups = append(dups, id)
		}
	}
	sort.Strings(dups)
	for _, id := range dups {
		findings = append(findings, finding{message: fmt.Sprintf("identifier %q appears on %d records", id, seen[id])})
	}
	return findings
}
