package openapi

import (
	"bytes"
	"testing"
)

func TestSpecEmbedded(t *testing.T) {
	spec := Spec()
	if len(spec) == 0 {
		t.Fatalf("embedded spec is empty")
	}
	for _, want := range []string{"ChemicalRecord", "SafetyDataSheet"} {
		if !bytes.Contains(spec, []byte(want)) {
			t.Fatalf("spec missing component %s", want)
		}
	}
}

func TestSpecReturnsCopy(t *testing.T) {
	spec := Spec()
	spec[0] = '#'
	if Spec()[0] == '#' {
		t.Fatalf("Spec returned shared backing array")
	}
}
