package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// recordingTB captures Fatalf calls so guard failures can be asserted without
// failing the enclosing test.
type recordingTB struct {
	testing.TB
	failed bool
	msg    string
}

func (r *recordingTB) Helper() {}

func (r *recordingTB) Fatalf(format string, args ...any) {
	r.failed = true
	r.msg = fmt.Sprintf(format, args...)
}

func stubGoList(t *testing.T, deps []string, err error) {
	t.Helper()
	prev := goListDeps
	goListDeps = func(string) ([]byte, error) {
		return []byte(strings.Join(deps, "\n") + "\n"), err
	}
	t.Cleanup(func() { goListDeps = prev })
}

func TestAssertNoTransitiveDependencyPasses(t *testing.T) {
	stubGoList(t, []string{"fmt", "chemcore/pkg/domain", "github.com/google/uuid"}, nil)
	rec := &recordingTB{TB: t}
	AssertNoTransitiveDependency(rec, "./...", func(path string) bool {
		return strings.HasPrefix(path, "database/sql")
	}, "no sql in domain")
	if rec.failed {
		t.Fatalf("unexpected failure: %s", rec.msg)
	}
}

func TestAssertNoTransitiveDependencyReportsViolations(t *testing.T) {
	stubGoList(t, []string{"fmt", "database/sql", "chemcore/pkg/domain"}, nil)
	rec := &recordingTB{TB: t}
	AssertNoTransitiveDependency(rec, "./...", func(path string) bool {
		return strings.HasPrefix(path, "database/sql")
	}, "no sql in domain")
	if !rec.failed {
		t.Fatalf("expected failure")
	}
	if !strings.Contains(rec.msg, "database/sql") || !strings.Contains(rec.msg, "no sql in domain") {
		t.Fatalf("unhelpful failure message: %s", rec.msg)
	}
}

func TestAssertNoDirectImports(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "clean.go", `package sample

import "fmt"

var _ = fmt.Sprintf
`)
	writeSource(t, dir, "clean_test.go", `package sample

import "chemcore/internal/core"

var _ = core.NewInMemoryService
`)

	rec := &recordingTB{TB: t}
	AssertNoDirectImports(rec, dir, InternalImportForbidden, "public packages stay decoupled")
	if rec.failed {
		t.Fatalf("test files must be exempt: %s", rec.msg)
	}

	writeSource(t, dir, "dirty.go", `package sample

import _ "chemcore/internal/core"
`)
	rec = &recordingTB{TB: t}
	AssertNoDirectImports(rec, dir, InternalImportForbidden, "public packages stay decoupled")
	if !rec.failed {
		t.Fatalf("expected failure for internal import")
	}
	if !strings.Contains(rec.msg, "dirty.go imports chemcore/internal/core") {
		t.Fatalf("unhelpful failure message: %s", rec.msg)
	}
}

func TestInternalImportForbidden(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"chemcore/internal/core", true},
		{"chemcore/internal/blob/core", true},
		{"chemcore/pkg/domain", false},
		{"fmt", false},
		{"github.com/google/uuid", false},
	}
	for _, tc := range cases {
		if got := InternalImportForbidden(tc.path); got != tc.want {
			t.Fatalf("InternalImportForbidden(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func writeSource(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}
