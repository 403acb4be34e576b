package core

import (
	"context"
	"errors"
	"strings"
	"testing"

	"chemcore/internal/blob"
	blobmemory "chemcore/internal/infra/blob/memory"
	"chemcore/pkg/domain"
)

func seededService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	svc := NewInMemoryService(opts...)
	if _, err := svc.Seed(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return svc
}

func TestOpenSDSSourceFiresOpener(t *testing.T) {
	var opened []string
	svc := seededService(t, WithLinkOpener(func(_ context.Context, url string) error {
		opened = append(opened, url)
		return nil
	}))

	if err := svc.OpenSDSSource(context.Background(), "CHEM001"); err != nil {
		t.Fatalf("open: %v", err)
	}
	if len(opened) != 1 || opened[0] != "https://www.fishersci.com/msds/hydrochloric-acid" {
		t.Fatalf("unexpected opener calls: %v", opened)
	}
}

func TestOpenSDSSourceFailures(t *testing.T) {
	openerErr := errors.New("no handler")
	cases := []struct {
		name   string
		opts   []Option
		id     string
		mutate func(*testing.T, *Service)
	}{
		{
			name: "no opener configured",
			id:   "CHEM001",
		},
		{
			name: "missing record",
			opts: []Option{WithLinkOpener(func(context.Context, string) error { return nil })},
			id:   "unknown",
		},
		{
			name: "empty source url",
			opts: []Option{WithLinkOpener(func(context.Context, string) error { return nil })},
			id:   "CHEM010",
			mutate: func(t *testing.T, svc *Service) {
				record := domain.ChemicalRecord{Base: domain.Base{ID: "CHEM010"}, Name: "Blank", Symbol: "B", Category: domain.CategoryAcid}
				if _, _, err := svc.AddChemical(context.Background(), record); err != nil {
					t.Fatalf("add: %v", err)
				}
			},
		},
		{
			name: "malformed url",
			opts: []Option{WithLinkOpener(func(context.Context, string) error { return nil })},
			id:   "CHEM011",
			mutate: func(t *testing.T, svc *Service) {
				record := domain.ChemicalRecord{Base: domain.Base{ID: "CHEM011"}, Name: "Bad", Symbol: "B", Category: domain.CategoryAcid}
				record.SDS.SourceURL = "not a url"
				if _, _, err := svc.AddChemical(context.Background(), record); err != nil {
					t.Fatalf("add: %v", err)
				}
			},
		},
		{
			name: "non http scheme",
			opts: []Option{WithLinkOpener(func(context.Context, string) error { return nil })},
			id:   "CHEM012",
			mutate: func(t *testing.T, svc *Service) {
				record := domain.ChemicalRecord{Base: domain.Base{ID: "CHEM012"}, Name: "File", Symbol: "F", Category: domain.CategoryAcid}
				record.SDS.SourceURL = "file:///etc/passwd"
				if _, _, err := svc.AddChemical(context.Background(), record); err != nil {
					t.Fatalf("add: %v", err)
				}
			},
		},
		{
			name: "opener failure",
			opts: []Option{WithLinkOpener(func(context.Context, string) error { return openerErr })},
			id:   "CHEM001",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := seededService(t, tc.opts...)
			if tc.mutate != nil {
				tc.mutate(t, svc)
			}
			err := svc.OpenSDSSource(context.Background(), tc.id)
			if !errors.Is(err, ErrSDSSourceUnavailable) {
				t.Fatalf("expected ErrSDSSourceUnavailable, got %v", err)
			}
		})
	}
}

func TestOpenSDSSourceFallsBackWhenPresignUnsupported(t *testing.T) {
	// The memory blob driver cannot pre-sign, so an attached document must
	// not shadow the external source URL.
	var opened []string
	svc := seededService(t,
		WithSDSDocumentStore(blobmemory.New()),
		WithLinkOpener(func(_ context.Context, url string) error {
			opened = append(opened, url)
			return nil
		}),
	)
	if _, err := svc.AttachSDSDocument(context.Background(), "CHEM001", "sds.pdf", strings.NewReader("%PDF"), "application/pdf"); err != nil {
		t.Fatalf("attach: %v", err)
	}
	if err := svc.OpenSDSSource(context.Background(), "CHEM001"); err != nil {
		t.Fatalf("open: %v", err)
	}
	if len(opened) != 1 || opened[0] != "https://www.fishersci.com/msds/hydrochloric-acid" {
		t.Fatalf("expected fallback to source url, got %v", opened)
	}
}

// presigningDocs wraps the memory driver with a canned signed URL so the
// attached-document precedence path can be exercised without S3.
type presigningDocs struct {
	*blobmemory.Store
	url string
}

func (p presigningDocs) PresignURL(context.Context, string, blob.SignedURLOptions) (string, error) {
	return p.url, nil
}

func TestOpenSDSSourcePrefersAttachedDocument(t *testing.T) {
	docs := presigningDocs{Store: blobmemory.New(), url: "https://blobs.example.com/sds/CHEM001/sds.pdf?sig=abc"}
	var opened []string
	svc := seededService(t,
		WithSDSDocumentStore(docs),
		WithLinkOpener(func(_ context.Context, url string) error {
			opened = append(opened, url)
			return nil
		}),
	)
	if _, err := svc.AttachSDSDocument(context.Background(), "CHEM001", "sds.pdf", strings.NewReader("%PDF"), "application/pdf"); err != nil {
		t.Fatalf("attach: %v", err)
	}
	if err := svc.OpenSDSSource(context.Background(), "CHEM001"); err != nil {
		t.Fatalf("open: %v", err)
	}
	if len(opened) != 1 || opened[0] != docs.url {
		t.Fatalf("expected signed document url, got %v", opened)
	}
}
