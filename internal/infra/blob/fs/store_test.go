package fs

import (
	"context"
	"io"
	"strings"
	"testing"

	"chemcore/internal/blob/core"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func TestPutGetRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	info, err := store.Put(ctx, "sds/CHEM001/sheet.pdf", strings.NewReader("%PDF-1.7 body"), core.PutOptions{
		ContentType: "application/pdf",
		Metadata:    map[string]string{"chemical_id": "CHEM001"},
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Key != "sds/CHEM001/sheet.pdf" || info.Size != int64(len("%PDF-1.7 body")) {
		t.Fatalf("unexpected info: %+v", info)
	}
	if info.ETag == "" {
		t.Fatalf("expected sha256 etag")
	}
	if info.URL != "http://local.blob/sds/CHEM001/sheet.pdf" {
		t.Fatalf("unexpected local url %q", info.URL)
	}

	got, rc, err := store.Get(ctx, "sds/CHEM001/sheet.pdf")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer rc.Close()
	body, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(body) != "%PDF-1.7 body" {
		t.Fatalf("body mismatch: %q", body)
	}
	if got.ContentType != "application/pdf" || got.Metadata["chemical_id"] != "CHEM001" {
		t.Fatalf("metadata lost: %+v", got)
	}
	if got.ETag != info.ETag {
		t.Fatalf("etag changed between put and get")
	}
}

func TestPutExistingKeyFails(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	if _, err := store.Put(ctx, "a.txt", strings.NewReader("one"), core.PutOptions{}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := store.Put(ctx, "a.txt", strings.NewReader("two"), core.PutOptions{}); err == nil {
		t.Fatalf("expected create-only violation")
	}
}

func TestKeySanitization(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	for _, key := range []string{"", "  ", "../escape", "/abs/path", "a/../../b"} {
		if _, err := store.Put(ctx, key, strings.NewReader("x"), core.PutOptions{}); err == nil {
			t.Fatalf("expected rejection for key %q", key)
		}
	}
}

func TestHeadAndDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	if _, err := store.Put(ctx, "doc.pdf", strings.NewReader("data"), core.PutOptions{ContentType: "application/pdf"}); err != nil {
		t.Fatalf("put: %v", err)
	}

	info, err := store.Head(ctx, "doc.pdf")
	if err != nil {
		t.Fatalf("head: %v", err)
	}
	if info.Size != 4 || info.ContentType != "application/pdf" {
		t.Fatalf("unexpected head info: %+v", info)
	}

	ok, err := store.Delete(ctx, "doc.pdf")
	if err != nil || !ok {
		t.Fatalf("delete: ok=%v err=%v", ok, err)
	}
	ok, err = store.Delete(ctx, "doc.pdf")
	if err != nil || ok {
		t.Fatalf("second delete should be (false, nil): ok=%v err=%v", ok, err)
	}
	if _, err := store.Head(ctx, "doc.pdf"); err == nil {
		t.Fatalf("sidecar survived delete")
	}
}

func TestListFiltersByPrefix(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	for _, key := range []string{"sds/CHEM001/a.pdf", "sds/CHEM001/b.pdf", "sds/CHEM002/a.pdf", "exports/all.csv"} {
		if _, err := store.Put(ctx, key, strings.NewReader("x"), core.PutOptions{}); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}

	infos, err := store.List(ctx, "sds/CHEM001/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 2 || infos[0].Key != "sds/CHEM001/a.pdf" || infos[1].Key != "sds/CHEM001/b.pdf" {
		t.Fatalf("unexpected listing: %+v", infos)
	}

	all, err := store.List(ctx, "")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 blobs, got %d", len(all))
	}
}

func TestPresignURL(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	url, err := store.PresignURL(ctx, "sds/CHEM001/a.pdf", core.SignedURLOptions{Method: "GET"})
	if err != nil {
		t.Fatalf("presign: %v", err)
	}
	if url != "http://local.blob/sds/CHEM001/a.pdf" {
		t.Fatalf("unexpected url %q", url)
	}
	if _, err := store.PresignURL(ctx, "x", core.SignedURLOptions{Method: "PUT"}); err != core.ErrUnsupported {
		t.Fatalf("expected ErrUnsupported for PUT, got %v", err)
	}
}

func TestDriverIdentifier(t *testing.T) {
	if got := newTestStore(t).Driver(); got != core.DriverFilesystem {
		t.Fatalf("unexpected driver %q", got)
	}
}
