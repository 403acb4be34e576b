package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"chemcore/pkg/domain"
)

func TestStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.db")

	store, err := NewStore(path, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		for _, record := range domain.SeedRecords() {
			if _, err := tx.AddChemical(record); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := store.DB().Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewStore(path, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.DB().Close()

	records := reopened.ListChemicals()
	if len(records) != 3 {
		t.Fatalf("expected 3 records after reopen, got %d", len(records))
	}
	// Insertion order survives the JSON round trip.
	if records[0].ID != "CHEM001" || records[2].ID != "CHEM003" {
		t.Fatalf("order lost after reload: %s %s", records[0].ID, records[2].ID)
	}
	if got, ok := reopened.GetChemical("CHEM002"); !ok || got.Name != "Sodium Hydroxide" {
		t.Fatalf("lookup after reload failed: %+v ok=%v", got, ok)
	}
}

func TestStoreSnapshotsEachCommit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.db")
	store, err := NewStore(path, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.DB().Close()

	ctx := context.Background()
	if _, err := store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		_, err := tx.AddChemical(domain.ChemicalRecord{Base: domain.Base{ID: "X1"}, Name: "One", Symbol: "O", Category: domain.CategoryAcid})
		return err
	}); err != nil {
		t.Fatalf("first commit: %v", err)
	}
	if _, err := store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		tx.RemoveChemical("X1")
		return nil
	}); err != nil {
		t.Fatalf("second commit: %v", err)
	}

	row := store.DB().QueryRow(`SELECT payload FROM state WHERE bucket = ?`, "chemicals")
	var payload []byte
	if err := row.Scan(&payload); err != nil {
		t.Fatalf("scan snapshot: %v", err)
	}
	if string(payload) != "[]" && string(payload) != "null" {
		t.Fatalf("expected empty snapshot after removal, got %s", payload)
	}
}

func TestStoreDefaultPath(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatalf("restore wd: %v", err)
		}
	})
	store, err := NewStore("", nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.DB().Close()
	if store.Path() != "chemcore.db" {
		t.Fatalf("expected default path, got %s", store.Path())
	}
}
