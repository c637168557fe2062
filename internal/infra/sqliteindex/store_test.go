package sqliteindex

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	indexapp "github.com/osvaldoandrade/spaceschema/internal/app/index"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenWithOptions(filepath.Join(t.TempDir(), "nested", "index.db"), OpenOptions{Fast: true})
	if err != nil {
		t.Fatalf("OpenWithOptions returned error: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func writeExport(t *testing.T, store *Store, records []indexapp.VersionRecord, run indexapp.Run) {
	t.Helper()
	ctx := context.Background()
	tx, err := store.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin returned error: %v", err)
	}
	if err := tx.ReplaceVersions(ctx, records); err != nil {
		t.Fatalf("ReplaceVersions returned error: %v", err)
	}
	if err := tx.InsertRun(ctx, run); err != nil {
		t.Fatalf("InsertRun returned error: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("Commit returned error: %v", err)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if _, ok, err := store.LatestRun(ctx); err != nil || ok {
		t.Fatalf("expected no run, got ok=%v err=%v", ok, err)
	}

	records := []indexapp.VersionRecord{
		{Version: 1, Label: "0.1", FileName: "1.json", Size: 7, SHA256: "aa", Stable: true},
		{Version: 2, Label: "0.2", FileName: "2-draft.json", Size: 9, SHA256: "bb", Draft: true, Latest: true},
	}
	run := indexapp.Run{
		RunID:         "01JRUN1",
		Root:          "specs",
		ScannedAt:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Versions:      2,
		DraftVersion:  2,
		StableVersion: 1,
	}
	writeExport(t, store, records, run)

	got, err := store.ListVersions(ctx)
	if err != nil {
		t.Fatalf("ListVersions returned error: %v", err)
	}
	if diff := cmp.Diff(records, got); diff != "" {
		t.Fatalf("unexpected records (-want +got):\n%s", diff)
	}

	latest, ok, err := store.LatestRun(ctx)
	if err != nil || !ok {
		t.Fatalf("expected run, got ok=%v err=%v", ok, err)
	}
	if diff := cmp.Diff(run, latest); diff != "" {
		t.Fatalf("unexpected run (-want +got):\n%s", diff)
	}
}

func TestStoreReplacesVersions(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	writeExport(t, store, []indexapp.VersionRecord{
		{Version: 1, Label: "0.1", FileName: "1.json"},
		{Version: 2, Label: "0.2", FileName: "2.json"},
	}, indexapp.Run{RunID: "01JRUN1", Root: "specs", ScannedAt: time.Unix(10, 0)})
	writeExport(t, store, []indexapp.VersionRecord{
		{Version: 3, Label: "0.3", FileName: "3.json", Latest: true},
	}, indexapp.Run{RunID: "01JRUN2", Root: "specs", ScannedAt: time.Unix(20, 0)})

	got, err := store.ListVersions(ctx)
	if err != nil {
		t.Fatalf("ListVersions returned error: %v", err)
	}
	if len(got) != 1 || got[0].Version != 3 {
		t.Fatalf("expected only version 3, got %+v", got)
	}

	latest, _, err := store.LatestRun(ctx)
	if err != nil {
		t.Fatalf("LatestRun returned error: %v", err)
	}
	if latest.RunID != "01JRUN2" {
		t.Fatalf("expected latest run 01JRUN2, got %s", latest.RunID)
	}
}

func TestStoreRollback(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	tx, err := store.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin returned error: %v", err)
	}
	if err := tx.ReplaceVersions(ctx, []indexapp.VersionRecord{{Version: 1, Label: "0.1", FileName: "1.json"}}); err != nil {
		t.Fatalf("ReplaceVersions returned error: %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("Rollback returned error: %v", err)
	}

	got, err := store.ListVersions(ctx)
	if err != nil {
		t.Fatalf("ListVersions returned error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no records after rollback, got %+v", got)
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(" "); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
