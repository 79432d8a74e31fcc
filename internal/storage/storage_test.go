package storage

import (
	"os"
	"testing"

	"github.com/pfrederiksen/bp-lineups/internal/lineup"
)

func testRecords() []lineup.Record {
	return []lineup.Record{
		{
			"ID":                527,
			"Name":              "Gerrit Cole",
			"Handedness":        "R",
			"Position":          "P",
			"Team Abbreviation": "NYY",
			"Date":              "2026-04-15",
		},
		{
			"ID":                592450,
			"Name":              "Aaron Judge",
			"Handedness":        "R",
			"Position":          "RF",
			"Order":             2,
			"Team Abbreviation": "NYY",
			"Date":              "2026-04-15",
		},
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "storage-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	store, err := New(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	records := testRecords()
	if err := store.CreateSnapshotFromRecords(records, "2026-04-15"); err != nil {
		t.Fatalf("Failed to save snapshot: %v", err)
	}

	loaded, err := store.LoadSnapshot("2026-04-15")
	if err != nil {
		t.Fatalf("Failed to load snapshot: %v", err)
	}

	if loaded.Date != "2026-04-15" {
		t.Errorf("expected date 2026-04-15, got %s", loaded.Date)
	}
	if len(loaded.Players) != len(records) {
		t.Errorf("expected %d players, got %d", len(records), len(loaded.Players))
	}
	if loaded.UpdatedAt == "" {
		t.Error("expected UpdatedAt to be set")
	}

	// A reloaded snapshot must still match the records it was built from.
	diff := lineup.Diff(loaded, records)
	if len(diff.NewPlayers) != 0 {
		t.Errorf("expected no new players after reload, got %d", len(diff.NewPlayers))
	}
}

func TestLoadSnapshotMissingFile(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "storage-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	store, err := New(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	snapshot, err := store.LoadSnapshot("2020-12-29")
	if err != nil {
		t.Fatalf("expected empty snapshot for missing file, got error: %v", err)
	}
	if len(snapshot.Players) != 0 {
		t.Errorf("expected empty snapshot, got %d players", len(snapshot.Players))
	}

	// A diff against the empty snapshot marks everything new.
	diff := lineup.Diff(snapshot, testRecords())
	if len(diff.NewPlayers) != 2 {
		t.Errorf("expected 2 new players, got %d", len(diff.NewPlayers))
	}
}

func TestSnapshotsKeyedByDate(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "storage-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	store, err := New(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	if err := store.CreateSnapshotFromRecords(testRecords(), "2026-04-15"); err != nil {
		t.Fatalf("Failed to save snapshot: %v", err)
	}

	other, err := store.LoadSnapshot("2026-04-16")
	if err != nil {
		t.Fatalf("Failed to load snapshot: %v", err)
	}
	if len(other.Players) != 0 {
		t.Errorf("expected a different date to have no snapshot, got %d players", len(other.Players))
	}
}
