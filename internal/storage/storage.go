package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pfrederiksen/bp-lineups/internal/lineup"
)

// Storage handles persistence of lineup snapshots
type Storage struct {
	dataDir string
}

// New creates a new Storage instance
func New(dataDir string) (*Storage, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{
		dataDir: dataDir,
	}, nil
}

// getSnapshotPath returns the path to the snapshot file for a date
func (s *Storage) getSnapshotPath(date string) string {
	return filepath.Join(s.dataDir, fmt.Sprintf("lineups_%s.json", date))
}

// LoadSnapshot loads a date's snapshot from disk. A missing file yields an
// empty snapshot, which a diff treats as everything-new.
func (s *Storage) LoadSnapshot(date string) (*lineup.Snapshot, error) {
	path := s.getSnapshotPath(date)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return lineup.NewSnapshot(), nil
		}
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var snapshot lineup.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}

	if snapshot.Players == nil {
		snapshot.Players = make(map[string]lineup.Record)
	}

	return &snapshot, nil
}

// SaveSnapshot saves a snapshot to disk under its date
func (s *Storage) SaveSnapshot(snapshot *lineup.Snapshot, date string) error {
	path := s.getSnapshotPath(date)

	snapshot.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	return nil
}

// CreateSnapshotFromRecords creates and saves a snapshot from a date's
// flattened records
func (s *Storage) CreateSnapshotFromRecords(records []lineup.Record, date string) error {
	return s.SaveSnapshot(lineup.CreateSnapshot(records, date), date)
}
