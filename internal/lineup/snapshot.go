package lineup

import (
	"crypto/sha1"
	"fmt"
	"sort"
)

// Snapshot is one date's flattened records at a point in time, keyed by
// RecordKey. Persisted between runs so newly posted players can be reported.
type Snapshot struct {
	Date      string            `json:"date"`
	Players   map[string]Record `json:"players"`
	UpdatedAt string            `json:"updated_at"`
}

// NewSnapshot creates an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{Players: make(map[string]Record)}
}

// CreateSnapshot builds a snapshot from a date's records.
func CreateSnapshot(records []Record, date string) *Snapshot {
	s := NewSnapshot()
	s.Date = date
	for _, r := range records {
		s.Players[RecordKey(r)] = r
	}
	return s
}

// RecordKey derives a deterministic identifier for one player row. Placeholder
// pitchers (nil ID) key on the team alone, so a team's unannounced-starter
// slot is stable across runs until a name is posted.
func RecordKey(r Record) string {
	h := sha1.New()
	fmt.Fprintf(h, "%s|%s|%s|%s",
		keyField(r, "Team Abbreviation"),
		keyField(r, "ID"),
		keyField(r, "Name"),
		keyField(r, "Position"),
	)
	return fmt.Sprintf("%x", h.Sum(nil))
}

func keyField(r Record, name string) string {
	v, ok := r[name]
	if !ok || v == nil {
		return ""
	}
	// JSON reloads numbers as float64; normalize so keys survive a
	// snapshot round trip.
	if f, ok := v.(float64); ok && f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%v", v)
}

// DiffResult lists the player rows that were not present in the previous
// snapshot, grouped by team abbreviation.
type DiffResult struct {
	NewPlayers []Record
	ByTeam     map[string][]Record
}

// Diff compares current records against a previous snapshot and returns the
// newly posted players. A nil previous snapshot marks everything new.
func Diff(previous *Snapshot, current []Record) *DiffResult {
	result := &DiffResult{
		NewPlayers: make([]Record, 0),
		ByTeam:     make(map[string][]Record),
	}

	if previous == nil {
		previous = NewSnapshot()
	}

	for _, r := range current {
		if _, exists := previous.Players[RecordKey(r)]; exists {
			continue
		}
		result.NewPlayers = append(result.NewPlayers, r)
		team := keyField(r, "Team Abbreviation")
		result.ByTeam[team] = append(result.ByTeam[team], r)
	}

	sort.SliceStable(result.NewPlayers, func(i, j int) bool {
		a, b := result.NewPlayers[i], result.NewPlayers[j]
		if ta, tb := keyField(a, "Team Abbreviation"), keyField(b, "Team Abbreviation"); ta != tb {
			return ta < tb
		}
		return keyField(a, "Name") < keyField(b, "Name")
	})
	for team := range result.ByTeam {
		rs := result.ByTeam[team]
		sort.SliceStable(rs, func(i, j int) bool {
			return keyField(rs[i], "Name") < keyField(rs[j], "Name")
		})
	}

	return result
}
