package lineup

import (
	"errors"
	"reflect"
	"testing"
)

func intp(n int) *int { return &n }

func testGame() *Game {
	return &Game{
		Home: Team{
			Name:         "New York Yankees",
			Abbreviation: "NYY",
			Pitcher: Pitcher{
				Identity:   Identity{ID: 543037, Name: "Gerrit Cole"},
				Handedness: "R",
				Announced:  true,
			},
			Rotation: []Batter{
				{Identity: Identity{ID: 518934, Name: "DJ LeMahieu"}, Handedness: "R", Position: "2B", Order: intp(1)},
				{Identity: Identity{ID: 592450, Name: "Aaron Judge"}, Handedness: "R", Position: "RF", Order: intp(2)},
			},
		},
		Away: Team{
			Name:         "Boston Red Sox",
			Abbreviation: "BOS",
			Pitcher:      Pitcher{},
			Rotation: []Batter{
				{Identity: Identity{ID: 646240, Name: "Rafael Devers"}, Handedness: "L", Position: "3B", Order: nil},
			},
		},
		Time:      "7:05 PM ET",
		Farenheit: intp(72),
	}
}

func TestGameRecords(t *testing.T) {
	g := testGame()
	records := g.Records()

	// Pitcher plus rotation per side: (1+2) + (1+1).
	if len(records) != 5 {
		t.Fatalf("expected 5 records, got %d", len(records))
	}

	// Home side comes first, pitcher before the rotation.
	if records[0]["Name"] != "Gerrit Cole" {
		t.Errorf("expected home pitcher first, got %v", records[0]["Name"])
	}
	if records[0]["Position"] != PitcherPosition {
		t.Errorf("expected pitcher position %q, got %v", PitcherPosition, records[0]["Position"])
	}
	if _, ok := records[0]["Order"]; ok {
		t.Error("pitcher records should carry no Order key")
	}
	if records[1]["Name"] != "DJ LeMahieu" || records[1]["Order"] != 1 {
		t.Errorf("unexpected leadoff record: %v", records[1])
	}

	for i, r := range records {
		isHome := i < 3
		if r["Is Home"] != isHome {
			t.Errorf("record %d: expected Is Home=%v, got %v", i, isHome, r["Is Home"])
		}
		wantOpp := "Boston Red Sox"
		if !isHome {
			wantOpp = "New York Yankees"
		}
		if r["Opponent Name"] != wantOpp {
			t.Errorf("record %d: expected opponent %q, got %v", i, wantOpp, r["Opponent Name"])
		}
		if r["Time"] != "7:05 PM ET" {
			t.Errorf("record %d: expected shared time, got %v", i, r["Time"])
		}
		if r["Farenheit"] != 72 {
			t.Errorf("record %d: expected Farenheit=72, got %v", i, r["Farenheit"])
		}
		if r["Precipitation"] != nil {
			t.Errorf("record %d: expected absent Precipitation, got %v", i, r["Precipitation"])
		}
	}
}

func TestPlaceholderPitcherRecord(t *testing.T) {
	p := Pitcher{}
	r := p.Record()

	for _, key := range []string{"ID", "Name", "Handedness", "Position"} {
		v, ok := r[key]
		if !ok {
			t.Errorf("expected key %q to be present", key)
		}
		if v != nil {
			t.Errorf("expected %q to be nil, got %v", key, v)
		}
	}
}

func TestBatterRecordAbsentOrder(t *testing.T) {
	b := Batter{
		Identity:   Identity{ID: 646240, Name: "Rafael Devers"},
		Handedness: "L",
		Position:   "3B",
	}
	r := b.Record()

	v, ok := r["Order"]
	if !ok {
		t.Fatal("expected Order key to be present")
	}
	if v != nil {
		t.Errorf("expected absent order to be nil, not %v", v)
	}
}

func TestNewRequiresGames(t *testing.T) {
	_, err := New("2020-12-29", nil)
	if err == nil {
		t.Fatal("expected an error for an empty game list")
	}
	if !errors.Is(err, ErrNoGames) {
		t.Errorf("expected ErrNoGames, got %v", err)
	}
}

func TestRecordsCached(t *testing.T) {
	d, err := New("2026-04-15", []*Game{testGame()})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	first := d.Records()
	second := d.Records()

	if len(first) != 5 {
		t.Fatalf("expected 5 records, got %d", len(first))
	}
	for _, r := range first {
		if r["Date"] != "2026-04-15" {
			t.Errorf("expected date on every record, got %v", r["Date"])
		}
	}
	// Flattening is idempotent: the cached result is returned as-is.
	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical output from repeated Records calls")
	}
	if &first[0] != &second[0] {
		t.Error("expected the cached slice to be reused")
	}
}
