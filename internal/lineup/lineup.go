package lineup

import (
	"errors"
	"fmt"
)

// ErrNoGames is returned when a date's page carries no valid game cards.
// Off-season and off days are expected; callers should check with errors.Is
// and skip the date rather than treat it as a parse failure.
var ErrNoGames = errors.New("no games scheduled")

// PitcherPosition is the fixed position tag for starting pitchers; pitcher
// regions do not encode a position of their own.
const PitcherPosition = "P"

// Record is one flattened output row: player fields merged with team, game
// and date context. Values are scalars (string, int, bool) or nil for absent.
type Record map[string]any

// RecordColumns is the canonical column order for tabular export. Pitcher
// records carry no "Order" key; absent keys render as empty cells.
var RecordColumns = []string{
	"Date",
	"Time",
	"Farenheit",
	"Precipitation",
	"Is Home",
	"Team Name",
	"Team Abbreviation",
	"Opponent Name",
	"Opponent Abbreviation",
	"ID",
	"Name",
	"Handedness",
	"Position",
	"Order",
}

// Identity is the league-facing identity shared by batters and pitchers.
type Identity struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Batter is one slot in a team's batting rotation. Order is nil when the
// source listed the player without a leading numeral.
type Batter struct {
	Identity
	Handedness string `json:"handedness"`
	Position   string `json:"position"`
	Order      *int   `json:"order"`
}

// Record returns the batter's own fields. The Order key is always present,
// nil when the order could not be read.
func (b *Batter) Record() Record {
	r := Record{
		"ID":         b.ID,
		"Name":       b.Name,
		"Handedness": b.Handedness,
		"Position":   b.Position,
	}
	if b.Order != nil {
		r["Order"] = *b.Order
	} else {
		r["Order"] = nil
	}
	return r
}

// Pitcher is a team's starting pitcher. A zero Pitcher (Announced false) is
// the placeholder for an unannounced starter: a valid state, not an error.
type Pitcher struct {
	Identity
	Handedness string `json:"handedness,omitempty"`
	Announced  bool   `json:"announced"`
}

// Record returns the pitcher's own fields. Placeholder pitchers keep the
// identity keys present with nil values.
func (p *Pitcher) Record() Record {
	if !p.Announced {
		return Record{
			"ID":         nil,
			"Name":       nil,
			"Handedness": nil,
			"Position":   nil,
		}
	}
	return Record{
		"ID":         p.ID,
		"Name":       p.Name,
		"Handedness": p.Handedness,
		"Position":   PitcherPosition,
	}
}

// Team is one side of a game. Rotation is empty when the lineup has not been
// released yet.
type Team struct {
	Name         string   `json:"name"`
	Abbreviation string   `json:"abbreviation"`
	Pitcher      Pitcher  `json:"pitcher"`
	Rotation     []Batter `json:"rotation"`
}

// Records returns the team's player rows, pitcher first then the rotation in
// batting order, each annotated with the team's name and abbreviation.
func (t *Team) Records() []Record {
	rs := make([]Record, 0, len(t.Rotation)+1)
	rs = append(rs, t.Pitcher.Record())
	for i := range t.Rotation {
		rs = append(rs, t.Rotation[i].Record())
	}
	for _, r := range rs {
		r["Team Name"] = t.Name
		r["Team Abbreviation"] = t.Abbreviation
	}
	return rs
}

// Game is one scheduled game. Time stays free text; Farenheit and
// Precipitation are nil when the weather region carried no numeric value.
type Game struct {
	Home          Team   `json:"home"`
	Away          Team   `json:"away"`
	Time          string `json:"time"`
	Farenheit     *int   `json:"farenheit"`
	Precipitation *int   `json:"precipitation"`
}

// Records returns one row per player on both sides, home side first. Every
// row carries the shared game context plus the opposing team's identity, a
// deliberate denormalization for downstream tabular analysis.
func (g *Game) Records() []Record {
	var rs []Record
	rs = append(rs, g.sideRecords(&g.Home, &g.Away, true)...)
	rs = append(rs, g.sideRecords(&g.Away, &g.Home, false)...)
	return rs
}

func (g *Game) sideRecords(team, opp *Team, isHome bool) []Record {
	rs := team.Records()
	for _, r := range rs {
		r["Time"] = g.Time
		r["Is Home"] = isHome
		r["Opponent Name"] = opp.Name
		r["Opponent Abbreviation"] = opp.Abbreviation
		if g.Farenheit != nil {
			r["Farenheit"] = *g.Farenheit
		} else {
			r["Farenheit"] = nil
		}
		if g.Precipitation != nil {
			r["Precipitation"] = *g.Precipitation
		} else {
			r["Precipitation"] = nil
		}
	}
	return rs
}

// DateGames is the root of one date's extraction: an ISO calendar date plus
// its games in document order.
type DateGames struct {
	Date  string  `json:"date"`
	Games []*Game `json:"games"`

	records []Record
}

// New binds a date's extracted games. A successful extraction must yield at
// least one game; an empty slice returns ErrNoGames.
func New(date string, games []*Game) (*DateGames, error) {
	if len(games) == 0 {
		return nil, fmt.Errorf("lineups for %s: %w", date, ErrNoGames)
	}
	return &DateGames{Date: date, Games: games}, nil
}

// Records flattens every game into player rows, each stamped with the date.
// The result is computed once and cached; the model is read-only after
// construction, so repeated calls return identical output.
func (d *DateGames) Records() []Record {
	if d.records != nil {
		return d.records
	}
	var rs []Record
	for _, g := range d.Games {
		rs = append(rs, g.Records()...)
	}
	for _, r := range rs {
		r["Date"] = d.Date
	}
	d.records = rs
	return rs
}
