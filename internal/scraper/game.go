package scraper

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/bp-lineups/internal/lineup"
)

// teamRegions holds one side's sub-regions before field parsing.
type teamRegions struct {
	ids      *goquery.Selection
	pitcher  *goquery.Selection
	rotation *goquery.Selection
}

// gameRegions collects a game card's sub-regions across its header, body and
// footer. Regions are located up front so every structural expectation fails
// with a named error before any field extraction starts.
type gameRegions struct {
	timeCol       *goquery.Selection
	farenheit     *goquery.Selection
	precipitation *goquery.Selection
	home          teamRegions
	away          teamRegions
}

// parseGame extracts one validated game card into a Game.
func parseGame(card *goquery.Selection) (*lineup.Game, error) {
	regions, err := splitCard(card)
	if err != nil {
		return nil, err
	}

	home, err := parseTeam(regions.home)
	if err != nil {
		return nil, fmt.Errorf("parsing home team: %w", err)
	}
	away, err := parseTeam(regions.away)
	if err != nil {
		return nil, fmt.Errorf("parsing away team: %w", err)
	}

	game := &lineup.Game{
		Home: *home,
		Away: *away,
		// The time column may wrap a label plus the actual time string;
		// the last nested div holds the time.
		Time: strings.TrimSpace(regions.timeCol.Find("div").Last().Text()),
	}
	if n, ok := lineup.ExtractInt(regions.farenheit.Text()); ok {
		game.Farenheit = &n
	}
	if n, ok := lineup.ExtractInt(regions.precipitation.Text()); ok {
		game.Precipitation = &n
	}

	return game, nil
}

// splitCard locates the card's header, body and footer regions and binds
// their columns to the two sides. Home is always the first column, away the
// last.
func splitCard(card *goquery.Selection) (*gameRegions, error) {
	header := card.Find(".lineup-card-header").First()
	if header.Length() == 0 {
		return nil, fmt.Errorf("missing lineup card header")
	}
	body := card.Find(".lineup-card-body").First()
	if body.Length() == 0 {
		return nil, fmt.Errorf("missing lineup card body")
	}
	footer := card.Find(".lineup-card-footer").First()
	if footer.Length() == 0 {
		return nil, fmt.Errorf("missing lineup card footer")
	}

	regions := &gameRegions{}

	rows := header.Find(".row")
	if rows.Length() < 2 {
		return nil, fmt.Errorf("expected 2 header rows, got %d", rows.Length())
	}
	cols := rows.Eq(0).Find(".col")
	if cols.Length() < 3 {
		return nil, fmt.Errorf("expected 3 header columns, got %d", cols.Length())
	}
	regions.home.ids = cols.Eq(0)
	regions.timeCol = cols.Eq(1)
	regions.away.ids = cols.Last()

	pitchers := rows.Eq(1).Find(".player")
	if pitchers.Length() != 2 {
		return nil, fmt.Errorf("expected 2 starting pitchers, got %d", pitchers.Length())
	}
	regions.home.pitcher = pitchers.Eq(0)
	regions.away.pitcher = pitchers.Eq(1)

	rotations := body.Find(".col")
	if rotations.Length() != 2 {
		return nil, fmt.Errorf("expected 2 rotation columns, got %d", rotations.Length())
	}
	regions.home.rotation = rotations.Eq(0)
	regions.away.rotation = rotations.Eq(1)

	weather := footer.Find(".col-8").First()
	if weather.Length() == 0 {
		return nil, fmt.Errorf("missing weather column")
	}
	values := weather.Find("div")
	if values.Length() < 2 {
		return nil, fmt.Errorf("expected 2 weather values, got %d", values.Length())
	}
	regions.farenheit = values.Eq(0)
	regions.precipitation = values.Eq(1)

	return regions, nil
}

// parseTeam extracts one side's identity, starting pitcher and rotation.
func parseTeam(regions teamRegions) (*lineup.Team, error) {
	name := regions.ids.Find("div").First()
	if name.Length() == 0 {
		return nil, fmt.Errorf("missing team name element")
	}

	link, ok := regions.ids.Find("a").First().Attr("href")
	if !ok {
		return nil, fmt.Errorf("missing team link")
	}
	segments := strings.Split(link, "/")
	abbreviation := strings.ToUpper(strings.TrimSpace(segments[len(segments)-1]))

	pitcher, err := parsePitcher(regions.pitcher)
	if err != nil {
		return nil, fmt.Errorf("parsing pitcher: %w", err)
	}

	rotation, err := parseRotation(regions.rotation)
	if err != nil {
		return nil, fmt.Errorf("parsing rotation: %w", err)
	}

	return &lineup.Team{
		Name:         strings.TrimSpace(name.Text()),
		Abbreviation: abbreviation,
		Pitcher:      *pitcher,
		Rotation:     rotation,
	}, nil
}

// parseRotation extracts a team's batting rotation in document order. A
// region carrying the unreleased-lineup marker yields an empty rotation.
func parseRotation(region *goquery.Selection) ([]lineup.Batter, error) {
	if strings.Contains(strings.ToLower(region.Text()), "no lineup released") {
		return nil, nil
	}

	var rotation []lineup.Batter
	var parseErr error
	region.Find(".player").EachWithBreak(func(i int, p *goquery.Selection) bool {
		batter, err := parseBatter(p)
		if err != nil {
			parseErr = fmt.Errorf("batter %d: %w", i+1, err)
			return false
		}
		rotation = append(rotation, *batter)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return rotation, nil
}
