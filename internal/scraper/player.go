package scraper

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/bp-lineups/internal/lineup"
)

// unannouncedMarker is what pitcher regions carry when no starter has been
// named yet.
const unannouncedMarker = "TBD"

var parens = strings.NewReplacer("(", "", ")", "")

// parseIdentity resolves a player region's name and league ID. Responsive
// layouts embed a desktop and a mobile name variant; the desktop span wins
// when present, otherwise the whole anchor text is used.
func parseIdentity(region *goquery.Selection) (lineup.Identity, error) {
	a := region.Find("a").First()
	if a.Length() == 0 {
		return lineup.Identity{}, fmt.Errorf("missing player link")
	}

	name := strings.TrimSpace(a.Text())
	if span := a.Find(".desktop-name").First(); span.Length() > 0 {
		name = strings.TrimSpace(span.Text())
	}

	raw := a.AttrOr("data-mlb", "")
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return lineup.Identity{}, fmt.Errorf("player %q has no numeric mlb id (data-mlb=%q)", name, raw)
	}

	return lineup.Identity{ID: id, Name: name}, nil
}

// parseBatter extracts one rotation slot. The region's cleaned text stacks
// an order line first and a "(hand) position" stat line last. A digitless
// order line yields an absent order, not an error.
func parseBatter(region *goquery.Selection) (*lineup.Batter, error) {
	identity, err := parseIdentity(region)
	if err != nil {
		return nil, err
	}

	lines := lineup.CleanLines(region.Text())
	if len(lines) == 0 {
		return nil, fmt.Errorf("empty batter entry")
	}
	tokens := strings.Fields(lines[len(lines)-1])
	if len(tokens) < 2 {
		return nil, fmt.Errorf("malformed batter stat line %q", lines[len(lines)-1])
	}

	batter := &lineup.Batter{
		Identity:   identity,
		Handedness: parens.Replace(tokens[0]),
		Position:   tokens[1],
	}
	if n, ok := lineup.ExtractInt(lines[0]); ok {
		batter.Order = &n
	}
	return batter, nil
}

// parsePitcher extracts a starting pitcher. A region carrying the TBD marker
// yields the placeholder pitcher, which is a valid absent state rather than
// a parse failure.
func parsePitcher(region *goquery.Selection) (*lineup.Pitcher, error) {
	if strings.Contains(region.Text(), unannouncedMarker) {
		return &lineup.Pitcher{}, nil
	}

	identity, err := parseIdentity(region)
	if err != nil {
		return nil, err
	}

	lines := lineup.CleanLines(region.Text())
	if len(lines) == 0 {
		return nil, fmt.Errorf("empty pitcher entry")
	}

	return &lineup.Pitcher{
		Identity:   identity,
		Handedness: parens.Replace(lines[len(lines)-1]),
		Announced:  true,
	}, nil
}
