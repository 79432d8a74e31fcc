package scraper

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"
	"github.com/pfrederiksen/bp-lineups/internal/lineup"
	"github.com/pfrederiksen/bp-lineups/internal/logger"
)

const (
	LineupsURL = "https://www.baseballpress.com/lineups"
	UserAgent  = "bp-lineups-cli/1.0 (github.com/pfrederiksen/bp-lineups)"
	Timeout    = 30 * time.Second
	MaxRetries = 3
)

// Scraper handles fetching and parsing daily starting-lineup pages
type Scraper struct {
	client *http.Client
	url    string
}

// New creates a new Scraper instance
func New() *Scraper {
	return &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		url: LineupsURL,
	}
}

// FetchDate fetches the lineup page for the given ISO date (YYYY-MM-DD) and
// extracts it into a DateGames.
func (s *Scraper) FetchDate(date string) (*lineup.DateGames, error) {
	body, err := s.fetch(fmt.Sprintf("%s/%s", s.url, date))
	if err != nil {
		return nil, fmt.Errorf("fetching lineups for %s: %w", date, err)
	}
	defer body.Close()

	return s.Parse(body, date)
}

// fetch performs the GET with retries on transport errors and 5xx responses.
// Non-retryable statuses fail immediately.
func (s *Scraper) fetch(url string) (io.ReadCloser, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	var body io.ReadCloser
	attempt := 0
	operation := func() error {
		attempt++
		resp, err := s.client.Do(req)
		if err != nil {
			logger.Warn("fetch attempt failed", logger.Fields{
				"url":     url,
				"attempt": attempt,
			})
			return fmt.Errorf("fetching page: %w", err)
		}
		if resp.StatusCode >= 500 {
			resp.Body.Close()
			logger.Warn("fetch attempt failed", logger.Fields{
				"url":     url,
				"attempt": attempt,
				"status":  resp.StatusCode,
			})
			return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return backoff.Permanent(fmt.Errorf("unexpected status code: %d", resp.StatusCode))
		}
		body = resp.Body
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), MaxRetries)); err != nil {
		return nil, err
	}
	return body, nil
}

// Parse extracts a full day's document into a DateGames. It returns an error
// wrapping lineup.ErrNoGames when the page holds no valid game cards, which
// callers distinguish from structural parse failures via errors.Is.
func (s *Scraper) Parse(r io.Reader, date string) (*lineup.DateGames, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	cards := findGameCards(doc)

	games := make([]*lineup.Game, 0, len(cards))
	for i, card := range cards {
		game, err := parseGame(card)
		if err != nil {
			return nil, fmt.Errorf("parsing game card %d: %w", i, err)
		}
		games = append(games, game)
	}

	return lineup.New(date, games)
}

// findGameCards locates the lineups section and returns its valid game cards
// in document order. Promotional cards share the card class but carry no
// data-league attribute; those are discarded.
func findGameCards(doc *goquery.Document) []*goquery.Selection {
	var section *goquery.Selection
	doc.Find(".ccm-page > .container").EachWithBreak(func(_ int, c *goquery.Selection) bool {
		if s := c.Find(".lineups").First(); s.Length() > 0 {
			section = s
			return false
		}
		return true
	})
	if section == nil {
		return nil
	}

	var cards []*goquery.Selection
	section.Find(".lineup-col").Each(func(_ int, card *goquery.Selection) {
		if _, ok := card.Attr("data-league"); ok {
			cards = append(cards, card)
		}
	})
	return cards
}
