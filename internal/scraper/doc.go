// Package scraper fetches and parses a day's starting-lineup page.
//
// Parse is the pure extraction entry point: it walks the document for valid
// game cards and builds a lineup.DateGames. FetchDate wraps it with the HTTP
// fetch for a given ISO date, retrying transient failures with exponential
// backoff. Field-level absences (unannounced pitchers, unreleased lineups,
// missing weather values) are folded into the model; missing structural
// regions surface as parse errors.
package scraper
