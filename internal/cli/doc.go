// Package cli implements the command-line interface for bp-lineups.
//
// The cli package provides the Cobra-based CLI for fetching a date's starting
// lineups, formatting output (text/JSON/CSV), filtering by team, and tracking
// newly posted players across runs via snapshots. It coordinates the scraper,
// lineup, and storage packages.
package cli
