// Package lineup defines the domain model for a day's MLB starting lineups.
//
// A DateGames holds one calendar date's games; each Game holds a home and an
// away Team; each Team holds its starting Pitcher and batting Rotation. The
// model is read-only once constructed. Records flattens the hierarchy into
// one row per player for tabular analysis, and Snapshot/Diff track which
// players were newly posted between runs.
package lineup
