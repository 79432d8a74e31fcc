// Package storage persists per-date lineup snapshots as JSON files in a
// data directory, so later runs can report which players were newly posted.
package storage
