package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pfrederiksen/bp-lineups/internal/lineup"
	"github.com/pfrederiksen/bp-lineups/internal/logger"
	"github.com/pfrederiksen/bp-lineups/internal/scraper"
	"github.com/pfrederiksen/bp-lineups/internal/storage"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess    = 0
	ExitError      = 1
	ExitNewPlayers = 2
)

var (
	flagDate    string
	flagDataDir string
	flagFormat  string
	flagTeam    string
	flagNewOnly bool
	flagRefresh bool
	flagVerbose bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bp-lineups",
		Short: "Fetch a day's MLB starting lineups as flat records",
		Long: `A CLI tool to fetch a day's MLB starting lineups.
Extracts each game's teams, starting pitchers and batting rotations into
flat per-player records, and can report players newly posted since the
last check.`,
		RunE: runCheck,
	}

	cmd.Flags().StringVar(&flagDate, "date", "", "Date to fetch, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&flagDataDir, "data-dir", "~/.local/share/bp-lineups", "Data directory for snapshots")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text, json or csv")
	cmd.Flags().StringVar(&flagTeam, "team", "", "Restrict output to one team abbreviation (e.g. NYY)")
	cmd.Flags().BoolVar(&flagNewOnly, "new-only", false, "Show only players posted since the last check")
	cmd.Flags().BoolVar(&flagRefresh, "refresh", false, "Refresh snapshot without showing records")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	return cmd
}

// runCheck is the main command logic
func runCheck(cmd *cobra.Command, args []string) error {
	date := strings.TrimSpace(flagDate)
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("invalid date %q (want YYYY-MM-DD)", flagDate)
	}

	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON && format != FormatCSV {
		return fmt.Errorf("invalid format: %s (must be 'text', 'json' or 'csv')", flagFormat)
	}

	if flagVerbose {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
	}

	store, err := storage.New(flagDataDir)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	sc := scraper.New()

	logger.Debug("fetching lineups", logger.Fields{"date": date, "url": scraper.LineupsURL})

	games, err := sc.FetchDate(date)
	if errors.Is(err, lineup.ErrNoGames) {
		// Off days and the off-season are expected; report and move on.
		result := &OutputResult{CheckedAt: time.Now().UTC(), Date: date, NewOnly: flagNewOnly}
		if err := WriteOutput(os.Stdout, result, format, flagVerbose); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		os.Exit(ExitSuccess)
		return nil
	}
	if err != nil {
		return fmt.Errorf("fetching lineups: %w", err)
	}

	records := games.Records()

	logger.Debug("extracted lineups", logger.Fields{
		"date":    date,
		"games":   len(games.Games),
		"records": len(records),
	})

	// Diff against the previous snapshot before overwriting it.
	var previous *lineup.Snapshot
	if flagNewOnly {
		previous, err = store.LoadSnapshot(date)
		if err != nil {
			return fmt.Errorf("loading snapshot: %w", err)
		}
	}

	if err := store.CreateSnapshotFromRecords(records, date); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}

	if flagRefresh {
		if format == FormatText {
			fmt.Println("Snapshot refreshed successfully.")
		}
		os.Exit(ExitSuccess)
		return nil
	}

	shown := records
	if flagNewOnly {
		shown = lineup.Diff(previous, records).NewPlayers
	}
	if flagTeam != "" {
		shown = filterByTeam(shown, flagTeam)
	}

	result := &OutputResult{
		CheckedAt:   time.Now().UTC(),
		Date:        date,
		GameCount:   len(games.Games),
		Records:     shown,
		RecordCount: len(shown),
		NewOnly:     flagNewOnly,
	}

	if err := WriteOutput(os.Stdout, result, format, flagVerbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if flagNewOnly && len(shown) > 0 {
		os.Exit(ExitNewPlayers)
	}
	os.Exit(ExitSuccess)
	return nil
}

// filterByTeam keeps records belonging to one club
func filterByTeam(records []lineup.Record, team string) []lineup.Record {
	team = strings.ToUpper(strings.TrimSpace(team))
	filtered := make([]lineup.Record, 0, len(records))
	for _, r := range records {
		if abbr, _ := r["Team Abbreviation"].(string); strings.EqualFold(abbr, team) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
