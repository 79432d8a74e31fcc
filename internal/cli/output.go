package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/pfrederiksen/bp-lineups/internal/lineup"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatCSV  OutputFormat = "csv"
)

// OutputResult contains data to be output
type OutputResult struct {
	CheckedAt   time.Time       `json:"checked_at"`
	Date        string          `json:"date"`
	GameCount   int             `json:"game_count"`
	Records     []lineup.Record `json:"records"`
	RecordCount int             `json:"record_count"`
	NewOnly     bool            `json:"new_only,omitempty"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatCSV:
		return writeCSV(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeCSV outputs one row per record, columns in lineup.RecordColumns order.
// Absent fields (and the pitcher rows' missing Order key) render as empty
// cells.
func writeCSV(w io.Writer, result *OutputResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(lineup.RecordColumns); err != nil {
		return err
	}
	row := make([]string, len(lineup.RecordColumns))
	for _, r := range result.Records {
		for i, col := range lineup.RecordColumns {
			row[i] = cellString(r[col])
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeText outputs results as human-readable text, grouped by team in
// record order.
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	if result.RecordCount == 0 {
		if result.NewOnly {
			fmt.Fprintf(w, "No new players posted for %s.\n", result.Date)
		} else {
			fmt.Fprintf(w, "No games scheduled for %s.\n", result.Date)
		}
		return nil
	}

	var teams []string
	grouped := make(map[string][]lineup.Record)
	for _, r := range result.Records {
		abbr := cellString(r["Team Abbreviation"])
		if _, seen := grouped[abbr]; !seen {
			teams = append(teams, abbr)
		}
		grouped[abbr] = append(grouped[abbr], r)
	}

	for _, abbr := range teams {
		records := grouped[abbr]
		fmt.Fprintf(w, "\n%s %s:\n", abbr, matchupContext(records[0]))
		for _, r := range records {
			fmt.Fprintf(w, "  %s\n", playerLine(r))
			if verbose {
				if id := cellString(r["ID"]); id != "" {
					fmt.Fprintf(w, "       ID: %s\n", id)
				}
			}
		}
	}
	fmt.Fprintf(w, "\nTotal: %d players across %d games\n", result.RecordCount, result.GameCount)

	return nil
}

// matchupContext renders the shared game fields of one team's records,
// e.g. "vs BOS, 7:05 PM ET, 72F".
func matchupContext(r lineup.Record) string {
	versus := "at"
	if isHome, _ := r["Is Home"].(bool); isHome {
		versus = "vs"
	}
	ctx := fmt.Sprintf("%s %s", versus, cellString(r["Opponent Abbreviation"]))
	if t := cellString(r["Time"]); t != "" {
		ctx += ", " + t
	}
	if f := cellString(r["Farenheit"]); f != "" {
		ctx += ", " + f + "F"
	}
	return ctx
}

// playerLine renders one record as a lineup slot. Pitcher rows carry no
// Order key and render as "P"; unannounced pitchers render as TBD.
func playerLine(r lineup.Record) string {
	slot := " P"
	if v, ok := r["Order"]; ok {
		if n, numeric := toInt(v); numeric {
			slot = fmt.Sprintf("%2d", n)
		} else {
			slot = " -"
		}
	}

	name := cellString(r["Name"])
	if name == "" {
		name = "TBD"
	}

	line := fmt.Sprintf("%s  %s", slot, name)
	if h := cellString(r["Handedness"]); h != "" {
		line += fmt.Sprintf(" (%s)", h)
	}
	if pos := cellString(r["Position"]); pos != "" && pos != lineup.PitcherPosition {
		line += " " + pos
	}
	return line
}

// cellString renders a record value as text; nil is an empty cell.
func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	case float64:
		// Snapshot round trips decode numbers as float64.
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

// toInt normalizes numeric record values
func toInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case float64:
		return int(x), true
	default:
		return 0, false
	}
}
