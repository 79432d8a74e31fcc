package lineup

import (
	"regexp"
	"strconv"
	"strings"
)

var digitRun = regexp.MustCompile(`\d+`)

// ExtractInt returns the first contiguous run of decimal digits in text.
// ok is false when text carries no digits at all, which callers must treat
// as distinct from a literal zero (weather and batting-order fields may be
// textually missing).
func ExtractInt(text string) (n int, ok bool) {
	m := digitRun.FindString(text)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

// CleanLines splits text into lines, drops blank and whitespace-only lines,
// and trims the remainder. Player regions stack their fields (order line,
// name line, stat line) in one text blob; this recovers them.
func CleanLines(text string) []string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		cleaned = append(cleaned, line)
	}
	return cleaned
}
