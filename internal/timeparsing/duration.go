package timeparsing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Jira's default time tracking calendar: an 8 hour day and a 5 day week.
const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 8 * secondsPerHour
	secondsPerWeek   = 5 * secondsPerDay
)

var workDurationRe = regexp.MustCompile(`^(\d+)([wdhm])$`)

// ParseWorkDuration converts a Jira-style duration ("2h 30m", "1d", "1w 2d")
// to seconds. Components may appear in any order but each unit at most once.
func ParseWorkDuration(s string) (int, error) {
	parts := strings.Fields(strings.TrimSpace(s))
	if len(parts) == 0 {
		return 0, fmt.Errorf("empty duration")
	}

	seen := map[string]bool{}
	total := 0
	for _, part := range parts {
		matches := workDurationRe.FindStringSubmatch(part)
		if matches == nil {
			return 0, fmt.Errorf("invalid duration component %q (expected forms like 2h, 30m, 1d, 1w)", part)
		}
		amount, err := strconv.Atoi(matches[1])
		if err != nil {
			return 0, fmt.Errorf("invalid duration amount %q", matches[1])
		}
		unit := matches[2]
		if seen[unit] {
			return 0, fmt.Errorf("duplicate %q component in %q", unit, s)
		}
		seen[unit] = true

		switch unit {
		case "w":
			total += amount * secondsPerWeek
		case "d":
			total += amount * secondsPerDay
		case "h":
			total += amount * secondsPerHour
		case "m":
			total += amount * secondsPerMinute
		}
	}

	if total == 0 {
		return 0, fmt.Errorf("duration %q is zero", s)
	}
	return total, nil
}

// FormatWorkDuration renders seconds as a Jira-style duration string, largest
// unit first. Sub-minute remainders are dropped; zero renders as "0m".
func FormatWorkDuration(seconds int) string {
	if seconds < secondsPerMinute {
		return "0m"
	}

	var parts []string
	for _, u := range []struct {
		size  int
		label string
	}{
		{secondsPerWeek, "w"},
		{secondsPerDay, "d"},
		{secondsPerHour, "h"},
		{secondsPerMinute, "m"},
	} {
		if n := seconds / u.size; n > 0 {
			parts = append(parts, fmt.Sprintf("%d%s", n, u.label))
			seconds -= n * u.size
		}
	}
	return strings.Join(parts, " ")
}
