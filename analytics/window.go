package analytics

import (
	"math"
	"regexp"
	"strconv"
)

const (
	minWindowDays = 1
	maxWindowDays = 365

	// DefaultShortDays and DefaultLongDays apply when neither the message
	// nor the caller names a window.
	DefaultShortDays = 7
	DefaultLongDays  = 30
)

var (
	phraseDaysRe = regexp.MustCompile(`(?i)\b(?:last|past|for|in)\s+(\d+)\s+days?\b`)
	bareDaysRe   = regexp.MustCompile(`(?i)\b(\d+)\s+days?\b`)
)

// ResolveWindow turns a free-text message plus an optional numeric override
// into the short and long day windows used by every downstream query. An
// explicit mention like "last 14 days" (or a bare "14 days") forces both
// windows to that value, then the override, then the 7/30 defaults. Values
// are silently clamped to [1, 365].
func ResolveWindow(message string, override *float64) (shortDays, longDays int) {
	if m := phraseDaysRe.FindStringSubmatch(message); m != nil {
		n := clampWindow(parseDays(m[1]))
		return n, n
	}
	if m := bareDaysRe.FindStringSubmatch(message); m != nil {
		n := clampWindow(parseDays(m[1]))
		return n, n
	}
	if override != nil && !math.IsNaN(*override) && !math.IsInf(*override, 0) {
		n := clampWindow(int(*override))
		return n, n
	}
	return DefaultShortDays, DefaultLongDays
}

// parseDays ignores range errors; absurdly long digit runs saturate and get
// clamped like any other out-of-range value.
func parseDays(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func clampWindow(n int) int {
	if n < minWindowDays {
		return minWindowDays
	}
	if n > maxWindowDays {
		return maxWindowDays
	}
	return n
}
