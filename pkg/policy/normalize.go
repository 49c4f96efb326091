package policy

import (
	"strings"
	"time"
)

// NormalizePackage trims whitespace and preserves case: package registries
// are case-sensitive in general.
func NormalizePackage(name string) string {
	return strings.TrimSpace(name)
}

// NormalizeAdvisory trims and lowercases: GHSA IDs and URLs are matched
// case-insensitively to avoid spurious mismatches.
func NormalizeAdvisory(advisory string) string {
	return strings.ToLower(strings.TrimSpace(advisory))
}

// NormalizeSeverity trims and lowercases. An absent severity normalizes to
// the empty string, which never equals any real severity.
func NormalizeSeverity(severity string) string {
	return strings.ToLower(strings.TrimSpace(severity))
}

const dateLayout = "2006-01-02"

// ParseDate accepts strict ISO-8601 calendar dates only; anything else is an
// invalid-date error, not a best-effort parse.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}

// Today returns the current calendar date at UTC midnight. It is read once
// at the start of a run and held constant for every comparison within it.
func Today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
