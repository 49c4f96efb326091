package audit

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Report is a decoded audit document. Producers have emitted two schemas
// over time: the legacy top-level "advisories" map and the modern
// "vulnerabilities" map. A document may carry either or both; each shape is
// probed independently and ignored if absent or of an unexpected type.
type Report struct {
	Advisories      map[string]LegacyAdvisory
	Vulnerabilities map[string]Vulnerability
}

// LegacyAdvisory is one entry of the legacy "advisories" map.
type LegacyAdvisory struct {
	ModuleName       string          `json:"module_name"`
	Name             string          `json:"name"`
	Severity         string          `json:"severity"`
	GithubAdvisoryID string          `json:"github_advisory_id"`
	URL              string          `json:"url"`
	CVEs             []string        `json:"cves"`
	ID               json.RawMessage `json:"id"` // number or string
	Title            string          `json:"title"`
	Advisory         string          `json:"advisory"`
	Overview         string          `json:"overview"`
}

// Vulnerability is one entry of the modern "vulnerabilities" map, keyed by
// package name. Via is either a single string or a list mixing strings and
// records, so it stays raw until extraction.
type Vulnerability struct {
	Severity string          `json:"severity"`
	Via      json.RawMessage `json:"via"`
}

type viaRecord struct {
	GithubAdvisoryID string          `json:"github_advisory_id"`
	URL              string          `json:"url"`
	Source           json.RawMessage `json:"source"` // numeric advisory ID or string
	Title            string          `json:"title"`
	Name             string          `json:"name"`
	Advisory         string          `json:"advisory"`
}

// Parse decodes an audit document. The document must be a JSON mapping;
// anything else is fatal, because the gate cannot evaluate policy against a
// report it cannot read. Shape fields of the wrong type are tolerated and
// skipped, matching how producers drift between versions.
func Parse(data []byte) (*Report, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("audit report is not a JSON mapping: %w", err)
	}

	report := &Report{}
	if raw, ok := doc["advisories"]; ok {
		var advisories map[string]LegacyAdvisory
		if err := json.Unmarshal(raw, &advisories); err == nil {
			report.Advisories = advisories
		}
	}
	if raw, ok := doc["vulnerabilities"]; ok {
		var vulnerabilities map[string]Vulnerability
		if err := json.Unmarshal(raw, &vulnerabilities); err == nil {
			report.Vulnerabilities = vulnerabilities
		}
	}
	return report, nil
}

// rawString renders a scalar JSON value the way the identifier chains need
// it: strings verbatim, numbers as their literal text, everything else
// (null, absent, arrays, objects) as empty.
func rawString(raw json.RawMessage) string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// firstNonEmpty implements the field-priority fallback chains: candidates
// are evaluated left to right and the first non-empty one wins.
func firstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
