package audit

import (
	"encoding/json"
	"strings"
)

// Finding is one vulnerability instance in the uniform shape both schemas
// normalize into. Values are raw; key normalization happens in pkg/policy.
type Finding struct {
	Package    string `json:"package"`
	Severity   string `json:"severity"`
	AdvisoryID string `json:"advisory_id"`
	Title      string `json:"title"`
}

// Findings extracts the uniform finding stream from both schemas, legacy
// first. Map keys are walked in sorted order so identical documents always
// yield the same sequence.
func (r *Report) Findings() []Finding {
	var findings []Finding
	findings = append(findings, r.legacyFindings()...)
	findings = append(findings, r.modernFindings()...)
	return findings
}

// legacyFindings walks the "advisories" map. Each advisory record yields
// exactly one finding.
func (r *Report) legacyFindings() []Finding {
	var findings []Finding
	for _, key := range sortedKeys(r.Advisories) {
		adv := r.Advisories[key]

		firstCVE := ""
		if len(adv.CVEs) > 0 {
			firstCVE = adv.CVEs[0]
		}
		advisoryID := firstNonEmpty(
			adv.GithubAdvisoryID,
			adv.URL,
			firstCVE,
			rawString(adv.ID),
			adv.Title,
			adv.Advisory,
			adv.Overview,
		)
		title := firstNonEmpty(adv.Title, adv.Advisory, adv.Overview, adv.URL)

		findings = append(findings, Finding{
			Package:    firstNonEmpty(adv.ModuleName, adv.Name),
			Severity:   adv.Severity,
			AdvisoryID: advisoryID,
			Title:      title,
		})
	}
	return findings
}

// modernFindings walks the "vulnerabilities" map. Each package yields one
// finding per non-empty advisory identifier among its causal "via" entries,
// all sharing one joined title and the package's severity.
func (r *Report) modernFindings() []Finding {
	var findings []Finding
	for _, name := range sortedKeys(r.Vulnerabilities) {
		vuln := r.Vulnerabilities[name]
		advisoryIDs, titles := extractVia(vuln.Via)

		var fragments []string
		for _, t := range titles {
			if t != "" {
				fragments = append(fragments, t)
			}
		}
		title := strings.Join(fragments, "; ")

		for _, id := range advisoryIDs {
			if id == "" {
				continue
			}
			findings = append(findings, Finding{
				Package:    name,
				Severity:   vuln.Severity,
				AdvisoryID: id,
				Title:      title,
			})
		}
	}
	return findings
}

// extractVia decodes the polymorphic "via" field: a single string, or a list
// mixing strings and records. A string element is both its own advisory
// identifier and its own title fragment.
func extractVia(via json.RawMessage) (advisoryIDs, titles []string) {
	if len(via) == 0 {
		return nil, nil
	}

	var single string
	if err := json.Unmarshal(via, &single); err == nil {
		return []string{single}, []string{single}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(via, &items); err != nil {
		return nil, nil
	}
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			advisoryIDs = append(advisoryIDs, s)
			titles = append(titles, s)
			continue
		}
		var rec viaRecord
		if err := json.Unmarshal(item, &rec); err == nil {
			source := rawString(rec.Source)
			advisoryIDs = append(advisoryIDs, firstNonEmpty(rec.GithubAdvisoryID, rec.URL, source, rec.Title, rec.Name))
			titles = append(titles, firstNonEmpty(rec.Title, rec.URL, rec.Advisory, source))
		}
	}
	return advisoryIDs, titles
}
