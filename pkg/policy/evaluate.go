package policy

import (
	"fmt"
	"time"

	"github.com/audit-exception-gate/pkg/audit"
	"github.com/audit-exception-gate/pkg/exceptions"
)

// requiredFields is checked in declaration order so malformed-exception
// messages are deterministic.
var requiredFields = []string{"package", "advisory", "severity", "mitigation", "expires_on"}

// DefaultSeverities is the gate set: findings at these severities must be
// remediated or waived.
var DefaultSeverities = []string{"high", "critical"}

// Key is the normalized (package, advisory) pair findings and exceptions are
// joined on.
type Key struct {
	Package  string
	Advisory string
}

// Exception is an indexed exception-list entry: the raw record plus its
// normalized severity and parsed expiry.
type Exception struct {
	Record    exceptions.Record
	Severity  string
	ExpiresOn time.Time
}

// MissingException is a high/critical finding with no matching exception.
type MissingException struct {
	Package    string `json:"package"`
	Severity   string `json:"severity"`
	AdvisoryID string `json:"advisory_id"`
	Title      string `json:"title,omitempty"`
}

// ExpiredException is a matched exception whose expiry date has passed.
type ExpiredException struct {
	Package    string `json:"package"`
	Severity   string `json:"severity"`
	AdvisoryID string `json:"advisory_id"`
	ExpiredOn  string `json:"expired_on"`
}

// Result accumulates everything one evaluation pass surfaces. The run never
// stops at the first problem: a single CI run reports the complete
// remediation checklist.
type Result struct {
	ExceptionErrors []string           `json:"exception_errors,omitempty"`
	FindingErrors   []string           `json:"finding_errors,omitempty"`
	MismatchErrors  []string           `json:"mismatch_errors,omitempty"`
	Missing         []MissingException `json:"missing_exceptions,omitempty"`
	Expired         []ExpiredException `json:"expired_exceptions,omitempty"`
}

// HasViolations reports whether any diagnostic was produced; the gate fails
// iff so.
func (r *Result) HasViolations() bool {
	return len(r.ExceptionErrors)+len(r.FindingErrors)+len(r.MismatchErrors)+
		len(r.Missing)+len(r.Expired) > 0
}

// Options controls one evaluation run.
type Options struct {
	// Severities is the gate set; empty means DefaultSeverities.
	Severities []string
	// Today is the evaluation date; zero means Today().
	Today time.Time
}

// Evaluate builds the exception index from the raw records, then classifies
// every gated finding against it. All state lives in the returned Result;
// nothing persists across runs.
func Evaluate(records []exceptions.Record, findings []audit.Finding, opts Options) *Result {
	result := &Result{}
	index := buildIndex(records, result)

	gate := opts.Severities
	if len(gate) == 0 {
		gate = DefaultSeverities
	}
	gated := make(map[string]bool, len(gate))
	for _, s := range gate {
		gated[NormalizeSeverity(s)] = true
	}

	today := opts.Today
	if today.IsZero() {
		today = Today()
	}

	seen := make(map[Key]bool)
	for _, f := range findings {
		severity := NormalizeSeverity(f.Severity)
		pkg := NormalizePackage(f.Package)
		if !gated[severity] || pkg == "" {
			continue
		}
		advisory := NormalizeAdvisory(f.AdvisoryID)
		if advisory == "" {
			// Cannot be matched to any exception; silently allowing it would
			// defeat the gate.
			result.FindingErrors = append(result.FindingErrors,
				fmt.Sprintf("High/Critical vulnerability missing advisory id: %s (%s)", pkg, severity))
			continue
		}
		key := Key{Package: pkg, Advisory: advisory}
		if seen[key] {
			continue
		}
		seen[key] = true

		exc, ok := index[key]
		if !ok {
			result.Missing = append(result.Missing, MissingException{
				Package:    pkg,
				Severity:   severity,
				AdvisoryID: advisory,
				Title:      f.Title,
			})
			continue
		}
		// Mismatch and expiry are independent checks, not mutually exclusive.
		if exc.Severity != "" && exc.Severity != severity {
			result.MismatchErrors = append(result.MismatchErrors,
				fmt.Sprintf("Exception severity mismatch: %s (%s) expected %s, got %s",
					pkg, advisory, severity, exc.Severity))
		}
		if exc.ExpiresOn.Before(today) {
			result.Expired = append(result.Expired, ExpiredException{
				Package:    pkg,
				Severity:   severity,
				AdvisoryID: advisory,
				ExpiredOn:  exc.ExpiresOn.Format(dateLayout),
			})
		}
	}
	return result
}

// buildIndex validates each raw record and inserts the good ones. Malformed
// records are reported and skipped, never inserted; on a duplicate key the
// first-inserted entry stays authoritative.
func buildIndex(records []exceptions.Record, result *Result) map[Key]*Exception {
	index := make(map[Key]*Exception, len(records))
	for _, record := range records {
		var missing []string
		for _, field := range requiredFields {
			if record[field] == "" {
				missing = append(missing, field)
			}
		}
		if len(missing) > 0 {
			result.ExceptionErrors = append(result.ExceptionErrors,
				fmt.Sprintf("Exception missing required fields %v: %s", missing, packageLabel(record)))
			continue
		}
		expiresOn, err := ParseDate(record["expires_on"])
		if err != nil {
			result.ExceptionErrors = append(result.ExceptionErrors,
				fmt.Sprintf("Exception has invalid expires_on date: %s", packageLabel(record)))
			continue
		}
		pkg := NormalizePackage(record["package"])
		advisory := NormalizeAdvisory(record["advisory"])
		if pkg == "" || advisory == "" {
			result.ExceptionErrors = append(result.ExceptionErrors,
				"Exception missing package or advisory value")
			continue
		}
		key := Key{Package: pkg, Advisory: advisory}
		if _, exists := index[key]; exists {
			result.ExceptionErrors = append(result.ExceptionErrors,
				fmt.Sprintf("Duplicate exception for %s advisory %s", pkg, record["advisory"]))
			continue
		}
		index[key] = &Exception{
			Record:    record,
			Severity:  NormalizeSeverity(record["severity"]),
			ExpiresOn: expiresOn,
		}
	}
	return index
}

func packageLabel(record exceptions.Record) string {
	if pkg := record["package"]; pkg != "" {
		return pkg
	}
	return "<unknown>"
}
