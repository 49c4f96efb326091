package reporter

import (
	"fmt"
	"os"
	"strings"

	"github.com/audit-exception-gate/pkg/policy"
)

// TextReporter writes the human-readable violation report to stderr; stdout
// stays clean for the success confirmation.
type TextReporter struct{}

func (r *TextReporter) Report(result *policy.Result) error {
	_, err := fmt.Fprintln(os.Stderr, Render(result))
	return err
}

// Render assembles the diagnostic lines in their fixed order: malformed
// exceptions, malformed findings, severity mismatches, then the missing and
// expired listings under their headers.
func Render(result *policy.Result) string {
	var lines []string
	lines = append(lines, result.ExceptionErrors...)
	lines = append(lines, result.FindingErrors...)
	lines = append(lines, result.MismatchErrors...)

	if len(result.Missing) > 0 {
		lines = append(lines, "High/Critical vulnerabilities missing exceptions:")
		for _, m := range result.Missing {
			label := fmt.Sprintf("%s (%s)", m.Package, m.Severity)
			if m.AdvisoryID != "" {
				label = fmt.Sprintf("%s [%s]", label, m.AdvisoryID)
			}
			if m.Title != "" {
				label = fmt.Sprintf("%s: %s", label, m.Title)
			}
			lines = append(lines, "- "+label)
		}
	}

	if len(result.Expired) > 0 {
		lines = append(lines, "Exceptions expired:")
		for _, e := range result.Expired {
			lines = append(lines, fmt.Sprintf("- %s (%s) [%s] expired on %s",
				e.Package, e.Severity, e.AdvisoryID, e.ExpiredOn))
		}
	}

	return strings.Join(lines, "\n")
}
