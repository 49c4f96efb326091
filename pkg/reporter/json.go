package reporter

import (
	"encoding/json"
	"os"

	"github.com/audit-exception-gate/pkg/policy"
)

type JSONReporter struct{}

func (r *JSONReporter) Report(result *policy.Result) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	type output struct {
		Violations bool           `json:"violations"`
		Result     *policy.Result `json:"result"`
	}

	return enc.Encode(output{
		Violations: result.HasViolations(),
		Result:     result,
	})
}
