package reporter

import (
	"github.com/audit-exception-gate/pkg/policy"
)

type Reporter interface {
	Report(result *policy.Result) error
}

func New(format string) Reporter {
	switch format {
	case "json":
		return &JSONReporter{}
	case "sarif":
		return &SARIFReporter{}
	default:
		return &TextReporter{}
	}
}
