package reporter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/audit-exception-gate/pkg/policy"
)

func TestRenderEmptyResult(t *testing.T) {
	assert.Equal(t, "", Render(&policy.Result{}))
}

func TestRenderFixedSectionOrder(t *testing.T) {
	result := &policy.Result{
		ExceptionErrors: []string{"Exception missing required fields [mitigation]: lodash"},
		FindingErrors:   []string{"High/Critical vulnerability missing advisory id: qs (high)"},
		MismatchErrors:  []string{"Exception severity mismatch: lodash (cve-1) expected critical, got high"},
		Missing: []policy.MissingException{
			{Package: "lodash", Severity: "critical", AdvisoryID: "cve-2021-1234", Title: "Prototype Pollution"},
		},
		Expired: []policy.ExpiredException{
			{Package: "minimist", Severity: "high", AdvisoryID: "ghsa-1", ExpiredOn: "2000-01-01"},
		},
	}

	want := "Exception missing required fields [mitigation]: lodash\n" +
		"High/Critical vulnerability missing advisory id: qs (high)\n" +
		"Exception severity mismatch: lodash (cve-1) expected critical, got high\n" +
		"High/Critical vulnerabilities missing exceptions:\n" +
		"- lodash (critical) [cve-2021-1234]: Prototype Pollution\n" +
		"Exceptions expired:\n" +
		"- minimist (high) [ghsa-1] expired on 2000-01-01"
	assert.Equal(t, want, Render(result))
}

func TestRenderMissingLineOmitsEmptySegments(t *testing.T) {
	tests := []struct {
		name    string
		missing policy.MissingException
		want    string
	}{
		{
			"all segments",
			policy.MissingException{Package: "a", Severity: "high", AdvisoryID: "cve-1", Title: "t"},
			"- a (high) [cve-1]: t",
		},
		{
			"no title",
			policy.MissingException{Package: "a", Severity: "high", AdvisoryID: "cve-1"},
			"- a (high) [cve-1]",
		},
		{
			"no advisory or title",
			policy.MissingException{Package: "a", Severity: "high"},
			"- a (high)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(&policy.Result{Missing: []policy.MissingException{tt.missing}})
			assert.Equal(t, "High/Critical vulnerabilities missing exceptions:\n"+tt.want, got)
		})
	}
}

func TestRenderIdempotent(t *testing.T) {
	result := &policy.Result{
		Missing: []policy.MissingException{
			{Package: "a", Severity: "high", AdvisoryID: "cve-1", Title: "t"},
			{Package: "b", Severity: "critical", AdvisoryID: "cve-2"},
		},
	}
	first := Render(result)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Render(result))
	}
}

func TestNewFactory(t *testing.T) {
	assert.IsType(t, &JSONReporter{}, New("json"))
	assert.IsType(t, &SARIFReporter{}, New("sarif"))
	assert.IsType(t, &TextReporter{}, New("text"))
	assert.IsType(t, &TextReporter{}, New(""))
}
