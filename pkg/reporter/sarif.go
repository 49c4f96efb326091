package reporter

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/audit-exception-gate/pkg/policy"
)

type SARIFReporter struct{}

func (r *SARIFReporter) Report(result *policy.Result) error {
	sarif := map[string]interface{}{
		"$schema": "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json",
		"version": "2.1.0",
		"runs": []map[string]interface{}{
			{
				"tool": map[string]interface{}{
					"driver": map[string]interface{}{
						"name":           "audit-exception-gate",
						"informationUri": "https://github.com/audit-exception-gate",
						"rules":          buildRules(result),
					},
				},
				"results": buildResults(result),
			},
		},
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(sarif)
}

const policyErrorRuleID = "policy-error"

func buildRules(result *policy.Result) []map[string]interface{} {
	var rules []map[string]interface{}
	if len(result.ExceptionErrors)+len(result.FindingErrors)+len(result.MismatchErrors) > 0 {
		rules = append(rules, map[string]interface{}{
			"id":               policyErrorRuleID,
			"shortDescription": map[string]string{"text": "Malformed exception, unmatched finding, or severity mismatch"},
		})
	}
	for _, m := range result.Missing {
		rules = append(rules, map[string]interface{}{
			"id":               m.AdvisoryID,
			"shortDescription": map[string]string{"text": m.Title},
		})
	}
	for _, e := range result.Expired {
		rules = append(rules, map[string]interface{}{
			"id":               e.AdvisoryID,
			"shortDescription": map[string]string{"text": fmt.Sprintf("Exception for %s expired on %s", e.Package, e.ExpiredOn)},
		})
	}
	return rules
}

func buildResults(result *policy.Result) []map[string]interface{} {
	var results []map[string]interface{}

	appendError := func(message string) {
		results = append(results, map[string]interface{}{
			"ruleId":  policyErrorRuleID,
			"level":   "error",
			"message": map[string]string{"text": message},
		})
	}
	for _, msg := range result.ExceptionErrors {
		appendError(msg)
	}
	for _, msg := range result.FindingErrors {
		appendError(msg)
	}
	for _, msg := range result.MismatchErrors {
		appendError(msg)
	}

	for _, m := range result.Missing {
		results = append(results, map[string]interface{}{
			"ruleId":  m.AdvisoryID,
			"level":   "error",
			"message": map[string]string{"text": fmt.Sprintf("%s (%s) has no accepted-risk exception for %s", m.Package, m.Severity, m.AdvisoryID)},
		})
	}
	for _, e := range result.Expired {
		results = append(results, map[string]interface{}{
			"ruleId":  e.AdvisoryID,
			"level":   "error",
			"message": map[string]string{"text": fmt.Sprintf("Exception for %s (%s) [%s] expired on %s", e.Package, e.Severity, e.AdvisoryID, e.ExpiredOn)},
		})
	}
	return results
}
