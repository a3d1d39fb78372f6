package metrics

import (
	"fmt"
	"strings"

	"agentgauge/pkg/core"
)

// PolicyCompliance diffs agent behavior against the policy rules declared in
// the ground truth (layer 4). Any violation zeroes the score.
type PolicyCompliance struct {
	core.Base
}

// NewPolicyCompliance builds the metric. The original default threshold is
// 1.0 with critical severity.
func NewPolicyCompliance(threshold float64, severity core.Severity) (*PolicyCompliance, error) {
	base, err := core.NewBase("Policy Compliance", 4, threshold, severity, "Measures compliance with business policies")
	if err != nil {
		return nil, err
	}
	return &PolicyCompliance{Base: base}, nil
}

func (m *PolicyCompliance) Evaluate(output core.Output, groundTruth map[string]any, _ core.EvalContext) core.MetricResult {
	violations := policyViolations(output, groundTruth)

	if len(violations) > 0 {
		return m.Result(0.0, map[string]any{
			"violations":             violations,
			"total_policies_checked": len(violations),
			"compliant":              false,
		}, "Fix policy violations: "+strings.Join(violations, ", "))
	}

	return m.Result(1.0, map[string]any{
		"violations": []string{},
		"compliant":  true,
	}, "")
}

func policyViolations(output core.Output, groundTruth map[string]any) []string {
	var violations []string

	if compliant, ok := fieldOf(groundTruth, "policy_compliant"); ok {
		if flag, isBool := compliant.(bool); isBool && !flag {
			// A known-violating case: the agent must surface the violation.
			if !flagsViolation(output) {
				violations = append(violations, "Failed to detect policy violation")
			}
		}
	}

	if rules, ok := mapField(groundTruth, "policy_rules"); ok {
		for rule, expected := range rules {
			actual, _ := fieldOf(output, rule)
			if stringify(actual) != stringify(expected) {
				violations = append(violations, fmt.Sprintf("%s: expected %v, got %v", rule, expected, actual))
			}
		}
	}

	return violations
}

func flagsViolation(output core.Output) bool {
	return boolField(output, "policy_violation") || output.StringField("error") == "policy_violation"
}
