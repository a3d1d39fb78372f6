package metrics

import (
	"strings"

	"agentgauge/pkg/core"
)

// EdgeCaseHandling verifies boundary-condition behavior on test cases tagged
// "edge_case" (layer 4). Untagged cases score a trivial 1.0.
type EdgeCaseHandling struct {
	core.Base
}

// NewEdgeCaseHandling builds the metric. The original default threshold is
// 0.9 with warning severity.
func NewEdgeCaseHandling(threshold float64, severity core.Severity) (*EdgeCaseHandling, error) {
	base, err := core.NewBase("Edge Case Handling", 4, threshold, severity, "Measures handling of edge cases and boundary conditions")
	if err != nil {
		return nil, err
	}
	return &EdgeCaseHandling{Base: base}, nil
}

func (m *EdgeCaseHandling) Evaluate(output core.Output, groundTruth map[string]any, ectx core.EvalContext) core.MetricResult {
	if !ectx.TestCase.HasTag("edge_case") {
		return m.Result(1.0, map[string]any{
			"is_edge_case": false,
			"handled":      true,
		}, "")
	}

	handled := edgeCaseHandled(output, groundTruth)
	score := 0.0
	if handled {
		score = 1.0
	}
	return m.Result(score, map[string]any{
		"is_edge_case":   true,
		"handled":        handled,
		"edge_case_type": edgeCaseType(ectx.TestCase),
	}, "Improve edge case detection and handling logic")
}

func edgeCaseType(tc core.TestCase) string {
	for _, tag := range tc.Tags {
		if strings.HasPrefix(tag, "edge_") {
			return tag
		}
	}
	return "unknown"
}

func edgeCaseHandled(output core.Output, groundTruth map[string]any) bool {
	if expected, ok := fieldOf(groundTruth, "decision"); ok && expected != nil {
		actual, _ := fieldOf(output, "decision")
		return stringify(actual) == stringify(expected)
	}

	switch groundTruth["edge_case_handling"] {
	case "graceful_degradation":
		_, hasFallback := fieldOf(output, "fallback")
		return extractError(output) == "" && hasFallback
	case "escalation":
		return boolField(output, "escalated")
	}

	return extractError(output) == ""
}
