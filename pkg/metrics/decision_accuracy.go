package metrics

import "agentgauge/pkg/core"

// DecisionAccuracy scores exact decision matches, e.g. approve/deny/escalate
// (layer 2).
type DecisionAccuracy struct {
	core.Base
}

// NewDecisionAccuracy builds the metric. The original default threshold is
// 0.95 with critical severity.
func NewDecisionAccuracy(threshold float64, severity core.Severity) (*DecisionAccuracy, error) {
	base, err := core.NewBase("Decision Accuracy", 2, threshold, severity, "Measures accuracy of agent decisions")
	if err != nil {
		return nil, err
	}
	return &DecisionAccuracy{Base: base}, nil
}

func (m *DecisionAccuracy) Evaluate(output core.Output, groundTruth map[string]any, _ core.EvalContext) core.MetricResult {
	predicted, predictedOK := fieldOf(output, "decision")
	expected, expectedOK := fieldOf(groundTruth, "decision")
	if !predictedOK || !expectedOK {
		return m.Fail("Missing decision field")
	}

	match := stringify(predicted) == stringify(expected)
	score := 0.0
	if match {
		score = 1.0
	}
	return m.Result(score, map[string]any{
		"predicted": predicted,
		"expected":  expected,
		"match":     match,
	}, "Review decision-making logic and model training")
}
