package metrics

import "agentgauge/pkg/core"

// IntentAccuracy scores exact intent classification matches (layer 1).
type IntentAccuracy struct {
	core.Base
}

// NewIntentAccuracy builds the metric. The original default threshold is 0.9
// with critical severity.
func NewIntentAccuracy(threshold float64, severity core.Severity) (*IntentAccuracy, error) {
	base, err := core.NewBase("Intent Accuracy", 1, threshold, severity, "Measures accuracy of intent classification")
	if err != nil {
		return nil, err
	}
	return &IntentAccuracy{Base: base}, nil
}

func (m *IntentAccuracy) Evaluate(output core.Output, groundTruth map[string]any, _ core.EvalContext) core.MetricResult {
	predicted, predictedOK := fieldOf(output, "intent")
	expected, expectedOK := fieldOf(groundTruth, "intent")

	if !predictedOK || !expectedOK {
		return m.Fail("Missing intent field")
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
	}, "Review intent classification logic and training data")
}
