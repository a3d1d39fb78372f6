package metrics

import "agentgauge/pkg/core"

// EntityExtraction scores named-entity extraction with a pairwise F1 over the
// predicted and expected entity maps (layer 1).
type EntityExtraction struct {
	core.Base
}

// NewEntityExtraction builds the metric. The original default threshold is
// 0.85 with warning severity.
func NewEntityExtraction(threshold float64, severity core.Severity) (*EntityExtraction, error) {
	base, err := core.NewBase("Entity Extraction Accuracy", 1, threshold, severity, "Measures accuracy of entity extraction")
	if err != nil {
		return nil, err
	}
	return &EntityExtraction{Base: base}, nil
}

func (m *EntityExtraction) Evaluate(output core.Output, groundTruth map[string]any, _ core.EvalContext) core.MetricResult {
	predicted, predictedOK := mapField(output, "entities")
	expected, expectedOK := mapField(groundTruth, "entities")
	if !predictedOK || !expectedOK {
		return m.Fail("Missing entities field")
	}

	f1, precision, recall := pairF1(predicted, expected)
	return m.Result(f1, map[string]any{
		"predicted": predicted,
		"expected":  expected,
		"precision": precision,
		"recall":    recall,
		"f1_score":  f1,
	}, "Review entity extraction logic and improve NER model")
}
