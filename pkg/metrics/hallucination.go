package metrics

import (
	"strings"

	"agentgauge/pkg/core"
)

// Indicators of unsupported claims. Deliberately a cheap heuristic; real
// grounding checks need fact verification or an external judge.
var hallucinationIndicators = []string{
	"i don't have access",
	"i cannot verify",
	"according to my knowledge",
	"as far as i know",
	"i believe",
	"probably",
	"might be",
}

// HallucinationDetection flags hallucinated or unsupported claims in the
// response text (layer 2). The ground truth may declare a hallucination as
// expected, in which case detecting one is the passing outcome.
type HallucinationDetection struct {
	core.Base
}

// NewHallucinationDetection builds the metric. The original default threshold
// is 0.9 with critical severity.
func NewHallucinationDetection(threshold float64, severity core.Severity) (*HallucinationDetection, error) {
	base, err := core.NewBase("Hallucination Detection", 2, threshold, severity, "Detects hallucinated or unsupported information")
	if err != nil {
		return nil, err
	}
	return &HallucinationDetection{Base: base}, nil
}

func (m *HallucinationDetection) Evaluate(output core.Output, groundTruth map[string]any, _ core.EvalContext) core.MetricResult {
	response := output.StringField("response")
	if response == "" {
		response = output.StringField("text")
	}
	if response == "" {
		return m.Fail("No response text found")
	}

	expected := boolField(groundTruth, "hallucination_expected")
	detected := containsIndicator(response)

	score := 0.0
	if detected == expected {
		score = 1.0
	}
	return m.Result(score, map[string]any{
		"hallucination_detected": detected,
		"hallucination_expected": expected,
		"response_length":        len(response),
	}, "Improve grounding and fact-checking in responses")
}

func containsIndicator(response string) bool {
	lower := strings.ToLower(response)
	for _, indicator := range hallucinationIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}
