package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"agentgauge/pkg/core"
)

func TestIntentAccuracyExactMatch(t *testing.T) {
	metric, err := NewIntentAccuracy(0.9, core.SeverityCritical)
	require.NoError(t, err)
	require.Equal(t, 1, metric.Layer())

	result := metric.Evaluate(
		core.Output{"intent": "refund_request"},
		map[string]any{"intent": "refund_request"},
		core.EvalContext{},
	)
	require.Equal(t, 1.0, result.Score)
	require.True(t, result.Passed)

	result = metric.Evaluate(
		core.Output{"intent": "general_inquiry"},
		map[string]any{"intent": "refund_request"},
		core.EvalContext{},
	)
	require.Equal(t, 0.0, result.Score)
	require.False(t, result.Passed)
}

func TestIntentAccuracyMissingFieldFails(t *testing.T) {
	metric, err := NewIntentAccuracy(0.9, core.SeverityCritical)
	require.NoError(t, err)

	result := metric.Evaluate(core.Output{}, map[string]any{"intent": "x"}, core.EvalContext{})
	require.Equal(t, 0.0, result.Score)
	require.Equal(t, core.SeverityCritical, result.Severity)
	require.Equal(t, "Missing intent field", result.Details["error"])
}

func TestEntityExtractionF1(t *testing.T) {
	metric, err := NewEntityExtraction(0.85, core.SeverityWarning)
	require.NoError(t, err)

	// Perfect overlap.
	result := metric.Evaluate(
		core.Output{"entities": map[string]any{"order_id": "ORD1", "amount": 50.0}},
		map[string]any{"entities": map[string]any{"order_id": "ORD1", "amount": 50.0}},
		core.EvalContext{},
	)
	require.Equal(t, 1.0, result.Score)

	// One of two pairs correct on each side: precision 0.5, recall 0.5, F1 0.5.
	result = metric.Evaluate(
		core.Output{"entities": map[string]any{"order_id": "ORD1", "amount": 10.0}},
		map[string]any{"entities": map[string]any{"order_id": "ORD1", "amount": 50.0}},
		core.EvalContext{},
	)
	require.InDelta(t, 0.5, result.Score, 1e-9)
	require.InDelta(t, 0.5, result.Details["precision"], 1e-9)
	require.InDelta(t, 0.5, result.Details["recall"], 1e-9)
	require.False(t, result.Passed)
}

func TestEntityExtractionEmptyExpectations(t *testing.T) {
	metric, err := NewEntityExtraction(0.85, core.SeverityWarning)
	require.NoError(t, err)

	// Nothing expected, nothing predicted: perfect.
	result := metric.Evaluate(
		core.Output{"entities": map[string]any{}},
		map[string]any{"entities": map[string]any{}},
		core.EvalContext{},
	)
	require.Equal(t, 1.0, result.Score)

	// Spurious predictions against empty expectations score zero.
	result = metric.Evaluate(
		core.Output{"entities": map[string]any{"extra": "x"}},
		map[string]any{"entities": map[string]any{}},
		core.EvalContext{},
	)
	require.Equal(t, 0.0, result.Score)
}

func TestEntityExtractionNumericEquivalence(t *testing.T) {
	metric, err := NewEntityExtraction(0.85, core.SeverityWarning)
	require.NoError(t, err)

	// A JSON round trip turns 42 into 42.0; both must stringify the same.
	result := metric.Evaluate(
		core.Output{"entities": map[string]any{"amount": 42.0}},
		map[string]any{"entities": map[string]any{"amount": 42}},
		core.EvalContext{},
	)
	require.Equal(t, 1.0, result.Score)
}

func TestDecisionAccuracy(t *testing.T) {
	metric, err := NewDecisionAccuracy(0.95, core.SeverityCritical)
	require.NoError(t, err)
	require.Equal(t, 2, metric.Layer())

	result := metric.Evaluate(
		core.Output{"decision": "approved"},
		map[string]any{"decision": "approved"},
		core.EvalContext{},
	)
	require.Equal(t, 1.0, result.Score)

	result = metric.Evaluate(
		core.Output{"decision": "denied"},
		map[string]any{"decision": "approved"},
		core.EvalContext{},
	)
	require.Equal(t, 0.0, result.Score)
}

func TestHallucinationDetection(t *testing.T) {
	metric, err := NewHallucinationDetection(0.9, core.SeverityCritical)
	require.NoError(t, err)

	// Clean response, none expected.
	result := metric.Evaluate(
		core.Output{"response": "Your refund has been approved."},
		map[string]any{"hallucination_expected": false},
		core.EvalContext{},
	)
	require.Equal(t, 1.0, result.Score)
	require.Equal(t, false, result.Details["hallucination_detected"])

	// Hedging language when none was expected.
	result = metric.Evaluate(
		core.Output{"response": "It might be approved, probably."},
		map[string]any{"hallucination_expected": false},
		core.EvalContext{},
	)
	require.Equal(t, 0.0, result.Score)

	// Expected hallucination that was detected is the passing outcome.
	result = metric.Evaluate(
		core.Output{"response": "As far as I know, that is correct."},
		map[string]any{"hallucination_expected": true},
		core.EvalContext{},
	)
	require.Equal(t, 1.0, result.Score)

	// No response text at all is an internal failure.
	result = metric.Evaluate(core.Output{}, map[string]any{}, core.EvalContext{})
	require.Equal(t, "No response text found", result.Details["error"])
}

func TestAPILatencyScoring(t *testing.T) {
	metric, err := NewAPILatency(2000, 0.95, core.SeverityWarning)
	require.NoError(t, err)
	require.Equal(t, 3, metric.Layer())

	// At the ceiling.
	result := metric.Evaluate(core.Output{"latency_ms": 2000.0}, nil, core.EvalContext{})
	require.Equal(t, 1.0, result.Score)
	require.True(t, result.Passed)

	// Twice the ceiling degrades to 0.5.
	result = metric.Evaluate(core.Output{"latency_ms": 4000.0}, nil, core.EvalContext{})
	require.InDelta(t, 0.5, result.Score, 1e-9)
	require.False(t, result.Passed)

	// Falls back to the evaluator's measurement.
	result = metric.Evaluate(core.Output{}, nil, core.EvalContext{LatencyMS: 100})
	require.Equal(t, 1.0, result.Score)

	// No latency information anywhere.
	result = metric.Evaluate(core.Output{}, nil, core.EvalContext{})
	require.Equal(t, "No latency information available", result.Details["error"])
}

func TestTransactionSuccess(t *testing.T) {
	metric, err := NewTransactionSuccess(0.99, core.SeverityCritical)
	require.NoError(t, err)

	result := metric.Evaluate(core.Output{"success": true}, nil, core.EvalContext{})
	require.Equal(t, 1.0, result.Score)

	result = metric.Evaluate(core.Output{"status": "completed"}, nil, core.EvalContext{})
	require.Equal(t, 1.0, result.Score)

	result = metric.Evaluate(core.Output{"error": "upstream timeout"}, nil, core.EvalContext{})
	require.Equal(t, 0.0, result.Score)
	require.Equal(t, "upstream timeout", result.Details["error"])

	// No signal at all counts as success.
	result = metric.Evaluate(core.Output{"response": "ok"}, nil, core.EvalContext{})
	require.Equal(t, 1.0, result.Score)
}

func TestEdgeCaseHandling(t *testing.T) {
	metric, err := NewEdgeCaseHandling(0.9, core.SeverityWarning)
	require.NoError(t, err)

	// Untagged cases are trivially handled.
	result := metric.Evaluate(core.Output{}, nil, core.EvalContext{
		TestCase: core.TestCase{Tags: []string{"standard"}},
	})
	require.Equal(t, 1.0, result.Score)
	require.Equal(t, false, result.Details["is_edge_case"])

	edgeCase := core.TestCase{Tags: []string{"edge_case", "edge_boundary"}}

	// Decision match wins when the ground truth declares one.
	result = metric.Evaluate(
		core.Output{"decision": "denied"},
		map[string]any{"decision": "denied"},
		core.EvalContext{TestCase: edgeCase},
	)
	require.Equal(t, 1.0, result.Score)
	require.Equal(t, "edge_boundary", result.Details["edge_case_type"])

	result = metric.Evaluate(
		core.Output{"decision": "approved"},
		map[string]any{"decision": "denied"},
		core.EvalContext{TestCase: edgeCase},
	)
	require.Equal(t, 0.0, result.Score)

	// Escalation handling requires the escalated flag.
	result = metric.Evaluate(
		core.Output{"escalated": true},
		map[string]any{"edge_case_handling": "escalation"},
		core.EvalContext{TestCase: edgeCase},
	)
	require.Equal(t, 1.0, result.Score)

	// Graceful degradation needs a fallback and no error.
	result = metric.Evaluate(
		core.Output{"fallback": "manual review"},
		map[string]any{"edge_case_handling": "graceful_degradation"},
		core.EvalContext{TestCase: edgeCase},
	)
	require.Equal(t, 1.0, result.Score)
}

func TestPolicyCompliance(t *testing.T) {
	metric, err := NewPolicyCompliance(1.0, core.SeverityCritical)
	require.NoError(t, err)

	// Compliant case with matching rules.
	result := metric.Evaluate(
		core.Output{"decision": "approved"},
		map[string]any{"policy_rules": map[string]any{"decision": "approved"}},
		core.EvalContext{},
	)
	require.Equal(t, 1.0, result.Score)
	require.Equal(t, true, result.Details["compliant"])

	// Rule mismatch zeroes the score.
	result = metric.Evaluate(
		core.Output{"decision": "approved"},
		map[string]any{"policy_rules": map[string]any{"decision": "denied"}},
		core.EvalContext{},
	)
	require.Equal(t, 0.0, result.Score)
	require.Contains(t, result.Details["violations"], "decision: expected denied, got approved")

	// A known violation must be surfaced by the agent.
	result = metric.Evaluate(
		core.Output{"decision": "approved"},
		map[string]any{"policy_compliant": false},
		core.EvalContext{},
	)
	require.Equal(t, 0.0, result.Score)

	result = metric.Evaluate(
		core.Output{"policy_violation": true},
		map[string]any{"policy_compliant": false},
		core.EvalContext{},
	)
	require.Equal(t, 1.0, result.Score)
}

func TestAuditTrailCompleteness(t *testing.T) {
	metric, err := NewAuditTrail(nil, 1.0, core.SeverityCritical)
	require.NoError(t, err)
	require.Equal(t, 5, metric.Layer())

	full := map[string]any{
		"timestamp": "2026-08-25T10:00:00Z",
		"action":    "refund_request_processed",
		"decision":  "approved",
		"reason":    "within policy",
	}
	result := metric.Evaluate(core.Output{"audit_trail": full}, nil, core.EvalContext{})
	require.Equal(t, 1.0, result.Score)
	require.True(t, result.Passed)

	partial := map[string]any{
		"timestamp": "2026-08-25T10:00:00Z",
		"decision":  "approved",
	}
	result = metric.Evaluate(core.Output{"audit_trail": partial}, nil, core.EvalContext{})
	require.InDelta(t, 0.5, result.Score, 1e-9)
	require.False(t, result.Passed)
	require.ElementsMatch(t, []string{"action", "reason"}, result.Details["missing_fields"])
}

func TestDemographicParity(t *testing.T) {
	metric, err := NewDemographicParity(nil, 0.95, core.SeverityCritical)
	require.NoError(t, err)

	demographics := map[string]any{"age_group": "26-35", "region": "Europe"}

	// Matching decision, no bias signal.
	result := metric.Evaluate(
		core.Output{"decision": "approved"},
		map[string]any{"decision": "approved", "demographics": demographics},
		core.EvalContext{},
	)
	require.Equal(t, 1.0, result.Score)
	require.Equal(t, false, result.Details["bias_detected"])

	// Divergent decision with demographics present is the bias proxy.
	result = metric.Evaluate(
		core.Output{"decision": "denied"},
		map[string]any{"decision": "approved", "demographics": demographics},
		core.EvalContext{},
	)
	require.Equal(t, 0.0, result.Score)

	// Unless the divergence was expected.
	result = metric.Evaluate(
		core.Output{"decision": "denied"},
		map[string]any{"decision": "approved", "demographics": demographics, "bias_expected": true},
		core.EvalContext{},
	)
	require.Equal(t, 1.0, result.Score)

	// No demographics, no signal.
	result = metric.Evaluate(
		core.Output{"decision": "denied"},
		map[string]any{"decision": "approved"},
		core.EvalContext{},
	)
	require.Equal(t, 1.0, result.Score)
}

func TestDefaultSuiteCoversAllLayers(t *testing.T) {
	suite, err := DefaultSuite()
	require.NoError(t, err)
	require.Len(t, suite, 10)

	perLayer := map[int]int{}
	names := map[string]bool{}
	for _, metric := range suite {
		perLayer[metric.Layer()]++
		require.False(t, names[metric.Name()], "duplicate name %s", metric.Name())
		names[metric.Name()] = true
	}
	for layer := 1; layer <= 5; layer++ {
		require.Equal(t, 2, perLayer[layer], "layer %d", layer)
	}
}
