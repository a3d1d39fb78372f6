package metrics

import "agentgauge/pkg/core"

// APILatency scores agent response time against a latency ceiling (layer 3).
// At or under the ceiling the score is 1.0; over it the score degrades as
// max/actual, clamped to [0,1], so twice the ceiling scores 0.5.
type APILatency struct {
	core.Base
	MaxLatencyMS float64
}

// NewAPILatency builds the metric. The original defaults are a 2000ms
// ceiling, threshold 0.95 and warning severity.
func NewAPILatency(maxLatencyMS, threshold float64, severity core.Severity) (*APILatency, error) {
	base, err := core.NewBase("API Latency", 3, threshold, severity, "Measures API response time")
	if err != nil {
		return nil, err
	}
	if maxLatencyMS <= 0 {
		maxLatencyMS = 2000
	}
	return &APILatency{Base: base, MaxLatencyMS: maxLatencyMS}, nil
}

func (m *APILatency) Evaluate(output core.Output, _ map[string]any, ectx core.EvalContext) core.MetricResult {
	// Agent-reported latency wins over the evaluator's measurement.
	latency, ok := numberField(output, "latency_ms")
	if !ok {
		latency = ectx.LatencyMS
	}
	if latency <= 0 {
		return m.Fail("No latency information available")
	}

	score := 1.0
	if latency > m.MaxLatencyMS {
		score = m.MaxLatencyMS / latency
	}
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	return m.Result(score, map[string]any{
		"latency_ms":     latency,
		"max_latency_ms": m.MaxLatencyMS,
		"within_limit":   latency <= m.MaxLatencyMS,
	}, "Optimize agent processing time and reduce API calls")
}
