package core

import "fmt"

// Severity classifies a metric failure. It only matters when a metric fails:
// critical failures feed the evaluation-wide critical issue list, warning and
// info failures do not.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// EvalContext carries per-invocation data the evaluator collected for a
// metric: the originating test case and the measured agent latency.
type EvalContext struct {
	TestCase  TestCase
	LatencyMS float64
}

// Metric is a pluggable scoring unit bound to one of the five layers.
//
// Evaluate must be side-effect-free and must never panic or propagate a
// failure for a well-formed evaluation: on internal failure (missing field,
// malformed ground truth) it returns a result with score 0, passed=false,
// severity critical and details["error"] set. That contract belongs to the
// metric, not the evaluator.
type Metric interface {
	Name() string
	Layer() int
	Threshold() float64
	Severity() Severity
	Description() string
	Evaluate(output Output, groundTruth map[string]any, ectx EvalContext) MetricResult
}

// Base holds the shared metric configuration. Concrete metrics embed it and
// implement Evaluate.
type Base struct {
	name        string
	layer       int
	threshold   float64
	severity    Severity
	description string
}

// NewBase validates and builds a metric configuration. Layer must be in
// [1,5] and threshold in [0,1]; violations are fatal configuration errors.
func NewBase(name string, layer int, threshold float64, severity Severity, description string) (Base, error) {
	if layer < 1 || layer > 5 {
		return Base{}, fmt.Errorf("%w: got %d for %q", ErrInvalidLayer, layer, name)
	}
	if threshold < 0 || threshold > 1 {
		return Base{}, fmt.Errorf("%w: got %v for %q", ErrInvalidThreshold, threshold, name)
	}
	if description == "" {
		description = name + " metric"
	}
	return Base{
		name:        name,
		layer:       layer,
		threshold:   threshold,
		severity:    severity,
		description: description,
	}, nil
}

func (b Base) Name() string        { return b.name }
func (b Base) Layer() int          { return b.layer }
func (b Base) Threshold() float64  { return b.threshold }
func (b Base) Severity() Severity  { return b.severity }
func (b Base) Description() string { return b.description }

// Result builds a MetricResult carrying this metric's configuration.
// Passed is score >= threshold, boundary inclusive.
func (b Base) Result(score float64, details map[string]any, remediation string) MetricResult {
	passed := score >= b.threshold
	result := MetricResult{
		MetricName: b.name,
		Layer:      b.layer,
		Score:      score,
		Threshold:  b.threshold,
		Passed:     passed,
		Severity:   b.severity,
		Details:    details,
	}
	if !passed {
		result.Remediation = remediation
	}
	return result
}

// Fail builds the contract-mandated internal-failure result: score 0,
// critical severity, details["error"] set to the cause.
func (b Base) Fail(cause string) MetricResult {
	return MetricResult{
		MetricName:  b.name,
		Layer:       b.layer,
		Score:       0,
		Threshold:   b.threshold,
		Passed:      false,
		Severity:    SeverityCritical,
		Details:     map[string]any{"error": cause},
		Remediation: fmt.Sprintf("Fix error in %s evaluation: %s", b.name, cause),
	}
}
