package core

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MetricResult is the aggregated outcome of one metric over a full
// test-case batch.
type MetricResult struct {
	MetricName  string         `json:"metric_name"`
	Layer       int            `json:"layer"`
	Score       float64        `json:"score"`
	Threshold   float64        `json:"threshold"`
	Passed      bool           `json:"passed"`
	Severity    Severity       `json:"severity"`
	Details     map[string]any `json:"details,omitempty"`
	Remediation string         `json:"remediation,omitempty"`
}

func (m MetricResult) String() string {
	status := "PASS"
	if !m.Passed {
		status = "FAIL"
	}
	return fmt.Sprintf("%s: %s (score: %.2f, threshold: %.2f)", m.MetricName, status, m.Score, m.Threshold)
}

// LayerResult aggregates the metric results of one evaluation layer.
type LayerResult struct {
	LayerNumber int            `json:"layer_number"`
	LayerName   string         `json:"layer_name"`
	Score       float64        `json:"score"`
	Status      string         `json:"status"`
	Metrics     []MetricResult `json:"metrics"`
}

// Passed reports whether every metric in the layer passed, regardless of
// severity. Note this is stricter than EvaluationResult.Passed, which only
// looks at critical failures.
func (l LayerResult) Passed() bool {
	for _, m := range l.Metrics {
		if !m.Passed {
			return false
		}
	}
	return true
}

// FailedMetrics returns the metrics that failed, in registration order.
func (l LayerResult) FailedMetrics() []MetricResult {
	var failed []MetricResult
	for _, m := range l.Metrics {
		if !m.Passed {
			failed = append(failed, m)
		}
	}
	return failed
}

// CriticalFailures returns failed metrics with critical severity.
func (l LayerResult) CriticalFailures() []MetricResult {
	var critical []MetricResult
	for _, m := range l.Metrics {
		if !m.Passed && m.Severity == SeverityCritical {
			critical = append(critical, m)
		}
	}
	return critical
}

// EvaluationResult is the immutable snapshot of one full evaluation run.
// It is constructed once at the end of Evaluate and never mutated; it can be
// serialized and reloaded without re-running the evaluation.
type EvaluationResult struct {
	EvaluationID    string        `json:"evaluation_id"`
	Timestamp       string        `json:"timestamp"`
	AgentID         string        `json:"agent_id,omitempty"`
	OverallScore    float64       `json:"overall_score"`
	Layers          []LayerResult `json:"layers"`
	CriticalIssues  []string      `json:"critical_issues"`
	TestCasesCount  int           `json:"test_cases_count"`
	DurationSeconds float64       `json:"duration_seconds"`
	Passed          bool          `json:"passed"`
}

// LayerByNumber returns the layer result with the given number, nil if absent.
func (e EvaluationResult) LayerByNumber(number int) *LayerResult {
	for i := range e.Layers {
		if e.Layers[i].LayerNumber == number {
			return &e.Layers[i]
		}
	}
	return nil
}

// FailedLayers returns the layers where at least one metric failed.
func (e EvaluationResult) FailedLayers() []LayerResult {
	var failed []LayerResult
	for _, layer := range e.Layers {
		if !layer.Passed() {
			failed = append(failed, layer)
		}
	}
	return failed
}

// ToJSON serializes the result with two-space indentation.
func (e EvaluationResult) ToJSON() ([]byte, error) {
	return json.MarshalIndent(e, "", "  ")
}

// WriteFile persists the result as JSON, creating parent directories.
func (e EvaluationResult) WriteFile(path string) error {
	data, err := e.ToJSON()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// ResultFromJSON reconstructs an EvaluationResult from its JSON form.
func ResultFromJSON(data []byte) (EvaluationResult, error) {
	var result EvaluationResult
	if err := json.Unmarshal(data, &result); err != nil {
		return EvaluationResult{}, fmt.Errorf("core: decode evaluation result: %w", err)
	}
	return result, nil
}

// ReadResultFile loads a persisted EvaluationResult.
func ReadResultFile(path string) (EvaluationResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return EvaluationResult{}, err
	}
	return ResultFromJSON(data)
}

// Summary renders a plain-text overview of the evaluation.
func (e EvaluationResult) Summary() string {
	status := "PASS"
	if !e.Passed {
		status = "FAIL"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Evaluation %s\n", e.EvaluationID)
	fmt.Fprintf(&b, "Status: %s\n", status)
	fmt.Fprintf(&b, "Overall Score: %.2f\n", e.OverallScore)
	fmt.Fprintf(&b, "Test Cases: %d\n", e.TestCasesCount)
	fmt.Fprintf(&b, "Duration: %.2fs\n\n", e.DurationSeconds)
	b.WriteString("Layer Results:\n")
	for _, layer := range e.Layers {
		icon := "+"
		if !layer.Passed() {
			icon = "x"
		}
		fmt.Fprintf(&b, "  %s Layer %d (%s): %.2f\n", icon, layer.LayerNumber, layer.LayerName, layer.Score)
	}
	if len(e.CriticalIssues) > 0 {
		b.WriteString("\nCritical Issues:\n")
		for _, issue := range e.CriticalIssues {
			fmt.Fprintf(&b, "  - %s\n", issue)
		}
	}
	return b.String()
}
