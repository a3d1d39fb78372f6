package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// LayerNames maps the five fixed evaluation layers to their names.
var LayerNames = map[int]string{
	1: "Input/Output Validation",
	2: "Model Performance",
	3: "System Integration",
	4: "Business Logic",
	5: "Fairness & Compliance",
}

// Evaluator drives an agent through a test-case batch, runs every registered
// metric and aggregates metric, layer and overall scores into an
// EvaluationResult tree.
//
// The evaluator owns its registry and bound agent; result objects carry no
// back-reference to it. An Evaluator is not safe for concurrent use.
type Evaluator struct {
	Agent    Agent
	AgentID  string
	Registry *Registry

	// Timeout bounds each agent invocation. Zero means no limit: a hung
	// agent call then hangs the whole evaluation.
	Timeout time.Duration

	// Workers sets how many test cases run concurrently for one metric.
	// Aggregation is an arithmetic mean, so ordering cannot change scores.
	// Values below 1 mean sequential.
	Workers int

	testCases []TestCase
}

// NewEvaluator creates an evaluator for the given agent with an empty registry.
func NewEvaluator(agent Agent, agentID string) *Evaluator {
	if agentID == "" && agent != nil {
		agentID = agent.Name()
	}
	if agentID == "" {
		agentID = "agent_" + uuid.NewString()[:8]
	}
	return &Evaluator{
		Agent:    agent,
		AgentID:  agentID,
		Registry: NewRegistry(),
	}
}

// LoadTestCases binds a test-case batch for subsequent Evaluate calls.
func (e *Evaluator) LoadTestCases(cases []TestCase) {
	e.testCases = cases
}

// TestCases returns the currently loaded batch.
func (e *Evaluator) TestCases() []TestCase {
	return e.testCases
}

// AddMetric registers a single metric.
func (e *Evaluator) AddMetric(metric Metric) error {
	return e.Registry.Register(metric)
}

// AddMetrics registers metrics in order, stopping at the first failure.
func (e *Evaluator) AddMetrics(metrics []Metric) error {
	for _, metric := range metrics {
		if err := e.Registry.Register(metric); err != nil {
			return err
		}
	}
	return nil
}

// Evaluate runs the full layered evaluation. An explicit non-empty cases
// argument overrides the loaded batch. It fails fast on a nil agent, an empty
// batch or an empty registry; per-test-case agent and metric failures never
// abort the run.
func (e *Evaluator) Evaluate(ctx context.Context, cases []TestCase) (EvaluationResult, error) {
	return e.evaluateAgent(ctx, e.Agent, e.AgentID, cases)
}

// Compare evaluates several agents sequentially against the same resolved
// test-case batch and returns one result per agent. The evaluator's own
// agent binding is left untouched.
func (e *Evaluator) Compare(ctx context.Context, agents []Agent, cases []TestCase) ([]EvaluationResult, error) {
	if len(cases) == 0 {
		cases = e.testCases
	}
	results := make([]EvaluationResult, 0, len(agents))
	for i, agent := range agents {
		if agent == nil {
			return nil, fmt.Errorf("%w: agent %d", ErrNoAgent, i+1)
		}
		agentID := agent.Name()
		if agentID == "" {
			agentID = fmt.Sprintf("agent_%d", i+1)
		}
		result, err := e.evaluateAgent(ctx, agent, agentID, cases)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

func (e *Evaluator) evaluateAgent(ctx context.Context, agent Agent, agentID string, cases []TestCase) (EvaluationResult, error) {
	started := time.Now()

	if agent == nil {
		return EvaluationResult{}, ErrNoAgent
	}
	if len(cases) == 0 {
		cases = e.testCases
	}
	if len(cases) == 0 {
		return EvaluationResult{}, ErrNoTestCases
	}
	if e.Registry.Count() == 0 {
		return EvaluationResult{}, ErrNoMetrics
	}

	layers := make([]LayerResult, 0, maxLayer)
	var criticalIssues []string

	for layer := minLayer; layer <= maxLayer; layer++ {
		layerResult, err := e.evaluateLayer(ctx, agent, layer, cases)
		if err != nil {
			return EvaluationResult{}, err
		}
		layers = append(layers, layerResult)

		for _, m := range layerResult.CriticalFailures() {
			cause := "Critical failure"
			if text, ok := m.Details["error"].(string); ok && text != "" {
				cause = text
			}
			criticalIssues = append(criticalIssues, fmt.Sprintf("Layer %d - %s: %s", layer, m.MetricName, cause))
		}
	}

	// Overall score is the unweighted mean over all five layers; vacuous
	// layers count as 1.0, which can inflate it.
	var overall float64
	for _, layer := range layers {
		overall += layer.Score
	}
	overall /= float64(len(layers))

	if criticalIssues == nil {
		criticalIssues = []string{}
	}

	return EvaluationResult{
		EvaluationID:    "eval_" + uuid.NewString(),
		Timestamp:       started.UTC().Format(time.RFC3339),
		AgentID:         agentID,
		OverallScore:    overall,
		Layers:          layers,
		CriticalIssues:  criticalIssues,
		TestCasesCount:  len(cases),
		DurationSeconds: time.Since(started).Seconds(),
		// Only critical failures block the evaluation; warning and info
		// failures are visible in the layers but do not flip this.
		Passed: len(criticalIssues) == 0,
	}, nil
}

func (e *Evaluator) evaluateLayer(ctx context.Context, agent Agent, layer int, cases []TestCase) (LayerResult, error) {
	metrics, err := e.Registry.MetricsByLayer(layer)
	if err != nil {
		return LayerResult{}, err
	}

	if len(metrics) == 0 {
		// A layer without coverage is a vacuous pass.
		return LayerResult{
			LayerNumber: layer,
			LayerName:   LayerNames[layer],
			Score:       1.0,
			Status:      "pass",
			Metrics:     []MetricResult{},
		}, nil
	}

	metricResults := make([]MetricResult, 0, len(metrics))
	for _, metric := range metrics {
		aggregated, err := e.runMetric(ctx, agent, metric, cases)
		if err != nil {
			return LayerResult{}, err
		}
		metricResults = append(metricResults, aggregated)
	}

	var layerScore float64
	allPassed := true
	for _, m := range metricResults {
		layerScore += m.Score
		if !m.Passed {
			allPassed = false
		}
	}
	layerScore /= float64(len(metricResults))

	status := "pass"
	if !allPassed {
		status = "fail"
	}

	return LayerResult{
		LayerNumber: layer,
		LayerName:   LayerNames[layer],
		Score:       layerScore,
		Status:      status,
		Metrics:     metricResults,
	}, nil
}

// runMetric invokes the agent once per test case, scores each invocation and
// aggregates the unit results into one MetricResult.
func (e *Evaluator) runMetric(ctx context.Context, agent Agent, metric Metric, cases []TestCase) (MetricResult, error) {
	units := make([]MetricResult, len(cases))

	workers := e.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(cases) {
		workers = len(cases)
	}

	if workers == 1 {
		for i, tc := range cases {
			units[i] = e.runUnit(ctx, agent, metric, tc)
		}
	} else {
		var wg sync.WaitGroup
		indexCh := make(chan int)
		wg.Add(workers)
		for w := 0; w < workers; w++ {
			go func() {
				defer wg.Done()
				for i := range indexCh {
					units[i] = e.runUnit(ctx, agent, metric, cases[i])
				}
			}()
		}
		for i := range cases {
			indexCh <- i
		}
		close(indexCh)
		wg.Wait()
	}

	return aggregateUnits(metric, units)
}

// runUnit evaluates one (metric, test case) pair. Agent failures are
// downgraded to a critical failing unit result rather than aborting the batch.
func (e *Evaluator) runUnit(ctx context.Context, agent Agent, metric Metric, tc TestCase) MetricResult {
	callCtx := ctx
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	start := time.Now()
	raw, err := agent.Invoke(callCtx, tc.Input)
	latencyMS := float64(time.Since(start)) / float64(time.Millisecond)
	if err == nil {
		var output Output
		output, err = Normalize(raw)
		if err == nil {
			return metric.Evaluate(output, tc.GroundTruth, EvalContext{
				TestCase:  tc,
				LatencyMS: latencyMS,
			})
		}
	}

	return MetricResult{
		MetricName:  metric.Name(),
		Layer:       metric.Layer(),
		Score:       0,
		Threshold:   metric.Threshold(),
		Passed:      false,
		Severity:    SeverityCritical,
		Details:     map[string]any{"error": err.Error(), "test_case_id": tc.ID},
		Remediation: fmt.Sprintf("Fix error in %s evaluation: %s", metric.Name(), err.Error()),
	}
}

// aggregateUnits reduces per-test-case results to one MetricResult using an
// unweighted arithmetic mean. An empty unit set is a fatal aggregation error,
// not a silent zero.
func aggregateUnits(metric Metric, units []MetricResult) (MetricResult, error) {
	if len(units) == 0 {
		return MetricResult{}, fmt.Errorf("%w: %q", ErrNoUnitResults, metric.Name())
	}

	scores := make([]float64, len(units))
	var sum float64
	correct := 0
	for i, unit := range units {
		scores[i] = unit.Score
		sum += unit.Score
		if unit.Passed {
			correct++
		}
	}
	avg := sum / float64(len(units))
	passed := avg >= metric.Threshold()

	result := MetricResult{
		MetricName: metric.Name(),
		Layer:      metric.Layer(),
		Score:      avg,
		Threshold:  metric.Threshold(),
		Passed:     passed,
		Severity:   metric.Severity(),
		Details: map[string]any{
			"correct":           correct,
			"total":             len(units),
			"individual_scores": scores,
		},
	}
	if !passed {
		result.Remediation = fmt.Sprintf("%s below threshold. Review agent implementation.", metric.Name())
	}
	return result, nil
}
