package metrics

import "agentgauge/pkg/core"

// TransactionSuccess is a binary check that the agent's transaction or API
// call completed without errors (layer 3).
type TransactionSuccess struct {
	core.Base
}

// NewTransactionSuccess builds the metric. The original default threshold is
// 0.99 with critical severity.
func NewTransactionSuccess(threshold float64, severity core.Severity) (*TransactionSuccess, error) {
	base, err := core.NewBase("Transaction Success", 3, threshold, severity, "Measures API/transaction success rate")
	if err != nil {
		return nil, err
	}
	return &TransactionSuccess{Base: base}, nil
}

func (m *TransactionSuccess) Evaluate(output core.Output, _ map[string]any, _ core.EvalContext) core.MetricResult {
	success := checkSuccess(output)
	errText := extractError(output)

	score := 0.0
	status := "failed"
	if success && errText == "" {
		score = 1.0
		status = "completed"
	}

	details := map[string]any{
		"success": success,
		"status":  status,
	}
	if errText != "" {
		details["error"] = errText
	}
	return m.Result(score, details, "Fix transaction failures: "+errText)
}

func checkSuccess(output core.Output) bool {
	if value, ok := fieldOf(output, "success"); ok {
		flag, _ := value.(bool)
		return flag
	}
	if status := output.StringField("status"); status != "" {
		return status == "success" || status == "completed" || status == "ok"
	}
	if value, ok := fieldOf(output, "error"); ok {
		return value == nil
	}
	// No failure indicators at all counts as success.
	return true
}

func extractError(output core.Output) string {
	value, ok := fieldOf(output, "error")
	if !ok || value == nil {
		return ""
	}
	return stringify(value)
}
