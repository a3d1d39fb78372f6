package metrics

import "agentgauge/pkg/core"

var defaultAuditFields = []string{"timestamp", "action", "decision", "reason"}

// AuditTrail scores the completeness of the agent's audit record as the
// ratio of present required fields (layer 5).
type AuditTrail struct {
	core.Base
	RequiredFields []string
}

// NewAuditTrail builds the metric. A nil field list falls back to the
// original four required fields; the original default threshold is 1.0 with
// critical severity.
func NewAuditTrail(requiredFields []string, threshold float64, severity core.Severity) (*AuditTrail, error) {
	base, err := core.NewBase("Audit Trail", 5, threshold, severity, "Measures completeness of audit trails")
	if err != nil {
		return nil, err
	}
	if len(requiredFields) == 0 {
		requiredFields = defaultAuditFields
	}
	return &AuditTrail{Base: base, RequiredFields: requiredFields}, nil
}

func (m *AuditTrail) Evaluate(output core.Output, _ map[string]any, _ core.EvalContext) core.MetricResult {
	trail := extractAuditTrail(output)
	if trail == nil {
		return m.Fail("No audit trail found")
	}

	var present, missing []string
	for _, field := range m.RequiredFields {
		if value, ok := fieldOf(trail, field); ok && value != nil {
			present = append(present, field)
		} else {
			missing = append(missing, field)
		}
	}

	score := float64(len(present)) / float64(len(m.RequiredFields))
	return m.Result(score, map[string]any{
		"required_fields": m.RequiredFields,
		"present_fields":  present,
		"missing_fields":  missing,
		"completeness":    score,
	}, "Add missing audit fields")
}

func extractAuditTrail(output core.Output) map[string]any {
	if trail, ok := mapField(output, "audit_trail"); ok {
		return trail
	}
	if trail, ok := mapField(output, "audit"); ok {
		return trail
	}
	// Fall back to the output itself, as the original does.
	return output
}
