package metrics

import "agentgauge/pkg/core"

// DefaultSuite builds all ten built-in metrics with their original default
// thresholds and severities, two per layer.
func DefaultSuite() ([]core.Metric, error) {
	intent, err := NewIntentAccuracy(0.9, core.SeverityCritical)
	if err != nil {
		return nil, err
	}
	entities, err := NewEntityExtraction(0.85, core.SeverityWarning)
	if err != nil {
		return nil, err
	}
	decisions, err := NewDecisionAccuracy(0.95, core.SeverityCritical)
	if err != nil {
		return nil, err
	}
	hallucination, err := NewHallucinationDetection(0.9, core.SeverityCritical)
	if err != nil {
		return nil, err
	}
	latency, err := NewAPILatency(2000, 0.95, core.SeverityWarning)
	if err != nil {
		return nil, err
	}
	transactions, err := NewTransactionSuccess(0.99, core.SeverityCritical)
	if err != nil {
		return nil, err
	}
	edgeCases, err := NewEdgeCaseHandling(0.9, core.SeverityWarning)
	if err != nil {
		return nil, err
	}
	policy, err := NewPolicyCompliance(1.0, core.SeverityCritical)
	if err != nil {
		return nil, err
	}
	audit, err := NewAuditTrail(nil, 1.0, core.SeverityCritical)
	if err != nil {
		return nil, err
	}
	parity, err := NewDemographicParity(nil, 0.95, core.SeverityCritical)
	if err != nil {
		return nil, err
	}

	return []core.Metric{
		intent, entities,
		decisions, hallucination,
		latency, transactions,
		edgeCases, policy,
		audit, parity,
	}, nil
}
