package reporter

import (
	"fmt"
	"io"

	"agentgauge/pkg/core"
)

type MarkdownReporter struct {
	Writer io.Writer
}

func (r MarkdownReporter) Report(result *core.EvaluationResult) error {
	verdict := "PASS"
	if !result.Passed {
		verdict = "FAIL"
	}

	if _, err := fmt.Fprintf(r.Writer, "# Evaluation Report\n\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(r.Writer,
		"- Evaluation: %s\n- Agent: %s\n- Timestamp: %s\n- Verdict: **%s**\n- Overall score: %.3f\n- Test cases: %d\n- Duration: %.2fs\n\n",
		result.EvaluationID, result.AgentID, result.Timestamp, verdict,
		result.OverallScore, result.TestCasesCount, result.DurationSeconds,
	); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(r.Writer, "## Layers\n\n| Layer | Name | Score | Status |\n|---|---|---|---|\n"); err != nil {
		return err
	}
	for _, layer := range result.Layers {
		if _, err := fmt.Fprintf(r.Writer, "| %d | %s | %.3f | %s |\n",
			layer.LayerNumber, layer.LayerName, layer.Score, layer.Status); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(r.Writer, "\n## Metrics\n\n| Metric | Layer | Score | Threshold | Severity | Passed |\n|---|---|---|---|---|---|\n"); err != nil {
		return err
	}
	for _, layer := range result.Layers {
		for _, metric := range layer.Metrics {
			if _, err := fmt.Fprintf(r.Writer, "| %s | %d | %.3f | %.3f | %s | %t |\n",
				metric.MetricName, metric.Layer, metric.Score, metric.Threshold,
				metric.Severity, metric.Passed); err != nil {
				return err
			}
		}
	}

	if len(result.CriticalIssues) > 0 {
		if _, err := fmt.Fprintf(r.Writer, "\n## Critical Issues\n\n"); err != nil {
			return err
		}
		for _, issue := range result.CriticalIssues {
			if _, err := fmt.Fprintf(r.Writer, "- %s\n", issue); err != nil {
				return err
			}
		}
	}

	remediations := collectRemediations(result)
	if len(remediations) > 0 {
		if _, err := fmt.Fprintf(r.Writer, "\n## Remediation\n\n"); err != nil {
			return err
		}
		for _, remediation := range remediations {
			if _, err := fmt.Fprintf(r.Writer, "- %s\n", remediation); err != nil {
				return err
			}
		}
	}

	return nil
}

func collectRemediations(result *core.EvaluationResult) []string {
	var remediations []string
	for _, layer := range result.Layers {
		for _, metric := range layer.Metrics {
			if !metric.Passed && metric.Remediation != "" {
				remediations = append(remediations, fmt.Sprintf("%s: %s", metric.MetricName, metric.Remediation))
			}
		}
	}
	return remediations
}
