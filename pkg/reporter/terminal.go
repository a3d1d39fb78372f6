package reporter

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"

	"agentgauge/pkg/core"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	passStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	failStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// TerminalReporter renders a human-readable summary with per-layer and
// per-metric tables. Colors are disabled when the writer is not a terminal.
type TerminalReporter struct {
	Writer io.Writer
	Color  bool
}

func NewTerminalReporter(w io.Writer) TerminalReporter {
	return TerminalReporter{Writer: w, Color: writerIsTerminal(w)}
}

func (r TerminalReporter) Report(result *core.EvaluationResult) error {
	verdict := "PASS"
	style := passStyle
	if !result.Passed {
		verdict = "FAIL"
		style = failStyle
	}

	fmt.Fprintln(r.Writer, r.render(titleStyle, "Agent Evaluation Report"))
	fmt.Fprintf(r.Writer, "Agent: %s  Evaluation: %s\n", result.AgentID, result.EvaluationID)
	fmt.Fprintf(r.Writer, "%s  overall score %.3f  (%d test cases, %.2fs)\n\n",
		r.render(style, verdict), result.OverallScore, result.TestCasesCount, result.DurationSeconds)

	layers := tablewriter.NewWriter(r.Writer)
	layers.Header([]string{"Layer", "Name", "Score", "Status", "Metrics"})
	for _, layer := range result.Layers {
		layers.Append([]string{
			fmt.Sprintf("%d", layer.LayerNumber),
			layer.LayerName,
			fmt.Sprintf("%.3f", layer.Score),
			layer.Status,
			fmt.Sprintf("%d", len(layer.Metrics)),
		})
	}
	layers.Render()
	fmt.Fprintln(r.Writer)

	metrics := tablewriter.NewWriter(r.Writer)
	metrics.Header([]string{"Metric", "Layer", "Score", "Threshold", "Severity", "Passed"})
	for _, layer := range result.Layers {
		for _, metric := range layer.Metrics {
			metrics.Append([]string{
				metric.MetricName,
				fmt.Sprintf("%d", metric.Layer),
				fmt.Sprintf("%.3f", metric.Score),
				fmt.Sprintf("%.3f", metric.Threshold),
				string(metric.Severity),
				fmt.Sprintf("%t", metric.Passed),
			})
		}
	}
	metrics.Render()

	if len(result.CriticalIssues) > 0 {
		fmt.Fprintln(r.Writer)
		fmt.Fprintln(r.Writer, r.render(failStyle, "Critical issues:"))
		for _, issue := range result.CriticalIssues {
			fmt.Fprintf(r.Writer, "  - %s\n", issue)
		}
	}

	if remediations := collectRemediations(result); len(remediations) > 0 {
		fmt.Fprintln(r.Writer)
		fmt.Fprintln(r.Writer, r.render(dimStyle, "Remediation:"))
		for _, remediation := range remediations {
			fmt.Fprintf(r.Writer, "  - %s\n", remediation)
		}
	}

	return nil
}

func (r TerminalReporter) render(style lipgloss.Style, text string) string {
	if !r.Color {
		return text
	}
	return style.Render(text)
}

func writerIsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
