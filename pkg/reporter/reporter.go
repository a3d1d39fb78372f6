package reporter

import (
	"fmt"
	"io"

	"agentgauge/pkg/core"
)

// Reporter writes an evaluation result in some output format.
type Reporter interface {
	Report(result *core.EvaluationResult) error
}

const (
	FormatJSON     = "json"
	FormatTerminal = "terminal"
	FormatMarkdown = "markdown"
)

// ForFormat returns the reporter matching the named format.
func ForFormat(format string, w io.Writer) (Reporter, error) {
	switch format {
	case FormatJSON:
		return JSONReporter{Writer: w, Pretty: true}, nil
	case FormatTerminal:
		return NewTerminalReporter(w), nil
	case FormatMarkdown:
		return MarkdownReporter{Writer: w}, nil
	default:
		return nil, fmt.Errorf("reporter: unknown format %q", format)
	}
}
