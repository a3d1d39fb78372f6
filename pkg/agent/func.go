package agent

import (
	"context"

	"agentgauge/pkg/core"
)

// Func adapts a plain function to the core.Agent capability.
type Func struct {
	AgentName string
	Fn        func(ctx context.Context, input map[string]any) (any, error)
}

func (f Func) Name() string {
	if f.AgentName == "" {
		return "func"
	}
	return f.AgentName
}

func (f Func) Invoke(ctx context.Context, input map[string]any) (any, error) {
	return f.Fn(ctx, input)
}

var _ core.Agent = Func{}
