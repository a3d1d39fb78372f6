package core

import "context"

// Agent is the black box under evaluation: it takes one input mapping and
// returns one output value (any map-shaped value, see Normalize). It may
// fail; the evaluator isolates failures per test case.
type Agent interface {
	Name() string
	Invoke(ctx context.Context, input map[string]any) (any, error)
}
