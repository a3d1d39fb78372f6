package core

import "errors"

// Configuration errors are fatal and surface synchronously at the call site.
// Evaluation-input errors are fatal at Evaluate entry. Per-test-case failures
// are never errors; they become critical failing metric results instead.
var (
	ErrInvalidLayer     = errors.New("core: layer must be between 1 and 5")
	ErrInvalidThreshold = errors.New("core: threshold must be between 0 and 1")
	ErrDuplicateMetric  = errors.New("core: metric already registered")
	ErrMetricNotFound   = errors.New("core: metric not found")
	ErrNoAgent          = errors.New("core: no agent bound for evaluation")
	ErrNoTestCases      = errors.New("core: no test cases provided for evaluation")
	ErrNoMetrics        = errors.New("core: no metrics registered for evaluation")
	ErrNoUnitResults    = errors.New("core: metric produced no per-test-case results")
)
