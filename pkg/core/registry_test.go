package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// stubMetric scores 1.0 when the output "answer" field matches the ground
// truth "answer" field. It doubles as the generic metric for registry tests.
type stubMetric struct {
	Base
}

func newStubMetric(t *testing.T, name string, layer int, threshold float64, severity Severity) stubMetric {
	t.Helper()
	base, err := NewBase(name, layer, threshold, severity, "")
	require.NoError(t, err)
	return stubMetric{Base: base}
}

func (m stubMetric) Evaluate(output Output, groundTruth map[string]any, _ EvalContext) MetricResult {
	score := 0.0
	if output.StringField("answer") == groundTruth["answer"] {
		score = 1.0
	}
	return m.Result(score, nil, "review answers")
}

func TestRegistryRegisterAndLookup(t *testing.T) {
	registry := NewRegistry()
	first := newStubMetric(t, "First", 1, 0.9, SeverityCritical)
	second := newStubMetric(t, "Second", 1, 0.5, SeverityWarning)
	third := newStubMetric(t, "Third", 4, 0.5, SeverityInfo)

	require.NoError(t, registry.Register(first))
	require.NoError(t, registry.Register(second))
	require.NoError(t, registry.Register(third))

	require.Equal(t, 3, registry.Count())
	require.Equal(t, 2, registry.CountByLayer(1))
	require.Equal(t, 1, registry.CountByLayer(4))
	require.Equal(t, 0, registry.CountByLayer(2))

	require.Equal(t, "First", registry.Metric("First").Name())
	require.Nil(t, registry.Metric("Nope"))

	layer1, err := registry.MetricsByLayer(1)
	require.NoError(t, err)
	require.Len(t, layer1, 2)
	require.Equal(t, "First", layer1[0].Name())
	require.Equal(t, "Second", layer1[1].Name())
}

func TestRegistryRejectsDuplicateNames(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(newStubMetric(t, "Same", 1, 0.5, SeverityInfo)))

	// Same name in a different layer is still a duplicate.
	err := registry.Register(newStubMetric(t, "Same", 3, 0.9, SeverityCritical))
	require.ErrorIs(t, err, ErrDuplicateMetric)
	require.Equal(t, 1, registry.Count())
}

func TestRegistryUnregister(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(newStubMetric(t, "A", 2, 0.5, SeverityInfo)))
	require.NoError(t, registry.Register(newStubMetric(t, "B", 2, 0.5, SeverityInfo)))

	require.NoError(t, registry.Unregister("A"))
	require.Equal(t, 1, registry.Count())
	require.Nil(t, registry.Metric("A"))

	layer2, err := registry.MetricsByLayer(2)
	require.NoError(t, err)
	require.Len(t, layer2, 1)
	require.Equal(t, "B", layer2[0].Name())

	require.ErrorIs(t, registry.Unregister("A"), ErrMetricNotFound)
}

func TestRegistryMetricsByLayerValidatesRange(t *testing.T) {
	registry := NewRegistry()
	for _, layer := range []int{0, 6} {
		_, err := registry.MetricsByLayer(layer)
		require.ErrorIs(t, err, ErrInvalidLayer)
	}
}

func TestRegistryMetricsByLayerReturnsCopy(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(newStubMetric(t, "A", 1, 0.5, SeverityInfo)))
	require.NoError(t, registry.Register(newStubMetric(t, "B", 1, 0.5, SeverityInfo)))

	bucket, err := registry.MetricsByLayer(1)
	require.NoError(t, err)
	bucket[0] = newStubMetric(t, "Mutated", 1, 0.5, SeverityInfo)

	fresh, err := registry.MetricsByLayer(1)
	require.NoError(t, err)
	require.Equal(t, "A", fresh[0].Name())
}

func TestRegistryAllMetricsLayerOrdered(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(newStubMetric(t, "L5", 5, 0.5, SeverityInfo)))
	require.NoError(t, registry.Register(newStubMetric(t, "L1", 1, 0.5, SeverityInfo)))
	require.NoError(t, registry.Register(newStubMetric(t, "L3", 3, 0.5, SeverityInfo)))

	all := registry.AllMetrics()
	require.Len(t, all, 3)
	require.Equal(t, "L1", all[0].Name())
	require.Equal(t, "L3", all[1].Name())
	require.Equal(t, "L5", all[2].Name())
}

func TestRegistryClear(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(newStubMetric(t, "A", 1, 0.5, SeverityInfo)))
	registry.Clear()
	require.Equal(t, 0, registry.Count())
	require.NoError(t, registry.Register(newStubMetric(t, "A", 1, 0.5, SeverityInfo)))
}
