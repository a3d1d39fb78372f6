package core

import (
	"fmt"
	"sync"
)

const (
	minLayer = 1
	maxLayer = 5
)

// Registry organizes metrics by the fixed layer partition {1..5} and
// guarantees global name uniqueness. It is safe for concurrent reads; during
// Evaluate it must be treated as read-only.
type Registry struct {
	mu      sync.RWMutex
	byLayer map[int][]Metric
	byName  map[string]Metric
}

// NewRegistry creates an empty metric registry.
func NewRegistry() *Registry {
	return &Registry{
		byLayer: emptyLayers(),
		byName:  make(map[string]Metric),
	}
}

func emptyLayers() map[int][]Metric {
	layers := make(map[int][]Metric, maxLayer)
	for layer := minLayer; layer <= maxLayer; layer++ {
		layers[layer] = nil
	}
	return layers
}

// Register adds a metric, appending it to its layer bucket in registration
// order. It fails with ErrDuplicateMetric if the name is taken.
func (r *Registry) Register(metric Metric) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := metric.Name()
	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateMetric, name)
	}

	r.byLayer[metric.Layer()] = append(r.byLayer[metric.Layer()], metric)
	r.byName[name] = metric
	return nil
}

// Unregister removes a metric by name, failing with ErrMetricNotFound if absent.
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	metric, exists := r.byName[name]
	if !exists {
		return fmt.Errorf("%w: %q", ErrMetricNotFound, name)
	}

	bucket := r.byLayer[metric.Layer()]
	for i, candidate := range bucket {
		if candidate.Name() == name {
			r.byLayer[metric.Layer()] = append(bucket[:i:i], bucket[i+1:]...)
			break
		}
	}
	delete(r.byName, name)
	return nil
}

// MetricsByLayer returns a copy of the ordered metric list for a layer.
func (r *Registry) MetricsByLayer(layer int) ([]Metric, error) {
	if layer < minLayer || layer > maxLayer {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLayer, layer)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	bucket := r.byLayer[layer]
	copied := make([]Metric, len(bucket))
	copy(copied, bucket)
	return copied, nil
}

// Metric returns the metric with the given name, nil if not registered.
func (r *Registry) Metric(name string) Metric {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byName[name]
}

// AllMetrics returns all registered metrics in layer order, registration
// order within each layer.
func (r *Registry) AllMetrics() []Metric {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]Metric, 0, len(r.byName))
	for layer := minLayer; layer <= maxLayer; layer++ {
		all = append(all, r.byLayer[layer]...)
	}
	return all
}

// Count returns the total number of registered metrics.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byName)
}

// CountByLayer returns the number of metrics in a layer, 0 for unknown layers.
func (r *Registry) CountByLayer(layer int) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byLayer[layer])
}

// Clear removes all registered metrics.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byLayer = emptyLayers()
	r.byName = make(map[string]Metric)
}
