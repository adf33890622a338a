// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package evaluation

import (
	"fmt"
	"sync"
)

// Registry maps metric names to evaluator factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]EvaluatorFactory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]EvaluatorFactory)}
}

// Register registers a factory for a metric name. Registering the same
// name twice is an error.
func (r *Registry) Register(metricName string, factory EvaluatorFactory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[metricName]; exists {
		return fmt.Errorf("evaluator already registered for metric %s", metricName)
	}
	r.factories[metricName] = factory
	return nil
}

// NewEvaluator creates an evaluator for metric using the registered
// factory for metric.MetricName.
func (r *Registry) NewEvaluator(metric EvalMetric) (Evaluator, error) {
	r.mu.RLock()
	factory, exists := r.factories[metric.MetricName]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("no evaluator registered for metric %s", metric.MetricName)
	}
	return factory(metric)
}

// ListMetrics returns all registered metric names.
func (r *Registry) ListMetrics() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	return names
}

// DefaultRegistry is the process-wide registry. Metric packages register
// themselves into it from init.
var DefaultRegistry = NewRegistry()

// Register registers a factory in the default registry.
func Register(metricName string, factory EvaluatorFactory) error {
	return DefaultRegistry.Register(metricName, factory)
}

// NewEvaluator creates an evaluator using the default registry.
func NewEvaluator(metric EvalMetric) (Evaluator, error) {
	return DefaultRegistry.NewEvaluator(metric)
}
