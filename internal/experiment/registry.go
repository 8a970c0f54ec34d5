package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/isingsim/internal/ising"
	"github.com/san-kum/isingsim/internal/metrics"
)

// Stepper advances an engine by the given number of iterations.
type Stepper func(e *ising.Engine, iterations int)

type Registry struct {
	algorithms map[string]Stepper
}

func NewRegistry() *Registry {
	r := &Registry{
		algorithms: make(map[string]Stepper),
	}

	r.algorithms["metropolis"] = (*ising.Engine).MetropolisSweep
	r.algorithms["wolff"] = (*ising.Engine).Wolff

	return r
}

func (r *Registry) GetAlgorithm(name string) (Stepper, error) {
	fn, ok := r.algorithms[name]
	if !ok {
		return nil, fmt.Errorf("unknown algorithm: %s (available: %v)", name, r.ListAlgorithms())
	}
	return fn, nil
}

func (r *Registry) ListAlgorithms() []string {
	names := make([]string, 0, len(r.algorithms))
	for name := range r.algorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) DefaultMetrics(size int) []metrics.Metric {
	return metrics.Defaults(size * size)
}
