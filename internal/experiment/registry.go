package experiment

import (
	"github.com/san-kum/ltisim/internal/dynamo"
	"github.com/san-kum/ltisim/internal/integrators"
	"github.com/san-kum/ltisim/internal/metrics"
)

// Registry resolves the pieces an experiment is built from. Each call
// returns fresh instances, so experiments never share integrator scratch or
// metric state.
type Registry struct {
	metrics func() []dynamo.Metric
}

func NewRegistry() *Registry {
	return &Registry{metrics: metrics.Defaults}
}

func (r *Registry) GetIntegrator(name string) (dynamo.Integrator, error) {
	return integrators.New(name)
}

func (r *Registry) ListIntegrators() []string {
	return integrators.Names()
}

// DefaultMetrics returns a new set of the metrics recorded for every run.
func (r *Registry) DefaultMetrics() []dynamo.Metric {
	return r.metrics()
}
