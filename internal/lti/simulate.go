package lti

import (
	"context"

	"github.com/san-kum/ltisim/internal/dynamo"
	"github.com/san-kum/ltisim/internal/integrators"
	"github.com/san-kum/ltisim/internal/sim"
)

type options struct {
	integrator dynamo.Integrator
	metrics    []dynamo.Metric
	observers  []dynamo.Observer
}

type Option func(*options)

// WithIntegrator replaces the default RK4 integrator. The integrator must
// not be shared with a concurrent run.
func WithIntegrator(integ dynamo.Integrator) Option {
	return func(o *options) { o.integrator = integ }
}

func WithMetrics(metrics ...dynamo.Metric) Option {
	return func(o *options) { o.metrics = append(o.metrics, metrics...) }
}

func WithObserver(obs dynamo.Observer) Option {
	return func(o *options) { o.observers = append(o.observers, obs) }
}

// Simulate returns the response of num/den to input sampled every dt
// seconds, starting from rest. The output has the same length as input.
func Simulate(num, den, input []float64, dt float64) ([]float64, error) {
	return TransferFunction{Num: num, Den: den}.Simulate(input, dt)
}

func (tf TransferFunction) Simulate(input []float64, dt float64) ([]float64, error) {
	result, err := SimulateContext(context.Background(), tf, input, dt)
	if err != nil {
		return nil, err
	}
	return result.Outputs, nil
}

// SimulateContext is Simulate with cancellation between samples and the full
// run record: times, inputs, outputs, pre-step states and metrics.
func SimulateContext(ctx context.Context, tf TransferFunction, input []float64, dt float64, opts ...Option) (*dynamo.Result, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.integrator == nil {
		o.integrator = integrators.NewRK4()
	}

	ss, err := Realize(tf)
	if err != nil {
		return nil, err
	}

	s := sim.New(ss, o.integrator)
	for _, m := range o.metrics {
		s.AddMetric(m)
	}
	for _, obs := range o.observers {
		s.AddObserver(obs)
	}

	return s.Run(ctx, input, sim.Config{Dt: dt})
}
