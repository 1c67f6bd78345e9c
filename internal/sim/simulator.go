package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/ltisim/internal/dynamo"
)

type Simulator struct {
	sys        dynamo.OutputSystem
	integrator dynamo.Integrator
	metrics    []dynamo.Metric
	observers  []dynamo.Observer
}

func New(sys dynamo.OutputSystem, integrator dynamo.Integrator) *Simulator {
	return &Simulator{
		sys:        sys,
		integrator: integrator,
		metrics:    make([]dynamo.Metric, 0),
		observers:  make([]dynamo.Observer, 0),
	}
}

func (s *Simulator) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

// Run drives the system with input, one output per input sample. The
// context is checked between samples.
func (s *Simulator) Run(ctx context.Context, input []float64, cfg Config) (*Result, error) {
	if err := checkDt(cfg.Dt); err != nil {
		return nil, err
	}

	stream, err := NewStream(s.sys, s.integrator, cfg.Dt)
	if err != nil {
		return nil, err
	}

	n := len(input)
	result := &Result{
		Times:   make([]float64, n),
		Inputs:  make([]float64, n),
		Outputs: make([]float64, n),
		States:  make([]dynamo.State, n),
		Metrics: make(map[string]float64),
	}
	copy(result.Inputs, input)

	for _, m := range s.metrics {
		m.Reset()
	}

	for i, u := range input {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, ctx.Err())
		default:
		}

		if cfg.ValidateState && !stream.x.IsValid() {
			return nil, &dynamo.SimulationError{
				Step:    i,
				Time:    stream.Time(),
				State:   stream.State(),
				Wrapped: dynamo.ErrInvalidState,
			}
		}

		y, sample := stream.step(u)
		result.Times[i] = sample.T
		result.Outputs[i] = y
		result.States[i] = sample.X

		for _, m := range s.metrics {
			m.Observe(sample)
		}
		for _, obs := range s.observers {
			obs.OnSample(sample)
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}
