package experiment

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/ltisim/internal/config"
	"github.com/san-kum/ltisim/internal/dynamo"
	"github.com/san-kum/ltisim/internal/lti"
	"github.com/san-kum/ltisim/internal/storage"
)

// Experiment is one configured simulation: a transfer function, its input
// sequence and an integrator. It is not safe for concurrent Run calls.
type Experiment struct {
	cfg       *config.Config
	tf        lti.TransferFunction
	input     []float64
	integ     dynamo.Integrator
	metrics   []dynamo.Metric
	observers []dynamo.Observer
}

func New(cfg *config.Config, reg *Registry) (*Experiment, error) {
	if !(cfg.Dt > 0) || math.IsInf(cfg.Dt, 0) {
		return nil, fmt.Errorf("%w: %g", lti.ErrInvalidStepSize, cfg.Dt)
	}
	tf, err := cfg.TransferFunction()
	if err != nil {
		return nil, err
	}
	input, err := cfg.Inputs()
	if err != nil {
		return nil, err
	}
	integ, err := reg.GetIntegrator(cfg.Integrator)
	if err != nil {
		return nil, err
	}

	return &Experiment{
		cfg:     cfg.Clone(),
		tf:      tf,
		input:   input,
		integ:   integ,
		metrics: reg.DefaultMetrics(),
	}, nil
}

func (e *Experiment) Config() *config.Config                { return e.cfg }
func (e *Experiment) TransferFunction() lti.TransferFunction { return e.tf }
func (e *Experiment) Input() []float64                      { return e.input }

func (e *Experiment) AddObserver(o dynamo.Observer) {
	e.observers = append(e.observers, o)
}

func (e *Experiment) Run(ctx context.Context) (*dynamo.Result, error) {
	opts := []lti.Option{
		lti.WithIntegrator(e.integ),
		lti.WithMetrics(e.metrics...),
	}
	for _, o := range e.observers {
		opts = append(opts, lti.WithObserver(o))
	}
	return lti.SimulateContext(ctx, e.tf, e.input, e.cfg.Dt, opts...)
}

// Metadata describes the experiment for storage. Metrics and sample count
// are filled in when the run is saved.
func (e *Experiment) Metadata() storage.RunMetadata {
	name := e.cfg.Name
	if name == "" {
		name = e.cfg.Model
	}
	return storage.RunMetadata{
		Name:       name,
		Model:      e.cfg.Model,
		Num:        e.tf.Num,
		Den:        e.tf.Den,
		Input:      e.cfg.Input.Kind,
		Dt:         e.cfg.Dt,
		Integrator: e.cfg.Integrator,
	}
}
