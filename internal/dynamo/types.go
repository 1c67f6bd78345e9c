package dynamo

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	if len(s) == 0 {
		return 0
	}
	return floats.Norm(s, 2)
}

// Control is the input vector applied over one integration interval.
// SISO systems use a single element.
type Control []float64

type System interface {
	Derive(x State, u Control, t float64) State
	StateDim() int
	ControlDim() int
}

// OutputSystem is a System with an observation equation y = g(x, u).
type OutputSystem interface {
	System
	Output(x State, u Control) float64
}

// Integrator advances x by one step of size dt with u held constant.
// Step returns a new slice and never modifies x.
type Integrator interface {
	Step(dyn System, x State, u Control, t float64, dt float64) State
}

// Sample is one emitted point of a run. X is the state the output was
// computed from, before the integration step for this interval.
type Sample struct {
	Index int
	T     float64
	U     float64
	Y     float64
	X     State
}

type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

type Observer interface {
	OnSample(s Sample)
}

type Result struct {
	Times   []float64
	Inputs  []float64
	Outputs []float64
	States  []State
	Metrics map[string]float64
}

// Duration is the simulated span covered by the samples.
func (r *Result) Duration() float64 {
	if r == nil || len(r.Times) == 0 {
		return 0
	}
	return r.Times[len(r.Times)-1]
}
