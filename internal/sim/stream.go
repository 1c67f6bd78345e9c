package sim

import (
	"fmt"
	"math"

	"github.com/san-kum/ltisim/internal/dynamo"
)

// Stream advances a system one input sample at a time. Each Step depends
// only on the current state and the given sample, so inputs can be fed as
// they arrive.
type Stream struct {
	sys   dynamo.OutputSystem
	integ dynamo.Integrator
	dt    float64
	x     dynamo.State
	u     dynamo.Control
	index int
}

// NewStream starts sys from the zero state.
func NewStream(sys dynamo.OutputSystem, integ dynamo.Integrator, dt float64) (*Stream, error) {
	if err := checkDt(dt); err != nil {
		return nil, err
	}
	return &Stream{
		sys:   sys,
		integ: integ,
		dt:    dt,
		x:     make(dynamo.State, sys.StateDim()),
		u:     make(dynamo.Control, 1),
	}, nil
}

// Step emits the output for sample u from the state before this interval,
// then integrates the state across the interval with u held constant.
func (s *Stream) Step(u float64) float64 {
	y, _ := s.step(u)
	return y
}

func (s *Stream) step(u float64) (float64, dynamo.Sample) {
	s.u[0] = u
	t := s.Time()
	y := s.sys.Output(s.x, s.u)
	sample := dynamo.Sample{Index: s.index, T: t, U: u, Y: y, X: s.x}

	s.x = s.integ.Step(s.sys, s.x, s.u, t, s.dt)
	s.index++
	return y, sample
}

// Time is the time of the next sample.
func (s *Stream) Time() float64 {
	return float64(s.index) * s.dt
}

// State returns a copy of the current state.
func (s *Stream) State() dynamo.State {
	return s.x.Clone()
}

// Samples is the number of samples consumed so far.
func (s *Stream) Samples() int {
	return s.index
}

func checkDt(dt float64) error {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return fmt.Errorf("%w: got %g", dynamo.ErrInvalidStepSize, dt)
	}
	return nil
}
