package integrators

import (
	"github.com/san-kum/ltisim/internal/dynamo"
	"gonum.org/v1/gonum/floats"
)

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t float64, dt float64) dynamo.State {
	if len(x) == 0 {
		return dynamo.State{}
	}
	result := make(dynamo.State, len(x))
	floats.AddScaledTo(result, x, dt, dyn.Derive(x, u, t))
	return result
}
