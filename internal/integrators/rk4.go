package integrators

import (
	"github.com/san-kum/ltisim/internal/dynamo"
	"gonum.org/v1/gonum/floats"
)

// RK4 is the classical fourth-order Runge-Kutta method. The control is held
// constant across the four stages of one step.
type RK4 struct {
	k1, k2, k3, k4 dynamo.State
	scratch        dynamo.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(dynamo.State, n)
		r.k2 = make(dynamo.State, n)
		r.k3 = make(dynamo.State, n)
		r.k4 = make(dynamo.State, n)
		r.scratch = make(dynamo.State, n)
	}
}

func (r *RK4) Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) dynamo.State {
	n := len(x)
	if n == 0 {
		return dynamo.State{}
	}
	r.ensureScratch(n)

	copy(r.k1, dyn.Derive(x, u, t))

	floats.AddScaledTo(r.scratch, x, dt*0.5, r.k1)
	copy(r.k2, dyn.Derive(r.scratch, u, t+dt*0.5))

	floats.AddScaledTo(r.scratch, x, dt*0.5, r.k2)
	copy(r.k3, dyn.Derive(r.scratch, u, t+dt*0.5))

	floats.AddScaledTo(r.scratch, x, dt, r.k3)
	copy(r.k4, dyn.Derive(r.scratch, u, t+dt))

	result := make(dynamo.State, n)
	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		result[i] = x[i] + dt6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}

	return result
}
