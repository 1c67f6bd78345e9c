package lti

import (
	"github.com/san-kum/ltisim/internal/dynamo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// StateSpace is the controllable companion-form realization of a transfer
// function:
//
//	dx/dt = A x + B u
//	    y = C x + D u
//
// For an order-0 system A is nil and B, C are empty; the system is the
// static gain D.
type StateSpace struct {
	A *mat.Dense
	B []float64
	C []float64
	D float64

	n int
}

// Realize builds the companion-form realization of tf. The numerator is
// zero-padded on the high-order side in a private copy.
func Realize(tf TransferFunction) (*StateSpace, error) {
	if err := tf.Validate(); err != nil {
		return nil, err
	}

	n := tf.Order()
	num := tf.paddedNum()
	den := tf.Den
	d := num[0] / den[0]

	ss := &StateSpace{D: d, n: n}
	if n == 0 {
		return ss, nil
	}

	a := mat.NewDense(n, n, nil)
	for i := 0; i < n-1; i++ {
		a.Set(i, i+1, 1)
	}
	for i := 0; i < n; i++ {
		a.Set(n-1, i, -den[n-i]/den[0])
	}

	b := make([]float64, n)
	b[n-1] = 1 / den[0]

	c := make([]float64, n)
	for i := 0; i < n; i++ {
		c[i] = num[n-i] - d*den[n-i]
	}

	ss.A, ss.B, ss.C = a, b, c
	return ss, nil
}

func (ss *StateSpace) Order() int      { return ss.n }
func (ss *StateSpace) StateDim() int   { return ss.n }
func (ss *StateSpace) ControlDim() int { return 1 }

// Derive returns A x + B u.
func (ss *StateSpace) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	dx := make(dynamo.State, ss.n)
	if ss.n == 0 {
		return dx
	}
	mat.NewVecDense(ss.n, dx).MulVec(ss.A, mat.NewVecDense(ss.n, x))
	floats.AddScaled(dx, input(u), ss.B)
	return dx
}

// Output returns C x + D u.
func (ss *StateSpace) Output(x dynamo.State, u dynamo.Control) float64 {
	y := ss.D * input(u)
	if ss.n > 0 {
		y += floats.Dot(ss.C, x)
	}
	return y
}

func input(u dynamo.Control) float64 {
	if len(u) == 0 {
		return 0
	}
	return u[0]
}
