// Package lti simulates continuous-time single-input single-output linear
// time-invariant systems given as transfer functions.
//
// A transfer function
//
//	        b0 s^n + b1 s^(n-1) + ... + bn
//	H(s) = --------------------------------
//	        a0 s^n + a1 s^(n-1) + ... + an
//
// is converted to a companion-form state-space realization
//
//	dx/dt = A x + B u
//	    y = C x + D u
//
// and integrated with fixed-step RK4, holding each input sample constant
// over its interval. The response starts from zero initial conditions.
//
// # Example
//
//	tf := lti.TransferFunction{Num: []float64{1, 1}, Den: []float64{1, 2, 1}}
//	input, _ := signal.Step(100, 1)
//	y, err := tf.Simulate(input, 0.01)
//
// Every call builds its own realization and state, so concurrent calls on
// the same TransferFunction are safe.
package lti
