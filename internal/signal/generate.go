// Package signal generates sampled input sequences for simulations.
package signal

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

var ErrInvalidSignal = errors.New("signal: invalid parameters")

func checkSamples(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: samples must be > 0, got %d", ErrInvalidSignal, n)
	}
	return nil
}

func checkDt(dt float64) error {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return fmt.Errorf("%w: dt must be > 0, got %g", ErrInvalidSignal, dt)
	}
	return nil
}

// Constant returns n samples of v.
func Constant(n int, v float64) ([]float64, error) {
	if err := checkSamples(n); err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out, nil
}

// Step is a unit step scaled by amplitude, switched on at sample 0.
func Step(n int, amplitude float64) ([]float64, error) {
	return Constant(n, amplitude)
}

// Impulse puts amplitude at sample 0 and zeros elsewhere. With zero-order
// hold this is a rectangular pulse one interval wide.
func Impulse(n int, amplitude float64) ([]float64, error) {
	if err := checkSamples(n); err != nil {
		return nil, err
	}
	out := make([]float64, n)
	out[0] = amplitude
	return out, nil
}

// Ramp returns slope*t at t = i*dt.
func Ramp(n int, dt, slope float64) ([]float64, error) {
	if err := checkSamples(n); err != nil {
		return nil, err
	}
	if err := checkDt(dt); err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = slope * float64(i) * dt
	}
	return out, nil
}

// Sine returns amplitude*sin(2*pi*freqHz*t).
func Sine(n int, dt, freqHz, amplitude float64) ([]float64, error) {
	if err := checkSamples(n); err != nil {
		return nil, err
	}
	if err := checkDt(dt); err != nil {
		return nil, err
	}
	out := make([]float64, n)
	step := 2 * math.Pi * freqHz * dt
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out, nil
}

// Square alternates between +amplitude and -amplitude. duty is the fraction
// of each period spent high, in (0, 1).
func Square(n int, dt, freqHz, amplitude, duty float64) ([]float64, error) {
	if err := checkSamples(n); err != nil {
		return nil, err
	}
	if err := checkDt(dt); err != nil {
		return nil, err
	}
	if !(freqHz > 0) {
		return nil, fmt.Errorf("%w: square frequency must be > 0, got %g", ErrInvalidSignal, freqHz)
	}
	if !(duty > 0 && duty < 1) {
		return nil, fmt.Errorf("%w: duty must be in (0, 1), got %g", ErrInvalidSignal, duty)
	}
	out := make([]float64, n)
	for i := range out {
		phase := math.Mod(freqHz*float64(i)*dt, 1)
		if phase < duty {
			out[i] = amplitude
		} else {
			out[i] = -amplitude
		}
	}
	return out, nil
}

// Noise returns zero-mean Gaussian samples. The same seed always yields the
// same sequence.
func Noise(n int, sigma float64, seed uint64) ([]float64, error) {
	if err := checkSamples(n); err != nil {
		return nil, err
	}
	if sigma < 0 || math.IsNaN(sigma) {
		return nil, fmt.Errorf("%w: sigma must be >= 0, got %g", ErrInvalidSignal, sigma)
	}
	out := make([]float64, n)
	if sigma == 0 {
		return out, nil
	}
	dist := distuv.Normal{Mu: 0, Sigma: sigma, Src: rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)}
	for i := range out {
		out[i] = dist.Rand()
	}
	return out, nil
}
