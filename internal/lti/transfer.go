package lti

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// TransferFunction is num(s)/den(s) with coefficients in decreasing powers
// of s. The slices are never modified by this package.
type TransferFunction struct {
	Num []float64 `yaml:"num" json:"num"`
	Den []float64 `yaml:"den" json:"den"`
}

func New(num, den []float64) TransferFunction {
	return TransferFunction{Num: num, Den: den}
}

// Validate reports whether the transfer function has a proper, causal
// realization.
func (tf TransferFunction) Validate() error {
	if len(tf.Den) == 0 {
		return fmt.Errorf("%w: empty denominator", ErrInvalidSystem)
	}
	if tf.Den[0] == 0 {
		return fmt.Errorf("%w: leading denominator coefficient is zero", ErrInvalidSystem)
	}
	if num := trimLeadingZeros(tf.Num); len(num) > len(tf.Den) {
		return fmt.Errorf("%w: numerator degree %d exceeds denominator degree %d",
			ErrInvalidSystem, len(num)-1, len(tf.Den)-1)
	}
	return nil
}

// Order is the denominator degree, or -1 for an empty denominator.
func (tf TransferFunction) Order() int {
	return len(tf.Den) - 1
}

// DCGain is H(0) = num(0)/den(0). A pole at the origin gives ±Inf, or NaN
// when num(0) is zero too.
func (tf TransferFunction) DCGain() float64 {
	var n, d float64
	if len(tf.Num) > 0 {
		n = tf.Num[len(tf.Num)-1]
	}
	if len(tf.Den) > 0 {
		d = tf.Den[len(tf.Den)-1]
	}
	if d == 0 {
		if n == 0 {
			return math.NaN()
		}
		return math.Inf(int(math.Copysign(1, n)))
	}
	return n / d
}

// paddedNum returns a fresh numerator of length len(Den), zero-filled at the
// high-order end. Leading zeros beyond that length are dropped.
func (tf TransferFunction) paddedNum() []float64 {
	num := trimLeadingZeros(tf.Num)
	padded := make([]float64, len(tf.Den))
	copy(padded[len(padded)-len(num):], num)
	return padded
}

// trimLeadingZeros returns the subslice of c starting at its first non-zero
// coefficient.
func trimLeadingZeros(c []float64) []float64 {
	for i, v := range c {
		if v != 0 {
			return c[i:]
		}
	}
	return nil
}

// LowPassFilter is the first-order low-pass wc/(s + wc).
func LowPassFilter(omegaC float64) (TransferFunction, error) {
	if err := checkCutoff(omegaC); err != nil {
		return TransferFunction{}, err
	}
	return TransferFunction{Num: []float64{omegaC}, Den: []float64{1, omegaC}}, nil
}

// HighPassFilter is the first-order high-pass s/(s + wc).
func HighPassFilter(omegaC float64) (TransferFunction, error) {
	if err := checkCutoff(omegaC); err != nil {
		return TransferFunction{}, err
	}
	return TransferFunction{Num: []float64{1, 0}, Den: []float64{1, omegaC}}, nil
}

// MassSpringDamper is the force-to-displacement response 1/(m s^2 + c s + k).
func MassSpringDamper(mass, damping, stiffness float64) (TransferFunction, error) {
	if !(mass > 0) || math.IsInf(mass, 0) {
		return TransferFunction{}, fmt.Errorf("%w: mass must be positive, got %g", ErrInvalidParameter, mass)
	}
	if !(damping >= 0) || math.IsInf(damping, 0) {
		return TransferFunction{}, fmt.Errorf("%w: damping must be non-negative, got %g", ErrInvalidParameter, damping)
	}
	if !(stiffness >= 0) || math.IsInf(stiffness, 0) {
		return TransferFunction{}, fmt.Errorf("%w: stiffness must be non-negative, got %g", ErrInvalidParameter, stiffness)
	}
	return TransferFunction{Num: []float64{1}, Den: []float64{mass, damping, stiffness}}, nil
}

func checkCutoff(omegaC float64) error {
	if !(omegaC > 0) || math.IsInf(omegaC, 0) {
		return fmt.Errorf("%w: cutoff must be positive and finite, got %g", ErrInvalidParameter, omegaC)
	}
	return nil
}

// String renders the transfer function as a two-line fraction.
func (tf TransferFunction) String() string {
	numS := polyString(tf.Num)
	if len(tf.Den) == 0 {
		return numS
	}
	denS := polyString(tf.Den)
	bar := strings.Repeat("-", max(len(numS), len(denS)))
	return numS + "\n" + bar + "\n" + denS
}

func polyString(coeffs []float64) string {
	var terms []string
	for i, c := range coeffs {
		if c == 0 {
			continue
		}
		term := strconv.FormatFloat(c, 'g', -1, 64)
		switch power := len(coeffs) - i - 1; power {
		case 0:
		case 1:
			term += " s"
		default:
			term += " s^" + strconv.Itoa(power)
		}
		terms = append(terms, term)
	}
	if len(terms) == 0 {
		return "0"
	}
	return strings.Join(terms, " + ")
}
