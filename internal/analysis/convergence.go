package analysis

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/ltisim/internal/dynamo"
	"github.com/san-kum/ltisim/internal/integrators"
	"github.com/san-kum/ltisim/internal/lti"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// refFactor is how many reference steps cover one coarse step.
const refFactor = 16

// InputFunc gives the input value at time t.
type InputFunc func(t float64) float64

// Hold is a constant input.
func Hold(v float64) InputFunc {
	return func(float64) float64 { return v }
}

type ConvergenceRow struct {
	Dt       float64
	Samples  int
	MaxError float64
	RMSError float64
	// Order is log(e_prev/e)/log(dt_prev/dt) against the previous row;
	// NaN for the first row.
	Order float64
}

// Convergence simulates tf over duration seconds at each step size in dts
// and compares the output with a reference run at dt/16.
func Convergence(ctx context.Context, tf lti.TransferFunction, input InputFunc, duration float64, dts []float64, integrator string) ([]ConvergenceRow, error) {
	if !(duration > 0) {
		return nil, fmt.Errorf("analysis: duration must be positive, got %g", duration)
	}
	if _, err := integrators.New(integrator); err != nil {
		return nil, err
	}

	rows := make([]ConvergenceRow, 0, len(dts))
	for i, dt := range dts {
		if !(dt > 0) || math.IsInf(dt, 0) {
			return nil, fmt.Errorf("%w: %g", dynamo.ErrInvalidStepSize, dt)
		}
		n := int(math.Round(duration / dt))
		if n < 1 {
			n = 1
		}

		coarse := make([]float64, n)
		fine := make([]float64, n*refFactor)
		for k := range coarse {
			coarse[k] = input(float64(k) * dt)
			for j := 0; j < refFactor; j++ {
				fine[k*refFactor+j] = coarse[k]
			}
		}

		y, err := run(ctx, tf, coarse, dt, integrator)
		if err != nil {
			return nil, err
		}
		yRef, err := run(ctx, tf, fine, dt/refFactor, integrator)
		if err != nil {
			return nil, err
		}

		abs := make([]float64, n)
		sq := make([]float64, n)
		for k := range y {
			e := y[k] - yRef[k*refFactor]
			abs[k] = math.Abs(e)
			sq[k] = e * e
		}

		row := ConvergenceRow{
			Dt:       dt,
			Samples:  n,
			MaxError: floats.Max(abs),
			RMSError: math.Sqrt(stat.Mean(sq, nil)),
			Order:    math.NaN(),
		}
		if i > 0 {
			prev := rows[i-1]
			row.Order = math.Log(prev.MaxError/row.MaxError) / math.Log(prev.Dt/row.Dt)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func run(ctx context.Context, tf lti.TransferFunction, u []float64, dt float64, integrator string) ([]float64, error) {
	integ, err := integrators.New(integrator)
	if err != nil {
		return nil, err
	}
	res, err := lti.SimulateContext(ctx, tf, u, dt, lti.WithIntegrator(integ))
	if err != nil {
		return nil, err
	}
	return res.Outputs, nil
}
