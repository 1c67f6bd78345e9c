package automation

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/san-kum/ltisim/internal/config"
	"github.com/san-kum/ltisim/internal/dynamo"
	"github.com/san-kum/ltisim/internal/experiment"
)

// Sweep varies one parameter of Base linearly from Min to Max.
//
// Param is one of cutoff, mass, damping, stiffness, dt, amplitude, or a
// coefficient num.<i> / den.<i> indexed from the highest power.
type Sweep struct {
	Base    *config.Config
	Param   string
	Min     float64
	Max     float64
	Steps   int
	Workers int
}

type SweepPoint struct {
	Value   float64
	Metrics map[string]float64
	Result  *dynamo.Result
}

func (sw Sweep) values() ([]float64, error) {
	if sw.Steps < 1 {
		return nil, fmt.Errorf("sweep: steps must be at least 1, got %d", sw.Steps)
	}
	if sw.Steps == 1 {
		return []float64{sw.Min}, nil
	}
	vals := make([]float64, sw.Steps)
	step := (sw.Max - sw.Min) / float64(sw.Steps-1)
	for i := range vals {
		vals[i] = sw.Min + float64(i)*step
	}
	vals[len(vals)-1] = sw.Max
	return vals, nil
}

// RunSweep runs every point in parallel. Point configs are validated before
// any run starts; the first run error cancels the rest.
func RunSweep(ctx context.Context, sw Sweep, reg *experiment.Registry) ([]SweepPoint, error) {
	vals, err := sw.values()
	if err != nil {
		return nil, err
	}

	jobs := make([]dynamo.Job, len(vals))
	for i, v := range vals {
		cfg := sw.Base.Clone()
		if err := SetParam(cfg, sw.Param, v); err != nil {
			return nil, err
		}
		exp, err := experiment.New(cfg, reg)
		if err != nil {
			return nil, fmt.Errorf("sweep %s=%g: %w", sw.Param, v, err)
		}
		jobs[i] = exp.Run
	}

	results, err := dynamo.NewEnsemble(sw.Workers).Run(ctx, jobs)
	if err != nil {
		return nil, err
	}

	points := make([]SweepPoint, len(vals))
	for i, res := range results {
		points[i] = SweepPoint{Value: vals[i], Metrics: res.Metrics, Result: res}
	}
	return points, nil
}

// SetParam assigns value to the named parameter of cfg.
func SetParam(cfg *config.Config, name string, value float64) error {
	switch name {
	case "cutoff":
		cfg.System.Cutoff = value
	case "mass":
		cfg.System.Mass = value
	case "damping":
		cfg.System.Damping = value
	case "stiffness":
		cfg.System.Stiffness = value
	case "dt":
		cfg.Dt = value
	case "amplitude":
		cfg.Input.Amplitude = value
		cfg.Input.Slope = value
	default:
		poly, idx, ok := strings.Cut(name, ".")
		if !ok || (poly != "num" && poly != "den") {
			return fmt.Errorf("sweep: unknown parameter %q", name)
		}
		i, err := strconv.Atoi(idx)
		if err != nil {
			return fmt.Errorf("sweep: bad coefficient index in %q", name)
		}
		coeffs := &cfg.System.Num
		if poly == "den" {
			coeffs = &cfg.System.Den
		}
		if i < 0 || i >= len(*coeffs) {
			return fmt.Errorf("sweep: %s has %d coefficients, no index %d", poly, len(*coeffs), i)
		}
		(*coeffs)[i] = value
	}
	return nil
}
