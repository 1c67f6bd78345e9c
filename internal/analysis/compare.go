package analysis

import (
	"context"
	"math"

	"github.com/san-kum/ltisim/internal/dynamo"
	"github.com/san-kum/ltisim/internal/integrators"
	"github.com/san-kum/ltisim/internal/lti"
	"github.com/san-kum/ltisim/internal/metrics"
)

type Comparison struct {
	Integrator string
	Result     *dynamo.Result
	// MaxDiff is the largest output difference from the first integrator.
	MaxDiff float64
}

// CompareIntegrators runs tf on the same input with each named integrator.
// Runs are independent and execute in parallel.
func CompareIntegrators(ctx context.Context, tf lti.TransferFunction, input []float64, dt float64, names []string) ([]Comparison, error) {
	if err := tf.Validate(); err != nil {
		return nil, err
	}

	jobs := make([]dynamo.Job, len(names))
	for i, name := range names {
		if _, err := integrators.New(name); err != nil {
			return nil, err
		}
		jobs[i] = func(ctx context.Context) (*dynamo.Result, error) {
			integ, err := integrators.New(name)
			if err != nil {
				return nil, err
			}
			return lti.SimulateContext(ctx, tf, input, dt,
				lti.WithIntegrator(integ),
				lti.WithMetrics(metrics.Defaults()...))
		}
	}

	results, err := dynamo.NewEnsemble(0).Run(ctx, jobs)
	if err != nil {
		return nil, err
	}

	out := make([]Comparison, len(names))
	for i, res := range results {
		out[i] = Comparison{Integrator: names[i], Result: res}
		if i == 0 {
			continue
		}
		for k, y := range res.Outputs {
			out[i].MaxDiff = math.Max(out[i].MaxDiff, math.Abs(y-results[0].Outputs[k]))
		}
	}
	return out, nil
}
