package optim

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"math"

	"github.com/san-kum/ltisim/internal/automation"
	"github.com/san-kum/ltisim/internal/config"
	"github.com/san-kum/ltisim/internal/dynamo"
	"github.com/san-kum/ltisim/internal/experiment"
)

var ErrNoCandidates = errors.New("optim: no valid parameter combination")

// GridSearch evaluates every combination of Ranges applied to Base and
// keeps the one minimizing Metric. Params names follow automation.SetParam.
type GridSearch struct {
	Base    *config.Config
	Params  []string
	Ranges  [][]float64
	Metric  string
	Workers int
}

type Trial struct {
	Params map[string]float64
	Value  float64
}

type Outcome struct {
	Best    Trial
	Trials  []Trial
	Skipped int
}

func NewGridSearch(base *config.Config, params []string, ranges [][]float64, metric string) *GridSearch {
	return &GridSearch{Base: base, Params: params, Ranges: ranges, Metric: metric}
}

func (g *GridSearch) combinations() []map[string]float64 {
	combos := []map[string]float64{{}}
	for i, name := range g.Params {
		next := make([]map[string]float64, 0, len(combos)*len(g.Ranges[i]))
		for _, c := range combos {
			for _, v := range g.Ranges[i] {
				p := maps.Clone(c)
				p[name] = v
				next = append(next, p)
			}
		}
		combos = next
	}
	return combos
}

// Search runs all valid combinations in parallel. Combinations whose config
// does not validate are counted in Skipped. NaN and +Inf values never win.
func (g *GridSearch) Search(ctx context.Context, reg *experiment.Registry) (*Outcome, error) {
	if len(g.Params) == 0 {
		return nil, fmt.Errorf("optim: no parameters to search")
	}
	if len(g.Params) != len(g.Ranges) {
		return nil, fmt.Errorf("optim: %d parameters but %d ranges", len(g.Params), len(g.Ranges))
	}

	var (
		jobs   []dynamo.Job
		params []map[string]float64
		out    Outcome
	)
	for _, p := range g.combinations() {
		cfg := g.Base.Clone()
		for name, v := range p {
			if err := automation.SetParam(cfg, name, v); err != nil {
				return nil, err
			}
		}
		exp, err := experiment.New(cfg, reg)
		if err != nil {
			out.Skipped++
			continue
		}
		jobs = append(jobs, exp.Run)
		params = append(params, p)
	}
	if len(jobs) == 0 {
		return nil, ErrNoCandidates
	}

	results, err := dynamo.NewEnsemble(g.Workers).Run(ctx, jobs)
	if err != nil {
		return nil, err
	}

	out.Best.Value = math.Inf(1)
	for i, res := range results {
		val, ok := res.Metrics[g.Metric]
		if !ok {
			return nil, fmt.Errorf("optim: unknown metric %q", g.Metric)
		}
		trial := Trial{Params: params[i], Value: val}
		out.Trials = append(out.Trials, trial)
		if val < out.Best.Value {
			out.Best = trial
		}
	}
	if out.Best.Params == nil {
		return nil, fmt.Errorf("optim: metric %q has no finite value", g.Metric)
	}
	return &out, nil
}
