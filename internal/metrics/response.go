package metrics

import (
	"math"

	"github.com/san-kum/ltisim/internal/dynamo"
)

// Peak is the largest absolute output.
type Peak struct {
	peak float64
}

func NewPeak() *Peak { return &Peak{} }

func (p *Peak) Name() string { return "peak" }
func (p *Peak) Observe(s dynamo.Sample) {
	p.peak = math.Max(p.peak, math.Abs(s.Y))
}
func (p *Peak) Value() float64 { return p.peak }
func (p *Peak) Reset()         { p.peak = 0 }

// FinalValue is the last observed output.
type FinalValue struct {
	last float64
}

func NewFinalValue() *FinalValue { return &FinalValue{} }

func (f *FinalValue) Name() string            { return "final_value" }
func (f *FinalValue) Observe(s dynamo.Sample) { f.last = s.Y }
func (f *FinalValue) Value() float64          { return f.last }
func (f *FinalValue) Reset()                  { f.last = 0 }

// Overshoot is how far the output peak passes the final value, in percent
// of the final value. Zero when the final value is zero or never exceeded.
type Overshoot struct {
	max, min, last float64
	seen           bool
}

func NewOvershoot() *Overshoot { return &Overshoot{} }

func (o *Overshoot) Name() string { return "overshoot_pct" }

func (o *Overshoot) Observe(s dynamo.Sample) {
	if !o.seen {
		o.max, o.min, o.seen = s.Y, s.Y, true
	}
	o.max = math.Max(o.max, s.Y)
	o.min = math.Min(o.min, s.Y)
	o.last = s.Y
}

func (o *Overshoot) Value() float64 {
	if !o.seen || o.last == 0 {
		return 0
	}
	var over float64
	if o.last > 0 {
		over = o.max - o.last
	} else {
		over = o.last - o.min
	}
	return math.Max(0, 100*over/math.Abs(o.last))
}

func (o *Overshoot) Reset() { *o = Overshoot{} }

// SettlingTime is the earliest time after which the output stays within
// band (a fraction, e.g. 0.02) of the final value. A zero final value uses
// band as an absolute tolerance. Samples are kept until Value is called.
type SettlingTime struct {
	band  float64
	times []float64
	ys    []float64
}

func NewSettlingTime(band float64) *SettlingTime {
	return &SettlingTime{band: band}
}

func (st *SettlingTime) Name() string { return "settling_time" }

func (st *SettlingTime) Observe(s dynamo.Sample) {
	st.times = append(st.times, s.T)
	st.ys = append(st.ys, s.Y)
}

func (st *SettlingTime) Value() float64 {
	if len(st.ys) == 0 {
		return 0
	}
	final := st.ys[len(st.ys)-1]
	tol := st.band * math.Abs(final)
	if final == 0 {
		tol = st.band
	}
	settled := st.times[len(st.times)-1]
	for i := len(st.ys) - 1; i >= 0; i-- {
		if !(math.Abs(st.ys[i]-final) <= tol) {
			break
		}
		settled = st.times[i]
	}
	return settled
}

func (st *SettlingTime) Reset() {
	st.times = st.times[:0]
	st.ys = st.ys[:0]
}

// OutputEnergy approximates the integral of y^2 with a left Riemann sum.
type OutputEnergy struct {
	sum   float64
	lastT float64
	lastY float64
	seen  bool
}

func NewOutputEnergy() *OutputEnergy { return &OutputEnergy{} }

func (e *OutputEnergy) Name() string { return "output_energy" }

func (e *OutputEnergy) Observe(s dynamo.Sample) {
	if e.seen {
		e.sum += e.lastY * e.lastY * (s.T - e.lastT)
	}
	e.lastT, e.lastY, e.seen = s.T, s.Y, true
}

func (e *OutputEnergy) Value() float64 { return e.sum }
func (e *OutputEnergy) Reset()         { *e = OutputEnergy{} }

// Defaults is the metric set recorded for every run.
func Defaults() []dynamo.Metric {
	return []dynamo.Metric{
		NewPeak(),
		NewFinalValue(),
		NewOvershoot(),
		NewSettlingTime(0.02),
		NewOutputEnergy(),
		NewInputEffort(),
		NewStability(1e6),
	}
}
