package lti_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ltisim/internal/dynamo"
	"github.com/san-kum/ltisim/internal/integrators"
	"github.com/san-kum/ltisim/internal/lti"
)

func constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func sine(n int, dt, hz float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * hz * float64(i) * dt)
	}
	return out
}

var _ = Describe("Simulate", func() {
	It("integrates a step into a ramp", func() {
		dt := 0.01
		y, err := lti.Simulate([]float64{1}, []float64{1, 0}, constant(200, 1), dt)
		Expect(err).NotTo(HaveOccurred())
		for i, v := range y {
			Expect(v).To(BeNumerically("~", float64(i)*dt, 1e-12))
		}
	})

	It("passes an order-0 system straight through", func() {
		input := sine(64, 0.1, 0.7)
		for _, dt := range []float64{1e-4, 0.01, 3} {
			y, err := lti.Simulate([]float64{2}, []float64{1}, input, dt)
			Expect(err).NotTo(HaveOccurred())
			for i := range input {
				Expect(y[i]).To(Equal(2 * input[i]))
			}
		}
	})

	It("stays at rest for zero input", func() {
		systems := []lti.TransferFunction{
			lti.New([]float64{1, 1}, []float64{1, 2, 1}),
			lti.New([]float64{1, 0}, []float64{1, 10}),
			lti.New([]float64{3, 0, 1}, []float64{1, -1, 4}),
			lti.New([]float64{1}, []float64{5, 5, 300}),
		}
		for _, tf := range systems {
			y, err := tf.Simulate(constant(50, 0), 0.01)
			Expect(err).NotTo(HaveOccurred())
			Expect(y).To(Equal(constant(50, 0)))
		}
	})

	It("preserves the input length", func() {
		tf := lti.New([]float64{1}, []float64{1, 1})
		for _, n := range []int{0, 1, 2, 17, 1000} {
			y, err := tf.Simulate(constant(n, 1), 0.05)
			Expect(err).NotTo(HaveOccurred())
			Expect(y).To(HaveLen(n))
		}
	})

	It("converges at fourth order", func() {
		tf := lti.New([]float64{1}, []float64{1, 2, 1})
		exact := 1 - math.Exp(-1)*2

		errAt := func(dt float64) float64 {
			steps := int(math.Round(1 / dt))
			y, err := tf.Simulate(constant(steps+1, 1), dt)
			Expect(err).NotTo(HaveOccurred())
			return math.Abs(y[steps] - exact)
		}

		ratio := errAt(0.1) / errAt(0.05)
		Expect(ratio).To(BeNumerically(">", 13))
		Expect(ratio).To(BeNumerically("<", 19))
	})

	It("responds to a step on (s+1)/(s^2+2s+1) without oscillation", func() {
		y, err := lti.Simulate([]float64{1, 1}, []float64{1, 2, 1}, constant(100, 1), 0.01)
		Expect(err).NotTo(HaveOccurred())
		Expect(y).To(HaveLen(100))

		// the numerator is padded before D is taken, so D = 0 and the
		// response starts from rest
		Expect(y[0]).To(Equal(0.0))
		for i := 1; i < len(y); i++ {
			Expect(y[i]).To(BeNumerically(">=", y[i-1]))
			Expect(y[i]).To(BeNumerically("<", 1.0))
			Expect(y[i]).To(BeNumerically("~", 1-math.Exp(-float64(i)*0.01), 1e-8))
		}
	})

	It("approaches the DC gain for long runs", func() {
		tf := lti.New([]float64{1, 1}, []float64{1, 2, 1})
		y, err := tf.Simulate(constant(2000, 1), 0.01)
		Expect(err).NotTo(HaveOccurred())
		Expect(y[len(y)-1]).To(BeNumerically("~", tf.DCGain(), 1e-6))
	})

	It("starts a high-pass at its feedthrough and decays", func() {
		tf, err := lti.HighPassFilter(5)
		Expect(err).NotTo(HaveOccurred())
		y, err := tf.Simulate(constant(300, 1), 0.01)
		Expect(err).NotTo(HaveOccurred())
		Expect(y[0]).To(Equal(1.0))
		Expect(y[100]).To(BeNumerically("~", math.Exp(-5), 1e-7))
	})

	It("lets an unstable system diverge without error", func() {
		y, err := lti.Simulate([]float64{1}, []float64{1, -50}, constant(2000, 1), 0.01)
		Expect(err).NotTo(HaveOccurred())
		last := y[len(y)-1]
		Expect(math.IsInf(last, 1) || last > 1e100).To(BeTrue())
	})

	DescribeTable("rejects invalid systems for any input and dt",
		func(den []float64, dt float64) {
			y, err := lti.Simulate([]float64{1}, den, constant(10, 1), dt)
			Expect(err).To(MatchError(lti.ErrInvalidSystem))
			Expect(y).To(BeNil())
		},
		Entry("empty", []float64{}, 0.01),
		Entry("zero leading", []float64{0, 1}, 0.01),
		Entry("zero leading, bad dt", []float64{0, 1}, -1.0),
	)

	DescribeTable("rejects invalid step sizes",
		func(dt float64) {
			y, err := lti.Simulate([]float64{1}, []float64{1, 1}, constant(10, 1), dt)
			Expect(err).To(MatchError(lti.ErrInvalidStepSize))
			Expect(y).To(BeNil())
		},
		Entry("zero", 0.0),
		Entry("negative", -0.01),
		Entry("NaN", math.NaN()),
	)

	It("does not alias caller data across repeated calls", func() {
		num := []float64{1}
		den := []float64{1, 2, 1}
		input := constant(20, 1)

		first, err := lti.Simulate(num, den, input, 0.01)
		Expect(err).NotTo(HaveOccurred())
		second, err := lti.Simulate(num, den, input, 0.01)
		Expect(err).NotTo(HaveOccurred())

		Expect(second).To(Equal(first))
		Expect(num).To(Equal([]float64{1}))
		Expect(input).To(Equal(constant(20, 1)))
	})
})

type countingMetric struct{ n int }

func (c *countingMetric) Name() string          { return "count" }
func (c *countingMetric) Observe(dynamo.Sample) { c.n++ }
func (c *countingMetric) Value() float64        { return float64(c.n) }
func (c *countingMetric) Reset()                { c.n = 0 }

var _ = Describe("SimulateContext", func() {
	tf := lti.New([]float64{1}, []float64{1, 1})

	It("records times, states and metrics", func() {
		res, err := lti.SimulateContext(context.Background(), tf, constant(10, 1), 0.1,
			lti.WithMetrics(&countingMetric{}))
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Times).To(HaveLen(10))
		Expect(res.Times[9]).To(BeNumerically("~", 0.9, 1e-12))
		Expect(res.States[0]).To(Equal(dynamo.State{0}))
		Expect(res.Metrics).To(HaveKeyWithValue("count", 10.0))
	})

	It("accepts another integrator", func() {
		rk4, err := lti.SimulateContext(context.Background(), tf, constant(10, 1), 0.1)
		Expect(err).NotTo(HaveOccurred())
		euler, err := lti.SimulateContext(context.Background(), tf, constant(10, 1), 0.1,
			lti.WithIntegrator(integrators.NewEuler()))
		Expect(err).NotTo(HaveOccurred())
		Expect(euler.Outputs[1]).To(BeNumerically("~", 0.1, 1e-12))
		Expect(rk4.Outputs[1]).NotTo(Equal(euler.Outputs[1]))
	})

	It("stops on a canceled context", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := lti.SimulateContext(ctx, tf, constant(10, 1), 0.1)
		Expect(err).To(MatchError(dynamo.ErrContextCanceled))
	})

	It("runs independent simulations concurrently", func() {
		jobs := make([]dynamo.Job, 16)
		for i := range jobs {
			wc := float64(i + 1)
			jobs[i] = func(ctx context.Context) (*dynamo.Result, error) {
				lp, err := lti.LowPassFilter(wc)
				if err != nil {
					return nil, err
				}
				return lti.SimulateContext(ctx, lp, constant(500, 1), 0.01)
			}
		}
		results, err := dynamo.NewEnsemble(4).Run(context.Background(), jobs)
		Expect(err).NotTo(HaveOccurred())
		for i, r := range results {
			want, err := lti.LowPassFilter(float64(i + 1))
			Expect(err).NotTo(HaveOccurred())
			y, err := want.Simulate(constant(500, 1), 0.01)
			Expect(err).NotTo(HaveOccurred())
			Expect(r.Outputs).To(Equal(y))
		}
	})
})
