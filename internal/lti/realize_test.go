package lti_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ltisim/internal/dynamo"
	"github.com/san-kum/ltisim/internal/lti"
)

var _ = Describe("Realize", func() {
	It("builds the companion form with a normalized last row", func() {
		tf := lti.New([]float64{4, 2}, []float64{2, 4, 6, 8})

		ss, err := lti.Realize(tf)
		Expect(err).NotTo(HaveOccurred())
		Expect(ss.Order()).To(Equal(3))

		Expect(ss.A.At(0, 1)).To(Equal(1.0))
		Expect(ss.A.At(1, 2)).To(Equal(1.0))
		Expect(ss.A.At(0, 0)).To(Equal(0.0))
		Expect(ss.A.At(2, 0)).To(Equal(-4.0))
		Expect(ss.A.At(2, 1)).To(Equal(-3.0))
		Expect(ss.A.At(2, 2)).To(Equal(-2.0))

		Expect(ss.B).To(Equal([]float64{0, 0, 0.5}))
		Expect(ss.D).To(Equal(0.0))
		Expect(ss.C).To(Equal([]float64{2, 4, 0}))
	})

	It("splits off the feedthrough of a biproper system", func() {
		ss, err := lti.Realize(lti.New([]float64{1, 0}, []float64{1, 3}))
		Expect(err).NotTo(HaveOccurred())
		Expect(ss.D).To(Equal(1.0))
		Expect(ss.C).To(Equal([]float64{-3}))
	})

	It("realizes an order-0 system as a pure gain", func() {
		ss, err := lti.Realize(lti.New([]float64{3}, []float64{2}))
		Expect(err).NotTo(HaveOccurred())
		Expect(ss.Order()).To(Equal(0))
		Expect(ss.A).To(BeNil())
		Expect(ss.B).To(BeEmpty())
		Expect(ss.C).To(BeEmpty())
		Expect(ss.D).To(Equal(1.5))

		Expect(ss.Derive(dynamo.State{}, dynamo.Control{1}, 0)).To(BeEmpty())
		Expect(ss.Output(dynamo.State{}, dynamo.Control{4})).To(Equal(6.0))
	})

	It("treats an empty numerator as zero", func() {
		ss, err := lti.Realize(lti.New(nil, []float64{1, 1}))
		Expect(err).NotTo(HaveOccurred())
		Expect(ss.D).To(Equal(0.0))
		Expect(ss.C).To(Equal([]float64{0}))
	})

	It("evaluates A x + B u and C x + D u", func() {
		ss, err := lti.Realize(lti.New([]float64{1, 1}, []float64{1, 2, 1}))
		Expect(err).NotTo(HaveOccurred())

		x := dynamo.State{1, 2}
		Expect(ss.Derive(x, dynamo.Control{3}, 0)).To(Equal(dynamo.State{2, -1 - 4 + 3}))
		Expect(ss.Output(x, dynamo.Control{3})).To(Equal(3.0))
		Expect(x).To(Equal(dynamo.State{1, 2}))
	})

	DescribeTable("rejects invalid systems",
		func(num, den []float64) {
			_, err := lti.Realize(lti.New(num, den))
			Expect(err).To(MatchError(lti.ErrInvalidSystem))
		},
		Entry("empty denominator", []float64{1}, []float64{}),
		Entry("nil denominator", []float64{1}, []float64(nil)),
		Entry("zero leading coefficient", []float64{1}, []float64{0, 1}),
		Entry("improper", []float64{1, 0, 0}, []float64{1, 1}),
		Entry("improper after leading zeros", []float64{0, 1, 0, 0}, []float64{1, 1}),
	)

	It("ignores leading zeros in the numerator", func() {
		padded, err := lti.Realize(lti.New([]float64{0, 0, 1}, []float64{1, 1}))
		Expect(err).NotTo(HaveOccurred())
		plain, err := lti.Realize(lti.New([]float64{1}, []float64{1, 1}))
		Expect(err).NotTo(HaveOccurred())
		Expect(padded.C).To(Equal(plain.C))
		Expect(padded.D).To(Equal(plain.D))

		y, err := lti.Simulate([]float64{0, 0, 0}, []float64{1, 2}, []float64{1, 1}, 0.1)
		Expect(err).NotTo(HaveOccurred())
		Expect(y).To(Equal([]float64{0, 0}))
	})

	It("never mutates the caller's coefficients", func() {
		num := []float64{1}
		den := []float64{1, 2, 1}
		_, err := lti.Realize(lti.New(num, den))
		Expect(err).NotTo(HaveOccurred())
		Expect(num).To(Equal([]float64{1}))
		Expect(den).To(Equal([]float64{1, 2, 1}))
	})
})

var _ = Describe("TransferFunction", func() {
	It("reports order and DC gain", func() {
		tf := lti.New([]float64{1, 1}, []float64{1, 2, 1})
		Expect(tf.Order()).To(Equal(2))
		Expect(tf.DCGain()).To(Equal(1.0))

		integrator := lti.New([]float64{1}, []float64{1, 0})
		Expect(math.IsInf(integrator.DCGain(), 1)).To(BeTrue())

		Expect(math.IsNaN(lti.New([]float64{1, 0}, []float64{1, 0}).DCGain())).To(BeTrue())
		Expect(lti.TransferFunction{}.Order()).To(Equal(-1))
	})

	It("renders as a fraction", func() {
		tf := lti.New([]float64{1, 1}, []float64{1, 2, 1})
		Expect(tf.String()).To(Equal("1 s + 1\n---------------\n1 s^2 + 2 s + 1"))

		zero := lti.New([]float64{0}, []float64{1, 0.5})
		Expect(zero.String()).To(Equal("0\n---------\n1 s + 0.5"))
	})

	Describe("filter constructors", func() {
		It("builds a first-order low-pass", func() {
			tf, err := lti.LowPassFilter(10)
			Expect(err).NotTo(HaveOccurred())
			Expect(tf.Num).To(Equal([]float64{10}))
			Expect(tf.Den).To(Equal([]float64{1, 10}))
			Expect(tf.DCGain()).To(Equal(1.0))
		})

		It("builds a first-order high-pass", func() {
			tf, err := lti.HighPassFilter(10)
			Expect(err).NotTo(HaveOccurred())
			Expect(tf.Num).To(Equal([]float64{1, 0}))
			Expect(tf.Den).To(Equal([]float64{1, 10}))
			Expect(tf.DCGain()).To(Equal(0.0))
		})

		DescribeTable("rejects non-physical cutoffs",
			func(wc float64) {
				_, err := lti.LowPassFilter(wc)
				Expect(err).To(MatchError(lti.ErrInvalidParameter))
				_, err = lti.HighPassFilter(wc)
				Expect(err).To(MatchError(lti.ErrInvalidParameter))
			},
			Entry("zero", 0.0),
			Entry("negative", -1.0),
			Entry("NaN", math.NaN()),
			Entry("infinite", math.Inf(1)),
		)

		It("builds a mass-spring-damper plant", func() {
			tf, err := lti.MassSpringDamper(5, 5, 300)
			Expect(err).NotTo(HaveOccurred())
			Expect(tf.Den).To(Equal([]float64{5, 5, 300}))
			Expect(tf.DCGain()).To(BeNumerically("~", 1.0/300, 1e-15))

			_, err = lti.MassSpringDamper(0, 1, 1)
			Expect(err).To(MatchError(lti.ErrInvalidParameter))
			_, err = lti.MassSpringDamper(1, -1, 1)
			Expect(err).To(MatchError(lti.ErrInvalidParameter))
		})
	})
})
