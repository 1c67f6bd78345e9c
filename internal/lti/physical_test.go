package lti_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ltisim/internal/dynamo"
	"github.com/san-kum/ltisim/internal/integrators"
	"github.com/san-kum/ltisim/internal/lti"
)

// springMass is m x'' + c x' + k x = F written in position/velocity form.
type springMass struct {
	mass, damping, stiffness float64
}

func (s *springMass) StateDim() int   { return 2 }
func (s *springMass) ControlDim() int { return 1 }

func (s *springMass) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	force := 0.0
	if len(u) > 0 {
		force = u[0]
	}
	return dynamo.State{
		x[1],
		(force - s.damping*x[1] - s.stiffness*x[0]) / s.mass,
	}
}

var _ = Describe("MassSpringDamper against the physical plant", func() {
	DescribeTable("matches position under the same integrator",
		func(m, c, k, force float64) {
			dt := 0.005
			input := constant(600, force)

			tf, err := lti.MassSpringDamper(m, c, k)
			Expect(err).NotTo(HaveOccurred())
			y, err := tf.Simulate(input, dt)
			Expect(err).NotTo(HaveOccurred())

			plant := &springMass{mass: m, damping: c, stiffness: k}
			rk4 := integrators.NewRK4()
			x := dynamo.State{0, 0}
			for i, u := range input {
				Expect(y[i]).To(BeNumerically("~", x[0], 1e-9))
				x = rk4.Step(plant, x, dynamo.Control{u}, float64(i)*dt, dt)
			}
		},
		Entry("underdamped", 5.0, 5.0, 300.0, 300.0),
		Entry("critically damped", 1.0, 2.0, 1.0, 1.0),
		Entry("undamped", 2.0, 0.0, 8.0, 4.0),
	)
})
