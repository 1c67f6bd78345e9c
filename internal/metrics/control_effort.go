package metrics

import (
	"math"

	"github.com/san-kum/ltisim/internal/dynamo"
)

// InputEffort is the mean absolute input.
type InputEffort struct {
	name    string
	sum     float64
	samples int
}

func NewInputEffort() *InputEffort {
	return &InputEffort{
		name: "input_effort",
	}
}

func (c *InputEffort) Name() string {
	return c.name
}

func (c *InputEffort) Observe(s dynamo.Sample) {
	c.sum += math.Abs(s.U)
	c.samples++
}

func (c *InputEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *InputEffort) Reset() {
	c.sum = 0
	c.samples = 0
}
