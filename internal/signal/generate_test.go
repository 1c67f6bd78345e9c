package signal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepAndImpulse(t *testing.T) {
	step, err := Step(4, 2.5)
	require.NoError(t, err)
	assert.Equal(t, []float64{2.5, 2.5, 2.5, 2.5}, step)

	imp, err := Impulse(4, 100)
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 0, 0, 0}, imp)
}

func TestRamp(t *testing.T) {
	ramp, err := Ramp(5, 0.5, 2)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 1, 2, 3, 4}, ramp, 1e-12)
}

func TestSine(t *testing.T) {
	s, err := Sine(5, 0.25, 1, 3)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 3, 0, -3, 0}, s, 1e-12)
}

func TestSquare(t *testing.T) {
	sq, err := Square(8, 0.125, 1, 1, 0.5)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 1, 1, -1, -1, -1, -1}, sq)

	_, err = Square(8, 0.125, 1, 1, 1)
	assert.ErrorIs(t, err, ErrInvalidSignal)
	_, err = Square(8, 0.125, 0, 1, 0.5)
	assert.ErrorIs(t, err, ErrInvalidSignal)
}

func TestNoiseDeterministic(t *testing.T) {
	a, err := Noise(1000, 2, 7)
	require.NoError(t, err)
	b, err := Noise(1000, 2, 7)
	require.NoError(t, err)
	c, err := Noise(1000, 2, 8)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	var sum, sq float64
	for _, v := range a {
		sum += v
		sq += v * v
	}
	mean := sum / 1000
	std := math.Sqrt(sq/1000 - mean*mean)
	assert.InDelta(t, 0, mean, 0.3)
	assert.InDelta(t, 2, std, 0.3)

	silent, err := Noise(3, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0}, silent)
}

func TestInvalidParameters(t *testing.T) {
	_, err := Step(0, 1)
	assert.ErrorIs(t, err, ErrInvalidSignal)
	_, err = Ramp(3, 0, 1)
	assert.ErrorIs(t, err, ErrInvalidSignal)
	_, err = Sine(3, -1, 1, 1)
	assert.ErrorIs(t, err, ErrInvalidSignal)
	_, err = Noise(3, -1, 1)
	assert.ErrorIs(t, err, ErrInvalidSignal)
}

func TestGenerate(t *testing.T) {
	out, err := Generate(Spec{Kind: "step", Samples: 3, Amplitude: 1, Offset: 0.5}, 0.01)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 1.5, 1.5}, out)

	out, err = Generate(Spec{Kind: "square", Samples: 4, Amplitude: 1, Frequency: 1}, 0.25)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, -1, -1}, out)

	_, err = Generate(Spec{Kind: "chirp", Samples: 3}, 0.01)
	assert.ErrorIs(t, err, ErrInvalidSignal)

	assert.Contains(t, Kinds(), "impulse")
}

func TestGenerateRampSlope(t *testing.T) {
	out, err := Generate(Spec{Kind: "ramp", Samples: 3, Amplitude: 2}, 0.5)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 1, 2}, out, 1e-12)

	out, err = Generate(Spec{Kind: "ramp", Samples: 3, Amplitude: 2, Slope: -1}, 0.5)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, -0.5, -1}, out, 1e-12)
}
