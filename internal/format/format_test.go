package format

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArray(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want string
	}{
		{"nil", nil, "[]"},
		{"empty", []float64{}, "[]"},
		{"single", []float64{1}, "[1]"},
		{"mixed", []float64{1, -2.5, 0.1}, "[1, -2.5, 0.1]"},
		{"exponent", []float64{1e-9, 3e21}, "[1e-09, 3e+21]"},
		{"non-finite", []float64{math.NaN(), math.Inf(1), math.Inf(-1)}, "[NaN, +Inf, -Inf]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Array(tt.in))
		})
	}
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Print(&buf, []float64{0, 0.5}))
	assert.Equal(t, "[0, 0.5]\n", buf.String())
}
