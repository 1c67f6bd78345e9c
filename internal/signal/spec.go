package signal

import (
	"fmt"
	"sort"
)

// Spec describes an input sequence in configuration files.
type Spec struct {
	Kind      string  `yaml:"kind" json:"kind"`
	Samples   int     `yaml:"samples" json:"samples"`
	Amplitude float64 `yaml:"amplitude" json:"amplitude"`
	Frequency float64 `yaml:"frequency,omitempty" json:"frequency,omitempty"`
	Slope     float64 `yaml:"slope,omitempty" json:"slope,omitempty"`
	Offset    float64 `yaml:"offset,omitempty" json:"offset,omitempty"`
	Duty      float64 `yaml:"duty,omitempty" json:"duty,omitempty"`
	Seed      uint64  `yaml:"seed,omitempty" json:"seed,omitempty"`
}

var generators = map[string]func(s Spec, dt float64) ([]float64, error){
	"step":     func(s Spec, _ float64) ([]float64, error) { return Step(s.Samples, s.Amplitude) },
	"constant": func(s Spec, _ float64) ([]float64, error) { return Constant(s.Samples, s.Amplitude) },
	"impulse":  func(s Spec, _ float64) ([]float64, error) { return Impulse(s.Samples, s.Amplitude) },
	"ramp": func(s Spec, dt float64) ([]float64, error) {
		slope := s.Slope
		if slope == 0 {
			slope = s.Amplitude
		}
		return Ramp(s.Samples, dt, slope)
	},
	"sine": func(s Spec, dt float64) ([]float64, error) {
		return Sine(s.Samples, dt, s.Frequency, s.Amplitude)
	},
	"square": func(s Spec, dt float64) ([]float64, error) {
		duty := s.Duty
		if duty == 0 {
			duty = 0.5
		}
		return Square(s.Samples, dt, s.Frequency, s.Amplitude, duty)
	},
	"noise": func(s Spec, _ float64) ([]float64, error) { return Noise(s.Samples, s.Amplitude, s.Seed) },
}

// Generate builds the sequence described by spec and adds its offset.
func Generate(spec Spec, dt float64) ([]float64, error) {
	gen, ok := generators[spec.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown kind %q (available: %v)", ErrInvalidSignal, spec.Kind, Kinds())
	}
	out, err := gen(spec, dt)
	if err != nil {
		return nil, err
	}
	if spec.Offset != 0 {
		for i := range out {
			out[i] += spec.Offset
		}
	}
	return out, nil
}

func Kinds() []string {
	kinds := make([]string, 0, len(generators))
	for k := range generators {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
