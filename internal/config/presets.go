package config

import (
	"sort"

	"github.com/san-kum/ltisim/internal/signal"
)

var Presets = map[string]*Config{
	"critical": {
		Name: "critical", Model: ModelTransferFunction, Integrator: "rk4", Dt: 0.01,
		System: SystemConfig{Num: []float64{1, 1}, Den: []float64{1, 2, 1}},
		Input:  signal.Spec{Kind: "step", Samples: 100, Amplitude: 1},
	},
	"mass_spring_damper": {
		Name: "mass_spring_damper", Model: ModelMassSpringDamper, Integrator: "rk4", Dt: 0.01,
		System: SystemConfig{Mass: 5, Damping: 5, Stiffness: 300},
		Input:  signal.Spec{Kind: "impulse", Samples: 1000, Amplitude: 100},
	},
	"lowpass": {
		Name: "lowpass", Model: ModelLowPass, Integrator: "rk4", Dt: 0.005,
		System: SystemConfig{Cutoff: 10},
		Input:  signal.Spec{Kind: "square", Samples: 400, Amplitude: 1, Frequency: 1},
	},
	"highpass": {
		Name: "highpass", Model: ModelHighPass, Integrator: "rk4", Dt: 0.005,
		System: SystemConfig{Cutoff: 10},
		Input:  signal.Spec{Kind: "step", Samples: 200, Amplitude: 1},
	},
	"integrator": {
		Name: "integrator", Model: ModelTransferFunction, Integrator: "rk4", Dt: 0.01,
		System: SystemConfig{Num: []float64{1}, Den: []float64{1, 0}},
		Input:  signal.Spec{Kind: "step", Samples: 100, Amplitude: 1},
	},
	"gain": {
		Name: "gain", Model: ModelTransferFunction, Integrator: "rk4", Dt: 0.01,
		System: SystemConfig{Num: []float64{2}, Den: []float64{1}},
		Input:  signal.Spec{Kind: "sine", Samples: 200, Amplitude: 1, Frequency: 1},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
