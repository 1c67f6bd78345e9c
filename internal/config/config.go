package config

import (
	"fmt"
	"math"
	"os"

	"github.com/san-kum/ltisim/internal/integrators"
	"github.com/san-kum/ltisim/internal/lti"
	"github.com/san-kum/ltisim/internal/signal"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDt         = 0.01
	DefaultIntegrator = "rk4"
	DefaultSamples    = 100
)

// Models understood by TransferFunction.
const (
	ModelTransferFunction = "transfer_function"
	ModelLowPass          = "lowpass"
	ModelHighPass         = "highpass"
	ModelMassSpringDamper = "mass_spring_damper"
)

type Config struct {
	Name       string       `yaml:"name,omitempty"`
	Model      string       `yaml:"model"`
	System     SystemConfig `yaml:"system"`
	Input      signal.Spec  `yaml:"input"`
	Integrator string       `yaml:"integrator"`
	Dt         float64      `yaml:"dt"`
}

// SystemConfig holds the parameters of every model; each model reads only
// its own fields.
type SystemConfig struct {
	Num       []float64 `yaml:"num,omitempty"`
	Den       []float64 `yaml:"den,omitempty"`
	Cutoff    float64   `yaml:"cutoff,omitempty"`
	Mass      float64   `yaml:"mass,omitempty"`
	Damping   float64   `yaml:"damping,omitempty"`
	Stiffness float64   `yaml:"stiffness,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Model: ModelTransferFunction,
		System: SystemConfig{
			Num: []float64{1, 1},
			Den: []float64{1, 2, 1},
		},
		Input: signal.Spec{
			Kind:      "step",
			Samples:   DefaultSamples,
			Amplitude: 1,
		},
		Integrator: DefaultIntegrator,
		Dt:         DefaultDt,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.System.Num = append([]float64(nil), c.System.Num...)
	out.System.Den = append([]float64(nil), c.System.Den...)
	return &out
}

// TransferFunction builds the system named by Model.
func (c *Config) TransferFunction() (lti.TransferFunction, error) {
	s := c.System
	switch c.Model {
	case ModelTransferFunction, "":
		tf := lti.New(s.Num, s.Den)
		return tf, tf.Validate()
	case ModelLowPass:
		return lti.LowPassFilter(s.Cutoff)
	case ModelHighPass:
		return lti.HighPassFilter(s.Cutoff)
	case ModelMassSpringDamper:
		return lti.MassSpringDamper(s.Mass, s.Damping, s.Stiffness)
	default:
		return lti.TransferFunction{}, fmt.Errorf("config: unknown model %q (available: %v)", c.Model, Models())
	}
}

// Inputs generates the configured input sequence.
func (c *Config) Inputs() ([]float64, error) {
	return signal.Generate(c.Input, c.Dt)
}

// Validate checks that the config describes a runnable simulation.
func (c *Config) Validate() error {
	if !(c.Dt > 0) || math.IsInf(c.Dt, 0) {
		return fmt.Errorf("config: %w: %g", lti.ErrInvalidStepSize, c.Dt)
	}
	if _, err := integrators.New(c.Integrator); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := c.TransferFunction(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := c.Inputs(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Models lists the accepted Model values.
func Models() []string {
	return []string{ModelHighPass, ModelLowPass, ModelMassSpringDamper, ModelTransferFunction}
}
