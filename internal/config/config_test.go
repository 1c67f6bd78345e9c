package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/san-kum/ltisim/internal/lti"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ModelTransferFunction, cfg.Model)
	assert.Equal(t, "rk4", cfg.Integrator)
	assert.Positive(t, cfg.Dt)
	require.NoError(t, cfg.Validate())
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("mass_spring_damper")
	require.NotNil(t, cfg)

	tf, err := cfg.TransferFunction()
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, tf.Num)
	assert.Equal(t, []float64{5, 5, 300}, tf.Den)

	u, err := cfg.Inputs()
	require.NoError(t, err)
	require.Len(t, u, 1000)
	assert.Equal(t, 100.0, u[0])
	assert.Equal(t, 0.0, u[1])
}

func TestGetPresetReturnsCopy(t *testing.T) {
	cfg := GetPreset("critical")
	require.NotNil(t, cfg)
	cfg.Dt = 1
	cfg.System.Den[0] = 42

	again := GetPreset("critical")
	assert.Equal(t, 0.01, again.Dt)
	assert.Equal(t, []float64{1, 2, 1}, again.System.Den)
}

func TestGetPresetNotFound(t *testing.T) {
	assert.Nil(t, GetPreset("nonexistent"))
}

func TestPresetsValidate(t *testing.T) {
	names := ListPresets()
	require.Len(t, names, len(Presets))
	assert.IsIncreasing(t, names)

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			assert.NoError(t, GetPreset(name).Validate())
		})
	}
}

func TestTransferFunctionModels(t *testing.T) {
	cfg := DefaultConfig()

	cfg.Model = ModelLowPass
	cfg.System.Cutoff = 5
	tf, err := cfg.TransferFunction()
	require.NoError(t, err)
	assert.Equal(t, []float64{5}, tf.Num)

	cfg.Model = ModelHighPass
	tf, err = cfg.TransferFunction()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0}, tf.Num)

	cfg.System.Cutoff = 0
	_, err = cfg.TransferFunction()
	assert.True(t, errors.Is(err, lti.ErrInvalidParameter))

	cfg.Model = "pendulum"
	_, err = cfg.TransferFunction()
	require.Error(t, err)
	for _, m := range Models() {
		assert.Contains(t, err.Error(), m)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		target error
	}{
		{"zero dt", func(c *Config) { c.Dt = 0 }, lti.ErrInvalidStepSize},
		{"bad den", func(c *Config) { c.System.Den = []float64{0, 1} }, lti.ErrInvalidSystem},
		{"unknown integrator", func(c *Config) { c.Integrator = "verlet" }, nil},
		{"no samples", func(c *Config) { c.Input.Samples = 0 }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.yaml")
	cfg := GetPreset("critical")
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.yaml")
	require.NoError(t, Save(path, &Config{Model: ModelHighPass, System: SystemConfig{Cutoff: 3}}))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ModelHighPass, loaded.Model)
	assert.Equal(t, 3.0, loaded.System.Cutoff)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
