package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blackhole/internal/blackhole"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, blackhole.DefaultParameters(), cfg.Simulation.Parameters())
	assert.Equal(t, "127.0.0.1:8765", cfg.Remote.Addr)
	assert.False(t, cfg.Remote.Enabled)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blackhole.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[window]
width = 1920
fullscreen = true

[simulation]
rotation_speed = 2.0
light_mode = true
seed = 42

[views.closeup]
position = [0.0, 5.0, 20.0]

[remote]
enabled = true
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 1920, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height, "untouched keys keep their default")
	assert.True(t, cfg.Window.Fullscreen)
	assert.Equal(t, 2.0, cfg.Simulation.RotationSpeed)
	assert.Equal(t, 1.2, cfg.Simulation.BloomIntensity)
	assert.True(t, cfg.Simulation.LightMode)
	assert.Equal(t, int64(42), cfg.Simulation.Seed)
	assert.Equal(t, [3]float64{0, 5, 20}, cfg.Views["closeup"].Position)
	assert.Contains(t, cfg.Views, "orbit")
	assert.True(t, cfg.Remote.Enabled)
	assert.Equal(t, "127.0.0.1:8765", cfg.Remote.Addr)

	assert.Equal(t, []string{"orbit", "top", "side", "closeup"}, cfg.ViewNames())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	cfg := Default()
	err := cfg.Decode(strings.NewReader("[simulation]\nrotation_sped = 2.0\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rotation_sped")
}

func TestDecodeReportsSyntaxPosition(t *testing.T) {
	cfg := Default()
	err := cfg.Decode(strings.NewReader("[window]\nwidth = = 3\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }, "window size"},
		{"negative fps", func(c *Config) { c.Window.TargetFPS = -1 }, "target_fps"},
		{"rotation", func(c *Config) { c.Simulation.RotationSpeed = 9 }, "rotation_speed"},
		{"temperature", func(c *Config) { c.Simulation.Temperature = 0 }, "temperature"},
		{"missing view", func(c *Config) { delete(c.Views, "top") }, `view "top"`},
		{"remote addr", func(c *Config) { c.Remote.Enabled = true; c.Remote.Addr = "" }, "addr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestEncodeDecodes(t *testing.T) {
	cfg := Default()
	cfg.Simulation.Seed = 7

	var buf bytes.Buffer
	require.NoError(t, cfg.Encode(&buf))

	var back Config
	require.NoError(t, back.Decode(&buf))
	assert.Equal(t, cfg, back)
}
