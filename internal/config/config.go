// Package config loads the optional TOML settings file. Anything the file
// leaves out keeps its default.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"blackhole/internal/blackhole"
)

type Window struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Title      string `toml:"title"`
	TargetFPS  int    `toml:"target_fps"`
	Fullscreen bool   `toml:"fullscreen"`
}

type Simulation struct {
	RotationSpeed   float64 `toml:"rotation_speed"`
	BloomIntensity  float64 `toml:"bloom_intensity"`
	LensingStrength float64 `toml:"lensing_strength"`
	DiskBrightness  float64 `toml:"disk_brightness"`
	Temperature     float64 `toml:"temperature"`
	LightMode       bool    `toml:"light_mode"`
	Seed            int64   `toml:"seed"`
}

// Parameters is the starting parameter set of the driver.
func (s Simulation) Parameters() blackhole.Parameters {
	return blackhole.Parameters{
		RotationSpeed:   s.RotationSpeed,
		BloomIntensity:  s.BloomIntensity,
		LensingStrength: s.LensingStrength,
		DiskBrightness:  s.DiskBrightness,
		Temperature:     s.Temperature,
		LightMode:       s.LightMode,
	}
}

// View is a named camera position.
type View struct {
	Position [3]float64 `toml:"position"`
}

type Remote struct {
	Enabled bool   `toml:"enabled"`
	Addr    string `toml:"addr"`
}

type Screenshots struct {
	Dir    string `toml:"dir"`
	Dialog bool   `toml:"dialog"`
}

type Config struct {
	Window      Window          `toml:"window"`
	Simulation  Simulation      `toml:"simulation"`
	Views       map[string]View `toml:"views"`
	Remote      Remote          `toml:"remote"`
	Screenshots Screenshots     `toml:"screenshots"`
}

// Named views bound to the number keys, in key order.
var ViewOrder = []string{"orbit", "top", "side"}

func Default() Config {
	p := blackhole.DefaultParameters()
	return Config{
		Window: Window{
			Width:     1280,
			Height:    720,
			Title:     "Black Hole",
			TargetFPS: 60,
		},
		Simulation: Simulation{
			RotationSpeed:   p.RotationSpeed,
			BloomIntensity:  p.BloomIntensity,
			LensingStrength: p.LensingStrength,
			DiskBrightness:  p.DiskBrightness,
			Temperature:     p.Temperature,
			Seed:            1,
		},
		Views: map[string]View{
			"orbit": {Position: [3]float64{0, 18, 75}},
			"top":   {Position: [3]float64{0, 100, 5}},
			"side":  {Position: [3]float64{80, 2, 0}},
		},
		Remote: Remote{Addr: "127.0.0.1:8765"},
		Screenshots: Screenshots{
			Dir: ".",
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	if err := cfg.Decode(bufio.NewReader(f)); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads TOML from r into c. Unknown keys are rejected so a typo does
// not silently fall back to a default.
func (c *Config) Decode(r io.Reader) error {
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("unknown keys:\n%s", strict.String())
		}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return fmt.Errorf("line %d column %d: %w", row, col, err)
		}
		return err
	}
	return nil
}

// Encode writes c as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Window.TargetFPS < 0 {
		errs = append(errs, fmt.Errorf("target_fps %d is negative", c.Window.TargetFPS))
	}

	s := c.Simulation
	for _, f := range []struct {
		name  string
		value float64
		r     blackhole.Range
	}{
		{"rotation_speed", s.RotationSpeed, blackhole.RotationSpeedRange},
		{"bloom_intensity", s.BloomIntensity, blackhole.BloomIntensityRange},
		{"lensing_strength", s.LensingStrength, blackhole.LensingStrengthRange},
		{"disk_brightness", s.DiskBrightness, blackhole.DiskBrightnessRange},
		{"temperature", s.Temperature, blackhole.TemperatureRange},
	} {
		if f.value < f.r.Min || f.value > f.r.Max {
			errs = append(errs, fmt.Errorf("%s %v outside [%v, %v]", f.name, f.value, f.r.Min, f.r.Max))
		}
	}

	for _, name := range ViewOrder {
		if _, ok := c.Views[name]; !ok {
			errs = append(errs, fmt.Errorf("view %q is missing", name))
		}
	}

	if c.Remote.Enabled && c.Remote.Addr == "" {
		errs = append(errs, errors.New("remote is enabled without an addr"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// ViewNames lists the configured views, the keyed ones first.
func (c Config) ViewNames() []string {
	names := append([]string(nil), ViewOrder...)
	var extra []string
	for name := range c.Views {
		keyed := false
		for _, k := range ViewOrder {
			keyed = keyed || k == name
		}
		if !keyed {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}
