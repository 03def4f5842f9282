package main

import (
	"errors"
	"fmt"
	"strings"

	"blackhole/internal/blackhole"
	"blackhole/internal/config"
)

// Command is one control request, from the keyboard or the remote endpoint.
// Parameter fields are optional; only the ones present are changed.
type Command struct {
	Type string `json:"type"`

	View     string      `json:"view,omitempty"`
	Position *[3]float64 `json:"position,omitempty"`
	Enabled  *bool       `json:"enabled,omitempty"`

	RotationSpeed   *float64 `json:"rotation_speed,omitempty"`
	BloomIntensity  *float64 `json:"bloom_intensity,omitempty"`
	LensingStrength *float64 `json:"lensing_strength,omitempty"`
	DiskBrightness  *float64 `json:"disk_brightness,omitempty"`
	Temperature     *float64 `json:"temperature,omitempty"`
	LightMode       *bool    `json:"light_mode,omitempty"`
}

const (
	CommandParams     = "params"
	CommandView       = "view"
	CommandMove       = "move"
	CommandReset      = "reset"
	CommandAutoRotate = "auto_rotate"
	CommandCinematic  = "cinematic"
	CommandScreenshot = "screenshot"
)

var errUnknownCommand = errors.New("unknown command")

// Validate checks the shape of c without touching any state.
func (c Command) Validate() error {
	switch c.Type {
	case CommandParams, CommandReset, CommandScreenshot:
	case CommandView:
		if c.View == "" {
			return errors.New("view: missing name")
		}
	case CommandMove:
		if c.Position == nil {
			return errors.New("move: missing position")
		}
	case CommandAutoRotate, CommandCinematic:
		if c.Enabled == nil {
			return fmt.Errorf("%s: missing enabled", c.Type)
		}
	default:
		return fmt.Errorf("%w %q", errUnknownCommand, c.Type)
	}
	return nil
}

// controls is the host-side state the commands act on.
type controls struct {
	driver    *blackhole.Driver
	views     map[string]config.View
	viewNames []string

	params     blackhole.Parameters
	autoRotate bool
	cinematic  bool
	screenshot bool
}

func newControls(driver *blackhole.Driver, cfg config.Config) *controls {
	return &controls{
		driver:    driver,
		views:     cfg.Views,
		viewNames: cfg.ViewNames(),
		params:    cfg.Simulation.Parameters().Clamp(),
	}
}

func (c *controls) apply(cmd Command) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	switch cmd.Type {
	case CommandParams:
		c.applyParams(cmd)
		return nil
	case CommandView:
		v, ok := c.views[cmd.View]
		if !ok {
			return fmt.Errorf("view %q is not configured (have %s)", cmd.View, strings.Join(c.viewNames, ", "))
		}
		return c.driver.MoveTo(v.Position[0], v.Position[1], v.Position[2])
	case CommandMove:
		p := cmd.Position
		return c.driver.MoveTo(p[0], p[1], p[2])
	case CommandReset:
		return c.driver.ResetCamera()
	case CommandAutoRotate:
		c.autoRotate = *cmd.Enabled
		return c.driver.SetAutoRotation(c.autoRotate)
	case CommandCinematic:
		// Cinematic hides the overlay and drifts the camera.
		c.cinematic = *cmd.Enabled
		c.autoRotate = c.cinematic
		return c.driver.SetAutoRotation(c.autoRotate)
	case CommandScreenshot:
		c.screenshot = true
	}
	return nil
}

func (c *controls) applyParams(cmd Command) {
	p := &c.params
	if cmd.RotationSpeed != nil {
		p.RotationSpeed = *cmd.RotationSpeed
	}
	if cmd.BloomIntensity != nil {
		p.BloomIntensity = *cmd.BloomIntensity
	}
	if cmd.LensingStrength != nil {
		p.LensingStrength = *cmd.LensingStrength
	}
	if cmd.DiskBrightness != nil {
		p.DiskBrightness = *cmd.DiskBrightness
	}
	if cmd.Temperature != nil {
		p.Temperature = *cmd.Temperature
	}
	if cmd.LightMode != nil {
		p.LightMode = *cmd.LightMode
	}
	c.params = p.Clamp()
}

// takeScreenshot reports whether a screenshot was requested since the last
// call.
func (c *controls) takeScreenshot() bool {
	requested := c.screenshot
	c.screenshot = false
	return requested
}

func ptr[T any](v T) *T { return &v }
