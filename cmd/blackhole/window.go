package main

import (
	"errors"
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"blackhole/internal/blackhole"
	"blackhole/internal/config"
	"blackhole/internal/debug"
	"blackhole/internal/engine3D"
	"blackhole/internal/gpu"
	"blackhole/internal/gpu/rlgpu"
	"blackhole/internal/utils"
)

type Window struct {
	cfg      config.Config
	dev      *rlgpu.Device
	driver   *blackhole.Driver
	failure  error
	controls *controls

	clock        *engine3D.Clock
	debugOverlay *debug.DebugOverlay
	remote       *RemoteServer

	message      string
	messageUntil time.Time
}

// NewWindow builds the simulation on dev. A construction failure is kept and
// shown instead of the simulation; construction is not retried.
func NewWindow(dev *rlgpu.Device, cfg config.Config) *Window {
	window := &Window{
		cfg:          cfg,
		dev:          dev,
		clock:        engine3D.NewClock(),
		debugOverlay: debug.NewDebugOverlay(),
	}

	opts := blackhole.DefaultOptions()
	opts.Seed = cfg.Simulation.Seed
	driver, err := blackhole.New(dev, opts)
	if err != nil {
		utils.Error("Simulation unavailable: %v", err)
		window.failure = err
		return window
	}
	window.driver = driver
	window.controls = newControls(driver, cfg)

	if cfg.Remote.Enabled {
		remote, err := StartRemote(cfg.Remote.Addr)
		if err != nil {
			utils.Error("Remote control disabled: %v", err)
		} else {
			window.remote = remote
		}
	}

	return window
}

func (window *Window) Run() {
	for !rl.WindowShouldClose() {
		elapsed, delta := window.clock.Tick()
		window.debugOverlay.Update()

		rl.BeginDrawing()
		if window.driver == nil {
			window.drawUnsupported()
		} else {
			window.frame(elapsed, delta)
		}
		rl.EndDrawing()

		if window.driver != nil && window.controls.takeScreenshot() {
			window.saveScreenshot()
		}
	}
}

func (window *Window) frame(elapsed, delta float64) {
	window.handleResize()
	window.handleInput()
	window.drainRemote()

	if err := window.driver.Update(elapsed, delta, window.controls.params); err != nil {
		utils.Error("Update: %v", err)
		return
	}

	if window.debugOverlay.Visible && !window.controls.cinematic {
		window.debugOverlay.Draw(window.status())
	} else if msg := window.activeMessage(time.Now()); msg != "" {
		window.debugOverlay.DrawText(msg, 10, 10, 20, rl.White)
	}
}

func (window *Window) status() debug.Status {
	cam := window.driver.Camera()
	pos := cam.Position()
	counts := window.driver.Counts()

	s := debug.Status{
		Params:     window.controls.params,
		ModeBlend:  window.driver.ModeBlend(),
		Mode:       cam.Mode(),
		Position:   [3]float64{pos.X(), pos.Y(), pos.Z()},
		Distance:   cam.Distance(),
		AutoRotate: cam.AutoRotate(),
		Debris:     counts.Debris,
		Stars:      counts.Stars,
		Profile:    window.driver.Profile(),
	}
	if window.remote != nil {
		s.Remote = fmt.Sprintf("ws://%s/ws", window.remote.Addr())
	}
	s.Message = window.activeMessage(time.Now())
	return s
}

const flashDuration = 3 * time.Second

func (window *Window) flash(format string, v ...any) {
	window.message = fmt.Sprintf(format, v...)
	window.messageUntil = time.Now().Add(flashDuration)
}

// activeMessage returns the flashed message until it expires, then clears it.
func (window *Window) activeMessage(now time.Time) string {
	if window.message != "" && !now.Before(window.messageUntil) {
		window.message = ""
	}
	return window.message
}

func (window *Window) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	width, height := int(rl.GetScreenWidth()), int(rl.GetScreenHeight())
	if err := window.driver.Resize(width, height); err != nil {
		if errors.Is(err, gpu.ErrResourceExhausted) {
			window.flash("Resize to %dx%d rejected by the GPU", width, height)
		}
		utils.Error("Resize: %v", err)
	}
}

func (window *Window) run(cmd Command) {
	if err := window.controls.apply(cmd); err != nil {
		utils.Warn("Command %s: %v", cmd.Type, err)
	}
}

var viewKeys = []int32{rl.KeyOne, rl.KeyTwo, rl.KeyThree}

func (window *Window) handleInput() {
	c := window.controls

	for i, key := range viewKeys {
		if rl.IsKeyPressed(key) && i < len(config.ViewOrder) {
			window.run(Command{Type: CommandView, View: config.ViewOrder[i]})
		}
	}

	switch {
	case rl.IsKeyPressed(rl.KeyR):
		window.run(Command{Type: CommandReset})
	case rl.IsKeyPressed(rl.KeyA):
		window.run(Command{Type: CommandAutoRotate, Enabled: ptr(!c.autoRotate)})
	case rl.IsKeyPressed(rl.KeyL):
		window.run(Command{Type: CommandParams, LightMode: ptr(!c.params.LightMode)})
	case rl.IsKeyPressed(rl.KeyC):
		window.run(Command{Type: CommandCinematic, Enabled: ptr(!c.cinematic)})
	case rl.IsKeyPressed(rl.KeyP):
		window.run(Command{Type: CommandScreenshot})
	case rl.IsKeyPressed(rl.KeyF8):
		window.debugOverlay.Visible = !window.debugOverlay.Visible
	}

	nudges := []struct {
		down, up int32
		r        blackhole.Range
		field    func(*Command, float64)
		value    float64
	}{
		{rl.KeyLeftBracket, rl.KeyRightBracket, blackhole.RotationSpeedRange,
			func(cmd *Command, v float64) { cmd.RotationSpeed = &v }, c.params.RotationSpeed},
		{rl.KeyMinus, rl.KeyEqual, blackhole.BloomIntensityRange,
			func(cmd *Command, v float64) { cmd.BloomIntensity = &v }, c.params.BloomIntensity},
		{rl.KeySemicolon, rl.KeyApostrophe, blackhole.LensingStrengthRange,
			func(cmd *Command, v float64) { cmd.LensingStrength = &v }, c.params.LensingStrength},
	}
	for _, n := range nudges {
		steps := 0
		if rl.IsKeyPressed(n.down) {
			steps--
		}
		if rl.IsKeyPressed(n.up) {
			steps++
		}
		if steps != 0 {
			cmd := Command{Type: CommandParams}
			n.field(&cmd, n.r.Nudge(n.value, steps))
			window.run(cmd)
		}
	}

	cam := window.driver.Camera()
	if rl.IsMouseButtonDown(rl.MouseLeftButton) {
		d := rl.GetMouseDelta()
		cam.Drag(float64(d.X), float64(d.Y))
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		cam.Zoom(float64(wheel))
	}
}

// drainRemote applies every queued remote command without blocking.
func (window *Window) drainRemote() {
	if window.remote == nil {
		return
	}
	for {
		select {
		case cmd := <-window.remote.Commands():
			utils.Debug("Remote: %s", cmd.Type)
			window.run(cmd)
		default:
			return
		}
	}
}

func (window *Window) saveScreenshot() {
	data, err := window.driver.CaptureStillFrame()
	if err != nil {
		utils.Error("Screenshot: %v", err)
		return
	}

	path, err := screenshotPath(window.cfg.Screenshots.Dir, window.cfg.Screenshots.Dialog, time.Now())
	if err != nil {
		utils.Error("Screenshot: %v", err)
		return
	}
	if path == "" {
		return
	}

	if err := writeScreenshot(path, data); err != nil {
		utils.Error("Screenshot: %v", err)
		return
	}
	utils.Info("Screenshot saved to %s", path)
	window.flash("Saved %s", path)
}

func (window *Window) drawUnsupported() {
	rl.ClearBackground(rl.Black)
	lines := []string{
		"This environment cannot run the simulation.",
		window.failure.Error(),
	}
	y := int32(rl.GetScreenHeight()/2 - 20)
	for _, line := range lines {
		width := rl.MeasureText(line, 20)
		rl.DrawText(line, (int32(rl.GetScreenWidth())-width)/2, y, 20, rl.LightGray)
		y += 30
	}
}

// Close tears everything down. The frame loop has already returned.
func (window *Window) Close() error {
	if window.remote != nil {
		if err := window.remote.Close(); err != nil {
			utils.Warn("Remote: close: %v", err)
		}
	}
	window.debugOverlay.Unload()

	if window.driver == nil {
		return window.dev.Close()
	}
	return window.driver.Dispose()
}
