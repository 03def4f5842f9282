// Package blackhole drives the simulation: it owns the device, the scene and
// the camera, turns per-frame parameters into shader uniforms and renders.
package blackhole

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"

	"blackhole/internal/engine3D"
	"blackhole/internal/engine3D/camera"
	"blackhole/internal/engine3D/shader"
	"blackhole/internal/gpu"
	"blackhole/internal/utils"
)

type Driver struct {
	dev   gpu.Device
	arena *gpu.Arena
	opts  Options

	scenes   *engine3D.Scenes
	pipeline *engine3D.Pipeline
	camera   *camera.Controller

	profile   Profile
	counts    engine3D.Counts
	blend     ModeBlend
	starAngle float64

	disposed bool
}

// New builds everything the simulation draws on dev. On failure every
// partial allocation is released, the device is left open for the caller,
// and the error is a *ConstructionError. On success the driver owns dev and
// closes it in Dispose.
func New(dev gpu.Device, opts Options) (*Driver, error) {
	if dev == nil {
		return nil, &ConstructionError{Stage: "surface", Err: gpu.ErrUnsupported}
	}
	width, height := dev.Size()
	if width <= 0 || height <= 0 {
		return nil, &ConstructionError{
			Stage: "surface",
			Err:   fmt.Errorf("%w: surface is %dx%d", gpu.ErrUnsupported, width, height),
		}
	}

	profile := NewProfile(width, dev.PixelRatio())
	d := &Driver{
		dev:     dev,
		arena:   gpu.NewArena(),
		opts:    opts,
		profile: profile,
		counts:  opts.counts(profile),
		camera:  camera.NewController(opts.Camera),
	}

	fail := func(stage string, err error) (*Driver, error) {
		if rerr := d.arena.Release(); rerr != nil {
			utils.Warn("Driver: releasing partial %s allocations: %v", stage, rerr)
		}
		utils.Error("Driver: construction failed at %s: %v", stage, err)
		return nil, &ConstructionError{Stage: stage, Err: err}
	}

	// The controller is tracked first so it is detached last.
	if err := d.arena.Track("controller", gpu.ReleaseFunc(func() error {
		d.camera.Detach()
		return nil
	})); err != nil {
		return fail("controller", err)
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	scenes, err := engine3D.BuildScenes(dev, d.arena, d.counts, rng, opts.Tuning)
	if err != nil {
		return fail("scene", err)
	}
	d.scenes = scenes

	tw, th := profile.TargetSize(width, height)
	pipeline, err := engine3D.NewPipeline(dev, d.arena, scenes, tw, th, opts.Tuning.Post)
	if err != nil {
		return fail("pipeline", err)
	}
	d.pipeline = pipeline

	d.camera.SetAspect(width, height)
	d.pushViewport(tw, th)

	utils.Info("Driver: %dx%d (constrained=%v, pixel ratio %.2f), %d debris, %d stars",
		width, height, profile.Constrained, profile.PixelRatio, d.counts.Debris, d.counts.Stars)
	return d, nil
}

func (d *Driver) Camera() *camera.Controller { return d.camera }
func (d *Driver) Profile() Profile           { return d.profile }
func (d *Driver) Counts() engine3D.Counts    { return d.counts }
func (d *Driver) ModeBlend() float64         { return d.blend.Value() }
func (d *Driver) Disposed() bool             { return d.disposed }

// StarRotation is the current starfield yaw in radians.
func (d *Driver) StarRotation() float64 { return d.starAngle }

// Update pushes p into the programs, advances the camera and renders one
// frame. elapsed is wall-clock seconds since start, delta the frame time.
func (d *Driver) Update(elapsed, delta float64, p Parameters) error {
	if d.disposed {
		return ErrDisposed
	}
	s := d.scenes

	blend := float32(d.blend.Advance(p.LightMode))
	s.Lensing.SetFloat(shader.UniformModeBlend, blend)
	s.Disk.Program.SetFloat(shader.UniformModeBlend, blend)
	s.Debris.Program.SetFloat(shader.UniformModeBlend, blend)

	d.pipeline.SetBloomStrength(float32(p.BloomIntensity))
	s.Lensing.SetFloat(shader.UniformStrength, float32(p.LensingStrength))
	s.Disk.Program.SetFloat(shader.UniformBrightness, float32(p.DiskBrightness))
	s.Disk.Program.SetFloat(shader.UniformTemperature, float32(p.Temperature))
	s.Debris.Program.SetFloat(shader.UniformTemperature, float32(p.Temperature))

	// Rotation speed scales the disk and debris clock only; the stars
	// twinkle on wall-clock time.
	scaled := float32(elapsed * p.RotationSpeed)
	s.Debris.Program.SetFloat(shader.UniformTime, scaled)
	s.Disk.Program.SetFloat(shader.UniformTime, scaled)
	s.Stars.Program.SetFloat(shader.UniformTime, float32(elapsed))

	if delta > 0 {
		d.starAngle = math.Mod(d.starAngle+d.opts.Tuning.Stars.Spin*delta, 2*math.Pi)
	}
	s.Stars.Model = mgl32.HomogRotate3DY(float32(d.starAngle))

	d.camera.Step(delta)
	d.camera.Update(delta)

	d.pipeline.RenderFrame(d.camera.View())
	return nil
}

// Resize applies a new logical surface size immediately. A rejected buffer
// allocation is returned unchanged (wrapping gpu.ErrResourceExhausted) and
// the driver keeps rendering at the previous size.
func (d *Driver) Resize(width, height int) error {
	if d.disposed {
		return ErrDisposed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("blackhole: invalid size %dx%d", width, height)
	}

	profile := NewProfile(width, d.dev.PixelRatio())
	tw, th := profile.TargetSize(width, height)
	if err := d.pipeline.Resize(tw, th); err != nil {
		return err
	}

	d.dev.Resize(width, height)
	d.profile = profile
	d.camera.SetAspect(width, height)
	d.pushViewport(tw, th)

	utils.Debug("Driver: resized to %dx%d (targets %dx%d, constrained=%v)", width, height, tw, th, d.profile.Constrained)
	return nil
}

// pushViewport updates everything that depends on the target size: the
// lensing resolution and the perspective point scale of both point clouds.
func (d *Driver) pushViewport(tw, th int) {
	s := d.scenes
	s.Lensing.SetVec2(shader.UniformResolution, mgl32.Vec2{float32(tw), float32(th)})

	fov := float64(mgl32.DegToRad(d.opts.Camera.FovY))
	scale := float32(float64(th) / (2 * math.Tan(fov/2)))
	s.Debris.Program.SetFloat(shader.UniformPointScale, scale)
	s.Stars.Program.SetFloat(shader.UniformPointScale, scale)
}

func (d *Driver) MoveTo(x, y, z float64) error {
	if d.disposed {
		return ErrDisposed
	}
	d.camera.MoveTo(x, y, z)
	utils.Debug("Driver: camera moving to (%.1f, %.1f, %.1f)", x, y, z)
	return nil
}

func (d *Driver) SetAutoRotation(enabled bool) error {
	if d.disposed {
		return ErrDisposed
	}
	d.camera.SetAutoRotate(enabled)
	return nil
}

// ResetCamera flies back to the initial camera position.
func (d *Driver) ResetCamera() error {
	if d.disposed {
		return ErrDisposed
	}
	d.camera.Reset()
	return nil
}

// CaptureStillFrame reads back the last composited frame as PNG bytes.
func (d *Driver) CaptureStillFrame() ([]byte, error) {
	if d.disposed {
		return nil, ErrDisposed
	}
	img, err := d.dev.ReadTarget(d.pipeline.Final())
	if err != nil {
		return nil, fmt.Errorf("blackhole: read frame: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("blackhole: encode frame: %w", err)
	}
	return buf.Bytes(), nil
}

// Dispose releases every resource exactly once and closes the device. The
// host must have stopped calling Update before. Repeated calls are no-ops.
func (d *Driver) Dispose() error {
	if d.disposed {
		return nil
	}
	d.disposed = true

	err := d.arena.Release()
	if cerr := d.dev.Close(); cerr != nil {
		err = errors.Join(err, fmt.Errorf("close surface: %w", cerr))
	}
	if err != nil {
		utils.Warn("Driver: dispose: %v", err)
	}
	return err
}
