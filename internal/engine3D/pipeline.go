package engine3D

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"blackhole/internal/engine3D/shader"
	"blackhole/internal/gpu"
	"blackhole/internal/utils"
)

// Pipeline owns the offscreen targets and runs the per-frame pass chain:
//
//	capture  <- background (stars, debris)
//	scene    <- lensing(capture) + foreground (disk)
//	bloomA   <- bright(scene), blurred through bloomB and back
//	final    <- output(scene, bloomA), then presented on the surface
type Pipeline struct {
	dev    gpu.Device
	scenes *Scenes

	capture gpu.RenderTarget
	scene   gpu.RenderTarget
	bloomA  gpu.RenderTarget
	bloomB  gpu.RenderTarget
	final   gpu.RenderTarget

	width, height int
}

// NewPipeline allocates every target at width x height (device pixels).
func NewPipeline(dev gpu.Device, arena *gpu.Arena, scenes *Scenes, width, height int, post PostTuning) (*Pipeline, error) {
	p := &Pipeline{dev: dev, scenes: scenes, width: width, height: height}
	bw, bh := bloomSize(width, height)

	targets := []struct {
		dst  *gpu.RenderTarget
		name string
		w, h int
	}{
		{&p.capture, "capture", width, height},
		{&p.scene, "scene", width, height},
		{&p.bloomA, "bloom-a", bw, bh},
		{&p.bloomB, "bloom-b", bw, bh},
		{&p.final, "final", width, height},
	}
	for _, t := range targets {
		rt, err := dev.NewRenderTarget(t.name, t.w, t.h)
		if err != nil {
			return nil, fmt.Errorf("render target %s: %w", t.name, err)
		}
		if err := arena.Track("target/"+t.name, rt); err != nil {
			return nil, err
		}
		*t.dst = rt
	}

	scenes.BloomBright.SetFloat(shader.UniformThreshold, post.Threshold)
	scenes.Output.SetFloat(shader.UniformExposure, post.Exposure)
	scenes.Output.SetTexture(shader.UniformBloomTexture, p.bloomA)
	p.setTexel(bw, bh)

	return p, nil
}

func bloomSize(width, height int) (int, int) {
	return max(width/2, 1), max(height/2, 1)
}

func (p *Pipeline) setTexel(bw, bh int) {
	p.scenes.BloomBlur.SetVec2(shader.UniformTexelSize, mgl32.Vec2{1 / float32(bw), 1 / float32(bh)})
}

func (p *Pipeline) Size() (int, int) {
	return p.width, p.height
}

// Final is the tone-mapped frame, kept after presentation for still capture.
func (p *Pipeline) Final() gpu.RenderTarget {
	return p.final
}

// Resize reallocates every target. On failure the targets already resized
// are put back, so the pipeline stays entirely at the old size, and the
// error (typically wrapping gpu.ErrResourceExhausted) is returned.
func (p *Pipeline) Resize(width, height int) error {
	if width == p.width && height == p.height {
		return nil
	}
	bw, bh := bloomSize(width, height)
	obw, obh := bloomSize(p.width, p.height)

	steps := []struct {
		target       gpu.RenderTarget
		w, h, ow, oh int
	}{
		{p.bloomA, bw, bh, obw, obh},
		{p.bloomB, bw, bh, obw, obh},
		{p.capture, width, height, p.width, p.height},
		{p.scene, width, height, p.width, p.height},
		{p.final, width, height, p.width, p.height},
	}
	for i, s := range steps {
		if err := s.target.Resize(s.w, s.h); err != nil {
			err = fmt.Errorf("resize %s: %w", s.target.Name(), err)
			for _, done := range steps[:i] {
				if rerr := done.target.Resize(done.ow, done.oh); rerr != nil {
					err = errors.Join(err, fmt.Errorf("restore %s: %w", done.target.Name(), rerr))
				}
			}
			return err
		}
	}

	p.width, p.height = width, height
	p.setTexel(bw, bh)
	utils.Debug("Pipeline: targets resized to %dx%d (bloom %dx%d)", width, height, bw, bh)
	return nil
}

// SetBloomStrength sets how much of the blurred highlights is added back.
func (p *Pipeline) SetBloomStrength(strength float32) {
	p.scenes.Output.SetFloat(shader.UniformBloomStrength, strength)
}

// RenderFrame runs every pass in order. No pass is skipped, whatever the
// parameter values.
func (p *Pipeline) RenderFrame(view gpu.View) {
	dev := p.dev
	s := p.scenes

	dev.BeginTarget(p.capture)
	dev.Clear(gpu.Black)
	dev.Begin3D(view)
	s.Background.Draw(dev)
	dev.End3D()
	dev.EndTarget()

	dev.BeginTarget(p.scene)
	dev.Clear(gpu.Black)
	dev.DrawFullscreen(s.Lensing, p.capture, gpu.BlendAlpha)
	dev.Begin3D(view)
	s.Foreground.Draw(dev)
	dev.End3D()
	dev.EndTarget()

	p.fullscreen(s.BloomBright, p.scene, p.bloomA)
	s.BloomBlur.SetVec2(shader.UniformDirection, mgl32.Vec2{1, 0})
	p.fullscreen(s.BloomBlur, p.bloomA, p.bloomB)
	s.BloomBlur.SetVec2(shader.UniformDirection, mgl32.Vec2{0, 1})
	p.fullscreen(s.BloomBlur, p.bloomB, p.bloomA)

	p.fullscreen(s.Output, p.scene, p.final)

	dev.BeginTarget(nil)
	dev.Clear(gpu.Black)
	dev.DrawFullscreen(nil, p.final, gpu.BlendAlpha)
	dev.EndTarget()
}

func (p *Pipeline) fullscreen(prog gpu.Program, src, dst gpu.RenderTarget) {
	p.dev.BeginTarget(dst)
	p.dev.Clear(gpu.Black)
	p.dev.DrawFullscreen(prog, src, gpu.BlendAlpha)
	p.dev.EndTarget()
}
