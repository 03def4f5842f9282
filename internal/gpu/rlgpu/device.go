// Package rlgpu implements gpu.Device on top of raylib. Everything here must
// run on the thread that opened the window.
package rlgpu

import (
	"fmt"
	"image"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/draw"

	"blackhole/internal/gpu"
	"blackhole/internal/utils"
)

type WindowConfig struct {
	Width, Height int
	Title         string
	TargetFPS     int
	Fullscreen    bool
}

type Device struct {
	width, height int
	ratio         float64
	current       *Target
	closed        bool
}

// Open creates the window and its GL context. It fails with
// gpu.ErrUnsupported when no context could be created.
func Open(cfg WindowConfig) (*Device, error) {
	rl.SetTraceLogCallback(utils.RaylibLogCallback)

	var flags uint32 = rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint | rl.FlagVsyncHint
	if cfg.Fullscreen {
		flags |= rl.FlagFullscreenMode
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(int32(cfg.Width), int32(cfg.Height), cfg.Title)
	if !rl.IsWindowReady() {
		return nil, fmt.Errorf("%w: window %dx%d could not be created", gpu.ErrUnsupported, cfg.Width, cfg.Height)
	}
	if cfg.TargetFPS > 0 {
		rl.SetTargetFPS(int32(cfg.TargetFPS))
	}

	ratio := float64(rl.GetWindowScaleDPI().X)
	if ratio < 1 {
		ratio = 1
	}

	d := &Device{
		width:  int(rl.GetScreenWidth()),
		height: int(rl.GetScreenHeight()),
		ratio:  ratio,
	}
	utils.Info("GPU: window %dx%d ready (pixel ratio %.2f)", d.width, d.height, d.ratio)
	return d, nil
}

func (d *Device) CompileProgram(name, vertex, fragment string) (gpu.Program, error) {
	if d.closed {
		return nil, gpu.ErrReleased
	}
	return newProgram(name, vertex, fragment)
}

func (d *Device) UploadPoints(name string, buf gpu.PointBuffer) (gpu.Geometry, error) {
	if d.closed {
		return nil, gpu.ErrReleased
	}
	return uploadPoints(name, buf)
}

func (d *Device) UploadMesh(name string, buf gpu.MeshBuffer) (gpu.Geometry, error) {
	if d.closed {
		return nil, gpu.ErrReleased
	}
	return uploadMesh(name, buf)
}

func (d *Device) NewRenderTarget(name string, width, height int) (gpu.RenderTarget, error) {
	if d.closed {
		return nil, gpu.ErrReleased
	}
	t := &Target{name: name}
	if err := t.Resize(width, height); err != nil {
		return nil, err
	}
	return t, nil
}

func (d *Device) BeginTarget(t gpu.RenderTarget) {
	d.current = nil
	if t == nil {
		return
	}
	d.current = t.(*Target)
	rl.BeginTextureMode(d.current.rt)
}

func (d *Device) EndTarget() {
	if d.current != nil {
		rl.EndTextureMode()
	}
	d.current = nil
}

func (d *Device) Clear(c gpu.Color) {
	rl.ClearBackground(toColor(c))
}

func (d *Device) Begin3D(v gpu.View) {
	rl.BeginMode3D(rl.Camera3D{
		Position:   toVector3(v.Eye),
		Target:     toVector3(v.Target),
		Up:         toVector3(v.Up),
		Fovy:       v.FovY,
		Projection: rl.CameraPerspective,
	})
}

func (d *Device) End3D() {
	rl.EndMode3D()
}

func (d *Device) DrawPoints(g gpu.Geometry, p gpu.Program, model mgl32.Mat4, blend gpu.Blend) {
	d.drawModel(g.(*Geometry), p.(*Program), model, blend)
}

func (d *Device) DrawMesh(g gpu.Geometry, p gpu.Program, model mgl32.Mat4, blend gpu.Blend) {
	d.drawModel(g.(*Geometry), p.(*Program), model, blend)
}

func (d *Device) drawModel(g *Geometry, p *Program, model mgl32.Mat4, blend gpu.Blend) {
	if g.released || p.released {
		return
	}
	g.materials()[0].Shader = p.shader
	g.model.Transform = toMatrix(model)
	p.apply()

	rl.BeginBlendMode(toBlendMode(blend))
	rl.DisableDepthMask()
	rl.DisableBackfaceCulling()
	if g.points {
		rl.DrawModelPoints(g.model, rl.Vector3{}, 1, rl.White)
	} else {
		rl.DrawModel(g.model, rl.Vector3{}, 1, rl.White)
	}
	rl.EnableBackfaceCulling()
	rl.EnableDepthMask()
	rl.EndBlendMode()
}

func (d *Device) DrawFullscreen(p gpu.Program, src gpu.RenderTarget, blend gpu.Blend) {
	t := src.(*Target)
	if t.released {
		return
	}
	w, h := d.width, d.height
	if d.current != nil {
		w, h = d.current.width, d.current.height
	}

	// Blend and shader changes flush the batch, which also drops bound
	// samplers, so textures go in last.
	rl.BeginBlendMode(toBlendMode(blend))
	var prog *Program
	if p != nil {
		prog = p.(*Program)
		rl.BeginShaderMode(prog.shader)
		prog.apply()
	}

	// Render textures are stored bottom-up.
	source := rl.NewRectangle(0, 0, float32(t.width), -float32(t.height))
	dest := rl.NewRectangle(0, 0, float32(w), float32(h))
	rl.DrawTexturePro(t.rt.Texture, source, dest, rl.Vector2{}, 0, rl.White)

	if prog != nil {
		rl.EndShaderMode()
	}
	rl.EndBlendMode()
}

func (d *Device) ReadTarget(t gpu.RenderTarget) (image.Image, error) {
	rt := t.(*Target)
	if rt.released {
		return nil, gpu.ErrReleased
	}

	img := rl.LoadImageFromTexture(rt.rt.Texture)
	if img == nil || img.Width == 0 {
		return nil, fmt.Errorf("%w: read back %s", gpu.ErrResourceExhausted, rt.name)
	}
	defer rl.UnloadImage(img)
	rl.ImageFlipVertical(img)

	src := img.ToImage()
	out := image.NewRGBA(src.Bounds())
	draw.Copy(out, image.Point{}, src, src.Bounds(), draw.Src, nil)
	return out, nil
}

func (d *Device) Size() (int, int) { return d.width, d.height }

// PixelRatio reads the window's current DPI scale, never below 1.
func (d *Device) PixelRatio() float64 {
	d.ratio = max(float64(rl.GetWindowScaleDPI().X), 1)
	return d.ratio
}

func (d *Device) Resize(width, height int) {
	d.width, d.height = width, height
}

// Close destroys the window and its context. Every resource created from
// the device must be released first.
func (d *Device) Close() error {
	if d.closed {
		return gpu.ErrReleased
	}
	d.closed = true
	rl.CloseWindow()
	utils.Debug("GPU: window closed")
	return nil
}
