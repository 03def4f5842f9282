// Package gputest provides an in-memory gpu.Device that records every call,
// for tests of code that renders without a GL context.
package gputest

import (
	"fmt"
	"image"
	"image/color"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"blackhole/internal/gpu"
)

// Command is one recorded draw-side call.
type Command struct {
	Op       string
	Target   string
	Program  string
	Geometry string
	Source   string
	Blend    gpu.Blend
	Model    mgl32.Mat4
	View     gpu.View
}

// String renders the command compactly, e.g. "points debris/debris additive".
func (c Command) String() string {
	switch c.Op {
	case "begin-target":
		return "begin-target " + c.Target
	case "points", "mesh":
		return fmt.Sprintf("%s %s/%s %s", c.Op, c.Geometry, c.Program, c.Blend)
	case "fullscreen":
		return fmt.Sprintf("fullscreen %s<%s", c.Program, c.Source)
	}
	return c.Op
}

type Device struct {
	Width, Height int
	Ratio         float64

	// CompileErrors fails CompileProgram for the named programs.
	CompileErrors map[string]error
	// MaxTargetSize, when positive, fails any render target larger than it
	// in either dimension with gpu.ErrResourceExhausted.
	MaxTargetSize int

	Commands []Command
	Closes   int

	programs   []*Program
	geometries []*Geometry
	targets    []*Target
	current    string
}

func NewDevice(width, height int, ratio float64) *Device {
	return &Device{Width: width, Height: height, Ratio: ratio, current: "surface"}
}

func (d *Device) CompileProgram(name, vertex, fragment string) (gpu.Program, error) {
	if err, ok := d.CompileErrors[name]; ok {
		return nil, err
	}
	if vertex == "" || fragment == "" {
		return nil, fmt.Errorf("program %s: empty stage", name)
	}
	p := &Program{
		name:     name,
		Vertex:   vertex,
		Fragment: fragment,
		Floats:   map[string]float32{},
		Vec2s:    map[string]mgl32.Vec2{},
		Textures: map[string]string{},
	}
	d.programs = append(d.programs, p)
	return p, nil
}

func (d *Device) UploadPoints(name string, buf gpu.PointBuffer) (gpu.Geometry, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	g := &Geometry{name: name, count: buf.Count, Points: true, PointData: buf}
	d.geometries = append(d.geometries, g)
	return g, nil
}

func (d *Device) UploadMesh(name string, buf gpu.MeshBuffer) (gpu.Geometry, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	g := &Geometry{name: name, count: buf.VertexCount(), MeshData: buf}
	d.geometries = append(d.geometries, g)
	return g, nil
}

func (d *Device) NewRenderTarget(name string, width, height int) (gpu.RenderTarget, error) {
	t := &Target{name: name, device: d}
	if err := t.Resize(width, height); err != nil {
		return nil, err
	}
	d.targets = append(d.targets, t)
	return t, nil
}

func (d *Device) record(c Command) {
	d.Commands = append(d.Commands, c)
}

func (d *Device) BeginTarget(t gpu.RenderTarget) {
	d.current = "surface"
	if t != nil {
		d.current = t.Name()
	}
	d.record(Command{Op: "begin-target", Target: d.current})
}

func (d *Device) EndTarget() {
	d.record(Command{Op: "end-target", Target: d.current})
	d.current = "surface"
}

func (d *Device) Clear(c gpu.Color) {
	d.record(Command{Op: "clear", Target: d.current})
}

func (d *Device) Begin3D(v gpu.View) {
	d.record(Command{Op: "begin-3d", Target: d.current, View: v})
}

func (d *Device) End3D() {
	d.record(Command{Op: "end-3d", Target: d.current})
}

func (d *Device) DrawPoints(g gpu.Geometry, p gpu.Program, model mgl32.Mat4, blend gpu.Blend) {
	d.record(Command{Op: "points", Target: d.current, Geometry: g.Name(), Program: p.Name(), Model: model, Blend: blend})
}

func (d *Device) DrawMesh(g gpu.Geometry, p gpu.Program, model mgl32.Mat4, blend gpu.Blend) {
	d.record(Command{Op: "mesh", Target: d.current, Geometry: g.Name(), Program: p.Name(), Model: model, Blend: blend})
}

func (d *Device) DrawFullscreen(p gpu.Program, src gpu.RenderTarget, blend gpu.Blend) {
	name := "copy"
	if p != nil {
		name = p.Name()
	}
	d.record(Command{Op: "fullscreen", Target: d.current, Program: name, Source: src.Name(), Blend: blend})
}

// ReadTarget returns a target-sized image with a gradient in red and green so
// callers can check orientation and size.
func (d *Device) ReadTarget(t gpu.RenderTarget) (image.Image, error) {
	ft, ok := t.(*Target)
	if !ok || ft.released > 0 {
		return nil, gpu.ErrReleased
	}
	img := image.NewRGBA(image.Rect(0, 0, ft.width, ft.height))
	for y := 0; y < ft.height; y++ {
		for x := 0; x < ft.width; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}
	return img, nil
}

func (d *Device) Size() (int, int)    { return d.Width, d.Height }
func (d *Device) PixelRatio() float64 { return d.Ratio }

func (d *Device) Resize(width, height int) {
	d.Width, d.Height = width, height
}

func (d *Device) Close() error {
	d.Closes++
	if d.Closes > 1 {
		return gpu.ErrReleased
	}
	return nil
}

// Reset clears the command log, typically between frames.
func (d *Device) Reset() {
	d.Commands = nil
}

// Program returns the most recently compiled program with that name.
func (d *Device) Program(name string) *Program {
	for i := len(d.programs) - 1; i >= 0; i-- {
		if d.programs[i].name == name {
			return d.programs[i]
		}
	}
	return nil
}

// Target returns the render target with that name.
func (d *Device) Target(name string) *Target {
	for _, t := range d.targets {
		if t.name == name {
			return t
		}
	}
	return nil
}

// Geometry returns the geometry with that name.
func (d *Device) Geometry(name string) *Geometry {
	for _, g := range d.geometries {
		if g.name == name {
			return g
		}
	}
	return nil
}

// ReleaseCounts maps "kind/name" to the number of times the resource was
// released. The surface appears as "surface".
func (d *Device) ReleaseCounts() map[string]int {
	counts := map[string]int{"surface": d.Closes}
	for _, p := range d.programs {
		counts["program/"+p.name] = p.released
	}
	for _, g := range d.geometries {
		counts["geometry/"+g.name] = g.released
	}
	for _, t := range d.targets {
		counts["target/"+t.name] = t.released
	}
	return counts
}

// Ops lists the recorded commands in String form.
func (d *Device) Ops() []string {
	ops := make([]string, len(d.Commands))
	for i, c := range d.Commands {
		ops[i] = c.String()
	}
	return ops
}

// ResourceNames lists every allocated resource, sorted.
func (d *Device) ResourceNames() []string {
	var names []string
	for name := range d.ReleaseCounts() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type Program struct {
	name     string
	released int

	Vertex, Fragment string
	Floats           map[string]float32
	Vec2s            map[string]mgl32.Vec2
	Textures         map[string]string
}

func (p *Program) Name() string { return p.name }

func (p *Program) SetFloat(name string, v float32)            { p.Floats[name] = v }
func (p *Program) SetVec2(name string, v mgl32.Vec2)          { p.Vec2s[name] = v }
func (p *Program) SetTexture(name string, t gpu.RenderTarget) { p.Textures[name] = t.Name() }

func (p *Program) Release() error {
	p.released++
	if p.released > 1 {
		return gpu.ErrReleased
	}
	return nil
}

type Geometry struct {
	name     string
	count    int
	released int

	Points    bool
	PointData gpu.PointBuffer
	MeshData  gpu.MeshBuffer
}

func (g *Geometry) Name() string { return g.name }
func (g *Geometry) Count() int   { return g.count }

func (g *Geometry) Release() error {
	g.released++
	if g.released > 1 {
		return gpu.ErrReleased
	}
	return nil
}

type Target struct {
	name          string
	device        *Device
	width, height int
	released      int
	Resizes       int
}

func (t *Target) Name() string     { return t.name }
func (t *Target) Size() (int, int) { return t.width, t.height }

func (t *Target) Resize(width, height int) error {
	if t.released > 0 {
		return gpu.ErrReleased
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("target %s: invalid size %dx%d", t.name, width, height)
	}
	if max := t.device.MaxTargetSize; max > 0 && (width > max || height > max) {
		return fmt.Errorf("%w: target %s %dx%d", gpu.ErrResourceExhausted, t.name, width, height)
	}
	t.width, t.height = width, height
	t.Resizes++
	return nil
}

func (t *Target) Release() error {
	t.released++
	if t.released > 1 {
		return gpu.ErrReleased
	}
	return nil
}
