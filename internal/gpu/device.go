// Package gpu describes the drawing device the simulation renders through.
// The simulation only talks to these interfaces; rlgpu backs them with
// raylib and gputest with an in-memory recorder.
package gpu

import (
	"errors"
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrUnsupported means the environment cannot provide a usable context.
	ErrUnsupported = errors.New("gpu: graphics context unavailable")
	// ErrResourceExhausted means an allocation (usually a render target)
	// could not be satisfied at the requested size.
	ErrResourceExhausted = errors.New("gpu: resource exhausted")
	// ErrReleased is returned when a released handle is used again.
	ErrReleased = errors.New("gpu: resource already released")
)

type Blend int

const (
	BlendAlpha Blend = iota
	BlendAdditive
)

func (b Blend) String() string {
	if b == BlendAdditive {
		return "additive"
	}
	return "alpha"
}

type Color struct {
	R, G, B, A float32
}

var (
	Black       = Color{0, 0, 0, 1}
	Transparent = Color{}
)

// Releaser is anything the Arena can own.
type Releaser interface {
	Release() error
}

// ReleaseFunc adapts a plain function to Releaser.
type ReleaseFunc func() error

func (f ReleaseFunc) Release() error { return f() }

// Program is a compiled vertex+fragment pair. Uniform setters are recorded
// and applied when the program is next used for drawing; names the program
// does not declare are ignored.
type Program interface {
	Releaser
	Name() string
	SetFloat(name string, v float32)
	SetVec2(name string, v mgl32.Vec2)
	SetTexture(name string, t RenderTarget)
}

// Geometry is an uploaded vertex set, either a point cloud or a triangle mesh.
type Geometry interface {
	Releaser
	Name() string
	Count() int
}

// RenderTarget is an offscreen color buffer. Resize keeps the handle and
// replaces its storage.
type RenderTarget interface {
	Releaser
	Name() string
	Size() (width, height int)
	Resize(width, height int) error
}

// View positions a perspective camera. FovY is in degrees.
type View struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	Up     mgl32.Vec3
	FovY   float32
}

// Device is the drawing surface plus the factory for everything drawn on it.
// All methods must be called from the goroutine that created the device.
type Device interface {
	CompileProgram(name, vertex, fragment string) (Program, error)
	UploadPoints(name string, buf PointBuffer) (Geometry, error)
	UploadMesh(name string, buf MeshBuffer) (Geometry, error)
	NewRenderTarget(name string, width, height int) (RenderTarget, error)

	// BeginTarget redirects drawing to t, or to the surface when t is nil.
	BeginTarget(t RenderTarget)
	EndTarget()
	Clear(c Color)
	Begin3D(v View)
	End3D()
	DrawPoints(g Geometry, p Program, model mgl32.Mat4, blend Blend)
	DrawMesh(g Geometry, p Program, model mgl32.Mat4, blend Blend)
	// DrawFullscreen covers the current target with src. A nil program
	// copies src unchanged.
	DrawFullscreen(p Program, src RenderTarget, blend Blend)
	ReadTarget(t RenderTarget) (image.Image, error)

	// Size is the logical surface size; PixelRatio the native device ratio.
	Size() (width, height int)
	PixelRatio() float64
	Resize(width, height int)
	Close() error
}
