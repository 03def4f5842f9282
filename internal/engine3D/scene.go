package engine3D

import (
	"fmt"
	"math/rand"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"blackhole/internal/engine3D/particle"
	"blackhole/internal/engine3D/shader"
	"blackhole/internal/gpu"
	"blackhole/internal/utils"
)

// Counts fixes the population sizes for the lifetime of a build.
type Counts struct {
	Debris int
	Stars  int
}

// Object is one drawable: geometry, the program that shades it and how it
// blends.
type Object struct {
	Name     string
	Geometry gpu.Geometry
	Program  gpu.Program
	Blend    gpu.Blend
	Points   bool
	Model    mgl32.Mat4
}

func (o *Object) Draw(dev gpu.Device) {
	if o.Points {
		dev.DrawPoints(o.Geometry, o.Program, o.Model, o.Blend)
		return
	}
	dev.DrawMesh(o.Geometry, o.Program, o.Model, o.Blend)
}

// Scene is an ordered list of objects drawn together into one target.
type Scene struct {
	Name    string
	Objects []*Object
}

func (s *Scene) Draw(dev gpu.Device) {
	for _, o := range s.Objects {
		o.Draw(dev)
	}
}

// Scenes is everything BuildScenes produces. Background is captured and
// lensed, Foreground is drawn on top of the lensed image, and the post
// programs belong to the bloom and output passes.
type Scenes struct {
	Background Scene
	Foreground Scene

	Stars  *Object
	Debris *Object
	Disk   *Object

	Lensing     gpu.Program
	BloomBright gpu.Program
	BloomBlur   gpu.Program
	Output      gpu.Program

	Counts Counts
}

// BuildScenes compiles every program and uploads every population. Each
// allocation is handed to arena as soon as it exists, so a failure part-way
// leaves nothing untracked.
func BuildScenes(dev gpu.Device, arena *gpu.Arena, counts Counts, rng *rand.Rand, tuning Tuning) (*Scenes, error) {
	if counts.Debris <= 0 || counts.Stars <= 0 {
		return nil, fmt.Errorf("scene: invalid counts %+v", counts)
	}

	programs := map[string]shader.Source{
		shader.NameDebris:      shader.Debris(tuning.Kinematics.Defines()),
		shader.NameStarfield:   shader.Starfield(tuning.Stars.Defines()),
		shader.NameDisk:        shader.Disk(tuning.Disk.Defines()),
		shader.NameLensing:     shader.Lensing(tuning.Lens.Defines()),
		shader.NameBloomBright: shader.BloomBright(tuning.Post.Defines()),
		shader.NameBloomBlur:   shader.BloomBlur(tuning.Post.Defines()),
		shader.NameOutput:      shader.Output(tuning.Post.Defines()),
	}

	compiled := make(map[string]gpu.Program, len(programs))
	for _, name := range []string{
		shader.NameStarfield,
		shader.NameDebris,
		shader.NameDisk,
		shader.NameLensing,
		shader.NameBloomBright,
		shader.NameBloomBlur,
		shader.NameOutput,
	} {
		p, err := compile(dev, arena, programs[name])
		if err != nil {
			return nil, err
		}
		compiled[name] = p
	}

	stars := particle.NewStars(rng, counts.Stars, tuning.Stars.Radius)
	starGeometry, err := upload(arena, "stars", func() (gpu.Geometry, error) {
		return dev.UploadPoints("stars", stars.Pack())
	})
	if err != nil {
		return nil, err
	}

	debris := particle.NewDebris(rng, counts.Debris, tuning.Layout)
	debrisGeometry, err := upload(arena, "debris", func() (gpu.Geometry, error) {
		return dev.UploadPoints("debris", debris.Pack())
	})
	if err != nil {
		return nil, err
	}

	ring := RingMesh(tuning.Disk.Inner, tuning.Disk.Outer, tuning.Disk.Segments, tuning.Disk.Rings)
	diskGeometry, err := upload(arena, "disk", func() (gpu.Geometry, error) {
		return dev.UploadMesh("disk", ring)
	})
	if err != nil {
		return nil, err
	}

	s := &Scenes{
		Stars: &Object{
			Name:     "stars",
			Geometry: starGeometry,
			Program:  compiled[shader.NameStarfield],
			Blend:    gpu.BlendAdditive,
			Points:   true,
			Model:    mgl32.Ident4(),
		},
		Debris: &Object{
			Name:     "debris",
			Geometry: debrisGeometry,
			Program:  compiled[shader.NameDebris],
			Blend:    gpu.BlendAdditive,
			Points:   true,
			Model:    mgl32.Ident4(),
		},
		Disk: &Object{
			Name:     "disk",
			Geometry: diskGeometry,
			Program:  compiled[shader.NameDisk],
			Blend:    gpu.BlendAdditive,
			Model:    mgl32.Ident4(),
		},
		Lensing:     compiled[shader.NameLensing],
		BloomBright: compiled[shader.NameBloomBright],
		BloomBlur:   compiled[shader.NameBloomBlur],
		Output:      compiled[shader.NameOutput],
		Counts:      counts,
	}
	s.Background = Scene{Name: "background", Objects: []*Object{s.Stars, s.Debris}}
	s.Foreground = Scene{Name: "foreground", Objects: []*Object{s.Disk}}

	utils.Info("Scene: built %d debris, %d stars, disk with %d vertices", counts.Debris, counts.Stars, diskGeometry.Count())
	return s, nil
}

func compile(dev gpu.Device, arena *gpu.Arena, src shader.Source) (gpu.Program, error) {
	p, err := dev.CompileProgram(src.Name, src.Vertex, src.Fragment)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", src.Name, err)
	}
	if err := arena.Track("program/"+src.Name, p); err != nil {
		return nil, err
	}
	utils.Debug("Scene: compiled program %s", src.Name)
	return p, nil
}

func upload(arena *gpu.Arena, name string, fn func() (gpu.Geometry, error)) (gpu.Geometry, error) {
	g, err := fn()
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", name, err)
	}
	if err := arena.Track("geometry/"+name, g); err != nil {
		return nil, err
	}
	utils.Debug("Scene: uploaded %s (%d vertices)", name, g.Count())
	return g, nil
}

// RingMesh builds a flat annulus in the XZ plane. U runs around the ring and
// V from the inner to the outer edge.
func RingMesh(inner, outer float32, segments, rings int) gpu.MeshBuffer {
	if segments < 3 {
		segments = 3
	}
	if rings < 1 {
		rings = 1
	}

	cols := segments + 1
	rows := rings + 1
	buf := gpu.MeshBuffer{
		Position: make([]float32, 0, cols*rows*3),
		TexCoord: make([]float32, 0, cols*rows*2),
		Indices:  make([]uint16, 0, segments*rings*6),
	}

	for row := 0; row < rows; row++ {
		v := float32(row) / float32(rings)
		radius := inner + (outer-inner)*v
		for col := 0; col < cols; col++ {
			u := float32(col) / float32(segments)
			angle := u * 2 * math32.Pi
			buf.Position = append(buf.Position, math32.Cos(angle)*radius, 0, math32.Sin(angle)*radius)
			buf.TexCoord = append(buf.TexCoord, u, v)
		}
	}

	for row := 0; row < rings; row++ {
		for col := 0; col < segments; col++ {
			a := uint16(row*cols + col)
			b := a + 1
			c := a + uint16(cols)
			d := c + 1
			buf.Indices = append(buf.Indices, a, c, b, b, c, d)
		}
	}

	return buf
}
