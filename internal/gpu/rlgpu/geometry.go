package rlgpu

import (
	"fmt"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"

	"blackhole/internal/gpu"
)

// Geometry wraps a single-mesh model. Points are drawn with the model in
// point mode, which renders every vertex of its triangle list, so point
// clouds are padded to a multiple of three by repeating the last point.
type Geometry struct {
	name     string
	count    int
	points   bool
	model    rl.Model
	fallback rl.Shader
	released bool
}

func uploadPoints(name string, buf gpu.PointBuffer) (*Geometry, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	n := (buf.Count + 2) / 3 * 3

	mesh := rl.Mesh{
		VertexCount:   int32(n),
		TriangleCount: int32(n / 3),
		Vertices:      allocFloats(buf.Position, n, 3),
		Texcoords:     allocFloats(buf.Params, n, 2),
		Texcoords2:    allocFloats(buf.Extra, n, 2),
		Colors:        allocBytes(buf.Color, n, 4),
	}
	return upload(name, buf.Count, true, mesh)
}

func uploadMesh(name string, buf gpu.MeshBuffer) (*Geometry, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	n := buf.VertexCount()

	mesh := rl.Mesh{
		VertexCount:   int32(n),
		TriangleCount: int32(len(buf.Indices) / 3),
		Vertices:      allocFloats(buf.Position, n, 3),
		Texcoords:     allocFloats(buf.TexCoord, n, 2),
		Indices:       allocIndices(buf.Indices),
	}
	return upload(name, n, false, mesh)
}

func upload(name string, count int, points bool, mesh rl.Mesh) (*Geometry, error) {
	rl.UploadMesh(&mesh, false)
	if mesh.VaoID == 0 {
		rl.UnloadMesh(&mesh)
		return nil, fmt.Errorf("%w: vertex array for %s", gpu.ErrResourceExhausted, name)
	}

	g := &Geometry{name: name, count: count, points: points, model: rl.LoadModelFromMesh(mesh)}
	g.fallback = g.materials()[0].Shader
	return g, nil
}

func (g *Geometry) Name() string { return g.name }
func (g *Geometry) Count() int   { return g.count }

func (g *Geometry) materials() []rl.Material {
	return unsafe.Slice(g.model.Materials, g.model.MaterialCount)
}

func (g *Geometry) Release() error {
	if g.released {
		return gpu.ErrReleased
	}
	g.released = true
	// Programs are owned elsewhere; hand the material its own shader back so
	// unloading the model does not unload ours too.
	g.materials()[0].Shader = g.fallback
	rl.UnloadModel(g.model)
	return nil
}

// Vertex arrays live in raylib's allocator so UnloadModel can free them and
// no Go pointer is retained by C.
func allocFloats(src []float32, n, stride int) *float32 {
	p := rl.MemAlloc(uint32(n * stride * 4))
	dst := unsafe.Slice((*float32)(p), n*stride)
	copied := copy(dst, src)
	for i := copied; i < len(dst); i++ {
		dst[i] = dst[i-stride]
	}
	return (*float32)(p)
}

func allocBytes(src []uint8, n, stride int) *uint8 {
	p := rl.MemAlloc(uint32(n * stride))
	dst := unsafe.Slice((*uint8)(p), n*stride)
	copied := copy(dst, src)
	for i := copied; i < len(dst); i++ {
		dst[i] = dst[i-stride]
	}
	return (*uint8)(p)
}

func allocIndices(src []uint16) *uint16 {
	p := rl.MemAlloc(uint32(len(src) * 2))
	copy(unsafe.Slice((*uint16)(p), len(src)), src)
	return (*uint16)(p)
}
