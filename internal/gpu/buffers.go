package gpu

import "fmt"

// PointBuffer carries one vertex per point in the attribute layout the point
// shaders expect: Position (3 floats), Params (2), Extra (2), Color (4 bytes).
type PointBuffer struct {
	Count    int
	Position []float32
	Params   []float32
	Extra    []float32
	Color    []uint8
}

func NewPointBuffer(count int) PointBuffer {
	return PointBuffer{
		Count:    count,
		Position: make([]float32, count*3),
		Params:   make([]float32, count*2),
		Extra:    make([]float32, count*2),
		Color:    make([]uint8, count*4),
	}
}

func (b PointBuffer) Validate() error {
	switch {
	case b.Count <= 0:
		return fmt.Errorf("point buffer: count %d", b.Count)
	case len(b.Position) != b.Count*3:
		return fmt.Errorf("point buffer: %d position floats for %d points", len(b.Position), b.Count)
	case len(b.Params) != b.Count*2:
		return fmt.Errorf("point buffer: %d param floats for %d points", len(b.Params), b.Count)
	case len(b.Extra) != b.Count*2:
		return fmt.Errorf("point buffer: %d extra floats for %d points", len(b.Extra), b.Count)
	case len(b.Color) != b.Count*4:
		return fmt.Errorf("point buffer: %d color bytes for %d points", len(b.Color), b.Count)
	}
	return nil
}

// MeshBuffer is an indexed triangle mesh with one texture coordinate set.
type MeshBuffer struct {
	Position []float32
	TexCoord []float32
	Indices  []uint16
}

func (b MeshBuffer) VertexCount() int { return len(b.Position) / 3 }

func (b MeshBuffer) Validate() error {
	n := b.VertexCount()
	switch {
	case n == 0 || len(b.Position)%3 != 0:
		return fmt.Errorf("mesh buffer: %d position floats", len(b.Position))
	case len(b.TexCoord) != n*2:
		return fmt.Errorf("mesh buffer: %d texcoord floats for %d vertices", len(b.TexCoord), n)
	case len(b.Indices) == 0 || len(b.Indices)%3 != 0:
		return fmt.Errorf("mesh buffer: %d indices", len(b.Indices))
	}
	for _, idx := range b.Indices {
		if int(idx) >= n {
			return fmt.Errorf("mesh buffer: index %d out of range %d", idx, n)
		}
	}
	return nil
}
