package debug

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blackhole/internal/blackhole"
	"blackhole/internal/engine3D/camera"
)

func TestSections(t *testing.T) {
	p := blackhole.DefaultParameters()
	p.LightMode = true
	s := Status{
		Params:    p,
		ModeBlend: 0.25,
		Mode:      camera.Transitioning,
		Position:  [3]float64{0, 18, 75},
		Distance:  77.1,
		Debris:    45000,
		Stars:     6000,
		Profile:   blackhole.NewProfile(1920, 1),
	}

	sections := Sections(s, 59.94, &runtime.MemStats{HeapAlloc: 3 * 1024 * 1024})
	require.Len(t, sections, 4)

	assert.Equal(t, "FPS: 59.9", sections[0].Lines[0])
	assert.Equal(t, "Heap Alloc: 3.00 MB", sections[0].Lines[1])
	assert.Equal(t, "Mode L: light (blend 0.250)", sections[1].Lines[4])
	assert.Equal(t, "State: transitioning", sections[2].Lines[0])
	assert.Equal(t, "Debris: 45000  Stars: 6000", sections[3].Lines[0])
}

func TestSectionsOptionalLines(t *testing.T) {
	s := Status{Remote: "ws://127.0.0.1:8765/ws", Message: "Saved shot.png"}
	sections := Sections(s, 0, &runtime.MemStats{})
	require.Len(t, sections, 6)
	assert.Equal(t, "Remote:", sections[4].Header)
	assert.Equal(t, []string{"Saved shot.png"}, sections[5].Lines)
}
