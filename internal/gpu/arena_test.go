package gpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	name  string
	log   *[]string
	count int
	err   error
}

func (c *counter) Release() error {
	c.count++
	*c.log = append(*c.log, c.name)
	return c.err
}

func TestArenaReleasesInReverseExactlyOnce(t *testing.T) {
	var log []string
	a := &counter{name: "a", log: &log}
	b := &counter{name: "b", log: &log}
	c := &counter{name: "c", log: &log}

	arena := NewArena()
	for _, r := range []*counter{a, b, c} {
		require.NoError(t, arena.Track(r.name, r))
	}
	assert.Equal(t, 3, arena.Len())

	require.NoError(t, arena.Release())
	require.NoError(t, arena.Release())

	assert.Equal(t, []string{"c", "b", "a"}, log)
	for _, r := range []*counter{a, b, c} {
		assert.Equal(t, 1, r.count, r.name)
	}
	assert.True(t, arena.Released())
}

func TestArenaKeepsReleasingAfterError(t *testing.T) {
	var log []string
	boom := errors.New("boom")
	a := &counter{name: "a", log: &log}
	b := &counter{name: "b", log: &log, err: boom}

	arena := NewArena()
	require.NoError(t, arena.Track("a", a))
	require.NoError(t, arena.Track("b", b))

	err := arena.Release()
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, a.count)
}

func TestArenaTrackAfterRelease(t *testing.T) {
	var log []string
	late := &counter{name: "late", log: &log}

	arena := NewArena()
	require.NoError(t, arena.Release())
	require.NoError(t, arena.Track("late", late))
	assert.Equal(t, 1, late.count)
	assert.Zero(t, arena.Len())
}

func TestReleaseFunc(t *testing.T) {
	calls := 0
	var r Releaser = ReleaseFunc(func() error { calls++; return nil })
	require.NoError(t, r.Release())
	assert.Equal(t, 1, calls)
}

func TestBufferValidation(t *testing.T) {
	assert.NoError(t, NewPointBuffer(4).Validate())
	assert.Error(t, PointBuffer{}.Validate())

	bad := NewPointBuffer(2)
	bad.Color = bad.Color[:4]
	assert.Error(t, bad.Validate())

	mesh := MeshBuffer{
		Position: []float32{0, 0, 0, 1, 0, 0, 0, 0, 1},
		TexCoord: []float32{0, 0, 1, 0, 0, 1},
		Indices:  []uint16{0, 1, 2},
	}
	assert.NoError(t, mesh.Validate())

	mesh.Indices = []uint16{0, 1, 3}
	assert.Error(t, mesh.Validate())
}
