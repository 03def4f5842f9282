package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = 1.0 / 60

func TestTransitionConverges(t *testing.T) {
	c := NewController(DefaultOptions())
	c.MoveTo(0, 100, 5)
	require.True(t, c.IsTransitioning())

	last := c.DistanceToGoal()
	flips := 0
	for i := 0; i < 200; i++ {
		was := c.IsTransitioning()
		c.Step(frame)
		c.Update(frame)

		d := c.DistanceToGoal()
		assert.LessOrEqual(t, d, last, "frame %d", i)
		last = d

		if was && !c.IsTransitioning() {
			flips++
		}
		assert.False(t, !was && c.IsTransitioning(), "re-entered transition at frame %d", i)
	}

	assert.Equal(t, 1, flips)
	assert.False(t, c.IsTransitioning())
	assert.Less(t, c.Position().Sub(mgl64.Vec3{0, 100, 5}).Len(), DefaultOptions().Epsilon)
}

func TestInputIgnoredWhileTransitioning(t *testing.T) {
	c := NewController(DefaultOptions())
	c.MoveTo(0, 40, 40)
	c.Drag(500, 500)
	c.Zoom(10)

	var positions []mgl64.Vec3
	for i := 0; i < 5; i++ {
		c.Step(frame)
		c.Update(frame)
		positions = append(positions, c.Position())
	}

	// Without drag and zoom the path is a straight line toward the goal.
	start := DefaultOptions().Home
	dir := mgl64.Vec3{0, 40, 40}.Sub(start).Normalize()
	for _, p := range positions {
		off := p.Sub(start)
		assert.InDelta(t, off.Len(), off.Dot(dir), 1e-9)
	}
}

func TestNoOvershootWithHugeDelta(t *testing.T) {
	c := NewController(DefaultOptions())
	c.MoveTo(10, 10, 10)
	c.Step(1e6)
	assert.False(t, c.IsTransitioning())
	assert.Equal(t, mgl64.Vec3{10, 10, 10}, c.Position())
}

func TestMoveToOutsideLimitsLandsWithoutJump(t *testing.T) {
	opts := DefaultOptions()
	goals := []mgl64.Vec3{
		{0, 0, 5},    // too close
		{0, 100, 0},  // straight down
		{0, 400, 30}, // too far and nearly straight down
		{0, 0, 0},    // on the focal point
	}

	for _, g := range goals {
		c := NewController(opts)
		c.MoveTo(g.X(), g.Y(), g.Z())

		goal := c.Goal()
		dist := goal.Sub(opts.Target).Len()
		assert.GreaterOrEqual(t, dist, opts.MinDistance-1e-9, "goal %v", g)
		assert.LessOrEqual(t, dist, opts.MaxDistance+1e-9, "goal %v", g)
		polar := math.Acos(goal.Y() / dist)
		assert.GreaterOrEqual(t, polar, opts.PolarMargin-1e-9, "goal %v", g)
		assert.LessOrEqual(t, polar, math.Pi-opts.PolarMargin+1e-9, "goal %v", g)

		landed := false
		for i := 0; i < 600 && !landed; i++ {
			c.Step(frame)
			if c.IsTransitioning() {
				c.Update(frame)
				continue
			}
			before := c.Position()
			c.Update(frame)
			assert.InDelta(t, 0, c.Position().Sub(before).Len(), 1e-6, "goal %v", g)
			landed = true
		}
		assert.True(t, landed, "goal %v", g)
	}
}

func TestMoveToInsideLimitsIsExact(t *testing.T) {
	c := NewController(DefaultOptions())
	c.MoveTo(0, 100, 5)
	assert.Equal(t, mgl64.Vec3{0, 100, 5}, c.Goal())
}

func TestNonPositiveDeltaDoesNotMove(t *testing.T) {
	c := NewController(DefaultOptions())
	c.MoveTo(10, 10, 10)
	before := c.Position()
	c.Step(0)
	c.Step(-1)
	assert.Equal(t, before, c.Position())
	assert.True(t, c.IsTransitioning())
}

func TestDistanceClamp(t *testing.T) {
	opts := DefaultOptions()
	c := NewController(opts)

	for i := 0; i < 400; i++ {
		c.Zoom(5)
		c.Update(frame)
		require.GreaterOrEqual(t, c.Distance(), opts.MinDistance-1e-9)
	}
	assert.InDelta(t, opts.MinDistance, c.Distance(), 1e-9)

	for i := 0; i < 400; i++ {
		c.Zoom(-5)
		c.Update(frame)
		require.LessOrEqual(t, c.Distance(), opts.MaxDistance+1e-9)
	}
	assert.InDelta(t, opts.MaxDistance, c.Distance(), 1e-9)
}

func TestPolarClamp(t *testing.T) {
	opts := DefaultOptions()
	c := NewController(opts)

	for i := 0; i < 300; i++ {
		c.Drag(0, 2000)
		c.Update(frame)
	}
	polar := math.Acos(c.Position().Y() / c.Distance())
	assert.InDelta(t, opts.PolarMargin, polar, 1e-9)

	for i := 0; i < 300; i++ {
		c.Drag(0, -4000)
		c.Update(frame)
	}
	polar = math.Acos(c.Position().Y() / c.Distance())
	assert.InDelta(t, math.Pi-opts.PolarMargin, polar, 1e-9)
}

func TestDampingDecays(t *testing.T) {
	c := NewController(DefaultOptions())
	c.Drag(200, 0)

	var steps []float64
	prev := c.Position()
	for i := 0; i < 120; i++ {
		c.Update(frame)
		steps = append(steps, c.Position().Sub(prev).Len())
		prev = c.Position()
	}
	assert.Greater(t, steps[0], 0.0)
	assert.Less(t, steps[len(steps)-1], steps[0])
}

func TestAutoRotationOrbitsAtConstantDistance(t *testing.T) {
	c := NewController(DefaultOptions())
	c.SetAutoRotate(true)
	d := c.Distance()
	start := c.Position()

	for i := 0; i < 60; i++ {
		c.Update(frame)
	}
	assert.InDelta(t, d, c.Distance(), 1e-9)
	assert.NotEqual(t, start, c.Position())
	assert.InDelta(t, start.Y(), c.Position().Y(), 1e-9)
}

func TestSetAspectIsExact(t *testing.T) {
	c := NewController(DefaultOptions())
	for _, size := range [][2]int{{800, 600}, {1920, 1080}, {1023, 767}, {3, 7}} {
		c.SetAspect(size[0], size[1])
		assert.Equal(t, float64(size[0])/float64(size[1]), c.Aspect())
	}
}

func TestDetachDropsInput(t *testing.T) {
	c := NewController(DefaultOptions())
	c.Detach()
	before := c.Position()
	c.Drag(300, 300)
	c.Zoom(10)
	c.Update(frame)
	assert.InDelta(t, 0, c.Position().Sub(before).Len(), 1e-9)
}

func TestResetReturnsHome(t *testing.T) {
	opts := DefaultOptions()
	c := NewController(opts)
	c.MoveTo(0, 50, 50)
	for c.IsTransitioning() {
		c.Step(frame)
	}
	c.Reset()
	for i := 0; i < 400 && c.IsTransitioning(); i++ {
		c.Step(frame)
	}
	assert.Equal(t, opts.Home, c.Position())
}

func TestViewLooksAtTarget(t *testing.T) {
	c := NewController(DefaultOptions())
	v := c.View()
	assert.Equal(t, float32(0), v.Target.Len())
	assert.InDelta(t, c.Distance(), float64(v.Eye.Len()), 1e-3)

	m := c.ViewMatrix()
	eye := m.Mul4x1(v.Eye.Vec4(1))
	assert.InDelta(t, 0, eye.Vec3().Len(), 1e-3)
}
