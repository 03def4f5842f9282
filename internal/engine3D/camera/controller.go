// Package camera implements the orbit camera: user-driven orbiting around a
// fixed focal point plus scripted fly-to transitions.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"blackhole/internal/gpu"
)

// Mode is the controller state. Only the transition step moves the camera
// while Transitioning; user input is dropped in that state.
type Mode int

const (
	UserControlled Mode = iota
	Transitioning
)

func (m Mode) String() string {
	if m == Transitioning {
		return "transitioning"
	}
	return "user-controlled"
}

type Options struct {
	Home   mgl64.Vec3
	Target mgl64.Vec3

	FovY float32 // degrees

	MinDistance float64
	MaxDistance float64
	// PolarMargin keeps the polar angle this many radians away from the
	// poles, so the camera never looks straight down the vertical axis.
	PolarMargin float64

	Damping         float64 // share of pending orbit velocity applied per update
	RotateSpeed     float64 // radians per dragged pixel
	ZoomSpeed       float64
	AutoRotateSpeed float64 // radians per second
	TransitionRate  float64 // per second; larger converges faster
	Epsilon         float64
}

func DefaultOptions() Options {
	return Options{
		Home:            mgl64.Vec3{0, 18, 75},
		FovY:            60,
		MinDistance:     12,
		MaxDistance:     250,
		PolarMargin:     0.03,
		Damping:         0.05,
		RotateSpeed:     0.005,
		ZoomSpeed:       1,
		AutoRotateSpeed: 0.08,
		TransitionRate:  3.5,
		Epsilon:         0.01,
	}
}

type Controller struct {
	opts Options
	mode Mode

	position mgl64.Vec3
	goal     mgl64.Vec3

	radius, theta, phi   float64
	deltaTheta, deltaPhi float64
	zoom                 float64

	autoRotate bool
	detached   bool

	aspect float64
}

func NewController(opts Options) *Controller {
	c := &Controller{
		opts:     opts,
		position: opts.Home,
		zoom:     1,
	}
	c.syncSpherical()
	c.SetAspect(1, 1)
	return c
}

func (c *Controller) Mode() Mode              { return c.mode }
func (c *Controller) IsTransitioning() bool   { return c.mode == Transitioning }
func (c *Controller) Position() mgl64.Vec3    { return c.position }
func (c *Controller) Goal() mgl64.Vec3        { return c.goal }
func (c *Controller) Aspect() float64         { return c.aspect }
func (c *Controller) AutoRotate() bool        { return c.autoRotate }
func (c *Controller) Detached() bool          { return c.detached }
func (c *Controller) SetAutoRotate(on bool)   { c.autoRotate = on }
func (c *Controller) Options() Options        { return c.opts }
func (c *Controller) Distance() float64       { return c.position.Sub(c.opts.Target).Len() }
func (c *Controller) DistanceToGoal() float64 { return c.position.Sub(c.goal).Len() }

// MoveTo starts a fly-to toward (x, y, z), pulled inside the distance and
// polar limits so the camera does not jump when the transition ends.
// Pending orbit velocity is dropped so the transition is the only thing
// moving the camera.
func (c *Controller) MoveTo(x, y, z float64) {
	c.goal = c.limit(mgl64.Vec3{x, y, z})
	c.mode = Transitioning
	c.deltaTheta, c.deltaPhi, c.zoom = 0, 0, 1
}

// Reset flies back to the home position.
func (c *Controller) Reset() {
	c.MoveTo(c.opts.Home.X(), c.opts.Home.Y(), c.opts.Home.Z())
}

// Drag orbits by a pointer movement in pixels.
func (c *Controller) Drag(dx, dy float64) {
	if c.detached || c.mode == Transitioning {
		return
	}
	c.deltaTheta -= dx * c.opts.RotateSpeed
	c.deltaPhi -= dy * c.opts.RotateSpeed
}

// Zoom dollies by wheel steps; positive steps move closer.
func (c *Controller) Zoom(steps float64) {
	if c.detached || c.mode == Transitioning {
		return
	}
	c.zoom *= math.Pow(0.95, steps*c.opts.ZoomSpeed)
}

// Detach stops the controller from accepting input.
func (c *Controller) Detach() {
	c.detached = true
	c.deltaTheta, c.deltaPhi, c.zoom = 0, 0, 1
}

// Step advances an active transition by delta seconds. The camera covers a
// fixed share of the remaining distance, so it never overshoots, and the
// transition ends the first time it is within Epsilon of the goal.
func (c *Controller) Step(delta float64) {
	if c.mode != Transitioning || delta <= 0 {
		return
	}

	factor := 1 - math.Exp(-c.opts.TransitionRate*delta)
	c.position = c.position.Add(c.goal.Sub(c.position).Mul(factor))

	if c.DistanceToGoal() < c.opts.Epsilon {
		c.position = c.goal
		c.mode = UserControlled
		c.syncSpherical()
	}
}

// Update applies damped orbit input, auto-rotation and the distance and
// polar clamps. While transitioning it only decays pending input.
func (c *Controller) Update(delta float64) {
	damping := c.opts.Damping
	if c.mode == Transitioning {
		c.deltaTheta *= 1 - damping
		c.deltaPhi *= 1 - damping
		return
	}

	if c.autoRotate && delta > 0 {
		c.theta += c.opts.AutoRotateSpeed * delta
	}

	c.theta += c.deltaTheta * damping
	c.phi += c.deltaPhi * damping
	c.deltaTheta *= 1 - damping
	c.deltaPhi *= 1 - damping

	c.phi = clamp(c.phi, c.opts.PolarMargin, math.Pi-c.opts.PolarMargin)
	c.radius = clamp(c.radius*c.zoom, c.opts.MinDistance, c.opts.MaxDistance)
	c.zoom = 1

	c.position = c.spherical(c.radius, c.theta, c.phi)
}

// SetAspect sets the aspect ratio to exactly width/height.
func (c *Controller) SetAspect(width, height int) {
	if height <= 0 {
		height = 1
	}
	c.aspect = float64(width) / float64(height)
}

func (c *Controller) View() gpu.View {
	return gpu.View{
		Eye:    vec32(c.position),
		Target: vec32(c.opts.Target),
		Up:     mgl32.Vec3{0, 1, 0},
		FovY:   c.opts.FovY,
	}
}

func (c *Controller) ViewMatrix() mgl32.Mat4 {
	v := c.View()
	return mgl32.LookAtV(v.Eye, v.Target, v.Up)
}

func (c *Controller) syncSpherical() {
	offset := c.position.Sub(c.opts.Target)
	c.radius = offset.Len()
	if c.radius == 0 {
		c.theta, c.phi = 0, math.Pi/2
		return
	}
	c.theta = math.Atan2(offset.X(), offset.Z())
	c.phi = math.Acos(clamp(offset.Y()/c.radius, -1, 1))
}

func (c *Controller) spherical(radius, theta, phi float64) mgl64.Vec3 {
	sinPhi := math.Sin(phi)
	return c.opts.Target.Add(mgl64.Vec3{
		radius * sinPhi * math.Sin(theta),
		radius * math.Cos(phi),
		radius * sinPhi * math.Cos(theta),
	})
}

// limit returns p unchanged when it is a position Update would keep, and
// otherwise the nearest one along the same azimuth. A point on the target
// keeps the current direction.
func (c *Controller) limit(p mgl64.Vec3) mgl64.Vec3 {
	offset := p.Sub(c.opts.Target)
	radius := offset.Len()
	theta, phi := c.theta, c.phi
	if radius > 0 {
		theta = math.Atan2(offset.X(), offset.Z())
		phi = math.Acos(clamp(offset.Y()/radius, -1, 1))
	}

	lo, hi := c.opts.PolarMargin, math.Pi-c.opts.PolarMargin
	if radius >= c.opts.MinDistance && radius <= c.opts.MaxDistance && phi >= lo && phi <= hi {
		return p
	}
	return c.spherical(
		clamp(radius, c.opts.MinDistance, c.opts.MaxDistance),
		theta,
		clamp(phi, lo, hi),
	)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func vec32(v mgl64.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X()), float32(v.Y()), float32(v.Z())}
}
