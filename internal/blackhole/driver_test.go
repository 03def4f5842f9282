package blackhole

import (
	"bytes"
	"errors"
	"image/png"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blackhole/internal/engine3D"
	"blackhole/internal/engine3D/shader"
	"blackhole/internal/gpu"
	"blackhole/internal/gpu/gputest"
)

const frame = 1.0 / 60

func smallOptions() Options {
	opts := DefaultOptions()
	opts.Desktop = engine3D.Counts{Debris: 600, Stars: 90}
	opts.Constrained = engine3D.Counts{Debris: 201, Stars: 30}
	return opts
}

func newDriver(t *testing.T, w, h int, ratio float64) (*Driver, *gputest.Device) {
	t.Helper()
	dev := gputest.NewDevice(w, h, ratio)
	d, err := New(dev, smallOptions())
	require.NoError(t, err)
	return d, dev
}

func TestScenarioConstrainedViewport(t *testing.T) {
	dev := gputest.NewDevice(800, 600, 2)
	d, err := New(dev, DefaultOptions())
	require.NoError(t, err)

	assert.True(t, d.Profile().Constrained)
	assert.Equal(t, ConstrainedPixelRatioCap, d.Profile().PixelRatioCap)
	assert.Equal(t, 1.0, d.Profile().PixelRatio)
	assert.Equal(t, DefaultOptions().Constrained, d.Counts())
	assert.Equal(t, 15000, dev.Geometry("debris").Count())
	assert.Equal(t, 2000, dev.Geometry("stars").Count())

	w, h := dev.Target("capture").Size()
	assert.Equal(t, [2]int{800, 600}, [2]int{w, h})
}

func TestDesktopViewport(t *testing.T) {
	d, dev := newDriver(t, 1920, 1080, 3)

	assert.False(t, d.Profile().Constrained)
	assert.Equal(t, DesktopPixelRatioCap, d.Profile().PixelRatio)
	assert.Equal(t, smallOptions().Desktop, d.Counts())

	w, h := dev.Target("final").Size()
	assert.Equal(t, [2]int{3840, 2160}, [2]int{w, h})
	w, h = dev.Target("bloom-a").Size()
	assert.Equal(t, [2]int{1920, 1080}, [2]int{w, h})
}

func TestScenarioCameraFlyTo(t *testing.T) {
	d, _ := newDriver(t, 1280, 720, 1)
	require.NoError(t, d.MoveTo(0, 100, 5))
	require.True(t, d.Camera().IsTransitioning())

	elapsed := 0.0
	for i := 0; i < 200; i++ {
		elapsed += frame
		require.NoError(t, d.Update(elapsed, frame, DefaultParameters()))
	}

	cam := d.Camera()
	assert.False(t, cam.IsTransitioning())
	assert.Less(t, cam.Position().Sub(mgl64.Vec3{0, 100, 5}).Len(), cam.Options().Epsilon)
}

func TestScenarioLightModeBlend(t *testing.T) {
	d, dev := newDriver(t, 1280, 720, 1)
	p := DefaultParameters()
	p.LightMode = true

	prev := d.ModeBlend()
	require.Zero(t, prev)
	for i := 0; i < 100; i++ {
		require.NoError(t, d.Update(float64(i)*frame, frame, p))
		cur := d.ModeBlend()
		require.Greater(t, cur, prev, "update %d", i)
		require.LessOrEqual(t, cur, 1.0)
		prev = cur
	}

	for _, name := range []string{shader.NameLensing, shader.NameDisk, shader.NameDebris} {
		assert.InDelta(t, prev, dev.Program(name).Floats[shader.UniformModeBlend], 1e-6, name)
	}

	// Back to dark mode: non-increasing, never below zero.
	p.LightMode = false
	for i := 0; i < 300; i++ {
		require.NoError(t, d.Update(float64(i)*frame, frame, p))
		cur := d.ModeBlend()
		require.LessOrEqual(t, cur, prev)
		require.GreaterOrEqual(t, cur, 0.0)
		prev = cur
	}
}

func TestScenarioDisposeReleasesOnce(t *testing.T) {
	d, dev := newDriver(t, 1280, 720, 1)
	require.NoError(t, d.Update(0.5, frame, DefaultParameters()))

	require.NoError(t, d.Dispose())
	counts := dev.ReleaseCounts()
	assert.Len(t, counts, 1+7+3+5)
	for name, n := range counts {
		assert.Equal(t, 1, n, name)
	}
	assert.True(t, d.Camera().Detached())

	// A second dispose from a racing cleanup path changes nothing.
	require.NoError(t, d.Dispose())
	for name, n := range dev.ReleaseCounts() {
		assert.Equal(t, 1, n, name)
	}
}

func TestCallsAfterDispose(t *testing.T) {
	d, dev := newDriver(t, 1280, 720, 1)
	require.NoError(t, d.Dispose())
	dev.Reset()

	assert.ErrorIs(t, d.Update(1, frame, DefaultParameters()), ErrDisposed)
	assert.ErrorIs(t, d.Resize(640, 480), ErrDisposed)
	assert.ErrorIs(t, d.MoveTo(1, 2, 3), ErrDisposed)
	assert.ErrorIs(t, d.SetAutoRotation(true), ErrDisposed)
	assert.ErrorIs(t, d.ResetCamera(), ErrDisposed)
	_, err := d.CaptureStillFrame()
	assert.ErrorIs(t, err, ErrDisposed)
	assert.Empty(t, dev.Commands)
}

func TestUpdatePushesParameters(t *testing.T) {
	d, dev := newDriver(t, 1280, 720, 1)
	p := Parameters{
		RotationSpeed:   2.5,
		BloomIntensity:  0.7,
		LensingStrength: 1.5,
		DiskBrightness:  1.8,
		Temperature:     0.6,
	}
	require.NoError(t, d.Update(10, frame, p))

	debris := dev.Program(shader.NameDebris)
	disk := dev.Program(shader.NameDisk)
	stars := dev.Program(shader.NameStarfield)

	assert.InDelta(t, 25, debris.Floats[shader.UniformTime], 1e-5)
	assert.InDelta(t, 25, disk.Floats[shader.UniformTime], 1e-5)
	assert.InDelta(t, 10, stars.Floats[shader.UniformTime], 1e-5)

	assert.InDelta(t, 0.7, dev.Program(shader.NameOutput).Floats[shader.UniformBloomStrength], 1e-6)
	assert.InDelta(t, 1.5, dev.Program(shader.NameLensing).Floats[shader.UniformStrength], 1e-6)
	assert.InDelta(t, 1.8, disk.Floats[shader.UniformBrightness], 1e-6)
	assert.InDelta(t, 0.6, disk.Floats[shader.UniformTemperature], 1e-6)
	assert.InDelta(t, 0.6, debris.Floats[shader.UniformTemperature], 1e-6)
}

func TestStarfieldTimeIgnoresRotationSpeed(t *testing.T) {
	d, dev := newDriver(t, 1280, 720, 1)
	stars := dev.Program(shader.NameStarfield)

	for _, speed := range []float64{0, 1, 3} {
		p := DefaultParameters()
		p.RotationSpeed = speed
		require.NoError(t, d.Update(4, frame, p))
		assert.InDelta(t, 4, stars.Floats[shader.UniformTime], 1e-6, "speed %v", speed)
	}
}

func TestStarfieldSpins(t *testing.T) {
	d, dev := newDriver(t, 1280, 720, 1)
	spin := DefaultOptions().Tuning.Stars.Spin

	for i := 1; i <= 60; i++ {
		require.NoError(t, d.Update(float64(i)*frame, frame, DefaultParameters()))
	}
	assert.InDelta(t, spin, d.StarRotation(), 1e-9)

	var model mgl32.Mat4
	for _, c := range dev.Commands {
		if c.Op == "points" && c.Program == shader.NameStarfield {
			model = c.Model
		}
	}
	assert.True(t, model.ApproxEqualThreshold(mgl32.HomogRotate3DY(float32(spin)), 1e-6))

	// A zero delta leaves the rotation alone.
	require.NoError(t, d.Update(2, 0, DefaultParameters()))
	assert.InDelta(t, spin, d.StarRotation(), 1e-9)
}

func TestUpdateRendersEveryPass(t *testing.T) {
	d, dev := newDriver(t, 1280, 720, 1)
	dev.Reset()

	require.NoError(t, d.Update(1, frame, DefaultParameters()))

	var passes []string
	for _, c := range dev.Commands {
		if c.Op == "begin-target" {
			passes = append(passes, c.Target)
		}
	}
	assert.Equal(t, []string{"capture", "scene", "bloom-a", "bloom-b", "bloom-a", "final", "surface"}, passes)
}

func TestResize(t *testing.T) {
	d, dev := newDriver(t, 1280, 720, 2)

	require.NoError(t, d.Resize(1000, 700))
	assert.Equal(t, 1000.0/700.0, d.Camera().Aspect())
	assert.True(t, d.Profile().Constrained)
	assert.Equal(t, 1.0, d.Profile().PixelRatio)

	w, h := dev.Size()
	assert.Equal(t, [2]int{1000, 700}, [2]int{w, h})
	w, h = dev.Target("capture").Size()
	assert.Equal(t, [2]int{1000, 700}, [2]int{w, h})
	assert.Equal(t, mgl32.Vec2{1000, 700}, dev.Program(shader.NameLensing).Vec2s[shader.UniformResolution])

	// The population is fixed for the life of the driver.
	assert.Equal(t, smallOptions().Desktop, d.Counts())

	require.NoError(t, d.Resize(1600, 900))
	assert.False(t, d.Profile().Constrained)
	w, h = dev.Target("scene").Size()
	assert.Equal(t, [2]int{3200, 1800}, [2]int{w, h})

	fov := float64(mgl32.DegToRad(d.Camera().Options().FovY))
	want := 1800 / (2 * math.Tan(fov/2))
	assert.InDelta(t, want, dev.Program(shader.NameDebris).Floats[shader.UniformPointScale], 1e-2)
}

func TestResizeMidTransition(t *testing.T) {
	d, _ := newDriver(t, 1280, 720, 1)
	require.NoError(t, d.MoveTo(0, 40, 40))
	require.NoError(t, d.Update(frame, frame, DefaultParameters()))

	require.NoError(t, d.Resize(1920, 1080))
	assert.True(t, d.Camera().IsTransitioning())
	assert.Equal(t, 1920.0/1080.0, d.Camera().Aspect())
}

func TestResizeRejected(t *testing.T) {
	d, dev := newDriver(t, 1280, 720, 1)
	dev.MaxTargetSize = 2048

	aspect := d.Camera().Aspect()
	profile := d.Profile()
	lens := dev.Program(shader.NameLensing).Vec2s[shader.UniformResolution]

	err := d.Resize(4096, 1024)
	assert.ErrorIs(t, err, gpu.ErrResourceExhausted)
	assert.Error(t, d.Resize(0, 10))

	assert.Equal(t, aspect, d.Camera().Aspect())
	assert.Equal(t, profile, d.Profile())
	w, h := dev.Size()
	assert.Equal(t, [2]int{1280, 720}, [2]int{w, h})
	cw, ch := dev.Target("capture").Size()
	assert.Equal(t, [2]int{1280, 720}, [2]int{cw, ch})
	assert.Equal(t, lens, dev.Program(shader.NameLensing).Vec2s[shader.UniformResolution])

	// A size that fits still goes through afterwards.
	require.NoError(t, d.Resize(1600, 900))
	assert.InDelta(t, 1600.0/900, d.Camera().Aspect(), 1e-12)
}

func TestConstructionFailureReleasesPartialWork(t *testing.T) {
	dev := gputest.NewDevice(1280, 720, 1)
	dev.CompileErrors = map[string]error{shader.NameOutput: errors.New("link failed")}

	d, err := New(dev, smallOptions())
	require.Nil(t, d)
	require.ErrorIs(t, err, ErrConstruction)

	var ce *ConstructionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "scene", ce.Stage)

	counts := dev.ReleaseCounts()
	assert.Zero(t, counts["surface"], "the caller keeps the device")
	delete(counts, "surface")
	assert.NotEmpty(t, counts)
	for name, n := range counts {
		assert.Equal(t, 1, n, name)
	}
}

func TestConstructionResourceExhausted(t *testing.T) {
	dev := gputest.NewDevice(1920, 1080, 2)
	dev.MaxTargetSize = 2048

	_, err := New(dev, smallOptions())
	assert.ErrorIs(t, err, ErrConstruction)
	assert.ErrorIs(t, err, gpu.ErrResourceExhausted)

	// The host retries with a smaller surface.
	dev.Resize(1000, 600)
	d, err := New(dev, smallOptions())
	require.NoError(t, err)
	assert.True(t, d.Profile().Constrained)
}

func TestConstructionUnsupportedSurface(t *testing.T) {
	_, err := New(gputest.NewDevice(0, 0, 1), smallOptions())
	assert.ErrorIs(t, err, ErrConstruction)
	assert.ErrorIs(t, err, gpu.ErrUnsupported)

	_, err = New(nil, smallOptions())
	assert.ErrorIs(t, err, gpu.ErrUnsupported)
}

func TestCaptureStillFrame(t *testing.T) {
	d, _ := newDriver(t, 320, 200, 1)
	require.NoError(t, d.Update(1, frame, DefaultParameters()))

	data, err := d.CaptureStillFrame()
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
}

func TestCameraControls(t *testing.T) {
	d, _ := newDriver(t, 1280, 720, 1)
	home := d.Camera().Options().Home

	require.NoError(t, d.SetAutoRotation(true))
	assert.True(t, d.Camera().AutoRotate())

	require.NoError(t, d.MoveTo(30, 10, 30))
	require.NoError(t, d.ResetCamera())
	assert.Equal(t, home, d.Camera().Goal())
	assert.True(t, d.Camera().IsTransitioning())
}

func TestModeBlendClamps(t *testing.T) {
	var m ModeBlend
	for i := 0; i < 2000; i++ {
		v := m.Advance(true)
		require.LessOrEqual(t, v, 1.0)
	}
	assert.InDelta(t, 1, m.Value(), 1e-9)

	// Flipping mid-way reverses from the current value.
	m = ModeBlend{}
	for i := 0; i < 10; i++ {
		m.Advance(true)
	}
	mid := m.Value()
	assert.Less(t, m.Advance(false), mid)
}

func TestProfile(t *testing.T) {
	tests := []struct {
		width  int
		native float64
		want   Profile
	}{
		{800, 2, Profile{true, 1, 1}},
		{1023, 1.5, Profile{true, 1, 1}},
		{1024, 1.5, Profile{false, 2, 1.5}},
		{2560, 3, Profile{false, 2, 2}},
		{1920, 0, Profile{false, 2, 1}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NewProfile(tt.width, tt.native), "width %d ratio %v", tt.width, tt.native)
	}

	w, h := Profile{PixelRatio: 1.5}.TargetSize(1001, 1)
	assert.Equal(t, [2]int{1502, 2}, [2]int{w, h})
}

func TestParametersClamp(t *testing.T) {
	p := Parameters{RotationSpeed: -1, BloomIntensity: 10, Temperature: 0, LightMode: true}.Clamp()
	assert.Equal(t, 0.0, p.RotationSpeed)
	assert.Equal(t, BloomIntensityRange.Max, p.BloomIntensity)
	assert.Equal(t, TemperatureRange.Min, p.Temperature)
	assert.True(t, p.LightMode)

	assert.InDelta(t, 1.2, RotationSpeedRange.Nudge(1, 2), 1e-9)
	assert.Equal(t, RotationSpeedRange.Max, RotationSpeedRange.Nudge(2.95, 5))
}
