package engine3D

import (
	"blackhole/internal/engine3D/particle"
	"blackhole/internal/engine3D/shader"
)

// DiskTuning shapes the accretion ring.
type DiskTuning struct {
	Inner, Outer float32
	Segments     int
	Rings        int
	Spin         float32
	NoiseScale   float32
	StreakPower  float32
	Doppler      float32
	Glow         float32
	GlowFalloff  float32

	WarmInner, WarmMid, WarmOuter [3]float32
	CoolInner, CoolMid, CoolOuter [3]float32
}

func (d DiskTuning) Defines() shader.Defines {
	return shader.Defines{}.
		Float("DISK_INNER", d.Inner).
		Float("DISK_OUTER", d.Outer).
		Float("DISK_SPIN", d.Spin).
		Float("DISK_NOISE_SCALE", d.NoiseScale).
		Float("DISK_STREAK_POWER", d.StreakPower).
		Float("DISK_DOPPLER", d.Doppler).
		Float("DISK_GLOW", d.Glow).
		Float("DISK_GLOW_FALLOFF", d.GlowFalloff).
		Vec3("DISK_WARM_INNER", d.WarmInner).
		Vec3("DISK_WARM_MID", d.WarmMid).
		Vec3("DISK_WARM_OUTER", d.WarmOuter).
		Vec3("DISK_COOL_INNER", d.CoolInner).
		Vec3("DISK_COOL_MID", d.CoolMid).
		Vec3("DISK_COOL_OUTER", d.CoolOuter)
}

// LensTuning shapes the screen-space lensing pass. Distances are in units of
// screen height from the center.
type LensTuning struct {
	Schwarzschild float32
	K             float32
	Epsilon       float32
	Scale         float32
	MaxWarp       float32
	Radius        float32
	Chroma        float32
	RingWidth     float32
	RingSharpness float32
	RingIntensity float32
	RingWarm      [3]float32
	RingCool      [3]float32
}

func (l LensTuning) Defines() shader.Defines {
	return shader.Defines{}.
		Float("SCHWARZSCHILD", l.Schwarzschild).
		Float("LENS_K", l.K).
		Float("LENS_EPSILON", l.Epsilon).
		Float("LENS_SCALE", l.Scale).
		Float("LENS_MAX_WARP", l.MaxWarp).
		Float("LENS_RADIUS", l.Radius).
		Float("LENS_CHROMA", l.Chroma).
		Float("RING_WIDTH", l.RingWidth).
		Float("RING_SHARPNESS", l.RingSharpness).
		Float("RING_INTENSITY", l.RingIntensity).
		Vec3("RING_WARM", l.RingWarm).
		Vec3("RING_COOL", l.RingCool)
}

type StarTuning struct {
	Radius       float32
	Size         float32
	TwinkleRatio float32
	TwinkleFloor float32
	TwinkleMin   float32
	Spin         float64 // radians per second of wall-clock time
}

func (s StarTuning) Defines() shader.Defines {
	return shader.Defines{}.
		Float("STAR_SIZE", s.Size).
		Float("TWINKLE_RATIO", s.TwinkleRatio).
		Float("TWINKLE_FLOOR", s.TwinkleFloor).
		Float("TWINKLE_MIN", s.TwinkleMin)
}

type PostTuning struct {
	Threshold  float32
	Knee       float32
	BlurSpread float32
	Exposure   float32
	Gamma      float32
}

func (p PostTuning) Defines() shader.Defines {
	return shader.Defines{}.
		Float("BLOOM_KNEE", p.Knee).
		Float("BLUR_SPREAD", p.BlurSpread).
		Float("GAMMA", p.Gamma)
}

// Tuning collects every fixed visual constant of the scene.
type Tuning struct {
	Kinematics particle.Kinematics
	Layout     particle.Options
	Disk       DiskTuning
	Lens       LensTuning
	Stars      StarTuning
	Post       PostTuning
}

func DefaultTuning() Tuning {
	return Tuning{
		Kinematics: particle.DefaultKinematics(),
		Layout:     particle.DefaultOptions(),
		Disk: DiskTuning{
			Inner:       7.5,
			Outer:       38,
			Segments:    192,
			Rings:       24,
			Spin:        0.35,
			NoiseScale:  0.18,
			StreakPower: 1.8,
			Doppler:     0.3,
			Glow:        1.4,
			GlowFalloff: 6,
			WarmInner:   [3]float32{1.0, 0.9, 0.75},
			WarmMid:     [3]float32{1.0, 0.5, 0.12},
			WarmOuter:   [3]float32{0.45, 0.07, 0.03},
			CoolInner:   [3]float32{0.85, 0.95, 1.0},
			CoolMid:     [3]float32{0.3, 0.55, 1.0},
			CoolOuter:   [3]float32{0.08, 0.12, 0.45},
		},
		Lens: LensTuning{
			Schwarzschild: 0.08,
			K:             0.75,
			Epsilon:       0.01,
			Scale:         0.0008,
			MaxWarp:       0.25,
			Radius:        0.6,
			Chroma:        0.015,
			RingWidth:     0.004,
			RingSharpness: 120,
			RingIntensity: 0.25,
			RingWarm:      [3]float32{1.0, 0.75, 0.45},
			RingCool:      [3]float32{0.6, 0.8, 1.0},
		},
		Stars: StarTuning{
			Radius:       400,
			Size:         0.7,
			TwinkleRatio: 1.7,
			TwinkleFloor: 0.1,
			TwinkleMin:   0.25,
			Spin:         0.004,
		},
		Post: PostTuning{
			Threshold:  0.55,
			Knee:       0.4,
			BlurSpread: 1,
			Exposure:   1,
			Gamma:      2.2,
		},
	}
}
