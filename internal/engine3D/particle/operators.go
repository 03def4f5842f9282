package particle

import (
	"github.com/chewxy/math32"

	"blackhole/internal/engine3D/shader"
)

// Kinematics holds the constants of the debris motion. The same values are
// compiled into the debris vertex stage through Defines, and Evaluate repeats
// that stage's arithmetic in float32 so the motion can be checked on the CPU.
type Kinematics struct {
	Horizon           float32
	OuterEdge         float32
	DecayK            float32
	DecayC            float32
	ClumpNoise        float32
	AngularK          float32
	Turbulence        float32
	ClumpJitter       float32
	ThicknessBase     float32
	ThicknessSlope    float32
	WarpAmp           float32
	FadeBand          float32
	EdgeBand          float32
	Doppler           float32
	DopplerPhase      float32
	BrightnessK       float32
	BrightnessFalloff float32
	ClumpPulse        float32
	BaseTint          float32
	PointSize         float32
	GlowPower         float32
	Palette           Palette
}

func DefaultKinematics() Kinematics {
	return Kinematics{
		Horizon:           6,
		OuterEdge:         60,
		DecayK:            20,
		DecayC:            10,
		ClumpNoise:        0.2,
		AngularK:          16,
		Turbulence:        0.1,
		ClumpJitter:       0.05,
		ThicknessBase:     0.15,
		ThicknessSlope:    0.03,
		WarpAmp:           0.6,
		FadeBand:          3,
		EdgeBand:          12,
		Doppler:           0.35,
		DopplerPhase:      0,
		BrightnessK:       2.2,
		BrightnessFalloff: 0.0015,
		ClumpPulse:        0.15,
		BaseTint:          0.35,
		PointSize:         0.3,
		GlowPower:         1.8,
		Palette:           DefaultPalette(),
	}
}

// State is a particle's derived state at one instant.
type State struct {
	Radius     float32
	Angle      float32
	Position   [3]float32
	Fade       float32
	Brightness float32
}

// WrapRadius moves startRadius inward by drift and wraps it back to the outer
// edge, always returning a value in [Horizon, OuterEdge).
func (k Kinematics) WrapRadius(startRadius, drift float32) float32 {
	band := k.OuterEdge - k.Horizon
	r := k.Horizon + glslMod(startRadius-k.Horizon-drift, band)
	if r >= k.OuterEdge || r < k.Horizon {
		return k.Horizon
	}
	return r
}

// Evaluate returns the state of seed s at scaled time t.
func (k Kinematics) Evaluate(s Seed, t, temperature float32) State {
	clumpNoise := 1 + k.ClumpNoise*math32.Sin(s.ClumpID*1.7+t*0.1)
	decay := k.DecayK / (s.StartRadius + k.DecayC) * s.SpeedModifier * clumpNoise
	r := k.WrapRadius(s.StartRadius, decay*t)

	omega := k.AngularK / math32.Pow(r, 1.5)
	turbulence := 1 + k.Turbulence*math32.Sin(t*0.5+s.InitialAngle*3)
	jitter := k.ClumpJitter * math32.Sin(s.ClumpID*12.9898+t*0.3)
	angle := s.InitialAngle + omega*t*turbulence + jitter

	thickness := k.ThicknessBase + k.ThicknessSlope*r
	warp := k.WarpAmp * math32.Sin(angle*2+t*0.2) * (r / k.OuterEdge)

	fade := smoothstep(k.Horizon, k.Horizon+k.FadeBand, r) *
		(1 - smoothstep(k.OuterEdge-k.EdgeBand, k.OuterEdge, r))
	doppler := 1 + k.Doppler*math32.Sin(angle+k.DopplerPhase)
	pulse := 1 + k.ClumpPulse*math32.Sin(s.ClumpID*3+t*2)

	return State{
		Radius: r,
		Angle:  angle,
		Position: [3]float32{
			math32.Cos(angle) * r,
			s.VerticalOffset*thickness + warp,
			math32.Sin(angle) * r,
		},
		Fade:       fade,
		Brightness: k.BrightnessK / (1 + r*r*k.BrightnessFalloff) * temperature * doppler * pulse,
	}
}

// Color is the palette color of a particle at radius r under modeBlend.
func (k Kinematics) Color(s Seed, r, modeBlend float32) [3]float32 {
	c := k.Palette.At(r, modeBlend)
	tint := mix3([3]float32{1, 1, 1}, s.Color, k.BaseTint)
	return [3]float32{c[0] * tint[0], c[1] * tint[1], c[2] * tint[2]}
}

// Defines renders the constants for the debris program.
func (k Kinematics) Defines() shader.Defines {
	d := shader.Defines{}.
		Float("HORIZON", k.Horizon).
		Float("OUTER_EDGE", k.OuterEdge).
		Float("DECAY_K", k.DecayK).
		Float("DECAY_C", k.DecayC).
		Float("CLUMP_NOISE", k.ClumpNoise).
		Float("ANGULAR_K", k.AngularK).
		Float("TURBULENCE", k.Turbulence).
		Float("CLUMP_JITTER", k.ClumpJitter).
		Float("THICKNESS_BASE", k.ThicknessBase).
		Float("THICKNESS_SLOPE", k.ThicknessSlope).
		Float("WARP_AMP", k.WarpAmp).
		Float("FADE_BAND", k.FadeBand).
		Float("EDGE_BAND", k.EdgeBand).
		Float("DOPPLER", k.Doppler).
		Float("DOPPLER_PHASE", k.DopplerPhase).
		Float("BRIGHTNESS_K", k.BrightnessK).
		Float("BRIGHTNESS_FALLOFF", k.BrightnessFalloff).
		Float("CLUMP_PULSE", k.ClumpPulse).
		Float("BASE_TINT", k.BaseTint).
		Float("POINT_SIZE", k.PointSize).
		Float("GLOW_POWER", k.GlowPower)
	return shader.Merge(d, k.Palette.Defines())
}
