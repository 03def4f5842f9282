package blackhole

import "math"

// Parameters is what the host supplies each frame. Values outside the ranges
// below are still honored; Clamp is there for hosts that expose sliders.
type Parameters struct {
	RotationSpeed   float64
	BloomIntensity  float64
	LensingStrength float64
	DiskBrightness  float64
	Temperature     float64
	LightMode       bool
}

// Range is the slider range of one parameter.
type Range struct {
	Min, Max, Step float64
}

var (
	RotationSpeedRange   = Range{0, 3, 0.1}
	BloomIntensityRange  = Range{0, 3, 0.1}
	LensingStrengthRange = Range{0, 2, 0.05}
	DiskBrightnessRange  = Range{0, 3, 0.1}
	TemperatureRange     = Range{0.2, 2, 0.05}
)

func (r Range) Clamp(v float64) float64 {
	return math.Max(r.Min, math.Min(r.Max, v))
}

// Nudge moves v by steps increments and clamps the result.
func (r Range) Nudge(v float64, steps int) float64 {
	return r.Clamp(v + float64(steps)*r.Step)
}

func DefaultParameters() Parameters {
	return Parameters{
		RotationSpeed:   1,
		BloomIntensity:  1.2,
		LensingStrength: 1,
		DiskBrightness:  1,
		Temperature:     1,
	}
}

func (p Parameters) Clamp() Parameters {
	p.RotationSpeed = RotationSpeedRange.Clamp(p.RotationSpeed)
	p.BloomIntensity = BloomIntensityRange.Clamp(p.BloomIntensity)
	p.LensingStrength = LensingStrengthRange.Clamp(p.LensingStrength)
	p.DiskBrightness = DiskBrightnessRange.Clamp(p.DiskBrightness)
	p.Temperature = TemperatureRange.Clamp(p.Temperature)
	return p
}
