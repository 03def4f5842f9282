package particle

import "blackhole/internal/engine3D/shader"

// Palette is the radius-banded debris coloring for both color schemes. The
// warm scheme is shown at modeBlend 0 and the cool one at 1.
type Palette struct {
	InnerBand float32
	MidBand   float32

	WarmInner, WarmMid, WarmOuter [3]float32
	CoolInner, CoolMid, CoolOuter [3]float32
}

func DefaultPalette() Palette {
	return Palette{
		InnerBand: 14,
		MidBand:   34,
		WarmInner: [3]float32{1.0, 0.95, 0.9},
		WarmMid:   [3]float32{1.0, 0.55, 0.15},
		WarmOuter: [3]float32{0.55, 0.08, 0.05},
		CoolInner: [3]float32{0.9, 0.95, 1.0},
		CoolMid:   [3]float32{0.35, 0.6, 1.0},
		CoolOuter: [3]float32{0.15, 0.2, 0.6},
	}
}

func (p Palette) band(inner, mid, outer [3]float32, r float32) [3]float32 {
	c := mix3(inner, mid, smoothstep(p.InnerBand*0.6, p.InnerBand, r))
	return mix3(c, outer, smoothstep(p.InnerBand, p.MidBand, r))
}

// At returns the color at radius r, blended between schemes by modeBlend.
func (p Palette) At(r, modeBlend float32) [3]float32 {
	warm := p.band(p.WarmInner, p.WarmMid, p.WarmOuter, r)
	cool := p.band(p.CoolInner, p.CoolMid, p.CoolOuter, r)
	return mix3(warm, cool, modeBlend)
}

func (p Palette) Defines() shader.Defines {
	return shader.Defines{}.
		Float("INNER_BAND", p.InnerBand).
		Float("MID_BAND", p.MidBand).
		Vec3("WARM_INNER", p.WarmInner).
		Vec3("WARM_MID", p.WarmMid).
		Vec3("WARM_OUTER", p.WarmOuter).
		Vec3("COOL_INNER", p.CoolInner).
		Vec3("COOL_MID", p.CoolMid).
		Vec3("COOL_OUTER", p.CoolOuter)
}
