// Package particle generates the fixed point populations of the scene and
// mirrors the debris motion on the CPU.
package particle

// Seed is the immutable per-particle state of one debris point. Everything
// the particle does over time is a function of its seed and the clock.
type Seed struct {
	Scale          float32
	SpeedModifier  float32
	StartRadius    float32
	InitialAngle   float32
	VerticalOffset float32
	ClumpID        float32
	Color          [3]float32
}

// Debris is a struct-of-arrays debris population.
type Debris struct {
	Scale          []float32
	SpeedModifier  []float32
	StartRadius    []float32
	InitialAngle   []float32
	VerticalOffset []float32
	ClumpID        []float32
	Color          [][3]float32
}

func (d *Debris) Len() int {
	return len(d.StartRadius)
}

func (d *Debris) At(i int) Seed {
	return Seed{
		Scale:          d.Scale[i],
		SpeedModifier:  d.SpeedModifier[i],
		StartRadius:    d.StartRadius[i],
		InitialAngle:   d.InitialAngle[i],
		VerticalOffset: d.VerticalOffset[i],
		ClumpID:        d.ClumpID[i],
		Color:          d.Color[i],
	}
}

func newDebris(count int) *Debris {
	return &Debris{
		Scale:          make([]float32, count),
		SpeedModifier:  make([]float32, count),
		StartRadius:    make([]float32, count),
		InitialAngle:   make([]float32, count),
		VerticalOffset: make([]float32, count),
		ClumpID:        make([]float32, count),
		Color:          make([][3]float32, count),
	}
}

func (d *Debris) set(i int, s Seed) {
	d.Scale[i] = s.Scale
	d.SpeedModifier[i] = s.SpeedModifier
	d.StartRadius[i] = s.StartRadius
	d.InitialAngle[i] = s.InitialAngle
	d.VerticalOffset[i] = s.VerticalOffset
	d.ClumpID[i] = s.ClumpID
	d.Color[i] = s.Color
}

type Star struct {
	Position     [3]float32
	Size         float32
	Opacity      float32
	TwinkleSpeed float32
	TwinklePhase float32
	Tint         [3]float32
}

// Stars is a struct-of-arrays star population on a spherical shell.
type Stars struct {
	Position     [][3]float32
	Size         []float32
	Opacity      []float32
	TwinkleSpeed []float32
	TwinklePhase []float32
	Tint         [][3]float32
}

func (s *Stars) Len() int {
	return len(s.Position)
}

func (s *Stars) At(i int) Star {
	return Star{
		Position:     s.Position[i],
		Size:         s.Size[i],
		Opacity:      s.Opacity[i],
		TwinkleSpeed: s.TwinkleSpeed[i],
		TwinklePhase: s.TwinklePhase[i],
		Tint:         s.Tint[i],
	}
}

func newStars(count int) *Stars {
	return &Stars{
		Position:     make([][3]float32, count),
		Size:         make([]float32, count),
		Opacity:      make([]float32, count),
		TwinkleSpeed: make([]float32, count),
		TwinklePhase: make([]float32, count),
		Tint:         make([][3]float32, count),
	}
}

// Options shapes the debris distribution. The zero value is not useful; start
// from DefaultOptions.
type Options struct {
	Horizon      float32
	OuterEdge    float32
	ArmCount     int
	ArmFraction  float32
	ArmTightness float32
	ArmSpread    float32
	RadiusBias   float32
	ClumpCount   int
}

func DefaultOptions() Options {
	k := DefaultKinematics()
	return Options{
		Horizon:      k.Horizon,
		OuterEdge:    k.OuterEdge,
		ArmCount:     3,
		ArmFraction:  0.85,
		ArmTightness: 2.2,
		ArmSpread:    0.9,
		RadiusBias:   1.8,
		ClumpCount:   48,
	}
}
