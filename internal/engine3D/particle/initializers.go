package particle

import (
	"math/rand"

	"github.com/chewxy/math32"
)

// NewDebris seeds count debris particles. ArmFraction of them are placed on
// ArmCount logarithmic spiral arms, the rest in a uniform halo. The result
// depends only on rng's state, so a fixed seed reproduces the population.
func NewDebris(rng *rand.Rand, count int, opts Options) *Debris {
	d := newDebris(count)
	armCount := int(float32(count) * opts.ArmFraction)

	for i := 0; i < count; i++ {
		var radius, angle float32
		if i < armCount {
			radius, angle = armPlacement(rng, i%opts.ArmCount, opts)
		} else {
			radius, angle = haloPlacement(rng, opts)
		}

		d.set(i, Seed{
			Scale:          0.4 + 1.1*math32.Pow(rng.Float32(), 2),
			SpeedModifier:  randRange(rng, 0.75, 1.25),
			StartRadius:    radius,
			InitialAngle:   angle,
			VerticalOffset: randRange(rng, -1, 1),
			ClumpID:        float32(rng.Intn(opts.ClumpCount)),
			Color: [3]float32{
				randRange(rng, 0.9, 1),
				randRange(rng, 0.7, 1),
				randRange(rng, 0.6, 1),
			},
		})
	}

	return d
}

// armPlacement biases the radius toward the center with a power law and
// spreads the angle around the arm with two independent uniform offsets.
func armPlacement(rng *rand.Rand, arm int, opts Options) (float32, float32) {
	band := opts.OuterEdge - opts.Horizon
	radius := opts.Horizon + band*math32.Pow(rng.Float32(), opts.RadiusBias)
	if radius >= opts.OuterEdge {
		radius = opts.Horizon
	}

	base := float32(arm) * 2 * math32.Pi / float32(opts.ArmCount)
	spiral := opts.ArmTightness * math32.Log(radius/opts.Horizon)
	spread := (rng.Float32()-0.5)*opts.ArmSpread + (rng.Float32()-0.5)*opts.ArmSpread*0.5

	return radius, base + spiral + spread
}

func haloPlacement(rng *rand.Rand, opts Options) (float32, float32) {
	radius := randRange(rng, opts.Horizon, opts.OuterEdge)
	if radius >= opts.OuterEdge {
		radius = opts.Horizon
	}
	return radius, rng.Float32() * 2 * math32.Pi
}

// NewStars scatters count stars over a shell of the given radius with a
// little depth jitter.
func NewStars(rng *rand.Rand, count int, radius float32) *Stars {
	s := newStars(count)

	for i := 0; i < count; i++ {
		z := randRange(rng, -1, 1)
		phi := rng.Float32() * 2 * math32.Pi
		ring := math32.Sqrt(1 - z*z)
		depth := radius * randRange(rng, 1, 1.15)

		s.Position[i] = [3]float32{ring * math32.Cos(phi) * depth, z * depth, ring * math32.Sin(phi) * depth}
		s.Size[i] = 1 + 3*math32.Pow(rng.Float32(), 3)
		s.Opacity[i] = randRange(rng, 0.3, 1)
		s.TwinkleSpeed[i] = randRange(rng, 0.5, 3)
		s.TwinklePhase[i] = rng.Float32() * 2 * math32.Pi
		s.Tint[i] = starTint(rng)
	}

	return s
}

func starTint(rng *rand.Rand) [3]float32 {
	switch roll := rng.Float32(); {
	case roll < 0.12:
		return [3]float32{0.7, 0.8, 1}
	case roll < 0.22:
		return [3]float32{1, 0.9, 0.7}
	}
	return [3]float32{1, 1, 1}
}
