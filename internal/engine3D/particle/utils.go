package particle

import (
	"math/rand"

	"github.com/chewxy/math32"
)

func randRange(rng *rand.Rand, min, max float32) float32 {
	return min + rng.Float32()*(max-min)
}

// glslMod matches GLSL mod(): the result has the sign of y.
func glslMod(x, y float32) float32 {
	return x - y*math32.Floor(x/y)
}

func smoothstep(edge0, edge1, x float32) float32 {
	t := (x - edge0) / (edge1 - edge0)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return t * t * (3 - 2*t)
}

func mix3(a, b [3]float32, t float32) [3]float32 {
	return [3]float32{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
	}
}

func toByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
