package rlgpu

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"blackhole/internal/gpu"
)

// Both layouts are column-major, so the elements map one to one.
func toMatrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}

func toVector3(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v[0], v[1], v[2])
}

func toColor(c gpu.Color) rl.Color {
	return rl.ColorFromNormalized(rl.NewVector4(c.R, c.G, c.B, c.A))
}

func toBlendMode(b gpu.Blend) rl.BlendMode {
	if b == gpu.BlendAdditive {
		return rl.BlendAdditive
	}
	return rl.BlendAlpha
}
