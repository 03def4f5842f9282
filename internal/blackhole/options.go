package blackhole

import (
	"blackhole/internal/engine3D"
	"blackhole/internal/engine3D/camera"
)

type Options struct {
	// Seed drives every random choice of the population build.
	Seed   int64
	Tuning engine3D.Tuning
	Camera camera.Options

	Desktop     engine3D.Counts
	Constrained engine3D.Counts
}

func DefaultOptions() Options {
	return Options{
		Seed:        1,
		Tuning:      engine3D.DefaultTuning(),
		Camera:      camera.DefaultOptions(),
		Desktop:     engine3D.Counts{Debris: 45000, Stars: 6000},
		Constrained: engine3D.Counts{Debris: 15000, Stars: 2000},
	}
}

func (o Options) counts(p Profile) engine3D.Counts {
	if p.Constrained {
		return o.Constrained
	}
	return o.Desktop
}
