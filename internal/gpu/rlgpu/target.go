package rlgpu

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"blackhole/internal/gpu"
	"blackhole/internal/utils"
)

type Target struct {
	name          string
	rt            rl.RenderTexture2D
	width, height int
	released      bool
}

func (t *Target) Name() string     { return t.name }
func (t *Target) Size() (int, int) { return t.width, t.height }

// Resize allocates the new storage before dropping the old one, so a failed
// resize leaves the target usable at its previous size.
func (t *Target) Resize(width, height int) error {
	if t.released {
		return gpu.ErrReleased
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("target %s: invalid size %dx%d", t.name, width, height)
	}

	rt := rl.LoadRenderTexture(int32(width), int32(height))
	if rt.ID == 0 || rt.Texture.ID == 0 {
		return fmt.Errorf("%w: target %s %dx%d", gpu.ErrResourceExhausted, t.name, width, height)
	}
	rl.SetTextureFilter(rt.Texture, rl.FilterBilinear)
	rl.SetTextureWrap(rt.Texture, rl.TextureWrapClamp)

	if t.rt.ID != 0 {
		rl.UnloadRenderTexture(t.rt)
	}
	t.rt = rt
	t.width, t.height = width, height
	utils.Debug("GPU: target %s allocated at %dx%d", t.name, width, height)
	return nil
}

func (t *Target) Release() error {
	if t.released {
		return gpu.ErrReleased
	}
	t.released = true
	rl.UnloadRenderTexture(t.rt)
	return nil
}
