package blackhole

import "math"

const (
	// ConstrainedWidth is the logical width below which the viewport is
	// treated as a small or tablet screen.
	ConstrainedWidth = 1024

	DesktopPixelRatioCap     = 2.0
	ConstrainedPixelRatioCap = 1.0
)

// Profile is the viewport class derived from the current surface width.
type Profile struct {
	Constrained   bool
	PixelRatioCap float64
	// PixelRatio is the native ratio limited by the cap.
	PixelRatio float64
}

func NewProfile(width int, nativeRatio float64) Profile {
	p := Profile{Constrained: width < ConstrainedWidth, PixelRatioCap: DesktopPixelRatioCap}
	if p.Constrained {
		p.PixelRatioCap = ConstrainedPixelRatioCap
	}
	if nativeRatio <= 0 {
		nativeRatio = 1
	}
	p.PixelRatio = math.Min(nativeRatio, p.PixelRatioCap)
	return p
}

// TargetSize is the offscreen buffer size for a width x height surface.
func (p Profile) TargetSize(width, height int) (int, int) {
	w := int(math.Round(float64(width) * p.PixelRatio))
	h := int(math.Round(float64(height) * p.PixelRatio))
	return max(w, 1), max(h, 1)
}
