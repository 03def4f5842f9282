package blackhole

// ModeBlendStep is the share of the remaining distance to the requested
// mode covered by each Advance.
const ModeBlendStep = 0.05

// ModeBlend interpolates between the warm (0) and cool (1) palettes. It
// approaches its target exponentially, so a target flip mid-way simply
// reverses direction from wherever it is.
type ModeBlend struct {
	value float64
}

func (m *ModeBlend) Value() float64 { return m.value }

// Advance moves one step toward 1 when light is set and toward 0 otherwise,
// and returns the new value.
func (m *ModeBlend) Advance(light bool) float64 {
	target := 0.0
	if light {
		target = 1
	}
	m.value += (target - m.value) * ModeBlendStep

	if m.value < 0 {
		m.value = 0
	} else if m.value > 1 {
		m.value = 1
	}
	return m.value
}
