package particle

import "blackhole/internal/gpu"

// Pack lays the debris seeds out in the debris program's attribute slots.
func (d *Debris) Pack() gpu.PointBuffer {
	buf := gpu.NewPointBuffer(d.Len())
	for i := 0; i < d.Len(); i++ {
		buf.Position[i*3] = d.StartRadius[i]
		buf.Position[i*3+1] = d.InitialAngle[i]
		buf.Position[i*3+2] = d.VerticalOffset[i]
		buf.Params[i*2] = d.Scale[i]
		buf.Params[i*2+1] = d.SpeedModifier[i]
		buf.Extra[i*2] = d.ClumpID[i]
		putColor(buf.Color[i*4:], d.Color[i], 1)
	}
	return buf
}

// Pack lays the stars out in the starfield program's attribute slots.
func (s *Stars) Pack() gpu.PointBuffer {
	buf := gpu.NewPointBuffer(s.Len())
	for i := 0; i < s.Len(); i++ {
		copy(buf.Position[i*3:i*3+3], s.Position[i][:])
		buf.Params[i*2] = s.Size[i]
		buf.Params[i*2+1] = s.Opacity[i]
		buf.Extra[i*2] = s.TwinkleSpeed[i]
		buf.Extra[i*2+1] = s.TwinklePhase[i]
		putColor(buf.Color[i*4:], s.Tint[i], 1)
	}
	return buf
}

func putColor(dst []uint8, c [3]float32, alpha float32) {
	dst[0] = toByte(c[0])
	dst[1] = toByte(c[1])
	dst[2] = toByte(c[2])
	dst[3] = toByte(alpha)
}
