package audio

import "math"

// DCFilter is a one-pole high-pass that removes the offset an asymmetric
// square wave leaves in the output.  Cutoff defaults to 10 Hz.
type DCFilter struct {
	Cutoff float64

	a, x, y float64
}

func (f *DCFilter) InitAudio(p Params) {
	cutoff := f.Cutoff
	if !(cutoff > 0) {
		cutoff = 10
	}
	rc := 1 / (2 * math.Pi * cutoff)
	f.a = rc / (rc + 1/p.SampleRate)
	f.x, f.y = 0, 0
}

func (f *DCFilter) Filter(x float64) float64 {
	f.y = f.a * (f.y + x - f.x)
	f.x = x
	return f.y
}
