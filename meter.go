package audio

import "math"

// AmpMeter is a sliding RMS meter over windowSize seconds.
type AmpMeter struct {
	windowSize float64
	buf        []float64
	i          int
	sum        float64
}

func NewAmpMeter(windowSize float64) *AmpMeter {
	return &AmpMeter{windowSize: windowSize}
}

func (a *AmpMeter) InitAudio(p Params) {
	a.buf = make([]float64, max(1, int(p.Frames()*a.windowSize)))
	a.i = 0
	a.sum = 0
}

func (a *AmpMeter) Add(x float32) {
	sq := float64(x) * float64(x)
	a.sum += sq - a.buf[a.i]
	a.buf[a.i] = sq
	a.i = (a.i + 1) % len(a.buf)
	if a.i == 0 {
		// rounding accumulates in the running sum
		a.sum = 0
		for _, x := range a.buf {
			a.sum += x
		}
	}
}

func (a *AmpMeter) Amplitude(x []float32) float64 {
	for _, x := range x {
		a.Add(x)
	}
	return a.Level()
}

// Level is the RMS of the last window.
func (a *AmpMeter) Level() float64 {
	if len(a.buf) == 0 {
		return 0
	}
	return math.Sqrt(math.Max(0, a.sum) / float64(len(a.buf)))
}
