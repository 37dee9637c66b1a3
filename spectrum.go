package audio

import "math"

type WindowFunc int

const (
	RectangularWindow WindowFunc = iota
	HannWindow
)

// A Bin is one spectrum slot: its center frequency and unnormalized
// magnitude.
type Bin struct {
	Freq, Mag float64
}

// BinFreq is the center frequency of bin i of an n-point transform.
func BinFreq(i, n int, sampleRate float64) float64 {
	return float64(i) * sampleRate / float64(n)
}

// Magnitudes writes |x[i]| for the first half of x into dst, which is grown
// if needed, and returns it.  For real input the second half mirrors the
// first.
func Magnitudes(x []complex128, dst []float64) []float64 {
	n := len(x) / 2
	if len(x) == 1 {
		n = 1
	}
	if cap(dst) < n {
		dst = make([]float64, n)
	}
	dst = dst[:n]
	for i := range dst {
		re, im := real(x[i]), imag(x[i])
		dst[i] = math.Sqrt(re*re + im*im)
	}
	return dst
}

// Analyzer consumes the visualization tap.  It keeps the most recent size
// samples and turns them into a waveform and a magnitude spectrum on demand.
// It is meant for one non-real-time goroutine.
type Analyzer struct {
	Params Params
	Meter  *AmpMeter

	size   int
	window []float64
	ring   []float32
	pos    int
	frame  []float32
	fft    *FFT
	mags   []float64
	bins   []Bin
}

// NewAnalyzer rounds size up to a power of two.
func NewAnalyzer(size int, w WindowFunc) *Analyzer {
	size = NextPow2(size)
	window := make([]float64, size)
	for i := range window {
		switch w {
		case HannWindow:
			window[i] = (1 - math.Cos(2*math.Pi*float64(i)/float64(size))) / 2
		default:
			window[i] = 1
		}
	}
	return &Analyzer{
		Meter:  NewAmpMeter(.05),
		size:   size,
		window: window,
		ring:   make([]float32, size),
		frame:  make([]float32, size),
		fft:    NewFFT(size),
		mags:   make([]float64, size/2),
		bins:   make([]Bin, max(1, size/2)),
	}
}

func (a *Analyzer) InitAudio(p Params) {
	a.Params = p
	a.Meter.InitAudio(p)
	for i := range a.bins {
		a.bins[i].Freq = BinFreq(i, a.size, p.SampleRate)
	}
}

func (a *Analyzer) Size() int { return a.size }

// Drain pops everything available from q and returns the number of samples
// read.
func (a *Analyzer) Drain(q *Queue[float32]) int {
	n := 0
	for {
		x, ok := q.TryPop()
		if !ok {
			return n
		}
		a.add(x)
		n++
	}
}

func (a *Analyzer) Write(x []float32) {
	for _, x := range x {
		a.add(x)
	}
}

func (a *Analyzer) add(x float32) {
	a.ring[a.pos] = x
	a.pos = (a.pos + 1) % a.size
	if a.Meter.buf != nil {
		a.Meter.Add(x)
	}
}

// Waveform returns the last size samples, oldest first.  The slice is reused
// by the next call.
func (a *Analyzer) Waveform() []float32 {
	n := copy(a.frame, a.ring[a.pos:])
	copy(a.frame[n:], a.ring[:a.pos])
	return a.frame
}

// Spectrum transforms the current waveform.  The slice is reused by the next
// call.
func (a *Analyzer) Spectrum() []Bin {
	frame := a.Waveform()
	for i := range frame {
		frame[i] *= float32(a.window[i])
	}
	a.mags = Magnitudes(a.fft.TransformReal(frame), a.mags)
	for i, m := range a.mags {
		a.bins[i].Mag = m
	}
	return a.bins[:len(a.mags)]
}

// Peak returns the loudest bin of the last Spectrum, ignoring DC.
func (a *Analyzer) Peak() Bin {
	bins := a.bins[:len(a.mags)]
	if len(bins) < 2 {
		return Bin{}
	}
	peak := bins[1]
	for _, b := range bins[2:] {
		if b.Mag > peak.Mag {
			peak = b
		}
	}
	return peak
}

// Level is the RMS of the most recent tap samples.
func (a *Analyzer) Level() float64 { return a.Meter.Level() }
