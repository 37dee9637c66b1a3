package audio

import "math"

type WaveKind uint8

const (
	Sine WaveKind = iota
	FastSine
	Sawtooth
	Square
	Triangle
)

func (k WaveKind) String() string {
	switch k {
	case Sine:
		return "sine"
	case FastSine:
		return "fastsine"
	case Sawtooth:
		return "sawtooth"
	case Square:
		return "square"
	case Triangle:
		return "triangle"
	}
	return "unknown"
}

// A Wave selects the waveform an Osc produces.  Duty only applies to Square.
type Wave struct {
	Kind WaveKind
	Duty float64
}

func SquareWave(duty float64) Wave { return Wave{Kind: Square, Duty: clamp01(duty)} }

// WaveFromID maps the command ids 0=Sine, 1=Sawtooth, 2=Square, 3=Triangle,
// 4=FastSine.
func WaveFromID(id uint8) (Wave, bool) {
	switch id {
	case 0:
		return Wave{Kind: Sine}, true
	case 1:
		return Wave{Kind: Sawtooth}, true
	case 2:
		return SquareWave(.5), true
	case 3:
		return Wave{Kind: Triangle}, true
	case 4:
		return Wave{Kind: FastSine}, true
	}
	return Wave{}, false
}

// SquareAmp is the amplitude of the square wave.  All other waveforms span
// [-1, 1].
const SquareAmp = .5

// Osc is a phase accumulator.  Phase is kept in [0, 1).
type Osc struct {
	Params Params
	wave   Wave
	freq   float64
	inc    float64
	phase  float64
}

func NewOsc(w Wave, freq float64) *Osc {
	o := &Osc{}
	o.SetWave(w)
	o.freq = math.Max(0, freq)
	return o
}

func (o *Osc) InitAudio(p Params) {
	o.Params = p
	o.SetFreq(o.freq)
}

func (o *Osc) Freq() float64 { return o.freq }
func (o *Osc) Wave() Wave { return o.wave }
func (o *Osc) Phase() float64 { return o.phase }

func (o *Osc) SetFreq(freq float64) {
	if !(freq > 0) {
		freq = 0
	}
	o.freq = freq
	if o.Params.SampleRate > 0 {
		o.inc = freq / o.Params.SampleRate
	}
}

func (o *Osc) SetWave(w Wave) {
	if w.Kind == Square {
		w.Duty = clamp01(w.Duty)
	}
	o.wave = w
}

// Sing returns the sample at the current phase and advances the phase by one
// sample.  A zero frequency yields silence and leaves the phase alone.
func (o *Osc) Sing() float64 {
	if o.inc == 0 {
		return 0
	}
	p := o.phase
	_, o.phase = math.Modf(o.phase + o.inc)

	switch o.wave.Kind {
	case Sine:
		return math.Sin(2 * math.Pi * p)
	case FastSine:
		x := 2*p - 1
		return 4 * x * (1 - math.Abs(x))
	case Sawtooth:
		return 2*p - 1
	case Square:
		if p < o.wave.Duty {
			return SquareAmp
		}
		return -SquareAmp
	case Triangle:
		return 1 - 4*math.Abs(p-.5)
	}
	return 0
}

// Process fills a with consecutive samples.
func (o *Osc) Process(a []float32) {
	for i := range a {
		a[i] = float32(o.Sing())
	}
}

func clamp01(x float64) float64 {
	if !(x > 0) {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
