package audio

import "math"

type EnvState uint8

const (
	Idle EnvState = iota
	Attack
	Decay
	Sustain
	Release
)

func (s EnvState) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Attack:
		return "Attack"
	case Decay:
		return "Decay"
	case Sustain:
		return "Sustain"
	case Release:
		return "Release"
	}
	return "Unknown"
}

// Segment gains.  Decay falls to SustainLevel, Release falls from wherever
// it started to 0.
const (
	AttackLevel  = 1.0
	SustainLevel = .8
)

// Envelope is a linear ADSR.  Volume is always the interpolation of the
// active segment's gains by tick/duration; segment durations are counted in
// samples across all channels.
//
// By default Decay runs straight into Release.  With Hold set, Decay settles
// in Sustain until Release is called.
type Envelope struct {
	Hold bool

	attackTime, decayTime, releaseTime float64
	attack, decay, release             float64

	state       EnvState
	volume      float64
	tick        float64
	releaseFrom float64
}

// NewEnvelope takes segment times in seconds.
func NewEnvelope(attackTime, decayTime, releaseTime float64) *Envelope {
	return &Envelope{attackTime: attackTime, decayTime: decayTime, releaseTime: releaseTime}
}

func (e *Envelope) InitAudio(p Params) {
	f := p.Frames()
	e.attack = samples(e.attackTime * f)
	e.decay = samples(e.decayTime * f)
	e.release = samples(e.releaseTime * f)
}

func samples(n float64) float64 { return math.Max(1, math.Round(n)) }

func (e *Envelope) State() EnvState { return e.state }
func (e *Envelope) Volume() float64 { return e.volume }
func (e *Envelope) Done() bool { return e.state == Idle }

// Durations returns the attack, decay and release lengths in samples.
func (e *Envelope) Durations() (attack, decay, release float64) {
	return e.attack, e.decay, e.release
}

// Press (re)starts the attack.  A sounding envelope resumes the attack ramp
// from its current volume.
func (e *Envelope) Press() {
	if e.state == Idle {
		e.tick = 0
	} else {
		e.tick = invLerp(0, AttackLevel, e.volume) * e.attack
	}
	e.state = Attack
}

// Release forces the release segment from any sounding state, starting at the
// current volume.
func (e *Envelope) Release() {
	switch e.state {
	case Attack, Decay, Sustain:
		e.startRelease(e.volume)
	}
}

func (e *Envelope) startRelease(from float64) {
	e.state = Release
	e.tick = 0
	e.releaseFrom = from
}

func (e *Envelope) Reset() {
	e.state = Idle
	e.volume = 0
	e.tick = 0
}

// Sing advances the envelope by one sample and returns the new volume.
func (e *Envelope) Sing() float64 {
	switch e.state {
	case Attack:
		e.tick++
		e.volume = lerp(0, AttackLevel, e.tick/e.attack)
		if e.tick >= e.attack {
			e.volume = AttackLevel
			e.tick = 0
			e.state = Decay
		}
	case Decay:
		e.tick++
		e.volume = lerp(AttackLevel, SustainLevel, e.tick/e.decay)
		if e.tick >= e.decay {
			e.volume = SustainLevel
			if e.Hold {
				e.tick = 0
				e.state = Sustain
			} else {
				e.startRelease(SustainLevel)
			}
		}
	case Sustain:
		e.volume = SustainLevel
	case Release:
		e.tick++
		e.volume = lerp(e.releaseFrom, 0, e.tick/e.release)
		if e.tick >= e.release {
			e.Reset()
		}
	case Idle:
		e.volume = 0
	}
	return e.volume
}

// Process multiplies a by consecutive envelope values.
func (e *Envelope) Process(a []float32) {
	for i := range a {
		a[i] *= float32(e.Sing())
	}
}

func lerp(x0, x1, t float64) float64 { return x0 + t*(x1-x0) }

func invLerp(x0, x1, x float64) float64 {
	if x1 == x0 {
		return 0
	}
	return clamp01((x - x0) / (x1 - x0))
}
