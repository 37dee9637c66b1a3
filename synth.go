package audio

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"
)

type CommandKind uint8

const (
	Start CommandKind = iota
	Stop
	ChangeFrequency
	ChangeOscillator
	ChangeNoise
	Pressed
	Released
)

func (k CommandKind) String() string {
	switch k {
	case Start:
		return "Start"
	case Stop:
		return "Stop"
	case ChangeFrequency:
		return "ChangeFrequency"
	case ChangeOscillator:
		return "ChangeOscillator"
	case ChangeNoise:
		return "ChangeNoise"
	case Pressed:
		return "Pressed"
	case Released:
		return "Released"
	}
	return "Unknown"
}

// A Command is a parameter change for the synthesis loop.  Freq is used by
// ChangeFrequency and ID by ChangeOscillator and ChangeNoise.
type Command struct {
	Kind CommandKind
	Freq float64
	ID   uint8
}

func (c Command) String() string {
	switch c.Kind {
	case ChangeFrequency:
		return fmt.Sprintf("%v(%g)", c.Kind, c.Freq)
	case ChangeOscillator, ChangeNoise:
		return fmt.Sprintf("%v(%d)", c.Kind, c.ID)
	}
	return c.Kind.String()
}

// Stats are counters the synthesis loop updates for non-real-time observers.
type Stats struct {
	Produced   atomic.Uint64
	TapDropped atomic.Uint64
	Commands   atomic.Uint64
	Ignored    atomic.Uint64
}

// ClickFreq is the metronome click pitch; accented beats sound an octave up.
const ClickFreq = 1046.5

// Synth is the synthesis loop.  It owns its oscillator, noise, envelope and
// metronome; only the goroutine calling Step or Run may touch them.  It talks
// to the rest of the program through three single-producer/single-consumer
// queues: samples out to the audio callback, a best-effort copy of the same
// samples to the visualization tap, and commands in.
type Synth struct {
	Params Params
	Osc    *Osc
	Noise  *NoiseGen
	// Env gates the oscillator and noise when set.
	Env *Envelope
	// Beat adds a click on every beat when set.
	Beat  *TimeSignature
	Click *Osc
	Gain  float64
	// DC and Limit, when set, process the output after Gain.
	DC    *DCFilter
	Limit *Limiter

	out  *Queue[float32]
	tap  *Queue[float32]
	cmds *Queue[Command]

	running bool
	elapsed uint64
	Stats   Stats
}

// NewSynth returns a stopped sine synth.  tap may be nil.
func NewSynth(out, tap *Queue[float32], cmds *Queue[Command]) *Synth {
	return &Synth{
		Osc:   NewOsc(Wave{Kind: Sine}, A4),
		Noise: NewNoiseGen(NewNoise()),
		Click: NewOsc(Wave{Kind: Sine}, ClickFreq),
		Gain:  .2,
		out:   out,
		tap:   tap,
		cmds:  cmds,
	}
}

func (s *Synth) Running() bool { return s.running }

// Elapsed is the number of samples produced so far.  It is the clock the
// metronome runs on.
func (s *Synth) Elapsed() uint64 { return s.elapsed }

// Step produces up to one block of samples, stopping early if the output
// queue fills up, then applies every pending command.  Commands therefore
// take effect from the next block on.  It returns the number of samples
// produced.
func (s *Synth) Step() int {
	n := min(s.Params.bufferSize(), s.out.Free())
	for i := 0; i < n; i++ {
		x := float32(s.sing())
		s.out.TryPush(x)
		if s.tap != nil && !s.tap.TryPush(x) {
			s.Stats.TapDropped.Add(1)
		}
	}
	s.Stats.Produced.Add(uint64(n))
	for {
		c, ok := s.cmds.TryPop()
		if !ok {
			break
		}
		s.Apply(c)
	}
	return n
}

func (s *Synth) sing() float64 {
	x := 0.0
	if s.running {
		x = s.Osc.Sing() + s.Noise.Sing()
	}
	if s.Env != nil {
		x *= s.Env.Sing()
	}
	if s.Beat != nil {
		beat, accent := s.Beat.Update(s.elapsed)
		if s.running && beat {
			f := ClickFreq
			if accent {
				f *= 2
			}
			s.Click.SetFreq(f)
			x += s.Click.Sing()
		}
	}
	s.elapsed++
	y := s.Gain * x
	if s.DC != nil {
		y = s.DC.Filter(y)
	}
	if s.Limit != nil {
		y = s.Limit.Limit(y)
	}
	return y
}

// Apply performs c immediately.  Unknown oscillator and noise ids are
// ignored.
func (s *Synth) Apply(c Command) {
	s.Stats.Commands.Add(1)
	switch c.Kind {
	case Start:
		s.running = true
	case Stop:
		s.running = false
	case ChangeFrequency:
		s.Osc.SetFreq(c.Freq)
	case ChangeOscillator:
		if w, ok := WaveFromID(c.ID); ok {
			s.Osc.SetWave(w)
			return
		}
		s.Stats.Ignored.Add(1)
	case ChangeNoise:
		if t, ok := NoiseFromID(c.ID); ok {
			s.Noise.Type = t
			return
		}
		s.Stats.Ignored.Add(1)
	case Pressed:
		if s.Env != nil {
			s.Env.Press()
		}
	case Released:
		if s.Env != nil {
			s.Env.Release()
		}
	default:
		s.Stats.Ignored.Add(1)
	}
}

// Run calls Step until ctx is done.  When the output queue is full it sleeps
// for a quarter of a block instead of spinning.
func (s *Synth) Run(ctx context.Context) error {
	idle := time.Duration(float64(time.Second) * float64(s.Params.bufferSize()) / s.Params.Frames() / 4)
	t := time.NewTimer(idle)
	defer t.Stop()
	for {
		if s.Step() > 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
			continue
		}
		t.Reset(idle)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
}
