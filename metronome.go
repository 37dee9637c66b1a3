package audio

import (
	"fmt"
	"strconv"
	"strings"
)

// ClickWindow is the number of samples after each beat boundary during which
// ShowBeat is true.
const ClickWindow = 8192

// Metronome derives beats from an externally supplied sample count.  It never
// looks at the wall clock.
type Metronome struct {
	bpm    float64
	period uint64
	window uint64
	origin uint64

	beat     uint32
	showBeat bool
}

func NewMetronome(bpm float64) *Metronome {
	if !(bpm > 0) {
		panic(fmt.Sprintf("audio.NewMetronome: invalid bpm %v", bpm))
	}
	return &Metronome{bpm: bpm}
}

// InitAudio computes the tick period, counting samples across all channels.
func (m *Metronome) InitAudio(p Params) {
	m.period = uint64(p.Frames() * 60 / m.bpm)
	if m.period == 0 {
		panic(fmt.Sprintf("audio.Metronome: %v bpm is too fast for %v samples per second", m.bpm, p.Frames()))
	}
	m.window = min(ClickWindow, m.period/2)
}

func (m *Metronome) BPM() float64 { return m.bpm }

// TickPeriod is the number of samples per beat.
func (m *Metronome) TickPeriod() uint64 { return m.period }

// Sync makes elapsed the start of beat 0.
func (m *Metronome) Sync(elapsed uint64) { m.origin = elapsed }

func (m *Metronome) Update(elapsed uint64) {
	if m.period == 0 {
		panic("Metronome.Update called before InitAudio")
	}
	var n uint64
	if elapsed > m.origin {
		n = elapsed - m.origin
	}
	m.beat = uint32(n / m.period)
	m.showBeat = n%m.period < m.window
}

func (m *Metronome) BeatIndex() uint32 { return m.beat }

// ShowBeat reports whether the last update fell inside the click window.
func (m *Metronome) ShowBeat() bool { return m.showBeat }

// TimeSignature counts a Metronome's beats in bars of Num beats.
type TimeSignature struct {
	Num, Den  uint8
	Metronome *Metronome
	accent    bool
}

func NewTimeSignature(num, den uint8, bpm float64) *TimeSignature {
	if num == 0 || den == 0 {
		panic(fmt.Sprintf("audio.NewTimeSignature: invalid time signature %d/%d", num, den))
	}
	return &TimeSignature{Num: num, Den: den, Metronome: NewMetronome(bpm)}
}

// Update returns whether a click should sound and whether the current beat is
// the first of its bar.
func (s *TimeSignature) Update(elapsed uint64) (beat, accent bool) {
	s.Metronome.Update(elapsed)
	s.accent = s.Metronome.BeatIndex()%uint32(s.Num) == 0
	return s.Metronome.ShowBeat(), s.accent
}

// ParseTimeSignature parses a signature such as "3/4".
func ParseTimeSignature(sig string, bpm float64) (*TimeSignature, error) {
	n, d, ok := strings.Cut(sig, "/")
	if !ok {
		return nil, fmt.Errorf("time signature %q: missing '/'", sig)
	}
	num, err := strconv.ParseUint(n, 10, 8)
	if err != nil {
		return nil, fmt.Errorf("time signature %q: %w", sig, err)
	}
	den, err := strconv.ParseUint(d, 10, 8)
	if err != nil {
		return nil, fmt.Errorf("time signature %q: %w", sig, err)
	}
	if num == 0 || den == 0 || !(bpm > 0) {
		return nil, fmt.Errorf("invalid time signature %q at %v bpm", sig, bpm)
	}
	return NewTimeSignature(uint8(num), uint8(den), bpm), nil
}

func (s *TimeSignature) BeatIndex() uint32 { return s.Metronome.BeatIndex() }
func (s *TimeSignature) Accent() bool { return s.accent }

// Bar returns the zero-based bar and the beat within it.
func (s *TimeSignature) Bar() (bar, beat uint32) {
	i := s.Metronome.BeatIndex()
	return i / uint32(s.Num), i % uint32(s.Num)
}

func (s *TimeSignature) String() string { return fmt.Sprintf("%d/%d", s.Num, s.Den) }
