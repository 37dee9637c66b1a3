package audio

import "math"

type Key uint8

const (
	C Key = iota
	Cs
	D
	Ds
	E
	F
	Fs
	G
	Gs
	A
	As
	B
	Rest
)

// octave 0
var keyFreqs = [...]float64{
	C:  16.35,
	Cs: 17.32,
	D:  18.35,
	Ds: 19.45,
	E:  20.60,
	F:  21.83,
	Fs: 23.12,
	G:  24.50,
	Gs: 25.96,
	A:  27.50,
	As: 29.14,
	B:  30.87,
}

const A4 = 440.0

var keyNames = [...]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B", "-"}

func (k Key) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return "?"
}

// NoteFreq returns the frequency of k in the given octave, or 0 for Rest.
func NoteFreq(k Key, octave int) float64 {
	if k >= Rest {
		return 0
	}
	return keyFreqs[k] * math.Exp2(float64(octave))
}

// PitchFreq returns the equal-tempered frequency semitones away from A4.
func PitchFreq(semitones float64) float64 { return A4 * math.Exp2(semitones/12) }
