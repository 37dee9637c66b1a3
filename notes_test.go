package audio

import (
	"math"
	"testing"
)

func TestNoteFreq(t *testing.T) {
	for _, tc := range []struct {
		k      Key
		octave int
		freq   float64
	}{
		{A, 4, 440},
		{C, 4, 261.6},
		{B, 0, 30.87},
		{Cs, 2, 69.28},
		{Rest, 4, 0},
	} {
		if f := NoteFreq(tc.k, tc.octave); math.Abs(f-tc.freq) > .01 {
			t.Errorf("%v%d: %v, want %v", tc.k, tc.octave, f, tc.freq)
		}
	}
}

func TestPitchFreq(t *testing.T) {
	if f := PitchFreq(12); f != 880 {
		t.Errorf("octave up: %v", f)
	}
	// the table is rounded to hundredths of a hertz at octave 0
	for k := C; k < Rest; k++ {
		want := PitchFreq(float64(int(k) - int(A) - 48))
		if f := NoteFreq(k, 0); math.Abs(f-want) > .006 {
			t.Errorf("%v0: table %v, equal temperament %v", k, f, want)
		}
	}
}

func TestKeyString(t *testing.T) {
	if C.String() != "C" || Fs.String() != "F#" || Rest.String() != "-" || Key(20).String() != "?" {
		t.Error("bad key names")
	}
}
