package audio

import "testing"

func TestInit(t *testing.T) {
	var i audioIniter
	didPanic := false
	func() {
		defer func() {
			if x := recover(); x != nil {
				didPanic = true
			}
		}()
		Init(i, Params{SampleRate: 1})
	}()
	if !didPanic {
		t.Error("expected panic")
	}
	if i.inited {
		t.Error("expected not inited")
	}

	Init(&i, Params{SampleRate: 1})
	if !i.inited {
		t.Error("expected inited")
	}
	if i.p.Channels != 1 || i.p.BufferSize != DefaultBufferSize {
		t.Errorf("params not normalized: %+v", i.p)
	}
}

func TestInitNested(t *testing.T) {
	var x struct {
		A audioIniter
		B []*audioIniter
		c audioIniter
	}
	x.B = []*audioIniter{{}, nil, {}}
	Init(&x, Params{SampleRate: 44100, Channels: 2})
	if !x.A.inited || !x.B[0].inited || !x.B[2].inited {
		t.Error("expected exported fields inited")
	}
	if x.c.inited {
		t.Error("unexported field should be skipped")
	}
	if got := x.A.p.Frames(); got != 88200 {
		t.Errorf("Frames() = %v, want 88200", got)
	}
}

func TestInitInvalidSampleRate(t *testing.T) {
	for _, sr := range []float64{0, -44100} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("sample rate %v: expected panic", sr)
				}
			}()
			var i audioIniter
			Init(&i, Params{SampleRate: sr})
		}()
	}
}

type audioIniter struct {
	inited bool
	p      Params
}

func (i *audioIniter) InitAudio(p Params) { i.inited = true; i.p = p }
