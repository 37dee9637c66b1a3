package play

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kopekdsp/audio"
)

func newTestPlayer(channels int, samples ...float32) *Player {
	q := audio.NewQueue[float32](16)
	for _, x := range samples {
		q.TryPush(x)
	}
	pl := NewPlayer(q)
	audio.Init(pl, audio.Params{SampleRate: 8000, Channels: channels})
	return pl
}

func TestPlayerFill(t *testing.T) {
	pl := newTestPlayer(2, 1, 2, 3)
	if pl.Params.Channels != 2 || pl.Params.BufferSize != audio.DefaultBufferSize {
		t.Fatalf("params %+v", pl.Params)
	}
	out := make([]float32, 9)
	for i := range out {
		out[i] = -1
	}
	pl.Fill(out)
	if diff := cmp.Diff([]float32{1, 1, 2, 2, 3, 3, 0, 0, 0}, out); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if got := pl.Underflow.Load(); got != 1 {
		t.Errorf("underflow %d, want 1", got)
	}
	pl.Fill(out[:4])
	if pl.Underflow.Load() != 3 || pl.Callbacks.Load() != 2 {
		t.Errorf("underflow %d callbacks %d", pl.Underflow.Load(), pl.Callbacks.Load())
	}
}

func TestPlayerRead(t *testing.T) {
	pl := newTestPlayer(2, .5, -.25)
	b := make([]byte, 21)
	n, err := pl.Read(b)
	if err != nil {
		t.Fatal(err)
	}
	if n != 16 {
		t.Fatalf("read %d bytes, want 16", n)
	}
	var got []float32
	for i := 0; i < n; i += 4 {
		got = append(got, math.Float32frombits(binary.LittleEndian.Uint32(b[i:])))
	}
	if diff := cmp.Diff([]float32{.5, .5, -.25, -.25}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if n, _ := pl.Read(b[:7]); n != 0 {
		t.Errorf("read %d bytes of a partial frame", n)
	}
}

func TestPlayControlStop(t *testing.T) {
	c := PlayControl{make(chan struct{}, 1), make(chan struct{})}
	c.Stop()
	c.Stop()
	if len(c.stop) != 1 {
		t.Errorf("%d pending stops", len(c.stop))
	}
}
