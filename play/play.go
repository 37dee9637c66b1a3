// Package play connects a sample queue to an audio output device.
package play

import (
	"encoding/binary"
	"log"
	"math"
	"sync"
	"sync/atomic"

	"github.com/kopekdsp/audio"
)

// Player is the consumer side of a sample queue.  Its Fill method is the
// real-time device callback: it only pops from the queue and never blocks,
// allocates or logs.
type Player struct {
	Params audio.Params

	q   *audio.Queue[float32]
	buf []float32

	Callbacks atomic.Uint64
	Underflow atomic.Uint64
}

func NewPlayer(q *audio.Queue[float32]) *Player {
	return &Player{q: q}
}

func (pl *Player) InitAudio(p audio.Params) { pl.Params = p }

// Fill writes the next interleaved samples into out, replicating each queued
// sample across all channels, and writes silence when the queue runs dry.
func (pl *Player) Fill(out []float32) {
	pl.Callbacks.Add(1)
	if n := audio.FillInterleaved(pl.q, out, pl.Params.Channels); n > 0 {
		pl.Underflow.Add(uint64(n))
	}
}

// Read implements io.Reader, producing little-endian float32 PCM.  Only whole
// frames are produced.
func (pl *Player) Read(b []byte) (int, error) {
	frame := 4 * max(1, pl.Params.Channels)
	n := len(b) / frame * frame / 4
	if cap(pl.buf) < n {
		pl.buf = make([]float32, n)
	}
	buf := pl.buf[:n]
	pl.Fill(buf)
	for i, x := range buf {
		binary.LittleEndian.PutUint32(b[4*i:], math.Float32bits(x))
	}
	return 4 * n, nil
}

var (
	mu       sync.Mutex
	controls []PlayControl
)

// Start opens the default output device with pl.Params and begins pulling
// from the queue.  Init must have been called on pl.
func (pl *Player) Start() (PlayControl, error) {
	if !(pl.Params.SampleRate > 0) {
		panic("play: Player.Start called before audio.Init")
	}
	d, err := openDevice(pl)
	if err != nil {
		return PlayControl{}, err
	}

	c := PlayControl{make(chan struct{}, 1), make(chan struct{})}
	go func() {
		<-c.stop
		if err := d.Close(); err != nil {
			log.Println(err)
		}
		close(c.Done)
	}()
	mu.Lock()
	controls = append(controls, c)
	mu.Unlock()
	return c, nil
}

type PlayControl struct {
	stop, Done chan struct{}
}

func (c PlayControl) Stop() {
	select {
	case c.stop <- struct{}{}:
	default:
	}
}

// StopAll stops every started player and waits for the devices to close.
func StopAll() {
	mu.Lock()
	cs := controls
	controls = nil
	mu.Unlock()
	for _, c := range cs {
		c.Stop()
		<-c.Done
	}
}

type device interface {
	Close() error
}
