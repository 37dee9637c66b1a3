// Beep is a one-voice keyboard synth with a live spectrum display.
//
//	space        start/stop
//	1-5          sine, saw, square, triangle, fast sine
//	n            cycle noise (off, uniform, gaussian)
//	a w s ... k  play C4 to B4 (release with z)
//	+ -          shift pitch a semitone
//	[ ]          shift octave
//	q, ctrl-c    quit
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/kopekdsp/audio"
	"github.com/kopekdsp/audio/play"
	"golang.org/x/term"
)

var (
	sampleRate = flag.Float64("rate", 48000, "sample rate")
	channels   = flag.Int("channels", 2, "output channels")
	bufferSize = flag.Int("buffer", 512, "frames per block")
	fftSize    = flag.Int("fft", 2048, "analyzer size, rounded up to a power of two")
	bpm        = flag.Float64("bpm", 0, "metronome tempo; 0 disables the click")
	sig        = flag.String("sig", "4/4", "metronome time signature")
)

// piano row, C to B
const pianoKeys = "awsedftgyhuj"

func main() {
	flag.Parse()
	log.SetFlags(0)

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		log.Fatal("beep: stdin is not a terminal")
	}

	out := audio.NewQueue[float32](4 * *bufferSize)
	tap := audio.NewQueue[float32](4 * *fftSize)
	cmds := audio.NewQueue[audio.Command](64)

	s := audio.NewSynth(out, tap, cmds)
	s.Env = audio.NewEnvelope(.01, .1, .4)
	s.Env.Hold = true
	s.DC = &audio.DCFilter{}
	s.Limit = audio.NewLimiter(.5, .005, .5)
	if *bpm > 0 {
		ts, err := audio.ParseTimeSignature(*sig, *bpm)
		if err != nil {
			log.Fatal(err)
		}
		s.Beat = ts
	}
	// The synth is mono; the player spreads it across channels.
	audio.Init(s, audio.Params{SampleRate: *sampleRate, BufferSize: *bufferSize})

	pl := play.NewPlayer(out)
	audio.Init(pl, audio.Params{SampleRate: *sampleRate, Channels: *channels, BufferSize: *bufferSize})

	a := audio.NewAnalyzer(*fftSize, audio.HannWindow)
	audio.Init(a, audio.Params{SampleRate: *sampleRate})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	if _, err := pl.Start(); err != nil {
		log.Fatal(err)
	}
	defer play.StopAll()

	old, err := term.MakeRaw(fd)
	if err != nil {
		log.Fatal(err)
	}
	defer term.Restore(fd, old)

	keys := make(chan byte)
	go readKeys(keys)

	k := keyboard{cmds: cmds, octave: 4, freq: audio.A4}
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case b, ok := <-keys:
			if !ok || b == 'q' || b == 3 {
				cancel()
				<-done
				fmt.Print("\r\n")
				return
			}
			k.press(b)
		case <-tick.C:
			a.Drain(tap)
			draw(a, &k, pl, s)
		case <-done:
			fmt.Print("\r\n")
			return
		}
	}
}

func readKeys(keys chan<- byte) {
	defer close(keys)
	b := make([]byte, 1)
	for {
		if _, err := os.Stdin.Read(b); err != nil {
			return
		}
		keys <- b[0]
	}
}

// keyboard mirrors the synth state it has asked for, since the synth's own
// state belongs to the synthesis goroutine.
type keyboard struct {
	cmds    *audio.Queue[audio.Command]
	running bool
	wave    uint8
	noise   uint8
	octave  int
	freq    float64
	status  string
}

func (k *keyboard) send(c audio.Command) {
	if !k.cmds.TryPush(c) {
		k.status = "command queue full, dropped " + c.String()
		return
	}
	k.status = c.String()
}

func (k *keyboard) press(b byte) {
	switch {
	case b == ' ':
		k.running = !k.running
		if k.running {
			k.send(audio.Command{Kind: audio.Start})
		} else {
			k.send(audio.Command{Kind: audio.Stop})
		}
	case b >= '1' && b <= '5':
		k.wave = b - '1'
		k.send(audio.Command{Kind: audio.ChangeOscillator, ID: k.wave})
	case b == 'n':
		k.noise = (k.noise + 1) % 3
		k.send(audio.Command{Kind: audio.ChangeNoise, ID: k.noise})
	case b == '+' || b == '=':
		k.setFreq(k.freq * math.Exp2(1./12))
	case b == '-':
		k.setFreq(k.freq / math.Exp2(1./12))
	case b == '[':
		k.octave = max(0, k.octave-1)
	case b == ']':
		k.octave = min(8, k.octave+1)
	case b == 'z':
		k.send(audio.Command{Kind: audio.Released})
	default:
		if i := strings.IndexByte(pianoKeys, b); i >= 0 {
			k.setFreq(audio.NoteFreq(audio.Key(i), k.octave))
			k.send(audio.Command{Kind: audio.Pressed})
		}
	}
}

func (k *keyboard) setFreq(f float64) {
	k.freq = f
	k.send(audio.Command{Kind: audio.ChangeFrequency, Freq: f})
}

const bars = " ▁▂▃▄▅▆▇█"

func draw(a *audio.Analyzer, k *keyboard, pl *play.Player, s *audio.Synth) {
	width := 64
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 16 {
		width = w - 2
	}

	bins := a.Spectrum()
	peak := a.Peak()
	// linear bands up to 5 kHz
	top := 1
	for top < len(bins) && bins[top].Freq < 5000 {
		top++
	}
	if top < 2 {
		return
	}
	ramp := []rune(bars)
	var sb strings.Builder
	for i := 0; i < width; i++ {
		lo, hi := 1+i*(top-1)/width, 1+(i+1)*(top-1)/width
		m := 0.0
		for _, b := range bins[lo:max(hi, lo+1)] {
			m = max(m, b.Mag)
		}
		db := 20 * math.Log10(m/float64(a.Size())+1e-9)
		level := int((db + 60) / 60 * float64(len(ramp)-1))
		sb.WriteRune(ramp[min(max(level, 0), len(ramp)-1)])
	}

	wave, _ := audio.WaveFromID(k.wave)
	noise, _ := audio.NoiseFromID(k.noise)
	fmt.Printf("\x1b[H\x1b[2J%s\r\n", sb.String())
	fmt.Printf("%-9v %7.2f Hz  octave %d  noise %-8v running %v\r\n", wave.Kind, k.freq, k.octave, noise, k.running)
	fmt.Printf("peak %8.1f Hz  level %.3f  underflow %d  tap dropped %d\r\n",
		peak.Freq, a.Level(), pl.Underflow.Load(), s.Stats.TapDropped.Load())
	fmt.Printf("%s\r\n", k.status)
}
