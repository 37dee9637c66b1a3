// Metronome clicks in time, accenting the first beat of each bar.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/kopekdsp/audio"
	"github.com/kopekdsp/audio/play"
)

var (
	sampleRate = flag.Float64("rate", 48000, "sample rate")
	bufferSize = flag.Int("buffer", 512, "frames per block")
	bpm        = flag.Float64("bpm", 120, "tempo")
	sig        = flag.String("sig", "4/4", "time signature")
	tone       = flag.Float64("tone", 0, "drone frequency under the click; 0 for none")
)

func main() {
	flag.Parse()
	log.SetFlags(0)

	ts, err := audio.ParseTimeSignature(*sig, *bpm)
	if err != nil {
		log.Fatal(err)
	}
	p := audio.Params{SampleRate: *sampleRate, BufferSize: *bufferSize}

	out := audio.NewQueue[float32](4 * *bufferSize)
	cmds := audio.NewQueue[audio.Command](8)
	s := audio.NewSynth(out, nil, cmds)
	s.Beat = ts
	s.Osc.SetFreq(*tone)
	audio.Init(s, p)
	s.Apply(audio.Command{Kind: audio.Start})

	pl := play.NewPlayer(out)
	audio.Init(pl, p)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	if _, err := pl.Start(); err != nil {
		log.Fatal(err)
	}
	defer play.StopAll()

	// A second counter on the same clock.  The beat is a pure function of
	// the sample count, so it agrees with the synth's without sharing it.
	view, _ := audio.ParseTimeSignature(*sig, *bpm)
	audio.Init(view, p)
	fmt.Printf("%v at %v bpm, %d samples per beat\n", view, *bpm, view.Metronome.TickPeriod())

	tick := time.NewTicker(10 * time.Millisecond)
	defer tick.Stop()
	last := uint32(1<<32 - 1)
	for {
		select {
		case <-tick.C:
			produced, queued := s.Stats.Produced.Load(), uint64(out.Len())
			view.Update(produced - min(produced, queued))
			if i := view.BeatIndex(); i != last {
				last = i
				bar, beat := view.Bar()
				mark := ""
				if view.Accent() {
					mark = " >"
				}
				fmt.Printf("%4d.%d%s\n", bar+1, beat+1, mark)
			}
		case err := <-done:
			if !errors.Is(err, context.Canceled) {
				log.Println(err)
			}
			return
		}
	}
}
