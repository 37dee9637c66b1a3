// Spectrum renders the synth offline and prints the strongest spectrum bins,
// optionally writing the rendered audio as raw little-endian float32 PCM.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"slices"

	"github.com/kopekdsp/audio"
	"github.com/kopekdsp/audio/play"
)

var (
	sampleRate = flag.Float64("rate", 44100, "sample rate")
	seconds    = flag.Float64("t", 1, "seconds to render")
	wave       = flag.Uint("wave", 0, "oscillator: 0 sine, 1 saw, 2 square, 3 triangle, 4 fast sine")
	noise      = flag.Uint("noise", 0, "noise: 0 none, 1 uniform, 2 gaussian")
	freq       = flag.Float64("freq", audio.A4, "oscillator frequency")
	size       = flag.Int("fft", 4096, "analyzer size, rounded up to a power of two")
	hann       = flag.Bool("hann", true, "apply a Hann window")
	peaks      = flag.Int("peaks", 8, "number of bins to print")
	outFile    = flag.String("o", "", "write raw float32 PCM here")
)

func main() {
	flag.Parse()
	log.SetFlags(0)

	p := audio.Params{SampleRate: *sampleRate}
	out := audio.NewQueue[float32](audio.DefaultBufferSize)
	tap := audio.NewQueue[float32](audio.DefaultBufferSize)
	cmds := audio.NewQueue[audio.Command](4)
	s := audio.NewSynth(out, tap, cmds)
	s.Gain = 1
	audio.Init(s, p)
	for _, c := range []audio.Command{
		{Kind: audio.ChangeOscillator, ID: uint8(*wave)},
		{Kind: audio.ChangeNoise, ID: uint8(*noise)},
		{Kind: audio.ChangeFrequency, Freq: *freq},
		{Kind: audio.Start},
	} {
		s.Apply(c)
	}
	if n := s.Stats.Ignored.Load(); n > 0 {
		log.Fatalf("spectrum: unknown wave %d or noise %d", *wave, *noise)
	}

	w := io.Discard
	if *outFile != "" {
		f, err := os.Create(*outFile)
		if err != nil {
			log.Fatal(err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				log.Fatal(err)
			}
		}()
		bw := bufio.NewWriter(f)
		defer func() {
			if err := bw.Flush(); err != nil {
				log.Fatal(err)
			}
		}()
		w = bw
	}

	win := audio.RectangularWindow
	if *hann {
		win = audio.HannWindow
	}
	a := audio.NewAnalyzer(*size, win)
	audio.Init(a, p)
	pl := play.NewPlayer(out)
	audio.Init(pl, p)

	total := uint64(*seconds * *sampleRate)
	buf := make([]byte, 4*audio.DefaultBufferSize)
	for s.Elapsed() < total {
		n := s.Step()
		a.Drain(tap)
		if _, err := w.Write(buf[:must(pl.Read(buf[:4*n]))]); err != nil {
			log.Fatal(err)
		}
	}

	bins := slices.Clone(a.Spectrum())
	slices.SortFunc(bins, func(x, y audio.Bin) int {
		switch {
		case x.Mag > y.Mag:
			return -1
		case x.Mag < y.Mag:
			return 1
		}
		return 0
	})
	fmt.Printf("%d samples, %d-point %v spectrum, level %.4f\n", s.Elapsed(), a.Size(), windowName(win), a.Level())
	for _, b := range bins[:min(*peaks, len(bins))] {
		fmt.Printf("%10.2f Hz  %12.4f\n", b.Freq, b.Mag)
	}
}

func must(n int, err error) int {
	if err != nil {
		log.Fatal(err)
	}
	return n
}

func windowName(w audio.WindowFunc) string {
	if w == audio.HannWindow {
		return "Hann"
	}
	return "rectangular"
}
