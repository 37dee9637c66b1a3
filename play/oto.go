//go:build oto

package play

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/kopekdsp/audio"
)

// oto allows one context per process.
var (
	otoOnce   sync.Once
	otoCtx    *oto.Context
	otoParams audio.Params
	otoErr    error
)

type otoDevice struct {
	player *oto.Player
}

func openDevice(pl *Player) (device, error) {
	p := pl.Params
	otoOnce.Do(func() {
		var ready chan struct{}
		otoCtx, ready, otoErr = oto.NewContext(&oto.NewContextOptions{
			SampleRate:   int(p.SampleRate),
			ChannelCount: p.Channels,
			Format:       oto.FormatFloat32LE,
			BufferSize:   time.Duration(float64(time.Second) * float64(p.BufferSize) / p.SampleRate),
		})
		if otoErr == nil {
			<-ready
			otoParams = p
		}
	})
	if otoErr != nil {
		return nil, fmt.Errorf("creating oto context: %w", otoErr)
	}
	if p.SampleRate != otoParams.SampleRate || p.Channels != otoParams.Channels {
		return nil, fmt.Errorf("oto context is %v Hz %d channels, cannot play %v Hz %d channels",
			otoParams.SampleRate, otoParams.Channels, p.SampleRate, p.Channels)
	}

	player := otoCtx.NewPlayer(pl)
	player.Play()
	return &otoDevice{player}, nil
}

func (d *otoDevice) Close() error {
	d.player.Pause()
	return d.player.Close()
}
