//go:build !oto

package play

import (
	"errors"
	"fmt"

	"github.com/gordonklaus/portaudio"
)

type portaudioDevice struct {
	stream *portaudio.Stream
}

func openDevice(pl *Player) (device, error) {
	p := pl.Params
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initializing portaudio: %w", err)
	}
	s, err := portaudio.OpenDefaultStream(0, p.Channels, p.SampleRate, p.BufferSize, pl.Fill)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("opening output stream: %w", err)
	}
	if err := s.Start(); err != nil {
		s.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("starting output stream: %w", err)
	}
	return &portaudioDevice{s}, nil
}

func (d *portaudioDevice) Close() error {
	return errors.Join(d.stream.Stop(), d.stream.Close(), portaudio.Terminate())
}
