package audio

import (
	"math/rand"
	"time"
)

// Noise is not safe for concurrent use.
type Noise struct {
	rand *rand.Rand
}

func NewNoise() *Noise {
	return NewNoiseSeed(time.Now().UnixNano())
}

func NewNoiseSeed(seed int64) *Noise {
	return &Noise{rand: rand.New(rand.NewSource(seed))}
}

// Uniform returns a sample uniformly distributed in [-1, 1).
func (n *Noise) Uniform() float64 { return 2*n.rand.Float64() - 1 }

// Gaussian returns a standard normal sample.
func (n *Noise) Gaussian() float64 { return n.rand.NormFloat64() }

type NoiseType uint8

const (
	NoNoise NoiseType = iota
	UniformNoise
	GaussianNoise
)

func (t NoiseType) String() string {
	switch t {
	case NoNoise:
		return "none"
	case UniformNoise:
		return "uniform"
	case GaussianNoise:
		return "gaussian"
	}
	return "unknown"
}

// NoiseFromID maps the command ids 0=None, 1=Uniform, 2=Gaussian.
func NoiseFromID(id uint8) (NoiseType, bool) {
	if t := NoiseType(id); t <= GaussianNoise {
		return t, true
	}
	return NoNoise, false
}

// NoiseGen produces one sample of the selected noise per Sing.
type NoiseGen struct {
	Type  NoiseType
	noise *Noise
}

func NewNoiseGen(n *Noise) *NoiseGen { return &NoiseGen{noise: n} }

func (g *NoiseGen) Sing() float64 {
	switch g.Type {
	case UniformNoise:
		return g.source().Uniform()
	case GaussianNoise:
		return g.source().Gaussian()
	}
	return 0
}

func (g *NoiseGen) source() *Noise {
	if g.noise == nil {
		g.noise = NewNoise()
	}
	return g.noise
}
