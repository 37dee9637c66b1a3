package audio

import "math"

// A soft limiter.  The RMS amplitude of the output (averaged over the attack
// time) approaches limit*tanh(rms/limit), so quiet signals pass almost
// untouched and loud ones settle just under the limit.  The signal is delayed
// by the attack time so the gain has moved before a transient arrives.
type Limiter struct {
	limit         float64
	attack, decay float64
	down, up      float64
	amp           float64
	rms           *AmpMeter
	delay         []float64
	i             int
}

func NewLimiter(limit, attack, decay float64) *Limiter {
	return &Limiter{limit: limit, attack: attack, decay: decay, rms: NewAmpMeter(attack)}
}

func (c *Limiter) InitAudio(p Params) {
	c.down = -1 / (c.attack * p.SampleRate)
	c.up = 1 / (c.decay * p.SampleRate)
	c.amp = 0
	c.rms.InitAudio(p)
	c.delay = make([]float64, max(1, int(c.attack*p.SampleRate)))
	c.i = 0
}

// Gain is the current linear gain.
func (c *Limiter) Gain() float64 { return math.Exp2(c.amp) }

func (c *Limiter) Limit(x float64) float64 {
	gain := math.Exp2(c.amp)
	c.rms.Add(float32(x))
	if y := c.rms.Level() / c.limit; y > 0 && math.Tanh(y)/y < gain {
		c.amp += c.down
	} else {
		c.amp = math.Min(0, c.amp+c.up)
	}
	y := c.delay[c.i]
	c.delay[c.i] = x
	c.i = (c.i + 1) % len(c.delay)
	return gain * y
}
