package retry

import (
	"math"
	"math/rand/v2"
	"time"
)

const (
	DefaultBase = 30 * time.Second
	DefaultMax  = 6 * time.Hour
)

// Backoff computes min(Max, Base*2^n) scaled by a jitter factor in [0.5, 1.5),
// never exceeding Max.
type Backoff struct {
	base time.Duration
	max  time.Duration
	rand func() float64
}

// NewBackoff returns a Backoff. rnd must return values in [0, 1); nil uses math/rand/v2.
func NewBackoff(base, max time.Duration, rnd func() float64) Backoff {
	if base <= 0 {
		base = DefaultBase
	}
	if max < base {
		max = base
	}
	if rnd == nil {
		rnd = rand.Float64
	}
	return Backoff{base: base, max: max, rand: rnd}
}

func (b Backoff) Base() time.Duration { return b.base }
func (b Backoff) Max() time.Duration  { return b.max }

// NextDelay returns the wait before attempt n+1, where n is the number of retries already made.
func (b Backoff) NextDelay(n int) time.Duration {
	if n < 0 {
		n = 0
	}
	raw := float64(b.max)
	if n < 62 {
		raw = math.Min(float64(b.max), float64(b.base)*math.Pow(2, float64(n)))
	}
	jittered := time.Duration(raw * (0.5 + b.rand()))
	if jittered > b.max {
		return b.max
	}
	if jittered <= 0 {
		return time.Millisecond
	}
	return jittered
}
