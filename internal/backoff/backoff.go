package backoff

import (
	"math/rand"
	"time"
)

// JitterSpread is the symmetric jitter fraction applied around the raw
// exponential delay. A spread of 0.25 yields delays in [0.75d, 1.25d].
const JitterSpread = 0.25

// Strategy computes the delay to wait before a given retry attempt.
type Strategy interface {
	// Delay returns the backoff duration for attempt (0-based), growing
	// from initial by multiplier per attempt and never exceeding the
	// strategy's cap relative to max.
	Delay(attempt int, initial, max time.Duration, multiplier float64) time.Duration
}

// Exponential grows delays geometrically and applies ±25% uniform jitter.
// The jittered delay is clamped to [0, max*1.25].
type Exponential struct{}

// Delay implements Strategy.
func (Exponential) Delay(attempt int, initial, max time.Duration, multiplier float64) time.Duration {
	if attempt < 0 {
		attempt = 0
	}

	// Prevent overflow by limiting attempt
	if attempt > 30 {
		attempt = 30
	}

	d := time.Duration(float64(initial) * pow(multiplier, attempt))
	if d < 0 || d > max {
		d = max
	}

	// Uniform draw in [1-spread, 1+spread]
	factor := 1 + JitterSpread*(2*rand.Float64()-1)
	d = time.Duration(float64(d) * factor)
	if d < 0 {
		d = 0
	}
	if ceiling := time.Duration(float64(max) * (1 + JitterSpread)); d > ceiling {
		d = ceiling
	}
	return d
}

// pow calculates base^exponent using integer exponentiation.
func pow(base float64, exponent int) float64 {
	result := 1.0
	for i := 0; i < exponent; i++ {
		result *= base
	}
	return result
}
