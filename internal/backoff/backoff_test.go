package backoff

import (
	"testing"
	"time"
)

func TestExponentialGrowth(t *testing.T) {
	s := Exponential{}

	initial := 100 * time.Millisecond
	max := time.Hour

	for attempt := 0; attempt < 5; attempt++ {
		raw := time.Duration(float64(initial) * pow(2.0, attempt))
		lower := time.Duration(float64(raw) * (1 - JitterSpread))
		upper := time.Duration(float64(raw) * (1 + JitterSpread))

		for i := 0; i < 100; i++ {
			d := s.Delay(attempt, initial, max, 2.0)
			if d < lower || d > upper {
				t.Fatalf("Delay(%d) = %v, want within [%v, %v]", attempt, d, lower, upper)
			}
		}
	}
}

func TestExponentialCap(t *testing.T) {
	s := Exponential{}

	initial := time.Second
	max := 2 * time.Second
	ceiling := time.Duration(float64(max) * (1 + JitterSpread))

	for i := 0; i < 100; i++ {
		d := s.Delay(10, initial, max, 2.0)
		if d > ceiling {
			t.Fatalf("Delay(10) = %v exceeds jittered ceiling %v", d, ceiling)
		}
		if d < time.Duration(float64(max)*(1-JitterSpread)) {
			t.Fatalf("Delay(10) = %v below expected capped range", d)
		}
	}
}

func TestExponentialNegativeAttempt(t *testing.T) {
	s := Exponential{}

	d := s.Delay(-3, 100*time.Millisecond, time.Second, 2.0)
	if d < 0 {
		t.Fatalf("Delay(-3) = %v, want non-negative", d)
	}
	upper := time.Duration(float64(100*time.Millisecond) * (1 + JitterSpread))
	if d > upper {
		t.Fatalf("Delay(-3) = %v, want at most %v", d, upper)
	}
}

func TestExponentialNeverNegative(t *testing.T) {
	s := Exponential{}

	for i := 0; i < 1000; i++ {
		if d := s.Delay(i%40, time.Millisecond, 10*time.Second, 3.0); d < 0 {
			t.Fatalf("Delay produced negative duration %v", d)
		}
	}
}

func TestExponentialOverflowGuard(t *testing.T) {
	s := Exponential{}

	// An absurd attempt number must still land at the cap, not wrap around.
	d := s.Delay(1<<20, time.Second, 5*time.Second, 2.0)
	ceiling := time.Duration(float64(5*time.Second) * (1 + JitterSpread))
	if d < 0 || d > ceiling {
		t.Fatalf("Delay(huge) = %v, want within [0, %v]", d, ceiling)
	}
}
