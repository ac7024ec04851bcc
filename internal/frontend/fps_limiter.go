package frontend

import (
	"time"
)

// FPSLimiter paces the loop to the frame rate a core reports.
type FPSLimiter struct {
	target time.Duration
	next   time.Time
}

// NewFPSLimiter creates a limiter for fps frames per second. A
// non-positive rate disables limiting.
func NewFPSLimiter(fps float64) *FPSLimiter {
	f := &FPSLimiter{}
	if fps > 0 {
		f.target = time.Duration(float64(time.Second) / fps)
	}
	return f
}

// Target is the frame period, zero when unlimited.
func (f *FPSLimiter) Target() time.Duration { return f.target }

// Wait blocks until the next frame is due.
// Sleeps most of the way, then spins for the last 200µs.
func (f *FPSLimiter) Wait() {
	if f.target <= 0 {
		return
	}

	if f.next.IsZero() {
		f.next = time.Now().Add(f.target)
	} else {
		f.next = f.next.Add(f.target)
	}

	for {
		remaining := time.Until(f.next)
		if remaining <= 0 {
			break
		}
		if remaining > 200*time.Microsecond {
			time.Sleep(remaining - 200*time.Microsecond)
		}
	}

	// resync after a hitch instead of racing to catch up
	if late := -time.Until(f.next); late > f.target {
		f.next = time.Now().Add(f.target)
	}
}
