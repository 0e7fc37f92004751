package star

import (
	"fmt"
	"time"

	"github.com/niloxx/davil/internal/timeutil"
)

// Animation defaults. The step count derives from an explicit frame budget
// rather than timing a probe frame, so transitions behave the same on any
// rendering hardware.
const (
	DefaultFrameInterval = 40 * time.Millisecond
	DefaultMaxAnimation  = 2 * time.Second
)

// Animator replays the transition between two complete layouts against a
// frame sink. x moves linearly in step/total fraction; y follows the line
// equation fitted through each point's two endpoints. The run is blocking
// and single-goroutine: every frame is pushed before the next is computed,
// and the final frame always force-writes the exact target layout.
type Animator struct {
	frameInterval time.Duration
	maxDuration   time.Duration
	clock         timeutil.Clock
}

// NewAnimator creates an animator with the given frame budget. Non-positive
// arguments fall back to the defaults.
func NewAnimator(frameInterval, maxDuration time.Duration) *Animator {
	return NewAnimatorWithClock(frameInterval, maxDuration, timeutil.RealClock{})
}

// NewAnimatorWithClock creates an animator ticking against the given clock.
func NewAnimatorWithClock(frameInterval, maxDuration time.Duration, clock timeutil.Clock) *Animator {
	if frameInterval <= 0 {
		frameInterval = DefaultFrameInterval
	}
	if maxDuration < 0 {
		maxDuration = DefaultMaxAnimation
	}
	return &Animator{frameInterval: frameInterval, maxDuration: maxDuration, clock: clock}
}

// Steps returns the number of interpolation frames: the total animation time
// divided by the per-frame budget, floored, never negative.
func (a *Animator) Steps() int {
	steps := int(a.maxDuration / a.frameInterval)
	if steps < 0 {
		return 0
	}
	return steps
}

// Animate pushes the interpolated frames from `from` to `to`, sleeping one
// frame interval between pushes, and ends with the exact target layout
// regardless of rounding drift. A nil `from` or a zero step count skips
// straight to the target. The push callback receives freshly allocated
// slices each frame, so sinks may retain them.
func (a *Animator) Animate(from, to *Layout, push func(x, y []float64)) error {
	if to == nil {
		return fmt.Errorf("animation target layout is nil")
	}
	total := a.Steps()
	if from != nil && from.Len() != to.Len() {
		return fmt.Errorf("layout size mismatch: %d points animating to %d", from.Len(), to.Len())
	}

	if from != nil && total > 0 {
		lines := make([]LineEquation, to.Len())
		for i := range lines {
			lines[i] = SolveLine(from.X[i], from.Y[i], to.X[i], to.Y[i])
		}

		for step := 0; step < total; step++ {
			fraction := float64(step) / float64(total)
			x := make([]float64, to.Len())
			y := make([]float64, to.Len())
			for i := range x {
				x[i] = from.X[i] + fraction*(to.X[i]-from.X[i])
				if lines[i].Vertical {
					// Degenerate zero x-delta: x stays put, y
					// interpolates directly.
					y[i] = from.Y[i] + fraction*(to.Y[i]-from.Y[i])
				} else {
					y[i] = lines[i].YAt(x[i])
				}
			}
			push(x, y)
			a.clock.Sleep(a.frameInterval)
		}
	}

	final := to.Clone()
	push(final.X, final.Y)
	return nil
}
