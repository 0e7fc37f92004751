package star

import (
	"math"
	"testing"
	"time"

	"github.com/niloxx/davil/internal/timeutil"
)

func testAnimator(frameInterval, maxDuration time.Duration) (*Animator, *timeutil.MockClock) {
	clock := timeutil.NewMockClock(time.Unix(0, 0))
	return NewAnimatorWithClock(frameInterval, maxDuration, clock), clock
}

func frameRecorder() (func(x, y []float64), *[][2][]float64) {
	frames := &[][2][]float64{}
	push := func(x, y []float64) {
		*frames = append(*frames, [2][]float64{x, y})
	}
	return push, frames
}

func TestAnimatorSteps(t *testing.T) {
	a, _ := testAnimator(40*time.Millisecond, 2*time.Second)
	if got := a.Steps(); got != 50 {
		t.Errorf("Steps() = %d, want 50", got)
	}

	// Budget smaller than one frame floors to zero steps.
	a, _ = testAnimator(40*time.Millisecond, 10*time.Millisecond)
	if got := a.Steps(); got != 0 {
		t.Errorf("Steps() = %d, want 0", got)
	}
}

func TestAnimateEndsOnExactTarget(t *testing.T) {
	a, clock := testAnimator(40*time.Millisecond, 400*time.Millisecond)

	from := &Layout{Names: []string{"a", "b"}, X: []float64{0, 1}, Y: []float64{0, -1}}
	to := &Layout{Names: []string{"a", "b"}, X: []float64{3, -2}, Y: []float64{7, 5}}

	push, frames := frameRecorder()
	if err := a.Animate(from, to, push); err != nil {
		t.Fatalf("Animate failed: %v", err)
	}
	if len(*frames) != a.Steps()+1 {
		t.Fatalf("got %d frames, want %d", len(*frames), a.Steps()+1)
	}

	first := (*frames)[0]
	for i := range from.X {
		if first[0][i] != from.X[i] || first[1][i] != from.Y[i] {
			t.Errorf("first frame point %d = (%v, %v), want origin (%v, %v)",
				i, first[0][i], first[1][i], from.X[i], from.Y[i])
		}
	}

	last := (*frames)[len(*frames)-1]
	for i := range to.X {
		if last[0][i] != to.X[i] || last[1][i] != to.Y[i] {
			t.Errorf("final frame point %d = (%v, %v), want exact target (%v, %v)",
				i, last[0][i], last[1][i], to.X[i], to.Y[i])
		}
	}

	// One frame interval slept per interpolation step.
	sleeps := clock.Sleeps()
	if len(sleeps) != a.Steps() {
		t.Errorf("slept %d times, want %d", len(sleeps), a.Steps())
	}
	for _, d := range sleeps {
		if d != 40*time.Millisecond {
			t.Errorf("slept %v, want the 40ms frame interval", d)
		}
	}
}

func TestAnimateIntermediateFramesOnLine(t *testing.T) {
	a, _ := testAnimator(40*time.Millisecond, 320*time.Millisecond)

	from := &Layout{Names: []string{"a"}, X: []float64{1}, Y: []float64{2}}
	to := &Layout{Names: []string{"a"}, X: []float64{5}, Y: []float64{10}}
	eq := SolveLine(1, 2, 5, 10)

	push, frames := frameRecorder()
	if err := a.Animate(from, to, push); err != nil {
		t.Fatalf("Animate failed: %v", err)
	}
	for f, frame := range *frames {
		x, y := frame[0][0], frame[1][0]
		if math.Abs(y-eq.YAt(x)) > 1e-9 {
			t.Errorf("frame %d point off trajectory: (%v, %v)", f, x, y)
		}
	}
}

func TestAnimateVerticalTrajectory(t *testing.T) {
	// x never moves, so the line fit is degenerate and y interpolates
	// directly from (2, 2) to (2, 6).
	a, _ := testAnimator(40*time.Millisecond, 160*time.Millisecond)

	from := &Layout{Names: []string{"a"}, X: []float64{2}, Y: []float64{2}}
	to := &Layout{Names: []string{"a"}, X: []float64{2}, Y: []float64{6}}

	push, frames := frameRecorder()
	if err := a.Animate(from, to, push); err != nil {
		t.Fatalf("Animate failed: %v", err)
	}
	prev := math.Inf(-1)
	for f, frame := range *frames {
		if frame[0][0] != 2 {
			t.Errorf("frame %d moved x to %v", f, frame[0][0])
		}
		if frame[1][0] < prev {
			t.Errorf("frame %d y went backwards: %v after %v", f, frame[1][0], prev)
		}
		prev = frame[1][0]
	}
	if got := (*frames)[len(*frames)-1][1][0]; got != 6 {
		t.Errorf("final y = %v, want 6", got)
	}
}

func TestAnimateNilFromSkipsToTarget(t *testing.T) {
	a, clock := testAnimator(40*time.Millisecond, 400*time.Millisecond)
	to := &Layout{Names: []string{"a"}, X: []float64{1}, Y: []float64{1}}

	push, frames := frameRecorder()
	if err := a.Animate(nil, to, push); err != nil {
		t.Fatalf("Animate failed: %v", err)
	}
	if len(*frames) != 1 {
		t.Errorf("got %d frames, want the bare target frame", len(*frames))
	}
	if len(clock.Sleeps()) != 0 {
		t.Errorf("snapping to the target slept %d times", len(clock.Sleeps()))
	}
}

func TestAnimateSizeMismatch(t *testing.T) {
	a, _ := testAnimator(40*time.Millisecond, 400*time.Millisecond)
	from := &Layout{Names: []string{"a"}, X: []float64{0}, Y: []float64{0}}
	to := &Layout{Names: []string{"a", "b"}, X: []float64{1, 2}, Y: []float64{1, 2}}

	push, _ := frameRecorder()
	if err := a.Animate(from, to, push); err == nil {
		t.Fatal("expected error for mismatched layout sizes")
	}
}

func TestNewAnimatorDefaults(t *testing.T) {
	a := NewAnimator(0, -1)
	if a.frameInterval != DefaultFrameInterval {
		t.Errorf("frame interval = %v, want default %v", a.frameInterval, DefaultFrameInterval)
	}
	if a.maxDuration != DefaultMaxAnimation {
		t.Errorf("max duration = %v, want default %v", a.maxDuration, DefaultMaxAnimation)
	}
}
