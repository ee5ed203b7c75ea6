package motion

import (
	"math"
	"testing"
	"time"
)

func TestSpringCoefficientsMapping(t *testing.T) {
	// Higher bounciness lowers the damping ratio.
	zLow, _ := springCoefficients(0, 12)
	zHigh, _ := springCoefficients(20, 12)
	if zLow != 1 {
		t.Errorf("bounciness 0 damping ratio = %v, want critically damped (1)", zLow)
	}
	if zHigh >= zLow {
		t.Errorf("damping ratio did not fall with bounciness: %v -> %v", zLow, zHigh)
	}
	if zHigh <= 0 {
		t.Errorf("damping ratio = %v at max bounciness, must stay positive", zHigh)
	}

	// Higher speed raises the frequency.
	_, wSlow := springCoefficients(4, 1)
	_, wFast := springCoefficients(4, 20)
	if wFast <= wSlow {
		t.Errorf("frequency did not rise with speed: %v -> %v", wSlow, wFast)
	}
	if wSlow <= 0 {
		t.Errorf("frequency = %v at min speed, must stay positive", wSlow)
	}
}

func TestBasicStepSnapsAtDuration(t *testing.T) {
	b := Basic{To: 10, Duration: 100 * time.Millisecond, Curve: EaseInOut}
	tr := &track{from: 2, value: 2}

	if done := b.step(tr, 99*time.Millisecond, 16*time.Millisecond, DefaultThreshold); done {
		t.Fatal("terminal before duration elapsed")
	}
	if done := b.step(tr, 100*time.Millisecond, 16*time.Millisecond, DefaultThreshold); !done {
		t.Fatal("not terminal at duration")
	}
	if tr.value != 10 {
		t.Errorf("terminal value = %v, want exactly 10", tr.value)
	}
	if tr.velocity != 0 {
		t.Errorf("terminal velocity = %v, want 0", tr.velocity)
	}
}

func TestBasicStepInterpolatesFromCapturedStart(t *testing.T) {
	b := Basic{To: 3, Duration: time.Second, Curve: Linear}
	tr := &track{from: 1, value: 1}

	b.step(tr, 500*time.Millisecond, 16*time.Millisecond, DefaultThreshold)
	if tr.value != 2 {
		t.Errorf("midpoint value = %v, want 2", tr.value)
	}
}

func TestSpringStepConvergesWithDebounce(t *testing.T) {
	s := Spring{To: 1, Bounciness: DefaultSpringBounciness, Speed: DefaultSpringSpeed}
	tr := &track{}

	const dt = 16 * time.Millisecond
	ticks := 0
	done := false
	for ; ticks < 2000; ticks++ {
		if s.step(tr, time.Duration(ticks)*dt, dt, DefaultThreshold) {
			done = true
			break
		}
	}
	if !done {
		t.Fatal("spring never converged")
	}
	if tr.value != 1 {
		t.Errorf("converged value = %v, want exactly 1", tr.value)
	}
	// A half-second spring should not take multiple seconds of frames,
	// and debounce means it cannot finish on the first calm tick.
	if ticks < 2 || ticks > 600 {
		t.Errorf("converged after %d ticks, outside plausible range", ticks)
	}
}

func TestSpringStepDebounceRequiresTwoCalmTicks(t *testing.T) {
	s := Spring{To: 0, Bounciness: 0, Speed: 12}
	// Start already inside the threshold window: still needs two ticks.
	tr := &track{value: 1e-5, velocity: 0}

	if done := s.step(tr, 0, 16*time.Millisecond, DefaultThreshold); done {
		t.Fatal("terminated on first calm tick")
	}
	if done := s.step(tr, 16*time.Millisecond, 16*time.Millisecond, DefaultThreshold); !done {
		t.Fatal("second consecutive calm tick should terminate")
	}
}

func TestSpringStepOvershootsWhenBouncy(t *testing.T) {
	s := Spring{To: 1, Bounciness: 16, Speed: 12}
	tr := &track{}

	const dt = 16 * time.Millisecond
	peak := 0.0
	for i := range 2000 {
		if s.step(tr, time.Duration(i)*dt, dt, DefaultThreshold) {
			break
		}
		if tr.value > peak {
			peak = tr.value
		}
	}
	if peak <= 1 {
		t.Errorf("bouncy spring peaked at %v, expected overshoot past 1", peak)
	}
}

func TestDecayStepTerminatesOnVelocity(t *testing.T) {
	d := Decay{InitialVelocity: 800, Damping: 0.95}
	tr := &track{velocity: d.InitialVelocity}

	const dt = 16 * time.Millisecond
	done := false
	ticks := 0
	for ; ticks < 5000; ticks++ {
		if d.step(tr, time.Duration(ticks)*dt, dt, DefaultThreshold) {
			done = true
			break
		}
	}
	if !done {
		t.Fatal("decay never terminated")
	}
	if math.Abs(tr.velocity) >= DefaultThreshold {
		t.Errorf("terminal velocity = %v, want below threshold", tr.velocity)
	}
	if tr.value <= 0 {
		t.Errorf("decay travelled %v, want forward motion", tr.value)
	}
}

func TestDecayStepIsStableForLargeDeltas(t *testing.T) {
	d := Decay{InitialVelocity: 800, Damping: 0.95}
	tr := &track{velocity: d.InitialVelocity}

	// A one-second hitch must not blow up the integration.
	d.step(tr, 0, time.Second, DefaultThreshold)
	if !isFinite(tr.value) || !isFinite(tr.velocity) {
		t.Fatalf("decay diverged: value=%v velocity=%v", tr.value, tr.velocity)
	}
	if math.Abs(tr.velocity) >= 800 {
		t.Errorf("velocity did not decay over a long delta: %v", tr.velocity)
	}
}

func TestSpringStepIsStableForLargeDeltas(t *testing.T) {
	s := Spring{To: 1, Bounciness: 20, Speed: 20}
	tr := &track{}

	// Fixed-slice integration keeps a dropped-frame delta stable.
	for i := range 20 {
		s.step(tr, time.Duration(i)*time.Second, time.Second, DefaultThreshold)
		if !isFinite(tr.value) || !isFinite(tr.velocity) {
			t.Fatalf("spring diverged at step %d: value=%v velocity=%v", i, tr.value, tr.velocity)
		}
	}
	if math.Abs(tr.value-1) > 0.5 {
		t.Errorf("spring far from target after 20s: %v", tr.value)
	}
}
