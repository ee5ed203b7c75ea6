package motion

import (
	"math"
	"time"
)

// track holds the mutable numeric state of one running animation. All
// interpolation runs in float64 regardless of the property type the
// caller ultimately maps values onto.
type track struct {
	from     float64
	value    float64
	velocity float64
	calm     int // consecutive converged spring ticks
}

// referenceFrame is the frame period decay damping is expressed in:
// Damping is the velocity retained per 60 Hz frame.
const referenceFrame = time.Second / 60

// springSlice is the fixed integration step for spring physics. Frame
// deltas are split into slices no longer than this so a dropped frame
// cannot destabilize the integration.
const springSlice = 4 * time.Millisecond

func (b Basic) step(tr *track, elapsed, dt time.Duration, threshold float64) bool {
	if elapsed >= b.Duration {
		// Snap to the target so completion never carries rounding drift.
		tr.value = b.To
		tr.velocity = 0
		return true
	}
	progress := float64(elapsed) / float64(b.Duration)
	curve := b.Curve
	if curve == nil {
		curve = Linear
	}
	prev := tr.value
	tr.value = tr.from + curve(progress)*(b.To-tr.from)
	if dt > 0 {
		tr.velocity = (tr.value - prev) / dt.Seconds()
	}
	return false
}

func (s Spring) step(tr *track, elapsed, dt time.Duration, threshold float64) bool {
	zeta, omega := springCoefficients(s.Bounciness, s.Speed)

	// Semi-implicit Euler in fixed slices: update velocity from the
	// current position, then position from the new velocity.
	for remaining := dt; remaining > 0; remaining -= springSlice {
		h := remaining
		if h > springSlice {
			h = springSlice
		}
		hs := h.Seconds()
		accel := -omega*omega*(tr.value-s.To) - 2*zeta*omega*tr.velocity
		tr.velocity += accel * hs
		tr.value += tr.velocity * hs
	}

	if math.Abs(s.To-tr.value) < threshold && math.Abs(tr.velocity) < threshold {
		tr.calm++
	} else {
		tr.calm = 0
	}
	// Two consecutive converged ticks, so numerical jitter around the
	// threshold cannot end the spring early.
	if tr.calm >= 2 {
		tr.value = s.To
		tr.velocity = 0
		return true
	}
	return false
}

func (d Decay) step(tr *track, elapsed, dt time.Duration, threshold float64) bool {
	frames := float64(dt) / float64(referenceFrame)
	tr.velocity *= math.Pow(d.Damping, frames)
	tr.value += tr.velocity * dt.Seconds()
	return math.Abs(tr.velocity) < threshold
}

// springCoefficients maps the user-facing bounciness and speed knobs to
// the damping ratio and angular frequency of the oscillator. Higher
// bounciness lowers the damping ratio (more overshoot); higher speed
// raises the frequency (faster settling). Bounciness 0 is critically
// damped.
func springCoefficients(bounciness, speed float64) (zeta, omega float64) {
	zeta = 1 - 0.8*(bounciness/20)
	omega = 2 * math.Pi * (0.5 + 2.5*(speed/20))
	return zeta, omega
}
