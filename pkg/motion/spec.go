package motion

import (
	"fmt"
	"math"
	"time"
)

// Kind identifies an animation spec variant.
type Kind int

const (
	// KindBasic is a time-bound animation driven by an easing curve.
	KindBasic Kind = iota
	// KindSpring is a damped harmonic oscillator toward a target value.
	KindSpring
	// KindDecay is friction-only motion from an initial velocity.
	KindDecay
)

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindBasic:
		return "basic"
	case KindSpring:
		return "spring"
	case KindDecay:
		return "decay"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Defaults for [Spring] parameters when a caller has no opinion. The
// resulting spring settles in roughly half a second with a slight
// overshoot.
const (
	DefaultSpringBounciness = 4.0
	DefaultSpringSpeed      = 12.0
)

// Spec describes how an animation advances its property each frame.
// Specs are immutable values; the three variants are [Basic], [Spring]
// and [Decay]. The set of variants is closed.
type Spec interface {
	// Kind reports the spec variant.
	Kind() Kind

	// Validate reports whether the spec's parameters are within their
	// documented ranges. The scheduler validates at registration time;
	// config layers can call it earlier to fail fast.
	Validate() error
	step(tr *track, elapsed, dt time.Duration, threshold float64) (done bool)
	initialVelocity() float64
}

// Basic animates toward To over a fixed Duration, shaping progress with
// Curve. A nil Curve means [Linear]. The final value written on
// completion is exactly To.
type Basic struct {
	To       float64
	Duration time.Duration
	Curve    Curve
}

// Kind returns KindBasic.
func (Basic) Kind() Kind { return KindBasic }

func (b Basic) Validate() error {
	if b.Duration <= 0 {
		return fmt.Errorf("basic: duration must be positive, got %v", b.Duration)
	}
	if !isFinite(b.To) {
		return fmt.Errorf("basic: target value must be finite, got %v", b.To)
	}
	return nil
}

func (Basic) initialVelocity() float64 { return 0 }

// Spring animates toward To with damped harmonic motion. Bounciness in
// [0, 20] controls overshoot (0 is critically damped); Speed in (0, 20]
// controls how fast the spring settles. The zero value is not a valid
// spec: pick a Speed, or use [DefaultSpringBounciness] and
// [DefaultSpringSpeed].
//
// A spring terminates when both its distance to To and its velocity stay
// below the property threshold for two consecutive ticks.
type Spring struct {
	To              float64
	InitialVelocity float64
	Bounciness      float64
	Speed           float64
}

// Kind returns KindSpring.
func (Spring) Kind() Kind { return KindSpring }

func (s Spring) Validate() error {
	if !isFinite(s.To) || !isFinite(s.InitialVelocity) {
		return fmt.Errorf("spring: target and velocity must be finite")
	}
	if s.Bounciness < 0 || s.Bounciness > 20 {
		return fmt.Errorf("spring: bounciness must be in [0, 20], got %v", s.Bounciness)
	}
	if s.Speed <= 0 || s.Speed > 20 {
		return fmt.Errorf("spring: speed must be in (0, 20], got %v", s.Speed)
	}
	return nil
}

func (s Spring) initialVelocity() float64 { return s.InitialVelocity }

// Decay animates with friction only: each frame the velocity decays by
// Damping (per 60 Hz reference frame, so 0.95 loses 5% of velocity per
// frame at 60 fps) and the value advances by velocity * dt. Terminates
// when |velocity| drops below the property threshold.
type Decay struct {
	InitialVelocity float64
	Damping         float64
}

// Kind returns KindDecay.
func (Decay) Kind() Kind { return KindDecay }

func (d Decay) Validate() error {
	if !isFinite(d.InitialVelocity) {
		return fmt.Errorf("decay: velocity must be finite, got %v", d.InitialVelocity)
	}
	if d.Damping <= 0 || d.Damping >= 1 {
		return fmt.Errorf("decay: damping must be in (0, 1), got %v", d.Damping)
	}
	return nil
}

func (d Decay) initialVelocity() float64 { return d.InitialVelocity }

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
