package motion

import "image/color"

// Value maps the scheduler's float64 track onto an arbitrary property
// type. Animate a unit track (0 to 1) and let Lerp produce the typed
// value; springs may push t outside [0, 1], so Lerp implementations
// should either extrapolate or clamp as the type demands.
type Value[T any] struct {
	// From is the value at t = 0.
	From T
	// To is the value at t = 1.
	To T
	// Lerp interpolates between From and To at progress t.
	Lerp func(a, b T, t float64) T
}

// At returns the interpolated value at t.
func (v *Value[T]) At(t float64) T {
	if v.Lerp == nil {
		return v.To
	}
	return v.Lerp(v.From, v.To, t)
}

// Bind returns an Accessor animating a private unit track and pushing
// each typed value into set. Register the result with a [Basic] or
// [Spring] spec whose target is 1.
func (v *Value[T]) Bind(set func(T)) Accessor {
	a := &valueAccessor[T]{v: v, set: set}
	return a
}

type valueAccessor[T any] struct {
	v   *Value[T]
	t   float64
	set func(T)
}

func (a *valueAccessor[T]) Read() (float64, error) { return a.t, nil }

func (a *valueAccessor[T]) Write(t float64) error {
	a.t = t
	a.set(a.v.At(t))
	return nil
}

// LerpFloat64 linearly interpolates between two float64 values.
func LerpFloat64(a, b float64, t float64) float64 {
	return a + (b-a)*t
}

// LerpColor interpolates each RGBA channel, clamping so overshooting
// springs stay within the colorspace.
func LerpColor(a, b color.RGBA, t float64) color.RGBA {
	return color.RGBA{
		R: lerpChannel(a.R, b.R, t),
		G: lerpChannel(a.G, b.G, t),
		B: lerpChannel(a.B, b.B, t),
		A: lerpChannel(a.A, b.A, t),
	}
}

func lerpChannel(a, b uint8, t float64) uint8 {
	v := LerpFloat64(float64(a), float64(b), t)
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return uint8(v + 0.5)
}

// Float64Value creates a value track between two float64 endpoints.
func Float64Value(from, to float64) *Value[float64] {
	return &Value[float64]{From: from, To: to, Lerp: LerpFloat64}
}

// ColorValue creates a value track between two colors.
func ColorValue(from, to color.RGBA) *Value[color.RGBA] {
	return &Value[color.RGBA]{From: from, To: to, Lerp: LerpColor}
}
