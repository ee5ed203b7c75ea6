package motion

import "math"

// Curve transforms linear animation progress in [0, 1] into eased
// progress. A [Basic] spec applies its Curve to the elapsed-time
// fraction before interpolating toward the target value.
//
// Standard curves: [Linear], [Ease], [EaseIn], [EaseOut], [EaseInOut].
// Use [CubicBezier] to build custom curves matching CSS cubic-bezier().
type Curve func(t float64) float64

// Linear returns progress unchanged (no easing).
func Linear(t float64) float64 { return t }

// Ease is a general-purpose easing curve. Equivalent to CSS ease.
var Ease = CubicBezier(0.25, 0.1, 0.25, 1.0)

// EaseIn starts slowly and accelerates. Equivalent to CSS ease-in.
var EaseIn = CubicBezier(0.4, 0.0, 1.0, 1.0)

// EaseOut starts quickly and decelerates. Equivalent to CSS ease-out.
var EaseOut = CubicBezier(0.0, 0.0, 0.2, 1.0)

// EaseInOut starts and ends slowly. Equivalent to CSS ease-in-out.
var EaseInOut = CubicBezier(0.4, 0.0, 0.2, 1.0)

// CubicBezier returns an easing curve matching CSS cubic-bezier().
// The parameters define the two control points (x1,y1) and (x2,y2);
// the curve runs from (0,0) to (1,1) and is exact at both endpoints.
func CubicBezier(x1, y1, x2, y2 float64) Curve {
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}

		// Solve x(u) = t for u. Newton-Raphson converges quickly for
		// most inputs.
		u := t
		for range 8 {
			x := bezierAxis(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				return bezierAxis(y1, y2, clampUnit(u))
			}
			dx := bezierAxisDerivative(x1, x2, u)
			if math.Abs(dx) < 1e-7 {
				break
			}
			u -= x / dx
		}

		// Bisection fallback guarantees a stable solution in [0,1].
		lo, hi := 0.0, 1.0
		u = clampUnit(u)
		for range 12 {
			x := bezierAxis(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				break
			}
			if x > 0 {
				hi = u
			} else {
				lo = u
			}
			u = (lo + hi) * 0.5
		}

		return bezierAxis(y1, y2, u)
	}
}

// bezierAxis evaluates one axis of the cubic bezier whose outer control
// points are fixed at 0 and 1.
func bezierAxis(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*t*a + 3*inv*t*t*b + t*t*t
}

func bezierAxisDerivative(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*a + 6*inv*t*(b-a) + 3*t*t*(1-b)
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
