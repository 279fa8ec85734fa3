// Package physics provides the small geometry and easing helpers used by the
// simulation.
package physics

import "math"

// Clamp limits v to the range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// WithinReach reports whether the point (px, py) lies strictly inside the
// axis-aligned square of half-size reach centred on (cx, cy).
func WithinReach(px, py, cx, cy, reach float64) bool {
	return math.Abs(px-cx) < reach && math.Abs(py-cy) < reach
}

// Approach moves current toward target, closing the given fraction of the gap
// once per reference frame. frames is elapsed time measured in reference
// frames, so the result is independent of the actual frame rate.
func Approach(current, target, fraction, frames float64) float64 {
	if frames <= 0 || fraction <= 0 {
		return current
	}
	if fraction >= 1 {
		return target
	}
	keep := math.Pow(1-fraction, frames)
	return target + (current-target)*keep
}

// RandRange returns a value in [lo, hi) using the supplied uniform sample
// u in [0, 1).
func RandRange(u, lo, hi float64) float64 {
	return lo + u*(hi-lo)
}
