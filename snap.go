package pathedit

import "math"

// Snapper quantizes a single coordinate, typically to a caller-defined grid.
// Operations that accept a Snapper apply it to every coordinate they
// compute. A nil Snapper leaves coordinates unchanged.
type Snapper func(float64) float64

// GridSnap returns a Snapper that rounds to the nearest multiple of step.
// A step that isn't positive returns nil, i.e. no snapping.
func GridSnap(step float64) Snapper {
	if !(step > 0) || math.IsInf(step, 0) {
		return nil
	}
	return func(v float64) float64 {
		return math.Round(v/step) * step
	}
}
