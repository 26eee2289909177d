package pathedit

import (
	"math"
)

// Affine is a 2D affine transform with coefficients (a, b, c, d, e, f). It
// maps (x, y) to (a·x + c·y + e, b·x + d·y + f), see [Point.Transform].
//
// The normalizer only ever moves control points by rigid motions about an
// anchor, so the constructors are limited to those.
type Affine struct {
	N0, N1, N2, N3, N4, N5 float64
}

// Rotate returns a rotation of th radians about the origin. A positive angle
// turns the positive X axis toward positive Y, which is clockwise on screen.
func Rotate(th float64) Affine {
	sin, cos := math.Sincos(th)
	return Affine{cos, sin, -sin, cos, 0, 0}
}

// RotateAbout returns a rotation of th radians about center.
func RotateAbout(th float64, center Point) Affine {
	aff := Rotate(th)
	moved := center.Transform(aff)
	aff.N4 = center.X - moved.X
	aff.N5 = center.Y - moved.Y
	return aff
}

// ReflectAbout returns the point reflection through center. It equals
// RotateAbout(π, center) without the rounding error of sin(π).
func ReflectAbout(center Point) Affine {
	return Affine{-1, 0, 0, -1, 2 * center.X, 2 * center.Y}
}
