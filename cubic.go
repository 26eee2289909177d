package pathedit

import (
	"iter"
)

// CubicBez is a cubic Bézier segment from P0 to P3 with control points P1
// and P2.
type CubicBez struct {
	P0 Point
	P1 Point
	P2 Point
	P3 Point
}

func (cb CubicBez) Eval(t float64) Point {
	mt := 1.0 - t
	a := Vec2(cb.P0).Mul(mt * mt * mt)
	b := Vec2(cb.P1).Mul(mt * mt * 3.0)
	c := Vec2(cb.P2).Mul(mt * 3.0)
	d := Vec2(cb.P3)
	v := a.Add(b.Add(c.Add(d.Mul(t)).Mul(t)).Mul(t))
	return Point(v)
}

// Samples returns n+1 evenly spaced (in t) points along the curve, starting
// with P0 and ending with P3. n is clamped to at least 1.
func (c CubicBez) Samples(n int) iter.Seq[Point] {
	n = max(n, 1)
	return func(yield func(Point) bool) {
		if !yield(c.P0) {
			return
		}
		for i := 1; i < n; i++ {
			if !yield(c.Eval(float64(i) / float64(n))) {
				return
			}
		}
		yield(c.P3)
	}
}

// flatness bounds the distance between c and the polyline through
// c.Samples(n). Between samples h = 1/n apart in t, the curve deviates from
// the chord by at most h²/8 · max|B''|, and |B''| is at most six times the
// larger second difference of the control points.
func (c CubicBez) flatness(n int) float64 {
	d0 := c.P0.Sub(c.P1).Add(c.P2.Sub(c.P1)).Hypot()
	d1 := c.P1.Sub(c.P2).Add(c.P3.Sub(c.P2)).Hypot()
	h := 1 / float64(max(n, 1))
	return 0.75 * max(d0, d1) * h * h
}
