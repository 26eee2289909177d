package pathedit

import (
	"math"
	"slices"
)

// FitCubic fits a single cubic Bézier to an ordered run of points. The curve
// starts at the run's first point and ends at its last; only the two control
// points are returned.
//
// The end tangents are estimated from the first and last pairs of distinct
// points, and both control points are placed at a third of the chord length
// along them. The fit is accepted if no input point lies farther than
// tolerance from the curve and no point of the curve lies farther than
// tolerance from the input polyline.
//
// FitCubic reports false if the run has fewer than three points, if its ends
// coincide, if no tangent can be estimated, or if the error exceeds
// tolerance.
func FitCubic(points []Point, tolerance float64) (c1, c2 Point, ok bool) {
	if len(points) < 3 {
		return Point{}, Point{}, false
	}
	if slices.ContainsFunc(points, Point.IsNaN) {
		return Point{}, Point{}, false
	}
	p0 := points[0]
	p3 := points[len(points)-1]
	chord := p0.Distance(p3)
	if chord < Epsilon {
		return Point{}, Point{}, false
	}
	t0, ok0 := startTangent(points)
	t1, ok1 := endTangent(points)
	if !ok0 || !ok1 {
		return Point{}, Point{}, false
	}

	d := chord / 3.0
	c1 = p0.Translate(t0.Mul(d))
	c2 = p3.Translate(t1.Mul(d))
	if err := fitError(CubicBez{p0, c1, c2, p3}, points); !(err <= tolerance) {
		return Point{}, Point{}, false
	}
	return c1, c2, true
}

// startTangent returns the unit direction from the first point to the next
// distinct one.
func startTangent(points []Point) (Vec2, bool) {
	p0 := points[0]
	for _, pt := range points[1:] {
		if v, ok := pt.Sub(p0).Unit(); ok {
			return v, true
		}
	}
	return Vec2{}, false
}

// endTangent returns the unit direction from the last point to the previous
// distinct one. It points back into the run, like the incoming control point.
func endTangent(points []Point) (Vec2, bool) {
	pn := points[len(points)-1]
	for i := len(points) - 2; i >= 0; i-- {
		if v, ok := points[i].Sub(pn).Unit(); ok {
			return v, true
		}
	}
	return Vec2{}, false
}

// fitError returns the symmetric maximum distance between c and the polyline
// through points.
//
// The distance from points to c is measured against a sampled c and padded
// by [CubicBez.flatness], so it never underestimates. The distance from c to
// points is measured at the samples, and every local maximum is refined
// between its neighboring samples.
func fitError(c CubicBez, points []Point) float64 {
	n := max(32, 8*(len(points)-1))
	samples := slices.Collect(c.Samples(n))

	var worst float64
	pad := c.flatness(n)
	for _, pt := range points {
		worst = max(worst, polylineDistance(samples, pt)+pad)
	}

	dist := make([]float64, len(samples))
	for i, pt := range samples {
		dist[i] = polylineDistance(points, pt)
		worst = max(worst, dist[i])
	}
	for i := 1; i < n; i++ {
		if dist[i] > 0 && dist[i] >= dist[i-1] && dist[i] >= dist[i+1] {
			lo := float64(i-1) / float64(n)
			hi := float64(i+1) / float64(n)
			worst = max(worst, peakDistance(c, points, lo, hi))
		}
	}
	return worst
}

// peakDistance returns the largest distance between c(t) and the polyline
// through points for t in [lo, hi], which must contain a single peak.
func peakDistance(c CubicBez, points []Point, lo, hi float64) float64 {
	f := func(t float64) float64 {
		return polylineDistance(points, c.Eval(t))
	}
	for range 40 {
		m1 := lo + (hi-lo)/3
		m2 := hi - (hi-lo)/3
		if f(m1) < f(m2) {
			lo = m1
		} else {
			hi = m2
		}
	}
	return f((lo + hi) / 2)
}

// polylineDistance returns the distance from pt to the nearest segment of
// the polyline through pts.
func polylineDistance(pts []Point, pt Point) float64 {
	switch len(pts) {
	case 0:
		return math.Inf(1)
	case 1:
		return pts[0].Distance(pt)
	}
	best := math.Inf(1)
	for i := 1; i < len(pts); i++ {
		d, _ := Line{pts[i-1], pts[i]}.Nearest(pt)
		best = min(best, d)
	}
	return math.Sqrt(best)
}
