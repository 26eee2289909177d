package pathedit

import "slices"

type SmoothOptions struct {
	// Applied to every computed coordinate. The leading MoveTo is copied
	// from the input and not snapped.
	Snap Snapper
}

// Smooth replaces every sub-path of p with a Catmull-Rom spline through its
// anchors, expressed as cubic Béziers. See [SmoothOpt].
func Smooth(p Path) Path {
	return SmoothOpt(p, SmoothOptions{})
}

// SmoothOpt smooths every sub-path of p independently.
//
// Sub-paths with fewer than three anchors, or that don't start with MoveTo,
// are returned unchanged. Otherwise the result starts with the sub-path's
// original MoveTo, followed by one CubicTo per remaining anchor, with fresh
// IDs.
//
// A sub-path whose last anchor coincides with its first, or that ends in
// ClosePath, is smoothed as a closed loop, so that the tangent is continuous
// across the start point as well. Open sub-paths are extended at both ends
// by extrapolated ghost points. Smoothing a closed sub-path never emits a
// ClosePath; a sub-path that had one ends in an explicit curve or line back
// to its start instead.
func SmoothOpt(p Path, opts SmoothOptions) Path {
	return p.eachSubPath(func(sub Path) Path {
		return smoothSubPath(sub, opts)
	})
}

func smoothSubPath(sub Path, opts SmoothOptions) Path {
	if len(sub) == 0 || sub[0].Kind != MoveToKind || anchorCount(sub) < 3 {
		return sub
	}
	if slices.ContainsFunc(sub, func(cmd Command) bool { return !cmd.Valid() }) {
		return sub
	}

	pts := sub.Anchors()
	hadClose := sub.IsClosed()
	if hadClose {
		pts = append(pts, pts[0])
	}
	closed := pts[0].Near(pts[len(pts)-1], Epsilon)

	var out Path
	out = append(out, sub[0])
	emit := func(p0, p1, p2, p3 Point) {
		c1, c2 := catmullRom(p0, p1, p2, p3)
		out = append(out, CubicTo(c1, c2, p2).snap(opts.Snap))
	}

	if closed {
		ring := pts[:len(pts)-1]
		// A start point that was re-emitted as the end point must not be
		// counted twice, or the wrap-around ghost would coincide with the
		// start.
		for len(ring) > 1 && ring[len(ring)-1].Near(ring[0], Epsilon) {
			ring = ring[:len(ring)-1]
		}
		n := len(ring)
		if n < 2 {
			return sub
		}
		at := func(i int) Point {
			return ring[((i%n)+n)%n]
		}
		for i := 1; i <= n; i++ {
			emit(at(i-2), at(i-1), at(i), at(i+1))
		}
	} else {
		n := len(pts)
		at := func(i int) Point {
			switch {
			case i < 0:
				return pts[0].Translate(pts[0].Sub(pts[1]))
			case i >= n:
				return pts[n-1].Translate(pts[n-1].Sub(pts[n-2]))
			default:
				return pts[i]
			}
		}
		for i := 1; i < n; i++ {
			emit(at(i-2), at(i-1), at(i), at(i+1))
		}
	}

	if hadClose {
		if start, last := out[0].Pt, out[len(out)-1].Pt; !last.Near(start, Epsilon) {
			out.LineTo(start)
		}
	}
	return out
}

// catmullRom returns the control points of the Bézier segment from p1 to p2
// of the uniform Catmull-Rom spline through p0, p1, p2, p3.
func catmullRom(p0, p1, p2, p3 Point) (c1, c2 Point) {
	c1 = p1.Translate(p2.Sub(p0).Div(6))
	c2 = p2.Translate(p3.Sub(p1).Div(6).Negate())
	return c1, c2
}
