package pathedit

import (
	"math"
	"slices"
)

// Simplification of paths.
//
// A sub-path is flattened into a polyline, points closer together than a
// minimum spacing are dropped, and the remainder is reduced with the
// Douglas-Peucker algorithm. Optionally, runs of the reduced polyline are
// refitted as cubic Béziers.
//
// Curves are never simplified directly; they are sampled first. This makes
// the tolerance the only notion of accuracy, regardless of input.

const (
	// DefaultMinSpacing is used when SimplifyOptions.MinSpacing isn't
	// positive.
	DefaultMinSpacing = 0.5
	// DefaultFlattenSteps is used when SimplifyOptions.FlattenSteps isn't
	// positive.
	DefaultFlattenSteps = 16
	// DefaultMaxLookahead is used when SimplifyOptions.MaxLookahead isn't
	// positive.
	DefaultMaxLookahead = 8
)

type SimplifyOptions struct {
	// Maximum perpendicular distance between the retained points of the
	// original polyline and the simplified one. Negative values are treated
	// as zero.
	Tolerance float64
	// Points closer than this to the previously kept point are dropped before
	// reduction. The first and last point are always kept.
	MinSpacing float64
	// Number of line segments each CubicTo is sampled into.
	FlattenSteps int
	// Refit reduced runs as cubic Béziers where that stays within Tolerance.
	// A fitted curve replaces two or more reduced segments, so the output
	// never has more commands than line output at the same tolerance. Only
	// line output is guaranteed to shrink as Tolerance grows.
	FitCurves bool
	// Maximum number of reduced segments a single fitted curve may replace.
	MaxLookahead int
	// Applied to every output coordinate.
	Snap Snapper
}

var DefaultSimplifyOptions = SimplifyOptions{
	Tolerance:    1,
	MinSpacing:   DefaultMinSpacing,
	FlattenSteps: DefaultFlattenSteps,
	MaxLookahead: DefaultMaxLookahead,
}

// Simplify reduces every sub-path of p to the smallest set of line
// segments that stays within tolerance of it, using
// [DefaultSimplifyOptions] otherwise. See [SimplifyOpt].
func Simplify(p Path, tolerance, minSpacing float64) Path {
	opts := DefaultSimplifyOptions
	opts.Tolerance = tolerance
	opts.MinSpacing = minSpacing
	return SimplifyOpt(p, opts)
}

// SimplifyOpt simplifies every sub-path of p independently.
//
// Sub-paths with fewer than two anchors, or that don't start with MoveTo,
// are returned unchanged. Every other sub-path is replaced by a MoveTo at
// its first point followed by LineTo (and, with FitCurves, CubicTo)
// commands. A trailing ClosePath is kept if and only if the sub-path had
// one. All returned commands have fresh IDs.
func SimplifyOpt(p Path, opts SimplifyOptions) Path {
	opts = opts.withDefaults()
	return p.eachSubPath(func(sub Path) Path {
		return simplifySubPath(sub, opts)
	})
}

func (opts SimplifyOptions) withDefaults() SimplifyOptions {
	if !(opts.Tolerance > 0) {
		opts.Tolerance = 0
	}
	if !(opts.MinSpacing > 0) {
		opts.MinSpacing = DefaultMinSpacing
	}
	if opts.FlattenSteps <= 0 {
		opts.FlattenSteps = DefaultFlattenSteps
	}
	if opts.MaxLookahead <= 0 {
		opts.MaxLookahead = DefaultMaxLookahead
	}
	return opts
}

func simplifySubPath(sub Path, opts SimplifyOptions) Path {
	if len(sub) == 0 || sub[0].Kind != MoveToKind || anchorCount(sub) < 2 {
		return sub
	}
	if slices.ContainsFunc(sub, func(cmd Command) bool { return !cmd.Valid() }) {
		return sub
	}

	pts := FilterSpacing(Flatten(sub, opts.FlattenSteps), opts.MinSpacing)
	idx := reduce(pts, opts.Tolerance)
	closed := sub.IsClosed()

	var out Path
	out.MoveTo(pts[idx[0]])
	if opts.FitCurves {
		for i := 0; i < len(idx)-1; {
			k := fitWindow(pts, idx[i:], opts)
			if k > 0 {
				c1, c2, _ := FitCubic(pts[idx[i]:idx[i+k]+1], opts.Tolerance)
				out.CubicTo(c1, c2, pts[idx[i+k]])
				i += k
			} else {
				out.LineTo(pts[idx[i+1]])
				i++
			}
		}
	} else {
		for _, j := range idx[1:] {
			out.LineTo(pts[j])
		}
	}

	if closed {
		// The closing segment is implied by ClosePath.
		if last := out[len(out)-1]; len(out) > 1 && last.Kind == LineToKind && last.Pt.Near(out[0].Pt, Epsilon) {
			out = out[:len(out)-1]
		}
		out.ClosePath()
	}
	for i := range out {
		out[i] = out[i].snap(opts.Snap)
	}
	return out
}

// fitWindow returns the largest k ≥ 2 such that the points between idx[0]
// and idx[k] can be fitted by a single cubic within tolerance, or 0 if there
// is no such k.
func fitWindow(pts []Point, idx []int, opts SimplifyOptions) int {
	for k := min(opts.MaxLookahead, len(idx)-1); k >= 2; k-- {
		if _, _, ok := FitCubic(pts[idx[0]:idx[k]+1], opts.Tolerance); ok {
			return k
		}
	}
	return 0
}

func anchorCount(p Path) int {
	n := 0
	for _, cmd := range p {
		if cmd.HasAnchor() {
			n++
		}
	}
	return n
}

// Flatten converts a sub-path into a polyline. Lines contribute their end
// points and every CubicTo is sampled into steps line segments. A ClosePath
// adds the sub-path's start point unless the polyline already ends there.
//
// Only the first sub-path of p is flattened.
func Flatten(p Path, steps int) []Point {
	var out []Point
	var start, cur Point
	for i, cmd := range p.Resolve() {
		switch cmd.Kind {
		case MoveToKind:
			if i > 0 {
				return out
			}
			start = cmd.Pt
			out = append(out, cmd.Pt)
		case LineToKind:
			out = append(out, cmd.Pt)
		case CubicToKind:
			first := true
			for pt := range cmd.Cubic(cur).Samples(steps) {
				if first {
					first = false
					continue
				}
				out = append(out, pt)
			}
		case ClosePathKind:
			if cur != start {
				out = append(out, start)
			}
			return out
		}
		cur = cmd.Pt
	}
	return out
}

// FilterSpacing drops every point that is closer than minSpacing to the last
// point kept. The first and last point are always kept.
func FilterSpacing(pts []Point, minSpacing float64) []Point {
	if len(pts) <= 2 {
		return slices.Clone(pts)
	}
	out := make([]Point, 0, len(pts))
	out = append(out, pts[0])
	for _, pt := range pts[1 : len(pts)-1] {
		if pt.Distance(out[len(out)-1]) >= minSpacing {
			out = append(out, pt)
		}
	}
	return append(out, pts[len(pts)-1])
}

// ReducePolyline applies the Douglas-Peucker algorithm to pts. Every point of
// pts lies within tolerance of the returned polyline, and the first and last
// points are always part of it.
func ReducePolyline(pts []Point, tolerance float64) []Point {
	idx := reduce(pts, max(tolerance, 0))
	out := make([]Point, len(idx))
	for i, j := range idx {
		out[i] = pts[j]
	}
	return out
}

// reduce returns the indices of the points kept by Douglas-Peucker, in
// ascending order.
func reduce(pts []Point, tolerance float64) []int {
	switch len(pts) {
	case 0:
		return nil
	case 1:
		return []int{0}
	}
	out := []int{0}
	var rec func(lo, hi int)
	rec = func(lo, hi int) {
		seg := Line{pts[lo], pts[hi]}
		worst := -1
		worstD := math.Inf(-1)
		for i := lo + 1; i < hi; i++ {
			// The first point attaining the maximum wins.
			if d := seg.Distance(pts[i]); d > worstD {
				worst = i
				worstD = d
			}
		}
		if worst < 0 || !(worstD > tolerance) {
			out = append(out, hi)
			return
		}
		rec(lo, worst)
		rec(worst, hi)
	}
	rec(0, len(pts)-1)
	return out
}
