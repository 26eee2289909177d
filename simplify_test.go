package pathedit

import (
	"math"
	"math/rand/v2"
	"slices"
	"testing"
)

func TestSimplifyLinesCorner(t *testing.T) {
	var p Path
	p.MoveTo(Pt(1.0, 2.0))
	p.LineTo(Pt(3.0, 4.0))
	p.LineTo(Pt(10.0, 5.0))
	simplified := Simplify(p, 1.0, 0.5)
	diff(t, p, simplified, ignoreIDs)
}

// densifiedSquare returns the outline of a 100×100 square with a point every
// 10 units, 40 points in total.
func densifiedSquare() Path {
	var p Path
	p.MoveTo(Pt(0, 0))
	for i := 1; i < 40; i++ {
		d := float64(i * 10)
		switch {
		case d < 100:
			p.LineTo(Pt(d, 0))
		case d < 200:
			p.LineTo(Pt(100, d-100))
		case d < 300:
			p.LineTo(Pt(300-d, 100))
		default:
			p.LineTo(Pt(0, 400-d))
		}
	}
	p.ClosePath()
	return p
}

func TestSimplifySquare(t *testing.T) {
	p := densifiedSquare()
	if n := len(p.Anchors()); n != 40 {
		t.Fatalf("test setup: got %d anchors, want 40", n)
	}
	want := Path{
		MoveTo(Pt(0, 0)),
		LineTo(Pt(100, 0)),
		LineTo(Pt(100, 100)),
		LineTo(Pt(0, 100)),
		ClosePath(),
	}
	diff(t, want, Simplify(p, 1, 0.5), ignoreIDs)
}

func TestSimplifyFreshIDs(t *testing.T) {
	p := densifiedSquare()
	ids := map[ID]bool{}
	for _, cmd := range p {
		ids[cmd.ID] = true
	}
	for _, cmd := range Simplify(p, 1, 0.5) {
		if ids[cmd.ID] {
			t.Errorf("%s reuses an input ID", cmd)
		}
	}
}

func TestSimplifyTooShort(t *testing.T) {
	p := Path{MoveTo(Pt(1, 1))}
	diff(t, p, Simplify(p, 1, 0.5))

	p = Path{MoveTo(Pt(1, 1)), ClosePath()}
	diff(t, p, Simplify(p, 1, 0.5))

	// Without a leading MoveTo, the sequence isn't a valid sub-path.
	p = Path{LineTo(Pt(1, 1)), LineTo(Pt(2, 2)), LineTo(Pt(3, 3))}
	diff(t, p, Simplify(p, 1, 0.5))
}

func TestSimplifyDuplicatePoints(t *testing.T) {
	var p Path
	p.MoveTo(Pt(0, 0))
	p.LineTo(Pt(0, 0))
	p.LineTo(Pt(0, 0))
	p.LineTo(Pt(10, 10))
	p.LineTo(Pt(10, 10))
	out := Simplify(p, 0.1, 1e-9)
	for _, cmd := range out {
		if cmd.Pt.IsNaN() || cmd.C1.IsNaN() || cmd.C2.IsNaN() {
			t.Fatalf("NaN in output: %v", out)
		}
	}
	diff(t, Path{MoveTo(Pt(0, 0)), LineTo(Pt(10, 10))}, out, ignoreIDs)
}

func TestSimplifyFlattensCurves(t *testing.T) {
	// A flat cubic flattens into a straight polyline.
	var p Path
	p.MoveTo(Pt(0, 0))
	p.CubicTo(Pt(10, 0), Pt(20, 0), Pt(30, 0))
	p.LineTo(Pt(30, 30))
	want := Path{MoveTo(Pt(0, 0)), LineTo(Pt(30, 0)), LineTo(Pt(30, 30))}
	diff(t, want, Simplify(p, 0.5, 0.5), ignoreIDs, approx(1e-9))
}

func TestSimplifyMultipleSubPaths(t *testing.T) {
	var p Path
	p.MoveTo(Pt(0, 0))
	p.LineTo(Pt(5, 0.1))
	p.LineTo(Pt(10, 0))
	p.MoveTo(Pt(50, 50))
	p.LineTo(Pt(60, 50))
	p.LineTo(Pt(70, 50))
	p.ClosePath()

	want := Path{
		MoveTo(Pt(0, 0)),
		LineTo(Pt(10, 0)),
		MoveTo(Pt(50, 50)),
		LineTo(Pt(70, 50)),
		ClosePath(),
	}
	diff(t, want, Simplify(p, 1, 0.5), ignoreIDs)
}

func TestSimplifySnap(t *testing.T) {
	var p Path
	p.MoveTo(Pt(0.2, 0.1))
	p.LineTo(Pt(10.3, 0.2))
	p.LineTo(Pt(20.4, 9.8))
	opts := DefaultSimplifyOptions
	opts.Snap = GridSnap(1)
	want := Path{MoveTo(Pt(0, 0)), LineTo(Pt(10, 0)), LineTo(Pt(20, 10))}
	diff(t, want, SimplifyOpt(p, opts), ignoreIDs)
}

// randomWalk returns an open path of n line segments with random turns.
func randomWalk(r *rand.Rand, n int) Path {
	var p Path
	pt := Pt(0, 0)
	p.MoveTo(pt)
	angle := 0.0
	for range n {
		angle += (r.Float64() - 0.5) * 1.5
		sin, cos := math.Sincos(angle)
		pt = pt.Translate(Vec(cos, sin).Mul(1 + r.Float64()*4))
		p.LineTo(pt)
	}
	return p
}

func TestSimplifyToleranceBound(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for range 50 {
		p := randomWalk(r, 200)
		if r.IntN(2) == 0 {
			p.ClosePath()
		}
		for _, tol := range []float64{0, 0.25, 1, 4, 16} {
			opts := DefaultSimplifyOptions
			opts.Tolerance = tol
			out := SimplifyOpt(p, opts)
			simplified := Flatten(out, opts.FlattenSteps)
			for _, pt := range FilterSpacing(Flatten(p, opts.FlattenSteps), opts.MinSpacing) {
				if d := polylineDistance(simplified, pt); d > tol+1e-9 {
					t.Fatalf("tolerance %g: point %s is %g away from the simplified path", tol, pt, d)
				}
			}
		}
	}
}

func TestSimplifyMonotonic(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	for i := range 100 {
		p := randomWalk(r, 150)
		if i%2 == 1 {
			p.ClosePath()
		}
		prev := math.MaxInt
		for _, tol := range []float64{0, 0.1, 0.5, 1, 2, 5, 10, 50} {
			n := len(Simplify(p, tol, 0.5))
			if n > prev {
				t.Fatalf("closed=%t: tolerance %g produced %d commands, more than %d for a smaller tolerance", p.IsClosed(), tol, n, prev)
			}
			prev = n
		}
	}
}

func TestSimplifyFitNeverLonger(t *testing.T) {
	// Fitting only merges reduced segments, so at any tolerance it produces
	// at most as many commands as line output. It is not monotonic in the
	// tolerance itself: a coarser reduction can leave runs that no longer
	// fit.
	r := rand.New(rand.NewPCG(7, 8))
	for i := range 100 {
		p := randomWalk(r, 150)
		if i%2 == 1 {
			p.ClosePath()
		}
		for _, tol := range []float64{0, 0.1, 0.5, 1, 2, 5, 10, 50} {
			opts := DefaultSimplifyOptions
			opts.Tolerance = tol
			lines := SimplifyOpt(p, opts)
			opts.FitCurves = true
			curves := SimplifyOpt(p, opts)
			if len(curves) > len(lines) {
				t.Fatalf("closed=%t, tolerance %g: fitting produced %d commands, line output %d", p.IsClosed(), tol, len(curves), len(lines))
			}
			if curves.IsClosed() != p.IsClosed() {
				t.Fatalf("closed=%t, tolerance %g: output closed=%t", p.IsClosed(), tol, curves.IsClosed())
			}
		}
	}
}

func TestReducePolylineTieBreak(t *testing.T) {
	// (1,1) and (3,1) are equally far from the chord. Splitting at the first
	// leaves (3,1) within 0.7 of (1,1)-(4,0); splitting at the second would
	// have kept (3,1) and dropped (1,1) instead.
	pts := []Point{Pt(0, 0), Pt(1, 1), Pt(3, 1), Pt(4, 0)}
	diff(t, []int{0, 1, 3}, reduce(pts, 0.7))
	diff(t, []int{0, 1, 2, 3}, reduce(pts, 0.5))

	pts = []Point{Pt(0, 0), Pt(1, 1), Pt(2, 0), Pt(3, 1), Pt(4, 0)}
	diff(t, []int{0, 1, 2, 3, 4}, reduce(pts, 0.5))
	diff(t, []int{0, 4}, reduce(pts, 1))
	diff(t, []Point{Pt(0, 0), Pt(4, 0)}, ReducePolyline(pts, 1))
}

func TestFilterSpacing(t *testing.T) {
	pts := []Point{Pt(0, 0), Pt(0.1, 0), Pt(0.6, 0), Pt(0.7, 0), Pt(0.8, 0)}
	diff(t, []Point{Pt(0, 0), Pt(0.6, 0), Pt(0.8, 0)}, FilterSpacing(pts, 0.5))
	diff(t, pts[:2], FilterSpacing(pts[:2], 10))
}

func TestFlatten(t *testing.T) {
	var p Path
	p.MoveTo(Pt(0, 0))
	p.CubicTo(Pt(0, 10), Pt(10, 10), Pt(10, 0))
	p.HorizontalTo(20)
	p.ClosePath()
	p.MoveTo(Pt(100, 100))

	pts := Flatten(p, 4)
	c := CubicBez{Pt(0, 0), Pt(0, 10), Pt(10, 10), Pt(10, 0)}
	want := []Point{Pt(0, 0), c.Eval(0.25), c.Eval(0.5), c.Eval(0.75), Pt(10, 0), Pt(20, 0), Pt(0, 0)}
	diff(t, want, pts)
}

func TestSimplifyFitCurves(t *testing.T) {
	// A densely sampled quarter circle.
	var p Path
	const r = 100
	for i := range 51 {
		th := float64(i) / 50 * math.Pi / 2
		pt := Pt(r*math.Cos(th), r*math.Sin(th))
		if i == 0 {
			p.MoveTo(pt)
		} else {
			p.LineTo(pt)
		}
	}

	lines := Simplify(p, 0.5, 0.5)
	opts := DefaultSimplifyOptions
	opts.Tolerance = 0.5
	opts.FitCurves = true
	curves := SimplifyOpt(p, opts)

	if !slices.ContainsFunc(curves, func(cmd Command) bool { return cmd.Kind == CubicToKind }) {
		t.Fatalf("expected curves in %v", curves)
	}
	if len(curves) >= len(lines) {
		t.Errorf("refitting produced %d commands, line simplification %d", len(curves), len(lines))
	}
	diff(t, p[0].Pt, curves[0].Pt)
	assertNear(t, curves[len(curves)-1].Pt, p[len(p)-1].Pt, 1e-9)

	// Every anchor of the refitted path lies on the circle.
	for _, pt := range curves.Anchors() {
		if d := math.Abs(Vec2(pt).Hypot() - r); d > 0.5 {
			t.Errorf("anchor %s is %g off the circle", pt, d)
		}
	}
}

func BenchmarkSimplify(b *testing.B) {
	r := rand.New(rand.NewPCG(5, 6))
	p := randomWalk(r, 2000)
	b.Run("lines", func(b *testing.B) {
		for range b.N {
			Simplify(p, 1, 0.5)
		}
	})
	b.Run("curves", func(b *testing.B) {
		opts := DefaultSimplifyOptions
		opts.FitCurves = true
		for range b.N {
			SimplifyOpt(p, opts)
		}
	})
}
