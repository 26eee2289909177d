package pathedit

import (
	"math"
	"slices"

	"github.com/iancoleman/strcase"
)

// SegmentType classifies the segment on one side of an anchor.
type SegmentType int

const (
	// There is no segment, because the anchor starts or ends its sub-path.
	// The line implied by a ClosePath is a SegmentLine unless it has zero
	// length.
	SegmentNone SegmentType = iota
	SegmentLine
	SegmentCurve
)

func (st SegmentType) String() string {
	switch st {
	case SegmentNone:
		return "None"
	case SegmentLine:
		return "Line"
	case SegmentCurve:
		return "Curve"
	default:
		return "InvalidSegment"
	}
}

func segmentType(cmd Command) SegmentType {
	switch {
	case cmd.Kind == CubicToKind:
		return SegmentCurve
	case cmd.IsLine():
		return SegmentLine
	default:
		return SegmentNone
	}
}

// Classification describes the neighborhood of the selected anchor.
type Classification struct {
	// Index of the anchor's command in the path.
	Index int
	// The segment ending at the anchor, i.e. the anchor's own command.
	Prev SegmentType
	// The segment starting at the anchor, i.e. the following command.
	Next SegmentType
}

// Action is an edit the [Normalizer] can apply to the selected anchor.
type Action int

const (
	// Mirror the anchor's incoming control point through the anchor to
	// produce its outgoing control point.
	NormalizeFromCurrent Action = iota + 1
	// Align both of the anchor's control points with the direction from
	// the anchor toward the following segment's second control point,
	// keeping their distances to the anchor.
	NormalizeFromOther
	// Rotate both control points by [BreakAngle] in opposite directions,
	// turning a smooth anchor into a corner.
	BreakControlPoints
	// Convert both adjacent lines to curves, then smooth the anchor.
	ConvertBothToCurves
	// Convert the one adjacent line to a curve, then smooth the anchor.
	ConvertLineToCurve
)

var actionNames = [...]string{
	NormalizeFromCurrent: "NormalizeFromCurrent",
	NormalizeFromOther:   "NormalizeFromOther",
	BreakControlPoints:   "BreakControlPoints",
	ConvertBothToCurves:  "ConvertBothToCurves",
	ConvertLineToCurve:   "ConvertLineToCurve",
}

// String returns the action's name in kebab case, e.g.
// "normalize-from-current".
func (a Action) String() string {
	if a <= 0 || int(a) >= len(actionNames) {
		return "invalid-action"
	}
	return strcase.ToKebab(actionNames[a])
}

// ParseAction returns the action with the given name. Names are matched
// regardless of case style, so "normalize-from-current",
// "normalize_from_current" and "NormalizeFromCurrent" are equivalent.
func ParseAction(name string) (Action, bool) {
	name = strcase.ToKebab(name)
	for a := NormalizeFromCurrent; int(a) < len(actionNames); a++ {
		if a.String() == name {
			return a, true
		}
	}
	return 0, false
}

const (
	// BreakAngle is the angle, in radians, by which BreakControlPoints
	// rotates each control point.
	BreakAngle = 15 * math.Pi / 180
	// MaxHandleLength caps the distance between an anchor and a control
	// point created by a line-to-curve conversion.
	MaxHandleLength = 30.0
	// HandleRatio is the fraction of a segment's length used for the
	// control points placed by a convert action.
	HandleRatio = 0.3
)

// Normalizer edits the control points around a single selected anchor.
//
// The selection and the modifier flag are the only state; paths are passed
// to every call and never retained. The zero value has no selection.
type Normalizer struct {
	selected     ID
	hasSelection bool
	modifier     bool
}

// Select makes the anchor of the command with the given ID the selected
// anchor.
func (n *Normalizer) Select(id ID) {
	n.selected = id
	n.hasSelection = true
}

func (n *Normalizer) Deselect() {
	n.selected = 0
	n.hasSelection = false
}

func (n *Normalizer) Selected() (ID, bool) {
	return n.selected, n.hasSelection
}

// SetModifier records whether the alternate-behavior modifier is held. It
// only affects the order of [Normalizer.Actions].
func (n *Normalizer) SetModifier(held bool) {
	n.modifier = held
}

func (n *Normalizer) Modifier() bool {
	return n.modifier
}

// Classify classifies the segments on either side of the selected anchor.
// It reports false if nothing is selected or the selection doesn't name a
// command with an anchor in p.
func (n *Normalizer) Classify(p Path) (Classification, bool) {
	if !n.hasSelection {
		return Classification{}, false
	}
	i := p.Index(n.selected)
	if i < 0 || !p[i].HasAnchor() {
		return Classification{}, false
	}
	c := Classification{Index: i, Prev: segmentType(p[i])}
	if i+1 < len(p) {
		c.Next = segmentType(p[i+1])
		if p[i+1].Kind == ClosePathKind {
			if _, ok := closingStart(p.Resolve(), i); ok {
				c.Next = SegmentLine
			}
		}
	}
	return c, true
}

// Actions returns the actions that can be applied to the selected anchor,
// in menu order. With the modifier held, BreakControlPoints comes first.
func (n *Normalizer) Actions(p Path) []Action {
	c, ok := n.Classify(p)
	if !ok {
		return nil
	}
	return c.actions(n.modifier)
}

func (c Classification) actions(modifier bool) []Action {
	switch {
	case c.Prev == SegmentCurve && c.Next == SegmentCurve:
		if modifier {
			return []Action{BreakControlPoints, NormalizeFromCurrent, NormalizeFromOther}
		}
		return []Action{NormalizeFromCurrent, NormalizeFromOther, BreakControlPoints}
	case c.Prev == SegmentLine && c.Next == SegmentLine:
		return []Action{ConvertBothToCurves}
	case c.Prev == SegmentLine && c.Next == SegmentCurve,
		c.Prev == SegmentCurve && c.Next == SegmentLine:
		return []Action{ConvertLineToCurve}
	default:
		return nil
	}
}

// Apply applies action to the selected anchor and returns the new path.
//
// Only the anchor's own command and the command following it are replaced;
// all other commands are shared with p. If the anchor is followed by a
// ClosePath, the rewritten closing segment is inserted before it. Apply reports false, and returns p
// unchanged, if the action isn't offered for the anchor's classification, a
// required coordinate is missing, or the geometry is degenerate (for
// example a control point coinciding with its anchor).
//
// Commands that change kind receive fresh IDs. If that replaces the
// selected anchor's command, the selection moves to the replacement.
func (n *Normalizer) Apply(p Path, action Action) (Path, bool) {
	c, ok := n.Classify(p)
	if !ok || !slices.Contains(c.actions(false), action) {
		return p, false
	}
	i := c.Index
	res := p.Resolve()
	cur, next := res[i], res[i+1]
	start, closing := closingStart(res, i)
	if closing {
		next = LineTo(start)
	}
	if !cur.Valid() || !next.Valid() {
		return p, false
	}
	anchor := cur.Pt
	from, _ := penPosition(res, i)

	switch action {
	case NormalizeFromCurrent:
		if cur.C2.Near(anchor, Epsilon) {
			return p, false
		}
		next.C1 = cur.C2.Transform(ReflectAbout(anchor))
	case NormalizeFromOther:
		dir, ok := next.C2.Sub(anchor).Unit()
		if !ok {
			return p, false
		}
		next.C1 = anchor.Translate(dir.Mul(next.C1.Distance(anchor)))
		cur.C2 = anchor.Translate(dir.Mul(-cur.C2.Distance(anchor)))
	case BreakControlPoints:
		if cur.C2.Near(anchor, Epsilon) || next.C1.Near(anchor, Epsilon) {
			return p, false
		}
		cur.C2 = cur.C2.Transform(RotateAbout(BreakAngle, anchor))
		next.C1 = next.C1.Transform(RotateAbout(-BreakAngle, anchor))
	case ConvertBothToCurves, ConvertLineToCurve:
		if cur.IsLine() {
			cur = lineToCurve(from, anchor)
		}
		if next.IsLine() {
			next = lineToCurve(anchor, next.Pt)
		}
		cin, cout, ok := bisectHandles(from, anchor, next.Pt)
		if !ok {
			return p, false
		}
		cur.C2 = cin
		next.C1 = cout
	default:
		return p, false
	}

	if !cur.Valid() || !next.Valid() {
		return p, false
	}
	out := slices.Clone(p)
	out[i] = cur
	if closing {
		out = slices.Insert(out, i+1, next)
	} else {
		out[i+1] = next
	}
	if cur.ID != p[i].ID {
		n.Select(cur.ID)
	}
	return out, true
}

// penPosition returns the pen position before the command at index i of a
// resolved path, and the start of the sub-path it is in.
func penPosition(res Path, i int) (cur, start Point) {
	for _, cmd := range res[:i] {
		switch cmd.Kind {
		case MoveToKind:
			start = cmd.Pt
			cur = cmd.Pt
		case ClosePathKind:
			cur = start
		default:
			cur = cmd.Pt
		}
	}
	return cur, start
}

// closingStart reports whether the anchor at index i of a resolved path is
// followed by a ClosePath whose implied line has non-zero length, and
// returns the point that line ends at.
func closingStart(res Path, i int) (Point, bool) {
	if i+1 >= len(res) || res[i+1].Kind != ClosePathKind {
		return Point{}, false
	}
	_, start := penPosition(res, i+1)
	if res[i].Pt.Near(start, Epsilon) {
		return Point{}, false
	}
	return start, true
}

// lineToCurve returns a CubicTo that traces the line from p0 to p1, with
// control points at a third of its length from either end, but no farther
// than MaxHandleLength.
func lineToCurve(p0, p1 Point) Command {
	l := Line{p0, p1}
	dir, ok := l.Direction()
	if !ok {
		c := l.Cubic()
		return CubicTo(c.P1, c.P2, p1)
	}
	d := min(l.Length()/3, MaxHandleLength)
	return CubicTo(p0.Translate(dir.Mul(d)), p1.Translate(dir.Mul(-d)), p1)
}

// bisectHandles computes symmetric control points for anchor, whose
// neighboring anchors are prev and next. The tangent bisects the incoming
// and outgoing directions; if those are exactly opposite, the tangent is
// perpendicular to the incoming direction instead. Each control point lies
// HandleRatio of the adjacent segment's length from the anchor, capped at
// MaxHandleLength.
func bisectHandles(prev, anchor, next Point) (cin, cout Point, ok bool) {
	in := anchor.Sub(prev)
	out := next.Sub(anchor)
	inDir, ok1 := in.Unit()
	outDir, ok2 := out.Unit()
	if !ok1 || !ok2 {
		return Point{}, Point{}, false
	}
	tangent, ok := inDir.Add(outDir).Unit()
	if !ok {
		tangent = inDir.Perp()
	}
	dIn := min(in.Hypot()*HandleRatio, MaxHandleLength)
	dOut := min(out.Hypot()*HandleRatio, MaxHandleLength)
	return anchor.Translate(tangent.Mul(-dIn)), anchor.Translate(tangent.Mul(dOut)), true
}
