package pathedit

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
)

var (
	ErrMissingMoveTo = errors.New("path does not start with MoveTo")
	ErrOutOfRange    = errors.New("index out of range")
)

// Path is a sequence of commands, made up of one or more sub-paths. A valid
// path has MoveTo at the beginning of each sub-path, and ClosePath, if
// present, as the last command of a sub-path.
type Path []Command

func (p *Path) MoveTo(pt Point) {
	*p = append(*p, MoveTo(pt))
}

func (p *Path) LineTo(pt Point) {
	*p = append(*p, LineTo(pt))
}

func (p *Path) HorizontalTo(x float64) {
	*p = append(*p, HorizontalTo(x))
}

func (p *Path) VerticalTo(y float64) {
	*p = append(*p, VerticalTo(y))
}

func (p *Path) CubicTo(c1, c2, pt Point) {
	*p = append(*p, CubicTo(c1, c2, pt))
}

func (p *Path) ClosePath() {
	*p = append(*p, ClosePath())
}

// Resolve returns a copy of p in which HorizontalTo and VerticalTo commands
// have been replaced with equivalent LineTo commands. The replacements keep
// the IDs of the commands they replace. A leading H or V without a current
// point is resolved against the origin, as in SVG.
func (p Path) Resolve() Path {
	out := make(Path, len(p))
	var start, cur Point
	for i, cmd := range p {
		switch cmd.Kind {
		case MoveToKind:
			start = cmd.Pt
			cur = cmd.Pt
		case LineToKind, CubicToKind:
			cur = cmd.Pt
		case HorizontalToKind:
			cmd.Kind = LineToKind
			cmd.Pt = Pt(cmd.Pt.X, cur.Y)
			cur = cmd.Pt
		case VerticalToKind:
			cmd.Kind = LineToKind
			cmd.Pt = Pt(cur.X, cmd.Pt.Y)
			cur = cmd.Pt
		case ClosePathKind:
			cur = start
		}
		out[i] = cmd
	}
	return out
}

// Anchors returns the anchor of every command that has one. H and V are
// resolved against the current point.
func (p Path) Anchors() []Point {
	var out []Point
	for _, cmd := range p.Resolve() {
		if cmd.HasAnchor() {
			out = append(out, cmd.Pt)
		}
	}
	return out
}

// IsClosed reports whether p ends with ClosePath.
func (p Path) IsClosed() bool {
	return len(p) > 0 && p[len(p)-1].Kind == ClosePathKind
}

// Index returns the index of the command with the given ID, or -1.
func (p Path) Index(id ID) int {
	return slices.IndexFunc(p, func(cmd Command) bool { return cmd.ID == id })
}

// SubPathBounds returns the half-open range [start, end) of the sub-path
// that contains the command at index i.
func (p Path) SubPathBounds(i int) (start, end int) {
	start = i
	for start > 0 && p[start].Kind != MoveToKind {
		start--
	}
	end = i + 1
	for end < len(p) && p[end].Kind != MoveToKind {
		end++
	}
	return start, end
}

// SubPaths splits p at every MoveTo. Commands preceding the first MoveTo, if
// any, form a sub-path of their own. The returned slices alias p.
func (p Path) SubPaths() []Path {
	var out []Path
	start := 0
	for i := 1; i <= len(p); i++ {
		if i == len(p) || p[i].Kind == MoveToKind {
			out = append(out, p[start:i:i])
			start = i
		}
	}
	return out
}

// Splice returns a new path in which p[start:end] has been replaced by repl.
// This is how a transformed sub-path is committed back into the path it was
// taken from. The merged path must still begin with MoveTo.
func (p Path) Splice(start, end int, repl Path) (Path, error) {
	if start < 0 || end > len(p) || start > end {
		return nil, fmt.Errorf("splice [%d:%d] of path with %d commands: %w", start, end, len(p), ErrOutOfRange)
	}
	out := make(Path, 0, len(p)-(end-start)+len(repl))
	out = append(out, p[:start]...)
	out = append(out, repl...)
	out = append(out, p[end:]...)
	if len(out) > 0 && out[0].Kind != MoveToKind {
		return nil, fmt.Errorf("splice [%d:%d]: %w", start, end, ErrMissingMoveTo)
	}
	return out, nil
}

// eachSubPath applies fn to every sub-path of p and concatenates the results.
func (p Path) eachSubPath(fn func(Path) Path) Path {
	var out Path
	for _, sub := range p.SubPaths() {
		out = append(out, fn(sub)...)
	}
	return out
}

// SVGOptions specifies optional settings for [Path.SVG] and [Path.WriteSVG].
type SVGOptions struct {
	// The maximum precision with which to format coordinates. A value of 0
	// chooses the highest precision necessary to unambiguously represent any
	// given coordinate.
	MaxPrecision int
}

// SVG converts the path to a string of SVG path commands.
//
// See [Path.WriteSVG] for a version that writes to an [io.Writer] instead of
// returning a string.
func (p Path) SVG(opts SVGOptions) string {
	sb := &strings.Builder{}
	p.WriteSVG(sb, opts)
	return sb.String()
}

// WriteSVG converts the path to a string of SVG path commands and writes it
// to w. All commands are written in their absolute form.
//
// The current implementation doesn't take any special care to produce a
// short string (reducing precision, using relative movement).
func (p Path) WriteSVG(w io.Writer, opts SVGOptions) error {
	space := []byte(" ")
	z := []byte("Z")
	var err error
	write := func(s []byte) {
		if err != nil {
			return
		}
		_, err = w.Write(s)
	}
	writef := func(s string, v ...any) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, s, v...)
	}
	format := func(n float64) string {
		maxPrec := opts.MaxPrecision
		if maxPrec <= 0 {
			return strconv.FormatFloat(n, 'f', -1, 64)
		} else {
			s := strconv.FormatFloat(n, 'f', maxPrec, 64)
			s = strings.TrimRight(s, "0")
			s = strings.TrimSuffix(s, ".")
			if s == "-0" {
				s = "0"
			}
			return s
		}
	}
	first := true
	for _, cmd := range p {
		if err != nil {
			return err
		}
		if !first {
			write(space)
		}
		first = false
		switch cmd.Kind {
		case MoveToKind:
			writef("M%s,%s", format(cmd.Pt.X), format(cmd.Pt.Y))
		case LineToKind:
			writef("L%s,%s", format(cmd.Pt.X), format(cmd.Pt.Y))
		case HorizontalToKind:
			writef("H%s", format(cmd.Pt.X))
		case VerticalToKind:
			writef("V%s", format(cmd.Pt.Y))
		case CubicToKind:
			writef("C%s,%s %s,%s %s,%s",
				format(cmd.C1.X), format(cmd.C1.Y),
				format(cmd.C2.X), format(cmd.C2.Y),
				format(cmd.Pt.X), format(cmd.Pt.Y))
		case ClosePathKind:
			write(z)
		default:
			panic("unreachable")
		}
	}
	return err
}
