// Package svgpath parses SVG path data into paths.
//
// The supported commands are the ones the path model can represent without
// loss: M, L, H, V, C, S and Z, in both their absolute and relative forms.
// Quadratic Béziers and elliptical arcs are rejected with
// [ErrUnsupportedCommand].
package svgpath

import (
	"errors"
	"fmt"
	"strconv"

	"honnef.co/go/pathedit"
)

var ErrUnsupportedCommand = errors.New("unsupported path command")

// SyntaxError describes malformed path data.
type SyntaxError struct {
	// Byte offset into the path data at which the error was detected.
	Offset int
	Msg    string
	err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("svgpath: offset %d: %s", e.Offset, e.Msg)
}

func (e *SyntaxError) Unwrap() error {
	return e.err
}

// Parse parses the contents of an SVG path's d attribute.
//
// Relative coordinates are made absolute. H and V are kept as HorizontalTo
// and VerticalTo, and S is expanded into a CubicTo whose first control point
// is the reflection of the previous curve's second control point. Empty
// path data results in an empty path.
//
// A drawing command directly after a closepath starts a new sub-path at the
// closed sub-path's start, as if preceded by a moveto. Repeated closepaths
// close the sub-path once.
func Parse(d string) (pathedit.Path, error) {
	p := parser{d: d}
	if err := p.parse(); err != nil {
		return nil, err
	}
	return p.path, nil
}

type parser struct {
	d   string
	pos int

	path  pathedit.Path
	cur   pathedit.Point
	start pathedit.Point
	// The second control point of the previous command, if it was a curve.
	ctrl    pathedit.Point
	hasCtrl bool
	// The last command was a closepath.
	closed bool
	// The last token was a number, so a comma may follow.
	afterNumber bool
}

func (p *parser) errorf(off int, format string, args ...any) error {
	return &SyntaxError{Offset: off, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) parse() error {
	var cmd byte
	for {
		p.skipSpace()
		if p.pos >= len(p.d) {
			return nil
		}
		off := p.pos
		c := p.d[off]
		if c == ',' && p.afterNumber {
			// Argument groups of a repeated command may be separated by a
			// comma, but a comma can't precede a command or end the data.
			p.pos++
			p.afterNumber = false
			p.skipSpace()
			if p.pos >= len(p.d) || isLetter(p.d[p.pos]) {
				return p.errorf(off, "unexpected ','")
			}
			off = p.pos
			c = p.d[off]
		}
		if isLetter(c) {
			cmd = c
			p.pos++
			p.afterNumber = false
		} else if cmd == 0 {
			return p.errorf(off, "expected command, found %q", c)
		} else if cmd == 'Z' || cmd == 'z' {
			return p.errorf(off, "unexpected %q after closepath", c)
		}

		if len(p.path) == 0 && cmd != 'M' && cmd != 'm' {
			return p.errorf(off, "path data must begin with moveto, found %q", cmd)
		}
		if err := p.command(off, cmd); err != nil {
			return err
		}
		// Coordinates following a moveto are implicit linetos.
		switch cmd {
		case 'M':
			cmd = 'L'
		case 'm':
			cmd = 'l'
		}
	}
}

func (p *parser) command(off int, cmd byte) error {
	rel := cmd >= 'a' && cmd <= 'z'
	hasCtrl := false
	if p.closed && cmd|0x20 != 'm' && cmd|0x20 != 'z' {
		p.path.MoveTo(p.start)
	}
	switch cmd | 0x20 {
	case 'm':
		pt, err := p.point(rel)
		if err != nil {
			return err
		}
		p.path.MoveTo(pt)
		p.cur = pt
		p.start = pt
	case 'l':
		pt, err := p.point(rel)
		if err != nil {
			return err
		}
		p.path.LineTo(pt)
		p.cur = pt
	case 'h':
		x, err := p.number()
		if err != nil {
			return err
		}
		if rel {
			x += p.cur.X
		}
		p.path.HorizontalTo(x)
		p.cur.X = x
	case 'v':
		y, err := p.number()
		if err != nil {
			return err
		}
		if rel {
			y += p.cur.Y
		}
		p.path.VerticalTo(y)
		p.cur.Y = y
	case 'c':
		pts, err := p.points(rel, 3)
		if err != nil {
			return err
		}
		p.path.CubicTo(pts[0], pts[1], pts[2])
		p.cur = pts[2]
		p.ctrl = pts[1]
		hasCtrl = true
	case 's':
		pts, err := p.points(rel, 2)
		if err != nil {
			return err
		}
		c1 := p.cur
		if p.hasCtrl {
			c1 = p.ctrl.Mirror(p.cur)
		}
		p.path.CubicTo(c1, pts[0], pts[1])
		p.cur = pts[1]
		p.ctrl = pts[0]
		hasCtrl = true
	case 'z':
		if !p.closed {
			p.path.ClosePath()
		}
		p.cur = p.start
	case 'q', 't', 'a':
		return &SyntaxError{
			Offset: off,
			Msg:    fmt.Sprintf("%q commands are not supported", cmd),
			err:    ErrUnsupportedCommand,
		}
	default:
		return p.errorf(off, "unknown command %q", cmd)
	}
	p.hasCtrl = hasCtrl
	p.closed = cmd|0x20 == 'z'
	return nil
}

// point parses a coordinate pair. Relative pairs are offset by the current
// point, which is left unchanged.
func (p *parser) point(rel bool) (pathedit.Point, error) {
	x, err := p.number()
	if err != nil {
		return pathedit.Point{}, err
	}
	y, err := p.number()
	if err != nil {
		return pathedit.Point{}, err
	}
	pt := pathedit.Pt(x, y)
	if rel {
		pt = pt.Translate(pathedit.Vec2(p.cur))
	}
	return pt, nil
}

func (p *parser) points(rel bool, n int) ([]pathedit.Point, error) {
	out := make([]pathedit.Point, n)
	for i := range out {
		pt, err := p.point(rel)
		if err != nil {
			return nil, err
		}
		out[i] = pt
	}
	return out, nil
}

// number scans a single number. A single comma may separate it from a
// preceding number. Numbers need not be separated at all when the boundary
// is unambiguous, as in "10-20" or "0.5.5".
func (p *parser) number() (float64, error) {
	p.skipSpace()
	if p.afterNumber && p.pos < len(p.d) && p.d[p.pos] == ',' {
		p.pos++
		p.afterNumber = false
		p.skipSpace()
	}
	start := p.pos
	i := start
	if i < len(p.d) && (p.d[i] == '+' || p.d[i] == '-') {
		i++
	}
	digits := 0
	for i < len(p.d) && isDigit(p.d[i]) {
		i++
		digits++
	}
	if i < len(p.d) && p.d[i] == '.' {
		i++
		for i < len(p.d) && isDigit(p.d[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		if start >= len(p.d) {
			return 0, p.errorf(start, "unexpected end of path data")
		}
		return 0, p.errorf(start, "expected number, found %q", p.d[start])
	}
	if i < len(p.d) && (p.d[i] == 'e' || p.d[i] == 'E') {
		j := i + 1
		if j < len(p.d) && (p.d[j] == '+' || p.d[j] == '-') {
			j++
		}
		if j < len(p.d) && isDigit(p.d[j]) {
			for j < len(p.d) && isDigit(p.d[j]) {
				j++
			}
			i = j
		}
	}

	f, err := strconv.ParseFloat(p.d[start:i], 64)
	if err != nil {
		return 0, p.errorf(start, "invalid number %q", p.d[start:i])
	}
	p.pos = i
	p.afterNumber = true
	return f, nil
}

func (p *parser) skipSpace() {
	for p.pos < len(p.d) {
		switch p.d[p.pos] {
		case ' ', '\t', '\n', '\r', '\f':
			p.pos++
		default:
			return
		}
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
