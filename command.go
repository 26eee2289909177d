package pathedit

import (
	"fmt"
	"math"
)

type CommandKind int

const (
	// Move directly to the point without drawing anything, starting a new
	// sub-path.
	MoveToKind CommandKind = iota + 1
	// Draw a line from the current location to the point.
	LineToKind
	// Draw a horizontal line to Pt.X. Pt.Y is ignored.
	HorizontalToKind
	// Draw a vertical line to Pt.Y. Pt.X is ignored.
	VerticalToKind
	// Draw a cubic Bézier from the current location through C1 and C2 to Pt.
	CubicToKind
	// Close off the sub-path with an implicit line back to its MoveTo.
	ClosePathKind
)

func (k CommandKind) String() string {
	switch k {
	case MoveToKind:
		return "MoveTo"
	case LineToKind:
		return "LineTo"
	case HorizontalToKind:
		return "HorizontalTo"
	case VerticalToKind:
		return "VerticalTo"
	case CubicToKind:
		return "CubicTo"
	case ClosePathKind:
		return "ClosePath"
	default:
		return "InvalidCommand"
	}
}

// Command is a single path operation.
//
// Pt is the anchor the command ends at. For CubicTo, C1 is the outgoing
// control point of the previous anchor and C2 the incoming control point of
// Pt. Unused fields are zero. A NaN coordinate in a used field marks it as
// missing; such commands are skipped by operations that need the field.
//
// Commands are values. Operations never modify their input and return new
// commands instead.
type Command struct {
	Kind CommandKind
	ID   ID
	C1   Point
	C2   Point
	Pt   Point
}

func (cmd Command) String() string {
	switch cmd.Kind {
	case MoveToKind, LineToKind:
		return fmt.Sprintf("%s%s%s", cmd.Kind, cmd.ID, cmd.Pt)
	case HorizontalToKind:
		return fmt.Sprintf("%s%s(%g)", cmd.Kind, cmd.ID, cmd.Pt.X)
	case VerticalToKind:
		return fmt.Sprintf("%s%s(%g)", cmd.Kind, cmd.ID, cmd.Pt.Y)
	case CubicToKind:
		return fmt.Sprintf("%s%s(%s, %s, %s)", cmd.Kind, cmd.ID, cmd.C1, cmd.C2, cmd.Pt)
	default:
		return fmt.Sprintf("%s%s", cmd.Kind, cmd.ID)
	}
}

func MoveTo(pt Point) Command {
	return Command{Kind: MoveToKind, ID: NewID(), Pt: pt}
}

func LineTo(pt Point) Command {
	return Command{Kind: LineToKind, ID: NewID(), Pt: pt}
}

func HorizontalTo(x float64) Command {
	return Command{Kind: HorizontalToKind, ID: NewID(), Pt: Point{X: x}}
}

func VerticalTo(y float64) Command {
	return Command{Kind: VerticalToKind, ID: NewID(), Pt: Point{Y: y}}
}

func CubicTo(c1, c2, pt Point) Command {
	return Command{Kind: CubicToKind, ID: NewID(), C1: c1, C2: c2, Pt: pt}
}

func ClosePath() Command {
	return Command{Kind: ClosePathKind, ID: NewID()}
}

// HasAnchor reports whether the command ends at an anchor, i.e. whether it
// is anything but a ClosePath.
func (cmd Command) HasAnchor() bool {
	switch cmd.Kind {
	case MoveToKind, LineToKind, HorizontalToKind, VerticalToKind, CubicToKind:
		return true
	default:
		return false
	}
}

// IsLine reports whether the command draws a straight line to its anchor.
func (cmd Command) IsLine() bool {
	switch cmd.Kind {
	case LineToKind, HorizontalToKind, VerticalToKind:
		return true
	default:
		return false
	}
}

// Valid reports whether every coordinate the command's kind requires is
// present (not NaN).
func (cmd Command) Valid() bool {
	switch cmd.Kind {
	case MoveToKind, LineToKind:
		return !cmd.Pt.IsNaN()
	case HorizontalToKind:
		return !math.IsNaN(cmd.Pt.X)
	case VerticalToKind:
		return !math.IsNaN(cmd.Pt.Y)
	case CubicToKind:
		return !cmd.Pt.IsNaN() && !cmd.C1.IsNaN() && !cmd.C2.IsNaN()
	case ClosePathKind:
		return true
	default:
		return false
	}
}

// Cubic returns the segment drawn by a CubicTo that starts at from.
func (cmd Command) Cubic(from Point) CubicBez {
	return CubicBez{from, cmd.C1, cmd.C2, cmd.Pt}
}

// snap returns a copy of cmd with all of its points passed through s.
func (cmd Command) snap(s Snapper) Command {
	if s == nil {
		return cmd
	}
	cmd.Pt = cmd.Pt.Snap(s)
	if cmd.Kind == CubicToKind {
		cmd.C1 = cmd.C1.Snap(s)
		cmd.C2 = cmd.C2.Snap(s)
	}
	return cmd
}
