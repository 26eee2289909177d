// Package pathedit implements the geometry behind interactive path editing:
// simplifying, smoothing, and normalizing the anchors of vector paths.
//
// # Paths and commands
//
// A [Path] is a slice of [Command] values, each of which is one of MoveTo,
// LineTo, HorizontalTo, VerticalTo, CubicTo, or ClosePath. Commands carry an
// opaque [ID] that is unique within a process. Every command created by this
// package gets a fresh ID, which lets callers tell apart commands that were
// carried over from their input and commands that were synthesized.
//
// Operations are pure: they take a path and return a new one, and never
// modify their input. The exception is [Normalizer], which remembers the
// selected anchor and a modifier flag between calls.
//
// A path may contain several sub-paths, each beginning with MoveTo. [Simplify]
// and [Smooth] process each sub-path independently. Use [Path.SubPaths],
// [Path.SubPathBounds] and [Path.Splice] to operate on a single sub-path of a
// larger path.
//
// # Operations
//
//   - [Simplify] and [SimplifyOpt] reduce dense paths to few anchors, within a
//     distance tolerance, optionally refitting runs as cubic Béziers.
//   - [Smooth] and [SmoothOpt] replace a path with a C¹-continuous
//     Catmull-Rom spline through its anchors.
//   - [Normalizer] aligns, mirrors, or breaks the control points of a single
//     anchor, converting adjacent lines to curves where needed.
//   - [FitCubic] fits a single cubic Bézier to a run of points.
//
// # Degenerate input
//
// No operation returns an error or panics on odd geometry. Paths with too
// few anchors are returned unchanged, zero-length vectors cause the
// affected edit to be skipped, and lengths below [Epsilon] are treated as
// zero instead of being divided by.
//
// # Grid snapping
//
// Options structs accept a [Snapper], which is applied to computed
// coordinates. [GridSnap] returns a Snapper for a regular grid.
package pathedit
