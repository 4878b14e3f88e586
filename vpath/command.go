// Package vpath implements the vsvg path model: PathData is a
// polymorphic value with two variants (BezierPath, Polyline), wrapped
// together with PathMetadata into a Path. Grounded on the teacher's
// svgicon/path.go Operation/MoveTo/LineTo/QuadTo/CubicTo/Close model,
// generalized into the two-variant polymorphism spec.md §9 calls for.
package vpath

import "github.com/vsvg-go/vsvg/geom"

// Op is one drawing command in a Bézier path.
type Op interface {
	isOp()
}

// MoveTo begins a new subpath at the given point.
type MoveTo geom.Point

// LineTo draws a straight segment to the given point.
type LineTo geom.Point

// QuadTo draws a quadratic Bézier segment via one control point.
type QuadTo struct {
	Ctrl geom.Point
	To   geom.Point
}

// CurveTo draws a cubic Bézier segment via two control points.
type CurveTo struct {
	Ctrl1, Ctrl2 geom.Point
	To           geom.Point
}

// ClosePath closes the current subpath back to its most recent MoveTo.
type ClosePath struct{}

func (MoveTo) isOp()    {}
func (LineTo) isOp()    {}
func (QuadTo) isOp()    {}
func (CurveTo) isOp()   {}
func (ClosePath) isOp() {}
