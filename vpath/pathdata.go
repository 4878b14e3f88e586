package vpath

import "github.com/vsvg-go/vsvg/geom"

// PathData is the polymorphic geometry payload of a Path: either a
// BezierPath (preserves curve control points) or a Polyline (already
// flat). Every geometric operation dispatches on this interface rather
// than a tagged union, the two-implementation shape spec.md §9 calls
// for and the teacher's Operation/interface split generalizes into.
type PathData interface {
	First() (geom.Point, bool)
	Last() (geom.Point, bool)
	IsEmpty() bool
	PointCount() int
	Bounds() geom.Rect
	Flip() PathData
	Transform(m geom.Affine) PathData
	Flatten(tolerance float64) []*Polyline
	Crop(rect geom.Rect) []PathData
}

var (
	_ PathData = (*BezierPath)(nil)
	_ PathData = (*Polyline)(nil)
)
