// Package geom provides the numeric primitives shared across the vsvg
// core: points, affine transforms, physical lengths, angles and colors.
package geom

import "math"

// Point is a location in the plane, y-axis pointing down (SVG convention).
type Point struct {
	X, Y float64
}

// ZeroPoint is the origin.
var ZeroPoint = Point{0, 0}

// NewPoint builds a Point from its coordinates.
func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Mul scales p by s.
func (p Point) Mul(s float64) Point {
	return Point{p.X * s, p.Y * s}
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// DistSquared avoids the sqrt when only comparing distances.
func (p Point) DistSquared(q Point) float64 {
	dx, dy := p.X-q.X, p.Y-q.Y
	return dx*dx + dy*dy
}

// Equal compares two points exactly, as specified for Point equality.
func (p Point) Equal(q Point) bool {
	return p.X == q.X && p.Y == q.Y
}

// Near reports whether p and q are within tolerance of each other.
func (p Point) Near(q Point, tolerance float64) bool {
	return p.Dist(q) <= tolerance
}

// Rect is an axis-aligned bounding rectangle.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// EmptyRect is a rectangle with no area, used as the zero value for
// bounds accumulation.
var EmptyRect = Rect{
	MinX: math.Inf(1), MinY: math.Inf(1),
	MaxX: math.Inf(-1), MaxY: math.Inf(-1),
}

// IsEmpty reports whether the rectangle has never been extended.
func (r Rect) IsEmpty() bool {
	return r.MinX > r.MaxX || r.MinY > r.MaxY
}

// Width returns the rectangle's width.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the rectangle's height.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// ExtendPoint grows r (in place semantics via return value) to contain p.
func (r Rect) ExtendPoint(p Point) Rect {
	if r.IsEmpty() {
		return Rect{p.X, p.Y, p.X, p.Y}
	}
	return Rect{
		MinX: math.Min(r.MinX, p.X), MinY: math.Min(r.MinY, p.Y),
		MaxX: math.Max(r.MaxX, p.X), MaxY: math.Max(r.MaxY, p.Y),
	}
}

// Union returns the smallest rectangle containing both r and o. Either
// operand may be empty.
func (r Rect) Union(o Rect) Rect {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	return Rect{
		MinX: math.Min(r.MinX, o.MinX), MinY: math.Min(r.MinY, o.MinY),
		MaxX: math.Max(r.MaxX, o.MaxX), MaxY: math.Max(r.MaxY, o.MaxY),
	}
}

// Contains reports whether p lies inside r, up to eps.
func (r Rect) Contains(p Point, eps float64) bool {
	return p.X >= r.MinX-eps && p.X <= r.MaxX+eps && p.Y >= r.MinY-eps && p.Y <= r.MaxY+eps
}
