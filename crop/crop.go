// Package crop implements the exact rectangular clipper for line
// segments and cubic Béziers used by vpath.Path.Crop. It preserves
// curve parameterization: a cropped cubic sub-range is itself emitted
// as a cubic, never flattened to a polyline.
//
// Grounded on the teacher's svgpdf/boudingbox.go bounding-box root
// solver (quadraticRoots/cubicDerivative/determinant), generalized one
// derivative order up: instead of solving B'(t)=0 for curve extrema,
// the cropper solves B(t)=c for the crop-plane crossing, so the
// quadratic solver there becomes a cubic solver here.
package crop

import (
	"math"
	"sort"

	"github.com/vsvg-go/vsvg/geom"
)

// epsilon is "10 times machine epsilon", per spec.md §4.C, used to
// snap a computed root to the segment endpoints {0,1}.
var epsilon = 10 * (math.Nextafter(1, 2) - 1)

// Line is a straight segment.
type Line struct{ P0, P1 geom.Point }

// Cubic is a cubic Bézier segment (start, two controls, end).
type Cubic struct{ P0, C1, C2, P3 geom.Point }

// axis selects which coordinate a half-plane test operates on.
type axis struct {
	get func(geom.Point) float64
	set func(p *geom.Point, v float64)
}

var xAxis = axis{
	get: func(p geom.Point) float64 { return p.X },
	set: func(p *geom.Point, v float64) { p.X = v },
}

var yAxis = axis{
	get: func(p geom.Point) float64 { return p.Y },
	set: func(p *geom.Point, v float64) { p.Y = v },
}

// side is +1 to keep p.axis < c (left/top half-plane) or -1 to keep
// p.axis > c (right/bottom half-plane).
type side int

const (
	keepLess side = 1
	keepMore side = -1
)

func inHalfPlane(v, c float64, s side) bool {
	if s == keepLess {
		return v <= c
	}
	return v >= c
}

// Axis selects the coordinate a half-plane crop operates on.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) axis() axis {
	if a == AxisX {
		return xAxis
	}
	return yAxis
}

// LineHalfPlane crops a line segment against the half-plane
// {p : p.axis <= c} (keepLess) or {p : p.axis >= c} (!keepLess).
func LineHalfPlane(l Line, a Axis, c float64, keepLessSide bool) []Line {
	s := keepMore
	if keepLessSide {
		s = keepLess
	}
	return lineHalfPlane(l, a.axis(), c, s)
}

// CubicHalfPlane crops a cubic Bézier against the half-plane
// {p : p.axis <= c} (keepLess) or {p : p.axis >= c} (!keepLess).
func CubicHalfPlane(cu Cubic, a Axis, c float64, keepLessSide bool) []Cubic {
	s := keepMore
	if keepLessSide {
		s = keepLess
	}
	return cubicHalfPlane(cu, a.axis(), c, s)
}

// Rectangle crops a line segment against rect, applying the four
// sequential half-plane crops (left, right, top, bottom) specified in
// spec.md §4.C. Returns 0 or 1 sub-segments.
func Rectangle(l Line, rect geom.Rect) []Line {
	segs := []Line{l}
	segs = cropLinesHalfPlane(segs, xAxis, rect.MinX, keepMore)
	segs = cropLinesHalfPlane(segs, xAxis, rect.MaxX, keepLess)
	segs = cropLinesHalfPlane(segs, yAxis, rect.MinY, keepMore)
	segs = cropLinesHalfPlane(segs, yAxis, rect.MaxY, keepLess)
	return segs
}

// RectangleCubic crops a cubic Bézier against rect via the same four
// sequential half-plane crops. Returns zero or more sub-curves: a
// single half-plane crop yields at most 3, and each later crop may
// drop or further split the curves the previous one produced.
func RectangleCubic(c Cubic, rect geom.Rect) []Cubic {
	curves := []Cubic{c}
	curves = cropCubicsHalfPlane(curves, xAxis, rect.MinX, keepMore)
	curves = cropCubicsHalfPlane(curves, xAxis, rect.MaxX, keepLess)
	curves = cropCubicsHalfPlane(curves, yAxis, rect.MinY, keepMore)
	curves = cropCubicsHalfPlane(curves, yAxis, rect.MaxY, keepLess)
	return curves
}

func cropLinesHalfPlane(in []Line, ax axis, c float64, s side) []Line {
	var out []Line
	for _, l := range in {
		out = append(out, lineHalfPlane(l, ax, c, s)...)
	}
	return out
}

// lineHalfPlane crops a single line segment against one half-plane.
func lineHalfPlane(l Line, ax axis, c float64, s side) []Line {
	v0, v1 := ax.get(l.P0), ax.get(l.P1)
	if v0 == v1 {
		if inHalfPlane(v0, c, s) {
			return []Line{l}
		}
		return nil
	}
	t := (c - v0) / (v1 - v0)
	if t <= epsilon {
		t = 0
	} else if t >= 1-epsilon {
		t = 1
	}
	if t < 0 || t > 1 {
		// no intersection within the segment: keep whole line iff its
		// start lies in the kept half-plane.
		if inHalfPlane(v0, c, s) {
			return []Line{l}
		}
		return nil
	}
	mid := lerpPoint(l.P0, l.P1, t)
	// which side is kept: the one containing the segment's start when
	// t==0 is ambiguous, so decide by which endpoint is in range.
	startIn := inHalfPlane(v0, c, s)
	endIn := inHalfPlane(v1, c, s)
	switch {
	case startIn && endIn:
		return []Line{l}
	case startIn && !endIn:
		return []Line{{P0: l.P0, P1: mid}}
	case !startIn && endIn:
		return []Line{{P0: mid, P1: l.P1}}
	default:
		return nil
	}
}

func lerpPoint(p0, p1 geom.Point, t float64) geom.Point {
	return geom.Point{
		X: p0.X + (p1.X-p0.X)*t,
		Y: p0.Y + (p1.Y-p0.Y)*t,
	}
}

func cropCubicsHalfPlane(in []Cubic, ax axis, c float64, s side) []Cubic {
	var out []Cubic
	for _, cu := range in {
		out = append(out, cubicHalfPlane(cu, ax, c, s)...)
	}
	return out
}

// cubicHalfPlane crops a single cubic against one half-plane: solves
// B_axis(t) = c for up to three roots in (0,1), sorts them with the
// segment endpoints, and keeps the sub-ranges whose midpoint lies in
// the kept half-plane, merging adjacent kept ranges.
func cubicHalfPlane(cu Cubic, ax axis, c float64, s side) []Cubic {
	p0, p1, p2, p3 := ax.get(cu.P0), ax.get(cu.C1), ax.get(cu.C2), ax.get(cu.P3)
	roots := cubicRoots(p0, p1, p2, p3, c)

	ts := make([]float64, 0, len(roots)+2)
	ts = append(ts, 0, 1)
	for _, t := range roots {
		if t > epsilon && t < 1-epsilon {
			ts = append(ts, t)
		}
	}
	sort.Float64s(ts)
	ts = dedupeSorted(ts, epsilon)

	// determine keep/drop for each [ts[i], ts[i+1]] range
	type rng struct {
		t0, t1 float64
		keep   bool
	}
	var ranges []rng
	for i := 0; i < len(ts)-1; i++ {
		t0, t1 := ts[i], ts[i+1]
		mid := (t0 + t1) / 2
		v := evalCubic(p0, p1, p2, p3, mid)
		ranges = append(ranges, rng{t0, t1, inHalfPlane(v, c, s)})
	}

	// merge contiguous kept ranges (tangent curves produce adjacent
	// kept ranges across a zero-width dropped sliver).
	var merged []rng
	for _, r := range ranges {
		if !r.keep {
			continue
		}
		if n := len(merged); n > 0 && merged[n-1].t1 == r.t0 {
			merged[n-1].t1 = r.t1
			continue
		}
		merged = append(merged, r)
	}

	out := make([]Cubic, 0, len(merged))
	for _, r := range merged {
		out = append(out, subCubic(cu, r.t0, r.t1))
	}
	return out
}

func dedupeSorted(ts []float64, eps float64) []float64 {
	out := ts[:0:0]
	for i, t := range ts {
		if i > 0 && t-out[len(out)-1] <= eps {
			continue
		}
		out = append(out, t)
	}
	return out
}

func evalCubic(p0, p1, p2, p3, t float64) float64 {
	omt := 1 - t
	return omt*omt*omt*p0 + 3*omt*omt*t*p1 + 3*omt*t*t*p2 + t*t*t*p3
}

// subCubic returns the cubic Bézier sub-segment over [t0, t1] using
// de Casteljau splitting, preserving the curve's parameterization.
func subCubic(cu Cubic, t0, t1 float64) Cubic {
	_, right := splitCubic(cu, t0)
	// re-parameterize t1 into the right sub-curve's own [0,1] range
	t1p := (t1 - t0) / (1 - t0)
	if t0 >= 1-epsilon {
		t1p = 1
	}
	left, _ := splitCubic(right, t1p)
	return left
}

func splitCubic(cu Cubic, t float64) (left, right Cubic) {
	p01 := lerpPoint(cu.P0, cu.C1, t)
	p12 := lerpPoint(cu.C1, cu.C2, t)
	p23 := lerpPoint(cu.C2, cu.P3, t)
	p012 := lerpPoint(p01, p12, t)
	p123 := lerpPoint(p12, p23, t)
	p0123 := lerpPoint(p012, p123, t)
	left = Cubic{P0: cu.P0, C1: p01, C2: p012, P3: p0123}
	right = Cubic{P0: p0123, C1: p123, C2: p23, P3: cu.P3}
	return
}

// cubicRoots solves p(t) = c for t, where p is the cubic Bézier
// polynomial with control coordinates p0..p3, via Cardano's method.
// Generalizes the teacher's quadraticRoots (solved for derivative
// zeros) to a full cubic solve (solved for a level crossing).
func cubicRoots(p0, p1, p2, p3, c float64) []float64 {
	// B(t) = At^3 + Bt^2 + Ct + D - c, matching bezierSpline's
	// expansion in svgpdf/boudingbox.go.
	A := p3 - 3*p2 + 3*p1 - p0
	B := 3*p2 - 6*p1 + 3*p0
	C := 3*p1 - 3*p0
	D := p0 - c

	if math.Abs(A) < 1e-12 {
		return quadraticRoots(B, C, D)
	}

	// normalize to t^3 + at^2 + bt + d = 0
	a := B / A
	b := C / A
	d := D / A

	// depressed cubic t = x - a/3: x^3 + px + q = 0
	p := b - a*a/3
	q := 2*a*a*a/27 - a*b/3 + d
	offset := a / 3

	discriminant := q*q/4 + p*p*p/27
	var roots []float64
	switch {
	case discriminant > 1e-14:
		sqrtDisc := math.Sqrt(discriminant)
		u := math.Cbrt(-q/2 + sqrtDisc)
		v := math.Cbrt(-q/2 - sqrtDisc)
		roots = []float64{u + v - offset}
	case discriminant > -1e-14:
		// discriminant ~ 0: multiple real roots
		u := math.Cbrt(-q / 2)
		roots = []float64{2*u - offset, -u - offset}
	default:
		// three distinct real roots, trigonometric method
		r := math.Sqrt(-p * p * p / 27)
		phi := math.Acos(clamp(-q/(2*r), -1, 1))
		m := 2 * math.Sqrt(-p/3)
		for k := 0; k < 3; k++ {
			roots = append(roots, m*math.Cos((phi+2*math.Pi*float64(k))/3)-offset)
		}
	}
	return roots
}

func quadraticRoots(a, b, c float64) []float64 {
	if math.Abs(a) < 1e-12 {
		if math.Abs(b) < 1e-12 {
			return nil
		}
		return []float64{-c / b}
	}
	d := b*b - 4*a*c
	if d < 0 {
		return nil
	}
	if d == 0 {
		return []float64{-b / (2 * a)}
	}
	sq := math.Sqrt(d)
	return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
