package vpath

import (
	"math"

	"github.com/vsvg-go/vsvg/crop"
	"github.com/vsvg-go/vsvg/geom"
)

// BezierPath is an ordered sequence of drawing commands, the first
// variant of PathData (spec.md §3).
type BezierPath struct {
	Ops []Op
}

// NewBezierPath wraps a command slice.
func NewBezierPath(ops []Op) *BezierPath {
	return &BezierPath{Ops: ops}
}

// elemKind tags a subpath element.
type elemKind int

const (
	elemLine elemKind = iota
	elemQuad
	elemCubic
)

// element is one segment within a subpath, decoded from Ops for the
// operations (flatten, flip, crop, bounds) that need to walk segments
// rather than raw commands.
type element struct {
	kind   elemKind
	ctrl1  geom.Point // unused for elemLine
	ctrl2  geom.Point // only used for elemCubic
	to     geom.Point
}

// subpath is one MoveTo-started, optionally ClosePath-terminated run.
type subpath struct {
	start  geom.Point
	elems  []element
	closed bool
}

func (s subpath) last() geom.Point {
	if s.closed {
		return s.start
	}
	if len(s.elems) == 0 {
		return s.start
	}
	return s.elems[len(s.elems)-1].to
}

// decode splits a BezierPath's flat command list into subpaths.
func decodeSubpaths(ops []Op) []subpath {
	var subs []subpath
	var cur *subpath
	for _, op := range ops {
		switch o := op.(type) {
		case MoveTo:
			subs = append(subs, subpath{start: geom.Point(o)})
			cur = &subs[len(subs)-1]
		case LineTo:
			if cur == nil {
				subs = append(subs, subpath{start: geom.Point(o)})
				cur = &subs[len(subs)-1]
				continue
			}
			cur.elems = append(cur.elems, element{kind: elemLine, to: geom.Point(o)})
		case QuadTo:
			if cur == nil {
				continue
			}
			cur.elems = append(cur.elems, element{kind: elemQuad, ctrl1: o.Ctrl, to: o.To})
		case CurveTo:
			if cur == nil {
				continue
			}
			cur.elems = append(cur.elems, element{kind: elemCubic, ctrl1: o.Ctrl1, ctrl2: o.Ctrl2, to: o.To})
		case ClosePath:
			if cur != nil {
				cur.closed = true
			}
		}
	}
	return subs
}

// encode rebuilds a flat command list from subpaths.
func encodeSubpaths(subs []subpath) []Op {
	var ops []Op
	for _, s := range subs {
		ops = append(ops, MoveTo(s.start))
		for _, e := range s.elems {
			switch e.kind {
			case elemLine:
				ops = append(ops, LineTo(e.to))
			case elemQuad:
				ops = append(ops, QuadTo{Ctrl: e.ctrl1, To: e.to})
			case elemCubic:
				ops = append(ops, CurveTo{Ctrl1: e.ctrl1, Ctrl2: e.ctrl2, To: e.to})
			}
		}
		if s.closed {
			ops = append(ops, ClosePath{})
		}
	}
	return ops
}

// First returns the path's first point.
func (b *BezierPath) First() (geom.Point, bool) {
	for _, op := range b.Ops {
		if m, ok := op.(MoveTo); ok {
			return geom.Point(m), true
		}
	}
	return geom.Point{}, false
}

// Last returns the path's last point (the subpath's start if the
// final subpath is closed).
func (b *BezierPath) Last() (geom.Point, bool) {
	subs := decodeSubpaths(b.Ops)
	if len(subs) == 0 {
		return geom.Point{}, false
	}
	return subs[len(subs)-1].last(), true
}

// IsEmpty reports whether the path carries no MoveTo.
func (b *BezierPath) IsEmpty() bool {
	_, ok := b.First()
	return !ok
}

// PointCount counts every non-ClosePath target point, per the
// display_vertices contract in spec.md §4.E.
func (b *BezierPath) PointCount() int {
	n := 0
	for _, op := range b.Ops {
		switch op.(type) {
		case MoveTo, LineTo, QuadTo, CurveTo:
			n++
		}
	}
	return n
}

// Flip reverses the path's point order: subpath order is reversed and
// each subpath's elements are reversed and re-parameterized so curves
// retain their shape traversed backwards.
func (b *BezierPath) Flip() PathData {
	subs := decodeSubpaths(b.Ops)
	out := make([]subpath, len(subs))
	for i, s := range subs {
		out[len(subs)-1-i] = flipSubpath(s)
	}
	return &BezierPath{Ops: encodeSubpaths(out)}
}

func flipSubpath(s subpath) subpath {
	anchors := make([]geom.Point, 0, len(s.elems)+1)
	anchors = append(anchors, s.start)
	for _, e := range s.elems {
		anchors = append(anchors, e.to)
	}
	n := len(anchors)
	newStart := anchors[n-1]
	var newElems []element
	for i := n - 1; i > 0; i-- {
		e := s.elems[i-1]
		switch e.kind {
		case elemLine:
			newElems = append(newElems, element{kind: elemLine, to: anchors[i-1]})
		case elemQuad:
			newElems = append(newElems, element{kind: elemQuad, ctrl1: e.ctrl1, to: anchors[i-1]})
		case elemCubic:
			newElems = append(newElems, element{kind: elemCubic, ctrl1: e.ctrl2, ctrl2: e.ctrl1, to: anchors[i-1]})
		}
	}
	return subpath{start: newStart, elems: newElems, closed: s.closed}
}

// Bounds returns the path's axis-aligned bounding rectangle: the
// union of each segment's true extent (not just its control points),
// grounded on the teacher's svgpdf/boudingbox.go BoundingBox
// accumulator pattern.
func (b *BezierPath) Bounds() geom.Rect {
	r := geom.EmptyRect
	for _, s := range decodeSubpaths(b.Ops) {
		cur := s.start
		r = r.ExtendPoint(cur)
		for _, e := range s.elems {
			switch e.kind {
			case elemLine:
				r = r.ExtendPoint(e.to)
			case elemQuad:
				r = r.Union(quadBounds(cur, e.ctrl1, e.to))
			case elemCubic:
				r = r.Union(cubicBounds(cur, e.ctrl1, e.ctrl2, e.to))
			}
			cur = e.to
		}
	}
	return r
}

func quadBounds(p0, p1, p2 geom.Point) geom.Rect {
	c1 := geom.Point{X: p0.X + 2.0/3*(p1.X-p0.X), Y: p0.Y + 2.0/3*(p1.Y-p0.Y)}
	c2 := geom.Point{X: p2.X + 2.0/3*(p1.X-p2.X), Y: p2.Y + 2.0/3*(p1.Y-p2.Y)}
	return cubicBounds(p0, c1, c2, p2)
}

func cubicBounds(p0, p1, p2, p3 geom.Point) geom.Rect {
	r := geom.EmptyRect.ExtendPoint(p0).ExtendPoint(p3)
	for _, t := range cubicExtremaRoots(p0.X, p1.X, p2.X, p3.X) {
		r = r.ExtendPoint(evalCubicPoint(p0, p1, p2, p3, t))
	}
	for _, t := range cubicExtremaRoots(p0.Y, p1.Y, p2.Y, p3.Y) {
		r = r.ExtendPoint(evalCubicPoint(p0, p1, p2, p3, t))
	}
	return r
}

// cubicExtremaRoots solves B'(t)=0 for a single cubic coordinate,
// exactly the teacher's svgpdf/boudingbox.go cubicDerivative/quadraticRoots.
func cubicExtremaRoots(p0, p1, p2, p3 float64) []float64 {
	a := 3*p3 - 9*p2 + 9*p1 - 3*p0
	b := 6*p2 - 12*p1 + 6*p0
	c := 3*p1 - 3*p0
	var roots []float64
	if a == 0 {
		if b != 0 {
			roots = append(roots, -c/b)
		}
	} else {
		d := b*b - 4*a*c
		if d >= 0 {
			sq := math.Sqrt(d)
			roots = append(roots, (-b+sq)/(2*a), (-b-sq)/(2*a))
		}
	}
	out := roots[:0]
	for _, t := range roots {
		if t > 0 && t < 1 {
			out = append(out, t)
		}
	}
	return out
}

func evalCubicPoint(p0, p1, p2, p3 geom.Point, t float64) geom.Point {
	omt := 1 - t
	a := omt * omt * omt
	bb := 3 * omt * omt * t
	cc := 3 * omt * t * t
	d := t * t * t
	return geom.Point{
		X: a*p0.X + bb*p1.X + cc*p2.X + d*p3.X,
		Y: a*p0.Y + bb*p1.Y + cc*p2.Y + d*p3.Y,
	}
}

// Transform applies an affine transform to every point in the path.
func (b *BezierPath) Transform(m geom.Affine) PathData {
	ops := make([]Op, len(b.Ops))
	for i, op := range b.Ops {
		switch o := op.(type) {
		case MoveTo:
			ops[i] = MoveTo(m.Apply(geom.Point(o)))
		case LineTo:
			ops[i] = LineTo(m.Apply(geom.Point(o)))
		case QuadTo:
			ops[i] = QuadTo{Ctrl: m.Apply(o.Ctrl), To: m.Apply(o.To)}
		case CurveTo:
			ops[i] = CurveTo{Ctrl1: m.Apply(o.Ctrl1), Ctrl2: m.Apply(o.Ctrl2), To: m.Apply(o.To)}
		case ClosePath:
			ops[i] = ClosePath{}
		}
	}
	return &BezierPath{Ops: ops}
}

// Flatten decomposes the path into one polyline per subpath, each
// approximated within tolerance. Grounded on
// seehuhn-go-render/raster.go flattenQuadratic/flattenCubic (Wang's
// formula segment-count estimate), adapted from device-space/CTM-aware
// tolerance to a flat user-space tolerance.
func (b *BezierPath) Flatten(tolerance float64) []*Polyline {
	var out []*Polyline
	for _, s := range decodeSubpaths(b.Ops) {
		pts := []geom.Point{s.start}
		cur := s.start
		for _, e := range s.elems {
			switch e.kind {
			case elemLine:
				pts = append(pts, e.to)
			case elemQuad:
				pts = append(pts, flattenQuad(cur, e.ctrl1, e.to, tolerance)...)
			case elemCubic:
				pts = append(pts, flattenCubic(cur, e.ctrl1, e.ctrl2, e.to, tolerance)...)
			}
			cur = e.to
		}
		if s.closed {
			// the closing segment uses the same tolerance as any
			// other segment (spec.md §9 open question, pinned here).
			pts = append(pts, s.start)
		}
		out = append(out, &Polyline{Points: pts})
	}
	return out
}

func flattenQuad(p0, p1, p2 geom.Point, tolerance float64) []geom.Point {
	// promote to cubic and reuse the cubic estimator, matching the
	// teacher's treatment of quads as a cubic special case nowhere
	// explicit but implied by its shared Operation dispatch.
	c1 := geom.Point{X: p0.X + 2.0/3*(p1.X-p0.X), Y: p0.Y + 2.0/3*(p1.Y-p0.Y)}
	c2 := geom.Point{X: p2.X + 2.0/3*(p1.X-p2.X), Y: p2.Y + 2.0/3*(p1.Y-p2.Y)}
	return flattenCubic(p0, c1, c2, p2, tolerance)
}

func flattenCubic(p0, p1, p2, p3 geom.Point, tolerance float64) []geom.Point {
	d1 := geom.Point{X: p0.X - 2*p1.X + p2.X, Y: p0.Y - 2*p1.Y + p2.Y}
	d2 := geom.Point{X: p1.X - 2*p2.X + p3.X, Y: p1.Y - 2*p2.Y + p3.Y}
	mDev := maxF(hypot(d1), hypot(d2))
	n := 1
	if mDev > 0 && tolerance > 0 {
		nf := math.Sqrt(3 * mDev / (4 * tolerance))
		if nf > 1 {
			n = int(math.Ceil(nf))
		}
	}
	out := make([]geom.Point, 0, n)
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		out = append(out, evalCubicPoint(p0, p1, p2, p3, t))
	}
	return out
}

// Crop clips every element of every subpath against rect, emitting
// one or more BezierPath fragments, per spec.md §4.C applied over the
// whole path.
func (b *BezierPath) Crop(rect geom.Rect) []PathData {
	var outSubs []subpath
	for _, s := range decodeSubpaths(b.Ops) {
		outSubs = append(outSubs, cropSubpath(s, rect)...)
	}
	if len(outSubs) == 0 {
		return nil
	}
	result := make([]PathData, len(outSubs))
	for i, s := range outSubs {
		result[i] = &BezierPath{Ops: encodeSubpaths([]subpath{s})}
	}
	return result
}

// cropSubpath walks a subpath's elements, cropping each to rect and
// chaining kept fragments; a dropped gap starts a fresh output
// subpath (a new MoveTo), per the cropper's "preserve parameterization,
// possibly multiple sub-primitives" contract.
func cropSubpath(s subpath, rect geom.Rect) []subpath {
	cur := s.start
	var out []subpath
	active := -1

	appendLine := func(l crop.Line) {
		if active < 0 || !out[active].last().Equal(l.P0) {
			out = append(out, subpath{start: l.P0})
			active = len(out) - 1
		}
		out[active].elems = append(out[active].elems, element{kind: elemLine, to: l.P1})
	}
	appendCubic := func(c crop.Cubic) {
		if active < 0 || !out[active].last().Equal(c.P0) {
			out = append(out, subpath{start: c.P0})
			active = len(out) - 1
		}
		out[active].elems = append(out[active].elems, element{kind: elemCubic, ctrl1: c.C1, ctrl2: c.C2, to: c.P3})
	}

	elems := s.elems
	if s.closed {
		elems = append(append([]element{}, elems...), element{kind: elemLine, to: s.start})
	}
	for _, e := range elems {
		switch e.kind {
		case elemLine:
			for _, l := range crop.Rectangle(crop.Line{P0: cur, P1: e.to}, rect) {
				appendLine(l)
			}
		case elemQuad:
			c1 := geom.Point{X: cur.X + 2.0/3*(e.ctrl1.X-cur.X), Y: cur.Y + 2.0/3*(e.ctrl1.Y-cur.Y)}
			c2 := geom.Point{X: e.to.X + 2.0/3*(e.ctrl1.X-e.to.X), Y: e.to.Y + 2.0/3*(e.ctrl1.Y-e.to.Y)}
			for _, c := range crop.RectangleCubic(crop.Cubic{P0: cur, C1: c1, C2: c2, P3: e.to}, rect) {
				appendCubic(c)
			}
		case elemCubic:
			for _, c := range crop.RectangleCubic(crop.Cubic{P0: cur, C1: e.ctrl1, C2: e.ctrl2, P3: e.to}, rect) {
				appendCubic(c)
			}
		}
		cur = e.to
	}
	return out
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func hypot(p geom.Point) float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}
