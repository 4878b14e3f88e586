package vpath

import "github.com/vsvg-go/vsvg/geom"

// Path pairs a geometry payload with its inheritable style metadata,
// mirroring the teacher's SvgPath (path + style) pairing in
// svgicon/iconcursor.go, generalized to vsvg's PathData polymorphism.
type Path struct {
	Data     PathData
	Metadata PathMetadata
}

// NewPath wraps data with empty (fully-inherited) metadata.
func NewPath(data PathData) *Path {
	return &Path{Data: data}
}

func (p *Path) First() (geom.Point, bool) { return p.Data.First() }
func (p *Path) Last() (geom.Point, bool)  { return p.Data.Last() }
func (p *Path) IsEmpty() bool             { return p.Data == nil || p.Data.IsEmpty() }
func (p *Path) Bounds() geom.Rect         { return p.Data.Bounds() }

// Flip reverses point order in place.
func (p *Path) Flip() {
	p.Data = p.Data.Flip()
}

// Transform applies an affine transform in place.
func (p *Path) Transform(m geom.Affine) {
	p.Data = p.Data.Transform(m)
}

// Flatten returns one Path per produced polyline, each carrying a copy
// of the receiver's metadata, per spec.md §4.B ("metadata is copied to
// every produced polyline").
func (p *Path) Flatten(tolerance float64) []*Path {
	lines := p.Data.Flatten(tolerance)
	out := make([]*Path, len(lines))
	for i, l := range lines {
		out[i] = &Path{Data: l, Metadata: p.Metadata}
	}
	return out
}

// Crop clips the path against rect, returning zero or more fragments,
// each inheriting the receiver's metadata unchanged.
func (p *Path) Crop(rect geom.Rect) []*Path {
	frags := p.Data.Crop(rect)
	out := make([]*Path, len(frags))
	for i, f := range frags {
		out[i] = &Path{Data: f, Metadata: p.Metadata}
	}
	return out
}

// Join concatenates other onto the receiver if the receiver's last
// point lies within tolerance of other's first point, and reports
// whether it did. The shared junction point appears once: other's
// leading MoveTo is dropped (for a polyline receiver, other's first
// point is dropped). If the gap exceeds tolerance, Join returns false
// and leaves the receiver unchanged; it does not concatenate across a
// gap.
//
// Joining a closed path into an open one appends the closed path's
// points after the junction is deduplicated, per the open-question
// resolution in spec.md §9.
func (p *Path) Join(other *Path, tolerance float64) bool {
	last, ok := p.Last()
	first, ok2 := other.First()
	if !ok || !ok2 || last.Dist(first) > tolerance {
		return false
	}

	switch a := p.Data.(type) {
	case *BezierPath:
		ops := append([]Op{}, a.Ops...)
		var otherOps []Op
		switch b := other.Data.(type) {
		case *BezierPath:
			otherOps = b.Ops
		case *Polyline:
			otherOps = polylineToOps(b)
		}
		if len(otherOps) > 0 {
			if m, isMove := otherOps[0].(MoveTo); isMove {
				_ = m
				otherOps = otherOps[1:]
			}
		}
		ops = append(ops, otherOps...)
		p.Data = &BezierPath{Ops: ops}
	case *Polyline:
		pts := append([]geom.Point{}, a.Points...)
		var otherPts []geom.Point
		switch b := other.Data.(type) {
		case *Polyline:
			otherPts = b.Points
		case *BezierPath:
			flat := b.Flatten(1e9) // structural join: keep every vertex
			if len(flat) > 0 {
				otherPts = flat[0].Points
			}
		}
		if len(otherPts) > 0 {
			otherPts = otherPts[1:]
		}
		pts = append(pts, otherPts...)
		p.Data = &Polyline{Points: pts}
	}
	return true
}

// Explode splits a compound path (one carrying multiple subpaths) into
// one Path per subpath, each inheriting the receiver's metadata. A
// path with a single subpath explodes to a one-element slice
// (itself). Grounded on the join_paths/explode relationship in
// optimization.rs: joining never crosses a MoveTo gap, so a compound
// path must be exploded first for its internal subpaths to become
// independently joinable.
func (p *Path) Explode() []*Path {
	bp, ok := p.Data.(*BezierPath)
	if !ok {
		return []*Path{p}
	}
	subs := decodeSubpaths(bp.Ops)
	if len(subs) <= 1 {
		return []*Path{p}
	}
	out := make([]*Path, len(subs))
	for i, s := range subs {
		out[i] = &Path{Data: &BezierPath{Ops: encodeSubpaths([]subpath{s})}, Metadata: p.Metadata}
	}
	return out
}

func polylineToOps(p *Polyline) []Op {
	if len(p.Points) == 0 {
		return nil
	}
	ops := make([]Op, 0, len(p.Points)+1)
	ops = append(ops, MoveTo(p.Points[0]))
	for _, pt := range p.Points[1:] {
		ops = append(ops, LineTo(pt))
	}
	if p.Closed {
		ops = append(ops, ClosePath{})
	}
	return ops
}
