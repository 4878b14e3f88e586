package vpath

import (
	"github.com/vsvg-go/vsvg/crop"
	"github.com/vsvg-go/vsvg/geom"
)

// Polyline is the second PathData variant: a plain point sequence,
// the natural representation for already-flattened or scanned
// geometry (hatching output, imported polylines) where no curve
// control points need preserving.
type Polyline struct {
	Points []geom.Point
	Closed bool
}

// NewPolyline wraps a point slice.
func NewPolyline(pts []geom.Point) *Polyline {
	return &Polyline{Points: pts}
}

func (p *Polyline) First() (geom.Point, bool) {
	if len(p.Points) == 0 {
		return geom.Point{}, false
	}
	return p.Points[0], true
}

func (p *Polyline) Last() (geom.Point, bool) {
	if len(p.Points) == 0 {
		return geom.Point{}, false
	}
	if p.Closed {
		return p.Points[0], true
	}
	return p.Points[len(p.Points)-1], true
}

func (p *Polyline) IsEmpty() bool {
	return len(p.Points) == 0
}

func (p *Polyline) PointCount() int {
	return len(p.Points)
}

func (p *Polyline) Flip() PathData {
	pts := make([]geom.Point, len(p.Points))
	for i, v := range p.Points {
		pts[len(p.Points)-1-i] = v
	}
	return &Polyline{Points: pts, Closed: p.Closed}
}

func (p *Polyline) Bounds() geom.Rect {
	r := geom.EmptyRect
	for _, pt := range p.Points {
		r = r.ExtendPoint(pt)
	}
	return r
}

func (p *Polyline) Transform(m geom.Affine) PathData {
	pts := make([]geom.Point, len(p.Points))
	for i, pt := range p.Points {
		pts[i] = m.Apply(pt)
	}
	return &Polyline{Points: pts, Closed: p.Closed}
}

// Flatten is a no-op for a polyline: it is already flat. tolerance is
// ignored, matching the teacher's shape-already-absolute treatment in
// svgicon path handling where line segments pass through untouched.
func (p *Polyline) Flatten(tolerance float64) []*Polyline {
	if p.IsEmpty() {
		return nil
	}
	return []*Polyline{p}
}

// Crop clips the polyline's edges (and, if closed, the implicit
// closing edge) against rect using the same exact line cropper as
// BezierPath, chaining contiguous kept segments into output polylines.
func (p *Polyline) Crop(rect geom.Rect) []PathData {
	if len(p.Points) == 0 {
		return nil
	}
	if len(p.Points) == 1 {
		if rect.Contains(p.Points[0], 0) {
			return []PathData{&Polyline{Points: p.Points}}
		}
		return nil
	}

	pts := p.Points
	if p.Closed {
		pts = append(append([]geom.Point{}, pts...), pts[0])
	}

	var out []*Polyline
	var active int = -1
	for i := 0; i+1 < len(pts); i++ {
		segs := crop.Rectangle(crop.Line{P0: pts[i], P1: pts[i+1]}, rect)
		for _, s := range segs {
			if active < 0 || !lastPoint(out[active]).Equal(s.P0) {
				out = append(out, &Polyline{Points: []geom.Point{s.P0}})
				active = len(out) - 1
			}
			out[active].Points = append(out[active].Points, s.P1)
		}
	}
	if len(out) == 0 {
		return nil
	}
	result := make([]PathData, len(out))
	for i, pl := range out {
		result[i] = pl
	}
	return result
}

func lastPoint(p *Polyline) geom.Point {
	return p.Points[len(p.Points)-1]
}
