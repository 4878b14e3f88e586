package hatch

import (
	"math"
	"sort"

	polyclip "github.com/ctessum/polyclip-go"

	"github.com/vsvg-go/vsvg/geom"
	"github.com/vsvg-go/vsvg/vpath"
)

// Polygon is a closed shape made of an exterior ring plus zero or
// more hole rings, each a list of vertices with an implicit closing
// edge back to its first point (no repeated last point).
type Polygon struct {
	Exterior []geom.Point
	Holes    [][]geom.Point
}

// signedArea is twice the shoelace sum; its sign gives the ring's
// winding direction (positive: counterclockwise in a y-up frame).
func signedArea(ring []geom.Point) float64 {
	if len(ring) < 3 {
		return 0
	}
	sum := 0.0
	for i, p := range ring {
		q := ring[(i+1)%len(ring)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

func boundingRect(ring []geom.Point) geom.Rect {
	r := geom.EmptyRect
	for _, p := range ring {
		r = r.ExtendPoint(p)
	}
	return r
}

func (p Polygon) bounds() geom.Rect {
	r := boundingRect(p.Exterior)
	for _, h := range p.Holes {
		r = r.Union(boundingRect(h))
	}
	return r
}

// centroid is the exterior ring's area-weighted centroid, falling
// back to the vertex average for a degenerate (zero-area) ring.
func (p Polygon) centroid() geom.Point {
	ring := p.Exterior
	if len(ring) < 3 {
		return vertexAverage(ring)
	}
	a := signedArea(ring)
	if a == 0 {
		return vertexAverage(ring)
	}
	var cx, cy float64
	for i, pt := range ring {
		q := ring[(i+1)%len(ring)]
		cross := pt.X*q.Y - q.X*pt.Y
		cx += (pt.X + q.X) * cross
		cy += (pt.Y + q.Y) * cross
	}
	factor := 1.0 / (6 * a)
	return geom.Point{X: cx * factor, Y: cy * factor}
}

func vertexAverage(ring []geom.Point) geom.Point {
	if len(ring) == 0 {
		return geom.Point{}
	}
	var sx, sy float64
	for _, p := range ring {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(ring))
	return geom.Point{X: sx / n, Y: sy / n}
}

// area is the polygon's unsigned area (exterior minus holes), used to
// pick the largest fragment after an inset that splits the shape.
func (p Polygon) area() float64 {
	a := math.Abs(signedArea(p.Exterior))
	for _, h := range p.Holes {
		a -= math.Abs(signedArea(h))
	}
	return a
}

// rotate returns a copy of p with every vertex rotated by theta
// radians around center.
func (p Polygon) rotate(theta float64, center geom.Point) Polygon {
	m := geom.Identity.RotateAround(theta, center.X, center.Y)
	out := Polygon{Exterior: rotateRing(p.Exterior, m)}
	for _, h := range p.Holes {
		out.Holes = append(out.Holes, rotateRing(h, m))
	}
	return out
}

func rotateRing(ring []geom.Point, m geom.Affine) []geom.Point {
	out := make([]geom.Point, len(ring))
	for i, p := range ring {
		out[i] = m.Apply(p)
	}
	return out
}

// toBoundaryPaths renders a polygon's exterior and hole rings as
// closed Polyline paths, per hatch.rs's polygon_to_boundary_paths.
func (p Polygon) toBoundaryPaths() []*vpath.Path {
	var out []*vpath.Path
	if len(p.Exterior) >= 3 {
		out = append(out, vpath.NewPath(&vpath.Polyline{Points: append([]geom.Point{}, p.Exterior...), Closed: true}))
	}
	for _, h := range p.Holes {
		if len(h) >= 3 {
			out = append(out, vpath.NewPath(&vpath.Polyline{Points: append([]geom.Point{}, h...), Closed: true}))
		}
	}
	return out
}

// scanIntervals returns the x-ranges, sorted left to right, where the
// horizontal line y=level lies inside the polygon (exterior minus
// holes), by the standard even-odd scanline-fill rule: collect every
// non-horizontal edge crossing of y=level across every ring, sort by
// x, and pair up consecutive crossings as interior intervals.
func (p Polygon) scanIntervals(level float64) [][2]float64 {
	var xs []float64
	xs = append(xs, edgeCrossings(p.Exterior, level)...)
	for _, h := range p.Holes {
		xs = append(xs, edgeCrossings(h, level)...)
	}
	sort.Float64s(xs)

	var out [][2]float64
	for i := 0; i+1 < len(xs); i += 2 {
		out = append(out, [2]float64{xs[i], xs[i+1]})
	}
	return out
}

func edgeCrossings(ring []geom.Point, y float64) []float64 {
	var xs []float64
	n := len(ring)
	for i := 0; i < n; i++ {
		a, b := ring[i], ring[(i+1)%n]
		if a.Y == b.Y {
			continue
		}
		lo, hi := a.Y, b.Y
		if lo > hi {
			lo, hi = hi, lo
		}
		if y < lo || y >= hi {
			continue
		}
		t := (y - a.Y) / (b.Y - a.Y)
		xs = append(xs, a.X+t*(b.X-a.X))
	}
	return xs
}

// inset shrinks p inward by distance (spacing/2), offsetting every
// ring along its own inward normal and self-unioning the combined
// edge set through polyclip-go to resolve the self-intersections a
// naive miter offset introduces at sharp concave corners. Returns the
// resulting simple polygon fragments, largest-area first; an
// entirely-eroded shape returns nil. Grounded on hatch.rs's
// `polygon.buffer(inset_distance)` step, built on the ecosystem's
// boolean-geometry primitive instead of a dedicated offset library
// (none appears in the retrieved pack).
func (p Polygon) inset(distance float64) []Polygon {
	ext := offsetRing(p.Exterior, distance)
	// an exterior offset past its own width comes out inverted (every
	// edge reversed, or its orientation flipped): nothing is left
	if len(ext) >= 3 {
		reversed := true
		for i := range ext {
			a, b := p.Exterior[i], p.Exterior[(i+1)%len(ext)]
			c, d := ext[i], ext[(i+1)%len(ext)]
			reversed = reversed && (b.X-a.X)*(d.X-c.X)+(b.Y-a.Y)*(d.Y-c.Y) <= 0
		}
		if reversed || signedArea(ext)*signedArea(p.Exterior) <= 0 {
			return nil
		}
	}
	var raw polyclip.Polygon
	raw = append(raw, toPolyclipContour(ext))
	for _, h := range p.Holes {
		raw = append(raw, toPolyclipContour(offsetRing(h, distance)))
	}

	resolved := raw.Construct(polyclip.UNION, raw)
	return groupContours(resolved)
}

// offsetRing moves every edge of ring inward by distance along its
// perpendicular (miter join at each vertex); self-intersections this
// introduces at concave corners are left for the caller's self-union
// pass to resolve.
func offsetRing(ring []geom.Point, distance float64) []geom.Point {
	n := len(ring)
	if n < 3 {
		return append([]geom.Point{}, ring...)
	}
	area := signedArea(ring)
	sign := 1.0
	if area < 0 {
		sign = -1.0
	}

	type offsetLine struct{ p0, dir geom.Point }
	lines := make([]offsetLine, n)
	for i := 0; i < n; i++ {
		a, b := ring[i], ring[(i+1)%n]
		dx, dy := b.X-a.X, b.Y-a.Y
		length := math.Hypot(dx, dy)
		if length == 0 {
			lines[i] = offsetLine{p0: a, dir: geom.Point{X: 1}}
			continue
		}
		dx, dy = dx/length, dy/length
		nx, ny := sign*-dy, sign*dx // inward normal
		lines[i] = offsetLine{
			p0:  geom.Point{X: a.X + nx*distance, Y: a.Y + ny*distance},
			dir: geom.Point{X: dx, Y: dy},
		}
	}

	out := make([]geom.Point, n)
	for i := 0; i < n; i++ {
		prev := lines[(i-1+n)%n]
		cur := lines[i]
		if pt, ok := lineIntersect(prev.p0, prev.dir, cur.p0, cur.dir); ok {
			out[i] = pt
		} else {
			out[i] = cur.p0
		}
	}
	return out
}

// lineIntersect solves p = p0 + t*d0 = q0 + s*d1 for the intersection
// of two infinite lines given as point+direction.
func lineIntersect(p0, d0, q0, d1 geom.Point) (geom.Point, bool) {
	denom := d0.X*d1.Y - d0.Y*d1.X
	if math.Abs(denom) < 1e-12 {
		return geom.Point{}, false
	}
	dx, dy := q0.X-p0.X, q0.Y-p0.Y
	t := (dx*d1.Y - dy*d1.X) / denom
	return geom.Point{X: p0.X + t*d0.X, Y: p0.Y + t*d0.Y}, true
}

func toPolyclipContour(ring []geom.Point) polyclip.Contour {
	c := make(polyclip.Contour, len(ring))
	for i, p := range ring {
		c[i] = polyclip.Point{X: p.X, Y: p.Y}
	}
	return c
}

func fromPolyclipContour(c polyclip.Contour) []geom.Point {
	out := make([]geom.Point, len(c))
	for i, p := range c {
		out[i] = geom.Point{X: p.X, Y: p.Y}
	}
	return out
}

// groupContours partitions a flat polyclip result into Polygon
// fragments: every positively-wound contour starts a shell, and every
// negatively-wound contour is attached as a hole to the shell whose
// ring contains one of its vertices. Returned in descending area
// order.
func groupContours(poly polyclip.Polygon) []Polygon {
	var shells []Polygon
	var holes [][]geom.Point
	for _, c := range poly {
		ring := fromPolyclipContour(c)
		if len(ring) < 3 {
			continue
		}
		if signedArea(ring) >= 0 {
			shells = append(shells, Polygon{Exterior: ring})
		} else {
			holes = append(holes, ring)
		}
	}
	for _, h := range holes {
		if len(h) == 0 {
			continue
		}
		best := -1
		for i := range shells {
			if pointInRing(h[0], shells[i].Exterior) {
				best = i
				break
			}
		}
		if best >= 0 {
			shells[best].Holes = append(shells[best].Holes, h)
		}
	}
	sort.Slice(shells, func(i, j int) bool { return shells[i].area() > shells[j].area() })
	return shells
}

// pointInRing is a standard even-odd ray-casting point-in-polygon
// test.
func pointInRing(p geom.Point, ring []geom.Point) bool {
	inside := false
	n := len(ring)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := ring[i], ring[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}
