// Package layer implements the ordered path collection that sits
// between a Document and its Paths: an ordered path list plus
// inheritable per-layer defaults. Grounded on the teacher's SvgIcon
// aggregate (a named collection of drawable sub-items sharing
// transform/style context in svgicon/iconcursor.go), generalized from
// a rendering-oriented icon group to an ordered, independently
// addressable pen-plotter layer.
package layer

import (
	"sync"

	"github.com/vsvg-go/vsvg/geom"
	"github.com/vsvg-go/vsvg/optimize"
	"github.com/vsvg-go/vsvg/spatial"
	"github.com/vsvg-go/vsvg/vpath"
)

// ID identifies a layer within a Document. 0 is the conventional
// "default" target layer.
type ID uint

// Layer is an ordered sequence of Paths plus Metadata. Path order is
// insertion order unless an optimization operation (Sort) explicitly
// reorders it.
type Layer struct {
	Paths    []*vpath.Path
	Metadata Metadata
}

// New returns an empty layer.
func New() *Layer {
	return &Layer{}
}

// Push appends a path.
func (l *Layer) Push(p *vpath.Path) {
	l.Paths = append(l.Paths, p)
}

// Bounds is the union of every path's bounding box, or the empty
// rectangle for a layer with no paths.
func (l *Layer) Bounds() geom.Rect {
	r := geom.EmptyRect
	for _, p := range l.Paths {
		r = r.Union(p.Bounds())
	}
	return r
}

// Sort reorders the layer's paths in place to minimize pen-up travel,
// using the default reindex strategy.
func (l *Layer) Sort(flip bool) {
	optimize.Sort(l.Paths, flip)
}

// SortWithBuilder is Sort with an explicit reindex strategy.
func (l *Layer) SortWithBuilder(flip bool, strategy spatial.Strategy) {
	optimize.SortWithBuilder(l.Paths, flip, strategy)
}

// JoinPaths concatenates paths whose endpoints fall within tolerance,
// replacing the layer's path list with the (shorter) joined result.
func (l *Layer) JoinPaths(tolerance float64, flip bool) {
	l.Paths = optimize.Join(l.Paths, tolerance, flip)
}

// Merge appends other's paths onto the receiver and merges metadata,
// per spec.md §3's LayerMetadata merge-mirrors-PathMetadata rule.
func (l *Layer) Merge(other *Layer) {
	l.Paths = append(l.Paths, other.Paths...)
	l.Metadata = l.Metadata.Merge(other.Metadata)
}

// parallelMap runs fn over every element of in, writing results into
// a same-length, same-order output slice. Per spec.md §5, bulk
// operations may parallelize their per-path loop but must preserve
// input order in the output — a sync.WaitGroup fan-out with
// index-addressed writes satisfies this without any synchronization
// on the output slice itself.
func parallelMap[T, R any](in []T, fn func(T) R) []R {
	out := make([]R, len(in))
	var wg sync.WaitGroup
	wg.Add(len(in))
	for i, v := range in {
		go func(i int, v T) {
			defer wg.Done()
			out[i] = fn(v)
		}(i, v)
	}
	wg.Wait()
	return out
}

// Transform applies an affine transform to every path, in place.
func (l *Layer) Transform(m geom.Affine) {
	parallelMap(l.Paths, func(p *vpath.Path) struct{} {
		p.Transform(m)
		return struct{}{}
	})
}

// Flatten decomposes every path into polylines within tolerance,
// returning a new flat path list; the receiver is unchanged. Order is
// preserved: a path's flattened fragments appear contiguously, in the
// position its source path occupied.
func (l *Layer) Flatten(tolerance float64) []*vpath.Path {
	groups := parallelMap(l.Paths, func(p *vpath.Path) []*vpath.Path {
		return p.Flatten(tolerance)
	})
	var out []*vpath.Path
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// Crop clips every path against rect, returning the (possibly larger
// or smaller) resulting path list; the receiver is unchanged.
func (l *Layer) Crop(rect geom.Rect) []*vpath.Path {
	groups := parallelMap(l.Paths, func(p *vpath.Path) []*vpath.Path {
		return p.Crop(rect)
	})
	var out []*vpath.Path
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// Explode splits every compound path into one path per subpath.
func (l *Layer) Explode() {
	groups := parallelMap(l.Paths, func(p *vpath.Path) []*vpath.Path {
		return p.Explode()
	})
	var out []*vpath.Path
	for _, g := range groups {
		out = append(out, g...)
	}
	l.Paths = out
}

// DisplayVertices returns every non-ClosePath target point across
// every path, for UI vertex rendering.
func (l *Layer) DisplayVertices() []geom.Point {
	var out []geom.Point
	for _, p := range l.Paths {
		switch d := p.Data.(type) {
		case *vpath.BezierPath:
			for _, op := range d.Ops {
				switch o := op.(type) {
				case vpath.MoveTo:
					out = append(out, geom.Point(o))
				case vpath.LineTo:
					out = append(out, geom.Point(o))
				case vpath.QuadTo:
					out = append(out, o.To)
				case vpath.CurveTo:
					out = append(out, o.To)
				}
			}
		case *vpath.Polyline:
			out = append(out, d.Points...)
		}
	}
	return out
}

// BezierHandles returns, for every cubic or quadratic segment in the
// layer, the control-polygon edges (anchor-to-control,
// control-to-control) as standalone two-point paths, for debug
// rendering of curve handles.
func (l *Layer) BezierHandles() []*vpath.Path {
	var out []*vpath.Path
	for _, p := range l.Paths {
		bp, ok := p.Data.(*vpath.BezierPath)
		if !ok {
			continue
		}
		var cur geom.Point
		var subStart geom.Point
		for _, op := range bp.Ops {
			switch o := op.(type) {
			case vpath.MoveTo:
				cur = geom.Point(o)
				subStart = cur
			case vpath.LineTo:
				cur = geom.Point(o)
			case vpath.QuadTo:
				out = append(out, vpath.NewPath(vpath.PointPair(cur, o.Ctrl)))
				out = append(out, vpath.NewPath(vpath.PointPair(o.Ctrl, o.To)))
				cur = o.To
			case vpath.CurveTo:
				out = append(out, vpath.NewPath(vpath.PointPair(cur, o.Ctrl1)))
				out = append(out, vpath.NewPath(vpath.PointPair(o.Ctrl1, o.Ctrl2)))
				out = append(out, vpath.NewPath(vpath.PointPair(o.Ctrl2, o.To)))
				cur = o.To
			case vpath.ClosePath:
				cur = subStart
			}
		}
	}
	return out
}

// PenUpTrajectories returns the (end, next-start) point pair for every
// adjacent path pair, representing the plotter's pen-lifted travel
// between strokes.
func (l *Layer) PenUpTrajectories() []Segment {
	var out []Segment
	for i := 0; i+1 < len(l.Paths); i++ {
		end, okEnd := l.Paths[i].Last()
		start, okStart := l.Paths[i+1].First()
		if okEnd && okStart {
			out = append(out, Segment{Start: end, End: start})
		}
	}
	return out
}

// Segment is a straight travel segment between two points.
type Segment struct {
	Start, End geom.Point
}

// Stats summarizes a layer's path population.
type Stats struct {
	PathCount  int
	PointCount int
	PenDownLen float64
	PenUpLen   float64
}

// ComputeStats walks the layer once, accumulating path/point counts
// and pen-down/pen-up travel distances.
func (l *Layer) ComputeStats() Stats {
	s := Stats{PathCount: len(l.Paths)}
	for _, p := range l.Paths {
		s.PointCount += p.Data.PointCount()
		s.PenDownLen += penDownLength(p)
	}
	for _, seg := range l.PenUpTrajectories() {
		s.PenUpLen += seg.Start.Dist(seg.End)
	}
	return s
}

func penDownLength(p *vpath.Path) float64 {
	total := 0.0
	for _, poly := range p.Data.Flatten(0.1) {
		for i := 1; i < len(poly.Points); i++ {
			total += poly.Points[i].Dist(poly.Points[i-1])
		}
	}
	return total
}
