package hatch

import (
	"github.com/vsvg-go/vsvg/geom"
	"github.com/vsvg-go/vsvg/optimize"
	"github.com/vsvg-go/vsvg/vpath"
)

// Hatch fills poly's interior with parallel strokes spaced and angled
// per params, returning the inset boundary (if enabled) followed by
// the hatch lines. An invalid spacing or a fully-eroded inset
// produces no output. Grounded on hatch.rs's hatch_polygon, step for
// step.
func Hatch(poly Polygon, params Params) []*vpath.Path {
	if params.Spacing <= 0 {
		return nil
	}

	var result []*vpath.Path
	work := poly

	if params.Inset {
		fragments := poly.inset(params.Spacing / 2)
		if len(fragments) == 0 {
			return nil
		}
		for _, f := range fragments {
			result = append(result, f.toBoundaryPaths()...)
		}
		work = fragments[0] // largest, per groupContours' descending-area order
	}

	center := work.centroid()
	rotated := work.rotate(-params.Angle, center)

	bounds := rotated.bounds()
	if bounds.IsEmpty() {
		return result
	}
	yMin, yMax := bounds.MinY, bounds.MaxY

	var hatchLines []*vpath.Path
	for y := yMin + params.Spacing/2; y < yMax; y += params.Spacing {
		for _, interval := range rotated.scanIntervals(y) {
			p0 := geom.Point{X: interval[0], Y: y}
			p1 := geom.Point{X: interval[1], Y: y}
			hatchLines = append(hatchLines, vpath.NewPath(vpath.PointPair(p0, p1)))
		}
	}

	back := geom.Identity.RotateAround(params.Angle, center.X, center.Y)
	for _, p := range hatchLines {
		p.Transform(back)
	}
	result = append(result, hatchLines...)

	if params.JoinLines && len(result) > 1 {
		result = optimize.Join(result, params.Spacing*5, true)
	}
	return result
}
