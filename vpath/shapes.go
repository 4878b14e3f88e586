package vpath

import (
	"math"

	"github.com/vsvg-go/vsvg/geom"
)

// maxArcSpan is the largest span, in radians, a single cubic splice
// may cover when approximating an off-axis ellipse, matching the
// teacher's svgpath/shapes.go maxDx constant.
const maxArcSpan = math.Pi / 8

// PointPair builds a single-segment BezierPath between two points.
func PointPair(a, b geom.Point) *BezierPath {
	return &BezierPath{Ops: []Op{MoveTo(a), LineTo(b)}}
}

// FromPoints builds an open (or, if closed, ring-closed) BezierPath
// visiting pts in order.
func FromPoints(pts []geom.Point, closed bool) *BezierPath {
	if len(pts) == 0 {
		return &BezierPath{}
	}
	ops := make([]Op, 0, len(pts)+1)
	ops = append(ops, MoveTo(pts[0]))
	for _, p := range pts[1:] {
		ops = append(ops, LineTo(p))
	}
	if closed {
		ops = append(ops, ClosePath{})
	}
	return &BezierPath{Ops: ops}
}

// Rectangle builds a closed rectangle path, grounded on the teacher's
// svgpath/shapes.go addRect (translate-to-center, rotate, translate
// back composition).
func Rectangle(minX, minY, maxX, maxY, rotationRad float64) *BezierPath {
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	m := geom.Identity.Translate(cx, cy).Rotate(rotationRad).Translate(-cx, -cy)
	corners := []geom.Point{
		{X: minX, Y: minY},
		{X: maxX, Y: minY},
		{X: maxX, Y: maxY},
		{X: minX, Y: maxY},
	}
	for i, c := range corners {
		corners[i] = m.Apply(c)
	}
	return FromPoints(corners, true)
}

// RoundedRectangle builds a closed rectangle path with rounded
// corners of radius rx, ry, approximated with one quarter-circle
// cubic Bézier per corner. Grounded on the teacher's addRoundRect, but
// expressed directly in Béziers rather than the teacher's
// stretch-to-circle-then-unstretch construction.
func RoundedRectangle(minX, minY, maxX, maxY, rx, ry, rotationRad float64) *BezierPath {
	if rx <= 0 || ry <= 0 {
		return Rectangle(minX, minY, maxX, maxY, rotationRad)
	}
	w := maxX - minX
	if w < rx*2 {
		rx = w / 2
	}
	h := maxY - minY
	if h < ry*2 {
		ry = h / 2
	}
	const k = 0.5522847498 // cubic approximation constant for a quarter circle

	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	m := geom.Identity.Translate(cx, cy).Rotate(rotationRad).Translate(-cx, -cy)
	tp := func(x, y float64) geom.Point { return m.Apply(geom.Point{X: x, Y: y}) }

	ops := []Op{
		MoveTo(tp(minX+rx, minY)),
		LineTo(tp(maxX-rx, minY)),
		CurveTo{Ctrl1: tp(maxX-rx+rx*k, minY), Ctrl2: tp(maxX, minY+ry-ry*k), To: tp(maxX, minY+ry)},
		LineTo(tp(maxX, maxY-ry)),
		CurveTo{Ctrl1: tp(maxX, maxY-ry+ry*k), Ctrl2: tp(maxX-rx+rx*k, maxY), To: tp(maxX-rx, maxY)},
		LineTo(tp(minX+rx, maxY)),
		CurveTo{Ctrl1: tp(minX+rx-rx*k, maxY), Ctrl2: tp(minX, maxY-ry+ry*k), To: tp(minX, maxY-ry)},
		LineTo(tp(minX, minY+ry)),
		CurveTo{Ctrl1: tp(minX, minY+ry-ry*k), Ctrl2: tp(minX+rx-rx*k, minY), To: tp(minX+rx, minY)},
		ClosePath{},
	}
	return &BezierPath{Ops: ops}
}

// Circle builds a closed circle approximated with four cubic Bézier
// quadrants.
func Circle(center geom.Point, radius float64) *BezierPath {
	return Ellipse(center, radius, radius, 0)
}

// Ellipse builds a closed ellipse (rx, ry, rotated by rotationRad)
// approximated with four cubic Bézier quadrants, matching the
// tangent-magic-constant approach standard for circle/ellipse
// Bézier fitting.
func Ellipse(center geom.Point, rx, ry, rotationRad float64) *BezierPath {
	const k = 0.5522847498
	m := geom.Identity.Translate(center.X, center.Y).Rotate(rotationRad)
	tp := func(x, y float64) geom.Point { return m.Apply(geom.Point{X: x, Y: y}) }

	ops := []Op{
		MoveTo(tp(rx, 0)),
		CurveTo{Ctrl1: tp(rx, ry*k), Ctrl2: tp(rx*k, ry), To: tp(0, ry)},
		CurveTo{Ctrl1: tp(-rx*k, ry), Ctrl2: tp(-rx, ry*k), To: tp(-rx, 0)},
		CurveTo{Ctrl1: tp(-rx, -ry*k), Ctrl2: tp(-rx*k, -ry), To: tp(0, -ry)},
		CurveTo{Ctrl1: tp(rx*k, -ry), Ctrl2: tp(rx, -ry*k), To: tp(rx, 0)},
		ClosePath{},
	}
	return &BezierPath{Ops: ops}
}

// CubicBezier builds an open path with a single cubic segment.
func CubicBezier(p0, c1, c2, p3 geom.Point) *BezierPath {
	return &BezierPath{Ops: []Op{MoveTo(p0), CurveTo{Ctrl1: c1, Ctrl2: c2, To: p3}}}
}

// QuadraticBezier builds an open path with a single quadratic segment.
func QuadraticBezier(p0, c, p1 geom.Point) *BezierPath {
	return &BezierPath{Ops: []Op{MoveTo(p0), QuadTo{Ctrl: c, To: p1}}}
}

// EllipticalArc appends a cubic-approximated elliptical arc from
// (startX, startY) to (endX, endY) onto path. Grounded on the
// teacher's svgpath/shapes.go addArc, implementing L. Maisonobe's
// "Drawing an elliptical arc using polylines, quadratic or cubic
// Bezier curves" (2003) construction; angles are radians.
func EllipticalArc(path *BezierPath, startX, startY, rx, ry, rotX float64, largeArc, sweep bool, endX, endY float64) {
	if rx == 0 || ry == 0 {
		path.Ops = append(path.Ops, LineTo(geom.Point{X: endX, Y: endY}))
		return
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	cx, cy, rx, ry := findEllipseCenter(rx, ry, rotX, startX, startY, endX, endY, sweep, !largeArc)

	startAngle := math.Atan2(startY-cy, startX-cx) - rotX
	endAngle := math.Atan2(endY-cy, endX-cx) - rotX
	deltaTheta := endAngle - startAngle
	arcBig := math.Abs(deltaTheta) > math.Pi

	etaStart := math.Atan2(math.Sin(startAngle)/ry, math.Cos(startAngle)/rx)
	etaEnd := math.Atan2(math.Sin(endAngle)/ry, math.Cos(endAngle)/rx)
	deltaEta := etaEnd - etaStart
	if (arcBig && !largeArc) || (!arcBig && largeArc) {
		if deltaEta < 0 {
			deltaEta += 2 * math.Pi
		} else {
			deltaEta -= 2 * math.Pi
		}
	}
	if deltaEta < 0 && sweep {
		deltaEta += 2 * math.Pi
	} else if deltaEta >= 0 && !sweep {
		deltaEta -= 2 * math.Pi
	}

	segs := int(math.Abs(deltaEta)/maxArcSpan) + 1
	dEta := deltaEta / float64(segs)
	tde := math.Tan(dEta / 2)
	alpha := math.Sin(dEta) * (math.Sqrt(4+3*tde*tde) - 1) / 3

	sinTheta, cosTheta := math.Sin(rotX), math.Cos(rotX)
	lx, ly := startX, startY
	ldx, ldy := ellipsePrime(rx, ry, sinTheta, cosTheta, etaStart)

	for i := 1; i <= segs; i++ {
		eta := etaStart + dEta*float64(i)
		var px, py float64
		if i == segs {
			px, py = endX, endY
		} else {
			px, py = ellipsePointAt(rx, ry, sinTheta, cosTheta, eta, cx, cy)
		}
		dx, dy := ellipsePrime(rx, ry, sinTheta, cosTheta, eta)
		path.Ops = append(path.Ops, CurveTo{
			Ctrl1: geom.Point{X: lx + alpha*ldx, Y: ly + alpha*ldy},
			Ctrl2: geom.Point{X: px - alpha*dx, Y: py - alpha*dy},
			To:    geom.Point{X: px, Y: py},
		})
		lx, ly, ldx, ldy = px, py, dx, dy
	}
}

func ellipsePrime(a, b, sinTheta, cosTheta, eta float64) (px, py float64) {
	bCosEta := b * math.Cos(eta)
	aSinEta := a * math.Sin(eta)
	px = -aSinEta*cosTheta - bCosEta*sinTheta
	py = -aSinEta*sinTheta + bCosEta*cosTheta
	return
}

func ellipsePointAt(a, b, sinTheta, cosTheta, eta, cx, cy float64) (px, py float64) {
	aCosEta := a * math.Cos(eta)
	bSinEta := b * math.Sin(eta)
	px = cx + aCosEta*cosTheta - bSinEta*sinTheta
	py = cy + aCosEta*sinTheta + bSinEta*cosTheta
	return
}

// findEllipseCenter locates the ellipse center for an SVG arc command,
// growing rx/ry minimally (preserving their ratio) when no solution
// exists for the requested radii, matching the teacher's
// svgpath/shapes.go findEllipseCenter.
func findEllipseCenter(ra, rb, rotX, startX, startY, endX, endY float64, sweep, smallArc bool) (cx, cy, newRa, newRb float64) {
	cos, sin := math.Cos(rotX), math.Sin(rotX)

	nx, ny := endX-startX, endY-startY
	nx, ny = nx*cos+ny*sin, -nx*sin+ny*cos
	nx *= rb / ra

	midX, midY := nx/2, ny/2
	midlenSq := midX*midX + midY*midY

	var hr float64
	if rb*rb < midlenSq {
		nrb := math.Sqrt(midlenSq)
		if ra == rb {
			ra = nrb
		} else {
			ra = ra * nrb / rb
		}
		rb = nrb
	} else {
		hr = math.Sqrt(rb*rb-midlenSq) / math.Sqrt(midlenSq)
	}

	var ccx, ccy float64
	if (sweep && smallArc) || (!sweep && !smallArc) {
		ccx = midX + midY*hr
		ccy = midY - midX*hr
	} else {
		ccx = midX - midY*hr
		ccy = midY + midX*hr
	}

	ccx *= ra / rb
	return ccx*cos - ccy*sin + startX, ccx*sin + ccy*cos + startY, ra, rb
}
