package vpath

import (
	"math"

	"github.com/vsvg-go/vsvg/geom"
)

// FitToPath is the inverse of Flatten: given a polyline and a fitting
// tolerance, produce a Bézier path whose maximum deviation from the
// polyline is at most tolerance. Straight runs are kept as LineTo;
// curved runs are fitted with cubic Béziers via Philip J. Schneider's
// least-squares algorithm ("An Algorithm for Automatically Fitting
// Digitized Curves", Graphics Gems I, 1990) — no example repo in the
// pack implements curve fitting, so this is built directly against
// stdlib math per spec.md §4.B (documented in DESIGN.md as one of the
// few stdlib-only components).
func FitToPath(poly *Polyline, tolerance float64) *BezierPath {
	pts := poly.Points
	if len(pts) == 0 {
		return &BezierPath{}
	}
	if len(pts) == 1 {
		return &BezierPath{Ops: []Op{MoveTo(pts[0])}}
	}

	tanStart := normalize(sub(pts[1], pts[0]))
	tanEnd := normalize(sub(pts[len(pts)-2], pts[len(pts)-1]))

	ops := []Op{MoveTo(pts[0])}
	ops = append(ops, fitCubic(pts, tanStart, tanEnd, tolerance)...)
	return &BezierPath{Ops: ops}
}

func fitCubic(pts []geom.Point, tanStart, tanEnd geom.Point, tolerance float64) []Op {
	if len(pts) == 2 {
		return []Op{LineTo(pts[1])}
	}
	// a run lying within tolerance of its chord is kept as a straight line
	first, last := pts[0], pts[len(pts)-1]
	chord := sub(last, first)
	if chordLen := math.Hypot(chord.X, chord.Y); chordLen > 0 {
		straight := true
		for _, p := range pts[1 : len(pts)-1] {
			d := sub(p, first)
			if math.Abs(chord.X*d.Y-chord.Y*d.X)/chordLen > tolerance {
				straight = false
				break
			}
		}
		if straight {
			return []Op{LineTo(last)}
		}
	}

	u := chordLengthParameterize(pts)
	curve := generateBezier(pts, u, tanStart, tanEnd)
	maxErr, splitIdx := computeMaxError(pts, curve, u)
	if maxErr < tolerance {
		return []Op{CurveTo{Ctrl1: curve[1], Ctrl2: curve[2], To: curve[3]}}
	}

	if maxErr < tolerance*tolerance*4 {
		for i := 0; i < 4; i++ {
			uPrime := reparameterize(pts, u, curve)
			curve = generateBezier(pts, uPrime, tanStart, tanEnd)
			maxErr, splitIdx = computeMaxError(pts, curve, uPrime)
			if maxErr < tolerance {
				return []Op{CurveTo{Ctrl1: curve[1], Ctrl2: curve[2], To: curve[3]}}
			}
			u = uPrime
		}
	}

	// split at the point of worst error and recurse, Schneider's
	// iterative-fallback strategy for runs a single cubic cannot fit.
	if splitIdx <= 0 {
		splitIdx = len(pts) / 2
	}
	centerTan := normalize(sub(pts[splitIdx-1], pts[splitIdx+1]))
	left := fitCubic(pts[:splitIdx+1], tanStart, centerTan, tolerance)
	right := fitCubic(pts[splitIdx:], negate(centerTan), tanEnd, tolerance)
	return append(left, right...)
}

// chordLengthParameterize assigns each point a parameter in [0,1]
// proportional to its cumulative chord distance from the first point.
func chordLengthParameterize(pts []geom.Point) []float64 {
	u := make([]float64, len(pts))
	total := 0.0
	for i := 1; i < len(pts); i++ {
		total += pts[i].Dist(pts[i-1])
		u[i] = total
	}
	if total == 0 {
		return u
	}
	for i := range u {
		u[i] /= total
	}
	return u
}

// generateBezier fits a cubic Bézier to pts using the given
// parameterization and fixed end tangent directions, solving the
// 2x2 least-squares system for the two control-point magnitudes.
func generateBezier(pts []geom.Point, u []float64, tanStart, tanEnd geom.Point) [4]geom.Point {
	first, last := pts[0], pts[len(pts)-1]

	var a00, a01, a11, c0, c1 float64
	for i, p := range pts {
		t := u[i]
		b0, b1, b2, b3 := bernstein(t)

		v1 := geom.Point{X: tanStart.X * b1, Y: tanStart.Y * b1}
		v2 := geom.Point{X: tanEnd.X * b2, Y: tanEnd.Y * b2}

		a00 += dot(v1, v1)
		a01 += dot(v1, v2)
		a11 += dot(v2, v2)

		base := geom.Point{
			X: first.X*(b0+b1) + last.X*(b2+b3),
			Y: first.Y*(b0+b1) + last.Y*(b2+b3),
		}
		rhs := sub(p, base)
		c0 += dot(v1, rhs)
		c1 += dot(v2, rhs)
	}

	det := a00*a11 - a01*a01
	var alphaL, alphaR float64
	if math.Abs(det) > 1e-12 {
		alphaL = (c0*a11 - c1*a01) / det
		alphaR = (a00*c1 - a01*c0) / det
	}

	segLen := first.Dist(last)
	epsilon := 1e-6 * segLen
	if alphaL < epsilon || alphaR < epsilon {
		alphaL = segLen / 3
		alphaR = segLen / 3
	}

	return [4]geom.Point{
		first,
		{X: first.X + tanStart.X*alphaL, Y: first.Y + tanStart.Y*alphaL},
		{X: last.X + tanEnd.X*alphaR, Y: last.Y + tanEnd.Y*alphaR},
		last,
	}
}

func bernstein(t float64) (b0, b1, b2, b3 float64) {
	omt := 1 - t
	b0 = omt * omt * omt
	b1 = 3 * omt * omt * t
	b2 = 3 * omt * t * t
	b3 = t * t * t
	return
}

func computeMaxError(pts []geom.Point, curve [4]geom.Point, u []float64) (float64, int) {
	maxErr, idx := 0.0, -1
	for i, p := range pts {
		fit := evalCubicPoint(curve[0], curve[1], curve[2], curve[3], u[i])
		d := p.DistSquared(fit)
		if d > maxErr {
			maxErr = d
			idx = i
		}
	}
	return math.Sqrt(maxErr), idx
}

// reparameterize applies one Newton-Raphson step to each parameter,
// refining the chord-length guess toward the true closest-point
// parameter on the fitted curve.
func reparameterize(pts []geom.Point, u []float64, curve [4]geom.Point) []float64 {
	out := make([]float64, len(u))
	for i, p := range pts {
		out[i] = newtonRaphsonRootFind(curve, p, u[i])
	}
	return out
}

func newtonRaphsonRootFind(curve [4]geom.Point, p geom.Point, t float64) float64 {
	q := evalCubicPoint(curve[0], curve[1], curve[2], curve[3], t)
	q1 := derivCubic(curve[0], curve[1], curve[2], curve[3], t)
	q2 := deriv2Cubic(curve[0], curve[1], curve[2], curve[3], t)

	numerator := (q.X-p.X)*q1.X + (q.Y-p.Y)*q1.Y
	denominator := q1.X*q1.X + q1.Y*q1.Y + (q.X-p.X)*q2.X + (q.Y-p.Y)*q2.Y
	if denominator == 0 {
		return t
	}
	return t - numerator/denominator
}

func derivCubic(p0, p1, p2, p3 geom.Point, t float64) geom.Point {
	omt := 1 - t
	a := 3 * omt * omt
	b := 6 * omt * t
	c := 3 * t * t
	return geom.Point{
		X: a*(p1.X-p0.X) + b*(p2.X-p1.X) + c*(p3.X-p2.X),
		Y: a*(p1.Y-p0.Y) + b*(p2.Y-p1.Y) + c*(p3.Y-p2.Y),
	}
}

func deriv2Cubic(p0, p1, p2, p3 geom.Point, t float64) geom.Point {
	omt := 1 - t
	a := 6 * omt
	b := 6 * t
	return geom.Point{
		X: a*(p2.X-2*p1.X+p0.X) + b*(p3.X-2*p2.X+p1.X),
		Y: a*(p2.Y-2*p1.Y+p0.Y) + b*(p3.Y-2*p2.Y+p1.Y),
	}
}

func sub(a, b geom.Point) geom.Point {
	return geom.Point{X: a.X - b.X, Y: a.Y - b.Y}
}

func dot(a, b geom.Point) float64 {
	return a.X*b.X + a.Y*b.Y
}

func negate(p geom.Point) geom.Point {
	return geom.Point{X: -p.X, Y: -p.Y}
}

func normalize(p geom.Point) geom.Point {
	l := math.Hypot(p.X, p.Y)
	if l == 0 {
		return geom.Point{}
	}
	return geom.Point{X: p.X / l, Y: p.Y / l}
}
