package geom

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Affine is a 2x3 affine transform:
//
//	| A C E |   | x |
//	| B D F | * | y |
//	| 0 0 1 |   | 1 |
//
// matching the SVG matrix(a,b,c,d,e,f) convention.
type Affine struct {
	A, B, C, D, E, F float64
}

// Identity is the identity transform.
var Identity = Affine{A: 1, D: 1}

// NewAffine builds an Affine from its six components.
func NewAffine(a, b, c, d, e, f float64) Affine {
	return Affine{a, b, c, d, e, f}
}

// Apply applies the transform to a point, per the standard
// matrix-vector product.
func (m Affine) Apply(p Point) Point {
	return Point{
		X: m.A*p.X + m.C*p.Y + m.E,
		Y: m.B*p.X + m.D*p.Y + m.F,
	}
}

// ApplyVector applies only the linear (2x2) part of the transform,
// ignoring translation — used for direction/length-preserving vectors.
func (m Affine) ApplyVector(p Point) Point {
	return Point{X: m.A*p.X + m.C*p.Y, Y: m.B*p.X + m.D*p.Y}
}

// Mult composes m and o as m*o: applying the result to a point is
// equivalent to applying o then m.
func (m Affine) Mult(o Affine) Affine {
	return Affine{
		A: m.A*o.A + m.C*o.B,
		B: m.B*o.A + m.D*o.B,
		C: m.A*o.C + m.C*o.D,
		D: m.B*o.C + m.D*o.D,
		E: m.A*o.E + m.C*o.F + m.E,
		F: m.B*o.E + m.D*o.F + m.F,
	}
}

// Translate returns m composed with a translation by (dx, dy).
func (m Affine) Translate(dx, dy float64) Affine {
	return m.Mult(Affine{A: 1, D: 1, E: dx, F: dy})
}

// Scale returns m composed with a scale by (sx, sy).
func (m Affine) Scale(sx, sy float64) Affine {
	return m.Mult(Affine{A: sx, D: sy})
}

// Rotate returns m composed with a rotation of theta radians,
// counterclockwise in math convention (clockwise-appearing given the
// flipped y-axis, per spec's coordinate system).
func (m Affine) Rotate(theta float64) Affine {
	s, c := math.Sin(theta), math.Cos(theta)
	return m.Mult(Affine{A: c, B: s, C: -s, D: c})
}

// RotateAround rotates by theta radians around the point (cx, cy).
func (m Affine) RotateAround(theta, cx, cy float64) Affine {
	return m.Translate(cx, cy).Rotate(theta).Translate(-cx, -cy)
}

// SkewX returns m composed with an x-skew of theta radians.
func (m Affine) SkewX(theta float64) Affine {
	return m.Mult(Affine{A: 1, D: 1, C: math.Tan(theta)})
}

// SkewY returns m composed with a y-skew of theta radians.
func (m Affine) SkewY(theta float64) Affine {
	return m.Mult(Affine{A: 1, D: 1, B: math.Tan(theta)})
}

// ParseTransform parses an SVG transform-list string, e.g.
// "translate(10,20) rotate(45) scale(2)", composing left to right as
// the SVG spec requires. Grounded on the teacher's
// iconCursor.parseTransform/readTransformAttr grammar.
func ParseTransform(v string) (Affine, error) {
	m := Identity
	v = strings.TrimSpace(v)
	for len(v) > 0 {
		open := strings.IndexByte(v, '(')
		if open < 0 {
			return m, fmt.Errorf("geom: malformed transform %q", v)
		}
		name := strings.TrimSpace(v[:open])
		close := strings.IndexByte(v[open:], ')')
		if close < 0 {
			return m, fmt.Errorf("geom: unterminated transform %q", v)
		}
		close += open
		args, err := parseFloatList(v[open+1 : close])
		if err != nil {
			return m, err
		}
		next, err := transformTerm(name, args)
		if err != nil {
			return m, err
		}
		m = m.Mult(next)
		v = strings.TrimSpace(v[close+1:])
	}
	return m, nil
}

func transformTerm(name string, args []float64) (Affine, error) {
	switch name {
	case "matrix":
		if len(args) != 6 {
			return Identity, fmt.Errorf("geom: matrix() wants 6 args, got %d", len(args))
		}
		return NewAffine(args[0], args[1], args[2], args[3], args[4], args[5]), nil
	case "translate":
		switch len(args) {
		case 1:
			return Identity.Translate(args[0], 0), nil
		case 2:
			return Identity.Translate(args[0], args[1]), nil
		}
	case "scale":
		switch len(args) {
		case 1:
			return Identity.Scale(args[0], args[0]), nil
		case 2:
			return Identity.Scale(args[0], args[1]), nil
		}
	case "rotate":
		switch len(args) {
		case 1:
			return Identity.Rotate(args[0] * math.Pi / 180), nil
		case 3:
			return Identity.RotateAround(args[0]*math.Pi/180, args[1], args[2]), nil
		}
	case "skewX":
		if len(args) == 1 {
			return Identity.SkewX(args[0] * math.Pi / 180), nil
		}
	case "skewY":
		if len(args) == 1 {
			return Identity.SkewY(args[0] * math.Pi / 180), nil
		}
	}
	return Identity, fmt.Errorf("geom: unsupported transform %q with %d args", name, len(args))
}

func parseFloatList(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("geom: bad number %q in transform: %w", f, err)
		}
		out = append(out, v)
	}
	return out, nil
}
