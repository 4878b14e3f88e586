package geom

import (
	"math"
	"testing"
)

func TestLengthConvertRoundTrip(t *testing.T) {
	cases := []Length{
		LengthPx(10),
		NewLength(2.5, Cm),
		NewLength(1, In),
		NewLength(72, Pt),
		NewLength(3, Ft),
	}
	for _, l := range cases {
		for _, u := range []Unit{Px, In, Ft, Yd, Mi, Mm, Cm, M, Km, Pc, Pt} {
			got := l.ConvertTo(u).ConvertTo(l.Unit)
			if math.Abs(got.Value-l.Value) > 1e-6 {
				t.Errorf("round trip %v via %v: got %v want %v", l, u, got.Value, l.Value)
			}
		}
	}
}

func TestParseUnitNamesAndAbbreviations(t *testing.T) {
	for _, s := range []string{"cm", "centimeter", "centimetre", "centimeters"} {
		u, err := ParseUnit(s)
		if err != nil || u != Cm {
			t.Errorf("ParseUnit(%q) = %v, %v; want Cm, nil", s, u, err)
		}
	}
}

func TestParseLengthBareIsPixels(t *testing.T) {
	l, err := ParseLength("42")
	if err != nil {
		t.Fatal(err)
	}
	if l.Unit != Px || l.Value != 42 {
		t.Errorf("got %+v", l)
	}
}

func TestParseAngle(t *testing.T) {
	cases := []struct {
		in   string
		want float64 // radians
	}{
		{"180", math.Pi},
		{"180deg", math.Pi},
		{"3.14159265rad", math.Pi},
		{"180°", math.Pi},
	}
	for _, c := range cases {
		a, err := ParseAngle(c.in)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(a.Radians()-c.want) > 1e-4 {
			t.Errorf("ParseAngle(%q) = %v, want %v", c.in, a.Radians(), c.want)
		}
	}
}

func TestAffineComposition(t *testing.T) {
	m := Identity.Translate(10, 0).Rotate(math.Pi / 2)
	p := m.Apply(Point{1, 0})
	if math.Abs(p.X-10) > 1e-9 || math.Abs(p.Y-1) > 1e-9 {
		t.Errorf("got %+v", p)
	}
}

func TestParseTransformList(t *testing.T) {
	m, err := ParseTransform("translate(10,20) scale(2)")
	if err != nil {
		t.Fatal(err)
	}
	p := m.Apply(Point{1, 1})
	if p.X != 12 || p.Y != 22 {
		t.Errorf("got %+v", p)
	}
}

func TestParseColorForms(t *testing.T) {
	cases := []struct {
		in           string
		r, g, b, a uint8
	}{
		{"#fff", 255, 255, 255, 255},
		{"#FBD9BD", 0xFB, 0xD9, 0xBD, 255},
		{"rgb(255,0,0)", 255, 0, 0, 255},
		{"red", 255, 0, 0, 255},
	}
	for _, c := range cases {
		got, err := ParseColor(c.in)
		if err != nil {
			t.Fatalf("ParseColor(%q): %v", c.in, err)
		}
		if got.R != c.r || got.G != c.g || got.B != c.b || got.A != c.a {
			t.Errorf("ParseColor(%q) = %+v, want {%d %d %d %d}", c.in, got, c.r, c.g, c.b, c.a)
		}
	}
}

func TestRectUnion(t *testing.T) {
	r := EmptyRect.ExtendPoint(Point{1, 1}).ExtendPoint(Point{-1, 3})
	if r.MinX != -1 || r.MinY != 1 || r.MaxX != 1 || r.MaxY != 3 {
		t.Errorf("got %+v", r)
	}
	u := r.Union(EmptyRect)
	if u != r {
		t.Errorf("union with empty changed rect: %+v", u)
	}
}
