package crop

import (
	"math"
	"testing"

	"github.com/vsvg-go/vsvg/geom"
)

func TestLineHalfPlaneCrop(t *testing.T) {
	// scenario 9: line (-2,-2)->(1,1), crop to half-plane x<0
	l := Line{P0: geom.Point{X: -2, Y: -2}, P1: geom.Point{X: 1, Y: 1}}
	got := LineHalfPlane(l, AxisX, 0, true)
	if len(got) != 1 {
		t.Fatalf("want 1 segment, got %d", len(got))
	}
	g := got[0]
	if !almostPoint(g.P0, geom.Point{X: -2, Y: -2}) || !almostPoint(g.P1, geom.Point{X: 0, Y: 0}) {
		t.Errorf("got %+v", g)
	}
}

func TestCubicHalfPlaneCrop(t *testing.T) {
	// scenario 10: cubic (0,0)(-5,1)(5,2)(0,3), crop to x<0 => t in [0,0.5]
	cu := Cubic{
		P0: geom.Point{X: 0, Y: 0},
		C1: geom.Point{X: -5, Y: 1},
		C2: geom.Point{X: 5, Y: 2},
		P3: geom.Point{X: 0, Y: 3},
	}
	got := CubicHalfPlane(cu, AxisX, 0, true)
	if len(got) != 1 {
		t.Fatalf("want 1 sub-curve, got %d: %+v", len(got), got)
	}
	want := subCubic(cu, 0, 0.5)
	if !almostCubic(got[0], want) {
		t.Errorf("got %+v want %+v", got[0], want)
	}
}

func TestRectangleCropContainment(t *testing.T) {
	rect := geom.Rect{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}
	l := Line{P0: geom.Point{X: -5, Y: 5}, P1: geom.Point{X: 15, Y: 5}}
	segs := Rectangle(l, rect)
	if len(segs) != 1 {
		t.Fatalf("want 1 segment, got %d", len(segs))
	}
	s := segs[0]
	for _, p := range []geom.Point{s.P0, s.P1} {
		if p.X < rect.MinX-1e-9 || p.X > rect.MaxX+1e-9 {
			t.Errorf("point %v escapes rect %v", p, rect)
		}
	}
}

func TestLineFullyOutsideIsDropped(t *testing.T) {
	l := Line{P0: geom.Point{X: 5, Y: 5}, P1: geom.Point{X: 8, Y: 8}}
	got := LineHalfPlane(l, AxisX, 0, true)
	if len(got) != 0 {
		t.Errorf("want empty, got %v", got)
	}
}

func almostPoint(a, b geom.Point) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func almostCubic(a, b Cubic) bool {
	return almostPoint(a.P0, b.P0) && almostPoint(a.C1, b.C1) && almostPoint(a.C2, b.C2) && almostPoint(a.P3, b.P3)
}
