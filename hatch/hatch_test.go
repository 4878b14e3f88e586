package hatch

import (
	"math"
	"testing"

	"github.com/vsvg-go/vsvg/geom"
)

func square(size float64) Polygon {
	return Polygon{Exterior: []geom.Point{
		{X: 0, Y: 0}, {X: size, Y: 0}, {X: size, Y: size}, {X: 0, Y: size},
	}}
}

// TestHatchSimpleSquare reproduces scenario test 6: a 10x10 square
// hatched with spacing=2, no inset, no joining yields at least 3
// horizontal segments.
func TestHatchSimpleSquare(t *testing.T) {
	params := NewParams(2).WithInset(false).WithJoinLines(false)
	paths := Hatch(square(10), params)

	if len(paths) < 3 {
		t.Fatalf("want >= 3 hatch segments, got %d", len(paths))
	}
	for _, p := range paths {
		a, _ := p.First()
		b, _ := p.Last()
		if !near(a.Y, b.Y) {
			t.Errorf("expected horizontal segment, got %v -> %v", a, b)
		}
	}
}

func TestHatchWithInsetIncludesBoundary(t *testing.T) {
	params := NewParams(2)
	paths := Hatch(square(10), params)
	if len(paths) == 0 {
		t.Fatal("expected non-empty output")
	}

	noInset := Hatch(square(10), NewParams(2).WithInset(false))
	if len(paths) < len(noInset) {
		t.Errorf("expected inset output to include boundary strokes on top of hatch lines: got %d vs %d", len(paths), len(noInset))
	}
}

func TestHatchSquareWithAngle(t *testing.T) {
	params := NewParams(1).WithAngle(math.Pi / 4).WithInset(false)
	paths := Hatch(square(10), params)
	if len(paths) == 0 {
		t.Fatal("expected non-empty output for a 45-degree hatch")
	}
}

func TestHatchWithHole(t *testing.T) {
	poly := Polygon{
		Exterior: []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}},
		Holes:    [][]geom.Point{{{X: 3, Y: 3}, {X: 7, Y: 3}, {X: 7, Y: 7}, {X: 3, Y: 7}}},
	}
	params := NewParams(1).WithInset(false)
	paths := Hatch(poly, params)
	if len(paths) == 0 {
		t.Fatal("expected hatch lines split around the hole")
	}
}

// TestHatchFullyEroded reproduces scenario test 7: a 2x2 square with
// spacing=4 (inset 2) erodes to nothing.
func TestHatchFullyEroded(t *testing.T) {
	params := NewParams(4)
	paths := Hatch(square(2), params)
	if len(paths) != 0 {
		t.Errorf("expected fully-eroded shape to produce no output, got %d paths", len(paths))
	}
}

func TestHatchWithLineJoiningProducesFewerPaths(t *testing.T) {
	joined := Hatch(square(10), NewParams(1).WithInset(false).WithJoinLines(true))
	unjoined := Hatch(square(10), NewParams(1).WithInset(false).WithJoinLines(false))
	if len(joined) > len(unjoined) {
		t.Errorf("joining should not increase path count: joined=%d unjoined=%d", len(joined), len(unjoined))
	}
}

func TestHatchZeroOrNegativeSpacingReturnsEmpty(t *testing.T) {
	if paths := Hatch(square(10), NewParams(0)); len(paths) != 0 {
		t.Errorf("zero spacing: want empty, got %d", len(paths))
	}
	if paths := Hatch(square(10), NewParams(-1)); len(paths) != 0 {
		t.Errorf("negative spacing: want empty, got %d", len(paths))
	}
}

func TestHatchCircle(t *testing.T) {
	const n = 64
	ring := make([]geom.Point, n)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / n
		ring[i] = geom.Point{X: 50 + 25*math.Cos(theta), Y: 50 + 25*math.Sin(theta)}
	}
	paths := Hatch(Polygon{Exterior: ring}, NewParams(2))
	if len(paths) == 0 {
		t.Error("expected non-empty output for a circle")
	}
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }
