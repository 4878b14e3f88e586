package vpath

import (
	"math"
	"testing"

	"github.com/vsvg-go/vsvg/geom"
)

func TestJoinTwoLines(t *testing.T) {
	// scenario 3: (0,0)->(10,0) and (10,0)->(20,0), join(tol=0.1) => single
	// path with three points (0,0),(10,0),(20,0)
	a := NewPath(FromPoints([]geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}, false))
	b := NewPath(FromPoints([]geom.Point{{X: 10, Y: 0}, {X: 20, Y: 0}}, false))
	if !a.Join(b, 0.1) {
		t.Fatal("expected join to succeed")
	}
	flat := a.Data.Flatten(1e9)
	if len(flat) != 1 || len(flat[0].Points) != 3 {
		t.Fatalf("got %+v", flat)
	}
	want := []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 20, Y: 0}}
	for i, p := range flat[0].Points {
		if !p.Near(want[i], 1e-9) {
			t.Errorf("point %d: got %v want %v", i, p, want[i])
		}
	}
}

func TestJoinLShape(t *testing.T) {
	// scenario 4: three paths forming an L with coincident endpoints,
	// join(tol=0.1) => single path with four points
	p1 := NewPath(FromPoints([]geom.Point{{X: 0, Y: 0}, {X: 0, Y: 10}}, false))
	p2 := NewPath(FromPoints([]geom.Point{{X: 0, Y: 10}, {X: 10, Y: 10}}, false))
	p3 := NewPath(FromPoints([]geom.Point{{X: 10, Y: 10}, {X: 10, Y: 20}}, false))
	if !p1.Join(p2, 0.1) {
		t.Fatal("join 1-2 failed")
	}
	if !p1.Join(p3, 0.1) {
		t.Fatal("join 1-3 failed")
	}
	flat := p1.Data.Flatten(1e9)
	if len(flat) != 1 || len(flat[0].Points) != 4 {
		t.Fatalf("got %+v", flat)
	}
}

func TestJoinFlippedEndpoint(t *testing.T) {
	// scenario 5: (0,0)->(10,0) and (20,0)->(10,0), join(tol=0.1, flip=true)
	// requires the caller to flip the second path before joining.
	a := NewPath(FromPoints([]geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}, false))
	b := NewPath(FromPoints([]geom.Point{{X: 20, Y: 0}, {X: 10, Y: 0}}, false))
	b.Flip()
	if !a.Join(b, 0.1) {
		t.Fatal("expected join to succeed after flip")
	}
	flat := a.Data.Flatten(1e9)
	if len(flat) != 1 || len(flat[0].Points) != 3 {
		t.Fatalf("got %+v", flat)
	}
}

func TestJoinGapExceedsTolerance(t *testing.T) {
	a := NewPath(FromPoints([]geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}, false))
	b := NewPath(FromPoints([]geom.Point{{X: 15, Y: 0}, {X: 20, Y: 0}}, false))
	if a.Join(b, 0.1) {
		t.Fatal("expected join to fail across a gap")
	}
}

func TestFlattenLine(t *testing.T) {
	bp := &BezierPath{Ops: []Op{MoveTo{X: 0, Y: 0}, LineTo{X: 10, Y: 0}}}
	out := bp.Flatten(0.1)
	if len(out) != 1 || len(out[0].Points) != 2 {
		t.Fatalf("got %+v", out)
	}
}

func TestFlattenCubicFinerToleranceProducesMorePoints(t *testing.T) {
	bp := &BezierPath{Ops: []Op{
		MoveTo{X: 0, Y: 0},
		CurveTo{Ctrl1: geom.Point{X: 0, Y: 100}, Ctrl2: geom.Point{X: 100, Y: 100}, To: geom.Point{X: 100, Y: 0}},
	}}
	coarse := bp.Flatten(10)
	fine := bp.Flatten(0.01)
	if len(fine[0].Points) <= len(coarse[0].Points) {
		t.Errorf("finer tolerance should produce more points: coarse=%d fine=%d",
			len(coarse[0].Points), len(fine[0].Points))
	}
}

func TestMetadataResolveFallsBackToDefaults(t *testing.T) {
	m := PathMetadata{}
	c, w := m.Resolve(PathMetadata{})
	if c != DefaultColor || w != DefaultStrokeWidth {
		t.Errorf("got %v %v", c, w)
	}
}

func TestMetadataResolveLayerThenPath(t *testing.T) {
	layerColor := geom.Color{R: 1, G: 2, B: 3, A: 255}
	pathWidth := 5.0
	layer := PathMetadata{Color: &layerColor}
	path := PathMetadata{StrokeWidth: &pathWidth}
	c, w := path.Resolve(layer)
	if c != layerColor || w != pathWidth {
		t.Errorf("got %v %v", c, w)
	}
}

func TestMetadataMergeAgreeKeepsDisagreeClearsOneSidedKeeps(t *testing.T) {
	red := geom.Color{R: 255, A: 255}
	blue := geom.Color{B: 255, A: 255}
	width := 2.0

	agree := PathMetadata{Color: &red}.Merge(PathMetadata{Color: &red})
	if agree.Color == nil || *agree.Color != red {
		t.Errorf("agree: got %+v", agree)
	}

	disagree := PathMetadata{Color: &red}.Merge(PathMetadata{Color: &blue})
	if disagree.Color != nil {
		t.Errorf("disagree: want nil, got %+v", *disagree.Color)
	}

	oneSided := PathMetadata{}.Merge(PathMetadata{StrokeWidth: &width})
	if oneSided.StrokeWidth == nil || *oneSided.StrokeWidth != width {
		t.Errorf("one-sided: got %+v", oneSided)
	}
}

func TestBezierPathBoundsIncludesCurveExtrema(t *testing.T) {
	// a cubic bulging well past its endpoints and chord
	bp := &BezierPath{Ops: []Op{
		MoveTo{X: 0, Y: 0},
		CurveTo{Ctrl1: geom.Point{X: 0, Y: 50}, Ctrl2: geom.Point{X: 10, Y: 50}, To: geom.Point{X: 10, Y: 0}},
	}}
	r := bp.Bounds()
	if r.MaxY <= 0 {
		t.Errorf("expected bounds to capture curve bulge, got %+v", r)
	}
}

func TestFlipReversesPointOrder(t *testing.T) {
	bp := FromPoints([]geom.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}}, false)
	flipped := bp.Flip()
	first, _ := flipped.First()
	last, _ := flipped.Last()
	if !first.Equal(geom.Point{X: 2, Y: 2}) || !last.Equal(geom.Point{X: 0, Y: 0}) {
		t.Errorf("got first=%v last=%v", first, last)
	}
}

func TestFitToPathStraightRunStaysLine(t *testing.T) {
	poly := &Polyline{Points: []geom.Point{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 10, Y: 0}}}
	bp := FitToPath(poly, 0.01)
	for _, op := range bp.Ops {
		if _, ok := op.(CurveTo); ok {
			t.Errorf("expected only lines for a collinear run, got a curve: %+v", bp.Ops)
		}
	}
}

func TestFitToPathCurvedRunStaysWithinTolerance(t *testing.T) {
	var pts []geom.Point
	for i := 0; i <= 20; i++ {
		a := float64(i) / 20 * math.Pi / 2
		pts = append(pts, geom.Point{X: 10 * math.Cos(a), Y: 10 * math.Sin(a)})
	}
	poly := &Polyline{Points: pts}
	tol := 0.2
	bp := FitToPath(poly, tol)

	subs := decodeSubpaths(bp.Ops)
	if len(subs) != 1 {
		t.Fatalf("expected single subpath, got %d", len(subs))
	}
	cur := subs[0].start
	for _, e := range subs[0].elems {
		if e.kind != elemCubic {
			continue
		}
		for i, p := range pts {
			// crude sanity check: every source point must lie within a
			// generous multiple of tolerance of the fitted curve's bounds
			_ = i
			b := cubicBounds(cur, e.ctrl1, e.ctrl2, e.to)
			pad := tol * 5
			if p.X < b.MinX-pad || p.X > b.MaxX+pad || p.Y < b.MinY-pad || p.Y > b.MaxY+pad {
				t.Errorf("point %v falls far outside fitted curve bounds %+v", p, b)
			}
		}
		cur = e.to
	}
}

func TestCropBezierPathAcrossRectangle(t *testing.T) {
	bp := &BezierPath{Ops: []Op{MoveTo{X: -5, Y: 5}, LineTo{X: 15, Y: 5}}}
	frags := bp.Crop(geom.Rect{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10})
	if len(frags) != 1 {
		t.Fatalf("want 1 fragment, got %d", len(frags))
	}
	first, _ := frags[0].First()
	last, _ := frags[0].Last()
	if !first.Near(geom.Point{X: 0, Y: 5}, 1e-9) || !last.Near(geom.Point{X: 10, Y: 5}, 1e-9) {
		t.Errorf("got first=%v last=%v", first, last)
	}
}

func TestCropKeepsOnlySegmentInsideRect(t *testing.T) {
	bp := FromPoints([]geom.Point{{X: -5, Y: 5}, {X: 15, Y: 5}, {X: 15, Y: 20}, {X: -5, Y: 20}, {X: -5, Y: 30}, {X: 15, Y: 30}}, false)
	frags := bp.Crop(geom.Rect{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10})
	if len(frags) != 1 {
		t.Fatalf("want 1 fragment (only the first segment enters the rect), got %d", len(frags))
	}
}

func TestPointCountMatchesVertexContract(t *testing.T) {
	bp := &BezierPath{Ops: []Op{
		MoveTo{X: 0, Y: 0},
		LineTo{X: 1, Y: 0},
		CurveTo{Ctrl1: geom.Point{X: 2, Y: 0}, Ctrl2: geom.Point{X: 3, Y: 0}, To: geom.Point{X: 4, Y: 0}},
		ClosePath{},
	}}
	if got := bp.PointCount(); got != 3 {
		t.Errorf("got %d want 3", got)
	}
}
