package layer

import (
	"testing"

	"github.com/vsvg-go/vsvg/geom"
	"github.com/vsvg-go/vsvg/vpath"
)

func TestBoundsEmptyAndUnion(t *testing.T) {
	l := New()
	if !l.Bounds().IsEmpty() {
		t.Errorf("expected empty bounds for new layer, got %+v", l.Bounds())
	}

	l.Push(vpath.NewPath(vpath.PointPair(geom.Point{X: 0, Y: 0}, geom.Point{X: 10, Y: 15})))
	r := l.Bounds()
	if r.MinX != 0 || r.MinY != 0 || r.MaxX != 10 || r.MaxY != 15 {
		t.Errorf("got %+v", r)
	}

	l.Push(vpath.NewPath(vpath.PointPair(geom.Point{X: 25, Y: 53}, geom.Point{X: -10, Y: -150})))
	r = l.Bounds()
	if r.MinX != -10 || r.MinY != -150 || r.MaxX != 25 || r.MaxY != 53 {
		t.Errorf("got %+v", r)
	}
}

func TestSortOrderMatchesScenarioOne(t *testing.T) {
	l := New()
	l.Push(vpath.NewPath(vpath.FromPoints([]geom.Point{{X: 10, Y: 10.1}, {X: 0, Y: 0}}, false)))
	l.Push(vpath.NewPath(vpath.FromPoints([]geom.Point{{X: 3, Y: 2.3}, {X: 10, Y: 10}}, false)))
	l.Push(vpath.NewPath(vpath.FromPoints([]geom.Point{{X: 1, Y: 0}, {X: 0, Y: 0}}, false)))
	l.Push(vpath.NewPath(vpath.FromPoints([]geom.Point{{X: 2, Y: 1}, {X: 1, Y: 0.1}}, false)))

	l.Sort(false)

	wantStarts := []geom.Point{{X: 1, Y: 0}, {X: 2, Y: 1}, {X: 3, Y: 2.3}, {X: 10, Y: 10.1}}
	for i, p := range l.Paths {
		first, _ := p.First()
		if !first.Near(wantStarts[i], 1e-9) {
			t.Errorf("position %d: got start %v want %v", i, first, wantStarts[i])
		}
	}
}

func TestJoinPathsBasic(t *testing.T) {
	l := New()
	l.Push(vpath.NewPath(vpath.FromPoints([]geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}, false)))
	l.Push(vpath.NewPath(vpath.FromPoints([]geom.Point{{X: 10, Y: 0}, {X: 20, Y: 0}}, false)))

	l.JoinPaths(0.1, false)

	if len(l.Paths) != 1 {
		t.Fatalf("want 1 path, got %d", len(l.Paths))
	}
	if got := l.Paths[0].Data.PointCount(); got != 3 {
		t.Errorf("want 3 points, got %d", got)
	}
}

func TestJoinPathsChainOfThree(t *testing.T) {
	l := New()
	l.Push(vpath.NewPath(vpath.FromPoints([]geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}, false)))
	l.Push(vpath.NewPath(vpath.FromPoints([]geom.Point{{X: 10, Y: 0}, {X: 10, Y: 10}}, false)))
	l.Push(vpath.NewPath(vpath.FromPoints([]geom.Point{{X: 10, Y: 10}, {X: 0, Y: 10}}, false)))

	l.JoinPaths(0.1, false)

	if len(l.Paths) != 1 {
		t.Fatalf("want 1 path, got %d", len(l.Paths))
	}
	if got := l.Paths[0].Data.PointCount(); got != 4 {
		t.Errorf("want 4 points, got %d", got)
	}
}

func TestJoinPathsRequiresFlipForReversedEndpoint(t *testing.T) {
	build := func() *Layer {
		l := New()
		l.Push(vpath.NewPath(vpath.FromPoints([]geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}, false)))
		l.Push(vpath.NewPath(vpath.FromPoints([]geom.Point{{X: 20, Y: 0}, {X: 10, Y: 0}}, false)))
		return l
	}

	noFlip := build()
	noFlip.JoinPaths(0.1, false)
	if len(noFlip.Paths) != 2 {
		t.Errorf("without flip, want 2 paths, got %d", len(noFlip.Paths))
	}

	withFlip := build()
	withFlip.JoinPaths(0.1, true)
	if len(withFlip.Paths) != 1 {
		t.Errorf("with flip, want 1 path, got %d", len(withFlip.Paths))
	}
}

func TestExplodeCompoundPath(t *testing.T) {
	l := New()
	bp := &vpath.BezierPath{Ops: []vpath.Op{
		vpath.MoveTo{X: 0, Y: 0}, vpath.LineTo{X: 10, Y: 10},
		vpath.MoveTo{X: 50, Y: 50}, vpath.LineTo{X: 60, Y: 60},
	}}
	l.Push(vpath.NewPath(bp))

	l.Explode()

	if len(l.Paths) != 2 {
		t.Fatalf("want 2 paths, got %d", len(l.Paths))
	}
	first, _ := l.Paths[0].First()
	second, _ := l.Paths[1].First()
	if !first.Equal(geom.Point{X: 0, Y: 0}) || !second.Equal(geom.Point{X: 50, Y: 50}) {
		t.Errorf("got %v, %v", first, second)
	}
}

func TestPenUpTrajectories(t *testing.T) {
	l := New()
	l.Push(vpath.NewPath(vpath.PointPair(geom.Point{X: 0, Y: 0}, geom.Point{X: 1, Y: 0})))
	l.Push(vpath.NewPath(vpath.PointPair(geom.Point{X: 5, Y: 0}, geom.Point{X: 6, Y: 0})))

	trajectories := l.PenUpTrajectories()
	if len(trajectories) != 1 {
		t.Fatalf("want 1 trajectory, got %d", len(trajectories))
	}
	if !trajectories[0].Start.Equal(geom.Point{X: 1, Y: 0}) || !trajectories[0].End.Equal(geom.Point{X: 5, Y: 0}) {
		t.Errorf("got %+v", trajectories[0])
	}
}

func TestMergeCombinesPathsAndMetadata(t *testing.T) {
	nameA := "a"
	a := New()
	a.Metadata.Name = &nameA
	a.Push(vpath.NewPath(vpath.PointPair(geom.Point{X: 0, Y: 0}, geom.Point{X: 1, Y: 1})))

	b := New()
	b.Push(vpath.NewPath(vpath.PointPair(geom.Point{X: 2, Y: 2}, geom.Point{X: 3, Y: 3})))

	a.Merge(b)

	if len(a.Paths) != 2 {
		t.Fatalf("want 2 paths after merge, got %d", len(a.Paths))
	}
	if a.Metadata.Name == nil || *a.Metadata.Name != "a" {
		t.Errorf("expected one-sided name to survive merge, got %+v", a.Metadata.Name)
	}
}
