package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vsvg-go/vsvg/geom"
	"github.com/vsvg-go/vsvg/svgio"
)

func TestParseRect(t *testing.T) {
	r, err := parseRect("1,2,3,4")
	if err != nil {
		t.Fatalf("parseRect failed: %v", err)
	}
	want := geom.Rect{MinX: 1, MinY: 2, MaxX: 3, MaxY: 4}
	if r != want {
		t.Errorf("got %+v, want %+v", r, want)
	}
}

func TestParseRectRejectsWrongArity(t *testing.T) {
	if _, err := parseRect("1,2,3"); err == nil {
		t.Fatal("expected an error for a 3-field rect")
	}
}

func TestParseRectRejectsNonNumeric(t *testing.T) {
	if _, err := parseRect("a,2,3,4"); err == nil {
		t.Fatal("expected an error for a non-numeric field")
	}
}

func TestLayerToPolygonUsesFirstClosedRingAsExterior(t *testing.T) {
	doc, err := svgio.ReadFile(writeTempSVG(t, `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10">
		<polygon points="0,0 10,0 10,10 0,10"/>
		<polygon points="2,2 4,2 4,4 2,4"/>
	</svg>`), svgio.WarnErrorMode)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	poly, ok := layerToPolygon(doc.Layers[0], 0.1)
	if !ok {
		t.Fatal("expected a polygon")
	}
	if len(poly.Exterior) == 0 {
		t.Fatal("expected a non-empty exterior ring")
	}
	if len(poly.Holes) != 1 {
		t.Fatalf("got %d holes, want 1", len(poly.Holes))
	}
}

func TestLayerToPolygonFailsWithNoClosedPath(t *testing.T) {
	doc, err := svgio.ReadFile(writeTempSVG(t, `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10">
		<line x1="0" y1="0" x2="10" y2="10"/>
	</svg>`), svgio.WarnErrorMode)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	if _, ok := layerToPolygon(doc.Layers[0], 0.1); ok {
		t.Fatal("expected no polygon from an open path")
	}
}

func TestCmdSortEndToEnd(t *testing.T) {
	in := writeTempSVG(t, `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10">
		<path d="M0,0 L1,1"/>
		<path d="M5,5 L6,6"/>
	</svg>`)
	out := filepath.Join(filepath.Dir(in), "sorted.svg")

	if err := cmdSort([]string{in, out}); err != nil {
		t.Fatalf("cmdSort failed: %v", err)
	}
	doc, err := svgio.ReadFile(out, svgio.WarnErrorMode)
	if err != nil {
		t.Fatalf("ReadFile of sorted output failed: %v", err)
	}
	// layer 0 is written as "Layer 0" and read back as layer 1
	if len(doc.Layers[1].Paths) != 2 {
		t.Fatalf("got %d paths, want 2", len(doc.Layers[1].Paths))
	}
}

func TestCmdHatchEndToEnd(t *testing.T) {
	in := writeTempSVG(t, `<svg xmlns="http://www.w3.org/2000/svg" width="20" height="20">
		<polygon points="0,0 20,0 20,20 0,20"/>
	</svg>`)
	out := filepath.Join(filepath.Dir(in), "hatched.svg")

	if err := cmdHatch([]string{"-layer=0", "-spacing=2", in, out}); err != nil {
		t.Fatalf("cmdHatch failed: %v", err)
	}
	doc, err := svgio.ReadFile(out, svgio.WarnErrorMode)
	if err != nil {
		t.Fatalf("ReadFile of hatched output failed: %v", err)
	}
	// layer 0 is written as "Layer 0" and read back as layer 1
	if len(doc.Layers[1].Paths) <= 1 {
		t.Fatalf("expected hatch lines appended, got %d paths", len(doc.Layers[1].Paths))
	}
}

func TestCmdHatchRejectsMissingLayer(t *testing.T) {
	in := writeTempSVG(t, `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"></svg>`)
	out := filepath.Join(filepath.Dir(in), "out.svg")

	if err := cmdHatch([]string{"-layer=9", in, out}); err == nil {
		t.Fatal("expected an error for a nonexistent layer")
	}
}

func writeTempSVG(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "in.svg")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}
