package svgio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vsvg-go/vsvg/vpath"
)

// TestLayerNamesAndIDsFollowDigitExtractionRule mirrors reader.rs's
// test_layer_names fixture: a layer-mode group takes its ID from its
// label's digits and its name from the label, a group with only an id
// takes both its ID digits and its name from the id, and a layer-mode
// group whose label has no digits falls back to its 1-based order of
// appearance.
func TestLayerNamesAndIDsFollowDigitExtractionRule(t *testing.T) {
	const svg = `<?xml version="1.0"?>
	<svg xmlns:inkscape="http://www.inkscape.org/namespaces/inkscape"
	   xmlns="http://www.w3.org/2000/svg"
	   width="100" height="100" viewBox="50 50 10 10">
		<g id="layer10" inkscape:label="Layer 10" inkscape:groupmode="layer">
		  <line x1="50" y1="50" x2="60" y2="60" />
		</g>
		<g id="layer11">
		  <line x1="50" y1="50" x2="60" y2="60" />
		</g>
		<g inkscape:label="Hello" inkscape:groupmode="layer">
		  <line x1="50" y1="50" x2="60" y2="60" />
		</g>
	</svg>`

	doc, err := Read(strings.NewReader(svg), WarnErrorMode)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(doc.Layers) != 3 {
		t.Fatalf("got %d layers, want 3", len(doc.Layers))
	}
	l10, ok := doc.Layers[10]
	if !ok || l10.Metadata.Name == nil || *l10.Metadata.Name != "Layer 10" {
		t.Errorf("layer 10 missing or misnamed: %+v", l10)
	}
	l11, ok := doc.Layers[11]
	if !ok || l11.Metadata.Name == nil || *l11.Metadata.Name != "layer11" {
		t.Errorf("layer 11 missing or misnamed: %+v", l11)
	}
	l3, ok := doc.Layers[3]
	if !ok || l3.Metadata.Name == nil || *l3.Metadata.Name != "Hello" {
		t.Errorf("layer 3 (appearance order) missing or misnamed: %+v", l3)
	}
}

func TestBarePathFallsIntoLayerZero(t *testing.T) {
	const svg = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10">
		<path d="M0,0 L10,10"/>
	</svg>`
	doc, err := Read(strings.NewReader(svg), WarnErrorMode)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	l0, ok := doc.Layers[0]
	if !ok || len(l0.Paths) != 1 {
		t.Fatalf("expected one path on layer 0, got %+v", doc.Layers)
	}
}

func TestShapeElementsProduceClosedGeometry(t *testing.T) {
	const svg = `<svg xmlns="http://www.w3.org/2000/svg" width="100" height="100">
		<rect x="10" y="10" width="20" height="30"/>
		<circle cx="50" cy="50" r="5"/>
		<polygon points="0,0 10,0 10,10"/>
	</svg>`
	doc, err := Read(strings.NewReader(svg), WarnErrorMode)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(doc.Layers[0].Paths) != 3 {
		t.Fatalf("got %d paths, want 3", len(doc.Layers[0].Paths))
	}
	for i, p := range doc.Layers[0].Paths {
		first, _ := p.First()
		last, _ := p.Last()
		if !first.Equal(last) {
			t.Errorf("path %d is not closed: starts at %v, ends at %v", i, first, last)
		}
	}
}

func TestGroupInfoEncodeDecodeRoundTrips(t *testing.T) {
	id, mode := "hello", "layer"
	gi := groupInfo{ID: &id, Groupmode: &mode}
	encoded := gi.encode()
	if !strings.HasPrefix(encoded, encodedPrefix) {
		t.Fatalf("expected encoded prefix, got %q", encoded)
	}
	decoded, ok := decodeGroupInfo(encoded)
	if !ok || decoded.ID == nil || *decoded.ID != "hello" || decoded.Groupmode == nil || *decoded.Groupmode != "layer" {
		t.Fatalf("round trip mismatch: %+v", decoded)
	}
}

func TestGroupInfoMissingMarkerIsUnique(t *testing.T) {
	a := groupInfo{}.encode()
	b := groupInfo{}.encode()
	if a == b {
		t.Fatalf("expected distinct missing markers, got %q twice", a)
	}
	if !strings.HasPrefix(a, missingPrefix) || !strings.HasPrefix(b, missingPrefix) {
		t.Fatalf("expected missing-prefixed markers, got %q and %q", a, b)
	}
}

func TestMissingMarkerNumberingIsDeterministicWithFreshCounter(t *testing.T) {
	restore := withFreshGroupCounter()
	defer restore()

	if got := (groupInfo{}).encode(); got != missingPrefix+"0" {
		t.Errorf("got %q, want %s0", got, missingPrefix)
	}
	if got := (groupInfo{}).encode(); got != missingPrefix+"1" {
		t.Errorf("got %q, want %s1", got, missingPrefix)
	}
}

func TestParsePathDataHandlesImplicitLineToAndClose(t *testing.T) {
	bp, err := ParsePathData("M0,0 10,0 10,10 Z")
	if err != nil {
		t.Fatalf("ParsePathData failed: %v", err)
	}
	if len(bp.Ops) != 4 {
		t.Fatalf("got %d ops, want 4 (move, 2 implicit lines, close)", len(bp.Ops))
	}
	if _, ok := bp.Ops[3].(vpath.ClosePath); !ok {
		t.Errorf("expected final op to be ClosePath, got %T", bp.Ops[3])
	}
}

func TestParsePathDataSmoothCurveReflectsPriorControl(t *testing.T) {
	bp, err := ParsePathData("M0,0 C10,0 20,0 30,0 S50,10 60,0")
	if err != nil {
		t.Fatalf("ParsePathData failed: %v", err)
	}
	last, ok := bp.Ops[2].(vpath.CurveTo)
	if !ok {
		t.Fatalf("expected a CurveTo from the S command, got %T", bp.Ops[2])
	}
	if last.Ctrl1.X != 40 || last.Ctrl1.Y != 0 {
		t.Errorf("expected reflected control point (40,0), got %v", last.Ctrl1)
	}
}

func TestFormatPathDataUsesFixedThreeDecimalPrecision(t *testing.T) {
	d := FormatPathData([]vpath.Op{
		vpath.MoveTo{X: 1, Y: 2.5},
		vpath.LineTo{X: 3.14159, Y: 0},
	})
	if !strings.Contains(d, "3.142") {
		t.Errorf("expected 3-decimal rounding, got %q", d)
	}
}

func TestWriteThenReadRoundTripsPathGeometry(t *testing.T) {
	doc, err := Read(strings.NewReader(`<svg xmlns="http://www.w3.org/2000/svg" width="50" height="50">
		<path d="M1,1 L2,2 L3,1 Z"/>
	</svg>`), WarnErrorMode)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	var buf bytes.Buffer
	if err := Write(&buf, doc); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	roundTripped, err := Read(&buf, WarnErrorMode)
	if err != nil {
		t.Fatalf("Read of written output failed: %v", err)
	}
	// Write emits layer 0 as a group labelled "Layer 0", and the reader
	// promotes a layer-id digit of 0 to 1, so the path comes back on
	// layer 1.
	if len(roundTripped.Layers[1].Paths) != 1 {
		t.Fatalf("expected one path after round trip, got %d", len(roundTripped.Layers[1].Paths))
	}
}
