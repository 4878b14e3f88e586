package svgio

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/vsvg-go/vsvg/document"
	"github.com/vsvg-go/vsvg/layer"
	"github.com/vsvg-go/vsvg/vpath"
)

// WriteFile creates (or truncates) path and writes doc to it.
func WriteFile(path string, doc *document.Document) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Write(f, doc)
}

// Write emits doc as SVG markup: a root <svg> sized to the document's
// page size (or its content bounds, if no page size is set), one
// Inkscape-compatible layer <g> per Document layer in ascending ID
// order, and a <path> per Path. Grounded on the teacher's xml.Encoder
// absence - the teacher only reads SVG, never writes it - so the
// element shape itself (fill="none", stroke/stroke-width, one <g> per
// layer) is grounded on reader.rs's inverse: the very attributes
// Document::from_string reads back out, written in the same vocabulary.
func Write(w io.Writer, doc *document.Document) error {
	x0, y0, width, height := pageDimensions(doc)

	if _, err := fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>`+"\n"); err != nil {
		return err
	}
	fmt.Fprintf(w, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:inkscape="http://www.inkscape.org/namespaces/inkscape" width="%s" height="%s" viewBox="%s %s %s %s">`+"\n",
		formatF(width), formatF(height), formatF(x0), formatF(y0), formatF(width), formatF(height))

	writeMetadata(w, doc)

	for _, id := range doc.LayerIDs() {
		l := doc.Layers[id]
		if err := writeLayer(w, id, l); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w, "</svg>")
	return err
}

// pageDimensions returns the viewBox origin and size: the page
// rectangle (0,0)-(w,h) if a page size is set, otherwise the
// document's content bounds, otherwise (0,0)-(1,1) for an empty
// document - floored to a minimum of 1x1 at the same origin either
// way, per writer.rs's dims.union(Rect::from_origin_size(origin, (1,1))).
func pageDimensions(doc *document.Document) (x0, y0, w, h float64) {
	var minX, minY, maxX, maxY float64
	switch {
	case doc.Metadata.PageSize != nil:
		maxX, maxY = doc.Metadata.PageSize.ToPixels()
	default:
		b := doc.Bounds()
		if b.IsEmpty() {
			maxX, maxY = 1, 1
		} else {
			minX, minY, maxX, maxY = b.MinX, b.MinY, b.MaxX, b.MaxY
		}
	}
	w = maxX - minX
	if w < 1 {
		w = 1
	}
	h = maxY - minY
	if h < 1 {
		h = 1
	}
	return minX, minY, w, h
}

func writeMetadata(w io.Writer, doc *document.Document) {
	fmt.Fprintln(w, "  <metadata>")
	fmt.Fprintf(w, "    <date>%s</date>\n", creationDate())
	if doc.Metadata.Source != nil {
		fmt.Fprintf(w, "    <source>%s</source>\n", escapeXML(*doc.Metadata.Source))
	}
	fmt.Fprintln(w, "  </metadata>")
}

func writeLayer(w io.Writer, id layer.ID, l *layer.Layer) error {
	label := fmt.Sprintf("Layer %d", id)
	if l.Metadata.Name != nil && *l.Metadata.Name != "" {
		label = *l.Metadata.Name
	}
	fmt.Fprintf(w, `  <g inkscape:groupmode="layer" inkscape:label="%s" id="layer%d">`+"\n",
		escapeXML(label), id)

	for _, p := range l.Paths {
		d := pathDataToD(p.Data)
		if d == "" {
			continue
		}
		color, width := p.Metadata.Resolve(l.Metadata.Defaults)
		fmt.Fprintf(w, `    <path fill="none" stroke="%s" stroke-width="%s"`, color.Hex(), formatF(width))
		if color.A != 255 {
			fmt.Fprintf(w, ` stroke-opacity="%s"`, formatF(float64(color.A)/255))
		}
		fmt.Fprintf(w, ` d="%s"/>`+"\n", d)
	}

	_, err := fmt.Fprintln(w, "  </g>")
	return err
}

// pathDataToD renders any PathData variant into a `d` attribute
// string, routing a BezierPath through FormatPathData directly and a
// Polyline through an equivalent M/L/Z sequence.
func pathDataToD(data vpath.PathData) string {
	switch p := data.(type) {
	case *vpath.BezierPath:
		return FormatPathData(p.Ops)
	case *vpath.Polyline:
		return polylineToD(p)
	default:
		return ""
	}
}

func polylineToD(p *vpath.Polyline) string {
	if len(p.Points) == 0 {
		return ""
	}
	ops := make([]vpath.Op, 0, len(p.Points)+1)
	ops = append(ops, vpath.MoveTo(p.Points[0]))
	for _, pt := range p.Points[1:] {
		ops = append(ops, vpath.LineTo(pt))
	}
	if p.Closed {
		ops = append(ops, vpath.ClosePath{})
	}
	return FormatPathData(ops)
}

func formatF(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// creationDate returns the current time as an ISO-8601 timestamp, for
// the <metadata><date> element.
func creationDate() string {
	return time.Now().UTC().Format(time.RFC3339)
}
