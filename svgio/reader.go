// Package svgio implements SVG ingest and emission: reading a
// plotter Document from SVG markup and writing one back out.
// Grounded on the teacher's svgicon package - an xml.Decoder-driven
// cursor holding a style stack, dispatching with a switch on the tag
// name (svgicon/svgicon.go, svgicon/parse.go) - generalized from a rendering icon tree to a
// layered plotter document, with layer assignment following the
// digit-extraction rule the vsvg reader applies to Inkscape's
// groupmode/label/id attributes.
package svgio

import (
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/vsvg-go/vsvg/document"
	"github.com/vsvg-go/vsvg/geom"
	"github.com/vsvg-go/vsvg/layer"
	"github.com/vsvg-go/vsvg/vpath"
	"github.com/vsvg-go/vsvg/vsvgerr"
)

// ReadFile opens path and reads a Document from it.
func ReadFile(path string, errMode ErrorMode) (*document.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, vsvgerr.New(vsvgerr.SVGEncoding, err)
	}
	defer f.Close()
	return Read(f, errMode)
}

// Read decodes an SVG document from stream into a Document. Top-level
// groups are assigned to layers per the rule documented on
// layerIDFromAttribute; a top-level bare shape (not wrapped in a
// group) always lands on layer 0.
func Read(stream io.Reader, errMode ErrorMode) (*document.Document, error) {
	raw, err := io.ReadAll(stream)
	if err != nil {
		return nil, vsvgerr.New(vsvgerr.SVGEncoding, err)
	}
	preprocessed := preprocessInkscapeLayers(string(raw))

	doc := document.New()
	cur := &cursor{
		doc:     doc,
		errMode: errMode,
	}
	cur.frames = append(cur.frames, frame{transform: geom.Identity})

	decoder := xml.NewDecoder(strings.NewReader(preprocessed))
	decoder.CharsetReader = charset.NewReaderLabel

	seenRoot := false
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, vsvgerr.New(vsvgerr.SVGEncoding, err)
		}
		switch el := tok.(type) {
		case xml.StartElement:
			seenRoot = true
			if err := cur.start(el); err != nil {
				if err2 := cur.handleError(err); err2 != nil {
					return nil, err2
				}
			}
		case xml.EndElement:
			cur.end()
		}
	}
	if !seenRoot {
		return nil, vsvgerr.New(vsvgerr.SVGEncoding, fmt.Errorf("svgio: empty document"))
	}
	return doc, nil
}

// frame is one entry of the cursor's element stack: the accumulated
// transform and inheritable style in effect for this element and its
// children, plus bookkeeping for layer-changing top-level groups.
type frame struct {
	transform    geom.Affine
	metadata     vpath.PathMetadata
	changedLayer bool
}

type cursor struct {
	doc          *document.Document
	frames       []frame
	currentLayer layer.ID
	errMode      ErrorMode
	topLevelSeen int
}

func (c *cursor) top() frame { return c.frames[len(c.frames)-1] }

func (c *cursor) handleError(err error) error {
	switch c.errMode {
	case StrictErrorMode:
		return err
	case IgnoreErrorMode:
		return nil
	default:
		log.Println("svgio:", err)
		return nil
	}
}

func attrValue(attrs []xml.Attr, name string) (string, bool) {
	for _, a := range attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func (c *cursor) start(se xml.StartElement) error {
	parent := c.top()

	transform := parent.transform
	if v, ok := attrValue(se.Attr, "transform"); ok {
		t, err := geom.ParseTransform(v)
		if err != nil {
			return vsvgerr.New(vsvgerr.Parse, err)
		}
		transform = transform.Mult(t)
	}

	metadata := parent.metadata
	if v, ok := attrValue(se.Attr, "stroke"); ok && v != "none" {
		col, err := geom.ParseColor(v)
		if err == nil {
			metadata.Color = &col
		}
	}
	if v, ok := attrValue(se.Attr, "stroke-width"); ok {
		if l, err := geom.ParseLength(v); err == nil {
			w := l.Pixels()
			metadata.StrokeWidth = &w
		}
	}

	changedLayer := false
	// frames holds the base frame and the root <svg> frame while a
	// direct child of the root starts
	isDirectChildOfRoot := len(c.frames) == 2

	switch se.Name.Local {
	case "svg":
		w, h, vbTransform := parseSVGRoot(se.Attr)
		transform = transform.Mult(vbTransform)
		if w > 0 && h > 0 {
			doc := c.doc
			ps := document.NewCustomPageSize(w, h, geom.Px)
			doc.Metadata.PageSize = &ps
		}
	case "g":
		if isDirectChildOfRoot {
			id, ok := attrValue(se.Attr, "id")
			var gi groupInfo
			if ok {
				if decoded, found := decodeGroupInfo(id); found {
					gi = decoded
				}
			}
			if gi.ID != nil || gi.Groupmode != nil || gi.Label != nil {
				c.topLevelSeen++
			}
			c.currentLayer, changedLayer = assignLayer(c.doc, gi, c.topLevelSeen)
		}
	case "path":
		var pathErr error
		if v, ok := attrValue(se.Attr, "d"); ok {
			bp, err := ParsePathData(v)
			if err != nil {
				pathErr = err
			} else {
				c.pushPath(bp, transform, metadata)
			}
		}
		c.frames = append(c.frames, frame{transform: transform, metadata: metadata, changedLayer: changedLayer})
		return pathErr
	case "rect":
		bp := rectFromAttrs(se.Attr)
		if bp != nil {
			c.pushPath(bp, transform, metadata)
		}
	case "circle":
		bp := circleFromAttrs(se.Attr)
		if bp != nil {
			c.pushPath(bp, transform, metadata)
		}
	case "ellipse":
		bp := ellipseFromAttrs(se.Attr)
		if bp != nil {
			c.pushPath(bp, transform, metadata)
		}
	case "line":
		bp := lineFromAttrs(se.Attr)
		if bp != nil {
			c.pushPath(bp, transform, metadata)
		}
	case "polyline":
		bp := polyFromAttrs(se.Attr, false)
		if bp != nil {
			c.pushPath(bp, transform, metadata)
		}
	case "polygon":
		bp := polyFromAttrs(se.Attr, true)
		if bp != nil {
			c.pushPath(bp, transform, metadata)
		}
	}

	c.frames = append(c.frames, frame{transform: transform, metadata: metadata, changedLayer: changedLayer})
	return nil
}

func (c *cursor) end() {
	if len(c.frames) == 0 {
		return
	}
	popped := c.frames[len(c.frames)-1]
	c.frames = c.frames[:len(c.frames)-1]
	if popped.changedLayer {
		c.currentLayer = 0
	}
}

func (c *cursor) pushPath(bp *vpath.BezierPath, transform geom.Affine, metadata vpath.PathMetadata) {
	data := bp.Transform(transform)
	c.doc.PushPath(c.currentLayer, &vpath.Path{Data: data, Metadata: metadata})
}

// assignLayer implements the three-tier rule: groupmode="layer" label
// digits, then id digits, then top-level appearance order, mirroring
// reader.rs's load_tree_multilayer. A group with no recognizable
// identity at all (the "missing" marker) is treated as a spurious
// wrapper and its content folds into layer 0.
func assignLayer(doc *document.Document, gi groupInfo, appearanceOrder int) (layer.ID, bool) {
	if gi.ID == nil && gi.Groupmode == nil && gi.Label == nil {
		return 0, false
	}

	idStr := ""
	if gi.ID != nil {
		idStr = *gi.ID
	}

	var id int
	var ok bool
	var name string
	if gi.Groupmode != nil && *gi.Groupmode == "layer" {
		id, ok = layerIDFromAttribute(idStr, gi.Label)
		if gi.Label != nil {
			name = *gi.Label
		} else {
			name = idStr
		}
	} else {
		id, ok = layerIDFromAttribute(idStr, nil)
		name = idStr
	}
	if !ok {
		id = appearanceOrder
	}

	l := doc.EnsureLayer(layer.ID(id))
	if name != "" {
		l.Metadata.Name = &name
	}
	return layer.ID(id), true
}

// parseSVGRoot reads the root <svg> element's width/height/viewBox
// attributes, returning the page size in pixels and the transform
// that maps viewBox coordinates onto that pixel rectangle (identity
// if no viewBox is present).
func parseSVGRoot(attrs []xml.Attr) (w, h float64, vbTransform geom.Affine) {
	vbTransform = geom.Identity
	if v, ok := attrValue(attrs, "width"); ok {
		if l, err := geom.ParseLength(v); err == nil {
			w = l.Pixels()
		}
	}
	if v, ok := attrValue(attrs, "height"); ok {
		if l, err := geom.ParseLength(v); err == nil {
			h = l.Pixels()
		}
	}
	if v, ok := attrValue(attrs, "viewBox"); ok {
		fields := strings.FieldsFunc(v, func(r rune) bool { return r == ' ' || r == ',' })
		if len(fields) == 4 {
			var vb [4]float64
			n := 0
			for i, f := range fields {
				var x float64
				if _, err := fmt.Sscanf(f, "%g", &x); err == nil {
					vb[i] = x
					n++
				}
			}
			if n == 4 && vb[2] != 0 && vb[3] != 0 && w > 0 && h > 0 {
				sx, sy := w/vb[2], h/vb[3]
				vbTransform = geom.Identity.Translate(-vb[0]*sx, -vb[1]*sy).Scale(sx, sy)
			}
		}
	}
	return w, h, vbTransform
}
