package svgio

import (
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/vsvg-go/vsvg/geom"
	"github.com/vsvg-go/vsvg/vpath"
)

// floatAttr reads a plain numeric attribute (no unit suffix expected,
// per the basic-shape elements' grammar), defaulting to def if absent
// or unparsable.
func floatAttr(attrs []xml.Attr, name string, def float64) float64 {
	v, ok := attrValue(attrs, name)
	if !ok {
		return def
	}
	if l, err := geom.ParseLength(strings.TrimSpace(v)); err == nil {
		return l.Pixels()
	}
	return def
}

func rectFromAttrs(attrs []xml.Attr) *vpath.BezierPath {
	x := floatAttr(attrs, "x", 0)
	y := floatAttr(attrs, "y", 0)
	w := floatAttr(attrs, "width", 0)
	h := floatAttr(attrs, "height", 0)
	if w <= 0 || h <= 0 {
		return nil
	}
	rx := floatAttr(attrs, "rx", -1)
	ry := floatAttr(attrs, "ry", -1)
	if rx < 0 && ry >= 0 {
		rx = ry
	}
	if ry < 0 && rx >= 0 {
		ry = rx
	}
	if rx > 0 && ry > 0 {
		return vpath.RoundedRectangle(x, y, x+w, y+h, rx, ry, 0)
	}
	return vpath.Rectangle(x, y, x+w, y+h, 0)
}

func circleFromAttrs(attrs []xml.Attr) *vpath.BezierPath {
	cx := floatAttr(attrs, "cx", 0)
	cy := floatAttr(attrs, "cy", 0)
	r := floatAttr(attrs, "r", 0)
	if r <= 0 {
		return nil
	}
	return vpath.Circle(geom.Point{X: cx, Y: cy}, r)
}

func ellipseFromAttrs(attrs []xml.Attr) *vpath.BezierPath {
	cx := floatAttr(attrs, "cx", 0)
	cy := floatAttr(attrs, "cy", 0)
	rx := floatAttr(attrs, "rx", 0)
	ry := floatAttr(attrs, "ry", 0)
	if rx <= 0 || ry <= 0 {
		return nil
	}
	return vpath.Ellipse(geom.Point{X: cx, Y: cy}, rx, ry, 0)
}

func lineFromAttrs(attrs []xml.Attr) *vpath.BezierPath {
	x1 := floatAttr(attrs, "x1", 0)
	y1 := floatAttr(attrs, "y1", 0)
	x2 := floatAttr(attrs, "x2", 0)
	y2 := floatAttr(attrs, "y2", 0)
	return vpath.PointPair(geom.Point{X: x1, Y: y1}, geom.Point{X: x2, Y: y2})
}

// parsePointsAttr reads a "points" attribute value, a whitespace/comma
// separated list of coordinate pairs.
func parsePointsAttr(v string) []geom.Point {
	fields := strings.FieldsFunc(v, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n' || r == '\r'
	})
	var pts []geom.Point
	for i := 0; i+1 < len(fields); i += 2 {
		x, errX := strconv.ParseFloat(fields[i], 64)
		y, errY := strconv.ParseFloat(fields[i+1], 64)
		if errX != nil || errY != nil {
			continue
		}
		pts = append(pts, geom.Point{X: x, Y: y})
	}
	return pts
}

func polyFromAttrs(attrs []xml.Attr, closed bool) *vpath.BezierPath {
	v, ok := attrValue(attrs, "points")
	if !ok {
		return nil
	}
	pts := parsePointsAttr(v)
	if len(pts) < 2 {
		return nil
	}
	return vpath.FromPoints(pts, closed)
}
