package vpath

import "github.com/vsvg-go/vsvg/geom"

// DefaultStrokeWidth and DefaultColor are the SVG fallback values used
// when neither a path nor its layer specifies a color or width.
var (
	DefaultColor       = geom.Black
	DefaultStrokeWidth = 1.0
)

// PathMetadata carries two inheritable fields: stroke color and
// stroke width. A nil field means "inherit from the layer".
type PathMetadata struct {
	Color       *geom.Color
	StrokeWidth *float64
}

// Resolve returns concrete values, falling back first to layerDefaults
// then to the SVG defaults (black, 1px) when both are unset.
func (m PathMetadata) Resolve(layerDefaults PathMetadata) (geom.Color, float64) {
	color := DefaultColor
	if layerDefaults.Color != nil {
		color = *layerDefaults.Color
	}
	if m.Color != nil {
		color = *m.Color
	}

	width := DefaultStrokeWidth
	if layerDefaults.StrokeWidth != nil {
		width = *layerDefaults.StrokeWidth
	}
	if m.StrokeWidth != nil {
		width = *m.StrokeWidth
	}
	return color, width
}

// Merge combines two metadata values field by field: agreement keeps
// the shared value, disagreement (both set and unequal) collapses to
// nil, and a one-sided value is kept as is.
func (m PathMetadata) Merge(other PathMetadata) PathMetadata {
	return PathMetadata{
		Color:       mergeColor(m.Color, other.Color),
		StrokeWidth: mergeFloat(m.StrokeWidth, other.StrokeWidth),
	}
}

func mergeColor(a, b *geom.Color) *geom.Color {
	switch {
	case a == nil && b == nil:
		return nil
	case a == nil:
		c := *b
		return &c
	case b == nil:
		c := *a
		return &c
	case *a == *b:
		c := *a
		return &c
	default:
		return nil
	}
}

func mergeFloat(a, b *float64) *float64 {
	switch {
	case a == nil && b == nil:
		return nil
	case a == nil:
		v := *b
		return &v
	case b == nil:
		v := *a
		return &v
	case *a == *b:
		v := *a
		return &v
	default:
		return nil
	}
}
