package layer

import "github.com/vsvg-go/vsvg/vpath"

// Metadata carries an optional display name, default path styling for
// the layer's paths to inherit, and a per-layer hatch angle default.
// Merge rules mirror vpath.PathMetadata: agreement keeps the value,
// disagreement collapses to nil, and a one-sided value is kept.
type Metadata struct {
	Name       *string
	Defaults   vpath.PathMetadata
	HatchAngle *float64
}

func (m Metadata) Merge(other Metadata) Metadata {
	return Metadata{
		Name:       mergeString(m.Name, other.Name),
		Defaults:   m.Defaults.Merge(other.Defaults),
		HatchAngle: mergeFloat(m.HatchAngle, other.HatchAngle),
	}
}

func mergeString(a, b *string) *string {
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
