// Package hatch implements parallel-line fill of a closed polygon,
// the pen-plotter's substitute for an area fill since a plotter can
// only draw strokes. Grounded on hatch.rs's HatchParams/hatch_polygon:
// optional inward inset (to keep the fill from overrunning the
// boundary), rotate-scan-clip-rotate-back line generation, and an
// optional final join pass to chain adjacent segments.
package hatch

// Params configures a single hatch operation.
type Params struct {
	// Spacing between hatch lines, in pixels. Must be positive or
	// Hatch returns no output.
	Spacing float64
	// Angle of the hatch lines in radians; 0 is horizontal.
	Angle float64
	// Inset, when true, shrinks the polygon inward by Spacing/2 before
	// hatching and includes the inset boundary as a stroke.
	Inset bool
	// JoinLines, when true, runs the join operation over the
	// generated hatch lines with tolerance 5*Spacing.
	JoinLines bool
}

// NewParams returns Params with the given spacing and the documented
// defaults: angle 0, inset enabled, line joining enabled.
func NewParams(spacing float64) Params {
	return Params{Spacing: spacing, Inset: true, JoinLines: true}
}

// WithAngle returns a copy of p with its hatch angle set.
func (p Params) WithAngle(angle float64) Params {
	p.Angle = angle
	return p
}

// WithInset returns a copy of p with inset enabled or disabled.
func (p Params) WithInset(inset bool) Params {
	p.Inset = inset
	return p
}

// WithJoinLines returns a copy of p with line joining enabled or
// disabled.
func (p Params) WithJoinLines(join bool) Params {
	p.JoinLines = join
	return p
}
