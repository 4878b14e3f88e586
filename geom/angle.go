package geom

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Angle is a single value in radians.
type Angle float64

// Radians returns the angle's value in radians.
func (a Angle) Radians() float64 { return float64(a) }

// Degrees returns the angle's value in degrees.
func (a Angle) Degrees() float64 { return float64(a) * 180 / math.Pi }

// AngleFromDegrees builds an Angle from a degree value.
func AngleFromDegrees(deg float64) Angle {
	return Angle(deg * math.Pi / 180)
}

// ParseAngle parses a string with suffix "rad", "deg", "°", or bare
// (bare is interpreted as degrees), mirroring geom's suffix-trim unit
// grammar.
func ParseAngle(s string) (Angle, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasSuffix(s, "rad"):
		v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(s, "rad")), 64)
		if err != nil {
			return 0, fmt.Errorf("geom: bad angle %q: %w", s, err)
		}
		return Angle(v), nil
	case strings.HasSuffix(s, "deg"):
		v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(s, "deg")), 64)
		if err != nil {
			return 0, fmt.Errorf("geom: bad angle %q: %w", s, err)
		}
		return AngleFromDegrees(v), nil
	case strings.HasSuffix(s, "°"):
		v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(s, "°")), 64)
		if err != nil {
			return 0, fmt.Errorf("geom: bad angle %q: %w", s, err)
		}
		return AngleFromDegrees(v), nil
	default:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("geom: bad angle %q: %w", s, err)
		}
		return AngleFromDegrees(v), nil
	}
}
