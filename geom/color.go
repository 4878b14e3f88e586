package geom

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Color is an RGBA color, 8 bits per channel.
type Color struct {
	R, G, B, A uint8
}

// Black is the SVG default stroke color.
var Black = Color{R: 0, G: 0, B: 0, A: 255}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseColor parses an SVG color string: "#rgb", "#rrggbb", "rgb(r,g,b)"
// and CSS/SVG named colors, grounded on the teacher's
// svgpath/parse.go ParseSVGColor.
func ParseColor(s string) (Color, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "", "none":
		return Color{}, fmt.Errorf("geom: %q is not a color", s)
	}
	if strings.HasPrefix(v, "rgb(") && strings.HasSuffix(v, ")") {
		parts := strings.Split(v[4:len(v)-1], ",")
		if len(parts) != 3 {
			return Color{}, fmt.Errorf("geom: malformed rgb() color %q", s)
		}
		var ch [3]uint8
		for i, p := range parts {
			c, err := parseColorChannel(p)
			if err != nil {
				return Color{}, err
			}
			ch[i] = c
		}
		return Color{R: ch[0], G: ch[1], B: ch[2], A: 255}, nil
	}
	if strings.HasPrefix(v, "#") {
		r, g, b, err := parseHexColor(v)
		if err != nil {
			return Color{}, err
		}
		return Color{R: r, G: g, B: b, A: 255}, nil
	}
	if cn, ok := colornames.Map[v]; ok {
		r, g, b, a := cn.RGBA()
		return Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}, nil
	}
	return Color{}, fmt.Errorf("geom: unrecognized color %q", s)
}

func parseHexColor(s string) (r, g, b uint8, err error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return 0, 0, 0, fmt.Errorf("geom: malformed hex color %q", s)
	}
	for _, v := range []struct {
		c *uint8
		s string
	}{{&r, s[0:2]}, {&g, s[2:4]}, {&b, s[4:6]}} {
		n, e := strconv.ParseUint(v.s, 16, 8)
		if e != nil {
			return 0, 0, 0, fmt.Errorf("geom: malformed hex color %q: %w", s, e)
		}
		*v.c = uint8(n)
	}
	return r, g, b, nil
}

func parseColorChannel(s string) (uint8, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "%") {
		n, err := strconv.Atoi(strings.TrimSuffix(s, "%"))
		if err != nil {
			return 0, fmt.Errorf("geom: bad color channel %q: %w", s, err)
		}
		return uint8(clampInt(n*255/100, 0, 255)), nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("geom: bad color channel %q: %w", s, err)
	}
	return uint8(clampInt(n, 0, 255)), nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
