package svgio

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vsvg-go/vsvg/geom"
	"github.com/vsvg-go/vsvg/vpath"
	"github.com/vsvg-go/vsvg/vsvgerr"
)

// ParsePathData parses an SVG path `d` attribute's grammar
// (moveto/lineto/curveto/quadto/arcto/closepath, absolute or
// relative, with the grammar's implicit-repeat and implicit-lineto
// rules) into draw commands. Grounded on the number/flag scanning
// idiom in the teacher's readFraction/splitOnCommaOrSpace (comma or
// whitespace separated, sign-prefixed, possibly run-together floats)
// generalized into a full path-command tokenizer, since the teacher's
// own `d` compiler is not present in the retrieved copy of its
// package.
func ParsePathData(d string) (*vpath.BezierPath, error) {
	s := &pathScanner{s: d}
	bp := &vpath.BezierPath{}

	var cur, subpathStart geom.Point
	var prevCtrl geom.Point
	var prevCmd byte

	for {
		s.skipSeparators()
		if s.atEnd() {
			break
		}
		cmd, err := s.readCommand()
		if err != nil {
			return nil, err
		}

		for {
			switch cmd {
			case 'M', 'm':
				p, err := s.readPoint(cmd == 'm', cur)
				if err != nil {
					return nil, err
				}
				cur = p
				subpathStart = p
				bp.Ops = append(bp.Ops, vpath.MoveTo(p))
				if cmd == 'M' {
					cmd = 'L'
				} else {
					cmd = 'l'
				}
			case 'L', 'l':
				p, err := s.readPoint(cmd == 'l', cur)
				if err != nil {
					return nil, err
				}
				cur = p
				bp.Ops = append(bp.Ops, vpath.LineTo(p))
			case 'H', 'h':
				x, err := s.readNumber()
				if err != nil {
					return nil, err
				}
				if cmd == 'h' {
					x += cur.X
				}
				cur = geom.Point{X: x, Y: cur.Y}
				bp.Ops = append(bp.Ops, vpath.LineTo(cur))
			case 'V', 'v':
				y, err := s.readNumber()
				if err != nil {
					return nil, err
				}
				if cmd == 'v' {
					y += cur.Y
				}
				cur = geom.Point{X: cur.X, Y: y}
				bp.Ops = append(bp.Ops, vpath.LineTo(cur))
			case 'C', 'c':
				c1, err := s.readPoint(cmd == 'c', cur)
				if err != nil {
					return nil, err
				}
				c2, err := s.readPoint(cmd == 'c', cur)
				if err != nil {
					return nil, err
				}
				to, err := s.readPoint(cmd == 'c', cur)
				if err != nil {
					return nil, err
				}
				bp.Ops = append(bp.Ops, vpath.CurveTo{Ctrl1: c1, Ctrl2: c2, To: to})
				cur, prevCtrl = to, c2
			case 'S', 's':
				c1 := reflect(prevCtrl, cur, prevCmd == 'C' || prevCmd == 'c' || prevCmd == 'S' || prevCmd == 's')
				c2, err := s.readPoint(cmd == 's', cur)
				if err != nil {
					return nil, err
				}
				to, err := s.readPoint(cmd == 's', cur)
				if err != nil {
					return nil, err
				}
				bp.Ops = append(bp.Ops, vpath.CurveTo{Ctrl1: c1, Ctrl2: c2, To: to})
				cur, prevCtrl = to, c2
			case 'Q', 'q':
				c, err := s.readPoint(cmd == 'q', cur)
				if err != nil {
					return nil, err
				}
				to, err := s.readPoint(cmd == 'q', cur)
				if err != nil {
					return nil, err
				}
				bp.Ops = append(bp.Ops, vpath.QuadTo{Ctrl: c, To: to})
				cur, prevCtrl = to, c
			case 'T', 't':
				c := reflect(prevCtrl, cur, prevCmd == 'Q' || prevCmd == 'q' || prevCmd == 'T' || prevCmd == 't')
				to, err := s.readPoint(cmd == 't', cur)
				if err != nil {
					return nil, err
				}
				bp.Ops = append(bp.Ops, vpath.QuadTo{Ctrl: c, To: to})
				cur, prevCtrl = to, c
			case 'A', 'a':
				rx, err := s.readNumber()
				if err != nil {
					return nil, err
				}
				ry, err := s.readNumber()
				if err != nil {
					return nil, err
				}
				rot, err := s.readNumber()
				if err != nil {
					return nil, err
				}
				large, err := s.readFlag()
				if err != nil {
					return nil, err
				}
				sweep, err := s.readFlag()
				if err != nil {
					return nil, err
				}
				to, err := s.readPoint(cmd == 'a', cur)
				if err != nil {
					return nil, err
				}
				vpath.EllipticalArc(bp, cur.X, cur.Y, rx, ry, rot*math.Pi/180, large, sweep, to.X, to.Y)
				cur = to
			case 'Z', 'z':
				bp.Ops = append(bp.Ops, vpath.ClosePath{})
				cur = subpathStart
			default:
				return nil, vsvgerr.Newf(vsvgerr.Parse, "unsupported path command %q", cmd)
			}

			prevCmd = cmd
			s.skipSeparators()
			if s.atEnd() || s.peekIsCommand() {
				break
			}
			// implicit repeat of the current command (or implicit
			// lineto following a moveto)
		}
	}
	return bp, nil
}

// reflect mirrors the previous control point through the current
// point, for the S/T smooth-curve shorthand; when the prior command
// wasn't a compatible curve, the reflected point is the current point
// itself, per the SVG spec.
func reflect(prevCtrl, cur geom.Point, prevWasCompatible bool) geom.Point {
	if !prevWasCompatible {
		return cur
	}
	return geom.Point{X: 2*cur.X - prevCtrl.X, Y: 2*cur.Y - prevCtrl.Y}
}

type pathScanner struct {
	s   string
	pos int
}

func (s *pathScanner) atEnd() bool {
	return s.pos >= len(s.s)
}

func (s *pathScanner) skipSeparators() {
	for s.pos < len(s.s) {
		switch s.s[s.pos] {
		case ' ', '\t', '\r', '\n', ',':
			s.pos++
		default:
			return
		}
	}
}

func (s *pathScanner) peekIsCommand() bool {
	c := s.s[s.pos]
	return strings.IndexByte("MmLlHhVvCcSsQqTtAaZz", c) >= 0
}

func (s *pathScanner) readCommand() (byte, error) {
	if s.atEnd() || !s.peekIsCommand() {
		return 0, vsvgerr.Newf(vsvgerr.Parse, "expected a path command at position %d in %q", s.pos, s.s)
	}
	c := s.s[s.pos]
	s.pos++
	return c, nil
}

func (s *pathScanner) readFlag() (bool, error) {
	s.skipSeparators()
	if s.atEnd() {
		return false, vsvgerr.Newf(vsvgerr.Parse, "expected a flag in %q", s.s)
	}
	c := s.s[s.pos]
	s.pos++
	switch c {
	case '0':
		return false, nil
	case '1':
		return true, nil
	default:
		return false, vsvgerr.Newf(vsvgerr.Parse, "expected '0' or '1' flag, got %q", c)
	}
}

func (s *pathScanner) readNumber() (float64, error) {
	s.skipSeparators()
	start := s.pos
	if s.pos < len(s.s) && (s.s[s.pos] == '+' || s.s[s.pos] == '-') {
		s.pos++
	}
	sawDigit := false
	for s.pos < len(s.s) && s.s[s.pos] >= '0' && s.s[s.pos] <= '9' {
		s.pos++
		sawDigit = true
	}
	if s.pos < len(s.s) && s.s[s.pos] == '.' {
		s.pos++
		for s.pos < len(s.s) && s.s[s.pos] >= '0' && s.s[s.pos] <= '9' {
			s.pos++
			sawDigit = true
		}
	}
	if !sawDigit {
		return 0, vsvgerr.Newf(vsvgerr.Parse, "expected a number at position %d in %q", start, s.s)
	}
	if s.pos < len(s.s) && (s.s[s.pos] == 'e' || s.s[s.pos] == 'E') {
		end := s.pos + 1
		if end < len(s.s) && (s.s[end] == '+' || s.s[end] == '-') {
			end++
		}
		if end < len(s.s) && s.s[end] >= '0' && s.s[end] <= '9' {
			s.pos = end
			for s.pos < len(s.s) && s.s[s.pos] >= '0' && s.s[s.pos] <= '9' {
				s.pos++
			}
		}
	}
	v, err := strconv.ParseFloat(s.s[start:s.pos], 64)
	if err != nil {
		return 0, vsvgerr.New(vsvgerr.Parse, err)
	}
	return v, nil
}

func (s *pathScanner) readPoint(relative bool, origin geom.Point) (geom.Point, error) {
	x, err := s.readNumber()
	if err != nil {
		return geom.Point{}, err
	}
	s.skipSeparators()
	y, err := s.readNumber()
	if err != nil {
		return geom.Point{}, err
	}
	p := geom.Point{X: x, Y: y}
	if relative {
		p.X += origin.X
		p.Y += origin.Y
	}
	return p, nil
}

// FormatPathData renders ops back into a `d` attribute string with
// fixed 3-decimal precision, matching the teacher's ToSVGPath
// formatting convention (strconv.FormatFloat, 'f', 3, 64).
func FormatPathData(ops []vpath.Op) string {
	var b strings.Builder
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 3, 64) }
	for _, op := range ops {
		switch o := op.(type) {
		case vpath.MoveTo:
			fmt.Fprintf(&b, "M%s,%s ", f(o.X), f(o.Y))
		case vpath.LineTo:
			fmt.Fprintf(&b, "L%s,%s ", f(o.X), f(o.Y))
		case vpath.QuadTo:
			fmt.Fprintf(&b, "Q%s,%s %s,%s ", f(o.Ctrl.X), f(o.Ctrl.Y), f(o.To.X), f(o.To.Y))
		case vpath.CurveTo:
			fmt.Fprintf(&b, "C%s,%s %s,%s %s,%s ", f(o.Ctrl1.X), f(o.Ctrl1.Y), f(o.Ctrl2.X), f(o.Ctrl2.Y), f(o.To.X), f(o.To.Y))
		case vpath.ClosePath:
			b.WriteString("Z ")
		}
	}
	return strings.TrimSpace(b.String())
}
