package document

import "github.com/vsvg-go/vsvg/geom"

// PageSize is either one of a fixed set of standard paper sizes (in
// portrait or landscape orientation) or a Custom size expressed as a
// width/height pair in an arbitrary Unit. Standard sizes carry their
// physical dimensions in millimeters, converted to pixels at the
// conventional 96 px/in.
type PageSize struct {
	standard standardSize // standardNone for a Custom size
	w, h     float64      // Custom only: raw value in unit
	unit     geom.Unit    // Custom only
}

type standardSize uint8

const (
	standardNone standardSize = iota
	A6V
	A6H
	A5V
	A5H
	A4V
	A4H
	A3V
	A3H
	A2V
	A2H
	A1V
	A1H
	A0V
	A0H
	LetterV
	LetterH
	LegalV
	LegalH
	ExecutiveV
	ExecutiveH
	TabloidV
	TabloidH
)

// mmToPx converts a millimeter length to the conventional 96 px/in.
func mmToPx(mm float64) float64 { return mm * 96.0 / 25.4 }

var standardSizesMM = map[standardSize][2]float64{
	A6V:        {mmToPx(105.0), mmToPx(148.0)},
	A5V:        {mmToPx(148.0), mmToPx(210.0)},
	A4V:        {mmToPx(210.0), mmToPx(297.0)},
	A3V:        {mmToPx(297.0), mmToPx(420.0)},
	A2V:        {mmToPx(420.0), mmToPx(594.0)},
	A1V:        {mmToPx(594.0), mmToPx(841.0)},
	A0V:        {mmToPx(841.0), mmToPx(1189.0)},
	LetterV:    {mmToPx(215.9), mmToPx(279.4)},
	LegalV:     {mmToPx(215.9), mmToPx(355.6)},
	ExecutiveV: {mmToPx(185.15), mmToPx(266.7)},
	TabloidV:   {mmToPx(279.4), mmToPx(431.8)},
}

var landscapeOf = map[standardSize]standardSize{
	A6H: A6V, A5H: A5V, A4H: A4V, A3H: A3V, A2H: A2V, A1H: A1V, A0H: A0V,
	LetterH: LetterV, LegalH: LegalV, ExecutiveH: ExecutiveV, TabloidH: TabloidV,
}

// NewCustomPageSize builds a Custom page size of the given width and
// height, expressed in unit.
func NewCustomPageSize(w, h float64, unit geom.Unit) PageSize {
	return PageSize{standard: standardNone, w: w, h: h, unit: unit}
}

// standardPageSize wraps one of the standard sizes (portrait or
// landscape) as a PageSize.
func standardPageSize(s standardSize) PageSize { return PageSize{standard: s} }

// A4 and friends are the portrait standard page size constructors used
// by callers (config defaults, CLI flags); Landscape() flips any of
// them.
var (
	A4Portrait     = standardPageSize(A4V)
	A3Portrait     = standardPageSize(A3V)
	LetterPortrait = standardPageSize(LetterV)
)

// Landscape returns p rotated 90 degrees: width and height swap.
func (p PageSize) Landscape() PageSize {
	if p.standard == standardNone {
		return NewCustomPageSize(p.h, p.w, p.unit)
	}
	switch p.standard {
	case A6V:
		return standardPageSize(A6H)
	case A5V:
		return standardPageSize(A5H)
	case A4V:
		return standardPageSize(A4H)
	case A3V:
		return standardPageSize(A3H)
	case A2V:
		return standardPageSize(A2H)
	case A1V:
		return standardPageSize(A1H)
	case A0V:
		return standardPageSize(A0H)
	case LetterV:
		return standardPageSize(LetterH)
	case LegalV:
		return standardPageSize(LegalH)
	case ExecutiveV:
		return standardPageSize(ExecutiveH)
	case TabloidV:
		return standardPageSize(TabloidH)
	case A6H:
		return standardPageSize(A6V)
	case A5H:
		return standardPageSize(A5V)
	case A4H:
		return standardPageSize(A4V)
	case A3H:
		return standardPageSize(A3V)
	case A2H:
		return standardPageSize(A2V)
	case A1H:
		return standardPageSize(A1V)
	case A0H:
		return standardPageSize(A0V)
	case LetterH:
		return standardPageSize(LetterV)
	case LegalH:
		return standardPageSize(LegalV)
	case ExecutiveH:
		return standardPageSize(ExecutiveV)
	case TabloidH:
		return standardPageSize(TabloidV)
	}
	return p
}

// ToPixels returns the page's (width, height) in pixels.
func (p PageSize) ToPixels() (w, h float64) {
	if p.standard == standardNone {
		return geom.NewLength(p.w, p.unit).Pixels(), geom.NewLength(p.h, p.unit).Pixels()
	}
	if portrait, ok := standardSizesMM[p.standard]; ok {
		return portrait[0], portrait[1]
	}
	portrait := standardSizesMM[landscapeOf[p.standard]]
	return portrait[1], portrait[0]
}
