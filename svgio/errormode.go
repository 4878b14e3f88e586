package svgio

// ErrorMode controls how Read reacts to a recoverable problem (an
// unsupported element, an unparsable attribute) as opposed to a fatal
// one (malformed XML). Grounded on the teacher's three-valued
// IgnoreErrorMode/WarnErrorMode/StrictErrorMode used throughout
// svgicon/parse.go and svgpath/parse.go, though that type itself lives
// outside the retrieved copy of either package.
type ErrorMode int

const (
	// IgnoreErrorMode silently skips whatever could not be parsed.
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode logs a warning and continues, skipping the
	// offending element or attribute. It is not the zero value: an
	// unset ErrorMode is IgnoreErrorMode.
	WarnErrorMode
	// StrictErrorMode aborts the read with an error.
	StrictErrorMode
)

func (m ErrorMode) String() string {
	switch m {
	case IgnoreErrorMode:
		return "ignore"
	case StrictErrorMode:
		return "strict"
	default:
		return "warn"
	}
}
