// Package vsvgerr provides the tagged error kind shared across the
// toolkit's fallible operations (parsing, SVG decode, layer
// selection). Grounded on the teacher's sentinel-error style in
// svgicon/parse.go (errParamMismatch returned bare, compared with
// errors.Is by callers) generalized to a wrapped, categorized error so
// a single errors.As(...) extracts the kind regardless of the
// underlying cause.
package vsvgerr

import (
	"errors"
	"fmt"
)

// Kind categorizes a toolkit error, per spec.md §7.
type Kind uint8

const (
	// Internal marks a bug: an invariant the core itself should have
	// upheld was violated.
	Internal Kind = iota
	// Parse marks malformed input (a unit, angle, or SVG path-data
	// grammar string that could not be read).
	Parse
	// ExpectedSingleLayer marks an operation requiring exactly one
	// active layer invoked with zero or more than one selected.
	ExpectedSingleLayer
	// SVGEncoding marks a failure decoding or re-encoding SVG markup
	// (XML syntax, attribute grammar, Inkscape layer metadata).
	SVGEncoding
)

func (k Kind) String() string {
	switch k {
	case Parse:
		return "parse"
	case ExpectedSingleLayer:
		return "expected single layer"
	case SVGEncoding:
		return "svg encoding"
	default:
		return "internal"
	}
}

// Error wraps an underlying error with a Kind, so a caller can branch
// on error category without string-matching the message.
type Error struct {
	Kind Kind
	Err  error
}

// New builds an Error of the given kind wrapping err.
func New(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// Newf builds an Error of the given kind from a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the Kind from err, or Internal if err is not (or
// does not wrap) a *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}
