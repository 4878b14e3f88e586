package vsvgerr

import (
	"errors"
	"testing"
)

func TestKindOfExtractsWrappedKind(t *testing.T) {
	err := New(Parse, errors.New("bad unit"))
	if KindOf(err) != Parse {
		t.Errorf("got %v, want Parse", KindOf(err))
	}
}

func TestKindOfDefaultsToInternalForPlainError(t *testing.T) {
	if KindOf(errors.New("boom")) != Internal {
		t.Error("expected a plain error to classify as Internal")
	}
}

func TestErrorUnwrapsToUnderlyingCause(t *testing.T) {
	cause := errors.New("eof")
	err := New(SVGEncoding, cause)
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}
}

func TestNewfFormatsMessage(t *testing.T) {
	err := Newf(ExpectedSingleLayer, "wanted 1 layer, got %d", 3)
	if err.Error() != "expected single layer: wanted 1 layer, got 3" {
		t.Errorf("got %q", err.Error())
	}
}
