package taberrors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNewCarriesTypeAndStack(t *testing.T) {
	err := New(ErrorTypeMalformed, "bad quoting")

	if err.Type != ErrorTypeMalformed {
		t.Errorf("Type = %s", err.Type)
	}
	if !strings.Contains(err.Error(), "malformed_input") {
		t.Errorf("Error() = %q, missing type", err.Error())
	}
	if len(err.Stack) == 0 {
		t.Error("stack not captured")
	}
}

func TestNewf(t *testing.T) {
	err := Newf(ErrorTypeFieldCount, "row has %d fields, header has %d", 5, 3)
	if !strings.Contains(err.Error(), "row has 5 fields, header has 3") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestDetails(t *testing.T) {
	err := New(ErrorTypeMalformed, "unterminated quote").
		WithDetail("byte_offset", 1024).
		WithDetail("line", 37)

	if got := err.Detail("byte_offset"); got != 1024 {
		t.Errorf("byte_offset = %v", got)
	}
	if got := err.Detail("line"); got != 37 {
		t.Errorf("line = %v", got)
	}
	if got := err.Detail("missing"); got != nil {
		t.Errorf("missing detail = %v, want nil", got)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("disk gone")
	err := Wrap(cause, ErrorTypeFile, "failed to read file")

	if !errors.Is(err, cause) {
		t.Error("cause not reachable via errors.Is")
	}
	if !strings.Contains(err.Error(), "disk gone") {
		t.Errorf("Error() = %q, missing cause", err.Error())
	}
}

func TestWrapNilReturnsNil(t *testing.T) {
	if err := Wrap(nil, ErrorTypeFile, "whatever"); err != nil {
		t.Errorf("Wrap(nil) = %v", err)
	}
}

func TestWrapKeepsOriginalStack(t *testing.T) {
	inner := New(ErrorTypeData, "conversion failed")
	outer := Wrap(fmt.Errorf("context: %w", inner), ErrorTypeInternal, "merge failed")

	if len(outer.Stack) != len(inner.Stack) {
		t.Errorf("stack replaced: inner %d frames, outer %d", len(inner.Stack), len(outer.Stack))
	}
}

func TestIsType(t *testing.T) {
	err := New(ErrorTypeConfig, "bad delimiter")

	if !IsType(err, ErrorTypeConfig) {
		t.Error("IsType failed on direct error")
	}
	if IsType(err, ErrorTypeFile) {
		t.Error("IsType matched wrong type")
	}

	wrapped := fmt.Errorf("outer: %w", err)
	if !IsType(wrapped, ErrorTypeConfig) {
		t.Error("IsType failed through wrapping")
	}
	if IsType(errors.New("plain"), ErrorTypeConfig) {
		t.Error("IsType matched unstructured error")
	}
}
