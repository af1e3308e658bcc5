package comperr

import (
	"testing"

	"github.com/cwbudde/go-berg/internal/ast"
)

func TestCodeString(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{DivideByZero, "DivideByZero"},
		{BadOperandType, "BadOperandType"},
		{Code(99999), "UnknownError"},
	}
	for _, tt := range tests {
		if got := tt.code.String(); got != tt.want {
			t.Errorf("Code(%d).String() = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestCodeMessage(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{DivideByZero, "division by zero"},
		{MissingOperand, "expected an expression here"},
		{BreakOutsideLoop, "break used outside of a loop"},
	}
	for _, tt := range tests {
		if got := tt.code.Message(); got != tt.want {
			t.Errorf("Code(%v).Message() = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestNewUsesCodeMessage(t *testing.T) {
	e := New(DivideByZero, NoLocation())
	if e.Error() != "division by zero" {
		t.Errorf("New(DivideByZero, ...).Error() = %q, want %q", e.Error(), "division by zero")
	}
	if e.Code != DivideByZero {
		t.Errorf("e.Code = %v, want %v", e.Code, DivideByZero)
	}
}

func TestNewfFormatsMessage(t *testing.T) {
	e := Newf(BadOperandType, NoLocation(), "%s does not support juxtaposition", "BOOLEAN")
	want := "BOOLEAN does not support juxtaposition"
	if e.Error() != want {
		t.Errorf("Newf(...).Error() = %q, want %q", e.Error(), want)
	}
}

func TestRepositionPreservesHistory(t *testing.T) {
	inner := New(DivideByZero, NoLocation())
	outer := inner.Reposition(SourceLocation("test.berg", ast.ByteRange{Start: 0, End: 1}))

	if outer.Code != inner.Code {
		t.Errorf("Reposition changed Code from %v to %v", inner.Code, outer.Code)
	}
	if len(outer.Causes) != 1 {
		t.Fatalf("len(outer.Causes) = %d, want 1", len(outer.Causes))
	}
	if outer.Causes[0].Location.Kind != LocationNone {
		t.Errorf("outer.Causes[0].Location.Kind = %v, want the original LocationNone", outer.Causes[0].Location.Kind)
	}
	if outer.Location.Kind != LocationSource {
		t.Errorf("outer.Location.Kind = %v, want LocationSource", outer.Location.Kind)
	}

	// Reposition must not mutate the receiver.
	if len(inner.Causes) != 0 {
		t.Errorf("Reposition mutated the original exception's Causes: %v", inner.Causes)
	}
}

func TestDelocalizeCopiesValue(t *testing.T) {
	e := New(DivideByZero, NoLocation())
	d := e.Delocalize()
	if d.Code != e.Code || d.Message != e.Message {
		t.Errorf("Delocalize() = %+v, want a copy matching %+v", d, *e)
	}
}

func TestRootErrorCodeNamesMatchesCodes(t *testing.T) {
	for _, entry := range RootErrorCodeNames {
		if entry.Code.String() != entry.Name {
			t.Errorf("RootErrorCodeNames entry %q has Code %v whose String() is %q", entry.Name, entry.Code, entry.Code.String())
		}
	}
}

func TestRootErrorCodeNamesNoDuplicates(t *testing.T) {
	seen := make(map[Code]bool, len(RootErrorCodeNames))
	for _, entry := range RootErrorCodeNames {
		if seen[entry.Code] {
			t.Errorf("duplicate code %v (%s) in RootErrorCodeNames", entry.Code, entry.Name)
		}
		seen[entry.Code] = true
	}
}
