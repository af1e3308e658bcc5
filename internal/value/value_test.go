package value

import (
	"testing"

	"github.com/cwbudde/go-berg/internal/ident"
)

func TestBooleanString(t *testing.T) {
	if Boolean(true).String() != "true" {
		t.Errorf("Boolean(true).String() = %q, want %q", Boolean(true).String(), "true")
	}
	if Boolean(false).String() != "false" {
		t.Errorf("Boolean(false).String() = %q, want %q", Boolean(false).String(), "false")
	}
}

func TestTupleString(t *testing.T) {
	tests := []struct {
		name string
		t    Tuple
		want string
	}{
		{"empty", Tuple{}, "()"},
		{"single", NewTuple(NewRationalInt(1)), "(1)"},
		{"multi", NewTuple(NewRationalInt(1), Boolean(true)), "(1, true)"},
	}
	for _, tt := range tests {
		if got := tt.t.String(); got != tt.want {
			t.Errorf("%s: String() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestInfixArithmetic(t *testing.T) {
	one := NewRationalInt(1)
	two := NewRationalInt(2)

	v, err := Infix(one, ident.IdxPlus, two)
	if err != nil {
		t.Fatalf("Infix(1, +, 2) returned error: %v", err)
	}
	if v.String() != "3" {
		t.Errorf("Infix(1, +, 2) = %s, want 3", v.String())
	}
}

func TestInfixDivideByZero(t *testing.T) {
	one := NewRationalInt(1)
	zero := NewRationalInt(0)
	_, err := Infix(one, ident.IdxSlash, zero)
	if err == nil {
		t.Fatalf("Infix(1, /, 0) succeeded, want an error")
	}
}

func TestInfixMismatchedTypes(t *testing.T) {
	_, err := Infix(NewRationalInt(1), ident.IdxPlus, Boolean(true))
	if err == nil {
		t.Fatalf("Infix(RATIONAL, +, BOOLEAN) succeeded, want an error")
	}
}

func TestInfixBoolean(t *testing.T) {
	tests := []struct {
		op   ident.Index
		a, b Boolean
		want Boolean
	}{
		{ident.IdxAndAnd, true, false, false},
		{ident.IdxOrOr, true, false, true},
		{ident.IdxEqualTo, true, true, true},
		{ident.IdxNotEqualTo, true, false, true},
	}
	for _, tt := range tests {
		v, err := Infix(tt.a, tt.op, tt.b)
		if err != nil {
			t.Fatalf("Infix(%v, %v, %v) returned error: %v", tt.a, tt.op, tt.b, err)
		}
		if v != tt.want {
			t.Errorf("Infix(%v, %v, %v) = %v, want %v", tt.a, tt.op, tt.b, v, tt.want)
		}
	}
}

func TestPrefix(t *testing.T) {
	v, err := Prefix(ident.IdxMinus, NewRationalInt(5))
	if err != nil {
		t.Fatalf("Prefix(-, 5) returned error: %v", err)
	}
	if v.String() != "-5" {
		t.Errorf("Prefix(-, 5) = %s, want -5", v.String())
	}

	b, err := Prefix(ident.IdxNot, Boolean(true))
	if err != nil {
		t.Fatalf("Prefix(!, true) returned error: %v", err)
	}
	if b != Boolean(false) {
		t.Errorf("Prefix(!, true) = %v, want false", b)
	}
}

func TestIterateScalarYieldsSelfOnce(t *testing.T) {
	nv, err := Iterate(NewRationalInt(7))
	if err != nil {
		t.Fatalf("Iterate(7) returned error: %v", err)
	}
	if !nv.HasHead || nv.Head.String() != "7" {
		t.Fatalf("Iterate(7) = %+v, want a single head of 7", nv)
	}
	next, err := Iterate(nv.Tail)
	if err != nil {
		t.Fatalf("Iterate(nv.Tail) returned error: %v", err)
	}
	if next.HasHead {
		t.Errorf("second Iterate call on a scalar's tail produced a head, want exhausted")
	}
}

func TestIterateTuple(t *testing.T) {
	tup := NewTuple(NewRationalInt(1), NewRationalInt(2))
	nv, err := Iterate(tup)
	if err != nil {
		t.Fatalf("first Iterate(tuple) returned error: %v", err)
	}
	if !nv.HasHead || nv.Head.String() != "1" {
		t.Fatalf("first Iterate(tuple) = %+v, want head 1", nv)
	}
	nv2, err := Iterate(nv.Tail)
	if err != nil {
		t.Fatalf("second Iterate(tuple) returned error: %v", err)
	}
	if !nv2.HasHead || nv2.Head.String() != "2" {
		t.Fatalf("second Iterate(tuple) = %+v, want head 2", nv2)
	}
	nv3, err := Iterate(nv2.Tail)
	if err != nil {
		t.Fatalf("third Iterate(tuple) returned error: %v", err)
	}
	if nv3.HasHead {
		t.Errorf("third Iterate(tuple) = %+v, want exhausted", nv3)
	}
}

func TestIterateEmptyTuple(t *testing.T) {
	nv, err := Iterate(Empty)
	if err != nil {
		t.Fatalf("Iterate(Empty) returned error: %v", err)
	}
	if nv.HasHead {
		t.Errorf("Iterate(Empty) = %+v, want exhausted", nv)
	}
}
