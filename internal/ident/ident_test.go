package ident

import "testing"

func TestInternerInternDeduplicates(t *testing.T) {
	in := NewInterner()
	a := in.Intern("foo")
	b := in.Intern("bar")
	c := in.Intern("foo")

	if a != c {
		t.Errorf("Intern(%q) = %d, Intern(%q) again = %d, want equal", "foo", a, "foo", c)
	}
	if a == b {
		t.Errorf("Intern(%q) and Intern(%q) collided at %d", "foo", "bar", a)
	}
	if got := in.String(a); got != "foo" {
		t.Errorf("String(%d) = %q, want %q", a, got, "foo")
	}
	if got := in.String(b); got != "bar" {
		t.Errorf("String(%d) = %q, want %q", b, got, "bar")
	}
}

func TestLiteralPoolDoesNotDeduplicate(t *testing.T) {
	var p LiteralPool
	a := p.Push("1")
	b := p.Push("1")
	if a == b {
		t.Errorf("Push(%q) twice returned the same index %d, want distinct indices", "1", a)
	}
	if p.String(a) != "1" || p.String(b) != "1" {
		t.Errorf("String(a)=%q String(b)=%q, want both %q", p.String(a), p.String(b), "1")
	}
}

func TestRawPoolCopiesBytes(t *testing.T) {
	var p RawPool
	src := []byte{0xff, 0xfe}
	idx := p.Push(src)
	src[0] = 0x00

	got := p.Bytes(idx)
	if got[0] != 0xff {
		t.Errorf("Bytes(idx) = %v, want the pool's own copy unaffected by later mutation of the source slice", got)
	}
}

func TestNewSourceInternerFixedIndices(t *testing.T) {
	in := NewSourceInterner()

	tests := []struct {
		want  Index
		value string
	}{
		{IdxPlus, PLUS},
		{IdxMinus, MINUS},
		{IdxStar, STAR},
		{IdxSlash, SLASH},
		{IdxEqualTo, EQUAL_TO},
		{IdxNotEqualTo, NOT_EQUAL_TO},
		{IdxLessThan, LESS_THAN},
		{IdxLessEqual, LESS_EQUAL},
		{IdxGreaterThan, GREATER_THAN},
		{IdxGreaterEqual, GREATER_EQUAL},
		{IdxAndAnd, AND_AND},
		{IdxOrOr, OR_OR},
		{IdxNot, NOT},
		{IdxDot, DOT},
		{IdxColon, COLON},
		{IdxComma, COMMA},
		{IdxSemicolon, SEMICOLON},
		{IdxPlusPlus, PLUS_PLUS},
		{IdxMinusMinus, MINUS_MINUS},
		{IdxApply, APPLY},
		{IdxFollowedBy, FOLLOWED_BY},
		{IdxNewlineSequence, NEWLINE_SEQUENCE},
	}
	for _, tt := range tests {
		if got := in.Intern(tt.value); got != tt.want {
			t.Errorf("Intern(%q) = %d, want fixed index %d", tt.value, got, tt.want)
		}
	}
}

func TestNewSourceInternerReinternIsIdempotent(t *testing.T) {
	in := NewSourceInterner()
	before := len(in.strings)
	in.Intern(PLUS)
	if len(in.strings) != before {
		t.Errorf("re-interning a builtin grew the pool from %d to %d entries", before, len(in.strings))
	}
}

func TestRootFieldNamesOrder(t *testing.T) {
	want := []string{
		"true", "false",
		"if", "else", "while", "foreach", "try", "catch", "finally", "throw",
		"break", "continue",
	}
	if len(RootFieldNames) != len(want) {
		t.Fatalf("len(RootFieldNames) = %d, want %d", len(RootFieldNames), len(want))
	}
	for i, name := range want {
		if RootFieldNames[i] != name {
			t.Errorf("RootFieldNames[%d] = %q, want %q", i, RootFieldNames[i], name)
		}
	}
}
