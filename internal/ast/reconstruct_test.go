package ast

import "testing"

func TestReconstructReturnsExactBytes(t *testing.T) {
	a := NewAst("<test>", []byte("1 + 2"))
	r := ByteRange{Start: 2, End: 3}
	if got := string(a.Reconstruct(r)); got != "+" {
		t.Errorf("Reconstruct(%v) = %q, want %q", r, got, "+")
	}
}

func TestReconstructFullSource(t *testing.T) {
	source := "x: 1\ny: 2\n"
	a := NewAst("<test>", []byte(source))
	r := ByteRange{Start: 0, End: ByteIndex(len(source))}
	if got := string(a.Reconstruct(r)); got != source {
		t.Errorf("Reconstruct(full range) = %q, want %q", got, source)
	}
}
