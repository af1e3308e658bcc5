package value

import "testing"

func TestRationalArithmetic(t *testing.T) {
	a := NewRationalInt(6)
	b := NewRationalInt(4)

	tests := []struct {
		name string
		got  Rational
		want string
	}{
		{"add", a.Add(b), "10"},
		{"sub", a.Sub(b), "2"},
		{"mul", a.Mul(b), "24"},
		{"neg", a.Neg(), "-6"},
	}
	for _, tt := range tests {
		if got := tt.got.String(); got != tt.want {
			t.Errorf("%s = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestRationalDivByZero(t *testing.T) {
	a := NewRationalInt(1)
	zero := NewRationalInt(0)
	if _, ok := a.Div(zero); ok {
		t.Errorf("Div(1, 0) succeeded, want ok=false")
	}
}

func TestRationalDivNonInteger(t *testing.T) {
	a := NewRationalInt(1)
	b := NewRationalInt(3)
	q, ok := a.Div(b)
	if !ok {
		t.Fatalf("Div(1, 3) failed, want ok=true")
	}
	if got := q.String(); got != "1/3" {
		t.Errorf("Div(1, 3).String() = %q, want %q", got, "1/3")
	}
}

func TestRationalCmpAndEqual(t *testing.T) {
	a := NewRationalInt(3)
	b := NewRationalInt(5)
	if a.Cmp(b) >= 0 {
		t.Errorf("Cmp(3, 5) = %d, want < 0", a.Cmp(b))
	}
	if !a.Equal(a) {
		t.Errorf("Equal(3, 3) = false, want true")
	}
	if a.Equal(b) {
		t.Errorf("Equal(3, 5) = true, want false")
	}
}

func TestNewRationalFromString(t *testing.T) {
	r, ok := NewRationalFromString("42")
	if !ok {
		t.Fatalf("NewRationalFromString(%q) failed", "42")
	}
	if got := r.String(); got != "42" {
		t.Errorf("NewRationalFromString(%q).String() = %q, want %q", "42", got, "42")
	}

	if _, ok := NewRationalFromString("not-a-number"); ok {
		t.Errorf("NewRationalFromString(%q) succeeded, want failure", "not-a-number")
	}
}
