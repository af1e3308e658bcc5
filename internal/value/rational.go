package value

import "math/big"

// Rational is an arbitrary-precision rational number, Berg's only
// numeric type. Ported from rational.rs's BigRational impl, using
// math/big.Rat in place of the num crate's BigRational.
type Rational struct {
	V *big.Rat
}

func NewRationalInt(n int64) Rational {
	return Rational{V: big.NewRat(n, 1)}
}

// NewRationalFromString parses an integer literal's source text (the
// sequencer guarantees it is all ASCII digits) into a Rational.
func NewRationalFromString(digits string) (Rational, bool) {
	r, ok := new(big.Rat).SetString(digits)
	if !ok {
		return Rational{}, false
	}
	return Rational{V: r}, true
}

func (Rational) Type() string { return "RATIONAL" }

func (r Rational) String() string {
	if r.V.IsInt() {
		return r.V.Num().String()
	}
	return r.V.RatString()
}

func (r Rational) Add(other Rational) Rational { return Rational{V: new(big.Rat).Add(r.V, other.V)} }
func (r Rational) Sub(other Rational) Rational { return Rational{V: new(big.Rat).Sub(r.V, other.V)} }
func (r Rational) Mul(other Rational) Rational { return Rational{V: new(big.Rat).Mul(r.V, other.V)} }

func (r Rational) Div(other Rational) (Rational, bool) {
	if other.V.Sign() == 0 {
		return Rational{}, false
	}
	return Rational{V: new(big.Rat).Quo(r.V, other.V)}, true
}

func (r Rational) Neg() Rational { return Rational{V: new(big.Rat).Neg(r.V)} }

func (r Rational) Cmp(other Rational) int { return r.V.Cmp(other.V) }

func (r Rational) Equal(other Rational) bool { return r.Cmp(other) == 0 }
