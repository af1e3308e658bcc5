package value

import (
	"github.com/cwbudde/go-berg/internal/comperr"
	"github.com/cwbudde/go-berg/internal/ident"
)

// NextVal is the result of pulling one value out of a value being used
// as an iterator: either there was a value (Head, HasHead true) and Tail
// is what to pull from next time, or the iterator was exhausted and
// Tail is the terminal value to report. Ported from berg_value.rs's
// NextVal{head: Option<BergVal>, tail: BergVal}.
type NextVal struct {
	HasHead bool
	Head    Value
	Tail    Value
}

// NoNextVal reports an exhausted iterator; tail continues the sequence
// (the empty tuple, for anything that only ever produces one value).
func NoNextVal(tail Value) NextVal { return NextVal{Tail: tail} }

// SingleNextVal reports exactly one value with nothing left after it.
func SingleNextVal(v Value) NextVal { return NextVal{HasHead: true, Head: v, Tail: Empty} }

// Iterate pulls the next value out of v. Tuple walks its Items in order;
// every other value type is a single-element iterator that yields
// itself once. A BlockRef is forced to its evaluated result first, so
// `foreach` over a block input (and equality-across-iterables against
// one) walks the block's actual value rather than the lazy reference.
// Ported from berg_value.rs's default BergValue::next_val, whose
// BlockRef case (BlockRef(value) => value.next_val()) delegates through
// the block the same way.
func Iterate(v Value) (NextVal, *comperr.Exception) {
	v, err := forceBlock(v)
	if err != nil {
		return NextVal{}, err
	}
	t, ok := v.(Tuple)
	if !ok {
		return SingleNextVal(v), nil
	}
	if len(t.Items) == 0 {
		return NoNextVal(Empty), nil
	}
	return NextVal{HasHead: true, Head: t.Items[0], Tail: Tuple{Items: t.Items[1:]}}, nil
}

// forceBlock evaluates v to completion if it is a BlockRef, mirroring
// BlockRef::clone_result at _examples/original_source/berg-compiler/src
// /eval/block.rs: every operator except APPLY and DOT (handled directly
// by internal/evaluator against the lazy reference itself) operates on
// a block's evaluated result, not the reference. Any other value passes
// through unchanged.
func forceBlock(v Value) (Value, *comperr.Exception) {
	br, ok := v.(BlockRef)
	if !ok {
		return v, nil
	}
	forced, err := br.Block.Evaluate()
	if err != nil {
		if ce, ok := err.(*comperr.Exception); ok {
			return nil, ce
		}
		return nil, comperr.Newf(comperr.UnsupportedOperator, comperr.NoLocation(), "%v", err)
	}
	return forced, nil
}

func badOperandType(v Value) *comperr.Exception {
	return comperr.Newf(comperr.BadOperandType, comperr.NoLocation(), "%s cannot be used with this operator", v.Type())
}

func unsupportedOperator(v Value, op ident.Index) *comperr.Exception {
	return comperr.Newf(comperr.UnsupportedOperator, comperr.NoLocation(), "%s does not support this operator", v.Type())
}

// Infix applies a binary operator to two already-evaluated operands.
// Errors are returned as *comperr.Exception with comperr.NoLocation();
// the evaluator repositions them to the operator's actual source range
// as they propagate outward. Ported from rational.rs's infix impl,
// generalized across the value types this package adds beyond Rational.
func Infix(left Value, op ident.Index, right Value) (Value, *comperr.Exception) {
	left, err := forceBlock(left)
	if err != nil {
		return nil, err
	}
	right, err = forceBlock(right)
	if err != nil {
		return nil, err
	}
	switch l := left.(type) {
	case Rational:
		r, ok := right.(Rational)
		if !ok {
			return nil, badOperandType(right)
		}
		return rationalInfix(l, op, r)

	case Boolean:
		r, ok := right.(Boolean)
		if !ok {
			return nil, badOperandType(right)
		}
		return booleanInfix(l, op, r)

	default:
		return nil, unsupportedOperator(left, op)
	}
}

func rationalInfix(l Rational, op ident.Index, r Rational) (Value, *comperr.Exception) {
	switch op {
	case ident.IdxPlus:
		return l.Add(r), nil
	case ident.IdxMinus:
		return l.Sub(r), nil
	case ident.IdxStar:
		return l.Mul(r), nil
	case ident.IdxSlash:
		q, ok := l.Div(r)
		if !ok {
			return nil, comperr.New(comperr.DivideByZero, comperr.NoLocation())
		}
		return q, nil
	case ident.IdxEqualTo:
		return Boolean(l.Equal(r)), nil
	case ident.IdxNotEqualTo:
		return Boolean(!l.Equal(r)), nil
	case ident.IdxLessThan:
		return Boolean(l.Cmp(r) < 0), nil
	case ident.IdxLessEqual:
		return Boolean(l.Cmp(r) <= 0), nil
	case ident.IdxGreaterThan:
		return Boolean(l.Cmp(r) > 0), nil
	case ident.IdxGreaterEqual:
		return Boolean(l.Cmp(r) >= 0), nil
	default:
		return nil, unsupportedOperator(l, op)
	}
}

func booleanInfix(l Boolean, op ident.Index, r Boolean) (Value, *comperr.Exception) {
	switch op {
	case ident.IdxAndAnd:
		return Boolean(l && r), nil
	case ident.IdxOrOr:
		return Boolean(l || r), nil
	case ident.IdxEqualTo:
		return Boolean(l == r), nil
	case ident.IdxNotEqualTo:
		return Boolean(l != r), nil
	default:
		return nil, unsupportedOperator(l, op)
	}
}

// Prefix applies a unary prefix operator to an already-evaluated
// operand. Ported from rational.rs's prefix impl (PLUS, DASH,
// PLUS_PLUS, MINUS_MINUS) plus Boolean's NOT.
func Prefix(op ident.Index, operand Value) (Value, *comperr.Exception) {
	operand, err := forceBlock(operand)
	if err != nil {
		return nil, err
	}
	switch v := operand.(type) {
	case Rational:
		switch op {
		case ident.IdxPlus:
			return v, nil
		case ident.IdxMinus:
			return v.Neg(), nil
		case ident.IdxPlusPlus:
			return v.Add(NewRationalInt(1)), nil
		case ident.IdxMinusMinus:
			return v.Sub(NewRationalInt(1)), nil
		default:
			return nil, unsupportedOperator(v, op)
		}

	case Boolean:
		if op == ident.IdxNot {
			return Boolean(!v), nil
		}
		return nil, unsupportedOperator(v, op)

	default:
		return nil, unsupportedOperator(operand, op)
	}
}
