package comperr

import "github.com/cwbudde/go-berg/internal/ast"

// Location identifies where an error or exception occurred, generalizing
// the teacher's internal/errors.go position type to Berg's three kinds
// of locatable things (spec.md §7): a source byte range, a single
// expression, or "nowhere" (codes raised before any source exists, like
// SourceNotFound).
type Location struct {
	Kind LocationKind

	SourceName string
	Range      ast.ByteRange

	Expr ast.Expression
}

type LocationKind int

const (
	LocationNone LocationKind = iota
	LocationSource
	LocationExpression
)

func NoLocation() Location { return Location{Kind: LocationNone} }

func SourceLocation(name string, r ast.ByteRange) Location {
	return Location{Kind: LocationSource, SourceName: name, Range: r}
}

func ExpressionLocation(e ast.Expression) Location {
	return Location{Kind: LocationExpression, Expr: e}
}

// ExpressionErrorPosition names which part of a parent expression an
// error or thrown value should be reported against when it is
// repositioned outward (spec.md §9's repositioning rule: "errors
// discovered while evaluating an operand are reported at the operand's
// position in the parent, not at the operand itself, when the operand
// is itself a compound expression").
type ExpressionErrorPosition int

const (
	PositionExpr ExpressionErrorPosition = iota
	PositionExprLeft
	PositionExprRight
	PositionExprLeftLeft
	PositionExprLeftRight
	PositionExprRightLeft
	PositionExprRightRight
)

// Reposition resolves an ExpressionErrorPosition against a base
// expression into the concrete sub-expression it names, ported from
// berg-compiler/src/value/error.rs reposition. A position that requests
// a grandchild (LeftLeft, LeftRight, RightLeft, RightRight) on an
// expression whose child is not itself infix is an invariant violation
// in Berg's design: the grouper only ever produces the patterns these
// seven positions are meant to describe, so encountering a mismatch means
// the evaluator and grouper have fallen out of sync, not a value the
// program can observe.
func Reposition(base ast.Expression, pos ExpressionErrorPosition) ast.Expression {
	switch pos {
	case PositionExpr:
		return base
	case PositionExprLeft:
		return base.LeftExpression()
	case PositionExprRight:
		return base.RightExpression()
	case PositionExprLeftLeft:
		return base.LeftExpression().LeftExpression()
	case PositionExprLeftRight:
		return base.LeftExpression().RightExpression()
	case PositionExprRightLeft:
		return base.RightExpression().LeftExpression()
	case PositionExprRightRight:
		return base.RightExpression().RightExpression()
	default:
		panic("comperr: unknown ExpressionErrorPosition")
	}
}
