package grouper

import (
	"github.com/cwbudde/go-berg/internal/ast"
	"github.com/cwbudde/go-berg/internal/ident"
)

// level orders infix operators from loosest (0) to tightest binding.
// precedence.rs never made it into the retrieval pack (see DESIGN.md),
// so these tiers are reconstructed directly from the precedence table
// documented for this language: arithmetic `* /` binds tighter than
// `+ -`, which binds tighter than comparisons, then `&&`, then `||`,
// then assignment (right-associative); the implicit `FOLLOWED_BY` binds
// tighter than the implicit `APPLY`; `NEWLINE_SEQUENCE` is loosest of all.
type level int

const (
	levelNewlineSequence level = iota
	levelStatementSeparator
	levelAssign
	levelOr
	levelAnd
	levelComparison
	levelAddSubtract
	levelTimesDivide
	levelApply
	levelFollowedBy
)

func precedenceOf(op ast.OperatorToken) level {
	switch op.Kind {
	case ast.OpInlineBlockDelimiter:
		return levelStatementSeparator
	case ast.OpInfixAssignment:
		return levelAssign
	default:
		switch op.Operator {
		case ident.IdxFollowedBy:
			return levelFollowedBy
		case ident.IdxApply:
			return levelApply
		case ident.IdxStar, ident.IdxSlash:
			return levelTimesDivide
		case ident.IdxPlus, ident.IdxMinus:
			return levelAddSubtract
		case ident.IdxEqualTo, ident.IdxNotEqualTo, ident.IdxLessThan,
			ident.IdxLessEqual, ident.IdxGreaterThan, ident.IdxGreaterEqual:
			return levelComparison
		case ident.IdxAndAnd:
			return levelAnd
		case ident.IdxOrOr:
			return levelOr
		case ident.IdxColon, ident.IdxComma, ident.IdxSemicolon:
			return levelStatementSeparator
		case ident.IdxNewlineSequence:
			return levelNewlineSequence
		default:
			// An unrecognized custom operator identifier binds at the
			// same tier as +/-, matching berg-compiler's
			// `_ => Precedence::default()` fallback.
			return levelAddSubtract
		}
	}
}

func isRightAssociative(op ast.OperatorToken) bool {
	return op.Kind == ast.OpInfixAssignment
}

// takesRightChild decides whether parent's right operand should be
// child rather than the start of a new, higher-priority subexpression.
// Ported from token.rs's Fixity::takes_right_child, with the
// Infix/Infix case routed through the reconstructed precedence table
// instead of the inaccessible Precedence::takes_right_child.
func takesRightChild(parent, child ast.Token) bool {
	if parent.Fixity() == ast.FixityInfix && child.Fixity() == ast.FixityInfix {
		pl, cl := precedenceOf(parent.Op), precedenceOf(child.Op)
		if cl > pl {
			return true
		}
		return cl == pl && isRightAssociative(parent.Op)
	}
	return fixityTakesRightChild(parent.Fixity(), child.Fixity())
}

func fixityTakesRightChild(parent, child ast.Fixity) bool {
	switch child {
	case ast.FixityTerm, ast.FixityPrefix, ast.FixityOpen:
		return true
	}
	switch parent {
	case ast.FixityTerm, ast.FixityPostfix, ast.FixityClose:
		return false
	case ast.FixityPrefix:
		return false
	case ast.FixityOpen:
		return true
	case ast.FixityInfix:
		return child == ast.FixityPostfix
	}
	return false
}
