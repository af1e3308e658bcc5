package grouper

import (
	"testing"

	"github.com/cwbudde/go-berg/internal/ast"
	"github.com/cwbudde/go-berg/internal/sequencer"
	"github.com/cwbudde/go-berg/internal/tokenizer"
)

// parse runs the Sequencer/Tokenizer/Grouper/Binder pipeline the same
// way internal/berg.Parse does, without pulling in the evaluator.
func parse(t *testing.T, source string) *ast.Ast {
	t.Helper()
	a := ast.NewAst("<test>", []byte(source))
	g := New(a, []string{"true", "false"})
	tk := tokenizer.New(g, a)
	sequencer.New(a, tk).Run()
	return g.Ast()
}

func TestGrouperSimpleInfixExpression(t *testing.T) {
	a := parse(t, "1 + 2")
	root := a.Expr(0).InnerExpression()
	tok := root.Token()
	if !tok.IsOperator {
		t.Fatalf("root token is not an operator: %+v", tok)
	}
	if got := a.IdentifierName(tok.Op.Operator); got != "+" {
		t.Errorf("root operator = %q, want %q", got, "+")
	}

	left := root.LeftExpression()
	right := root.RightExpression()
	if left.Token().IsOperator || right.Token().IsOperator {
		t.Fatalf("expected both operands to be term tokens, got left=%+v right=%+v", left.Token(), right.Token())
	}
}

func TestGrouperPrecedence(t *testing.T) {
	// "1 + 2 * 3" must group as 1 + (2 * 3): the root operator is +, and
	// its right operand is a precedence group wrapping the * expression.
	a := parse(t, "1 + 2 * 3")
	root := a.Expr(0).InnerExpression()
	if got := a.IdentifierName(root.Token().Op.Operator); got != "+" {
		t.Errorf("root operator = %q, want %q", got, "+")
	}
	group := root.RightExpression()
	if tok := group.Token(); tok.IsOperator || tok.Expr.Kind != ast.ExprOpen || tok.Expr.OpenBoundary != ast.BoundaryPrecedenceGroup {
		t.Fatalf("right operand is not a precedence group: %+v", tok)
	}
	right := group.InnerExpression()
	if !right.Token().IsOperator {
		t.Fatalf("right operand is not an operator expression: %+v", right.Token())
	}
	if got := a.IdentifierName(right.Token().Op.Operator); got != "*" {
		t.Errorf("right operand operator = %q, want %q", got, "*")
	}
}

func TestGrouperParenthesesOverridePrecedence(t *testing.T) {
	// "(1 + 2) * 3" must group as (1 + 2) * 3: the root operator is *.
	a := parse(t, "(1 + 2) * 3")
	root := a.Expr(0).InnerExpression()
	if got := a.IdentifierName(root.Token().Op.Operator); got != "*" {
		t.Errorf("root operator = %q, want %q", got, "*")
	}
}

func TestGrouperCurlyBlockOpensBoundary(t *testing.T) {
	a := parse(t, "{1}")
	root := a.Expr(0).InnerExpression()
	tok := root.Token()
	if tok.IsOperator || tok.Expr.Kind != ast.ExprOpen {
		t.Fatalf("root token = %+v, want an open block term", tok)
	}
	if !tok.Expr.OpenBoundary.IsBlock() {
		t.Errorf("root boundary = %v, want a block boundary", tok.Expr.OpenBoundary)
	}
}
