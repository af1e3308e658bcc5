package tokenizer

import (
	"testing"

	"github.com/cwbudde/go-berg/internal/ast"
	"github.com/cwbudde/go-berg/internal/sequencer"
)

// recordingDownstream records just enough about each token to check
// insertion of the implicit FOLLOWED_BY/APPLY/NEWLINE_SEQUENCE
// operators without needing a full expected-token-stream fixture.
type recordingDownstream struct {
	a      *ast.Ast
	events []string
}

func (d *recordingDownstream) OnExpressionToken(tok ast.ExpressionToken, _ ast.ByteRange) {
	switch tok.Kind {
	case ast.ExprTerm:
		switch tok.Term.Kind {
		case ast.TermIntegerLiteral:
			d.events = append(d.events, "term:int:"+d.a.Literals.String(tok.Term.Literal))
		case ast.TermRawIdentifier:
			d.events = append(d.events, "term:ident:"+d.a.Identifiers.String(tok.Term.Identifier))
		case ast.TermMissingExpression:
			d.events = append(d.events, "term:missing")
		default:
			d.events = append(d.events, "term:other")
		}
	case ast.ExprOpen:
		d.events = append(d.events, "open:"+boundaryLabel(tok.OpenBoundary))
	case ast.ExprPrefixOperator:
		d.events = append(d.events, "prefix:"+d.a.Identifiers.String(tok.Operator))
	}
}

func (d *recordingDownstream) OnOperatorToken(tok ast.OperatorToken, _ ast.ByteRange) {
	switch tok.Kind {
	case ast.OpInfixOperator, ast.OpInfixAssignment:
		d.events = append(d.events, "infix:"+d.a.Identifiers.String(tok.Operator))
	case ast.OpPostfixOperator:
		d.events = append(d.events, "postfix:"+d.a.Identifiers.String(tok.Operator))
	case ast.OpClose:
		d.events = append(d.events, "close:"+boundaryLabel(tok.CloseBoundary))
	case ast.OpCloseBlock:
		d.events = append(d.events, "closeblock")
	}
}

func (d *recordingDownstream) OnIndentMismatch(level int) {
	d.events = append(d.events, "indentmismatch")
}

func (d *recordingDownstream) OnSourceEnd() {}

func boundaryLabel(b ast.Boundary) string {
	if b == ast.BoundaryCompoundTerm {
		return "compoundterm"
	}
	return "other"
}

func tokenize(source string) *recordingDownstream {
	a := ast.NewAst("<test>", []byte(source))
	d := &recordingDownstream{a: a}
	tk := New(d, a)
	sequencer.New(a, tk).Run()
	return d
}

func containsInOrder(events []string, wantInOrder ...string) bool {
	i := 0
	for _, e := range events {
		if i < len(wantInOrder) && e == wantInOrder[i] {
			i++
		}
	}
	return i == len(wantInOrder)
}

func TestTokenizerInfixOperatorNoImplicitJoin(t *testing.T) {
	d := tokenize("1+2")
	if !containsInOrder(d.events, "term:int:1", "infix:+", "term:int:2") {
		t.Errorf("events = %v, want an uninterrupted 1, +, 2 sequence", d.events)
	}
	for _, e := range d.events {
		if e == "infix:\x00apply" || e == "infix:\x00followed_by" {
			t.Errorf("events = %v, want no implicit APPLY/FOLLOWED_BY for an explicit infix operator", d.events)
		}
	}
}

func TestTokenizerJuxtaposedTermsInsertFollowedBy(t *testing.T) {
	// A bare identifier immediately followed by a term with no operator
	// between them is implicit FOLLOWED_BY juxtaposition (spec.md's
	// if/while/etc. control-flow mechanism).
	d := tokenize("x 1")
	found := false
	for i, e := range d.events {
		if e == "infix:\x00followed_by" {
			found = true
			if i == 0 || i == len(d.events)-1 {
				t.Errorf("FOLLOWED_BY at an unexpected position in %v", d.events)
			}
		}
	}
	if !found {
		t.Errorf("events = %v, want an implicit FOLLOWED_BY between the two terms", d.events)
	}
}

func TestTokenizerPostfixOperator(t *testing.T) {
	d := tokenize("x++;")
	if !containsInOrder(d.events, "term:ident:x", "postfix:++") {
		t.Errorf("events = %v, want x followed by a postfix ++", d.events)
	}
}
