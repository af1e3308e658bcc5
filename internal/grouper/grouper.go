// Package grouper implements spec.md §4.3: balancing required
// boundaries (parens, braces, source, indented blocks), materializing
// precedence subexpressions only where needed, and eliding compound
// terms and precedence groups that add nothing. It is the tokenizer's
// Downstream and drives an internal/binder.Binder to actually place
// tokens into the Ast.
package grouper

import (
	"fmt"

	"github.com/cwbudde/go-berg/internal/ast"
	"github.com/cwbudde/go-berg/internal/binder"
	"github.com/cwbudde/go-berg/internal/ident"
)

// openExpression tracks one boundary the grouper has opened but not
// yet closed, along with the most recent infix token pushed directly
// inside it (used to decide precedence-group insertion/elision).
type openExpression struct {
	hasInfix   bool
	infix      ast.Token
	infixIndex ast.Index
	openIndex  ast.Index
	boundary   ast.Boundary
}

// Grouper balances boundaries and resolves precedence, ported from
// berg-compiler's Grouper. It implements tokenizer.Downstream.
type Grouper struct {
	b               *binder.Binder
	openExpressions []openExpression
	indentMismatches []int
}

func New(a *ast.Ast, rootFieldNames []string) *Grouper {
	return &Grouper{b: binder.New(a, rootFieldNames)}
}

func (g *Grouper) Ast() *ast.Ast { return g.b.Ast() }

// IndentMismatches returns the indent levels the tokenizer reported as
// not matching any currently open indented block, in source order.
func (g *Grouper) IndentMismatches() []int { return g.indentMismatches }

func (g *Grouper) top() *openExpression { return &g.openExpressions[len(g.openExpressions)-1] }

// --- tokenizer.Downstream implementation ---

func (g *Grouper) OnExpressionToken(tok ast.ExpressionToken, r ast.ByteRange) {
	if tok.Kind == ast.ExprOpen {
		g.onOpenToken(tok.OpenBoundary, tok.OpenError, r)
		return
	}
	g.pushToken(ast.Expression(tok), r)
}

func (g *Grouper) OnOperatorToken(tok ast.OperatorToken, r ast.ByteRange) {
	switch tok.Kind {
	case ast.OpClose, ast.OpCloseBlock:
		g.onCloseToken(tok.CloseBoundary, tok.CloseError, r)
	case ast.OpInfixOperator, ast.OpInfixAssignment, ast.OpInlineBlockDelimiter:
		g.onInfixToken(tok, r)
	default: // OpPostfixOperator
		g.pushToken(ast.Operator(tok), r)
	}
}

func (g *Grouper) OnIndentMismatch(level int) {
	g.indentMismatches = append(g.indentMismatches, level)
}

// OnSourceEnd closes the root scope. By the time the tokenizer calls
// this, it has already emitted the Close for BoundarySource, which
// travelled through onCloseToken like any other close; Root itself
// never has a matching token in the stream, so it is finished directly
// through the binder instead of through the close-matching loop.
func (g *Grouper) OnSourceEnd() {
	g.b.Finish()
}

// --- infix / precedence-group handling, ported from grouper.rs on_token's infix arm ---

func (g *Grouper) onInfixToken(tok ast.OperatorToken, r ast.ByteRange) {
	next := ast.Operator(tok)
	rangeEnd := r.End

	for !g.openExpressionWantsChild(next) {
		g.closeBoundary(ast.ByteRange{Start: r.Start, End: r.Start}, ast.NoBoundaryError)
	}
	g.openPrecedenceGroupIfNeeded(next)

	index := g.pushToken(next, r)
	top := g.top()
	top.hasInfix = true
	top.infix = next
	top.infixIndex = index

	startsAutoBlock := tok.Kind == ast.OpInlineBlockDelimiter ||
		(tok.Kind == ast.OpInfixOperator && tok.Operator == ident.IdxColon)
	if startsAutoBlock {
		g.onOpenToken(ast.BoundaryAutoBlock, ast.NoBoundaryError, ast.ByteRange{Start: rangeEnd, End: rangeEnd})
	}
}

// openPrecedenceGroupIfNeeded wraps the current open expression's
// right side in an invisible precedence subexpression when the
// incoming infix binds tighter than the one already open, e.g.
// "1+2*3" needs a group so `*` can claim `2` before `+` claims the
// group's result.
func (g *Grouper) openPrecedenceGroupIfNeeded(nextInfix ast.Token) {
	top := g.top()
	if top.hasInfix && takesRightChild(top.infix, nextInfix) {
		g.openExpressions = append(g.openExpressions, openExpression{
			openIndex: top.infixIndex + 1,
			boundary:  ast.BoundaryPrecedenceGroup,
		})
	}
}

// openExpressionWantsChild reports whether the nearest real (non
// precedence-group, non-autoblock) infix above us would accept
// nextInfix as its right child; if not, that infix's enclosing
// boundary must be closed first.
func (g *Grouper) openExpressionWantsChild(nextInfix ast.Token) bool {
	top := g.top()
	var parent *openExpression
	switch top.boundary {
	case ast.BoundaryAutoBlock:
		parent = &g.openExpressions[len(g.openExpressions)-2]
	case ast.BoundaryPrecedenceGroup:
		parent = top
	default:
		return true
	}
	if !parent.hasInfix {
		return true
	}
	return takesRightChild(parent.infix, nextInfix)
}

// --- boundary open/close, ported from grouper.rs on_open_token / on_close_token / close / pop ---

func (g *Grouper) onOpenToken(boundary ast.Boundary, err ast.BoundaryError, r ast.ByteRange) {
	openIndex := g.b.NextIndex()
	g.openExpressions = append(g.openExpressions, openExpression{openIndex: openIndex, boundary: boundary})
	if boundary.IsRequired() {
		g.pushOpenToken(boundary, err, r)
	}
}

func (g *Grouper) onCloseToken(boundary ast.Boundary, err ast.BoundaryError, r ast.ByteRange) {
	for {
		openBoundary := g.top().boundary
		switch {
		case boundary > openBoundary:
			e := ast.NoBoundaryError
			if !openBoundary.IsClosedAutomatically() {
				e = ast.OpenWithoutClose
			}
			g.closeBoundary(ast.ByteRange{Start: r.Start, End: r.Start}, e)

		case boundary == openBoundary:
			g.closeBoundary(r, err)
			return

		default: // boundary < openBoundary
			e := ast.NoBoundaryError
			if boundary.IsRequired() {
				e = ast.CloseWithoutOpen
			}
			openIndex := g.top().openIndex
			if openBoundary.IsRequired() {
				openIndex++
			}
			g.insertTokenPair(openIndex, boundary, e, r)
			return
		}
	}
}

func (g *Grouper) closeBoundary(r ast.ByteRange, err ast.BoundaryError) {
	exp, ok := g.pop()
	if !ok {
		return
	}
	if exp.boundary.IsRequired() {
		g.pushCloseToken(exp, err, r)
	} else {
		g.insertTokenPair(exp.openIndex, exp.boundary, err, r)
	}
}

// pop removes and returns the top open expression if it needs to
// appear in the tree. PrecedenceGroups and CompoundTerms that turn out
// to add nothing are dropped, handing any infix they picked up back to
// their parent; ported from grouper.rs pop.
func (g *Grouper) pop() (openExpression, bool) {
	n := len(g.openExpressions)
	exp := g.openExpressions[n-1]
	g.openExpressions = g.openExpressions[:n-1]

	switch exp.boundary {
	case ast.BoundaryPrecedenceGroup:
		if !exp.hasInfix {
			return openExpression{}, false
		}
		parent := &g.openExpressions[len(g.openExpressions)-1]
		if parent.hasInfix && takesRightChild(parent.infix, exp.infix) {
			return exp, true
		}
		parent.hasInfix = true
		parent.infix = exp.infix
		parent.infixIndex = exp.infixIndex
		return openExpression{}, false

	case ast.BoundaryCompoundTerm:
		a := g.b.Ast()
		idx := exp.openIndex
		for a.Token(idx).Fixity() == ast.FixityPrefix {
			idx++
		}
		tok := a.Token(idx)
		switch tok.Fixity() {
		case ast.FixityTerm:
			if idx == a.LastIndex() {
				return openExpression{}, false
			}
		case ast.FixityOpen:
			if idx+ast.Index(tok.Expr.OpenDelta) == a.LastIndex() {
				return openExpression{}, false
			}
		}
		return exp, true

	default:
		if !exp.boundary.IsRequired() {
			panic(fmt.Sprintf("grouper: boundary %s is not required but reached default pop case", exp.boundary))
		}
		return exp, true
	}
}

// --- token placement, ported from grouper.rs push_open_token / push_close_token / insert_token_pair ---

func (g *Grouper) pushToken(tok ast.Token, r ast.ByteRange) ast.Index {
	if tok.IsOperator {
		return g.b.PushOperatorToken(tok.Op, r)
	}
	return g.b.PushExpressionToken(tok.Expr, r)
}

func (g *Grouper) pushOpenToken(boundary ast.Boundary, err ast.BoundaryError, r ast.ByteRange) ast.Index {
	return g.pushToken(ast.Expression(ast.Open(err, boundary, 0)), r)
}

func (g *Grouper) pushCloseToken(exp openExpression, err ast.BoundaryError, r ast.ByteRange) ast.Index {
	closeIndex := g.b.NextIndex()
	delta := ast.Delta(closeIndex - exp.openIndex)

	a := g.b.Ast()
	open := a.Token(exp.openIndex)
	if open.IsOperator || open.Expr.Kind != ast.ExprOpen {
		panic(fmt.Sprintf("grouper: token at %d is not an Open token", exp.openIndex))
	}
	open.Expr.OpenDelta = delta
	open.Expr.OpenError = err
	a.Tokens[exp.openIndex] = open

	index := g.pushToken(ast.Operator(ast.Close(err, delta, exp.boundary)), r)
	if index != closeIndex {
		panic("grouper: close token pushed at unexpected index")
	}
	return index
}

func (g *Grouper) insertTokenPair(openIndex ast.Index, boundary ast.Boundary, err ast.BoundaryError, r ast.ByteRange) ast.Index {
	a := g.b.Ast()
	openStart := a.Range(openIndex).Start
	closeIndex := g.b.NextIndex() + 1 // accounts for the impending insert
	delta := ast.Delta(closeIndex - openIndex)

	g.b.InsertOpenToken(openIndex, err, boundary, delta, ast.ByteRange{Start: openStart, End: openStart})
	index := g.pushToken(ast.Operator(ast.Close(err, delta, boundary)), r)
	if index != closeIndex {
		panic("grouper: close token pushed at unexpected index after insert")
	}
	return index
}
