// Package binder implements spec.md §4.4: resolving raw identifiers to
// lexical field slots as tokens are pushed, and tracking the open-scope
// stack that backs the block table. It is the last stage before a
// finished ast.Ast reaches the evaluator.
package binder

import (
	"fmt"

	"github.com/cwbudde/go-berg/internal/ast"
	"github.com/cwbudde/go-berg/internal/ident"
)

type openScope struct {
	openIndex  ast.Index
	block      ast.BlockIndex
	scopeStart int // index into Binder.scope
}

// Binder owns the Ast being built and the lexical scope stack. It is
// driven by internal/grouper, which calls PushExpressionToken /
// PushOperatorToken / InsertOpenToken for every token it finally
// decides belongs in the tree.
type Binder struct {
	a          *ast.Ast
	openScopes []openScope
	scope      []ast.FieldIndex // currently visible field indices, innermost-last
}

// New creates a Binder over a, pre-declaring rootFieldNames (in order)
// as the root block's fields and opening the Root scope. Ported from
// binder.rs Binder::new, which seeds `scope` from keywords::FIELD_NAMES
// before any token is pushed.
func New(a *ast.Ast, rootFieldNames []string) *Binder {
	b := &Binder{a: a}
	for _, name := range rootFieldNames {
		id := a.Identifiers.Intern(name)
		idx := a.PushField(ast.Field{Name: id, IsPublic: false})
		b.scope = append(b.scope, idx)
	}
	b.pushOpenScope(ast.BoundaryRoot)
	return b
}

func (b *Binder) openScope() *openScope { return &b.openScopes[len(b.openScopes)-1] }

func (b *Binder) pushOpenScope(boundary ast.Boundary) ast.BlockIndex {
	parentDelta := ast.BlockDelta(0)
	if len(b.openScopes) > 0 {
		parentDelta = ast.BlockDelta(b.a.NextBlockIndex() - b.openScopes[len(b.openScopes)-1].block)
	}
	idx := b.a.PushBlock(ast.AstBlock{
		Parent:     parentDelta,
		ScopeStart: b.a.NextFieldIndex(),
		Boundary:   boundary,
	})
	b.openScopes = append(b.openScopes, openScope{
		openIndex:  b.a.NextIndex(),
		block:      idx,
		scopeStart: len(b.scope),
	})
	return idx
}

func (b *Binder) pushCloseScope(delta ast.Delta) ast.BlockIndex {
	top := b.openScopes[len(b.openScopes)-1]
	b.openScopes = b.openScopes[:len(b.openScopes)-1]

	block := b.a.Block(top.block)
	block.ScopeCount = ast.FieldDelta(b.a.NextFieldIndex() - block.ScopeStart)
	block.Delta = delta
	b.a.Blocks[top.block] = block

	b.scope = b.scope[:top.scopeStart]
	return top.block
}

// PushExpressionToken resolves identifiers and pushes the token,
// ported from binder.rs push_expression_token.
func (b *Binder) PushExpressionToken(tok ast.ExpressionToken, r ast.ByteRange) ast.Index {
	switch tok.Kind {
	case ast.ExprTerm:
		switch tok.Term.Kind {
		case ast.TermRawIdentifier:
			if !b.lastIsDot() {
				return b.pushFieldReference(tok.Term.Identifier, r)
			}
		}
		return b.pushToken(ast.Expression(tok), r)

	case ast.ExprOpen:
		if tok.OpenBoundary.IsBlock() {
			tok.OpenBlock = b.pushOpenScope(tok.OpenBoundary)
		}
		return b.pushToken(ast.Expression(tok), r)

	default: // ExprPrefixOperator
		return b.pushToken(ast.Expression(tok), r)
	}
}

// PushOperatorToken pushes an operator token, translating block-closing
// Close tokens into CloseBlock and handling the declaration-flips that
// `:`/inline-block-delimiter trigger. Ported from binder.rs
// push_operator_token.
func (b *Binder) PushOperatorToken(tok ast.OperatorToken, r ast.ByteRange) ast.Index {
	switch tok.Kind {
	case ast.OpClose:
		if tok.CloseBoundary.IsBlock() {
			blockIdx := b.pushCloseScope(tok.CloseDelta)
			return b.pushToken(ast.Operator(ast.CloseBlock(tok.CloseError, blockIdx, tok.CloseBoundary)), r)
		}
		return b.pushToken(ast.Operator(tok), r)

	case ast.OpInfixAssignment, ast.OpInlineBlockDelimiter:
		return b.pushDeclarationWithDefault(tok, r)

	default:
		if tok.Kind == ast.OpInfixOperator && tok.Operator == ident.IdxColon {
			return b.pushDeclarationWithDefault(tok, r)
		}
		return b.pushToken(ast.Operator(tok), r)
	}
}

// InsertOpenToken retrofits an Open token earlier in the stream than
// the index the grouper is currently pushing at, used when a Close
// arrives for a lower-priority boundary than the one on top of the
// stack. Ported from binder.rs insert_open_token / insert_open_scope.
func (b *Binder) InsertOpenToken(index ast.Index, errKind ast.BoundaryError, boundary ast.Boundary, delta ast.Delta, r ast.ByteRange) {
	if boundary.IsBlock() {
		b.insertOpenScope(index, errKind, boundary, delta, r)
		return
	}
	b.a.Insert(index, ast.Expression(ast.Open(errKind, boundary, delta)), r)
}

// insertOpenScope splices a retrofitted block boundary into the block
// table. This covers the common "Close arrived before any matching
// block-boundary Open" case; it does not attempt to keep the binder's
// own live openScopes stack consistent across the splice (a
// deliberately narrowed port of binder.rs's fuller bookkeeping — see
// DESIGN.md), since by the time a retrofit like this fires the
// surrounding scopes have already been popped.
func (b *Binder) insertOpenScope(openIndex ast.Index, errKind ast.BoundaryError, boundary ast.Boundary, delta ast.Delta, r ast.ByteRange) {
	if len(b.openScopes) == 0 {
		panic(fmt.Sprintf("binder: insertOpenScope called with no open scope at index %d", openIndex))
	}
	parent := b.openScopes[len(b.openScopes)-1]
	parentBlock := b.a.Block(parent.block)

	idx := parent.block + 1
	b.a.InsertBlock(idx, ast.AstBlock{
		Parent:     1,
		ScopeStart: parentBlock.ScopeStart,
		ScopeCount: 0,
		Delta:      delta,
		Boundary:   boundary,
	})

	b.openScopes = append(b.openScopes, openScope{
		openIndex:  openIndex,
		block:      idx,
		scopeStart: len(b.scope),
	})

	open := ast.Open(errKind, boundary, delta)
	open.OpenBlock = idx
	b.a.Insert(openIndex, ast.Expression(open), r)
}

func (b *Binder) lastIsDot() bool {
	if len(b.a.Tokens) == 0 {
		return false
	}
	last := b.a.Tokens[len(b.a.Tokens)-1]
	return last.IsOperator && last.Op.Kind == ast.OpInfixOperator && last.Op.Operator == ident.IdxDot
}

// pushFieldReference resolves name to a field: if the preceding token
// is a prefix `:` (a declaration shorthand), the name is declared fresh
// in the innermost scope and marked public; otherwise existing scope is
// searched innermost-first and only falls back to declaring a new local
// field if nothing matches.
func (b *Binder) pushFieldReference(name ident.Index, r ast.ByteRange) ast.Index {
	isDeclaration := b.lastIsPrefixColon()
	field, ok := b.findField(name, isDeclaration)
	if !ok {
		field = b.createField(name, isDeclaration)
	}
	if isDeclaration {
		b.a.Fields[field].IsPublic = true
	}
	return b.pushToken(ast.Expression(ast.FieldReference(field)), r)
}

func (b *Binder) lastIsPrefixColon() bool {
	if len(b.a.Tokens) == 0 {
		return false
	}
	last := b.a.Tokens[len(b.a.Tokens)-1]
	return !last.IsOperator && last.Expr.Kind == ast.ExprPrefixOperator && last.Expr.Operator == ident.IdxColon
}

// pushDeclarationWithDefault handles `name: value` and
// `name ===...===` (and their `---` counterpart): if the token directly
// before the operator is a field reference, that field becomes public,
// since this is the moment the binder learns it was a declaration and
// not a plain read. If that field was actually resolved against an
// enclosing scope (pushFieldReference searches outward before the colon
// is seen), the declaration must not repurpose the parent's field —
// it rewrites the preceding token to a fresh field declared in the
// current scope instead, shadowing the outer one. Ported from
// binder.rs push_declaration_with_default.
func (b *Binder) pushDeclarationWithDefault(tok ast.OperatorToken, r ast.ByteRange) ast.Index {
	if n := len(b.a.Tokens); n > 0 {
		prevIdx := ast.Index(n - 1)
		prev := b.a.Tokens[prevIdx]
		if !prev.IsOperator && prev.Expr.Kind == ast.ExprTerm && prev.Expr.Term.Kind == ast.TermFieldReference {
			field := prev.Expr.Term.Field
			local := false
			for _, f := range b.scope[b.openScope().scopeStart:] {
				if f == field {
					local = true
					break
				}
			}
			if !local {
				name := b.a.Fields[field].Name
				newField := b.createField(name, true)
				prev.Expr.Term.Field = newField
				b.a.Tokens[prevIdx] = prev
			} else {
				b.a.Fields[field].IsPublic = true
			}
		}
	}
	return b.pushToken(ast.Operator(tok), r)
}

func (b *Binder) findField(name ident.Index, isDeclaration bool) (ast.FieldIndex, bool) {
	start := 0
	if isDeclaration {
		start = b.openScope().scopeStart
	}
	for i := len(b.scope) - 1; i >= start; i-- {
		if b.a.Fields[b.scope[i]].Name == name {
			return b.scope[i], true
		}
	}
	return 0, false
}

func (b *Binder) createField(name ident.Index, isPublic bool) ast.FieldIndex {
	idx := b.a.PushField(ast.Field{Name: name, IsPublic: isPublic})
	b.scope = append(b.scope, idx)
	return idx
}

func (b *Binder) pushToken(tok ast.Token, r ast.ByteRange) ast.Index {
	return b.a.Push(tok, r)
}

// Finish closes the root scope once the whole token stream has been
// consumed. Root is never represented by a literal Open/Close pair in
// the token stream (unlike Source, which is), so nothing else ever
// pops it.
func (b *Binder) Finish() {
	b.pushCloseScope(0)
}

// NextIndex is the index the next pushed token would receive; the
// grouper uses this to compute Open/Close deltas before the Close is
// actually pushed.
func (b *Binder) NextIndex() ast.Index { return b.a.NextIndex() }

// Ast returns the Ast under construction.
func (b *Binder) Ast() *ast.Ast { return b.a }
