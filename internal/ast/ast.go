package ast

import (
	"fmt"

	"github.com/cwbudde/go-berg/internal/ident"
)

// Ast is the single growing data structure a source owns (spec.md
// §2's "[AST]" box): the token buffer and its parallel byte ranges,
// the block table, the field table, the identifier/literal/raw
// interners, and character data. It has interior append-only mutation
// during parsing; once handed to the evaluator it is read-only.
type Ast struct {
	Source     []byte
	SourceName string

	Tokens      []Token
	TokenRanges []ByteRange

	Blocks []AstBlock
	Fields []Field

	Identifiers *ident.Interner
	Literals    ident.LiteralPool
	Raw         ident.RawPool

	Char CharData
}

// NewAst creates an empty Ast for the given source bytes and name,
// with the identifier interner pre-populated per ident.NewSourceInterner.
func NewAst(name string, source []byte) *Ast {
	return &Ast{
		Source:      source,
		SourceName:  name,
		Identifiers: ident.NewSourceInterner(),
	}
}

// NextIndex returns the Index a freshly-pushed token would receive.
func (a *Ast) NextIndex() Index { return Index(len(a.Tokens)) }

// LastIndex returns the Index of the most recently pushed token. It is
// an error to call this on an empty Ast.
func (a *Ast) LastIndex() Index { return Index(len(a.Tokens) - 1) }

// Push appends a token in source order. Panics if range.Start is
// before the end of the previous token's range, mirroring the
// teacher's binder assertion that tokens arrive in non-decreasing byte
// order (catches sequencer/tokenizer bugs immediately rather than
// producing a corrupt buffer).
func (a *Ast) Push(tok Token, r ByteRange) Index {
	if len(a.TokenRanges) > 0 {
		last := a.TokenRanges[len(a.TokenRanges)-1]
		if r.Start < last.End {
			panic(fmt.Sprintf("ast: token pushed out of order: last ended at %d, new token starts at %d", last.End, r.Start))
		}
	}
	idx := a.NextIndex()
	a.Tokens = append(a.Tokens, tok)
	a.TokenRanges = append(a.TokenRanges, r)
	return idx
}

// Insert splices a token in at idx, shifting everything after it. Used
// only by the binder when retrofitting a block-boundary Open token
// that the grouper placed logically before tokens already pushed (see
// Binder.insertOpenScope in internal/binder) — deltas stored in other
// tokens referring to indices at or after idx must be fixed up by the
// caller, since Ast itself has no notion of which Close/CloseBlock
// tokens need adjusting.
func (a *Ast) Insert(idx Index, tok Token, r ByteRange) {
	a.Tokens = append(a.Tokens, Token{})
	copy(a.Tokens[idx+1:], a.Tokens[idx:])
	a.Tokens[idx] = tok

	a.TokenRanges = append(a.TokenRanges, ByteRange{})
	copy(a.TokenRanges[idx+1:], a.TokenRanges[idx:])
	a.TokenRanges[idx] = r
}

// Token/Range accessors.
func (a *Ast) Token(i Index) Token          { return a.Tokens[i] }
func (a *Ast) Range(i Index) ByteRange      { return a.TokenRanges[i] }
func (a *Ast) Bytes(r ByteRange) []byte     { return a.Source[r.Start:r.End] }
func (a *Ast) TokenText(i Index) string     { return string(a.Bytes(a.TokenRanges[i])) }

// ExpressionToken returns the token at i as an ExpressionToken. Panics
// if the token there is actually an OperatorToken; callers should only
// use this where fixity rules guarantee an expression token.
func (a *Ast) ExpressionToken(i Index) ExpressionToken {
	t := a.Tokens[i]
	if t.IsOperator {
		panic(fmt.Sprintf("ast: token %d is an operator token, not an expression token", i))
	}
	return t.Expr
}

func (a *Ast) OperatorToken(i Index) OperatorToken {
	t := a.Tokens[i]
	if !t.IsOperator {
		panic(fmt.Sprintf("ast: token %d is an expression token, not an operator token", i))
	}
	return t.Op
}

// Block/Field accessors.
func (a *Ast) Block(i BlockIndex) AstBlock    { return a.Blocks[i] }
func (a *Ast) Field(i FieldIndex) Field       { return a.Fields[i] }
func (a *Ast) NextBlockIndex() BlockIndex     { return BlockIndex(len(a.Blocks)) }
func (a *Ast) NextFieldIndex() FieldIndex     { return FieldIndex(len(a.Fields)) }

func (a *Ast) PushBlock(b AstBlock) BlockIndex {
	idx := a.NextBlockIndex()
	a.Blocks = append(a.Blocks, b)
	return idx
}

func (a *Ast) PushField(f Field) FieldIndex {
	idx := a.NextFieldIndex()
	a.Fields = append(a.Fields, f)
	return idx
}

// InsertBlock splices a new AstBlock in at idx (used when the binder
// retrofits a scope for a boundary the grouper already opened inline —
// see Binder.insertOpenScope), shifting every later block's Parent
// delta and every CloseBlock token's BlockIndex so they keep pointing
// at the same logical block.
func (a *Ast) InsertBlock(idx BlockIndex, b AstBlock) {
	a.Blocks = append(a.Blocks, AstBlock{})
	copy(a.Blocks[idx+1:], a.Blocks[idx:])
	a.Blocks[idx] = b

	for i := int(idx) + 1; i < len(a.Blocks); i++ {
		// Only a parent that stayed before idx is one slot further away.
		if i-1-int(a.Blocks[i].Parent) < int(idx) {
			a.Blocks[i].Parent++
		}
	}
	for i, tok := range a.Tokens {
		if tok.IsOperator {
			if tok.Op.Kind == OpCloseBlock && tok.Op.CloseBlock >= idx {
				a.Tokens[i].Op.CloseBlock++
			}
			continue
		}
		if tok.Expr.Kind == ExprOpen && tok.Expr.OpenBoundary.IsBlock() && tok.Expr.OpenBlock >= idx {
			a.Tokens[i].Expr.OpenBlock++
		}
	}
}

// FieldName resolves a field to its source-text name.
func (a *Ast) FieldName(f FieldIndex) string {
	return a.Identifiers.String(a.Fields[f].Name)
}

// IdentifierName interns-reverses an ident.Index.
func (a *Ast) IdentifierName(id ident.Index) string {
	return a.Identifiers.String(id)
}
