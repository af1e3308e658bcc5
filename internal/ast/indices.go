// Package ast holds the per-source data model described in spec.md §3:
// a dense token buffer with parallel byte ranges, a block table, a
// field table, and the string interners, navigated by index delta
// rather than by pointer.
package ast

import "github.com/cwbudde/go-berg/internal/ident"

// Index identifies a token in the buffer. It is dense: tokens are
// appended in source order and never removed (only inserted, by the
// binder, when a block boundary needs retrofitting — see Ast.Insert).
type Index int

// Delta is a signed distance between two Indexes, used so that Open/Close
// pairs and block parent links never need a second, wide pointer type.
type Delta int

// BlockIndex identifies an AstBlock in the block table.
type BlockIndex int

// BlockDelta is a signed distance between two BlockIndexes.
type BlockDelta int

// FieldIndex identifies a Field (a declared name) in the field table.
type FieldIndex int

// FieldDelta is a signed distance between two FieldIndexes.
type FieldDelta int

// ByteIndex is an offset into the source buffer.
type ByteIndex int

// ByteRange is a half-open [Start, End) span of source bytes.
type ByteRange struct {
	Start, End ByteIndex
}

func (r ByteRange) Len() int { return int(r.End - r.Start) }

// Field is a named storage slot declared within a block. IsPublic
// mirrors spec.md's Glossary entry: it is flipped on the moment the
// binder sees the name as the left side of a ':' declaration, which
// also happens to be the only way a name becomes externally readable
// through ObjectFieldReference.
type Field struct {
	Name     ident.Index
	IsPublic bool
}

// Boundary tags a paired open/close region. Order here doubles as the
// priority table spec.md §4.3 describes (low→high): a lower-priority
// boundary is the one a stray Close should NOT pop when a
// higher-priority Close arrives unmatched.
type Boundary int

const (
	BoundaryPrecedenceGroup Boundary = iota
	BoundaryCompoundTerm
	BoundaryParentheses
	BoundaryAutoBlock
	BoundaryCurlyBraces
	BoundaryIndentedExpression
	BoundaryIndentedBlock
	BoundarySource
	BoundaryRoot
)

// IsBlock reports whether a boundary of this kind introduces a new
// lexical scope (and therefore an AstBlock record) as opposed to being
// purely a grouping/precedence device.
func (b Boundary) IsBlock() bool {
	switch b {
	case BoundaryCurlyBraces, BoundaryAutoBlock, BoundaryIndentedBlock,
		BoundaryIndentedExpression, BoundarySource, BoundaryRoot:
		return true
	default:
		return false
	}
}

// IsRequired reports whether this boundary must appear in the token
// tree because it reflects real user syntax or opens a scope, as
// opposed to a precedence/grouping device the grouper may elide.
func (b Boundary) IsRequired() bool {
	switch b {
	case BoundaryPrecedenceGroup, BoundaryCompoundTerm:
		return false
	default:
		return true
	}
}

// IsClosedAutomatically reports whether the grouper (or, for indented
// boundaries, the tokenizer) closes this boundary on its own rather
// than waiting for an explicit close token from the source.
func (b Boundary) IsClosedAutomatically() bool {
	switch b {
	case BoundaryPrecedenceGroup, BoundaryCompoundTerm, BoundaryAutoBlock,
		BoundaryIndentedExpression, BoundaryIndentedBlock:
		return true
	default:
		return false
	}
}

func (b Boundary) String() string {
	switch b {
	case BoundaryPrecedenceGroup:
		return "precedence-group"
	case BoundaryCompoundTerm:
		return "compound-term"
	case BoundaryParentheses:
		return "parentheses"
	case BoundaryAutoBlock:
		return "auto-block"
	case BoundaryCurlyBraces:
		return "curly-braces"
	case BoundaryIndentedExpression:
		return "indented-expression"
	case BoundaryIndentedBlock:
		return "indented-block"
	case BoundarySource:
		return "source"
	case BoundaryRoot:
		return "root"
	default:
		return "boundary?"
	}
}

// AstBlock is the lexical record for a block boundary, discovered at
// parse time. Parent is a Delta back into the block table (pointer-free,
// per spec.md §3.1), not an absolute index, so that inserting a block
// earlier in the table never invalidates later blocks' parent links —
// Ast.InsertBlock re-walks and bumps deltas explicitly when this happens.
type AstBlock struct {
	Parent     BlockDelta
	ScopeStart FieldIndex
	ScopeCount FieldDelta
	Delta      Delta // distance from this block's Open token to its Close
	Boundary   Boundary
}
