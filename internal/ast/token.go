package ast

import "github.com/cwbudde/go-berg/internal/ident"

// Fixity classifies a token by how it consumes operands, per spec.md §3.2.
type Fixity int

const (
	FixityTerm Fixity = iota
	FixityPrefix
	FixityInfix
	FixityPostfix
	FixityOpen
	FixityClose
)

// BoundaryError marks a boundary whose Open/Close pair did not balance
// cleanly; recorded rather than treated as fatal, per spec.md §4.3.
type BoundaryError int

const (
	NoBoundaryError BoundaryError = iota
	OpenWithoutClose
	CloseWithoutOpen
)

// ErrorTermKind is the reason a Term token is a syntax-error placeholder.
type ErrorTermKind int

const (
	IdentifierStartsWithNumber ErrorTermKind = iota
	UnsupportedCharacters
)

// RawErrorTermKind covers syntax errors that could not be interpreted
// as valid UTF-8 text at all.
type RawErrorTermKind int

const (
	InvalidUtf8 RawErrorTermKind = iota
)

// InlineBlockLevel distinguishes "===...=" (level 1) delimiters from
// "---...-" (level 2) ones, per spec.md §4.1.
type InlineBlockLevel int

const (
	InlineBlockLevelOne InlineBlockLevel = 1
	InlineBlockLevelTwo InlineBlockLevel = 2
)

// TermToken is an ExpressionToken's Term payload (spec.md §3.2).
type TermToken struct {
	Kind           TermKind
	Literal        ident.LiteralIndex // IntegerLiteral
	RawLiteral     ident.RawIndex     // RawErrorTerm
	Identifier     ident.Index        // RawIdentifier
	Field          FieldIndex         // FieldReference
	ErrorKind      ErrorTermKind      // ErrorTerm
	RawErrorKind   RawErrorTermKind   // RawErrorTerm
}

type TermKind int

const (
	TermIntegerLiteral TermKind = iota
	TermFieldReference
	TermRawIdentifier
	TermErrorTerm
	TermRawErrorTerm
	TermMissingExpression
)

// ExpressionToken is a token that can start an expression (has no left
// operand): Term, PrefixOperator, or Open.
type ExpressionToken struct {
	Kind     ExprKind
	Term     TermToken
	Operator ident.Index // PrefixOperator
	// Open fields:
	OpenError    BoundaryError
	OpenBoundary Boundary
	OpenDelta    Delta      // distance to matching Close
	OpenBlock    BlockIndex // set only when OpenBoundary.IsBlock(): the block this Open introduces
}

type ExprKind int

const (
	ExprTerm ExprKind = iota
	ExprPrefixOperator
	ExprOpen
)

func (t ExpressionToken) HasRightOperand() bool {
	switch t.Kind {
	case ExprTerm:
		return false
	case ExprPrefixOperator, ExprOpen:
		return true
	}
	return false
}

func (t ExpressionToken) Fixity() Fixity {
	switch t.Kind {
	case ExprTerm:
		return FixityTerm
	case ExprPrefixOperator:
		return FixityPrefix
	case ExprOpen:
		return FixityOpen
	}
	return FixityTerm
}

// OperatorToken is a token that consumes a left operand: InfixOperator,
// InfixAssignment, InlineBlockDelimiter, PostfixOperator, Close, or
// CloseBlock.
type OperatorToken struct {
	Kind     OpKind
	Operator ident.Index // InfixOperator / InfixAssignment / PostfixOperator

	BlockLevel  InlineBlockLevel // InlineBlockDelimiter
	RepeatCount int              // InlineBlockDelimiter: number of '=' or '-' characters

	CloseDelta    Delta // Close: distance back to matching Open
	CloseBoundary Boundary
	CloseError    BoundaryError // Close/CloseBlock: set when the boundary didn't balance cleanly
	CloseBlock    BlockIndex    // CloseBlock: which block this closes
}

type OpKind int

const (
	OpInfixOperator OpKind = iota
	OpInfixAssignment
	OpInlineBlockDelimiter
	OpPostfixOperator
	OpClose
	OpCloseBlock
)

func (t OperatorToken) HasRightOperand() bool {
	switch t.Kind {
	case OpInfixOperator, OpInfixAssignment, OpInlineBlockDelimiter:
		return true
	default:
		return false
	}
}

func (t OperatorToken) Fixity() Fixity {
	switch t.Kind {
	case OpInfixOperator, OpInfixAssignment, OpInlineBlockDelimiter:
		return FixityInfix
	case OpPostfixOperator:
		return FixityPostfix
	case OpClose, OpCloseBlock:
		return FixityClose
	}
	return FixityInfix
}

// Token is the two-level tagged variant described in spec.md §3.2.
type Token struct {
	IsOperator bool
	Expr       ExpressionToken
	Op         OperatorToken
}

func Expression(t ExpressionToken) Token { return Token{IsOperator: false, Expr: t} }
func Operator(t OperatorToken) Token     { return Token{IsOperator: true, Op: t} }

func (t Token) HasRightOperand() bool {
	if t.IsOperator {
		return t.Op.HasRightOperand()
	}
	return t.Expr.HasRightOperand()
}

// HasLeftOperand reports whether this token, when used as an
// expression root, consumes a left operand node (infix/postfix/close).
func (t Token) HasLeftOperand() bool {
	if !t.IsOperator {
		return false
	}
	switch t.Op.Fixity() {
	case FixityInfix, FixityPostfix, FixityClose:
		return true
	}
	return false
}

func (t Token) Fixity() Fixity {
	if t.IsOperator {
		return t.Op.Fixity()
	}
	return t.Expr.Fixity()
}

// Constructors mirroring the Rust enum variants by name, for readable
// call sites in the sequencer/tokenizer/grouper/binder.

func IntegerLiteral(lit ident.LiteralIndex) ExpressionToken {
	return ExpressionToken{Kind: ExprTerm, Term: TermToken{Kind: TermIntegerLiteral, Literal: lit}}
}

func FieldReference(f FieldIndex) ExpressionToken {
	return ExpressionToken{Kind: ExprTerm, Term: TermToken{Kind: TermFieldReference, Field: f}}
}

func RawIdentifierTok(id ident.Index) ExpressionToken {
	return ExpressionToken{Kind: ExprTerm, Term: TermToken{Kind: TermRawIdentifier, Identifier: id}}
}

func ErrorTerm(kind ErrorTermKind, lit ident.LiteralIndex) ExpressionToken {
	return ExpressionToken{Kind: ExprTerm, Term: TermToken{Kind: TermErrorTerm, ErrorKind: kind, Literal: lit}}
}

func RawErrorTerm(kind RawErrorTermKind, raw ident.RawIndex) ExpressionToken {
	return ExpressionToken{Kind: ExprTerm, Term: TermToken{Kind: TermRawErrorTerm, RawErrorKind: kind, RawLiteral: raw}}
}

var MissingExpression = ExpressionToken{Kind: ExprTerm, Term: TermToken{Kind: TermMissingExpression}}

func PrefixOperator(id ident.Index) ExpressionToken {
	return ExpressionToken{Kind: ExprPrefixOperator, Operator: id}
}

func Open(err BoundaryError, boundary Boundary, delta Delta) ExpressionToken {
	return ExpressionToken{Kind: ExprOpen, OpenError: err, OpenBoundary: boundary, OpenDelta: delta}
}

func InfixOperator(id ident.Index) OperatorToken {
	return OperatorToken{Kind: OpInfixOperator, Operator: id}
}

func InfixAssignment(id ident.Index) OperatorToken {
	return OperatorToken{Kind: OpInfixAssignment, Operator: id}
}

func InlineBlockDelimiter(level InlineBlockLevel, repeat int) OperatorToken {
	return OperatorToken{Kind: OpInlineBlockDelimiter, BlockLevel: level, RepeatCount: repeat}
}

func PostfixOperator(id ident.Index) OperatorToken {
	return OperatorToken{Kind: OpPostfixOperator, Operator: id}
}

func Close(err BoundaryError, delta Delta, boundary Boundary) OperatorToken {
	return OperatorToken{Kind: OpClose, CloseDelta: delta, CloseBoundary: boundary, CloseError: err}
}

func CloseBlock(err BoundaryError, block BlockIndex, boundary Boundary) OperatorToken {
	return OperatorToken{Kind: OpCloseBlock, CloseBlock: block, CloseBoundary: boundary, CloseError: err}
}
