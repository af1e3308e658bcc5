package tokenizer

import (
	"github.com/cwbudde/go-berg/internal/ast"
	"github.com/cwbudde/go-berg/internal/ident"
)

// indentedBlock records one currently-open indented block: the indent
// level that opened it and the boundary kind it was opened with.
type indentedBlock struct {
	indent   int
	boundary ast.Boundary
}

// Tokenizer builds a valid token stream from sequencer runs: it inserts
// APPLY/FOLLOWED_BY/NEWLINE_SEQUENCE where two operators or two terms
// collide, opens and closes compound terms, and opens and closes
// indented blocks. Ported from berg-parser's Tokenizer.
type Tokenizer struct {
	down Downstream
	a    *ast.Ast

	prevWasOperator bool
	ws              whitespace
	indentedBlocks  []indentedBlock
}

func New(down Downstream, a *ast.Ast) *Tokenizer {
	return &Tokenizer{
		down:            down,
		a:               a,
		prevWasOperator: true,
		ws:              whitespace{state: NotInTerm},
		indentedBlocks:  []indentedBlock{{indent: 0, boundary: ast.BoundarySource}},
	}
}

func (t *Tokenizer) inTerm() bool { return t.ws.state == InTerm }

// --- sequencer.Sink implementation ---

func (t *Tokenizer) OnSourceStart(start ast.ByteIndex) {
	t.emitExpressionToken(ast.Open(ast.NoBoundaryError, ast.BoundarySource, 0), ast.ByteRange{Start: start, End: start})
}

func (t *Tokenizer) OnSourceEnd(end ast.ByteIndex) {
	t.closeTerm(end)
	t.emitOperatorToken(ast.Close(ast.NoBoundaryError, 0, ast.BoundarySource), ast.ByteRange{Start: end, End: end})
	t.down.OnSourceEnd()
}

func (t *Tokenizer) OnInteger(text string, r ast.ByteRange) {
	lit := t.a.Literals.Push(text)
	t.onExpressionTokenRange(ast.IntegerLiteral(lit), r)
}

func (t *Tokenizer) OnIdentifier(text string, r ast.ByteRange) {
	id := t.a.Identifiers.Intern(text)
	t.onExpressionTokenRange(ast.RawIdentifierTok(id), r)
}

func (t *Tokenizer) OnOperator(text string, termAboutToEnd bool, r ast.ByteRange) {
	id := t.a.Identifiers.Intern(text)
	switch t.operatorFixity(termAboutToEnd) {
	case ast.FixityPostfix:
		t.onOperatorTokenRange(ast.PostfixOperator(id), r)
	case ast.FixityPrefix:
		t.onExpressionTokenRange(ast.PrefixOperator(id), r)
	default:
		t.onOperatorTokenRange(ast.InfixOperator(id), r)
	}
}

func (t *Tokenizer) OnAssignmentOperator(text string, termAboutToEnd bool, r ast.ByteRange) {
	if t.operatorFixity(termAboutToEnd) == ast.FixityInfix {
		id := t.a.Identifiers.Intern(text)
		t.onOperatorTokenRange(ast.InfixAssignment(id), r)
		return
	}
	t.OnOperator(text, termAboutToEnd, r)
}

func (t *Tokenizer) operatorFixity(termAboutToEnd bool) ast.Fixity {
	switch {
	case t.inTerm() && termAboutToEnd:
		return ast.FixityPostfix
	case !t.inTerm() && !termAboutToEnd:
		return ast.FixityPrefix
	default:
		return ast.FixityInfix
	}
}

func (t *Tokenizer) OnBlockDelimiter(level ast.InlineBlockLevel, r ast.ByteRange) {
	t.onSeparatorToken(ast.InlineBlockDelimiter(level, int(r.Len())), r)
}

func (t *Tokenizer) OnSeparator(text string, r ast.ByteRange) {
	id := t.a.Identifiers.Intern(text)
	t.onSeparatorToken(ast.InfixOperator(id), r)
}

func (t *Tokenizer) OnColon(r ast.ByteRange, alwaysRightOperand bool) {
	colon := t.a.Identifiers.Intern(ident.COLON)
	if (!t.inTerm() || t.prevWasOperator) && alwaysRightOperand {
		t.onExpressionTokenRange(ast.PrefixOperator(colon), r)
	} else {
		t.onSeparatorToken(ast.InfixOperator(colon), r)
	}
}

func (t *Tokenizer) OnOpenParen(r ast.ByteRange)  { t.onOpen(ast.BoundaryParentheses, r) }
func (t *Tokenizer) OnCloseParen(r ast.ByteRange)  { t.onClose(ast.BoundaryParentheses, r) }
func (t *Tokenizer) OnOpenCurly(r ast.ByteRange)   { t.onOpen(ast.BoundaryCurlyBraces, r) }
func (t *Tokenizer) OnCloseCurly(r ast.ByteRange)  { t.onClose(ast.BoundaryCurlyBraces, r) }

func (t *Tokenizer) onOpen(boundary ast.Boundary, r ast.ByteRange) {
	// f(x) is f APPLY (x): an open paren directly glued to a term means
	// application, distinguishing it from f (x) (one tuple argument).
	if !t.prevWasOperator && t.inTerm() && boundary == ast.BoundaryParentheses {
		apply := t.a.Identifiers.Intern(ident.APPLY)
		t.emitOperatorToken(ast.InfixOperator(apply), ast.ByteRange{Start: r.Start, End: r.Start})
	}
	t.onExpressionTokenRange(ast.Open(ast.NoBoundaryError, boundary, 0), r)
	t.ws = whitespace{state: NotInTerm}
}

func (t *Tokenizer) onClose(boundary ast.Boundary, r ast.ByteRange) {
	t.onOperatorTokenRange(ast.Close(ast.NoBoundaryError, 0, boundary), r)
	t.ws = whitespace{state: InTerm}
}

func (t *Tokenizer) OnSpace(start ast.ByteIndex) { t.closeTerm(start) }
func (t *Tokenizer) OnComment(start ast.ByteIndex) { t.closeTerm(start) }

// OnLineStart closes any indented blocks whose indent now exceeds the
// new line's, flags indent mismatches, and records whether the next
// expression token should open a new indented block.
func (t *Tokenizer) OnLineStart(start ast.ByteIndex, indent int, matchingIndent int) {
	top := t.indentedBlocks[len(t.indentedBlocks)-1]
	for indent < top.indent {
		t.emitOperatorToken(ast.CloseBlock(ast.NoBoundaryError, 0, top.boundary), ast.ByteRange{Start: start, End: start})
		t.indentedBlocks = t.indentedBlocks[:len(t.indentedBlocks)-1]
		top = t.indentedBlocks[len(t.indentedBlocks)-1]
	}
	if matchingIndent < top.indent {
		level := 0
		for i, b := range t.indentedBlocks {
			if matchingIndent < b.indent {
				level = i
				break
			}
		}
		t.down.OnIndentMismatch(level)
	}
	if indent == top.indent {
		t.ws = whitespace{state: NextLine}
	} else {
		t.ws = whitespace{state: IndentedLine, indent: indent}
	}
}

func (t *Tokenizer) OnUnsupportedChars(text string, r ast.ByteRange) {
	lit := t.a.Literals.Push(text)
	t.onExpressionTokenRange(ast.ErrorTerm(ast.UnsupportedCharacters, lit), r)
}

func (t *Tokenizer) OnInvalidUtf8(raw []byte, r ast.ByteRange) {
	idx := t.a.Raw.Push(raw)
	t.onExpressionTokenRange(ast.RawErrorTerm(ast.InvalidUtf8, idx), r)
}

func (t *Tokenizer) OnIdentifierStartsWithNumber(r ast.ByteRange) {
	lit := t.a.Literals.Push("")
	t.onExpressionTokenRange(ast.ErrorTerm(ast.IdentifierStartsWithNumber, lit), r)
}

// --- internal plumbing, ported from tokenizer.rs on_expression_token / on_operator_token ---

func (t *Tokenizer) onExpressionTokenRange(tok ast.ExpressionToken, r ast.ByteRange) {
	prevWasOperator := t.prevWasOperator
	if !t.prevWasOperator {
		var op string
		switch t.ws.state {
		case NextLine:
			op = ident.NEWLINE_SEQUENCE
		default:
			op = ident.FOLLOWED_BY
		}
		id := t.a.Identifiers.Intern(op)
		t.emitOperatorToken(ast.InfixOperator(id), ast.ByteRange{Start: r.Start, End: r.Start})
	}

	if t.ws.state == IndentedLine {
		boundary := ast.BoundaryIndentedBlock
		if prevWasOperator {
			boundary = ast.BoundaryIndentedExpression
		}
		t.emitExpressionToken(ast.Open(ast.NoBoundaryError, boundary, 0), ast.ByteRange{Start: r.Start, End: r.Start})
		t.indentedBlocks = append(t.indentedBlocks, indentedBlock{indent: t.ws.indent, boundary: boundary})
	}

	t.openTerm(r.Start)
	t.emitExpressionToken(tok, r)
}

func (t *Tokenizer) onSeparatorToken(tok ast.OperatorToken, r ast.ByteRange) {
	t.closeTerm(r.Start)
	t.onOperatorTokenRange(tok, r)
}

func (t *Tokenizer) onOperatorTokenRange(tok ast.OperatorToken, r ast.ByteRange) {
	t.emitOperatorToken(tok, r)
}

func (t *Tokenizer) openTerm(index ast.ByteIndex) {
	if !t.inTerm() {
		t.emitExpressionToken(ast.Open(ast.NoBoundaryError, ast.BoundaryCompoundTerm, 0), ast.ByteRange{Start: index, End: index})
		t.ws = whitespace{state: InTerm}
	}
}

func (t *Tokenizer) closeTerm(index ast.ByteIndex) {
	if t.inTerm() {
		t.ws = whitespace{state: NotInTerm}
		t.emitOperatorToken(ast.Close(ast.NoBoundaryError, 0, ast.BoundaryCompoundTerm), ast.ByteRange{Start: index, End: index})
	}
}

func (t *Tokenizer) emitExpressionToken(tok ast.ExpressionToken, r ast.ByteRange) {
	t.down.OnExpressionToken(tok, r)
	t.prevWasOperator = tok.HasRightOperand()
}

func (t *Tokenizer) emitOperatorToken(tok ast.OperatorToken, r ast.ByteRange) {
	if t.prevWasOperator {
		t.down.OnExpressionToken(ast.MissingExpression, ast.ByteRange{Start: r.Start, End: r.Start})
		t.prevWasOperator = false
	}
	t.down.OnOperatorToken(tok, r)
	t.prevWasOperator = tok.HasRightOperand()
}
