package sequencer

import (
	"github.com/cwbudde/go-berg/internal/ast"
)

// Sequencer chunks source bytes into runs and reports each run to a
// Sink, maintaining cross-line indent state along the way. Ported from
// berg-parser's Sequencer::parse.
type Sequencer struct {
	sink    Sink
	scanner *Scanner
	a       *ast.Ast

	currentIndent           int
	currentIndentWhitespace ast.WhitespaceIndex
	hasIndentWhitespace     bool
}

func New(a *ast.Ast, sink Sink) *Sequencer {
	return &Sequencer{
		sink:    sink,
		scanner: NewScanner(a.Source),
		a:       a,
	}
}

// Run drives the scanner to completion, invoking Sink callbacks for
// every character run encountered.
func (s *Sequencer) Run() {
	s.sink.OnSourceStart(s.scanner.Index())
	s.lineStart()

	start := s.scanner.Index()
	for {
		ct := s.scanner.Next()
		switch ct {
		case Digit:
			s.integer(start)
		case Letter, Underscore:
			s.identifier(start)
		case OtherOperator:
			s.operator(start, ct)
		case Equal:
			s.equal(start)
		case Dash:
			s.dash(start)
		case ComparisonOperatorStart:
			s.comparisonOperatorStart(start)
		case Separator:
			s.separator(start)
		case Colon:
			s.colon(start)
		case OpenParen:
			s.sink.OnOpenParen(s.scanner.Range(start))
		case CloseParen:
			s.sink.OnCloseParen(s.scanner.Range(start))
		case OpenCurly:
			s.sink.OnOpenCurly(s.scanner.Range(start))
		case CloseCurly:
			s.sink.OnCloseCurly(s.scanner.Range(start))
		case Hash:
			s.comment(start)
		case Newline:
			s.newline(start)
		case LineEnding:
			s.lineEnding(start)
		case Space:
			s.space(start)
		case HorizontalWhitespace:
			s.horizontalWhitespace(start)
		case Unsupported:
			s.unsupported(start)
		case InvalidUtf8:
			s.invalidUtf8(start)
		case Eof:
			s.sink.OnSourceEnd(s.scanner.Index())
			return
		}
		start = s.scanner.Index()
	}
}

func (s *Sequencer) integer(start ast.ByteIndex) {
	s.scanner.NextWhileType(Digit)
	if s.scanner.NextWhile(isIdentifierMiddle) {
		s.sink.OnIdentifierStartsWithNumber(s.scanner.Range(start))
		return
	}
	s.sink.OnInteger(s.scanner.Text(start), s.scanner.Range(start))
}

func (s *Sequencer) identifier(start ast.ByteIndex) {
	s.scanner.NextWhile(isIdentifierMiddle)
	s.sink.OnIdentifier(s.scanner.Text(start), s.scanner.Range(start))
}

// termIsAboutToEnd decides operator fixity: an operator run followed by
// whitespace, a closer, a separator, or a colon-that-isn't-a-prefix
// means the term it's attached to is ending, so the operator cannot be
// infix (ported from sequencer.rs term_is_about_to_end).
func (s *Sequencer) termIsAboutToEnd() bool {
	ct := s.scanner.Peek()
	if ct.isWhitespace() || ct.isClose() || ct.isSeparator() {
		return true
	}
	if ct == Colon && !isAlwaysRightOperand(s.scanner.PeekAt(1)) {
		return true
	}
	return false
}

func (s *Sequencer) operator(start ast.ByteIndex, last CharType) {
	for s.scanner.Peek().isOperator() {
		last = s.scanner.Next()
	}
	if last == Equal {
		text := s.scanner.Text(start)
		s.sink.OnAssignmentOperator(text[:len(text)-1], s.termIsAboutToEnd(), s.scanner.Range(start))
		return
	}
	s.sink.OnOperator(s.scanner.Text(start), s.termIsAboutToEnd(), s.scanner.Range(start))
}

func (s *Sequencer) equal(start ast.ByteIndex) {
	if !s.scanner.Peek().isOperator() {
		s.sink.OnAssignmentOperator(s.scanner.Text(start), s.termIsAboutToEnd(), s.scanner.Range(start))
		return
	}
	if s.scanner.NextIf(Equal) {
		hasThreeEquals := s.scanner.NextWhileType(Equal)
		if !s.scanner.Peek().isOperator() {
			if hasThreeEquals {
				s.sink.OnBlockDelimiter(ast.InlineBlockLevelOne, s.scanner.Range(start))
			} else {
				s.sink.OnOperator(s.scanner.Text(start), s.termIsAboutToEnd(), s.scanner.Range(start))
			}
			return
		}
	}
	s.operator(start, Equal)
}

func (s *Sequencer) dash(start ast.ByteIndex) {
	if s.scanner.NextIf(Dash) && s.scanner.NextWhileType(Dash) && !s.scanner.Peek().isOperator() {
		s.sink.OnBlockDelimiter(ast.InlineBlockLevelTwo, s.scanner.Range(start))
		return
	}
	s.operator(start, Dash)
}

func (s *Sequencer) comparisonOperatorStart(start ast.ByteIndex) {
	if s.scanner.NextWhileType(Equal) {
		if s.scanner.Peek().isOperator() {
			s.operator(start, Equal)
		} else {
			s.sink.OnOperator(s.scanner.Text(start), s.termIsAboutToEnd(), s.scanner.Range(start))
		}
		return
	}
	s.operator(start, ComparisonOperatorStart)
}

func (s *Sequencer) separator(start ast.ByteIndex) {
	s.sink.OnSeparator(s.scanner.Text(start), s.scanner.Range(start))
}

// colon: prefix if followed directly by something that can only ever
// be a right operand, otherwise an infix separator (see sequencer.rs
// colon for the full rationale, including the "a+:b" case handled by
// termIsAboutToEnd on the preceding operator run).
func (s *Sequencer) colon(start ast.ByteIndex) {
	s.sink.OnColon(s.scanner.Range(start), isAlwaysRightOperand(s.scanner.Peek()))
}

func (s *Sequencer) newline(start ast.ByteIndex) {
	s.sink.OnSpace(start)
	s.lineStart()
}

func (s *Sequencer) lineEnding(start ast.ByteIndex) {
	s.storeWhitespace(start)
	s.sink.OnSpace(start)
	s.lineStart()
}

func (s *Sequencer) lineStart() {
	start := s.scanner.Index()
	s.a.Char.LineStarts = append(s.a.Char.LineStarts, start)

	indentWs, hasIndentWs := s.readSpace(start)

	if !s.scanner.Peek().endsLine() {
		indent := int(s.scanner.Index() - start)
		matching := s.matchingIndent(indent, indentWs, hasIndentWs)
		s.sink.OnLineStart(start, indent, matching)
		s.currentIndent = indent
		s.currentIndentWhitespace = indentWs
		s.hasIndentWhitespace = hasIndentWs
	}
}

// matchingIndent returns how many leading bytes of the new indent match
// the previous line's indent exactly, ported from sequencer.rs
// matching_indent. Lines made of pure spaces compare by count; lines
// with tabs or other horizontal whitespace compare byte-for-byte so a
// line indented with a tab never silently matches one indented with
// spaces.
func (s *Sequencer) matchingIndent(indent int, ws ast.WhitespaceIndex, hasWs bool) int {
	switch {
	case !hasWs && !s.hasIndentWhitespace:
		return indent
	case hasWs && s.hasIndentWhitespace:
		a := []byte(s.a.Char.WhitespaceString(ws))
		b := []byte(s.a.Char.WhitespaceString(s.currentIndentWhitespace))
		n := min(len(a), len(b))
		for i := 0; i < n; i++ {
			if a[i] != b[i] {
				return i
			}
		}
		return indent
	case hasWs && !s.hasIndentWhitespace:
		a := []byte(s.a.Char.WhitespaceString(ws))
		n := min(indent, len(a))
		for i := 0; i < n; i++ {
			if a[i] != ' ' {
				return i
			}
		}
		return indent
	default: // !hasWs && s.hasIndentWhitespace
		b := []byte(s.a.Char.WhitespaceString(s.currentIndentWhitespace))
		n := min(indent, len(b))
		for i := 0; i < n; i++ {
			if b[i] != ' ' {
				return i
			}
		}
		return indent
	}
}

// readSpace consumes a run of horizontal whitespace and returns whether
// it contained anything other than plain spaces (which must be stored
// verbatim to support byte-exact indent comparison and reconstruction).
func (s *Sequencer) readSpace(start ast.ByteIndex) (ast.WhitespaceIndex, bool) {
	if !s.scanner.NextWhile(func(c CharType) bool { return c.isHorizontalWhitespace() }) {
		return 0, false
	}
	return s.storeWhitespace(start), true
}

func (s *Sequencer) space(start ast.ByteIndex) {
	s.readSpace(start)
	s.sink.OnSpace(start)
}

func (s *Sequencer) horizontalWhitespace(start ast.ByteIndex) {
	s.scanner.NextWhile(func(c CharType) bool { return c.isHorizontalWhitespace() })
	s.storeWhitespace(start)
	s.sink.OnSpace(start)
}

func (s *Sequencer) comment(start ast.ByteIndex) {
	s.scanner.NextUntil(func(c CharType) bool { return c.endsLine() })
	s.a.Char.AppendComment(s.scanner.Bytes(start), start)
	s.sink.OnComment(start)
}

func (s *Sequencer) unsupported(start ast.ByteIndex) {
	s.scanner.NextWhileType(Unsupported)
	s.sink.OnUnsupportedChars(s.scanner.Text(start), s.scanner.Range(start))
}

func (s *Sequencer) invalidUtf8(start ast.ByteIndex) {
	s.scanner.NextWhileType(InvalidUtf8)
	s.sink.OnInvalidUtf8(s.scanner.Bytes(start), s.scanner.Range(start))
}

func (s *Sequencer) storeWhitespace(start ast.ByteIndex) ast.WhitespaceIndex {
	return s.a.Char.AppendWhitespace(s.scanner.Text(start))
}
