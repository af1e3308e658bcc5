package sequencer

import (
	"unicode/utf8"

	"github.com/cwbudde/go-berg/internal/ast"
)

// Scanner walks a source buffer one rune at a time, classifying each
// rune into a CharType as it goes. It is the Go equivalent of
// berg-parser's Scanner collaborator, adapted to decode UTF-8 directly
// with the standard library instead of a hand-rolled byte reader (the
// teacher's own internal/lexer does the same: decode with
// utf8.DecodeRuneInString and track a byte offset).
type Scanner struct {
	source []byte
	index  ast.ByteIndex
}

func NewScanner(source []byte) *Scanner {
	return &Scanner{source: source}
}

func (s *Scanner) Index() ast.ByteIndex { return s.index }
func (s *Scanner) AtEnd() bool          { return int(s.index) >= len(s.source) }

// decodeAt returns the CharType and byte width of the rune starting at
// byte offset i, or (Eof, 0) past the end of the buffer.
func (s *Scanner) decodeAt(i ast.ByteIndex) (CharType, int) {
	if int(i) >= len(s.source) {
		return Eof, 0
	}
	r, w := utf8.DecodeRune(s.source[i:])
	if r == utf8.RuneError && w <= 1 {
		return InvalidUtf8, 1
	}
	return classify(r), w
}

// Next consumes and returns the CharType of the next rune.
func (s *Scanner) Next() CharType {
	ct, w := s.decodeAt(s.index)
	s.index += ast.ByteIndex(w)
	return ct
}

// Peek returns the CharType of the next rune without consuming it.
func (s *Scanner) Peek() CharType {
	ct, _ := s.decodeAt(s.index)
	return ct
}

// PeekAt looks ahead n runes without consuming any.
func (s *Scanner) PeekAt(n int) CharType {
	i := s.index
	var ct CharType
	for k := 0; k <= n; k++ {
		var w int
		ct, w = s.decodeAt(i)
		if ct == Eof {
			return Eof
		}
		i += ast.ByteIndex(w)
	}
	return ct
}

// NextIf consumes the next rune and returns true only if its type is ct.
func (s *Scanner) NextIf(ct CharType) bool {
	if s.Peek() != ct {
		return false
	}
	s.Next()
	return true
}

// NextWhile consumes runes while match(peek) is true, returning whether
// it consumed at least one.
func (s *Scanner) NextWhile(match func(CharType) bool) bool {
	consumed := false
	for match(s.Peek()) {
		s.Next()
		consumed = true
	}
	return consumed
}

// NextWhileType is NextWhile specialized to a single CharType.
func (s *Scanner) NextWhileType(ct CharType) bool {
	return s.NextWhile(func(c CharType) bool { return c == ct })
}

// NextUntil consumes runes until match(peek) is true (or EOF).
func (s *Scanner) NextUntil(match func(CharType) bool) {
	for !match(s.Peek()) && s.Peek() != Eof {
		s.Next()
	}
}

func (s *Scanner) Range(start ast.ByteIndex) ast.ByteRange {
	return ast.ByteRange{Start: start, End: s.index}
}

func (s *Scanner) Text(start ast.ByteIndex) string {
	return string(s.source[start:s.index])
}

func (s *Scanner) Bytes(start ast.ByteIndex) []byte {
	return s.source[start:s.index]
}
