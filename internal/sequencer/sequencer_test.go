package sequencer

import (
	"testing"

	"github.com/cwbudde/go-berg/internal/ast"
)

// recordingSink captures every callback as a short opcode string, so
// tests can assert on the run's shape without building a mock for
// each of Sink's nineteen methods individually.
type recordingSink struct {
	events []string
}

func (s *recordingSink) record(kind, text string) { s.events = append(s.events, kind+":"+text) }

func (s *recordingSink) OnSourceStart(ast.ByteIndex)             { s.record("start", "") }
func (s *recordingSink) OnSourceEnd(ast.ByteIndex)               { s.record("end", "") }
func (s *recordingSink) OnInteger(text string, _ ast.ByteRange)  { s.record("int", text) }
func (s *recordingSink) OnIdentifier(text string, _ ast.ByteRange) {
	s.record("ident", text)
}
func (s *recordingSink) OnOperator(text string, _ bool, _ ast.ByteRange) {
	s.record("op", text)
}
func (s *recordingSink) OnAssignmentOperator(text string, _ bool, _ ast.ByteRange) {
	s.record("assign", text)
}
func (s *recordingSink) OnBlockDelimiter(level InlineBlockLevel, _ ast.ByteRange) {
	s.record("blockdelim", "")
	_ = level
}
func (s *recordingSink) OnSeparator(text string, _ ast.ByteRange) { s.record("sep", text) }
func (s *recordingSink) OnColon(_ ast.ByteRange, alwaysRight bool) {
	if alwaysRight {
		s.record("colon", "right")
	} else {
		s.record("colon", "infix")
	}
}
func (s *recordingSink) OnOpenParen(ast.ByteRange)  { s.record("(", "") }
func (s *recordingSink) OnCloseParen(ast.ByteRange) { s.record(")", "") }
func (s *recordingSink) OnOpenCurly(ast.ByteRange)  { s.record("{", "") }
func (s *recordingSink) OnCloseCurly(ast.ByteRange) { s.record("}", "") }
func (s *recordingSink) OnSpace(ast.ByteIndex)      { s.record("space", "") }
func (s *recordingSink) OnComment(ast.ByteIndex)    { s.record("comment", "") }
func (s *recordingSink) OnLineStart(_ ast.ByteIndex, indent, matching int) {
	s.record("line", "")
	_ = indent
	_ = matching
}
func (s *recordingSink) OnUnsupportedChars(text string, _ ast.ByteRange) {
	s.record("unsupported", text)
}
func (s *recordingSink) OnInvalidUtf8(_ []byte, _ ast.ByteRange) { s.record("badutf8", "") }
func (s *recordingSink) OnIdentifierStartsWithNumber(ast.ByteRange) {
	s.record("identstartsnum", "")
}

func run(source string) *recordingSink {
	a := ast.NewAst("<test>", []byte(source))
	sink := &recordingSink{}
	New(a, sink).Run()
	return sink
}

func TestSequencerSimpleArithmetic(t *testing.T) {
	sink := run("1 + 2")
	want := []string{
		"start:", "line:",
		"int:1", "space:", "op:+", "space:", "int:2",
		"end:",
	}
	assertEvents(t, sink.events, want)
}

func TestSequencerIdentifier(t *testing.T) {
	sink := run("foo")
	want := []string{"start:", "line:", "ident:foo", "end:"}
	assertEvents(t, sink.events, want)
}

func TestSequencerIdentifierStartsWithNumber(t *testing.T) {
	sink := run("1foo")
	want := []string{"start:", "line:", "identstartsnum:", "end:"}
	assertEvents(t, sink.events, want)
}

func TestSequencerParensAndCurlies(t *testing.T) {
	sink := run("({})")
	want := []string{"start:", "line:", "(:", "{:", "}:", "):", "end:"}
	assertEvents(t, sink.events, want)
}

func TestSequencerColon(t *testing.T) {
	sink := run("x:1")
	want := []string{"start:", "line:", "ident:x", "colon:right", "int:1", "end:"}
	assertEvents(t, sink.events, want)
}

func TestSequencerAssignmentOperator(t *testing.T) {
	sink := run("x += 1")
	want := []string{
		"start:", "line:",
		"ident:x", "space:", "assign:+", "space:", "int:1",
		"end:",
	}
	assertEvents(t, sink.events, want)
}

func TestSequencerComment(t *testing.T) {
	sink := run("1 # a comment")
	want := []string{"start:", "line:", "int:1", "space:", "comment:", "end:"}
	assertEvents(t, sink.events, want)
}

func assertEvents(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("events[%d] = %q, want %q (full: got=%v want=%v)", i, got[i], want[i], got, want)
		}
	}
}
