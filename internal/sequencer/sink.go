package sequencer

import "github.com/cwbudde/go-berg/internal/ast"

// InlineBlockLevel distinguishes the two inline block delimiters Berg
// recognizes at the sequencing stage: `===` (one) and `---` (two),
// mirroring ast.InlineBlockLevel but kept here to avoid sequencer
// depending on tokenizer's boundary vocabulary.
type InlineBlockLevel = ast.InlineBlockLevel

// Sink receives classified character runs from Sequencer.Run. Defining
// the interface at the point of use — rather than sequencer importing
// tokenizer directly — keeps the sequencer ignorant of how runs become
// tokens; internal/tokenizer.Tokenizer is the only implementation, but
// nothing here requires that.
type Sink interface {
	OnSourceStart(start ast.ByteIndex)
	OnSourceEnd(end ast.ByteIndex)

	OnInteger(text string, r ast.ByteRange)
	OnIdentifier(text string, r ast.ByteRange)
	OnOperator(text string, termAboutToEnd bool, r ast.ByteRange)
	OnAssignmentOperator(text string, termAboutToEnd bool, r ast.ByteRange)
	OnBlockDelimiter(level InlineBlockLevel, r ast.ByteRange)
	OnSeparator(text string, r ast.ByteRange)
	OnColon(r ast.ByteRange, alwaysRightOperand bool)
	OnOpenParen(r ast.ByteRange)
	OnCloseParen(r ast.ByteRange)
	OnOpenCurly(r ast.ByteRange)
	OnCloseCurly(r ast.ByteRange)

	OnSpace(start ast.ByteIndex)
	OnComment(start ast.ByteIndex)
	OnLineStart(start ast.ByteIndex, indent int, matchingIndent int)

	OnUnsupportedChars(text string, r ast.ByteRange)
	OnInvalidUtf8(raw []byte, r ast.ByteRange)
	OnIdentifierStartsWithNumber(r ast.ByteRange)
}
