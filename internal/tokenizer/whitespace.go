package tokenizer

// WhitespaceState tracks where we are with respect to whitespace
// groupings: vertical text blocks with indent, and horizontal compact
// terms without space. Ported from tokenizer.rs's WhitespaceState enum.
type WhitespaceState int

const (
	// InTerm: an expression has already started on this line and we are
	// inside a compact term ("y = 1+2...").
	InTerm WhitespaceState = iota
	// NotInTerm: an expression has already started on this line, outside
	// a compact term ("x * ...").
	NotInTerm
	// NextLine: start of a line at the same indent as the previous one.
	NextLine
	// IndentedLine: start of a line more indented than the previous one;
	// carries the new indent level so on_expression_token can push the
	// matching indented-block entry.
	IndentedLine
)

type whitespace struct {
	state  WhitespaceState
	indent int // valid only when state == IndentedLine
}
