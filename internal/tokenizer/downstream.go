// Package tokenizer implements spec.md §4.2: turning sequencer runs into
// typed expression/operator tokens, inserting the implicit APPLY,
// FOLLOWED_BY and NEWLINE_SEQUENCE operators, and opening/closing
// compound terms and indented blocks.
package tokenizer

import "github.com/cwbudde/go-berg/internal/ast"

// Downstream receives fully classified tokens from Tokenizer, the same
// way Sink receives runs from Sequencer — defined at the point of use
// so Tokenizer stays ignorant of how tokens become a bound, grouped
// tree. internal/grouper.Grouper is the only implementation.
type Downstream interface {
	OnExpressionToken(tok ast.ExpressionToken, r ast.ByteRange)
	OnOperatorToken(tok ast.OperatorToken, r ast.ByteRange)
	OnIndentMismatch(level int)
	OnSourceEnd()
}
