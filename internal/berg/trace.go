package berg

import (
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/go-berg/internal/ast"
	"github.com/cwbudde/go-berg/internal/tokenizer"
)

// tracingDownstream wraps a tokenizer.Downstream and logs every token
// it forwards before delegating, giving --verbose a structured view of
// the Tokenizer → Grouper boundary (every token the tokenizer emits
// passes through here exactly once; the Open/Close tokens the grouper
// inserts on its own, such as precedence groups and auto-blocks, do
// not).
// Grounded on SPEC_FULL.md §2's replacement of the original
// implementation's raw debug println!s in binder.rs/block.rs with
// leveled, structured logrus fields; vippsas-sqlcode's CLI is the
// pack's one example of wiring logrus through a command-line tool.
type tracingDownstream struct {
	next tokenizer.Downstream
	log  logrus.FieldLogger

	tokenIndex int
}

var _ tokenizer.Downstream = (*tracingDownstream)(nil)

func (d *tracingDownstream) OnExpressionToken(tok ast.ExpressionToken, r ast.ByteRange) {
	d.log.WithFields(logrus.Fields{
		"stage": "tokenizer", "kind": "expression", "token": d.tokenIndex,
		"start": r.Start, "end": r.End,
	}).Debug("token")
	d.tokenIndex++
	d.next.OnExpressionToken(tok, r)
}

func (d *tracingDownstream) OnOperatorToken(tok ast.OperatorToken, r ast.ByteRange) {
	d.log.WithFields(logrus.Fields{
		"stage": "tokenizer", "kind": "operator", "token": d.tokenIndex,
		"start": r.Start, "end": r.End,
	}).Debug("token")
	d.tokenIndex++
	d.next.OnOperatorToken(tok, r)
}

func (d *tracingDownstream) OnIndentMismatch(level int) {
	d.log.WithFields(logrus.Fields{"stage": "tokenizer", "indent": level}).Debug("indent mismatch")
	d.next.OnIndentMismatch(level)
}

func (d *tracingDownstream) OnSourceEnd() {
	d.log.WithField("stage", "tokenizer").WithField("tokens", d.tokenIndex).Debug("source end")
	d.next.OnSourceEnd()
}
