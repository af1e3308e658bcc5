// Package berg wires the five parsing stages and the evaluator into
// the two entry points spec.md §6.1 describes: parse a source into an
// Ast, then evaluate it against a pre-populated root scope. Ported
// from berg-parser's top-level Ast::parse wiring (Sequencer::parse
// driving Tokenizer/Grouper/Binder as collaborators) and from the
// teacher's cmd/dwscript/cmd/run.go orchestration style (sequential
// stage calls, no intermediate-tree passes).
package berg

import (
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/go-berg/internal/ast"
	"github.com/cwbudde/go-berg/internal/comperr"
	"github.com/cwbudde/go-berg/internal/evaluator"
	"github.com/cwbudde/go-berg/internal/grouper"
	"github.com/cwbudde/go-berg/internal/ident"
	"github.com/cwbudde/go-berg/internal/sequencer"
	"github.com/cwbudde/go-berg/internal/tokenizer"
	"github.com/cwbudde/go-berg/internal/value"
)

// RootFieldNames is the full, in-order list of names pre-declared in
// every source's root scope: ident.RootFieldNames (true/false, the
// control-flow keywords) followed by one name per well-known error
// code (comperr.RootErrorCodeNames). The binder consumes this list
// positionally, so its order must exactly match RootValues's.
func RootFieldNames() []string {
	names := make([]string, 0, len(ident.RootFieldNames)+len(comperr.RootErrorCodeNames))
	names = append(names, ident.RootFieldNames...)
	for _, e := range comperr.RootErrorCodeNames {
		names = append(names, e.Name)
	}
	return names
}

// keywordKindByFieldIndex mirrors ident.RootFieldNames's fixed order
// (positions 2..11, after true/false) so RootValues never has to
// string-compare a name back to a KeywordKind.
var keywordKindByFieldIndex = []value.KeywordKind{
	value.KeywordIf, value.KeywordElse, value.KeywordWhile, value.KeywordForeach,
	value.KeywordTry, value.KeywordCatch, value.KeywordFinally, value.KeywordThrow,
	value.KeywordBreak, value.KeywordContinue,
}

// RootValues builds the value for each name RootFieldNames returns, in
// the same order, per spec.md §6.2: true/false booleans, one Keyword
// per control-flow keyword, then one CompilerError per well-known
// error code (letting a program catch and compare against e.g.
// DivideByZero by name).
func RootValues() []value.Value {
	vals := make([]value.Value, 0, len(ident.RootFieldNames)+len(comperr.RootErrorCodeNames))
	vals = append(vals, value.Boolean(true), value.Boolean(false))
	for _, k := range keywordKindByFieldIndex {
		vals = append(vals, value.Keyword{Kind: k})
	}
	for _, e := range comperr.RootErrorCodeNames {
		vals = append(vals, value.NewCompilerError(comperr.New(e.Code, comperr.NoLocation())))
	}
	return vals
}

// RootScope builds the one immutable root Block every Ast's Source
// block is lexically nested inside, per spec.md §6.2's
// immutable-field guarantee.
func RootScope(a *ast.Ast) *evaluator.Block {
	return evaluator.NewRootScope(a, RootValues())
}

// Parse runs the Sequencer → Tokenizer → Grouper → Binder pipeline to
// completion over source, returning the finished Ast. log, if non-nil,
// receives a Debug entry per token the grouper receives (stage, token
// index, byte range) for --verbose pipeline tracing; it never affects
// parsing semantics. indentMismatches reports indent levels the
// tokenizer could not match to any open indented block — collected for
// diagnostics, not a parse failure, since an unmatched indent is
// itself just another token sequence the grouper still balances.
func Parse(name string, source []byte, log logrus.FieldLogger) (a *ast.Ast, indentMismatches []int, err error) {
	a = ast.NewAst(name, source)
	g := grouper.New(a, RootFieldNames())

	var down tokenizer.Downstream = g
	if log != nil {
		down = &tracingDownstream{next: down, log: log}
	}

	tk := tokenizer.New(down, a)
	seq := sequencer.New(a, tk)
	seq.Run()

	return g.Ast(), g.IndentMismatches(), nil
}

// Eval parses source and evaluates it against a fresh root scope,
// returning the final value or the located Exception that stopped
// evaluation — spec.md §6.1's "it returns an AST plus a final Value or
// Exception."
func Eval(name string, source []byte, log logrus.FieldLogger) (*ast.Ast, value.Value, *comperr.Exception) {
	a, mismatches, _ := Parse(name, source, log)
	if log != nil {
		for _, level := range mismatches {
			log.WithField("stage", "tokenizer").WithField("indent", level).Warn("indent does not match any open block")
		}
	}

	root := RootScope(a)
	ev := evaluator.New()
	v, cerr := ev.Run(a, root)
	return a, v, cerr
}
