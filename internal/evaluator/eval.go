// Package evaluator implements spec.md §4.5: a tree-walker over the
// finished ast.Ast that produces values, backed by the block/scope
// runtime in block.go and the control-flow state machine in
// controlflow.go. Ported from berg-compiler/src/eval/expression_eval.rs
// and berg-compiler/src/value/eval_val.rs.
package evaluator

import (
	"github.com/cwbudde/go-berg/internal/ast"
	"github.com/cwbudde/go-berg/internal/comperr"
	"github.com/cwbudde/go-berg/internal/ident"
	"github.com/cwbudde/go-berg/internal/value"
)

// Evaluator is a stateless handle to the tree-walking algorithm; all
// mutable state lives in the Block runtime it walks.
type Evaluator struct{}

func New() *Evaluator { return &Evaluator{} }

// Run evaluates an entire source against root, matching spec.md §6.1:
// given an ast and its root scope, produce a final Value or Exception.
// The whole program is itself the block rooted at token index 0 (the
// Source boundary's Open token, pushed before any other token).
func (ev *Evaluator) Run(a *ast.Ast, root *Block) (value.Value, *comperr.Exception) {
	src := newBlock(ev, a, 0, root)
	return src.EvaluateExc()
}

// evaluateBlockBody runs a block's body expression in its own scope,
// called back into from Block.ensureEvaluated. It is the one place a
// Block and the Evaluator's tree-walk meet.
func (ev *Evaluator) evaluateBlockBody(b *Block) (value.Value, *comperr.Exception) {
	e := b.a.Expr(b.expr)
	r := ev.evaluateInner(e, b)
	r = ev.resolveValue(r, e)
	if r.err != nil {
		return nil, r.err
	}
	return r.value, nil
}

// evalResult is the Go-idiomatic stand-in for EvalVal | EvalException:
// exactly one of value/target/partial/missing is meaningful, unless
// err is set, which always wins. Ported from eval_val.rs's EvalVal —
// see DESIGN.md for why this interpreter collapses EvalVal's
// ambiguous-syntax variants into evalResult fields instead of a
// parallel value.Value-shaped sum type.
type evalResult struct {
	value   value.Value
	target  *AssignmentTarget
	partial []value.Value // an in-progress, not-yet-closed comma chain
	missing bool
	err     *comperr.Exception
}

func resOK(v value.Value) evalResult               { return evalResult{value: v} }
func resErr(err *comperr.Exception) evalResult      { return evalResult{err: err} }
func resMissing() evalResult                        { return evalResult{missing: true} }
func resTarget(t *AssignmentTarget) evalResult      { return evalResult{target: t} }
func resPartial(items []value.Value) evalResult     { return evalResult{partial: items} }

// locate attaches at's byte range to err if err has no location yet,
// pushing any existing location onto its Causes chain. Errors raised
// deep inside value.Infix/Prefix carry comperr.NoLocation() precisely
// so the first evaluator frame that sees them can do this — ported
// from expression_eval.rs's delocalize_errors/error_location, folded
// into a single step since this interpreter locates eagerly rather
// than carrying a separate Thrown(value, position) variant.
func (ev *Evaluator) locate(err *comperr.Exception, at ast.Expression) *comperr.Exception {
	if err.Location.Kind != comperr.LocationNone {
		return err
	}
	return err.Reposition(comperr.SourceLocation(at.A.SourceName, at.ByteRange()))
}

// evaluate is expression_eval.rs's `evaluate`: evaluate_local followed
// by delocalize_errors.
func (ev *Evaluator) evaluate(e ast.Expression, scope *Block) evalResult {
	r := ev.evaluateLocal(e, scope)
	if r.err != nil {
		r.err = ev.locate(r.err, e)
	}
	return r
}

// resolvePlain forces a result down to a concrete value.Value without
// giving a bare control-flow keyword or in-progress ControlFlow any
// special treatment: targets are read, partial tuples are closed, and
// a bare MissingExpression becomes a MissingOperand error. This is the
// FOLLOWED_BY state machine's own building block (controlflow.go) —
// it needs the raw Keyword/ControlFlow value itself, not the "what
// does this mean as a final answer" collapse resolveValue performs.
func (ev *Evaluator) resolvePlain(r evalResult, at ast.Expression) evalResult {
	if r.err != nil {
		return r
	}
	if r.partial != nil {
		return resOK(value.NewTuple(r.partial...))
	}
	if r.missing {
		return resErr(ev.locate(comperr.New(comperr.MissingOperand, comperr.NoLocation()), at))
	}
	if r.target != nil {
		v, err := r.target.Get()
		if err != nil {
			return resErr(ev.locate(err, at))
		}
		return resOK(v)
	}
	return r
}

// resolveValue is resolvePlain plus finishValue: the one place a
// result is forced all the way down to a value nothing downstream will
// ever feed another FOLLOWED_BY token. Used everywhere except inside
// the FOLLOWED_BY state machine itself.
func (ev *Evaluator) resolveValue(r evalResult, at ast.Expression) evalResult {
	p := ev.resolvePlain(r, at)
	if p.err != nil {
		return p
	}
	return ev.finishValue(p.value, at)
}

// finishValue converts a bare control-flow keyword or an in-progress
// ControlFlow chain into the value or error it means when nothing more
// is coming — e.g. `if true {1}` alone yields 1, but a lone `if` or an
// unterminated `try { ... }` with no catch/finally raises the
// corresponding "Without" error. Ported from eval_val.rs's behavior
// when EvalVal::into_result is forced outside of FOLLOWED_BY chaining.
func (ev *Evaluator) finishValue(v value.Value, at ast.Expression) evalResult {
	switch t := v.(type) {
	case value.Keyword:
		return ev.finishKeyword(t, at)
	case value.ControlFlow:
		return ev.finishControlFlow(t, at)
	default:
		return resOK(v)
	}
}

// evaluateInner evaluates the expression inside an Open/Close pair
// (e rooted at the Open token) and resolves it to a final value —
// grouping boundaries like parentheses and indented blocks are
// transparent to the value they wrap.
func (ev *Evaluator) evaluateInner(e ast.Expression, scope *Block) evalResult {
	inner := e.InnerExpression()
	r := ev.evaluate(inner, scope)
	return ev.resolveValue(r, inner)
}

func (ev *Evaluator) evaluateLocal(e ast.Expression, scope *Block) evalResult {
	tok := e.Token()
	if !tok.IsOperator {
		switch tok.Expr.Kind {
		case ast.ExprTerm:
			return ev.evaluateTerm(e, tok.Expr.Term, scope)
		case ast.ExprPrefixOperator:
			return ev.evaluatePrefix(e, tok.Expr.Operator, scope)
		case ast.ExprOpen:
			return ev.evaluateOpen(e, tok.Expr, scope)
		}
		panic("evaluator: unreachable expression token kind")
	}
	switch tok.Op.Kind {
	case ast.OpInfixOperator:
		return ev.evaluateInfix(e, tok.Op.Operator, scope)
	case ast.OpInfixAssignment:
		return ev.evaluateInfixAssign(e, tok.Op.Operator, scope)
	case ast.OpInlineBlockDelimiter:
		return ev.evaluateInlineBlockDelimiter(e, scope)
	case ast.OpPostfixOperator:
		return ev.evaluatePostfix(e, tok.Op.Operator, scope)
	default:
		panic("evaluator: Close/CloseBlock token evaluated as an expression root")
	}
}

func (ev *Evaluator) evaluateTerm(e ast.Expression, t ast.TermToken, scope *Block) evalResult {
	a := e.A
	switch t.Kind {
	case ast.TermIntegerLiteral:
		lit := a.Literals.String(t.Literal)
		r, ok := value.NewRationalFromString(lit)
		if !ok {
			panic("evaluator: integer literal with non-digit text reached the evaluator")
		}
		return resOK(r)

	case ast.TermFieldReference:
		return resTarget(&AssignmentTarget{Kind: TargetLocalFieldReference, Scope: scope, Field: t.Field})

	case ast.TermRawIdentifier:
		// Only ever legal as the right-hand operand of DOT, which reads
		// the raw name straight off the token without evaluating it —
		// see evalDot. Reaching this means a raw identifier was
		// evaluated on its own, which the binder never produces (every
		// other RawIdentifier is rewritten to a FieldReference).
		panic("evaluator: RawIdentifier evaluated outside of a DOT right operand")

	case ast.TermErrorTerm:
		code := comperr.UnsupportedCharacters
		if t.ErrorKind == ast.IdentifierStartsWithNumber {
			code = comperr.IdentifierStartsWithNumber
		}
		return resErr(comperr.Newf(code, comperr.NoLocation(), "%s: %q", code.Message(), a.Literals.String(t.Literal)))

	case ast.TermRawErrorTerm:
		return resErr(comperr.New(comperr.InvalidUtf8, comperr.NoLocation()))

	case ast.TermMissingExpression:
		return resMissing()
	}
	panic("evaluator: unreachable term kind")
}

func (ev *Evaluator) evaluateOpen(e ast.Expression, open ast.ExpressionToken, scope *Block) evalResult {
	if open.OpenError != ast.NoBoundaryError {
		return resErr(comperr.New(comperr.OpenWithoutClose, comperr.NoLocation()))
	}
	if open.OpenBoundary.IsBlock() {
		return resOK(value.NewBlockRef(newBlock(ev, e.A, e.Root, scope)))
	}
	return ev.evaluateInner(e, scope)
}

func (ev *Evaluator) evaluatePrefix(e ast.Expression, op ident.Index, scope *Block) evalResult {
	rightExpr := e.RightExpression()
	rr := ev.evaluate(rightExpr, scope)
	if rr.err != nil {
		return rr
	}

	if op == ident.IdxColon {
		if rr.target != nil && rr.target.Kind == TargetLocalFieldReference {
			return resTarget(rr.target.AsDeclaration())
		}
		return resErr(ev.locate(comperr.New(comperr.AssignmentTargetMustBeIdentifier, comperr.NoLocation()), rightExpr))
	}

	if op == ident.IdxPlusPlus || op == ident.IdxMinusMinus {
		return ev.evalIncDec(op, rr, rightExpr, true)
	}

	rv := ev.resolveValue(rr, rightExpr)
	if rv.err != nil {
		return rv
	}
	res, cerr := value.Prefix(op, rv.value)
	if cerr != nil {
		return resErr(ev.locate(cerr, rightExpr))
	}
	return resOK(res)
}

func (ev *Evaluator) evaluatePostfix(e ast.Expression, op ident.Index, scope *Block) evalResult {
	leftExpr := e.LeftExpression()
	lr := ev.evaluate(leftExpr, scope)
	if lr.err != nil {
		return lr
	}
	if op == ident.IdxPlusPlus || op == ident.IdxMinusMinus {
		return ev.evalIncDec(op, lr, leftExpr, false)
	}
	lv := ev.resolveValue(lr, leftExpr)
	if lv.err != nil {
		return lv
	}
	res, cerr := value.Prefix(op, lv.value)
	if cerr != nil {
		return resErr(ev.locate(cerr, leftExpr))
	}
	return resOK(res)
}

// evalIncDec implements ++/-- on an assignment target, returning the
// new value for the prefix form and the old value for the postfix
// form, per eval_val.rs's AssignmentTarget prefix/postfix impls.
func (ev *Evaluator) evalIncDec(op ident.Index, r evalResult, operandExpr ast.Expression, isPrefix bool) evalResult {
	if r.target == nil {
		return resErr(ev.locate(comperr.New(comperr.AssignmentTargetMustBeIdentifier, comperr.NoLocation()), operandExpr))
	}
	cur, err := r.target.Get()
	if err != nil {
		return resErr(ev.locate(err, operandExpr))
	}
	next, cerr := value.Prefix(op, cur)
	if cerr != nil {
		return resErr(ev.locate(cerr, operandExpr))
	}
	if err := r.target.Set(next); err != nil {
		return resErr(ev.locate(err, operandExpr))
	}
	if isPrefix {
		return resOK(next)
	}
	return resOK(cur)
}

func (ev *Evaluator) evaluateInfix(e ast.Expression, op ident.Index, scope *Block) evalResult {
	leftExpr := e.LeftExpression()
	lr := ev.evaluate(leftExpr, scope)
	if lr.err != nil {
		return lr
	}

	switch op {
	case ident.IdxComma:
		return ev.evalComma(e, lr, scope)
	case ident.IdxSemicolon, ident.IdxNewlineSequence:
		return ev.evalSequence(e, lr, scope)
	case ident.IdxDot:
		return ev.evalDot(e, lr, scope)
	case ident.IdxApply:
		return ev.evalApply(e, lr, scope)
	case ident.IdxColon:
		return ev.evalColonDeclare(e, lr, scope)
	case ident.IdxFollowedBy:
		return ev.evalFollowedBy(e, lr, scope)
	default:
		return ev.evalBinary(e, op, lr, scope)
	}
}

func (ev *Evaluator) evalComma(e ast.Expression, leftResult evalResult, scope *Block) evalResult {
	var items []value.Value
	if leftResult.partial != nil {
		items = leftResult.partial
	} else {
		leftExpr := e.LeftExpression()
		lv := ev.resolveValue(leftResult, leftExpr)
		if lv.err != nil {
			return lv
		}
		items = []value.Value{lv.value}
	}

	rightExpr := e.RightExpression()
	rr := ev.evaluate(rightExpr, scope)
	if rr.err != nil {
		return rr
	}
	if rr.missing {
		// Trailing comma: `(1,2,)` closes the tuple early rather than
		// raising MissingOperand for the absent final element.
		return resOK(value.NewTuple(items...))
	}
	rv := ev.resolveValue(rr, rightExpr)
	if rv.err != nil {
		return rv
	}
	return resPartial(append(items, rv.value))
}

func (ev *Evaluator) evalSequence(e ast.Expression, leftResult evalResult, scope *Block) evalResult {
	leftExpr := e.LeftExpression()
	lv := ev.resolveValue(leftResult, leftExpr)
	if lv.err != nil {
		return lv
	}
	rightExpr := e.RightExpression()
	rr := ev.evaluate(rightExpr, scope)
	if rr.err != nil {
		return rr
	}
	if rr.missing {
		return resOK(value.Empty)
	}
	return rr
}

func (ev *Evaluator) evalDot(e ast.Expression, leftResult evalResult, scope *Block) evalResult {
	leftExpr := e.LeftExpression()
	lv := ev.resolveValue(leftResult, leftExpr)
	if lv.err != nil {
		return lv
	}
	rightExpr := e.RightExpression()
	rtok := rightExpr.Token()
	if rtok.IsOperator || rtok.Expr.Kind != ast.ExprTerm || rtok.Expr.Term.Kind != ast.TermRawIdentifier {
		return resErr(ev.locate(comperr.New(comperr.RightSideOfDotMustBeIdentifier, comperr.NoLocation()), rightExpr))
	}
	name := e.A.IdentifierName(rtok.Expr.Term.Identifier)
	return resTarget(&AssignmentTarget{Kind: TargetObjectFieldReference, Object: lv.value, Name: name})
}

func (ev *Evaluator) evalApply(e ast.Expression, leftResult evalResult, scope *Block) evalResult {
	leftExpr := e.LeftExpression()
	lv := ev.resolveValue(leftResult, leftExpr)
	if lv.err != nil {
		return lv
	}
	br, isBlock := lv.value.(value.BlockRef)
	if !isBlock {
		return resErr(ev.locate(comperr.Newf(comperr.BadOperandType, comperr.NoLocation(), "%s is not callable", lv.value.Type()), leftExpr))
	}

	rightExpr := e.RightExpression()
	rr := ev.evaluate(rightExpr, scope)
	if rr.err != nil {
		return rr
	}
	var input value.Value = value.Empty
	if !rr.missing {
		rv := ev.resolveValue(rr, rightExpr)
		if rv.err != nil {
			return rv
		}
		input = rv.value
	}

	blk := br.Block.(*Block)
	v, cerr := blk.Apply(input)
	if cerr != nil {
		return resErr(ev.locate(cerr, e))
	}
	return resOK(v)
}

// evalColonDeclare implements `name: value` — infix COLON applied
// directly to a bare field reference, which both declares and assigns
// in one step (as opposed to a standalone prefix `:name`, which only
// declares, leaving the initial value to be drawn structurally).
func (ev *Evaluator) evalColonDeclare(e ast.Expression, leftResult evalResult, scope *Block) evalResult {
	if leftResult.err != nil {
		return leftResult
	}
	t := leftResult.target
	if t == nil || (t.Kind != TargetLocalFieldReference && t.Kind != TargetLocalFieldDeclaration) {
		return resErr(ev.locate(comperr.New(comperr.AssignmentTargetMustBeIdentifier, comperr.NoLocation()), e.LeftExpression()))
	}
	decl := t.AsDeclaration()

	rightExpr := e.RightExpression()
	rr := ev.evaluate(rightExpr, scope)
	rv := ev.resolveValue(rr, rightExpr)
	if rv.err != nil {
		return rv
	}
	forced, ferr := forceBlockValue(rv.value)
	if ferr != nil {
		return resErr(ev.locate(ferr, e))
	}
	if err := decl.Set(forced); err != nil {
		return resErr(ev.locate(err, e))
	}
	return resOK(forced)
}

// forceBlockValue forces the AutoBlock the grouper always wraps a
// colon's right operand in (grouper.go), so `x: 1` declares x as 1
// rather than as an unevaluated reference to the auto-block — spec.md
// §4.1 / block.rs's clone_result, same single-level force as
// value.Infix/Prefix use for other operators. A BlockRef whose forced
// result is itself a block (an explicit block literal written on the
// right of `:`) is left alone: only one level is ever forced.
func forceBlockValue(v value.Value) (value.Value, *comperr.Exception) {
	br, ok := v.(value.BlockRef)
	if !ok {
		return v, nil
	}
	forced, err := br.Block.Evaluate()
	if err != nil {
		return nil, asException(err)
	}
	return forced, nil
}

// evaluateInlineBlockDelimiter gives `name ===`/`name ---` the same
// declare-and-assign meaning as infix COLON (spec.md §4.1 describes
// both as opening an auto-block the same way; grouper.go treats them
// identically for that reason, so evaluation treats them the same
// too).
func (ev *Evaluator) evaluateInlineBlockDelimiter(e ast.Expression, scope *Block) evalResult {
	leftExpr := e.LeftExpression()
	lr := ev.evaluate(leftExpr, scope)
	if lr.err != nil {
		return lr
	}
	return ev.evalColonDeclare(e, lr, scope)
}

func (ev *Evaluator) evaluateInfixAssign(e ast.Expression, op ident.Index, scope *Block) evalResult {
	leftExpr := e.LeftExpression()
	lr := ev.evaluate(leftExpr, scope)
	if lr.err != nil {
		return lr
	}
	if lr.target == nil {
		return resErr(ev.locate(comperr.New(comperr.AssignmentTargetMustBeIdentifier, comperr.NoLocation()), leftExpr))
	}

	rightExpr := e.RightExpression()
	rr := ev.evaluate(rightExpr, scope)
	rv := ev.resolveValue(rr, rightExpr)
	if rv.err != nil {
		return rv
	}

	newVal := rv.value
	if e.A.IdentifierName(op) != "=" {
		cur, err := lr.target.Get()
		if err != nil {
			return resErr(ev.locate(err, leftExpr))
		}
		combined, cerr := value.Infix(cur, op, newVal)
		if cerr != nil {
			return resErr(ev.locate(cerr, e))
		}
		newVal = combined
	}
	if err := lr.target.Set(newVal); err != nil {
		return resErr(ev.locate(err, leftExpr))
	}
	return resOK(newVal)
}

func (ev *Evaluator) evalBinary(e ast.Expression, op ident.Index, leftResult evalResult, scope *Block) evalResult {
	leftExpr := e.LeftExpression()
	lv := ev.resolveValue(leftResult, leftExpr)
	if lv.err != nil {
		return lv
	}

	if op == ident.IdxAndAnd {
		if lb, ok := lv.value.(value.Boolean); ok && !bool(lb) {
			return resOK(value.Boolean(false))
		}
	}
	if op == ident.IdxOrOr {
		if lb, ok := lv.value.(value.Boolean); ok && bool(lb) {
			return resOK(value.Boolean(true))
		}
	}

	// A bare keyword or in-progress control-flow state on the left only
	// composes via FOLLOWED_BY; every other operator falls straight
	// through to value.Infix, which correctly rejects it as an
	// unsupported operator for that value's type.
	rightExpr := e.RightExpression()
	rr := ev.evaluate(rightExpr, scope)
	rv := ev.resolveValue(rr, rightExpr)
	if rv.err != nil {
		return rv
	}

	if op == ident.IdxEqualTo || op == ident.IdxNotEqualTo {
		if eq, handled := equalAcrossTypes(lv.value, rv.value); handled {
			if op == ident.IdxNotEqualTo {
				eq = !eq
			}
			return resOK(value.Boolean(eq))
		}
	}

	res, cerr := value.Infix(lv.value, op, rv.value)
	if cerr != nil {
		return resErr(ev.locate(cerr, e))
	}
	return resOK(res)
}

// equalAcrossTypes implements spec.md §4.5.2's "equality across type
// mismatches yields false" and "equality across iterables: zip
// next_val outputs" rules, which value.Infix does not attempt since it
// only compares same-type scalars. handled reports whether the
// comparison was resolved here; when false, the caller should fall
// back to value.Infix for same-type scalar equality.
func equalAcrossTypes(l, r value.Value) (equal bool, handled bool) {
	if l.Type() != r.Type() {
		return false, true
	}
	lt, lok := l.(value.Tuple)
	rt, rok := r.(value.Tuple)
	if lok && rok {
		return tupleEqual(lt, rt), true
	}
	return false, false
}

func tupleEqual(l, r value.Tuple) bool {
	if len(l.Items) != len(r.Items) {
		return false
	}
	for i := range l.Items {
		if eq, handled := equalAcrossTypes(l.Items[i], r.Items[i]); handled {
			if !eq {
				return false
			}
			continue
		}
		res, cerr := value.Infix(l.Items[i], ident.IdxEqualTo, r.Items[i])
		if cerr != nil {
			return false
		}
		if b, ok := res.(value.Boolean); !ok || !bool(b) {
			return false
		}
	}
	return true
}
