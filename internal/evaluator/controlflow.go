package evaluator

import (
	"github.com/cwbudde/go-berg/internal/ast"
	"github.com/cwbudde/go-berg/internal/comperr"
	"github.com/cwbudde/go-berg/internal/value"
)

// evalFollowedBy drives the control-flow state machine: FOLLOWED_BY
// (implicit space-separated juxtaposition) between a bare keyword or
// an in-progress ControlFlow value on the left and whatever comes
// next on the right. Ported from eval_val.rs's EvalVal::evaluate
// FOLLOWED_BY match arms.
func (ev *Evaluator) evalFollowedBy(e ast.Expression, leftResult evalResult, scope *Block) evalResult {
	leftExpr := e.LeftExpression()
	lv := ev.resolvePlain(leftResult, leftExpr)
	if lv.err != nil {
		return lv
	}

	rightExpr := e.RightExpression()
	rr := ev.evaluate(rightExpr, scope)
	rv := ev.resolvePlain(rr, rightExpr)
	if rv.err != nil {
		return rv
	}

	switch lt := lv.value.(type) {
	case value.Keyword:
		return ev.stepKeyword(lt, rv.value, rightExpr)
	case value.ControlFlow:
		return ev.stepControl(lt, rv.value, rightExpr)
	default:
		return resErr(ev.locate(comperr.Newf(comperr.BadOperandType, comperr.NoLocation(), "%s does not support juxtaposition", lv.value.Type()), leftExpr))
	}
}

func toOutcome(v value.Value, err *comperr.Exception) value.Outcome {
	if err != nil {
		return value.Failed(err)
	}
	return value.Ok(v)
}

// stepKeyword handles every transition whose left value is a bare
// control-flow keyword (the first FOLLOWED_BY in a chain).
func (ev *Evaluator) stepKeyword(k value.Keyword, right value.Value, rightExpr ast.Expression) evalResult {
	switch k.Kind {
	case value.KeywordIf:
		b, ok := right.(value.Boolean)
		if !ok {
			return resErr(ev.locate(comperr.New(comperr.IfBlockMustBeBlock, comperr.NoLocation()), rightExpr))
		}
		cond := value.CondIgnoreBlock
		if bool(b) {
			cond = value.CondRunBlock
		}
		return resOK(value.ControlFlow{Stage: value.ControlConditional, Cond: cond})

	case value.KeywordWhile:
		br, ok := right.(value.BlockRef)
		if !ok {
			return resErr(ev.locate(comperr.New(comperr.WhileConditionMustBeBlock, comperr.NoLocation()), rightExpr))
		}
		return resOK(value.ControlFlow{Stage: value.ControlWhileCondition, Condition: &br})

	case value.KeywordForeach:
		return resOK(value.ControlFlow{Stage: value.ControlForeachInput, Result: value.Ok(right)})

	case value.KeywordTry:
		br, ok := right.(value.BlockRef)
		if !ok {
			return resErr(ev.locate(comperr.New(comperr.TryBlockMustBeBlock, comperr.NoLocation()), rightExpr))
		}
		blk, _ := br.Block.(*Block)
		v, cerr := blk.EvaluateExc()
		return resOK(value.ControlFlow{Stage: value.ControlTryResult, Result: toOutcome(v, cerr)})

	case value.KeywordThrow:
		return resErr(ev.toException(right, rightExpr))

	default:
		// Else/Catch/Finally/Break/Continue reached here were used bare,
		// with nothing valid before them to chain from.
		return resErr(ev.locate(comperr.New(orphanKeywordCode(k.Kind), comperr.NoLocation()), rightExpr))
	}
}

func orphanKeywordCode(k value.KeywordKind) comperr.Code {
	switch k {
	case value.KeywordElse:
		return comperr.ElseWithoutIf
	case value.KeywordCatch:
		return comperr.CatchWithoutResult
	case value.KeywordFinally:
		return comperr.FinallyWithoutResult
	case value.KeywordBreak:
		return comperr.BreakOutsideLoop
	case value.KeywordContinue:
		return comperr.ContinueOutsideLoop
	default:
		panic("evaluator: unreachable orphan keyword kind")
	}
}

// toException converts a thrown value into the Exception it raises.
// Only values already shaped like an exception can be thrown — Berg's
// errors-as-values model routes every error through comperr.Exception,
// so `throw` rethrowing a caught one (or a fresh CompilerError built by
// the program) covers the cases this interpreter exercises.
func (ev *Evaluator) toException(v value.Value, at ast.Expression) *comperr.Exception {
	switch t := v.(type) {
	case value.CompilerError:
		return ev.locate(t.Err, at)
	case value.CaughtException:
		return ev.locate(t.Err, at)
	default:
		return ev.locate(comperr.Newf(comperr.BadOperandType, comperr.NoLocation(), "%s is not an exception", v.Type()), at)
	}
}

// stepControl handles every transition whose left value is an
// in-progress ControlFlow (the second and later FOLLOWED_BY in a chain).
func (ev *Evaluator) stepControl(cf value.ControlFlow, right value.Value, rightExpr ast.Expression) evalResult {
	switch cf.Stage {
	case value.ControlConditional:
		return ev.stepConditional(cf, right, rightExpr)
	case value.ControlWhileCondition:
		return ev.stepWhileBody(cf, right, rightExpr)
	case value.ControlForeachInput:
		return ev.stepForeachBody(cf, right, rightExpr)
	case value.ControlTryResult:
		return ev.stepTryResult(cf, right, rightExpr)
	case value.ControlTryCatch:
		return ev.stepTryCatch(cf, right, rightExpr)
	case value.ControlCatchResult:
		return ev.stepAfterCatch(cf, right, rightExpr)
	case value.ControlTryFinally:
		return ev.stepFinallyBody(cf, right, rightExpr)
	default:
		return resErr(ev.locate(comperr.New(comperr.BadOperandType, comperr.NoLocation()), rightExpr))
	}
}

func (ev *Evaluator) stepConditional(cf value.ControlFlow, right value.Value, rightExpr ast.Expression) evalResult {
	switch cf.Cond {
	case value.CondIfCondition:
		b, ok := right.(value.Boolean)
		if !ok {
			return resErr(ev.locate(comperr.New(comperr.IfBlockMustBeBlock, comperr.NoLocation()), rightExpr))
		}
		cond := value.CondIgnoreBlock
		if bool(b) && cf.Carried == nil {
			cond = value.CondRunBlock
		}
		return resOK(value.ControlFlow{Stage: value.ControlConditional, Cond: cond, Carried: cf.Carried})

	case value.CondRunBlock, value.CondIgnoreBlock:
		br, ok := right.(value.BlockRef)
		if !ok {
			return resErr(ev.locate(comperr.New(comperr.IfBlockMustBeBlock, comperr.NoLocation()), rightExpr))
		}
		carried := cf.Carried
		if cf.Cond == value.CondRunBlock {
			v, cerr := br.Block.(*Block).EvaluateExc()
			if cerr != nil {
				return resErr(cerr)
			}
			carried = v
		}
		return resOK(value.ControlFlow{Stage: value.ControlConditional, Cond: value.CondMaybeElse, Carried: carried})

	case value.CondMaybeElse:
		k, ok := right.(value.Keyword)
		if !ok || k.Kind != value.KeywordElse {
			return resErr(ev.locate(comperr.New(comperr.IfFollowedByNonElse, comperr.NoLocation()), rightExpr))
		}
		return resOK(value.ControlFlow{Stage: value.ControlConditional, Cond: value.CondElseBlock, Carried: cf.Carried})

	case value.CondElseBlock:
		if k, ok := right.(value.Keyword); ok && k.Kind == value.KeywordIf {
			return resOK(value.ControlFlow{Stage: value.ControlConditional, Cond: value.CondIfCondition, Carried: cf.Carried})
		}
		br, ok := right.(value.BlockRef)
		if !ok {
			return resErr(ev.locate(comperr.New(comperr.ElseBlockMustBeBlock, comperr.NoLocation()), rightExpr))
		}
		if cf.Carried != nil {
			return resOK(cf.Carried)
		}
		v, cerr := br.Block.(*Block).EvaluateExc()
		if cerr != nil {
			return resErr(cerr)
		}
		return resOK(v)
	}
	panic("evaluator: unreachable conditional state")
}

func (ev *Evaluator) stepWhileBody(cf value.ControlFlow, right value.Value, rightExpr ast.Expression) evalResult {
	body, ok := right.(value.BlockRef)
	if !ok {
		return resErr(ev.locate(comperr.New(comperr.WhileBlockMustBeBlock, comperr.NoLocation()), rightExpr))
	}
	condBlk, _ := cf.Condition.Block.(*Block)
	bodyBlk, _ := body.Block.(*Block)
	v, cerr := ev.runWhileLoop(condBlk, bodyBlk)
	if cerr != nil {
		return resErr(cerr)
	}
	return resOK(v)
}

func (ev *Evaluator) stepForeachBody(cf value.ControlFlow, right value.Value, rightExpr ast.Expression) evalResult {
	body, ok := right.(value.BlockRef)
	if !ok {
		return resErr(ev.locate(comperr.New(comperr.ForeachBlockMustBeBlock, comperr.NoLocation()), rightExpr))
	}
	if cf.Result.Err != nil {
		return resErr(asException(cf.Result.Err))
	}
	bodyBlk, _ := body.Block.(*Block)
	v, cerr := ev.runForeach(cf.Result.Val, bodyBlk)
	if cerr != nil {
		return resErr(cerr)
	}
	return resOK(v)
}

func (ev *Evaluator) stepTryResult(cf value.ControlFlow, right value.Value, rightExpr ast.Expression) evalResult {
	if k, ok := right.(value.Keyword); ok {
		switch k.Kind {
		case value.KeywordCatch:
			return resOK(value.ControlFlow{Stage: value.ControlTryCatch, Result: cf.Result})
		case value.KeywordFinally:
			return resOK(value.ControlFlow{Stage: value.ControlTryFinally, Result: cf.Result})
		}
	}
	return resErr(ev.locate(comperr.New(comperr.TryWithoutCatchOrFinally, comperr.NoLocation()), rightExpr))
}

func (ev *Evaluator) stepTryCatch(cf value.ControlFlow, right value.Value, rightExpr ast.Expression) evalResult {
	if k, ok := right.(value.Keyword); ok && k.Kind == value.KeywordFinally {
		return resErr(ev.locate(comperr.New(comperr.CatchWithoutFinally, comperr.NoLocation()), rightExpr))
	}
	br, ok := right.(value.BlockRef)
	if !ok {
		return resErr(ev.locate(comperr.New(comperr.CatchBlockMustBeBlock, comperr.NoLocation()), rightExpr))
	}
	if cf.Result.Err == nil {
		return resOK(value.ControlFlow{Stage: value.ControlCatchResult, Result: cf.Result})
	}
	caught := value.NewCaughtException(asException(cf.Result.Err))
	blk, _ := br.Block.(*Block)
	v, cerr := blk.Apply(caught)
	return resOK(value.ControlFlow{Stage: value.ControlCatchResult, Result: toOutcome(v, cerr)})
}

func (ev *Evaluator) stepAfterCatch(cf value.ControlFlow, right value.Value, rightExpr ast.Expression) evalResult {
	if k, ok := right.(value.Keyword); ok && k.Kind == value.KeywordFinally {
		return resOK(value.ControlFlow{Stage: value.ControlTryFinally, Result: cf.Result})
	}
	return resErr(ev.locate(comperr.New(comperr.BadOperandType, comperr.NoLocation()), rightExpr))
}

func (ev *Evaluator) stepFinallyBody(cf value.ControlFlow, right value.Value, rightExpr ast.Expression) evalResult {
	br, ok := right.(value.BlockRef)
	if !ok {
		return resErr(ev.locate(comperr.New(comperr.FinallyBlockMustBeBlock, comperr.NoLocation()), rightExpr))
	}
	blk, _ := br.Block.(*Block)
	if _, cerr := blk.EvaluateExc(); cerr != nil {
		return resErr(cerr)
	}
	if cf.Result.Err != nil {
		return resErr(asException(cf.Result.Err))
	}
	return resOK(cf.Result.Val)
}

// finishKeyword converts a bare control-flow keyword into the error it
// means when nothing follows it at all.
func (ev *Evaluator) finishKeyword(k value.Keyword, at ast.Expression) evalResult {
	switch k.Kind {
	case value.KeywordBreak:
		return resErr(ev.locate(comperr.New(comperr.BreakOutsideLoop, comperr.NoLocation()), at))
	case value.KeywordContinue:
		return resErr(ev.locate(comperr.New(comperr.ContinueOutsideLoop, comperr.NoLocation()), at))
	case value.KeywordIf:
		return resErr(ev.locate(comperr.New(comperr.IfWithoutCondition, comperr.NoLocation()), at))
	case value.KeywordElse:
		return resErr(ev.locate(comperr.New(comperr.ElseWithoutIf, comperr.NoLocation()), at))
	case value.KeywordWhile:
		return resErr(ev.locate(comperr.New(comperr.WhileWithoutCondition, comperr.NoLocation()), at))
	case value.KeywordForeach:
		return resErr(ev.locate(comperr.New(comperr.ForeachWithoutInput, comperr.NoLocation()), at))
	case value.KeywordTry:
		return resErr(ev.locate(comperr.New(comperr.TryWithoutBlock, comperr.NoLocation()), at))
	case value.KeywordCatch:
		return resErr(ev.locate(comperr.New(comperr.CatchWithoutResult, comperr.NoLocation()), at))
	case value.KeywordFinally:
		return resErr(ev.locate(comperr.New(comperr.FinallyWithoutResult, comperr.NoLocation()), at))
	case value.KeywordThrow:
		return resErr(ev.locate(comperr.New(comperr.ThrowWithoutException, comperr.NoLocation()), at))
	}
	panic("evaluator: unreachable keyword kind")
}

// finishControlFlow converts an in-progress ControlFlow chain into the
// value or error it means when nothing more is coming — e.g.
// `if true {1}` alone yields 1 (the optional else never arrived), but
// `try { 1/0 }` with no catch or finally raises
// TryWithoutCatchOrFinally.
func (ev *Evaluator) finishControlFlow(cf value.ControlFlow, at ast.Expression) evalResult {
	switch cf.Stage {
	case value.ControlConditional:
		switch cf.Cond {
		case value.CondMaybeElse:
			if cf.Carried != nil {
				return resOK(cf.Carried)
			}
			return resOK(value.Value(value.Empty))
		case value.CondIfCondition:
			return resErr(ev.locate(comperr.New(comperr.IfWithoutCondition, comperr.NoLocation()), at))
		case value.CondElseBlock:
			return resErr(ev.locate(comperr.New(comperr.ElseWithoutBlock, comperr.NoLocation()), at))
		default: // CondRunBlock, CondIgnoreBlock
			return resErr(ev.locate(comperr.New(comperr.IfWithoutBlock, comperr.NoLocation()), at))
		}
	case value.ControlWhileCondition:
		return resErr(ev.locate(comperr.New(comperr.WhileWithoutBlock, comperr.NoLocation()), at))
	case value.ControlForeachInput:
		return resErr(ev.locate(comperr.New(comperr.ForeachWithoutBlock, comperr.NoLocation()), at))
	case value.ControlTryResult:
		return resErr(ev.locate(comperr.New(comperr.TryWithoutCatchOrFinally, comperr.NoLocation()), at))
	case value.ControlTryCatch:
		return resErr(ev.locate(comperr.New(comperr.CatchWithoutBlock, comperr.NoLocation()), at))
	case value.ControlCatchResult:
		if cf.Result.Err != nil {
			return resErr(asException(cf.Result.Err))
		}
		return resOK(cf.Result.Val)
	case value.ControlTryFinally:
		return resErr(ev.locate(comperr.New(comperr.FinallyWithoutBlock, comperr.NoLocation()), at))
	}
	panic("evaluator: unreachable control stage")
}

// runWhileLoop implements spec.md's while-loop semantics: repeatedly
// apply the condition block with no input, and while it is truthy,
// apply the body block with no input. BreakOutsideLoop ends the loop;
// ContinueOutsideLoop skips to the next condition check; any other
// exception propagates.
func (ev *Evaluator) runWhileLoop(cond, body *Block) (value.Value, *comperr.Exception) {
	for {
		cv, cerr := cond.Apply(value.Empty)
		if cerr != nil {
			return nil, cerr
		}
		b, ok := cv.(value.Boolean)
		if !ok {
			return nil, comperr.New(comperr.WhileConditionMustBeBlock, comperr.NoLocation())
		}
		if !bool(b) {
			return value.Empty, nil
		}
		if _, cerr := body.Apply(value.Empty); cerr != nil {
			switch cerr.Code {
			case comperr.BreakOutsideLoop:
				return value.Empty, nil
			case comperr.ContinueOutsideLoop:
				continue
			default:
				return nil, cerr
			}
		}
	}
}

// runForeach implements spec.md's foreach semantics: pull NextVal off
// the input iterator and apply the body block to each head value,
// honoring the same break/continue rules as while.
func (ev *Evaluator) runForeach(input value.Value, body *Block) (value.Value, *comperr.Exception) {
	cur := input
	for {
		nv, cerr := value.Iterate(cur)
		if cerr != nil {
			return nil, cerr
		}
		if !nv.HasHead {
			return value.Empty, nil
		}
		cur = nv.Tail
		if _, cerr := body.Apply(nv.Head); cerr != nil {
			switch cerr.Code {
			case comperr.BreakOutsideLoop:
				return value.Empty, nil
			case comperr.ContinueOutsideLoop:
				continue
			default:
				return nil, cerr
			}
		}
	}
}
