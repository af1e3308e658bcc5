package ast

// Expression is a lightweight handle (ast, root index) that computes
// navigation on demand from index deltas and fixity rules, per
// spec.md §3.3: "The token buffer IS the tree." It is cheap to copy
// and deliberately carries no cached state.
type Expression struct {
	A    *Ast
	Root Index
}

func (a *Ast) Expr(root Index) Expression { return Expression{A: a, Root: root} }

func (e Expression) Token() Token { return e.A.Token(e.Root) }

// FirstIndex is the index of the token at the very beginning of this
// expression (ported from berg-compiler/src/syntax/expression_tree.rs
// first_index).
func (e Expression) FirstIndex() Index {
	tok := e.Token()
	if tok.IsOperator {
		switch tok.Op.Kind {
		case OpClose:
			return e.Root - Index(tok.Op.CloseDelta)
		case OpCloseBlock:
			return e.Root - Index(e.A.Block(tok.Op.CloseBlock).Delta)
		}
	}
	left := e.Root
	for e.A.Token(left).HasLeftOperand() {
		left = e.A.Expr(left).LeftOperandRoot()
	}
	return left
}

// LastIndex is the index of the token at the very end of this
// expression.
func (e Expression) LastIndex() Index {
	tok := e.Token()
	if !tok.IsOperator && tok.Expr.Kind == ExprOpen {
		return e.Root + Index(tok.Expr.OpenDelta)
	}
	right := e.Root
	for e.A.Token(right).HasRightOperand() {
		right = e.A.Expr(right).RightOperandRoot()
	}
	return right
}

// OpenOperatorIndex returns the Open token index for an expression
// rooted at a Close/CloseBlock, or root itself otherwise.
func (e Expression) OpenOperatorIndex() Index {
	tok := e.Token()
	if tok.IsOperator {
		switch tok.Op.Kind {
		case OpClose:
			return e.Root - Index(tok.Op.CloseDelta)
		case OpCloseBlock:
			return e.Root - Index(e.A.Block(tok.Op.CloseBlock).Delta)
		}
	}
	return e.Root
}

// CloseOperatorIndex returns the Close token index for an expression
// rooted at an Open, or root itself otherwise.
func (e Expression) CloseOperatorIndex() Index {
	tok := e.Token()
	if !tok.IsOperator && tok.Expr.Kind == ExprOpen {
		return e.Root + Index(tok.Expr.OpenDelta)
	}
	return e.Root
}

// RightOperandRoot is the root index of this expression's right
// operand (ported from expression_tree.rs right_operand_root).
func (e Expression) RightOperandRoot() Index {
	a := e.A
	tok := e.Token()
	start := e.Root + 1

	switch {
	case !tok.IsOperator && tok.Expr.Kind == ExprPrefixOperator:
		return start
	case !tok.IsOperator && tok.Expr.Kind == ExprOpen:
		return e.InnerRoot()
	}
	// Otherwise this must be infix.
	end := start
	for {
		t := a.Token(end)
		if t.IsOperator || t.Expr.Kind != ExprPrefixOperator {
			break
		}
		end++
	}
	if t := a.Token(end); !t.IsOperator && t.Expr.Kind == ExprOpen {
		end += Index(t.Expr.OpenDelta)
	}
	hasPostfix := false
	for {
		next := end + 1
		if int(next) >= len(a.Tokens) {
			break
		}
		t := a.Token(next)
		if !t.IsOperator || t.Op.Kind != OpPostfixOperator {
			break
		}
		end = next
		hasPostfix = true
	}
	if hasPostfix {
		return end
	}
	return start
}

// LeftOperandRoot is the root index of this expression's left operand
// (ported from expression_tree.rs left_operand_root).
func (e Expression) LeftOperandRoot() Index {
	a := e.A
	end := e.Root - 1
	start := end
	isPostfix := e.Token().Fixity() == FixityPostfix

	leftHasPostfix := false
	for {
		t := a.Token(start)
		if !t.IsOperator || t.Op.Kind != OpPostfixOperator {
			break
		}
		start--
		leftHasPostfix = true
	}

	switch t := a.Token(start); {
	case t.IsOperator && t.Op.Kind == OpClose:
		start -= Index(t.Op.CloseDelta)
	case t.IsOperator && t.Op.Kind == OpCloseBlock:
		start -= Index(a.Block(t.Op.CloseBlock).Delta)
	}

	if isPostfix || !leftHasPostfix {
		for start > 0 && a.Token(start-1).Fixity() == FixityPrefix {
			start--
		}
	}

	if !isPostfix && start > 0 && a.Token(start-1).Fixity() == FixityInfix {
		return start - 1
	}

	if leftHasPostfix {
		return end
	}
	return start
}

// ParentRoot is the root index of the expression that directly
// contains this one (ported from expression_tree.rs parent_root).
func (e Expression) ParentRoot() Index {
	a := e.A
	first := e.FirstIndex()
	last := e.LastIndex()
	next := last + 1
	if first == 0 {
		return next
	}
	prev := first - 1
	if int(last) >= len(a.Tokens)-1 {
		return prev
	}

	prevFix := a.Token(prev).Fixity()
	nextFix := a.Token(next).Fixity()

	switch {
	case (prevFix == FixityInfix && nextFix == FixityPostfix) ||
		(prevFix == FixityOpen && nextFix == FixityPostfix) ||
		(prevFix == FixityOpen && nextFix == FixityInfix):
		return next
	case (prevFix == FixityPrefix && nextFix == FixityPostfix) ||
		(prevFix == FixityPrefix && nextFix == FixityInfix) ||
		(prevFix == FixityPrefix && nextFix == FixityClose) ||
		(prevFix == FixityInfix && nextFix == FixityInfix) ||
		(prevFix == FixityInfix && nextFix == FixityClose) ||
		(prevFix == FixityOpen && nextFix == FixityClose):
		return prev
	default:
		panic("ast: unreachable fixity pair in ParentRoot")
	}
}

// InnerRoot is the root of the expression inside an Open/Close pair —
// the left operand of the Close token.
func (e Expression) InnerRoot() Index {
	close := e.CloseOperatorIndex()
	return e.A.Expr(close).LeftOperandRoot()
}

func (e Expression) LeftExpression() Expression   { return e.A.Expr(e.LeftOperandRoot()) }
func (e Expression) RightExpression() Expression  { return e.A.Expr(e.RightOperandRoot()) }
func (e Expression) ParentExpression() Expression { return e.A.Expr(e.ParentRoot()) }
func (e Expression) InnerExpression() Expression  { return e.A.Expr(e.InnerRoot()) }

// PrevExpression/NextExpression are the linear (token-order) sibling
// expressions, not tree parent/child — used by diagnostics to say "the
// expression before/after this one" (original_source: block.rs display,
// expression_tree.rs prev_expression/next_expression).
func (e Expression) PrevExpression() Expression {
	return e.A.Expr(e.A.Expr(e.FirstIndex() - 1).OpenOperatorIndex())
}

func (e Expression) NextExpression() Expression {
	return e.A.Expr(e.Root + 1)
}

// Depth walks ParentExpression to the root, counting hops. (The `parse`
// CLI subcommand's indented tree dump keeps its own depth counter and
// does not call this.)
func (e Expression) Depth() int {
	depth := 0
	cur := e
	for cur.Root != 0 {
		depth++
		cur = cur.ParentExpression()
	}
	return depth
}

// Boundary returns the boundary kind of the Open token that starts
// this expression. Valid only when this expression is itself an
// Open/Close pair.
func (e Expression) Boundary() Boundary {
	open := e.A.ExpressionToken(e.OpenOperatorIndex())
	if open.Kind != ExprOpen {
		panic("ast: Boundary() called on a non-group expression")
	}
	return open.OpenBoundary
}

// ByteRange is the span of source bytes this expression covers.
func (e Expression) ByteRange() ByteRange {
	first := e.A.Range(e.FirstIndex())
	last := e.A.Range(e.LastIndex())
	return ByteRange{Start: first.Start, End: last.End}
}

// OperandPosition classifies this expression relative to its parent,
// mirroring spec.md §9's ExpressionErrorPosition algebra building
// blocks.
type OperandPosition int

const (
	PositionLeft OperandPosition = iota
	PositionRight
	PositionPrefixOperand
	PositionPostfixOperand
)

func (e Expression) OperandPosition() OperandPosition {
	parent := e.ParentExpression()
	switch parent.Token().Fixity() {
	case FixityPrefix, FixityOpen:
		return PositionPrefixOperand
	case FixityPostfix, FixityClose:
		return PositionPostfixOperand
	case FixityInfix:
		if e.Root < parent.Root {
			return PositionLeft
		}
		return PositionRight
	}
	panic("ast: OperandPosition called on a Term parent")
}
