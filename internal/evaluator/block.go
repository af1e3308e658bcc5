package evaluator

import (
	"github.com/cwbudde/go-berg/internal/ast"
	"github.com/cwbudde/go-berg/internal/comperr"
	"github.com/cwbudde/go-berg/internal/value"
)

// blockState is a runtime Block's lifecycle, per spec.md §3.4: a block
// never evaluates twice, and the Running→Running re-entry is exactly
// what raises CircularDependency. Ported from block.rs's BlockState.
type blockState int

const (
	stateReady blockState = iota
	stateRunning
	stateComplete
)

type fieldSlot struct {
	set bool
	val value.Value
}

// Block is the runtime counterpart to an ast.AstBlock: a lexical
// closure with mutable field storage, a parent scope, and a memoized
// result. It implements value.Block so a BlockRef can hold one without
// this package's evaluator logic leaking into internal/value. Ported
// from block.rs's BlockData.
type Block struct {
	a        *ast.Ast
	ev       *Evaluator
	expr     ast.Index // the Open token this block runs (unused for the root scope)
	blockIdx ast.BlockIndex
	parent   *Block

	isRoot    bool
	immutable bool

	input value.Value

	state  blockState
	result value.Outcome

	scopeStart ast.FieldIndex
	scopeCount int
	fields     []fieldSlot
}

// newBlock constructs the (not yet evaluated) runtime block for a
// block-boundary Open token, lexically capturing parent as its
// enclosing scope. The block is not run until Evaluate or Apply is
// called on it — block literals are lazy values.
func newBlock(ev *Evaluator, a *ast.Ast, openIndex ast.Index, parent *Block) *Block {
	openTok := a.ExpressionToken(openIndex)
	ab := a.Block(openTok.OpenBlock)
	return &Block{
		a: a, ev: ev, expr: openIndex, blockIdx: openTok.OpenBlock, parent: parent,
		input:      value.Empty,
		scopeStart: ab.ScopeStart,
		scopeCount: int(ab.ScopeCount),
		fields:     make([]fieldSlot, ab.ScopeCount),
	}
}

// NewRootScope builds the always-Complete, immutable root block
// described by spec.md §6.2: fields, in order, are the values
// pre-populated by the caller (true/false, the control-flow keywords,
// then one CompilerError per well-known error code). Writes to any
// root field fail with comperr.ImmutableField.
func NewRootScope(a *ast.Ast, fields []value.Value) *Block {
	slots := make([]fieldSlot, len(fields))
	for i, v := range fields {
		slots[i] = fieldSlot{set: true, val: v}
	}
	return &Block{
		a: a, isRoot: true, immutable: true, state: stateComplete,
		scopeStart: 0, scopeCount: len(fields), fields: slots,
	}
}

// Evaluate runs the block to completion with whatever input it was
// constructed with (value.Empty unless Apply was used), matching
// Rust's BlockRef::evaluate used for if/try/catch/finally bodies,
// which are never given an explicit argument.
func (b *Block) Evaluate() (value.Value, error) {
	if err := b.ensureEvaluated(); err != nil {
		return nil, err
	}
	if b.result.Err != nil {
		return nil, b.result.Err
	}
	return b.result.Val, nil
}

// EvaluateExc is Evaluate with internal/evaluator's own exception type,
// avoiding an error-interface round trip at call sites already working
// in *comperr.Exception.
func (b *Block) EvaluateExc() (value.Value, *comperr.Exception) {
	if err := b.ensureEvaluated(); err != nil {
		return nil, err
	}
	if b.result.Err != nil {
		return nil, asException(b.result.Err)
	}
	return b.result.Val, nil
}

// Apply creates a fresh block sharing this one's lexical parent and
// body but with its own memo slot and the given input, and evaluates
// it to completion. Used for while/foreach bodies and conditions,
// which may run many times with different inputs — spec.md §4.5.2:
// "Block value on left with APPLY: creates a fresh block with the
// given input and evaluates to completion."
func (b *Block) Apply(input value.Value) (value.Value, *comperr.Exception) {
	fresh := &Block{
		a: b.a, ev: b.ev, expr: b.expr, blockIdx: b.blockIdx, parent: b.parent,
		input: input, scopeStart: b.scopeStart, scopeCount: b.scopeCount,
		fields: make([]fieldSlot, b.scopeCount),
	}
	return fresh.EvaluateExc()
}

func (b *Block) ensureEvaluated() *comperr.Exception {
	switch b.state {
	case stateComplete:
		return nil
	case stateRunning:
		return comperr.New(comperr.CircularDependency, comperr.ExpressionLocation(b.a.Expr(b.expr)))
	}
	b.state = stateRunning
	v, err := b.ev.evaluateBlockBody(b)
	b.state = stateComplete
	if err != nil {
		b.result = value.Failed(err)
	} else {
		b.result = value.Ok(v)
	}
	return nil
}

// Field implements value.Block's object-field read (the right side of
// `.`). fromOutside enforces the public/private visibility rule: a
// field only reachable by name must have been declared with a leading
// `:` (ast.Field.IsPublic) to be read across the block boundary.
func (b *Block) Field(name string, fromOutside bool) (value.Value, bool, error) {
	i, f, ok := b.findFieldByName(name)
	if !ok {
		if fromOutside {
			return nil, false, comperr.New(comperr.NoSuchPublicField, comperr.NoLocation())
		}
		return nil, false, comperr.New(comperr.NoSuchField, comperr.NoLocation())
	}
	if fromOutside && !f.IsPublic {
		return nil, false, comperr.New(comperr.PrivateField, comperr.NoLocation())
	}
	slot := b.fields[i]
	if !slot.set {
		return nil, false, comperr.New(comperr.FieldNotSet, comperr.NoLocation())
	}
	return slot.val, true, nil
}

// SetField implements value.Block's object-field write (`block.x = v`
// from outside the block). Only public fields are writable this way.
func (b *Block) SetField(name string, v value.Value) error {
	i, f, ok := b.findFieldByName(name)
	if !ok {
		return comperr.New(comperr.NoSuchPublicField, comperr.NoLocation())
	}
	if !f.IsPublic {
		return comperr.New(comperr.PrivateField, comperr.NoLocation())
	}
	if b.immutable {
		return comperr.New(comperr.ImmutableField, comperr.NoLocation())
	}
	b.fields[i] = fieldSlot{set: true, val: v}
	return nil
}

func (b *Block) findFieldByName(name string) (int, ast.Field, bool) {
	for i := 0; i < b.scopeCount; i++ {
		f := b.a.Field(b.scopeStart + ast.FieldIndex(i))
		if b.a.IdentifierName(f.Name) == name {
			return i, f, true
		}
	}
	return 0, ast.Field{}, false
}

// ownsIndex reports whether idx was declared in this block's own
// lexical window, as opposed to an enclosing one.
func (b *Block) ownsIndex(idx ast.FieldIndex) bool {
	return idx >= b.scopeStart && int(idx-b.scopeStart) < b.scopeCount
}

// findOwner walks from b outward through parent scopes to the block
// that actually owns idx — mirroring the static lexical nesting at
// runtime, innermost first, so a shadowing inner declaration is never
// mistaken for an outer one.
func (b *Block) findOwner(idx ast.FieldIndex) *Block {
	for cur := b; cur != nil; cur = cur.parent {
		if cur.ownsIndex(idx) {
			return cur
		}
	}
	return nil
}

func (b *Block) localGet(idx ast.FieldIndex) (value.Value, *comperr.Exception) {
	owner := b.findOwner(idx)
	if owner == nil {
		panic("evaluator: field index has no owning scope")
	}
	slot := owner.fields[idx-owner.scopeStart]
	if !slot.set {
		return nil, comperr.New(comperr.FieldNotSet, comperr.NoLocation())
	}
	return slot.val, nil
}

func (b *Block) localSet(idx ast.FieldIndex, v value.Value) *comperr.Exception {
	owner := b.findOwner(idx)
	if owner == nil {
		panic("evaluator: field index has no owning scope")
	}
	if owner.immutable {
		return comperr.New(comperr.ImmutableField, comperr.NoLocation())
	}
	owner.fields[idx-owner.scopeStart] = fieldSlot{set: true, val: v}
	return nil
}

// localDeclare materializes a field the first time it is read after a
// `:` declaration, drawing its initial value from the block's own
// input — spec.md §4.5.4: "Declaration materializes the field before
// get, drawing its initial value by taking one NextVal from the
// enclosing block's input (enabling structural binding from
// foreach)." Declarations are always local to the current block (the
// binder never creates a declaration field in an outer scope), so no
// findOwner walk is needed here.
func (b *Block) localDeclare(idx ast.FieldIndex) (value.Value, *comperr.Exception) {
	nv, err := value.Iterate(b.input)
	if err != nil {
		return nil, err
	}
	b.input = nv.Tail
	v := nv.Head
	if !nv.HasHead {
		v = value.Empty
	}
	b.fields[idx-b.scopeStart] = fieldSlot{set: true, val: v}
	return v, nil
}

// asException narrows a value.Block-shaped error (declared as the
// plain `error` interface so internal/value need not import
// internal/comperr) back to the concrete type every error in this
// interpreter actually is.
func asException(err error) *comperr.Exception {
	if ce, ok := err.(*comperr.Exception); ok {
		return ce
	}
	return comperr.Newf(comperr.UnsupportedOperator, comperr.NoLocation(), "%v", err)
}
