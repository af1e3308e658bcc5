package evaluator

import (
	"github.com/cwbudde/go-berg/internal/ast"
	"github.com/cwbudde/go-berg/internal/comperr"
	"github.com/cwbudde/go-berg/internal/value"
)

// TargetKind distinguishes the three assignable things spec.md §4.5.4
// names, ported from eval_val.rs's AssignmentTarget enum.
type TargetKind int

const (
	TargetLocalFieldReference TargetKind = iota
	TargetLocalFieldDeclaration
	TargetObjectFieldReference
)

// AssignmentTarget is the lvalue form an evaluated FieldReference or
// DOT expression produces: something with get/set/declare semantics
// instead of an immediate value, so that `a: 5`, `a += 1`, and bare
// reads of `a` can all resolve the same atom differently depending on
// what surrounds it.
type AssignmentTarget struct {
	Kind  TargetKind
	Scope *Block
	Field ast.FieldIndex

	Object value.Value
	Name   string
}

// AsDeclaration converts a plain field reference into a declaration,
// the effect of a prefix `:` immediately before it (eval_val.rs's
// prefix impl: `(COLON, LocalFieldReference) -> LocalFieldDeclaration`).
// Any other kind is returned unchanged.
func (t *AssignmentTarget) AsDeclaration() *AssignmentTarget {
	if t.Kind != TargetLocalFieldReference {
		return t
	}
	return &AssignmentTarget{Kind: TargetLocalFieldDeclaration, Scope: t.Scope, Field: t.Field}
}

func (t *AssignmentTarget) Get() (value.Value, *comperr.Exception) {
	switch t.Kind {
	case TargetLocalFieldReference:
		return t.Scope.localGet(t.Field)
	case TargetLocalFieldDeclaration:
		return t.Scope.localDeclare(t.Field)
	case TargetObjectFieldReference:
		br, ok := t.Object.(value.BlockRef)
		if !ok {
			return nil, comperr.New(comperr.BadOperandType, comperr.NoLocation())
		}
		v, _, err := br.Block.Field(t.Name, true)
		if err != nil {
			return nil, asException(err)
		}
		return v, nil
	}
	panic("evaluator: unknown AssignmentTarget kind")
}

func (t *AssignmentTarget) Set(v value.Value) *comperr.Exception {
	switch t.Kind {
	case TargetLocalFieldReference, TargetLocalFieldDeclaration:
		return t.Scope.localSet(t.Field, v)
	case TargetObjectFieldReference:
		br, ok := t.Object.(value.BlockRef)
		if !ok {
			return comperr.New(comperr.BadOperandType, comperr.NoLocation())
		}
		if err := br.Block.SetField(t.Name, v); err != nil {
			return asException(err)
		}
		return nil
	}
	panic("evaluator: unknown AssignmentTarget kind")
}
