package value

import "github.com/cwbudde/go-berg/internal/comperr"

// CompilerError is the value-space wrapper around a located
// comperr.Exception: the moment a Go-side error crosses into evaluation
// it is "delocalized" into data the program can catch, inspect, and
// rethrow. Ported from compiler_error.rs's CompilerError.
type CompilerError struct {
	Err *comperr.Exception
}

func NewCompilerError(err *comperr.Exception) CompilerError { return CompilerError{Err: err} }

func (CompilerError) Type() string { return "ERROR" }

func (c CompilerError) String() string { return c.Err.Error() }

// CaughtException wraps a CompilerError that a catch block has taken
// hold of; it behaves like any other value until something asks to
// rethrow it. Ported from exception.rs's CaughtException, which exists
// only to distinguish "still propagating" from "caught and now just
// data" at the type level.
type CaughtException struct {
	CompilerError
}

func NewCaughtException(err *comperr.Exception) CaughtException {
	return CaughtException{CompilerError: NewCompilerError(err)}
}

func (CaughtException) Type() string { return "CAUGHT_EXCEPTION" }
