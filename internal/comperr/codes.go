// Package comperr defines Berg's stable error-code taxonomy (spec.md
// §6.3), the located-error model (§7), and host-facing diagnostic
// formatting (§6.4), generalizing the teacher's own
// internal/errors/errors.go CompilerError.Format.
package comperr

// Code is a stable, numeric error identifier exposed at the evaluation
// boundary (spec.md §6.3). Numbering follows the original berg-lang/berg
// CompilerErrorCode table (berg-compiler/src/value/compiler_error.rs)
// exactly, grouped by the kind taxonomy in spec.md §7.
type Code int

const (
	// Source errors (I/O, too large).
	SourceNotFound Code = 101 + iota
	IoOpenError
	IoReadError
	CurrentDirectoryError
	SourceTooLarge
)

const (
	// Format errors (tokenizer).
	InvalidUtf8 Code = 201 + iota
	UnsupportedCharacters
	IdentifierStartsWithNumber
)

const (
	// Structural errors (parser).
	MissingOperand Code = 301 + iota
	AssignmentTargetMustBeIdentifier
	RightSideOfDotMustBeIdentifier
	OpenWithoutClose
	CloseWithoutOpen
	IfWithoutCondition
	IfWithoutBlock
	IfBlockMustBeBlock
	ElseBlockMustBeBlock
	ElseWithoutBlock
	ElseWithoutIf
	IfFollowedByNonElse
	WhileWithoutCondition
	WhileWithoutBlock
	WhileConditionMustBeBlock
	WhileBlockMustBeBlock
	ForeachWithoutInput
	ForeachWithoutBlock
	ForeachBlockMustBeBlock
	TryWithoutBlock
	TryBlockMustBeBlock
	TryWithoutCatchOrFinally
	CatchWithoutBlock
	CatchBlockMustBeBlock
	CatchWithoutResult
	CatchWithoutFinally
	FinallyWithoutBlock
	FinallyBlockMustBeBlock
	FinallyWithoutResult
	ThrowWithoutException
)

const (
	// Type errors (checker/evaluator).
	UnsupportedOperator Code = 1001 + iota
	DivideByZero
	BadOperandType
	NoSuchField
	NoSuchPublicField
	FieldNotSet
	CircularDependency
	PrivateField
	ImmutableField
	BreakOutsideLoop
	ContinueOutsideLoop
)

var names = map[Code]string{
	SourceNotFound:        "SourceNotFound",
	IoOpenError:           "IoOpenError",
	IoReadError:           "IoReadError",
	CurrentDirectoryError: "CurrentDirectoryError",
	SourceTooLarge:        "SourceTooLarge",

	InvalidUtf8:                "InvalidUtf8",
	UnsupportedCharacters:      "UnsupportedCharacters",
	IdentifierStartsWithNumber: "IdentifierStartsWithNumber",

	MissingOperand:                   "MissingOperand",
	AssignmentTargetMustBeIdentifier: "AssignmentTargetMustBeIdentifier",
	RightSideOfDotMustBeIdentifier:   "RightSideOfDotMustBeIdentifier",
	OpenWithoutClose:                 "OpenWithoutClose",
	CloseWithoutOpen:                 "CloseWithoutOpen",
	IfWithoutCondition:               "IfWithoutCondition",
	IfWithoutBlock:                   "IfWithoutBlock",
	IfBlockMustBeBlock:               "IfBlockMustBeBlock",
	ElseBlockMustBeBlock:             "ElseBlockMustBeBlock",
	ElseWithoutBlock:                 "ElseWithoutBlock",
	ElseWithoutIf:                    "ElseWithoutIf",
	IfFollowedByNonElse:              "IfFollowedByNonElse",
	WhileWithoutCondition:            "WhileWithoutCondition",
	WhileWithoutBlock:                "WhileWithoutBlock",
	WhileConditionMustBeBlock:        "WhileConditionMustBeBlock",
	WhileBlockMustBeBlock:            "WhileBlockMustBeBlock",
	ForeachWithoutInput:              "ForeachWithoutInput",
	ForeachWithoutBlock:              "ForeachWithoutBlock",
	ForeachBlockMustBeBlock:          "ForeachBlockMustBeBlock",
	TryWithoutBlock:                  "TryWithoutBlock",
	TryBlockMustBeBlock:              "TryBlockMustBeBlock",
	TryWithoutCatchOrFinally:         "TryWithoutCatchOrFinally",
	CatchWithoutBlock:                "CatchWithoutBlock",
	CatchBlockMustBeBlock:            "CatchBlockMustBeBlock",
	CatchWithoutResult:               "CatchWithoutResult",
	CatchWithoutFinally:              "CatchWithoutFinally",
	FinallyWithoutBlock:              "FinallyWithoutBlock",
	FinallyBlockMustBeBlock:          "FinallyBlockMustBeBlock",
	FinallyWithoutResult:             "FinallyWithoutResult",
	ThrowWithoutException:            "ThrowWithoutException",

	UnsupportedOperator: "UnsupportedOperator",
	DivideByZero:        "DivideByZero",
	BadOperandType:      "BadOperandType",
	NoSuchField:         "NoSuchField",
	NoSuchPublicField:   "NoSuchPublicField",
	FieldNotSet:         "FieldNotSet",
	CircularDependency:  "CircularDependency",
	PrivateField:        "PrivateField",
	ImmutableField:      "ImmutableField",
	BreakOutsideLoop:    "BreakOutsideLoop",
	ContinueOutsideLoop: "ContinueOutsideLoop",
}

func (c Code) String() string {
	if s, ok := names[c]; ok {
		return s
	}
	return "UnknownError"
}

// RootErrorCodeNames lists every code name in declaration order, used
// by internal/berg to populate the root scope's immutable error-code
// fields per spec.md §6.2.
var RootErrorCodeNames = []struct {
	Name string
	Code Code
}{
	{"SourceNotFound", SourceNotFound},
	{"IoOpenError", IoOpenError},
	{"IoReadError", IoReadError},
	{"CurrentDirectoryError", CurrentDirectoryError},
	{"SourceTooLarge", SourceTooLarge},
	{"InvalidUtf8", InvalidUtf8},
	{"UnsupportedCharacters", UnsupportedCharacters},
	{"IdentifierStartsWithNumber", IdentifierStartsWithNumber},
	{"MissingOperand", MissingOperand},
	{"AssignmentTargetMustBeIdentifier", AssignmentTargetMustBeIdentifier},
	{"RightSideOfDotMustBeIdentifier", RightSideOfDotMustBeIdentifier},
	{"OpenWithoutClose", OpenWithoutClose},
	{"CloseWithoutOpen", CloseWithoutOpen},
	{"IfWithoutCondition", IfWithoutCondition},
	{"IfWithoutBlock", IfWithoutBlock},
	{"IfBlockMustBeBlock", IfBlockMustBeBlock},
	{"ElseBlockMustBeBlock", ElseBlockMustBeBlock},
	{"ElseWithoutBlock", ElseWithoutBlock},
	{"ElseWithoutIf", ElseWithoutIf},
	{"IfFollowedByNonElse", IfFollowedByNonElse},
	{"WhileWithoutCondition", WhileWithoutCondition},
	{"WhileWithoutBlock", WhileWithoutBlock},
	{"WhileConditionMustBeBlock", WhileConditionMustBeBlock},
	{"WhileBlockMustBeBlock", WhileBlockMustBeBlock},
	{"ForeachWithoutInput", ForeachWithoutInput},
	{"ForeachWithoutBlock", ForeachWithoutBlock},
	{"ForeachBlockMustBeBlock", ForeachBlockMustBeBlock},
	{"TryWithoutBlock", TryWithoutBlock},
	{"TryBlockMustBeBlock", TryBlockMustBeBlock},
	{"TryWithoutCatchOrFinally", TryWithoutCatchOrFinally},
	{"CatchWithoutBlock", CatchWithoutBlock},
	{"CatchBlockMustBeBlock", CatchBlockMustBeBlock},
	{"CatchWithoutResult", CatchWithoutResult},
	{"CatchWithoutFinally", CatchWithoutFinally},
	{"FinallyWithoutBlock", FinallyWithoutBlock},
	{"FinallyBlockMustBeBlock", FinallyBlockMustBeBlock},
	{"FinallyWithoutResult", FinallyWithoutResult},
	{"ThrowWithoutException", ThrowWithoutException},
	{"UnsupportedOperator", UnsupportedOperator},
	{"DivideByZero", DivideByZero},
	{"BadOperandType", BadOperandType},
	{"NoSuchField", NoSuchField},
	{"NoSuchPublicField", NoSuchPublicField},
	{"FieldNotSet", FieldNotSet},
	{"CircularDependency", CircularDependency},
	{"PrivateField", PrivateField},
	{"ImmutableField", ImmutableField},
	{"BreakOutsideLoop", BreakOutsideLoop},
	{"ContinueOutsideLoop", ContinueOutsideLoop},
}

// Message returns a short human-readable message for a code, used as
// the default Exception.Error() text when no more specific message was
// supplied.
func (c Code) Message() string {
	switch c {
	case MissingOperand:
		return "expected an expression here"
	case OpenWithoutClose:
		return "this bracket is never closed"
	case CloseWithoutOpen:
		return "this bracket has no matching open"
	case DivideByZero:
		return "division by zero"
	case BadOperandType:
		return "operand has the wrong type for this operator"
	case NoSuchField:
		return "no such field"
	case FieldNotSet:
		return "field has not been assigned a value yet"
	case CircularDependency:
		return "circular dependency: this block is already being evaluated"
	case ImmutableField:
		return "this field cannot be assigned"
	case BreakOutsideLoop:
		return "break used outside of a loop"
	case ContinueOutsideLoop:
		return "continue used outside of a loop"
	default:
		return c.String()
	}
}
