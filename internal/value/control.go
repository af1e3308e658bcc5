package value

// KeywordKind names one of Berg's control-flow keywords. Unlike other
// languages, `if`/`while`/`foreach`/`try`/`catch`/`finally`/`throw`/
// `break`/`continue` are not syntax — they are ordinary field
// references that happen to resolve (via the root scope) to one of
// these sentinel values, and FOLLOWED_BY between them drives the state
// machine spec.md §4.5.3 describes. Grounded on eval_val.rs's
// `EvalVal::{If,Else,While,Foreach,Try,Catch,Finally,Throw}` variants,
// generalized with Break/Continue (eval_val.rs models those purely as
// comperr codes raised by a block body, with no corresponding keyword
// value of their own — here they get one too, for symmetry with the
// rest of the table and because the root scope already has a slot for
// every predeclared name).
type KeywordKind int

const (
	KeywordIf KeywordKind = iota
	KeywordElse
	KeywordWhile
	KeywordForeach
	KeywordTry
	KeywordCatch
	KeywordFinally
	KeywordThrow
	KeywordBreak
	KeywordContinue
)

var keywordNames = map[KeywordKind]string{
	KeywordIf: "if", KeywordElse: "else", KeywordWhile: "while",
	KeywordForeach: "foreach", KeywordTry: "try", KeywordCatch: "catch",
	KeywordFinally: "finally", KeywordThrow: "throw",
	KeywordBreak: "break", KeywordContinue: "continue",
}

// Keyword is the value a control-flow keyword field evaluates to
// before anything has been applied to it yet (bare `if`, bare
// `while`, ...).
type Keyword struct {
	Kind KeywordKind
}

func (Keyword) Type() string { return "KEYWORD" }

func (k Keyword) String() string { return keywordNames[k.Kind] }

// ConditionalState tracks how far an if/else chain has progressed.
// Ported from eval_val.rs's ConditionalState.
type ConditionalState int

const (
	CondIfCondition ConditionalState = iota
	CondRunBlock
	CondIgnoreBlock
	CondElseBlock
	CondMaybeElse
)

// Outcome is a value-or-located-exception pair, Go's stand-in for
// Rust's `BergResult<'a> = Result<BergVal, ControlVal>` wherever a
// control-flow value needs to carry one as data (not as a Go error
// return) because it is itself waiting on a later token to decide
// what to do with it — e.g. `try { ... }` must hold onto its result
// until it sees whether `catch` follows.
type Outcome struct {
	Val Value
	Err error
}

func Ok(v Value) Outcome  { return Outcome{Val: v} }
func Failed(err error) Outcome { return Outcome{Err: err} }

func (o Outcome) IsError() bool { return o.Err != nil }

// ControlFlow is the carrier for every other EvalVal control-flow
// variant from eval_val.rs: `ConditionalVal`, `WhileCondition`,
// `ForeachInput`, `TryResult`, `TryCatch`, `CatchResult`,
// `TryFinally`. Only the fields relevant to Stage are meaningful,
// mirroring the payload each Rust variant actually carries.
type ControlFlow struct {
	Stage ControlStage

	Cond    ConditionalState // Stage == ControlConditional
	Carried Value            // Stage == ControlConditional: the already-decided winning branch value, nil if none yet

	Condition *BlockRef // Stage == ControlWhileCondition

	Result Outcome // Stage == ControlForeachInput / TryResult / TryCatch / CatchResult / TryFinally
}

type ControlStage int

const (
	ControlConditional ControlStage = iota
	ControlWhileCondition
	ControlForeachInput
	ControlTryResult
	ControlTryCatch
	ControlCatchResult
	ControlTryFinally
)

func (ControlFlow) Type() string { return "CONTROL" }

func (c ControlFlow) String() string { return "<control>" }
