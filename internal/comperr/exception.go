package comperr

import "fmt"

// Exception is a located, structured error, generalizing the teacher's
// CompilerError to carry a Code, a located source position, and an
// optional chain of causes accumulated as it propagates outward through
// nested expressions (spec.md §7's "an exception carries the full chain
// of positions it passed through, innermost first").
type Exception struct {
	Code     Code
	Message  string
	Location Location
	Causes   []Exception
}

func New(code Code, loc Location) *Exception {
	return &Exception{Code: code, Message: code.Message(), Location: loc}
}

func Newf(code Code, loc Location, format string, args ...any) *Exception {
	return &Exception{Code: code, Message: fmt.Sprintf(format, args...), Location: loc}
}

// Error satisfies the standard error interface so Exception can flow
// through normal Go error-returning code outside the evaluator (I/O,
// CLI) as well as being carried as a Value inside it.
func (e *Exception) Error() string {
	return e.Message
}

// Reposition returns a copy of e relocated to a different expression,
// pushing the old location onto Causes. Used when an exception raised
// deep in an operand surfaces at an outer expression per the
// repositioning rule (spec.md §9).
func (e *Exception) Reposition(loc Location) *Exception {
	next := *e
	next.Location = loc
	next.Causes = append(append([]Exception(nil), e.Causes...), *e)
	return &next
}

// Delocalize strips an Exception down to the (code, message) pair that
// crosses the boundary into a Value, discarding the Go-side pointer
// identity. Spec.md §9 calls this "delocalization": a thrown Go error
// value is captured into a located Exception the moment it enters Berg
// evaluation, and from then on is carried purely as data.
func (e *Exception) Delocalize() Exception {
	return *e
}
