package comperr

import (
	"fmt"
	"strings"

	"github.com/cwbudde/go-berg/internal/ast"
)

// Format renders an Exception as a human-readable diagnostic with
// source context and a caret pointing at the offending byte range,
// directly in the style of the teacher's CompilerError.Format(color
// bool): a header line, the source line, a caret line, then the
// message. Where the teacher locates by line/column computed from a
// lexer.Position, Format derives line/column on demand from the
// located ast.Expression's byte range via ast.CharData.LineColumn.
func (e *Exception) Format(color bool) string {
	var sb strings.Builder

	switch e.Location.Kind {
	case LocationNone:
		sb.WriteString(fmt.Sprintf("Error %d: %s\n", e.Code, e.Message))
		return sb.String()

	case LocationSource:
		sb.WriteString(fmt.Sprintf("Error %d in %s\n", e.Code, e.Location.SourceName))
		writeMessage(&sb, e.Message, color)
		return sb.String()

	case LocationExpression:
		expr := e.Location.Expr
		a := expr.A
		r := expr.ByteRange()
		line, col := a.Char.LineColumn(r.Start)

		sb.WriteString(fmt.Sprintf("Error %d in %s:%d:%d\n", e.Code, a.SourceName, line, col))

		src := sourceLine(a.Source, line)
		if src != "" {
			lineNumStr := fmt.Sprintf("%4d | ", line)
			sb.WriteString(lineNumStr)
			sb.WriteString(src)
			sb.WriteString("\n")

			caretLen := caretWidth(a, r)
			sb.WriteString(strings.Repeat(" ", len(lineNumStr)+col-1))
			if color {
				sb.WriteString("\033[1;31m")
			}
			sb.WriteString(strings.Repeat("^", caretLen))
			if color {
				sb.WriteString("\033[0m")
			}
			sb.WriteString("\n")
		}

		writeMessage(&sb, e.Message, color)

		for i := len(e.Causes) - 1; i >= 0; i-- {
			sb.WriteString("\n  while evaluating:\n  ")
			cause := e.Causes[i]
			sb.WriteString(cause.Format(color))
		}
		return sb.String()
	}
	return e.Message
}

func writeMessage(sb *strings.Builder, msg string, color bool) {
	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(msg)
	if color {
		sb.WriteString("\033[0m")
	}
}

func sourceLine(source []byte, line int) string {
	lines := strings.Split(string(source), "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// caretWidth bounds the caret run to the error's span within its source
// line, so a multi-line expression only underlines the first line.
func caretWidth(a *ast.Ast, r ast.ByteRange) int {
	n := int(r.End - r.Start)
	if n < 1 {
		return 1
	}
	for i := r.Start; i < r.End; i++ {
		if a.Source[i] == '\n' {
			return int(i - r.Start)
		}
	}
	return n
}

// FormatAll renders multiple exceptions, mirroring the teacher's
// FormatErrors for multi-error batches. No CLI subcommand calls it: lex
// and parse print the token buffer and tree without collecting errors.
func FormatAll(excs []*Exception, color bool) string {
	if len(excs) == 0 {
		return ""
	}
	if len(excs) == 1 {
		return excs[0].Format(color)
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d error(s):\n\n", len(excs)))
	for i, e := range excs {
		sb.WriteString(fmt.Sprintf("[Error %d of %d]\n", i+1, len(excs)))
		sb.WriteString(e.Format(color))
		if i < len(excs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
