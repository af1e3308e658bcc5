package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cwbudde/go-berg/internal/ast"
	"github.com/cwbudde/go-berg/internal/berg"
)

var parseEvalExpr string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse Berg source and print the reconstructed expression tree",
	Long: `Run the full Sequencer/Tokenizer/Grouper/Binder pipeline and print
the resulting expression tree, indented by nesting depth, for
debugging the grouper and binder stages.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseEvalExpr, "eval", "e", "", "parse inline code instead of reading from a file")
}

func runParse(_ *cobra.Command, args []string) error {
	source, name, err := readInput(parseEvalExpr, args)
	if err != nil {
		return err
	}

	a, _, _ := berg.Parse(name, source, traceLogger())
	dumpExpression(a.Expr(0), 0)
	return nil
}

func dumpExpression(e ast.Expression, depth int) {
	indent := strings.Repeat("  ", depth)
	a := e.A
	tok := e.Token()

	if !tok.IsOperator {
		switch tok.Expr.Kind {
		case ast.ExprTerm:
			fmt.Printf("%s%s\n", indent, describeTerm(a, tok.Expr.Term))
		case ast.ExprPrefixOperator:
			fmt.Printf("%sprefix %s\n", indent, a.IdentifierName(tok.Expr.Operator))
			dumpExpression(e.RightExpression(), depth+1)
		case ast.ExprOpen:
			fmt.Printf("%sblock %s\n", indent, boundaryName(tok.Expr.OpenBoundary))
			dumpExpression(e.InnerExpression(), depth+1)
		}
		return
	}

	switch tok.Op.Kind {
	case ast.OpInfixOperator, ast.OpInfixAssignment, ast.OpInlineBlockDelimiter:
		fmt.Printf("%sinfix %s\n", indent, a.IdentifierName(tok.Op.Operator))
		dumpExpression(e.LeftExpression(), depth+1)
		dumpExpression(e.RightExpression(), depth+1)
	case ast.OpPostfixOperator:
		fmt.Printf("%spostfix %s\n", indent, a.IdentifierName(tok.Op.Operator))
		dumpExpression(e.LeftExpression(), depth+1)
	default:
		fmt.Printf("%s<close>\n", indent)
	}
}

func describeTerm(a *ast.Ast, t ast.TermToken) string {
	switch t.Kind {
	case ast.TermIntegerLiteral:
		return "integer " + a.Literals.String(t.Literal)
	case ast.TermFieldReference:
		return "field " + a.FieldName(t.Field)
	case ast.TermRawIdentifier:
		return "identifier " + a.IdentifierName(t.Identifier)
	case ast.TermErrorTerm:
		return "error-term " + a.Literals.String(t.Literal)
	case ast.TermRawErrorTerm:
		return "invalid-utf8"
	case ast.TermMissingExpression:
		return "<missing>"
	}
	return "?"
}

func boundaryName(b ast.Boundary) string {
	switch b {
	case ast.BoundaryRoot:
		return "root"
	case ast.BoundarySource:
		return "source"
	case ast.BoundaryCurlyBraces:
		return "curly-braces"
	case ast.BoundaryAutoBlock:
		return "auto-block"
	case ast.BoundaryIndentedBlock:
		return "indented-block"
	case ast.BoundaryIndentedExpression:
		return "indented-expression"
	case ast.BoundaryParentheses:
		return "parentheses"
	case ast.BoundaryCompoundTerm:
		return "compound-term"
	case ast.BoundaryPrecedenceGroup:
		return "precedence-group"
	}
	return "?"
}
