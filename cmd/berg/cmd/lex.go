package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/go-berg/internal/ast"
	"github.com/cwbudde/go-berg/internal/berg"
)

var lexEvalExpr string

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Berg file or expression and print the resulting tokens",
	Long: `Run the full Sequencer/Tokenizer/Grouper/Binder pipeline and print
the finished token buffer, one line per token, for debugging the
lexing stages.`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().StringVarP(&lexEvalExpr, "eval", "e", "", "tokenize inline code instead of reading from a file")
}

func lexScript(_ *cobra.Command, args []string) error {
	source, name, err := readInput(lexEvalExpr, args)
	if err != nil {
		return err
	}

	a, _, _ := berg.Parse(name, source, traceLogger())
	for i := ast.Index(0); i < a.NextIndex(); i++ {
		fmt.Println(describeToken(a, i))
	}
	return nil
}

// describeToken renders one token as "index: fixity text @start-end",
// used by both lex and parse for a readable one-liner.
func describeToken(a *ast.Ast, i ast.Index) string {
	r := a.Range(i)
	return fmt.Sprintf("%4d: %-9s %-10q @%d-%d", i, fixityName(a.Token(i).Fixity()), a.TokenText(i), r.Start, r.End)
}

func fixityName(f ast.Fixity) string {
	switch f {
	case ast.FixityTerm:
		return "term"
	case ast.FixityPrefix:
		return "prefix"
	case ast.FixityInfix:
		return "infix"
	case ast.FixityPostfix:
		return "postfix"
	case ast.FixityOpen:
		return "open"
	case ast.FixityClose:
		return "close"
	}
	return "?"
}
