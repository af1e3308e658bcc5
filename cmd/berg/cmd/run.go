package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/go-berg/internal/berg"
)

var evalExpr string

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Berg file or expression",
	Long: `Execute a Berg program from a file or inline expression, printing
the final value or a located error.

Examples:
  berg run script.berg
  berg run -e "1 + 2"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from a file")
}

func runScript(_ *cobra.Command, args []string) error {
	source, name, err := readInput(evalExpr, args)
	if err != nil {
		return err
	}

	_, v, cerr := berg.Eval(name, source, traceLogger())
	if cerr != nil {
		fmt.Fprint(os.Stderr, cerr.Format(true))
		fmt.Fprintln(os.Stderr)
		return fmt.Errorf("evaluation failed")
	}

	fmt.Println(v.String())
	return nil
}

// readInput resolves the "-e expr, or a file path, or neither is an
// error" input convention shared by run/lex/parse.
func readInput(evalExpr string, args []string) (source []byte, name string, err error) {
	if evalExpr != "" {
		return []byte(evalExpr), "<eval>", nil
	}
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return data, args[0], nil
	}
	return nil, "", fmt.Errorf("either provide a file path or use -e for inline code")
}
