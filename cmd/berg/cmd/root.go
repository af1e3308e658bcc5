package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "berg",
	Short: "Berg language interpreter",
	Long: `berg is a tree-walking interpreter for Berg, a small dynamic
language built entirely from ambiguous-syntax resolution: if/while/
foreach/try/catch/finally are ordinary identifiers that happen to
resolve to control-flow values, and a single FOLLOWED_BY operator
drives the resulting state machine.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "trace the parsing pipeline to stderr")
}

// traceLogger returns a logrus logger writing Debug-level pipeline
// traces to stderr when --verbose is set, or nil otherwise —
// internal/berg treats a nil logger as "don't trace".
func traceLogger() logrus.FieldLogger {
	if !verbose {
		return nil
	}
	log := logrus.New()
	log.SetLevel(logrus.DebugLevel)
	return log
}
