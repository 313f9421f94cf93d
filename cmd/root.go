// File: cmd/root.go
package cmd

import (
	"context"
	"fmt"
	"os"

	"repodoc/pkg/combine"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// Flags holds the values bound to the root command's flags.
type Flags struct {
	Output     string
	PDF        bool
	Debug      bool
	Exclude    []string
	ConfigFile string
	Training   string
	Workers    int
}

var flags Flags

// RootCmd is the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "repodoc [paths...]",
	Short: "Export a repository as a single markdown document",
	Long: `repodoc walks one or more directories, skips dependency folders, binaries
and anything matched by exclusion patterns, and writes the remaining source
files as one markdown document: a directory tree followed by every file split
into its top-level declarations.

When stdout is redirected the markdown is streamed to stdout instead of the
output file.`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := zap.L()

		// Stream unless stdout is a terminal or an output file was requested.
		stream := !term.IsTerminal(int(os.Stdout.Fd())) && !cmd.Flags().Changed("output")

		err := combine.Export(cmd.Context(), combine.Arguments{
			Paths:          args,
			Output:         flags.Output,
			ConfigFile:     flags.ConfigFile,
			IgnorePatterns: flags.Exclude,
			PDF:            flags.PDF,
			Training:       flags.Training,
			MaxWorkers:     flags.Workers,
			Debug:          flags.Debug,
			Stream:         stream,
			Stdout:         cmd.OutOrStdout(),
		}, logger)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		return nil
	},
}

func init() {
	f := RootCmd.Flags()
	f.StringVarP(&flags.Output, "output", "o", combine.DefaultOutput, "Markdown output file")
	f.BoolVarP(&flags.PDF, "pdf", "p", false, "Also write a PDF next to the markdown output")
	f.StringArrayVarP(&flags.Exclude, "exclude", "e", nil, "Skip paths containing this substring (repeatable, taken verbatim)")
	f.StringVarP(&flags.ConfigFile, "config", "c", "", "Config file (default: repodoc.yml or repodoc.yaml in the working directory)")
	f.StringVarP(&flags.Training, "training", "t", "", "Write training samples as JSON to this file")
	f.IntVarP(&flags.Workers, "workers", "w", 0, "Number of extraction workers (default: number of CPUs)")
	RootCmd.PersistentFlags().BoolVar(&flags.Debug, "debug", false, "Log every path decision and enable development logging")
}

// Execute runs the root command; cancelling ctx stops an export in progress.
func Execute(ctx context.Context) error {
	return RootCmd.ExecuteContext(ctx)
}

// DebugRequested reports whether --debug appears in args. It lets main
// configure logging before cobra parses the command line.
func DebugRequested(args []string) bool {
	for _, a := range args {
		if a == "--debug" || a == "--debug=true" {
			return true
		}
		if a == "--" {
			return false
		}
	}
	return false
}
