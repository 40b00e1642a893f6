// Command structura compiles .struct programs to JavaScript.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"structura/internal/version"
)

// errReported means diagnostics were already printed; main only sets the
// exit status.
var errReported = errors.New("compilation failed")

// finish flushes the tracer and profiles opened for the running command.
var finish = func() {}

// newRootCmd wires every subcommand and the persistent flags.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "structura",
		Short:         "Structura compiler and toolchain",
		Long:          `Structura compiles typed .struct programs into JavaScript backed by a small runtime library`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			closeTrace, err := setupTracing(cmd)
			if err != nil {
				return err
			}
			stopProfiles, err := setupProfiling(cmd)
			if err != nil {
				closeTrace()
				return err
			}
			finish = func() {
				stopProfiles()
				closeTrace()
			}
			return nil
		},
	}

	root.AddCommand(
		newTokenizeCmd(),
		newParseCmd(),
		newCheckCmd(),
		newIRCmd(),
		newTACCmd(),
		newBuildCmd(),
		newRunCmd(),
		newServeCmd(),
		newReplCmd(),
		newInitCmd(),
		newCleanCmd(),
		newVersionCmd(),
	)

	// Глобальные флаги
	pf := root.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.String("config", "", "path to structura.toml (default: search upwards)")
	pf.String("trace", "", "trace output file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.String("cpu-profile", "", "write a CPU profile to this file")
	pf.String("mem-profile", "", "write a heap profile to this file on exit")
	return root
}

func main() {
	err := newRootCmd().Execute()
	finish()
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
