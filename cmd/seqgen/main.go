package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"seqgen/internal/version"
)

// errDiagnostics signals that errors were already printed as diagnostics.
var errDiagnostics = errors.New("seqgen: errors reported")

// session holds what outlives a single command run.
type session struct {
	cleanup []func()
	// failed is set before close when the command returned an error.
	failed bool
}

func (s *session) finish(err error) {
	s.failed = err != nil
	s.close()
}

func (s *session) close() {
	// в обратном порядке: профилировщик останавливается последним
	for i := len(s.cleanup) - 1; i >= 0; i-- {
		s.cleanup[i]()
	}
	s.cleanup = nil
}

func newRootCmd(s *session) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "seqgen",
		Short: "Expand seq! and derive! templates into Go source",
		Long: `seqgen expands seq!(N in 0..4 { ... }) repetition macros and
derive!(Builder, Debug) annotations in *.go.seq templates into plain Go files`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			stopProf, err := setupProfiling(cmd)
			if err != nil {
				return err
			}
			s.cleanup = append(s.cleanup, stopProf)
			stopTrace, err := setupTracing(cmd, s)
			if err != nil {
				return err
			}
			s.cleanup = append(s.cleanup, stopTrace)
			return nil
		},
	}

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	pf.String("trace", "", "trace output file (- for stderr, *.ndjson for NDJSON)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage mode (stream|ring|both); ring is dumped only when the command fails")
	pf.Int("trace-ring-size", 4096, "number of events kept in ring mode")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson); auto picks ndjson for *.ndjson and *.jsonl")
	pf.String("config", "", "path to seqgen.toml (default: search upwards from the working directory)")
	pf.String("cpu-profile", "", "write a CPU profile to this file")
	pf.String("mem-profile", "", "write a heap profile to this file on exit")
	pf.String("runtime-trace", "", "write a Go runtime trace to this file")

	rootCmd.AddCommand(
		newTokenizeCmd(),
		newExpandCmd(),
		newCheckCmd(),
		newGenerateCmd(),
		newCleanCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

func main() {
	s := &session{}
	err := newRootCmd(s).Execute()
	s.finish(err)
	if err != nil {
		if !errors.Is(err, errDiagnostics) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
