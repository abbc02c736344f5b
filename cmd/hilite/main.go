package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"hilite/internal/version"
)

// newRootCmd assembles the command tree. A fresh tree per invocation keeps
// flag state out of package globals.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hilite",
		Short: "Declarative syntax highlighting and completion",
		Long: `hilite tokenizes, highlights and completes text using language
definitions written as data (TOML, JSON, YAML or msgpack bundles)`,
		Version:           version.Version,
		SilenceUsage:      true,
		PersistentPreRunE: openSession,
	}

	rootCmd.AddCommand(newTokenizeCmd())
	rootCmd.AddCommand(newHighlightCmd())
	rootCmd.AddCommand(newCompleteCmd())
	rootCmd.AddCommand(newLangsCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newPackCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newLSPCmd())
	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newVersionCmd())

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.String("config", "", "path to hilite.toml (default: search upwards from the working directory)")
	pf.StringArray("defs", nil, "extra directory of definition files (repeatable)")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	pf.String("trace", "", "trace output file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage mode (stream|ring)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.Int("trace-ring-size", 4096, "ring buffer size for --trace-mode=ring")
	pf.String("cpu-profile", "", "write a CPU profile to file")
	pf.String("mem-profile", "", "write a heap profile to file on exit")
	pf.String("runtime-trace", "", "write a Go runtime trace to file")

	return rootCmd
}

// main runs the CLI and exits with status 1 when the command fails.
func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	if s := sessionFrom(rootCmd.Context()); s != nil {
		s.close(stderr)
	}
	if err != nil {
		return 1
	}
	return 0
}

// isTerminal проверяет, является ли writer терминалом
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
