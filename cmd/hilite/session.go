package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"hilite/internal/config"
	"hilite/internal/diag"
	"hilite/internal/diagfmt"
	"hilite/internal/observ"
	"hilite/internal/registry"
	"hilite/internal/trace"
)

// session is the per-invocation state shared by the subcommands: project
// config, tracer, phase timer and the lazily built registry.
type session struct {
	cfg     config.Config
	tracer  trace.Tracer
	timer   *observ.Timer // nil without --timings
	cleanup func()
	reg     *registry.Registry
}

type sessionKey struct{}

func sessionFrom(ctx context.Context) *session {
	if ctx == nil {
		return nil
	}
	s, _ := ctx.Value(sessionKey{}).(*session)
	return s
}

// openSession runs before every subcommand.
func openSession(cmd *cobra.Command, _ []string) error {
	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	stopTracing, err := setupTracing(cmd)
	if err != nil {
		stopProfiling()
		return err
	}
	s := &session{
		tracer: trace.FromContext(cmd.Context()),
		cleanup: func() {
			stopTracing()
			stopProfiling()
		},
	}
	ctx := context.WithValue(cmd.Context(), sessionKey{}, s)
	cmd.SetContext(ctx)
	cmd.Root().SetContext(ctx)

	timings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	if timings {
		s.timer = observ.NewTimer()
	}

	done := s.timer.Track("config")
	s.cfg, err = loadConfig(cmd)
	done(s.cfg.Path)
	return err
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		return config.Load(path)
	}
	cfg, _, err := config.Discover(".")
	return cfg, err
}

// registry builds the definition registry on first use: built-ins, then
// every directory from [definitions].dirs and --defs. Broken definition
// files are reported on stderr and skipped.
func (s *session) registry(cmd *cobra.Command) (*registry.Registry, error) {
	if s.reg != nil {
		return s.reg, nil
	}
	opts := []registry.Option{
		registry.WithTracer(s.tracer),
		registry.WithFileTypes(s.cfg.FileTypes),
	}
	if s.cfg.Fallback != "" {
		opts = append(opts, registry.WithFallback(s.cfg.Fallback))
	}
	if s.cfg.Completion.MaxLookback > 0 {
		opts = append(opts, registry.WithMaxLookback(s.cfg.Completion.MaxLookback))
	}

	done := s.timer.Track("registry")
	reg, err := registry.NewWithBuiltins(opts...)
	if err != nil {
		done("builtins failed")
		return nil, fmt.Errorf("loading built-in definitions: %w", err)
	}

	extra, err := cmd.Root().PersistentFlags().GetStringArray("defs")
	if err != nil {
		done("")
		return nil, fmt.Errorf("failed to get defs flag: %w", err)
	}
	dirs := append(append([]string(nil), s.cfg.Definitions.Dirs...), extra...)
	for _, dir := range dirs {
		_, err := reg.LoadDir(cmd.Context(), dir, s.cfg.Definitions.Jobs)
		if err == nil {
			continue
		}
		defErrs := registry.DefinitionErrors(err)
		if len(defErrs) == 0 {
			done("load failed")
			return nil, err
		}
		var diags []diag.Diagnostic
		for _, de := range defErrs {
			diags = append(diags, de.Diagnostics...)
		}
		if err := printDiagnostics(cmd, cmd.ErrOrStderr(), diags); err != nil {
			done("")
			return nil, err
		}
	}
	done(fmt.Sprintf("%d definitions", reg.Len()))
	s.reg = reg
	return reg, nil
}

// close prints timings and flushes the tracer.
func (s *session) close(stderr io.Writer) {
	if s.timer != nil {
		printTimings(stderr, s.timer)
	}
	if s.cleanup != nil {
		s.cleanup()
	}
}

// useColor resolves --color for the given writer.
func useColor(cmd *cobra.Command, w io.Writer) bool {
	mode, _ := cmd.Root().PersistentFlags().GetString("color")
	switch strings.ToLower(mode) {
	case "on", "always":
		return true
	case "off", "never":
		return false
	default:
		return isTerminal(w)
	}
}

func printDiagnostics(cmd *cobra.Command, w io.Writer, diags []diag.Diagnostic) error {
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	bag := diag.NewBag(0)
	for _, d := range diags {
		bag.Add(d)
	}
	bag.Sort()
	return diagfmt.Pretty(w, bag.Items(), diagfmt.PrettyOpts{
		Color:     useColor(cmd, w),
		PathMode:  diagfmt.PathModeRelative,
		ShowNotes: true,
		Max:       maxDiagnostics,
	})
}

// readInput returns the named file, or stdin for "" and "-".
func readInput(cmd *cobra.Command, path string) (name string, data []byte, err error) {
	if path == "" || path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", nil, fmt.Errorf("reading stdin: %w", err)
		}
		return "<stdin>", data, nil
	}
	data, err = os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	return path, data, nil
}
