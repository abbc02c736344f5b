package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"hilite/internal/diag"
	"hilite/internal/diagfmt"
	"hilite/internal/registry"
	"hilite/internal/version"
)

func newCheckCmd() *cobra.Command {
	checkCmd := &cobra.Command{
		Use:   "check [flags] [file|dir...]",
		Short: "Validate definition files",
		Long: `Check decodes and compiles definition files the way the registry
would and reports every diagnostic. Without arguments the configured
definition directories are checked. Exits non-zero when an error is found`,
		RunE: runCheck,
	}
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json|sarif)")
	checkCmd.Flags().Bool("warnings", true, "report warnings too")
	checkCmd.Flags().String("fail-on", "error", "lowest severity that fails the check (error|warning)")
	return checkCmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	s := sessionFrom(cmd.Context())
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format = strings.ToLower(format)
	switch format {
	case "pretty", "json", "sarif":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	warnings, err := cmd.Flags().GetBool("warnings")
	if err != nil {
		return fmt.Errorf("failed to get warnings flag: %w", err)
	}
	failOnValue, err := cmd.Flags().GetString("fail-on")
	if err != nil {
		return fmt.Errorf("failed to get fail-on flag: %w", err)
	}
	failOn, err := diag.ParseSeverity(failOnValue)
	if err != nil {
		return fmt.Errorf("invalid --fail-on: %w", err)
	}

	targets := args
	if len(targets) == 0 {
		extra, err := cmd.Root().PersistentFlags().GetStringArray("defs")
		if err != nil {
			return fmt.Errorf("failed to get defs flag: %w", err)
		}
		targets = append(append(targets, s.cfg.Definitions.Dirs...), extra...)
	}
	if len(targets) == 0 {
		return fmt.Errorf("nothing to check: pass files or directories, or configure [definitions].dirs")
	}

	// свежий реестр: файлы проверяются так же, как при обычной загрузке
	reg, err := registry.NewWithBuiltins(registry.WithTracer(s.tracer))
	if err != nil {
		return fmt.Errorf("loading built-in definitions: %w", err)
	}

	done := s.timer.Track("check")
	bag := diag.NewBag(0)
	files := 0
	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			done("")
			return err
		}
		var ids []string
		if info.IsDir() {
			ids, err = reg.LoadDir(cmd.Context(), target, s.cfg.Definitions.Jobs)
		} else {
			ids, err = reg.LoadFile(target)
			files++
		}
		if err != nil {
			defErrs := registry.DefinitionErrors(err)
			if len(defErrs) == 0 {
				done("")
				return err
			}
			for _, de := range defErrs {
				for _, d := range de.Diagnostics {
					bag.Add(d)
				}
			}
		}
		if !warnings {
			continue
		}
		for _, id := range ids {
			if def, ok := reg.Get(id); ok {
				for _, d := range def.Warnings() {
					bag.Add(d)
				}
			}
		}
	}
	bag.Sort()
	bag.Dedup()
	done(fmt.Sprintf("%d diagnostics", bag.Len()))

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	out := cmd.OutOrStdout()
	switch format {
	case "json":
		err = diagfmt.JSON(out, bag.Items(), diagfmt.JSONOpts{
			PathMode:     diagfmt.PathModeRelative,
			Max:          maxDiagnostics,
			IncludeNotes: true,
		})
	case "sarif":
		err = diagfmt.Sarif(out, bag.Items(), diagfmt.SarifRunMeta{
			ToolName:       "hilite",
			ToolVersion:    version.Version,
			InvocationArgs: append([]string{"check"}, args...),
		})
	default:
		if bag.Len() == 0 {
			fmt.Fprintln(out, "no problems found")
			break
		}
		err = printDiagnostics(cmd, out, bag.Items())
	}
	if err != nil {
		return err
	}
	if bag.HasErrors() {
		return fmt.Errorf("%d definition errors", len(bag.Errors()))
	}
	if failOn <= diag.SevWarning && bag.HasWarnings() {
		return fmt.Errorf("definitions have warnings (--fail-on %s)", strings.ToLower(failOnValue))
	}
	return nil
}
