package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hilite/internal/langdef"
	"hilite/internal/registry"
)

func newPackCmd() *cobra.Command {
	packCmd := &cobra.Command{
		Use:   "pack [flags] [file|dir...]",
		Short: "Bundle definitions into one msgpack file",
		Long: `Pack validates definition files and writes them as a single msgpack
bundle that LoadDir and --defs accept like any other definition file`,
		RunE: runPack,
	}
	packCmd.Flags().StringP("output", "o", "", "bundle path (default: stdout)")
	packCmd.Flags().Bool("builtins", false, "include the built-in definitions")
	return packCmd
}

func runPack(cmd *cobra.Command, args []string) error {
	s := sessionFrom(cmd.Context())
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	builtins, err := cmd.Flags().GetBool("builtins")
	if err != nil {
		return fmt.Errorf("failed to get builtins flag: %w", err)
	}
	if len(args) == 0 && !builtins {
		return fmt.Errorf("nothing to pack: pass definition files or --builtins")
	}
	if output == "" && isTerminal(cmd.OutOrStdout()) {
		return fmt.Errorf("refusing to write a binary bundle to a terminal (use -o)")
	}

	done := s.timer.Track("pack")
	reg := registry.New(registry.WithTracer(s.tracer))
	if builtins {
		if err := reg.LoadBuiltins(); err != nil {
			done("")
			return fmt.Errorf("loading built-in definitions: %w", err)
		}
	}
	for _, target := range args {
		info, err := os.Stat(target)
		if err != nil {
			done("")
			return err
		}
		if info.IsDir() {
			_, err = reg.LoadDir(cmd.Context(), target, s.cfg.Definitions.Jobs)
		} else {
			_, err = reg.LoadFile(target)
		}
		if err != nil {
			done("")
			return err
		}
	}

	specs := make([]langdef.Spec, 0, reg.Len())
	for _, id := range reg.IDs() {
		specs = append(specs, reg.MustGet(id).Spec())
	}

	if output == "" {
		if err := langdef.EncodeBundle(cmd.OutOrStdout(), specs); err != nil {
			done("")
			return fmt.Errorf("encoding bundle: %w", err)
		}
		done(fmt.Sprintf("%d definitions", len(specs)))
		return nil
	}
	if err := writeBundle(output, specs); err != nil {
		done("")
		return err
	}
	done(fmt.Sprintf("%d definitions", len(specs)))
	fmt.Fprintf(cmd.ErrOrStderr(), "packed %d definitions into %s\n", len(specs), output)
	return nil
}

func writeBundle(path string, specs []langdef.Spec) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := langdef.EncodeBundle(w, specs); err != nil {
		_ = f.Close()
		return fmt.Errorf("encoding bundle: %w", err)
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
