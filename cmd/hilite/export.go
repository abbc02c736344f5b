package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hilite/internal/langdef"
)

func newExportCmd() *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export [flags] id",
		Short: "Print a registered definition as a definition file",
		Long: `Export writes the payload of a registered definition, built-in or
loaded, so it can be copied and edited`,
		Args: cobra.ExactArgs(1),
		RunE: runExport,
	}
	exportCmd.Flags().String("format", "toml", "payload format (toml|json|yaml)")
	return exportCmd
}

func runExport(cmd *cobra.Command, args []string) error {
	reg, err := sessionFrom(cmd.Context()).registry(cmd)
	if err != nil {
		return err
	}
	formatStr, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := langdef.ParseFormat(formatStr)
	if err != nil {
		return err
	}
	if format == langdef.FormatBundle {
		return fmt.Errorf("use \"hilite pack\" for msgpack bundles")
	}
	def, err := reg.Lookup(args[0])
	if err != nil {
		return err
	}
	return langdef.Encode(cmd.OutOrStdout(), def.Spec(), format)
}
