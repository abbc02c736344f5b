package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"hilite/internal/lsp"
	"hilite/internal/registry"
)

func newLSPCmd() *cobra.Command {
	lspCmd := &cobra.Command{
		Use:   "lsp",
		Short: "Run the hilite language server over stdio",
		Long: `Serve completion and semantic tokens over stdio JSON-RPC. With
[definitions].watch (or --watch) edited definition files are reloaded and
clients are asked to refresh their tokens`,
		Args: cobra.NoArgs,
		RunE: runLSP,
	}
	lspCmd.Flags().Bool("watch", false, "reload definition directories on change")
	return lspCmd
}

func runLSP(cmd *cobra.Command, _ []string) error {
	s := sessionFrom(cmd.Context())
	reg, err := s.registry(cmd)
	if err != nil {
		return err
	}
	watch, err := cmd.Flags().GetBool("watch")
	if err != nil {
		return fmt.Errorf("failed to get watch flag: %w", err)
	}
	watch = watch || s.cfg.Definitions.Watch

	server := lsp.NewServer(cmd.InOrStdin(), cmd.OutOrStdout(), lsp.ServerOptions{
		Registry:     reg,
		Tracer:       s.tracer,
		NoCompletion: !s.cfg.Editor.Autocompletion,
		Log:          cmd.ErrOrStderr(),
	})

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	if watch {
		extra, err := cmd.Root().PersistentFlags().GetStringArray("defs")
		if err != nil {
			return fmt.Errorf("failed to get defs flag: %w", err)
		}
		for _, dir := range append(append([]string(nil), s.cfg.Definitions.Dirs...), extra...) {
			reloads, err := reg.Watch(ctx, dir)
			if err != nil {
				return err
			}
			go forwardReloads(cmd, server, reloads)
		}
	}

	if err := server.Run(ctx); err != nil {
		if errors.Is(err, lsp.ErrExit) {
			return nil
		}
		if errors.Is(err, lsp.ErrExitWithoutShutdown) {
			return fmt.Errorf("lsp exit without shutdown")
		}
		return err
	}
	return nil
}

func forwardReloads(cmd *cobra.Command, server *lsp.Server, reloads <-chan registry.Reload) {
	for r := range reloads {
		if r.Err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "hilite: reload %s: %v\n", r.Path, r.Err)
			continue
		}
		if err := server.Refresh(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "hilite: refresh: %v\n", err)
		}
	}
}
