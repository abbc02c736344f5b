package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"hilite/internal/chromalex"
	"hilite/internal/style"
	"hilite/internal/ui"
)

func newPlayCmd() *cobra.Command {
	playCmd := &cobra.Command{
		Use:   "play [flags] [file]",
		Short: "Open an interactive editor with live highlighting and completion",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPlay,
	}
	playCmd.Flags().String("lang", "", "definition id (default: detect from the file name)")
	playCmd.Flags().String("theme", "", "chroma style used as palette (default: [highlight].theme)")
	return playCmd
}

func runPlay(cmd *cobra.Command, args []string) error {
	s := sessionFrom(cmd.Context())
	reg, err := s.registry(cmd)
	if err != nil {
		return err
	}
	lang, err := cmd.Flags().GetString("lang")
	if err != nil {
		return fmt.Errorf("failed to get lang flag: %w", err)
	}
	themeName, err := cmd.Flags().GetString("theme")
	if err != nil {
		return fmt.Errorf("failed to get theme flag: %w", err)
	}
	if themeName == "" {
		themeName = s.cfg.Highlight.Theme
	}

	name, text := "untitled", ""
	if len(args) == 1 {
		var data []byte
		if name, data, err = readInput(cmd, args[0]); err != nil {
			return err
		}
		text = string(data)
	}
	def, err := definitionFor(reg, lang, name)
	if err != nil {
		return err
	}

	styler := style.New(def)
	if themeName != "" {
		theme, ok := chromalex.Theme(themeName, def)
		if !ok {
			return fmt.Errorf("unknown theme %q (see highlight --list-themes)", themeName)
		}
		styler = styler.WithTheme(theme)
	}
	resolver, _ := reg.Resolver(def.ID())

	model := ui.NewPlayground(ui.Options{
		Def:            def,
		Resolver:       resolver,
		ANSI:           style.NewANSI(lipgloss.NewRenderer(cmd.OutOrStdout()), styler),
		Text:           text,
		Autocompletion: s.cfg.Editor.Autocompletion,
		Highlight:      s.cfg.Editor.StartHighlight,
	})
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	_, err = program.Run()
	return err
}
