package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

func newLangsCmd() *cobra.Command {
	langsCmd := &cobra.Command{
		Use:   "langs",
		Short: "List the registered language definitions",
		Args:  cobra.NoArgs,
		RunE:  runLangs,
	}
	langsCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return langsCmd
}

type langInfo struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Origin     string   `json:"origin"`
	Builtin    bool     `json:"builtin"`
	Extensions []string `json:"extensions,omitempty"`
	Warnings   int      `json:"warnings,omitempty"`
}

func runLangs(cmd *cobra.Command, _ []string) error {
	reg, err := sessionFrom(cmd.Context()).registry(cmd)
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	var infos []langInfo
	for _, id := range reg.IDs() {
		def, ok := reg.Get(id)
		if !ok {
			continue
		}
		info := langInfo{
			ID:         id,
			Name:       def.Name(),
			Origin:     reg.Origin(id),
			Builtin:    reg.IsBuiltin(id),
			Extensions: def.Extensions(),
			Warnings:   len(def.Warnings()),
		}
		infos = append(infos, info)
	}

	out := cmd.OutOrStdout()
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	case "pretty":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	rows := [][]string{{"ID", "NAME", "SOURCE", "EXTENSIONS"}}
	for _, info := range infos {
		source := "builtin"
		if !info.Builtin {
			source = filepath.ToSlash(info.Origin)
		}
		rows = append(rows, []string{info.ID, info.Name, source, strings.Join(info.Extensions, " ")})
	}
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	for _, row := range rows {
		var b strings.Builder
		for i, cell := range row {
			if i == len(row)-1 {
				b.WriteString(cell)
				break
			}
			b.WriteString(runewidth.FillRight(cell, widths[i]))
			b.WriteString("  ")
		}
		fmt.Fprintln(out, strings.TrimRight(b.String(), " "))
	}
	return nil
}
