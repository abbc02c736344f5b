package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"hilite/internal/complete"
)

func newCompleteCmd() *cobra.Command {
	completeCmd := &cobra.Command{
		Use:   "complete [flags] [file]",
		Short: "List completions for a cursor position",
		Long: `Complete resolves the suggestions a host editor would show for the
text before --cursor (a byte offset; default: end of the buffer)`,
		Args: cobra.MaximumNArgs(1),
		RunE: runComplete,
	}
	completeCmd.Flags().String("lang", "", "definition id (default: detect from the file name)")
	completeCmd.Flags().String("text", "", "buffer to complete instead of a file or stdin")
	completeCmd.Flags().Int("cursor", -1, "cursor byte offset (-1 = end of buffer)")
	completeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return completeCmd
}

type completionJSON struct {
	Scope       string      `json:"scope,omitempty"`
	Prefix      string      `json:"prefix"`
	ReplaceFrom int         `json:"replace_from"`
	Fallback    bool        `json:"fallback,omitempty"`
	Entries     []entryJSON `json:"entries"`
}

type entryJSON struct {
	Trigger string `json:"trigger"`
	Label   string `json:"label"`
	Detail  string `json:"detail,omitempty"`
	Insert  string `json:"insert"`
	Snippet string `json:"snippet"`
	Cursor  int    `json:"cursor"`
}

func runComplete(cmd *cobra.Command, args []string) error {
	s := sessionFrom(cmd.Context())
	reg, err := s.registry(cmd)
	if err != nil {
		return err
	}

	lang, err := cmd.Flags().GetString("lang")
	if err != nil {
		return fmt.Errorf("failed to get lang flag: %w", err)
	}
	cursor, err := cmd.Flags().GetInt("cursor")
	if err != nil {
		return fmt.Errorf("failed to get cursor flag: %w", err)
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format = strings.ToLower(format)
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	name, buf := "<text>", ""
	if cmd.Flags().Changed("text") {
		if buf, err = cmd.Flags().GetString("text"); err != nil {
			return fmt.Errorf("failed to get text flag: %w", err)
		}
	} else {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		var data []byte
		if name, data, err = readInput(cmd, path); err != nil {
			return err
		}
		buf = string(data)
	}
	if cursor < 0 || cursor > len(buf) {
		cursor = len(buf)
	}

	def, err := definitionFor(reg, lang, name)
	if err != nil {
		return err
	}
	resolver, ok := reg.Resolver(def.ID())
	if !ok {
		return fmt.Errorf("definition %q disappeared", def.ID())
	}

	done := s.timer.Track("complete")
	res := resolver.ResolveAt(buf, cursor)
	done(fmt.Sprintf("%d entries", len(res.Entries)))

	if format == "json" {
		return writeCompletionJSON(cmd.OutOrStdout(), res)
	}
	writeCompletionPretty(cmd.OutOrStdout(), res)
	return nil
}

func writeCompletionPretty(out io.Writer, res complete.Result) {
	if res.Empty() {
		fmt.Fprintln(out, "no suggestions")
		return
	}
	scope := res.Scope
	if scope == "" {
		scope = "(global)"
	}
	fmt.Fprintf(out, "scope %s, prefix %q at %d", scope, res.Prefix, res.ReplaceFrom)
	if res.Fallback {
		fmt.Fprint(out, ", fallback")
	}
	fmt.Fprintln(out)

	width := 0
	for _, e := range res.Entries {
		width = max(width, runewidth.StringWidth(e.DisplayLabel()))
	}
	for _, e := range res.Entries {
		line := "  " + runewidth.FillRight(e.DisplayLabel(), width)
		if e.Detail != "" {
			line += "  " + e.Detail
		}
		fmt.Fprintln(out, strings.TrimRight(line, " "))
	}
}

func writeCompletionJSON(out io.Writer, res complete.Result) error {
	payload := completionJSON{
		Scope:       res.Scope,
		Prefix:      res.Prefix,
		ReplaceFrom: res.ReplaceFrom,
		Fallback:    res.Fallback,
		Entries:     make([]entryJSON, 0, len(res.Entries)),
	}
	for _, e := range res.Entries {
		ins := complete.Expand(e)
		payload.Entries = append(payload.Entries, entryJSON{
			Trigger: e.Trigger,
			Label:   e.DisplayLabel(),
			Detail:  e.Detail,
			Insert:  ins.Text,
			Snippet: complete.Snippet(e),
			Cursor:  ins.Cursor(),
		})
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
