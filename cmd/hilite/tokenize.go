package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"hilite/internal/diagfmt"
	"hilite/internal/driver"
	"hilite/internal/source"
)

func newTokenizeCmd() *cobra.Command {
	tokenizeCmd := &cobra.Command{
		Use:   "tokenize [flags] [file...]",
		Short: "Print the classified tokens of files",
		Long: `Tokenize splits files (or stdin) into classified tokens using the
definition picked by --lang or by the file extension`,
		RunE: runTokenize,
	}
	tokenizeCmd.Flags().String("lang", "", "definition id (default: detect from the file name)")
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().Bool("merge-plain", true, "merge adjacent plain tokens")
	tokenizeCmd.Flags().Int("jobs", 0, "max parallel files (0=auto)")
	ui := uiModeAuto
	tokenizeCmd.Flags().Var(&ui, "ui", "progress UI for several files")
	return tokenizeCmd
}

type fileTokensJSON struct {
	Path   string                `json:"path"`
	Lang   string                `json:"lang,omitempty"`
	Tokens []diagfmt.TokenOutput `json:"tokens,omitempty"`
	Error  string                `json:"error,omitempty"`
}

func runTokenize(cmd *cobra.Command, args []string) error {
	s := sessionFrom(cmd.Context())
	reg, err := s.registry(cmd)
	if err != nil {
		return err
	}

	// Получаем флаги
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format = strings.ToLower(format)
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	lang, err := cmd.Flags().GetString("lang")
	if err != nil {
		return fmt.Errorf("failed to get lang flag: %w", err)
	}
	mergePlain, err := cmd.Flags().GetBool("merge-plain")
	if err != nil {
		return fmt.Errorf("failed to get merge-plain flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	mode, ok := cmd.Flags().Lookup("ui").Value.(*uiMode)
	if !ok {
		return fmt.Errorf("failed to get ui flag")
	}

	opts := driver.Options{Lang: lang, MergePlain: mergePlain, Jobs: jobs}
	out := cmd.OutOrStdout()

	if len(args) <= 1 {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		done := s.timer.Track("tokenize")
		fs, res, err := tokenizeOne(cmd, path, opts)
		if err != nil {
			done("failed")
			return fmt.Errorf("tokenization failed: %w", err)
		}
		done(fmt.Sprintf("%d tokens", len(res.Tokens)))
		file := fs.Get(res.FileID)
		if format == "json" {
			return diagfmt.FormatTokensJSON(out, res.Tokens, file)
		}
		return diagfmt.FormatTokensPretty(out, res.Tokens, file)
	}

	done := s.timer.Track("tokenize")
	var (
		fs      *source.FileSet
		results []driver.TokenizeResult
	)
	if mode.enabled(cmd.ErrOrStderr()) {
		fs, results, err = tokenizeWithUI(cmd.Context(), cmd.ErrOrStderr(), "tokenizing", reg, args, opts)
	} else {
		fs, results, err = driver.TokenizeFiles(cmd.Context(), reg, args, opts)
	}
	if err != nil {
		done("failed")
		return fmt.Errorf("tokenization failed: %w", err)
	}
	done(fmt.Sprintf("%d files", len(results)))

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	if format == "json" {
		err = writeTokensJSON(out, fs, results)
	} else {
		err = writeTokensPretty(out, cmd.ErrOrStderr(), fs, results)
	}
	if err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}

func tokenizeOne(cmd *cobra.Command, path string, opts driver.Options) (*source.FileSet, *driver.TokenizeResult, error) {
	reg, err := sessionFrom(cmd.Context()).registry(cmd)
	if err != nil {
		return nil, nil, err
	}
	if path != "" && path != "-" {
		return driver.Tokenize(reg, path, opts)
	}
	name, data, err := readInput(cmd, path)
	if err != nil {
		return nil, nil, err
	}
	return driver.TokenizeSource(reg, name, data, opts)
}

func writeTokensPretty(out, errOut io.Writer, fs *source.FileSet, results []driver.TokenizeResult) error {
	for i, res := range results {
		if res.Err != nil {
			fmt.Fprintf(errOut, "error: %v\n", res.Err)
			continue
		}
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "==> %s [%s]\n", res.Path, res.Def.ID())
		if err := diagfmt.FormatTokensPretty(out, res.Tokens, fs.Get(res.FileID)); err != nil {
			return err
		}
	}
	return nil
}

func writeTokensJSON(out io.Writer, fs *source.FileSet, results []driver.TokenizeResult) error {
	files := make([]fileTokensJSON, 0, len(results))
	for _, res := range results {
		entry := fileTokensJSON{Path: res.Path}
		if res.Err != nil {
			entry.Error = res.Err.Error()
		} else {
			entry.Lang = res.Def.ID()
			entry.Tokens = diagfmt.BuildTokensOutput(res.Tokens, fs.Get(res.FileID))
		}
		files = append(files, entry)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(files)
}
