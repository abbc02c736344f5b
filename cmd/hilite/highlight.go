package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"hilite/internal/chromalex"
	"hilite/internal/langdef"
	"hilite/internal/lexer"
	"hilite/internal/registry"
	"hilite/internal/style"
)

func newHighlightCmd() *cobra.Command {
	highlightCmd := &cobra.Command{
		Use:   "highlight [flags] [file]",
		Short: "Render a file with syntax colours",
		Long: `Highlight renders a file (or stdin) as ANSI-coloured text or HTML.
The native engine uses the definition's style map; the chroma engine feeds
the same tokens through chroma's formatters`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHighlight,
	}
	highlightCmd.Flags().String("lang", "", "definition id (default: detect from the file name)")
	highlightCmd.Flags().String("format", "ansi", "output format (ansi|html)")
	highlightCmd.Flags().String("engine", "native", "renderer (native|chroma)")
	highlightCmd.Flags().String("theme", "", "chroma style used as palette (default: [highlight].theme)")
	highlightCmd.Flags().Bool("standalone", false, "html: emit a complete document")
	highlightCmd.Flags().String("class-prefix", "", "html: add class hooks with this prefix")
	highlightCmd.Flags().Bool("list-themes", false, "print the available themes and exit")
	return highlightCmd
}

type highlightOptions struct {
	format      string
	engine      string
	theme       string
	standalone  bool
	classPrefix string
	color       bool
}

func runHighlight(cmd *cobra.Command, args []string) error {
	listThemes, err := cmd.Flags().GetBool("list-themes")
	if err != nil {
		return fmt.Errorf("failed to get list-themes flag: %w", err)
	}
	if listThemes {
		for _, name := range chromalex.StyleNames() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	}

	s := sessionFrom(cmd.Context())
	reg, err := s.registry(cmd)
	if err != nil {
		return err
	}
	opts, err := readHighlightOptions(cmd, s.cfg.Highlight.Theme)
	if err != nil {
		return err
	}
	lang, err := cmd.Flags().GetString("lang")
	if err != nil {
		return fmt.Errorf("failed to get lang flag: %w", err)
	}

	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	name, data, err := readInput(cmd, path)
	if err != nil {
		return err
	}
	def, err := definitionFor(reg, lang, name)
	if err != nil {
		return err
	}

	done := s.timer.Track("highlight")
	defer done(opts.engine + "/" + opts.format)
	out := cmd.OutOrStdout()
	if opts.engine == "chroma" {
		return highlightChroma(out, reg, def, string(data), opts)
	}
	return highlightNative(out, def, name, string(data), opts)
}

func readHighlightOptions(cmd *cobra.Command, configTheme string) (highlightOptions, error) {
	var opts highlightOptions
	var err error
	if opts.format, err = cmd.Flags().GetString("format"); err != nil {
		return opts, fmt.Errorf("failed to get format flag: %w", err)
	}
	if opts.engine, err = cmd.Flags().GetString("engine"); err != nil {
		return opts, fmt.Errorf("failed to get engine flag: %w", err)
	}
	if opts.theme, err = cmd.Flags().GetString("theme"); err != nil {
		return opts, fmt.Errorf("failed to get theme flag: %w", err)
	}
	if opts.standalone, err = cmd.Flags().GetBool("standalone"); err != nil {
		return opts, fmt.Errorf("failed to get standalone flag: %w", err)
	}
	if opts.classPrefix, err = cmd.Flags().GetString("class-prefix"); err != nil {
		return opts, fmt.Errorf("failed to get class-prefix flag: %w", err)
	}
	opts.format = strings.ToLower(opts.format)
	opts.engine = strings.ToLower(opts.engine)
	switch opts.format {
	case "ansi", "html":
	default:
		return opts, fmt.Errorf("unsupported format %q (must be ansi or html)", opts.format)
	}
	switch opts.engine {
	case "native", "chroma":
	default:
		return opts, fmt.Errorf("unsupported engine %q (must be native or chroma)", opts.engine)
	}
	if opts.theme == "" {
		opts.theme = configTheme
	}
	opts.color = useColor(cmd, cmd.OutOrStdout())
	return opts, nil
}

// definitionFor resolves --lang, then the file name.
func definitionFor(reg *registry.Registry, lang, name string) (*langdef.Definition, error) {
	if lang != "" {
		return reg.Lookup(lang)
	}
	def, ok := reg.Detect(name)
	if !ok {
		return nil, fmt.Errorf("%s: no definition for this file type (use --lang)", name)
	}
	return def, nil
}

func highlightNative(out io.Writer, def *langdef.Definition, name, text string, opts highlightOptions) error {
	styler := style.New(def)
	if opts.theme != "" {
		theme, ok := chromalex.Theme(opts.theme, def)
		if !ok {
			return fmt.Errorf("unknown theme %q (see --list-themes)", opts.theme)
		}
		styler = styler.WithTheme(theme)
	}
	toks := lexer.All(def, text, lexer.Options{MergePlain: true})
	if opts.format == "html" {
		return style.RenderHTML(out, styler, toks, style.HTMLOptions{
			ClassPrefix: opts.classPrefix,
			Standalone:  opts.standalone,
			Title:       filepath.Base(name),
		})
	}
	r := lipgloss.NewRenderer(out)
	if opts.color {
		r.SetColorProfile(termenv.TrueColor)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return style.NewANSI(r, styler).Render(out, toks)
}

func highlightChroma(out io.Writer, reg *registry.Registry, def *langdef.Definition, text string, opts highlightOptions) error {
	lexers := chromalex.NewRegistry(reg)
	lx := lexers.Get(def.ID())
	if lx == nil {
		return fmt.Errorf("no chroma lexer for %q", def.ID())
	}

	var (
		cs  *chroma.Style
		err error
	)
	if opts.theme != "" {
		var ok bool
		if cs, ok = styles.Registry[strings.ToLower(opts.theme)]; !ok {
			return fmt.Errorf("unknown theme %q (see --list-themes)", opts.theme)
		}
	} else if cs, err = chromalex.Style(def, style.New(def)); err != nil {
		return fmt.Errorf("building chroma style: %w", err)
	}

	it, err := lx.Tokenise(nil, text)
	if err != nil {
		return err
	}

	var formatter chroma.Formatter
	switch {
	case opts.format == "html":
		htmlOpts := []chromahtml.Option{chromahtml.Standalone(opts.standalone)}
		if opts.classPrefix != "" {
			htmlOpts = append(htmlOpts, chromahtml.WithClasses(true), chromahtml.ClassPrefix(opts.classPrefix))
		}
		formatter = chromahtml.New(htmlOpts...)
	case opts.color:
		formatter = formatters.TTY16m
	default:
		formatter = formatters.NoOp
	}
	return formatter.Format(out, cs, it)
}
