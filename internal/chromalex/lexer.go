// Package chromalex exposes language definitions as chroma lexers so the
// chroma formatters (terminal, HTML, SVG, ...) can render hilite tokens.
package chromalex

import (
	"strings"

	"github.com/alecthomas/chroma/v2"

	"hilite/internal/langdef"
	"hilite/internal/lexer"
	"hilite/internal/registry"
	"hilite/internal/token"
)

// Lexer adapts a definition to chroma.Lexer.
type Lexer struct {
	def      *langdef.Definition
	config   *chroma.Config
	registry *chroma.LexerRegistry
	analyser func(text string) float32
}

var _ chroma.Lexer = (*Lexer)(nil)

// New wraps def. File name globs come from the definition's extensions.
func New(def *langdef.Definition) *Lexer {
	name := def.Name()
	if name == "" {
		name = def.ID()
	}
	cfg := &chroma.Config{
		Name:            name,
		Aliases:         []string{def.ID()},
		CaseInsensitive: !def.CaseSensitive(),
	}
	for _, ext := range def.Extensions() {
		cfg.Filenames = append(cfg.Filenames, "*"+ext)
	}
	return &Lexer{def: def, config: cfg}
}

// Config describes the lexer to chroma.
func (l *Lexer) Config() *chroma.Config { return l.config }

// Tokenise streams the definition's tokens as chroma tokens. Tokenisation
// cannot fail; the error is always nil.
func (l *Lexer) Tokenise(options *chroma.TokeniseOptions, text string) (chroma.Iterator, error) {
	if options != nil && options.EnsureLF {
		text = strings.ReplaceAll(text, "\r\n", "\n")
		text = strings.ReplaceAll(text, "\r", "\n")
	}
	lx := lexer.New(l.def, text, lexer.Options{MergePlain: true})
	return func() chroma.Token {
		tok, ok := lx.Next()
		if !ok {
			return chroma.EOF
		}
		return chroma.Token{Type: TypeOf(tok.Class), Value: tok.Text}
	}, nil
}

// SetRegistry records the registry the lexer belongs to.
func (l *Lexer) SetRegistry(r *chroma.LexerRegistry) chroma.Lexer {
	l.registry = r
	return l
}

// SetAnalyser installs a content scoring function.
func (l *Lexer) SetAnalyser(analyser func(text string) float32) chroma.Lexer {
	l.analyser = analyser
	return l
}

// AnalyseText scores text with the installed analyser, or by the share of
// keyword tokens when there is none.
func (l *Lexer) AnalyseText(text string) float32 {
	if l.analyser != nil {
		return l.analyser(text)
	}
	var words, keywords int
	for tok := range lexer.All(l.def, text, lexer.Options{}) {
		if tok.IsPlain() {
			if strings.TrimSpace(tok.Text) != "" {
				words++
			}
			continue
		}
		words++
		if tok.Is(token.Keyword) {
			keywords++
		}
	}
	if words == 0 {
		return 0
	}
	return float32(keywords) / float32(words)
}

// Definition returns the wrapped definition.
func (l *Lexer) Definition() *langdef.Definition { return l.def }

// NewRegistry builds a chroma lexer registry holding every definition of reg.
func NewRegistry(reg *registry.Registry) *chroma.LexerRegistry {
	lr := chroma.NewLexerRegistry()
	for _, id := range reg.IDs() {
		if def, ok := reg.Get(id); ok {
			lr.Register(New(def))
		}
	}
	return lr
}
