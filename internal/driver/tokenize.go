// Package driver runs the tokenizer over files on disk for the CLI.
package driver

import (
	"fmt"

	"hilite/internal/langdef"
	"hilite/internal/lexer"
	"hilite/internal/registry"
	"hilite/internal/source"
	"hilite/internal/token"
)

// Options control how files are tokenized.
type Options struct {
	// Lang forces a definition id; empty means detect from the file name.
	Lang string
	// MergePlain coalesces adjacent plain tokens.
	MergePlain bool
	// Jobs bounds parallelism in TokenizeFiles (GOMAXPROCS when <= 0).
	Jobs int
	// Progress, when set, receives TokenizeFiles events. It is called from
	// worker goroutines and must be safe for concurrent use.
	Progress func(Event)
}

// TokenizeResult holds the tokens of one buffer.
type TokenizeResult struct {
	Path   string
	FileID source.FileID
	Def    *langdef.Definition
	Tokens []token.Token
	Err    error
}

// pickDefinition resolves the definition for path.
func pickDefinition(reg *registry.Registry, path string, opts Options) (*langdef.Definition, error) {
	if opts.Lang != "" {
		return reg.Lookup(opts.Lang)
	}
	def, ok := reg.Detect(path)
	if !ok {
		return nil, fmt.Errorf("%s: no definition for this file type (use --lang)", path)
	}
	return def, nil
}

// Tokenize loads one file and tokenizes it.
func Tokenize(reg *registry.Registry, path string, opts Options) (*source.FileSet, *TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, nil, err
	}
	def, err := pickDefinition(reg, path, opts)
	if err != nil {
		return nil, nil, err
	}
	return fs, tokenizeFile(fs.Get(fileID), def, opts), nil
}

// TokenizeSource tokenizes an in-memory buffer such as stdin.
func TokenizeSource(reg *registry.Registry, name string, content []byte, opts Options) (*source.FileSet, *TokenizeResult, error) {
	def, err := pickDefinition(reg, name, opts)
	if err != nil {
		return nil, nil, err
	}
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, content)
	return fs, tokenizeFile(fs.Get(fileID), def, opts), nil
}

func tokenizeFile(file *source.File, def *langdef.Definition, opts Options) *TokenizeResult {
	return &TokenizeResult{
		Path:   file.Path,
		FileID: file.ID,
		Def:    def,
		Tokens: lexer.Collect(def, string(file.Content), lexer.Options{MergePlain: opts.MergePlain}),
	}
}
