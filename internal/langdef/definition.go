package langdef

import (
	"hilite/internal/diag"
	"hilite/internal/rules"
	"hilite/internal/token"
)

// DefaultMaxLookback is the completion look-back window in bytes.
const DefaultMaxLookback = 100

// DefaultPrefixSeparator separates a scope key from the word being completed.
const DefaultPrefixSeparator = `\.`

// Definition is a compiled, immutable language definition. All accessors
// return shared data that callers must not modify.
type Definition struct {
	id         string
	name       string
	extensions []string

	commentSingle []string
	commentMulti  []CommentPair
	quotes        []string
	escape        string
	caseSensitive bool
	extraWord     []rune

	categories []Category
	keywords   map[string]int // слово (свёрнутое при необходимости) -> индекс категории
	operators  []string
	delimiters []string
	rules      *rules.Set

	styles     map[string]string
	completion Completion

	fingerprint string
	spec        Spec
	warnings    []diag.Diagnostic
}

// Completion is the compiled completion configuration.
type Completion struct {
	Separator     *rules.Suffix
	CaseSensitive bool
	MaxLookback   int
	Groups        []Group
}

func (d *Definition) ID() string           { return d.id }
func (d *Definition) Extensions() []string { return d.extensions }
func (d *Definition) CaseSensitive() bool  { return d.caseSensitive }
func (d *Definition) Escape() string       { return d.escape }
func (d *Definition) Rules() *rules.Set    { return d.rules }
func (d *Definition) Completion() Completion {
	return d.completion
}

// Name returns the display name, falling back to the id.
func (d *Definition) Name() string {
	if d.name == "" {
		return d.id
	}
	return d.name
}

// CommentSingle returns single-line comment markers, longest first.
func (d *Definition) CommentSingle() []string { return d.commentSingle }

// CommentMulti returns multi-line comment pairs, longest open marker first.
func (d *Definition) CommentMulti() []CommentPair { return d.commentMulti }

// Quotes returns quote marks, longest first.
func (d *Definition) Quotes() []string { return d.quotes }

// Operators returns operator literals, longest first.
func (d *Definition) Operators() []string { return d.operators }

// Delimiters returns delimiter literals, longest first.
func (d *Definition) Delimiters() []string { return d.delimiters }

// Categories returns keyword categories in declaration order.
func (d *Definition) Categories() []Category { return d.categories }

// Fingerprint identifies the payload content; equal specs share it.
func (d *Definition) Fingerprint() string { return d.fingerprint }

// Warnings returns non-fatal findings collected while compiling.
func (d *Definition) Warnings() []diag.Diagnostic { return d.warnings }

// Spec returns a copy of the payload the definition was compiled from.
func (d *Definition) Spec() Spec { return d.spec.Clone() }

// IsWordRune reports whether r belongs to a word in this language.
func (d *Definition) IsWordRune(r rune) bool {
	if isBaseWordRune(r) {
		return true
	}
	for _, w := range d.extraWord {
		if w == r {
			return true
		}
	}
	return false
}

// Keyword classifies a word. The first declared category containing the
// word wins.
func (d *Definition) Keyword(word string) (string, bool) {
	key := word
	if !d.caseSensitive {
		key = Fold(word)
	}
	idx, ok := d.keywords[key]
	if !ok {
		return "", false
	}
	return d.categories[idx].Name, true
}

// Style returns the raw descriptor stored under a normalised style key.
func (d *Definition) Style(key string) (string, bool) {
	s, ok := d.styles[key]
	return s, ok
}

// Styles returns the normalised style map.
func (d *Definition) Styles() map[string]string { return d.styles }

// Classes lists every token class the definition can produce: the fixed
// kinds, one keyword class per category and one custom class per rule.
func (d *Definition) Classes() []token.Class {
	out := []token.Class{token.PlainClass, token.CommentClass, token.QuoteClass}
	for _, cat := range d.categories {
		out = append(out, token.KeywordClass(cat.Name))
	}
	out = append(out, token.OperatorClass, token.DelimiterClass)
	if d.rules != nil {
		for _, p := range []rules.Phase{rules.Before, rules.After} {
			for _, r := range d.rules.Phase(p) {
				out = append(out, token.CustomClass(r.Name))
			}
		}
	}
	return out
}
