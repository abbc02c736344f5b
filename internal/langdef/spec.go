package langdef

// Spec is the declarative payload of a language definition as it arrives
// from a file or a bundle. Ordered collections are lists so declaration
// order survives every encoding. Compile turns a Spec into a Definition.
type Spec struct {
	ID         string   `toml:"id" json:"id" yaml:"id" msgpack:"id"`
	Name       string   `toml:"name" json:"name,omitempty" yaml:"name,omitempty" msgpack:"name,omitempty"`
	Extensions []string `toml:"extensions" json:"extensions,omitempty" yaml:"extensions,omitempty" msgpack:"extensions,omitempty"`

	CommentSingle []string      `toml:"comment_single" json:"comment_single,omitempty" yaml:"comment_single,omitempty" msgpack:"comment_single,omitempty"`
	CommentMulti  []CommentPair `toml:"comment_multi" json:"comment_multi,omitempty" yaml:"comment_multi,omitempty" msgpack:"comment_multi,omitempty"`
	QuoteMarks    []string      `toml:"quote_marks" json:"quote_marks,omitempty" yaml:"quote_marks,omitempty" msgpack:"quote_marks,omitempty"`
	// EscapeChar defaults to a backslash when nil; an empty string disables escapes.
	EscapeChar    *string `toml:"escape_char" json:"escape_char,omitempty" yaml:"escape_char,omitempty" msgpack:"escape_char,omitempty"`
	CaseSensitive bool    `toml:"case_sensitive" json:"case_sensitive" yaml:"case_sensitive" msgpack:"case_sensitive"`
	// WordChars lists characters that extend letters, digits and '_' in words.
	WordChars string `toml:"word_chars" json:"word_chars,omitempty" yaml:"word_chars,omitempty" msgpack:"word_chars,omitempty"`

	KeywordCategories []Category `toml:"keyword_categories" json:"keyword_categories,omitempty" yaml:"keyword_categories,omitempty" msgpack:"keyword_categories,omitempty"`
	Operators         []string   `toml:"operators" json:"operators,omitempty" yaml:"operators,omitempty" msgpack:"operators,omitempty"`
	Delimiters        []string   `toml:"delimiters" json:"delimiters,omitempty" yaml:"delimiters,omitempty" msgpack:"delimiters,omitempty"`
	CustomRules       []RuleSpec `toml:"custom_rules" json:"custom_rules,omitempty" yaml:"custom_rules,omitempty" msgpack:"custom_rules,omitempty"`

	Styles map[string]string `toml:"styles" json:"styles,omitempty" yaml:"styles,omitempty" msgpack:"styles,omitempty"`

	Completion CompletionSpec `toml:"completion" json:"completion" yaml:"completion" msgpack:"completion"`
}

// CommentPair is one multi-line comment form.
type CommentPair struct {
	Open  string `toml:"open" json:"open" yaml:"open" msgpack:"open"`
	Close string `toml:"close" json:"close" yaml:"close" msgpack:"close"`
}

// Category is a named keyword list.
type Category struct {
	Name  string   `toml:"name" json:"name" yaml:"name" msgpack:"name"`
	Words []string `toml:"words" json:"words" yaml:"words" msgpack:"words"`
}

// RuleSpec is the payload of a custom rule; Phase is "before" or "after".
type RuleSpec struct {
	Name    string `toml:"name" json:"name" yaml:"name" msgpack:"name"`
	Pattern string `toml:"pattern" json:"pattern" yaml:"pattern" msgpack:"pattern"`
	Flags   string `toml:"flags" json:"flags,omitempty" yaml:"flags,omitempty" msgpack:"flags,omitempty"`
	Phase   string `toml:"phase" json:"phase,omitempty" yaml:"phase,omitempty" msgpack:"phase,omitempty"`
}

// CompletionSpec configures the completion index and resolver.
type CompletionSpec struct {
	// PrefixSeparator is a regular expression; empty means `\.`.
	PrefixSeparator string `toml:"prefix_separator" json:"prefix_separator,omitempty" yaml:"prefix_separator,omitempty" msgpack:"prefix_separator,omitempty"`
	// CaseSensitive defaults to the definition's setting when nil.
	CaseSensitive *bool `toml:"case_sensitive" json:"case_sensitive,omitempty" yaml:"case_sensitive,omitempty" msgpack:"case_sensitive,omitempty"`
	// MaxLookback is the look-back window in bytes; zero means DefaultMaxLookback.
	MaxLookback int     `toml:"max_lookback" json:"max_lookback,omitempty" yaml:"max_lookback,omitempty" msgpack:"max_lookback,omitempty"`
	Groups      []Group `toml:"groups" json:"groups,omitempty" yaml:"groups,omitempty" msgpack:"groups,omitempty"`
}

// Group holds the entries of one scope. The empty scope is the global one.
type Group struct {
	Scope   string  `toml:"scope" json:"scope" yaml:"scope" msgpack:"scope"`
	Entries []Entry `toml:"entries" json:"entries" yaml:"entries" msgpack:"entries"`
}

// Entry is one completion suggestion. Insert may contain "{@}" cursor stops;
// an empty Insert inserts Trigger, an empty Label shows Trigger.
type Entry struct {
	Trigger string `toml:"trigger" json:"trigger" yaml:"trigger" msgpack:"trigger"`
	Insert  string `toml:"insert" json:"insert,omitempty" yaml:"insert,omitempty" msgpack:"insert,omitempty"`
	Label   string `toml:"label" json:"label,omitempty" yaml:"label,omitempty" msgpack:"label,omitempty"`
	Detail  string `toml:"detail" json:"detail,omitempty" yaml:"detail,omitempty" msgpack:"detail,omitempty"`
}

// InsertText returns the template to insert, defaulting to the trigger.
func (e Entry) InsertText() string {
	if e.Insert == "" {
		return e.Trigger
	}
	return e.Insert
}

// DisplayLabel returns the label shown in suggestion lists.
func (e Entry) DisplayLabel() string {
	if e.Label == "" {
		return e.Trigger
	}
	return e.Label
}

// Clone returns a deep copy so callers can mutate the result freely.
func (s Spec) Clone() Spec {
	out := s
	out.Extensions = cloneStrings(s.Extensions)
	out.CommentSingle = cloneStrings(s.CommentSingle)
	out.CommentMulti = append([]CommentPair(nil), s.CommentMulti...)
	out.QuoteMarks = cloneStrings(s.QuoteMarks)
	if s.EscapeChar != nil {
		esc := *s.EscapeChar
		out.EscapeChar = &esc
	}
	out.KeywordCategories = make([]Category, len(s.KeywordCategories))
	for i, c := range s.KeywordCategories {
		out.KeywordCategories[i] = Category{Name: c.Name, Words: cloneStrings(c.Words)}
	}
	out.Operators = cloneStrings(s.Operators)
	out.Delimiters = cloneStrings(s.Delimiters)
	out.CustomRules = append([]RuleSpec(nil), s.CustomRules...)
	if s.Styles != nil {
		out.Styles = make(map[string]string, len(s.Styles))
		for k, v := range s.Styles {
			out.Styles[k] = v
		}
	}
	if s.Completion.CaseSensitive != nil {
		cs := *s.Completion.CaseSensitive
		out.Completion.CaseSensitive = &cs
	}
	out.Completion.Groups = make([]Group, len(s.Completion.Groups))
	for i, g := range s.Completion.Groups {
		out.Completion.Groups[i] = Group{Scope: g.Scope, Entries: append([]Entry(nil), g.Entries...)}
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}
