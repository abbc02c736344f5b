package complete

import (
	"unicode/utf8"

	"hilite/internal/langdef"
)

// Result describes the suggestions for one cursor position.
type Result struct {
	// Scope is the scope key that was looked up; empty for the global scope.
	Scope string
	// Prefix is the partial word before the cursor.
	Prefix string
	// ReplaceFrom is the offset in the input where Prefix starts.
	ReplaceFrom int
	// Fallback is set when Scope had no entries and the global scope was used.
	Fallback bool
	Entries  []langdef.Entry
}

// Empty reports whether there is nothing to suggest.
func (r Result) Empty() bool { return len(r.Entries) == 0 }

// Resolver answers completion queries for one definition.
type Resolver struct {
	def *langdef.Definition
	idx *Index
}

// NewResolver binds a definition to its index.
func NewResolver(def *langdef.Definition, idx *Index) *Resolver {
	return &Resolver{def: def, idx: idx}
}

// Resolve returns suggestions for the text before the cursor. Only the last
// MaxLookback bytes are inspected.
//
// A word right after the prefix separator is completed within the scope
// named by the word before the separator ("httpMessage.get"); if that scope
// has no entries the global scope is used. An empty prefix lists the whole
// scope after a separator and nothing in the global scope.
func (r *Resolver) Resolve(before string) Result {
	comp := r.def.Completion()
	window := lookback(before, comp.MaxLookback)
	prefix := r.trailingWord(window)
	res := Result{Prefix: prefix, ReplaceFrom: len(before) - len(prefix)}

	scopeKey := ""
	if head, ok := comp.Separator.Cut(window[:len(window)-len(prefix)]); ok {
		scopeKey = r.trailingWord(head)
	}
	if scopeKey != "" {
		if entries, ok := r.idx.Lookup(scopeKey, prefix); ok {
			res.Scope = scopeKey
			res.Entries = entries
			return res
		}
		res.Fallback = true
	}
	if prefix == "" {
		return res
	}
	res.Entries, _ = r.idx.Lookup("", prefix)
	return res
}

// ResolveAt is the host-facing form taking a whole buffer and a cursor byte
// offset. Nothing is suggested while the cursor sits inside a word.
func (r *Resolver) ResolveAt(buf string, cursor int) Result {
	cursor = max(0, min(cursor, len(buf)))
	for cursor > 0 && cursor < len(buf) && !utf8.RuneStart(buf[cursor]) {
		cursor--
	}
	if next, sz := utf8.DecodeRuneInString(buf[cursor:]); sz > 0 && r.def.IsWordRune(next) {
		return Result{ReplaceFrom: cursor}
	}
	return r.Resolve(buf[:cursor])
}

func (r *Resolver) trailingWord(s string) string {
	i := len(s)
	for i > 0 {
		ch, sz := utf8.DecodeLastRuneInString(s[:i])
		if !r.def.IsWordRune(ch) {
			break
		}
		i -= sz
	}
	return s[i:]
}

// lookback returns at most n trailing bytes of s without splitting a rune.
func lookback(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	start := len(s) - n
	for start < len(s) && !utf8.RuneStart(s[start]) {
		start++
	}
	return s[start:]
}
