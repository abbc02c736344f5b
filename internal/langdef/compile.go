package langdef

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"hilite/internal/diag"
	"hilite/internal/rules"
	"hilite/internal/token"
)

// Compile validates a payload and builds an immutable Definition. Every
// problem found is reported; on any error-level finding the result is nil
// and the error is a *DefinitionError.
func Compile(spec Spec) (*Definition, error) {
	return CompileFrom(spec, "")
}

// CompileFrom is Compile with the originating file recorded in diagnostics.
func CompileFrom(spec Spec, origin string) (*Definition, error) {
	spec = spec.Clone()
	bag := diag.NewBag(0)
	c := compiler{
		spec:     &spec,
		reporter: diag.BagReporter{Bag: bag, Origin: origin},
		def:      &Definition{id: spec.ID, name: spec.Name},
	}
	c.run()
	bag.Sort()
	if bag.HasErrors() {
		return nil, &DefinitionError{ID: spec.ID, Origin: origin, Diagnostics: bag.Items()}
	}
	c.def.warnings = bag.Items()
	c.def.spec = spec
	c.def.fingerprint = fingerprint(spec)
	return c.def, nil
}

type compiler struct {
	spec     *Spec
	reporter diag.Reporter
	def      *Definition
}

func (c *compiler) errorf(code diag.Code, field, format string, args ...any) {
	diag.ReportError(c.reporter, code, field, fmt.Sprintf(format, args...)).Emit()
}

func (c *compiler) warnf(code diag.Code, field, format string, args ...any) {
	diag.ReportWarning(c.reporter, code, field, fmt.Sprintf(format, args...)).Emit()
}

func (c *compiler) run() {
	s := c.spec
	if strings.TrimSpace(s.ID) == "" {
		c.errorf(diag.DefMissingID, "id", "definition id must not be empty")
	}
	c.def.caseSensitive = s.CaseSensitive
	c.def.extraWord = []rune(s.WordChars)
	c.def.extensions = normalizeExtensions(s.Extensions)

	c.def.escape = `\`
	if s.EscapeChar != nil {
		c.def.escape = *s.EscapeChar
	}

	c.def.commentSingle = c.markers("comment_single", s.CommentSingle)
	c.def.quotes = c.markers("quote_marks", s.QuoteMarks)
	c.def.commentMulti = c.commentPairs(s.CommentMulti)
	c.keywords(s.KeywordCategories)
	c.def.operators = c.literals("operators", s.Operators)
	c.def.delimiters = c.literals("delimiters", s.Delimiters)
	c.customRules(s.CustomRules)
	c.styles(s.Styles)
	c.completion(s.Completion)
}

func (c *compiler) markers(field string, in []string) []string {
	out := make([]string, 0, len(in))
	for i, m := range in {
		if m == "" {
			c.errorf(diag.DefEmptyMarker, fmt.Sprintf("%s[%d]", field, i), "marker must not be empty")
			continue
		}
		if !slices.Contains(out, m) {
			out = append(out, m)
		}
	}
	return longestFirst(out)
}

func (c *compiler) commentPairs(in []CommentPair) []CommentPair {
	out := make([]CommentPair, 0, len(in))
	seen := make(map[string]int, len(in))
	for i, p := range in {
		field := fmt.Sprintf("comment_multi[%d]", i)
		if p.Open == "" || p.Close == "" {
			c.errorf(diag.DefEmptyMarker, field, "multi-line comment needs both open and close markers")
			continue
		}
		if prev, dup := seen[p.Open]; dup {
			diag.ReportError(c.reporter, diag.DefDuplicateCommentOpen, field+".open",
				fmt.Sprintf("open marker %q is already used", p.Open)).
				WithNote(fmt.Sprintf("comment_multi[%d].open", prev), "first use").
				Emit()
			continue
		}
		seen[p.Open] = i
		out = append(out, p)
	}
	slices.SortStableFunc(out, func(a, b CommentPair) int { return len(b.Open) - len(a.Open) })
	return out
}

func (c *compiler) keywords(cats []Category) {
	c.def.categories = make([]Category, 0, len(cats))
	c.def.keywords = make(map[string]int)
	names := make(map[string]bool, len(cats))
	for i, cat := range cats {
		field := fmt.Sprintf("keyword_categories[%d]", i)
		if cat.Name == "" {
			c.errorf(diag.DefEmptyName, field+".name", "keyword category needs a name")
			continue
		}
		if names[cat.Name] {
			c.errorf(diag.DefDuplicateCategory, field+".name", "category %q declared twice", cat.Name)
			continue
		}
		names[cat.Name] = true
		idx := len(c.def.categories)
		c.def.categories = append(c.def.categories, cat)
		for j, w := range cat.Words {
			if !c.isWord(w) {
				c.warnf(diag.DefUnreachableKeyword, fmt.Sprintf("%s.words[%d]", field, j),
					"keyword %q is not made of word characters and never matches", w)
				continue
			}
			key := w
			if !c.def.caseSensitive {
				key = Fold(w)
			}
			if _, taken := c.def.keywords[key]; !taken {
				c.def.keywords[key] = idx
			}
		}
	}
}

func (c *compiler) isWord(w string) bool {
	if w == "" {
		return false
	}
	for _, r := range w {
		if !c.def.IsWordRune(r) {
			return false
		}
	}
	return true
}

func (c *compiler) literals(field string, in []string) []string {
	out := make([]string, 0, len(in))
	for i, lit := range in {
		if lit == "" {
			c.errorf(diag.DefEmptyLiteral, fmt.Sprintf("%s[%d]", field, i), "literal must not be empty")
			continue
		}
		if !slices.Contains(out, lit) {
			out = append(out, lit)
		}
	}
	return longestFirst(out)
}

func (c *compiler) customRules(in []RuleSpec) {
	compiled := make([]*rules.Rule, 0, len(in))
	names := make(map[string]bool, len(in))
	for i, rs := range in {
		field := fmt.Sprintf("custom_rules[%d]", i)
		if rs.Name == "" {
			c.errorf(diag.DefEmptyName, field+".name", "custom rule needs a name")
			continue
		}
		if names[rs.Name] {
			c.errorf(diag.DefDuplicateRule, field+".name", "rule %q declared twice", rs.Name)
			continue
		}
		names[rs.Name] = true
		phase, err := rules.ParsePhase(rs.Phase)
		if err != nil {
			c.errorf(diag.DefBadPhase, field+".phase", "%v", err)
			continue
		}
		if rs.Pattern == "" {
			c.errorf(diag.DefBadPattern, field+".pattern", "pattern must not be empty")
			continue
		}
		if bad := strings.Trim(rs.Flags, "imsg"); bad != "" {
			c.errorf(diag.DefBadFlags, field+".flags", "unknown flags %q (allowed: i, m, s, g)", bad)
			continue
		}
		r, err := rules.Compile(rs.Name, rs.Pattern, rs.Flags, phase)
		if err != nil {
			c.errorf(diag.DefBadPattern, field+".pattern", "%v", err)
			continue
		}
		compiled = append(compiled, r)
	}
	c.def.rules = rules.NewSet(compiled...)
}

func (c *compiler) styles(in map[string]string) {
	c.def.styles = make(map[string]string, len(in))
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, raw := range keys {
		key := NormalizeStyleKey(raw)
		if !knownStyleKey(key) {
			c.warnf(diag.DefUnknownStyleKey, "styles."+raw, "style key %q does not name a token class", raw)
		}
		c.def.styles[key] = in[raw]
	}
}

// NormalizeStyleKey maps section names used by legacy editor definitions
// (COMMENTS, QUOTESMARKS, KEYWORDS.x, OPERATORS, DELIMITERS, REGEXPS.x)
// onto token class keys.
func NormalizeStyleKey(key string) string {
	head, tail, hasTail := strings.Cut(key, ".")
	switch head {
	case "COMMENTS":
		head = token.Comment.String()
	case "QUOTESMARKS":
		head = token.Quote.String()
	case "KEYWORDS":
		head = token.Keyword.String()
	case "OPERATORS":
		head = token.Operator.String()
	case "DELIMITERS":
		head = token.Delimiter.String()
	case "REGEXPS":
		head = token.Custom.String()
	default:
		head = strings.ToLower(head)
	}
	if hasTail {
		return head + "." + tail
	}
	return head
}

func knownStyleKey(key string) bool {
	head, _, _ := strings.Cut(key, ".")
	if head == "default" {
		return true
	}
	_, ok := token.ParseKind(head)
	return ok
}

func (c *compiler) completion(in CompletionSpec) {
	out := Completion{
		CaseSensitive: c.def.caseSensitive,
		MaxLookback:   in.MaxLookback,
	}
	if in.CaseSensitive != nil {
		out.CaseSensitive = *in.CaseSensitive
	}
	switch {
	case in.MaxLookback < 0:
		c.errorf(diag.DefBadLookback, "completion.max_lookback", "look-back window must be positive, got %d", in.MaxLookback)
	case in.MaxLookback == 0:
		out.MaxLookback = DefaultMaxLookback
	}

	pattern := in.PrefixSeparator
	if pattern == "" {
		pattern = DefaultPrefixSeparator
	}
	sep, err := rules.CompileSuffix(pattern, !out.CaseSensitive)
	if err != nil {
		c.errorf(diag.DefBadSeparator, "completion.prefix_separator", "%v", err)
	}
	out.Separator = sep

	scopes := make(map[string]bool, len(in.Groups))
	for i, g := range in.Groups {
		field := fmt.Sprintf("completion.groups[%d]", i)
		key := g.Scope
		if !out.CaseSensitive {
			key = Fold(key)
		}
		if scopes[key] {
			c.errorf(diag.DefDuplicateScope, field+".scope", "scope %q declared twice", g.Scope)
			continue
		}
		scopes[key] = true
		entries := make([]Entry, 0, len(g.Entries))
		for j, e := range g.Entries {
			if e.Trigger == "" {
				c.errorf(diag.DefEmptyTrigger, fmt.Sprintf("%s.entries[%d].trigger", field, j), "completion entry needs a trigger")
				continue
			}
			entries = append(entries, e)
		}
		out.Groups = append(out.Groups, Group{Scope: g.Scope, Entries: entries})
	}
	c.def.completion = out
}

// longestFirst orders literals by byte length, longest first, keeping
// declaration order among equals.
func longestFirst(in []string) []string {
	slices.SortStableFunc(in, func(a, b string) int { return len(b) - len(a) })
	return in
}

func normalizeExtensions(in []string) []string {
	out := make([]string, 0, len(in))
	for _, ext := range in {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if !slices.Contains(out, ext) {
			out = append(out, ext)
		}
	}
	return out
}

func fingerprint(spec Spec) string {
	// json сортирует ключи map, поэтому вывод детерминирован
	b, err := json.Marshal(spec)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
