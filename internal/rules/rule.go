package rules

import (
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
)

// MatchTimeout bounds a single rule evaluation. A rule that times out is
// treated as not matching at that position.
const MatchTimeout = 50 * time.Millisecond

// MaxWindow caps how many bytes past its start a rule may look at. A match
// that would need more than MaxWindow bytes does not happen: a rule with the
// "s" flag cannot classify a span longer than that, and on very long lines an
// ordinary rule sees only the first MaxWindow bytes after its start.
const MaxWindow = 64 << 10

// Rule is a compiled custom rule. It is immutable and safe for concurrent use.
type Rule struct {
	Name    string
	Pattern string
	Flags   string
	Phase   Phase

	re        *regexp2.Regexp
	wholeText bool
}

// Compile builds a rule. Flags: i ignore case, m multi-line anchors,
// s dot matches newline and the rule sees past the current line,
// g accepted for compatibility and ignored. Whatever the flags, a match is
// limited to MaxWindow bytes from the position it starts at; longer spans
// are not classified by the rule. Look-behind sees the current line (or,
// with s, the decoded window) before the position.
func Compile(name, pattern, flags string, phase Phase) (*Rule, error) {
	opts, wholeText, err := parseFlags(flags)
	if err != nil {
		return nil, err
	}
	re, err := regexp2.Compile(`\G(?:`+pattern+`)`, opts)
	if err != nil {
		return nil, fmt.Errorf("rule %q: %w", name, err)
	}
	re.MatchTimeout = MatchTimeout
	return &Rule{
		Name:      name,
		Pattern:   pattern,
		Flags:     flags,
		Phase:     phase,
		re:        re,
		wholeText: wholeText,
	}, nil
}

func parseFlags(flags string) (regexp2.RegexOptions, bool, error) {
	opts := regexp2.None
	wholeText := false
	for _, f := range flags {
		switch f {
		case 'i':
			opts |= regexp2.IgnoreCase
		case 'm':
			opts |= regexp2.Multiline
		case 's':
			opts |= regexp2.Singleline
			wholeText = true
		case 'g':
		default:
			return opts, false, fmt.Errorf("unknown flag %q", f)
		}
	}
	return opts, wholeText, nil
}

// Match tries the rule at byte offset off of src and returns the length in
// bytes of the classified span. Zero means no match. Tokenizers should call
// MatchText with one Text per buffer instead.
func (r *Rule) Match(src string, off int) int {
	return r.MatchText(NewText(src), off)
}

// MatchText is Match over a reusable Text.
func (r *Rule) MatchText(t *Text, off int) int {
	runes, at, offs, ok := t.view(off, r.wholeText)
	if !ok {
		return 0
	}
	m, err := r.re.FindRunesMatchStartingAt(runes, at)
	if err != nil || m == nil || m.Index != at {
		return 0
	}
	idx, n := m.Index, m.Length
	if g, ok := threeGroup(m, at); ok {
		idx, n = g.Index, g.Length
	}
	return offs[idx+n] - offs[idx]
}

// threeGroup applies the "()(body)()" convention: group 1 matched empty at
// the anchor, so the classified span is group 2.
func threeGroup(m *regexp2.Match, at int) (*regexp2.Group, bool) {
	if m.GroupCount() < 4 {
		return nil, false
	}
	g1, g2 := m.GroupByNumber(1), m.GroupByNumber(2)
	if g1 == nil || g2 == nil || len(g1.Captures) == 0 || len(g2.Captures) == 0 {
		return nil, false
	}
	if g1.Length != 0 || g1.Index != at || g2.Index != at {
		return nil, false
	}
	return g2, true
}

func (r *Rule) String() string {
	return fmt.Sprintf("%s(%s) /%s/%s", r.Name, r.Phase, r.Pattern, r.Flags)
}
