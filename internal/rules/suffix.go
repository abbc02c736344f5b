package rules

import (
	"fmt"

	"github.com/dlclark/regexp2"
)

// Suffix matches a pattern that must end exactly at the end of the input.
// The completion resolver uses it to recognise a prefix separator such as
// "." or "::" right before the word under the cursor.
type Suffix struct {
	Pattern string
	re      *regexp2.Regexp
}

// CompileSuffix compiles pattern anchored to the end of input.
func CompileSuffix(pattern string, ignoreCase bool) (*Suffix, error) {
	opts := regexp2.None
	if ignoreCase {
		opts |= regexp2.IgnoreCase
	}
	re, err := regexp2.Compile(`(?:`+pattern+`)\z`, opts|regexp2.RightToLeft)
	if err != nil {
		return nil, fmt.Errorf("separator %q: %w", pattern, err)
	}
	re.MatchTimeout = MatchTimeout
	return &Suffix{Pattern: pattern, re: re}, nil
}

// Cut reports whether text ends with a non-empty separator match and
// returns the text before it.
func (s *Suffix) Cut(text string) (string, bool) {
	if s == nil || text == "" {
		return text, false
	}
	m, err := s.re.FindStringMatch(text)
	if err != nil || m == nil || m.Length == 0 {
		return text, false
	}
	return text[:len(text)-len(m.String())], true
}
