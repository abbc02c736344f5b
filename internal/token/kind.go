package token

import "fmt"

// Kind represents the coarse category of a token.
type Kind uint8

const (
	// Plain is text that matched no rule.
	Plain Kind = iota
	// Comment covers single-line and multi-line comments including markers.
	Comment
	// Quote covers a quoted string including its quote marks.
	Quote
	// Keyword is a word listed in one of the keyword categories.
	Keyword
	// Operator is one of the declared operator literals.
	Operator
	// Delimiter is one of the declared delimiter literals.
	Delimiter
	// Custom is a span matched by a named custom rule.
	Custom
)

var kindNames = [...]string{
	Plain:     "plain",
	Comment:   "comment",
	Quote:     "quote",
	Keyword:   "keyword",
	Operator:  "operator",
	Delimiter: "delimiter",
	Custom:    "custom",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Kinds lists every kind in declaration order.
func Kinds() []Kind {
	return []Kind{Plain, Comment, Quote, Keyword, Operator, Delimiter, Custom}
}

// ParseKind maps a lowercase kind name back to its Kind.
func ParseKind(s string) (Kind, bool) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), true // #nosec G115 -- len(kindNames) < 256
		}
	}
	return Plain, false
}

// MarshalText implements encoding.TextMarshaler so JSON output carries names.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	v, ok := ParseKind(string(b))
	if !ok {
		return fmt.Errorf("unknown token kind %q", b)
	}
	*k = v
	return nil
}
