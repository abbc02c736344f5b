package token

import (
	"fmt"

	"hilite/internal/source"
)

// Class is the tagged classification of a token. Name carries the keyword
// category for Keyword and the rule name for Custom; it is empty otherwise.
type Class struct {
	Kind Kind   `json:"kind"`
	Name string `json:"name,omitempty"`
}

// Classes for the payload-free kinds.
var (
	PlainClass     = Class{Kind: Plain}
	CommentClass   = Class{Kind: Comment}
	QuoteClass     = Class{Kind: Quote}
	OperatorClass  = Class{Kind: Operator}
	DelimiterClass = Class{Kind: Delimiter}
)

// KeywordClass returns the class of a keyword in the given category.
func KeywordClass(category string) Class { return Class{Kind: Keyword, Name: category} }

// CustomClass returns the class of a span matched by the named rule.
func CustomClass(rule string) Class { return Class{Kind: Custom, Name: rule} }

// String renders "keyword(types)", "custom(precompiler)" or the bare kind.
func (c Class) String() string {
	if c.Name == "" {
		return c.Kind.String()
	}
	return c.Kind.String() + "(" + c.Name + ")"
}

// StyleKey is the most specific style map key for the class, e.g. "keyword.types".
func (c Class) StyleKey() string {
	if c.Name == "" {
		return c.Kind.String()
	}
	return c.Kind.String() + "." + c.Name
}

// Token is one classified, contiguous piece of a buffer.
type Token struct {
	Class Class       `json:"class"`
	Span  source.Span `json:"span"`
	Text  string      `json:"text"`
}

// Is reports whether the token has the given kind.
func (t Token) Is(k Kind) bool { return t.Class.Kind == k }

// IsPlain reports whether the token is unclassified text.
func (t Token) IsPlain() bool { return t.Class.Kind == Plain }

func (t Token) String() string {
	return fmt.Sprintf("%s %q", t.Class, t.Text)
}
