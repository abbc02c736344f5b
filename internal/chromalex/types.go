package chromalex

import (
	"github.com/alecthomas/chroma/v2"

	"hilite/internal/token"
)

// keywordTypes maps conventional category names to chroma keyword types.
var keywordTypes = map[string]chroma.TokenType{
	"constants":  chroma.KeywordConstant,
	"types":      chroma.KeywordType,
	"statements": chroma.Keyword,
	"keywords":   chroma.KeywordReserved,
	"functions":  chroma.NameBuiltin,
	"attributes": chroma.NameAttribute,
	"values":     chroma.NameConstant,
	"specials":   chroma.KeywordPseudo,
}

// customTypes maps conventional custom rule names to chroma types.
var customTypes = map[string]chroma.TokenType{
	"precompiler": chroma.CommentPreproc,
	"wildcard":    chroma.OperatorWord,
}

// TypeOf maps a token class onto the closest chroma token type.
func TypeOf(c token.Class) chroma.TokenType {
	switch c.Kind {
	case token.Comment:
		return chroma.Comment
	case token.Quote:
		return chroma.LiteralString
	case token.Keyword:
		if t, ok := keywordTypes[c.Name]; ok {
			return t
		}
		return chroma.Keyword
	case token.Operator:
		return chroma.Operator
	case token.Delimiter:
		return chroma.Punctuation
	case token.Custom:
		if t, ok := customTypes[c.Name]; ok {
			return t
		}
		return chroma.NameOther
	default:
		return chroma.Text
	}
}
