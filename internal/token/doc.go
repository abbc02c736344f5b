// Package token defines the classified token model shared by the tokenizer,
// the styler and every host adapter.
// Invariants:
//   - Token.Text is a slice of the original buffer (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Tokens of one buffer never overlap and cover it with no gaps.
//   - Class.Name is set only for Keyword (the category) and Custom (the rule).
package token
