package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"hilite/internal/source"
	"hilite/internal/token"
)

// TokenOutput is the JSON shape of one token.
type TokenOutput struct {
	Kind  string      `json:"kind"`
	Name  string      `json:"name,omitempty"`
	Text  string      `json:"text"`
	Span  source.Span `json:"span"`
	Start *Position   `json:"start,omitempty"`
	End   *Position   `json:"end,omitempty"`
}

// Position is a 1-based line and byte column.
type Position struct {
	Line uint32 `json:"line"`
	Col  uint32 `json:"col"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате.
// file может быть nil, тогда позиции печатаются как байтовые смещения.
func FormatTokensPretty(w io.Writer, tokens []token.Token, file *source.File) error {
	for i, tok := range tokens {
		if _, err := fmt.Fprintf(w, "%3d: %-24s %q", i+1, tok.Class.String(), tok.Text); err != nil {
			return err
		}
		if file != nil {
			start, end := file.Position(tok.Span.Start), file.Position(tok.Span.End)
			_, err := fmt.Fprintf(w, " at %d:%d-%d:%d\n", start.Line, start.Col, end.Line, end.Col)
			if err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, " at %s\n", tok.Span); err != nil {
			return err
		}
	}
	return nil
}

// BuildTokensOutput converts tokens to their JSON shape. Positions are
// filled in when file is non-nil.
func BuildTokensOutput(tokens []token.Token, file *source.File) []TokenOutput {
	out := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		o := TokenOutput{
			Kind: tok.Class.Kind.String(),
			Name: tok.Class.Name,
			Text: tok.Text,
			Span: tok.Span,
		}
		if file != nil {
			start, end := file.Position(tok.Span.Start), file.Position(tok.Span.End)
			o.Start = &Position{Line: start.Line, Col: start.Col}
			o.End = &Position{Line: end.Line, Col: end.Col}
		}
		out = append(out, o)
	}
	return out
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token, file *source.File) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildTokensOutput(tokens, file))
}
