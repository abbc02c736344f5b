package lexer_test

import (
	"testing"

	"pgregory.net/rapid"

	"hilite/internal/langdef"
	"hilite/internal/lexer"
)

var partitionDefs = []langdef.Spec{
	{ID: "empty"},
	{
		ID:                "conf",
		CommentSingle:     []string{"#", ";"},
		QuoteMarks:        []string{`'`, `"`},
		WordChars:         "-",
		KeywordCategories: []langdef.Category{{Name: "attributes", Words: []string{"User-agent", "Disallow", "Allow"}}},
		Operators:         []string{":"},
		CustomRules:       []langdef.RuleSpec{{Name: "wildcard", Pattern: `\*`, Phase: "after"}},
	},
	{
		ID:                "java",
		CaseSensitive:     true,
		CommentSingle:     []string{"//", "@"},
		CommentMulti:      []langdef.CommentPair{{Open: "/*", Close: "*/"}},
		QuoteMarks:        []string{`'`, `"`},
		KeywordCategories: []langdef.Category{{Name: "types", Words: []string{"int", "String"}}},
		Operators:         []string{"+", "-", "/", "*", "=", "==", "<", ">"},
		Delimiters:        []string{"(", ")", "{", "}"},
		CustomRules: []langdef.RuleSpec{
			{Name: "precompiler", Pattern: `()(#[^\r\n]*)()`, Phase: "before"},
			{Name: "block", Pattern: `<<.*?>>`, Flags: "s", Phase: "before"},
		},
	},
}

// Склейка токенов всегда даёт исходный буфер, без пропусков и наложений.
func TestPartitionProperty(t *testing.T) {
	defs := make([]*langdef.Definition, 0, len(partitionDefs))
	for _, spec := range partitionDefs {
		defs = append(defs, mustCompile(t, spec))
	}

	rapid.Check(t, func(rt *rapid.T) {
		def := rapid.SampledFrom(defs).Draw(rt, "def")
		src := rapid.StringMatching(`[a-zA-Z0-9 \n#;:'"*/<>=+(){}\\@é-]{0,60}`).Draw(rt, "src")
		merge := rapid.Bool().Draw(rt, "merge")

		var off uint32
		var rebuilt []byte
		prevPlain := false
		for tok := range lexer.All(def, src, lexer.Options{MergePlain: merge}) {
			if tok.Span.Start != off {
				rt.Fatalf("gap or overlap at %d: %v", off, tok)
			}
			if tok.Span.Empty() {
				rt.Fatalf("empty token at %d", off)
			}
			if tok.Text != src[tok.Span.Start:tok.Span.End] {
				rt.Fatalf("text %q does not match span %v", tok.Text, tok.Span)
			}
			if merge && prevPlain && tok.IsPlain() {
				rt.Fatalf("adjacent plain tokens left unmerged at %d", off)
			}
			prevPlain = tok.IsPlain()
			off = tok.Span.End
			rebuilt = append(rebuilt, tok.Text...)
		}
		if string(rebuilt) != src {
			rt.Fatalf("concatenation %q != source %q", rebuilt, src)
		}
	})
}
