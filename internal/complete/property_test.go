package complete_test

import (
	"strings"
	"testing"

	"pgregory.net/rapid"

	"hilite/internal/complete"
	"hilite/internal/langdef"
)

func TestResolverProperties(t *testing.T) {
	def, err := langdef.Compile(httpSpec())
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	idx := complete.Build(def)
	r := complete.NewResolver(def, idx)

	rapid.Check(t, func(rt *rapid.T) {
		text := rapid.StringMatching(`[a-zA-Z. (;]{0,30}`).Draw(rt, "text")

		res := r.Resolve(text)
		if !strings.HasSuffix(text, res.Prefix) || res.ReplaceFrom != len(text)-len(res.Prefix) {
			rt.Fatalf("prefix %q / offset %d inconsistent with %q", res.Prefix, res.ReplaceFrom, text)
		}
		for _, e := range res.Entries {
			if !strings.HasPrefix(e.Trigger, res.Prefix) {
				rt.Fatalf("entry %q does not start with %q", e.Trigger, res.Prefix)
			}
		}
		if !complete.Build(def).Equal(idx) {
			rt.Fatalf("index changed after a query")
		}
		again := r.Resolve(text)
		if len(again.Entries) != len(res.Entries) {
			rt.Fatalf("resolution is not deterministic for %q", text)
		}
	})
}
