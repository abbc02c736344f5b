package registry_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"hilite/internal/diag"
	"hilite/internal/langdef"
	"hilite/internal/lexer"
	"hilite/internal/registry"
)

func classes(def *langdef.Definition, src string) []string {
	var out []string
	for tok := range lexer.All(def, src, lexer.Options{MergePlain: true}) {
		out = append(out, tok.Class.String()+"|"+tok.Text)
	}
	return out
}

func TestBuiltinsCompileCleanly(t *testing.T) {
	reg, err := registry.NewWithBuiltins()
	require.NoError(t, err)
	require.Equal(t, []string{"conf", "java"}, reg.IDs())

	for _, id := range reg.IDs() {
		def := reg.MustGet(id)
		require.Empty(t, def.Warnings(), "builtin %s", id)
		require.True(t, reg.IsBuiltin(id))
		require.Equal(t, "builtin:"+id, reg.Origin(id))
	}
}

func TestBuiltinConf(t *testing.T) {
	def := registry.Default().MustGet("conf")
	got := classes(def, "user-AGENT: *\nDisallow: /admin  # block")
	require.Equal(t, []string{
		"keyword(attributes)|user-AGENT",
		"operator|:",
		"plain| ",
		"custom(wildcard)|*",
		"plain|\n",
		"keyword(attributes)|Disallow",
		"operator|:",
		"plain| /admin  ",
		"comment|# block",
	}, got)
}

func TestBuiltinJava(t *testing.T) {
	def := registry.Default().MustGet("java")
	src := "#include x\nString s = \"a\\\"b\"; // hi"
	require.Equal(t, []string{
		"custom(precompiler)|#include x",
		"plain|\n",
		"keyword(types)|String",
		"plain| s ",
		"operator|=",
		"plain| ",
		"quote|\"a\\\"b\"",
		"plain|; ",
		"comment|// hi",
	}, classes(def, src))

	require.Equal(t, []string{
		"comment|/* a\n b */",
		"keyword(statements)|if",
		"delimiter|(",
		"keyword(constants)|true",
		"delimiter|)",
	}, classes(def, "/* a\n b */if(true)"))
}

func TestBuiltinJavaCompletion(t *testing.T) {
	res, ok := registry.Default().Resolver("java")
	require.True(t, ok)

	got := res.Resolve("httpMessage.getRe")
	require.Equal(t, "httpMessage", got.Scope)
	require.Len(t, got.Entries, 4)
	require.Equal(t, "getRequestHeaders", got.Entries[0].Trigger)

	got = res.Resolve("deb")
	require.Len(t, got.Entries, 1)
	require.Equal(t, "debug({@});", got.Entries[0].Insert)
}

func spec(id string) langdef.Spec {
	return langdef.Spec{
		ID:         id,
		Extensions: []string{"." + id},
		Operators:  []string{"+"},
		Completion: langdef.CompletionSpec{Groups: []langdef.Group{
			{Entries: []langdef.Entry{{Trigger: "alpha"}}},
		}},
	}
}

func TestRegisterDuplicate(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.Register(spec("x")))

	err := reg.Register(spec("x"))
	var de *langdef.DefinitionError
	require.True(t, errors.As(err, &de))
	require.True(t, de.Has(diag.DefDuplicateID))
	require.Equal(t, 1, reg.Len())
}

func TestRegisterIsAtomic(t *testing.T) {
	reg := registry.New()
	bad := spec("bad")
	bad.CustomRules = []langdef.RuleSpec{{Name: "broken", Pattern: "(unclosed"}}

	err := reg.Register(bad)
	var de *langdef.DefinitionError
	require.True(t, errors.As(err, &de))
	require.True(t, de.Has(diag.DefBadPattern))

	_, ok := reg.Get("bad")
	require.False(t, ok)
	_, ok = reg.Detect("file.bad")
	require.False(t, ok, "fallback conf is not registered in an empty registry")
}

func TestReplaceDropsCachedIndex(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.Register(spec("x")))

	first, ok := reg.Index("x")
	require.True(t, ok)
	again, _ := reg.Index("x")
	require.Same(t, first, again)

	next := spec("x")
	next.Completion.Groups[0].Entries = append(next.Completion.Groups[0].Entries, langdef.Entry{Trigger: "beta"})
	require.NoError(t, reg.Replace(next))

	second, _ := reg.Index("x")
	require.NotSame(t, first, second)
	require.Equal(t, 2, second.Len())

	bad := spec("x")
	bad.CommentSingle = []string{""}
	require.Error(t, reg.Replace(bad))
	kept, _ := reg.Index("x")
	require.Same(t, second, kept, "failed replace keeps the previous definition")
}

func TestDetect(t *testing.T) {
	reg, err := registry.NewWithBuiltins(registry.WithFileTypes(map[string]string{"properties": "conf", ".jav": "java"}))
	require.NoError(t, err)

	tests := map[string]string{
		"Main.java":        "java",
		"MAIN.JAVA":        "java",
		"robots.txt":       "conf",
		"site.conf":        "conf",
		"app.properties":   "conf",
		"Legacy.jav":       "java",
		"README":           "conf",
		"script.unknownzz": "conf",
	}
	for name, want := range tests {
		def, ok := reg.Detect(name)
		require.True(t, ok, name)
		require.Equal(t, want, def.ID(), name)
	}

	reg2, err := registry.NewWithBuiltins(registry.WithFallback("none"))
	require.NoError(t, err)
	_, ok := reg2.Detect("README")
	require.False(t, ok)
}

func TestRemove(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.Register(spec("x")))
	require.True(t, reg.Remove("x"))
	require.False(t, reg.Remove("x"))
	_, err := reg.Lookup("x")
	require.ErrorIs(t, err, registry.ErrNotFound)
}

func TestMustGetPanics(t *testing.T) {
	require.Panics(t, func() { registry.New().MustGet("nope") })
}

func TestMaxLookbackOverride(t *testing.T) {
	reg, err := registry.NewWithBuiltins(registry.WithMaxLookback(8))
	require.NoError(t, err)
	require.Equal(t, 8, reg.MustGet("java").Completion().MaxLookback)

	res, ok := reg.Resolver("java")
	require.True(t, ok)
	// "httpMessage." falls outside the 8-byte window, so the scope is lost
	got := res.Resolve("httpMessage.getUrl")
	require.Empty(t, got.Scope)
	require.Empty(t, got.Entries)
}
