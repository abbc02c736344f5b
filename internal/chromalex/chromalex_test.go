package chromalex

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/stretchr/testify/require"

	"hilite/internal/registry"
	"hilite/internal/style"
	"hilite/internal/token"
)

func TestTokeniseMatchesNativeTokens(t *testing.T) {
	def := registry.Default().MustGet("conf")
	lx := New(def)

	it, err := lx.Tokenise(&chroma.TokeniseOptions{EnsureLF: true}, "Disallow: /admin  # block\r\n")
	require.NoError(t, err)

	got := it.Tokens()
	require.Equal(t, []chroma.Token{
		{Type: chroma.NameAttribute, Value: "Disallow"},
		{Type: chroma.Operator, Value: ":"},
		{Type: chroma.Text, Value: " /admin  "},
		{Type: chroma.Comment, Value: "# block"},
		{Type: chroma.Text, Value: "\n"},
	}, got)
	require.Equal(t, chroma.EOF, it(), "iterator stays at EOF")
}

func TestConfig(t *testing.T) {
	lx := New(registry.Default().MustGet("java"))
	cfg := lx.Config()
	require.Equal(t, "Java", cfg.Name)
	require.Equal(t, []string{"java"}, cfg.Aliases)
	require.Equal(t, []string{"*.java"}, cfg.Filenames)
	require.False(t, cfg.CaseInsensitive)
}

func TestRegistryMatch(t *testing.T) {
	lr := NewRegistry(registry.Default())
	require.NotNil(t, lr.Get("java"))
	require.NotNil(t, lr.Match("Main.java"))
	require.Equal(t, "conf", lr.Match("robots.txt").Config().Aliases[0])
}

func TestAnalyseText(t *testing.T) {
	lx := New(registry.Default().MustGet("java"))
	require.Greater(t, lx.AnalyseText("public static void main"), float32(0.5))
	require.Zero(t, lx.AnalyseText("   "))

	lx.SetAnalyser(func(string) float32 { return 0.25 })
	require.Equal(t, float32(0.25), lx.AnalyseText("anything"))
}

func TestTypeOf(t *testing.T) {
	require.Equal(t, chroma.KeywordType, TypeOf(token.KeywordClass("types")))
	require.Equal(t, chroma.Keyword, TypeOf(token.KeywordClass("mine")))
	require.Equal(t, chroma.CommentPreproc, TypeOf(token.CustomClass("precompiler")))
	require.Equal(t, chroma.NameOther, TypeOf(token.CustomClass("other")))
	require.Equal(t, chroma.Punctuation, TypeOf(token.DelimiterClass))
}

func TestStyleCarriesDefinitionColours(t *testing.T) {
	def := registry.Default().MustGet("java")
	cs, err := Style(def, style.New(def))
	require.NoError(t, err)
	require.Equal(t, "#aaaaaa", cs.Get(chroma.Comment).Colour.String())
	require.Equal(t, "#0000ee", cs.Get(chroma.KeywordType).Colour.String())

	var buf bytes.Buffer
	it, err := New(def).Tokenise(nil, "int x;")
	require.NoError(t, err)
	require.NoError(t, html.New(html.Standalone(false)).Format(&buf, cs, it))
	require.Contains(t, buf.String(), "#0000ee")
}

func TestThemeFromChromaStyle(t *testing.T) {
	def := registry.Default().MustGet("java")
	theme, ok := Theme("monokai", def)
	require.True(t, ok)
	require.Contains(t, theme, "keyword.types")
	require.Contains(t, theme, "custom.precompiler")
	require.True(t, strings.HasPrefix(string(theme["comment"]), "color:#"))

	_, ok = Theme("no-such-style", def)
	require.False(t, ok)
	require.Contains(t, StyleNames(), "monokai")
}
