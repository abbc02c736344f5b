package langdef_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"hilite/internal/langdef"
)

const robotsTOML = `
id = "robots"
extensions = ["txt", ".conf"]
comment_single = ["#"]
operators = [":"]
word_chars = "-"

[[keyword_categories]]
name = "attributes"
words = ["User-agent", "Disallow"]

[styles]
COMMENTS = "color: #AAAAAA;"
"KEYWORDS.attributes" = "color: #48BDDF;"

[completion]
max_lookback = 50

[[completion.groups]]
scope = ""

[[completion.groups.entries]]
trigger = "Disallow"
detail = "block a path"
`

func TestDecodeTOML(t *testing.T) {
	spec, err := langdef.Decode([]byte(robotsTOML), langdef.FormatTOML)
	require.NoError(t, err)
	require.Equal(t, "robots", spec.ID)
	require.Equal(t, []string{"User-agent", "Disallow"}, spec.KeywordCategories[0].Words)
	require.Equal(t, 50, spec.Completion.MaxLookback)
	require.Equal(t, "block a path", spec.Completion.Groups[0].Entries[0].Detail)

	def, err := langdef.Compile(spec)
	require.NoError(t, err)
	require.Equal(t, []string{".txt", ".conf"}, def.Extensions())
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := langdef.Decode([]byte("id = \"x\"\nopertors = [\":\"]\n"), langdef.FormatTOML)
	require.ErrorContains(t, err, "opertors")

	_, err = langdef.Decode([]byte(`{"id":"x","keywords":[]}`), langdef.FormatJSON)
	require.Error(t, err)

	_, err = langdef.Decode([]byte("id: x\nquotes: ['\"']\n"), langdef.FormatYAML)
	require.Error(t, err)

	_, err = langdef.Decode([]byte("id: x"), langdef.FormatUnknown)
	require.ErrorIs(t, err, langdef.ErrUnknownFormat)
}

func TestTextFormatsAgree(t *testing.T) {
	orig, err := langdef.Decode([]byte(robotsTOML), langdef.FormatTOML)
	require.NoError(t, err)
	want, err := langdef.Compile(orig)
	require.NoError(t, err)

	for _, f := range []langdef.Format{langdef.FormatJSON, langdef.FormatYAML, langdef.FormatTOML} {
		var buf bytes.Buffer
		require.NoError(t, langdef.Encode(&buf, orig, f), f.String())
		back, err := langdef.Decode(buf.Bytes(), f)
		require.NoError(t, err, f.String())
		got, err := langdef.Compile(back)
		require.NoError(t, err)
		require.Equal(t, want.Fingerprint(), got.Fingerprint(), f.String())
	}
}

func TestBundle(t *testing.T) {
	a, err := langdef.Decode([]byte(robotsTOML), langdef.FormatTOML)
	require.NoError(t, err)
	b := a.Clone()
	b.ID = "robots2"

	var buf bytes.Buffer
	require.NoError(t, langdef.EncodeBundle(&buf, []langdef.Spec{a, b}))

	bundle, err := langdef.DecodeBundle(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, bundle.Definitions, 2)
	require.Equal(t, "robots2", bundle.Definitions[1].ID)

	_, err = langdef.Decode(buf.Bytes(), langdef.FormatBundle)
	require.ErrorContains(t, err, "holds 2 definitions")
}

func TestFormatFromPath(t *testing.T) {
	require.Equal(t, langdef.FormatYAML, langdef.FormatFromPath("defs/java.YML"))
	require.Equal(t, langdef.FormatBundle, langdef.FormatFromPath("all.mpk"))
	require.Equal(t, langdef.FormatUnknown, langdef.FormatFromPath("README.md"))

	f, err := langdef.ParseFormat("yml")
	require.NoError(t, err)
	require.Equal(t, langdef.FormatYAML, f)
}
