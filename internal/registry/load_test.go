package registry_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"hilite/internal/diag"
	"hilite/internal/langdef"
	"hilite/internal/registry"
	"hilite/internal/trace"
)

const tomlDef = `
id = "ini"
extensions = [".ini"]
comment_single = [";"]
operators = ["="]
`

const jsonDef = `{"id": "props", "extensions": [".props"], "comment_single": ["!"]}`

const yamlDef = `
id: env
extensions: [".env"]
comment_single: ["#"]
operators: ["="]
`

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.toml"), tomlDef)
	writeFile(t, filepath.Join(dir, "nested", "b.json"), jsonDef)
	writeFile(t, filepath.Join(dir, "c.yaml"), yamlDef)
	writeFile(t, filepath.Join(dir, "notes.md"), "# ignored")

	reg := registry.New()
	ids, err := reg.LoadDir(context.Background(), dir, 2)
	require.NoError(t, err)
	require.Equal(t, []string{"ini", "env", "props"}, ids, "registered in sorted path order")
	require.Equal(t, []string{"env", "ini", "props"}, reg.IDs())
	require.Equal(t, filepath.Join(dir, "a.toml"), reg.Origin("ini"))

	def, ok := reg.Detect("setup.INI")
	require.True(t, ok)
	require.Equal(t, "ini", def.ID())
}

func TestLoadDirReportsBrokenFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "good.toml"), tomlDef)
	writeFile(t, filepath.Join(dir, "typo.toml"), tomlDef+"\ncoment_multi = []\n")
	writeFile(t, filepath.Join(dir, "z-dup.yaml"), "id: ini\n")
	writeFile(t, filepath.Join(dir, "pattern.json"), `{"id":"p","custom_rules":[{"name":"x","pattern":"("}]}`)

	ring := trace.NewRingTracer(64, trace.LevelError)
	reg := registry.New(registry.WithTracer(ring))
	ids, err := reg.LoadDir(context.Background(), dir, 0)
	require.Error(t, err)
	require.Equal(t, []string{"ini"}, ids)

	defErrs := registry.DefinitionErrors(err)
	require.Len(t, defErrs, 3)

	var codes []diag.Code
	for _, de := range defErrs {
		for _, d := range de.Diagnostics {
			codes = append(codes, d.Code)
		}
	}
	require.Contains(t, codes, diag.DefDuplicateID)
	require.Contains(t, codes, diag.DefBadPattern)
	require.Contains(t, codes, diag.LoadDecode)
	require.Len(t, ring.Errors(), 3)
}

func TestFilesShadowBuiltins(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "java.toml"), "id = \"java\"\nextensions = [\".java\"]\n")

	reg, err := registry.NewWithBuiltins()
	require.NoError(t, err)
	ids, err := reg.LoadFile(filepath.Join(dir, "java.toml"))
	require.NoError(t, err)
	require.Equal(t, []string{"java"}, ids)
	require.False(t, reg.IsBuiltin("java"))
	require.Empty(t, reg.MustGet("java").Categories())

	// повторная загрузка того же файла разрешена
	_, err = reg.LoadFile(filepath.Join(dir, "java.toml"))
	require.NoError(t, err)

	writeFile(t, filepath.Join(dir, "other.toml"), "id = \"java\"\n")
	_, err = reg.LoadFile(filepath.Join(dir, "other.toml"))
	require.Error(t, err)
}

func TestLoadBundle(t *testing.T) {
	specs, err := registry.BuiltinSpecs()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, langdef.EncodeBundle(&buf, specs))
	path := filepath.Join(t.TempDir(), "all.mpk")
	writeFile(t, path, buf.String())

	reg := registry.New()
	ids, err := reg.LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, []string{"conf", "java"}, ids)

	want := registry.Default().MustGet("java").Fingerprint()
	require.Equal(t, want, reg.MustGet("java").Fingerprint())
}

func TestLoadFileErrors(t *testing.T) {
	reg := registry.New()

	_, err := reg.LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	require.True(t, registry.DefinitionErrors(err)[0].Has(diag.LoadRead))

	_, err = reg.LoadFile("defs.xml")
	require.ErrorIs(t, err, langdef.ErrUnknownFormat)
}
