package registry_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hilite/internal/registry"
	"hilite/internal/trace"
)

func nextReload(t *testing.T, ch <-chan registry.Reload) registry.Reload {
	t.Helper()
	select {
	case r, ok := <-ch:
		require.True(t, ok, "watch channel closed")
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("no reload within 5s")
		return registry.Reload{}
	}
}

func TestWatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ini.toml")
	writeFile(t, path, tomlDef)

	ring := trace.NewRingTracer(64, trace.LevelError)
	reg := registry.New(registry.WithTracer(ring))
	_, err := reg.LoadDir(context.Background(), dir, 1)
	require.NoError(t, err)
	before := reg.MustGet("ini")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := reg.Watch(ctx, dir)
	require.NoError(t, err)

	// валидное изменение подменяет определение
	writeFile(t, path, tomlDef+"delimiters = [\"[\", \"]\"]\n")
	r := nextReload(t, ch)
	require.NoError(t, r.Err)
	require.Equal(t, []string{"ini"}, r.IDs)
	after := reg.MustGet("ini")
	require.NotSame(t, before, after)
	require.Equal(t, []string{"[", "]"}, after.Delimiters())

	// сломанный файл оставляет прежнее определение
	writeFile(t, path, "id = \"ini\"\ncustom_rules = [{ name = \"x\", pattern = \"(\" }]\n")
	r = nextReload(t, ch)
	require.Error(t, r.Err)
	require.Same(t, after, reg.MustGet("ini"))
	require.NotEmpty(t, ring.Errors())

	// удаление файла снимает регистрацию
	require.NoError(t, os.Remove(path))
	r = nextReload(t, ch)
	require.Equal(t, []string{"ini"}, r.Removed)
	_, ok := reg.Get("ini")
	require.False(t, ok)

	cancel()
	for range ch {
	}
}

func TestDeletingShadowRestoresBuiltin(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "java.toml")
	writeFile(t, path, "id = \"java\"\nextensions = [\".java\"]\noperators = [\"+\"]\n")

	reg, err := registry.NewWithBuiltins()
	require.NoError(t, err)
	ids, err := reg.LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, []string{"java"}, ids)
	require.False(t, reg.IsBuiltin("java"))
	require.Equal(t, []string{"+"}, reg.MustGet("java").Operators())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := reg.Watch(ctx, dir)
	require.NoError(t, err)

	require.NoError(t, os.Remove(path))
	r := nextReload(t, ch)
	require.NoError(t, r.Err)
	require.Empty(t, r.Removed)
	require.Equal(t, []string{"java"}, r.Restored)

	require.True(t, reg.IsBuiltin("java"))
	def, ok := reg.Detect("X.java")
	require.True(t, ok)
	require.Equal(t, "java", def.ID())
	require.Contains(t, def.Operators(), "&", "embedded definition is back")

	cancel()
	for range ch {
	}
}
