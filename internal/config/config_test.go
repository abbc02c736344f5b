package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func write(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, FileName), `
fallback = "java"

[definitions]
dirs = ["defs", "/abs/defs"]

[editor]
autocompletion = false

[completion]
max_lookback = 40

[highlight]
theme = "monokai"

[filetypes]
".jsh" = "java"
`)
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, ok, err := Discover(nested)
	if err != nil || !ok {
		t.Fatalf("Discover: ok=%v err=%v", ok, err)
	}
	if cfg.Fallback != "java" || cfg.Highlight.Theme != "monokai" || cfg.Completion.MaxLookback != 40 {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.Editor.Autocompletion {
		t.Error("autocompletion should be off")
	}
	if !cfg.Editor.StartHighlight {
		t.Error("start_highlight keeps its default")
	}
	if cfg.Definitions.Dirs[0] != filepath.Join(root, "defs") || cfg.Definitions.Dirs[1] != "/abs/defs" {
		t.Errorf("dirs = %v", cfg.Definitions.Dirs)
	}
	if cfg.FileTypes[".jsh"] != "java" {
		t.Errorf("filetypes = %v", cfg.FileTypes)
	}
}

func TestDiscoverWithoutFile(t *testing.T) {
	cfg, ok, err := Discover(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	// временный каталог может лежать внутри проекта с hilite.toml
	if !ok && cfg.Fallback != "conf" {
		t.Errorf("default fallback = %q", cfg.Fallback)
	}
}

func TestLoadRejects(t *testing.T) {
	tests := map[string]string{
		"unknown key":    "[editor]\nautocomplete = true\n",
		"bad lookback":   "[completion]\nmax_lookback = 0\n",
		"empty fallback": "fallback = \"\"\n",
		"syntax":         "[editor\n",
	}
	for name, body := range tests {
		path := filepath.Join(t.TempDir(), FileName)
		write(t, path, body)
		if _, err := Load(path); err == nil || !strings.Contains(err.Error(), path) {
			t.Errorf("%s: want error mentioning the path, got %v", name, err)
		}
	}
}
