package driver

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"hilite/internal/registry"
	"hilite/internal/token"
)

func writeTemp(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTokenizeDetectsDefinition(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "robots.txt", "\ufeffDisallow: /x\r\n")

	fs, res, err := Tokenize(registry.Default(), path, Options{MergePlain: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.Def.ID() != "conf" {
		t.Fatalf("detected %q", res.Def.ID())
	}
	if got := string(fs.Get(res.FileID).Content); got != "Disallow: /x\n" {
		t.Fatalf("content not normalized: %q", got)
	}
	if len(res.Tokens) != 3 || !res.Tokens[0].Is(token.Keyword) {
		t.Fatalf("tokens = %v", res.Tokens)
	}
}

func TestTokenizeForcedLang(t *testing.T) {
	_, res, err := TokenizeSource(registry.Default(), "<stdin>", []byte("int x;"), Options{Lang: "java"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Tokens[0].Class != token.KeywordClass("types") {
		t.Fatalf("first token = %v", res.Tokens[0])
	}

	if _, _, err := TokenizeSource(registry.Default(), "<stdin>", nil, Options{Lang: "cobol"}); err == nil {
		t.Fatal("unknown language must fail")
	}
}

func TestTokenizeFiles(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeTemp(t, dir, "A.java", "class A {}"),
		filepath.Join(dir, "missing.java"),
		writeTemp(t, dir, "site.conf", "Allow: /"),
	}

	_, results, err := TokenizeFiles(context.Background(), registry.Default(), paths, Options{Jobs: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("results = %d", len(results))
	}
	if results[0].Err != nil || results[0].Def.ID() != "java" || len(results[0].Tokens) == 0 {
		t.Errorf("A.java: %+v", results[0])
	}
	if results[1].Err == nil {
		t.Error("missing file must report an error")
	}
	if results[2].Err != nil || results[2].Def.ID() != "conf" {
		t.Errorf("site.conf: %+v", results[2])
	}
}

func TestTokenizeFilesProgress(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeTemp(t, dir, "a.conf", "Allow: /"),
		filepath.Join(dir, "gone.conf"),
	}

	var mu sync.Mutex
	seen := make(map[string][]Status)
	opts := Options{Jobs: 1, Progress: func(ev Event) {
		mu.Lock()
		defer mu.Unlock()
		seen[ev.Path] = append(seen[ev.Path], ev.Status)
	}}
	if _, _, err := TokenizeFiles(context.Background(), registry.Default(), paths, opts); err != nil {
		t.Fatal(err)
	}
	if got := seen[paths[0]]; !slices.Equal(got, []Status{StatusQueued, StatusWorking, StatusDone}) {
		t.Errorf("a.conf statuses = %v", got)
	}
	if got := seen[paths[1]]; !slices.Equal(got, []Status{StatusError}) {
		t.Errorf("gone.conf statuses = %v", got)
	}
}
