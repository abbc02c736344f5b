package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("robots.txt", []byte("User-agent: *"), 0)
	if id1 != 0 {
		t.Errorf("Expected first FileID to be 0, got %d", id1)
	}
	latestID, exists := fs.GetLatest("robots.txt")
	if !exists || latestID != id1 {
		t.Fatalf("Expected latest ID %d, got %d (exists=%v)", id1, latestID, exists)
	}

	// та же запись с новым содержимым
	id2 := fs.Add("robots.txt", []byte("Disallow: /"), 0)
	if id2 != 1 {
		t.Errorf("Expected second FileID to be 1, got %d", id2)
	}
	latestID, _ = fs.GetLatest("robots.txt")
	if latestID != id2 {
		t.Errorf("Expected latest ID to be %d, got %d", id2, latestID)
	}
	if got := string(fs.Get(id1).Content); got != "User-agent: *" {
		t.Errorf("old version lost: %q", got)
	}
	if fs.Len() != 2 {
		t.Errorf("Expected 2 buffers, got %d", fs.Len())
	}
}

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.conf", []byte("a\nb\n"))
	file := fs.Get(id)

	expected := []uint32{1, 3}
	if len(file.LineIdx) != len(expected) {
		t.Fatalf("Expected LineIdx length %d, got %d", len(expected), len(file.LineIdx))
	}
	for i, val := range expected {
		if file.LineIdx[i] != val {
			t.Errorf("Expected LineIdx[%d] = %d, got %d", i, val, file.LineIdx[i])
		}
	}
	if file.Flags&FileVirtual == 0 {
		t.Error("Expected FileVirtual flag to be set")
	}
}

func TestLoadNormalizesBOMAndCRLF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "robots.conf")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFAllow: /\r\nDisallow: /x\r\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "Allow: /\nDisallow: /x\n" {
		t.Fatalf("unexpected content %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("expected BOM and CRLF flags, got %b", f.Flags)
	}
}

func TestResolvePositions(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("x", []byte("ab\ncd\n\nef"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{2, LineCol{1, 3}}, // сам '\n'
		{3, LineCol{2, 1}},
		{6, LineCol{3, 1}},
		{7, LineCol{4, 1}},
		{9, LineCol{4, 3}},
	}
	f := fs.Get(id)
	for _, tt := range tests {
		if got := f.Position(tt.off); got != tt.want {
			t.Errorf("Position(%d) = %+v, want %+v", tt.off, got, tt.want)
		}
		if got := f.Offset(tt.want); got != tt.off {
			t.Errorf("Offset(%+v) = %d, want %d", tt.want, got, tt.off)
		}
	}

	start, end := fs.Resolve(id, Span{Start: 3, End: 5})
	if start != (LineCol{2, 1}) || end != (LineCol{2, 3}) {
		t.Errorf("Resolve = %+v..%+v", start, end)
	}
}

func TestOffsetClamps(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("x", []byte("ab\ncd")))

	if got := f.Offset(LineCol{Line: 1, Col: 40}); got != 2 {
		t.Errorf("column past end of line: got %d, want 2", got)
	}
	if got := f.Offset(LineCol{Line: 9, Col: 1}); got != 5 {
		t.Errorf("line past end of buffer: got %d, want 5", got)
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("x", []byte("first\nsecond\n")))

	for n, want := range map[uint32]string{0: "", 1: "first", 2: "second", 3: "", 4: ""} {
		if got := f.GetLine(n); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", n, got, want)
		}
	}
}
