package lsp

import "testing"

func TestOffsetForPosition(t *testing.T) {
	text := "a😀b\nsecond\n"
	tests := []struct {
		pos  position
		want int
	}{
		{position{0, 0}, 0},
		{position{0, 1}, 1},
		// the emoji is two UTF-16 units; a position in its middle stays before it
		{position{0, 2}, 1},
		{position{0, 3}, 5},
		{position{0, 4}, 6},
		{position{0, 99}, 6},
		{position{1, 3}, 10},
		{position{2, 0}, 14},
		{position{7, 0}, 14},
		{position{-1, 0}, 0},
	}
	for _, tt := range tests {
		if got := offsetForPosition(text, tt.pos); got != tt.want {
			t.Errorf("offsetForPosition(%+v) = %d, want %d", tt.pos, got, tt.want)
		}
	}
}

func TestPositionForOffsetRoundTrip(t *testing.T) {
	text := "x = \"😀\"\n  y\n"
	for off := 0; off <= len(text); off++ {
		pos := positionForOffset(text, off)
		back := offsetForPosition(text, pos)
		// offsets inside a multi-byte rune map to the rune end
		if back != off && back < off {
			t.Fatalf("offset %d -> %+v -> %d", off, pos, back)
		}
	}
	if got := positionForOffset(text, len(text)); got != (position{Line: 2, Character: 0}) {
		t.Fatalf("end position = %+v", got)
	}
}

func TestApplyChanges(t *testing.T) {
	text := "Disallow: /a\nAllow: /b\n"
	got := applyChanges(text, []textDocumentContentChangeEvent{
		{Range: &lspRange{Start: position{0, 10}, End: position{0, 12}}, Text: "/admin"},
		{Range: &lspRange{Start: position{1, 0}, End: position{1, 5}}, Text: "User-agent"},
	})
	want := "Disallow: /admin\nUser-agent: /b\n"
	if got != want {
		t.Fatalf("applyChanges = %q, want %q", got, want)
	}
	if got := applyChanges(text, []textDocumentContentChangeEvent{{Text: "full"}}); got != "full" {
		t.Fatalf("full sync = %q", got)
	}
}
