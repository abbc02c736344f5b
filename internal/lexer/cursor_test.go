package lexer

import (
	"testing"
)

// TestSequentialReading проверяет последовательное чтение: "a\nb" → a, \n, b, EOF
func TestSequentialReading(t *testing.T) {
	cursor := NewCursor("a\nb")

	for _, want := range []rune{'a', '\n', 'b'} {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got, sz := cursor.PeekRune(); got != want || sz != 1 {
			t.Fatalf("PeekRune = %q/%d, want %q/1", got, sz, want)
		}
		cursor.BumpRune()
	}
	if !cursor.EOF() {
		t.Fatal("Expected EOF at end")
	}
	cursor.BumpRune()
	if _, sz := cursor.PeekRune(); sz != 0 || cursor.Off != 3 {
		t.Fatalf("reads past EOF must not move the cursor, Off=%d", cursor.Off)
	}
}

func TestMarkResetSpan(t *testing.T) {
	cursor := NewCursor("Disallow: /")
	m := cursor.Mark()
	cursor.Advance(8)
	if sp := cursor.SpanFrom(m); sp.Start != 0 || sp.End != 8 {
		t.Fatalf("SpanFrom = %v", sp)
	}
	cursor.Reset(m)
	if cursor.Off != 0 {
		t.Fatalf("Reset left Off=%d", cursor.Off)
	}
	cursor.Advance(100)
	if !cursor.EOF() || cursor.Off != cursor.Limit {
		t.Fatalf("Advance must clamp to the limit, Off=%d", cursor.Off)
	}
}

func TestEatAndSkipTo(t *testing.T) {
	cursor := NewCursor("/* x */ y")
	if cursor.Eat("//") {
		t.Fatal("Eat must not consume a mismatching prefix")
	}
	if !cursor.Eat("/*") || cursor.Off != 2 {
		t.Fatalf("Eat(/*) failed, Off=%d", cursor.Off)
	}
	if cursor.Eat("") {
		t.Fatal("Eat of empty string must report false")
	}
	if !cursor.SkipTo("*/") || cursor.Rest() != "*/ y" {
		t.Fatalf("SkipTo left %q", cursor.Rest())
	}
	if cursor.SkipTo("nope") || !cursor.EOF() {
		t.Fatal("SkipTo of a missing marker must move to the end")
	}
}

func TestPeekRune(t *testing.T) {
	cursor := NewCursor("é\xffz")
	r, sz := cursor.PeekRune()
	if r != 'é' || sz != 2 {
		t.Fatalf("PeekRune = %q/%d", r, sz)
	}
	cursor.BumpRune()
	if _, sz = cursor.PeekRune(); sz != 1 {
		t.Fatalf("invalid byte must be read as one byte, got %d", sz)
	}
	cursor.BumpRune()
	cursor.BumpRune()
	if _, sz = cursor.PeekRune(); sz != 0 {
		t.Fatalf("PeekRune at EOF returned size %d", sz)
	}
}
