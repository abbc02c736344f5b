package source

import (
	"testing"
)

func TestSpanCover(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want Span
	}{
		{"disjoint", Span{0, 3}, Span{5, 9}, Span{0, 9}},
		{"nested", Span{0, 10}, Span{2, 4}, Span{0, 10}},
		{"reversed", Span{5, 9}, Span{0, 3}, Span{0, 9}},
		{"same", Span{1, 2}, Span{1, 2}, Span{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.want {
				t.Fatalf("Cover = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpanBasics(t *testing.T) {
	s := Span{Start: 4, End: 8}
	if s.Len() != 4 || s.Empty() {
		t.Fatalf("unexpected Len/Empty for %v", s)
	}
	if !s.Contains(4) || !s.Contains(7) || s.Contains(8) {
		t.Fatalf("Contains is not half-open for %v", s)
	}
	if !s.Adjacent(Span{Start: 8, End: 9}) || s.Adjacent(Span{Start: 9, End: 10}) {
		t.Fatalf("Adjacent mismatch")
	}
	if s.String() != "4-8" {
		t.Fatalf("String = %q", s.String())
	}
	if !(Span{3, 3}).Empty() {
		t.Fatalf("empty span not reported as empty")
	}
}

func TestSpanSlice(t *testing.T) {
	src := "Disallow: /admin"
	if got := (Span{0, 8}).Slice(src); got != "Disallow" {
		t.Fatalf("got %q", got)
	}
	if got := (Span{10, 100}).Slice(src); got != "/admin" {
		t.Fatalf("clamped slice: got %q", got)
	}
	if got := (Span{50, 60}).Slice(src); got != "" {
		t.Fatalf("out of range: got %q", got)
	}
}
