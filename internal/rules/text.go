package rules

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// Text is the rune view rules match against. regexp2 works on runes, so the
// buffer is decoded one segment at a time and the decoding is reused while
// the tokenizer walks forward through it: a line for ordinary rules, a
// window of up to 2*MaxWindow bytes for rules with the "s" flag. Decoding
// therefore costs O(len(src)) over a whole pass instead of O(len(src)) per
// token.
//
// A Text belongs to one tokenizer and is not safe for concurrent use.
type Text struct {
	src   string
	line  segment
	whole segment
}

type segment struct {
	start, end int // byte range of src
	runes      []rune
	offs       []int // byte offset of every rune relative to start, plus the length
	valid      bool
}

// NewText wraps src. Nothing is decoded until a rule asks for it.
func NewText(src string) *Text {
	return &Text{src: src}
}

// Source returns the wrapped buffer.
func (t *Text) Source() string { return t.src }

// view returns the runes a rule may look at from byte offset off, the rune
// index of off in them and the byte offsets table. The runes never reach
// further than MaxWindow bytes past off.
func (t *Text) view(off int, wholeText bool) (runes []rune, at int, offs []int, ok bool) {
	if off < 0 || off >= len(t.src) || (!wholeText && t.src[off] == '\n') {
		return nil, 0, nil, false
	}
	seg := &t.line
	if wholeText {
		seg = &t.whole
		if !seg.covers(off) || (seg.end < len(t.src) && off+MaxWindow > seg.end) {
			t.decode(seg, off, clampRune(t.src, off+2*MaxWindow))
		}
	} else if !seg.covers(off) {
		start := strings.LastIndexByte(t.src[:off], '\n') + 1
		end := len(t.src)
		if i := strings.IndexByte(t.src[off:], '\n'); i >= 0 {
			end = off + i
		}
		t.decode(seg, start, end)
	}

	at, found := slices.BinarySearch(seg.offs, off-seg.start)
	if !found || at >= len(seg.runes) {
		return nil, 0, nil, false
	}
	limit := len(seg.runes)
	if seg.end-off > MaxWindow {
		limit, _ = slices.BinarySearch(seg.offs, clampRune(t.src, off+MaxWindow)-seg.start)
	}
	return seg.runes[:limit], at, seg.offs, true
}

func (s *segment) covers(off int) bool {
	return s.valid && off >= s.start && off < s.end
}

func (t *Text) decode(seg *segment, start, end int) {
	part := t.src[start:end]
	seg.runes = seg.runes[:0]
	seg.offs = seg.offs[:0]
	for i, r := range part {
		seg.runes = append(seg.runes, r)
		seg.offs = append(seg.offs, i)
	}
	seg.offs = append(seg.offs, len(part))
	seg.start, seg.end, seg.valid = start, end, true
}

// clampRune moves n back onto a rune boundary of src, or to len(src).
func clampRune(src string, n int) int {
	if n >= len(src) {
		return len(src)
	}
	for n > 0 && !utf8.RuneStart(src[n]) {
		n--
	}
	return n
}
