package lexer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"fortio.org/safecast"

	"hilite/internal/source"
)

// Cursor представляет собой позицию в буфере
type Cursor struct {
	Src string
	Off uint32
	// Limit is the exclusive upper bound for Off; defaults to len(Src).
	Limit uint32
}

// NewCursor creates a new cursor over src.
func NewCursor(src string) Cursor {
	limit, err := safecast.Conv[uint32](len(src))
	if err != nil {
		panic(fmt.Errorf("len buffer overflow: %w", err))
	}
	return Cursor{Src: src, Limit: limit}
}

// EOF проверяет, достигнут ли конец буфера
func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

// PeekRune декодирует текущую руну; size 0 на EOF.
// Битый UTF-8 читается как RuneError длиной в один байт.
func (c *Cursor) PeekRune() (r rune, size int) {
	if c.EOF() {
		return utf8.RuneError, 0
	}
	if b := c.Src[c.Off]; b < utf8.RuneSelf { // fast-path ASCII
		return rune(b), 1
	}
	return utf8.DecodeRuneInString(c.Src[c.Off:c.Limit])
}

// BumpRune перемещает курсор на одну руну вперед.
func (c *Cursor) BumpRune() {
	_, sz := c.PeekRune()
	c.Advance(sz)
}

// Advance moves the cursor n bytes forward, stopping at the limit.
func (c *Cursor) Advance(n int) {
	un, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("advance overflow: %w", err))
	}
	c.Off = min(c.Off+un, c.Limit)
}

// HasPrefix reports whether the rest of the buffer starts with s.
func (c *Cursor) HasPrefix(s string) bool {
	return strings.HasPrefix(c.Rest(), s)
}

// Eat consumes s if the rest of the buffer starts with it.
func (c *Cursor) Eat(s string) bool {
	if s == "" || !c.HasPrefix(s) {
		return false
	}
	c.Advance(len(s))
	return true
}

// SkipTo moves the cursor to the next occurrence of s, or to the limit.
// It reports whether s was found.
func (c *Cursor) SkipTo(s string) bool {
	i := strings.Index(c.Rest(), s)
	if i < 0 {
		c.Off = c.Limit
		return false
	}
	c.Advance(i)
	return true
}

// Rest returns the unread part of the buffer.
func (c *Cursor) Rest() string {
	return c.Src[c.Off:c.Limit]
}

// Mark это метка, что бы быстро получать Span читаемого фрагмента
type Mark uint32

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// SpanFrom получает Span для фрагмента, начиная с метки
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{Start: uint32(m), End: c.Off}
}

// Reset возвращает курсор назад к метке
func (c *Cursor) Reset(m Mark) {
	c.Off = uint32(m)
}
