package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTextDecodesEachLineOnce(t *testing.T) {
	src := strings.Repeat("x", 1000) + "\n" + strings.Repeat("y", 10)
	text := NewText(src)

	_, _, _, ok := text.view(0, false)
	require.True(t, ok)
	text.line.runes[999] = '!' // пометка пропадёт, если строку декодируют заново
	for off := 1; off < 1000; off++ {
		runes, at, _, ok := text.view(off, false)
		require.True(t, ok)
		require.Equal(t, off, at)
		require.Len(t, runes, 1000)
	}
	require.Equal(t, '!', text.line.runes[999], "line was decoded again")

	runes, at, _, ok := text.view(1001, false)
	require.True(t, ok)
	require.Zero(t, at)
	require.Len(t, runes, 10)

	_, _, _, ok = text.view(1000, false)
	require.False(t, ok, "newline belongs to no line")
}

func TestTextWholeWindowSlides(t *testing.T) {
	src := strings.Repeat("z", 3*MaxWindow)
	text := NewText(src)

	runes, at, _, ok := text.view(0, true)
	require.True(t, ok)
	require.Zero(t, at)
	require.Len(t, runes, MaxWindow)
	require.Equal(t, 2*MaxWindow, text.whole.end)

	runes, at, _, ok = text.view(MaxWindow/2, true)
	require.True(t, ok)
	require.Equal(t, MaxWindow/2, at)
	require.Len(t, runes, MaxWindow/2+MaxWindow)
	require.Zero(t, text.whole.start, "window reused while it still covers MaxWindow bytes")

	_, at, _, ok = text.view(MaxWindow+1, true)
	require.True(t, ok)
	require.Zero(t, at)
	require.Equal(t, MaxWindow+1, text.whole.start)
}
