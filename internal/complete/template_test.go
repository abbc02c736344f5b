package complete_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"hilite/internal/complete"
	"hilite/internal/langdef"
)

func TestExpand(t *testing.T) {
	tests := []struct {
		entry  langdef.Entry
		text   string
		stops  []int
		cursor int
	}{
		{langdef.Entry{Trigger: "debug", Insert: "debug({@});"}, "debug();", []int{6}, 6},
		{langdef.Entry{Trigger: "addHeader", Insert: "addHeader({@},{@})"}, "addHeader(,)", []int{10, 11}, 10},
		{langdef.Entry{Trigger: "getUrl", Insert: "getUrl()"}, "getUrl()", nil, 8},
		{langdef.Entry{Trigger: "minify"}, "minify", nil, 6},
	}
	for _, tt := range tests {
		got := complete.Expand(tt.entry)
		require.Equal(t, tt.text, got.Text, tt.entry.Trigger)
		require.Equal(t, tt.stops, got.Stops, tt.entry.Trigger)
		require.Equal(t, tt.cursor, got.Cursor(), tt.entry.Trigger)
	}
}

func TestSnippet(t *testing.T) {
	require.Equal(t, "addHeader($1,$2)$0", complete.Snippet(langdef.Entry{Trigger: "a", Insert: "addHeader({@},{@})"}))
	require.Equal(t, "getUrl()", complete.Snippet(langdef.Entry{Trigger: "getUrl", Insert: "getUrl()"}))
	require.Equal(t, `cost\$ {x\}$1$0`, complete.Snippet(langdef.Entry{Trigger: "c", Insert: "cost$ {x}{@}"}))
}
