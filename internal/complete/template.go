package complete

import (
	"strconv"
	"strings"

	"hilite/internal/langdef"
)

// CursorMark marks a cursor stop inside an insertion template.
const CursorMark = "{@}"

// Insertion is an expanded template ready to be applied.
type Insertion struct {
	Text string
	// Stops are byte offsets into Text, one per CursorMark, in order.
	Stops []int
}

// Cursor returns where the caret goes after inserting: the first stop, or
// the end of the text.
func (in Insertion) Cursor() int {
	if len(in.Stops) > 0 {
		return in.Stops[0]
	}
	return len(in.Text)
}

// Expand removes cursor marks from the entry's template and records their
// positions.
func Expand(e langdef.Entry) Insertion {
	tpl := e.InsertText()
	var b strings.Builder
	var stops []int
	for {
		i := strings.Index(tpl, CursorMark)
		if i < 0 {
			b.WriteString(tpl)
			break
		}
		b.WriteString(tpl[:i])
		stops = append(stops, b.Len())
		tpl = tpl[i+len(CursorMark):]
	}
	return Insertion{Text: b.String(), Stops: stops}
}

// Snippet converts the entry's template into LSP snippet syntax: cursor
// marks become $1, $2, ... and the final position $0.
func Snippet(e langdef.Entry) string {
	tpl := e.InsertText()
	var b strings.Builder
	n := 0
	for {
		i := strings.Index(tpl, CursorMark)
		if i < 0 {
			b.WriteString(escapeSnippet(tpl))
			break
		}
		b.WriteString(escapeSnippet(tpl[:i]))
		n++
		b.WriteString("$" + strconv.Itoa(n))
		tpl = tpl[i+len(CursorMark):]
	}
	if n > 0 {
		b.WriteString("$0")
	}
	return b.String()
}

var snippetEscaper = strings.NewReplacer(`\`, `\\`, `$`, `\$`, `}`, `\}`)

func escapeSnippet(s string) string { return snippetEscaper.Replace(s) }
