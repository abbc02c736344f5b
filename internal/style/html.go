package style

import (
	"io"
	"iter"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"hilite/internal/token"
)

// HTMLOptions control the HTML renderer.
type HTMLOptions struct {
	// ClassPrefix, when set, adds class="<prefix>keyword-types" style hooks.
	ClassPrefix string
	// Standalone wraps the fragment in a complete document.
	Standalone bool
	Title      string
}

// RenderHTML writes the stream as a <pre> block of styled spans. Styles
// are emitted inline from the canonical CSS of each descriptor.
func RenderHTML(w io.Writer, s *Styler, toks iter.Seq[token.Token], opts HTMLOptions) error {
	pre := element(atom.Pre, html.Attribute{Key: "class", Val: "hilite"})
	for tok := range toks {
		pre.AppendChild(tokenNode(s, tok, opts.ClassPrefix))
	}
	if !opts.Standalone {
		return html.Render(w, pre)
	}

	title := element(atom.Title)
	title.AppendChild(&html.Node{Type: html.TextNode, Data: opts.Title})
	meta := element(atom.Meta, html.Attribute{Key: "charset", Val: "utf-8"})
	head := element(atom.Head)
	head.AppendChild(meta)
	head.AppendChild(title)
	body := element(atom.Body)
	body.AppendChild(pre)
	root := element(atom.Html)
	root.AppendChild(head)
	root.AppendChild(body)

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(root)
	return html.Render(w, doc)
}

func tokenNode(s *Styler, tok token.Token, classPrefix string) *html.Node {
	text := &html.Node{Type: html.TextNode, Data: tok.Text}
	css := s.Style(tok).Props().CSS()
	if css == "" && (classPrefix == "" || tok.IsPlain()) {
		return text
	}
	span := element(atom.Span)
	if classPrefix != "" {
		span.Attr = append(span.Attr, html.Attribute{
			Key: "class",
			Val: classPrefix + strings.ReplaceAll(tok.Class.StyleKey(), ".", "-"),
		})
	}
	if css != "" {
		span.Attr = append(span.Attr, html.Attribute{Key: "style", Val: css})
	}
	span.AppendChild(text)
	return span
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}
