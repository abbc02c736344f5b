package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"hilite/internal/complete"
	"hilite/internal/langdef"
	"hilite/internal/lexer"
	"hilite/internal/style"
)

const maxSuggestions = 8

// Options configure a playground session.
type Options struct {
	Def      *langdef.Definition
	Resolver *complete.Resolver
	// ANSI renders the highlighted preview; nil disables the preview.
	ANSI *style.ANSI
	// Text is the initial buffer.
	Text           string
	Autocompletion bool
	Highlight      bool
	// Handlers replaces DefaultHandlers when non-empty.
	Handlers []KeyHandler
}

// Playground is an interactive editor that highlights the buffer as it is
// typed and offers completions for the text before the cursor.
type Playground struct {
	editor      textarea.Model
	def         *langdef.Definition
	resolver    *complete.Resolver
	ansi        *style.ANSI
	chain       []KeyHandler
	suggestions complete.Result
	selected    int
	completion  bool
	highlight   bool
	status      string
	width       int
	quitting    bool
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	previewStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	detailStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// NewPlayground builds the model. The resolver may be nil when the
// definition has no completion data.
func NewPlayground(opts Options) *Playground {
	ta := textarea.New()
	ta.CharLimit = 0
	ta.ShowLineNumbers = true
	ta.SetWidth(80)
	ta.SetHeight(10)
	ta.SetValue(opts.Text)
	ta.Focus()

	chain := opts.Handlers
	if len(chain) == 0 {
		chain = DefaultHandlers()
	}
	return &Playground{
		editor:     ta,
		def:        opts.Def,
		resolver:   opts.Resolver,
		ansi:       opts.ANSI,
		chain:      chain,
		completion: opts.Autocompletion && opts.Resolver != nil,
		highlight:  opts.Highlight && opts.ANSI != nil,
		width:      80,
	}
}

func (p *Playground) Init() tea.Cmd {
	return textarea.Blink
}

func (p *Playground) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return p, runChain(p.chain, p, msg)
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			p.width = msg.Width
			p.editor.SetWidth(msg.Width - 2)
		}
		if msg.Height > 0 {
			p.editor.SetHeight(max(msg.Height/3, 3))
		}
		return p, nil
	}
	var cmd tea.Cmd
	p.editor, cmd = p.editor.Update(msg)
	return p, cmd
}

func (p *Playground) View() string {
	if p.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("hilite playground: %s", p.def.Name())))
	b.WriteString("\n")
	b.WriteString(p.editor.View())
	b.WriteString("\n")
	if list := p.renderSuggestions(); list != "" {
		b.WriteString(list)
	}
	if p.highlight {
		b.WriteString(previewStyle.Width(max(p.width-4, 10)).Render(p.Highlighted()))
		b.WriteString("\n")
	}
	help := "ctrl+t completion " + onOff(p.completion) + " · ctrl+l highlight " + onOff(p.highlight) + " · esc quit"
	if p.status != "" {
		help = p.status + " · " + help
	}
	b.WriteString(helpStyle.Render(help))
	return b.String()
}

// Value returns the current buffer.
func (p *Playground) Value() string { return p.editor.Value() }

// Suggestions returns what the list currently offers.
func (p *Playground) Suggestions() complete.Result { return p.suggestions }

// Highlighted renders the buffer through the ANSI renderer.
func (p *Playground) Highlighted() string {
	if p.ansi == nil {
		return p.Value()
	}
	var b strings.Builder
	if err := p.ansi.Render(&b, lexer.All(p.def, p.Value(), lexer.Options{MergePlain: true})); err != nil {
		return p.Value()
	}
	return b.String()
}

// CursorOffset is the byte offset of the cursor in Value.
func (p *Playground) CursorOffset() int {
	value := p.editor.Value()
	row := p.editor.Line()
	info := p.editor.LineInfo()
	col := info.StartColumn + info.ColumnOffset
	off := 0
	for i, line := range strings.Split(value, "\n") {
		if i == row {
			for j := range line {
				if col == 0 {
					return off + j
				}
				col--
			}
			return off + len(line)
		}
		off += len(line) + 1
	}
	return len(value)
}

func (p *Playground) suggesting() bool {
	return p.completion && !p.suggestions.Empty()
}

func (p *Playground) refresh() {
	p.selected = 0
	if !p.completion || p.resolver == nil {
		p.suggestions = complete.Result{}
		return
	}
	p.suggestions = p.resolver.ResolveAt(p.editor.Value(), p.CursorOffset())
	if len(p.suggestions.Entries) > maxSuggestions {
		p.suggestions.Entries = p.suggestions.Entries[:maxSuggestions]
	}
}

func (p *Playground) dismiss() {
	p.suggestions = complete.Result{}
	p.selected = 0
}

// accept replaces the typed prefix with the selected entry and puts the
// cursor on the template's first stop.
func (p *Playground) accept() {
	entry := p.suggestions.Entries[p.selected]
	ins := complete.Expand(entry)
	for range utf8.RuneCountInString(p.suggestions.Prefix) {
		p.editor, _ = p.editor.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	}
	p.editor.InsertString(ins.Text)
	for range utf8.RuneCountInString(ins.Text[ins.Cursor():]) {
		p.editor, _ = p.editor.Update(tea.KeyMsg{Type: tea.KeyLeft})
	}
	p.status = "inserted " + entry.DisplayLabel()
	p.dismiss()
}

func (p *Playground) renderSuggestions() string {
	if !p.suggesting() {
		return ""
	}
	labelWidth := 0
	for _, e := range p.suggestions.Entries {
		labelWidth = max(labelWidth, runewidth.StringWidth(e.DisplayLabel()))
	}
	labelWidth = min(labelWidth, max(p.width/2, 12))
	detailWidth := max(p.width-labelWidth-6, 0)

	var b strings.Builder
	for i, e := range p.suggestions.Entries {
		label := runewidth.FillRight(truncate(e.DisplayLabel(), labelWidth), labelWidth)
		if i == p.selected {
			label = selectedStyle.Render(label)
		}
		line := "  " + label
		if detail := truncate(e.Detail, detailWidth); detail != "" && detailWidth > 0 {
			line += "  " + detailStyle.Render(detail)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if p.suggestions.Fallback {
		b.WriteString(helpStyle.Render("  (no entries for this scope, showing global)"))
		b.WriteString("\n")
	}
	return b.String()
}
