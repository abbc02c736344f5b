package ui

import tea "github.com/charmbracelet/bubbletea"

// Outcome tells the key chain whether to offer a key to the next handler.
type Outcome uint8

const (
	// Continue passes the key on.
	Continue Outcome = iota
	// Stop consumes the key.
	Stop
)

// KeyHandler is one link of the playground's key chain. Handlers run in
// order until one returns Stop.
type KeyHandler func(p *Playground, key tea.KeyMsg) (Outcome, tea.Cmd)

// DefaultHandlers is the chain used when Options.Handlers is empty.
func DefaultHandlers() []KeyHandler {
	return []KeyHandler{quitKeys, toggleKeys, suggestionKeys, editorKeys}
}

func runChain(chain []KeyHandler, p *Playground, key tea.KeyMsg) tea.Cmd {
	var cmds []tea.Cmd
	for _, h := range chain {
		out, cmd := h(p, key)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		if out == Stop {
			break
		}
	}
	return tea.Batch(cmds...)
}

func quitKeys(p *Playground, key tea.KeyMsg) (Outcome, tea.Cmd) {
	switch key.Type {
	case tea.KeyCtrlC, tea.KeyCtrlD:
		p.quitting = true
		return Stop, tea.Quit
	case tea.KeyEsc:
		if p.suggesting() {
			return Continue, nil
		}
		p.quitting = true
		return Stop, tea.Quit
	}
	return Continue, nil
}

func toggleKeys(p *Playground, key tea.KeyMsg) (Outcome, tea.Cmd) {
	switch key.Type {
	case tea.KeyCtrlT:
		p.completion = !p.completion
		p.refresh()
		p.status = "completion " + onOff(p.completion)
		return Stop, nil
	case tea.KeyCtrlL:
		p.highlight = !p.highlight
		p.status = "highlight " + onOff(p.highlight)
		return Stop, nil
	}
	return Continue, nil
}

// suggestionKeys owns navigation while the list is open.
func suggestionKeys(p *Playground, key tea.KeyMsg) (Outcome, tea.Cmd) {
	if !p.suggesting() {
		return Continue, nil
	}
	n := len(p.suggestions.Entries)
	switch key.Type {
	case tea.KeyUp, tea.KeyCtrlP:
		p.selected = (p.selected + n - 1) % n
	case tea.KeyDown, tea.KeyCtrlN:
		p.selected = (p.selected + 1) % n
	case tea.KeyTab, tea.KeyEnter:
		p.accept()
	case tea.KeyEsc:
		p.dismiss()
	default:
		return Continue, nil
	}
	return Stop, nil
}

// editorKeys hands the key to the text area and recomputes suggestions.
func editorKeys(p *Playground, key tea.KeyMsg) (Outcome, tea.Cmd) {
	var cmd tea.Cmd
	p.editor, cmd = p.editor.Update(key)
	p.status = ""
	p.refresh()
	return Stop, cmd
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
