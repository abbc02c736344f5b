package ui

import (
	"strings"
	"testing"

	"hilite/internal/driver"
)

func TestProgressModelTracksEvents(t *testing.T) {
	events := make(chan driver.Event)
	files := []string{"robots.txt", "Filter.java"}
	m := NewProgressModel("tokenizing", files, events).(*progressModel)

	m.Update(eventMsg{Path: "robots.txt", Status: driver.StatusWorking})
	if got := m.fraction(); got != 0.25 {
		t.Fatalf("fraction = %v", got)
	}
	m.Update(eventMsg{Path: "robots.txt", Status: driver.StatusDone, Tokens: 7})
	m.Update(eventMsg{Path: "Filter.java", Status: driver.StatusError})
	m.Update(eventMsg{Path: "unknown", Status: driver.StatusDone})
	if got := m.fraction(); got != 1 {
		t.Fatalf("fraction = %v", got)
	}

	view := m.View()
	for _, want := range []string{"7 tok", "error", "robots.txt"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view misses %q:\n%s", want, view)
		}
	}

	close(events)
	if msg := m.listenForEvent()(); msg != (doneMsg{}) {
		t.Fatalf("closed channel should finish the model, got %#v", msg)
	}
	m.Update(doneMsg{})
	if !strings.Contains(m.View(), "done: tokenizing") {
		t.Fatalf("unexpected final view:\n%s", m.View())
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("internal/registry/builtin/java.toml", 12); got != "internal/..." {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("短い", 10); got != "短い" {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("abcdef", 2); got != "ab" {
		t.Fatalf("truncate = %q", got)
	}
}
