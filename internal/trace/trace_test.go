package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		err  bool
	}{
		{"off", LevelOff, false},
		{"ERROR", LevelError, false},
		{"phase", LevelPhase, false},
		{"detail", LevelDetail, false},
		{"debug", LevelDebug, false},
		{"loud", LevelOff, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.err {
			t.Fatalf("ParseLevel(%q) err = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestShouldEmit(t *testing.T) {
	if LevelPhase.ShouldEmit(ScopeDocument) {
		t.Error("phase level must not emit document events")
	}
	if !LevelPhase.ShouldEmit(ScopeRegistry) {
		t.Error("phase level must emit registry events")
	}
	if !LevelDetail.ShouldEmit(ScopeDocument) || LevelDetail.ShouldEmit(ScopeToken) {
		t.Error("detail level stops at document scope")
	}
	if !LevelDebug.ShouldEmit(ScopeToken) {
		t.Error("debug emits everything")
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)

	span := Begin(tr, ScopeRegistry, "load-dir", 0)
	span.WithExtra("files", "2").End("ok")
	Point(tr, ScopeDocument, "skipped", "too detailed")

	out := buf.String()
	if !strings.Contains(out, "→ registry:load-dir") || !strings.Contains(out, "← registry:load-dir (ok) {files=2}") {
		t.Fatalf("unexpected trace:\n%s", out)
	}
	if strings.Contains(out, "skipped") {
		t.Fatalf("document event leaked at phase level:\n%s", out)
	}
}

func TestErrorEventsBypassScope(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelError, FormatNDJSON)

	Begin(tr, ScopeCommand, "highlight", 0).End("")
	Error(tr, ScopeRegistry, "reload", errors.New("bad pattern"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("want exactly the error event, got %q", buf.String())
	}
	var ev map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &ev); err != nil {
		t.Fatal(err)
	}
	if ev["kind"] != "error" || ev["name"] != "reload" || ev["detail"] != "bad pattern" {
		t.Errorf("unexpected event %v", ev)
	}
}

func TestRingTracer(t *testing.T) {
	ring := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		Point(ring, ScopeToken, name, "")
	}
	snap := ring.Snapshot()
	if len(snap) != 2 || snap[0].Name != "b" || snap[1].Name != "c" {
		t.Fatalf("snapshot = %+v", snap)
	}

	Error(ring, ScopeRegistry, "watch", errors.New("boom"))
	if errs := ring.Errors(); len(errs) != 1 || errs[0].Detail != "boom" {
		t.Fatalf("errors = %+v", errs)
	}
}

func TestContext(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatal("empty context must yield Nop")
	}
	ring := NewRingTracer(4, LevelDebug)
	ctx := WithTracer(context.Background(), ring)
	if FromContext(ctx) != Tracer(ring) {
		t.Fatal("tracer not propagated")
	}
}

func TestNewOff(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("New(off) = %v, %v", tr, err)
	}
	Begin(tr, ScopeCommand, "x", 0).End("")
}

func TestChildSpansNestUnderContext(t *testing.T) {
	ring := NewRingTracer(8, LevelDebug)
	ctx := WithTracer(context.Background(), ring)

	root, ctx := Child(ctx, ScopeCommand, "hilite tokenize")
	child, _ := Child(ctx, ScopeDocument, "tokenize")
	child.End("3 tokens")
	root.End("")

	snap := ring.Snapshot()
	if len(snap) != 4 {
		t.Fatalf("want 4 events, got %+v", snap)
	}
	if snap[1].ParentID != root.ID() || snap[1].SpanID != child.ID() {
		t.Fatalf("child not nested: %+v", snap[1])
	}
	if CurrentSpan(ctx).SpanID != root.ID() {
		t.Fatal("context should carry the root span")
	}

	off, same := Child(context.Background(), ScopeCommand, "quiet")
	if off.ID() != 0 || same != context.Background() {
		t.Fatal("without a tracer Child must leave the context alone")
	}
	if off.End("") != 0 {
		t.Fatal("disabled span has no duration")
	}
}
