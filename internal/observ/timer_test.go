package observ

import (
	"bytes"
	"strings"
	"testing"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	load := tm.Begin("load")
	tm.End(load, "2 definitions")
	tm.Track("tokenize")("")
	tm.End(42, "ignored")

	rep := tm.Report()
	if len(rep.Phases) != 2 {
		t.Fatalf("phases = %+v", rep.Phases)
	}
	if rep.Phases[0].Name != "load" || rep.Phases[0].Note != "2 definitions" {
		t.Errorf("first phase = %+v", rep.Phases[0])
	}

	var buf bytes.Buffer
	tm.WriteSummary(&buf)
	out := buf.String()
	for _, want := range []string{"timings:", "load", "// 2 definitions", "tokenize", "total"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary misses %q:\n%s", want, out)
		}
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.Track("x")("")
	if rep := tm.Report(); len(rep.Phases) != 0 {
		t.Fatal("nil timer must report nothing")
	}
	tm.WriteSummary(&bytes.Buffer{})
}
