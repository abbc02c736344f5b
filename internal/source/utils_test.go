package source

import "testing"

func TestNormalizeCRLFKeepsLoneCR(t *testing.T) {
	out, changed := normalizeCRLF([]byte("a\r\nb\rc"))
	if !changed || string(out) != "a\nb\rc" {
		t.Fatalf("got %q changed=%v", out, changed)
	}
	out, changed = normalizeCRLF([]byte("plain"))
	if changed || string(out) != "plain" {
		t.Fatalf("fast path changed input: %q", out)
	}
}

func TestRemoveBOM(t *testing.T) {
	if out, ok := removeBOM([]byte("\xEF\xBB\xBFx")); !ok || string(out) != "x" {
		t.Fatalf("BOM not removed: %q", out)
	}
	if out, ok := removeBOM([]byte("xy")); ok || string(out) != "xy" {
		t.Fatalf("short input changed: %q", out)
	}
}
