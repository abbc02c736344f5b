package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestColoredKeepsText(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	tests := []string{"0.1.0-dev", "1.2.3", "1.0.0-beta.1", "nightly"}
	orig := Version
	defer func() { Version = orig }()

	for _, v := range tests {
		Version = v
		if got := Colored(); got != v {
			t.Errorf("Colored() with %q = %q", v, got)
		}
	}
}

func TestColoredAddsEscapes(t *testing.T) {
	prev := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = prev }()

	orig := Version
	defer func() { Version = orig }()
	Version = "1.2.3"

	if got := Colored(); got == Version {
		t.Errorf("expected ANSI escapes, got %q", got)
	}
}
