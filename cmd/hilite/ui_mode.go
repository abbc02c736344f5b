package main

import (
	"fmt"
	"io"
	"strings"
)

// uiMode is the value of --ui. It implements pflag.Value, so bad input is
// rejected while flags are parsed.
type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func (m *uiMode) String() string { return string(*m) }

func (m *uiMode) Type() string { return "auto|on|off" }

func (m *uiMode) Set(value string) error {
	switch v := uiMode(strings.ToLower(strings.TrimSpace(value))); v {
	case uiModeAuto, uiModeOn, uiModeOff:
		*m = v
	case "":
		*m = uiModeAuto
	default:
		return fmt.Errorf("expected auto, on or off, got %q", value)
	}
	return nil
}

// enabled decides whether progress is drawn on w. Auto needs a terminal.
func (m uiMode) enabled(w io.Writer) bool {
	switch m {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return isTerminal(w)
	}
}
