package main

import (
	"io"

	"hilite/internal/observ"
)

// printTimings writes the phase summary collected under --timings.
func printTimings(out io.Writer, timer *observ.Timer) {
	if out == nil || timer == nil {
		return
	}
	if len(timer.Report().Phases) == 0 {
		return
	}
	timer.WriteSummary(out)
}
