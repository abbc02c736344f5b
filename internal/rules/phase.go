package rules

import "fmt"

// Phase selects when a rule runs relative to the built-in classifiers.
type Phase uint8

const (
	// Before rules run ahead of comments, quotes, keywords and literals.
	Before Phase = iota
	// After rules only see positions nothing else classified.
	After
)

func (p Phase) String() string {
	switch p {
	case Before:
		return "before"
	case After:
		return "after"
	}
	return fmt.Sprintf("Phase(%d)", uint8(p))
}

// ParsePhase accepts "before" and "after"; an empty string means After.
func ParsePhase(s string) (Phase, error) {
	switch s {
	case "before":
		return Before, nil
	case "after", "":
		return After, nil
	}
	return After, fmt.Errorf("unknown phase %q", s)
}
