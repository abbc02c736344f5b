package diag

import (
	"fmt"
	"strings"
)

// Severity orders diagnostics; only SevError makes a definition unusable.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

var severityNames = [...]string{
	SevInfo:    "INFO",
	SevWarning: "WARNING",
	SevError:   "ERROR",
}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}

// ParseSeverity accepts the String form in any case, plus "warn".
func ParseSeverity(name string) (Severity, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "WARN" {
		return SevWarning, nil
	}
	for s, n := range severityNames {
		if n == name {
			return Severity(s), nil
		}
	}
	return SevInfo, fmt.Errorf("unknown severity %q", name)
}

// SarifLevel maps the severity onto a SARIF result level.
func (s Severity) SarifLevel() string {
	switch s {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	default:
		return "note"
	}
}
