package diagfmt

import (
	"encoding/json"
	"io"
	"sort"

	"hilite/internal/diag"
)

const (
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
	sarifVersion = "2.1.0"
)

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool        sarifTool         `json:"tool"`
	Invocations []sarifInvocation `json:"invocations,omitempty"`
	Results     []sarifResult     `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version,omitempty"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	ShortDescription sarifMessage `json:"shortDescription"`
}

type sarifInvocation struct {
	Arguments           []string `json:"arguments,omitempty"`
	ExecutionSuccessful bool     `json:"executionSuccessful"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
}

type sarifLocation struct {
	PhysicalLocation *sarifPhysical `json:"physicalLocation,omitempty"`
	LogicalLocations []sarifLogical `json:"logicalLocations,omitempty"`
}

type sarifPhysical struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

type sarifLogical struct {
	FullyQualifiedName string `json:"fullyQualifiedName"`
}

// Sarif форматирует диагностики в SARIF формат (v2.1.0).
// Definition diagnostics have no byte spans: the origin file becomes the
// physical location and the field path a logical one.
func Sarif(w io.Writer, diags []diag.Diagnostic, meta SarifRunMeta) error {
	rules := make(map[diag.Code]struct{})
	results := make([]sarifResult, 0, len(diags))
	failed := false
	for _, d := range diags {
		rules[d.Code] = struct{}{}
		if d.Severity >= diag.SevError {
			failed = true
		}
		res := sarifResult{
			RuleID:  d.Code.ID(),
			Level:   d.Severity.SarifLevel(),
			Message: sarifMessage{Text: d.Message},
		}
		if d.Origin != "" || d.Field != "" {
			var loc sarifLocation
			if d.Origin != "" {
				loc.PhysicalLocation = &sarifPhysical{ArtifactLocation: sarifArtifact{URI: formatPath(d.Origin, PathModeAuto, "")}}
			}
			if d.Field != "" {
				loc.LogicalLocations = []sarifLogical{{FullyQualifiedName: d.Field}}
			}
			res.Locations = []sarifLocation{loc}
		}
		results = append(results, res)
	}

	codes := make([]diag.Code, 0, len(rules))
	for c := range rules {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	driver := sarifDriver{Name: meta.ToolName, Version: meta.ToolVersion, Rules: make([]sarifRule, 0, len(codes))}
	for _, c := range codes {
		driver.Rules = append(driver.Rules, sarifRule{ID: c.ID(), ShortDescription: sarifMessage{Text: c.Title()}})
	}

	run := sarifRun{Tool: sarifTool{Driver: driver}, Results: results}
	if len(meta.InvocationArgs) > 0 {
		run.Invocations = []sarifInvocation{{Arguments: meta.InvocationArgs, ExecutionSuccessful: !failed}}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(sarifLog{Schema: sarifSchema, Version: sarifVersion, Runs: []sarifRun{run}})
}
