package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"hilite/internal/diag"
	"hilite/internal/source"
	"hilite/internal/token"
)

func sampleDiags() []diag.Diagnostic {
	return []diag.Diagnostic{
		diag.NewError(diag.DefBadPattern, "custom_rules[0].pattern", "missing closing )").
			WithOrigin("/defs/java.toml").
			WithNote("custom_rules[0].name", "rule precompiler"),
		diag.New(diag.SevWarning, diag.DefUnreachableKeyword, "keywords.types", "\"a-b\" is not a word").
			WithOrigin("/defs/java.toml"),
	}
}

func TestPrettyPlain(t *testing.T) {
	var buf bytes.Buffer
	if err := Pretty(&buf, sampleDiags(), PrettyOpts{PathMode: PathModeBasename, ShowNotes: true}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	want := "java.toml: ERROR DEF1003 custom_rules[0].pattern: missing closing )\n" +
		"    note: custom_rules[0].name: rule precompiler\n" +
		"java.toml: WARNING DEF1014 keywords.types: \"a-b\" is not a word\n"
	if got := buf.String(); got != want {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyMaxAndColor(t *testing.T) {
	var buf bytes.Buffer
	if err := Pretty(&buf, sampleDiags(), PrettyOpts{Color: true, Max: 1}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "\x1b[") {
		t.Errorf("expected ANSI escapes in %q", out)
	}
	if !strings.HasSuffix(out, "... and 1 more\n") {
		t.Errorf("expected truncation marker, got %q", out)
	}
	if strings.Contains(out, "note") {
		t.Errorf("notes must be hidden without ShowNotes: %q", out)
	}
}

func TestPathModes(t *testing.T) {
	tests := []struct {
		mode PathMode
		base string
		want string
	}{
		{PathModeAuto, "", "/home/user/defs/java.toml"},
		{PathModeAbsolute, "", "/home/user/defs/java.toml"},
		{PathModeRelative, "/home/user", "defs/java.toml"},
		{PathModeBasename, "", "java.toml"},
	}
	for _, tt := range tests {
		if got := formatPath("/home/user/defs/java.toml", tt.mode, tt.base); got != tt.want {
			t.Errorf("mode %d: got %q, want %q", tt.mode, got, tt.want)
		}
	}
	if got := formatPath("", PathModeAbsolute, ""); got != "" {
		t.Errorf("empty origin must stay empty, got %q", got)
	}
}

func TestJSONCountsAndNotes(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, sampleDiags(), JSONOpts{PathMode: PathModeBasename, Max: 1, IncludeNotes: true}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if out.Count != 1 || out.Errors != 1 || out.Warnings != 1 {
		t.Fatalf("unexpected counters: %+v", out)
	}
	d := out.Diagnostics[0]
	if d.Severity != "ERROR" || d.Code != "DEF1003" || d.Origin != "java.toml" {
		t.Errorf("unexpected diagnostic: %+v", d)
	}
	if d.Title != diag.DefBadPattern.Title() {
		t.Errorf("title = %q", d.Title)
	}
	if len(d.Notes) != 1 || d.Notes[0].Field != "custom_rules[0].name" {
		t.Errorf("unexpected notes: %+v", d.Notes)
	}
}

func TestSarif(t *testing.T) {
	var buf bytes.Buffer
	meta := SarifRunMeta{ToolName: "hilite", ToolVersion: "1.0.0", InvocationArgs: []string{"check", "defs"}}
	if err := Sarif(&buf, sampleDiags(), meta); err != nil {
		t.Fatalf("Sarif: %v", err)
	}
	var log sarifLog
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("invalid SARIF: %v", err)
	}
	if log.Version != "2.1.0" || len(log.Runs) != 1 {
		t.Fatalf("unexpected log: %+v", log)
	}
	run := log.Runs[0]
	if len(run.Tool.Driver.Rules) != 2 || run.Tool.Driver.Rules[0].ID != "DEF1003" {
		t.Errorf("rules: %+v", run.Tool.Driver.Rules)
	}
	if run.Results[1].Level != "warning" {
		t.Errorf("level = %q", run.Results[1].Level)
	}
	loc := run.Results[0].Locations[0]
	if loc.PhysicalLocation.ArtifactLocation.URI != "/defs/java.toml" || loc.LogicalLocations[0].FullyQualifiedName != "custom_rules[0].pattern" {
		t.Errorf("location: %+v", loc)
	}
	if run.Invocations[0].ExecutionSuccessful {
		t.Error("an error diagnostic must mark the run as failed")
	}
}

func sampleTokens() ([]token.Token, *source.File) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("robots.txt", []byte("a\nbc"))
	toks := []token.Token{
		{Class: token.KeywordClass("attributes"), Span: source.Span{Start: 0, End: 1}, Text: "a"},
		{Class: token.PlainClass, Span: source.Span{Start: 1, End: 2}, Text: "\n"},
		{Class: token.CustomClass("wildcard"), Span: source.Span{Start: 2, End: 4}, Text: "bc"},
	}
	return toks, fs.Get(id)
}

func TestFormatTokensPretty(t *testing.T) {
	toks, file := sampleTokens()
	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks, file); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %q", buf.String())
	}
	if !strings.HasPrefix(lines[0], "  1: keyword(attributes)") || !strings.HasSuffix(lines[0], `"a" at 1:1-1:2`) {
		t.Errorf("line 0: %q", lines[0])
	}
	if !strings.HasSuffix(lines[2], `"bc" at 2:1-2:3`) {
		t.Errorf("line 2: %q", lines[2])
	}

	buf.Reset()
	if err := FormatTokensPretty(&buf, toks[:1], nil); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(buf.String(), "at 0-1\n") {
		t.Errorf("without a file spans are printed raw: %q", buf.String())
	}
}

func TestFormatTokensJSON(t *testing.T) {
	toks, file := sampleTokens()
	var buf bytes.Buffer
	if err := FormatTokensJSON(&buf, toks, file); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(out) != 3 || out[2].Kind != "custom" || out[2].Name != "wildcard" {
		t.Fatalf("unexpected tokens: %+v", out)
	}
	if out[2].Start == nil || *out[2].Start != (Position{Line: 2, Col: 1}) {
		t.Errorf("start = %+v", out[2].Start)
	}
	if BuildTokensOutput(toks, nil)[0].Start != nil {
		t.Error("positions need a file")
	}
}
