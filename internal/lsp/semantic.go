package lsp

import (
	"encoding/json"
	"slices"
	"strings"

	"fortio.org/safecast"

	"hilite/internal/langdef"
	"hilite/internal/lexer"
	"hilite/internal/registry"
	"hilite/internal/token"
)

// semanticTypes maps token kinds to LSP semantic token types. Plain text is
// never reported.
var semanticTypes = []struct {
	kind token.Kind
	name string
}{
	{token.Comment, "comment"},
	{token.Quote, "string"},
	{token.Keyword, "keyword"},
	{token.Operator, "operator"},
	{token.Delimiter, "punctuation"},
	{token.Custom, "macro"},
}

// maxModifiers is the width of the modifier bit set.
const maxModifiers = 32

// legend is fixed at initialize: one type per kind and one modifier per
// keyword category or custom rule name known at that time.
type legend struct {
	types     map[token.Kind]uint32
	modifiers map[string]uint32
	modNames  []string
}

func buildLegend(reg *registry.Registry) *legend {
	lg := &legend{
		types:     make(map[token.Kind]uint32, len(semanticTypes)),
		modifiers: make(map[string]uint32),
	}
	for i, t := range semanticTypes {
		lg.types[t.kind] = uint32(i) // #nosec G115 -- short static table
	}
	var names []string
	for _, id := range reg.IDs() {
		def, ok := reg.Get(id)
		if !ok {
			continue
		}
		for _, c := range def.Classes() {
			if c.Name != "" {
				names = append(names, c.Name)
			}
		}
	}
	slices.Sort(names)
	names = slices.Compact(names)
	if len(names) > maxModifiers {
		names = names[:maxModifiers]
	}
	for i, n := range names {
		lg.modifiers[n] = uint32(i) // #nosec G115 -- capped by maxModifiers
	}
	lg.modNames = names
	return lg
}

func (lg *legend) wire() semanticTokensLegend {
	types := make([]string, len(semanticTypes))
	for i, t := range semanticTypes {
		types[i] = t.name
	}
	mods := append([]string{}, lg.modNames...)
	return semanticTokensLegend{TokenTypes: types, TokenModifiers: mods}
}

func (lg *legend) modifierBits(c token.Class) uint32 {
	if c.Name == "" {
		return 0
	}
	if bit, ok := lg.modifiers[c.Name]; ok {
		return 1 << bit
	}
	return 0
}

func (s *Server) handleSemanticTokens(msg *rpcMessage) error {
	var params semanticTokensParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, codeInvalidParams, "invalid params")
	}
	s.mu.Lock()
	lg := s.legend
	s.mu.Unlock()
	if lg == nil {
		lg = buildLegend(s.reg)
	}
	doc, def, ok := s.snapshot(params.TextDocument.URI)
	if !ok {
		return s.sendResponse(msg.ID, semanticTokens{Data: []uint32{}})
	}
	return s.sendResponse(msg.ID, semanticTokens{Data: encodeSemantic(lg, def, doc.text)})
}

// encodeSemantic produces the relative five-integer encoding of LSP semantic
// tokens. Tokens spanning several lines are split per line; positions and
// lengths are in UTF-16 code units.
func encodeSemantic(lg *legend, def *langdef.Definition, text string) []uint32 {
	data := []uint32{}
	var line, col int
	var prevLine, prevCol int
	emit := func(l, c, length int, typ, mods uint32) {
		deltaStart := c
		if l == prevLine {
			deltaStart = c - prevCol
		}
		data = append(data,
			u32(l-prevLine),
			u32(deltaStart),
			u32(length),
			typ, mods)
		prevLine, prevCol = l, c
	}
	for tok := range lexer.All(def, text, lexer.Options{MergePlain: true}) {
		typ, reported := lg.types[tok.Class.Kind]
		rest := tok.Text
		for {
			segment, tail, more := strings.Cut(rest, "\n")
			if reported {
				visible := strings.TrimSuffix(segment, "\r")
				if n := utf16Len(visible); n > 0 {
					emit(line, col, n, typ, lg.modifierBits(tok.Class))
				}
			}
			if !more {
				col += utf16Len(segment)
				break
			}
			line++
			col = 0
			rest = tail
		}
	}
	return data
}

// u32 converts a non-negative position component; negative values cannot
// occur because tokens are visited in order.
func u32(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return 0
	}
	return v
}
