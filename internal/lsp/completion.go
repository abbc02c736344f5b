package lsp

import (
	"encoding/json"
	"fmt"
	"strings"

	"hilite/internal/complete"
)

const (
	completionItemKindText    = 1
	completionItemKindMethod  = 2
	completionItemKindKeyword = 14
	completionItemKindSnippet = 15

	insertTextFormatSnippet = 2
)

func (s *Server) handleCompletion(msg *rpcMessage) error {
	var params completionParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, codeInvalidParams, "invalid params")
		}
	}
	empty := completionList{IsIncomplete: false, Items: []completionItem{}}
	if !s.completionEnabled() {
		return s.sendResponse(msg.ID, empty)
	}
	doc, def, ok := s.snapshot(params.TextDocument.URI)
	if !ok {
		return s.sendResponse(msg.ID, empty)
	}
	res, ok := s.reg.Resolver(def.ID())
	if !ok {
		return s.sendResponse(msg.ID, empty)
	}
	return s.sendResponse(msg.ID, buildCompletion(res, doc.text, params.Position))
}

// buildCompletion resolves suggestions at pos. Every item replaces the typed
// prefix with the entry's template in snippet form.
func buildCompletion(res *complete.Resolver, text string, pos position) completionList {
	offset := offsetForPosition(text, pos)
	result := res.ResolveAt(text, offset)
	list := completionList{IsIncomplete: false, Items: make([]completionItem, 0, len(result.Entries))}
	if result.Empty() {
		return list
	}
	replace := lspRange{
		Start: positionForOffset(text, result.ReplaceFrom),
		End:   positionForOffset(text, offset),
	}
	for i, e := range result.Entries {
		snippet := complete.Snippet(e)
		item := completionItem{
			Label:            e.DisplayLabel(),
			Kind:             completionKind(result, strings.Contains(e.InsertText(), complete.CursorMark)),
			Detail:           e.Detail,
			FilterText:       e.Trigger,
			SortText:         fmt.Sprintf("%04d", i),
			InsertTextFormat: insertTextFormatSnippet,
			TextEdit:         &textEdit{Range: replace, NewText: snippet},
		}
		list.Items = append(list.Items, item)
	}
	return list
}

func completionKind(res complete.Result, hasStops bool) int {
	switch {
	case res.Scope != "":
		return completionItemKindMethod
	case hasStops:
		return completionItemKindSnippet
	case res.Fallback:
		return completionItemKindText
	default:
		return completionItemKindKeyword
	}
}
