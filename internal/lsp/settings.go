package lsp

import "encoding/json"

func (s *Server) handleDidChangeConfiguration(msg *rpcMessage) error {
	if len(msg.Params) == 0 {
		return nil
	}
	var params didChangeConfigurationParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return nil
	}
	s.applySettings(params.Settings)
	return nil
}

// applySettings accepts either {"hilite": {...}} or the bare section.
func (s *Server) applySettings(raw json.RawMessage) {
	if len(raw) == 0 {
		return
	}
	var settings lspSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return
	}
	section := settings.Hilite
	if section.Autocompletion == nil && section.Trace == nil {
		if err := json.Unmarshal(raw, &section); err != nil {
			return
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if section.Autocompletion != nil {
		s.completion = *section.Autocompletion
	}
	if section.Trace != nil {
		s.traceLSP = *section.Trace
	}
}

func (s *Server) completionEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completion
}
