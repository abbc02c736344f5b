package lsp

import "unicode/utf8"

func applyChanges(text string, changes []textDocumentContentChangeEvent) string {
	for _, change := range changes {
		if change.Range == nil {
			text = change.Text
			continue
		}
		start := offsetForPosition(text, change.Range.Start)
		end := offsetForPosition(text, change.Range.End)
		start = min(max(start, 0), len(text))
		end = min(max(end, start), len(text))
		text = text[:start] + change.Text + text[end:]
	}
	return text
}

// offsetForPosition converts an LSP position (UTF-16 code units) into a byte
// offset. Positions past the end of a line clamp to the line end.
func offsetForPosition(text string, pos position) int {
	if pos.Line < 0 || pos.Character < 0 {
		return 0
	}
	line := 0
	i := 0
	for i < len(text) && line < pos.Line {
		if text[i] == '\n' {
			line++
		}
		i++
	}
	if line < pos.Line {
		return len(text)
	}
	units := 0
	for i < len(text) && text[i] != '\n' && units < pos.Character {
		r, size := utf8.DecodeRuneInString(text[i:])
		need := utf16Units(r)
		if units+need > pos.Character {
			break
		}
		units += need
		i += size
	}
	return i
}

// positionForOffset is the inverse of offsetForPosition.
func positionForOffset(text string, offset int) position {
	offset = min(max(offset, 0), len(text))
	var pos position
	for i := 0; i < offset; {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r == '\n' {
			pos.Line++
			pos.Character = 0
		} else {
			pos.Character += utf16Units(r)
		}
		i += size
	}
	return pos
}

func utf16Units(r rune) int {
	if r > 0xFFFF {
		return 2
	}
	return 1
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16Units(r)
	}
	return n
}
