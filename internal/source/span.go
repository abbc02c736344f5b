package source

import (
	"fmt"
)

// Span is a half-open byte range [Start, End) inside one buffer.
type Span struct {
	Start uint32 `json:"start" msgpack:"start"` // в байтах включительно
	End   uint32 `json:"end" msgpack:"end"`     // в байтах не включительно
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}

// Contains reports whether off lies inside the span.
func (s Span) Contains(off uint32) bool {
	return off >= s.Start && off < s.End
}

// Cover returns the smallest span enclosing both s and other.
func (s Span) Cover(other Span) Span {
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Adjacent reports whether other starts exactly where s ends.
func (s Span) Adjacent(other Span) bool {
	return s.End == other.Start
}

// Slice returns the text covered by the span. Out-of-range spans are clamped.
func (s Span) Slice(src string) string {
	n := uint32(len(src)) // #nosec G115 -- buffers are bounded by MaxBufferLen
	start, end := min(s.Start, n), min(s.End, n)
	if start > end {
		return ""
	}
	return src[start:end]
}
