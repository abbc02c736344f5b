package langdef

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// Fold returns the case-folded form used for case-insensitive matching.
func Fold(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			// Caser хранит состояние, поэтому новый на каждый вызов
			return cases.Fold().String(s)
		}
	}
	return strings.ToLower(s)
}

// HasFoldPrefix reports whether s starts with prefix, comparing folded forms
// when fold is set.
func HasFoldPrefix(s, prefix string, fold bool) bool {
	if !fold {
		return strings.HasPrefix(s, prefix)
	}
	return strings.HasPrefix(Fold(s), Fold(prefix))
}

func isBaseWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
