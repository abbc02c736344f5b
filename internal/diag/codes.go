package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Определения языка
	DefInfo                 Code = 1000
	DefMissingID            Code = 1001
	DefDuplicateID          Code = 1002
	DefBadPattern           Code = 1003
	DefDuplicateCommentOpen Code = 1004
	DefEmptyMarker          Code = 1005
	DefBadPhase             Code = 1006
	DefBadFlags             Code = 1007
	DefBadSeparator         Code = 1008
	DefDuplicateCategory    Code = 1009
	DefDuplicateRule        Code = 1010
	DefDuplicateScope       Code = 1011
	DefEmptyTrigger         Code = 1012
	DefEmptyName            Code = 1013
	DefUnreachableKeyword   Code = 1014
	DefEmptyLiteral         Code = 1015
	DefBadLookback          Code = 1016
	DefUnknownStyleKey      Code = 1017

	// Загрузка
	LoadInfo          Code = 2000
	LoadRead          Code = 2001
	LoadDecode        Code = 2002
	LoadUnknownFormat Code = 2003
	LoadReplaced      Code = 2004
)

var (
	codeDescription = map[Code]string{
		UnknownCode:             "Unknown error",
		DefInfo:                 "Definition information",
		DefMissingID:            "Definition has no id",
		DefDuplicateID:          "Definition id already registered",
		DefBadPattern:           "Custom rule pattern does not compile",
		DefDuplicateCommentOpen: "Multi-line comment open marker reused",
		DefEmptyMarker:          "Empty comment or quote marker",
		DefBadPhase:             "Unknown custom rule phase",
		DefBadFlags:             "Unknown custom rule flag",
		DefBadSeparator:         "Completion prefix separator does not compile",
		DefDuplicateCategory:    "Keyword category declared twice",
		DefDuplicateRule:        "Custom rule declared twice",
		DefDuplicateScope:       "Completion scope declared twice",
		DefEmptyTrigger:         "Completion entry has no trigger",
		DefEmptyName:            "Missing name",
		DefUnreachableKeyword:   "Keyword can never match a word",
		DefEmptyLiteral:         "Empty operator or delimiter",
		DefBadLookback:          "Completion look-back window must be positive",
		DefUnknownStyleKey:      "Style key does not name a token class",
		LoadInfo:                "Load information",
		LoadRead:                "Definition file cannot be read",
		LoadDecode:              "Definition file cannot be decoded",
		LoadUnknownFormat:       "Unknown definition file format",
		LoadReplaced:            "Definition replaced",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("DEF%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("LOAD%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
