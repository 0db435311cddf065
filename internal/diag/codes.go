package diag

import (
	"fmt"
)

// Code identifies a kind of finding. The thousands digit selects the
// family and with it the prefix of the printed id (SYN2001).
type Code uint16

const (
	UnknownCode Code = 0

	LexInfo        Code = 1000
	LexUnknownChar Code = 1001
	LexNotNFC      Code = 1002

	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynUnexpectedEOF    Code = 2002
	SynUnknownKeyword   Code = 2003
	SynUnknownStatement Code = 2004

	IOLoadFileError Code = 4001

	// decay.toml
	ProjInvalidManifest Code = 5001

	ObsCacheError Code = 6001
)

var families = map[int]string{
	1: "LEX",
	2: "SYN",
	4: "IO",
	5: "PRJ",
	6: "OBS",
}

var titles = map[Code]string{
	UnknownCode:         "Unknown error",
	LexInfo:             "Lexical information",
	LexUnknownChar:      "Unrecognized character",
	LexNotNFC:           "Source is not in NFC",
	SynInfo:             "Syntax information",
	SynUnexpectedToken:  "Unexpected token",
	SynUnexpectedEOF:    "Unexpected end of file",
	SynUnknownKeyword:   "Unknown keyword",
	SynUnknownStatement: "Unknown statement",
	IOLoadFileError:     "Cannot load file",
	ProjInvalidManifest: "Invalid project manifest",
	ObsCacheError:       "AST cache failure",
}

// ID returns the printed identifier, "E0000" for codes outside any family.
func (c Code) ID() string {
	if prefix, ok := families[int(c)/1000]; ok {
		return fmt.Sprintf("%s%04d", prefix, int(c))
	}
	return "E0000"
}

// Title is a short description of the code.
func (c Code) Title() string {
	if t, ok := titles[c]; ok {
		return t
	}
	return titles[UnknownCode]
}

func (c Code) String() string {
	return c.ID()
}
