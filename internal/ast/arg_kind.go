package ast

import "fmt"

type ArgKind uint8

const (
	ArgString ArgKind = iota
	ArgIdent
)

func (k ArgKind) String() string {
	switch k {
	case ArgString:
		return "string"
	case ArgIdent:
		return "identifier"
	default:
		return "unknown"
	}
}

func (k ArgKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *ArgKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "string":
		*k = ArgString
	case "identifier":
		*k = ArgIdent
	default:
		return fmt.Errorf("unknown argument kind %q", text)
	}
	return nil
}
