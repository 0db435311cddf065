package trace

import (
	"fmt"
	"strings"
)

// Scope is the granularity of an event; smaller values are coarser.
type Scope uint8

const (
	ScopeCommand Scope = iota + 1 // one CLI invocation
	ScopeStage                    // tokenize, parse, cache lookups
	ScopeFile                     // one source file
	ScopeNode                     // one component
)

var scopeNames = [...]string{
	ScopeCommand: "command",
	ScopeStage:   "stage",
	ScopeFile:    "file",
	ScopeNode:    "node",
}

func (s Scope) String() string {
	if int(s) < len(scopeNames) && scopeNames[s] != "" {
		return scopeNames[s]
	}
	return "unknown"
}

// Level selects which scopes reach a tracer.
type Level uint8

const (
	LevelOff     Level = iota
	LevelFailure       // ring only, dumped when the command fails
	LevelStage         // command and stage spans
	LevelFile          // plus one span per file
	LevelNode          // plus a mark per component
)

var levelNames = [...]string{
	LevelOff:     "off",
	LevelFailure: "failure",
	LevelStage:   "stage",
	LevelFile:    "file",
	LevelNode:    "node",
}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel reads a --trace-level value.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for l, name := range levelNames {
		if name == s {
			return Level(l), nil
		}
	}
	return LevelOff, fmt.Errorf("unknown trace level %q (want %s)", s, strings.Join(levelNames[:], "|"))
}

// Allows reports whether events of scope pass at this level. The failure
// level keeps stage events so a dump has some context.
func (l Level) Allows(scope Scope) bool {
	switch l {
	case LevelOff:
		return false
	case LevelFailure, LevelStage:
		return scope <= ScopeStage
	case LevelFile:
		return scope <= ScopeFile
	default:
		return true
	}
}
