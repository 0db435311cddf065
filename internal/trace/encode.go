package trace

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Encoding is the on-disk form of streamed events.
type Encoding uint8

const (
	EncodingAuto Encoding = iota // by file extension
	EncodingText
	EncodingNDJSON
)

func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return EncodingAuto, nil
	case "text":
		return EncodingText, nil
	case "ndjson", "json":
		return EncodingNDJSON, nil
	}
	return EncodingAuto, fmt.Errorf("unknown trace format %q (want auto|text|ndjson)", s)
}

func encodingForPath(path string) Encoding {
	if strings.HasSuffix(path, ".ndjson") || strings.HasSuffix(path, ".jsonl") {
		return EncodingNDJSON
	}
	return EncodingText
}

// Encode renders ev as one line. origin is the zero point of text
// timestamps; session tags NDJSON lines.
func Encode(ev Event, enc Encoding, origin time.Time, session string) []byte {
	if enc == EncodingNDJSON {
		return encodeJSON(ev, session)
	}
	return encodeText(ev, origin)
}

type jsonLine struct {
	Session string            `json:"session,omitempty"`
	At      string            `json:"at"`
	Seq     uint64            `json:"seq"`
	Kind    string            `json:"kind"`
	Scope   string            `json:"scope"`
	Span    uint64            `json:"span,omitempty"`
	Parent  uint64            `json:"parent,omitempty"`
	Name    string            `json:"name"`
	Note    string            `json:"note,omitempty"`
	Attrs   map[string]string `json:"attrs,omitempty"`
}

func encodeJSON(ev Event, session string) []byte {
	line := jsonLine{
		Session: session,
		At:      ev.At.UTC().Format(time.RFC3339Nano),
		Seq:     ev.Seq,
		Kind:    ev.Kind.String(),
		Scope:   ev.Scope.String(),
		Span:    ev.Span,
		Parent:  ev.Parent,
		Name:    ev.Name,
		Note:    ev.Note,
	}
	if len(ev.Attrs) > 0 {
		line.Attrs = make(map[string]string, len(ev.Attrs))
		for _, a := range ev.Attrs {
			line.Attrs[a.Key] = a.Value
		}
	}
	data, err := json.Marshal(line)
	if err != nil {
		return nil
	}
	return append(data, '\n')
}

// "  +1.250ms      > parse [components=2 took=80µs]"
func encodeText(ev Event, origin time.Time) []byte {
	var b strings.Builder
	var offset time.Duration
	if !origin.IsZero() {
		offset = ev.At.Sub(origin)
	}
	fmt.Fprintf(&b, "%+10.3fms ", float64(offset.Microseconds())/1000)
	b.WriteString(strings.Repeat("  ", int(max(ev.Scope, ScopeCommand)-ScopeCommand)))

	switch ev.Kind {
	case KindBegin:
		b.WriteString("> ")
	case KindEnd:
		b.WriteString("< ")
	case KindMark:
		b.WriteString("* ")
	case KindPulse:
		b.WriteString("~ ")
	}
	b.WriteString(ev.Name)
	if ev.Note != "" {
		fmt.Fprintf(&b, " (%s)", ev.Note)
	}
	if len(ev.Attrs) > 0 {
		b.WriteString(" [")
		for i, a := range ev.Attrs {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(a.Key)
			b.WriteByte('=')
			b.WriteString(a.Value)
		}
		b.WriteByte(']')
	}
	b.WriteByte('\n')
	return []byte(b.String())
}
