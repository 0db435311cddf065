package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// collector records events for assertions.
type collector struct {
	mu     sync.Mutex
	level  Level
	events []Event
}

func (c *collector) Emit(ev Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
}
func (c *collector) Level() Level { return c.level }
func (c *collector) Flush() error { return nil }
func (c *collector) Close() error { return nil }

func (c *collector) names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.events))
	for _, ev := range c.events {
		out = append(out, ev.Kind.String()+":"+ev.Name)
	}
	return out
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"off", LevelOff, false},
		{"FAILURE", LevelFailure, false},
		{"stage", LevelStage, false},
		{" file ", LevelFile, false},
		{"node", LevelNode, false},
		{"debug", LevelOff, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) err = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevelAllows(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeCommand, false},
		{LevelFailure, ScopeStage, true},
		{LevelStage, ScopeFile, false},
		{LevelFile, ScopeFile, true},
		{LevelFile, ScopeNode, false},
		{LevelNode, ScopeNode, true},
	}
	for _, tt := range tests {
		if got := tt.level.Allows(tt.scope); got != tt.want {
			t.Errorf("%v.Allows(%v) = %v", tt.level, tt.scope, got)
		}
	}
}

func TestSpansFollowContext(t *testing.T) {
	c := &collector{level: LevelNode}
	ctx := WithTracer(context.Background(), c)

	ctx, cmd := Start(ctx, ScopeCommand, "decay parse")
	fileCtx, file := Start(ctx, ScopeFile, "file:card.decay")
	_, stage := Start(fileCtx, ScopeStage, "parse")
	Mark(c, stage.ID(), ScopeNode, "component", "card")
	stage.Set(Int("components", 1)).End("")
	file.End("ok")
	cmd.End("")
	cmd.End("twice")

	want := "begin:decay parse begin:file:card.decay begin:parse mark:component end:parse end:file:card.decay end:decay parse"
	if got := strings.Join(c.names(), " "); got != want {
		t.Fatalf("events:\n%s\nwant:\n%s", got, want)
	}
	if c.events[2].Parent != file.ID() || c.events[1].Parent != cmd.ID() {
		t.Error("parents must follow the context chain")
	}
	end := c.events[4]
	if len(end.Attrs) != 2 || end.Attrs[0] != Int("components", 1) || end.Attrs[1].Key != "took" {
		t.Errorf("end attrs = %v", end.Attrs)
	}
	for i := 1; i < len(c.events); i++ {
		if c.events[i].Seq <= c.events[i-1].Seq {
			t.Fatal("sequence numbers must grow")
		}
	}
}

func TestInertSpanPassesParent(t *testing.T) {
	c := &collector{level: LevelStage}
	ctx := WithTracer(context.Background(), c)
	ctx, cmd := Start(ctx, ScopeCommand, "cmd")
	fileCtx, file := Start(ctx, ScopeFile, "file:x")
	_, stage := Start(fileCtx, ScopeStage, "tokenize")
	if file.ID() != cmd.ID() {
		t.Errorf("filtered span id = %d, want parent %d", file.ID(), cmd.ID())
	}
	stage.End("")
	file.End("")
	if c.events[1].Parent != cmd.ID() {
		t.Error("stage must attach to the nearest emitted span")
	}
	if len(c.events) != 3 {
		t.Errorf("file span must be filtered, got %v", c.names())
	}
}

func TestNoTracerIsNoop(t *testing.T) {
	ctx, s := Start(context.Background(), ScopeCommand, "x")
	if s.ID() != 0 || CurrentSpan(ctx) != 0 {
		t.Error("inert root span must have id 0")
	}
	if d := s.Set(Str("k", "v")).Fail(errors.New("boom")); d != 0 {
		t.Error("inert span must not measure")
	}
	Mark(nil, 0, ScopeNode, "x", "")
	if FromContext(nil) != Nop { //nolint:staticcheck
		t.Error("nil context must yield Nop")
	}
}

func TestStreamNDJSON(t *testing.T) {
	var out syncBuffer
	session := uuid.NewString()
	tr := NewStream(&out, LevelFile, EncodingNDJSON, session)
	ctx := WithTracer(context.Background(), tr)

	ctx, root := Start(ctx, ScopeCommand, "parse")
	_, file := Start(ctx, ScopeFile, "file:app.decay")
	Mark(tr, file.ID(), ScopeNode, "component", "filtered at file level")
	file.Set(Int("components", 2)).End("")
	root.End("ok")

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("want 4 lines, got %d:\n%s", len(lines), out.String())
	}
	var ev map[string]any
	if err := json.Unmarshal([]byte(lines[2]), &ev); err != nil {
		t.Fatal(err)
	}
	if ev["session"] != session || ev["kind"] != "end" || ev["scope"] != "file" {
		t.Errorf("unexpected line %s", lines[2])
	}
	attrs, _ := ev["attrs"].(map[string]any)
	if attrs["components"] != "2" {
		t.Errorf("attrs = %v", attrs)
	}
}

func TestEncodeText(t *testing.T) {
	origin := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ev := Event{
		At:    origin.Add(1500 * time.Microsecond),
		Kind:  KindEnd,
		Scope: ScopeStage,
		Name:  "cache.get",
		Note:  "hit",
		Attrs: []Attr{Str("key", "ab")},
	}
	got := string(Encode(ev, EncodingText, origin, ""))
	want := "    +1.500ms   < cache.get (hit) [key=ab]\n"
	if got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestRingKeepsTail(t *testing.T) {
	r := NewRing(3, LevelStage)
	for _, name := range []string{"a", "b", "c", "d"} {
		Mark(r, 0, ScopeStage, name, "")
	}
	Mark(r, 0, ScopeFile, "filtered", "")
	var names []string
	for _, ev := range r.Events() {
		names = append(names, ev.Name)
	}
	if strings.Join(names, "") != "bcd" {
		t.Errorf("ring = %v", names)
	}

	var out bytes.Buffer
	if err := r.Dump(&out, EncodingText); err != nil {
		t.Fatal(err)
	}
	if strings.Count(out.String(), "\n") != 3 {
		t.Errorf("dump:\n%s", out.String())
	}
}

func TestNewModes(t *testing.T) {
	var out syncBuffer
	tr, err := New(Config{Level: LevelStage, Mode: ModeBoth, Output: &out})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := RingOf(tr); !ok {
		t.Fatal("both mode must carry a ring")
	}
	Mark(tr, 0, ScopeStage, "x", "")
	if !strings.Contains(out.String(), "* x") {
		t.Errorf("stream output %q", out.String())
	}
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}

	tr, err = New(Config{Level: LevelOff, Mode: ModeStream})
	if err != nil || tr != Nop {
		t.Errorf("off level must give Nop, got %v %v", tr, err)
	}
	if _, err := New(Config{Level: LevelStage, Mode: Mode(9)}); err == nil {
		t.Error("expected error for unknown mode")
	}
	if _, err := ParseMode("disk"); err == nil {
		t.Error("expected ParseMode error")
	}
	if enc, _ := ParseEncoding("json"); enc != EncodingNDJSON {
		t.Error("json is an alias for ndjson")
	}
	if encodingForPath("run.jsonl") != EncodingNDJSON || encodingForPath("run.log") != EncodingText {
		t.Error("encoding by extension")
	}
}

func TestPulse(t *testing.T) {
	c := &collector{level: LevelFailure}
	ctx := WithTracer(context.Background(), c)
	stop := Pulse(ctx, time.Millisecond)
	deadline := time.Now().Add(2 * time.Second)
	for len(c.names()) < 2 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	stop()
	stop()
	n := len(c.names())
	if n < 2 {
		t.Fatalf("got %d pulses", n)
	}
	time.Sleep(5 * time.Millisecond)
	if len(c.names()) != n {
		t.Error("pulses after stop")
	}

	Pulse(context.Background(), time.Millisecond)()
	Pulse(ctx, 0)()
}
