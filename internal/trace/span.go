package trace

import (
	"context"
	"time"
)

type (
	tracerKey struct{}
	spanKey   struct{}
)

// WithTracer attaches t to ctx; nil means Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// FromContext returns the tracer in ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx != nil {
		if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
			return t
		}
	}
	return Nop
}

// CurrentSpan returns the id of the innermost span in ctx, or 0.
func CurrentSpan(ctx context.Context) uint64 {
	if ctx != nil {
		if id, ok := ctx.Value(spanKey{}).(uint64); ok {
			return id
		}
	}
	return 0
}

// Span is an open interval of work. A span filtered out by the level is
// inert but still hands its parent id to children.
type Span struct {
	tracer Tracer
	id     uint64
	parent uint64
	scope  Scope
	name   string
	began  time.Time
	attrs  []Attr
}

// Start opens a span under the current span of ctx and returns a context
// in which it is current.
func Start(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	s := StartSpan(FromContext(ctx), CurrentSpan(ctx), scope, name)
	return context.WithValue(ctx, spanKey{}, s.ID()), s
}

// StartSpan opens a span with an explicit parent, for callers without a
// context (the CLI root span, Compiler).
func StartSpan(t Tracer, parent uint64, scope Scope, name string) *Span {
	if !active(t, scope) {
		return &Span{parent: parent}
	}
	s := &Span{
		tracer: t,
		id:     spanCounter.Add(1),
		parent: parent,
		scope:  scope,
		name:   name,
		began:  time.Now(),
	}
	t.Emit(stamp(Event{At: s.began, Kind: KindBegin, Scope: scope, Span: s.id, Parent: parent, Name: name}))
	return s
}

// ID is the span id, or the parent's when the span is inert.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	if s.id == 0 {
		return s.parent
	}
	return s.id
}

// Set adds attributes reported with the end event.
func (s *Span) Set(attrs ...Attr) *Span {
	if s != nil && s.tracer != nil {
		s.attrs = append(s.attrs, attrs...)
	}
	return s
}

// End closes the span with an outcome ("", "hit", an error text).
func (s *Span) End(outcome string) time.Duration {
	if s == nil || s.tracer == nil {
		return 0
	}
	d := time.Since(s.began)
	s.tracer.Emit(stamp(Event{
		Kind:   KindEnd,
		Scope:  s.scope,
		Span:   s.id,
		Parent: s.parent,
		Name:   s.name,
		Note:   outcome,
		Attrs:  append(s.attrs, Attr{Key: "took", Value: d.Round(time.Microsecond).String()}),
	}))
	s.tracer = nil
	return d
}

// Fail ends the span with err's text.
func (s *Span) Fail(err error) time.Duration {
	if err == nil {
		return s.End("")
	}
	return s.End(err.Error())
}

// Mark emits an instant event under parent.
func Mark(t Tracer, parent uint64, scope Scope, name, detail string) {
	if !active(t, scope) {
		return
	}
	t.Emit(stamp(Event{Kind: KindMark, Scope: scope, Parent: parent, Name: name, Note: detail}))
}
