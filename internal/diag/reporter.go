package diag

import "decay/internal/source"

// Reporter — минимальный контракт получения диагностик от фаз.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note)
}

// ReportError reports an error without notes; nil r is allowed.
func ReportError(r Reporter, code Code, primary source.Span, msg string) {
	if r != nil {
		r.Report(code, SevError, primary, msg, nil)
	}
}

// BagReporter stores every report in Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r.Bag != nil {
		r.Bag.Add(&Diagnostic{Severity: sev, Code: code, Message: msg, Primary: primary, Notes: notes})
	}
}

type reportKey struct {
	code Code
	sev  Severity
	span source.Span
	msg  string
}

type dedup struct {
	next Reporter
	seen map[reportKey]struct{}
}

// Dedup forwards each distinct (code, severity, span, message) to next once.
// The lexer re-reports the same bad character on every Peek.
func Dedup(next Reporter) Reporter {
	return &dedup{next: next, seen: make(map[reportKey]struct{})}
}

func (r *dedup) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	key := reportKey{code: code, sev: sev, span: primary, msg: msg}
	if _, dup := r.seen[key]; dup {
		return
	}
	r.seen[key] = struct{}{}
	if r.next != nil {
		r.next.Report(code, sev, primary, msg, notes)
	}
}
