package diag

import (
	"cmp"
	"slices"
	"sync"

	"decay/internal/source"
)

// Bag collects diagnostics up to a limit. It is safe for concurrent use.
type Bag struct {
	mu    sync.Mutex
	items []*Diagnostic
	limit int
}

// NewBag returns a bag that keeps at most limit diagnostics.
func NewBag(limit int) *Bag {
	return &Bag{limit: max(limit, 0)}
}

// Add stores d; false means d was nil or the bag is full.
func (b *Bag) Add(d *Diagnostic) bool {
	if d == nil {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.items) >= b.limit {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Limit() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.limit
}

// Worst returns the highest severity in the bag and false when it is empty.
func (b *Bag) Worst() (Severity, bool) {
	if b == nil {
		return SevInfo, false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.items) == 0 {
		return SevInfo, false
	}
	worst := SevInfo
	for _, d := range b.items {
		worst = max(worst, d.Severity)
	}
	return worst, true
}

func (b *Bag) HasErrors() bool {
	sev, ok := b.Worst()
	return ok && sev >= SevError
}

func (b *Bag) HasWarnings() bool {
	sev, ok := b.Worst()
	return ok && sev >= SevWarning
}

func (b *Bag) Len() int {
	if b == nil {
		return 0
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}

// Items returns a copy of the stored slice; the diagnostics are shared.
func (b *Bag) Items() []*Diagnostic {
	if b == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.items)
}

// Merge appends everything from other, raising the limit when needed.
func (b *Bag) Merge(other *Bag) {
	if other == nil || other == b {
		return
	}
	incoming := other.Items()
	b.mu.Lock()
	defer b.mu.Unlock()
	b.limit = max(b.limit, len(b.items)+len(incoming))
	b.items = append(b.items, incoming...)
}

// Sort orders by file, start, end, then severity (worst first) and code.
func (b *Bag) Sort() {
	b.mu.Lock()
	defer b.mu.Unlock()
	slices.SortStableFunc(b.items, func(x, y *Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.Primary.File, y.Primary.File),
			cmp.Compare(x.Primary.Start, y.Primary.Start),
			cmp.Compare(x.Primary.End, y.Primary.End),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}

// Dedup drops diagnostics whose code and primary span repeat an earlier one.
func (b *Bag) Dedup() {
	type key struct {
		code Code
		span source.Span
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	seen := make(map[key]struct{}, len(b.items))
	b.items = slices.DeleteFunc(b.items, func(d *Diagnostic) bool {
		k := key{code: d.Code, span: d.Primary}
		if _, dup := seen[k]; dup {
			return true
		}
		seen[k] = struct{}{}
		return false
	})
}
