package diag

import (
	"cmp"
	"slices"
)

// Bag collects the diagnostics of one file. Past the limit diagnostics are
// only counted.
type Bag struct {
	items   []Diagnostic
	limit   int
	dropped int
}

// NewBag keeps at most limit diagnostics.
func NewBag(limit int) *Bag {
	return &Bag{limit: max(limit, 0)}
}

// Add keeps d, or counts it as dropped when the bag is full.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= b.limit {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Len() int { return len(b.items) }

// Items returns the bag's own slice; callers must not modify it.
func (b *Bag) Items() []Diagnostic { return b.items }

// Dropped is the number of diagnostics that did not fit.
func (b *Bag) Dropped() int { return b.dropped }

// Count returns how many kept diagnostics are at least sev.
func (b *Bag) Count(sev Severity) int {
	n := 0
	for i := range b.items {
		if b.items[i].Severity >= sev {
			n++
		}
	}
	return n
}

func (b *Bag) ErrorCount() int   { return b.Count(SevError) }
func (b *Bag) HasErrors() bool   { return b.Count(SevError) > 0 }
func (b *Bag) HasWarnings() bool { return b.Count(SevWarning) > 0 }

// Merge moves everything from other into b. The limit grows to fit, so a
// file's bag never loses what a pass already kept.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.items = append(b.items, other.items...)
	b.limit = max(b.limit, len(b.items))
	b.dropped += other.dropped
}

// Sort orders diagnostics by file and position, then errors before
// warnings, then by code.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.Primary.File, y.Primary.File),
			cmp.Compare(x.Primary.Start, y.Primary.Start),
			cmp.Compare(x.Primary.End, y.Primary.End),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}
