package diag

import "seqgen/internal/source"

type dedupKey struct {
	code Code
	span source.Span
	msg  string
}

// DedupReporter drops repeats of a diagnostic already forwarded with the same
// code, primary span and message; only the first copy keeps its notes.
type DedupReporter struct {
	next       Reporter
	seen       map[dedupKey]struct{}
	suppressed int
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[dedupKey]struct{})}
}

func (r *DedupReporter) Report(d Diagnostic) {
	key := dedupKey{code: d.Code, span: d.Primary, msg: d.Message}
	if _, ok := r.seen[key]; ok {
		r.suppressed++
		return
	}
	r.seen[key] = struct{}{}
	if r.next != nil {
		r.next.Report(d)
	}
}

// Suppressed is the number of diagnostics dropped as repeats.
func (r *DedupReporter) Suppressed() int {
	return r.suppressed
}
