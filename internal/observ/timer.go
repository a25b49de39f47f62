package observ

import (
	"fmt"
	"strings"
	"time"
)

// Phase is one timed step of expanding a template.
type Phase struct {
	Name string
	Dur  time.Duration
	Note string
}

// Report lists phases in start order. A name tracked twice shows up twice.
type Report struct {
	Phases []Phase
}

// Total sums every phase.
func (r Report) Total() time.Duration {
	var d time.Duration
	for _, p := range r.Phases {
		d += p.Dur
	}
	return d
}

// Of sums the phases called name.
func (r Report) Of(name string) time.Duration {
	var d time.Duration
	for _, p := range r.Phases {
		if p.Name == name {
			d += p.Dur
		}
	}
	return d
}

func (r Report) String() string {
	var b strings.Builder
	for _, p := range r.Phases {
		fmt.Fprintf(&b, "%-8s %8.2f ms", p.Name, ms(p.Dur))
		if p.Note != "" {
			b.WriteString("  " + p.Note)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "%-8s %8.2f ms\n", "total", ms(r.Total()))
	return b.String()
}

// Timer measures the phases of one file. Not safe for concurrent use;
// every worker owns its timer.
type Timer struct {
	now    func() time.Time
	phases []Phase
}

func NewTimer() *Timer { return &Timer{now: time.Now} }

// Track starts a phase and returns the function that stops it. Only the
// first stop counts.
func (t *Timer) Track(name string) func(note string) {
	idx := len(t.phases)
	t.phases = append(t.phases, Phase{Name: name, Dur: -1})
	start := t.now()
	return func(note string) {
		p := &t.phases[idx]
		if p.Dur >= 0 {
			return
		}
		p.Dur = t.now().Sub(start)
		p.Note = note
	}
}

// Report returns the stopped phases; running ones are left out.
func (t *Timer) Report() Report {
	var r Report
	for _, p := range t.phases {
		if p.Dur >= 0 {
			r.Phases = append(r.Phases, p)
		}
	}
	return r
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
