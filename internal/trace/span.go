package trace

import (
	"sync/atomic"
	"time"
)

var (
	globalSeq   atomic.Uint64
	globalSpans atomic.Uint64
)

// NextSeq returns a monotonically increasing sequence number.
func NextSeq() uint64 {
	return globalSeq.Add(1)
}

// Parent is where a new span attaches: the enclosing span and the template
// it works on. The zero value starts a root span.
type Parent struct {
	SpanID   uint64
	Template string
}

// Span is an open operation. A nil *Span is valid and does nothing, which is
// what Begin returns when the scope is filtered out.
type Span struct {
	tracer  Tracer
	begin   Event
	started time.Time
	extra   map[string]string
}

// Begin opens a span under parent and emits its begin event.
func Begin(t Tracer, scope Scope, name string, parent Parent) *Span {
	if t == nil || !t.Level().ShouldEmit(scope) {
		return nil
	}
	now := time.Now()
	s := &Span{
		tracer: t,
		begin: Event{
			Time:     now,
			Kind:     KindSpanBegin,
			Scope:    scope,
			SpanID:   globalSpans.Add(1),
			ParentID: parent.SpanID,
			Template: parent.Template,
			Name:     name,
		},
		started: now,
	}
	ev := s.begin
	t.Emit(&ev)
	return s
}

// BeginTemplate opens the file span for one template; spans nested under it
// inherit the template path.
func BeginTemplate(t Tracer, display string, parent Parent) *Span {
	parent.Template = display
	return Begin(t, ScopeFile, "template", parent)
}

// Parent returns the attachment point for spans nested under s. For a nil
// span it is the zero Parent, so children of filtered spans become roots.
func (s *Span) Parent() Parent {
	if s == nil {
		return Parent{}
	}
	return Parent{SpanID: s.begin.SpanID, Template: s.begin.Template}
}

// End emits the end event with the elapsed time and returns it.
func (s *Span) End(detail string) time.Duration {
	if s == nil {
		return 0
	}
	elapsed := time.Since(s.started)
	ev := s.begin
	ev.Time = time.Now()
	ev.Kind = KindSpanEnd
	ev.Detail = detail
	ev.Elapsed = elapsed
	ev.Extra = s.extra
	s.tracer.Emit(&ev)
	return elapsed
}

// WithExtra attaches a key to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if s == nil {
		return nil
	}
	if s.extra == nil {
		s.extra = make(map[string]string, 2)
	}
	s.extra[key] = value
	return s
}

// ID returns the span ID, 0 for a nil span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.begin.SpanID
}

// Point emits an instant event under parent. Points pass every level above
// off, they mark failures.
func Point(t Tracer, scope Scope, name, detail string, parent Parent) {
	if t == nil || t.Level() == LevelOff {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: parent.SpanID,
		Template: parent.Template,
		Name:     name,
		Detail:   detail,
	})
}
