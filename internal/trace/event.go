package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

var kindNames = [...]string{KindSpanBegin: "begin", KindSpanEnd: "end", KindPoint: "point"}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// Scope indicates the granularity of an event. Lower values are coarser.
type Scope uint8

const (
	// ScopeDriver covers a whole CLI command.
	ScopeDriver Scope = iota + 1
	// ScopePass covers a generation stage (expand, gofmt).
	ScopePass
	// ScopeFile covers the processing of one template.
	ScopeFile
	// ScopeInvocation covers one seq! or derive! expansion.
	ScopeInvocation
)

var scopeNames = [...]string{
	ScopeDriver:     "driver",
	ScopePass:       "pass",
	ScopeFile:       "file",
	ScopeInvocation: "invocation",
}

func (s Scope) String() string {
	if int(s) < len(scopeNames) && scopeNames[s] != "" {
		return scopeNames[s]
	}
	return "unknown"
}

// Event is a single trace record.
type Event struct {
	Time     time.Time
	Seq      uint64 // stamped by the tracer that stores the event
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for roots
	// Template is the display path of the template being generated, empty
	// outside a file span.
	Template string
	Name     string // "generate", "expand", "seq", "derive", ...
	Detail   string
	// Elapsed is set on span end events.
	Elapsed time.Duration
	Extra   map[string]string
}
