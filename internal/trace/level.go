package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // point events only
	LevelPhase        // + driver and pass spans
	LevelDetail       // + one span per template
	LevelDebug        // + every seq!/derive! invocation
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

// finest scope a level lets through; 0 means spans are dropped
var levelScopes = [...]Scope{
	LevelPhase:  ScopePass,
	LevelDetail: ScopeFile,
	LevelDebug:  ScopeInvocation,
}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel accepts a level name in any case.
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// ShouldEmit reports whether spans of scope are recorded at l.
func (l Level) ShouldEmit(scope Scope) bool {
	return int(l) < len(levelScopes) && scope != 0 && scope <= levelScopes[l]
}

// accepts is the filter every storing tracer applies.
func (l Level) accepts(ev *Event) bool {
	if ev.Kind == KindPoint {
		return l > LevelOff
	}
	return l.ShouldEmit(ev.Scope)
}
