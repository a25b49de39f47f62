package pipeline

import (
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"time"
)

func TestDisplayPaths(t *testing.T) {
	base := t.TempDir()
	files := []string{
		filepath.Join(base, "b", "y.go.seq"),
		filepath.Join(base, "a.go.seq"),
		filepath.Join(base, "a.go.seq"),
		"",
	}
	got := DisplayPaths(files, base)
	want := []string{"a.go.seq", "b/y.go.seq"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("DisplayPaths = %v, want %v", got, want)
	}
}

func TestDisplayPathOutsideBase(t *testing.T) {
	base := t.TempDir()
	outside := filepath.Join(filepath.Dir(base), "other.go.seq")
	got := DisplayPath(outside, base)
	if got != filepath.ToSlash(outside) {
		t.Fatalf("DisplayPath = %q, want %q", got, filepath.ToSlash(outside))
	}
}

func TestTimings(t *testing.T) {
	var tm Timings
	if tm.Has(StageExpand) {
		t.Fatal("empty timings must not have stages")
	}
	tm.Add(StageExpand, 2*time.Millisecond)
	tm.Add(StageExpand, 3*time.Millisecond)

	var other Timings
	other.Add(StageFormat, time.Millisecond)
	tm.Merge(other)

	if got := tm.Duration(StageExpand); got != 5*time.Millisecond {
		t.Fatalf("expand = %v, want 5ms", got)
	}
	if got := tm.Sum(StageExpand, StageFormat, StageWrite); got != 6*time.Millisecond {
		t.Fatalf("sum = %v, want 6ms", got)
	}
}

func TestSinks(t *testing.T) {
	ch := make(chan Event, 4)
	EmitQueued(ChannelSink{Ch: ch}, []string{"a", "b"})
	close(ch)
	var files []string
	for ev := range ch {
		if ev.Status != StatusQueued {
			t.Fatalf("status = %s, want queued", ev.Status)
		}
		files = append(files, ev.File)
	}
	if !reflect.DeepEqual(files, []string{"a", "b"}) {
		t.Fatalf("files = %v", files)
	}

	var mu sync.Mutex
	var seen []Status
	sink := SinkFunc(func(ev Event) {
		mu.Lock()
		seen = append(seen, ev.Status)
		mu.Unlock()
	})
	Emit(sink, "a", StageExpand, StatusWorking, nil, 0)
	Emit(nil, "a", StageExpand, StatusDone, nil, 0)
	if len(seen) != 1 || seen[0] != StatusWorking {
		t.Fatalf("seen = %v", seen)
	}
	if !StatusCached.Finished() || StatusWorking.Finished() {
		t.Fatal("Finished mismatch")
	}
}
