package diag

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"seqgen/internal/source"
)

// shortEntry is one diagnostic of the short format together with its notes.
type shortEntry struct {
	pos   shortPos
	sev   Severity
	code  string
	msg   string
	notes []string
}

type shortPos struct {
	path      string
	line, col uint32
}

func (p shortPos) String() string {
	return fmt.Sprintf("%s:%d:%d", p.path, p.line, p.col)
}

func (p shortPos) compare(o shortPos) int {
	return cmp.Or(
		strings.Compare(p.path, o.path),
		cmp.Compare(p.line, o.line),
		cmp.Compare(p.col, o.col),
	)
}

// FormatShortDiagnostics renders one line per diagnostic:
//
//	error SYN2102 gen/regs.go.seq:1:5 expected 'in'
//
// Lines are ordered by position, then errors before warnings, then code.
// With includeNotes every note follows its diagnostic as a "note" line with
// the same code. Paths are relative to the FileSet base and use '/', so the
// output is stable across machines; golden tests and --format=short use it.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	entries := make([]shortEntry, 0, len(diags))
	for i := range diags {
		d := &diags[i]
		pos, ok := shortPosition(fs, d.Primary)
		if !ok {
			continue
		}
		e := shortEntry{pos: pos, sev: d.Severity, code: d.Code.ID(), msg: oneLine(d.Message)}
		if includeNotes {
			for _, n := range d.Notes {
				if npos, ok := shortPosition(fs, n.Span); ok {
					e.notes = append(e.notes, fmt.Sprintf("note %s %s %s", e.code, npos, oneLine(n.Msg)))
				}
			}
		}
		entries = append(entries, e)
	}

	slices.SortStableFunc(entries, func(a, b shortEntry) int {
		return cmp.Or(
			a.pos.compare(b.pos),
			cmp.Compare(b.sev, a.sev),
			strings.Compare(a.code, b.code),
			strings.Compare(a.msg, b.msg),
		)
	})

	var lines []string
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%s %s %s %s", strings.ToLower(e.sev.String()), e.code, e.pos, e.msg))
		lines = append(lines, e.notes...)
	}
	return strings.Join(lines, "\n")
}

func shortPosition(fs *source.FileSet, sp source.Span) (shortPos, bool) {
	file := fs.Get(sp.File)
	if file == nil {
		return shortPos{}, false
	}
	start, _ := fs.Resolve(sp)
	path := filepath.ToSlash(file.FormatPath("relative", fs.BaseDir()))
	for strings.HasPrefix(path, "./") {
		path = path[2:]
	}
	return shortPos{path: path, line: start.Line, col: start.Col}, true
}

// oneLine folds a multi-line message so every entry stays on one line.
func oneLine(msg string) string {
	return strings.Join(strings.Fields(msg), " ")
}
