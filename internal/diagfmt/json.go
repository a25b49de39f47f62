package diagfmt

import (
	"encoding/json"
	"io"
	"strings"

	"seqgen/internal/diag"
	"seqgen/internal/source"
)

// LocationJSON is a span in JSON output. Line and column fields are present
// only with JSONOpts.IncludePositions.
type LocationJSON struct {
	File    string `json:"file,omitempty"`
	Start   uint32 `json:"start"`
	End     uint32 `json:"end"`
	Line    uint32 `json:"line,omitempty"`
	Col     uint32 `json:"col,omitempty"`
	EndLine uint32 `json:"end_line,omitempty"`
	EndCol  uint32 `json:"end_col,omitempty"`
}

type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

type DiagnosticJSON struct {
	Severity string       `json:"severity"` // error|warning|info
	Code     string       `json:"code"`     // SYN2102
	Title    string       `json:"title"`    // описание кода
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// TemplateJSON is the outcome of one template.
type TemplateJSON struct {
	Template    string           `json:"template"`
	Output      string           `json:"output,omitempty"`
	Status      string           `json:"status"`
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
}

// Report is the --format=json document of generate and check.
type Report struct {
	Templates []TemplateJSON `json:"templates"`
	Errors    int            `json:"errors"`
	Warnings  int            `json:"warnings"`
}

func makeLocation(span source.Span, fs *source.FileSet, opts JSONOpts) LocationJSON {
	loc := LocationJSON{Start: span.Start, End: span.End}
	f := fs.Get(span.File)
	if f == nil {
		return loc
	}
	loc.File = opts.PathMode.format(f, fs.BaseDir())
	if opts.IncludePositions {
		start, end := fs.Resolve(span)
		loc.Line, loc.Col = start.Line, start.Col
		loc.EndLine, loc.EndCol = end.Line, end.Col
	}
	return loc
}

// BuildDiagnostics converts the bag without serialising it.
func BuildDiagnostics(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) []DiagnosticJSON {
	items := bag.Items()
	out := make([]DiagnosticJSON, 0, len(items))
	for _, d := range items {
		dj := DiagnosticJSON{
			Severity: strings.ToLower(d.Severity.String()),
			Code:     d.Code.ID(),
			Title:    d.Code.Title(),
			Message:  d.Message,
			Location: makeLocation(d.Primary, fs, opts),
		}
		if opts.IncludeNotes {
			for _, n := range d.Notes {
				dj.Notes = append(dj.Notes, NoteJSON{Message: n.Msg, Location: makeLocation(n.Span, fs, opts)})
			}
		}
		out = append(out, dj)
	}
	return out
}

// Add records one template and its diagnostics; a nil bag adds none.
func (r *Report) Add(template, output, status string, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) {
	t := TemplateJSON{Template: template, Output: output, Status: status, Diagnostics: []DiagnosticJSON{}}
	if bag != nil {
		t.Diagnostics = BuildDiagnostics(bag, fs, opts)
		for _, d := range bag.Items() {
			switch d.Severity {
			case diag.SevError:
				r.Errors++
			case diag.SevWarning:
				r.Warnings++
			}
		}
	}
	r.Templates = append(r.Templates, t)
}

// Write encodes r as indented JSON.
func (r *Report) Write(w io.Writer) error {
	if r.Templates == nil {
		r.Templates = []TemplateJSON{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
