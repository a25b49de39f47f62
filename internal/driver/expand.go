package driver

import (
	"context"
	"go/format"
	"strconv"
	"strings"

	"fortio.org/safecast"

	"seqgen/internal/derive"
	"seqgen/internal/diag"
	sfmt "seqgen/internal/format"
	"seqgen/internal/observ"
	"seqgen/internal/seq"
	"seqgen/internal/source"
	"seqgen/internal/token"
	"seqgen/internal/tokentree"
	"seqgen/internal/trace"
)

// ExpandResult is the outcome of expanding one file.
type ExpandResult struct {
	// Output is nil when the file produced error diagnostics.
	Output      []byte
	Invocations int
	Bag         *diag.Bag
	// Timing holds the parse, expand and gofmt phases.
	Timing observ.Report
}

// edit replaces span with a rendered stream (seq!), or with the text at keep
// followed by text (derive!).
type edit struct {
	span   source.Span
	derive bool
	stream tokentree.Stream
	keep   source.Span
	text   string
}

type expander struct {
	file   *source.File
	opts   *Options
	r      diag.Reporter
	tracer trace.Tracer
	parent trace.Parent
	edits  []edit
	// первая derive!, которой нужен fmt
	fmtUser *source.Span
}

// ExpandFile expands every seq! and derive! invocation of a loaded file and
// splices the results into the file text.
func ExpandFile(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options) *ExpandResult {
	res := &ExpandResult{Bag: diag.NewBag(maxDiagnostics(opts.MaxDiagnostics))}
	file := fs.Get(id)
	if file == nil {
		res.Bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: id}, "unknown file"))
		return res
	}
	r := diag.NewDedupReporter(diag.BagReporter{Bag: res.Bag})

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePass, "expand", trace.ParentFrom(ctx))
	defer span.End("")
	tm := observ.NewTimer()
	defer func() { res.Timing = tm.Report() }()

	endParse := tm.Track("parse")
	stream, ok := tokentree.Parse(file, r)
	endParse("")
	if !ok {
		return res
	}

	endExpand := tm.Track("expand")
	ex := &expander{file: file, opts: &opts, r: r, tracer: tracer, parent: span.Parent()}
	ex.collect(stream, 0)
	endExpand(strconv.Itoa(len(ex.edits)) + " invocations")
	res.Invocations = len(ex.edits)
	span.WithExtra("invocations", strconv.Itoa(len(ex.edits)))
	if n := r.Suppressed(); n > 0 {
		span.WithExtra("duplicates", strconv.Itoa(n))
	}

	if ex.fmtUser != nil && !importsFmt(stream) {
		diag.Report(r, diag.DrvMissingFmt, *ex.fmtUser, "generated code calls fmt but the file does not import \"fmt\"").Emit()
	}
	if res.Bag.HasErrors() {
		return res
	}

	out := ex.splice()
	if opts.Gofmt && len(ex.edits) > 0 {
		fspan := trace.Begin(tracer, trace.ScopePass, "gofmt", span.Parent())
		endFmt := tm.Track("gofmt")
		formatted, err := format.Source(out)
		endFmt("")
		if err != nil {
			fspan.End("failed")
			diag.Report(r, diag.GenFormatFail, source.Span{File: id}, "gofmt: "+err.Error()).
				WithNote(source.Span{File: id}, "the output is written unformatted").Emit()
		} else {
			fspan.End("")
			out = formatted
		}
	}
	res.Output = out
	return res
}

func maxDiagnostics(n int) int {
	if n <= 0 {
		return 100
	}
	return n
}

// collect finds invocations at every depth. Invocation bodies are not
// searched again, so nested seq! stays as written.
func (ex *expander) collect(s tokentree.Stream, depth int) {
	for i := 0; i < len(s); i++ {
		switch {
		case isMacro(s, i, "seq") && s[i+2].Kind == tokentree.KindGroup:
			ex.expandSeq(s[i : i+3])
			i += 2

		case isMacro(s, i, "derive") && s[i+2].IsGroup(tokentree.Parenthesis):
			if depth > 0 {
				diag.Report(ex.r, diag.DrvNotTopLevel, s[i].Span.Cover(s[i+2].Span), "derive! is only allowed before a top-level type declaration").Emit()
				i += 2
				continue
			}
			i += 2 + ex.expandDerive(s, i)

		case s[i].Kind == tokentree.KindGroup:
			ex.collect(s[i].Children, depth+1)
		}
	}
}

// isMacro matches name immediately followed by '!' and a group.
func isMacro(s tokentree.Stream, i int, name string) bool {
	if i+2 >= len(s) || !s[i].IsIdent(name) || !s[i+1].IsPunct('!') {
		return false
	}
	return s[i].Span.End == s[i+1].Span.Start
}

// closer returns the span of g's closing delimiter.
func closer(g *tokentree.Node) source.Span {
	sp := g.Span
	if sp.End > sp.Start {
		sp.Start = sp.End - 1
	}
	return sp
}

func (ex *expander) expandSeq(nodes tokentree.Stream) {
	group := &nodes[2]
	whole := nodes[0].Span.Cover(group.Span)

	ispan := trace.Begin(ex.tracer, trace.ScopeInvocation, "seq", ex.parent)
	inv, err := seq.ParseInvocation(group.Children, closer(group))
	if err != nil {
		ispan.End("error")
		seq.Report(ex.r, err, whole)
		return
	}
	out, err := seq.Expand(inv, ex.opts.Expand)
	if err != nil {
		ispan.End("error")
		seq.Report(ex.r, err, whole)
		return
	}
	if n, full := inv.Count(); full {
		ispan.WithExtra("count", "2^64")
	} else {
		ispan.WithExtra("count", strconv.FormatUint(n, 10))
	}
	ispan.WithExtra("mode", seq.ModeOf(inv.Body).String()).End("")

	ex.edits = append(ex.edits, edit{span: whole, stream: out})
}

// expandDerive handles derive!(...) at s[i] and returns the number of nodes
// of the type declaration it consumed.
func (ex *expander) expandDerive(s tokentree.Stream, i int) int {
	args := &s[i+2]
	ispan := trace.Begin(ex.tracer, trace.ScopeInvocation, "derive", ex.parent)

	kinds, err := derive.ParseDerives(args.Children, closer(args))
	if err != nil {
		ispan.End("error")
		diag.ReportErr(ex.r, err, args.Span)
		return 0
	}
	rec, consumed, err := derive.ParseRecord(s[i+3:], ex.endOfFile())
	if err != nil {
		ispan.End("error")
		diag.ReportErr(ex.r, err, args.Span)
		return 0
	}
	code, usesFmt, err := derive.Generate(&rec, kinds)
	if err != nil {
		ispan.End("error")
		diag.ReportErr(ex.r, err, rec.Span)
		return consumed
	}
	ispan.WithExtra("type", rec.Name).End("")

	if usesFmt && ex.fmtUser == nil {
		sp := s[i].Span.Cover(args.Span)
		ex.fmtUser = &sp
	}
	ex.edits = append(ex.edits, edit{
		span:   s[i].Span.Cover(rec.Span),
		derive: true,
		keep:   rec.Span,
		text:   "\n\n" + strings.TrimSuffix(code, "\n"),
	})
	return consumed
}

func (ex *expander) endOfFile() source.Span {
	n, err := safecast.Conv[uint32](len(ex.file.Content))
	if err != nil {
		n = 0
	}
	return source.Span{File: ex.file.ID, Start: n, End: n}
}

// splice copies the file text between edits and renders every edit.
func (ex *expander) splice() []byte {
	w := sfmt.NewWriter(ex.file, sfmt.GoOptions())
	for i := range ex.edits {
		e := &ex.edits[i]
		w.CopyTo(e.span.Start)
		if e.derive {
			// сам derive!(...) выпадает, объявление остаётся
			w.SkipTo(e.keep.Start)
			w.CopyTo(e.keep.End)
			w.WriteString(e.text)
		} else {
			w.WriteStream(e.stream)
		}
		w.SkipTo(e.span.End)
	}
	return w.Finish()
}

// importsFmt reports whether the file imports package fmt under its own name.
func importsFmt(s tokentree.Stream) bool {
	for i := 0; i+1 < len(s); i++ {
		if !s[i].IsIdent("import") {
			continue
		}
		next := &s[i+1]
		if isFmtPath(next) {
			return true
		}
		if next.IsGroup(tokentree.Parenthesis) {
			spec := next.Children
			for j := range spec {
				if !isFmtPath(&spec[j]) {
					continue
				}
				// import f "fmt", _ "fmt" and . "fmt" do not count
				if j > 0 && !spec[j].NewlineBefore && (spec[j-1].Kind == tokentree.KindIdent || spec[j-1].IsPunct('.')) {
					continue
				}
				return true
			}
		}
	}
	return false
}

func isFmtPath(n *tokentree.Node) bool {
	if n.Kind != tokentree.KindLiteral {
		return false
	}
	return (n.Lit == token.StringLit && n.Text == `"fmt"`) || (n.Lit == token.RawStringLit && n.Text == "`fmt`")
}
