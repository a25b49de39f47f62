package fuzztests

import (
	"context"
	"testing"

	"seqgen/internal/diag"
	"seqgen/internal/driver"
	"seqgen/internal/format"
	"seqgen/internal/seq"
	"seqgen/internal/source"
	"seqgen/internal/tokentree"
)

// maxRepetitions keeps inputs like 0..0xffffffff from running for hours.
const maxRepetitions = 64

func FuzzSeqExpand(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.go.seq", input))
		stream, ok := tokentree.Parse(file, diag.BagReporter{Bag: diag.NewBag(16)})
		if !ok {
			return
		}
		header := stream
		if len(stream) >= 3 && stream[0].IsIdent("seq") && stream[1].IsPunct('!') && stream[2].Kind == tokentree.KindGroup {
			header = stream[2].Children
		}
		end := uint32(len(file.Content))
		eoi := source.Span{File: file.ID, Start: end, End: end}
		out, err := seq.ExpandStream(header, eoi, seq.Options{MaxIterations: maxRepetitions})
		if err != nil {
			return
		}
		_ = format.Print(out, format.GoOptions())
	})
}

func FuzzExpandFile(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		id := fs.AddVirtual("fuzz.go.seq", input)
		opts := driver.Options{
			Expand:         seq.Options{MaxIterations: maxRepetitions},
			MaxDiagnostics: 64,
		}
		res := driver.ExpandFile(context.Background(), fs, id, opts)
		if res.Bag.HasErrors() && res.Output != nil {
			t.Fatalf("output produced despite errors\ninput: %q", input)
		}
		if res.Output == nil && res.Bag.Len() == 0 {
			t.Fatalf("no output and no diagnostics\ninput: %q", input)
		}
	})
}
