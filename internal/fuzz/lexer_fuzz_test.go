package fuzztests

import (
	"testing"

	"seqgen/internal/diag"
	"seqgen/internal/lexer"
	"seqgen/internal/source"
	"seqgen/internal/testkit"
	"seqgen/internal/token"
	"seqgen/internal/tokentree"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.go.seq", input))

		bag := diag.NewBag(64)
		reporter := diag.BagReporter{Bag: bag}
		lx := lexer.New(file, lexer.Options{Reporter: reporter})
		var toks []token.Token
		for {
			tok := lx.Next()
			toks = append(toks, tok)
			if tok.Kind == token.EOF {
				break
			}
			if len(toks) > len(input)+1 {
				t.Fatalf("lexer produced more tokens than input bytes")
			}
		}

		tree, ok := tokentree.Build(toks, reporter)
		if !ok || bag.HasErrors() {
			return
		}
		if err := testkit.CheckTreeInvariants(tree, file); err != nil {
			t.Fatalf("tree invariants: %v\ninput: %q", err, input)
		}
	})
}
