package diag

import (
	"errors"
	"fmt"
	"testing"

	"seqgen/internal/source"
)

func TestBagLimitAndMerge(t *testing.T) {
	b := NewBag(2)
	for i := range 3 {
		start := uint32(i)
		b.Add(NewError(SynExpectIn, source.Span{Start: start, End: start + 1}, "expected 'in'"))
	}
	if b.Len() != 2 || b.Dropped() != 1 {
		t.Fatalf("Len=%d Dropped=%d, want 2/1", b.Len(), b.Dropped())
	}

	other := NewBag(1)
	other.Add(New(SevWarning, GenFormatFail, source.Span{}, "gofmt failed"))
	other.Add(New(SevWarning, GenFormatFail, source.Span{}, "again"))
	b.Merge(other)
	b.Merge(nil)
	if b.Len() != 3 || b.Dropped() != 2 {
		t.Fatalf("after merge Len=%d Dropped=%d, want 3/2", b.Len(), b.Dropped())
	}
	if b.ErrorCount() != 2 || b.Count(SevWarning) != 3 || !b.HasWarnings() {
		t.Fatalf("unexpected severity counters")
	}
	// лимит вырос до 3, следующая снова отбрасывается
	if b.Add(NewError(SynExpectIn, source.Span{}, "x")) {
		t.Fatal("Add past the grown limit")
	}

	if NewBag(-1).Add(NewError(SynExpectIn, source.Span{}, "x")) {
		t.Fatal("negative limit keeps nothing")
	}
}

func TestBagSort(t *testing.T) {
	b := NewBag(8)
	b.Add(NewError(SynExpectBody, source.Span{Start: 10, End: 11}, "b"))
	b.Add(New(SevWarning, GenFormatFail, source.Span{Start: 2, End: 3}, "w"))
	b.Add(NewError(SynExpectIn, source.Span{Start: 2, End: 3}, "a"))
	b.Add(NewError(SynExpectIn, source.Span{File: 1}, "other file"))
	b.Sort()

	var got []string
	for _, d := range b.Items() {
		got = append(got, d.Message)
	}
	if fmt.Sprint(got) != "[a w b other file]" {
		t.Fatalf("order = %q", got)
	}
}

func TestCodeIDs(t *testing.T) {
	cases := map[Code]string{
		LexUnknownChar:       "LEX1001",
		SynUnclosedDelimiter: "SYN2001",
		SynTrailingTokens:    "SYN2106",
		RngLitOutOfRange:     "RNG3001",
		DrvBadBuilderTag:     "DRV4003",
		GenFormatFail:        "GEN5001",
		IOLoadFileError:      "IO6001",
		UnknownCode:          "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
	if Code(9999).Title() != "Unknown error" {
		t.Errorf("unregistered code must fall back to the unknown title")
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(4)
	b := Report(BagReporter{Bag: bag}, SynExpectLoopVar, source.Span{Start: 1, End: 2}, "expected loop variable").
		WithNote(source.Span{Start: 0, End: 1}, "invocation starts here")
	b.Emit()
	b.Emit()
	if bag.Len() != 1 {
		t.Fatalf("Emit must be idempotent, got %d items", bag.Len())
	}
	if len(bag.Items()[0].Notes) != 1 {
		t.Fatalf("note lost")
	}

	// без репортёра Emit ничего не делает
	Report(nil, SynExpectIn, source.Span{}, "x").Emit()
}

func TestCodeSeverity(t *testing.T) {
	cases := map[Code]Severity{
		SynExpectIn:       SevError,
		RngTooManyRepeats: SevError,
		DrvNameConflict:   SevError,
		IOWriteError:      SevError,
		UnknownCode:       SevError,
		LexIdentNotNFC:    SevWarning,
		DrvMissingFmt:     SevWarning,
		GenFormatFail:     SevWarning,
		GenCacheFailed:    SevWarning,
		DrvInfo:           SevInfo,
		GenInfo:           SevInfo,
	}
	for code, want := range cases {
		if got := code.Severity(); got != want {
			t.Errorf("%s.Severity() = %s, want %s", code.ID(), got, want)
		}
	}

	bag := NewBag(2)
	Report(BagReporter{Bag: bag}, GenCacheFailed, source.Span{}, "cache read").Emit()
	if bag.HasErrors() || !bag.HasWarnings() {
		t.Fatal("cache failures must be warnings")
	}
	ReportErr(BagReporter{Bag: bag}, Errorf(GenFormatFail, source.Span{}, "bad"), source.Span{})
	if !bag.HasErrors() {
		t.Fatal("ReportErr must report an error even for a warning code")
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(4)
	r := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{Start: 4, End: 5}
	Report(r, LexUnknownChar, sp, "unknown character").Emit()
	Report(r, LexUnknownChar, sp, "unknown character").WithNote(sp, "again").Emit()
	Report(r, LexUnknownChar, sp, "other").Emit()
	Report(r, LexUnknownChar, source.Span{Start: 5, End: 6}, "unknown character").Emit()
	if bag.Len() != 3 {
		t.Fatalf("expected 3 unique diagnostics, got %d", bag.Len())
	}
	if r.Suppressed() != 1 {
		t.Fatalf("Suppressed() = %d, want 1", r.Suppressed())
	}
	if len(bag.Items()[0].Notes) != 0 {
		t.Fatal("the first copy must win")
	}
}

func TestReportErr(t *testing.T) {
	bag := NewBag(4)
	r := BagReporter{Bag: bag}
	sp := source.Span{Start: 3, End: 4}

	ReportErr(r, fmt.Errorf("wrapped: %w", Errorf(RngLitOutOfRange, sp, "too big")), source.Span{})
	ReportErr(r, errors.New("plain"), source.Span{Start: 9, End: 9})
	ReportErr(r, nil, source.Span{})

	items := bag.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(items))
	}
	if items[0].Code != RngLitOutOfRange || items[0].Primary != sp || items[0].Message != "too big" {
		t.Errorf("located error lost: %+v", items[0])
	}
	if items[1].Code != UnknownCode || items[1].Primary.Start != 9 {
		t.Errorf("plain error: %+v", items[1])
	}
}
