package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"seqgen/internal/diag"
	"seqgen/internal/diagfmt"
	"seqgen/internal/driver"
	"seqgen/internal/source"
)

type diagOutput struct {
	format string // pretty|json|short
	color  bool
	notes  bool
}

func readColorMode(cmd *cobra.Command, f *os.File) (bool, error) {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch strings.ToLower(mode) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto", "":
		return isTerminal(f), nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
}

// printDiagnostics sorts and prints bag to w in the pretty or short format.
// It reports whether bag holds errors. JSON goes through jsonReport instead.
func printDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet, out diagOutput) (bool, error) {
	if bag == nil || bag.Len() == 0 {
		return false, nil
	}
	bag.Sort()
	switch out.format {
	case "", "pretty":
		diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:     out.color,
			Context:   1,
			PathMode:  diagfmt.PathModeRelative,
			ShowNotes: true,
		})
	case "short":
		if s := diag.FormatShortDiagnostics(bag.Items(), fs, out.notes); s != "" {
			fmt.Fprintln(w, s)
		}
	default:
		return bag.HasErrors(), fmt.Errorf("unknown format: %s", out.format)
	}
	if n := bag.Dropped(); n > 0 {
		fmt.Fprintf(w, "... %d more diagnostics not shown (--max-diagnostics)\n", n)
	}
	return bag.HasErrors(), nil
}

// jsonReport collects a whole run into one document for --format=json.
func jsonReport(res *driver.GenerateResult, notes bool, verb string) *diagfmt.Report {
	opts := diagfmt.JSONOpts{IncludePositions: true, PathMode: diagfmt.PathModeRelative, IncludeNotes: notes}
	r := &diagfmt.Report{}
	for i := range res.Files {
		fr := &res.Files[i]
		fr.Bag.Sort()
		var output string
		if fr.Written || fr.Cached {
			output = fr.OutPath
		}
		r.Add(fr.Display, output, fileStatus(fr, verb), fr.Bag, res.FileSet, opts)
	}
	return r
}
