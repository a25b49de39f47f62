package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"seqgen/internal/driver"
	"seqgen/internal/pipeline"
	"seqgen/internal/project"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [flags] [path...]",
		Short: "Generate Go files from every template under the given paths",
		Long: `Generate expands every template (foo.go.seq) under the given files and
directories and writes foo.go next to it. Without paths the current directory is used.`,
		RunE: runGenerate,
	}
	cmd.Flags().Int("jobs", 0, "max parallel workers (0=auto, overrides [generate].jobs)")
	cmd.Flags().String("ui", "auto", "progress UI mode (auto|on|off)")
	cmd.Flags().Bool("no-cache", false, "do not read or write the disk cache")
	cmd.Flags().Bool("dry-run", false, "expand without writing files")
	cmd.Flags().String("format", "pretty", "diagnostics format (pretty|json|short)")
	return cmd
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] [path...]",
		Short: "Expand templates in memory and report diagnostics",
		RunE:  runCheck,
	}
	cmd.Flags().Int("jobs", 0, "max parallel workers (0=auto, overrides [generate].jobs)")
	cmd.Flags().String("format", "pretty", "diagnostics format (pretty|json|short)")
	cmd.Flags().Bool("with-notes", false, "include diagnostic notes in json and short output")
	return cmd
}

// generateOptions maps config and shared flags onto driver options.
func generateOptions(cmd *cobra.Command, cfg project.Config) (driver.GenerateOptions, error) {
	opts := driver.OptionsFromConfig(cfg)
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return opts, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	opts.MaxDiagnostics = maxDiagnostics
	if f := cmd.Flags().Lookup("jobs"); f != nil && f.Changed {
		jobs, err := cmd.Flags().GetInt("jobs")
		if err != nil {
			return opts, fmt.Errorf("failed to get jobs flag: %w", err)
		}
		if jobs < 0 {
			return opts, fmt.Errorf("--jobs must not be negative")
		}
		opts.Jobs = jobs
	}
	return opts, nil
}

func pathsOrCwd(args []string) []string {
	if len(args) == 0 {
		return []string{"."}
	}
	return args
}

func runGenerate(cmd *cobra.Command, args []string) error {
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return fmt.Errorf("failed to get dry-run flag: %w", err)
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	withUI, err := useProgressUI(cmd, format)
	if err != nil {
		return err
	}

	cfg, root, err := loadProjectConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := generateOptions(cmd, cfg)
	if err != nil {
		return err
	}
	opts.BaseDir = root
	opts.DryRun = dryRun
	if !noCache {
		cache, err := driver.OpenDiskCache("seqgen")
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: disk cache disabled: %v\n", err)
		} else {
			opts.Cache = cache
		}
	}

	paths := pathsOrCwd(args)
	var res *driver.GenerateResult
	if withUI {
		files, err := driver.CollectTemplates(paths, opts.Suffix)
		if err != nil {
			return err
		}
		res, err = runGenerateWithUI(cmd.Context(), "generate", pipeline.DisplayPaths(files, root), paths, &opts)
		if err != nil {
			return err
		}
	} else {
		res, err = driver.GenerateDir(cmd.Context(), paths, opts)
		if err != nil {
			return err
		}
	}
	return report(cmd, res, format, false, "generated")
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}

	cfg, root, err := loadProjectConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := generateOptions(cmd, cfg)
	if err != nil {
		return err
	}
	opts.BaseDir = root
	opts.DryRun = true

	res, err := driver.GenerateDir(cmd.Context(), pathsOrCwd(args), opts)
	if err != nil {
		return err
	}
	return report(cmd, res, format, withNotes, "checked")
}

// report prints diagnostics of every file, the summary line and timings.
func report(cmd *cobra.Command, res *driver.GenerateResult, format string, notes bool, verb string) error {
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	useColor, err := readColorMode(cmd, os.Stderr)
	if err != nil {
		return err
	}

	if format == "json" {
		r := jsonReport(res, notes, verb)
		if err := r.Write(cmd.OutOrStdout()); err != nil {
			return err
		}
		if showTimings {
			printStageTimings(cmd.ErrOrStderr(), res.Timings)
		}
		if r.Errors > 0 {
			return errDiagnostics
		}
		return nil
	}

	out := diagOutput{format: format, color: useColor, notes: notes}
	failed, written, cached := 0, 0, 0
	for i := range res.Files {
		fr := &res.Files[i]
		hasErrors, err := printDiagnostics(cmd.ErrOrStderr(), fr.Bag, res.FileSet, out)
		if err != nil {
			return err
		}
		switch {
		case hasErrors:
			failed++
		case fr.Cached:
			cached++
		}
		if fr.Written {
			written++
		}
	}

	if !quiet {
		var b strings.Builder
		fmt.Fprintf(&b, "%s %d template(s)", verb, len(res.Files))
		if verb == "generated" {
			fmt.Fprintf(&b, ", %d written", written)
			if cached > 0 {
				fmt.Fprintf(&b, ", %d cached", cached)
			}
		}
		if failed > 0 {
			fmt.Fprintf(&b, ", %d failed", failed)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), b.String())
	}
	if showTimings {
		printStageTimings(cmd.ErrOrStderr(), res.Timings)
	}
	if failed > 0 {
		return errDiagnostics
	}
	return nil
}

// fileStatus names the outcome of one template for JSON output.
func fileStatus(fr *driver.FileResult, verb string) string {
	switch {
	case fr.Bag.HasErrors():
		return "failed"
	case fr.Cached:
		return "cached"
	case fr.Written:
		return "written"
	case verb == "checked":
		return "ok"
	default:
		return "unchanged"
	}
}
