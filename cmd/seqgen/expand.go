package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"seqgen/internal/driver"
	"seqgen/internal/source"
)

func newExpandCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expand [flags] file.go.seq",
		Short: "Expand one template and print the result",
		Long:  `Expand runs seq! and derive! expansion on one template and prints the Go source, or writes it with -o`,
		Args:  cobra.ExactArgs(1),
		RunE:  runExpand,
	}
	cmd.Flags().StringP("output", "o", "", "write the result to this file instead of stdout")
	cmd.Flags().Bool("no-fmt", false, "do not run gofmt on the result")
	return cmd
}

func runExpand(cmd *cobra.Command, args []string) error {
	outPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	noFmt, err := cmd.Flags().GetBool("no-fmt")
	if err != nil {
		return fmt.Errorf("failed to get no-fmt flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	useColor, err := readColorMode(cmd, os.Stderr)
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
	if noFmt {
		opts.Gofmt = false
	}

	fs := source.NewFileSetWithBase(root)
	fileID, err := fs.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", args[0], err)
	}
	res := driver.ExpandFile(cmd.Context(), fs, fileID, opts.Options)

	if _, err := printDiagnostics(cmd.ErrOrStderr(), res.Bag, fs, diagOutput{color: useColor}); err != nil {
		return err
	}
	if showTimings {
		printPhaseTimings(cmd.ErrOrStderr(), res.Timing)
	}
	if res.Output == nil {
		return errDiagnostics
	}

	output := res.Output
	if opts.Header {
		output = append([]byte(driver.GeneratedHeader), output...)
	}
	if outPath == "" {
		_, err = cmd.OutOrStdout().Write(output)
		return err
	}
	// #nosec G306 -- generated sources are meant to be readable
	if err := os.WriteFile(outPath, output, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	return nil
}
