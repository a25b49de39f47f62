package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"seqgen/internal/diagfmt"
	"seqgen/internal/driver"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] file.go.seq",
		Short: "Tokenize a template file",
		Long:  `Tokenize breaks a template into tokens, or prints its token tree with --tree`,
		Args:  cobra.ExactArgs(1),
		RunE:  runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	cmd.Flags().Bool("tree", false, "print the token tree instead of the flat token list")
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	tree, err := cmd.Flags().GetBool("tree")
	if err != nil {
		return fmt.Errorf("failed to get tree flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	useColor, err := readColorMode(cmd, os.Stderr)
	if err != nil {
		return err
	}

	result, err := driver.Tokenize(filePath, maxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Выводим диагностику в stderr, если есть
	hasErrors, err := printDiagnostics(cmd.ErrOrStderr(), result.Bag, result.FileSet, diagOutput{color: useColor})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case tree:
		if result.Tree == nil {
			return errDiagnostics
		}
		err = diagfmt.FormatTree(out, result.Tree)
	case format == "pretty":
		err = diagfmt.FormatTokensPretty(out, result.Tokens, result.FileSet)
	case format == "json":
		err = diagfmt.FormatTokensJSON(out, result.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	if hasErrors {
		return errDiagnostics
	}
	return nil
}
