package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"seqgen/internal/driver"
	"seqgen/internal/pipeline"
	"seqgen/internal/project"
)

func newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean [flags] [path...]",
		Short: "Drop the expansion cache and optionally generated files",
		Long: `Clean empties the disk cache. With --outputs it also removes foo.go for
every template foo.go.seq under the given paths, as long as foo.go still
starts with the generated-code header.`,
		RunE: runClean,
	}
	cmd.Flags().Bool("outputs", false, "also remove generated outputs")
	return cmd
}

func runClean(cmd *cobra.Command, args []string) error {
	outputs, err := cmd.Flags().GetBool("outputs")
	if err != nil {
		return fmt.Errorf("failed to get outputs flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	cache, err := driver.OpenDiskCache("seqgen")
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	if err := cache.DropAll(); err != nil {
		return fmt.Errorf("failed to drop cache: %w", err)
	}
	if !quiet {
		fmt.Fprintln(cmd.OutOrStdout(), "cache cleared")
	}
	if !outputs {
		return nil
	}

	cfg, root, err := loadProjectConfig(cmd)
	if err != nil {
		return err
	}
	templates, err := driver.CollectTemplates(pathsOrCwd(args), cfg.Generate.Suffix)
	if err != nil {
		return err
	}
	for _, tpl := range templates {
		out, ok := project.OutputPath(tpl, cfg.Generate.Suffix)
		if !ok {
			continue
		}
		removed, err := removeGenerated(out)
		if err != nil {
			return err
		}
		if removed && !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", pipeline.DisplayPath(out, root))
		}
	}
	return nil
}

// removeGenerated deletes path only when it carries the generated-code header.
func removeGenerated(path string) (bool, error) {
	// #nosec G304 -- path is derived from a template found under user-provided paths
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read %q: %w", path, err)
	}
	if !bytes.HasPrefix(data, []byte(driver.GeneratedHeader)) {
		return false, nil
	}
	if err := os.Remove(path); err != nil {
		return false, fmt.Errorf("failed to remove %q: %w", path, err)
	}
	return true, nil
}
