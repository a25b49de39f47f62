package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"seqgen/internal/project"
)

// loadProjectConfig reads --config, or the seqgen.toml found above the
// working directory, or the defaults. root is the directory paths are shown
// relative to.
func loadProjectConfig(cmd *cobra.Command) (cfg project.Config, root string, err error) {
	configPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return project.Config{}, "", fmt.Errorf("failed to get config flag: %w", err)
	}
	if configPath != "" {
		cfg, err = project.LoadConfig(configPath)
		if err != nil {
			return project.Config{}, "", err
		}
		abs, err := filepath.Abs(configPath)
		if err != nil {
			return project.Config{}, "", fmt.Errorf("failed to resolve %s: %w", configPath, err)
		}
		return cfg, filepath.Dir(abs), nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return project.Config{}, "", fmt.Errorf("failed to get working directory: %w", err)
	}
	manifest, ok, err := project.LoadManifest(wd)
	if err != nil {
		return project.Config{}, "", err
	}
	if !ok {
		return project.DefaultConfig(), wd, nil
	}
	return manifest.Config, manifest.Root, nil
}
