package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ManifestName is the file name of the project configuration.
const ManifestName = "seqgen.toml"

// FindManifest looks for seqgen.toml in startDir and its parents. The search
// stops at the first directory holding go.mod: a module never picks up the
// manifest of an enclosing repository.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for ; ; dir = filepath.Dir(dir) {
		manifest := filepath.Join(dir, ManifestName)
		found, err := exists(manifest)
		if err != nil || found {
			return manifest, found, err
		}
		if atModuleRoot, err := exists(filepath.Join(dir, "go.mod")); err != nil || atModuleRoot {
			return "", false, err
		}
		if filepath.Dir(dir) == dir {
			return "", false, nil
		}
	}
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("failed to stat %q: %w", path, err)
	}
}
