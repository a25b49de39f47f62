package project

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultSuffix is stripped from template names to form output names.
const DefaultSuffix = ".seq"

// Config mirrors seqgen.toml.
type Config struct {
	Generate GenerateConfig `toml:"generate"`
	Expand   ExpandConfig   `toml:"expand"`
}

type GenerateConfig struct {
	Suffix string `toml:"suffix"`
	Gofmt  bool   `toml:"gofmt"`
	Header bool   `toml:"header"`
	Jobs   int    `toml:"jobs"`
}

type ExpandConfig struct {
	MaxIterations uint64 `toml:"max_iterations"`
}

// DefaultConfig is used when no manifest exists and fills keys the manifest
// leaves out.
func DefaultConfig() Config {
	return Config{
		Generate: GenerateConfig{
			Suffix: DefaultSuffix,
			Gofmt:  true,
			Header: true,
		},
	}
}

// Manifest is a loaded seqgen.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// LoadConfig parses the manifest at path on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("generate", "suffix") && !strings.HasPrefix(cfg.Generate.Suffix, ".") {
		return Config{}, fmt.Errorf("%s: [generate].suffix must start with '.', got %q", path, cfg.Generate.Suffix)
	}
	if cfg.Generate.Jobs < 0 {
		return Config{}, fmt.Errorf("%s: [generate].jobs must not be negative", path)
	}
	return cfg, nil
}

// LoadManifest finds and loads seqgen.toml above startDir. ok is false when
// there is none.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

// OutputPath strips suffix from a template path: foo.go.seq → foo.go.
func OutputPath(template, suffix string) (string, bool) {
	if suffix == "" {
		suffix = DefaultSuffix
	}
	out, ok := strings.CutSuffix(template, suffix)
	if !ok || out == "" || strings.HasSuffix(out, string(filepath.Separator)) || strings.HasSuffix(out, "/") {
		return "", false
	}
	return out, true
}
