package driver

import (
	"fmt"

	"seqgen/internal/pipeline"
	"seqgen/internal/project"
	"seqgen/internal/seq"
)

// GeneratedHeader marks generated files, see https://go.dev/s/generatedcode.
const GeneratedHeader = "// Code generated by seqgen. DO NOT EDIT.\n\n"

// Options controls the expansion of one file.
type Options struct {
	Expand         seq.Options
	Gofmt          bool
	MaxDiagnostics int
}

// GenerateOptions controls GenerateDir.
type GenerateOptions struct {
	Options
	// Suffix is stripped from template names to form output names.
	Suffix string
	// Header prepends GeneratedHeader to every output.
	Header bool
	// Jobs limits parallel workers, 0 means GOMAXPROCS.
	Jobs int
	// DryRun expands without writing outputs (seqgen check).
	DryRun bool
	// Cache may be nil.
	Cache *DiskCache
	// Progress may be nil.
	Progress pipeline.ProgressSink
	// BaseDir is used for progress display paths.
	BaseDir string
}

// OptionsFromConfig maps seqgen.toml onto generation options.
func OptionsFromConfig(cfg project.Config) GenerateOptions {
	return GenerateOptions{
		Options: Options{
			Expand: seq.Options{MaxIterations: cfg.Expand.MaxIterations},
			Gofmt:  cfg.Generate.Gofmt,
		},
		Suffix: cfg.Generate.Suffix,
		Header: cfg.Generate.Header,
		Jobs:   cfg.Generate.Jobs,
	}
}

// fingerprint captures every option that changes generated text.
func (o *GenerateOptions) fingerprint() project.Digest {
	return project.HashString(fmt.Sprintf("gofmt=%t header=%t max_iterations=%d",
		o.Gofmt, o.Header, o.Expand.MaxIterations))
}
