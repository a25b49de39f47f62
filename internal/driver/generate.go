package driver

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"seqgen/internal/diag"
	"seqgen/internal/observ"
	"seqgen/internal/pipeline"
	"seqgen/internal/project"
	"seqgen/internal/source"
	"seqgen/internal/trace"
)

// FileResult is the outcome for one template.
type FileResult struct {
	Path    string // template path
	Display string // path shown in progress output
	OutPath string
	FileID  source.FileID
	Bag     *diag.Bag
	Output  []byte
	Cached  bool
	// Written is false for dry runs and for outputs that did not change.
	Written bool
	Timings pipeline.Timings
}

// GenerateResult collects every file of a GenerateDir run.
type GenerateResult struct {
	FileSet *source.FileSet
	Files   []FileResult
	Timings pipeline.Timings
}

// HasErrors reports whether any file produced error diagnostics.
func (r *GenerateResult) HasErrors() bool {
	for i := range r.Files {
		if r.Files[i].Bag.HasErrors() {
			return true
		}
	}
	return false
}

// CollectTemplates expands paths into a sorted list of template files.
// Directories are walked recursively, skipping hidden directories; files must
// carry the template suffix.
func CollectTemplates(paths []string, suffix string) ([]string, error) {
	if suffix == "" {
		suffix = project.DefaultSuffix
	}
	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		path = filepath.Clean(path)
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if _, ok := project.OutputPath(root, suffix); !ok {
				return nil, fmt.Errorf("%s: not a template (expected suffix %s)", root, suffix)
			}
			add(root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if _, ok := project.OutputPath(path, suffix); ok {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// GenerateDir expands every template under paths in parallel and writes the
// outputs next to the templates.
func GenerateDir(ctx context.Context, paths []string, opts GenerateOptions) (*GenerateResult, error) {
	tracer := trace.FromContext(ctx)
	root := trace.Begin(tracer, trace.ScopeDriver, "generate", trace.ParentFrom(ctx))
	defer root.End("")

	files, err := CollectTemplates(paths, opts.Suffix)
	if err != nil {
		return nil, err
	}
	result := &GenerateResult{
		FileSet: source.NewFileSetWithBase(opts.BaseDir),
		Files:   make([]FileResult, len(files)),
	}
	if len(files) == 0 {
		return result, nil
	}

	// FileSet заполняется до запуска воркеров и дальше только читается
	loadErrors := make(map[int]error)
	for i, path := range files {
		start := time.Now()
		out, _ := project.OutputPath(path, opts.Suffix)
		fr := &result.Files[i]
		fr.Path = path
		fr.OutPath = out
		fr.Display = pipeline.DisplayPath(path, absOrEmpty(opts.BaseDir))
		fr.Bag = diag.NewBag(maxDiagnostics(opts.MaxDiagnostics))
		id, err := result.FileSet.Load(path)
		if err != nil {
			// пустая запись, чтобы диагностика указывала на этот путь, а не на файл 0
			fr.FileID = result.FileSet.Add(path, nil, source.FileVirtual)
			loadErrors[i] = err
			continue
		}
		fr.FileID = id
		fr.Timings.Add(pipeline.StageLoad, time.Since(start))
	}

	display := make([]string, len(files))
	for i := range result.Files {
		display[i] = result.Files[i].Display
	}
	pipeline.EmitQueued(opts.Progress, display)

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			fr := &result.Files[i]
			if loadErr, failed := loadErrors[i]; failed {
				fr.Bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: fr.FileID}, "failed to load file: "+loadErr.Error()))
				pipeline.Emit(opts.Progress, fr.Display, pipeline.StageLoad, pipeline.StatusError, loadErr, 0)
				return nil
			}
			generateFile(gctx, result.FileSet, fr, &opts, root.Parent())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, err
	}

	for i := range result.Files {
		result.Timings.Merge(result.Files[i].Timings)
	}
	return result, nil
}

func generateFile(ctx context.Context, fs *source.FileSet, fr *FileResult, opts *GenerateOptions, parent trace.Parent) {
	tracer := trace.FromContext(ctx)
	span := trace.BeginTemplate(tracer, fr.Display, parent)
	defer span.End("")
	// pass-спаны видны и на phase, когда сам span файла отфильтрован
	here := trace.Parent{SpanID: span.ID(), Template: fr.Display}
	ctx = trace.WithParent(ctx, here)

	file := fs.Get(fr.FileID)
	r := diag.BagReporter{Bag: fr.Bag}

	var key project.Digest
	if opts.Cache != nil {
		key = opts.Cache.Key(file.Hash, opts)
		var payload DiskPayload
		hit, err := opts.Cache.Get(key, &payload)
		if err != nil {
			diag.Report(r, diag.GenCacheFailed, source.Span{File: fr.FileID}, "cache read: "+err.Error()).Emit()
		}
		if hit {
			span.WithExtra("cached", "true")
			replayWarnings(fr.Bag, fr.FileID, payload.Warnings)
			fr.Output = payload.Output
			fr.Cached = true
			writeOutput(fr, opts, r)
			pipeline.Emit(opts.Progress, fr.Display, pipeline.StageWrite, pipeline.StatusCached, nil, 0)
			return
		}
	}

	pipeline.Emit(opts.Progress, fr.Display, pipeline.StageExpand, pipeline.StatusWorking, nil, 0)
	start := time.Now()
	res := ExpandFile(ctx, fs, fr.FileID, opts.Options)
	fr.Bag.Merge(res.Bag)
	recordPhases(&fr.Timings, res.Timing)

	if res.Output == nil {
		errs := fmt.Sprint(fr.Bag.ErrorCount())
		span.WithExtra("errors", errs)
		trace.Point(tracer, trace.ScopeFile, "failed", errs+" errors", here)
		pipeline.Emit(opts.Progress, fr.Display, pipeline.StageExpand, pipeline.StatusError, nil, time.Since(start))
		return
	}

	out := res.Output
	if opts.Header {
		out = append([]byte(GeneratedHeader), out...)
	}
	fr.Output = out

	if opts.Cache != nil {
		payload := DiskPayload{
			Path:        fr.Path,
			InputHash:   file.Hash,
			Output:      out,
			Invocations: res.Invocations,
			Warnings:    cacheWarnings(res.Bag),
		}
		if err := opts.Cache.Put(key, &payload); err != nil {
			diag.Report(r, diag.GenCacheFailed, source.Span{File: fr.FileID}, "cache write: "+err.Error()).Emit()
		}
	}

	pipeline.Emit(opts.Progress, fr.Display, pipeline.StageWrite, pipeline.StatusWorking, nil, 0)
	if !writeOutput(fr, opts, r) {
		pipeline.Emit(opts.Progress, fr.Display, pipeline.StageWrite, pipeline.StatusError, nil, time.Since(start))
		return
	}
	pipeline.Emit(opts.Progress, fr.Display, pipeline.StageWrite, pipeline.StatusDone, nil, time.Since(start))
}

// writeOutput writes fr.Output unless this is a dry run or the file already
// holds the same bytes. It reports false on a write error.
func writeOutput(fr *FileResult, opts *GenerateOptions, r diag.Reporter) bool {
	if opts.DryRun {
		return true
	}
	start := time.Now()
	defer func() { fr.Timings.Add(pipeline.StageWrite, time.Since(start)) }()

	if old, err := os.ReadFile(fr.OutPath); err == nil && bytes.Equal(old, fr.Output) {
		return true
	}
	// #nosec G306 -- generated sources are meant to be readable
	if err := os.WriteFile(fr.OutPath, fr.Output, 0o644); err != nil {
		diag.Report(r, diag.IOWriteError, source.Span{File: fr.FileID}, "failed to write "+fr.OutPath+": "+err.Error()).Emit()
		return false
	}
	fr.Written = true
	return true
}

func recordPhases(t *pipeline.Timings, rep observ.Report) {
	for _, p := range rep.Phases {
		if p.Name == "gofmt" {
			t.Add(pipeline.StageFormat, p.Dur)
		} else {
			t.Add(pipeline.StageExpand, p.Dur)
		}
	}
}

func absOrEmpty(dir string) string {
	if dir == "" {
		return ""
	}
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}
