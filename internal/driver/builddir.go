package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"structura/internal/emit"
	"structura/internal/observ"
	"structura/internal/project"
	"structura/internal/source"
	"structura/internal/trace"
)

// FileStatus is the progress state of one file in a directory build.
type FileStatus uint8

const (
	FileQueued FileStatus = iota
	FileCompiling
	FileDone
	FileCached
	FileFailed
)

func (s FileStatus) String() string {
	switch s {
	case FileQueued:
		return "queued"
	case FileCompiling:
		return "compiling"
	case FileDone:
		return "done"
	case FileCached:
		return "cached"
	case FileFailed:
		return "failed"
	}
	return "unknown"
}

// FileEvent is delivered to BuildOptions.Progress, possibly from several
// goroutines at once.
type FileEvent struct {
	Path   string
	Status FileStatus
	Err    error
}

// BuildOptions configures BuildDir.
type BuildOptions struct {
	Emit emit.Options
	// OutDir receives one .js file per source, mirroring the source tree.
	// Empty means outputs are kept in memory only.
	OutDir   string
	Jobs     int // 0 = GOMAXPROCS
	Cache    *DiskCache
	Progress func(FileEvent)
	Timings  bool
}

// FileResult is the outcome of one compilation unit.
type FileResult struct {
	Path    string // relative to the build root
	FileID  source.FileID
	OutPath string
	Output  string
	Cached  bool
	Err     error
}

// BuildReport collects every file of a directory build in path order.
type BuildReport struct {
	FileSet *source.FileSet
	Files   []FileResult
	Timer   *observ.Timer
	// Warnings are non-fatal problems, such as cache failures.
	Warnings []error
}

// Failed returns the number of files that did not compile.
func (r *BuildReport) Failed() int {
	n := 0
	for _, f := range r.Files {
		if f.Err != nil {
			n++
		}
	}
	return n
}

// FileError ties a compilation failure to its file.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string { return fmt.Sprintf("%s: %v", e.Path, e.Err) }

func (e *FileError) Unwrap() error { return e.Err }

// ListSources returns every .struct file under dir in sorted order.
func ListSources(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, project.SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// BuildDir compiles every .struct file under dir independently and in
// parallel. Per-file failures are combined with multierr into the returned
// error; the report is complete either way.
func BuildDir(ctx context.Context, dir string, opts BuildOptions) (*BuildReport, error) {
	files, err := ListSources(dir)
	if err != nil {
		return nil, err
	}
	report := &BuildReport{FileSet: source.NewFileSetWithBase(dir)}
	if opts.Timings {
		report.Timer = observ.NewTimer()
	}
	if len(files) == 0 {
		return report, nil
	}

	tracer := trace.FromContext(ctx)
	root := trace.Begin(tracer, trace.ScopeDriver, "build-dir", trace.ParentSpan(ctx))
	defer root.End(fmt.Sprintf("%d files", len(files)))

	// FileSet is not safe for concurrent Add, so everything is loaded up front
	report.Files = make([]FileResult, len(files))
	for i, path := range files {
		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			rel = path
		}
		report.Files[i].Path = filepath.ToSlash(rel)
		id, loadErr := report.FileSet.Load(path)
		if loadErr != nil {
			report.Files[i].Err = &LoadError{Path: path, Err: loadErr}
			continue
		}
		report.Files[i].FileID = id
		opts.notify(FileEvent{Path: report.Files[i].Path, Status: FileQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	warnings := make([]error, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i := range report.Files {
		if report.Files[i].Err != nil {
			continue
		}
		g.Go(func() error {
			// each goroutine owns report.Files[i] and warnings[i]
			warnings[i] = buildOne(gctx, report.FileSet, &report.Files[i], opts, report.Timer)
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return report, err
	}

	var combined error
	for i := range report.Files {
		if w := warnings[i]; w != nil {
			report.Warnings = append(report.Warnings, w)
		}
		if f := report.Files[i]; f.Err != nil {
			combined = multierr.Append(combined, &FileError{Path: f.Path, Err: f.Err})
		}
	}
	return report, combined
}

func (o BuildOptions) notify(ev FileEvent) {
	if o.Progress != nil {
		o.Progress(ev)
	}
}

// buildOne compiles a single file into fr. The returned error is a cache
// warning; compile failures are stored in fr.Err.
func buildOne(ctx context.Context, fset *source.FileSet, fr *FileResult, opts BuildOptions, total *observ.Timer) error {
	file := fset.Get(fr.FileID)
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, "file:"+fr.Path, trace.ParentSpan(ctx))
	defer span.End("")
	opts.notify(FileEvent{Path: fr.Path, Status: FileCompiling})

	var warning error
	key := CacheKey(file.Hash, opts.Emit)
	if cached, ok, err := opts.Cache.Get(key); err != nil {
		warning = err
	} else if ok {
		fr.Output, fr.Cached = cached.Output, true
	}

	if !fr.Cached {
		copts := Options{Emit: opts.Emit}
		if total != nil {
			copts.Timer = observ.NewTimer()
		}
		res, err := CompileFile(trace.WithParent(ctx, span.ID()), fset, fr.FileID, copts)
		if total != nil {
			total.Merge(copts.Timer)
		}
		if err != nil {
			fr.Err = err
			opts.notify(FileEvent{Path: fr.Path, Status: FileFailed, Err: err})
			return warning
		}
		fr.Output = res.Output
		if err := opts.Cache.Put(key, &CachedOutput{Path: fr.Path, Output: res.Output}); err != nil {
			warning = multierr.Append(warning, err)
		}
	}

	if opts.OutDir != "" {
		out := filepath.Join(opts.OutDir, filepath.FromSlash(strings.TrimSuffix(fr.Path, project.SourceExt)+".js"))
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			fr.Err = err
		} else if err := os.WriteFile(out, []byte(fr.Output), 0o644); err != nil {
			fr.Err = err
		} else {
			fr.OutPath = out
		}
		if fr.Err != nil {
			opts.notify(FileEvent{Path: fr.Path, Status: FileFailed, Err: fr.Err})
			return warning
		}
	}
	if fr.Cached {
		opts.notify(FileEvent{Path: fr.Path, Status: FileCached})
	} else {
		opts.notify(FileEvent{Path: fr.Path, Status: FileDone})
	}
	return warning
}
