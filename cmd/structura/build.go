package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"structura/internal/diag"
	"structura/internal/diagfmt"
	"structura/internal/driver"
	"structura/internal/project"
	"structura/internal/source"
	"structura/internal/ui"
	runtimeembed "structura/runtime"
)

const noInputMessage = "no input: pass a .struct file or a directory, or run inside a project with " + project.ManifestName

type buildFlags struct {
	out         string
	jobs        int
	noCache     bool
	ui          string
	withRuntime bool
}

func newBuildCmd() *cobra.Command {
	var f buildFlags
	cmd := &cobra.Command{
		Use:   "build [flags] [file.struct|dir]",
		Short: "Compile a file or every .struct file of a directory",
		Long: `Build compiles one file, or every .struct file under a directory in parallel.
Without an argument the project root containing structura.toml is built.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, args, f)
		},
	}
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "output file (single file) or directory (default: [build].out_dir)")
	cmd.Flags().IntVar(&f.jobs, "jobs", 0, "parallel compilations (default: [build].jobs, 0 = all CPUs)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "do not read or write the build cache")
	cmd.Flags().StringVar(&f.ui, "ui", "auto", "progress display (auto|on|off)")
	cmd.Flags().BoolVar(&f.withRuntime, "with-runtime", false, "write the runtime library next to the output")
	return cmd
}

func runBuild(cmd *cobra.Command, args []string, f buildFlags) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	target := ""
	switch {
	case len(args) > 0:
		target = args[0]
	case s.found:
		target = s.manifest.Root
	default:
		return errors.New(noInputMessage)
	}
	info, err := os.Stat(target)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return buildDirectory(cmd, s, target, f)
	}
	return buildSingle(cmd, s, target, f)
}

func buildSingle(cmd *cobra.Command, s *settings, path string, f buildFlags) error {
	opts, timer := s.compileOptions(driver.StageNone)
	res, err := driver.CompilePath(cmd.Context(), path, opts)
	s.printTimings(cmd.ErrOrStderr(), timer)
	if err != nil {
		var fs *source.FileSet
		if res != nil {
			fs = res.FileSet
		}
		return s.report(cmd.ErrOrStderr(), err, fs)
	}

	out := f.out
	if out == "" {
		base := strings.TrimSuffix(filepath.Base(path), project.SourceExt) + ".js"
		out = filepath.Join(s.manifest.OutDir(), base)
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	if err := os.WriteFile(out, []byte(res.Output), 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := installRuntime(cmd, s, filepath.Dir(out), f.withRuntime); err != nil {
		return err
	}
	if !s.quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "built %s\n", out)
	}
	return nil
}

func buildDirectory(cmd *cobra.Command, s *settings, dir string, f buildFlags) error {
	mode, err := readUIMode(f.ui)
	if err != nil {
		return err
	}
	jobs := s.manifest.Config.Build.Jobs
	if cmd.Flags().Changed("jobs") {
		jobs = f.jobs
	}
	outDir := f.out
	if outDir == "" {
		outDir = s.manifest.OutDir()
	}

	opts := driver.BuildOptions{
		Emit:    s.emitOptions(),
		OutDir:  outDir,
		Jobs:    jobs,
		Timings: s.timings,
	}
	if s.manifest.Config.Build.Cache && !f.noCache {
		cache, cacheErr := driver.OpenDiskCache("structura")
		if cacheErr != nil {
			s.warn(cmd.ErrOrStderr(), cacheErr)
		}
		opts.Cache = cache
	}

	var report *driver.BuildReport
	var buildErr error
	if mode.enabled(os.Stdout) && !s.quiet {
		files, listErr := displaySources(dir)
		if listErr != nil {
			return listErr
		}
		report, buildErr = ui.RunBuild(cmd.Context(), cmd.OutOrStdout(), "structura build", files,
			func(progress func(driver.FileEvent)) (*driver.BuildReport, error) {
				opts.Progress = progress
				return driver.BuildDir(cmd.Context(), dir, opts)
			})
	} else {
		report, buildErr = driver.BuildDir(cmd.Context(), dir, opts)
	}
	if report == nil {
		return buildErr
	}
	if cmd.Context().Err() != nil {
		return cmd.Context().Err()
	}

	for _, w := range report.Warnings {
		s.warn(cmd.ErrOrStderr(), w)
	}
	if report.Timer != nil {
		s.printTimings(cmd.ErrOrStderr(), report.Timer)
	}
	if failed := report.Failed(); failed > 0 {
		printFileErrors(cmd.ErrOrStderr(), s, report)
		fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d files failed\n", failed, len(report.Files))
		return errReported
	}
	if len(report.Files) == 0 {
		if !s.quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "no %s files in %s\n", project.SourceExt, dir)
		}
		return nil
	}
	if err := installRuntime(cmd, s, outDir, f.withRuntime); err != nil {
		return err
	}
	if !s.quiet {
		cached := 0
		for _, fr := range report.Files {
			if fr.Cached {
				cached++
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "built %d files into %s (%d cached)\n", len(report.Files), outDir, cached)
	}
	return nil
}

func printFileErrors(w io.Writer, s *settings, report *driver.BuildReport) {
	for _, fr := range report.Files {
		if fr.Err == nil {
			continue
		}
		if err := s.report(w, fr.Err, report.FileSet); !errors.Is(err, errReported) {
			fmt.Fprintf(w, "%s: %v\n", fr.Path, err)
		}
	}
}

// warn prints a non-fatal problem.
func (s *settings) warn(w io.Writer, err error) {
	var d diag.Diagnoser
	if errors.As(err, &d) {
		diagfmt.PrettyOne(w, d.Diagnostic(), nil, s.prettyOpts())
		return
	}
	fmt.Fprintf(w, "warning: %v\n", err)
}

func displaySources(dir string) ([]string, error) {
	files, err := driver.ListSources(dir)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(files))
	for i, path := range files {
		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			rel = path
		}
		out[i] = filepath.ToSlash(rel)
	}
	return out, nil
}

func installRuntime(cmd *cobra.Command, s *settings, outDir string, enabled bool) error {
	if !enabled {
		return nil
	}
	dst, err := runtimeembed.Install(outDir, s.manifest.Config.Build.RuntimePath)
	if err != nil {
		return err
	}
	if !s.quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "runtime %s\n", dst)
	}
	return nil
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run file.struct",
		Short: "Compile a file and print the JavaScript to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, res, err := compileFile(cmd, args[0], driver.StageNone)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), res.Output)
			return err
		},
	}
}
