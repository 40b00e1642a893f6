package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"structura/internal/diag"
	"structura/internal/diagfmt"
	"structura/internal/driver"
	"structura/internal/emit"
	"structura/internal/observ"
	"structura/internal/project"
	"structura/internal/source"
)

// settings are the resolved global flags plus the project configuration.
type settings struct {
	manifest *project.Manifest
	found    bool
	color    bool
	quiet    bool
	timings  bool
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	flags := cmd.Root().PersistentFlags()
	colorFlag, err := flags.GetString("color")
	if err != nil {
		return nil, fmt.Errorf("failed to get color flag: %w", err)
	}
	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}

	s := &settings{quiet: quiet, timings: timings}
	switch strings.ToLower(colorFlag) {
	case "on":
		s.color = true
	case "off":
	case "auto":
		s.color = isTerminal(os.Stderr)
	default:
		return nil, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}

	if configPath != "" {
		s.manifest, err = project.Load(configPath)
		s.found = err == nil
	} else {
		s.manifest, s.found, err = project.Discover(".")
	}
	if err != nil {
		return nil, err
	}
	if !s.found {
		s.manifest = &project.Manifest{Config: project.Default()}
	}
	return s, nil
}

func (s *settings) emitOptions() emit.Options {
	return emit.Options{
		RuntimePath: s.manifest.Config.Build.RuntimePath,
		Wrap:        s.manifest.Config.Build.Wrap,
	}
}

// compileOptions configures a single-file compilation stopping after stop.
func (s *settings) compileOptions(stop driver.Stage) (driver.Options, *observ.Timer) {
	opts := driver.Options{Emit: s.emitOptions(), StopAfter: stop}
	var timer *observ.Timer
	if s.timings {
		timer = observ.NewTimer()
		opts.Timer = timer
	}
	return opts, timer
}

func (s *settings) prettyOpts() diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{Color: s.color, PathMode: diagfmt.PathModeAuto, ShowNotes: true}
}

// report prints err as a diagnostic when it carries one and returns
// errReported; other errors are returned unchanged.
func (s *settings) report(w io.Writer, err error, fs *source.FileSet) error {
	var d diag.Diagnoser
	if !errors.As(err, &d) {
		return err
	}
	diagfmt.PrettyOne(w, d.Diagnostic(), fs, s.prettyOpts())
	return errReported
}

func (s *settings) printTimings(w io.Writer, timer *observ.Timer) {
	if timer == nil {
		return
	}
	fmt.Fprint(w, timer.Summary())
}

// compileFile runs the pipeline over path up to stop. Failures are printed
// to stderr.
func compileFile(cmd *cobra.Command, path string, stop driver.Stage) (*settings, *driver.Result, error) {
	s, err := loadSettings(cmd)
	if err != nil {
		return nil, nil, err
	}
	opts, timer := s.compileOptions(stop)
	res, err := driver.CompilePath(cmd.Context(), path, opts)
	s.printTimings(cmd.ErrOrStderr(), timer)
	if err != nil {
		var fs *source.FileSet
		if res != nil {
			fs = res.FileSet
		}
		return s, res, s.report(cmd.ErrOrStderr(), err, fs)
	}
	return s, res, nil
}
