package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"structura/internal/project"
	runtimeembed "structura/runtime"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [path|name]",
		Short: "Initialize a new structura project",
		Long: `Initialize a new structura project by creating a manifest (structura.toml),
a hello-world entry point (main.struct) and the runtime library. If [path|name]
is omitted, initializes the current directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	target := wd
	if len(args) > 0 && args[0] != "." {
		target = args[0]
		if !filepath.IsAbs(target) {
			target = filepath.Join(wd, target)
		}
	}

	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err = os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	manifestPath := filepath.Join(target, project.ManifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}

	cfg := project.Default()
	cfg.Package.Name = projectName(target)
	data, err := project.Encode(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(manifestPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	created := []string{project.ManifestName}
	mainPath := filepath.Join(target, "main"+project.SourceExt)
	if _, err := os.Stat(mainPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(mainPath, []byte(defaultMain), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", filepath.Base(mainPath), err)
		}
		created = append(created, filepath.Base(mainPath))
	}

	// the runtime sits next to the compiled output
	outDir := filepath.Join(target, cfg.Build.OutDir)
	if _, err := runtimeembed.Install(outDir, cfg.Build.RuntimePath); err != nil {
		return err
	}
	created = append(created, filepath.ToSlash(filepath.Join(cfg.Build.OutDir, cfg.Build.RuntimePath)))

	rel := target
	if r, err := filepath.Rel(wd, target); err == nil {
		rel = r
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initialized structura project in %s\n", rel)
	for _, name := range created {
		fmt.Fprintf(out, "  - %s\n", name)
	}
	return nil
}

func projectName(dir string) string {
	name := strings.TrimSpace(filepath.Base(dir))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "structura-project"
	}
	return name
}

const defaultMain = `Greeting = string;

greet(name: Greeting): string { return "Hello, " + capitalize(name) + "!"; }

print(greet("structura")): any;
`
