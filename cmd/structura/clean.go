package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"structura/internal/driver"
)

func newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the build output directory",
		Long:  "Remove [build].out_dir of the current project. With --cache the build cache is dropped too.",
		Args:  cobra.NoArgs,
		RunE:  runClean,
	}
	cmd.Flags().Bool("cache", false, "also drop the build cache")
	return cmd
}

func runClean(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	target := s.manifest.OutDir()
	info, err := os.Stat(target)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if !s.quiet {
			fmt.Fprintf(out, "%s not found\n", target)
		}
	case err != nil:
		return fmt.Errorf("failed to stat %q: %w", target, err)
	case !info.IsDir():
		return fmt.Errorf("%q is not a directory", target)
	default:
		if err := os.RemoveAll(target); err != nil {
			return fmt.Errorf("failed to remove %q: %w", target, err)
		}
		if !s.quiet {
			fmt.Fprintf(out, "removed %s\n", target)
		}
	}

	dropCache, err := cmd.Flags().GetBool("cache")
	if err != nil || !dropCache {
		return err
	}
	cache, err := driver.OpenDiskCache("structura")
	if err != nil {
		return err
	}
	if err := cache.DropAll(); err != nil {
		return err
	}
	if !s.quiet {
		fmt.Fprintf(out, "dropped cache %s\n", cache.Dir())
	}
	return nil
}
