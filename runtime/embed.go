// Package runtimeembed provides the embedded JavaScript runtime library that
// compiled programs require.
package runtimeembed

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileName is the name of the runtime library inside the embedded tree.
const FileName = "stdlib.js"

//go:embed stdlib.js
var runtimeFS embed.FS

// FS exposes the embedded runtime sources.
func FS() fs.FS {
	return runtimeFS
}

// Stdlib returns the runtime library source.
func Stdlib() []byte {
	data, err := runtimeFS.ReadFile(FileName)
	if err != nil {
		panic(err)
	}
	return data
}

// Install writes the runtime library to dir/rel, creating parent directories.
// rel is the require path used by emitted code, e.g. "./runtime/stdlib.js".
// It returns the written path.
func Install(dir, rel string) (string, error) {
	if filepath.IsAbs(rel) {
		return "", fmt.Errorf("runtime path %q must be relative", rel)
	}
	dst := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("create runtime dir: %w", err)
	}
	if err := os.WriteFile(dst, Stdlib(), 0o644); err != nil {
		return "", fmt.Errorf("write runtime: %w", err)
	}
	return dst, nil
}
