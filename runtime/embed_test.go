package runtimeembed

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"structura/internal/builtins"
)

func TestStdlibExportsEveryBuiltin(t *testing.T) {
	src := string(Stdlib())
	exports := src[strings.Index(src, "module.exports"):]
	for _, name := range builtins.Names() {
		if !strings.Contains(src, "function "+name+"(") {
			t.Errorf("runtime does not define %s", name)
		}
		if !strings.Contains(exports, "  "+name+",\n") {
			t.Errorf("runtime does not export %s", name)
		}
	}
}

func TestInstall(t *testing.T) {
	dir := t.TempDir()
	dst, err := Install(dir, "./runtime/stdlib.js")
	if err != nil {
		t.Fatal(err)
	}
	if dst != filepath.Join(dir, "runtime", "stdlib.js") {
		t.Errorf("dst = %s", dst)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, Stdlib()) {
		t.Error("installed runtime differs from embedded one")
	}
	if _, err := Install(dir, "/abs/stdlib.js"); err == nil {
		t.Error("absolute runtime path must be rejected")
	}
}
