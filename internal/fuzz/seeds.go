package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 64 << 10 // ограничение для тестового корпуса

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	addLanguageSeeds(f)
}

// addTestdataSeeds adds every .struct file under the repository testdata.
func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".struct" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func addLanguageSeeds(f *testing.F) {
	for _, s := range []string{
		"",
		"abs(a: number): number;\nprint(abs(-5)): number;\n",
		"MixedArr = string|number[];\nshow(v: MixedArr): string { return \"ok\"; }\nshow(\"hello\"): string;\n",
		"isURL(\"not a url\"): boolean;\n",
		"f(a: number): string { return a; return \"x\"; }\n",
		"f(): number { return 2 + 3 * (4 - 1); }\n",
		"g(x: any): any { return x.a.b(1, 'two'); }\n",
		"A = B;\nB = A;\n",
		"f(a: number): number {",
		"print(1",
		";;;",
		"#",
	} {
		f.Add([]byte(s))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) > maxSeedBytes {
		src = src[:maxSeedBytes]
	}
	return append([]byte(nil), src...)
}
