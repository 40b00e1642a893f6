// Package diagfmt renders diagnostics and token streams for humans and tools.
package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	PathModeAuto     PathMode = iota // relative to the FileSet base when possible
	PathModeAbsolute                 // path as loaded
	PathModeBasename                 // file name only
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	PathMode  PathMode
	ShowNotes bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	PathMode         PathMode
	Max              int // 0 = all
	IncludeNotes     bool
}
