package diagfmt

import (
	"path/filepath"
	"strings"
)

// PathMode chooses how file names appear in output.
type PathMode uint8

const (
	PathModeAuto     PathMode = iota // as given on the command line
	PathModeAbsolute                 // batch --fullpath
	PathModeBasename
)

// PrettyOpts tune Pretty.
type PrettyOpts struct {
	Color     bool
	PathMode  PathMode
	ShowNotes bool
	Max       int // 0 means all
}

// JSONOpts tune BuildReport and JSON. Max trims the report, not the Bag.
type JSONOpts struct {
	PathMode         PathMode
	IncludePositions bool // line/col and the expression text
	IncludeNotes     bool
	Max              int
}

func formatPath(path string, mode PathMode) string {
	if mode == PathModeBasename {
		return filepath.Base(path)
	}
	if mode == PathModeAbsolute && !strings.HasPrefix(path, "<") {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}
	return filepath.ToSlash(path)
}
