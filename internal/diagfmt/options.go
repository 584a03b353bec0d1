package diagfmt

import (
	"path/filepath"
	"strings"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto prints relative paths under BaseDir and the path as recorded otherwise.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// ParsePathMode reads a --path-mode value.
func ParsePathMode(s string) (PathMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return PathModeAuto, true
	case "absolute":
		return PathModeAbsolute, true
	case "relative":
		return PathModeRelative, true
	case "basename":
		return PathModeBasename, true
	}
	return PathModeAuto, false
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	PathMode  PathMode
	BaseDir   string
	ShowNotes bool
	// Header is printed once before the first diagnostic, usually the unit path.
	Header string
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	PathMode     PathMode
	BaseDir      string
	Max          int // обрезка вывода, не Bag
	IncludeNotes bool
}

func formatPath(path string, mode PathMode, base string) string {
	if path == "" {
		return ""
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
	case PathModeBasename:
		return filepath.Base(path)
	case PathModeRelative, PathModeAuto:
		if base == "" {
			return path
		}
		rel, err := filepath.Rel(base, path)
		if err != nil || (mode == PathModeAuto && strings.HasPrefix(rel, "..")) {
			return path
		}
		return rel
	}
	return path
}
