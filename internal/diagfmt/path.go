package diagfmt

import (
	"os"
	"path/filepath"
)

func formatPath(origin string, mode PathMode, base string) string {
	if origin == "" {
		return ""
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(origin); err == nil {
			return filepath.ToSlash(abs)
		}
	case PathModeRelative:
		if base == "" {
			base, _ = os.Getwd()
		}
		abs, err := filepath.Abs(origin)
		if err != nil {
			break
		}
		if rel, err := filepath.Rel(base, abs); err == nil {
			return filepath.ToSlash(rel)
		}
	case PathModeBasename:
		return filepath.Base(origin)
	}
	return filepath.ToSlash(origin)
}
