package driver

import (
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
)

const SourceExt = ".decay"

// ListSourceFiles walks dir and returns every *.decay file, sorted.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string
	walk := func(path string, d fs.DirEntry, err error) error {
		switch {
		case err != nil:
			return err
		case d.Type().IsRegular() && filepath.Ext(path) == SourceExt:
			files = append(files, path)
		}
		return nil
	}
	if err := filepath.WalkDir(dir, walk); err != nil {
		return nil, wrapErr(dir, err)
	}
	slices.Sort(files)
	return files, nil
}

// DisplayPath is path relative to baseDir with forward slashes. Paths
// outside baseDir are shown as given.
func DisplayPath(path, baseDir string) string {
	if baseDir != "" {
		rel, err := filepath.Rel(baseDir, path)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			path = rel
		}
	}
	return filepath.ToSlash(path)
}
