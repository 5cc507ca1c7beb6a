package reader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MaxFiles caps how many files a single glob pattern may expand to.
const MaxFiles = 1000

// File is one input file loaded into memory.
type File struct {
	Path    string
	Content []byte
}

// Expand resolves pattern to file paths.
//
// The pattern can include wildcards:
//   - * matches any sequence of non-separator characters
//   - ? matches any single non-separator character
//   - [range] matches any character in range
//
// A pattern without wildcards is returned as is, whether or not the file
// exists. A wildcard pattern that matches nothing is an error.
func Expand(pattern string) ([]string, error) {
	if !strings.ContainsAny(pattern, "*?[") {
		return []string{pattern}, nil
	}

	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no files match pattern: %s", pattern)
	}
	if len(matches) > MaxFiles {
		return nil, fmt.Errorf("glob pattern matched too many files (%d), maximum is %d", len(matches), MaxFiles)
	}
	return matches, nil
}

// ReadMultipleFiles loads every file matching pattern, in glob order.
func ReadMultipleFiles(pattern string) ([]File, error) {
	paths, err := Expand(pattern)
	if err != nil {
		return nil, err
	}

	files := make([]File, 0, len(paths))
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		files = append(files, File{Path: path, Content: content})
	}
	return files, nil
}
