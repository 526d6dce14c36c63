package util

import (
	"os"
	"path/filepath"
	"sort"
)

// ScanImageFiles returns the paths of the regular files in dir whose names
// the recognize predicate claims, sorted lexically so batch output is
// deterministic. Subdirectories are not descended.
//
// Arguments:
// - dir: Directory to scan.
// - recognize: Reports whether a file name looks like a supported image;
//   typically backed by the codec extension table.
//
// Returns:
// - []string: Matching paths, joined with dir.
// - error: Error if the directory cannot be read.
func ScanImageFiles(dir string, recognize func(name string) bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !recognize(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}

	sort.Strings(paths)
	return paths, nil
}
