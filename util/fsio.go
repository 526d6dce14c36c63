// Package util - shared filesystem helpers for the engine and its front ends.
package util

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// ErrTooLarge reports a file rejected by a size cap before reading it.
var ErrTooLarge = errors.New("util: file exceeds size limit")

// ReadFileCapped reads the whole file, refusing files larger than maxBytes
// without reading them. A maxBytes of zero or less disables the cap.
//
// Arguments:
// - path: File to read.
// - maxBytes: Upper bound on the file size in bytes; <=0 means unlimited.
//
// Returns:
// - []byte: The file contents.
// - error: Error if the file is missing, unreadable, or over the cap.
func ReadFileCapped(path string, maxBytes int64) ([]byte, error) {
	if maxBytes > 0 {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if info.Size() > maxBytes {
			return nil, errors.Wrapf(ErrTooLarge, "%s is %d bytes, limit %d", path, info.Size(), maxBytes)
		}
	}
	return os.ReadFile(path)
}

// WriteFileAtomic writes data to path through a temporary file in the same
// directory plus a rename, so readers never observe a partial file.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Wrapf(err, "util: write %s", path)
	}
	tmpName := tmp.Name()

	_, err = tmp.Write(data)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Chmod(tmpName, perm)
	}
	if err == nil {
		err = os.Rename(tmpName, path)
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrapf(err, "util: write %s", path)
	}
	return nil
}
