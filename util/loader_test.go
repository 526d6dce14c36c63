package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanImageFiles(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"b.png", "a.jpg", "c.txt", "z.PNG"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.png"), 0o755))

	isImage := func(name string) bool {
		switch strings.ToLower(filepath.Ext(name)) {
		case ".png", ".jpg":
			return true
		}
		return false
	}

	paths, err := ScanImageFiles(dir, isImage)
	require.NoError(t, err)

	want := []string{
		filepath.Join(dir, "a.jpg"),
		filepath.Join(dir, "b.png"),
		filepath.Join(dir, "z.PNG"),
	}
	assert.Equal(t, want, paths, "matches should be sorted and directories skipped")

	_, err = ScanImageFiles(filepath.Join(dir, "missing"), isImage)
	assert.Error(t, err)
}
