package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFileCapped(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blob.bin")
	payload := []byte("0123456789")
	require.NoError(t, os.WriteFile(path, payload, 0o644))

	data, err := ReadFileCapped(path, 100)
	require.NoError(t, err)
	assert.Equal(t, payload, data)

	// A cap of zero disables the check.
	data, err = ReadFileCapped(path, 0)
	require.NoError(t, err)
	assert.Equal(t, payload, data)

	// Exactly at the cap is allowed; one byte under is not.
	_, err = ReadFileCapped(path, int64(len(payload)))
	assert.NoError(t, err)
	_, err = ReadFileCapped(path, int64(len(payload))-1)
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = ReadFileCapped(filepath.Join(dir, "missing.bin"), 100)
	assert.Error(t, err)
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.dat")

	require.NoError(t, WriteFileAtomic(path, []byte("first"), 0o644))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), data)

	// Overwrites replace the previous contents wholesale.
	require.NoError(t, WriteFileAtomic(path, []byte("second version"), 0o644))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("second version"), data)

	// No temporary files are left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	err = WriteFileAtomic(filepath.Join(dir, "no", "such", "dir", "x"), []byte("y"), 0o644)
	assert.Error(t, err)
}
