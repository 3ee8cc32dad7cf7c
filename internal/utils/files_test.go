package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSafeWriteFileReplacesAndCleansUp(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	p := filepath.Join(dir, "report.md")
	require.NoError(os.WriteFile(p, []byte("old"), 0o644))

	require.NoError(SafeWriteFile(p, []byte("new")))
	b, err := os.ReadFile(p)
	require.NoError(err)
	require.Equal("new", string(b))

	entries, err := os.ReadDir(dir)
	require.NoError(err)
	require.Len(entries, 1, "temp file left behind")
}

func TestSafeWriteFileMissingDir(t *testing.T) {
	err := SafeWriteFile(filepath.Join(t.TempDir(), "nope", "out.csv"), []byte("x"))
	require.Error(t, err)
}
