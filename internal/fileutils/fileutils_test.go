package fileutils_test

import (
	"os"
	"path/filepath"
	"testing"

	"exmuzzy/pdf-spec/internal/fileutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()

	testFile := filepath.Join(tmpDir, "spec.pdf")
	require.NoError(t, os.WriteFile(testFile, []byte("%PDF-1.5"), 0600))

	assert.True(t, fileutils.FileExists(testFile))
	assert.False(t, fileutils.FileExists(filepath.Join(tmpDir, "nonexistent.pdf")))
	assert.False(t, fileutils.FileExists(tmpDir))
}

func TestDirectoryExists(t *testing.T) {
	tmpDir := t.TempDir()

	assert.True(t, fileutils.DirectoryExists(tmpDir))
	assert.False(t, fileutils.DirectoryExists(filepath.Join(tmpDir, "nonexistent")))

	testFile := filepath.Join(tmpDir, "test.txt")
	require.NoError(t, os.WriteFile(testFile, []byte("test"), 0600))
	assert.False(t, fileutils.DirectoryExists(testFile))
}

func TestEnsureDirectoryExists(t *testing.T) {
	tmpDir := t.TempDir()

	newDir := filepath.Join(tmpDir, "new", "nested", "dir")
	require.NoError(t, fileutils.EnsureDirectoryExists(newDir))
	assert.True(t, fileutils.DirectoryExists(newDir))

	assert.NoError(t, fileutils.EnsureDirectoryExists(tmpDir))
	assert.NoError(t, fileutils.EnsureDirectoryExists("."))
}

func TestCreateFile(t *testing.T) {
	tmpDir := t.TempDir()

	path := filepath.Join(tmpDir, "out", "report.csv")
	file, err := fileutils.CreateFile(path)
	require.NoError(t, err)
	require.NoError(t, file.Close())

	assert.True(t, fileutils.FileExists(path))
}

func TestListFilesWithExtension(t *testing.T) {
	tmpDir := t.TempDir()

	for _, name := range []string{"b.pdf", "a.PDF", "c.txt", "notes.pdf.bak"} {
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, name), []byte("x"), 0600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, "nested"), 0750))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "nested", "d.pdf"), []byte("x"), 0600))

	files, err := fileutils.ListFilesWithExtension(tmpDir, ".pdf")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(tmpDir, "a.PDF"),
		filepath.Join(tmpDir, "b.pdf"),
	}, files)

	_, err = fileutils.ListFilesWithExtension(filepath.Join(tmpDir, "missing"), ".pdf")
	assert.Error(t, err)
}

func TestBaseNameWithoutExt(t *testing.T) {
	assert.Equal(t, "Спецификация-01", fileutils.BaseNameWithoutExt("/in/Спецификация-01.pdf"))
	assert.Equal(t, "plan.v2", fileutils.BaseNameWithoutExt("plan.v2.PDF"))
	assert.Equal(t, "noext", fileutils.BaseNameWithoutExt("noext"))
}
