package outputpath

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mutaz-Awad/docusaurus/internal/fsutil"
)

func setupTestDir(t *testing.T) string {
	testDir, err := os.MkdirTemp("", "outputpath_test_*")
	if err != nil {
		t.Fatalf("Failed to create test directory: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(testDir) })
	return testDir
}

func writeOutput(t *testing.T, outDir, rel, content string) {
	t.Helper()
	require.NoError(t, fsutil.OutputFile(filepath.Join(outDir, rel), []byte(content)))
}

func TestReadOutputHTMLFile_TrailingSlashAlways(t *testing.T) {
	outDir := setupTestDir(t)
	writeOutput(t, outDir, "docs/intro/index.html", "dir layout")
	// a flat decoy must not be picked up
	writeOutput(t, outDir, "docs/intro.html", "flat decoy")

	got, err := ReadOutputHTMLFile("/docs/intro", outDir, TrailingSlashAlways)
	require.NoError(t, err)
	assert.Equal(t, "dir layout", string(got))
}

func TestReadOutputHTMLFile_TrailingSlashNever(t *testing.T) {
	outDir := setupTestDir(t)
	writeOutput(t, outDir, "docs/intro.html", "flat layout")
	writeOutput(t, outDir, "docs/intro/index.html", "dir decoy")

	got, err := ReadOutputHTMLFile("/docs/intro", outDir, TrailingSlashNever)
	require.NoError(t, err)
	assert.Equal(t, "flat layout", string(got))
}

func TestReadOutputHTMLFile_TrailingSlashStrippedForFlat(t *testing.T) {
	outDir := setupTestDir(t)
	writeOutput(t, outDir, "docs/intro.html", "flat layout")

	got, err := ReadOutputHTMLFile("/docs/intro/", outDir, TrailingSlashNever)
	require.NoError(t, err)
	assert.Equal(t, "flat layout", string(got))
}

func TestReadOutputHTMLFile_KnownModeDoesNotProbe(t *testing.T) {
	outDir := setupTestDir(t)
	// only the flat file exists; Always must still go for index.html and fail
	writeOutput(t, outDir, "docs/intro.html", "flat layout")

	_, err := ReadOutputHTMLFile("/docs/intro", outDir, TrailingSlashAlways)
	if err == nil {
		t.Fatal("Expected read failure for missing index.html")
	}
	if errors.Is(err, ErrOutputNotFound) {
		t.Error("Expected a raw read error, not ErrOutputNotFound, in known-mode reads")
	}
}

func TestReadOutputHTMLFile_UnknownPrefersDirLayout(t *testing.T) {
	outDir := setupTestDir(t)
	writeOutput(t, outDir, "docs/intro/index.html", "dir layout")
	writeOutput(t, outDir, "docs/intro.html", "flat layout")

	got, err := ReadOutputHTMLFile("/docs/intro", outDir, TrailingSlashUnknown)
	require.NoError(t, err)
	assert.Equal(t, "dir layout", string(got))
}

func TestReadOutputHTMLFile_UnknownFallsBackToFlat(t *testing.T) {
	outDir := setupTestDir(t)
	writeOutput(t, outDir, "docs/intro.html", "flat layout")

	got, err := ReadOutputHTMLFile("/docs/intro", outDir, TrailingSlashUnknown)
	require.NoError(t, err)
	assert.Equal(t, "flat layout", string(got))
}

func TestReadOutputHTMLFile_UnknownNeitherExists(t *testing.T) {
	outDir := setupTestDir(t)

	_, err := ReadOutputHTMLFile("/docs/missing", outDir, TrailingSlashUnknown)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOutputNotFound))
	// the error names the directory-layout candidate
	expected := filepath.Join(outDir, "docs/missing", "index.html")
	if !strings.Contains(err.Error(), expected) {
		t.Errorf("Expected error to name %s, got: %v", expected, err)
	}
}

func TestReadOutputHTMLFile_RootPermalink(t *testing.T) {
	outDir := setupTestDir(t)
	writeOutput(t, outDir, "index.html", "home")

	got, err := ReadOutputHTMLFile("/", outDir, TrailingSlashAlways)
	require.NoError(t, err)
	assert.Equal(t, "home", string(got))
}
