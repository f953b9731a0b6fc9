package main

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetWalkFlags pins the walk-related globals to their defaults for the
// duration of a test and restores the previous values afterwards.
func resetWalkFlags(t *testing.T) {
	t.Helper()
	oldRecursive, oldExclude := recursive, excludePatterns
	oldMaxSize, oldMaxDepth := maxSizeBytes, maxDepth
	oldHidden, oldNoIgnore := showHidden, noIgnore
	t.Cleanup(func() {
		recursive, excludePatterns = oldRecursive, oldExclude
		maxSizeBytes, maxDepth = oldMaxSize, oldMaxDepth
		showHidden, noIgnore = oldHidden, oldNoIgnore
	})
	recursive = false
	excludePatterns = ""
	maxSizeBytes = 0
	maxDepth = 0
	showHidden = false
	noIgnore = false
}

// buildTestTree lays out:
//
//	root/
//	  .gitignore    ("*.log")
//	  .hidden.txt
//	  top.txt
//	  ignored.log
//	  sub/nested.txt
//	  sub/deep/deeper.txt
func buildTestTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub", "deep"), 0755))
	for name, content := range map[string]string{
		".gitignore":                       "*.log\n",
		".hidden.txt":                      "hidden",
		"top.txt":                          "top level",
		"ignored.log":                      "ignored",
		filepath.Join("sub", "nested.txt"): "nested",
		filepath.Join("sub", "deep", "deeper.txt"): "deeper",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0644))
	}
	return root
}

func relPaths(t *testing.T, root string, reports []Report) []string {
	t.Helper()
	paths := make([]string, 0, len(reports))
	for _, report := range reports {
		rel, err := filepath.Rel(root, report.Path)
		require.NoError(t, err)
		paths = append(paths, filepath.ToSlash(rel))
	}
	sort.Strings(paths)
	return paths
}

func TestWalkDirectoryNonRecursive(t *testing.T) {
	resetWalkFlags(t)
	root := buildTestTree(t)

	reports, err := walkDirectory(root, DigestSet{}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"top.txt"}, relPaths(t, root, reports))
}

func TestWalkDirectoryRecursive(t *testing.T) {
	resetWalkFlags(t)
	recursive = true
	root := buildTestTree(t)

	reports, err := walkDirectory(root, DigestSet{}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"sub/deep/deeper.txt", "sub/nested.txt", "top.txt"}, relPaths(t, root, reports))
}

func TestWalkDirectoryMaxDepth(t *testing.T) {
	resetWalkFlags(t)
	recursive = true
	maxDepth = 2
	root := buildTestTree(t)

	reports, err := walkDirectory(root, DigestSet{}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"sub/nested.txt", "top.txt"}, relPaths(t, root, reports))
}

func TestWalkDirectoryHidden(t *testing.T) {
	resetWalkFlags(t)
	showHidden = true
	root := buildTestTree(t)

	reports, err := walkDirectory(root, DigestSet{}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{".gitignore", ".hidden.txt", "top.txt"}, relPaths(t, root, reports))
}

func TestWalkDirectoryNoIgnore(t *testing.T) {
	resetWalkFlags(t)
	noIgnore = true
	root := buildTestTree(t)

	reports, err := walkDirectory(root, DigestSet{}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"ignored.log", "top.txt"}, relPaths(t, root, reports))
}

func TestWalkDirectoryExcludeFile(t *testing.T) {
	resetWalkFlags(t)
	noIgnore = true
	excludePatterns = "*.txt"
	root := buildTestTree(t)

	reports, err := walkDirectory(root, DigestSet{}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"ignored.log"}, relPaths(t, root, reports))
}

func TestWalkDirectoryExcludePrunesDir(t *testing.T) {
	resetWalkFlags(t)
	recursive = true
	excludePatterns = "sub"
	root := buildTestTree(t)

	reports, err := walkDirectory(root, DigestSet{}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"top.txt"}, relPaths(t, root, reports))
}

func TestWalkDirectoryMaxSize(t *testing.T) {
	resetWalkFlags(t)
	maxSizeBytes = 10
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "small.txt"), []byte("tiny"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "big.txt"), make([]byte, 100), 0644))

	reports, err := walkDirectory(root, DigestSet{}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"small.txt"}, relPaths(t, root, reports))
}

func TestProcessPathSingleFile(t *testing.T) {
	resetWalkFlags(t)
	path := writeTempFile(t, "single.txt", []byte("just one file"))

	reports, err := processPath(path, DigestSet{SHA256: true}, nil)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, path, reports[0].Path)
	assert.NoError(t, reports[0].Err)
	assert.NotEmpty(t, reports[0].SHA256)
}

func TestProcessPathMissing(t *testing.T) {
	resetWalkFlags(t)
	_, err := processPath(filepath.Join(t.TempDir(), "gone"), DigestSet{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error accessing path")
}

func TestWalkDirectorySkipsSymlink(t *testing.T) {
	resetWalkFlags(t)
	root := t.TempDir()
	target := filepath.Join(root, "target.txt")
	require.NoError(t, os.WriteFile(target, []byte("target"), 0644))
	require.NoError(t, os.Symlink(target, filepath.Join(root, "link.txt")))

	reports, err := walkDirectory(root, DigestSet{}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"target.txt"}, relPaths(t, root, reports))
}

func TestInspectPathCarriesError(t *testing.T) {
	report := inspectPath(filepath.Join(t.TempDir(), "gone"), DigestSet{}, nil)
	assert.Error(t, report.Err)
}

func TestCountPathSeparators(t *testing.T) {
	assert.Equal(t, 0, countPathSeparators("."))
	assert.Equal(t, 0, countPathSeparators("file.txt"))
	assert.Equal(t, 1, countPathSeparators(filepath.Join("a", "b.txt")))
	assert.Equal(t, 2, countPathSeparators(filepath.Join("a", "b", "c.txt")))
}

func TestIsHidden(t *testing.T) {
	assert.True(t, isHidden(".git"))
	assert.True(t, isHidden(".hidden.txt"))
	assert.False(t, isHidden("visible.txt"))
	assert.False(t, isHidden("."))
	assert.False(t, isHidden(".."))
}
