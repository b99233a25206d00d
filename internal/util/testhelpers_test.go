//nolint:revive // var-naming - package name is meaningful
package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCreateTempDir(t *testing.T) {
	dir := CreateTempDir(t)

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Errorf("CreateTempDir() did not create directory: %s", dir)
	}
}

func TestWriteFile(t *testing.T) {
	dir := CreateTempDir(t)
	path := filepath.Join(dir, "subdir", "test.txt")
	content := "test content"

	WriteFile(t, path, content)

	AssertFileContent(t, path, content)
}

func TestAssertNotExists(t *testing.T) {
	dir := CreateTempDir(t)
	AssertNotExists(t, filepath.Join(dir, "missing.txt"))
}

func TestSnapshotTree(t *testing.T) {
	dir := CreateTempDir(t)
	WriteFile(t, filepath.Join(dir, "a.txt"), "A")
	WriteFile(t, filepath.Join(dir, "nested", "deep", "b.txt"), "B")
	if err := os.MkdirAll(filepath.Join(dir, "empty"), 0o750); err != nil {
		t.Fatal(err)
	}

	snap := SnapshotTree(t, dir)

	AssertEqual(t, len(snap), 2)
	AssertEqual(t, snap["a.txt"], "A")
	AssertEqual(t, snap["nested/deep/b.txt"], "B")
}

func TestAssertEqual(t *testing.T) {
	t.Run("passes with equal strings", func(t *testing.T) {
		AssertEqual(t, "hello", "hello")
	})

	t.Run("passes with equal integers", func(t *testing.T) {
		AssertEqual(t, 42, 42)
	})

	t.Run("passes with equal booleans", func(t *testing.T) {
		AssertEqual(t, true, true)
	})
}
