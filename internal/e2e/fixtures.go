package e2e

import (
	"os"
	"path/filepath"
	"testing"
)

// Fixture provides helpers for creating test fixtures in E2E tests.
type Fixture struct {
	t       *testing.T
	baseDir string
}

// NewFixture creates a new fixture helper rooted at the given directory.
func NewFixture(t *testing.T, baseDir string) *Fixture {
	t.Helper()
	return &Fixture{
		t:       t,
		baseDir: baseDir,
	}
}

// WriteFile writes content to a file relative to the fixture base directory.
// It creates parent directories as needed.
func (f *Fixture) WriteFile(relPath, content string) string {
	f.t.Helper()
	fullPath := filepath.Join(f.baseDir, relPath)

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		f.t.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(fullPath, []byte(content), 0o600); err != nil {
		f.t.Fatalf("failed to write file %s: %v", fullPath, err)
	}

	return fullPath
}

// MkdirAll creates a directory and all parent directories relative to the base.
func (f *Fixture) MkdirAll(relPath string) string {
	f.t.Helper()
	fullPath := filepath.Join(f.baseDir, relPath)

	if err := os.MkdirAll(fullPath, 0o750); err != nil {
		f.t.Fatalf("failed to create directory %s: %v", fullPath, err)
	}

	return fullPath
}

// Path returns the full path for a relative path.
func (f *Fixture) Path(relPath string) string {
	return filepath.Join(f.baseDir, relPath)
}

// Exists returns true if the file or directory exists.
func (f *Fixture) Exists(relPath string) bool {
	f.t.Helper()
	fullPath := filepath.Join(f.baseDir, relPath)
	_, err := os.Stat(fullPath)
	return err == nil
}

// ReadFile reads and returns the content of a file.
func (f *Fixture) ReadFile(relPath string) string {
	f.t.Helper()
	fullPath := filepath.Join(f.baseDir, relPath)

	// #nosec G304 - fullPath is constructed from trusted test fixture base and test-provided path
	data, err := os.ReadFile(fullPath)
	if err != nil {
		f.t.Fatalf("failed to read file %s: %v", fullPath, err)
	}

	return string(data)
}

// TemplateFixture returns a fixture for the template checkout next to the project.
func (h *Harness) TemplateFixture() *Fixture {
	h.t.Helper()
	return h.dirFixture(h.TemplateDir())
}

// ProjectFixture returns a fixture for the project. The src directory is
// created so the project root is recognized.
func (h *Harness) ProjectFixture() *Fixture {
	h.t.Helper()
	f := h.dirFixture(h.ProjectDir())
	f.MkdirAll("src")
	return f
}

func (h *Harness) dirFixture(dir string) *Fixture {
	h.t.Helper()
	if err := os.MkdirAll(dir, 0o750); err != nil {
		h.t.Fatalf("failed to create directory %s: %v", dir, err)
	}
	return NewFixture(h.t, dir)
}

// SeedTemplate writes a small admin template: shared UI and utility code
// that projects receive, plus admin routes, models and server code that
// the default patterns exclude.
func SeedTemplate(f *Fixture) {
	f.t.Helper()
	f.WriteFile("src/lib/layouts/AdminLayout.svelte", "<slot />\n")
	f.WriteFile("src/lib/components/ui/Button.svelte", "<button><slot /></button>\n")
	f.WriteFile("src/lib/components/ui/Card.svelte", "<div class=\"card\"><slot /></div>\n")
	f.WriteFile("src/lib/stores/session.ts", "export const session = writable(null);\n")
	f.WriteFile("src/lib/utils/format.ts", "export const format = (v) => String(v);\n")
	f.WriteFile("src/lib/theme.css", ":root { --accent: #4f46e5; }\n")
	f.WriteFile("src/lib/models/User.ts", "export interface User { id: string }\n")
	f.WriteFile("src/lib/server/db.ts", "export const db = null;\n")
	f.WriteFile("src/routes/admin/+page.svelte", "<h1>Admin</h1>\n")
	f.WriteFile("README.md", "# AdminTemplate\n")
}

// TempFixture creates a fixture helper for a new temporary directory.
func (h *Harness) TempFixture() *Fixture {
	h.t.Helper()

	tempDir := h.t.TempDir()
	return NewFixture(h.t, tempDir)
}
