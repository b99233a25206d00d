// Package backup keeps dated copies of project files before sync overwrites them.
//
// Snapshots live under <project>/<dir>/lda-sync/<YYYYMMDD>/ and mirror the
// project layout, so a file at src/lib/utils/a.ts is saved as
// <snapshot>/src/lib/utils/a.ts. Runs on the same day share one snapshot and
// later copies replace earlier ones.
package backup

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// DirPerm is the permission for backup directories (rwxr-x---)
	DirPerm = 0o750

	// Namespace is the directory under the backup dir that holds lda snapshots
	Namespace = "lda-sync"

	// DateLayout names snapshot directories
	DateLayout = "20060102"
)

// ErrOutsideBase is returned when a target does not live under the manager's base directory.
var ErrOutsideBase = errors.New("path is outside the project directory")

// SnapshotsDir returns <projectRoot>/<backupDir>/lda-sync.
func SnapshotsDir(projectRoot, backupDir string) string {
	return filepath.Join(projectRoot, backupDir, Namespace)
}

// RootFor returns the snapshot directory for the day of now.
func RootFor(projectRoot, backupDir string, now time.Time) string {
	return filepath.Join(SnapshotsDir(projectRoot, backupDir), now.Format(DateLayout))
}

// Manager copies files into a single snapshot directory.
type Manager struct {
	base string
	root string
}

// NewManager creates a manager that mirrors files under base into root.
func NewManager(base, root string) *Manager {
	return &Manager{base: base, root: root}
}

// Root returns the snapshot directory.
func (m *Manager) Root() string {
	return m.root
}

// Backup copies targetPath into the snapshot and returns the copy's path.
// A missing target is not an error: nothing is copied and "" is returned.
func (m *Manager) Backup(targetPath string) (string, error) {
	info, err := os.Stat(targetPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to stat %q: %w", targetPath, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("cannot back up directory %q", targetPath)
	}

	rel, err := m.relative(targetPath)
	if err != nil {
		return "", err
	}

	dest := filepath.Join(m.root, rel)
	if err := os.MkdirAll(filepath.Dir(dest), DirPerm); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	if err := copyFile(targetPath, dest, info.Mode().Perm()); err != nil {
		return "", fmt.Errorf("failed to back up %q: %w", rel, err)
	}

	return dest, nil
}

func (m *Manager) relative(targetPath string) (string, error) {
	base, err := filepath.Abs(m.base)
	if err != nil {
		return "", err
	}
	target, err := filepath.Abs(targetPath)
	if err != nil {
		return "", err
	}

	rel, err := filepath.Rel(base, target)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrOutsideBase, targetPath)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideBase, targetPath)
	}
	return rel, nil
}

// copyFile copies src to dst, truncating dst if it exists.
func copyFile(src, dst string, perm os.FileMode) (err error) {
	// #nosec G304 - src is a project file selected by the caller
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = in.Close()
	}()

	// #nosec G304 - dst is derived from the snapshot root
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	_, err = io.Copy(out, in)
	return err
}
