package sync

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/lwidev/lda/internal/logging"
)

const dirPerm = 0o750

// replaceFile copies src over dst. The content is written to a temporary file
// in dst's directory and renamed into place, so dst is either the old or the
// new content, never a partial write. Parent directories are created.
func replaceFile(src, dst string) (err error) {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat source %q: %w", src, err)
	}

	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("failed to create directory %q: %w", dir, err)
	}

	// #nosec G304 - src is from the template tree
	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source %q: %w", src, err)
	}
	defer func() {
		_ = srcFile.Close()
	}()

	tmp, err := os.CreateTemp(dir, ".lda-sync-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %q: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = io.Copy(tmp, srcFile); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to copy %q: %w", src, err)
	}
	if err = tmp.Chmod(srcInfo.Mode().Perm()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to set permissions on %q: %w", dst, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %q: %w", dst, err)
	}
	if err = os.Rename(tmpName, dst); err != nil {
		return fmt.Errorf("failed to replace %q: %w", dst, err)
	}

	logging.Debug("replaced file", logging.Path(dst))
	return nil
}
