package backup

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Snapshot describes one dated backup directory.
type Snapshot struct {
	Name  string
	Date  time.Time
	Path  string
	Files int
	Size  int64
}

// ListSnapshots returns the snapshots under dir, newest first.
// Entries whose names are not dates are ignored. A missing dir yields no snapshots.
func ListSnapshots(dir string) ([]Snapshot, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read backups directory: %w", err)
	}

	var snapshots []Snapshot
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		date, err := time.ParseInLocation(DateLayout, entry.Name(), time.Local)
		if err != nil {
			continue
		}

		snap := Snapshot{Name: entry.Name(), Date: date, Path: filepath.Join(dir, entry.Name())}
		if err := snap.count(); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snap)
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Date.After(snapshots[j].Date)
	})

	return snapshots, nil
}

// FindSnapshot returns the snapshot called name (YYYYMMDD).
func FindSnapshot(dir, name string) (Snapshot, error) {
	if _, err := time.Parse(DateLayout, name); err != nil {
		return Snapshot{}, fmt.Errorf("invalid snapshot name %q: expected YYYYMMDD", name)
	}

	snapshots, err := ListSnapshots(dir)
	if err != nil {
		return Snapshot{}, err
	}
	for _, snap := range snapshots {
		if snap.Name == name {
			return snap, nil
		}
	}
	return Snapshot{}, fmt.Errorf("snapshot %q not found in %s", name, dir)
}

// RelativeFiles returns the slash-separated relative paths stored in the snapshot.
func (s Snapshot) RelativeFiles() ([]string, error) {
	var files []string
	err := filepath.WalkDir(s.Path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(s.Path, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", s.Name, err)
	}
	return files, nil
}

func (s *Snapshot) count() error {
	return filepath.WalkDir(s.Path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		s.Files++
		s.Size += info.Size()
		return nil
	})
}

// Restore copies every file of the snapshot back into projectRoot and returns
// the restored relative paths. With dryRun nothing is written.
func Restore(s Snapshot, projectRoot string, dryRun bool) ([]string, error) {
	files, err := s.RelativeFiles()
	if err != nil {
		return nil, err
	}
	if dryRun {
		return files, nil
	}

	var restored []string
	for _, rel := range files {
		src := filepath.Join(s.Path, filepath.FromSlash(rel))
		dst := filepath.Join(projectRoot, filepath.FromSlash(rel))

		info, err := os.Stat(src)
		if err != nil {
			return restored, fmt.Errorf("failed to stat %s: %w", rel, err)
		}
		if err := os.MkdirAll(filepath.Dir(dst), DirPerm); err != nil {
			return restored, fmt.Errorf("failed to create directory for %s: %w", rel, err)
		}
		if err := copyFile(src, dst, info.Mode().Perm()); err != nil {
			return restored, fmt.Errorf("failed to restore %s: %w", rel, err)
		}
		restored = append(restored, rel)
	}

	return restored, nil
}
