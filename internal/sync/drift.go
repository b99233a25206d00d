package sync

import (
	"bytes"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/lwidev/lda/internal/config"
	"github.com/lwidev/lda/internal/logging"
)

// DriftRecord is a template file whose project copy differs or is missing.
type DriftRecord struct {
	// SourcePath is the absolute path of the template file.
	SourcePath string

	// TargetPath is the absolute path of the project file.
	TargetPath string

	// RelativePath is the slash-separated path shared by both trees.
	RelativePath string

	// Missing is true when the project file did not exist at collection time.
	Missing bool
}

// Collect compares the template tree with the project tree for every include
// pattern and returns the records that need syncing.
//
// Records come out in include order, then in lexical walk order within a
// directory. Include paths absent from the template are skipped. A path is
// dropped when any exclude pattern is a substring of its relative path, even
// if an include names it directly. Unreadable files are reported as drift
// rather than aborting the scan.
func Collect(templateRoot, projectRoot string, patterns config.PatternSet) []DriftRecord {
	defer logging.Timer("collect")()

	var records []DriftRecord
	for _, include := range patterns.Include {
		if include == "" {
			continue
		}
		inc := path.Clean(filepath.ToSlash(include))
		src := filepath.Join(templateRoot, filepath.FromSlash(inc))

		info, err := os.Stat(src)
		if err != nil {
			logging.Debug("include path not in template", logging.RelPath(inc), logging.Err(err))
			continue
		}

		if !info.IsDir() {
			if rec, ok := compare(src, projectRoot, inc, patterns); ok {
				records = append(records, rec)
			}
			continue
		}

		records = append(records, collectDir(src, projectRoot, inc, patterns)...)
	}

	logging.Debug("collected drift", logging.Count(len(records)))
	return records
}

func collectDir(dir, projectRoot, include string, patterns config.PatternSet) []DriftRecord {
	var records []DriftRecord

	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		dir = resolved
	}

	_ = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			logging.Debug("walk error", logging.Path(p), logging.Err(err))
			if d == nil || d.IsDir() {
				// Unreadable directory: keep what was enumerated and move on.
				return nil
			}
		}
		if d.IsDir() {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			if info, statErr := os.Stat(p); statErr == nil && info.IsDir() {
				logging.Debug("skipping symlinked directory", logging.Path(p))
				return nil
			}
		}

		rel, relErr := filepath.Rel(dir, p)
		if relErr != nil {
			return nil
		}
		relPath := path.Join(include, filepath.ToSlash(rel))

		if rec, ok := compare(p, projectRoot, relPath, patterns); ok {
			records = append(records, rec)
		}
		return nil
	})

	return records
}

// compare returns the record for relPath when it is not excluded and the
// project copy differs from the template copy.
func compare(src, projectRoot, relPath string, patterns config.PatternSet) (DriftRecord, bool) {
	if patterns.Excludes(relPath) {
		logging.Debug("excluded", logging.RelPath(relPath))
		return DriftRecord{}, false
	}

	target := filepath.Join(projectRoot, filepath.FromSlash(relPath))
	rec := DriftRecord{SourcePath: src, TargetPath: target, RelativePath: relPath}

	targetInfo, err := os.Stat(target)
	if err != nil {
		rec.Missing = os.IsNotExist(err)
		return rec, true
	}
	if targetInfo.IsDir() {
		return rec, true
	}

	return rec, !sameContent(src, target)
}

// sameContent reports byte equality. Any read failure counts as different.
func sameContent(a, b string) bool {
	ia, err := os.Stat(a)
	if err != nil {
		return false
	}
	ib, err := os.Stat(b)
	if err != nil {
		return false
	}
	if ia.Size() != ib.Size() {
		return false
	}

	// #nosec G304 - paths come from the template and project trees
	da, err := os.ReadFile(a)
	if err != nil {
		return false
	}
	// #nosec G304 - paths come from the template and project trees
	db, err := os.ReadFile(b)
	if err != nil {
		return false
	}
	return bytes.Equal(da, db)
}
