package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lwidev/lda/internal/util"
	"github.com/lwidev/lda/internal/validation"
)

// PatternSet selects which template paths are synchronized.
// Patterns are slash-separated paths relative to the template and project roots.
type PatternSet struct {
	Include []string `json:"include"`
	Exclude []string `json:"exclude"`
}

// DefaultPatterns returns the built-in pattern set: shared UI, layout, store
// and util code plus the theme stylesheet, minus admin routes, models and
// server code.
func DefaultPatterns() PatternSet {
	return PatternSet{
		Include: []string{
			"src/lib/layouts",
			"src/lib/components/ui",
			"src/lib/stores",
			"src/lib/utils",
			"src/lib/theme.css",
		},
		Exclude: []string{
			"src/routes/admin",
			"src/lib/models",
			"src/lib/server",
		},
	}
}

// Excludes reports whether relPath is suppressed by any exclude pattern.
// Matching is plain substring containment on the slash-separated path, so a
// short token suppresses every path that contains it.
func (p PatternSet) Excludes(relPath string) bool {
	rel := filepath.ToSlash(relPath)
	for _, pattern := range p.Exclude {
		if pattern == "" {
			continue
		}
		if strings.Contains(rel, filepath.ToSlash(pattern)) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers cannot mutate a loaded set.
func (p PatternSet) Clone() PatternSet {
	return PatternSet{
		Include: append([]string(nil), p.Include...),
		Exclude: append([]string(nil), p.Exclude...),
	}
}

// Validate checks that every pattern is a relative path inside the root.
func (p PatternSet) Validate() *validation.Result {
	return validation.ValidatePatterns(p.Include, p.Exclude)
}

// projectFile is the on-disk shape of .ldarc.
type projectFile struct {
	Sync *PatternSet `json:"sync"`
}

// ErrMalformedProjectConfig is wrapped by LoadPatterns when .ldarc cannot be parsed.
var ErrMalformedProjectConfig = errors.New("malformed project configuration")

// LoadPatterns reads the sync patterns from <projectRoot>/.ldarc.
//
// The returned PatternSet is always usable. A missing file, or a file without
// a "sync" key, yields DefaultPatterns and a nil error. An unreadable or
// unparsable file, or one holding patterns that leave the root, also yields
// DefaultPatterns, together with an error the caller should surface as a
// warning.
func LoadPatterns(projectRoot string) (PatternSet, error) {
	path := util.ProjectConfigPath(projectRoot)

	// #nosec G304 - path is the project's own config file
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultPatterns(), nil
		}
		return DefaultPatterns(), fmt.Errorf("%w: %s: %w", ErrMalformedProjectConfig, path, err)
	}

	var file projectFile
	if err := json.Unmarshal(data, &file); err != nil {
		return DefaultPatterns(), fmt.Errorf("%w: %s: %w", ErrMalformedProjectConfig, path, err)
	}

	if file.Sync == nil {
		return DefaultPatterns(), nil
	}

	if err := file.Sync.Validate().Error(); err != nil {
		return DefaultPatterns(), fmt.Errorf("%w: %s: %w", ErrMalformedProjectConfig, path, err)
	}

	return file.Sync.Clone(), nil
}

// WriteDefaultPatterns creates <projectRoot>/.ldarc holding the default
// patterns. It refuses to overwrite an existing file.
func WriteDefaultPatterns(projectRoot string) (string, error) {
	path := util.ProjectConfigPath(projectRoot)
	if util.Exists(path) {
		return path, fmt.Errorf("%s already exists", path)
	}

	defaults := DefaultPatterns()
	data, err := json.MarshalIndent(projectFile{Sync: &defaults}, "", "  ")
	if err != nil {
		return path, err
	}

	// #nosec G306 - project config is meant to be committed and shared
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return path, err
	}
	return path, nil
}
