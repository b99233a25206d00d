// Package template decides where the upstream template tree comes from.
//
// A sibling checkout on disk always wins. Without one, an access token makes
// the remote repository eligible for a shallow clone. Without either, the
// template is unavailable and Locator.Diagnostic explains how to fix it.
package template

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/lwidev/lda/internal/config"
	"github.com/lwidev/lda/internal/util"
)

// Kind identifies the template source.
type Kind int

const (
	// KindUnavailable means neither a local checkout nor credentials exist.
	KindUnavailable Kind = iota
	// KindLocal is an existing directory on disk.
	KindLocal
	// KindRemote is a repository that must be cloned before use.
	KindRemote
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindLocal:
		return "local"
	case KindRemote:
		return "remote"
	default:
		return "unavailable"
	}
}

// Source is the outcome of locating the template.
// Root is empty for KindRemote until the repository has been fetched.
type Source struct {
	Kind Kind
	Root string
	// Repository is the clone URL for KindRemote
	Repository string
	// Ref is the branch or tag for KindRemote (empty = default branch)
	Ref string
}

// Available reports whether the template can be used at all.
func (s Source) Available() bool {
	return s.Kind != KindUnavailable
}

// Environment holds every external input the locator consults.
// It is resolved once at startup and passed explicitly.
type Environment struct {
	// LocalPath is the absolute path of the local template checkout
	LocalPath string
	// Repository is the clone URL used when no local checkout exists
	Repository string
	// Ref is an optional branch or tag
	Ref string
	// TokenEnv is the name of the variable Token was read from
	TokenEnv string
	// Token is the access token; empty means absent
	Token string
}

// EnvDotFiles are loaded from the working directory before the token is read.
// Values already present in the process environment are never overridden.
var EnvDotFiles = []string{".env.local", ".env"}

// LoadDotEnv loads EnvDotFiles found in dir. Missing files are ignored.
func LoadDotEnv(dir string) error {
	for _, name := range EnvDotFiles {
		path := filepath.Join(dir, name)
		if !util.Exists(path) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// EnvironmentFromConfig resolves the template environment for a project.
// A relative local path is resolved against projectRoot.
func EnvironmentFromConfig(cfg config.TemplateConfig, projectRoot string) Environment {
	env := Environment{
		LocalPath:  util.ExpandPath(cfg.LocalPath, projectRoot),
		Repository: cfg.Repository,
		Ref:        cfg.Ref,
		TokenEnv:   cfg.TokenEnv,
	}
	if cfg.TokenEnv != "" {
		env.Token = os.Getenv(cfg.TokenEnv)
	}
	return env
}

// Locator picks the template source for an Environment.
type Locator struct {
	env Environment
}

// NewLocator creates a locator for env.
func NewLocator(env Environment) *Locator {
	return &Locator{env: env}
}

// Environment returns the environment the locator was built with.
func (l *Locator) Environment() Environment {
	return l.env
}

// Locate returns the template source. It only stats the local path and never
// touches the network.
func (l *Locator) Locate() Source {
	if l.env.LocalPath != "" {
		if info, err := os.Stat(l.env.LocalPath); err == nil && info.IsDir() {
			return Source{Kind: KindLocal, Root: l.env.LocalPath}
		}
	}

	if l.env.Token != "" && l.env.Repository != "" {
		return Source{Kind: KindRemote, Repository: l.env.Repository, Ref: l.env.Ref}
	}

	return Source{Kind: KindUnavailable}
}

// Diagnostic returns remediation hints for an unavailable template.
func (l *Locator) Diagnostic() []string {
	tokenEnv := l.env.TokenEnv
	if tokenEnv == "" {
		tokenEnv = "GITHUB_TOKEN"
	}

	hints := []string{
		fmt.Sprintf("Place the template next to your project: %s", l.env.LocalPath),
		fmt.Sprintf("Or set %s to a token with read access to %s", tokenEnv, l.env.Repository),
		"Tokens may also be stored in .env or .env.local in the project directory",
	}
	if l.env.Repository == "" {
		hints[1] = "Or configure template.repository and set " + tokenEnv
	}
	return hints
}
