// Package config provides configuration management for lda.
// The tool configuration is a YAML file merged over built-in defaults and
// overridden by LDA_* environment variables. Project-level sync patterns
// live in a separate JSON file (see project.go).
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lwidev/lda/internal/util"
)

// Config represents the complete lda tool configuration.
type Config struct {
	// Template configures where the upstream template comes from
	Template TemplateConfig `yaml:"template"`

	// Sync configures default synchronization behavior
	Sync SyncConfig `yaml:"sync"`

	// Backup configures the dated backup snapshots
	Backup BackupConfig `yaml:"backup"`

	// Output configures display preferences
	Output OutputConfig `yaml:"output"`
}

// TemplateConfig holds the template source settings.
type TemplateConfig struct {
	// LocalPath is a directory checked before any remote access.
	// Relative paths are resolved against the project root.
	LocalPath string `yaml:"local_path"`
	// Repository is the git URL cloned when no local template exists
	Repository string `yaml:"repository"`
	// Ref is an optional branch or tag to clone (empty = remote default branch)
	Ref string `yaml:"ref,omitempty"`
	// TokenEnv names the environment variable holding the access token
	TokenEnv string `yaml:"token_env"`
}

// SyncConfig holds synchronization settings.
type SyncConfig struct {
	// DefaultPolicy is used when neither --force nor --silent is given
	DefaultPolicy string `yaml:"default_policy"`
	// TUI enables the full-screen confirmation prompt on terminals
	TUI bool `yaml:"tui"`
}

// BackupConfig holds backup settings.
type BackupConfig struct {
	// Directory is the backup directory relative to the project root
	Directory string `yaml:"directory"`
	// RetentionDays is how long dated snapshots are kept by `backup clean`
	RetentionDays int `yaml:"retention_days"`
	// MaxSnapshots is the maximum number of dated snapshots to keep
	MaxSnapshots int `yaml:"max_snapshots"`
}

// OutputConfig holds display preferences.
type OutputConfig struct {
	// Color controls color output (auto, always, never)
	Color string `yaml:"color"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Template: TemplateConfig{
			LocalPath:  "../AdminTemplate",
			Repository: "https://github.com/LwiDev/AdminTemplate",
			TokenEnv:   "GITHUB_TOKEN",
		},
		Sync: SyncConfig{
			DefaultPolicy: "interactive",
			TUI:           true,
		},
		Backup: BackupConfig{
			Directory:     ".backup",
			RetentionDays: 30,
			MaxSnapshots:  10,
		},
		Output: OutputConfig{
			Color: "auto",
		},
	}
}

// configFileName is the name of the config file.
const configFileName = "config.yaml"

// FilePath returns the path to the config file.
func FilePath() string {
	return filepath.Join(util.LdaHome(), configFileName)
}

// Load loads the configuration from file, merging with defaults.
// If the config file doesn't exist, returns default configuration.
func Load() (*Config, error) {
	cfg, err := LoadFromPath(FilePath())
	if err != nil {
		if os.IsNotExist(err) {
			cfg = Default()
			cfg.applyEnvironment()
			return cfg, nil
		}
		return nil, err
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific path.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	// #nosec G304 - path is provided by caller
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.applyEnvironment()
	return cfg, nil
}

// Save writes the configuration to the config file.
func (c *Config) Save() error {
	return c.SaveToPath(FilePath())
}

// SaveToPath writes the configuration to a specific path.
func (c *Config) SaveToPath(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	// #nosec G306 - config file should be readable by user
	return os.WriteFile(path, data, 0o644)
}

// YAML returns the configuration rendered as YAML.
func (c *Config) YAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// applyEnvironment applies environment variable overrides.
// Environment variables follow the pattern LDA_<SECTION>_<KEY>.
func (c *Config) applyEnvironment() {
	if v := os.Getenv("LDA_TEMPLATE_PATH"); v != "" {
		c.Template.LocalPath = v
	}
	if v := os.Getenv("LDA_TEMPLATE_REPO"); v != "" {
		c.Template.Repository = v
	}
	if v := os.Getenv("LDA_TEMPLATE_REF"); v != "" {
		c.Template.Ref = v
	}
	if v := os.Getenv("LDA_TOKEN_ENV"); v != "" {
		c.Template.TokenEnv = v
	}

	if v := os.Getenv("LDA_SYNC_POLICY"); v != "" {
		c.Sync.DefaultPolicy = v
	}
	if v := os.Getenv("LDA_SYNC_TUI"); v != "" {
		c.Sync.TUI = parseBool(v)
	}

	if v := os.Getenv("LDA_BACKUP_DIR"); v != "" {
		c.Backup.Directory = v
	}
	if v := os.Getenv("LDA_BACKUP_RETENTION_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.Backup.RetentionDays = n
		}
	}
	if v := os.Getenv("LDA_BACKUP_MAX_SNAPSHOTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.Backup.MaxSnapshots = n
		}
	}

	if v := os.Getenv("LDA_OUTPUT_COLOR"); v != "" {
		c.Output.Color = v
	}
}

// parseBool parses a boolean from common string representations.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}

// Exists returns true if a config file exists.
func Exists() bool {
	_, err := os.Stat(FilePath())
	return err == nil
}
