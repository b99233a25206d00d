package util

import (
	"os"
	"path/filepath"
)

// ToolName is the command name used for config, backup and temp directory names.
const ToolName = "lda"

// HomeDir returns the user's home directory
func HomeDir() string {
	home, _ := os.UserHomeDir()
	return home
}

// LdaHome returns the directory holding the tool configuration.
// LDA_HOME overrides the default of ~/.config/lda.
func LdaHome() string {
	if v := os.Getenv("LDA_HOME"); v != "" {
		return v
	}
	return filepath.Join(HomeDir(), ".config", ToolName)
}

// ProjectConfigPath returns the path of the project-level .ldarc file
func ProjectConfigPath(projectDir string) string {
	return filepath.Join(projectDir, "."+ToolName+"rc")
}

// IsProjectRoot reports whether dir looks like the root of a SvelteKit project,
// i.e. it contains a src directory.
func IsProjectRoot(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, "src"))
	return err == nil && info.IsDir()
}

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ExpandPath expands a leading ~ and resolves relative paths against baseDir.
func ExpandPath(path, baseDir string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		return HomeDir()
	}
	if len(path) > 1 && path[0] == '~' && (path[1] == '/' || path[1] == filepath.Separator) {
		return filepath.Join(HomeDir(), path[2:])
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(baseDir, path)
}
