// Package ui provides terminal output helpers for lda.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Color function types for styled output.
var (
	// Success is used for successful operations (green).
	Success = color.New(color.FgGreen).SprintFunc()
	// Error is used for errors and failures (red).
	Error = color.New(color.FgRed).SprintFunc()
	// Warning is used for warnings and cautions (yellow).
	Warning = color.New(color.FgYellow).SprintFunc()
	// Info is used for informational messages (cyan).
	Info = color.New(color.FgCyan).SprintFunc()
	// Bold is used for emphasis.
	Bold = color.New(color.Bold).SprintFunc()
	// Dim is used for secondary information (faint).
	Dim = color.New(color.Faint).SprintFunc()
)

// Status symbols.
const (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolWarning = "⚠"
	SymbolSkipped = "-"
	SymbolBullet  = "•"
)

// StatusSuccess returns a green checkmark with optional message.
func StatusSuccess(msg string) string {
	return withSymbol(Success(SymbolSuccess), msg)
}

// StatusError returns a red X with optional message.
func StatusError(msg string) string {
	return withSymbol(Error(SymbolError), msg)
}

// StatusWarning returns a yellow warning with optional message.
func StatusWarning(msg string) string {
	return withSymbol(Warning(SymbolWarning), msg)
}

// StatusSkipped returns a dimmed skip symbol with optional message.
func StatusSkipped(msg string) string {
	return withSymbol(Dim(SymbolSkipped), msg)
}

// Bullet returns an indented list item.
func Bullet(msg string) string {
	return "  " + Dim(SymbolBullet) + " " + msg
}

func withSymbol(symbol, msg string) string {
	if msg == "" {
		return symbol
	}
	return symbol + " " + msg
}

var titleCaser = cases.Title(language.English)

// Title capitalizes each word of s, e.g. "dry run" -> "Dry Run".
func Title(s string) string {
	return titleCaser.String(s)
}

var noteStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	Padding(0, 1)

// Note renders body inside a rounded box headed by title.
func Note(title, body string) string {
	content := Bold(title) + "\n" + strings.TrimRight(body, "\n")
	return noteStyle.Render(content)
}

// DisableColors disables all color output.
func DisableColors() {
	color.NoColor = true
}

// EnableColors enables color output.
func EnableColors() {
	color.NoColor = false
}

// IsColorEnabled returns whether colors are currently enabled.
func IsColorEnabled() bool {
	return !color.NoColor
}

// ApplyColorMode configures color output from a config value:
// "auto" keeps terminal detection, "always" forces colors, "never" disables them.
func ApplyColorMode(mode string) error {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		return nil
	case "always":
		EnableColors()
		return nil
	case "never":
		DisableColors()
		return nil
	default:
		return fmt.Errorf("unsupported color mode %q (want auto, always or never)", mode)
	}
}
