// Package tui provides interactive terminal UI components using BubbleTea.
package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styles contains reusable lipgloss styles for the TUI.
var Styles = struct {
	Title    lipgloss.Style
	Selected lipgloss.Style
	Normal   lipgloss.Style
	Help     lipgloss.Style
	Status   lipgloss.Style
	Added    lipgloss.Style
	Removed  lipgloss.Style
	Context  lipgloss.Style
	Info     lipgloss.Style
}{
	Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
	Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
	Normal:   lipgloss.NewStyle(),
	Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	Status:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1),
	Added:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	Removed:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	Context:  lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	Info:     lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Italic(true),
}

// Run starts a BubbleTea program with the given model.
// Nil in or out fall back to the terminal.
func Run(model tea.Model, in io.Reader, out io.Writer) (tea.Model, error) {
	var opts []tea.ProgramOption
	if in != nil {
		opts = append(opts, tea.WithInput(in))
	}
	if out != nil {
		opts = append(opts, tea.WithOutput(out))
	}
	return tea.NewProgram(model, opts...).Run()
}
