package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Decision is the answer given in the confirm prompt.
type Decision int

const (
	// DecisionNone means the program ended without an answer.
	DecisionNone Decision = iota
	// DecisionAccept means the file should be updated.
	DecisionAccept
	// DecisionDecline means the file should be left alone.
	DecisionDecline
	// DecisionAbort means the whole run should stop.
	DecisionAbort
)

// ConfirmInput describes the file being confirmed.
type ConfirmInput struct {
	RelativePath string
	// Index is zero-based; Total is the number of drifted files.
	Index int
	Total int
	// Missing is true when the project has no copy yet.
	Missing bool
	// Current is the project copy, Incoming the template copy.
	Current  string
	Incoming string
}

type confirmKeyMap struct {
	Yes     key.Binding
	No      key.Binding
	Preview key.Binding
	Up      key.Binding
	Down    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultConfirmKeyMap() confirmKeyMap {
	return confirmKeyMap{
		Yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "update file"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N", "enter"),
			key.WithHelp("n/enter", "keep project copy"),
		),
		Preview: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "toggle diff"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "abort sync"),
		),
	}
}

// ConfirmModel is the BubbleTea model asking whether one drifted file is updated.
type ConfirmModel struct {
	input    ConfirmInput
	keys     confirmKeyMap
	viewport viewport.Model
	decision Decision
	preview  bool
	showHelp bool
	ready    bool
	quitting bool
	width    int
	height   int
}

// NewConfirmModel creates a confirm prompt for input.
func NewConfirmModel(input ConfirmInput) ConfirmModel {
	return ConfirmModel{
		input: input,
		keys:  defaultConfirmKeyMap(),
		width: 80,
	}
}

// Init implements tea.Model.
func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeViewport()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m.finish(DecisionAbort)

		case key.Matches(msg, m.keys.Yes):
			return m.finish(DecisionAccept)

		case key.Matches(msg, m.keys.No):
			return m.finish(DecisionDecline)

		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, m.keys.Preview):
			m.preview = !m.preview
			if m.preview && !m.ready {
				m.resizeViewport()
			}
			return m, nil
		}
	}

	if m.preview {
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

func (m ConfirmModel) finish(d Decision) (tea.Model, tea.Cmd) {
	m.decision = d
	m.quitting = true
	return m, tea.Quit
}

// resizeViewport sizes the diff viewport for the current window.
func (m *ConfirmModel) resizeViewport() {
	height := 20
	if m.height > 0 {
		height = max(min(m.height-8, 30), 5)
	}
	width := max(m.width-2, 20)

	if !m.ready {
		m.viewport = viewport.New(width, height)
		m.viewport.SetContent(RenderDiff(m.input.Current, m.input.Incoming, m.input.Missing))
		m.ready = true
		return
	}
	m.viewport.Width = width
	m.viewport.Height = height
}

// View implements tea.Model.
func (m ConfirmModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	counter := ""
	if m.input.Total > 0 {
		counter = fmt.Sprintf("[%d/%d] ", m.input.Index+1, m.input.Total)
	}
	state := "changed"
	if m.input.Missing {
		state = "new"
	}
	path := truncateLeft(m.input.RelativePath, max(m.width-len(counter)-12, 10))
	b.WriteString(Styles.Title.Render(fmt.Sprintf("%sUpdate %s?", counter, path)))
	b.WriteString(Styles.Status.Render("(" + state + ")"))
	b.WriteString("\n")

	if m.preview && m.ready {
		b.WriteString("\n")
		b.WriteString(m.viewport.View())
		b.WriteString("\n")
		scrollPercent := int(m.viewport.ScrollPercent() * 100)
		b.WriteString(Styles.Status.Render(fmt.Sprintf("Scroll: %d%%", scrollPercent)))
		b.WriteString("\n")
	}

	if m.showHelp {
		b.WriteString("\n")
		b.WriteString(m.renderFullHelp())
	} else {
		b.WriteString(m.renderShortHelp())
	}
	b.WriteString("\n")

	return b.String()
}

func (m ConfirmModel) renderShortHelp() string {
	keys := []string{
		"y update",
		"n skip",
		"d diff",
		"? help",
		"q abort",
	}
	return Styles.Help.Render(strings.Join(keys, " • "))
}

func (m ConfirmModel) renderFullHelp() string {
	help := `Actions:
  y        Update the project file from the template
  n/Enter  Keep the project file as it is
  d        Show or hide the diff

Diff:
  ↑/k      Scroll up
  ↓/j      Scroll down

General:
  ?        Toggle full help
  q/Esc    Abort the sync (files already updated stay updated)`
	return Styles.Help.Render(help)
}

// Decision returns the answer given by the user.
func (m ConfirmModel) Decision() Decision {
	return m.decision
}
