package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pmezard/go-difflib/difflib"
)

type diffOp int

const (
	diffContext diffOp = iota
	diffAdded
	diffRemoved
)

type diffLine struct {
	op   diffOp
	text string
}

// lineDiff returns the line-level edit script from current to incoming.
// Lines keep no trailing newline.
func lineDiff(current, incoming []string) []diffLine {
	var out []diffLine
	emit := func(op diffOp, lines []string) {
		for _, l := range lines {
			out = append(out, diffLine{op: op, text: strings.TrimSuffix(l, "\n")})
		}
	}

	matcher := difflib.NewMatcher(current, incoming)
	for _, c := range matcher.GetOpCodes() {
		switch c.Tag {
		case 'e':
			emit(diffContext, current[c.I1:c.I2])
		case 'd':
			emit(diffRemoved, current[c.I1:c.I2])
		case 'i':
			emit(diffAdded, incoming[c.J1:c.J2])
		case 'r':
			emit(diffRemoved, current[c.I1:c.I2])
			emit(diffAdded, incoming[c.J1:c.J2])
		}
	}
	return out
}

// RenderDiff renders the change from the project copy to the template copy.
func RenderDiff(current, incoming string, missing bool) string {
	var b strings.Builder

	if missing {
		b.WriteString(Styles.Info.Render("  New file - not present in the project"))
		b.WriteString("\n\n")
		b.WriteString(formatContentWithLineNumbers(incoming, Styles.Added))
		return b.String()
	}

	added, removed := 0, 0
	for _, line := range lineDiff(difflib.SplitLines(current), difflib.SplitLines(incoming)) {
		switch line.op {
		case diffAdded:
			added++
			b.WriteString(Styles.Added.Render("+ " + line.text))
		case diffRemoved:
			removed++
			b.WriteString(Styles.Removed.Render("- " + line.text))
		default:
			b.WriteString(Styles.Context.Render("  " + line.text))
		}
		b.WriteString("\n")
	}

	if added == 0 && removed == 0 {
		b.WriteString(Styles.Info.Render("  Only whitespace at end of file or line endings differ"))
		b.WriteString("\n")
	}

	summary := Styles.Info.Render(fmt.Sprintf("  %d added, %d removed", added, removed))
	return summary + "\n\n" + b.String()
}

func formatContentWithLineNumbers(content string, style lipgloss.Style) string {
	lines := strings.Split(content, "\n")
	var b strings.Builder

	for i, line := range lines {
		lineNum := fmt.Sprintf("%4d │ ", i+1)
		b.WriteString(Styles.Context.Render(lineNum))
		b.WriteString(style.Render(line))
		if i < len(lines)-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}
