package tui

import (
	"context"
	"errors"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lwidev/lda/internal/sync"
)

// SyncConfirmer asks about each drift record with a ConfirmModel.
type SyncConfirmer struct {
	total int
	index int
	in    io.Reader
	out   io.Writer

	// run is swapped in tests to drive the model without a terminal.
	run func(tea.Model) (tea.Model, error)
}

// NewSyncConfirmer creates a confirmer for a run with total records.
// Nil in or out fall back to the terminal.
func NewSyncConfirmer(total int, in io.Reader, out io.Writer) *SyncConfirmer {
	c := &SyncConfirmer{total: total, in: in, out: out}
	c.run = func(m tea.Model) (tea.Model, error) {
		return Run(m, c.in, c.out)
	}
	return c
}

// SetTotal sets the number of records shown in the prompt counter.
func (c *SyncConfirmer) SetTotal(n int) {
	c.total = n
}

// Confirm implements sync.Confirmer.
func (c *SyncConfirmer) Confirm(ctx context.Context, rec sync.DriftRecord) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	input := ConfirmInput{
		RelativePath: rec.RelativePath,
		Index:        c.index,
		Total:        c.total,
		Missing:      rec.Missing,
		Current:      readOrEmpty(rec.TargetPath),
		Incoming:     readOrEmpty(rec.SourcePath),
	}
	c.index++

	final, err := c.run(NewConfirmModel(input))
	if err != nil {
		return false, err
	}

	m, ok := final.(ConfirmModel)
	if !ok {
		return false, errors.New("unexpected confirm model")
	}

	switch m.Decision() {
	case DecisionAccept:
		return true, nil
	case DecisionDecline:
		return false, nil
	default:
		return false, sync.ErrAborted
	}
}

func readOrEmpty(path string) string {
	// #nosec G304 - path comes from a drift record
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return string(data)
}
