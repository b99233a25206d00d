package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lwidev/lda/internal/sync"
	"github.com/lwidev/lda/internal/ui/tui"
)

// LineConfirmer asks about each drift record on a line-oriented terminal.
// It is used when stdin is not a terminal or the TUI is disabled.
type LineConfirmer struct {
	reader *bufio.Reader
	out    io.Writer
	total  int
	index  int
}

// NewLineConfirmer creates a confirmer reading answers from in.
func NewLineConfirmer(in io.Reader, out io.Writer) *LineConfirmer {
	return &LineConfirmer{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// SetTotal sets the number of records shown in the prompt counter.
func (lc *LineConfirmer) SetTotal(n int) {
	lc.total = n
}

// Confirm implements sync.Confirmer. An empty answer declines. End of input
// aborts the run.
func (lc *LineConfirmer) Confirm(ctx context.Context, rec sync.DriftRecord) (bool, error) {
	lc.index++
	state := "changed"
	if rec.Missing {
		state = "new"
	}

	for {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		counter := ""
		if lc.total > 0 {
			counter = fmt.Sprintf("[%d/%d] ", lc.index, lc.total)
		}
		_, _ = fmt.Fprintf(lc.out, "%sUpdate %s (%s)? [y/N/d/q]: ", counter, rec.RelativePath, state)

		response, err := lc.reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || response == "") {
			_, _ = fmt.Fprintln(lc.out)
			if errors.Is(err, io.EOF) {
				return false, sync.ErrAborted
			}
			return false, fmt.Errorf("failed to read input: %w", err)
		}

		switch strings.ToLower(strings.TrimSpace(response)) {
		case "y", "yes":
			return true, nil
		case "", "n", "no":
			return false, nil
		case "q", "quit":
			return false, sync.ErrAborted
		case "d", "diff":
			lc.showDiff(rec)
		default:
			_, _ = fmt.Fprintln(lc.out, "Please answer y, n, d or q.")
		}
	}
}

func (lc *LineConfirmer) showDiff(rec sync.DriftRecord) {
	current := readOrEmpty(rec.TargetPath)
	incoming := readOrEmpty(rec.SourcePath)

	_, _ = fmt.Fprintln(lc.out, strings.Repeat("-", 50))
	_, _ = fmt.Fprintln(lc.out, tui.RenderDiff(current, incoming, rec.Missing))
	_, _ = fmt.Fprintln(lc.out, strings.Repeat("-", 50))
}

func readOrEmpty(path string) string {
	// #nosec G304 - path comes from a drift record
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return string(data)
}
