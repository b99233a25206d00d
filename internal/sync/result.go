package sync

import (
	"fmt"
	"strings"
)

// Action represents what happened to a drift record during apply.
type Action string

const (
	// ActionUpdated indicates the project file was replaced or created.
	ActionUpdated Action = "updated"

	// ActionIgnored indicates the record was declined.
	ActionIgnored Action = "ignored"

	// ActionFailed indicates the backup or copy failed.
	ActionFailed Action = "failed"
)

// FileResult represents the outcome of applying a single record.
type FileResult struct {
	// Record is the record that was processed.
	Record DriftRecord

	// Action is the action that was taken.
	Action Action

	// BackupPath is where the previous content was saved, if anything was saved.
	BackupPath string

	// Err contains the failure for ActionFailed.
	Err error
}

// Outcome accumulates the results of an apply pass.
type Outcome struct {
	Updated int
	Ignored int
	Failed  int

	// BackupDir is the snapshot directory when at least one file was backed up.
	BackupDir string

	// Files holds one result per processed record, in processing order.
	Files []FileResult
}

// record adds r to the outcome and bumps the matching counter.
func (o *Outcome) record(r FileResult) {
	switch r.Action {
	case ActionUpdated:
		o.Updated++
	case ActionIgnored:
		o.Ignored++
	case ActionFailed:
		o.Failed++
	}
	o.Files = append(o.Files, r)
}

// Success returns true if no record failed.
func (o *Outcome) Success() bool {
	return o.Failed == 0
}

// Processed returns the number of records handled.
func (o *Outcome) Processed() int {
	return len(o.Files)
}

// FailedFiles returns the failed results.
func (o *Outcome) FailedFiles() []FileResult {
	var failed []FileResult
	for _, f := range o.Files {
		if f.Action == ActionFailed {
			failed = append(failed, f)
		}
	}
	return failed
}

// Summary returns a human-readable summary of the outcome.
func (o *Outcome) Summary() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "  Updated: %d\n", o.Updated)
	fmt.Fprintf(&sb, "  Ignored: %d\n", o.Ignored)
	if o.Failed > 0 {
		fmt.Fprintf(&sb, "  Failed:  %d\n", o.Failed)
	}

	if !o.Success() {
		sb.WriteString("\nErrors:\n")
		for _, f := range o.FailedFiles() {
			fmt.Fprintf(&sb, "  - %s: %v\n", f.Record.RelativePath, f.Err)
		}
	}

	return sb.String()
}
