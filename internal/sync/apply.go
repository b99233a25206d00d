package sync

import (
	"context"
	"errors"
	"fmt"

	"github.com/lwidev/lda/internal/logging"
)

// ErrAborted is returned by a Confirmer when the user stops the run.
var ErrAborted = errors.New("sync aborted by user")

// Confirmer decides interactively whether a record is applied.
type Confirmer interface {
	Confirm(ctx context.Context, rec DriftRecord) (bool, error)
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(ctx context.Context, rec DriftRecord) (bool, error)

// Confirm calls f.
func (f ConfirmFunc) Confirm(ctx context.Context, rec DriftRecord) (bool, error) {
	return f(ctx, rec)
}

// Backuper saves a project file before it is overwritten.
// Backup returns "" when there was nothing to save.
type Backuper interface {
	Backup(targetPath string) (string, error)
	Root() string
}

// ProgressEvent is emitted after each record is handled.
type ProgressEvent struct {
	Index  int
	Total  int
	Record DriftRecord
	Action Action
	Err    error
}

// ProgressFunc receives apply progress.
type ProgressFunc func(ProgressEvent)

// ApplyOptions configures Apply.
type ApplyOptions struct {
	// Policy selects prompting behavior (default: interactive).
	Policy Policy

	// Confirmer is required for PolicyInteractive.
	Confirmer Confirmer

	// Backups saves existing targets; nil disables backups.
	Backups Backuper

	// Progress is called once per record.
	Progress ProgressFunc
}

// Apply processes records in order under opts.Policy.
//
// A record that fails to back up or copy is counted as failed and the loop
// continues. A confirmer error or a cancelled context stops the loop; the
// partial outcome is returned together with the error and records already
// applied stay applied.
func Apply(ctx context.Context, records []DriftRecord, opts ApplyOptions) (Outcome, error) {
	defer logging.Timer("apply")()

	policy := opts.Policy
	if policy == "" {
		policy = PolicyInteractive
	}
	if !policy.IsValid() {
		return Outcome{}, fmt.Errorf("unknown sync policy %q", policy)
	}
	if policy.Prompts() && opts.Confirmer == nil {
		return Outcome{}, errors.New("interactive policy requires a confirmer")
	}

	log := logging.WithContext(ctx)
	var outcome Outcome

	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return outcome, err
		}

		accept := true
		if policy.Prompts() {
			ok, err := opts.Confirmer.Confirm(ctx, rec)
			if err != nil {
				log.Debug("confirmation stopped", logging.RelPath(rec.RelativePath), logging.Err(err))
				return outcome, err
			}
			accept = ok
		}

		result := FileResult{Record: rec, Action: ActionIgnored}
		if accept {
			result = applyRecord(rec, opts.Backups)
			if result.BackupPath != "" && outcome.BackupDir == "" {
				outcome.BackupDir = opts.Backups.Root()
			}
		}

		switch result.Action {
		case ActionFailed:
			log.Warn("failed to update file", logging.RelPath(rec.RelativePath), logging.Err(result.Err))
		default:
			log.Debug("file processed",
				logging.RelPath(rec.RelativePath),
				logging.Operation(string(result.Action)),
				logging.Policy(string(policy)),
			)
		}

		outcome.record(result)

		if opts.Progress != nil {
			opts.Progress(ProgressEvent{
				Index:  i,
				Total:  len(records),
				Record: rec,
				Action: result.Action,
				Err:    result.Err,
			})
		}
	}

	return outcome, nil
}

func applyRecord(rec DriftRecord, backups Backuper) FileResult {
	result := FileResult{Record: rec}

	if backups != nil {
		saved, err := backups.Backup(rec.TargetPath)
		if err != nil {
			result.Action = ActionFailed
			result.Err = fmt.Errorf("backup failed: %w", err)
			return result
		}
		result.BackupPath = saved
	}

	if err := replaceFile(rec.SourcePath, rec.TargetPath); err != nil {
		result.Action = ActionFailed
		result.Err = err
		return result
	}

	result.Action = ActionUpdated
	return result
}
