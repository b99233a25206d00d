// Package sync brings a project's copied template files up to date.
//
// A run has three stages. Collect walks the include patterns of a
// config.PatternSet through the template tree and returns one DriftRecord for
// every file whose project copy differs or is missing. Apply walks those
// records in order and, depending on the Policy, copies the template file
// over the project file after saving the old content in a dated backup.
// Engine ties the stages together with the template locator, the remote
// fetch and the project's .ldarc.
//
// # Policies
//
//   - PolicyInteractive: ask a Confirmer once per record (default)
//   - PolicyForce: apply every record without asking
//   - PolicySilent: same as force; callers also suppress the banner
//
// Dry runs stop after Collect and never touch the project or the backup
// directory.
//
// # Progress Reporting
//
// Apply emits one ProgressEvent per record after it has been handled:
//
//	outcome, err := sync.Apply(ctx, records, sync.ApplyOptions{
//	    Policy:  sync.PolicyForce,
//	    Backups: manager,
//	    Progress: func(ev sync.ProgressEvent) {
//	        fmt.Printf("%d/%d %s\n", ev.Index+1, ev.Total, ev.Record.RelativePath)
//	    },
//	})
//
// Per-record copy or backup failures are counted in Outcome.Failed and the
// loop continues. Records that were applied stay applied; there is no
// rollback across records.
package sync
