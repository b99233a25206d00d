package backup

import (
	"fmt"
	"os"
	"time"
)

// CleanupOptions configures snapshot cleanup behavior
type CleanupOptions struct {
	// MaxSnapshots limits the number of snapshots to keep (0 = unlimited)
	MaxSnapshots int

	// MaxAge is the maximum age of snapshots to keep (0 = unlimited)
	MaxAge time.Duration

	// KeepAtLeastOne ensures the newest snapshot survives
	KeepAtLeastOne bool

	// DryRun previews what would be deleted without actually deleting
	DryRun bool

	// Now is the reference time for MaxAge (zero = time.Now())
	Now time.Time
}

// DefaultCleanupOptions returns sensible defaults for cleanup
func DefaultCleanupOptions() CleanupOptions {
	return CleanupOptions{
		MaxSnapshots:   10,
		MaxAge:         30 * 24 * time.Hour,
		KeepAtLeastOne: true,
	}
}

// CleanupSnapshots removes old snapshots under dir and returns the ones
// removed (or that would be removed in dry-run mode), newest first.
func CleanupSnapshots(dir string, opts CleanupOptions) ([]Snapshot, error) {
	snapshots, err := ListSnapshots(dir)
	if err != nil {
		return nil, err
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	var toDelete []Snapshot
	keepCount := 0
	for idx, snap := range snapshots {
		shouldDelete := false

		if opts.MaxAge > 0 && now.Sub(snap.Date) > opts.MaxAge {
			shouldDelete = true
		}
		if opts.MaxSnapshots > 0 && idx >= opts.MaxSnapshots {
			shouldDelete = true
		}

		if shouldDelete {
			toDelete = append(toDelete, snap)
		} else {
			keepCount++
		}
	}

	// Snapshots are sorted newest first, so the newest is toDelete[0].
	if opts.KeepAtLeastOne && keepCount == 0 && len(toDelete) > 0 {
		toDelete = toDelete[1:]
	}

	var deleted []Snapshot
	for _, snap := range toDelete {
		if !opts.DryRun {
			if err := os.RemoveAll(snap.Path); err != nil {
				return deleted, fmt.Errorf("failed to delete snapshot %q: %w", snap.Name, err)
			}
		}
		deleted = append(deleted, snap)
	}

	return deleted, nil
}

// GetStats returns statistics about the snapshots under dir
func GetStats(dir string) (*Stats, error) {
	snapshots, err := ListSnapshots(dir)
	if err != nil {
		return nil, err
	}

	stats := &Stats{TotalSnapshots: len(snapshots)}
	for _, snap := range snapshots {
		stats.TotalFiles += snap.Files
		stats.TotalSize += snap.Size

		if stats.Oldest.IsZero() || snap.Date.Before(stats.Oldest) {
			stats.Oldest = snap.Date
		}
		if snap.Date.After(stats.Newest) {
			stats.Newest = snap.Date
		}
	}

	return stats, nil
}

// Stats contains statistics about snapshots
type Stats struct {
	TotalSnapshots int
	TotalFiles     int
	TotalSize      int64
	Oldest         time.Time
	Newest         time.Time
}
