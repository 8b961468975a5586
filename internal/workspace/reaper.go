package workspace

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// SweepReport summarizes one sweep over the workspace root.
type SweepReport struct {
	Scanned int // subdirectories inspected
	Removed int // subdirectories older than the threshold and deleted
	Failed  int // subdirectories that could not be inspected or deleted
}

// Reaper deletes workspaces left behind by jobs that never cleaned up.
type Reaper struct {
	manager *Manager
	now     func() time.Time
}

// NewReaper returns a Reaper sweeping m's root.
func NewReaper(m *Manager) *Reaper {
	return &Reaper{manager: m, now: time.Now}
}

// Sweep removes immediate subdirectories of the root whose modification
// time is older than maxAge. A failing entry is logged and counted, and the
// sweep moves on. A missing root yields an empty report.
func (r *Reaper) Sweep(maxAge time.Duration) SweepReport {
	var report SweepReport
	logger := r.manager.logger
	root := r.manager.root

	entries, err := os.ReadDir(root)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("workspace sweep failed", "path", root, "error", err)
		}
		return report
	}

	cutoff := r.now().Add(-maxAge)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		report.Scanned++
		path := filepath.Join(root, entry.Name())

		info, err := entry.Info()
		if err != nil {
			// Removed concurrently by its own job.
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			report.Failed++
			logger.Warn("workspace inspect failed", "path", path, "error", err)
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}

		if err := r.manager.remove(path); err != nil {
			report.Failed++
			logger.Warn("stale workspace cleanup failed", "path", path, "error", err)
			continue
		}
		report.Removed++
		logger.Info("stale workspace removed", "path", path, "age", r.now().Sub(info.ModTime()).Round(time.Second))
	}

	return report
}

// Run sweeps immediately and then on every interval tick until ctx ends.
// A non-positive interval sweeps once.
func (r *Reaper) Run(ctx context.Context, interval, maxAge time.Duration) {
	r.Sweep(maxAge)
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep(maxAge)
		}
	}
}
