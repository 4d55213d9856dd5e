// Package watcher locates the newest CSV dump in a station's backup
// directory. Loggers drop a fresh file per dump; "new data" is detected by
// filename identity, not content, so the pipeline keeps a per-station cursor
// of the last filename it processed.
package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DirWatcher scans directories for the most recently modified CSV file.
type DirWatcher struct{}

// New returns a DirWatcher.
func New() *DirWatcher {
	return &DirWatcher{}
}

// LatestCSV returns the name of the newest .csv file in dir by modification
// time, or "" when the directory holds none. The suffix match is
// case-insensitive so dumps named .CSV are not silently skipped. Errors are
// returned for the caller to log; a failed scan skips one poll tick, never
// stops the poller.
func (w *DirWatcher) LatestCSV(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read dir %s: %w", dir, err)
	}

	var (
		latest     string
		latestTime time.Time
	)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if latest == "" || info.ModTime().After(latestTime) {
			latest = e.Name()
			latestTime = info.ModTime()
		}
	}
	return latest, nil
}
